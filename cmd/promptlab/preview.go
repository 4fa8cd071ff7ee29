package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonwomen07/prompt-engineering/internal/apperr"
	"github.com/wonwomen07/prompt-engineering/internal/prompt"
	"github.com/wonwomen07/prompt-engineering/internal/technique"
)

type renderFlags struct {
	family      string
	technique   string
	task        string
	input       string
	role        string
	context     string
	examples    []string
	length      string
	contentType string
	audience    string
	language    string
	format      string
}

func newRenderCmd() *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the prompt a technique would send, without calling a model",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.OutOrStdout(), cmd.ErrOrStderr(), f)
		},
	}
	addSpecFlags(cmd, &f)
	cmd.Flags().StringVar(&f.format, "format", "text", "output format: text or json")
	return cmd
}

func runRender(stdout, stderr io.Writer, f renderFlags) error {
	family, err := technique.ParseFamily(f.family)
	if err != nil {
		return classify(err)
	}
	spec, err := f.spec()
	if err != nil {
		return classify(err)
	}
	r, err := technique.Default().Render(family, f.technique, spec)
	if err != nil {
		return classify(err)
	}
	if r.Resolution.Fallback {
		fmt.Fprintf(stderr, "technique %q is not registered for %s; using %s\n",
			r.Resolution.Requested, family, r.Technique())
	}

	switch f.format {
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"family":     family,
			"requested":  r.Resolution.Requested,
			"technique":  r.Technique(),
			"fallback":   r.Resolution.Fallback,
			"max_tokens": r.MaxTokens(),
			"prompt":     r.Text,
		})
	case "text", "":
		_, err := fmt.Fprintln(stdout, r.Text)
		return err
	default:
		return classify(apperr.Validation("format", "unknown format %q (must be text or json)", f.format))
	}
}

// spec maps the flags onto the fields each family reads.
func (f renderFlags) spec() (prompt.Spec, error) {
	examples, err := parseExamples(f.examples)
	if err != nil {
		return prompt.Spec{}, err
	}
	return prompt.Spec{
		Task:     f.task,
		Input:    f.input,
		Examples: examples,
		Role:     f.role,
		Context:  f.context,
		Summary:  prompt.SummaryOptions{Length: prompt.Length(strings.TrimSpace(f.length))},
		Content:  prompt.ContentOptions{Type: f.contentType, Audience: f.audience},
		Code:     prompt.CodeOptions{Language: f.language},
	}, nil
}

// addSpecFlags registers the prompt field flags shared by render and run.
func addSpecFlags(cmd *cobra.Command, f *renderFlags) {
	fl := cmd.Flags()
	fl.StringVar(&f.family, "family", string(technique.General), "technique family: general, sentiment, summarization, content, code")
	fl.StringVarP(&f.technique, "technique", "t", "", "technique id (default zero_shot)")
	fl.StringVar(&f.task, "task", "", "task, topic (content) or coding task (code)")
	fl.StringVar(&f.input, "input", "", "input text or problem")
	fl.StringVar(&f.role, "role", "", "role for role_based")
	fl.StringVar(&f.context, "context", "", "extra context for role_based")
	fl.StringArrayVar(&f.examples, "example", nil, `few-shot example as "input=>output" (repeatable)`)
	fl.StringVar(&f.length, "length", "", "summary length: short, medium or long")
	fl.StringVar(&f.contentType, "content-type", "", `content type, e.g. "blog post"`)
	fl.StringVar(&f.audience, "audience", "", "content audience")
	fl.StringVar(&f.language, "language", "", "programming language")
}

// parseExamples reads "input=>output" pairs.
func parseExamples(raw []string) ([]prompt.Example, error) {
	out := make([]prompt.Example, 0, len(raw))
	for _, s := range raw {
		in, outText, ok := strings.Cut(s, "=>")
		if !ok {
			return nil, apperr.Validation("example", "%q is not of the form input=>output", s)
		}
		out = append(out, prompt.Example{Input: strings.TrimSpace(in), Output: strings.TrimSpace(outText)})
	}
	return out, nil
}
