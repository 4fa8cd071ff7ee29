package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonwomen07/prompt-engineering/internal/apperr"
	"github.com/wonwomen07/prompt-engineering/internal/compare"
	"github.com/wonwomen07/prompt-engineering/internal/config"
	"github.com/wonwomen07/prompt-engineering/internal/llm"
	"github.com/wonwomen07/prompt-engineering/internal/logger"
	"github.com/wonwomen07/prompt-engineering/internal/render"
	"github.com/wonwomen07/prompt-engineering/internal/schema"
	"github.com/wonwomen07/prompt-engineering/internal/service"
)

type compareFlags struct {
	configFile     string
	task           string
	input          string
	role           string
	examples       []string
	temperature    float64
	hasTemperature bool
	format         string
	out            string
	failOnError    bool
}

func newCompareCmd() *cobra.Command {
	var f compareFlags
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run the same task through each general technique and report the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			f.configFile, _ = cmd.Flags().GetString("config")
			f.hasTemperature = cmd.Flags().Changed("temperature")
			return runCompare(cmd.Context(), cmd.OutOrStdout(), f)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.task, "task", "", "task description (required)")
	fl.StringVar(&f.input, "input", "", "input text (required)")
	fl.StringVar(&f.role, "role", "", "role; adds the role_based arm")
	fl.StringArrayVar(&f.examples, "example", nil, `few-shot example as "input=>output"; adds the few_shot arm`)
	fl.Float64Var(&f.temperature, "temperature", 0.7, "sampling temperature for every arm")
	fl.StringVar(&f.format, "format", "markdown", "output format: markdown or json")
	fl.StringVar(&f.out, "out", "", "write the report to this file instead of stdout")
	fl.BoolVar(&f.failOnError, "fail-on-error", false, "exit 2 when any technique fails")
	return cmd
}

func runCompare(ctx context.Context, stdout io.Writer, f compareFlags) error {
	if f.format != "json" && f.format != "markdown" {
		return classify(apperr.Validation("format", "unknown format %q (must be markdown or json)", f.format))
	}
	examples, err := parseExamples(f.examples)
	if err != nil {
		return classify(err)
	}
	svc, err := openService(f.configFile)
	if err != nil {
		return err
	}

	req := compare.Request{Task: f.task, Input: f.input, Examples: examples, Role: f.role}
	if f.hasTemperature {
		req.Temperature = &f.temperature
	}
	out, err := svc.Compare(ctx, req)
	if err != nil {
		return classify(err)
	}
	resp := schema.NewComparisonResponse(out)

	var doc []byte
	if f.format == "json" {
		if doc, err = render.RenderJSON(resp); err != nil {
			return err
		}
		doc = append(doc, '\n')
	} else {
		doc = []byte(render.RenderComparisonMarkdown(&resp))
	}
	if err := writeReport(stdout, f.out, doc); err != nil {
		return err
	}

	if failed := out.Failed(); f.failOnError && failed > 0 {
		return &exitError{
			code: exitCodeFailOn,
			err:  fmt.Errorf("%d of %d techniques failed", failed, len(out.Entries)),
		}
	}
	return nil
}

// openService builds a service over the configured provider for one-shot
// CLI use.
func openService(configFile string) (*service.Service, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, &exitError{code: exitCodeBadInput, err: err}
	}
	gw, err := llm.Open(llm.ProviderConfig{
		Name:    cfg.LLM.Provider,
		Model:   cfg.LLM.Model,
		APIKey:  cfg.LLM.APIKey(),
		BaseURL: cfg.LLM.BaseURL,
		Timeout: cfg.LLM.Timeout,
	})
	if err != nil {
		return nil, &exitError{code: exitCodeBadInput, err: err}
	}
	return service.New(gw, service.Options{
		Logger:  logger.Nop(),
		Compare: compare.Options{Parallel: cfg.Compare.Parallel},
	}), nil
}

func writeReport(stdout io.Writer, path string, doc []byte) error {
	if path == "" {
		_, err := stdout.Write(doc)
		return err
	}
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
