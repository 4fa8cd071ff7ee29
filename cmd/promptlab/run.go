package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/wonwomen07/prompt-engineering/internal/apperr"
	"github.com/wonwomen07/prompt-engineering/internal/render"
	"github.com/wonwomen07/prompt-engineering/internal/schema"
	"github.com/wonwomen07/prompt-engineering/internal/service"
	"github.com/wonwomen07/prompt-engineering/internal/technique"
)

type runFlags struct {
	renderFlags
	configFile     string
	temperature    float64
	hasTemperature bool
	maxTokens      int
	out            string
}

func newRunCmd() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Send one technique's prompt to the configured model",
		RunE: func(cmd *cobra.Command, args []string) error {
			f.configFile, _ = cmd.Flags().GetString("config")
			f.hasTemperature = cmd.Flags().Changed("temperature")
			return runPrompt(cmd.Context(), cmd.OutOrStdout(), f)
		},
	}
	addSpecFlags(cmd, &f.renderFlags)
	fl := cmd.Flags()
	fl.Float64Var(&f.temperature, "temperature", technique.DefaultTemperature, "sampling temperature")
	fl.IntVar(&f.maxTokens, "max-tokens", 0, "completion token ceiling (default: the technique's)")
	fl.StringVar(&f.format, "format", "markdown", "output format: markdown or json")
	fl.StringVar(&f.out, "out", "", "write the report to this file instead of stdout")
	return cmd
}

func runPrompt(ctx context.Context, stdout io.Writer, f runFlags) error {
	if f.format != "json" && f.format != "markdown" {
		return classify(apperr.Validation("format", "unknown format %q (must be markdown or json)", f.format))
	}
	family, err := technique.ParseFamily(f.family)
	if err != nil {
		return classify(err)
	}
	spec, err := f.spec()
	if err != nil {
		return classify(err)
	}
	svc, err := openService(f.configFile)
	if err != nil {
		return err
	}

	req := service.Request{Family: family, Technique: f.technique, Spec: spec}
	if f.hasTemperature {
		req.Temperature = &f.temperature
	}
	if f.maxTokens != 0 {
		req.MaxTokens = &f.maxTokens
	}
	res, err := svc.Prompt(ctx, req)
	if err != nil {
		return classify(err)
	}
	resp := schema.NewPromptResponse(res)

	var doc []byte
	if f.format == "json" {
		if doc, err = render.RenderJSON(resp); err != nil {
			return err
		}
		doc = append(doc, '\n')
	} else {
		doc = []byte(render.RenderPromptMarkdown(&resp))
	}
	return writeReport(stdout, f.out, doc)
}
