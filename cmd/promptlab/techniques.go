package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/wonwomen07/prompt-engineering/internal/apperr"
	"github.com/wonwomen07/prompt-engineering/internal/render"
	"github.com/wonwomen07/prompt-engineering/internal/schema"
	"github.com/wonwomen07/prompt-engineering/internal/technique"
)

func newTechniquesCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "techniques",
		Short: "List the registered technique families and techniques",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTechniques(cmd.OutOrStdout(), format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "markdown", "output format: markdown or json")
	return cmd
}

func runTechniques(w io.Writer, format string) error {
	infos := schema.NewFamilyInfos(technique.Default())
	switch format {
	case "json":
		b, err := render.RenderJSON(infos)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "markdown", "":
		_, err := io.WriteString(w, render.RenderTechniques(infos))
		return err
	default:
		return classify(apperr.Validation("format", "unknown format %q (must be markdown or json)", format))
	}
}
