package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/wonwomen07/prompt-engineering/internal/apperr"
	"github.com/wonwomen07/prompt-engineering/internal/httpapi/handlers"
)

// Exit codes.
const (
	exitCodeFailOn   = 2
	exitCodeBadInput = 3
	exitCodeAPIError = 4
)

// exitError carries a process exit code alongside the error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// classify attaches the exit code matching err's kind.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return err
	}
	switch {
	case apperr.IsValidation(err):
		return &exitError{code: exitCodeBadInput, err: err}
	case apperr.IsBackend(err):
		return &exitError{code: exitCodeAPIError, err: err}
	}
	return err
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "promptlab",
		Short:         "Prompt engineering techniques over HTTP and the command line",
		Version:       handlers.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "", "config file (yaml, toml or json)")

	root.AddCommand(newServeCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newRunCmd())
	root.AddCommand(newCompareCmd())
	root.AddCommand(newTechniquesCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprintln(os.Stderr, "hint:", hint)
		}
		os.Exit(exitCode(err))
	}
}
