package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/typedant/antls/ant/types"
	"github.com/typedant/antls/langserver"
)

var errDiagnostics = errors.New("diagnostics reported")

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "check <file>...",
		Short:         "Report the first diagnostic of each TypedAnt file",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := false
			for _, filename := range args {
				text, uri, err := readDocument(filename)
				if err != nil {
					return err
				}
				diag := langserver.Analyze(text, uri, types.NewTable().Init())
				if diag == nil {
					continue
				}
				failed = true
				fmt.Fprintf(cmd.OutOrStdout(), "%s:%d:%d: %s\n",
					filename, diag.Range.Start.Line+1, diag.Range.Start.Character+1, diag.Message)
			}
			if failed {
				return errDiagnostics
			}
			return nil
		},
	}
}

// readDocument loads filename and returns its text with the file URI an
// editor would use for it.
func readDocument(filename string) (text, uri string, err error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", filename, err)
	}
	abs, err := filepath.Abs(filename)
	if err != nil {
		return "", "", fmt.Errorf("resolve %s: %w", filename, err)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return string(data), u.String(), nil
}
