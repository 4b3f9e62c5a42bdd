package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/typedant/antls/langserver"
)

func newCompleteCmd(opts *globalOptions) *cobra.Command {
	var line, character uint32

	cmd := &cobra.Command{
		Use:   "complete <file>",
		Short: "Print completion candidates at a position (0-based line and UTF-16 character)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			text, uri, err := readDocument(args[0])
			if err != nil {
				return err
			}

			completer := langserver.Completer{IncludeBuiltins: cfg.Completion.IncludeBuiltins}
			candidates := completer.Complete(text, uri, protocol.Position{Line: line, Character: character})

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, c := range candidates {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Label, c.Kind, c.Detail)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().Uint32Var(&line, "line", 0, "0-based line of the cursor")
	cmd.Flags().Uint32Var(&character, "character", 0, "0-based UTF-16 offset of the cursor within the line")
	cmd.Flags().Bool("builtins", true, "offer builtin functions as candidates")

	return cmd
}
