package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/typedant/antls/ant/parser"
	"github.com/typedant/antls/format"
)

func newTokensCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Dump the token stream of a TypedAnt file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read %s: %w", filename, err)
			}

			encoder, ok := format.NewTokenEncoder(outputFormat, cmd.OutOrStdout())
			if !ok {
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			lexer := parser.NewLexer(string(data), filename)
			if err := encoder.Encode(lexer.Tokens()); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			for _, lexErr := range lexer.Errors() {
				fmt.Fprintln(cmd.ErrOrStderr(), lexErr)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format: text or json")

	return cmd
}
