package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/typedant/antls/ant/parser"
	"github.com/typedant/antls/format"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a TypedAnt file and dump its syntax tree as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read %s: %w", filename, err)
			}

			program, parseErr := parser.Parse(string(data), filename)
			if program != nil {
				if err := format.NewASTJSONEncoder(cmd.OutOrStdout()).Encode(program); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
			}
			if parseErr != nil {
				return fmt.Errorf("parse %s: %w", filename, parseErr)
			}
			return nil
		},
	}
}
