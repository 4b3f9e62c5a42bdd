package main

import (
	"fmt"
	"io"
	"reflect"

	"github.com/spf13/cobra"
	"github.com/typedant/antls/ant/grammar"
)

func newGrammarCmd() *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:           "grammar",
		Short:         "Print the TypedAnt EBNF grammar",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verify {
				if err := grammar.Verify(); err != nil {
					printErrors(cmd.ErrOrStderr(), err)
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "grammar ok (start production %s)\n", grammar.Start)
				return nil
			}
			_, err := io.WriteString(cmd.OutOrStdout(), grammar.Source)
			return err
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "check that every production is defined and reachable instead of printing")

	return cmd
}

// printErrors prints each error of an ebnf error list on its own line.
func printErrors(w io.Writer, err error) {
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(w, v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(w, err)
	}
}
