package main

import (
	"github.com/spf13/cobra"
	"github.com/typedant/antls/langserver"
)

func newLSPCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			server := langserver.NewServer(langserver.Options{
				Version:           version,
				TriggerCharacters: cfg.Completion.TriggerCharacters,
				IncludeBuiltins:   cfg.Completion.IncludeBuiltins,
			})
			return server.Run(cfg.Server.Transport, cfg.Server.Address)
		},
	}

	cmd.Flags().String("transport", "stdio", "transport to serve on: stdio, tcp, websocket or nodejs")
	cmd.Flags().String("address", "", "listen address for the tcp and websocket transports")
	cmd.Flags().Bool("builtins", true, "offer builtin functions as completion candidates")

	return cmd
}
