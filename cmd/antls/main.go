package main

import (
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	"github.com/typedant/antls/config"

	_ "github.com/tliron/commonlog/simple"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "0.1.0"

var log = commonlog.GetLogger("antls")

type globalOptions struct {
	configPath string
	verbose    int
	logFile    string
}

func main() {
	var opts globalOptions

	rootCmd := &cobra.Command{
		Use:     "antls",
		Short:   "Language server and tools for TypedAnt",
		Version: version,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "configuration file (default: antls.{yaml,toml,json} in . or $HOME/.config/antls)")
	rootCmd.PersistentFlags().CountVarP(&opts.verbose, "verbose", "v", "increase log verbosity")
	rootCmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newLSPCmd(&opts))
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newCompleteCmd(&opts))
	rootCmd.AddCommand(newGrammarCmd())
	rootCmd.AddCommand(newConfigCmd(&opts))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the configuration with cmd's flags bound on top and sets
// up logging from it.
func loadConfig(cmd *cobra.Command, opts *globalOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath, cmd.Flags())
	if err != nil {
		return nil, err
	}

	var path *string
	if cfg.Log.File != "" {
		path = &cfg.Log.File
	}
	commonlog.Configure(cfg.Log.Verbosity, path)
	log.Infof("antls %s session %s", version, uuid.NewString())

	return cfg, nil
}
