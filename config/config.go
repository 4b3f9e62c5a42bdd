// Package config loads the antls configuration from defaults, an optional
// antls.{yaml,toml,json} file, ANTLS_* environment variables and command
// line flags, in increasing order of precedence.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	fileName  = "antls"
	envPrefix = "ANTLS"
)

// Transports accepted by server.transport.
var Transports = []string{"stdio", "tcp", "websocket", "nodejs"}

type Config struct {
	Server     ServerConfig     `json:"server" yaml:"server" toml:"server" mapstructure:"server"`
	Log        LogConfig        `json:"log" yaml:"log" toml:"log" mapstructure:"log"`
	Completion CompletionConfig `json:"completion" yaml:"completion" toml:"completion" mapstructure:"completion"`
}

type ServerConfig struct {
	Transport string `json:"transport" yaml:"transport" toml:"transport" mapstructure:"transport"`
	Address   string `json:"address" yaml:"address" toml:"address" mapstructure:"address"`
}

type LogConfig struct {
	Verbosity int    `json:"verbosity" yaml:"verbosity" toml:"verbosity" mapstructure:"verbosity"`
	File      string `json:"file" yaml:"file" toml:"file" mapstructure:"file"`
}

type CompletionConfig struct {
	TriggerCharacters []string `json:"triggerCharacters" yaml:"triggerCharacters" toml:"triggerCharacters" mapstructure:"triggerCharacters"`
	IncludeBuiltins   bool     `json:"includeBuiltins" yaml:"includeBuiltins" toml:"includeBuiltins" mapstructure:"includeBuiltins"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Transport: "stdio",
		},
		Completion: CompletionConfig{
			TriggerCharacters: []string{"_"},
			IncludeBuiltins:   true,
		},
	}
}

// FlagKeys maps command line flag names to the configuration keys they
// override.
var FlagKeys = map[string]string{
	"transport": "server.transport",
	"address":   "server.address",
	"verbose":   "log.verbosity",
	"log-file":  "log.file",
	"builtins":  "completion.includeBuiltins",
}

// Load builds the effective configuration. An empty path searches the
// working directory and $HOME/.config/antls; a missing file there is not an
// error. Flags present in flags and named in FlagKeys take precedence over
// every other source.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("server.transport", def.Server.Transport)
	v.SetDefault("server.address", def.Server.Address)
	v.SetDefault("log.verbosity", def.Log.Verbosity)
	v.SetDefault("log.file", def.Log.File)
	v.SetDefault("completion.triggerCharacters", def.Completion.TriggerCharacters)
	v.SetDefault("completion.includeBuiltins", def.Completion.IncludeBuiltins)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range FlagKeys {
			if flag := flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(fileName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", fileName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field values that viper cannot check on its own.
func (c *Config) Validate() error {
	switch c.Server.Transport {
	case "stdio", "nodejs":
	case "tcp", "websocket":
		if c.Server.Address == "" {
			return &Error{Field: "server.address", Message: fmt.Sprintf("required for %s transport", c.Server.Transport)}
		}
	default:
		return &Error{Field: "server.transport", Message: fmt.Sprintf("unknown transport %q, want one of %s", c.Server.Transport, strings.Join(Transports, ", "))}
	}
	if c.Log.Verbosity < 0 {
		return &Error{Field: "log.verbosity", Message: "must not be negative"}
	}
	for _, trigger := range c.Completion.TriggerCharacters {
		if trigger == "" {
			return &Error{Field: "completion.triggerCharacters", Message: "empty trigger character"}
		}
	}
	return nil
}

// Encode renders the configuration as yaml, toml or json.
func (c *Config) Encode(format string) ([]byte, error) {
	switch format {
	case "yaml", "yml":
		return yaml.Marshal(c)
	case "toml":
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf)
		enc.SetIndentTables(true)
		if err := enc.Encode(c); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "json":
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
	return nil, &Error{Field: "format", Message: fmt.Sprintf("unsupported format %q", format)}
}

// Error reports an invalid configuration value.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
