package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/frostline-labs/frostql/pkg/parser"
)

// Defaults applied before any config source is consulted.
const (
	DefaultDialect = "snowflake"
	DefaultOutput  = "text"
)

// Config holds CLI settings resolved from defaults, the config file,
// environment variables, and flags.
type Config struct {
	Dialect  string `koanf:"dialect"`
	MaxDepth int    `koanf:"max_depth"`
	Unescape bool   `koanf:"unescape"`
	Output   string `koanf:"output"`
	Verbose  bool   `koanf:"verbose"`
}

var configFileUsed string

// findConfigFile finds the config file to use.
// Priority: explicit path > frostql.yaml > frostql.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"frostql.yaml", "frostql.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// LoadConfig loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"dialect":   DefaultDialect,
		"max_depth": parser.DefaultRecursionLimit,
		"unescape":  false,
		"output":    DefaultOutput,
		"verbose":   false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Load config file if one is present
	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Load environment variables (FROSTQL_ prefix)
	// Transform: FROSTQL_MAX_DEPTH -> max_depth
	if err := k.Load(env.Provider("FROSTQL_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "FROSTQL_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Load flags (highest priority)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			// Transform kebab-case to snake_case for config keys
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = parser.DefaultRecursionLimit
	}
	return &cfg, nil
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}
