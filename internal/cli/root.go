// Package cli provides the command-line interface for frostql.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/frostline-labs/frostql/pkg/dialect"
	_ "github.com/frostline-labs/frostql/pkg/dialects/generic"
	_ "github.com/frostline-labs/frostql/pkg/dialects/snowflake"
	"github.com/frostline-labs/frostql/pkg/parser"
)

var (
	cfgFile string
	cfg     *Config
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// configKey is used to store config in context.
type configKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "frostql",
		Short: "frostql - Multi-dialect SQL parser and formatter",
		Long: `frostql parses SQL into a syntax tree and prints it back in a
canonical form. Dialects control quoting, comment syntax, operator
precedence, and feature-gated grammar such as semi-structured access
and stage references.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			var err error
			cfg, err = LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
			cmd.SetContext(ctx)

			if cfg.Verbose {
				if configFile := GetConfigFileUsed(); configFile != "" {
					fmt.Fprintf(os.Stderr, "Using config file: %s\n", configFile)
				}
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./frostql.yaml)")
	rootCmd.PersistentFlags().StringP("dialect", "d", "", "SQL dialect to parse with")
	rootCmd.PersistentFlags().Int("max-depth", 0, "Maximum expression and query nesting depth")
	rootCmd.PersistentFlags().Bool("unescape", false, "Interpret backslash escapes in string literals")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (text|json)")

	_ = rootCmd.RegisterFlagCompletionFunc("dialect", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return dialect.Names(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(NewParseCommand())
	rootCmd.AddCommand(NewRenderCommand())
	rootCmd.AddCommand(NewTokensCommand())
	rootCmd.AddCommand(NewDialectsCommand())
	rootCmd.AddCommand(NewVersionCommand(Version))
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey{}).(*Config); ok {
		return c
	}
	return &Config{
		Dialect:  DefaultDialect,
		MaxDepth: parser.DefaultRecursionLimit,
		Output:   DefaultOutput,
	}
}

// resolveDialect looks up a dialect by name in the global registry.
func resolveDialect(name string) (*dialect.Dialect, error) {
	d, ok := dialect.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown dialect %q (available: %s)", name, strings.Join(dialect.Names(), ", "))
	}
	return d, nil
}

// parseOptions translates config into parser options.
func parseOptions(cfg *Config) []parser.Option {
	return []parser.Option{
		parser.WithRecursionLimit(cfg.MaxDepth),
		parser.WithUnescape(cfg.Unescape),
	}
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for frostql.

To load completions:

Bash:
  $ source <(frostql completion bash)

Zsh:
  $ frostql completion zsh > "${fpath[1]}/_frostql"

Fish:
  $ frostql completion fish | source

PowerShell:
  PS> frostql completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
	return cmd
}
