package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/frostline-labs/frostql/pkg/parser"
)

// readSQL collects the SQL input for a command: from a file when
// --file is set, from the positional arguments when present, and
// from stdin otherwise.
func readSQL(cmd *cobra.Command, args []string, filePath string) (string, error) {
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", filePath, err)
		}
		return string(data), nil
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "parse [sql...]",
		Short: "Parse SQL and report syntax errors",
		Long: `Parse SQL text and report the first syntax error, if any.

The input is taken from the arguments, from --file, or from stdin.
A successful parse prints the number of statements found.`,
		Example: `  # Parse a statement given as an argument
  frostql parse "SELECT a FROM t"

  # Parse a file using the generic dialect
  frostql parse --dialect generic --file query.sql

  # Parse from stdin
  cat query.sql | frostql parse`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, filePath)
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Read SQL from a file")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, filePath string) error {
	cfg := GetConfig(cmd.Context())

	d, err := resolveDialect(cfg.Dialect)
	if err != nil {
		return err
	}

	sql, err := readSQL(cmd, args, filePath)
	if err != nil {
		return err
	}

	stmts, err := parser.Parse(sql, d, parseOptions(cfg)...)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if cfg.Output == "json" {
		out := struct {
			Dialect    string `json:"dialect"`
			Statements int    `json:"statements"`
		}{Dialect: cfg.Dialect, Statements: len(stmts)}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	_, _ = fmt.Fprintf(w, "parsed %d statement(s)\n", len(stmts))
	return nil
}
