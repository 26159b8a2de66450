package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/frostline-labs/frostql/pkg/parser"
	"github.com/frostline-labs/frostql/pkg/render"
)

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "render [sql...]",
		Short: "Parse SQL and print its canonical form",
		Long: `Parse SQL text and print the canonical rendering of each statement.

Keywords are uppercased, aliases gain an explicit AS, redundant
parentheses are dropped, and equivalent spellings collapse to one
form, so two queries that parse to the same tree render identically.`,
		Example: `  # Canonicalize a statement
  frostql render "select a b from t"

  # Canonicalize a file of statements
  frostql render --file queries.sql

  # Emit JSON with one entry per statement
  frostql render "SELECT 1; SELECT 2" --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, filePath)
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Read SQL from a file")

	return cmd
}

func runRender(cmd *cobra.Command, args []string, filePath string) error {
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
		rendered := make([]string, len(stmts))
		for i, s := range stmts {
			rendered[i] = render.Statement(s)
		}
		out := struct {
			Dialect    string   `json:"dialect"`
			Statements []string `json:"statements"`
		}{Dialect: cfg.Dialect, Statements: rendered}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for _, s := range stmts {
		_, _ = fmt.Fprintf(w, "%s;\n", render.Statement(s))
	}
	return nil
}
