package cli

import (
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/frostline-labs/frostql/pkg/parser"
	"github.com/frostline-labs/frostql/pkg/token"
)

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	var (
		filePath string
		trivia   bool
	)

	cmd := &cobra.Command{
		Use:   "tokens [sql...]",
		Short: "Tokenize SQL and list the tokens",
		Long: `Tokenize SQL text and list each token with its type, literal,
and source position. Whitespace and comments are hidden unless
--trivia is given.`,
		Example: `  # Show the tokens of a statement
  frostql tokens "SELECT a FROM t"

  # Include whitespace and comment trivia
  frostql tokens --trivia "SELECT 1 -- note"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, args, filePath, trivia)
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Read SQL from a file")
	cmd.Flags().BoolVar(&trivia, "trivia", false, "Include whitespace and comment tokens")

	return cmd
}

func runTokens(cmd *cobra.Command, args []string, filePath string, trivia bool) error {
	cfg := GetConfig(cmd.Context())

	d, err := resolveDialect(cfg.Dialect)
	if err != nil {
		return err
	}

	sql, err := readSQL(cmd, args, filePath)
	if err != nil {
		return err
	}

	toks, err := parser.Lex(sql, d, parseOptions(cfg)...)
	if err != nil {
		return err
	}

	kept := toks[:0:0]
	for _, tok := range toks {
		if tok.Type == token.EOF {
			continue
		}
		if !trivia && token.IsTrivia(tok.Type) {
			continue
		}
		kept = append(kept, tok)
	}

	w := cmd.OutOrStdout()
	if cfg.Output == "json" {
		type tokenOut struct {
			Type    string `json:"type"`
			Literal string `json:"literal"`
			Line    int    `json:"line"`
			Column  int    `json:"column"`
		}
		out := make([]tokenOut, len(kept))
		for i, tok := range kept {
			out[i] = tokenOut{
				Type:    tok.Type.String(),
				Literal: tok.Literal,
				Line:    tok.Span.Start.Line,
				Column:  tok.Span.Start.Column,
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Type", "Literal", "Line", "Col"})
	for i, tok := range kept {
		t.AppendRow(table.Row{i, tok.Type.String(), tok.Literal, tok.Span.Start.Line, tok.Span.Start.Column})
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d tokens)\n", len(kept))
	return nil
}
