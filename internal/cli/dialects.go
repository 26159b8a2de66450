package cli

import (
	"encoding/json"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/frostline-labs/frostql/pkg/dialect"
)

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List the registered SQL dialects",
		Long: `List every dialect in the registry along with its quoting
characters, comment prefixes, and enabled grammar features.`,
		RunE: runDialects,
	}
}

// featureNames returns the names of the enabled feature toggles.
func featureNames(f dialect.Features) []string {
	var names []string
	add := func(on bool, name string) {
		if on {
			names = append(names, name)
		}
	}
	add(f.OuterJoinMarker, "outer-join-marker")
	add(f.SemiStructuredAccess, "semi-structured-access")
	add(f.SingleSubqueryFuncArg, "subquery-func-arg")
	add(f.TrailingCommas, "trailing-commas")
	add(f.DoubleDotNotation, "double-dot-notation")
	add(f.AsofJoin, "asof-join")
	add(f.NestedJoinsWithoutParens, "nested-joins")
	add(f.ConnectByRoot, "connect-by-root")
	add(f.DollarQuotedStrings, "dollar-strings")
	add(f.StageReferences, "stage-references")
	add(f.IdentifierFunction, "identifier-function")
	add(f.DollarInIdent, "dollar-in-ident")
	add(f.TopN, "top-n")
	return names
}

func runDialects(cmd *cobra.Command, _ []string) error {
	cfg := GetConfig(cmd.Context())
	w := cmd.OutOrStdout()

	if cfg.Output == "json" {
		type dialectOut struct {
			Name     string   `json:"name"`
			Quotes   string   `json:"quotes"`
			Comments []string `json:"comments"`
			Features []string `json:"features"`
		}
		var out []dialectOut
		for _, name := range dialect.Names() {
			d, _ := dialect.Get(name)
			out = append(out, dialectOut{
				Name:     d.Name,
				Quotes:   string(d.QuoteChars()),
				Comments: d.CommentPrefixes(),
				Features: featureNames(d.Features()),
			})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Quotes", "Comments", "Features"})
	for _, name := range dialect.Names() {
		d, _ := dialect.Get(name)
		t.AppendRow(table.Row{
			d.Name,
			string(d.QuoteChars()),
			strings.Join(d.CommentPrefixes(), " "),
			strings.Join(featureNames(d.Features()), "\n"),
		})
	}
	t.Render()
	return nil
}
