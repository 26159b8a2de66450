package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	if stdin != "" {
		root.SetIn(strings.NewReader(stdin))
	}
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestParseCommand(t *testing.T) {
	out, err := runCLI(t, "", "parse", "SELECT a FROM t")
	require.NoError(t, err)
	assert.Equal(t, "parsed 1 statement(s)\n", out)
}

func TestParseCommandMultipleStatements(t *testing.T) {
	out, err := runCLI(t, "", "parse", "SELECT 1; SELECT 2")
	require.NoError(t, err)
	assert.Equal(t, "parsed 2 statement(s)\n", out)
}

func TestParseCommandStdin(t *testing.T) {
	out, err := runCLI(t, "SELECT 1", "parse")
	require.NoError(t, err)
	assert.Equal(t, "parsed 1 statement(s)\n", out)
}

func TestParseCommandFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "query.sql")
	require.NoError(t, os.WriteFile(path, []byte("SELECT a FROM t"), 0o600))

	out, err := runCLI(t, "", "parse", "--file", path)
	require.NoError(t, err)
	assert.Equal(t, "parsed 1 statement(s)\n", out)
}

func TestParseCommandSyntaxError(t *testing.T) {
	_, err := runCLI(t, "", "parse", "FROB 1")
	require.Error(t, err)
	assert.Equal(t, "Expected: an SQL statement, found: FROB", err.Error())
}

func TestRenderCommand(t *testing.T) {
	out, err := runCLI(t, "", "render", "select a b from t")
	require.NoError(t, err)
	assert.Equal(t, "SELECT a AS b FROM t;\n", out)
}

func TestRenderCommandJSON(t *testing.T) {
	out, err := runCLI(t, "", "--output", "json", "render", "SELECT 1; SELECT 2")
	require.NoError(t, err)
	assert.Contains(t, out, `"SELECT 1"`)
	assert.Contains(t, out, `"SELECT 2"`)
	assert.Contains(t, out, `"dialect": "snowflake"`)
}

func TestTokensCommand(t *testing.T) {
	out, err := runCLI(t, "", "tokens", "SELECT 1")
	require.NoError(t, err)
	assert.Contains(t, out, "NUMBER")
	assert.Contains(t, out, "(2 tokens)")
}

func TestTokensCommandTrivia(t *testing.T) {
	out, err := runCLI(t, "", "tokens", "--trivia", "SELECT 1")
	require.NoError(t, err)
	assert.Contains(t, out, "WS")
	assert.Contains(t, out, "(3 tokens)")
}

func TestDialectsCommand(t *testing.T) {
	out, err := runCLI(t, "", "dialects")
	require.NoError(t, err)
	assert.Contains(t, out, "generic")
	assert.Contains(t, out, "snowflake")
	assert.Contains(t, out, "stage-references")
}

func TestDialectFlag(t *testing.T) {
	// semi-structured access only parses under snowflake
	_, err := runCLI(t, "", "--dialect", "generic", "parse", "SELECT v:a FROM t")
	require.Error(t, err)

	_, err = runCLI(t, "", "--dialect", "snowflake", "parse", "SELECT v:a FROM t")
	assert.NoError(t, err)
}

func TestUnknownDialect(t *testing.T) {
	_, err := runCLI(t, "", "--dialect", "mysql", "parse", "SELECT 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown dialect")
}

func TestDialectEnvVar(t *testing.T) {
	t.Setenv("FROSTQL_DIALECT", "generic")
	_, err := runCLI(t, "", "parse", "SELECT v:a FROM t")
	require.Error(t, err)
}

func TestMaxDepthFlag(t *testing.T) {
	sql := "SELECT " + strings.Repeat("(", 9) + "1" + strings.Repeat(")", 9)
	_, err := runCLI(t, "", "--max-depth", "10", "parse", sql)
	require.Error(t, err)

	_, err = runCLI(t, "", "parse", sql)
	assert.NoError(t, err)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frostql.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dialect: generic\n"), 0o600))

	_, err := runCLI(t, "", "--config", path, "parse", "SELECT v:a FROM t")
	require.Error(t, err)
}

func TestFlagOverridesConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frostql.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dialect: generic\n"), 0o600))

	_, err := runCLI(t, "", "--config", path, "--dialect", "snowflake", "parse", "SELECT v:a FROM t")
	assert.NoError(t, err)
}
