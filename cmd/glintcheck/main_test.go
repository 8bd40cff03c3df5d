package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glint/internal/ast"
	"glint/internal/sema"
)

// tempConfigPath returns a per-test .properties path inside t.TempDir(),
// which is already fresh and collision-free per test.
func tempConfigPath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "cfg.properties")
}

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := loadSettings("")
	require.NoError(t, err)
	assert.Equal(t, defaultSettings(), s)
}

func TestLoadSettings_PropertiesFile(t *testing.T) {
	path := tempConfigPath(t)
	content := "strict-float-equality = true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := loadSettings(path)
	require.NoError(t, err)
	assert.True(t, s.strictFloatEquality)
}

func TestLoadSettings_MissingFile(t *testing.T) {
	_, err := loadSettings(filepath.Join(t.TempDir(), "nonexistent.properties"))
	assert.Error(t, err)
}

func TestLoadSettings_BadStrictFloatEquality(t *testing.T) {
	path := tempConfigPath(t)
	require.NoError(t, os.WriteFile(path, []byte("strict-float-equality = not-a-bool\n"), 0o644))
	_, err := loadSettings(path)
	assert.Error(t, err)
}

func TestShouldColor_ExplicitModes(t *testing.T) {
	assert.True(t, shouldColor("always"))
	assert.False(t, shouldColor("never"))
}

func TestPrintDiagnostic_Plain(t *testing.T) {
	ce := &sema.CheckError{
		Pos:      ast.Position{File: "t.glint", Line: 3, Column: 0},
		Category: sema.TypeError,
		Message:  "expected 'integer' but found 'string'",
	}
	path := filepath.Join(t.TempDir(), "out.txt")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	printDiagnostic(f, ce, false)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "t.glint:3:1")
	assert.Contains(t, out, "type error")
	assert.Contains(t, out, "expected 'integer' but found 'string'")
	assert.NotContains(t, out, "\x1b[")
}

func TestPrintDiagnostic_Color(t *testing.T) {
	ce := &sema.CheckError{
		Pos:      ast.Position{File: "t.glint", Line: 1, Column: 1},
		Category: sema.ScopeError,
		Message:  "'z' is not declared",
	}
	path := filepath.Join(t.TempDir(), "out.txt")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	printDiagnostic(f, ce, true)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(data, []byte("\x1b[1;33m")), "scope error should be colorized yellow")
}

func TestDecodeProgram_S1RoundTrip(t *testing.T) {
	src := `{
		"mod_name": "m",
		"top_levels": [
			{
				"kind": "var",
				"pos": {"file": "t.glint", "line": 1, "column": 1},
				"decls": [{"pos": {"file": "t.glint", "line": 1, "column": 7}, "name": "m", "type": {"kind": "module", "pos": {"file": "t.glint", "line": 1, "column": 10}}}],
				"exps": [{"kind": "initlist", "pos": {"file": "t.glint", "line": 1, "column": 19}, "fields": []}]
			},
			{
				"kind": "stat",
				"pos": {"file": "t.glint", "line": 2, "column": 1},
				"stat": {
					"kind": "return",
					"pos": {"file": "t.glint", "line": 2, "column": 1},
					"exps": [{"kind": "var", "pos": {"file": "t.glint", "line": 2, "column": 8}, "var": {"kind": "name", "pos": {"file": "t.glint", "line": 2, "column": 8}, "name": "m"}}]
				}
			}
		]
	}`

	prog, err := decodeProgram([]byte(src))
	require.NoError(t, err)
	require.Equal(t, "m", prog.ModName)
	require.Len(t, prog.TopLevels, 2)

	decorated, checkErr := sema.CheckProgram(prog)
	require.NoError(t, checkErr)
	require.Len(t, decorated.TopLevels, 1)
}

func TestDecodeProgram_UnknownKind(t *testing.T) {
	_, err := decodeProgram([]byte(`{"mod_name": "m", "top_levels": [{"kind": "bogus"}]}`))
	assert.Error(t, err)
}
