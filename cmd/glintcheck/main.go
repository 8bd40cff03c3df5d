// Command glintcheck is the thin CLI front end around the semantic
// analysis pass. The pass itself never touches a file or a socket; this
// is the one place in the repository that does.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/cznic/mathutil"
	"github.com/jessevdk/go-flags"
	"github.com/magiconair/properties"
	"github.com/mattn/go-isatty"

	"glint/internal/ast"
	"glint/internal/sema"
)

type options struct {
	Input  string `short:"i" long:"input" required:"true" description:"path to a JSON-encoded program AST"`
	Config string `short:"c" long:"config" description:"path to a .properties config file"`
	Color  string `long:"color" choice:"auto" choice:"always" choice:"never" default:"auto" description:"colorize diagnostic output"`
}

// settings is the subset of the .properties config that glintcheck reads.
// strictFloatEquality is forwarded into sema.CheckOptions and actually
// changes checker behavior: see synthesizeBinop's "==" case.
type settings struct {
	strictFloatEquality bool
}

func defaultSettings() settings {
	return settings{strictFloatEquality: false}
}

func loadSettings(path string) (settings, error) {
	s := defaultSettings()
	if path == "" {
		return s, nil
	}
	p, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return s, fmt.Errorf("loading config %q: %w", path, err)
	}
	if v, ok := p.Get("strict-float-equality"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return s, fmt.Errorf("config strict-float-equality: %w", err)
		}
		s.strictFloatEquality = b
	}
	return s, nil
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		os.Exit(1)
	}

	cfg, err := loadSettings(opts.Config)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	data, err := os.ReadFile(opts.Input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	prog, err := decodeProgram(data)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	color := shouldColor(opts.Color)

	decorated, checkErr := sema.CheckProgram(prog, sema.CheckOptions{StrictFloatEquality: cfg.strictFloatEquality})
	if checkErr != nil {
		printDiagnostic(os.Stderr, checkErr, color)
		os.Exit(1)
	}

	fmt.Printf("ok: module %q, %d top-level item(s) remain after checking\n",
		decorated.ModName, len(decorated.TopLevels))
}

func shouldColor(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	}
}

func printDiagnostic(w *os.File, err error, color bool) {
	ce, ok := err.(*sema.CheckError)
	if !ok {
		fmt.Fprintln(w, err)
		return
	}
	// Clamp the reported column into 1..4096: a position without column
	// information carries column 0, and an unusually long line shouldn't
	// report a column past a reasonable terminal width.
	col := mathutil.Clamp(ce.Pos.Column, 1, 4096)
	loc := ast.Position{File: ce.Pos.File, Line: ce.Pos.Line, Column: col}

	if !color {
		fmt.Fprintf(w, "%s: %s: %s\n", loc.String(), ce.Category, ce.Message)
		return
	}
	const (
		red    = "\x1b[1;31m"
		yellow = "\x1b[1;33m"
		reset  = "\x1b[0m"
	)
	categoryColor := yellow
	if ce.Category == sema.TypeError {
		categoryColor = red
	}
	fmt.Fprintf(w, "%s: %s%s%s: %s\n", loc.String(), categoryColor, ce.Category, reset, ce.Message)
}
