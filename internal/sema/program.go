// Package sema implements the semantic analysis pass: a single-threaded,
// synchronous walk that turns a parsed program AST into a decorated one,
// or aborts with the first diagnostic it encounters.
package sema

import (
	"glint/internal/ast"
	"glint/internal/builtins"
	"glint/internal/types"
)

// Checker is the one-shot analysis instance CheckProgram creates and
// drives. Nothing about it is package-level mutable state: a fresh value
// is created per invocation and discarded afterward.
type Checker struct {
	scope               *scope
	returnTypes         [][]types.Type
	mainModName         string
	mainBound           bool
	strictFloatEquality bool
}

// CheckOptions configures one CheckProgram run. The zero value matches the
// pass's historical, option-free behavior.
type CheckOptions struct {
	// StrictFloatEquality, when true, rejects "==" and "~=" between two
	// Float operands as imprecise (see synthesizeBinop); when false, float
	// equality is synthesized the same as any other same-type comparison.
	StrictFloatEquality bool
}

// CheckProgram is the pass's only entry point. On success it returns the
// decorated program and a nil error; on a user error it returns (nil,
// error) with no partial decoration exposed. Any panic value other than
// *CheckError signals a compiler bug and is re-panicked rather than
// reported as a diagnostic. At most one CheckOptions may be given; a
// second is ignored.
func CheckProgram(prog *ast.Program, opts ...CheckOptions) (decorated *ast.Program, err error) {
	var opt CheckOptions
	if len(opts) > 0 {
		opt = opts[0]
	}
	c := &Checker{scope: newScope(nil), strictFloatEquality: opt.StrictFloatEquality}
	defer func() {
		if r := recover(); r != nil {
			if ce, ok := r.(*CheckError); ok {
				decorated, err = nil, ce
				return
			}
			panic(r)
		}
	}()

	c.mainModName = prog.ModName
	c.installPrimitives()
	c.installBuiltins()
	c.runDriver(prog)
	return prog, nil
}

func (c *Checker) installPrimitives() {
	c.scope.define("any", &ast.TypeBind{Type: types.Any})
	c.scope.define("boolean", &ast.TypeBind{Type: types.Boolean})
	c.scope.define("float", &ast.TypeBind{Type: types.Float})
	c.scope.define("integer", &ast.TypeBind{Type: types.Integer})
	// "string" is deliberately not a TypeBind: it is a non-main module, so
	// that "string.X" resolves through qualified-name flattening. The type
	// resolver maps the bare name "string" to types.String when it appears
	// in a type-annotation position (see resolve.go).
	c.scope.define("string", &ast.ModuleBind{Name: "string", IsMain: false})
}

func (c *Checker) installBuiltins() {
	for name, fn := range builtins.Functions {
		c.scope.define(name, &ast.BuiltinBind{Name: name, Type: fn})
	}
	for name := range builtins.Modules {
		c.scope.define(name, &ast.ModuleBind{Name: name, IsMain: false})
	}
}

type kindClass int

const (
	classVar kindClass = iota
	classFunc
	classType
	classStat
)

func classify(tl ast.TopLevel) kindClass {
	switch tl.(type) {
	case *ast.TLVar:
		return classVar
	case *ast.TLFunc:
		return classFunc
	case *ast.TLTypeAlias, *ast.TLRecord:
		return classType
	case *ast.TLStat:
		return classStat
	}
	unreachable("unknown top-level item kind")
	return 0
}

type letrecGroup struct {
	class kindClass
	items []ast.TopLevel
}

// partition groups consecutive top-level items of the same kind class.
// Items within a group may reference each other for potential future
// mutual recursion; across groups, order is definitional.
func partition(tls []ast.TopLevel) []letrecGroup {
	var groups []letrecGroup
	for _, tl := range tls {
		cls := classify(tl)
		if n := len(groups); n > 0 && groups[n-1].class == cls {
			groups[n-1].items = append(groups[n-1].items, tl)
		} else {
			groups = append(groups, letrecGroup{class: cls, items: []ast.TopLevel{tl}})
		}
	}
	return groups
}

func (c *Checker) runDriver(prog *ast.Program) {
	groups := partition(prog.TopLevels)
	for _, g := range groups {
		if g.class == classType {
			c.checkTypeGroup(g.items)
		}
	}

	n := len(prog.TopLevels)
	if n == 0 {
		unreachable("empty program")
	}
	for i := 0; i < n-1; i++ {
		c.checkTopLevelItem(prog.TopLevels[i])
	}

	last := prog.TopLevels[n-1]
	lastStat, ok := last.(*ast.TLStat)
	if !ok {
		typeErrorf(last.Pos(), "the program must end with a return statement")
	}
	ret, ok := lastStat.Stat.(*ast.ReturnStat)
	if !ok {
		typeErrorf(lastStat.Pos(), "the program must end with a return statement")
	}

	c.returnTypes = append(c.returnTypes, []types.Type{types.Module})
	c.checkReturnStat(ret)
	c.returnTypes = c.returnTypes[:len(c.returnTypes)-1]

	prog.TopLevels = prog.TopLevels[:n-1]
}

func (c *Checker) checkTypeGroup(items []ast.TopLevel) {
	for _, tl := range items {
		switch t := tl.(type) {
		case *ast.TLTypeAlias:
			typ := c.resolveType(t.TypeNode)
			c.scope.define(t.Name, &ast.TypeBind{Type: typ})
		case *ast.TLRecord:
			rec := types.NewRecord(t.Name)
			for _, f := range t.Fields {
				if _, dup := rec.FieldTypes[f.Name]; dup {
					typeErrorf(f.Position, "duplicate field '%s' in record '%s'", f.Name, t.Name)
				}
				ft := c.resolveType(f.TypeNode)
				f.Type = ft
				rec.FieldNames = append(rec.FieldNames, f.Name)
				rec.FieldTypes[f.Name] = ft
			}
			// The record's own name is bound only now, after every field
			// has been resolved: a field referring back to the record
			// itself ("record Node next: Node end") sees an undeclared
			// name and fails with a scope error, rather than silently
			// succeeding. Self-referential records are unsupported.
			t.Type = rec
			c.scope.define(t.Name, &ast.TypeBind{Type: rec})
		default:
			unreachable("non-type item in a type letrec group")
		}
	}
}

func (c *Checker) checkTopLevelItem(tl ast.TopLevel) {
	switch t := tl.(type) {
	case *ast.TLVar:
		t.Exps = c.checkDeclCommon(t.Decls, t.Exps, true)
	case *ast.TLFunc:
		c.bindFunction(t.Decl, t.Params, t.RetTypes, t.Body)
	case *ast.TLTypeAlias, *ast.TLRecord:
		// Resolved already, during the type letrec group pass.
	case *ast.TLStat:
		if _, isReturn := t.Stat.(*ast.ReturnStat); isReturn {
			typeErrorf(t.Position, "a return statement must be the last item in the program")
		}
		c.checkStat(t.Stat)
	default:
		unreachable("unknown top-level item kind")
	}
}
