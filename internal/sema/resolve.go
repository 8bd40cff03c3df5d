package sema

import (
	"glint/internal/ast"
	"glint/internal/types"
)

// resolveType converts a syntactic type node into a semantic type,
// recursively. It is the only place that special-cases the dual role of
// the name "string": a built-in module for "string.X" access, but the
// String type when it appears in a type-annotation position.
func (c *Checker) resolveType(node ast.TypeNode) types.Type {
	switch n := node.(type) {
	case *ast.NilTypeNode:
		return types.Nil
	case *ast.ModuleTypeNode:
		return types.Module
	case *ast.NameTypeNode:
		b := c.scope.find(n.Name)
		if b == nil {
			scopeErrorf(n.Position, "type '%s' is not declared", n.Name)
		}
		switch bind := b.(type) {
		case *ast.TypeBind:
			return bind.Type
		case *ast.ModuleBind:
			if bind.Name == "string" {
				return types.String
			}
			typeErrorf(n.Position, "'%s' is a module, not a type", n.Name)
		default:
			typeErrorf(n.Position, "'%s' is not a type", n.Name)
		}
	case *ast.ArrayTypeNode:
		return &types.Array{Elem: c.resolveType(n.Elem)}
	case *ast.TableTypeNode:
		tbl := types.NewTable()
		for _, f := range n.Fields {
			if _, dup := tbl.Fields[f.Name]; dup {
				typeErrorf(f.Position, "duplicate field '%s' in table type", f.Name)
			}
			ft := c.resolveType(f.TypeNode)
			f.Type = ft
			tbl.Fields[f.Name] = ft
		}
		return tbl
	case *ast.FunctionTypeNode:
		fn := &types.Function{}
		for _, a := range n.Args {
			fn.Args = append(fn.Args, c.resolveType(a))
		}
		for _, r := range n.Rets {
			fn.Rets = append(fn.Rets, c.resolveType(r))
		}
		return fn
	}
	unreachable("unknown type node kind")
	return nil
}
