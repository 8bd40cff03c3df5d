package sema

import (
	"glint/internal/ast"
	"glint/internal/builtins"
	"glint/internal/types"
)

// checkVar resolves a Var node. The caller must use the returned Var in
// place of the input: VarDot may be replaced outright by a flattened
// VarName (rewrite rule 1).
func (c *Checker) checkVar(v ast.Var) ast.Var {
	switch vn := v.(type) {
	case *ast.VarName:
		return c.checkVarName(vn)
	case *ast.VarDot:
		return c.checkVarDot(vn)
	case *ast.VarBracket:
		return c.checkVarBracket(vn)
	}
	unreachable("unknown var kind")
	return nil
}

func (c *Checker) checkVarName(v *ast.VarName) ast.Var {
	b := c.scope.find(v.Name)
	if b == nil {
		scopeErrorf(v.Position, "variable '%s' is not declared", v.Name)
	}
	v.Bind = b
	switch bind := b.(type) {
	case *ast.TypeBind:
		typeErrorf(v.Position, "'%s' is a type, not a value", v.Name)
	case *ast.LocalBind:
		v.Type = bind.Decl.Type
	case *ast.GlobalBind:
		v.Type = bind.Decl.Type
	case *ast.FunctionBind:
		v.Type = bind.Decl.Type
	case *ast.BuiltinBind:
		v.Type = bind.Type
	case *ast.ModuleBind:
		if bind.IsMain {
			v.Type = types.Module
		} else {
			typeErrorf(v.Position, "cannot reference module '%s' without dot notation", v.Name)
		}
	default:
		unreachable("unknown binding kind")
	}
	return v
}

// checkVarDot implements rewrite rule 1, qualified-name flattening. A bare
// module name is only ever valid as the base of a dot: checkVarName would
// reject it outright, so a module base is detected and flattened before
// the base is synthesized at all, rather than after.
func (c *Checker) checkVarDot(v *ast.VarDot) ast.Var {
	if vn, ok := baseVarName(v.Base); ok {
		if mb, ok := c.scope.find(vn.Name).(*ast.ModuleBind); ok {
			vn.Bind = mb
			return c.flattenModuleDot(v, mb)
		}
	}

	baseExp := c.synthesize(v.Base)
	v.Base = baseExp
	baseType := baseExp.GetType()
	if !types.IsIndexable(baseType) {
		typeErrorf(v.Position, "cannot index a value of type '%s'", baseType.String())
	}
	fields := types.Indices(baseType)
	ft, ok := fields[v.Field]
	if !ok {
		typeErrorf(v.Position, "unknown field '%s' of '%s'", v.Field, baseType.String())
	}
	v.Type = ft
	return v
}

func (c *Checker) flattenModuleDot(v *ast.VarDot, mb *ast.ModuleBind) ast.Var {
	combined := mb.Name + "." + v.Field
	if mb.IsMain {
		b := c.scope.find(combined)
		if b == nil {
			scopeErrorf(v.Position, "'%s' is not declared", combined)
		}
		return &ast.VarName{Position: v.Position, Name: combined, Bind: b, Type: bindingType(b)}
	}
	fn, ok := builtins.Lookup(combined)
	if !ok {
		typeErrorf(v.Position, "unknown function '%s'", combined)
	}
	return &ast.VarName{
		Position: v.Position,
		Name:     combined,
		Bind:     &ast.BuiltinBind{Name: combined, Type: fn},
		Type:     fn,
	}
}

func (c *Checker) checkVarBracket(v *ast.VarBracket) ast.Var {
	base := c.synthesize(v.Base)
	v.Base = base
	arr, ok := base.GetType().(*types.Array)
	if !ok {
		typeErrorf(v.Position, "expected an array, found '%s'", base.GetType().String())
	}
	v.Index = c.verify(v.Index, types.Integer, "in array index")
	v.Type = arr.Elem
	return v
}

// baseVarName reports whether exp is a bare name reference, as opposed to a
// more complex expression, so checkVarDot can special-case a module base.
func baseVarName(exp ast.Exp) (*ast.VarName, bool) {
	ve, ok := exp.(*ast.VarExp)
	if !ok {
		return nil, false
	}
	vn, ok := ve.Var.(*ast.VarName)
	return vn, ok
}

// bindingType extracts the value type a Binding carries. It is used when a
// binding is discovered indirectly, e.g. by combined-name lookup during
// qualified-name flattening, rather than through checkVarName.
func bindingType(b ast.Binding) types.Type {
	switch bind := b.(type) {
	case *ast.LocalBind:
		return bind.Decl.Type
	case *ast.GlobalBind:
		return bind.Decl.Type
	case *ast.FunctionBind:
		return bind.Decl.Type
	case *ast.BuiltinBind:
		return bind.Type
	case *ast.ModuleBind:
		if bind.IsMain {
			return types.Module
		}
	}
	unreachable("binding has no value type")
	return nil
}
