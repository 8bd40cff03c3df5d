package sema

import (
	"fmt"

	"glint/internal/ast"
	"glint/internal/types"
)

// synthesize infers exp's type with no surrounding context. The caller
// must use the returned node in place of the input: synthesize may
// substitute it (VarExp's inner Var may be replaced by a flattened
// VarName; CastExp peels redundant inner casts). Idempotent: if exp
// already carries a type, it is returned unchanged, since a prior call —
// typically the ExtraRet expansion sharing a call node — has already
// typed it.
func (c *Checker) synthesize(exp ast.Exp) ast.Exp {
	if exp.GetType() != nil {
		return exp
	}
	switch e := exp.(type) {
	case *ast.NilExp:
		e.Type = types.Nil
		return e
	case *ast.BoolExp:
		e.Type = types.Boolean
		return e
	case *ast.IntExp:
		e.Type = types.Integer
		return e
	case *ast.FloatExp:
		e.Type = types.Float
		return e
	case *ast.StringExp:
		e.Type = types.String
		return e
	case *ast.InitListExp:
		typeErrorf(e.Position, "initializer lists need a type hint; add a type annotation")
	case *ast.LambdaExp:
		typeErrorf(e.Position, "function literals need a type hint; add a type annotation")
	case *ast.VarExp:
		e.Var = c.checkVar(e.Var)
		e.Type = e.Var.GetType()
		return e
	case *ast.UnopExp:
		return c.synthesizeUnop(e)
	case *ast.BinopExp:
		return c.synthesizeBinop(e)
	case *ast.CallFuncExp:
		return c.synthesizeCallFunc(e)
	case *ast.CallMethodExp:
		typeErrorf(e.Position, "method calls are not implemented")
	case *ast.CastExp:
		return c.synthesizeCast(e)
	case *ast.ParenExp:
		e.Exp = c.synthesize(e.Exp)
		e.Type = e.Exp.GetType()
		return e
	case *ast.ExtraRetExp:
		return e
	case *ast.ToFloatExp:
		if e.Exp.GetType() != types.Integer {
			unreachable("ToFloat wraps a non-Integer expression")
		}
		e.Type = types.Float
		return e
	}
	unreachable("unknown expression kind")
	return nil
}

func (c *Checker) synthesizeUnop(e *ast.UnopExp) ast.Exp {
	operand := c.synthesize(e.Operand)
	e.Operand = operand
	ot := operand.GetType()
	switch e.Op {
	case "#":
		switch ot.(type) {
		case *types.Array:
		default:
			if ot != types.String {
				typeErrorf(e.Position, "'#' requires an array or a string, found '%s'", ot.String())
			}
		}
		e.Type = types.Integer
	case "-":
		if !types.IsNumeric(ot) {
			typeErrorf(e.Position, "unary '-' requires a number, found '%s'", ot.String())
		}
		e.Type = ot
	case "~":
		if ot != types.Integer {
			typeErrorf(e.Position, "'~' requires an integer, found '%s'", ot.String())
		}
		e.Type = types.Integer
	case "not":
		if !types.IsCondition(ot) {
			typeErrorf(e.Position, "'not' requires a boolean, found '%s'", ot.String())
		}
		e.Type = types.Boolean
	default:
		unreachable("unknown unary operator " + e.Op)
	}
	return e
}

func (c *Checker) synthesizeBinop(e *ast.BinopExp) ast.Exp {
	lhs := c.synthesize(e.Lhs)
	e.Lhs = lhs
	rhs := c.synthesize(e.Rhs)
	e.Rhs = rhs
	lt, rt := lhs.GetType(), rhs.GetType()

	switch e.Op {
	case "==", "~=":
		if mixedNumeric(lt, rt) {
			typeErrorf(e.Position, "comparisons between float and integers are not yet implemented")
		}
		if !types.Equals(lt, rt) {
			typeErrorf(e.Position, "cannot compare '%s' with '%s'", lt.String(), rt.String())
		}
		if c.strictFloatEquality && lt == types.Float && rt == types.Float {
			typeErrorf(e.Position, "comparing floats with '%s' is imprecise; round or use a tolerance instead", e.Op)
		}
		e.Type = types.Boolean
	case "<", ">", "<=", ">=":
		if mixedNumeric(lt, rt) {
			typeErrorf(e.Position, "comparisons between float and integers are not yet implemented")
		}
		ok := (lt == types.Integer && rt == types.Integer) ||
			(lt == types.Float && rt == types.Float) ||
			(lt == types.String && rt == types.String)
		if !ok {
			typeErrorf(e.Position, "cannot order '%s' and '%s'", lt.String(), rt.String())
		}
		e.Type = types.Boolean
	case "+", "-", "*", "%", "//":
		if !types.IsNumeric(lt) || !types.IsNumeric(rt) {
			typeErrorf(e.Position, "arithmetic '%s' requires numbers, found '%s' and '%s'", e.Op, lt.String(), rt.String())
		}
		if lt == types.Integer && rt == types.Integer {
			e.Type = types.Integer
		} else {
			e.Lhs = c.coerceArithmeticOperand(lhs)
			e.Rhs = c.coerceArithmeticOperand(rhs)
			e.Type = types.Float
		}
	case "/", "^":
		if !types.IsNumeric(lt) || !types.IsNumeric(rt) {
			typeErrorf(e.Position, "arithmetic '%s' requires numbers, found '%s' and '%s'", e.Op, lt.String(), rt.String())
		}
		e.Lhs = c.coerceArithmeticOperand(lhs)
		e.Rhs = c.coerceArithmeticOperand(rhs)
		e.Type = types.Float
	case "..":
		if lt != types.String || rt != types.String {
			typeErrorf(e.Position, "'..' requires strings, found '%s' and '%s'", lt.String(), rt.String())
		}
		e.Type = types.String
	case "and", "or":
		if !types.IsCondition(lt) {
			typeErrorf(e.Position, "'%s' requires a boolean on the left, found '%s'", e.Op, lt.String())
		}
		if !types.IsCondition(rt) {
			typeErrorf(e.Position, "'%s' requires a boolean on the right, found '%s'", e.Op, rt.String())
		}
		e.Type = rt
	case "|", "&", "<<", ">>":
		if lt != types.Integer || rt != types.Integer {
			typeErrorf(e.Position, "'%s' requires integers, found '%s' and '%s'", e.Op, lt.String(), rt.String())
		}
		e.Type = types.Integer
	default:
		unreachable("unknown binary operator " + e.Op)
	}
	return e
}

func mixedNumeric(a, b types.Type) bool {
	return types.IsNumeric(a) && types.IsNumeric(b) && a != b
}

func (c *Checker) synthesizeCallFunc(e *ast.CallFuncExp) ast.Exp {
	fn := c.synthesize(e.Fn)
	e.Fn = fn
	ft, ok := fn.GetType().(*types.Function)
	if !ok {
		typeErrorf(e.Position, "cannot call a value of type '%s'", fn.GetType().String())
	}
	args := c.expandMultiReturn(e.Args)
	if len(args) != len(ft.Args) {
		typeErrorf(e.Position, "function expects %d argument(s), got %d", len(ft.Args), len(args))
	}
	for i, a := range args {
		args[i] = c.verify(a, ft.Args[i], "in argument %d", i+1)
	}
	e.Args = args
	if len(ft.Rets) == 0 {
		e.Type = types.Void
	} else {
		e.Type = ft.Rets[0]
	}
	e.Types = ft.Rets
	return e
}

func (c *Checker) synthesizeCast(e *ast.CastExp) ast.Exp {
	target := c.resolveType(e.Target)
	inner := c.verify(e.Exp, target, "in cast")
	inner = peelRedundantCasts(inner, target)
	e.Exp = inner
	e.Type = target
	return e
}

// verify checks exp against an expected type, returning the node to use in
// its place: unchanged, wrapped in an implicit Cast, or (for Initlist and
// Lambda) fully re-derived from the expected type.
func (c *Checker) verify(exp ast.Exp, expected types.Type, ctxFormat string, ctxArgs ...interface{}) ast.Exp {
	switch e := exp.(type) {
	case *ast.InitListExp:
		return c.verifyInitList(e, expected)
	case *ast.LambdaExp:
		return c.verifyLambda(e, expected)
	case *ast.ParenExp:
		e.Exp = c.verify(e.Exp, expected, ctxFormat, ctxArgs...)
		e.Type = e.Exp.GetType()
		return e
	}

	typed := c.synthesize(exp)
	found := typed.GetType()
	if types.Equals(found, expected) {
		return typed
	}
	if types.Consistent(found, expected) {
		return &ast.CastExp{Position: typed.Pos(), Exp: typed, Target: nil, Type: expected}
	}
	ctx := formatCtx(ctxFormat, ctxArgs...)
	typeErrorf(typed.Pos(), "expected '%s' but found '%s'%s", expected.String(), found.String(), ctx)
	return nil
}

func formatCtx(format string, args ...interface{}) string {
	if format == "" {
		return ""
	}
	return " " + fmt.Sprintf(format, args...)
}

func (c *Checker) verifyInitList(e *ast.InitListExp, expected types.Type) ast.Exp {
	if expected == types.Module {
		if len(e.Fields) != 0 {
			typeErrorf(e.Position, "a module initializer must be empty; fields are added by assignment")
		}
		e.Type = types.Module
		return e
	}

	if arr, ok := expected.(*types.Array); ok {
		for i, f := range e.Fields {
			lf, ok := f.(*ast.ListField)
			if !ok {
				typeErrorf(f.Pos(), "named field not allowed in an array initializer")
			}
			lf.Value = c.verify(lf.Value, arr.Elem, "in array initializer element %d", i+1)
		}
		e.Type = expected
		return e
	}

	if types.IsIndexable(expected) {
		fields := types.Indices(expected)
		seen := make(map[string]bool, len(e.Fields))
		for _, f := range e.Fields {
			rf, ok := f.(*ast.RecField)
			if !ok {
				typeErrorf(f.Pos(), "positional field not allowed in this initializer")
			}
			if seen[rf.Name] {
				typeErrorf(rf.Position, "duplicate field '%s' in initializer", rf.Name)
			}
			seen[rf.Name] = true
			ft, ok := fields[rf.Name]
			if !ok {
				typeErrorf(rf.Position, "unknown field '%s' in initializer for '%s'", rf.Name, expected.String())
			}
			rf.Value = c.verify(rf.Value, ft, "in field '%s'", rf.Name)
		}
		for name := range fields {
			if !seen[name] {
				typeErrorf(e.Position, "required field '%s' is missing from initializer", name)
			}
		}
		e.Type = expected
		return e
	}

	typeErrorf(e.Position, "cannot use an initializer list where '%s' is expected", expected.String())
	return nil
}

func (c *Checker) verifyLambda(e *ast.LambdaExp, expected types.Type) ast.Exp {
	ft, ok := expected.(*types.Function)
	if !ok {
		typeErrorf(e.Position, "cannot use a function literal where '%s' is expected", expected.String())
	}
	if len(e.Params) != len(ft.Args) {
		typeErrorf(e.Position, "function literal expects %d parameter(s), got %d", len(ft.Args), len(e.Params))
	}
	c.withBlock(func() {
		for i, p := range e.Params {
			p.Type = ft.Args[i]
			c.scope.define(p.Name, &ast.LocalBind{Decl: p})
		}
		c.returnTypes = append(c.returnTypes, ft.Rets)
		c.checkBlockBody(e.Body)
		c.returnTypes = c.returnTypes[:len(c.returnTypes)-1]
	})
	e.Type = ft
	return e
}
