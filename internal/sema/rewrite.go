package sema

import (
	"glint/internal/ast"
	"glint/internal/types"
)

// expandMultiReturn implements rewrite rule 3: whenever a list of
// expressions (declaration RHS, assignment RHS, call arguments, return
// operands, for-in operands) ends in a call expression, the call is typed
// first, and one ExtraRetExp is appended per additional return value the
// callee produces beyond its own slot.
//
// Only the trailing element is touched, and only when it is syntactically a
// call: every other element (including a non-call trailing one) is left
// exactly as given, for the caller to synthesize or verify itself. An
// InitListExp or LambdaExp needs a type hint from its caller and must reach
// verify's type switch unsynthesized; eagerly synthesizing it here, as a
// plain list element, would panic before that hint is ever applied.
func (c *Checker) expandMultiReturn(exps []ast.Exp) []ast.Exp {
	if len(exps) == 0 {
		return exps
	}
	out := append([]ast.Exp(nil), exps...)
	last := out[len(out)-1]
	if !isCallExp(last) {
		return out
	}
	typed := c.synthesize(last)
	out[len(out)-1] = typed
	rets := callReturnTypes(typed)
	for i := 1; i < len(rets); i++ {
		out = append(out, &ast.ExtraRetExp{
			Position: typed.Pos(),
			Call:     typed,
			Index:    i,
			Type:     rets[i],
		})
	}
	return out
}

// isCallExp reports whether exp is syntactically a call, before any
// synthesis has run.
func isCallExp(exp ast.Exp) bool {
	switch exp.(type) {
	case *ast.CallFuncExp, *ast.CallMethodExp:
		return true
	}
	return false
}

// callReturnTypes reports the full return-tuple of exp if it is a call
// expression, or nil otherwise.
func callReturnTypes(exp ast.Exp) []types.Type {
	switch e := exp.(type) {
	case *ast.CallFuncExp:
		return e.Types
	case *ast.CallMethodExp:
		return e.Types
	}
	return nil
}

// defaultForStep implements rewrite rule 4: when a numeric for-loop omits
// its step, synthesize a literal 1 (if the control variable is Integer) or
// 1.0 (if Float), sharing the limit expression's source location.
func defaultForStep(controlType types.Type, limitPos ast.Position) ast.Exp {
	if controlType == types.Float {
		return &ast.FloatExp{Position: limitPos, Value: 1.0, Type: types.Float}
	}
	return &ast.IntExp{Position: limitPos, Value: 1, Type: types.Integer}
}

// coerceArithmeticOperand implements rewrite rule 5: when one side of a
// mixed integer/float arithmetic operation is Integer and the other Float,
// the Integer side is wrapped in a ToFloatExp before the operation is
// considered Float-valued.
func (c *Checker) coerceArithmeticOperand(exp ast.Exp) ast.Exp {
	if exp.GetType() != types.Integer {
		return exp
	}
	return &ast.ToFloatExp{Position: exp.Pos(), Exp: exp, Type: types.Float}
}

// peelRedundantCasts implements the cast-peeling rule inside CastExp
// synthesis: while the inner expression is itself a cast with no explicit
// target and the same resolved type as the outer cast, replace it with its
// own inner expression. The outer cast is always kept, since it carries
// the user-written source location.
func peelRedundantCasts(exp ast.Exp, outerType types.Type) ast.Exp {
	for {
		inner, ok := exp.(*ast.CastExp)
		if !ok || inner.Target != nil || !types.Equals(inner.Type, outerType) {
			return exp
		}
		exp = inner.Exp
	}
}
