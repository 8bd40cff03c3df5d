package sema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glint/internal/ast"
	"glint/internal/types"
)

func pos(line, col int) ast.Position {
	return ast.Position{File: "t.glint", Line: line, Column: col}
}

// S1: local m: module = {}; return m.
func TestCheckProgram_S1_Smoke(t *testing.T) {
	returnStat := &ast.ReturnStat{
		Position: pos(2, 1),
		Exps:     []ast.Exp{&ast.VarExp{Position: pos(2, 8), Var: &ast.VarName{Position: pos(2, 8), Name: "m"}}},
	}
	prog := &ast.Program{
		ModName: "m",
		TopLevels: []ast.TopLevel{
			&ast.TLVar{
				Position: pos(1, 1),
				Decls:    []*ast.Decl{{Position: pos(1, 7), Name: "m", TypeNode: &ast.ModuleTypeNode{Position: pos(1, 10)}}},
				Exps:     []ast.Exp{&ast.InitListExp{Position: pos(1, 19)}},
			},
			&ast.TLStat{Position: pos(2, 1), Stat: returnStat},
		},
	}

	decorated, err := CheckProgram(prog)
	require.NoError(t, err)
	require.Len(t, decorated.TopLevels, 1, "the trailing return item is removed from the final tree")

	tlvar := decorated.TopLevels[0].(*ast.TLVar)
	assert.Equal(t, types.Module, tlvar.Decls[0].Type)

	retVar := returnStat.Exps[0].(*ast.VarExp)
	assert.Equal(t, types.Module, retVar.GetType())
	mb, ok := retVar.Var.(*ast.VarName).Bind.(*ast.ModuleBind)
	require.True(t, ok)
	assert.True(t, mb.IsMain)
}

// S3: if 1 == 1.0 then ... end rejected as "not yet implemented".
func TestCheckProgram_S3_MixedEqualityRejected(t *testing.T) {
	cond := &ast.BinopExp{
		Position: pos(1, 4),
		Op:       "==",
		Lhs:      &ast.IntExp{Position: pos(1, 4), Value: 1},
		Rhs:      &ast.FloatExp{Position: pos(1, 9), Value: 1.0},
	}
	prog := singleStatProgram(&ast.IfStat{
		Position: pos(1, 1),
		Arms:     []ast.IfArm{{Cond: cond, Body: &ast.BlockStat{Position: pos(1, 15)}}},
	})

	_, err := CheckProgram(prog)
	require.Error(t, err)
	ce := err.(*CheckError)
	assert.Equal(t, TypeError, ce.Category)
	assert.Contains(t, ce.Message, "comparisons between float and integers are not yet implemented")
}

// S2: function f(x: integer, y: float): float return x + y end.
func TestCheckProgram_S2_ArithmeticCoercion(t *testing.T) {
	xRef := &ast.VarExp{Position: pos(1, 28), Var: &ast.VarName{Position: pos(1, 28), Name: "x"}}
	yRef := &ast.VarExp{Position: pos(1, 32), Var: &ast.VarName{Position: pos(1, 32), Name: "y"}}
	add := &ast.BinopExp{Position: pos(1, 28), Op: "+", Lhs: xRef, Rhs: yRef}
	fn := &ast.TLFunc{
		Position: pos(1, 1),
		Decl:     &ast.Decl{Position: pos(1, 10), Name: "f"},
		Params: []*ast.Decl{
			{Position: pos(1, 12), Name: "x", TypeNode: &ast.NameTypeNode{Position: pos(1, 15), Name: "integer"}},
			{Position: pos(1, 24), Name: "y", TypeNode: &ast.NameTypeNode{Position: pos(1, 27), Name: "float"}},
		},
		RetTypes: []ast.TypeNode{&ast.NameTypeNode{Position: pos(1, 36), Name: "float"}},
		Body: &ast.BlockStat{
			Position: pos(1, 42),
			Body:     []ast.Stat{&ast.ReturnStat{Position: pos(1, 42), Exps: []ast.Exp{add}}},
		},
	}
	prog := &ast.Program{
		ModName:   "m",
		TopLevels: append([]ast.TopLevel{fn}, moduleReturnTail()...),
	}

	_, err := CheckProgram(prog)
	require.NoError(t, err)

	assert.Equal(t, types.Float, add.GetType())
	cast, ok := add.Lhs.(*ast.ToFloatExp)
	require.True(t, ok, "the integer-typed operand must be wrapped in exactly one ToFloat")
	assert.Equal(t, types.Float, cast.GetType())
	assert.Same(t, xRef, cast.Exp)
	assert.Same(t, yRef, add.Rhs, "the already-float operand is left untouched")
}

// S4: record Point{x: float, y: float}; {x=1.0} as Point, with y missing.
func TestCheckProgram_S4_InitializerFieldMissing(t *testing.T) {
	record := &ast.TLRecord{
		Position: pos(1, 1),
		Name:     "Point",
		Fields: []*ast.FieldDecl{
			{Position: pos(1, 12), Name: "x", TypeNode: &ast.NameTypeNode{Position: pos(1, 15), Name: "float"}},
			{Position: pos(1, 22), Name: "y", TypeNode: &ast.NameTypeNode{Position: pos(1, 25), Name: "float"}},
		},
	}
	decl := &ast.TLVar{
		Position: pos(2, 1),
		Decls:    []*ast.Decl{{Position: pos(2, 7), Name: "p", TypeNode: &ast.NameTypeNode{Position: pos(2, 10), Name: "Point"}}},
		Exps: []ast.Exp{&ast.InitListExp{
			Position: pos(2, 18),
			Fields:   []ast.Field{&ast.RecField{Position: pos(2, 19), Name: "x", Value: &ast.FloatExp{Position: pos(2, 21), Value: 1.0}}},
		}},
	}
	prog := &ast.Program{
		ModName: "m",
		TopLevels: append([]ast.TopLevel{record, decl}, moduleReturnTail()...),
	}

	_, err := CheckProgram(prog)
	require.Error(t, err)
	ce := err.(*CheckError)
	assert.Equal(t, TypeError, ce.Category)
	assert.Contains(t, ce.Message, "required field 'y' is missing from initializer")
}

// S6: function f(): (integer, integer) return 1, 2 end; local a, b = f().
func TestCheckProgram_S6_MultiReturnExpansion(t *testing.T) {
	fn := &ast.TLFunc{
		Position: pos(1, 1),
		Decl:     &ast.Decl{Position: pos(1, 10), Name: "f"},
		RetTypes: []ast.TypeNode{
			&ast.NameTypeNode{Position: pos(1, 17), Name: "integer"},
			&ast.NameTypeNode{Position: pos(1, 26), Name: "integer"},
		},
		Body: &ast.BlockStat{
			Position: pos(1, 36),
			Body: []ast.Stat{&ast.ReturnStat{Position: pos(1, 36), Exps: []ast.Exp{
				&ast.IntExp{Position: pos(1, 43), Value: 1},
				&ast.IntExp{Position: pos(1, 46), Value: 2},
			}}},
		},
	}
	call := &ast.CallFuncExp{
		Position: pos(2, 14),
		Fn:       &ast.VarExp{Position: pos(2, 14), Var: &ast.VarName{Position: pos(2, 14), Name: "f"}},
	}
	decl := &ast.TLVar{
		Position: pos(2, 1),
		Decls: []*ast.Decl{
			{Position: pos(2, 7), Name: "a"},
			{Position: pos(2, 10), Name: "b"},
		},
		Exps: []ast.Exp{call},
	}
	prog := &ast.Program{
		ModName:   "m",
		TopLevels: append([]ast.TopLevel{fn, decl}, moduleReturnTail()...),
	}

	decorated, err := CheckProgram(prog)
	require.NoError(t, err)

	tlvar := decorated.TopLevels[1].(*ast.TLVar)
	require.Len(t, tlvar.Exps, 2)
	assert.Same(t, call, tlvar.Exps[0])
	extra, ok := tlvar.Exps[1].(*ast.ExtraRetExp)
	require.True(t, ok, "the second slot must be an ExtraRet over the call")
	assert.Same(t, call, extra.Call)
	assert.Equal(t, types.Integer, extra.GetType())
	assert.Equal(t, types.Integer, tlvar.Decls[0].Type)
	assert.Equal(t, types.Integer, tlvar.Decls[1].Type)
}

// S5: local x = z, where z is undeclared.
func TestCheckProgram_S5_UnknownName(t *testing.T) {
	prog := &ast.Program{
		ModName: "m",
		TopLevels: append([]ast.TopLevel{
			&ast.TLVar{
				Position: pos(1, 1),
				Decls:    []*ast.Decl{{Position: pos(1, 7), Name: "x"}},
				Exps:     []ast.Exp{&ast.VarExp{Position: pos(1, 11), Var: &ast.VarName{Position: pos(1, 11), Name: "z"}}},
			},
		}, moduleReturnTail()...),
	}

	_, err := CheckProgram(prog)
	require.Error(t, err)
	ce := err.(*CheckError)
	assert.Equal(t, ScopeError, ce.Category)
	assert.Contains(t, ce.Message, "'z' is not declared")
}

// S7: io.write("hi") flattens to a Var.Name "io.write" bound to a BuiltinBind.
func TestCheckProgram_S7_QualifiedFlatten(t *testing.T) {
	dot := &ast.VarDot{
		Position: pos(1, 1),
		Base:     &ast.VarExp{Position: pos(1, 1), Var: &ast.VarName{Position: pos(1, 1), Name: "io"}},
		Field:    "write",
	}
	call := &ast.CallFuncExp{
		Position: pos(1, 1),
		Fn:       &ast.VarExp{Position: pos(1, 1), Var: dot},
		Args:     []ast.Exp{&ast.StringExp{Position: pos(1, 10), Value: "hi"}},
	}
	prog := singleStatProgram(&ast.CallStat{Position: pos(1, 1), Call: call})

	_, err := CheckProgram(prog)
	require.NoError(t, err)

	ve := call.Fn.(*ast.VarExp)
	vn, ok := ve.Var.(*ast.VarName)
	require.True(t, ok, "VarDot must be replaced by a flat VarName")
	assert.Equal(t, "io.write", vn.Name)
	_, ok = vn.Bind.(*ast.BuiltinBind)
	assert.True(t, ok)
}

// Invariant 4: an already-float operand passed where a float is expected is
// never wrapped in a ToFloat, and an explicit user cast is never re-wrapped
// by the implicit-cast rewrite rule — each insertion site produces at most
// one conversion node, never a chain of them.
func TestCheckProgram_Invariant4_NoDoubleWrappedCast(t *testing.T) {
	yRef := &ast.VarExp{Position: pos(1, 28), Var: &ast.VarName{Position: pos(1, 28), Name: "y"}}
	explicitCast := &ast.CastExp{
		Position: pos(1, 28),
		Exp:      yRef,
		Target:   &ast.NameTypeNode{Position: pos(1, 30), Name: "float"},
	}
	fn := &ast.TLFunc{
		Position: pos(1, 1),
		Decl:     &ast.Decl{Position: pos(1, 10), Name: "f"},
		Params: []*ast.Decl{
			{Position: pos(1, 12), Name: "y", TypeNode: &ast.NameTypeNode{Position: pos(1, 15), Name: "integer"}},
		},
		RetTypes: []ast.TypeNode{&ast.NameTypeNode{Position: pos(1, 36), Name: "float"}},
		Body: &ast.BlockStat{
			Position: pos(1, 42),
			Body:     []ast.Stat{&ast.ReturnStat{Position: pos(1, 42), Exps: []ast.Exp{explicitCast}}},
		},
	}
	prog := &ast.Program{
		ModName:   "m",
		TopLevels: append([]ast.TopLevel{fn}, moduleReturnTail()...),
	}

	_, err := CheckProgram(prog)
	require.NoError(t, err)

	assert.Equal(t, types.Float, explicitCast.GetType())
	_, wrapped := explicitCast.Exp.(*ast.CastExp)
	assert.False(t, wrapped, "an explicit cast must not be re-wrapped by the checker")
	_, alsoWrapped := explicitCast.Exp.(*ast.ToFloatExp)
	assert.False(t, alsoWrapped, "an explicit cast must not additionally be ToFloat-wrapped")
	assert.Same(t, yRef, explicitCast.Exp)
}

// Invariant 5: an omitted numeric-for step is synthesized as a literal whose
// own Type matches the control variable's exact type — float control gets a
// FloatExp step, not an IntExp coerced to float.
func TestCheckProgram_Invariant5_ForStepMatchesControlType(t *testing.T) {
	forStat := &ast.ForNumStat{
		Position: pos(1, 1),
		Decl:     &ast.Decl{Position: pos(1, 5), Name: "i", TypeNode: &ast.NameTypeNode{Position: pos(1, 8), Name: "float"}},
		Start:    &ast.FloatExp{Position: pos(1, 16), Value: 0.0},
		Limit:    &ast.FloatExp{Position: pos(1, 20), Value: 10.0},
		Body:     &ast.BlockStat{Position: pos(1, 25)},
	}
	prog := singleStatProgram(forStat)

	_, err := CheckProgram(prog)
	require.NoError(t, err)

	step, ok := forStat.Step.(*ast.FloatExp)
	require.True(t, ok, "an omitted step on a float-controlled loop must synthesize a FloatExp, not an IntExp")
	assert.Equal(t, 1.0, step.Value)
	assert.Equal(t, types.Float, step.GetType())
}

// CheckOptions.StrictFloatEquality actually changes whether "==" between
// two floats is accepted: off by default (matching historical behavior),
// rejected when turned on.
func TestCheckProgram_StrictFloatEquality(t *testing.T) {
	cond := func() *ast.BinopExp {
		return &ast.BinopExp{
			Position: pos(1, 4),
			Op:       "==",
			Lhs:      &ast.FloatExp{Position: pos(1, 4), Value: 1.0},
			Rhs:      &ast.FloatExp{Position: pos(1, 9), Value: 1.0},
		}
	}

	permissive := cond()
	_, err := CheckProgram(singleStatProgram(&ast.IfStat{
		Position: pos(1, 1),
		Arms:     []ast.IfArm{{Cond: permissive, Body: &ast.BlockStat{Position: pos(1, 15)}}},
	}))
	require.NoError(t, err, "float == float is accepted by default")

	strict := cond()
	_, err = CheckProgram(singleStatProgram(&ast.IfStat{
		Position: pos(1, 1),
		Arms:     []ast.IfArm{{Cond: strict, Body: &ast.BlockStat{Position: pos(1, 15)}}},
	}), CheckOptions{StrictFloatEquality: true})
	require.Error(t, err)
	ce := err.(*CheckError)
	assert.Equal(t, TypeError, ce.Category)
	assert.Contains(t, ce.Message, "imprecise")
}

// Invariant 7: at most one ModuleBind with IsMain = true.
func TestCheckProgram_MainModuleUniqueness(t *testing.T) {
	prog := &ast.Program{
		ModName: "m",
		TopLevels: append([]ast.TopLevel{
			&ast.TLVar{
				Position: pos(1, 1),
				Decls:    []*ast.Decl{{Position: pos(1, 7), Name: "a", TypeNode: &ast.ModuleTypeNode{Position: pos(1, 9)}}},
				Exps:     []ast.Exp{&ast.InitListExp{Position: pos(1, 15)}},
			},
			&ast.TLVar{
				Position: pos(2, 1),
				Decls:    []*ast.Decl{{Position: pos(2, 7), Name: "b", TypeNode: &ast.ModuleTypeNode{Position: pos(2, 9)}}},
				Exps:     []ast.Exp{&ast.InitListExp{Position: pos(2, 15)}},
			},
		}, moduleReturnTail()...),
	}

	_, err := CheckProgram(prog)
	require.Error(t, err)
	assert.Contains(t, err.(*CheckError).Message, "only one main module value")
}

// Invariant 8: the program must end with a Return of a Module value.
func TestCheckProgram_MustEndWithReturn(t *testing.T) {
	prog := &ast.Program{
		ModName: "m",
		TopLevels: []ast.TopLevel{
			&ast.TLVar{
				Position: pos(1, 1),
				Decls:    []*ast.Decl{{Position: pos(1, 7), Name: "x", TypeNode: &ast.NameTypeNode{Position: pos(1, 10), Name: "integer"}}},
				Exps:     []ast.Exp{&ast.IntExp{Position: pos(1, 20), Value: 1}},
			},
		},
	}

	_, err := CheckProgram(prog)
	require.Error(t, err)
	assert.Contains(t, err.(*CheckError).Message, "must end with a return statement")
}

func singleStatProgram(s ast.Stat) *ast.Program {
	return &ast.Program{
		ModName:   "m",
		TopLevels: append([]ast.TopLevel{&ast.TLStat{Position: s.Pos(), Stat: s}}, moduleReturnTail()...),
	}
}

// moduleReturnTail builds the two trailing top-level items every test
// program needs to satisfy the end-of-program shape invariant: a module
// declaration, then a return of it.
func moduleReturnTail() []ast.TopLevel {
	decl := &ast.TLVar{
		Position: pos(100, 1),
		Decls:    []*ast.Decl{{Position: pos(100, 1), Name: "__m", TypeNode: &ast.ModuleTypeNode{Position: pos(100, 1)}}},
		Exps:     []ast.Exp{&ast.InitListExp{Position: pos(100, 1)}},
	}
	ret := &ast.TLStat{
		Position: pos(101, 1),
		Stat: &ast.ReturnStat{
			Position: pos(101, 1),
			Exps:     []ast.Exp{&ast.VarExp{Position: pos(101, 8), Var: &ast.VarName{Position: pos(101, 8), Name: "__m"}}},
		},
	}
	return []ast.TopLevel{decl, ret}
}
