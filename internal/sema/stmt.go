package sema

import (
	"glint/internal/ast"
	"glint/internal/types"
)

func (c *Checker) checkStat(s ast.Stat) {
	switch st := s.(type) {
	case *ast.DeclStat:
		st.Exps = c.checkDeclCommon(st.Decls, st.Exps, false)
	case *ast.BlockStat:
		c.withBlock(func() { c.checkBlockBody(st) })
	case *ast.WhileStat:
		c.checkWhileStat(st)
	case *ast.RepeatStat:
		c.checkRepeatStat(st)
	case *ast.ForNumStat:
		c.checkForNumStat(st)
	case *ast.ForInStat:
		c.checkForInStat(st)
	case *ast.AssignStat:
		c.checkAssignStat(st)
	case *ast.CallStat:
		st.Call = c.synthesize(st.Call)
	case *ast.ReturnStat:
		c.checkReturnStat(st)
	case *ast.IfStat:
		c.checkIfStat(st)
	case *ast.BreakStat:
		// nothing to check
	case *ast.FuncStat:
		c.checkFuncStat(st)
	default:
		unreachable("unknown statement kind")
	}
}

func (c *Checker) checkBlockBody(b *ast.BlockStat) {
	for _, s := range b.Body {
		c.checkStat(s)
	}
}

func (c *Checker) requireCondition(exp ast.Exp) {
	if !types.IsCondition(exp.GetType()) {
		typeErrorf(exp.Pos(), "expected a boolean condition, found '%s'", exp.GetType().String())
	}
}

// checkDeclCommon is shared between a nested "local" statement and a
// top-level variable item: the only difference is whether a non-module
// declaration becomes a LocalBind or a GlobalBind.
func (c *Checker) checkDeclCommon(decls []*ast.Decl, exps []ast.Exp, isTopLevel bool) []ast.Exp {
	exps = c.expandMultiReturn(exps)
	for i, decl := range decls {
		var exp ast.Exp
		if i < len(exps) {
			exp = exps[i]
		}
		typed := c.checkInitializerExp(decl, exp)
		if typed != nil && i < len(exps) {
			exps[i] = typed
		}
		c.bindDecl(decl, isTopLevel)
	}
	return exps
}

func (c *Checker) checkInitializerExp(decl *ast.Decl, exp ast.Exp) ast.Exp {
	if decl.TypeNode != nil {
		decl.Type = c.resolveType(decl.TypeNode)
		if exp != nil {
			return c.verify(exp, decl.Type, "in initializer of '%s'", decl.Name)
		}
		return nil
	}
	if exp == nil {
		typeErrorf(decl.Position, "variable '%s' needs a type annotation", decl.Name)
	}
	typed := c.synthesize(exp)
	decl.Type = typed.GetType()
	return typed
}

func (c *Checker) bindDecl(decl *ast.Decl, isTopLevel bool) {
	if decl.Type == types.Module {
		if c.mainBound {
			typeErrorf(decl.Position, "the program may declare only one main module value")
		}
		c.mainBound = true
		decl.ModName = c.mainModName
		c.scope.define(decl.Name, &ast.ModuleBind{Name: c.mainModName, IsMain: true})
		return
	}
	if isTopLevel {
		decl.ModName = c.mainModName
		c.scope.define(decl.Name, &ast.GlobalBind{Decl: decl, ModName: c.mainModName})
		return
	}
	c.scope.define(decl.Name, &ast.LocalBind{Decl: decl})
}

func (c *Checker) checkWhileStat(st *ast.WhileStat) {
	st.Cond = c.synthesize(st.Cond)
	c.requireCondition(st.Cond)
	c.withBlock(func() { c.checkBlockBody(st.Body) })
}

func (c *Checker) checkRepeatStat(st *ast.RepeatStat) {
	c.withBlock(func() {
		c.checkBlockBody(st.Body)
		st.Cond = c.synthesize(st.Cond)
		c.requireCondition(st.Cond)
	})
}

func (c *Checker) checkForNumStat(st *ast.ForNumStat) {
	st.Start = c.checkInitializerExp(st.Decl, st.Start)
	if st.Decl.Type != types.Integer && st.Decl.Type != types.Float {
		typeErrorf(st.Decl.Position, "numeric for control variable must be integer or float, found '%s'", st.Decl.Type.String())
	}
	if st.Step == nil {
		st.Step = defaultForStep(st.Decl.Type, st.Limit.Pos())
	}
	st.Limit = c.verify(st.Limit, st.Decl.Type, "in loop limit")
	st.Step = c.verify(st.Step, st.Decl.Type, "in loop step")
	c.withBlock(func() {
		c.scope.define(st.Decl.Name, &ast.LocalBind{Decl: st.Decl})
		c.checkBlockBody(st.Body)
	})
}

func (c *Checker) checkForInStat(st *ast.ForInStat) {
	exps := c.expandMultiReturn(st.Exps)
	if len(exps) < 3 {
		typeErrorf(st.Position, "a generic for loop needs at least 3 values: iterator, state, and control")
	}
	iterExp := c.synthesize(exps[0])
	exps[0] = iterExp
	iterFn, ok := iterExp.GetType().(*types.Function)
	if !ok {
		typeErrorf(iterExp.Pos(), "generic for iterator must be a function, found '%s'", iterExp.GetType().String())
	}
	if len(iterFn.Args) != 2 || iterFn.Args[0] != types.Any || iterFn.Args[1] != types.Any {
		typeErrorf(iterExp.Pos(), "generic for iterator must accept (any, any)")
	}
	if len(iterFn.Rets) != len(st.Decls) {
		typeErrorf(st.Position, "generic for iterator returns %d value(s), but %d variable(s) are declared", len(iterFn.Rets), len(st.Decls))
	}
	exps[1] = c.verify(exps[1], types.Any, "in generic for state value")
	exps[2] = c.verify(exps[2], types.Any, "in generic for control value")
	st.Exps = exps

	c.withBlock(func() {
		for i, decl := range st.Decls {
			if decl.TypeNode != nil {
				decl.Type = c.resolveType(decl.TypeNode)
				if !types.Consistent(decl.Type, iterFn.Rets[i]) {
					typeErrorf(decl.Position, "expected '%s' but found '%s' in loop variable '%s'", decl.Type.String(), iterFn.Rets[i].String(), decl.Name)
				}
			} else {
				decl.Type = iterFn.Rets[i]
			}
			c.scope.define(decl.Name, &ast.LocalBind{Decl: decl})
		}
		c.checkBlockBody(st.Body)
	})
}

func (c *Checker) checkAssignStat(st *ast.AssignStat) {
	if len(st.Lhs) == 1 {
		if dot, ok := st.Lhs[0].(*ast.VarDot); ok {
			if mb, ok := c.mainModuleBindOf(dot); ok {
				c.checkModuleFieldAssign(st, dot, mb)
				return
			}
		}
	} else {
		for _, lhs := range st.Lhs {
			dot, ok := lhs.(*ast.VarDot)
			if !ok {
				continue
			}
			if _, ok := c.mainModuleBindOf(dot); ok {
				scopeErrorf(dot.Position, "assignment to main-module field '%s' must be the sole target of its assignment statement", dot.Field)
			}
		}
	}

	exps := c.expandMultiReturn(st.Rhs)
	if len(exps) != len(st.Lhs) {
		typeErrorf(st.Position, "assignment has %d target(s) but %d value(s)", len(st.Lhs), len(exps))
	}
	for i, v := range st.Lhs {
		checked := c.checkVar(v)
		st.Lhs[i] = checked
		if vn, ok := checked.(*ast.VarName); ok {
			switch vn.Bind.(type) {
			case *ast.FunctionBind:
				typeErrorf(checked.Pos(), "cannot assign to function '%s'", vn.Name)
			case *ast.BuiltinBind:
				typeErrorf(checked.Pos(), "cannot assign to built-in '%s'", vn.Name)
			}
		}
		exps[i] = c.verify(exps[i], checked.GetType(), "in assignment")
	}
	st.Rhs = exps
}

// mainModuleBindOf reports whether dot is "Base.Field" where Base is a bare
// name bound to the main module, and returns that binding.
func (c *Checker) mainModuleBindOf(dot *ast.VarDot) (*ast.ModuleBind, bool) {
	base, ok := dot.Base.(*ast.VarExp)
	if !ok {
		return nil, false
	}
	vn, ok := base.Var.(*ast.VarName)
	if !ok {
		return nil, false
	}
	mb, ok := c.scope.find(vn.Name).(*ast.ModuleBind)
	if !ok || !mb.IsMain {
		return nil, false
	}
	return mb, true
}

// checkModuleFieldAssign implements the "Dot on a main-module Var.Name"
// branch of Assign: the assignment is re-driven through the same logic as
// a declaration, introducing the field into the main module under its
// flattened name.
func (c *Checker) checkModuleFieldAssign(st *ast.AssignStat, dot *ast.VarDot, mb *ast.ModuleBind) {
	combined := mb.Name + "." + dot.Field
	decl := &ast.Decl{Position: dot.Position, Name: combined}
	rhs := c.checkDeclCommon([]*ast.Decl{decl}, st.Rhs, true)
	st.Rhs = rhs
	dot.Type = decl.Type
	st.Lhs[0] = &ast.VarName{
		Position: dot.Position,
		Name:     combined,
		Bind:     &ast.GlobalBind{Decl: decl, ModName: mb.Name},
		Type:     decl.Type,
	}
}

func (c *Checker) checkReturnStat(st *ast.ReturnStat) {
	if len(c.returnTypes) == 0 {
		unreachable("return statement outside any function or program body")
	}
	expected := c.returnTypes[len(c.returnTypes)-1]
	exps := c.expandMultiReturn(st.Exps)
	if len(exps) != len(expected) {
		typeErrorf(st.Position, "expected %d return value(s), got %d", len(expected), len(exps))
	}
	for i, exp := range exps {
		exps[i] = c.verify(exp, expected[i], "in return value %d", i+1)
	}
	st.Exps = exps
}

func (c *Checker) checkIfStat(st *ast.IfStat) {
	for i := range st.Arms {
		st.Arms[i].Cond = c.synthesize(st.Arms[i].Cond)
		c.requireCondition(st.Arms[i].Cond)
		body := st.Arms[i].Body
		c.withBlock(func() { c.checkBlockBody(body) })
	}
	if st.Else != nil {
		c.withBlock(func() { c.checkBlockBody(st.Else) })
	}
}

func (c *Checker) checkFuncStat(st *ast.FuncStat) {
	c.bindFunction(st.Decl, st.Params, st.RetTypes, st.Body)
}

// bindFunction resolves a function's declared type, binds it as a
// FunctionBind (flattening a qualified "Owner.Name" declaration into the
// main module's namespace, mirroring the Assign rewrite), then checks the
// body against the declared return types.
func (c *Checker) bindFunction(decl *ast.Decl, params []*ast.Decl, retTypeNodes []ast.TypeNode, body *ast.BlockStat) {
	fnType := &types.Function{}
	for _, p := range params {
		p.Type = c.resolveType(p.TypeNode)
		fnType.Args = append(fnType.Args, p.Type)
	}
	for _, r := range retTypeNodes {
		fnType.Rets = append(fnType.Rets, c.resolveType(r))
	}
	decl.Type = fnType

	name := decl.Name
	if decl.Owner != "" {
		mb, ok := c.scope.find(decl.Owner).(*ast.ModuleBind)
		if !ok {
			scopeErrorf(decl.Position, "'%s' is not a module", decl.Owner)
		}
		if !mb.IsMain {
			typeErrorf(decl.Position, "extending built-in module '%s' is not implemented", decl.Owner)
		}
		name = mb.Name + "." + decl.Name
		decl.ModName = mb.Name
	}
	decl.Name = name
	c.scope.define(name, &ast.FunctionBind{Decl: decl, ModName: decl.ModName})

	c.withBlock(func() {
		for _, p := range params {
			c.scope.define(p.Name, &ast.LocalBind{Decl: p})
		}
		c.returnTypes = append(c.returnTypes, fnType.Rets)
		c.checkBlockBody(body)
		c.returnTypes = c.returnTypes[:len(c.returnTypes)-1]
	})
}
