package ast

import "glint/internal/types"

// Binding is what a name resolves to in the symbol table. It lives in this
// package, rather than in internal/sema, because it must reference Decl
// (an ast node) and types.Type at once; internal/sema imports ast, so a
// Binding defined there could not be stored on a VarName without a cycle.
type Binding interface {
	bindingNode()
}

// TypeBind is a name bound to a type: a primitive, a record, or a type
// alias.
type TypeBind struct {
	Type types.Type
}

func (*TypeBind) bindingNode() {}

// LocalBind is a name bound to a local variable or a function parameter.
type LocalBind struct {
	Decl *Decl
}

func (*LocalBind) bindingNode() {}

// GlobalBind is a name bound to a top-level variable of the main module.
type GlobalBind struct {
	Decl    *Decl
	ModName string
}

func (*GlobalBind) bindingNode() {}

// FunctionBind is a name bound to a top-level function of the main module.
type FunctionBind struct {
	Decl    *Decl
	ModName string
}

func (*FunctionBind) bindingNode() {}

// BuiltinBind is a name bound to an entry of the built-in catalog.
type BuiltinBind struct {
	Name string
	Type *types.Function
}

func (*BuiltinBind) bindingNode() {}

// ModuleBind is a name bound to a module. IsMain distinguishes the
// program's own module (a bare reference to it is a Module-typed value)
// from a built-in module name, which is usable only as the base of a dot:
// "io.write" is flattened to the built-in catalog entry of that name, and
// a bare reference to a built-in module is a type error.
type ModuleBind struct {
	Name   string
	IsMain bool
}

func (*ModuleBind) bindingNode() {}
