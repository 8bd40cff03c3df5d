package ast

// TypeNode is a syntactic type annotation, as written by the programmer.
// internal/sema's type resolver turns a TypeNode into a types.Type; the
// TypeNode itself is never mutated.
type TypeNode interface {
	typeNode()
	Pos() Position
}

// NilTypeNode is the annotation "nil".
type NilTypeNode struct {
	Position Position
}

func (*NilTypeNode) typeNode()        {}
func (n *NilTypeNode) Pos() Position { return n.Position }

// ModuleTypeNode is the annotation "module", used on the one declaration in
// a program that holds the main module's own value (e.g. "local m: module =
// {}"). It always resolves to types.Module.
type ModuleTypeNode struct {
	Position Position
}

func (*ModuleTypeNode) typeNode()        {}
func (n *ModuleTypeNode) Pos() Position { return n.Position }

// NameTypeNode is a bare identifier: a primitive name ("integer", "string",
// ...), a record name, or a type alias name.
type NameTypeNode struct {
	Position Position
	Name     string
}

func (*NameTypeNode) typeNode()        {}
func (n *NameTypeNode) Pos() Position { return n.Position }

// ArrayTypeNode is "{ Elem }".
type ArrayTypeNode struct {
	Position Position
	Elem     TypeNode
}

func (*ArrayTypeNode) typeNode()        {}
func (n *ArrayTypeNode) Pos() Position { return n.Position }

// TableTypeNode is an anonymous "{ name: Type, ... }" annotation.
type TableTypeNode struct {
	Position Position
	Fields   []*FieldDecl
}

func (*TableTypeNode) typeNode()        {}
func (n *TableTypeNode) Pos() Position { return n.Position }

// FunctionTypeNode is "(Args) -> (Rets)".
type FunctionTypeNode struct {
	Position Position
	Args     []TypeNode
	Rets     []TypeNode
}

func (*FunctionTypeNode) typeNode()        {}
func (n *FunctionTypeNode) Pos() Position { return n.Position }
