package ast

import "glint/internal/types"

// FieldDecl is a named, typed field in a record declaration or an anonymous
// table type annotation.
type FieldDecl struct {
	Position Position
	Name     string
	TypeNode TypeNode
	Type     types.Type // filled in by the type resolver
}

func (f *FieldDecl) Pos() Position { return f.Position }

// Field is one entry of an InitListExp: either a named field ("x = e") or a
// positional one ("e").
type Field interface {
	fieldNode()
	Pos() Position
}

// RecField is a named initializer-list entry.
type RecField struct {
	Position Position
	Name     string
	Value    Exp
}

func (*RecField) fieldNode()      {}
func (f *RecField) Pos() Position { return f.Position }

// ListField is a positional initializer-list entry.
type ListField struct {
	Position Position
	Value    Exp
}

func (*ListField) fieldNode()      {}
func (f *ListField) Pos() Position { return f.Position }
