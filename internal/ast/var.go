package ast

import "glint/internal/types"

// Var is a storage-location reference: the target of an assignment, or the
// payload of a VarExp when a name is used in expression position. Every
// variant carries its own Type, set by variable resolution (internal/sema's
// var.go), independent of the Type carried by a wrapping VarExp.
type Var interface {
	varNode()
	Pos() Position
	GetType() types.Type
	SetType(types.Type)
}

// VarName is a bare identifier. Bind is nil until the variable resolver
// fills it in with the Binding the name resolved to.
type VarName struct {
	Position Position
	Name     string
	Bind     Binding
	Type     types.Type
}

func (*VarName) varNode()              {}
func (v *VarName) Pos() Position       { return v.Position }
func (v *VarName) GetType() types.Type { return v.Type }
func (v *VarName) SetType(t types.Type) { v.Type = t }

// VarDot is "Base.Field". When Base resolves to the main module, the
// qualified-name flattening rewrite rule collapses this node into a
// VarName with a combined "mod.field" name instead of leaving it as a
// VarDot.
type VarDot struct {
	Position Position
	Base     Exp
	Field    string
	Type     types.Type
}

func (*VarDot) varNode()              {}
func (v *VarDot) Pos() Position       { return v.Position }
func (v *VarDot) GetType() types.Type { return v.Type }
func (v *VarDot) SetType(t types.Type) { v.Type = t }

// VarBracket is "Base[Index]".
type VarBracket struct {
	Position Position
	Base     Exp
	Index    Exp
	Type     types.Type
}

func (*VarBracket) varNode()              {}
func (v *VarBracket) Pos() Position       { return v.Position }
func (v *VarBracket) GetType() types.Type { return v.Type }
func (v *VarBracket) SetType(t types.Type) { v.Type = t }
