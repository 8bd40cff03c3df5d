package ast

import "glint/internal/types"

// Program is the root node: a single module's top-level item list, in
// source order. There is no import syntax: a non-main module name (e.g.
// "io") is only ever reachable by being a built-in installed at the root
// scope before checking begins.
type Program struct {
	ModName   string
	TopLevels []TopLevel
}

// TopLevel is an item declared directly inside a module body.
type TopLevel interface {
	topLevel()
	Pos() Position
}

// TLVar is a top-level "local Decls = Exps".
type TLVar struct {
	Position Position
	Decls    []*Decl
	Exps     []Exp
}

func (*TLVar) topLevel()      {}
func (t *TLVar) Pos() Position { return t.Position }

// TLFunc is a top-level named function.
type TLFunc struct {
	Position Position
	Decl     *Decl
	Params   []*Decl
	RetTypes []TypeNode
	Body     *BlockStat
}

func (*TLFunc) topLevel()      {}
func (t *TLFunc) Pos() Position { return t.Position }

// TLTypeAlias is "typealias Name = TypeNode".
type TLTypeAlias struct {
	Position Position
	Name     string
	TypeNode TypeNode
}

func (*TLTypeAlias) topLevel()      {}
func (t *TLTypeAlias) Pos() Position { return t.Position }

// TLRecord is "record Name Fields end". Type is filled in by the program
// driver's type letrec group pass with the *types.Record this declaration
// produces.
type TLRecord struct {
	Position Position
	Name     string
	Fields   []*FieldDecl
	Type     types.Type
}

func (*TLRecord) topLevel()      {}
func (t *TLRecord) Pos() Position { return t.Position }

// TLStat wraps any other top-level statement (e.g. a bare call, used for
// module-level side effects).
type TLStat struct {
	Position Position
	Stat     Stat
}

func (*TLStat) topLevel()      {}
func (t *TLStat) Pos() Position { return t.Position }
