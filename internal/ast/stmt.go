package ast

import "glint/internal/types"

// Stat is a statement node.
type Stat interface {
	statNode()
	Pos() Position
}

// Decl is a single declared name: a local variable, a top-level variable, a
// function, a for-loop control variable, or a parameter. TypeNode is the
// programmer's annotation, or nil when the type is to be inferred from the
// initializer. ModName is set by the checker when Decl enters the main
// module's namespace: a top-level variable, the main module value itself,
// or a qualified function or field of the main module.
// Owner is non-empty only for a qualified function declaration
// ("function Owner.Name(...) ... end"); it names the module the function
// is being attached to.
type Decl struct {
	Position Position
	Name     string
	Owner    string
	TypeNode TypeNode
	Type     types.Type
	ModName  string
}

func (d *Decl) Pos() Position { return d.Position }

// DeclStat is "local Decls = Exps".
type DeclStat struct {
	Position Position
	Decls    []*Decl
	Exps     []Exp
}

func (*DeclStat) statNode()      {}
func (s *DeclStat) Pos() Position { return s.Position }

// BlockStat is a sequence of statements forming one scope.
type BlockStat struct {
	Position Position
	Body     []Stat
}

func (*BlockStat) statNode()      {}
func (s *BlockStat) Pos() Position { return s.Position }

type WhileStat struct {
	Position Position
	Cond     Exp
	Body     *BlockStat
}

func (*WhileStat) statNode()      {}
func (s *WhileStat) Pos() Position { return s.Position }

type RepeatStat struct {
	Position Position
	Body     *BlockStat
	Cond     Exp
}

func (*RepeatStat) statNode()      {}
func (s *RepeatStat) Pos() Position { return s.Position }

// ForNumStat is "for Decl = Start, Limit, Step do Body end"; Step is nil
// when the programmer omitted it (the rewrite pass synthesizes a literal
// 1/1.0 in its place, matching Start's type).
type ForNumStat struct {
	Position Position
	Decl     *Decl
	Start    Exp
	Limit    Exp
	Step     Exp
	Body     *BlockStat
}

func (*ForNumStat) statNode()      {}
func (s *ForNumStat) Pos() Position { return s.Position }

// ForInStat is "for Decls in Exps do Body end".
type ForInStat struct {
	Position Position
	Decls    []*Decl
	Exps     []Exp
	Body     *BlockStat
}

func (*ForInStat) statNode()      {}
func (s *ForInStat) Pos() Position { return s.Position }

// AssignStat is "Lhs... = Rhs...". A qualified assignment to a main-module
// field ("m.field = ...", where m holds the main module) must be the sole
// entry in Lhs; the statement checker checks its Rhs as the initializer of
// a declaration named "<mainmod>.field" and replaces the Lhs entry with a
// flat VarName of that name. The node itself stays an AssignStat; it is
// not replaced by a DeclStat.
type AssignStat struct {
	Position Position
	Lhs      []Var
	Rhs      []Exp
}

func (*AssignStat) statNode()      {}
func (s *AssignStat) Pos() Position { return s.Position }

// CallStat is a call expression used as a statement, discarding its
// results.
type CallStat struct {
	Position Position
	Call     Exp
}

func (*CallStat) statNode()      {}
func (s *CallStat) Pos() Position { return s.Position }

type ReturnStat struct {
	Position Position
	Exps     []Exp
}

func (*ReturnStat) statNode()      {}
func (s *ReturnStat) Pos() Position { return s.Position }

// IfArm is one "if"/"elseif" branch.
type IfArm struct {
	Cond Exp
	Body *BlockStat
}

type IfStat struct {
	Position Position
	Arms     []IfArm
	Else     *BlockStat // nil when there is no "else"
}

func (*IfStat) statNode()      {}
func (s *IfStat) Pos() Position { return s.Position }

type BreakStat struct {
	Position Position
}

func (*BreakStat) statNode()      {}
func (s *BreakStat) Pos() Position { return s.Position }

// FuncStat is a named function statement, "function Decl(Params) Body end".
type FuncStat struct {
	Position Position
	Decl     *Decl
	Params   []*Decl
	RetTypes []TypeNode
	Body     *BlockStat
}

func (*FuncStat) statNode()      {}
func (s *FuncStat) Pos() Position { return s.Position }
