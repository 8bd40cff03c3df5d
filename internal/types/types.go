// Package types implements the closed semantic-type algebra that
// internal/sema resolves syntactic type annotations into and checks
// expressions against. It is pure data and predicates over that data; it
// never inspects an AST node.
package types

import "strings"

// Type is any member of the closed semantic-type variant set: Nil, Boolean,
// Integer, Float, String, Any, Void, *Array, *Table, *Record, *Function, or
// Module.
type Type interface {
	isType()
	String() string
}

type primitiveKind int

const (
	kindNil primitiveKind = iota
	kindBoolean
	kindInteger
	kindFloat
	kindString
	kindAny
	kindVoid
	kindModule
)

// primitive is the representation shared by every type that carries no
// further structure.
type primitive struct {
	kind primitiveKind
	name string
}

func (*primitive) isType() {}
func (p *primitive) String() string {
	return p.name
}

// The eight primitive singletons. Equality between primitives is pointer
// equality, so every caller must share these values rather than construct
// new ones.
var (
	Nil     Type = &primitive{kindNil, "nil"}
	Boolean Type = &primitive{kindBoolean, "boolean"}
	Integer Type = &primitive{kindInteger, "integer"}
	Float   Type = &primitive{kindFloat, "float"}
	String  Type = &primitive{kindString, "string"}
	Any     Type = &primitive{kindAny, "any"}
	Void    Type = &primitive{kindVoid, "void"}
	Module  Type = &primitive{kindModule, "module"}
)

// Array is the type of a homogeneous, zero-indexed sequence.
type Array struct {
	Elem Type
}

func (*Array) isType() {}
func (a *Array) String() string {
	return "{" + a.Elem.String() + "}"
}

// Table is an anonymous structural record: a fixed set of named fields.
type Table struct {
	Fields map[string]Type
}

func NewTable() *Table {
	return &Table{Fields: make(map[string]Type)}
}

func (*Table) isType() {}
func (t *Table) String() string {
	var b strings.Builder
	b.WriteString("{")
	first := true
	for _, name := range sortedKeys(t.Fields) {
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(t.Fields[name].String())
	}
	b.WriteString("}")
	return b.String()
}

// Record is a named, nominal type with an ordered field list. Two Record
// values are equal only when they are the same instance: each record
// declaration produces exactly one *Record, installed once in the type
// resolver's scope.
type Record struct {
	Name       string
	FieldNames []string
	FieldTypes map[string]Type
}

func NewRecord(name string) *Record {
	return &Record{Name: name, FieldTypes: make(map[string]Type)}
}

func (*Record) isType() {}
func (r *Record) String() string {
	return r.Name
}

// Function is the type of a value with a (possibly empty) argument list and
// a (possibly empty) return-value tuple.
type Function struct {
	Args []Type
	Rets []Type
}

func (*Function) isType() {}
func (f *Function) String() string {
	var b strings.Builder
	b.WriteString("(")
	for i, a := range f.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteString(")")
	switch len(f.Rets) {
	case 0:
		// no return annotation
	case 1:
		b.WriteString(": ")
		b.WriteString(f.Rets[0].String())
	default:
		b.WriteString(": (")
		for i, r := range f.Rets {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(r.String())
		}
		b.WriteString(")")
	}
	return b.String()
}

// Equals reports whether a and b denote the same type. Primitives and
// Module compare by identity (they are singletons); Array, Table, and
// Function compare structurally; Record compares by identity.
func Equals(a, b Type) bool {
	if a == b {
		return true
	}
	switch at := a.(type) {
	case *Array:
		bt, ok := b.(*Array)
		return ok && Equals(at.Elem, bt.Elem)
	case *Table:
		bt, ok := b.(*Table)
		if !ok || len(at.Fields) != len(bt.Fields) {
			return false
		}
		for name, t := range at.Fields {
			bty, ok := bt.Fields[name]
			if !ok || !Equals(t, bty) {
				return false
			}
		}
		return true
	case *Function:
		bt, ok := b.(*Function)
		if !ok || len(at.Args) != len(bt.Args) || len(at.Rets) != len(bt.Rets) {
			return false
		}
		for i := range at.Args {
			if !Equals(at.Args[i], bt.Args[i]) {
				return false
			}
		}
		for i := range at.Rets {
			if !Equals(at.Rets[i], bt.Rets[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Consistent is the relation that drives implicit coercion insertion: true
// when one side is Any, or the two types are Equals.
func Consistent(a, b Type) bool {
	if a == Any || b == Any {
		return true
	}
	return Equals(a, b)
}

// IsIndexable reports whether t supports "." field access: Table, Record,
// and Module values do; nothing else does.
func IsIndexable(t Type) bool {
	switch t {
	case Module:
		return true
	}
	switch t.(type) {
	case *Table, *Record:
		return true
	}
	return false
}

// Indices returns the field-name-to-type map of an indexable type. It
// returns nil for Module, whose fields are resolved through bindings rather
// than through this map (see internal/sema's qualified-name flattening).
func Indices(t Type) map[string]Type {
	switch tt := t.(type) {
	case *Table:
		return tt.Fields
	case *Record:
		return tt.FieldTypes
	}
	return nil
}

// IsNumeric reports whether t is Integer or Float.
func IsNumeric(t Type) bool {
	return t == Integer || t == Float
}

// IsCondition reports whether t is an acceptable condition type: Boolean or
// Any.
func IsCondition(t Type) bool {
	return t == Boolean || t == Any
}

func sortedKeys(m map[string]Type) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}
