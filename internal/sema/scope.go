package sema

import "glint/internal/ast"

// scope is one level of the lexical-scope stack: a mapping from identifier
// to binding, plus a link to the enclosing scope. Lookup walks outward from
// the innermost scope; define never checks for a pre-existing entry, so an
// inner define silently shadows an outer one, and a second define in the
// same scope silently replaces the first — redefinition-within-a-scope is
// not rejected at this level. No other part of the checker rejects a
// repeated main-module field either: a second "m.field" definition is
// bound over the first in the same way.
type scope struct {
	parent *scope
	names  map[string]ast.Binding
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, names: make(map[string]ast.Binding)}
}

func (s *scope) define(name string, b ast.Binding) {
	s.names[name] = b
}

func (s *scope) find(name string) ast.Binding {
	for sc := s; sc != nil; sc = sc.parent {
		if b, ok := sc.names[name]; ok {
			return b
		}
	}
	return nil
}

// withBlock pushes a fresh scope, runs f, and pops on every exit path,
// including a panic raised by f (a user error or a compiler-bug assertion
// alike) — the defer runs regardless of how f returns.
func (c *Checker) withBlock(f func()) {
	c.scope = newScope(c.scope)
	defer func() { c.scope = c.scope.parent }()
	f()
}
