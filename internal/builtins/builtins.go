// Package builtins ships the concrete, data-only catalog that
// internal/sema treats as opaque: a fixed table of built-in function
// signatures and a fixed set of built-in module names. The pass never
// special-cases a built-in by name beyond looking it up here.
package builtins

import "glint/internal/types"

// Functions maps a built-in name to its function type, populated once in
// init. Module-qualified entries ("io.write") use their flattened combined
// name directly, the same name the checker looks them up by after rewrite
// rule 1 runs.
var Functions = map[string]*types.Function{}

// Modules is the set of built-in module names. A bare reference to one of
// these names resolves to a ModuleBind rather than a TypeBind or a
// LocalBind.
var Modules = map[string]struct{}{
	"io":   {},
	"math": {},
	"os":   {},
}

func init() {
	def := func(name string, args []types.Type, rets []types.Type) {
		Functions[name] = &types.Function{Args: args, Rets: rets}
	}

	def("print", []types.Type{types.Any}, nil)
	def("tostring", []types.Type{types.Any}, []types.Type{types.String})
	def("tointeger", []types.Type{types.Float}, []types.Type{types.Integer})
	def("tofloat", []types.Type{types.Integer}, []types.Type{types.Float})
	def("type", []types.Type{types.Any}, []types.Type{types.String})
	def("assert", []types.Type{types.Any}, []types.Type{types.Any})
	def("error", []types.Type{types.String}, nil)
	def("len", []types.Type{types.Any}, []types.Type{types.Integer})

	def("io.write", []types.Type{types.String}, nil)
	def("io.read", nil, []types.Type{types.String})

	def("math.sqrt", []types.Type{types.Float}, []types.Type{types.Float})
	def("math.floor", []types.Type{types.Float}, []types.Type{types.Integer})
	def("math.ceil", []types.Type{types.Float}, []types.Type{types.Integer})
	def("math.abs", []types.Type{types.Float}, []types.Type{types.Float})
	def("math.max", []types.Type{types.Float, types.Float}, []types.Type{types.Float})
	def("math.min", []types.Type{types.Float, types.Float}, []types.Type{types.Float})

	def("os.time", nil, []types.Type{types.Integer})
	def("os.exit", []types.Type{types.Integer}, nil)
}

// Lookup reports whether name is a built-in function, returning its type.
func Lookup(name string) (*types.Function, bool) {
	fn, ok := Functions[name]
	return fn, ok
}

// IsModule reports whether name is a built-in module name.
func IsModule(name string) bool {
	_, ok := Modules[name]
	return ok
}
