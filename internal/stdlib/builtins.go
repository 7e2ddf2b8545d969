package stdlib

import "go/types"

// BuiltinNames returns the names of the predeclared identifiers of the
// running release: builtin functions, basic types, and the predeclared
// constants (true, false, iota, nil).
//
// With the default standard library symbol source these can never collide
// with a merged symbol, since exported Go names are capitalized while every
// predeclared identifier is lowercase. Custom symbol sources are free to
// contribute arbitrary names, so protection is still enforced per name.
func BuiltinNames() map[string]bool {
	universe := types.Universe
	names := make(map[string]bool, len(universe.Names()))
	for _, name := range universe.Names() {
		names[name] = true
	}
	return names
}
