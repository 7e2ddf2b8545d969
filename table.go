package importall

import (
	"reflect"
	"sort"
)

// MutableSymbolTable is the caller-owned namespace that merged symbols are
// applied to. The library never owns a table; it only reads and mutates it
// under this contract, and keeps enough information aside to reverse a merge
// later.
//
// Implementations must be identity-comparable (in practice: pointer-shaped,
// like *MapTable), because revert records are keyed by table identity.
type MutableSymbolTable interface {
	// Get returns the value bound to name, if any.
	Get(name string) (reflect.Value, bool)
	// Set binds name to value, replacing any existing binding.
	Set(name string, value reflect.Value)
	// Delete removes the binding for name, if any.
	Delete(name string)
	// Contains reports whether name is bound.
	Contains(name string) bool
	// Keys returns all bound names.
	Keys() []string
}

// MapTable is a MutableSymbolTable over a plain map. It is the Go stand-in
// for handing the library your globals().
type MapTable struct {
	symbols map[string]reflect.Value
}

// NewMapTable returns an empty table.
func NewMapTable() *MapTable {
	return &MapTable{symbols: make(map[string]reflect.Value)}
}

// WrapMap returns a table backed by the given map. The map is shared, not
// copied: mutations through the table are visible in the map and vice versa.
func WrapMap(symbols map[string]reflect.Value) *MapTable {
	if symbols == nil {
		symbols = make(map[string]reflect.Value)
	}
	return &MapTable{symbols: symbols}
}

func (t *MapTable) Get(name string) (reflect.Value, bool) {
	value, ok := t.symbols[name]
	return value, ok
}

func (t *MapTable) Set(name string, value reflect.Value) {
	t.symbols[name] = value
}

func (t *MapTable) Delete(name string) {
	delete(t.symbols, name)
}

func (t *MapTable) Contains(name string) bool {
	_, ok := t.symbols[name]
	return ok
}

func (t *MapTable) Keys() []string {
	keys := make([]string, 0, len(t.symbols))
	for name := range t.symbols {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of bound names.
func (t *MapTable) Len() int {
	return len(t.symbols)
}

// Snapshot returns a copy of the table's current bindings.
func (t *MapTable) Snapshot() map[string]reflect.Value {
	out := make(map[string]reflect.Value, len(t.symbols))
	for name, value := range t.symbols {
		out[name] = value
	}
	return out
}
