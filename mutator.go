package importall

import (
	"reflect"
	"sort"
	"sync"

	"github.com/MapleCCC/importall/internal/merge"
	"github.com/MapleCCC/importall/internal/stdlib"
)

// applyRecord remembers what one merge-and-apply did to one table: the names
// it wrote, and for names that pre-existed, the value to restore.
type applyRecord struct {
	added []string
	prior map[string]reflect.Value
}

var (
	recordsMu sync.Mutex
	records   = make(map[MutableSymbolTable]*applyRecord)
)

// checkTable validates a target table up front, before any mutation.
func checkTable(table MutableSymbolTable) error {
	if table == nil {
		return &InterfaceError{Reason: "table is nil"}
	}
	rv := reflect.ValueOf(table)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Slice, reflect.Interface:
		if rv.IsNil() {
			return &InterfaceError{Reason: "table is a typed nil"}
		}
	}
	if !rv.Type().Comparable() {
		return &InterfaceError{Reason: "table type is not identity-comparable; use a pointer-shaped table"}
	}
	return nil
}

// apply writes a merged table into the target, recording enough to reverse
// the change. When protectBuiltins is set, names of predeclared identifiers
// are skipped per name: they stay in the merged table, they are just never
// written.
//
// A repeated apply on the same table replaces the previous record: revert
// undoes the most recent merge-and-apply.
func apply(table MutableSymbolTable, merged map[string]merge.Symbol, protectBuiltins bool) error {
	if err := checkTable(table); err != nil {
		return err
	}

	var builtins map[string]bool
	if protectBuiltins {
		builtins = stdlib.BuiltinNames()
	}

	// Deterministic application order, for reproducible logs and records.
	names := make([]string, 0, len(merged))
	for name := range merged {
		names = append(names, name)
	}
	sort.Strings(names)

	record := &applyRecord{prior: make(map[string]reflect.Value)}

	for _, name := range names {
		if protectBuiltins && builtins[name] {
			continue
		}
		if previous, ok := table.Get(name); ok {
			record.prior[name] = previous
		}
		table.Set(name, merged[name].Value)
		record.added = append(record.added, name)
	}

	recordsMu.Lock()
	records[table] = record
	recordsMu.Unlock()

	return nil
}

// revert undoes the most recent apply recorded against the table: every name
// the apply wrote is restored to its prior value, or removed if it had none.
// Reverting a table with no record, including reverting twice, is a no-op.
func revert(table MutableSymbolTable) {
	// A table that fails validation can never have been applied to, so it
	// has no record to undo.
	if checkTable(table) != nil {
		return
	}

	recordsMu.Lock()
	record, ok := records[table]
	if ok {
		delete(records, table)
	}
	recordsMu.Unlock()

	if !ok {
		return
	}

	for _, name := range record.added {
		if previous, found := record.prior[name]; found {
			table.Set(name, previous)
		} else {
			table.Delete(name)
		}
	}
}
