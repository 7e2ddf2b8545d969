// Package importall imports every available name of the standard library
// into a single symbol table, the Go equivalent of C++'s <bits/stdc++.h>.
//
// Call Importall with a mutable symbol table, and every exported name of
// every importable standard library package (as exposed by the embedded
// interpreter's pre-extracted symbol tables) is merged into it:
//
//	table := importall.NewMapTable()
//	if err := importall.Importall(table, nil); err != nil { ... }
//
//	println, _ := table.Get("Println")
//	println.Call([]reflect.Value{reflect.ValueOf("hello")})
//
// Name collisions across packages are likely. They are resolved by module
// priority: names from a higher-priority module override names from a
// lower-priority one. Say a user wants NewReader from bufio instead of the
// one from bytes: either boost bufio through Prioritized, or drop bytes
// through Ignore.
//
//	importall.Importall(table, &importall.Options{Prioritized: []string{"bufio"}})
//	// Alternatives:
//	//   Prioritized: map[string]int{"bufio": 1, "bytes": -1}
//	//   Ignore: []string{"bytes"}
//
// When priorities tie, the module later in canonical enumeration order wins.
// That is enumeration-order precedence, not alphabetical precedence: it is a
// committed property of the merge, stable across calls for a fixed release
// and configuration, but the winner is the lexicographically later import
// path, which may surprise callers expecting the earlier one.
//
// To undo a merge, call Deimportall with the same table: every name the
// merge wrote is restored to its prior value or removed. To obtain the
// merged mapping without touching any table, call GetAllSymbols.
//
// Setting the IMPORTALL_NO_INIT_IMPORT environment variable before process
// start disables the one-time eager pre-load of all module symbol sets.
package importall

import (
	"reflect"
	"sort"
	"sync"

	"github.com/MapleCCC/importall/internal/loader"
	"github.com/MapleCCC/importall/internal/logger"
	"github.com/MapleCCC/importall/internal/merge"
	"github.com/MapleCCC/importall/internal/stdlib"
)

// SymbolSource obtains the exported symbol set of a single module. The
// default source projects the embedded interpreter's standard library
// tables; tests and embedders may substitute their own.
type SymbolSource interface {
	ListSymbols(module string) (map[string]reflect.Value, error)
}

// Symbol is one entry of a merged table: a value and the module it
// originated from. The module tag answers "which package did this name come
// from" and makes re-resolution deterministic.
type Symbol struct {
	Value  reflect.Value
	Module string
}

// Options configure a merge. The zero value (and a nil *Options) gives the
// defaults: builtins protected, deprecated modules and names excluded, no
// priorities, nothing ignored, the full standard library enumerated.
type Options struct {
	// SkipBuiltinProtection allows merged names to overwrite names of
	// predeclared identifiers in the target table. By default such names
	// are skipped during apply.
	SkipBuiltinProtection bool

	// IncludeDeprecated merges deprecated modules and deprecated names too.
	// They are excluded by default: their presence only eases migration
	// across releases, and hopefully nobody reaches for them on purpose.
	IncludeDeprecated bool

	// Prioritized is either a []string of modules boosted to priority 1, or
	// a map[string]int of explicit priorities. Unlisted modules default to
	// priority 0; negative values are valid. Anything else is a
	// ConfigurationError.
	Prioritized interface{}

	// Ignore lists modules excluded before loading. An ignored module is
	// never loaded and never contributes errors.
	Ignore []string

	// Modules restricts enumeration to the given module set instead of the
	// release's full importable list. Mostly useful together with
	// IMPORTALL_NO_INIT_IMPORT and a custom Source.
	Modules []string

	// Source substitutes the symbol source. Nil means the shared standard
	// library source.
	Source SymbolSource
}

// NoInitImportEnv is the environment variable that disables the one-time
// eager pre-load of every module's symbol set. Presence is what matters; the
// value is ignored.
const NoInitImportEnv = loader.NoInitImportEnv

// defaultSource is process-wide state with an explicit lifecycle: it is
// created once, on first use of any operation, never at import time.
var defaultSource = sync.OnceValue(func() *loader.StdlibSource {
	return loader.New()
})

// Importall merges every available standard library name into the given
// table. The table must be pointer-shaped (identity-comparable); see
// MutableSymbolTable.
//
// The operation either fully succeeds, possibly with some modules silently
// skipped because this build carries no symbols for them, or fails before
// any mutation with a ConfigurationError or an InterfaceError. No partial
// application is observable.
func Importall(table MutableSymbolTable, opts *Options) error {
	if opts == nil {
		opts = &Options{}
	}

	// Validate the table before loading anything: a doomed apply must not
	// have side effects either.
	if err := checkTable(table); err != nil {
		return err
	}

	merged, err := mergedTable(opts)
	if err != nil {
		return err
	}

	if err := apply(table, merged, !opts.SkipBuiltinProtection); err != nil {
		return err
	}

	logger.Summary("applied %d symbols to table", len(merged))
	return nil
}

// Deimportall undoes the most recent Importall recorded against the table:
// names it wrote are restored to their prior values or removed entirely.
// Calling it twice, or on a table never applied to, is a no-op.
func Deimportall(table MutableSymbolTable) {
	revert(table)
}

// GetAllSymbols returns the merged name-to-value mapping under the given
// options without touching any table. For fixed options and a fixed release
// the result is identical across calls.
func GetAllSymbols(opts *Options) (map[string]reflect.Value, error) {
	if opts == nil {
		opts = &Options{}
	}
	merged, err := mergedTable(opts)
	if err != nil {
		return nil, err
	}
	out := make(map[string]reflect.Value, len(merged))
	for name, symbol := range merged {
		out[name] = symbol.Value
	}
	return out, nil
}

// GetMergedTable is GetAllSymbols with originating-module tags retained.
func GetMergedTable(opts *Options) (map[string]Symbol, error) {
	if opts == nil {
		opts = &Options{}
	}
	merged, err := mergedTable(opts)
	if err != nil {
		return nil, err
	}
	out := make(map[string]Symbol, len(merged))
	for name, symbol := range merged {
		out[name] = Symbol{Value: symbol.Value, Module: symbol.Module}
	}
	return out, nil
}

// mergedTable runs the enumerate, filter, resolve, merge pipeline.
// Configuration errors surface before any module is loaded.
func mergedTable(opts *Options) (map[string]merge.Symbol, error) {
	priorities, err := merge.ResolvePriorities(opts.Prioritized)
	if err != nil {
		return nil, &ConfigurationError{Err: err}
	}

	version := stdlib.RuntimeVersion()

	modules := opts.Modules
	if modules == nil {
		modules = stdlib.Modules(version)
	} else {
		modules = append([]string(nil), modules...)
		sort.Strings(modules)
	}

	ignored := make(map[string]bool, len(opts.Ignore))
	for _, module := range opts.Ignore {
		ignored[module] = true
	}

	var deprecatedModules map[string]bool
	if !opts.IncludeDeprecated {
		deprecatedModules = stdlib.DeprecatedModules(version)
	}

	kept := modules[:0]
	for _, module := range modules {
		if ignored[module] || deprecatedModules[module] {
			continue
		}
		kept = append(kept, module)
	}
	modules = kept

	cfg := merge.Config{Priorities: priorities}
	if !opts.IncludeDeprecated {
		cfg.Exclude = func(module, name string) bool {
			return stdlib.DeprecatedName(version, module, name)
		}
	}

	src := opts.Source
	if src == nil {
		src = defaultSource()
	}

	return merge.Merge(modules, src, cfg), nil
}
