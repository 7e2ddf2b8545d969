package merge

import (
	"reflect"
	"sort"

	"github.com/MapleCCC/importall/internal/logger"
)

// Symbol is one entry of a merged table: a value and the module it came from.
// The originating module is retained for diagnostics and deterministic
// re-resolution.
type Symbol struct {
	Value  reflect.Value
	Module string
}

// Source obtains the exported symbol set of a single module. Implementations
// may fail per module; such failures are recoverable.
type Source interface {
	ListSymbols(module string) (map[string]reflect.Value, error)
}

// Config tunes a merge.
type Config struct {
	// Priorities maps modules to integer priorities. Absent modules have
	// priority 0.
	Priorities map[string]int

	// Exclude, when non-nil, drops individual names from a module's symbol
	// set before merging.
	Exclude func(module, name string) bool
}

// Merge combines the symbol sets of the given modules into one table.
//
// Modules are processed in ascending priority order; within equal priority,
// in the order given (the caller passes canonical enumeration order). Every
// name is written unconditionally, so a later module overwrites an earlier
// one: strictly higher-priority modules always win, and among equal
// priorities the winner is the module later in enumeration order. That is
// enumeration-order precedence, not alphabetical precedence. Callers wanting a
// specific winner among equal priorities disambiguate via ignore or distinct
// priorities.
//
// A module whose symbols cannot be listed is logged and skipped; it simply
// contributes nothing.
func Merge(modules []string, src Source, cfg Config) map[string]Symbol {
	ordered := make([]string, len(modules))
	copy(ordered, modules)

	// Stable sort keeps enumeration order within equal priority.
	sort.SliceStable(ordered, func(i, j int) bool {
		return cfg.Priorities[ordered[i]] < cfg.Priorities[ordered[j]]
	})

	merged := make(map[string]Symbol)
	loaded := 0

	for _, module := range ordered {
		symbols, err := src.ListSymbols(module)
		if err != nil {
			logger.Debug("skipping module %s: %v", module, err)
			continue
		}
		loaded++
		for name, value := range symbols {
			if cfg.Exclude != nil && cfg.Exclude(module, name) {
				continue
			}
			merged[name] = Symbol{Value: value, Module: module}
		}
	}

	logger.Module("merged %d symbols from %d/%d modules", len(merged), loaded, len(modules))
	return merged
}
