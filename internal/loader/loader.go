// Package loader obtains per-module exported symbol sets from the embedded
// interpreter's pre-extracted standard library tables.
package loader

import (
	"fmt"
	"go/token"
	"os"
	"path"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/traefik/yaegi/stdlib"

	"github.com/MapleCCC/importall/internal/logger"
)

// NoInitImportEnv disables the one-time eager pre-load of every module's
// symbol set. Presence is what matters; the value is ignored. Useful for
// callers that only ever touch a restricted module set.
const NoInitImportEnv = "IMPORTALL_NO_INIT_IMPORT"

// ModuleNotFoundError reports that a module has no symbol table in this
// build. It is recoverable: callers skip the module and move on.
type ModuleNotFoundError struct {
	Module string
}

func (e *ModuleNotFoundError) Error() string {
	return fmt.Sprintf("module %q has no symbol table in this build", e.Module)
}

// StdlibSource lists exported symbols of standard library modules, backed by
// the interpreter's symbol tables. The zero value is not usable; construct
// with New.
type StdlibSource struct {
	once  sync.Once
	eager bool

	mu    sync.Mutex
	cache map[string]map[string]reflect.Value
}

// New returns a source over the interpreter's standard library tables.
// Unless NoInitImportEnv is set in the environment, the first lookup
// pre-loads every module's symbol set in one pass.
func New() *StdlibSource {
	_, noInit := os.LookupEnv(NoInitImportEnv)
	return &StdlibSource{
		eager: !noInit,
		cache: make(map[string]map[string]reflect.Value),
	}
}

// ListSymbols returns the exported symbol set of the given module. The
// returned map is owned by the caller. A module unknown to this build yields
// a ModuleNotFoundError.
func (s *StdlibSource) ListSymbols(module string) (map[string]reflect.Value, error) {
	s.once.Do(func() {
		if !s.eager {
			logger.Debug("eager pre-load disabled via %s", NoInitImportEnv)
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for key, symbols := range stdlib.Symbols {
			s.cache[importPathOf(key)] = exported(symbols)
		}
		logger.Debug("pre-loaded symbol sets for %d modules", len(s.cache))
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	symbols, ok := s.cache[module]
	if !ok {
		symbols, ok = stdlib.Symbols[symbolKey(module)]
		if !ok {
			return nil, &ModuleNotFoundError{Module: module}
		}
		symbols = exported(symbols)
		s.cache[module] = symbols
	}

	out := make(map[string]reflect.Value, len(symbols))
	for name, value := range symbols {
		out[name] = value
	}
	return out, nil
}

var majorVersionSuffix = regexp.MustCompile(`^v\d+$`)

// symbolKey maps an import path to the interpreter's table key, which is the
// import path followed by the package name: "net/http" -> "net/http/http",
// "math/rand/v2" -> "math/rand/v2/rand".
func symbolKey(module string) string {
	name := path.Base(module)
	if majorVersionSuffix.MatchString(name) {
		name = path.Base(path.Dir(module))
	}
	return module + "/" + name
}

// importPathOf inverts symbolKey for keys of the interpreter's tables.
func importPathOf(key string) string {
	return path.Dir(key)
}

// exported keeps the names a wildcard import would bring in: exported
// identifiers, minus the interpreter's internal wrapper entries.
func exported(symbols map[string]reflect.Value) map[string]reflect.Value {
	out := make(map[string]reflect.Value, len(symbols))
	for name, value := range symbols {
		if strings.HasPrefix(name, "_") || !token.IsExported(name) {
			continue
		}
		out[name] = value
	}
	return out
}
