package merge

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapSource map[string]map[string]reflect.Value

func (s mapSource) ListSymbols(module string) (map[string]reflect.Value, error) {
	symbols, ok := s[module]
	if !ok {
		return nil, errors.New("no such module")
	}
	out := make(map[string]reflect.Value, len(symbols))
	for name, value := range symbols {
		out[name] = value
	}
	return out, nil
}

func valueOf(v interface{}) reflect.Value { return reflect.ValueOf(v) }

func testSource() mapSource {
	return mapSource{
		"m1": {"x": valueOf(1), "y": valueOf(2)},
		"m2": {"x": valueOf(10)},
	}
}

func TestMergePriorityPrecedence(t *testing.T) {
	merged := Merge([]string{"m1", "m2"}, testSource(), Config{
		Priorities: map[string]int{"m2": 1},
	})

	require.Len(t, merged, 2)
	assert.Equal(t, 10, merged["x"].Value.Interface())
	assert.Equal(t, "m2", merged["x"].Module)
	assert.Equal(t, 2, merged["y"].Value.Interface())
	assert.Equal(t, "m1", merged["y"].Module)
}

func TestMergeHigherPriorityWinsRegardlessOfOrder(t *testing.T) {
	src := mapSource{
		"aaa": {"x": valueOf("from-aaa")},
		"zzz": {"x": valueOf("from-zzz")},
	}

	// aaa is enumerated first, but its higher priority must still win.
	merged := Merge([]string{"aaa", "zzz"}, src, Config{
		Priorities: map[string]int{"aaa": 5},
	})
	assert.Equal(t, "from-aaa", merged["x"].Value.Interface())

	// Negative priority demotes below the default 0.
	merged = Merge([]string{"aaa", "zzz"}, src, Config{
		Priorities: map[string]int{"zzz": -1},
	})
	assert.Equal(t, "from-aaa", merged["x"].Value.Interface())
}

func TestMergeTieBreakIsEnumerationOrder(t *testing.T) {
	src := mapSource{
		"m1": {"x": valueOf("first")},
		"m2": {"x": valueOf("second")},
	}

	merged := Merge([]string{"m1", "m2"}, src, Config{})
	assert.Equal(t, "second", merged["x"].Value.Interface(),
		"equal priority: the module later in enumeration order wins")

	// Changing only the representation of equal priorities must not change
	// the winner.
	merged = Merge([]string{"m1", "m2"}, src, Config{
		Priorities: map[string]int{"m1": 3, "m2": 3},
	})
	assert.Equal(t, "second", merged["x"].Value.Interface())
}

func TestMergeSingleOriginNameAlwaysPresent(t *testing.T) {
	merged := Merge([]string{"m1", "m2"}, testSource(), Config{
		Priorities: map[string]int{"m1": -100},
	})
	assert.Equal(t, 2, merged["y"].Value.Interface())
}

func TestMergeSkipsFailingModules(t *testing.T) {
	merged := Merge([]string{"m1", "missing", "m2"}, testSource(), Config{})

	require.Len(t, merged, 2)
	assert.Equal(t, 10, merged["x"].Value.Interface())
}

func TestMergeEmptyModuleContributesNothing(t *testing.T) {
	src := testSource()
	src["empty"] = map[string]reflect.Value{}

	merged := Merge([]string{"empty", "m1", "m2"}, src, Config{})
	assert.Len(t, merged, 2)
}

func TestMergeExcludeFilter(t *testing.T) {
	merged := Merge([]string{"m1", "m2"}, testSource(), Config{
		Exclude: func(module, name string) bool {
			return module == "m1" && name == "y"
		},
	})

	require.Len(t, merged, 1)
	assert.Equal(t, 10, merged["x"].Value.Interface())
}

func TestMergeDeterminism(t *testing.T) {
	cfg := Config{Priorities: map[string]int{"m2": 1}}

	first := Merge([]string{"m1", "m2"}, testSource(), cfg)
	for i := 0; i < 10; i++ {
		again := Merge([]string{"m1", "m2"}, testSource(), cfg)
		require.Len(t, again, len(first))
		for name, symbol := range first {
			assert.Equal(t, symbol.Module, again[name].Module)
			assert.Equal(t, symbol.Value.Interface(), again[name].Value.Interface())
		}
	}
}

func TestMergeDoesNotReorderInput(t *testing.T) {
	modules := []string{"m2", "m1"}
	Merge(modules, testSource(), Config{Priorities: map[string]int{"m1": 7}})
	assert.Equal(t, []string{"m2", "m1"}, modules, "caller's slice must stay untouched")
}
