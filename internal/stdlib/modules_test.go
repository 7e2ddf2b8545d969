package stdlib

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	for input, want := range map[string]Version{
		"go1.21":       {1, 21},
		"go1.22.4":     {1, 22},
		"go1.21.5 X:b": {1, 21},
	} {
		got, err := ParseVersion(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	for _, input := range []string{"", "1.21", "devel +abcdef", "gofoo"} {
		_, err := ParseVersion(input)
		assert.Error(t, err, input)
	}
}

func TestVersionAtLeast(t *testing.T) {
	assert.True(t, Version{1, 22}.AtLeast(Version{1, 21}))
	assert.True(t, Version{1, 21}.AtLeast(Version{1, 21}))
	assert.True(t, Version{2, 0}.AtLeast(Version{1, 99}))
	assert.False(t, Version{1, 20}.AtLeast(Version{1, 21}))
}

func TestModulesSortedAndUnique(t *testing.T) {
	for _, version := range DatasetVersions() {
		modules := Modules(version)
		require.NotEmpty(t, modules)
		assert.True(t, sort.StringsAreSorted(modules), "enumeration order must be canonical")

		seen := make(map[string]bool, len(modules))
		for _, module := range modules {
			assert.False(t, seen[module], "duplicate module %s", module)
			seen[module] = true
		}

		assert.Contains(t, modules, "fmt")
		assert.Contains(t, modules, "net/http")
	}
}

func TestModulesReturnsCopy(t *testing.T) {
	version := DatasetVersions()[0]
	modules := Modules(version)
	modules[0] = "tampered"
	assert.NotEqual(t, "tampered", Modules(version)[0])
}

func TestModulesVersionSelection(t *testing.T) {
	// go1.22 introduced math/rand/v2.
	assert.Contains(t, Modules(Version{1, 22}), "math/rand/v2")
	assert.NotContains(t, Modules(Version{1, 21}), "math/rand/v2")

	// A release newer than every dataset gets the newest dataset.
	assert.Contains(t, Modules(Version{1, 99}), "math/rand/v2")

	// A release older than every dataset still gets a usable list.
	assert.Contains(t, Modules(Version{1, 2}), "fmt")
}

func TestDeprecatedModules(t *testing.T) {
	deprecated := DeprecatedModules(Version{1, 21})
	assert.True(t, deprecated["io/ioutil"])
	assert.True(t, deprecated["crypto/dsa"])
	assert.False(t, deprecated["fmt"])

	assert.Empty(t, DeprecatedModules(Version{1, 15}))
}

func TestDeprecatedName(t *testing.T) {
	v := Version{1, 21}
	assert.True(t, DeprecatedName(v, "strings", "Title"))
	assert.True(t, DeprecatedName(v, "math/rand", "Seed"))
	assert.False(t, DeprecatedName(v, "strings", "ToUpper"))
	assert.False(t, DeprecatedName(v, "bytes", "Title"), "deprecation is per module")

	assert.False(t, DeprecatedName(Version{1, 17}, "strings", "Title"),
		"Title was fine before go1.18")
}

func TestRuntimeVersionParses(t *testing.T) {
	v := RuntimeVersion()
	assert.Equal(t, 1, v.Major)
	assert.GreaterOrEqual(t, v.Minor, 21)
}

func TestBuiltinNames(t *testing.T) {
	builtins := BuiltinNames()

	for _, name := range []string{"len", "cap", "make", "append", "true", "false", "nil", "iota", "int", "string", "error"} {
		assert.True(t, builtins[name], "missing predeclared identifier %q", name)
	}

	assert.False(t, builtins["Printf"])
	assert.False(t, builtins["fmt"])
}
