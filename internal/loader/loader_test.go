package loader

import (
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSymbolsFmt(t *testing.T) {
	src := New()

	symbols, err := src.ListSymbols("fmt")
	require.NoError(t, err)

	assert.Contains(t, symbols, "Println")
	assert.Contains(t, symbols, "Sprintf")
	assert.Contains(t, symbols, "Stringer")

	for name := range symbols {
		assert.False(t, strings.HasPrefix(name, "_"), "wrapper entry %q leaked", name)
		assert.True(t, token.IsExported(name), "unexported name %q leaked", name)
	}
}

func TestListSymbolsNestedPackage(t *testing.T) {
	src := New()

	symbols, err := src.ListSymbols("net/http")
	require.NoError(t, err)
	assert.Contains(t, symbols, "Get")
	assert.Contains(t, symbols, "StatusOK")
}

func TestListSymbolsReturnsOwnedCopy(t *testing.T) {
	src := New()

	first, err := src.ListSymbols("sort")
	require.NoError(t, err)
	delete(first, "Strings")

	again, err := src.ListSymbols("sort")
	require.NoError(t, err)
	assert.Contains(t, again, "Strings")
}

func TestListSymbolsUnknownModule(t *testing.T) {
	src := New()

	_, err := src.ListSymbols("no/such/module")
	var notFound *ModuleNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "no/such/module", notFound.Module)
}

func TestLazyModeStillLoads(t *testing.T) {
	t.Setenv(NoInitImportEnv, "1")

	src := New()
	assert.False(t, src.eager)

	symbols, err := src.ListSymbols("strings")
	require.NoError(t, err)
	assert.Contains(t, symbols, "ToUpper")
}

func TestSymbolKey(t *testing.T) {
	assert.Equal(t, "fmt/fmt", symbolKey("fmt"))
	assert.Equal(t, "net/http/http", symbolKey("net/http"))
	assert.Equal(t, "math/rand/v2/rand", symbolKey("math/rand/v2"))
}

func TestImportPathOf(t *testing.T) {
	assert.Equal(t, "fmt", importPathOf("fmt/fmt"))
	assert.Equal(t, "net/http", importPathOf("net/http/http"))
	assert.Equal(t, "math/rand/v2", importPathOf("math/rand/v2/rand"))
}
