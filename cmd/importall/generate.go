package main

import (
	"fmt"
	"os"
	"path"
	"sort"

	toml "github.com/pelletier/go-toml/v2"
	yaegistdlib "github.com/traefik/yaegi/stdlib"

	stdlibdata "github.com/MapleCCC/importall/internal/stdlib"
	"github.com/MapleCCC/importall/internal/logger"
)

// generateDataset rebuilds the version-keyed module list from the symbol
// tables compiled into this binary. Maintainers run it after bumping the
// toolchain and drop the output under internal/stdlib/versions/.
func generateDataset(output string) error {
	seen := make(map[string]bool)
	for key := range yaegistdlib.Symbols {
		// Table keys are import paths with the package name appended.
		seen[path.Dir(key)] = true
	}

	modules := make([]string, 0, len(seen))
	for module := range seen {
		modules = append(modules, module)
	}
	sort.Strings(modules)

	version := stdlibdata.RuntimeVersion()

	doc := struct {
		Version string   `toml:"version"`
		Modules []string `toml:"modules"`
	}{
		Version: version.String(),
		Modules: modules,
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}

	if output == "" {
		fmt.Print(string(data))
	} else if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}

	logger.Summary("dataset for %s: %d modules", version, len(modules))
	return nil
}
