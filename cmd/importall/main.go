// Command importall either launches a REPL within which every available name
// of the standard library is already imported, or runs a script with those
// names injected into its global scope.
//
// Usage: importall [flags] [script]
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/gookit/color"

	"github.com/MapleCCC/importall"
	"github.com/MapleCCC/importall/internal/config"
	"github.com/MapleCCC/importall/internal/logger"
	"github.com/MapleCCC/importall/internal/watch"
)

func main() {
	var (
		configPath        = flag.String("config", "configs/importall.toml", "path to the TOML configuration file")
		listMode          = flag.Bool("list", false, "print the merged symbol table (name and originating module) and exit")
		generateMode      = flag.Bool("generate", false, "regenerate the embedded module dataset from this build and exit")
		watchMode         = flag.Bool("watch", false, "re-run the script whenever it changes")
		output            = flag.String("o", "", "output file for -generate (default stdout)")
		ignoreFlag        = flag.String("ignore", "", "comma-separated modules to skip")
		prioritizedFlag   = flag.String("prioritized", "", "comma-separated modules to boost, each optionally as module=priority")
		includeDeprecated = flag.Bool("include-deprecated", false, "merge deprecated modules and names too (not recommended)")
		skipBuiltins      = flag.Bool("skip-builtin-protection", false, "allow merged names to shadow predeclared identifiers")
		verbose           = flag.Bool("verbose", false, "log per-module merge details")
	)
	flag.Parse()

	// 1. Load configuration.
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Println("failed to load configuration:", err)
		os.Exit(1)
	}

	// 2. Initialize logging.
	if err := logger.Setup(cfg.Log.Enabled, cfg.Log.LogDir); err != nil {
		fmt.Printf("failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()
	logger.SetVerbose(cfg.Log.Verbose || *verbose)

	// 3. Assemble merge options: configuration first, flags override.
	opts := optionsFrom(cfg, *ignoreFlag, *prioritizedFlag, *includeDeprecated, *skipBuiltins)

	// 4. Dispatch.
	switch {
	case *generateMode:
		if err := generateDataset(*output); err != nil {
			logger.Error("dataset generation failed: %v", err)
			os.Exit(1)
		}

	case *listMode:
		if err := listSymbols(opts); err != nil {
			logger.Error("%v", err)
			os.Exit(1)
		}

	case flag.NArg() > 0:
		script := flag.Arg(0)
		if *watchMode {
			runScript := func() {
				if err := runScriptFile(script, opts); err != nil {
					logger.Error("script failed: %v", err)
				}
			}
			if err := watch.File(script, runScript); err != nil {
				logger.Error("watch failed: %v", err)
				os.Exit(1)
			}
		} else if err := runScriptFile(script, opts); err != nil {
			logger.Error("script failed: %v", err)
			os.Exit(1)
		}

	default:
		if err := runREPL(cfg.REPL, opts); err != nil {
			logger.Error("repl failed: %v", err)
			os.Exit(1)
		}
	}
}

// optionsFrom merges configuration defaults with command line flags.
func optionsFrom(cfg config.Config, ignore, prioritized string, includeDeprecated, skipBuiltins bool) *importall.Options {
	opts := &importall.Options{
		IncludeDeprecated:     cfg.Merge.IncludeDeprecated || includeDeprecated,
		SkipBuiltinProtection: cfg.Merge.SkipBuiltins || skipBuiltins,
		Ignore:                append([]string(nil), cfg.Merge.Ignore...),
	}

	priorities := make(map[string]int, len(cfg.Merge.Prioritized))
	for module, priority := range cfg.Merge.Prioritized {
		priorities[module] = priority
	}

	for _, entry := range splitList(ignore) {
		opts.Ignore = append(opts.Ignore, entry)
	}

	for _, entry := range splitList(prioritized) {
		module, priority := entry, 1
		if name, value, found := strings.Cut(entry, "="); found {
			n, err := strconv.Atoi(value)
			if err != nil {
				logger.Error("bad priority %q, expected module=integer", entry)
				os.Exit(1)
			}
			module, priority = name, n
		}
		priorities[module] = priority
	}

	if len(priorities) > 0 {
		opts.Prioritized = priorities
	}
	return opts
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// listSymbols prints the merged table, one "name <- module" line per symbol.
func listSymbols(opts *importall.Options) error {
	merged, err := importall.GetMergedTable(opts)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(merged))
	width := 0
	for name := range merged {
		names = append(names, name)
		if len(name) > width {
			width = len(name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Printf("%-*s <- %s\n", width, name, color.FgCyan.Sprintf("%s", merged[name].Module))
	}
	logger.Summary("%d symbols merged", len(names))
	return nil
}
