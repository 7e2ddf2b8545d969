package main

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/gookit/color"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/MapleCCC/importall"
	"github.com/MapleCCC/importall/internal/config"
	"github.com/MapleCCC/importall/internal/logger"
)

// preludePath is the synthetic package the merged table is exposed under.
// Dot-importing it makes every merged name visible unqualified.
const preludePath = "importall/prelude"

// newInterpreter builds an interpreter whose global scope already contains
// every merged symbol. Qualified imports of the standard library keep
// working alongside.
func newInterpreter(opts *importall.Options) (*interp.Interpreter, error) {
	table := importall.NewMapTable()
	if err := importall.Importall(table, opts); err != nil {
		return nil, err
	}

	i := interp.New(interp.Options{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})

	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, err
	}
	if err := i.Use(interp.Exports{preludePath + "/prelude": table.Snapshot()}); err != nil {
		return nil, err
	}
	if _, err := i.Eval(fmt.Sprintf("import . %q", preludePath)); err != nil {
		return nil, err
	}

	return i, nil
}

// runScriptFile evaluates a script with the merged table injected into its
// global scope, the Go analogue of running a script with a pre-populated
// builtins namespace.
func runScriptFile(script string, opts *importall.Options) error {
	i, err := newInterpreter(opts)
	if err != nil {
		return err
	}
	_, err = i.EvalPath(script)
	return err
}

func highlight(s string) string {
	return color.Bold.Sprintf("%s", s)
}

func brightGreen(s string) string {
	return color.New(color.FgGreen, color.Bold).Sprintf("%s", s)
}

// runREPL reads expressions line by line and evaluates them with every
// standard library name already in scope.
func runREPL(cfg config.REPLConfig, opts *importall.Options) error {
	i, err := newInterpreter(opts)
	if err != nil {
		return err
	}

	prompt := cfg.Prompt
	if prompt == "" {
		prompt = ">>> "
	}

	if cfg.Banner {
		fmt.Printf("importall REPL %s on %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		fmt.Println(highlight("Every available name from the standard library is already imported. " +
			"Use them directly instead of unnecessarily importing them again."))
		fmt.Println(prompt + brightGreen("import everything!🚀✨"))
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(prompt)
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		value, err := i.Eval(line)
		if err != nil {
			fmt.Println(color.FgRed.Sprintf("%v", err))
			continue
		}
		if value.IsValid() {
			fmt.Printf("%v\n", value)
		}
	}

	logger.Info("exiting importall REPL...")
	return scanner.Err()
}
