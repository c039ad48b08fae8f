//go:build mage

// Package main contains Mage build targets for prefy developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir      = "bin"
	binName     = "prefy"
	cmdPkg      = "./cmd/prefy"
	examplesDir = "examples"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || version == "" {
		version = "dev"
	}
	ldflags := "-X main.version=" + version
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Examples converts every .prefy file under examples/ with the freshly built
// binary.
func Examples() error {
	mg.Deps(Build)

	inputs, err := filepath.Glob(filepath.Join(examplesDir, "*.prefy"))
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		fmt.Printf("No .prefy files in %s\n", examplesDir)
		return nil
	}
	return sh.RunV(filepath.Join(binDir, binName), inputs...)
}

// Clean removes build output and templates generated from the examples.
func Clean() error {
	if err := sh.Rm(binDir); err != nil {
		return err
	}
	for _, pattern := range []string{"*.json", "*.yaml"} {
		generated, err := filepath.Glob(filepath.Join(examplesDir, pattern))
		if err != nil {
			return err
		}
		for _, path := range generated {
			if err := sh.Rm(path); err != nil {
				return err
			}
		}
	}
	return nil
}

// Stats prints project metrics: Go production/test LOC and example entry count.
func Stats() error {
	prodLines, err := countGoLines(".", false)
	if err != nil {
		return err
	}
	testLines, err := countGoLines(".", true)
	if err != nil {
		return err
	}
	exampleLines, err := countPrefyLines(examplesDir)
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Category lines (examples):      %d\n", exampleLines)
	return nil
}

// countGoLines walks the directory tree and counts non-blank lines in Go files.
// If testOnly is true, count only _test.go files; otherwise count non-test .go files.
func countGoLines(root string, testOnly bool) (int, error) {
	total := 0
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if info.Name() == "_examples" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		isTest := len(path) > 8 && path[len(path)-8:] == "_test.go"
		if testOnly != isTest {
			return nil
		}
		n, err := countLines(path, func(line string) bool { return line != "" })
		total += n
		return err
	})
	return total, err
}

// countPrefyLines counts category lines (non-blank, non-comment) in the
// .prefy files under root.
func countPrefyLines(root string) (int, error) {
	total := 0
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".prefy" {
			return nil
		}
		n, err := countLines(path, func(line string) bool { return line != "" && line[0] != '#' })
		total += n
		return err
	})
	return total, err
}

func countLines(path string, keep func(string) bool) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	n := 0
	for _, line := range splitLines(data) {
		if keep(line) {
			n++
		}
	}
	return n, nil
}

// splitLines splits data by newline, returning each line as a trimmed string.
func splitLines(data []byte) []string {
	var lines []string
	start := 0
	for i, b := range data {
		if b == '\n' {
			lines = append(lines, trimSpace(data[start:i]))
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, trimSpace(data[start:]))
	}
	return lines
}

// trimSpace returns a string with leading and trailing whitespace removed.
func trimSpace(b []byte) string {
	start, end := 0, len(b)
	for start < end && (b[start] == ' ' || b[start] == '\t' || b[start] == '\r') {
		start++
	}
	for end > start && (b[end-1] == ' ' || b[end-1] == '\t' || b[end-1] == '\r') {
		end--
	}
	return string(b[start:end])
}
