// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns .prefy files into template files on disk.
// It owns path handling, the extension check, progress output, and the
// atomic write of the serialized template; line parsing lives in
// internal/prefy.
package convert

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/pdiddy/prefy/internal/prefy"
	"github.com/pdiddy/prefy/pkg/types"
)

// InputExtension is the extension expected on .prefy source files.
const InputExtension = ".prefy"

// ErrNotFound reports a missing input file.
var ErrNotFound = errors.New("not found")

// Result describes one successful conversion.
type Result struct {
	Input    string
	Output   string
	Template types.Template
}

// Categories returns the number of categories written.
func (r Result) Categories() int {
	return len(r.Template.Categories)
}

// Entries returns the number of entries written across all categories.
func (r Result) Entries() int {
	return r.Template.TotalEntries()
}

// BatchResult holds the outcome of converting several files.
type BatchResult struct {
	Converted int
	Failed    int
	Results   []Result
}

// Total returns the number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Failed
}

// HasFailures reports whether any file failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// OutputPath returns input with its extension replaced by the extension for
// format. A name with no extension gets one appended.
func OutputPath(input string, format types.OutputFormat) string {
	return strings.TrimSuffix(input, extension(input)) + format.Extension()
}

// extension is filepath.Ext except that a leading dot on the base name
// (".prefy") is part of the name, not an extension.
func extension(path string) string {
	ext := filepath.Ext(path)
	if ext == filepath.Base(path) {
		return ""
	}
	return ext
}

// ConvertFile parses the .prefy file at input and writes the template next
// to it (or to cfg.Output). Progress, per-line warnings, and a summary are
// written to w. A missing input returns an error wrapping ErrNotFound and
// leaves the file system untouched.
func ConvertFile(input string, cfg types.ConvertConfig, w io.Writer) (Result, error) {
	if _, err := os.Stat(input); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Result{}, fmt.Errorf("File '%s' %w", input, ErrNotFound)
		}
		return Result{}, fmt.Errorf("checking %s: %w", input, err)
	}

	if ext := extension(input); ext != InputExtension {
		fmt.Fprintf(w, "Warning: Expected %s extension, got %s\n", InputExtension, ext)
	}

	enc, err := EncoderFor(cfg.Format)
	if err != nil {
		return Result{}, err
	}

	output := cfg.Output
	if output == "" {
		output = OutputPath(input, cfg.Format)
	}

	fmt.Fprintf(w, "Reading from: %s\n", input)
	fmt.Fprintf(w, "Writing to: %s\n", output)
	fmt.Fprintln(w)

	tmpl, err := parseFile(input, w)
	if err != nil {
		return Result{}, err
	}
	tmpl.ExportTitle = cfg.Title

	if err := writeTemplate(output, enc, tmpl); err != nil {
		return Result{}, err
	}

	res := Result{Input: input, Output: output, Template: tmpl}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "✓ Successfully generated %s\n", output)
	fmt.Fprintf(w, "  - %d categories\n", res.Categories())
	fmt.Fprintf(w, "  - %d total entries\n", res.Entries())
	return res, nil
}

// ConvertPaths converts each input in order, reporting failures to w and
// continuing with the next file. A summary line follows when more than one
// file was given.
func ConvertPaths(inputs []string, cfg types.ConvertConfig, w io.Writer) BatchResult {
	var result BatchResult
	for i, in := range inputs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		res, err := ConvertFile(in, cfg, w)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			result.Failed++
			continue
		}
		result.Converted++
		result.Results = append(result.Results, res)
	}
	if len(inputs) > 1 {
		fmt.Fprintf(w, "\nBatch summary: %d converted, %d failed (total: %d)\n",
			result.Converted, result.Failed, result.Total())
	}
	return result
}

func parseFile(path string, w io.Writer) (types.Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.Template{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	log.Debug("parsing", "path", path)
	tmpl, err := prefy.Parse(f, w)
	if err != nil {
		return types.Template{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return tmpl, nil
}

// writeTemplate encodes tmpl into a temporary file beside path and renames
// it into place, so a failed write never leaves a partial template.
func writeTemplate(path string, enc Encoder, tmpl types.Template) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".prefy-*.tmp")
	if err != nil {
		return fmt.Errorf("creating output in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := enc.Encode(tmp, tmpl); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	log.Debug("wrote template", "path", path, "categories", len(tmpl.Categories))
	return nil
}
