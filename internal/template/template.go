// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package template loads generated templates back from disk and summarizes
// them. Loading checks the document against the embedded template schema,
// which describes what prefy writes; it says nothing about what a consuming
// application accepts.
package template

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/prefy/pkg/types"
)

//go:embed template.schema.json
var schemaJSON string

const schemaURL = "https://prefy.local/template.schema.json"

// SchemaError lists every schema violation found in a document.
type SchemaError struct {
	Path   string
	Issues []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid template %s: %s", e.Path, strings.Join(e.Issues, "; "))
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("adding template schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compiling template schema: %w", err)
	}
	return schema, nil
}

// Load reads a JSON or YAML template (by extension) from path, checks it
// against the template schema, and decodes it. A missing username is
// treated as the empty string.
func Load(path string) (types.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Template{}, fmt.Errorf("reading template: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yamlToJSON(data)
		if err != nil {
			return types.Template{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	return Decode(path, data)
}

// Decode checks and decodes JSON template data. name is used in errors.
func Decode(name string, data []byte) (types.Template, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return types.Template{}, fmt.Errorf("parsing %s: %w", name, err)
	}

	schema, err := compileSchema()
	if err != nil {
		return types.Template{}, err
	}
	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return types.Template{}, fmt.Errorf("validating %s: %w", name, err)
		}
		se := &SchemaError{Path: name}
		collectIssues(se, ve)
		return types.Template{}, se
	}

	var tmpl types.Template
	if err := json.Unmarshal(data, &tmpl); err != nil {
		return types.Template{}, fmt.Errorf("decoding %s: %w", name, err)
	}
	if tmpl.Categories == nil {
		tmpl.Categories = []types.Category{}
	}
	return tmpl, nil
}

func collectIssues(se *SchemaError, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		loc := err.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		se.Issues = append(se.Issues, fmt.Sprintf("%s: %s", loc, err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectIssues(se, cause)
	}
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

// Summary describes a loaded template.
type Summary struct {
	Categories int
	Entries    int
	Properties int
	Levels     int

	// DuplicateIDs lists category or entry IDs that occur more than once.
	// Duplicates are allowed; they are reported for information only.
	DuplicateIDs []string
}

// Summarize counts the contents of t.
func Summarize(t types.Template) Summary {
	s := Summary{
		Categories: len(t.Categories),
		Levels:     len(t.Levels),
	}

	seen := make(map[string]int)
	for _, c := range t.Categories {
		seen[c.ID]++
		s.Properties += len(c.Properties)
		s.Entries += len(c.Entries)
		// Entry IDs restart per category, so only collisions inside a
		// category are interesting.
		inCat := make(map[string]int)
		for _, e := range c.Entries {
			inCat[e.ID]++
		}
		for id, n := range inCat {
			if n > 1 {
				s.DuplicateIDs = append(s.DuplicateIDs, c.ID+"/"+id)
			}
		}
	}
	for id, n := range seen {
		if n > 1 {
			s.DuplicateIDs = append(s.DuplicateIDs, id)
		}
	}
	sort.Strings(s.DuplicateIDs)
	return s
}

// Write prints the summary and a per-category breakdown to w.
func (s Summary) Write(w io.Writer, t types.Template) {
	if t.ExportTitle != "" {
		fmt.Fprintf(w, "Title: %s\n", t.ExportTitle)
	}
	fmt.Fprintf(w, "%d levels, %d categories, %d total entries\n", s.Levels, s.Categories, s.Entries)
	for _, c := range t.Categories {
		fmt.Fprintf(w, "  %-30s %3d entries  (%s)\n", c.Name, len(c.Entries), strings.Join(c.Properties, ", "))
	}
	if len(s.DuplicateIDs) > 0 {
		fmt.Fprintf(w, "Note: %d duplicate IDs: %s\n", len(s.DuplicateIDs), strings.Join(s.DuplicateIDs, ", "))
	}
}
