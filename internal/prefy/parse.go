// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prefy parses the .prefy line format into template categories.
//
// Each non-blank, non-comment line has the shape
//
//	Category Name (Property 1, Property 2): Entry 1, Entry 2
//
// and becomes one category whose entries start at the "none" level for
// every property. Malformed lines are reported and skipped; they never
// abort a parse.
package prefy

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/pdiddy/prefy/pkg/types"
)

// maxLineSize bounds a single .prefy line.
const maxLineSize = 4 << 20

const byteOrderMark = "\uFEFF"

// Parse reads .prefy content from r and returns the assembled template.
// Warnings for skipped lines and a confirmation per accepted category are
// written to w. Only read errors and invalid UTF-8 are returned.
func Parse(r io.Reader, w io.Writer) (types.Template, error) {
	tmpl := types.NewTemplate()

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNum := 0
	for sc.Scan() {
		lineNum++
		raw := sc.Text()
		if lineNum == 1 {
			raw = strings.TrimPrefix(raw, byteOrderMark)
		}
		if !utf8.ValidString(raw) {
			return types.Template{}, fmt.Errorf("line %d: invalid UTF-8", lineNum)
		}

		line, reason := ParseLine(raw)
		switch reason {
		case SkipBlank:
			continue
		case SkipInvalid:
			log.Debug("skipping line", "line", lineNum, "reason", reason)
			fmt.Fprintf(w, "Warning: Skipping invalid line: %s\n", strings.TrimSpace(raw))
			continue
		case SkipIncomplete:
			log.Debug("skipping line", "line", lineNum, "reason", reason)
			fmt.Fprintf(w, "Warning: Skipping incomplete line: %s\n", strings.TrimSpace(raw))
			continue
		}

		cat := NewCategory(line, len(tmpl.Categories))
		tmpl.Categories = append(tmpl.Categories, cat)
		log.Debug("parsed category", "line", lineNum, "id", cat.ID, "properties", len(cat.Properties))
		fmt.Fprintf(w, "✓ Parsed category '%s' with %d entries\n", cat.Name, len(cat.Entries))
	}
	if err := sc.Err(); err != nil {
		return types.Template{}, fmt.Errorf("reading line %d: %w", lineNum+1, err)
	}

	return tmpl, nil
}

// ParseString is Parse over an in-memory document.
func ParseString(content string, w io.Writer) (types.Template, error) {
	return Parse(strings.NewReader(content), w)
}
