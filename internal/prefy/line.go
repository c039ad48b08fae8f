// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prefy

import (
	"regexp"
	"strings"
)

// linePattern matches "Category (Prop1, Prop2): Entry1, Entry2".
var linePattern = regexp.MustCompile(`^([^(]+)\(([^)]+)\):\s*(.+)$`)

// SkipReason says why ParseLine produced no category.
type SkipReason int

const (
	// SkipNone means the line was accepted.
	SkipNone SkipReason = iota
	// SkipBlank covers empty lines and # comments. No warning is printed.
	SkipBlank
	// SkipInvalid means the line does not have the category shape.
	SkipInvalid
	// SkipIncomplete means the name, properties, or entries came out empty.
	SkipIncomplete
)

func (r SkipReason) String() string {
	switch r {
	case SkipNone:
		return "accepted"
	case SkipBlank:
		return "blank"
	case SkipInvalid:
		return "invalid"
	case SkipIncomplete:
		return "incomplete"
	default:
		return "unknown"
	}
}

// Line is one accepted .prefy line.
type Line struct {
	Category   string
	Properties []string
	Entries    []string
}

// ParseLine parses one raw line. When the returned reason is not SkipNone
// the Line is zero.
func ParseLine(raw string) (Line, SkipReason) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return Line{}, SkipBlank
	}

	m := linePattern.FindStringSubmatch(line)
	if m == nil {
		return Line{}, SkipInvalid
	}

	l := Line{
		Category:   strings.TrimSpace(m[1]),
		Properties: splitList(m[2]),
		Entries:    splitList(m[3]),
	}
	if l.Category == "" || len(l.Properties) == 0 || len(l.Entries) == 0 {
		return Line{}, SkipIncomplete
	}
	return l, SkipNone
}

// splitList splits s on commas, trims each piece, and drops empty pieces.
// Order and duplicates are preserved.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
