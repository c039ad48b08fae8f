// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prefy

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// CategoryPrefix starts every category ID.
	CategoryPrefix = "cat"
	// EntryPrefix starts every entry ID.
	EntryPrefix = "entry"
)

var nonIDChars = regexp.MustCompile(`[^a-z0-9]+`)

// Sanitize lower-cases name and collapses each run of characters outside
// [a-z0-9] into a single underscore. Underscores left at either end are
// trimmed, so "Will Try!" becomes "will_try".
func Sanitize(name string) string {
	s := nonIDChars.ReplaceAllString(strings.ToLower(name), "_")
	return strings.Trim(s, "_")
}

// GenerateID returns "{prefix}_{sanitized name}_{index}". IDs are not
// guaranteed unique: two names that sanitize identically at the same index
// produce the same ID.
func GenerateID(prefix, name string, index int) string {
	return fmt.Sprintf("%s_%s_%d", prefix, Sanitize(name), index)
}

// DefaultID returns the ID used for an item that has no position,
// "{prefix}_{sanitized name}_default".
func DefaultID(prefix, name string) string {
	return fmt.Sprintf("%s_%s_default", prefix, Sanitize(name))
}
