// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prefy

import "github.com/pdiddy/prefy/pkg/types"

// NewCategory builds the category for an accepted line. index is the
// category's position among accepted categories, not its line number.
// Every entry starts with each property at types.LevelNone.
func NewCategory(l Line, index int) types.Category {
	entries := make([]types.Entry, len(l.Entries))
	for i, name := range l.Entries {
		entries[i] = types.Entry{
			ID:     GenerateID(EntryPrefix, name, i),
			Name:   name,
			Levels: types.NewLevelMap(l.Properties),
		}
	}

	props := make([]string, len(l.Properties))
	copy(props, l.Properties)

	return types.Category{
		ID:         GenerateID(CategoryPrefix, l.Category, index),
		Name:       l.Category,
		Properties: props,
		Entries:    entries,
	}
}
