// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data structures shared across prefy packages: the
// generated template document and the configuration for each stage.
package types

// LevelNone is the level every entry property starts at.
const LevelNone = "none"

// Level is one named, colored rating tier.
type Level struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// DefaultLevels returns the fixed palette written into every template.
// A fresh slice is returned on each call so callers cannot alter the palette.
func DefaultLevels() []Level {
	return []Level{
		{ID: "none", Name: "None", Color: "#ffffff"},
		{ID: "favorite", Name: "Favorite", Color: "#90cdf4"},
		{ID: "liked", Name: "Liked", Color: "#48bb78"},
		{ID: "neutral", Name: "Neutral", Color: "#fbd38d"},
		{ID: "will-try", Name: "Will Try", Color: "#f6ad55"},
		{ID: "disliked", Name: "Disliked", Color: "#fc8181"},
		{ID: "hard-limit", Name: "Hard Limit", Color: "#f56565"},
	}
}

// Entry is one rateable item within a category.
type Entry struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`

	// Levels maps each of the category's property names to a level ID.
	Levels *LevelMap `json:"levels" yaml:"levels"`
}

// Category is a named group of entries sharing one set of property axes.
// One category is produced per accepted .prefy line.
type Category struct {
	ID         string   `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	Properties []string `json:"properties" yaml:"properties"`
	Entries    []Entry  `json:"entries" yaml:"entries"`
}

// Template is the full output document.
type Template struct {
	// Username is a placeholder filled in later by the consuming application.
	Username string `json:"username" yaml:"username"`

	// ExportTitle is only emitted when set.
	ExportTitle string `json:"exportTitle,omitempty" yaml:"exportTitle,omitempty"`

	Levels     []Level    `json:"levels" yaml:"levels"`
	Categories []Category `json:"categories" yaml:"categories"`
}

// NewTemplate returns an empty template carrying the default levels.
func NewTemplate() Template {
	return Template{
		Username:   "",
		Levels:     DefaultLevels(),
		Categories: []Category{},
	}
}

// TotalEntries returns the number of entries across all categories.
func (t Template) TotalEntries() int {
	n := 0
	for _, c := range t.Categories {
		n += len(c.Entries)
	}
	return n
}
