// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package template

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/prefy/internal/prefy"
	"github.com/pdiddy/prefy/pkg/types"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validTemplate = `{
  "username": "sam",
  "levels": [{"id": "none", "name": "None", "color": "#ffffff"}],
  "categories": [
    {
      "id": "cat_food_0",
      "name": "Food",
      "properties": ["Taste", "Smell"],
      "entries": [
        {"id": "entry_pizza_0", "name": "Pizza", "levels": {"Taste": "liked", "Smell": "none"}}
      ]
    }
  ]
}`

func TestLoad(t *testing.T) {
	tmpl, err := Load(writeFile(t, "t.json", validTemplate))
	require.NoError(t, err)

	assert.Equal(t, "sam", tmpl.Username)
	require.Len(t, tmpl.Categories, 1)
	entry := tmpl.Categories[0].Entries[0]
	assert.Equal(t, []string{"Taste", "Smell"}, entry.Levels.Keys())
	level, _ := entry.Levels.Get("Taste")
	assert.Equal(t, "liked", level)
}

func TestLoad_MissingUsernameDefaultsEmpty(t *testing.T) {
	tmpl, err := Load(writeFile(t, "t.json", `{"levels": [], "categories": []}`))
	require.NoError(t, err)
	assert.Equal(t, "", tmpl.Username)
	assert.NotNil(t, tmpl.Categories)
}

func TestLoad_YAML(t *testing.T) {
	yamlDoc := `
username: ""
levels:
  - id: none
    name: None
    color: "#ffffff"
categories:
  - id: cat_food_0
    name: Food
    properties: [Taste]
    entries:
      - id: entry_pizza_0
        name: Pizza
        levels:
          Taste: none
`
	tmpl, err := Load(writeFile(t, "t.yaml", yamlDoc))
	require.NoError(t, err)
	require.Len(t, tmpl.Categories, 1)
	assert.Equal(t, "Pizza", tmpl.Categories[0].Entries[0].Name)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing levels",
			content: `{"categories": []}`,
			wantErr: "levels",
		},
		{
			name:    "missing categories",
			content: `{"levels": []}`,
			wantErr: "categories",
		},
		{
			name:    "bad color",
			content: `{"levels": [{"id": "x", "name": "X", "color": "red"}], "categories": []}`,
			wantErr: "/levels/0/color",
		},
		{
			name:    "non-string level value",
			content: `{"levels": [], "categories": [{"id": "c", "name": "C", "properties": ["P"], "entries": [{"id": "e", "name": "E", "levels": {"P": 3}}]}]}`,
			wantErr: "/categories/0/entries/0/levels/P",
		},
		{
			name:    "category without properties",
			content: `{"levels": [], "categories": [{"id": "c", "name": "C", "properties": [], "entries": []}]}`,
			wantErr: "/categories/0/properties",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "t.json", tt.content))
			require.Error(t, err)

			var se *SchemaError
			require.True(t, errors.As(err, &se), "want SchemaError, got %T", err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_NotJSON(t *testing.T) {
	_, err := Load(writeFile(t, "t.json", "Food (Taste): Pizza"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSummarize(t *testing.T) {
	tmpl, err := prefy.ParseString(
		"Food (Taste, Smell): Pizza, Pizza!, Sushi\nFood (Taste): Tacos\nMusic (Like): Jazz\n",
		&bytes.Buffer{},
	)
	require.NoError(t, err)

	s := Summarize(tmpl)
	assert.Equal(t, 3, s.Categories)
	assert.Equal(t, 5, s.Entries)
	assert.Equal(t, 4, s.Properties)
	assert.Equal(t, 7, s.Levels)
	// "Pizza" and "Pizza!" differ by position, so their IDs do not collide.
	assert.Empty(t, s.DuplicateIDs)

	var out bytes.Buffer
	s.Write(&out, tmpl)
	assert.Contains(t, out.String(), "7 levels, 3 categories, 5 total entries")
	assert.Contains(t, out.String(), "Taste, Smell")
}

func TestSummarize_ReportsDuplicates(t *testing.T) {
	tmpl := types.NewTemplate()
	tmpl.Categories = []types.Category{
		{ID: "cat_a_0", Entries: []types.Entry{{ID: "entry_x_0"}, {ID: "entry_x_0"}}},
		{ID: "cat_a_0"},
	}

	s := Summarize(tmpl)
	assert.Equal(t, []string{"cat_a_0", "cat_a_0/entry_x_0"}, s.DuplicateIDs)

	var out bytes.Buffer
	s.Write(&out, tmpl)
	assert.Contains(t, out.String(), "Note: 2 duplicate IDs")
}

func TestDecode_RoundTripsGeneratedTemplate(t *testing.T) {
	tmpl, err := prefy.ParseString("Social Activities (Interest, Frequency): Movies, Concerts\n", &bytes.Buffer{})
	require.NoError(t, err)
	tmpl.ExportTitle = "My Prefy List"

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	require.NoError(t, enc.Encode(tmpl))

	got, err := Decode("generated", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, tmpl, got)
}
