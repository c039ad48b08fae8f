// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/prefy/internal/catalog"
)

// resetFlags restores every flag on cmd and its children to its default so
// one Execute does not leak into the next.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writePrefy(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRoot_NoArgsPrintsUsage(t *testing.T) {
	out, err := execute(t)
	require.ErrorIs(t, err, errNoInput)
	assert.Contains(t, out, "Usage: prefy <filename.prefy>")
	assert.Contains(t, out, "Social Activities (Interest, Frequency): Movies, Concerts, Museums")
	assert.Contains(t, out, "Food Preferences (Like, Dislike): Italian, Japanese, Mexican")
}

func TestRoot_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.prefy")
	out, err := execute(t, missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "File '"+missing+"' not found")
	assert.NoFileExists(t, filepath.Join(filepath.Dir(missing), "missing.json"))
	assert.NotContains(t, out, "Usage:")
}

func TestRoot_ConvertsFile(t *testing.T) {
	dir := t.TempDir()
	input := writePrefy(t, dir, "social.prefy", "Social Activities (Interest, Frequency): Movies, Concerts\n")

	out, err := execute(t, input)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Parsed category 'Social Activities' with 2 entries")
	assert.Contains(t, out, "✓ Successfully generated "+filepath.Join(dir, "social.json"))

	data, err := os.ReadFile(filepath.Join(dir, "social.json"))
	require.NoError(t, err)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "", doc["username"])
	assert.Len(t, doc["levels"], 7)
	assert.Len(t, doc["categories"], 1)
}

func TestConvert_FlagsAndBatch(t *testing.T) {
	dir := t.TempDir()
	a := writePrefy(t, dir, "a.prefy", "Food (Like): Pizza\n")
	b := writePrefy(t, dir, "b.prefy", "Music (Like): Jazz, Rock\n")

	out, err := execute(t, "convert", "--format", "yaml", "--title", "Mine", a, b)
	require.NoError(t, err)
	assert.Contains(t, out, "Batch summary:")
	assert.FileExists(t, filepath.Join(dir, "a.yaml"))
	assert.FileExists(t, filepath.Join(dir, "b.yaml"))

	data, err := os.ReadFile(filepath.Join(dir, "a.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "exportTitle: Mine")
}

func TestConvert_BatchFailureReturnsError(t *testing.T) {
	dir := t.TempDir()
	a := writePrefy(t, dir, "a.prefy", "Food (Like): Pizza\n")

	_, err := execute(t, a, filepath.Join(dir, "missing.prefy"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 file(s) failed conversion")
	assert.FileExists(t, filepath.Join(dir, "a.json"))
}

func TestConvert_OutputNeedsSingleInput(t *testing.T) {
	dir := t.TempDir()
	a := writePrefy(t, dir, "a.prefy", "Food (Like): Pizza\n")
	b := writePrefy(t, dir, "b.prefy", "Food (Like): Tacos\n")

	_, err := execute(t, "-o", filepath.Join(dir, "out.json"), a, b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--output")
}

func TestConvert_RejectsUnknownFormat(t *testing.T) {
	a := writePrefy(t, t.TempDir(), "a.prefy", "Food (Like): Pizza\n")
	_, err := execute(t, "--format", "xml", a)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestLevels(t *testing.T) {
	out, err := execute(t, "levels")
	require.NoError(t, err)
	for _, name := range []string{"None", "Favorite", "Liked", "Neutral", "Will Try", "Disliked", "Hard Limit"} {
		assert.Contains(t, out, name)
	}
}

func TestExample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "example.prefy")

	out, err := execute(t, "example", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, examplePrefy, data)

	_, err = execute(t, "example", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, "example", "--force", path)
	require.NoError(t, err)
}

func TestExample_Converts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "example.prefy")
	_, err := execute(t, "example", path)
	require.NoError(t, err)

	out, err := execute(t, path)
	require.NoError(t, err)
	assert.NotContains(t, out, "Warning:")
	assert.Contains(t, out, "  - 5 categories")
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	input := writePrefy(t, dir, "food.prefy", "Food (Taste, Smell): Pizza, Sushi\n")
	_, err := execute(t, input)
	require.NoError(t, err)

	out, err := execute(t, "inspect", "--levels", filepath.Join(dir, "food.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "valid template")
	assert.Contains(t, out, "7 levels, 1 categories, 2 total entries")
	assert.Contains(t, out, "Will Try")
}

func TestInspect_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"levels": []}`), 0o644))

	_, err := execute(t, "inspect", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "categories")
}

func TestCatalog_Lifecycle(t *testing.T) {
	dir := t.TempDir()
	dsn := filepath.Join(dir, "catalog.db")
	input := writePrefy(t, dir, "food.prefy", "Food (Taste): Pizza, Sushi\n")

	out, err := execute(t, "catalog", "list", "--dsn", dsn)
	require.NoError(t, err)
	assert.Contains(t, out, "Catalog is empty.")

	_, err = execute(t, input)
	require.NoError(t, err)
	tmpl := filepath.Join(dir, "food.json")

	out, err = execute(t, "catalog", "add", "--dsn", dsn, tmpl)
	require.NoError(t, err)
	assert.Contains(t, out, "Cataloged food (1 categories, 2 entries)")

	out, err = execute(t, "catalog", "list", "--dsn", dsn, "--json")
	require.NoError(t, err)
	var records []catalog.Record
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "food", records[0].Name)

	out, err = execute(t, "catalog", "search", "--dsn", dsn, "sushi")
	require.NoError(t, err)
	assert.Contains(t, out, "food > Food > Sushi  [entry_sushi_1]")

	out, err = execute(t, "catalog", "remove", "--dsn", dsn, tmpl)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed")

	_, err = execute(t, "catalog", "remove", "--dsn", dsn, tmpl)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in the catalog")
}

func TestConvert_CatalogFlag(t *testing.T) {
	dir := t.TempDir()
	dsn := filepath.Join(dir, "catalog.db")
	t.Setenv("PREFY_CATALOG_DSN", dsn)
	input := writePrefy(t, dir, "music.prefy", "Music (Like): Jazz, Rock, Folk\n")

	out, err := execute(t, "--catalog", input)
	require.NoError(t, err)
	assert.Contains(t, out, "Cataloged music (3 entries)")

	out, err = execute(t, "catalog", "search", "--dsn", dsn, "folk")
	require.NoError(t, err)
	assert.Contains(t, out, "music > Music > Folk")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "prefy dev\n", out)
}
