package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/five82/pawpal/internal/changelog"
	"github.com/five82/pawpal/internal/kv"
	"github.com/five82/pawpal/internal/prefs"
	"github.com/five82/pawpal/internal/rescue"
)

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"text", "JSON", " yaml "} {
		_, err := parseFormat(in)
		assert.NoError(t, err, in)
	}
	_, err := parseFormat("xml")
	assert.ErrorContains(t, err, "unsupported format")
}

func TestWriteAnimals(t *testing.T) {
	near := 3.14
	page := rescue.AnimalPage{
		Animals: []rescue.Animal{
			{ID: 7, Name: "Biscuit", Species: "Dog", Breeds: rescue.Breeds{Primary: "Beagle", Mixed: true}, Age: "Young", Gender: "Male", Distance: &near},
			{ID: 8, Name: "Mochi", Type: "Cat"},
		},
		Pagination: rescue.Pagination{CurrentPage: 2, TotalPages: 5, TotalCount: 93},
	}

	var buf bytes.Buffer
	require.NoError(t, writeAnimals(&buf, page))
	out := buf.String()

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Biscuit")
	assert.Contains(t, out, "Beagle mix")
	assert.Contains(t, out, "3.1 mi")
	assert.Contains(t, out, "Mochi")
	assert.Contains(t, out, "Cat")
	assert.Contains(t, out, "Page 2 of 5 · 93 animals")
}

func TestWriteAnimals_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeAnimals(&buf, rescue.AnimalPage{}))
	assert.Equal(t, "No animals found.\n", buf.String())
}

func testFavorites() []prefs.Favorite {
	return []prefs.Favorite{
		{ID: 42, Name: "Pepper", Species: "Cat", Breed: "Tabby", AddedAt: time.Date(2025, 11, 12, 12, 0, 0, 0, time.UTC)},
	}
}

func TestWriteFavorites_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeFavorites(&buf, testFavorites(), formatText))
	assert.Contains(t, buf.String(), "Pepper")
	assert.Contains(t, buf.String(), "Tabby")
	assert.Contains(t, buf.String(), "2025-11-12")

	buf.Reset()
	require.NoError(t, writeFavorites(&buf, nil, formatText))
	assert.Equal(t, "No favorites saved.\n", buf.String())
}

func TestWriteFavorites_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeFavorites(&buf, testFavorites(), formatJSON))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "Pepper", decoded[0]["name"])
	assert.Equal(t, float64(42), decoded[0]["id"])
}

func TestWriteFavorites_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeFavorites(&buf, testFavorites(), formatYAML))
	assert.Contains(t, buf.String(), "name: Pepper")

	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "Tabby", decoded[0]["breed"])
}

func TestWriteEntries(t *testing.T) {
	entries := []changelog.Entry{{
		Version: "0.3.0",
		Date:    "2025-11-12",
		Sections: []changelog.Section{{
			Title: "Features",
			Items: []changelog.Item{{Text: "add favorites", CommitHash: "3c0beee"}},
		}},
	}}

	var buf bytes.Buffer
	require.NoError(t, writeEntries(&buf, entries, formatText))
	assert.Contains(t, buf.String(), "0.3.0 (2025-11-12)")
	assert.Contains(t, buf.String(), "  Features")
	assert.Contains(t, buf.String(), "    - add favorites (3c0beee)")

	buf.Reset()
	require.NoError(t, writeEntries(&buf, entries, formatJSON))
	assert.Contains(t, buf.String(), `"version": "0.3.0"`)

	buf.Reset()
	require.NoError(t, writeEntries(&buf, nil, formatJSON))
	assert.Equal(t, "[]\n", buf.String())

	buf.Reset()
	require.NoError(t, writeEntries(&buf, nil, formatText))
	assert.Equal(t, "No release notes available.\n", buf.String())
}

func TestDistanceLabel(t *testing.T) {
	far := 42.6
	assert.Equal(t, "-", distanceLabel(nil))
	assert.Equal(t, "43 mi", distanceLabel(&far))
}

func openTestPrefs(t *testing.T) *prefs.Set {
	t.Helper()
	set, err := prefs.OpenSet(context.Background(), kv.NewMemory())
	require.NoError(t, err)
	return set
}

func TestBuildQuery_UsesSavedPreferences(t *testing.T) {
	ctx := context.Background()
	set := openTestPrefs(t)
	require.NoError(t, set.Location.SetLocation(ctx, "Portland, OR", 25))
	require.NoError(t, set.Sort.Set(ctx, prefs.SortNearest))
	require.NoError(t, set.Species.Set(ctx, "Dog"))

	cmd := newSearchCmd()
	require.NoError(t, cmd.ParseFlags(nil))

	q, err := buildQuery(cmd, searchFlags{page: 1, limit: 20}, set)
	require.NoError(t, err)
	assert.Equal(t, "Dog", q.Type)
	assert.Equal(t, "Portland, OR", q.Location)
	assert.Equal(t, 25, q.Distance)
	assert.Equal(t, "distance", q.Sort)
	assert.Equal(t, 1, q.Page)
}

func TestBuildQuery_FlagsOverride(t *testing.T) {
	set := openTestPrefs(t)

	cmd := newSearchCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--type", "Cat", "--distance", "9000", "--sort", "-distance", "--page", "3"}))

	flags := searchFlags{animalType: "Cat", distance: 9000, sort: "-distance", page: 3, limit: 20}
	q, err := buildQuery(cmd, flags, set)
	require.NoError(t, err)
	assert.Equal(t, "Cat", q.Type)
	assert.Equal(t, prefs.MaxDistance, q.Distance)
	// no location, so distance orders fall back to newest
	assert.Equal(t, "recent", q.Sort)
	assert.Equal(t, 3, q.Page)
}

func TestBuildQuery_RejectsUnknownSort(t *testing.T) {
	set := openTestPrefs(t)
	cmd := newSearchCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--sort", "alphabetical"}))

	_, err := buildQuery(cmd, searchFlags{sort: "alphabetical"}, set)
	assert.ErrorContains(t, err, "invalid sort")
}

func TestVersionCommand(t *testing.T) {
	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "pawpal ")
}

func TestChangelogCommand_JSON(t *testing.T) {
	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"changelog", "--all", "--format", "json"})
	require.NoError(t, root.Execute())

	var entries []changelog.Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
	assert.NotEmpty(t, entries)
}
