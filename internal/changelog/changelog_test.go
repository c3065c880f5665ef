package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleChangelog = `# Changelog

Intro paragraph that is not part of any release.

## 0.2.0 (2025-12-01)

- stray bullet before any section

### Features

- browse favorites offline ([a1b2c3d](https://example.com/commit/a1b2c3d))
- sort by distance ([#12](https://example.com/pull/12)) ([DEADBEE](https://example.com/commit/DEADBEE))
- plain item without links

### Documentation

### Bug Fixes

* asterisk bullets are ignored
- fix crash on empty search ([#15](https://example.com/pull/15))

## 0.1.3 (2025-11-12)

### Features

- add X ([3c0beee](http://u))
`

func TestParseLatest_EmptyAndMissingHeading(t *testing.T) {
	assert.Nil(t, ParseLatest(""))
	assert.Nil(t, ParseLatest("# Changelog\n\n- nothing versioned here\n"))
	assert.Nil(t, ParseLatest("## Unreleased\n\n### Features\n\n- soon\n"))
	// a version heading without a date does not open an entry
	assert.Nil(t, ParseLatest("## 1.0.0\n\n### Features\n\n- x\n"))
}

func TestParseLatest_SingleEntry(t *testing.T) {
	entry := ParseLatest("## 0.1.3 (2025-11-12)\n\n### Features\n\n- add X ([3c0beee](http://u))\n")
	require.NotNil(t, entry)

	assert.Equal(t, "0.1.3", entry.Version)
	assert.Equal(t, "2025-11-12", entry.Date)
	require.Len(t, entry.Sections, 1)
	assert.Equal(t, "Features", entry.Sections[0].Title)
	require.Len(t, entry.Sections[0].Items, 1)
	assert.Equal(t, Item{Text: "add X", CommitHash: "3c0beee", CommitURL: "http://u"}, entry.Sections[0].Items[0])
}

func TestParseLatest_NewestEntryOnly(t *testing.T) {
	entry := ParseLatest(sampleChangelog)
	require.NotNil(t, entry)

	assert.Equal(t, "0.2.0", entry.Version)
	assert.Equal(t, "2025-12-01", entry.Date)

	require.Len(t, entry.Sections, 2, "empty Documentation section is dropped")
	assert.Equal(t, "Features", entry.Sections[0].Title)
	assert.Equal(t, "Bug Fixes", entry.Sections[1].Title)

	features := entry.Sections[0].Items
	require.Len(t, features, 3)
	assert.Equal(t, Item{
		Text:       "browse favorites offline",
		CommitHash: "a1b2c3d",
		CommitURL:  "https://example.com/commit/a1b2c3d",
	}, features[0])
	assert.Equal(t, Item{
		Text:       "sort by distance",
		CommitHash: "DEADBEE",
		CommitURL:  "https://example.com/commit/DEADBEE",
	}, features[1])
	assert.Equal(t, Item{Text: "plain item without links"}, features[2])

	fixes := entry.Sections[1].Items
	require.Len(t, fixes, 1)
	assert.Equal(t, Item{Text: "fix crash on empty search"}, fixes[0])
}

func TestParseLatest_EntryWithoutItemsIsNotNil(t *testing.T) {
	entry := ParseLatest("## 1.2.3 (today)\n\n### Features\n\n## 1.2.2 (yesterday)\n\n### Features\n\n- older\n")
	require.NotNil(t, entry)
	assert.Equal(t, "1.2.3", entry.Version)
	assert.Equal(t, "today", entry.Date)
	assert.Empty(t, entry.Sections)
	assert.True(t, entry.Empty())
}

func TestParseLatest_UndatedHeadingEndsEntry(t *testing.T) {
	text := "## 2.0.0 (2026-01-01)\n\n### Features\n\n- new\n\n## 1.9.9\n\n### Features\n\n- old\n"
	entry := ParseLatest(text)
	require.NotNil(t, entry)
	require.Len(t, entry.Sections, 1)
	require.Len(t, entry.Sections[0].Items, 1)
	assert.Equal(t, "new", entry.Sections[0].Items[0].Text)
}

func TestParseLatest_CommitHashMustBeSevenHex(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantText string
		wantHash string
	}{
		{"six chars", "- a ([abc123](http://u))", "a ([abc123](http://u))", ""},
		{"eight chars", "- b ([abc12345](http://u))", "b ([abc12345](http://u))", ""},
		{"non hex", "- c ([zzzzzzz](http://u))", "c ([zzzzzzz](http://u))", ""},
		{"upper case", "- d ([ABCDEF0](http://u))", "d", "ABCDEF0"},
		{"not trailing", "- e ([abcdef0](http://u)) later", "e ([abcdef0](http://u)) later", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := ParseLatest("## 0.0.1 (d)\n### S\n" + tt.line + "\n")
			require.NotNil(t, entry)
			require.Len(t, entry.Sections, 1)
			item := entry.Sections[0].Items[0]
			assert.Equal(t, tt.wantText, item.Text)
			assert.Equal(t, tt.wantHash, item.CommitHash)
		})
	}
}

func TestParseLatest_CRLF(t *testing.T) {
	entry := ParseLatest("## 0.1.0 (2025-01-01)\r\n\r\n### Features\r\n\r\n- windows line endings\r\n")
	require.NotNil(t, entry)
	require.Len(t, entry.Sections, 1)
	assert.Equal(t, "windows line endings", entry.Sections[0].Items[0].Text)
}

func TestParse_AllEntries(t *testing.T) {
	entries := Parse(sampleChangelog)
	require.Len(t, entries, 2)
	assert.Equal(t, "0.2.0", entries[0].Version)
	assert.Equal(t, "0.1.3", entries[1].Version)
	require.Len(t, entries[1].Sections, 1)
	assert.Equal(t, "add X", entries[1].Sections[0].Items[0].Text)

	assert.Empty(t, Parse(""))
}
