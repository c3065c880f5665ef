// Package changelog extracts release notes from the markdown changelog that
// ships with the binary.
//
// The accepted markdown is deliberately small:
//
//	## 0.1.3 (2025-11-12)
//
//	### Features
//
//	- add X ([3c0beee](https://example.com/commit/3c0beee))
//
// Version headings open an entry, "###" headings open a section, and "- "
// bullets become items. Anything else is ignored.
package changelog

import (
	"log/slog"
	"regexp"
	"strings"
)

// Entry is one released version's notes.
type Entry struct {
	Version  string    `json:"version" yaml:"version"`
	Date     string    `json:"date" yaml:"date"`
	Sections []Section `json:"sections" yaml:"sections"`
}

// Empty reports whether the entry carries no sections.
func (e Entry) Empty() bool {
	return len(e.Sections) == 0
}

// Section is a titled group of items such as "Features".
type Section struct {
	Title string `json:"title" yaml:"title"`
	Items []Item `json:"items" yaml:"items"`
}

// Item is one bullet with commit and PR link markup removed.
type Item struct {
	Text       string `json:"text" yaml:"text"`
	CommitHash string `json:"commitHash,omitempty" yaml:"commitHash,omitempty"`
	CommitURL  string `json:"commitUrl,omitempty" yaml:"commitUrl,omitempty"`
}

var (
	versionHeading = regexp.MustCompile(`^##\s+(\d+\.\d+\.\d+)\s*\((.*)\)`)
	// entries end at the next version heading, dated or not
	versionBoundary = regexp.MustCompile(`^##\s+\d+\.\d+\.\d+`)
	sectionHeading  = regexp.MustCompile(`^###\s+(.+)$`)
	bulletItem      = regexp.MustCompile(`^-\s+(.+)$`)
	commitLink      = regexp.MustCompile(`\s*\(\[([0-9a-fA-F]{7})\]\(([^)\s]+)\)\)\s*$`)
	prReference     = regexp.MustCompile(`\s*\(\[#\d+\]\([^)\s]*\)\)`)
)

type scanState int

const (
	seekingVersion scanState = iota
	inEntryNoSection
	inEntryWithSection
)

// ParseLatest returns the first (newest) entry in text, or nil when no
// version heading is present. Parsing never fails loudly: an unexpected
// panic is logged and reported as nil.
func ParseLatest(text string) (entry *Entry) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("changelog parse failed", "panic", r)
			entry = nil
		}
	}()

	entries := scan(text, 1)
	if len(entries) == 0 {
		return nil
	}
	return &entries[0]
}

// Parse returns every entry in text in order of appearance.
func Parse(text string) (entries []Entry) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("changelog parse failed", "panic", r)
			entries = nil
		}
	}()
	return scan(text, -1)
}

// scan walks text line by line. limit < 0 collects all entries.
func scan(text string, limit int) []Entry {
	var (
		entries []Entry
		current *Entry
		section *Section
		state   = seekingVersion
	)

	commitSection := func() {
		if section != nil && len(section.Items) > 0 {
			current.Sections = append(current.Sections, *section)
		}
		section = nil
	}
	closeEntry := func() {
		commitSection()
		if current.Sections == nil {
			current.Sections = []Section{}
		}
		entries = append(entries, *current)
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")

		if state != seekingVersion && versionBoundary.MatchString(line) {
			closeEntry()
			state = seekingVersion
			if limit >= 0 && len(entries) >= limit {
				return entries
			}
		}

		switch state {
		case seekingVersion:
			m := versionHeading.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			current = &Entry{Version: m[1], Date: strings.TrimSpace(m[2])}
			state = inEntryNoSection

		case inEntryNoSection, inEntryWithSection:
			if m := sectionHeading.FindStringSubmatch(line); m != nil {
				commitSection()
				section = &Section{Title: strings.TrimSpace(m[1])}
				state = inEntryWithSection
				continue
			}
			if state != inEntryWithSection {
				continue
			}
			if m := bulletItem.FindStringSubmatch(line); m != nil {
				section.Items = append(section.Items, parseItem(m[1]))
			}
		}
	}

	if current != nil {
		closeEntry()
	}
	return entries
}

func parseItem(raw string) Item {
	var item Item
	text := raw
	if m := commitLink.FindStringSubmatchIndex(text); m != nil {
		item.CommitHash = text[m[2]:m[3]]
		item.CommitURL = text[m[4]:m[5]]
		text = text[:m[0]]
	}
	text = prReference.ReplaceAllString(text, "")
	item.Text = strings.TrimSpace(text)
	return item
}
