// Package dialogue loads the scripted conversation content embedded with
// the binary and serves it to scenes by chapter and section.
package dialogue

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"gopkg.in/yaml.v3"

	apperrors "github.com/louisbranch/aikira.quest/internal/platform/errors"
)

//go:embed content/*.yaml
var contentFS embed.FS

// Section names used by scene orchestration.
const (
	SectionIntro   = "intro"
	SectionHint    = "hint"
	SectionSuccess = "success"
	SectionFailure = "failure"
)

// Entry is one character's turn in a conversation.
type Entry struct {
	Character string   `yaml:"character" json:"character"`
	Lines     []string `yaml:"lines" json:"lines"`
}

type chapterFile struct {
	Chapter  int                `yaml:"chapter"`
	Sections map[string][]Entry `yaml:"sections"`
}

type key struct {
	chapter int
	section string
}

// Library holds every loaded conversation, keyed by chapter and section.
type Library struct {
	entries map[key][]Entry
}

// Load parses the embedded content files.
func Load() (*Library, error) {
	return loadFS(contentFS)
}

func loadFS(fsys fs.FS) (*Library, error) {
	paths, err := fs.Glob(fsys, "content/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob dialogue content: %w", err)
	}
	sort.Strings(paths)

	lib := &Library{entries: make(map[key][]Entry)}
	for _, path := range paths {
		raw, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		var file chapterFile
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		for section, entries := range file.Sections {
			lib.entries[key{file.Chapter, section}] = entries
		}
	}
	return lib, nil
}

// Lookup returns the conversation for a chapter section.
func (l *Library) Lookup(chapter int, section string) ([]Entry, error) {
	entries, ok := l.entries[key{chapter, section}]
	if !ok {
		return nil, apperrors.WithMetadata(
			apperrors.CodeDialogueMissing,
			"no dialogue for chapter section",
			map[string]string{"Chapter": fmt.Sprint(chapter), "Context": section},
		)
	}
	return entries, nil
}

// Has reports whether a chapter section exists. Scenes use it for optional
// sections like hints.
func (l *Library) Has(chapter int, section string) bool {
	_, ok := l.entries[key{chapter, section}]
	return ok
}

// CatalogEntry is one chapter section with its conversation, used when the
// whole library is exported at once.
type CatalogEntry struct {
	Chapter int     `json:"chapter"`
	Section string  `json:"section"`
	Entries []Entry `json:"entries"`
}

// Catalog returns every conversation sorted by chapter then section.
func (l *Library) Catalog() []CatalogEntry {
	catalog := make([]CatalogEntry, 0, len(l.entries))
	for k, entries := range l.entries {
		catalog = append(catalog, CatalogEntry{Chapter: k.chapter, Section: k.section, Entries: entries})
	}
	sort.Slice(catalog, func(i, j int) bool {
		if catalog[i].Chapter != catalog[j].Chapter {
			return catalog[i].Chapter < catalog[j].Chapter
		}
		return catalog[i].Section < catalog[j].Section
	})
	return catalog
}
