package content

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover walks the configured sections below contentDir and returns
// one Entry per publishable markdown file, sorted by identifier so runs
// over the same tree always see the same order.
//
// Files that fail to parse are logged and skipped; one broken draft
// must not sink the whole build. Drafts, dotfiles and underscore files
// (Hugo's _index.md) are skipped silently.
func Discover(contentDir string, sections []string, defaultAuthor string) ([]*Entry, error) {
	var entries []*Entry

	for _, section := range sections {
		dir := filepath.Join(contentDir, section)

		files, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read section %s: %w", section, err)
		}

		for _, f := range files {
			if f.IsDir() || !IsEntryFile(f.Name()) {
				continue
			}

			path := filepath.Join(dir, f.Name())
			entry, err := ParseEntryInSection(path, section, defaultAuthor)
			if err != nil {
				log.Printf("Skipping %s: %v", path, err)
				continue
			}
			if entry.Draft {
				continue
			}

			entries = append(entries, entry)
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

// IsEntryFile reports whether a filename looks like a content entry:
// a markdown file that is neither hidden nor a Hugo layout file.
func IsEntryFile(name string) bool {
	if filepath.Ext(name) != ".md" {
		return false
	}
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
		return false
	}
	return true
}
