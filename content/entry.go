package content

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// Entry represents one content item (a post or a project) as the card
// generator and the tag resolver see it. The body stays with Hugo; only
// the metadata needed for the preview image is kept here.
type Entry struct {
	FilePath string `yaml:"-"` // Internal use only - do not read from YAML

	// ID is the site-relative identifier, e.g. "/posts/hello-world".
	// Derived from section and slug, never read from frontmatter.
	ID string `yaml:"-"`

	// Kind is the section the entry lives in: "posts" or "projects".
	Kind string `yaml:"-"`

	// Required fields (author may come from the site default)
	Title  string `yaml:"title"`
	Author string `yaml:"author"`

	// Optional fields
	Slug  string `yaml:"slug,omitempty"`
	Draft bool   `yaml:"draft,omitempty"`
}

// ParseEntry reads a markdown file and parses the YAML frontmatter.
// A missing title falls back to the first level-1 heading in the body;
// a missing author falls back to defaultAuthor.
func ParseEntry(filePath, defaultAuthor string) (*Entry, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	// Split frontmatter and content
	parts := bytes.SplitN(data, []byte("---"), 3)
	if len(parts) < 3 {
		return nil, fmt.Errorf("invalid frontmatter in %s: missing --- delimiters", filePath)
	}

	entry := &Entry{FilePath: filePath}
	if err := yaml.Unmarshal(parts[1], entry); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter in %s: %w", filePath, err)
	}

	if entry.Title == "" {
		entry.Title = firstHeading(bytes.TrimSpace(parts[2]))
	}
	if entry.Title == "" {
		return nil, fmt.Errorf("missing required field in %s: title", filePath)
	}

	if entry.Author == "" {
		entry.Author = defaultAuthor
	}
	if entry.Author == "" {
		return nil, fmt.Errorf("missing required field in %s: author", filePath)
	}

	return entry, nil
}

// ParseEntryInSection parses an entry file and assigns the identity
// derived from its section and slug. The slug defaults to the filename
// without extension, matching how Hugo builds the page URL.
func ParseEntryInSection(filePath, section, defaultAuthor string) (*Entry, error) {
	entry, err := ParseEntry(filePath, defaultAuthor)
	if err != nil {
		return nil, err
	}

	entry.Kind = section
	if entry.Slug == "" {
		entry.Slug = strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	}
	entry.ID = "/" + section + "/" + entry.Slug

	return entry, nil
}

// firstHeading returns the text of the first level-1 heading in a
// markdown body, or "". Goldmark handles inline markup inside the
// heading (emphasis, links, code spans) that a line regexp would keep.
func firstHeading(body []byte) string {
	root := goldmark.New().Parser().Parse(text.NewReader(body))

	var title string
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok || heading.Level != 1 {
			return ast.WalkContinue, nil
		}
		title = headingText(heading, body)
		return ast.WalkStop, nil
	})

	return title
}

// headingText collects the plain text segments below a heading node.
func headingText(heading *ast.Heading, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(heading, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := n.(*ast.Text); ok {
				buf.Write(t.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}
