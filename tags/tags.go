// Package tags emits the Open Graph image metadata for site templates.
// Resolution is a pure computation over the entry identifier and the
// configured base URL; it never consults the filesystem, so pages can
// be rendered before, after or during image generation and always get
// the same tags.
package tags

import (
	"fmt"
	"strings"

	"ogkort/card"
)

// DefaultImage is referenced by pages without an entry identifier: the
// front page, list pages, plain pages. It is maintained by hand in the
// same directory as the generated images.
const DefaultImage = "default_og_image.png"

// Subject is what a page is about: a content entry, or nothing. The
// explicit two-case variant keeps "has no entry" from being smuggled
// around as an empty string.
type Subject struct {
	id    string
	hasID bool
}

// ForIdentifier returns a Subject for an entry identifier. An empty
// identifier degrades to NoSubject.
func ForIdentifier(id string) Subject {
	if id == "" {
		return NoSubject()
	}
	return Subject{id: id, hasID: true}
}

// NoSubject returns the Subject for pages without an entry.
func NoSubject() Subject {
	return Subject{}
}

// Resolver builds image URLs and meta tags against one site base URL.
type Resolver struct {
	baseURL string
}

// NewResolver trims any trailing slash from the base URL so joined
// URLs never carry a double slash.
func NewResolver(baseURL string) *Resolver {
	return &Resolver{baseURL: strings.TrimRight(baseURL, "/")}
}

// Filename returns the image filename a subject resolves to, without
// checking whether the file exists. A page whose image is still being
// generated gets the same URL it will have once the file lands.
func (r *Resolver) Filename(s Subject) string {
	if !s.hasID {
		return DefaultImage
	}
	return card.Filename(s.id)
}

// ImageURL returns the absolute URL of the subject's preview image.
func (r *Resolver) ImageURL(s Subject) string {
	return fmt.Sprintf("%s/%s/%s", r.baseURL, card.OutputSubdir, r.Filename(s))
}

// MetaTags returns the Open Graph image tags for a subject: URL, then
// width, then height. The declared size is the fixed card canvas; it is
// never read back from the image file.
func (r *Resolver) MetaTags(s Subject) string {
	return fmt.Sprintf(
		"<meta property=\"og:image\" content=\"%s\" />\n"+
			"<meta property=\"og:image:width\" content=\"%d\" />\n"+
			"<meta property=\"og:image:height\" content=\"%d\" />",
		r.ImageURL(s), card.CanvasWidth, card.CanvasHeight)
}
