// Package rasterize wraps the external tools that turn card HTML into a
// compressed PNG: an HTML-to-image rasterizer and a PNG compressor, both
// invoked as subprocesses.
package rasterize

import (
	"fmt"
	"os/exec"
)

// Options control a single rasterization. Width and height fix the
// output canvas; DisableSmartWidth keeps the canvas at exactly the
// requested width regardless of content. Stylesheet, when set, is
// applied by the rasterizer on top of anything the document links.
type Options struct {
	Width             int
	Height            int
	Quality           int
	Zoom              int
	DisableSmartWidth bool
	Stylesheet        string
}

// Rasterizer renders an HTML document string to an image file. An error
// means no usable output; callers must not trust whatever bytes are at
// outputPath after a failure.
type Rasterizer interface {
	Rasterize(html string, opts Options, outputPath string) error
}

// Compressor rewrites an image file in place at the given quality (0-100).
type Compressor interface {
	Compress(path string, quality int) error
}

// CheckTools verifies the external binaries are on PATH before a build
// starts, so a missing tool fails once up front instead of per entry.
func CheckTools(binaries ...string) error {
	for _, bin := range binaries {
		if _, err := exec.LookPath(bin); err != nil {
			return fmt.Errorf("required tool not found in PATH: %s", bin)
		}
	}
	return nil
}
