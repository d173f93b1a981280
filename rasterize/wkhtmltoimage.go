package rasterize

import (
	"fmt"
	"log"
	"os/exec"
	"strconv"
	"strings"
)

// DefaultRasterizerBinary is used when the config names no rasterizer.
const DefaultRasterizerBinary = "wkhtmltoimage"

// Wkhtmltoimage rasterizes HTML with the wkhtmltoimage binary. The
// document is piped over stdin so no temporary file is needed.
type Wkhtmltoimage struct {
	Binary string
}

// NewWkhtmltoimage creates a rasterizer invoking the given binary,
// falling back to DefaultRasterizerBinary when empty.
func NewWkhtmltoimage(binary string) *Wkhtmltoimage {
	if binary == "" {
		binary = DefaultRasterizerBinary
	}
	return &Wkhtmltoimage{Binary: binary}
}

// args builds the command line for one invocation. Kept separate so the
// flag set can be tested without running the binary.
func (w *Wkhtmltoimage) args(opts Options, outputPath string) []string {
	args := []string{
		"--width", strconv.Itoa(opts.Width),
		"--height", strconv.Itoa(opts.Height),
		"--quality", strconv.Itoa(opts.Quality),
		"--zoom", strconv.Itoa(opts.Zoom),
		"--enable-local-file-access",
	}
	if opts.DisableSmartWidth {
		args = append(args, "--disable-smart-width")
	}
	if opts.Stylesheet != "" {
		args = append(args, "--user-style-sheet", opts.Stylesheet)
	}
	// "-" makes wkhtmltoimage read the document from stdin.
	return append(args, "-", outputPath)
}

// Rasterize runs the binary against the document and writes outputPath.
func (w *Wkhtmltoimage) Rasterize(html string, opts Options, outputPath string) error {
	cmd := exec.Command(w.Binary, w.args(opts, outputPath)...)
	cmd.Stdin = strings.NewReader(html)

	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Printf("Rasterizer error: %s", string(output))
		return fmt.Errorf("%s failed: %w", w.Binary, err)
	}
	return nil
}
