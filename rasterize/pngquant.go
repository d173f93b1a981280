package rasterize

import (
	"fmt"
	"log"
	"os/exec"
)

// DefaultCompressorBinary is used when the config names no compressor.
const DefaultCompressorBinary = "pngquant"

// Pngquant compresses PNG files in place with the pngquant binary.
type Pngquant struct {
	Binary string
}

// NewPngquant creates a compressor invoking the given binary, falling
// back to DefaultCompressorBinary when empty.
func NewPngquant(binary string) *Pngquant {
	if binary == "" {
		binary = DefaultCompressorBinary
	}
	return &Pngquant{Binary: binary}
}

// args builds the in-place invocation: --ext .png together with --force
// makes pngquant overwrite the input file instead of writing a sibling.
func (p *Pngquant) args(path string, quality int) []string {
	return []string{
		"--force",
		"--ext", ".png",
		"--quality", fmt.Sprintf("0-%d", quality),
		path,
	}
}

// Compress rewrites the file at the given quality ceiling.
func (p *Pngquant) Compress(path string, quality int) error {
	cmd := exec.Command(p.Binary, p.args(path, quality)...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Printf("Compressor error: %s", string(output))
		return fmt.Errorf("%s failed: %w", p.Binary, err)
	}
	return nil
}
