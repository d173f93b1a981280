package card

import "fmt"

// Pipeline stages reported in GenerateError.
const (
	StageStore     = "store"
	StageRender    = "render"
	StageRasterize = "rasterize"
	StageCompress  = "compress"
)

// GenerateError reports which entry and which pipeline stage failed.
// Callers log and count these; there are no retries.
type GenerateError struct {
	Entry string
	Stage string
	Err   error
}

func (e *GenerateError) Error() string {
	return fmt.Sprintf("generate %s: %s stage: %v", e.Entry, e.Stage, e.Err)
}

func (e *GenerateError) Unwrap() error {
	return e.Err
}
