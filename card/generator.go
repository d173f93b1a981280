package card

import (
	"log"
	"os"
	"sync"

	"ogkort/config"
	"ogkort/content"
	"ogkort/rasterize"
)

// Rasterizer settings fixed by the card layout: the canvas is the full
// Open Graph size, rendered losslessly (compression happens afterwards)
// at 1:1 scale.
const (
	rasterQuality = 100
	rasterZoom    = 1
)

// Generator runs the per-entry pipeline: existence gate, placeholder
// touch, template render, rasterize, compress. One Generator is safe
// for concurrent use; calls for the same output key are serialized so
// the external rasterizer never writes one path twice at once.
type Generator struct {
	store      *Store
	rasterizer rasterize.Rasterizer
	compressor rasterize.Compressor
	avatar     *Avatar
	stylesheet string
	quality    int
	preTouch   bool

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewGenerator creates a generator writing below cfg.Site.Root.
func NewGenerator(cfg *config.Config, r rasterize.Rasterizer, c rasterize.Compressor, avatar *Avatar) *Generator {
	return &Generator{
		store:      NewStore(OutputDir(cfg.Site.Root)),
		rasterizer: r,
		compressor: c,
		avatar:     avatar,
		stylesheet: cfg.Assets.Stylesheet,
		quality:    cfg.Compressor.Quality,
		preTouch:   cfg.Rasterizer.PreTouchEnabled(),
		locks:      make(map[string]*sync.Mutex),
	}
}

// Store returns the artifact store backing this generator.
func (g *Generator) Store() *Store {
	return g.store
}

// Generate produces the preview image for one entry. It returns nil
// without doing any work when the artifact already exists; the file's
// presence is the only cache consulted. A failure aborts this entry
// only and removes the partial output so the next run does not mistake
// it for a finished card.
func (g *Generator) Generate(entry *content.Entry) error {
	if err := g.store.EnsureDir(); err != nil {
		return &GenerateError{Entry: entry.ID, Stage: StageStore, Err: err}
	}

	key := OutputKey(entry.ID)
	if g.store.Exists(key) {
		return nil
	}

	lock := g.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	// Re-check under the lock: a concurrent call for the same key may
	// have finished while this one waited.
	if g.store.Exists(key) {
		return nil
	}

	if g.preTouch {
		// The rasterizer build this was written against refuses to write
		// to a path that does not exist yet, so the file is touched
		// first. The exclusive create doubles as a cross-process guard:
		// losing the race means another process owns this key.
		if err := g.store.Create(key); err != nil {
			if os.IsExist(err) {
				return nil
			}
			return &GenerateError{Entry: entry.ID, Stage: StageStore, Err: err}
		}
	}

	outputPath := g.store.Path(key)

	html, err := RenderHTML(CardData{
		Title:      entry.Title,
		Author:     entry.Author,
		Avatar:     g.avatar.DataURI(),
		Stylesheet: g.stylesheet,
	})
	if err != nil {
		return g.fail(entry, key, StageRender, err)
	}

	opts := rasterize.Options{
		Width:             CanvasWidth,
		Height:            CanvasHeight,
		Quality:           rasterQuality,
		Zoom:              rasterZoom,
		DisableSmartWidth: true,
		Stylesheet:        g.stylesheet,
	}
	if err := g.rasterizer.Rasterize(html, opts, outputPath); err != nil {
		return g.fail(entry, key, StageRasterize, err)
	}

	if err := g.compressor.Compress(outputPath, g.quality); err != nil {
		return g.fail(entry, key, StageCompress, err)
	}

	log.Printf("Generated card: %s", outputPath)
	return nil
}

// fail removes whatever ended up at the output path, then wraps the
// stage error. Leaving a half-written file behind would make the
// existence gate skip the entry forever.
func (g *Generator) fail(entry *content.Entry, key, stage string, err error) error {
	if rmErr := g.store.Remove(key); rmErr != nil {
		log.Printf("Warning: failed to clean up %s: %v", g.store.Path(key), rmErr)
	}
	return &GenerateError{Entry: entry.ID, Stage: stage, Err: err}
}

// keyLock returns the mutex serializing work on one output key.
func (g *Generator) keyLock(key string) *sync.Mutex {
	g.mu.Lock()
	defer g.mu.Unlock()

	l, ok := g.locks[key]
	if !ok {
		l = &sync.Mutex{}
		g.locks[key] = l
	}
	return l
}
