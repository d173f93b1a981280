package builder

import (
	"fmt"
	"log"
	"sync"
	"time"

	"ogkort/card"
	"ogkort/config"
	"ogkort/content"
	"ogkort/notify"
	"ogkort/rasterize"
)

// Builder generates the full card set for a site: discover entries,
// run the generator over each, summarize.
type Builder struct {
	cfg  *config.Config
	gen  *card.Generator
	ntfy *notify.NtfySender
}

// New creates a builder with the real external tools attached.
func New(cfg *config.Config) (*Builder, error) {
	avatar, err := card.LoadAvatar(cfg.Assets.Avatar)
	if err != nil {
		return nil, fmt.Errorf("failed to load avatar: %w", err)
	}

	gen := card.NewGenerator(cfg,
		rasterize.NewWkhtmltoimage(cfg.Rasterizer.Binary),
		rasterize.NewPngquant(cfg.Compressor.Binary),
		avatar)

	return &Builder{cfg: cfg, gen: gen, ntfy: notify.NewNtfySender(cfg)}, nil
}

// Generator returns the entry generator (watch mode reuses it).
func (b *Builder) Generator() *card.Generator {
	return b.gen
}

// Run discovers every entry and generates the missing cards. A failing
// entry is counted and reported, never retried, and never stops the
// rest of the build.
func (b *Builder) Run() (*Report, error) {
	entries, err := content.Discover(b.cfg.Site.ContentDir, b.cfg.Site.Sections, b.cfg.Site.DefaultAuthor)
	if err != nil {
		return nil, err
	}

	entries, dropped := dedupeByKey(entries)

	report := NewReport(len(entries) + len(dropped))
	// Collision losers share the winner's artifact; counting them as
	// skipped keeps the totals adding up.
	for range dropped {
		report.AddSkipped()
	}

	start := time.Now()

	jobs := b.cfg.Build.Jobs
	if jobs < 1 {
		jobs = 1
	}

	work := make(chan *content.Entry)
	var wg sync.WaitGroup
	for i := 0; i < jobs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for entry := range work {
				b.generateOne(entry, report)
			}
		}()
	}

	for _, entry := range entries {
		work <- entry
	}
	close(work)
	wg.Wait()

	report.Duration = time.Since(start)
	log.Printf("Build finished: %d generated, %d skipped, %d failed (%s)",
		report.Generated, report.Skipped, report.Failed, report.Duration.Round(time.Millisecond))

	if report.Failed > 0 {
		if err := b.ntfy.SendBuildFailure(report.Failed, report.FirstFailure()); err != nil {
			log.Printf("Warning: failed to send ntfy notification: %v", err)
		}
	}

	return report, nil
}

// generateOne runs one entry through the generator and records the
// outcome. The explicit existence check mirrors the generator's own
// gate; it is here so the report can tell skips from fresh work.
func (b *Builder) generateOne(entry *content.Entry, report *Report) {
	if b.gen.Store().Exists(card.OutputKey(entry.ID)) {
		report.AddSkipped()
		return
	}

	if err := b.gen.Generate(entry); err != nil {
		log.Printf("Failed to generate %s: %v", entry.ID, err)
		report.AddFailure(entry.ID, err)
		return
	}

	report.AddGenerated()
}

// dedupeByKey keeps the first entry for each artifact key and warns
// about the rest. The first entry wins the path; dispatching both
// sides of a collision would race two workers on one output file.
func dedupeByKey(entries []*content.Entry) (unique, dropped []*content.Entry) {
	seen := make(map[string]string)
	for _, e := range entries {
		key := card.OutputKey(e.ID)
		if other, ok := seen[key]; ok {
			log.Printf("Warning: %s and %s share the output image %s%s", other, e.ID, key, card.Ext)
			dropped = append(dropped, e)
			continue
		}
		seen[key] = e.ID
		unique = append(unique, e)
	}
	return unique, dropped
}
