package watcher

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"ogkort/card"
	"ogkort/config"
	"ogkort/content"
)

// Watcher monitors the content sections and refreshes the preview image
// of any entry whose file changes. It is the one mechanism that deletes
// generated artifacts: the generator alone never replaces an existing
// image.
type Watcher struct {
	cfg     *config.Config
	gen     *card.Generator
	watcher *fsnotify.Watcher
	events  chan Event

	mu      sync.Mutex
	stopped bool
}

// Event represents a file system event
type Event struct {
	Type     EventType
	FilePath string
}

// EventType represents the type of file event
type EventType int

const (
	EventCreated EventType = iota
	EventModified
	EventDeleted
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventModified:
		return "modified"
	case EventDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// NewWatcher creates a watcher feeding the given generator.
func NewWatcher(cfg *config.Config, gen *card.Generator) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		cfg:     cfg,
		gen:     gen,
		watcher: fsWatcher,
		events:  make(chan Event, 100),
	}, nil
}

// Start begins monitoring the configured content sections. Sections
// without a directory yet are skipped; at least one must be watchable.
func (w *Watcher) Start() error {
	watched := 0
	for _, section := range w.cfg.Site.Sections {
		dir := filepath.Join(w.cfg.Site.ContentDir, section)
		if err := w.watcher.Add(dir); err != nil {
			log.Printf("Not watching %s: %v", dir, err)
			continue
		}
		log.Printf("Watching folder: %s", dir)
		watched++
	}

	if watched == 0 {
		return fmt.Errorf("no content sections to watch under %s", w.cfg.Site.ContentDir)
	}

	// Start event processing goroutine
	go w.processEvents()

	return nil
}

// processEvents handles fsnotify events and converts them to our event type
func (w *Watcher) processEvents() {
	// Debounce timer to avoid processing rapid successive events
	debounce := make(map[string]*time.Timer)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// Only process entry files; editors drop temp and swap
			// files in the same directory.
			if !content.IsEntryFile(filepath.Base(event.Name)) {
				continue
			}

			// Debounce: wait 500ms before processing
			if timer, exists := debounce[event.Name]; exists {
				timer.Stop()
			}

			debounce[event.Name] = time.AfterFunc(500*time.Millisecond, func() {
				w.handleEvent(event)
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

// handleEvent processes a single file event
func (w *Watcher) handleEvent(event fsnotify.Event) {
	var eventType EventType

	switch {
	case event.Op&fsnotify.Create == fsnotify.Create:
		eventType = EventCreated
		log.Printf("File created: %s", event.Name)
	case event.Op&fsnotify.Write == fsnotify.Write:
		eventType = EventModified
		log.Printf("File modified: %s", event.Name)
	case event.Op&fsnotify.Remove == fsnotify.Remove:
		eventType = EventDeleted
		log.Printf("File deleted: %s", event.Name)
	default:
		return // Ignore other events
	}

	if !w.emit(Event{Type: eventType, FilePath: event.Name}) {
		return
	}

	if eventType == EventCreated || eventType == EventModified {
		w.refresh(event.Name)
	}
}

// emit delivers an event unless the watcher is stopped. A debounce
// timer armed before Stop can fire after it; the lock orders that late
// send against the channel close.
func (w *Watcher) emit(ev Event) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return false
	}

	select {
	case w.events <- ev:
	default:
		// Channel full; a blocked send here would hold the lock
		// Stop needs.
	}
	return true
}

// refresh drops the stale artifact for a changed entry and regenerates
// it. Deleting first is what forces the generator past its existence
// gate.
func (w *Watcher) refresh(filePath string) {
	section := filepath.Base(filepath.Dir(filePath))

	entry, err := content.ParseEntryInSection(filePath, section, w.cfg.Site.DefaultAuthor)
	if err != nil {
		log.Printf("Failed to parse entry: %v", err)
		return
	}
	if entry.Draft {
		return
	}

	key := card.OutputKey(entry.ID)
	if err := w.gen.Store().Remove(key); err != nil {
		log.Printf("Failed to remove stale card for %s: %v", entry.ID, err)
		return
	}

	if err := w.gen.Generate(entry); err != nil {
		log.Printf("Failed to regenerate card for %s: %v", entry.ID, err)
		return
	}

	log.Printf("Card refreshed: %s", entry.ID)
}

// Events returns the event channel
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop stops the watcher and closes the event channel. Debounce timers
// still pending when Stop runs fire afterwards as no-ops.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.stopped {
		w.stopped = true
		close(w.events)
	}
	w.mu.Unlock()

	return w.watcher.Close()
}
