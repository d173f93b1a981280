package builder

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Failure records one entry whose generation failed.
type Failure struct {
	Entry string `json:"entry"`
	Error string `json:"error"`
}

// Report summarizes one build run. The counters are safe to update from
// the worker goroutines.
type Report struct {
	mu sync.Mutex

	Total     int           `json:"total"`
	Generated int           `json:"generated"`
	Skipped   int           `json:"skipped"`
	Failed    int           `json:"failed"`
	Failures  []Failure     `json:"failures,omitempty"`
	Duration  time.Duration `json:"duration_ns"`
	When      time.Time     `json:"when"`
}

// NewReport creates a report for a build over total entries.
func NewReport(total int) *Report {
	return &Report{Total: total, When: time.Now()}
}

// AddGenerated counts one freshly generated card.
func (r *Report) AddGenerated() {
	r.mu.Lock()
	r.Generated++
	r.mu.Unlock()
}

// AddSkipped counts one card that already existed.
func (r *Report) AddSkipped() {
	r.mu.Lock()
	r.Skipped++
	r.mu.Unlock()
}

// AddFailure counts and records one failed entry.
func (r *Report) AddFailure(entry string, err error) {
	r.mu.Lock()
	r.Failed++
	r.Failures = append(r.Failures, Failure{Entry: entry, Error: err.Error()})
	r.mu.Unlock()
}

// FirstFailure returns one failing entry identifier for notification
// summaries, or "" when nothing failed.
func (r *Report) FirstFailure() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Failures) == 0 {
		return ""
	}
	return r.Failures[0].Entry
}

// Write persists the report as indented JSON so the last run's outcome
// survives the process.
func (r *Report) Write(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}
