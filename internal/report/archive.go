package report

import (
	"fmt"
	"log"

	"github.com/themizzi/storefront-runner/internal/models"
)

// ResultStore defines the interface for step result persistence
type ResultStore interface {
	SaveResults(runID string, results []models.StepResult) error
}

// ArchiveSink stores the results of one run under its run ID
type ArchiveSink struct {
	store ResultStore
	runID string
}

// NewArchiveSink creates a sink archiving results for runID
func NewArchiveSink(store ResultStore, runID string) *ArchiveSink {
	return &ArchiveSink{store: store, runID: runID}
}

// Write archives the results
func (s *ArchiveSink) Write(results []models.StepResult) error {
	if err := s.store.SaveResults(s.runID, results); err != nil {
		return fmt.Errorf("failed to archive run %s: %w", s.runID, err)
	}
	log.Printf("Archived %d step results for run %s", len(results), s.runID)
	return nil
}
