package cli

import (
	"fmt"
	"io"
	"log"

	"github.com/themizzi/storefront-runner/internal/models"
	"github.com/themizzi/storefront-runner/internal/report"
)

// ResultArchive reads and prunes archived runs
type ResultArchive interface {
	GetResultsByRun(runID string) ([]models.StepResult, error)
	DeleteRun(runID string) error
}

// ShowRun writes an archived run to w in the report's JSON form
func ShowRun(archive ResultArchive, runID string, w io.Writer) error {
	results, err := archive.GetResultsByRun(runID)
	if err != nil {
		return fmt.Errorf("failed to load run %s: %w", runID, err)
	}
	data, err := report.Marshal(results)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return fmt.Errorf("failed to print run %s: %w", runID, err)
	}
	return nil
}

// DeleteRun removes an archived run
func DeleteRun(archive ResultArchive, runID string) error {
	if err := archive.DeleteRun(runID); err != nil {
		return fmt.Errorf("failed to delete run %s: %w", runID, err)
	}
	log.Printf("Deleted archived run %s", runID)
	return nil
}
