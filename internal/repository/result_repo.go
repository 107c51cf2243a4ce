package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/themizzi/storefront-runner/internal/database"
	"github.com/themizzi/storefront-runner/internal/models"
)

// ResultRepository archives step results in PostgreSQL
type ResultRepository struct {
	db *sql.DB
}

// NewResultRepository creates a new result repository
func NewResultRepository() *ResultRepository {
	return &ResultRepository{
		db: database.DB,
	}
}

// NewResultRepositoryWithDB creates a new result repository with a specific database connection
func NewResultRepositoryWithDB(db *sql.DB) *ResultRepository {
	return &ResultRepository{
		db: db,
	}
}

// SaveResults stores the results of one run in order, all or nothing
func (r *ResultRepository) SaveResults(runID string, results []models.StepResult) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	query := `
		INSERT INTO step_results (run_id, position, action, result, details, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for i, result := range results {
		_, err := tx.Exec(query,
			runID,
			i,
			result.Action,
			string(result.Result),
			pq.Array(result.Details),
			result.Timestamp,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to save step result %q: %w", result.Action, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit step results: %w", err)
	}
	return nil
}

// GetResultsByRun retrieves the results of a run in recorded order
func (r *ResultRepository) GetResultsByRun(runID string) ([]models.StepResult, error) {
	query := `
		SELECT action, result, details, recorded_at
		FROM step_results
		WHERE run_id = $1
		ORDER BY position
	`

	rows, err := r.db.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get step results: %w", err)
	}
	defer rows.Close()

	var results []models.StepResult
	for rows.Next() {
		var (
			result     models.StepResult
			outcome    string
			details    []string
			recordedAt time.Time
		)
		if err := rows.Scan(&result.Action, &outcome, pq.Array(&details), &recordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan step result: %w", err)
		}
		result.Result = models.Outcome(outcome)
		result.Details = details
		if result.Details == nil {
			result.Details = []string{}
		}
		result.Timestamp = recordedAt
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read step results: %w", err)
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("run not found")
	}
	return results, nil
}

// DeleteRun removes the archived results of a run
func (r *ResultRepository) DeleteRun(runID string) error {
	result, err := r.db.Exec(`DELETE FROM step_results WHERE run_id = $1`, runID)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("run not found")
	}

	return nil
}
