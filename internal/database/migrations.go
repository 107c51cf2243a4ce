package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Schema creates the step result archive table
const Schema = `
	CREATE TABLE IF NOT EXISTS step_results (
		id BIGSERIAL PRIMARY KEY,
		run_id UUID NOT NULL,
		position INTEGER NOT NULL,
		action VARCHAR(255) NOT NULL,
		result VARCHAR(50) NOT NULL,
		details TEXT[] NOT NULL DEFAULT '{}',
		recorded_at TIMESTAMPTZ NOT NULL,
		UNIQUE (run_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_step_results_run_id ON step_results(run_id);
	CREATE INDEX IF NOT EXISTS idx_step_results_result ON step_results(result);
	`

// RunMigrations creates the necessary database tables
func RunMigrations() error {
	if DB == nil {
		return fmt.Errorf("database connection not initialized")
	}

	if err := Migrate(DB); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// Migrate applies the schema on db
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create step_results table: %w", err)
	}
	return nil
}
