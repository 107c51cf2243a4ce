package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/themizzi/storefront-runner/internal/models"
)

// MockResultArchive is a mock implementation of ResultArchive
type MockResultArchive struct {
	GetResultsByRunFunc func(runID string) ([]models.StepResult, error)
	DeleteRunFunc       func(runID string) error
}

func (m *MockResultArchive) GetResultsByRun(runID string) ([]models.StepResult, error) {
	if m.GetResultsByRunFunc != nil {
		return m.GetResultsByRunFunc(runID)
	}
	return nil, nil
}

func (m *MockResultArchive) DeleteRun(runID string) error {
	if m.DeleteRunFunc != nil {
		return m.DeleteRunFunc(runID)
	}
	return nil
}

func TestShowRun(t *testing.T) {
	// GIVEN
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	archive := &MockResultArchive{
		GetResultsByRunFunc: func(runID string) ([]models.StepResult, error) {
			if runID != "run-1" {
				return nil, errors.New("run not found")
			}
			return []models.StepResult{
				{Action: "Login", Result: models.OutcomeSuccess, Details: []string{}, Timestamp: at},
			}, nil
		},
	}
	var out bytes.Buffer

	// WHEN
	err := ShowRun(archive, "run-1", &out)

	// THEN
	if err != nil {
		t.Fatalf("ShowRun() error = %v", err)
	}
	var records []map[string]any
	if err := json.Unmarshal(out.Bytes(), &records); err != nil {
		t.Fatalf("Output is not a JSON report: %v", err)
	}
	if len(records) != 1 || records[0]["action"] != "Login" || records[0]["timestamp"] != "2024-05-01T12:00:00.000Z" {
		t.Errorf("Unexpected records: %v", records)
	}
}

func TestShowRun_UnknownRun(t *testing.T) {
	archive := &MockResultArchive{
		GetResultsByRunFunc: func(string) ([]models.StepResult, error) { return nil, errors.New("run not found") },
	}
	var out bytes.Buffer

	if err := ShowRun(archive, "missing", &out); err == nil {
		t.Error("Expected error, got nil")
	}
	if out.Len() != 0 {
		t.Errorf("Expected no output, got %q", out.String())
	}
}

func TestDeleteRun(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{name: "deleted", err: nil, wantErr: false},
		{name: "unknown run", err: errors.New("run not found"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotRunID string
			archive := &MockResultArchive{
				DeleteRunFunc: func(runID string) error {
					gotRunID = runID
					return tt.err
				},
			}

			err := DeleteRun(archive, "run-1")

			if (err != nil) != tt.wantErr {
				t.Errorf("DeleteRun() error = %v, wantErr %v", err, tt.wantErr)
			}
			if gotRunID != "run-1" {
				t.Errorf("Expected run-1, got %q", gotRunID)
			}
		})
	}
}
