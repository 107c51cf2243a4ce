package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/themizzi/storefront-runner/internal/models"
)

// Sink receives the step results of a run once, at run end
type Sink interface {
	Write(results []models.StepResult) error
}

// JSONFileSink writes the results as an indented JSON array, replacing any
// previous report at Path
type JSONFileSink struct {
	Path string
}

// NewJSONFileSink creates a sink writing to path
func NewJSONFileSink(path string) *JSONFileSink {
	return &JSONFileSink{Path: path}
}

// Write serializes the results to the report file
func (s *JSONFileSink) Write(results []models.StepResult) error {
	data, err := Marshal(results)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", s.Path, err)
	}
	log.Printf("Test report written to %s", s.Path)
	return nil
}

// Marshal encodes results as the report's JSON array
func Marshal(results []models.StepResult) ([]byte, error) {
	if results == nil {
		results = []models.StepResult{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return data, nil
}

// LogSink prints the results on the operator log
type LogSink struct {
	Logger *log.Logger
}

// Write logs one line per step result
func (s LogSink) Write(results []models.StepResult) error {
	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Println("Test Results:")
	for _, r := range results {
		logger.Printf("  [%s] %s %v", r.Result, r.Action, r.Details)
	}
	return nil
}

// MultiSink writes to every sink, even after one fails
type MultiSink []Sink

// Write fans out to each sink and joins their errors
func (m MultiSink) Write(results []models.StepResult) error {
	var errs []error
	for _, sink := range m {
		if err := sink.Write(results); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
