package cli

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/themizzi/storefront-runner/internal/browser"
	"github.com/themizzi/storefront-runner/internal/config"
	"github.com/themizzi/storefront-runner/internal/models"
	"github.com/themizzi/storefront-runner/internal/report"
	"github.com/themizzi/storefront-runner/internal/scenario"
)

// ErrStepsFailed is returned when the run completed but some steps did not succeed
var ErrStepsFailed = errors.New("one or more test steps did not succeed")

// RunDependencies holds all dependencies needed for a scenario run
type RunDependencies struct {
	RunID          string
	RunnerConfig   config.RunnerConfig
	ScenarioConfig *config.ScenarioConfig
	Driver         browser.Driver
	Sink           report.Sink
}

// NewRunID returns a fresh run identifier
func NewRunID() string {
	return uuid.NewString()
}

// RunScenario executes the scenario and reports whether every step succeeded
func RunScenario(deps RunDependencies) (*models.ResultLog, error) {
	if deps.RunID == "" {
		deps.RunID = NewRunID()
	}

	sc := scenario.New(deps.Driver, deps.Sink, deps.ScenarioConfig, scenario.Options{
		RunID:          deps.RunID,
		BaseURL:        deps.RunnerConfig.StorefrontURL,
		Mode:           deps.RunnerConfig.Mode,
		CatalogTimeout: deps.RunnerConfig.ActionTimeout,
	})

	results, err := sc.Run()
	if err != nil {
		return results, fmt.Errorf("run %s: %w", deps.RunID, err)
	}

	if summary := results.Summary(); !summary.Passed() {
		log.Printf("Run %s finished with %d of %d steps not successful", deps.RunID, summary.Total-summary.Success, summary.Total)
		return results, ErrStepsFailed
	}

	log.Printf("Run %s finished: all %d steps succeeded", deps.RunID, results.Len())
	return results, nil
}
