package cli

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/themizzi/storefront-runner/internal/browser/browsertest"
	"github.com/themizzi/storefront-runner/internal/config"
	"github.com/themizzi/storefront-runner/internal/models"
	"github.com/themizzi/storefront-runner/internal/scenario"
	"github.com/themizzi/storefront-runner/internal/steps"
)

// MockSink is a mock implementation of report.Sink
type MockSink struct {
	WriteFunc func(results []models.StepResult) error
	Written   []models.StepResult
}

func (m *MockSink) Write(results []models.StepResult) error {
	m.Written = results
	if m.WriteFunc != nil {
		return m.WriteFunc(results)
	}
	return nil
}

// cartPage builds a fake page on which the cart mode steps succeed
func cartPage() *browsertest.Page {
	page := browsertest.NewPage()
	page.Add(steps.UsernameInput, browsertest.NewElement(""))
	page.Add(steps.PasswordInput, browsertest.NewElement(""))
	page.Add(steps.LoginButton, browsertest.NewElement("Login"))
	page.Add(steps.InventoryItem, browsertest.NewElement("").
		Add(steps.InventoryItemName, browsertest.NewElement("Sauce Labs Backpack")).
		Add(steps.AddToCartButton, browsertest.NewElement("Add to cart")))
	page.Add(steps.CartLink, browsertest.NewElement(""))
	page.Add(steps.CartItemNamed("Backpack"), browsertest.NewElement("Sauce Labs Backpack"))
	page.Add(steps.RemoveButtonFor("Backpack"), browsertest.NewElement("Remove"))
	page.Add(steps.CheckoutButton, browsertest.NewElement("Checkout"))
	return page
}

func createRunDeps(page *browsertest.Page, sink *MockSink) RunDependencies {
	return RunDependencies{
		RunnerConfig: config.RunnerConfig{
			StorefrontURL: "http://storefront.test/",
			Mode:          config.ModeCart,
			ActionTimeout: 20 * time.Millisecond,
		},
		ScenarioConfig: &config.ScenarioConfig{
			Credentials:    config.Credentials{Username: "standard_user", Password: "secret_sauce"},
			WantedProducts: []string{"Backpack"},
			RemoveProduct:  "Backpack",
		},
		Driver: page,
		Sink:   sink,
	}
}

func TestRunScenario_AllStepsSucceed(t *testing.T) {
	// GIVEN
	page := cartPage()
	sink := &MockSink{}

	// WHEN
	results, err := RunScenario(createRunDeps(page, sink))

	// THEN
	if err != nil {
		t.Fatalf("RunScenario() error = %v", err)
	}
	if results.Len() != 5 || len(sink.Written) != 5 {
		t.Errorf("Expected 5 results recorded and written, got %d and %d", results.Len(), len(sink.Written))
	}
	if page.QuitCount != 1 {
		t.Errorf("Expected browser to quit once, got %d", page.QuitCount)
	}
}

func TestRunScenario_StepsFailed(t *testing.T) {
	// GIVEN a page with nothing on it
	page := browsertest.NewPage()
	sink := &MockSink{}

	// WHEN
	results, err := RunScenario(createRunDeps(page, sink))

	// THEN
	if !errors.Is(err, ErrStepsFailed) {
		t.Fatalf("Expected ErrStepsFailed, got %v", err)
	}
	if results.Summary().Passed() {
		t.Error("Expected a failing summary")
	}
	if len(sink.Written) != results.Len() {
		t.Errorf("Expected %d written results, got %d", results.Len(), len(sink.Written))
	}
}

func TestRunScenario_AbortedRunNamesRunID(t *testing.T) {
	// GIVEN
	page := cartPage()
	page.PanicOn = steps.CheckoutButton.String()
	deps := createRunDeps(page, &MockSink{})
	deps.RunID = "run-42"

	// WHEN
	_, err := RunScenario(deps)

	// THEN
	if !errors.Is(err, scenario.ErrRunAborted) {
		t.Fatalf("Expected ErrRunAborted, got %v", err)
	}
	if !strings.Contains(err.Error(), "run-42") {
		t.Errorf("Expected run ID in error, got %v", err)
	}
	if errors.Is(err, ErrStepsFailed) {
		t.Error("An aborted run is not reported as failed steps")
	}
}

func TestRunScenario_SinkError(t *testing.T) {
	writeErr := errors.New("report not writable")
	sink := &MockSink{WriteFunc: func([]models.StepResult) error { return writeErr }}

	_, err := RunScenario(createRunDeps(cartPage(), sink))

	if !errors.Is(err, writeErr) {
		t.Errorf("Expected sink error, got %v", err)
	}
}

func TestNewRunID(t *testing.T) {
	a, b := NewRunID(), NewRunID()

	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("Expected a UUID, got %q", a)
	}
	if a == b {
		t.Error("Expected distinct run IDs")
	}
}
