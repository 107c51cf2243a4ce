package scenario

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/themizzi/storefront-runner/internal/browser"
	"github.com/themizzi/storefront-runner/internal/config"
	"github.com/themizzi/storefront-runner/internal/models"
	"github.com/themizzi/storefront-runner/internal/report"
	"github.com/themizzi/storefront-runner/internal/steps"
)

// ErrRunAborted is returned when a step panics and the remaining steps are skipped
var ErrRunAborted = errors.New("scenario aborted")

// Options controls which steps run and against which storefront
type Options struct {
	RunID          string
	BaseURL        string
	Mode           string
	CatalogTimeout time.Duration
}

// Scenario drives one checkout scenario through a browser session. The
// session and the sink are released and flushed exactly once per Run.
type Scenario struct {
	driver browser.Driver
	sink   report.Sink
	cfg    *config.ScenarioConfig
	opts   Options
}

// New creates a scenario owning driver for the duration of Run
func New(driver browser.Driver, sink report.Sink, cfg *config.ScenarioConfig, opts Options) *Scenario {
	if opts.Mode == "" {
		opts.Mode = config.ModeFull
	}
	return &Scenario{driver: driver, sink: sink, cfg: cfg, opts: opts}
}

type step struct {
	name string
	run  func() []models.StepResult
}

func one(r models.StepResult) []models.StepResult {
	return []models.StepResult{r}
}

// plan returns the fixed step sequence for the configured mode
func (s *Scenario) plan() []step {
	d := s.driver
	sequence := []step{
		{"login", func() []models.StepResult {
			return one(steps.NewLoginStep(d, s.opts.BaseURL, s.opts.CatalogTimeout).Run(s.cfg.Credentials))
		}},
		{"populate cart", func() []models.StepResult {
			return one(steps.NewProductMatcher(d).Run(s.cfg.WantedProducts))
		}},
		{"reconcile cart", func() []models.StepResult {
			return steps.NewCartReconciler(d).Reconcile(s.cfg.RemoveProduct)
		}},
	}
	if s.opts.Mode == config.ModeCart {
		return sequence
	}
	return append(sequence,
		step{"fill shipping info", func() []models.StepResult {
			return one(steps.NewCheckoutInfoStep(d).Run(s.cfg.ShippingInfo))
		}},
		step{"verify totals", func() []models.StepResult {
			return one(steps.NewCheckoutVerifier(d).Run())
		}},
		step{"verify confirmation", func() []models.StepResult {
			return one(steps.NewConfirmationStep(d).Run())
		}},
	)
}

// Run attempts every step in order whatever the previous outcome, then
// flushes the results to the sink and quits the browser. A panicking step
// ends the sequence early; cleanup still happens.
func (s *Scenario) Run() (results *models.ResultLog, err error) {
	results = models.NewResultLog()
	log.Printf("Starting scenario run %s (mode: %s)", s.opts.RunID, s.opts.Mode)

	// Registered first so it runs after the flush
	defer func() {
		if quitErr := s.driver.Quit(); quitErr != nil {
			log.Printf("Failed to release browser: %v", quitErr)
			err = errors.Join(err, fmt.Errorf("failed to release browser: %w", quitErr))
		}

		sum := results.Summary()
		log.Printf("Test results: %d steps, %d success, %d failed, %d failure, %d error",
			sum.Total, sum.Success, sum.Failed, sum.Failure, sum.Error)
	}()

	defer func() {
		if r := recover(); r != nil {
			log.Printf("Test failed: %v", r)
			err = fmt.Errorf("%w: %v", ErrRunAborted, r)
		}

		if flushErr := s.flush(results); flushErr != nil {
			log.Printf("Failed to write test results: %v", flushErr)
			err = errors.Join(err, flushErr)
		}
	}()

	for _, st := range s.plan() {
		stepResults := st.run()
		for _, r := range stepResults {
			if !r.IsSuccess() {
				log.Printf("Step %q (%s) finished with %s", r.Action, st.name, r.Result)
			}
		}
		results.Append(stepResults...)
	}

	return results, nil
}

// flush hands the results to the sink, turning a sink panic into an error
func (s *Scenario) flush(results *models.ResultLog) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sink panicked: %v", r)
		}
	}()
	return s.sink.Write(results.Results())
}
