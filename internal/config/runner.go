package config

import (
	"fmt"
	"strconv"
	"time"
)

// Scenario modes
const (
	ModeFull = "full"
	ModeCart = "cart"
)

// Runner defaults
const (
	DefaultStorefrontURL = "https://www.saucedemo.com/"
	DefaultReportPath    = "./testResults.json"
	DefaultScenarioPath  = "./config.json"
	DefaultActionTimeout = 5000 * time.Millisecond
)

// RunnerConfig holds how and where the scenario runs
type RunnerConfig struct {
	StorefrontURL string
	ScenarioPath  string
	ReportPath    string
	Mode          string
	Headless      bool
	ActionTimeout time.Duration
}

// LoadRunnerConfig loads runner configuration from environment variables
func LoadRunnerConfig(getenv func(string) string) (RunnerConfig, error) {
	config := RunnerConfig{
		StorefrontURL: getenv("STOREFRONT_URL"),
		ScenarioPath:  getenv("SCENARIO_CONFIG"),
		ReportPath:    getenv("REPORT_PATH"),
		Mode:          getenv("SCENARIO_MODE"),
		Headless:      true,
		ActionTimeout: DefaultActionTimeout,
	}

	if config.StorefrontURL == "" {
		config.StorefrontURL = DefaultStorefrontURL
	}
	if config.ScenarioPath == "" {
		config.ScenarioPath = DefaultScenarioPath
	}
	if config.ReportPath == "" {
		config.ReportPath = DefaultReportPath
	}
	if config.Mode == "" {
		config.Mode = ModeFull
	}
	if err := ValidateMode(config.Mode); err != nil {
		return config, err
	}

	if v := getenv("HEADLESS"); v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return config, fmt.Errorf("HEADLESS must be a boolean: %w", err)
		}
		config.Headless = headless
	}

	if v := getenv("ACTION_TIMEOUT_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms <= 0 {
			return config, fmt.Errorf("ACTION_TIMEOUT_MS must be a positive integer, got %q", v)
		}
		config.ActionTimeout = time.Duration(ms) * time.Millisecond
	}

	return config, nil
}

// ValidateMode checks that mode names a known scenario mode
func ValidateMode(mode string) error {
	switch mode {
	case ModeFull, ModeCart:
		return nil
	default:
		return fmt.Errorf("unknown scenario mode %q (want %q or %q)", mode, ModeFull, ModeCart)
	}
}
