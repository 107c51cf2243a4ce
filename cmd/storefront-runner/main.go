package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/themizzi/storefront-runner/internal/browser"
	internalcli "github.com/themizzi/storefront-runner/internal/cli"
	"github.com/themizzi/storefront-runner/internal/config"
	"github.com/themizzi/storefront-runner/internal/database"
	"github.com/themizzi/storefront-runner/internal/handlers"
	"github.com/themizzi/storefront-runner/internal/models"
	"github.com/themizzi/storefront-runner/internal/report"
	"github.com/themizzi/storefront-runner/internal/repository"
	"github.com/urfave/cli/v2"
)

var version = "0.1.0"

// buildRunDependencies loads configuration, opens the browser, and assembles the sinks
func buildRunDependencies(c *cli.Context) (internalcli.RunDependencies, func(), error) {
	var deps internalcli.RunDependencies
	cleanup := func() {}

	runnerConfig, err := config.LoadRunnerConfig(os.Getenv)
	if err != nil {
		return deps, cleanup, fmt.Errorf("invalid runner configuration: %w", err)
	}
	applyFlags(c, &runnerConfig)
	if err := config.ValidateMode(runnerConfig.Mode); err != nil {
		return deps, cleanup, err
	}
	deps.RunnerConfig = runnerConfig

	scenarioConfig, err := config.LoadScenarioConfig(runnerConfig.ScenarioPath)
	if err != nil {
		return deps, cleanup, err
	}
	deps.ScenarioConfig = scenarioConfig
	deps.RunID = internalcli.NewRunID()

	sinks := report.MultiSink{
		report.NewJSONFileSink(runnerConfig.ReportPath),
		report.LogSink{},
	}

	if c.Bool("archive") {
		if err := database.Connect(os.Getenv); err != nil {
			return deps, cleanup, fmt.Errorf("failed to connect to database: %w", err)
		}
		cleanup = closeDatabase
		log.Println("Connected to database successfully")

		if err := database.RunMigrations(); err != nil {
			return deps, cleanup, fmt.Errorf("failed to run database migrations: %w", err)
		}
		sinks = append(sinks, report.NewArchiveSink(repository.NewResultRepository(), deps.RunID))
	}
	deps.Sink = sinks

	// The browser is acquired last so nothing can fail after it is open
	driver, err := browser.NewPlaywrightDriver(browser.LaunchOptions{
		Headless:      runnerConfig.Headless,
		ActionTimeout: runnerConfig.ActionTimeout,
	})
	if err != nil {
		return deps, cleanup, fmt.Errorf("failed to acquire browser session: %w", err)
	}
	deps.Driver = driver

	return deps, cleanup, nil
}

func closeDatabase() {
	if err := database.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}

func applyFlags(c *cli.Context, rc *config.RunnerConfig) {
	if c.IsSet("url") {
		rc.StorefrontURL = c.String("url")
	}
	if c.IsSet("config") {
		rc.ScenarioPath = c.String("config")
	}
	if c.IsSet("report") {
		rc.ReportPath = c.String("report")
	}
	if c.IsSet("mode") {
		rc.Mode = c.String("mode")
	}
	if c.IsSet("headless") {
		rc.Headless = c.Bool("headless")
	}
	if c.IsSet("timeout") {
		rc.ActionTimeout = c.Duration("timeout")
	}
}

// RunCommand returns the run command
func RunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run the checkout scenario against the storefront and write the test report",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Usage: "storefront base URL", Value: config.DefaultStorefrontURL},
			&cli.StringFlag{Name: "config", Usage: "scenario config file (.json or .yaml)", Value: config.DefaultScenarioPath},
			&cli.StringFlag{Name: "report", Usage: "report output path", Value: config.DefaultReportPath},
			&cli.StringFlag{Name: "mode", Usage: "scenario mode: full or cart", Value: config.ModeFull},
			&cli.BoolFlag{Name: "headless", Usage: "run the browser without a window", Value: true},
			&cli.DurationFlag{Name: "timeout", Usage: "catalog wait and action timeout", Value: config.DefaultActionTimeout},
			&cli.BoolFlag{Name: "archive", Usage: "also archive results in PostgreSQL"},
		},
		Action: func(c *cli.Context) error {
			deps, cleanup, err := buildRunDependencies(c)
			defer cleanup()
			if err != nil {
				return err
			}

			_, err = internalcli.RunScenario(deps)
			return err
		},
	}
}

// ResultsCommand returns the command reading archived runs
func ResultsCommand() *cli.Command {
	return &cli.Command{
		Name:      "results",
		Usage:     "Print an archived run as a JSON report, or delete it",
		ArgsUsage: "<run-id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "delete", Usage: "delete the run instead of printing it"},
		},
		Action: func(c *cli.Context) error {
			runID := c.Args().First()
			if runID == "" {
				return fmt.Errorf("a run ID is required")
			}

			if err := database.Connect(os.Getenv); err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer closeDatabase()

			archive := repository.NewResultRepository()
			if c.Bool("delete") {
				return internalcli.DeleteRun(archive, runID)
			}
			return internalcli.ShowRun(archive, runID, os.Stdout)
		},
	}
}

// StorefrontCommand returns the command serving the local fixture storefront
func StorefrontCommand() *cli.Command {
	return &cli.Command{
		Name:  "storefront",
		Usage: "Serve a local storefront the scenario can run against",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "tax-rate", Usage: "tax rate applied on the overview page", Value: models.TaxRate},
		},
		Action: func(c *cli.Context) error {
			store := handlers.NewStore(handlers.DefaultCatalog, c.Float64("tax-rate"))
			storefront, err := handlers.NewStorefront(store)
			if err != nil {
				return fmt.Errorf("failed to create storefront: %w", err)
			}

			return internalcli.RunServe(internalcli.ServerDependencies{
				ServerConfig: config.LoadStorefrontServerConfig(os.Getenv),
				Storefront:   storefront,
			})
		},
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	app := &cli.App{
		Name:    "storefront-runner",
		Usage:   "End-to-end checkout scenario runner for the storefront",
		Version: version,
		Commands: []*cli.Command{
			RunCommand(),
			ResultsCommand(),
			StorefrontCommand(),
		},
	}

	start := time.Now()
	err := app.Run(os.Args)
	log.Printf("Finished in %s", time.Since(start).Round(time.Millisecond))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, internalcli.ErrStepsFailed) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
