package steps

import (
	"fmt"
	"log"
	"time"

	"github.com/themizzi/storefront-runner/internal/browser"
	"github.com/themizzi/storefront-runner/internal/config"
	"github.com/themizzi/storefront-runner/internal/models"
)

// DefaultCatalogTimeout bounds the wait for the catalog after login
const DefaultCatalogTimeout = 5000 * time.Millisecond

// LoginStep signs in and waits for the catalog to render
type LoginStep struct {
	driver  browser.Driver
	baseURL string
	timeout time.Duration
}

// NewLoginStep creates a login step against the storefront at baseURL
func NewLoginStep(driver browser.Driver, baseURL string, timeout time.Duration) *LoginStep {
	if timeout <= 0 {
		timeout = DefaultCatalogTimeout
	}
	return &LoginStep{driver: driver, baseURL: baseURL, timeout: timeout}
}

// Run submits the credentials and blocks until at least one catalog item is present
func (s *LoginStep) Run(creds config.Credentials) models.StepResult {
	if err := s.login(creds); err != nil {
		log.Printf("Login failed: %v", err)
		return models.NewStepResult(ActionLogin, models.OutcomeFailed, err.Error())
	}
	return models.NewStepResult(ActionLogin, models.OutcomeSuccess)
}

func (s *LoginStep) login(creds config.Credentials) error {
	if err := s.driver.Navigate(s.baseURL); err != nil {
		return err
	}
	if err := typeInto(s.driver, UsernameInput, creds.Username); err != nil {
		return err
	}
	if err := typeInto(s.driver, PasswordInput, creds.Password); err != nil {
		return err
	}
	if err := click(s.driver, LoginButton); err != nil {
		return err
	}
	if err := s.driver.WaitUntil(browser.ElementsLocated(InventoryItem), s.timeout); err != nil {
		return fmt.Errorf("catalog did not load: %w", err)
	}
	return nil
}

type finder interface {
	Find(loc browser.Locator) (browser.Element, error)
}

func typeInto(f finder, loc browser.Locator, keys string) error {
	el, err := f.Find(loc)
	if err != nil {
		return err
	}
	return el.SendKeys(keys)
}

func click(f finder, loc browser.Locator) error {
	el, err := f.Find(loc)
	if err != nil {
		return err
	}
	return el.Click()
}

func text(f finder, loc browser.Locator) (string, error) {
	el, err := f.Find(loc)
	if err != nil {
		return "", err
	}
	return el.Text()
}
