package browser

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/playwright-community/playwright-go"
)

// LaunchOptions configures the browser session
type LaunchOptions struct {
	Headless      bool
	ActionTimeout time.Duration
}

// PlaywrightDriver implements Driver on a Chromium page driven by Playwright
type PlaywrightDriver struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
	quit    bool
}

// NewPlaywrightDriver starts Playwright and opens a page in a fresh Chromium
// (browsers installed via: go run github.com/playwright-community/playwright-go/cmd/playwright@latest install chromium)
func NewPlaywrightDriver(opts LaunchOptions) (*PlaywrightDriver, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		return nil, abandon(fmt.Errorf("failed to launch browser: %w", err), pw.Stop)
	}

	page, err := browser.NewPage()
	if err != nil {
		return nil, abandon(fmt.Errorf("failed to open page: %w", err), func() error { return browser.Close() }, pw.Stop)
	}
	if opts.ActionTimeout > 0 {
		page.SetDefaultTimeout(float64(opts.ActionTimeout.Milliseconds()))
	}

	return &PlaywrightDriver{pw: pw, browser: browser, page: page}, nil
}

// Navigate loads url in the page
func (d *PlaywrightDriver) Navigate(url string) error {
	if _, err := d.page.Goto(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// Find returns the first element matching loc
func (d *PlaywrightDriver) Find(loc Locator) (Element, error) {
	return first(d.page.Locator(loc.Selector()), loc)
}

// FindAll returns every element matching loc in page order
func (d *PlaywrightDriver) FindAll(loc Locator) ([]Element, error) {
	return all(d.page.Locator(loc.Selector()), loc)
}

// WaitUntil polls cond until it holds or timeout elapses
func (d *PlaywrightDriver) WaitUntil(cond Condition, timeout time.Duration) error {
	return Poll(d, cond, timeout, PollInterval)
}

// Quit closes the browser and stops Playwright. Later calls are no-ops.
func (d *PlaywrightDriver) Quit() error {
	if d.quit {
		return nil
	}
	d.quit = true

	var errs []error
	if err := d.browser.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close browser: %w", err))
	}
	if err := d.pw.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
	}
	log.Println("Browser session closed")
	return errors.Join(errs...)
}

type playwrightElement struct {
	locator playwright.Locator
}

func (e *playwrightElement) Text() (string, error) {
	text, err := e.locator.InnerText()
	if err != nil {
		return "", translate(err)
	}
	return text, nil
}

func (e *playwrightElement) Click() error {
	return translate(e.locator.Click())
}

func (e *playwrightElement) SendKeys(keys string) error {
	return translate(e.locator.Fill(keys))
}

func (e *playwrightElement) Find(loc Locator) (Element, error) {
	return first(e.locator.Locator(loc.Selector()), loc)
}

func (e *playwrightElement) FindAll(loc Locator) ([]Element, error) {
	return all(e.locator.Locator(loc.Selector()), loc)
}

// first waits up to the page's action timeout for a match to be attached
func first(l playwright.Locator, loc Locator) (Element, error) {
	el := l.First()
	err := el.WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateAttached,
	})
	if err != nil {
		return nil, findError(err, loc)
	}
	return &playwrightElement{locator: el}, nil
}

// findError reports a wait that timed out as a missing element
func findError(err error, loc Locator) error {
	if errors.Is(err, playwright.ErrTimeout) {
		return NotFound(loc)
	}
	return fmt.Errorf("failed to find %s: %w", loc, translate(err))
}

func all(l playwright.Locator, loc Locator) ([]Element, error) {
	locators, err := l.All()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", loc, translate(err))
	}
	elements := make([]Element, 0, len(locators))
	for _, item := range locators {
		elements = append(elements, &playwrightElement{locator: item})
	}
	return elements, nil
}

// abandon releases what a failed launch already acquired, in order
func abandon(cause error, release ...func() error) error {
	errs := []error{cause}
	for _, fn := range release {
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// translate maps Playwright timeouts onto ErrTimeout
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}
