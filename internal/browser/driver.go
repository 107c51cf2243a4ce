package browser

import (
	"errors"
	"fmt"
	"time"
)

// Driver errors
var (
	ErrNotFound = errors.New("element not found")
	ErrTimeout  = errors.New("timed out waiting for condition")
)

// Driver drives a single browser session. Every call blocks until the
// browser answers; calls are never issued concurrently.
type Driver interface {
	Navigate(url string) error
	Find(loc Locator) (Element, error)
	FindAll(loc Locator) ([]Element, error)
	WaitUntil(cond Condition, timeout time.Duration) error
	Quit() error
}

// Element is a handle to a located UI element
type Element interface {
	Text() (string, error)
	Click() error
	SendKeys(keys string) error
	Find(loc Locator) (Element, error)
	FindAll(loc Locator) ([]Element, error)
}

// Condition is polled by WaitUntil until it reports true
type Condition func(d Driver) (bool, error)

// ElementsLocated is satisfied once at least one element matches loc
func ElementsLocated(loc Locator) Condition {
	return func(d Driver) (bool, error) {
		elements, err := d.FindAll(loc)
		if err != nil {
			return false, err
		}
		return len(elements) > 0, nil
	}
}

// PollInterval is the delay between condition checks
const PollInterval = 100 * time.Millisecond

// Poll evaluates cond until it holds, fails, or timeout elapses
func Poll(d Driver, cond Condition, timeout, interval time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		ok, err := cond(d)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if !time.Now().Before(deadline) {
			return fmt.Errorf("%w after %s", ErrTimeout, timeout)
		}
		wait := interval
		if remaining := time.Until(deadline); remaining < wait {
			wait = remaining
		}
		time.Sleep(wait)
	}
}

// NotFound wraps ErrNotFound with the locator that failed to match
func NotFound(loc Locator) error {
	return fmt.Errorf("%w: %s", ErrNotFound, loc)
}
