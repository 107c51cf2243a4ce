// Package browsertest provides an in-memory browser.Driver for tests.
package browsertest

import (
	"errors"
	"time"

	"github.com/themizzi/storefront-runner/internal/browser"
)

// Element is a fake UI element. Children are keyed by locator description.
type Element struct {
	Label    string
	TextErr  error
	ClickErr error
	KeysErr  error
	OnClick  func()
	Children map[string][]*Element

	Clicks int
	Keys   string

	page *Page
}

// NewElement creates an element showing text
func NewElement(text string) *Element {
	return &Element{Label: text, Children: map[string][]*Element{}}
}

// Add registers children under a locator and returns the element
func (e *Element) Add(loc browser.Locator, children ...*Element) *Element {
	e.Children[loc.String()] = append(e.Children[loc.String()], children...)
	return e
}

func (e *Element) Text() (string, error) {
	if e.TextErr != nil {
		return "", e.TextErr
	}
	return e.Label, nil
}

func (e *Element) Click() error {
	if e.page != nil {
		e.page.record("click " + e.Label)
	}
	if e.ClickErr != nil {
		return e.ClickErr
	}
	e.Clicks++
	if e.OnClick != nil {
		e.OnClick()
	}
	return nil
}

func (e *Element) SendKeys(keys string) error {
	if e.KeysErr != nil {
		return e.KeysErr
	}
	e.Keys += keys
	return nil
}

func (e *Element) Find(loc browser.Locator) (browser.Element, error) {
	found := e.Children[loc.String()]
	if len(found) == 0 {
		return nil, browser.NotFound(loc)
	}
	found[0].attach(e.page)
	return found[0], nil
}

func (e *Element) FindAll(loc browser.Locator) ([]browser.Element, error) {
	return wrap(e.Children[loc.String()], e.page), nil
}

func (e *Element) attach(p *Page) {
	if e.page == nil {
		e.page = p
	}
}

// Page is a fake Driver holding one page of elements keyed by locator description
type Page struct {
	Elements    map[string][]*Element
	NavigateErr error
	FindAllErr  map[string]error
	QuitErr     error

	// PanicOn makes Find panic for the given locator description
	PanicOn string

	Visited   []string
	Calls     []string
	QuitCount int
}

// NewPage creates an empty fake page
func NewPage() *Page {
	return &Page{
		Elements:   map[string][]*Element{},
		FindAllErr: map[string]error{},
	}
}

// Add registers elements under a locator and returns the page
func (p *Page) Add(loc browser.Locator, elements ...*Element) *Page {
	for _, e := range elements {
		e.attach(p)
	}
	p.Elements[loc.String()] = append(p.Elements[loc.String()], elements...)
	return p
}

// Remove drops every element registered under a locator
func (p *Page) Remove(loc browser.Locator) {
	delete(p.Elements, loc.String())
}

func (p *Page) Navigate(url string) error {
	p.record("navigate " + url)
	if p.NavigateErr != nil {
		return p.NavigateErr
	}
	p.Visited = append(p.Visited, url)
	return nil
}

func (p *Page) Find(loc browser.Locator) (browser.Element, error) {
	if p.PanicOn != "" && p.PanicOn == loc.String() {
		panic("fake page: " + loc.String())
	}
	found := p.Elements[loc.String()]
	if len(found) == 0 {
		return nil, browser.NotFound(loc)
	}
	return found[0], nil
}

func (p *Page) FindAll(loc browser.Locator) ([]browser.Element, error) {
	if err := p.FindAllErr[loc.String()]; err != nil {
		return nil, err
	}
	return wrap(p.Elements[loc.String()], p), nil
}

func (p *Page) WaitUntil(cond browser.Condition, timeout time.Duration) error {
	return browser.Poll(p, cond, timeout, time.Millisecond)
}

func (p *Page) Quit() error {
	p.record("quit")
	p.QuitCount++
	return p.QuitErr
}

func (p *Page) record(call string) {
	p.Calls = append(p.Calls, call)
}

func wrap(elements []*Element, p *Page) []browser.Element {
	out := make([]browser.Element, 0, len(elements))
	for _, e := range elements {
		e.attach(p)
		out = append(out, e)
	}
	return out
}

// ErrBoom is a generic failure for tests
var ErrBoom = errors.New("boom")
