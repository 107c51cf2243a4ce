package steps

import (
	"strings"
	"testing"

	"github.com/themizzi/storefront-runner/internal/browser/browsertest"
	"github.com/themizzi/storefront-runner/internal/models"
)

// catalogItem builds an inventory item with a name and an add-to-cart button
func catalogItem(name string) (*browsertest.Element, *browsertest.Element) {
	button := browsertest.NewElement("Add to cart")
	item := browsertest.NewElement(name).
		Add(InventoryItemName, browsertest.NewElement(name)).
		Add(AddToCartButton, button)
	return item, button
}

// catalogPage builds a page listing the named products
func catalogPage(names ...string) (*browsertest.Page, map[string]*browsertest.Element) {
	page := browsertest.NewPage()
	buttons := map[string]*browsertest.Element{}
	for _, name := range names {
		item, button := catalogItem(name)
		page.Add(InventoryItem, item)
		buttons[name] = button
	}
	return page, buttons
}

var demoCatalog = []string{
	"Sauce Labs Backpack",
	"Sauce Labs Bike Light",
	"Sauce Labs Bolt T-Shirt",
	"Sauce Labs Fleece Jacket",
	"Sauce Labs Onesie",
	"Test.allTheThings() T-Shirt (Red)",
}

func assertOutcome(t *testing.T, r models.StepResult, action string, outcome models.Outcome) {
	t.Helper()
	if r.Action != action {
		t.Errorf("Expected action %q, got %q", action, r.Action)
	}
	if r.Result != outcome {
		t.Errorf("Expected %s for %q, got %s (details: %v)", outcome, action, r.Result, r.Details)
	}
}

func countPrefix(details []string, prefix string) int {
	n := 0
	for _, d := range details {
		if strings.HasPrefix(d, prefix) {
			n++
		}
	}
	return n
}

func containsDetail(details []string, want string) bool {
	for _, d := range details {
		if d == want {
			return true
		}
	}
	return false
}
