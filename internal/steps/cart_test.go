package steps

import (
	"errors"
	"strings"
	"testing"

	"github.com/themizzi/storefront-runner/internal/browser/browsertest"
	"github.com/themizzi/storefront-runner/internal/models"
)

// cartPage builds a cart page holding the named product
type cartPage struct {
	page     *browsertest.Page
	cartLink *browsertest.Element
	remove   *browsertest.Element
	checkout *browsertest.Element
}

func newCartPage(product string) cartPage {
	c := cartPage{
		page:     browsertest.NewPage(),
		cartLink: browsertest.NewElement("cart"),
		remove:   browsertest.NewElement("Remove"),
		checkout: browsertest.NewElement("Checkout"),
	}
	c.page.Add(CartLink, c.cartLink)
	c.page.Add(CartItemNamed("Backpack"), browsertest.NewElement(product))
	c.page.Add(RemoveButtonFor("Backpack"), c.remove)
	c.page.Add(CheckoutButton, c.checkout)
	return c
}

func TestCartReconciler_Reconcile_HappyPath(t *testing.T) {
	// GIVEN
	c := newCartPage("Sauce Labs Backpack")

	// WHEN
	results := NewCartReconciler(c.page).Reconcile("Backpack")

	// THEN
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	assertOutcome(t, results[0], ActionNavigateToCart, models.OutcomeSuccess)
	assertOutcome(t, results[1], ActionRemoveProduct, models.OutcomeSuccess)
	assertOutcome(t, results[2], ActionProceedCheckout, models.OutcomeSuccess)

	want := []string{"Found product: Backpack", "Removed Backpack from cart."}
	if strings.Join(results[1].Details, "|") != strings.Join(want, "|") {
		t.Errorf("Expected details %v, got %v", want, results[1].Details)
	}
	if c.cartLink.Clicks != 1 || c.remove.Clicks != 1 || c.checkout.Clicks != 1 {
		t.Errorf("Expected one click each, got cart=%d remove=%d checkout=%d",
			c.cartLink.Clicks, c.remove.Clicks, c.checkout.Clicks)
	}
}

func TestCartReconciler_Reconcile_AllSubStepsRunWhenRemoveFails(t *testing.T) {
	// GIVEN a cart without the product
	c := newCartPage("Sauce Labs Backpack")
	c.page.Remove(CartItemNamed("Backpack"))
	c.page.Remove(RemoveButtonFor("Backpack"))

	// WHEN
	results := NewCartReconciler(c.page).Reconcile("Backpack")

	// THEN
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	assertOutcome(t, results[0], ActionNavigateToCart, models.OutcomeSuccess)
	assertOutcome(t, results[1], ActionRemoveProduct, models.OutcomeFailed)
	assertOutcome(t, results[2], ActionProceedCheckout, models.OutcomeSuccess)
	if c.checkout.Clicks != 1 {
		t.Error("Checkout should still be attempted")
	}
	if countPrefix(results[1].Details, "Error removing Backpack: element not found") != 1 {
		t.Errorf("Unexpected details: %v", results[1].Details)
	}
}

func TestCartReconciler_Reconcile_EverySubStepFails(t *testing.T) {
	// GIVEN an empty page
	page := browsertest.NewPage()

	// WHEN
	results := NewCartReconciler(page).Reconcile("Backpack")

	// THEN
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	assertOutcome(t, results[0], ActionNavigateToCart, models.OutcomeFailed)
	assertOutcome(t, results[1], ActionRemoveProduct, models.OutcomeFailed)
	assertOutcome(t, results[2], ActionProceedCheckout, models.OutcomeFailed)
	if countPrefix(results[0].Details, "Error clicking shopping cart icon") != 1 {
		t.Errorf("Unexpected cart details: %v", results[0].Details)
	}
	if countPrefix(results[2].Details, "Error proceeding to checkout") != 1 {
		t.Errorf("Unexpected checkout details: %v", results[2].Details)
	}
}

func TestCartReconciler_RemoveByName_ButtonFails(t *testing.T) {
	// GIVEN the item is found but its remove button cannot be clicked
	c := newCartPage("Sauce Labs Backpack")
	c.remove.ClickErr = errors.New("not clickable")

	// WHEN
	result := NewCartReconciler(c.page).RemoveByName("Backpack")

	// THEN
	assertOutcome(t, result, ActionRemoveProduct, models.OutcomeFailed)
	want := []string{"Found product: Backpack", "Error removing Backpack: not clickable"}
	if strings.Join(result.Details, "|") != strings.Join(want, "|") {
		t.Errorf("Expected details %v, got %v", want, result.Details)
	}
}
