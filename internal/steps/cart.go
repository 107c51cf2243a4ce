package steps

import (
	"fmt"
	"log"

	"github.com/themizzi/storefront-runner/internal/browser"
	"github.com/themizzi/storefront-runner/internal/models"
)

// CartReconciler removes an unwanted item and moves on to checkout
type CartReconciler struct {
	driver browser.Driver
}

// NewCartReconciler creates a cart reconciler
func NewCartReconciler(driver browser.Driver) *CartReconciler {
	return &CartReconciler{driver: driver}
}

// Reconcile opens the cart, removes name, and proceeds to checkout. All three
// sub-steps are attempted whatever their siblings' outcome.
func (c *CartReconciler) Reconcile(name string) []models.StepResult {
	return []models.StepResult{
		c.OpenCart(),
		c.RemoveByName(name),
		c.ProceedToCheckout(),
	}
}

// OpenCart clicks the cart icon
func (c *CartReconciler) OpenCart() models.StepResult {
	if err := click(c.driver, CartLink); err != nil {
		log.Printf("Error clicking shopping cart icon: %v", err)
		return models.NewStepResult(ActionNavigateToCart, models.OutcomeFailed,
			fmt.Sprintf("Error clicking shopping cart icon: %v", err))
	}
	return models.NewStepResult(ActionNavigateToCart, models.OutcomeSuccess)
}

// RemoveByName clicks the remove control on the cart line containing name
func (c *CartReconciler) RemoveByName(name string) models.StepResult {
	details := []string{}
	err := func() error {
		if _, err := c.driver.Find(CartItemNamed(name)); err != nil {
			return err
		}
		details = append(details, fmt.Sprintf("Found product: %s", name))
		return click(c.driver, RemoveButtonFor(name))
	}()
	if err != nil {
		log.Printf("Error removing %s: %v", name, err)
		details = append(details, fmt.Sprintf("Error removing %s: %v", name, err))
		return models.NewStepResult(ActionRemoveProduct, models.OutcomeFailed, details...)
	}

	details = append(details, fmt.Sprintf("Removed %s from cart.", name))
	return models.NewStepResult(ActionRemoveProduct, models.OutcomeSuccess, details...)
}

// ProceedToCheckout clicks the checkout button
func (c *CartReconciler) ProceedToCheckout() models.StepResult {
	if err := click(c.driver, CheckoutButton); err != nil {
		log.Printf("Error proceeding to checkout: %v", err)
		return models.NewStepResult(ActionProceedCheckout, models.OutcomeFailed,
			fmt.Sprintf("Error proceeding to checkout: %v", err))
	}
	return models.NewStepResult(ActionProceedCheckout, models.OutcomeSuccess)
}
