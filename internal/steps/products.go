package steps

import (
	"fmt"
	"log"
	"strings"

	"github.com/themizzi/storefront-runner/internal/browser"
	"github.com/themizzi/storefront-runner/internal/models"
)

// DisplayedProduct is a catalog entry read from the live page
type DisplayedProduct struct {
	Name      string
	AddToCart func() error
}

// ProductMatcher adds wanted products found in the catalog to the cart
type ProductMatcher struct {
	driver browser.Driver
}

// NewProductMatcher creates a product matcher
func NewProductMatcher(driver browser.Driver) *ProductMatcher {
	return &ProductMatcher{driver: driver}
}

// Run reads the catalog from the page and adds every wanted product it contains
func (m *ProductMatcher) Run(wanted []string) models.StepResult {
	displayed, err := m.Displayed()
	if err != nil {
		log.Printf("Failed to list products: %v", err)
		return models.NewStepResult(ActionAddProducts, models.OutcomeFailure, err.Error())
	}
	return MatchAndAdd(displayed, wanted)
}

// Displayed lists the catalog entries in page order. An entry whose name
// cannot be read is skipped.
func (m *ProductMatcher) Displayed() ([]DisplayedProduct, error) {
	items, err := m.driver.FindAll(InventoryItem)
	if err != nil {
		return nil, err
	}

	displayed := make([]DisplayedProduct, 0, len(items))
	for _, item := range items {
		name, err := text(item, InventoryItemName)
		if err != nil {
			log.Printf("Skipping catalog item without a readable name: %v", err)
			continue
		}
		item := item
		displayed = append(displayed, DisplayedProduct{
			Name: name,
			AddToCart: func() error {
				return click(item, AddToCartButton)
			},
		})
	}
	return displayed, nil
}

// MatchAndAdd adds every displayed product whose name contains a wanted name.
// A wanted name may match several products; a missing one is noted and skipped.
func MatchAndAdd(displayed []DisplayedProduct, wanted []string) models.StepResult {
	details := []string{}
	for _, want := range wanted {
		matched := false
		for _, product := range displayed {
			if !strings.Contains(product.Name, want) {
				continue
			}
			matched = true
			if err := product.AddToCart(); err != nil {
				log.Printf("Failed to add %s to cart: %v", product.Name, err)
				details = append(details, fmt.Sprintf("Failed to add %s to cart: %v", product.Name, err))
				continue
			}
			details = append(details, fmt.Sprintf("Added %s to cart.", product.Name))
		}
		if !matched {
			log.Printf("%s not found on the page", want)
			details = append(details, fmt.Sprintf("%s not found on the page.", want))
		}
	}
	return models.NewStepResult(ActionAddProducts, models.OutcomeSuccess, details...)
}
