package steps

import (
	"fmt"
	"log"

	"github.com/themizzi/storefront-runner/internal/browser"
	"github.com/themizzi/storefront-runner/internal/config"
	"github.com/themizzi/storefront-runner/internal/models"
)

// CheckoutInfoStep fills in the shipping form
type CheckoutInfoStep struct {
	driver browser.Driver
}

// NewCheckoutInfoStep creates a checkout information step
func NewCheckoutInfoStep(driver browser.Driver) *CheckoutInfoStep {
	return &CheckoutInfoStep{driver: driver}
}

// Run types the shipping details and presses continue
func (s *CheckoutInfoStep) Run(info config.ShippingInfo) models.StepResult {
	err := func() error {
		if err := typeInto(s.driver, FirstNameInput, info.FirstName); err != nil {
			return err
		}
		if err := typeInto(s.driver, LastNameInput, info.LastName); err != nil {
			return err
		}
		if err := typeInto(s.driver, PostalCodeInput, info.PostalCode); err != nil {
			return err
		}
		return click(s.driver, ContinueButton)
	}()
	if err != nil {
		log.Printf("Error filling checkout information: %v", err)
		return models.NewStepResult(ActionFillCheckoutInfo, models.OutcomeFailed,
			fmt.Sprintf("Error filling checkout information: %v", err))
	}
	return models.NewStepResult(ActionFillCheckoutInfo, models.OutcomeSuccess)
}

// CheckoutVerifier checks the overview tax and total before finishing the order
type CheckoutVerifier struct {
	driver browser.Driver
}

// NewCheckoutVerifier creates a checkout verifier
func NewCheckoutVerifier(driver browser.Driver) *CheckoutVerifier {
	return &CheckoutVerifier{driver: driver}
}

// Run reads the displayed amounts, verifies them, and finishes the order
// only when they are consistent
func (v *CheckoutVerifier) Run() models.StepResult {
	var labels [3]string
	for i, loc := range []browser.Locator{SubtotalLabel, TaxLabel, TotalLabel} {
		s, err := text(v.driver, loc)
		if err != nil {
			return verifyError(err)
		}
		labels[i] = s
	}

	result := Verify(labels[0], labels[1], labels[2])
	if !result.IsSuccess() {
		return result
	}

	if err := click(v.driver, FinishButton); err != nil {
		log.Printf("Error finishing order: %v", err)
		result.Result = models.OutcomeError
		result.Details = append(result.Details, fmt.Sprintf("Error: %v", err))
	}
	return result
}

// Verify compares the displayed tax and total against the amounts expected
// for the displayed subtotal
func Verify(subtotalText, taxText, totalText string) models.StepResult {
	totals, err := models.ParseCheckoutTotals(subtotalText, taxText, totalText)
	if err != nil {
		return verifyError(err)
	}

	expectedTax := models.ExpectedTax(totals.Subtotal)
	expectedTotal := models.ExpectedTotal(totals.Subtotal)

	if !totals.Consistent() {
		log.Println("Total or tax is incorrect")
		return models.NewStepResult(ActionVerifyTotals, models.OutcomeFailure,
			fmt.Sprintf("Verification failed: Total (%s) vs Expected (%s), Tax (%s) vs Expected (%s)",
				models.FormatAmount(totals.Total), models.FormatAmount(expectedTotal),
				models.FormatAmount(totals.Tax), models.FormatAmount(expectedTax)))
	}

	return models.NewStepResult(ActionVerifyTotals, models.OutcomeSuccess,
		fmt.Sprintf("Subtotal: %s", models.FormatAmount(totals.Subtotal)),
		fmt.Sprintf("Total: %s (Expected: %s), Tax: %s (Expected: %s)",
			models.FormatAmount(totals.Total), models.FormatAmount(expectedTotal),
			models.FormatAmount(totals.Tax), models.FormatAmount(expectedTax)))
}

func verifyError(err error) models.StepResult {
	log.Printf("Error verifying checkout totals: %v", err)
	return models.NewStepResult(ActionVerifyTotals, models.OutcomeError, fmt.Sprintf("Error: %v", err))
}

// ConfirmationStep checks that the order completion message is shown
type ConfirmationStep struct {
	driver browser.Driver
}

// NewConfirmationStep creates a confirmation step
func NewConfirmationStep(driver browser.Driver) *ConfirmationStep {
	return &ConfirmationStep{driver: driver}
}

// Run looks for the thank-you message
func (s *ConfirmationStep) Run() models.StepResult {
	if _, err := s.driver.Find(ThankYouText); err != nil {
		log.Printf("Thank you message not found: %v", err)
		return models.NewStepResult(ActionVerifyThankYou, models.OutcomeError, fmt.Sprintf("Error: %v", err))
	}
	return models.NewStepResult(ActionVerifyThankYou, models.OutcomeSuccess,
		fmt.Sprintf("%q is found on the screen.", ThankYouMessage))
}
