package steps

import "github.com/themizzi/storefront-runner/internal/browser"

// Step action names as they appear in the report
const (
	ActionLogin            = "Login"
	ActionAddProducts      = "Add Products to Cart"
	ActionNavigateToCart   = "Navigate to Cart"
	ActionRemoveProduct    = "Remove Product"
	ActionProceedCheckout  = "Proceed to Checkout"
	ActionFillCheckoutInfo = "Fill Checkout Information"
	ActionVerifyTotals     = "Verify Checkout Totals"
	ActionVerifyThankYou   = "Verify Thank You Message"
)

// ThankYouMessage is shown once an order is complete
const ThankYouMessage = "Thank you for your order!"

// Storefront page elements
var (
	UsernameInput = browser.ByID("user-name")
	PasswordInput = browser.ByID("password")
	LoginButton   = browser.ByID("login-button")

	InventoryItem     = browser.ByClass("inventory_item")
	InventoryItemName = browser.ByClass("inventory_item_name")
	AddToCartButton   = browser.ByTextContains("Add to cart")

	CartLink       = browser.ByClass("shopping_cart_link")
	CartItem       = browser.ByClass("cart_item")
	CartItemButton = browser.ByClass("cart_button")
	CheckoutButton = browser.ByID("checkout")

	FirstNameInput  = browser.ByID("first-name")
	LastNameInput   = browser.ByID("last-name")
	PostalCodeInput = browser.ByID("postal-code")
	ContinueButton  = browser.ByID("continue")

	SubtotalLabel = browser.ByCSS(`[data-test="subtotal-label"]`)
	TaxLabel      = browser.ByCSS(`[data-test="tax-label"]`)
	TotalLabel    = browser.ByCSS(`[data-test="total-label"]`)
	FinishButton  = browser.ByCSS(`[data-test="finish"]`)

	ThankYouText = browser.ByTextContains(ThankYouMessage)
)

// CartItemNamed locates the name of the cart line containing name
func CartItemNamed(name string) browser.Locator {
	return InventoryItemName.WithText(name)
}

// RemoveButtonFor locates the remove control on the cart line containing name
func RemoveButtonFor(name string) browser.Locator {
	return browser.ByStructuralSibling(CartItemNamed(name), CartItem, CartItemButton)
}
