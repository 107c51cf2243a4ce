package handlers

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
)

// Product represents a catalog item. Price is in cents.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       int64
}

// FormattedPrice returns the price as dollars
func (p Product) FormattedPrice() string {
	return FormatCents(p.Price)
}

// FormatCents formats a cent amount as dollars with two decimals
func FormatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

// DefaultCatalog mirrors the demo storefront's inventory
var DefaultCatalog = []Product{
	{ID: "sauce-labs-backpack", Name: "Sauce Labs Backpack", Description: "Carry all the things.", Price: 2999},
	{ID: "sauce-labs-bike-light", Name: "Sauce Labs Bike Light", Description: "A red light that isn't the reason you got pulled over.", Price: 999},
	{ID: "sauce-labs-bolt-t-shirt", Name: "Sauce Labs Bolt T-Shirt", Description: "Get your testing superhero on.", Price: 1599},
	{ID: "sauce-labs-fleece-jacket", Name: "Sauce Labs Fleece Jacket", Description: "A midweight quarter-zip fleece jacket.", Price: 4999},
	{ID: "sauce-labs-onesie", Name: "Sauce Labs Onesie", Description: "Rib snap infant onesie.", Price: 799},
	{ID: "test.allthethings()-t-shirt-(red)", Name: "Test.allTheThings() T-Shirt (Red)", Description: "This classic t-shirt is perfect for testers.", Price: 1599},
}

// Store holds the catalog, accepted logins, and cart state of the fixture
// storefront. All sessions share one cart.
type Store struct {
	mu       sync.Mutex
	catalog  []Product
	users    map[string]string
	taxRate  float64
	cart     map[string]bool
	checkout *CheckoutInfo
	orders   int
}

// CheckoutInfo is the shipping form submitted during checkout
type CheckoutInfo struct {
	FirstName  string
	LastName   string
	PostalCode string
}

// NewStore creates a store selling catalog and taxing at taxRate
func NewStore(catalog []Product, taxRate float64) *Store {
	return &Store{
		catalog: catalog,
		users:   map[string]string{"standard_user": "secret_sauce"},
		taxRate: taxRate,
		cart:    map[string]bool{},
	}
}

// AddUser accepts an additional login
func (s *Store) AddUser(username, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[username] = password
}

// Authenticate returns true if the credentials are accepted
func (s *Store) Authenticate(username, password string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	want, ok := s.users[username]
	return ok && want == password
}

// Catalog returns the products in display order
func (s *Store) Catalog() []Product {
	return s.catalog
}

// Product looks up a product by ID
func (s *Store) Product(id string) (Product, bool) {
	for _, p := range s.catalog {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// AddToCart puts a product in the cart
func (s *Store) AddToCart(id string) error {
	if _, ok := s.Product(id); !ok {
		return fmt.Errorf("unknown product %q", id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart[id] = true
	return nil
}

// RemoveFromCart takes a product out of the cart
func (s *Store) RemoveFromCart(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cart, id)
}

// InCart returns true if the product is in the cart
func (s *Store) InCart(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart[id]
}

// CartItems returns the cart contents in catalog order
func (s *Store) CartItems() []Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []Product
	for _, p := range s.catalog {
		if s.cart[p.ID] {
			items = append(items, p)
		}
	}
	return items
}

// CartNames returns the sorted names of the products in the cart
func (s *Store) CartNames() []string {
	var names []string
	for _, p := range s.CartItems() {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}

// SetCheckoutInfo records the shipping form
func (s *Store) SetCheckoutInfo(info CheckoutInfo) error {
	if strings.TrimSpace(info.FirstName) == "" {
		return fmt.Errorf("First Name is required")
	}
	if strings.TrimSpace(info.LastName) == "" {
		return fmt.Errorf("Last Name is required")
	}
	if strings.TrimSpace(info.PostalCode) == "" {
		return fmt.Errorf("Postal Code is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkout = &info
	return nil
}

// Totals holds the overview amounts in cents
type Totals struct {
	Subtotal int64
	Tax      int64
	Total    int64
}

// Totals computes the cart subtotal, tax, and total
func (s *Store) Totals() Totals {
	var t Totals
	for _, p := range s.CartItems() {
		t.Subtotal += p.Price
	}
	t.Tax = int64(math.Round(float64(t.Subtotal) * s.taxRate))
	t.Total = t.Subtotal + t.Tax
	return t
}

// Finish completes the order and empties the cart
func (s *Store) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = map[string]bool{}
	s.checkout = nil
	s.orders++
}

// Orders returns the number of completed orders
func (s *Store) Orders() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders
}
