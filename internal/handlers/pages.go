package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

// SessionCookie marks a signed-in browser
const SessionCookie = "session-username"

// Page paths
const (
	LoginPath     = "/"
	InventoryPath = "/inventory.html"
	CartPath      = "/cart.html"
	InfoPath      = "/checkout-step-one.html"
	OverviewPath  = "/checkout-step-two.html"
	CompletePath  = "/checkout-complete.html"
)

// pageData is the data shared by every storefront template
type pageData struct {
	LoggedIn  bool
	CartCount int
	Error     string
	Items     any
	Subtotal  string
	Tax       string
	Total     string
}

type inventoryItem struct {
	Product Product
	InCart  bool
}

func parsePage(name string) (*template.Template, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return tmpl.Lookup(name), nil
}

func render(w http.ResponseWriter, tmpl *template.Template, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		log.Printf("Error rendering template: %v", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

func signedIn(r *http.Request) bool {
	c, err := r.Cookie(SessionCookie)
	return err == nil && c.Value != ""
}

// requireLogin sends visitors without a session back to the login page
func requireLogin(w http.ResponseWriter, r *http.Request) bool {
	if signedIn(r) {
		return true
	}
	http.Redirect(w, r, LoginPath, http.StatusSeeOther)
	return false
}

// LoginHandler renders the login form and accepts credentials
type LoginHandler struct {
	template *template.Template
	store    *Store
}

// NewLoginHandler creates a new login handler
func NewLoginHandler(store *Store) (*LoginHandler, error) {
	tmpl, err := parsePage("login.html")
	if err != nil {
		return nil, err
	}
	return &LoginHandler{template: tmpl, store: store}, nil
}

// ServeHTTP handles GET and POST on the login page
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		render(w, h.template, pageData{})
	case http.MethodPost:
		username := r.FormValue("user-name")
		password := r.FormValue("password")
		if !h.store.Authenticate(username, password) {
			log.Printf("Rejected login for %q", username)
			w.WriteHeader(http.StatusUnauthorized)
			render(w, h.template, pageData{Error: "Username and password do not match any user in this service"})
			return
		}
		http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: username, Path: "/"})
		http.Redirect(w, r, InventoryPath, http.StatusSeeOther)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// InventoryHandler renders the product catalog
type InventoryHandler struct {
	template *template.Template
	store    *Store
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(store *Store) (*InventoryHandler, error) {
	tmpl, err := parsePage("inventory.html")
	if err != nil {
		return nil, err
	}
	return &InventoryHandler{template: tmpl, store: store}, nil
}

// ServeHTTP handles GET on the inventory page
func (h *InventoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !requireLogin(w, r) {
		return
	}

	var items []inventoryItem
	for _, p := range h.store.Catalog() {
		items = append(items, inventoryItem{Product: p, InCart: h.store.InCart(p.ID)})
	}
	render(w, h.template, pageData{
		LoggedIn:  true,
		CartCount: len(h.store.CartItems()),
		Items:     items,
	})
}

// CartHandler renders the cart and applies add/remove actions
type CartHandler struct {
	template *template.Template
	store    *Store
}

// NewCartHandler creates a new cart handler
func NewCartHandler(store *Store) (*CartHandler, error) {
	tmpl, err := parsePage("cart.html")
	if err != nil {
		return nil, err
	}
	return &CartHandler{template: tmpl, store: store}, nil
}

// ServeHTTP handles GET on the cart page and POST on /cart/add and /cart/remove
func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !requireLogin(w, r) {
		return
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == CartPath:
		items := h.store.CartItems()
		render(w, h.template, pageData{LoggedIn: true, CartCount: len(items), Items: items})
	case r.Method == http.MethodPost && r.URL.Path == "/cart/add":
		if err := h.store.AddToCart(r.FormValue("id")); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Redirect(w, r, InventoryPath, http.StatusSeeOther)
	case r.Method == http.MethodPost && r.URL.Path == "/cart/remove":
		h.store.RemoveFromCart(r.FormValue("id"))
		back := r.FormValue("return")
		if back != CartPath {
			back = InventoryPath
		}
		http.Redirect(w, r, back, http.StatusSeeOther)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// CheckoutHandler renders the checkout pages and completes orders
type CheckoutHandler struct {
	info     *template.Template
	overview *template.Template
	complete *template.Template
	store    *Store
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(store *Store) (*CheckoutHandler, error) {
	h := &CheckoutHandler{store: store}
	var err error
	if h.info, err = parsePage("checkout_info.html"); err != nil {
		return nil, err
	}
	if h.overview, err = parsePage("overview.html"); err != nil {
		return nil, err
	}
	if h.complete, err = parsePage("complete.html"); err != nil {
		return nil, err
	}
	return h, nil
}

// ServeHTTP handles the checkout information, overview, finish, and complete steps
func (h *CheckoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !requireLogin(w, r) {
		return
	}
	count := len(h.store.CartItems())

	switch {
	case r.Method == http.MethodGet && r.URL.Path == InfoPath:
		render(w, h.info, pageData{LoggedIn: true, CartCount: count})
	case r.Method == http.MethodPost && r.URL.Path == InfoPath:
		err := h.store.SetCheckoutInfo(CheckoutInfo{
			FirstName:  r.FormValue("firstName"),
			LastName:   r.FormValue("lastName"),
			PostalCode: r.FormValue("postalCode"),
		})
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			render(w, h.info, pageData{LoggedIn: true, CartCount: count, Error: err.Error()})
			return
		}
		http.Redirect(w, r, OverviewPath, http.StatusSeeOther)
	case r.Method == http.MethodGet && r.URL.Path == OverviewPath:
		totals := h.store.Totals()
		render(w, h.overview, pageData{
			LoggedIn:  true,
			CartCount: count,
			Items:     h.store.CartItems(),
			Subtotal:  FormatCents(totals.Subtotal),
			Tax:       FormatCents(totals.Tax),
			Total:     FormatCents(totals.Total),
		})
	case r.Method == http.MethodPost && r.URL.Path == "/checkout/finish":
		h.store.Finish()
		log.Printf("Order %d completed", h.store.Orders())
		http.Redirect(w, r, CompletePath, http.StatusSeeOther)
	case r.Method == http.MethodGet && r.URL.Path == CompletePath:
		render(w, h.complete, pageData{LoggedIn: true, CartCount: count})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// NewStorefront wires every storefront page onto one mux
func NewStorefront(store *Store) (http.Handler, error) {
	login, err := NewLoginHandler(store)
	if err != nil {
		return nil, err
	}
	inventory, err := NewInventoryHandler(store)
	if err != nil {
		return nil, err
	}
	cart, err := NewCartHandler(store)
	if err != nil {
		return nil, err
	}
	checkout, err := NewCheckoutHandler(store)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/login", login)
	mux.Handle(InventoryPath, inventory)
	mux.Handle(CartPath, cart)
	mux.Handle("/cart/", cart)
	mux.Handle(InfoPath, checkout)
	mux.Handle(OverviewPath, checkout)
	mux.Handle("/checkout/finish", checkout)
	mux.Handle(CompletePath, checkout)
	mux.Handle(LoginPath, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != LoginPath {
			http.NotFound(w, r)
			return
		}
		login.ServeHTTP(w, r)
	}))
	return mux, nil
}
