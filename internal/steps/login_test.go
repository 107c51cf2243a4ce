package steps

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/themizzi/storefront-runner/internal/browser"
	"github.com/themizzi/storefront-runner/internal/browser/browsertest"
	"github.com/themizzi/storefront-runner/internal/config"
	"github.com/themizzi/storefront-runner/internal/models"
)

type loginPage struct {
	page     *browsertest.Page
	username *browsertest.Element
	password *browsertest.Element
	button   *browsertest.Element
}

// newLoginPage builds a login form; submitting it shows the catalog when showCatalog is set
func newLoginPage(showCatalog bool) loginPage {
	l := loginPage{
		page:     browsertest.NewPage(),
		username: browsertest.NewElement(""),
		password: browsertest.NewElement(""),
		button:   browsertest.NewElement("Login"),
	}
	l.page.Add(UsernameInput, l.username).Add(PasswordInput, l.password).Add(LoginButton, l.button)
	if showCatalog {
		l.button.OnClick = func() {
			item, _ := catalogItem("Sauce Labs Backpack")
			l.page.Add(InventoryItem, item)
		}
	}
	return l
}

var creds = config.Credentials{Username: "standard_user", Password: "secret_sauce"}

func TestLoginStep_Run(t *testing.T) {
	// GIVEN
	l := newLoginPage(true)

	// WHEN
	result := NewLoginStep(l.page, "http://storefront.test/", time.Second).Run(creds)

	// THEN
	assertOutcome(t, result, ActionLogin, models.OutcomeSuccess)
	if len(l.page.Visited) != 1 || l.page.Visited[0] != "http://storefront.test/" {
		t.Errorf("Unexpected navigation: %v", l.page.Visited)
	}
	if l.username.Keys != "standard_user" || l.password.Keys != "secret_sauce" {
		t.Errorf("Unexpected credentials typed: %q %q", l.username.Keys, l.password.Keys)
	}
}

func TestLoginStep_Run_CatalogNeverLoads(t *testing.T) {
	// GIVEN
	l := newLoginPage(false)

	// WHEN
	start := time.Now()
	result := NewLoginStep(l.page, "http://storefront.test/", 30*time.Millisecond).Run(creds)

	// THEN
	assertOutcome(t, result, ActionLogin, models.OutcomeFailed)
	if time.Since(start) > 2*time.Second {
		t.Error("Login wait overran its timeout")
	}
	if len(result.Details) != 1 || !strings.HasPrefix(result.Details[0], "catalog did not load: "+browser.ErrTimeout.Error()) {
		t.Errorf("Unexpected details: %v", result.Details)
	}
}

func TestLoginStep_Run_Failures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(l loginPage)
		want  string
	}{
		{
			name:  "navigation fails",
			setup: func(l loginPage) { l.page.NavigateErr = errors.New("dns failure") },
			want:  "dns failure",
		},
		{
			name:  "username field missing",
			setup: func(l loginPage) { l.page.Remove(UsernameInput) },
			want:  "element not found: id=user-name",
		},
		{
			name:  "typing fails",
			setup: func(l loginPage) { l.password.KeysErr = errors.New("field disabled") },
			want:  "field disabled",
		},
		{
			name:  "button missing",
			setup: func(l loginPage) { l.page.Remove(LoginButton) },
			want:  "element not found: id=login-button",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLoginPage(true)
			tt.setup(l)

			result := NewLoginStep(l.page, "http://storefront.test/", time.Second).Run(creds)

			assertOutcome(t, result, ActionLogin, models.OutcomeFailed)
			if len(result.Details) != 1 || result.Details[0] != tt.want {
				t.Errorf("Expected details [%s], got %v", tt.want, result.Details)
			}
		})
	}
}

func TestNewLoginStep_DefaultTimeout(t *testing.T) {
	s := NewLoginStep(browsertest.NewPage(), "http://storefront.test/", 0)
	if s.timeout != DefaultCatalogTimeout {
		t.Errorf("Expected default timeout %s, got %s", DefaultCatalogTimeout, s.timeout)
	}
}
