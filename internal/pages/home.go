package pages

import (
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/opencart-qa/storefront-e2e/internal/elements"
)

// HomePage is the account landing page a successful login arrives at.
type HomePage struct {
	nav        *navigator
	logoutLink elements.Locator
	loginLink  elements.Locator
	search     elements.Locator
	searchIcon elements.Locator
}

func newHomePage(nav *navigator) *HomePage {
	return &HomePage{
		nav:        nav,
		logoutLink: scopedRole(nav.page, "#column-right", playwright.AriaRoleLink, "Logout"),
		loginLink:  scopedRole(nav.page, "#column-right", playwright.AriaRoleLink, "Login"),
		search:     pageRole(nav.page, playwright.AriaRoleTextbox, "Search"),
		searchIcon: elements.Selector(".btn.btn-default.btn-lg"),
	}
}

// Page exposes the underlying playwright page for assertions.
func (p *HomePage) Page() playwright.Page {
	return p.nav.page
}

// Title returns the page title, "My Account" right after login.
func (p *HomePage) Title() (string, error) {
	return p.nav.Title()
}

// IsUserLoggedIn reports whether the account column offers a Logout link.
func (p *HomePage) IsUserLoggedIn() (bool, error) {
	return p.nav.el.IsVisible(p.logoutLink)
}

// DoLogout logs out and follows the Login link back to the login page.
func (p *HomePage) DoLogout() (*LoginPage, error) {
	if err := p.nav.el.Click(p.logoutLink, elements.Timeout(5*time.Second)); err != nil {
		return nil, err
	}
	if err := p.nav.waitForRoute(RouteLogout); err != nil {
		return nil, err
	}
	if err := p.nav.el.Click(p.loginLink, elements.Timeout(5*time.Second)); err != nil {
		return nil, err
	}
	if err := p.nav.waitForRoute(RouteLogin); err != nil {
		return nil, err
	}
	p.nav.logger.Info("logged out")
	return newLoginPage(p.nav), nil
}

// DoSearch searches the catalog for searchKey and returns the results page.
func (p *HomePage) DoSearch(searchKey string) (*ResultsPage, error) {
	p.nav.logger.Info("searching", zap.String("key", searchKey))

	if err := p.nav.el.Fill(p.search, searchKey); err != nil {
		return nil, err
	}
	// the previous results page may already sit on the search route
	if err := p.nav.el.ClickAndWaitForNavigation(p.searchIcon, searchPattern(searchKey)); err != nil {
		return nil, err
	}
	return newResultsPage(p.nav, searchKey), nil
}
