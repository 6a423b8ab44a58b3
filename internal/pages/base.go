// Package pages models the storefront as page objects. Each page owns its
// locators and returns the page the user lands on next, so a flow can only be
// written in the order the site allows: the only exported constructor is the
// login page.
package pages

import (
	"fmt"
	"net/url"
	"regexp"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/opencart-qa/storefront-e2e/internal/elements"
)

// Storefront routes, passed as index.php?route=...
const (
	RouteLogin    = "account/login"
	RouteAccount  = "account/account"
	RouteLogout   = "account/logout"
	RouteRegister = "account/register"
	RouteSuccess  = "account/success"
	RouteSearch   = "product/search"
	RouteProduct  = "product/product"
)

// navigator is the state every page object of one session shares.
type navigator struct {
	page    playwright.Page
	baseURL string
	el      *elements.Helper
	logger  *zap.Logger
}

func (n *navigator) routeURL(route string) (string, error) {
	return RouteURL(n.baseURL, route)
}

func (n *navigator) waitForRoute(route string) error {
	return n.el.WaitForURL(routePattern(route))
}

// Title returns the document title of the current page.
func (n *navigator) Title() (string, error) {
	title, err := n.page.Title()
	if err != nil {
		return "", fmt.Errorf("read page title: %w", err)
	}
	return title, nil
}

// URL returns the current page URL.
func (n *navigator) URL() string {
	return n.page.URL()
}

// RouteURL builds the absolute URL for route on the storefront at baseURL,
// keeping any query parameters baseURL already carries.
func RouteURL(baseURL, route string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid base url %q: scheme and host are required", baseURL)
	}
	q := u.Query()
	q.Set("route", route)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// routePattern matches the route with or without its slash escaped.
func routePattern(route string) *regexp.Regexp {
	plain := regexp.QuoteMeta(route)
	escaped := regexp.QuoteMeta(url.QueryEscape(route))
	return regexp.MustCompile(`[?&]route=(` + plain + `|` + escaped + `)(&|#|$)`)
}

func scopedRole(page playwright.Page, scope string, role *playwright.AriaRole, name string) elements.Locator {
	loc := page.Locator(scope).GetByRole(*role, playwright.LocatorGetByRoleOptions{
		Name:  name,
		Exact: playwright.Bool(true),
	})
	return elements.Semantic(fmt.Sprintf("%s %q in %s", *role, name, scope), loc)
}

func pageRole(page playwright.Page, role *playwright.AriaRole, name string) elements.Locator {
	loc := page.GetByRole(*role, playwright.PageGetByRoleOptions{
		Name:  name,
		Exact: playwright.Bool(true),
	})
	return elements.Semantic(fmt.Sprintf("%s %q", *role, name), loc)
}

// searchPattern matches a search results URL for key, whether the form
// encoded spaces as + or %20.
func searchPattern(key string) *regexp.Regexp {
	form := regexp.QuoteMeta(url.QueryEscape(key))
	path := regexp.QuoteMeta(url.PathEscape(key))
	return regexp.MustCompile(`[?&]search=(` + form + `|` + path + `)(&|#|$)`)
}
