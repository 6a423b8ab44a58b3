package pages

import (
	"errors"
	"fmt"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/opencart-qa/storefront-e2e/internal/elements"
)

// ErrLoginRejected is returned by DoLogin when the storefront shows its
// warning banner instead of the account page.
var ErrLoginRejected = errors.New("login rejected")

// LoginPage is the account/login page, the entry point of every flow.
type LoginPage struct {
	nav            *navigator
	email          elements.Locator
	password       elements.Locator
	loginButton    elements.Locator
	warning        elements.Locator
	forgotPassword elements.Locator
	registerLink   elements.Locator
}

// NewLoginPage wraps page for the storefront at baseURL
// (e.g. https://host/opencart/index.php). Helper options tune timeouts and logging.
func NewLoginPage(page playwright.Page, baseURL string, logger *zap.Logger, opts ...elements.HelperOption) *LoginPage {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts = append([]elements.HelperOption{elements.WithLogger(logger)}, opts...)
	nav := &navigator{
		page:    page,
		baseURL: baseURL,
		el:      elements.NewHelper(page, opts...),
		logger:  logger.Named("pages"),
	}
	return newLoginPage(nav)
}

func newLoginPage(nav *navigator) *LoginPage {
	return &LoginPage{
		nav:            nav,
		email:          elements.Selector("#input-email"),
		password:       elements.Selector("#input-password"),
		loginButton:    elements.Selector("input[value='Login']"),
		warning:        elements.Selector(".alert.alert-danger.alert-dismissible"),
		forgotPassword: pageRole(nav.page, playwright.AriaRoleLink, "Forgotten Password"),
		registerLink:   scopedRole(nav.page, "#column-right", playwright.AriaRoleLink, "Register"),
	}
}

// GoTo navigates to the login page.
func (p *LoginPage) GoTo() error {
	target, err := p.nav.routeURL(RouteLogin)
	if err != nil {
		return err
	}
	if _, err := p.nav.page.Goto(target, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		return fmt.Errorf("navigate to login page: %w", err)
	}
	p.nav.logger.Debug("opened login page", zap.String("url", target))
	return nil
}

// Title returns the page title.
func (p *LoginPage) Title() (string, error) {
	return p.nav.Title()
}

// IsForgotPasswordLinkVisible reports whether the forgotten password link shows.
func (p *LoginPage) IsForgotPasswordLinkVisible() (bool, error) {
	return p.nav.el.IsVisible(p.forgotPassword)
}

// DoLogin submits the credentials and returns the account page. A rejected
// login yields ErrLoginRejected carrying the storefront's warning text.
func (p *LoginPage) DoLogin(username, password string) (*HomePage, error) {
	p.nav.logger.Info("logging in", zap.String("username", username))

	if err := p.nav.el.Fill(p.email, username); err != nil {
		return nil, err
	}
	if err := p.nav.el.Fill(p.password, password); err != nil {
		return nil, err
	}
	if err := p.nav.el.ClickAndWaitForNavigation(p.loginButton, nil); err != nil {
		return nil, err
	}

	if !routePattern(RouteAccount).MatchString(p.nav.URL()) {
		if msg, _ := p.InvalidLoginMessage(); msg != "" {
			return nil, fmt.Errorf("%w: %s", ErrLoginRejected, msg)
		}
		return nil, fmt.Errorf("login landed on %s instead of the account page", p.nav.URL())
	}
	p.nav.logger.Info("logged in", zap.String("username", username))
	return newHomePage(p.nav), nil
}

// SubmitInvalidLogin submits credentials expected to be refused and returns
// the warning shown, leaving the user on the login page.
func (p *LoginPage) SubmitInvalidLogin(username, password string) (string, error) {
	if err := p.nav.el.Fill(p.email, username); err != nil {
		return "", err
	}
	if err := p.nav.el.Fill(p.password, password); err != nil {
		return "", err
	}
	if err := p.nav.el.ClickAndWaitForNavigation(p.loginButton, routePattern(RouteLogin)); err != nil {
		return "", err
	}
	return p.InvalidLoginMessage()
}

// InvalidLoginMessage waits briefly for the warning banner and returns its
// text, or "" if none appeared.
func (p *LoginPage) InvalidLoginMessage() (string, error) {
	shown, err := p.nav.el.WaitForVisible(p.warning)
	if err != nil || !shown {
		return "", err
	}
	return p.nav.el.InnerText(p.warning)
}

// NavigateToRegister follows the Register link in the account column.
func (p *LoginPage) NavigateToRegister() (*RegisterPage, error) {
	if err := p.nav.el.Click(p.registerLink); err != nil {
		return nil, err
	}
	if err := p.nav.waitForRoute(RouteRegister); err != nil {
		return nil, err
	}
	return newRegisterPage(p.nav), nil
}
