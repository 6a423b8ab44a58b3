package pages

import (
	"errors"
	"fmt"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/opencart-qa/storefront-e2e/internal/dataset"
	"github.com/opencart-qa/storefront-e2e/internal/elements"
)

// RegistrationSuccessHeader is the heading OpenCart shows for a new account.
const RegistrationSuccessHeader = "Your Account Has Been Created!"

// RegisterPage is the account/register form.
type RegisterPage struct {
	nav           *navigator
	firstName     elements.Locator
	lastName      elements.Locator
	email         elements.Locator
	telephone     elements.Locator
	password      elements.Locator
	confirm       elements.Locator
	newsletterYes elements.Locator
	newsletterNo  elements.Locator
	agree         elements.Locator
	continueBtn   elements.Locator
	successHeader elements.Locator
	logoutLink    elements.Locator
	registerLink  elements.Locator
}

func newRegisterPage(nav *navigator) *RegisterPage {
	return &RegisterPage{
		nav:           nav,
		firstName:     elements.Selector("#input-firstname"),
		lastName:      elements.Selector("#input-lastname"),
		email:         elements.Selector("#input-email"),
		telephone:     elements.Selector("#input-telephone"),
		password:      elements.Selector("#input-password"),
		confirm:       elements.Selector("#input-confirm"),
		newsletterYes: elements.Selector("input[name='newsletter'][value='1']"),
		newsletterNo:  elements.Selector("input[name='newsletter'][value='0']"),
		agree:         elements.Selector("input[name='agree']"),
		continueBtn:   elements.Selector("input[value='Continue']"),
		successHeader: elements.Selector("#content h1"),
		logoutLink:    scopedRole(nav.page, "#column-right", playwright.AriaRoleLink, "Logout"),
		registerLink:  scopedRole(nav.page, "#column-right", playwright.AriaRoleLink, "Register"),
	}
}

// Register signs up rec under email. On success it logs the new account out
// and returns to the register form, so the page can be reused for the next
// record; it reports whether the success heading appeared.
func (p *RegisterPage) Register(rec dataset.Registration, email string) (bool, error) {
	p.nav.logger.Info("registering account", zap.String("email", email))

	fields := []struct {
		loc   elements.Locator
		value string
	}{
		{p.firstName, rec.FirstName},
		{p.lastName, rec.LastName},
		{p.email, email},
		{p.telephone, rec.Telephone},
		{p.password, rec.Password},
		{p.confirm, rec.Password},
	}
	for _, f := range fields {
		if err := p.nav.el.Fill(f.loc, f.value); err != nil {
			return false, err
		}
	}

	newsletter := p.newsletterNo
	if rec.WantsNewsletter() {
		newsletter = p.newsletterYes
	}
	if err := p.nav.el.Click(newsletter); err != nil {
		return false, err
	}
	if err := p.nav.el.Click(p.agree); err != nil {
		return false, err
	}
	if err := p.nav.el.Click(p.continueBtn); err != nil {
		return false, err
	}

	if err := p.nav.waitForRoute(RouteSuccess); err != nil {
		if errors.Is(err, playwright.ErrTimeout) {
			return false, nil
		}
		return false, err
	}
	shown, err := p.nav.el.WaitForVisible(p.successHeader)
	if err != nil {
		return false, err
	}
	if !shown {
		return false, nil
	}
	header, err := p.nav.el.InnerText(p.successHeader)
	if err != nil {
		return false, err
	}
	if header != RegistrationSuccessHeader {
		return false, nil
	}

	if err := p.startOver(); err != nil {
		return true, fmt.Errorf("return to register form: %w", err)
	}
	return true, nil
}

func (p *RegisterPage) startOver() error {
	if err := p.nav.el.Click(p.logoutLink); err != nil {
		return err
	}
	if err := p.nav.waitForRoute(RouteLogout); err != nil {
		return err
	}
	if err := p.nav.el.Click(p.registerLink); err != nil {
		return err
	}
	return p.nav.waitForRoute(RouteRegister)
}
