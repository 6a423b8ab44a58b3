// Package fixtures provides the setup/teardown pairs test bodies are run
// inside: a logged-in storefront session and tag based test selection.
package fixtures

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/opencart-qa/storefront-e2e/internal/config"
	"github.com/opencart-qa/storefront-e2e/internal/elements"
	"github.com/opencart-qa/storefront-e2e/internal/pages"
	"github.com/opencart-qa/storefront-e2e/internal/session"
)

// ErrNotLoggedIn means the login went through but the account page does not
// show a logged-in user.
var ErrNotLoggedIn = errors.New("user is not logged in after login")

// LoginPage opens a login page object on the session's page, tuned by cfg.
func LoginPage(s *session.Session, cfg config.SuiteConfig) *pages.LoginPage {
	return pages.NewLoginPage(s.Page(), cfg.BaseURL, s.Logger(),
		elements.WithTimeout(cfg.DefaultTimeout),
		elements.WithWaitTimeout(cfg.WaitTimeout),
	)
}

// LogIn drives the login page of s with creds and returns the account page.
func LogIn(s *session.Session, cfg config.SuiteConfig, creds config.Credentials) (*pages.HomePage, error) {
	login := LoginPage(s, cfg)
	if err := login.GoTo(); err != nil {
		return nil, err
	}
	home, err := login.DoLogin(creds.Username, creds.Password)
	if err != nil {
		return nil, fmt.Errorf("log in as %s: %w", creds.Username, err)
	}
	ok, err := home.IsUserLoggedIn()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotLoggedIn
	}
	s.Logger().Info("session logged in", zap.String("username", creds.Username))
	return home, nil
}

// WithHomePage opens a new session on rt, logs in and runs fn with the account
// page. The session is closed when fn returns, whatever the outcome; close
// errors are combined with fn's error.
func WithHomePage(rt *session.Runtime, creds config.Credentials, fn func(*pages.HomePage) error) (err error) {
	s, err := rt.NewSession()
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, s.Close())
	}()

	home, err := LogIn(s, rt.Config(), creds)
	if err != nil {
		return err
	}
	return fn(home)
}
