//go:build e2e

package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencart-qa/storefront-e2e/internal/dataset"
	"github.com/opencart-qa/storefront-e2e/internal/fixtures"
	"github.com/opencart-qa/storefront-e2e/internal/pages"
	"github.com/opencart-qa/storefront-e2e/internal/session"
)

// tagged skips t unless its name and tags pass E2E_GREP / E2E_GREP_INVERT.
func tagged(t *testing.T, tags ...string) {
	t.Helper()
	if !filter.Match(t.Name(), tags...) {
		t.Skipf("filtered out: %s", fixtures.Subject(t.Name(), tags...))
	}
}

// newSession opens an isolated browser context released when t ends. A failed
// test leaves a full-page screenshot behind.
func newSession(t *testing.T) *session.Session {
	t.Helper()
	s, err := rt.NewSession()
	require.NoError(t, err)
	t.Cleanup(func() {
		if t.Failed() {
			if path, err := s.CaptureFailure(t.Name()); err == nil {
				t.Logf("screenshot saved to %s", path)
			} else {
				t.Logf("no screenshot: %v", err)
			}
		}
		assert.NoError(t, s.Close())
	})
	return s
}

// loginPage opens the login page in a fresh session.
func loginPage(t *testing.T) *pages.LoginPage {
	t.Helper()
	login := fixtures.LoginPage(newSession(t), suite)
	require.NoError(t, login.GoTo())
	return login
}

// homePage is the logged-in session fixture: a fresh session whose user is
// already logged in with the configured credentials.
func homePage(t *testing.T) *pages.HomePage {
	t.Helper()
	home, err := fixtures.LogIn(newSession(t), suite, creds)
	require.NoError(t, err)
	return home
}

// registrationData loads the registration records; a missing or malformed
// file fails the test before any browser work.
func registrationData(t *testing.T) []dataset.Registration {
	t.Helper()
	records, err := dataset.LoadRegistrations(suite.RegisterDataPath)
	require.NoError(t, err)
	require.NotEmpty(t, records)
	return records
}
