//go:build e2e

package e2e

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRegister tests data-driven account registration
// Feature: Account registration
//
//	As a new customer
//	I want to create an account
//	So that I can log in later
func TestRegister(t *testing.T) {
	tagged(t, "@register")

	records := registrationData(t)

	login := loginPage(t)
	register, err := login.NavigateToRegister()
	require.NoError(t, err)

	for i, rec := range records {
		t.Run(fmt.Sprintf("%d_%s_%s", i+1, rec.FirstName, rec.LastName), func(t *testing.T) {
			// Scenario Outline: Register a new account
			//   Given I am on the register form
			//   When I submit <firstname> <lastname> with a fresh e-mail
			//   Then I see "Your Account Has Been Created!"
			email := fmt.Sprintf("qa-%s@opencart.test", uuid.NewString())

			ok, err := register.Register(rec, email)

			require.NoError(t, err)
			assert.True(t, ok, "registration of %s was not confirmed", email)
		})
	}
}
