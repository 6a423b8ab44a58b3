package config

import (
	"fmt"
)

// Credentials holds the storefront account used by the logged-in session fixture
type Credentials struct {
	Username string
	Password string
}

// DemoCredentials is the account the stub storefront is seeded with when no
// credentials are configured.
var DemoCredentials = Credentials{
	Username: "demo@opencart.test",
	Password: "demo1234",
}

// LoadCredentials loads application credentials from environment variables
func LoadCredentials(getenv func(string) string) (*Credentials, error) {
	creds := Credentials{
		Username: getenv("E2E_APP_USERNAME"),
		Password: getenv("E2E_APP_PASSWORD"),
	}

	// Validate required fields
	if creds.Username == "" {
		return nil, fmt.Errorf("E2E_APP_USERNAME is required")
	}
	if creds.Password == "" {
		return nil, fmt.Errorf("E2E_APP_PASSWORD is required")
	}

	return &creds, nil
}
