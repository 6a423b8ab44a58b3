package config

// StorefrontConfig holds configuration for the in-process stub storefront
type StorefrontConfig struct {
	Port         string
	HTTPUsername string
	HTTPPassword string
	DSN          string
}

// LoadStorefrontConfig loads stub storefront configuration from environment variables
func LoadStorefrontConfig(getenv func(string) string) StorefrontConfig {
	cfg := StorefrontConfig{
		Port:         getenv("STOREFRONT_PORT"),
		HTTPUsername: getenv("STOREFRONT_HTTP_USERNAME"),
		HTTPPassword: getenv("STOREFRONT_HTTP_PASSWORD"),
		DSN:          getenv("STOREFRONT_DSN"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080" // Default to port 8080
	}
	if cfg.HTTPUsername == "" {
		cfg.HTTPUsername = "admin"
	}
	if cfg.HTTPPassword == "" {
		cfg.HTTPPassword = "admin"
	}
	if cfg.DSN == "" {
		// Private in-memory database; the pool is pinned to one connection
		cfg.DSN = ":memory:"
	}

	return cfg
}
