package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/playwright-community/playwright-go"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	internalcli "github.com/opencart-qa/storefront-e2e/internal/cli"
	"github.com/opencart-qa/storefront-e2e/internal/config"
)

var version = "0.1.0"

func newLogger(c *cli.Context) (*zap.Logger, error) {
	if c.Bool("verbose") {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// withLogger builds the logger for a command and flushes it afterwards.
func withLogger(action func(*cli.Context, *zap.Logger) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		logger, err := newLogger(c)
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		defer logger.Sync() //nolint:errcheck
		return action(c, logger)
	}
}

// InstallCommand returns the install command
func InstallCommand() *cli.Command {
	return &cli.Command{
		Name:  "install",
		Usage: "Install the playwright driver and browsers",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "browser",
				Usage: "browser to install (chromium, firefox, webkit); all when omitted",
			},
		},
		Action: withLogger(func(c *cli.Context, logger *zap.Logger) error {
			opts := &playwright.RunOptions{Browsers: c.StringSlice("browser")}
			logger.Info("installing playwright", zap.Strings("browsers", opts.Browsers))
			if err := playwright.Install(opts); err != nil {
				return fmt.Errorf("failed to install playwright: %w", err)
			}
			return nil
		}),
	}
}

// CheckDataCommand returns the check-data command
func CheckDataCommand() *cli.Command {
	return &cli.Command{
		Name:  "check-data",
		Usage: "Parse the registration data file and print its records",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "registration CSV to check",
				EnvVars: []string{"E2E_REGISTER_DATA"},
				Value:   config.DefaultSuiteConfig().RegisterDataPath,
			},
		},
		Action: func(c *cli.Context) error {
			return internalcli.RunCheckData(c.String("file"), c.App.Writer)
		},
	}
}

// LoginCheckCommand returns the login-check command
func LoginCheckCommand() *cli.Command {
	return &cli.Command{
		Name:  "login-check",
		Usage: "Log in with the configured account and report the result",
		Action: withLogger(func(c *cli.Context, logger *zap.Logger) error {
			cfg, err := config.LoadSuiteConfig(os.Getenv)
			if err != nil {
				return err
			}
			creds, err := loadCredentials(cfg)
			if err != nil {
				return err
			}
			return internalcli.RunLoginCheck(*cfg, creds, logger, c.App.Writer)
		}),
	}
}

// ServeCommand returns the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the stub storefront",
		Action: withLogger(func(c *cli.Context, logger *zap.Logger) error {
			serverConfig := config.LoadStorefrontConfig(os.Getenv)
			creds, err := config.LoadCredentials(os.Getenv)
			if err != nil {
				logger.Info("no customer configured, seeding the demo account",
					zap.String("username", config.DemoCredentials.Username))
				creds = &config.DemoCredentials
			}

			return internalcli.ServeStorefront(serverConfig, *creds, logger)
		}),
	}
}

// loadCredentials requires credentials for a real storefront and falls back
// to the demo account for the stub.
func loadCredentials(cfg *config.SuiteConfig) (config.Credentials, error) {
	creds, err := config.LoadCredentials(os.Getenv)
	if err == nil {
		return *creds, nil
	}
	if cfg.UsesStub() {
		return config.DemoCredentials, nil
	}
	return config.Credentials{}, err
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: .env file not found, using environment variables")
	}

	app := &cli.App{
		Name:    "opencart",
		Usage:   "OpenCart storefront end-to-end suite tooling",
		Version: version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "development logging at debug level",
			},
		},
		Commands: []*cli.Command{
			InstallCommand(),
			CheckDataCommand(),
			LoginCheckCommand(),
			ServeCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
