// Package session owns the playwright runtime and hands out isolated browser
// contexts. One Runtime is shared by a test binary; every test gets its own
// Session and must Close it.
package session

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
	"github.com/samber/lo"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/opencart-qa/storefront-e2e/internal/config"
)

// Runtime is a running playwright driver plus one launched browser.
type Runtime struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	cfg     config.SuiteConfig
	logger  *zap.Logger
}

// Launch starts playwright and the configured browser. Browsers must already be
// installed (opencart install).
func Launch(cfg config.SuiteConfig, logger *zap.Logger) (*Runtime, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	browserType, err := pickBrowserType(pw, cfg.Browser.Engine)
	if err != nil {
		return nil, multierr.Append(err, pw.Stop())
	}

	browser, err := browserType.Launch(launchOptions(cfg.Browser))
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("could not launch %s: %w", cfg.Browser.Engine, err), pw.Stop())
	}

	logger.Info("browser launched",
		zap.String("engine", cfg.Browser.Engine),
		zap.String("channel", cfg.Browser.Channel),
		zap.Bool("headless", cfg.Browser.Headless),
		zap.String("version", browser.Version()),
	)

	return &Runtime{
		pw:      pw,
		browser: browser,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

// Config returns the configuration the runtime was launched with.
func (r *Runtime) Config() config.SuiteConfig {
	return r.cfg
}

// Close shuts the browser and the playwright driver down.
func (r *Runtime) Close() error {
	err := multierr.Combine(r.browser.Close(), r.pw.Stop())
	if err != nil {
		return fmt.Errorf("could not stop playwright runtime: %w", err)
	}
	r.logger.Info("browser closed")
	return nil
}

func pickBrowserType(pw *playwright.Playwright, engine string) (playwright.BrowserType, error) {
	switch engine {
	case config.EngineChromium, "":
		return pw.Chromium, nil
	case config.EngineFirefox:
		return pw.Firefox, nil
	case config.EngineWebKit:
		return pw.WebKit, nil
	default:
		return nil, fmt.Errorf("unsupported browser engine %q", engine)
	}
}

func launchOptions(cfg config.BrowserConfig) playwright.BrowserTypeLaunchOptions {
	opts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		Args:     cfg.Args,
	}
	if cfg.Channel != "" {
		opts.Channel = playwright.String(cfg.Channel)
	}
	if cfg.SlowMo > 0 {
		opts.SlowMo = playwright.Float(float64(cfg.SlowMo.Milliseconds()))
	}
	return opts
}

// maximized reports whether the browser window is sized by the OS rather
// than by a fixed viewport.
func maximized(cfg config.BrowserConfig) bool {
	return lo.Contains(cfg.Args, "--start-maximized")
}
