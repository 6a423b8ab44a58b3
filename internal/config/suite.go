package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Browser engines understood by the session runtime
const (
	EngineChromium = "chromium"
	EngineFirefox  = "firefox"
	EngineWebKit   = "webkit"
)

// SuiteConfig holds configuration for an end-to-end suite run
type SuiteConfig struct {
	// BaseURL is the storefront entry point, e.g. https://host/opencart/index.php.
	// Empty means the suite starts the stub storefront in-process.
	BaseURL          string        `yaml:"base_url"`
	HTTPUsername     string        `yaml:"http_username"`
	HTTPPassword     string        `yaml:"http_password"`
	DefaultTimeout   time.Duration `yaml:"default_timeout"`
	WaitTimeout      time.Duration `yaml:"wait_timeout"`
	ScreenshotDir    string        `yaml:"screenshot_dir"`
	VideoDir         string        `yaml:"video_dir"`
	RegisterDataPath string        `yaml:"register_data"`
	Grep             string        `yaml:"grep"`
	GrepInvert       string        `yaml:"grep_invert"`
	Browser          BrowserConfig `yaml:"browser"`
}

// BrowserConfig selects and tunes the browser the suite drives
type BrowserConfig struct {
	Engine   string        `yaml:"engine"`
	Channel  string        `yaml:"channel"`
	Headless bool          `yaml:"headless"`
	SlowMo   time.Duration `yaml:"slow_mo"`
	Args     []string      `yaml:"args"`
}

// DefaultSuiteConfig returns the configuration used when nothing overrides it
func DefaultSuiteConfig() SuiteConfig {
	return SuiteConfig{
		DefaultTimeout:   30 * time.Second,
		WaitTimeout:      5 * time.Second,
		ScreenshotDir:    "test-results/screenshots",
		RegisterDataPath: "data/register.csv",
		Browser: BrowserConfig{
			Engine:   EngineChromium,
			Headless: true,
		},
	}
}

// LoadSuiteFile reads a YAML suite file on top of cfg
func LoadSuiteFile(path string, cfg *SuiteConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read suite config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse suite config %s: %w", path, err)
	}
	return nil
}

// LoadSuiteConfig loads the suite configuration. Defaults come first, then the YAML
// file named by E2E_CONFIG, then individual environment variables.
func LoadSuiteConfig(getenv func(string) string) (*SuiteConfig, error) {
	cfg := DefaultSuiteConfig()

	if path := getenv("E2E_CONFIG"); path != "" {
		if err := LoadSuiteFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	overrideString(&cfg.BaseURL, getenv("E2E_BASE_URL"))
	overrideString(&cfg.HTTPUsername, getenv("E2E_HTTP_USERNAME"))
	overrideString(&cfg.HTTPPassword, getenv("E2E_HTTP_PASSWORD"))
	overrideString(&cfg.ScreenshotDir, getenv("E2E_SCREENSHOT_DIR"))
	overrideString(&cfg.VideoDir, getenv("E2E_VIDEO_DIR"))
	overrideString(&cfg.RegisterDataPath, getenv("E2E_REGISTER_DATA"))
	overrideString(&cfg.Grep, getenv("E2E_GREP"))
	overrideString(&cfg.GrepInvert, getenv("E2E_GREP_INVERT"))
	overrideString(&cfg.Browser.Engine, getenv("E2E_BROWSER"))
	overrideString(&cfg.Browser.Channel, getenv("E2E_CHANNEL"))

	if v := getenv("E2E_BROWSER_ARGS"); v != "" {
		cfg.Browser.Args = strings.Fields(v)
	}
	if err := overrideDuration(&cfg.DefaultTimeout, "E2E_TIMEOUT", getenv); err != nil {
		return nil, err
	}
	if err := overrideDuration(&cfg.WaitTimeout, "E2E_WAIT_TIMEOUT", getenv); err != nil {
		return nil, err
	}
	if err := overrideDuration(&cfg.Browser.SlowMo, "E2E_SLOW_MO", getenv); err != nil {
		return nil, err
	}
	if v := getenv("HEADLESS"); v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("HEADLESS must be a boolean: %w", err)
		}
		cfg.Browser.Headless = headless
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration can drive a run
func (c *SuiteConfig) Validate() error {
	switch c.Browser.Engine {
	case EngineChromium, EngineFirefox, EngineWebKit:
	default:
		return fmt.Errorf("unsupported browser engine %q", c.Browser.Engine)
	}
	if c.Browser.Channel != "" && c.Browser.Engine != EngineChromium {
		return fmt.Errorf("browser channel %q requires the chromium engine", c.Browser.Channel)
	}
	if c.DefaultTimeout <= 0 {
		return fmt.Errorf("default timeout must be positive")
	}
	if c.WaitTimeout <= 0 {
		return fmt.Errorf("wait timeout must be positive")
	}
	if c.RegisterDataPath == "" {
		return fmt.Errorf("register data path is required")
	}
	if (c.HTTPUsername == "") != (c.HTTPPassword == "") {
		return fmt.Errorf("E2E_HTTP_USERNAME and E2E_HTTP_PASSWORD must be set together")
	}
	for _, expr := range []string{c.Grep, c.GrepInvert} {
		if expr == "" {
			continue
		}
		if _, err := regexp.Compile(expr); err != nil {
			return fmt.Errorf("invalid tag expression %q: %w", expr, err)
		}
	}
	return nil
}

// UsesStub reports whether the suite should serve the stub storefront itself
func (c *SuiteConfig) UsesStub() bool {
	return c.BaseURL == ""
}

func overrideString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func overrideDuration(dst *time.Duration, key string, getenv func(string) string) error {
	v := getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s must be a duration: %w", key, err)
	}
	*dst = d
	return nil
}
