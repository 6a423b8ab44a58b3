package session

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/opencart-qa/storefront-e2e/internal/config"
)

// Session is one isolated browser context with a single page.
type Session struct {
	ID      string
	context playwright.BrowserContext
	page    playwright.Page
	cfg     config.SuiteConfig
	logger  *zap.Logger
}

// NewSession opens a fresh browser context and page. Cookies and storage are
// never shared between sessions.
func (r *Runtime) NewSession() (*Session, error) {
	id := uuid.NewString()

	bctx, err := r.browser.NewContext(contextOptions(r.cfg))
	if err != nil {
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}
	bctx.SetDefaultTimeout(float64(r.cfg.DefaultTimeout.Milliseconds()))
	bctx.SetDefaultNavigationTimeout(float64(r.cfg.DefaultTimeout.Milliseconds()))

	page, err := bctx.NewPage()
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("could not open page: %w", err), bctx.Close())
	}

	logger := r.logger.With(zap.String("session", id))
	logger.Debug("session opened")

	return &Session{
		ID:      id,
		context: bctx,
		page:    page,
		cfg:     r.cfg,
		logger:  logger,
	}, nil
}

// Page returns the session's page.
func (s *Session) Page() playwright.Page {
	return s.page
}

// Logger returns a logger tagged with the session id.
func (s *Session) Logger() *zap.Logger {
	return s.logger
}

// CaptureFailure writes a full-page screenshot named after the test into the
// configured screenshot directory and returns its path.
func (s *Session) CaptureFailure(testName string) (string, error) {
	if err := os.MkdirAll(s.cfg.ScreenshotDir, 0o755); err != nil {
		return "", fmt.Errorf("could not create screenshot dir: %w", err)
	}
	path := filepath.Join(s.cfg.ScreenshotDir, ArtifactName(testName, s.ID)+".png")
	if _, err := s.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		return "", fmt.Errorf("could not capture screenshot: %w", err)
	}
	s.logger.Info("failure screenshot saved", zap.String("path", path))
	return path, nil
}

// Close releases the page and the browser context. Videos are flushed when the
// context closes.
func (s *Session) Close() error {
	err := multierr.Combine(s.page.Close(), s.context.Close())
	if err != nil {
		return fmt.Errorf("could not close session %s: %w", s.ID, err)
	}
	s.logger.Debug("session closed")
	return nil
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ArtifactName builds a filesystem-safe artifact name from a test name and a
// session id.
func ArtifactName(testName, id string) string {
	name := strings.Trim(unsafeChars.ReplaceAllString(testName, "_"), "_")
	if name == "" {
		name = "session"
	}
	if len(id) > 8 {
		id = id[:8]
	}
	return name + "-" + id
}

func contextOptions(cfg config.SuiteConfig) playwright.BrowserNewContextOptions {
	opts := playwright.BrowserNewContextOptions{}
	if cfg.BaseURL != "" {
		opts.BaseURL = playwright.String(cfg.BaseURL)
	}
	if cfg.HTTPUsername != "" {
		opts.HttpCredentials = &playwright.HttpCredentials{
			Username: cfg.HTTPUsername,
			Password: cfg.HTTPPassword,
		}
	}
	if cfg.VideoDir != "" {
		opts.RecordVideo = &playwright.RecordVideo{Dir: cfg.VideoDir}
	}
	if maximized(cfg.Browser) {
		opts.NoViewport = playwright.Bool(true)
	}
	return opts
}
