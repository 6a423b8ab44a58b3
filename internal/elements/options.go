package elements

import (
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// Default timeouts applied when a call does not supply its own.
const (
	DefaultTimeout     = 30 * time.Second
	DefaultWaitTimeout = 5 * time.Second
	DefaultTypeDelay   = 500 * time.Millisecond
)

// HelperOption configures a Helper.
type HelperOption func(*Helper)

// WithTimeout sets the default timeout for interaction verbs.
func WithTimeout(d time.Duration) HelperOption {
	return func(h *Helper) {
		if d > 0 {
			h.defaultTimeout = d
		}
	}
}

// WithWaitTimeout sets the default timeout for the WaitFor* verbs.
func WithWaitTimeout(d time.Duration) HelperOption {
	return func(h *Helper) {
		if d > 0 {
			h.waitTimeout = d
		}
	}
}

// WithLogger sets the logger interactions are reported to.
func WithLogger(logger *zap.Logger) HelperOption {
	return func(h *Helper) {
		if logger != nil {
			h.logger = logger.Named("elements")
		}
	}
}

type interaction struct {
	index   int
	timeout time.Duration
	force   bool
}

// InteractionOption tunes a single verb call.
type InteractionOption func(*interaction)

// AtIndex acts on the nth match instead of the first.
func AtIndex(index int) InteractionOption {
	return func(i *interaction) {
		i.index = index
	}
}

// Timeout overrides the helper default for one call.
func Timeout(d time.Duration) InteractionOption {
	return func(i *interaction) {
		i.timeout = d
	}
}

// Force skips actionability checks on click-like verbs.
func Force() InteractionOption {
	return func(i *interaction) {
		i.force = true
	}
}

func newInteraction(fallback time.Duration, opts []InteractionOption) interaction {
	in := interaction{}
	for _, opt := range opts {
		opt(&in)
	}
	if in.timeout <= 0 {
		in.timeout = fallback
	}
	return in
}

func (i interaction) ms() *float64 {
	return millis(i.timeout)
}

func millis(d time.Duration) *float64 {
	return playwright.Float(float64(d.Milliseconds()))
}
