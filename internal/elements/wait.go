package elements

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// The WaitFor* verbs return (true, nil) once the element reaches the state and
// (false, nil) when the timeout expires first. Any other failure, such as a
// closed page or a malformed selector, comes back as an error so it is not
// mistaken for the element simply being absent.

// WaitForVisible waits for the element to have a non-empty bounding box and no
// visibility:hidden.
func (h *Helper) WaitForVisible(loc Locator, opts ...InteractionOption) (bool, error) {
	return h.waitFor(loc, playwright.WaitForSelectorStateVisible, opts)
}

// WaitForAttached waits for the element to be present in the DOM.
func (h *Helper) WaitForAttached(loc Locator, opts ...InteractionOption) (bool, error) {
	return h.waitFor(loc, playwright.WaitForSelectorStateAttached, opts)
}

// WaitForDetached waits for the element to leave the DOM.
func (h *Helper) WaitForDetached(loc Locator, opts ...InteractionOption) (bool, error) {
	return h.waitFor(loc, playwright.WaitForSelectorStateDetached, opts)
}

// WaitForHidden waits for the element to be detached, empty or visibility:hidden.
func (h *Helper) WaitForHidden(loc Locator, opts ...InteractionOption) (bool, error) {
	return h.waitFor(loc, playwright.WaitForSelectorStateHidden, opts)
}

func (h *Helper) waitFor(loc Locator, state *playwright.WaitForSelectorState, opts []InteractionOption) (bool, error) {
	in := newInteraction(h.waitTimeout, opts)
	err := h.resolve(loc, in).WaitFor(playwright.LocatorWaitForOptions{
		State:   state,
		Timeout: in.ms(),
	})
	switch {
	case err == nil:
		h.logger.Debug("element reached state", zap.Stringer("locator", loc), zap.String("state", string(*state)))
		return true, nil
	case errors.Is(err, playwright.ErrTimeout):
		h.logger.Debug("element did not reach state in time",
			zap.Stringer("locator", loc), zap.String("state", string(*state)), zap.Duration("timeout", in.timeout))
		return false, nil
	default:
		return false, fmt.Errorf("wait for %s to be %s: %w", loc, *state, err)
	}
}

// WaitForPageLoad waits for the page to reach a load state. A nil state means load.
func (h *Helper) WaitForPageLoad(state *playwright.LoadState) error {
	if state == nil {
		state = playwright.LoadStateLoad
	}
	err := h.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   state,
		Timeout: millis(h.defaultTimeout),
	})
	if err != nil {
		return fmt.Errorf("wait for load state %s: %w", *state, err)
	}
	h.logger.Debug("page reached load state", zap.String("state", string(*state)))
	return nil
}

// Sleep pauses the test for d. Prefer the WaitFor* verbs.
func (h *Helper) Sleep(d time.Duration) {
	h.page.WaitForTimeout(float64(d.Milliseconds()))
	h.logger.Debug("slept", zap.Duration("duration", d))
}

// WaitForURL waits until the page URL matches pattern.
func (h *Helper) WaitForURL(pattern *regexp.Regexp) error {
	err := h.page.WaitForURL(pattern, playwright.PageWaitForURLOptions{
		Timeout: millis(h.defaultTimeout),
	})
	if err != nil {
		return fmt.Errorf("wait for url %s: %w", pattern, err)
	}
	h.logger.Debug("page url matched", zap.Stringer("pattern", pattern))
	return nil
}

// ClickAndWaitForNavigation clicks loc and waits for the navigation the click
// starts. A nil pattern accepts any URL; otherwise the navigation must land on
// a URL matching pattern. A URL that already matched before the click does not
// count.
func (h *Helper) ClickAndWaitForNavigation(loc Locator, pattern *regexp.Regexp, opts ...InteractionOption) error {
	in := newInteraction(h.defaultTimeout, opts)
	nav := playwright.PageExpectNavigationOptions{Timeout: in.ms()}
	if pattern != nil {
		nav.URL = pattern
	}
	_, err := h.page.ExpectNavigation(func() error {
		return h.Click(loc, opts...)
	}, nav)
	if err != nil {
		return fmt.Errorf("click %s and wait for navigation: %w", loc, err)
	}
	h.logger.Debug("navigated after click", zap.Stringer("locator", loc), zap.String("url", h.page.URL()))
	return nil
}
