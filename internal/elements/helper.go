// Package elements wraps a playwright page with the element verbs page
// objects are written in terms of. Every verb accepts a Locator (selector
// string or semantic locator) and performs exactly one browser interaction.
package elements

import (
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// Helper performs element interactions against one page.
type Helper struct {
	page           playwright.Page
	defaultTimeout time.Duration
	waitTimeout    time.Duration
	logger         *zap.Logger
}

// NewHelper creates a helper bound to page.
func NewHelper(page playwright.Page, opts ...HelperOption) *Helper {
	h := &Helper{
		page:           page,
		defaultTimeout: DefaultTimeout,
		waitTimeout:    DefaultWaitTimeout,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Page returns the page the helper acts on.
func (h *Helper) Page() playwright.Page {
	return h.page
}

func (h *Helper) resolve(loc Locator, in interaction) playwright.Locator {
	return Resolve(h.page, loc, in.index)
}

// Click clicks the element.
func (h *Helper) Click(loc Locator, opts ...InteractionOption) error {
	in := newInteraction(h.defaultTimeout, opts)
	err := h.resolve(loc, in).Click(playwright.LocatorClickOptions{
		Force:   playwright.Bool(in.force),
		Timeout: in.ms(),
	})
	if err != nil {
		return fmt.Errorf("click %s: %w", loc, err)
	}
	h.logger.Debug("clicked on element", zap.Stringer("locator", loc), zap.Int("index", in.index))
	return nil
}

// DoubleClick double-clicks the element.
func (h *Helper) DoubleClick(loc Locator, opts ...InteractionOption) error {
	in := newInteraction(h.defaultTimeout, opts)
	err := h.resolve(loc, in).Dblclick(playwright.LocatorDblclickOptions{
		Force:   playwright.Bool(in.force),
		Timeout: in.ms(),
	})
	if err != nil {
		return fmt.Errorf("double click %s: %w", loc, err)
	}
	h.logger.Debug("double clicked on element", zap.Stringer("locator", loc))
	return nil
}

// RightClick opens the context menu on the element.
func (h *Helper) RightClick(loc Locator, opts ...InteractionOption) error {
	in := newInteraction(h.defaultTimeout, opts)
	err := h.resolve(loc, in).Click(playwright.LocatorClickOptions{
		Button:  playwright.MouseButtonRight,
		Force:   playwright.Bool(in.force),
		Timeout: in.ms(),
	})
	if err != nil {
		return fmt.Errorf("right click %s: %w", loc, err)
	}
	h.logger.Debug("right clicked on element", zap.Stringer("locator", loc))
	return nil
}

// Fill replaces the value of an input field.
func (h *Helper) Fill(loc Locator, text string, opts ...InteractionOption) error {
	in := newInteraction(h.defaultTimeout, opts)
	err := h.resolve(loc, in).Fill(text, playwright.LocatorFillOptions{
		Force:   playwright.Bool(in.force),
		Timeout: in.ms(),
	})
	if err != nil {
		return fmt.Errorf("fill %s: %w", loc, err)
	}
	// Values are not logged, some of them are passwords
	h.logger.Debug("filled element", zap.Stringer("locator", loc), zap.Int("length", len(text)))
	return nil
}

// Type presses the keys of text one by one with delay between them. A zero
// delay means DefaultTypeDelay.
func (h *Helper) Type(loc Locator, text string, delay time.Duration, opts ...InteractionOption) error {
	if delay <= 0 {
		delay = DefaultTypeDelay
	}
	in := newInteraction(h.defaultTimeout, opts)
	err := h.resolve(loc, in).PressSequentially(text, playwright.LocatorPressSequentiallyOptions{
		Delay:   millis(delay),
		Timeout: in.ms(),
	})
	if err != nil {
		return fmt.Errorf("type into %s: %w", loc, err)
	}
	h.logger.Debug("typed into element", zap.Stringer("locator", loc), zap.Duration("delay", delay))
	return nil
}

// Clear empties an input field.
func (h *Helper) Clear(loc Locator, opts ...InteractionOption) error {
	in := newInteraction(h.defaultTimeout, opts)
	err := h.resolve(loc, in).Clear(playwright.LocatorClearOptions{
		Force:   playwright.Bool(in.force),
		Timeout: in.ms(),
	})
	if err != nil {
		return fmt.Errorf("clear %s: %w", loc, err)
	}
	h.logger.Debug("cleared element", zap.Stringer("locator", loc))
	return nil
}

// Text returns the element's textContent.
func (h *Helper) Text(loc Locator, opts ...InteractionOption) (string, error) {
	in := newInteraction(h.defaultTimeout, opts)
	text, err := h.resolve(loc, in).TextContent(playwright.LocatorTextContentOptions{
		Timeout: in.ms(),
	})
	if err != nil {
		return "", fmt.Errorf("read text of %s: %w", loc, err)
	}
	return text, nil
}

// InnerText returns the rendered text of the element, trimmed.
func (h *Helper) InnerText(loc Locator, opts ...InteractionOption) (string, error) {
	in := newInteraction(h.defaultTimeout, opts)
	text, err := h.resolve(loc, in).InnerText(playwright.LocatorInnerTextOptions{
		Timeout: in.ms(),
	})
	if err != nil {
		return "", fmt.Errorf("read inner text of %s: %w", loc, err)
	}
	return strings.TrimSpace(text), nil
}

// Attribute returns the value of the named attribute.
func (h *Helper) Attribute(loc Locator, name string, opts ...InteractionOption) (string, error) {
	in := newInteraction(h.defaultTimeout, opts)
	value, err := h.resolve(loc, in).GetAttribute(name, playwright.LocatorGetAttributeOptions{
		Timeout: in.ms(),
	})
	if err != nil {
		return "", fmt.Errorf("read attribute %q of %s: %w", name, loc, err)
	}
	return value, nil
}

// InputValue returns the current value of an input, textarea or select.
func (h *Helper) InputValue(loc Locator, opts ...InteractionOption) (string, error) {
	in := newInteraction(h.defaultTimeout, opts)
	value, err := h.resolve(loc, in).InputValue(playwright.LocatorInputValueOptions{
		Timeout: in.ms(),
	})
	if err != nil {
		return "", fmt.Errorf("read input value of %s: %w", loc, err)
	}
	return value, nil
}

// AllInnerTexts returns the inner text of every match.
func (h *Helper) AllInnerTexts(loc Locator) ([]string, error) {
	texts, err := All(h.page, loc).AllInnerTexts()
	if err != nil {
		return nil, fmt.Errorf("read all inner texts of %s: %w", loc, err)
	}
	return texts, nil
}

// Count returns how many elements currently match.
func (h *Helper) Count(loc Locator) (int, error) {
	n, err := All(h.page, loc).Count()
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", loc, err)
	}
	return n, nil
}

// IsVisible reports whether the element is visible right now.
func (h *Helper) IsVisible(loc Locator, opts ...InteractionOption) (bool, error) {
	in := newInteraction(h.defaultTimeout, opts)
	ok, err := h.resolve(loc, in).IsVisible(playwright.LocatorIsVisibleOptions{Timeout: in.ms()})
	if err != nil {
		return false, fmt.Errorf("check visibility of %s: %w", loc, err)
	}
	return ok, nil
}

// IsHidden reports whether the element is hidden or absent.
func (h *Helper) IsHidden(loc Locator, opts ...InteractionOption) (bool, error) {
	in := newInteraction(h.defaultTimeout, opts)
	ok, err := h.resolve(loc, in).IsHidden(playwright.LocatorIsHiddenOptions{Timeout: in.ms()})
	if err != nil {
		return false, fmt.Errorf("check hidden state of %s: %w", loc, err)
	}
	return ok, nil
}

// IsEnabled reports whether the element is enabled.
func (h *Helper) IsEnabled(loc Locator, opts ...InteractionOption) (bool, error) {
	in := newInteraction(h.defaultTimeout, opts)
	ok, err := h.resolve(loc, in).IsEnabled(playwright.LocatorIsEnabledOptions{Timeout: in.ms()})
	if err != nil {
		return false, fmt.Errorf("check enabled state of %s: %w", loc, err)
	}
	return ok, nil
}

// IsDisabled reports whether the element is disabled.
func (h *Helper) IsDisabled(loc Locator, opts ...InteractionOption) (bool, error) {
	in := newInteraction(h.defaultTimeout, opts)
	ok, err := h.resolve(loc, in).IsDisabled(playwright.LocatorIsDisabledOptions{Timeout: in.ms()})
	if err != nil {
		return false, fmt.Errorf("check disabled state of %s: %w", loc, err)
	}
	return ok, nil
}

// IsChecked reports whether a checkbox or radio is checked.
func (h *Helper) IsChecked(loc Locator, opts ...InteractionOption) (bool, error) {
	in := newInteraction(h.defaultTimeout, opts)
	ok, err := h.resolve(loc, in).IsChecked(playwright.LocatorIsCheckedOptions{Timeout: in.ms()})
	if err != nil {
		return false, fmt.Errorf("check checked state of %s: %w", loc, err)
	}
	return ok, nil
}

// IsEditable reports whether the element accepts input.
func (h *Helper) IsEditable(loc Locator, opts ...InteractionOption) (bool, error) {
	in := newInteraction(h.defaultTimeout, opts)
	ok, err := h.resolve(loc, in).IsEditable(playwright.LocatorIsEditableOptions{Timeout: in.ms()})
	if err != nil {
		return false, fmt.Errorf("check editable state of %s: %w", loc, err)
	}
	return ok, nil
}

// Highlight outlines the element on screen, for debugging headed runs.
func (h *Helper) Highlight(loc Locator, opts ...InteractionOption) error {
	in := newInteraction(h.defaultTimeout, opts)
	if err := h.resolve(loc, in).Highlight(); err != nil {
		return fmt.Errorf("highlight %s: %w", loc, err)
	}
	return nil
}

// SelectByText picks the option of a <select> whose label is text.
func (h *Helper) SelectByText(loc Locator, text string, opts ...InteractionOption) error {
	return h.selectOption(loc, playwright.SelectOptionValues{Labels: &[]string{text}}, text, opts)
}

// SelectByValue picks the option of a <select> whose value is value.
func (h *Helper) SelectByValue(loc Locator, value string, opts ...InteractionOption) error {
	return h.selectOption(loc, playwright.SelectOptionValues{Values: &[]string{value}}, value, opts)
}

// SelectByIndex picks the option of a <select> at index.
func (h *Helper) SelectByIndex(loc Locator, index int, opts ...InteractionOption) error {
	return h.selectOption(loc, playwright.SelectOptionValues{Indexes: &[]int{index}}, fmt.Sprint(index), opts)
}

func (h *Helper) selectOption(loc Locator, values playwright.SelectOptionValues, desc string, opts []InteractionOption) error {
	in := newInteraction(h.defaultTimeout, opts)
	_, err := h.resolve(loc, in).SelectOption(values, playwright.LocatorSelectOptionOptions{
		Force:   playwright.Bool(in.force),
		Timeout: in.ms(),
	})
	if err != nil {
		return fmt.Errorf("select option %s from %s: %w", desc, loc, err)
	}
	h.logger.Debug("selected option", zap.String("option", desc), zap.Stringer("locator", loc))
	return nil
}

// DragTo drags the source element onto the target element.
func (h *Helper) DragTo(source, target Locator, opts ...InteractionOption) error {
	in := newInteraction(h.defaultTimeout, opts)
	src := h.resolve(source, in)
	dst := Resolve(h.page, target, 0)
	err := src.DragTo(dst, playwright.LocatorDragToOptions{
		Force:   playwright.Bool(in.force),
		Timeout: in.ms(),
	})
	if err != nil {
		return fmt.Errorf("drag %s to %s: %w", source, target, err)
	}
	h.logger.Debug("dragged element", zap.Stringer("source", source), zap.Stringer("target", target))
	return nil
}

// ScrollIntoView scrolls the element into the viewport if it is not there already.
func (h *Helper) ScrollIntoView(loc Locator, opts ...InteractionOption) error {
	in := newInteraction(h.defaultTimeout, opts)
	err := h.resolve(loc, in).ScrollIntoViewIfNeeded(playwright.LocatorScrollIntoViewIfNeededOptions{
		Timeout: in.ms(),
	})
	if err != nil {
		return fmt.Errorf("scroll to %s: %w", loc, err)
	}
	return nil
}

// ScreenshotOptions controls Screenshot.
type ScreenshotOptions struct {
	// Path also writes the image to disk when set
	Path     string
	FullPage bool
}

// Screenshot captures the page as PNG.
func (h *Helper) Screenshot(opts ScreenshotOptions) ([]byte, error) {
	shot := playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(opts.FullPage),
		Timeout:  millis(h.defaultTimeout),
	}
	if opts.Path != "" {
		shot.Path = playwright.String(opts.Path)
	}
	data, err := h.page.Screenshot(shot)
	if err != nil {
		return nil, fmt.Errorf("take screenshot: %w", err)
	}
	h.logger.Debug("took screenshot", zap.String("path", opts.Path), zap.Int("bytes", len(data)))
	return data, nil
}

// FrameLocator locates loc inside the iframe matched by frameSelector.
func (h *Helper) FrameLocator(frameSelector string, loc Locator) playwright.Locator {
	return h.page.FrameLocator(frameSelector).Locator(loc.frameTarget())
}
