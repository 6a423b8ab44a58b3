package elements

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Locator identifies the element a helper verb acts on. It is either a raw
// selector string (CSS, XPath, text=...) or a semantic playwright.Locator built
// with GetByRole, GetByText and friends. The set of variants is closed.
type Locator interface {
	fmt.Stringer
	// base returns every match, before first/nth selection
	base(page playwright.Page) playwright.Locator
	// frameTarget is the argument handed to FrameLocator.Locator
	frameTarget() interface{}
}

// Selector is a raw selector string resolved against the helper's page.
type Selector string

func (s Selector) base(page playwright.Page) playwright.Locator {
	return page.Locator(string(s))
}

func (s Selector) frameTarget() interface{} {
	return string(s)
}

func (s Selector) String() string {
	return string(s)
}

// semantic wraps an already built playwright.Locator.
type semantic struct {
	description string
	loc         playwright.Locator
}

// Semantic wraps a playwright.Locator such as page.GetByRole(...). The
// description only shows up in logs and errors.
func Semantic(description string, loc playwright.Locator) Locator {
	return semantic{description: description, loc: loc}
}

func (s semantic) base(playwright.Page) playwright.Locator {
	return s.loc
}

func (s semantic) frameTarget() interface{} {
	return s.loc
}

func (s semantic) String() string {
	return s.description
}

// Resolve narrows l to a single element: index 0 is the first match, any
// other positive index selects the nth match. It never touches the page.
func Resolve(page playwright.Page, l Locator, index int) playwright.Locator {
	all := l.base(page)
	if index > 0 {
		return all.Nth(index)
	}
	return all.First()
}

// All returns every element l matches.
func All(page playwright.Page, l Locator) playwright.Locator {
	return l.base(page)
}
