package pages

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const testBaseURL = "http://127.0.0.1:8080/index.php"

type (
	pwLocator = playwright.Locator
	pwPage    = playwright.Page
)

// storeLocator answers for one selector out of the storePage's tables
type storeLocator struct {
	pwLocator
	name string
	page *storePage
}

func (l *storeLocator) First() playwright.Locator { return l }
func (l *storeLocator) Nth(int) playwright.Locator { return l }
func (l *storeLocator) GetByRole(role playwright.AriaRole, options ...playwright.LocatorGetByRoleOptions) playwright.Locator {
	name := ""
	if len(options) > 0 {
		name = fmt.Sprint(options[0].Name)
	}
	return &storeLocator{name: fmt.Sprintf("%s role=%s[%s]", l.name, role, name), page: l.page}
}

func (l *storeLocator) Fill(value string, options ...playwright.LocatorFillOptions) error {
	l.page.events = append(l.page.events, "fill "+l.name+"="+value)
	return nil
}

func (l *storeLocator) Click(options ...playwright.LocatorClickOptions) error {
	l.page.events = append(l.page.events, "click "+l.name)
	if next, ok := l.page.navigateOn[l.name]; ok {
		l.page.url = next
	}
	return nil
}

func (l *storeLocator) WaitFor(options ...playwright.LocatorWaitForOptions) error {
	if l.page.visible[l.name] {
		return nil
	}
	return fmt.Errorf("%w: %s never became visible", playwright.ErrTimeout, l.name)
}

func (l *storeLocator) InnerText(options ...playwright.LocatorInnerTextOptions) (string, error) {
	return l.page.texts[l.name], nil
}

func (l *storeLocator) Count() (int, error) {
	return l.page.counts[l.name], nil
}

// storePage is a scripted storefront tab: clicking a selector listed in
// navigateOn moves the page to that URL.
type storePage struct {
	pwPage
	url        string
	events     []string
	navOpts    []playwright.PageExpectNavigationOptions
	navigateOn map[string]string
	visible    map[string]bool
	texts      map[string]string
	counts     map[string]int
}

var (
	_ playwright.Locator = (*storeLocator)(nil)
	_ playwright.Page    = (*storePage)(nil)
)

func (p *storePage) Locator(selector string, options ...playwright.PageLocatorOptions) playwright.Locator {
	return &storeLocator{name: selector, page: p}
}

func (p *storePage) GetByRole(role playwright.AriaRole, options ...playwright.PageGetByRoleOptions) playwright.Locator {
	name := ""
	if len(options) > 0 {
		name = fmt.Sprint(options[0].Name)
	}
	return &storeLocator{name: fmt.Sprintf("role=%s[%s]", role, name), page: p}
}

func (p *storePage) URL() string {
	return p.url
}

func (p *storePage) ExpectNavigation(cb func() error, options ...playwright.PageExpectNavigationOptions) (playwright.Response, error) {
	before := p.url
	p.navOpts = append(p.navOpts, options...)
	if err := cb(); err != nil {
		return nil, err
	}
	if p.url == before {
		return nil, fmt.Errorf("%w: no navigation", playwright.ErrTimeout)
	}
	if len(options) > 0 {
		if re, ok := options[0].URL.(*regexp.Regexp); ok && !re.MatchString(p.url) {
			return nil, fmt.Errorf("%w: %s does not match %s", playwright.ErrTimeout, p.url, re)
		}
	}
	return nil, nil
}

func newStorePage(url string) *storePage {
	return &storePage{
		url:        url,
		navigateOn: map[string]string{},
		visible:    map[string]bool{},
		texts:      map[string]string{},
		counts:     map[string]int{},
	}
}

func loginPageOn(t *testing.T, page *storePage) *LoginPage {
	t.Helper()
	return NewLoginPage(page, testBaseURL, zaptest.NewLogger(t))
}

const (
	loginButton = "input[value='Login']"
	warningBox  = ".alert.alert-danger.alert-dismissible"
	warningText = "Warning: No match for E-Mail Address and/or Password."
)

func TestDoLogin(t *testing.T) {
	t.Run("account page", func(t *testing.T) {
		// GIVEN
		page := newStorePage(testBaseURL + "?route=account%2Flogin")
		page.navigateOn[loginButton] = testBaseURL + "?route=account/account"
		login := loginPageOn(t, page)

		// WHEN
		home, err := login.DoLogin("demo@opencart.test", "demo1234")

		// THEN
		require.NoError(t, err)
		assert.NotNil(t, home)
		assert.Equal(t, []string{
			"fill #input-email=demo@opencart.test",
			"fill #input-password=demo1234",
			"click " + loginButton,
		}, page.events)
	})

	t.Run("rejected login carries the warning", func(t *testing.T) {
		// GIVEN the store answers the post with the login form and a warning
		page := newStorePage(testBaseURL + "?route=account%2Flogin")
		page.navigateOn[loginButton] = testBaseURL + "?route=account/login"
		page.visible[warningBox] = true
		page.texts[warningBox] = warningText
		login := loginPageOn(t, page)

		// WHEN
		home, err := login.DoLogin("demo@opencart.test", "wrong")

		// THEN
		assert.Nil(t, home)
		require.ErrorIs(t, err, ErrLoginRejected)
		assert.Contains(t, err.Error(), warningText)
	})

	t.Run("unexpected landing page", func(t *testing.T) {
		page := newStorePage(testBaseURL + "?route=account%2Flogin")
		page.navigateOn[loginButton] = testBaseURL + "?route=common/home"
		login := loginPageOn(t, page)

		_, err := login.DoLogin("demo@opencart.test", "demo1234")

		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrLoginRejected)
		assert.Contains(t, err.Error(), "route=common/home")
	})
}

func TestDoSearch_WaitsForTheNewResults(t *testing.T) {
	// GIVEN a results page for an earlier search, still on the search route
	page := newStorePage(testBaseURL + "?route=product%2Fsearch&search=macbook")
	page.navigateOn[".btn.btn-default.btn-lg"] = testBaseURL + "?route=product%2Fsearch&search=samsung"
	home := newHomePage(loginPageOn(t, page).nav)

	// WHEN
	results, err := home.DoSearch("samsung")

	// THEN the wait was tied to the click and to the new key
	require.NoError(t, err)
	assert.Equal(t, "samsung", results.SearchKey())
	assert.Equal(t, []string{
		"fill role=textbox[Search]=samsung",
		"click .btn.btn-default.btn-lg",
	}, page.events)
	require.Len(t, page.navOpts, 1)
	pattern, ok := page.navOpts[0].URL.(*regexp.Regexp)
	require.True(t, ok)
	assert.True(t, pattern.MatchString(testBaseURL+"?route=product%2Fsearch&search=samsung"))
	assert.False(t, pattern.MatchString(testBaseURL+"?route=product%2Fsearch&search=macbook"))
}

func TestDoSearch_FailsWhenTheSearchDoesNotNavigate(t *testing.T) {
	// GIVEN the click leaves the previous results in place
	page := newStorePage(testBaseURL + "?route=product%2Fsearch&search=macbook")
	home := newHomePage(loginPageOn(t, page).nav)

	// WHEN
	results, err := home.DoSearch("samsung")

	// THEN stale results are never handed back
	assert.Nil(t, results)
	assert.ErrorIs(t, err, playwright.ErrTimeout)
}

func TestSearchPattern(t *testing.T) {
	tests := []struct {
		key   string
		url   string
		match bool
	}{
		{"macbook", "index.php?route=product/search&search=macbook", true},
		{"mac", "index.php?route=product/search&search=macbook", false},
		{"galaxy tab", "index.php?route=product/search&search=galaxy+tab", true},
		{"galaxy tab", "index.php?route=product/search&search=galaxy%20tab", true},
		{"NokiaDummy", "index.php?search=NokiaDummy&route=product/search", true},
	}

	for _, tt := range tests {
		t.Run(tt.key+" "+tt.url, func(t *testing.T) {
			assert.Equal(t, tt.match, searchPattern(tt.key).MatchString(tt.url))
		})
	}
}

func TestProductImagesCount(t *testing.T) {
	const gallery = "div#content img"

	t.Run("visible gallery", func(t *testing.T) {
		page := newStorePage(testBaseURL + "?route=product/product&product_id=45")
		page.visible[gallery] = true
		page.counts[gallery] = 4
		product := newProductInfoPage(loginPageOn(t, page).nav)

		n, err := product.ProductImagesCount()

		require.NoError(t, err)
		assert.Equal(t, 4, n)
	})

	t.Run("gallery never shown", func(t *testing.T) {
		page := newStorePage(testBaseURL + "?route=product/product&product_id=45")
		product := newProductInfoPage(loginPageOn(t, page).nav)

		n, err := product.ProductImagesCount()

		assert.ErrorIs(t, err, ErrNoProductImages)
		assert.Zero(t, n)
	})
}
