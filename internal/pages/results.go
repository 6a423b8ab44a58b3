package pages

import (
	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/opencart-qa/storefront-e2e/internal/elements"
)

// ResultsPage lists the products a search matched.
type ResultsPage struct {
	nav       *navigator
	searchKey string
	results   elements.Locator
}

func newResultsPage(nav *navigator, searchKey string) *ResultsPage {
	return &ResultsPage{
		nav:       nav,
		searchKey: searchKey,
		results:   elements.Selector(".product-thumb"),
	}
}

// SearchKey returns the key that produced this page.
func (p *ResultsPage) SearchKey() string {
	return p.searchKey
}

// ResultsCount returns the number of product tiles shown.
func (p *ResultsPage) ResultsCount() (int, error) {
	return p.nav.el.Count(p.results)
}

// SelectProduct opens the product whose link text is productName.
func (p *ResultsPage) SelectProduct(productName string) (*ProductInfoPage, error) {
	p.nav.logger.Info("selecting product", zap.String("product", productName))

	link := pageRole(p.nav.page, playwright.AriaRoleLink, productName)
	if err := p.nav.el.Click(link); err != nil {
		return nil, err
	}
	if err := p.nav.waitForRoute(RouteProduct); err != nil {
		return nil, err
	}
	return newProductInfoPage(p.nav), nil
}
