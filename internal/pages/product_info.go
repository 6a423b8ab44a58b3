package pages

import (
	"errors"
	"strings"

	"github.com/samber/lo"

	"github.com/opencart-qa/storefront-e2e/internal/elements"
)

// ErrNoProductImages is returned when the product gallery never becomes visible.
var ErrNoProductImages = errors.New("product images not shown")

// ProductDetails is what the product page says about one product.
type ProductDetails struct {
	Header       string
	Brand        string
	ProductCode  string
	RewardPoints string
	Availability string
	Price        string
	ExTaxPrice   string
}

// ProductInfoPage shows a single product.
type ProductInfoPage struct {
	nav      *navigator
	header   elements.Locator
	images   elements.Locator
	metaData elements.Locator
	pricing  elements.Locator
}

func newProductInfoPage(nav *navigator) *ProductInfoPage {
	return &ProductInfoPage{
		nav:      nav,
		header:   elements.Selector("#content h1"),
		images:   elements.Selector("div#content img"),
		metaData: elements.Selector("xpath=(//div[@id='content']//ul[@class='list-unstyled'])[1]/li"),
		pricing:  elements.Selector("xpath=(//div[@id='content']//ul[@class='list-unstyled'])[2]/li"),
	}
}

// ProductHeader returns the product name heading.
func (p *ProductInfoPage) ProductHeader() (string, error) {
	return p.nav.el.InnerText(p.header)
}

// ProductImagesCount returns how many product images the page shows.
func (p *ProductInfoPage) ProductImagesCount() (int, error) {
	shown, err := p.nav.el.WaitForVisible(p.images)
	if err != nil {
		return 0, err
	}
	if !shown {
		return 0, ErrNoProductImages
	}
	return p.nav.el.Count(p.images)
}

// ProductDetails reads the header, the metadata list and the pricing list.
func (p *ProductInfoPage) ProductDetails() (ProductDetails, error) {
	var details ProductDetails

	header, err := p.ProductHeader()
	if err != nil {
		return details, err
	}
	meta, err := p.nav.el.AllInnerTexts(p.metaData)
	if err != nil {
		return details, err
	}
	pricing, err := p.nav.el.AllInnerTexts(p.pricing)
	if err != nil {
		return details, err
	}

	details = parseProductDetails(meta, pricing)
	details.Header = header
	return details, nil
}

// parseProductDetails turns the "Label: value" lines of the metadata list
// and the price lines ("$2,000.00", "Ex Tax: $2,000.00") into ProductDetails.
func parseProductDetails(meta, pricing []string) ProductDetails {
	fields := labelled(meta)
	details := ProductDetails{
		Brand:        fields["Brand"],
		ProductCode:  fields["Product Code"],
		RewardPoints: fields["Reward Points"],
		Availability: fields["Availability"],
	}

	lines := lo.Filter(lo.Map(pricing, func(s string, _ int) string {
		return strings.TrimSpace(s)
	}), func(s string, _ int) bool {
		return s != ""
	})
	if len(lines) > 0 {
		details.Price = lines[0]
	}
	if prices := labelled(lines); prices["Ex Tax"] != "" {
		details.ExTaxPrice = prices["Ex Tax"]
	}
	return details
}

func labelled(lines []string) map[string]string {
	out := make(map[string]string, len(lines))
	for _, line := range lines {
		label, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		out[strings.TrimSpace(label)] = strings.TrimSpace(value)
	}
	return out
}
