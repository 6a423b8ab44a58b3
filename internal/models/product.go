package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Stock statuses shown on the product page.
const (
	StockInStock    = "In Stock"
	StockOutOfStock = "Out Of Stock"
	StockPreOrder   = "Pre-Order"
	Stock2To3Days   = "2-3 Days"
)

// Product is a catalog entry of the storefront.
type Product struct {
	ID           int64
	Name         string
	Brand        string
	Model        string
	RewardPoints int
	Availability string
	Price        int64 // cents, tax included
	ExTaxPrice   int64 // cents
	ImageCount   int
	Description  string
}

// Domain errors
var (
	ErrInvalidProductName = errors.New("product name cannot be empty")
	ErrInvalidModel       = errors.New("product model cannot be empty")
	ErrInvalidPrice       = errors.New("product price must not be negative")
	ErrInvalidTaxedPrice  = errors.New("price cannot be lower than the ex tax price")
	ErrInvalidImageCount  = errors.New("product needs at least one image")
	ErrProductNotFound    = errors.New("product not found")
)

// Validate checks the product can be listed.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidProductName
	}
	if strings.TrimSpace(p.Model) == "" {
		return ErrInvalidModel
	}
	if p.Price < 0 || p.ExTaxPrice < 0 {
		return ErrInvalidPrice
	}
	if p.Price < p.ExTaxPrice {
		return fmt.Errorf("%w: %d < %d", ErrInvalidTaxedPrice, p.Price, p.ExTaxPrice)
	}
	if p.ImageCount < 1 {
		return ErrInvalidImageCount
	}
	return nil
}

// HasBrand reports whether the product page lists a brand line.
func (p *Product) HasBrand() bool {
	return p.Brand != ""
}

// FormattedPrice returns the tax-inclusive price, e.g. "$2,000.00".
func (p *Product) FormattedPrice() string {
	return FormatDollars(p.Price)
}

// FormattedExTaxPrice returns the price before tax, e.g. "$1,000.00".
func (p *Product) FormattedExTaxPrice() string {
	return FormatDollars(p.ExTaxPrice)
}

// FormatDollars renders cents as a dollar amount with thousands separators.
func FormatDollars(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return sign + "$" + humanize.FormatFloat("#,###.##", float64(cents)/100.0)
}
