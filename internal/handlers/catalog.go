package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/opencart-qa/storefront-e2e/internal/models"
)

func (s *Storefront) home(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, viewHome, s.newPage(r, "Your Store"))
}

func (s *Storefront) search(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(r.URL.Query().Get("search"))
	title := "Search"
	if key != "" {
		title = "Search - " + key
	}

	products, err := s.catalog.Search(key)
	if err != nil {
		s.serverError(w, "search failed", err)
		return
	}
	s.logger.Debug("catalog searched", zap.String("key", key), zap.Int("results", len(products)))

	data := s.newPage(r, title)
	data.Products = products
	s.render(w, http.StatusOK, viewSearch, data)
}

func (s *Storefront) product(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("product_id"), 10, 64)
	if err != nil {
		s.NotFound(w, r)
		return
	}
	product, err := s.catalog.Product(id)
	if errors.Is(err, models.ErrProductNotFound) {
		s.NotFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, "product lookup failed", err)
		return
	}

	data := s.newPage(r, product.Name)
	data.Product = product
	s.render(w, http.StatusOK, viewProduct, data)
}

const placeholderImage = `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100" viewBox="0 0 100 100">` +
	`<rect width="100" height="100" fill="#eeeeee"/>` +
	`<text x="50" y="55" font-size="12" text-anchor="middle" fill="#888888">%s</text></svg>`

// ServeImage returns a placeholder SVG for any catalog image path.
func ServeImage(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:], ".svg")
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	fmt.Fprintf(w, placeholderImage, template.HTMLEscapeString(name))
}
