package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/opencart-qa/storefront-e2e/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Views rendered by the storefront, one template file each.
const (
	viewHome     = "home"
	viewLogin    = "login"
	viewAccount  = "account"
	viewLogout   = "logout"
	viewRegister = "register"
	viewSuccess  = "success"
	viewSearch   = "search"
	viewProduct  = "product"
	viewNotFound = "not_found"
)

var allViews = []string{viewHome, viewLogin, viewAccount, viewLogout, viewRegister, viewSuccess, viewSearch, viewProduct, viewNotFound}

// page is the data every view is rendered with. Views read the fields they need.
type page struct {
	Title         string
	Search        string
	LoggedIn      bool
	AccountColumn bool
	Customer      *models.Customer
	Warning       string
	Email         string
	Form          registerForm
	FieldErrors   map[string]string
	Products      []models.Product
	Product       *models.Product
}

type registerForm struct {
	FirstName  string
	LastName   string
	Email      string
	Telephone  string
	Newsletter bool
}

var viewFuncs = template.FuncMap{
	"routeURL":   routeURL,
	"productURL": productURL,
	"imageURL":   imageURL,
	"seq":        seq,
}

func routeURL(route string) string {
	return "/index.php?route=" + route
}

func productURL(id int64) string {
	return routeURL("product/product") + "&product_id=" + strconv.FormatInt(id, 10)
}

func imageURL(productID int64, n int) string {
	return fmt.Sprintf("/image/catalog/%d-%d.svg", productID, n)
}

// seq returns 1..n.
func seq(n int) []int {
	out := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, i)
	}
	return out
}

// loadViews parses every view together with the shared layout.
func loadViews() (map[string]*template.Template, error) {
	views := make(map[string]*template.Template, len(allViews))
	for _, name := range allViews {
		tmpl, err := template.New(name).Funcs(viewFuncs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse view %s: %w", name, err)
		}
		views[name] = tmpl
	}
	return views, nil
}

// render executes the view into a buffer first so a template error still
// produces a clean 500.
func (s *Storefront) render(w http.ResponseWriter, status int, name string, data page) {
	tmpl, ok := s.views[name]
	if !ok {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		s.logger.Sugar().Errorw("render failed", "view", name, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
