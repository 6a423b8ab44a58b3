package handlers

import (
	"errors"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/opencart-qa/storefront-e2e/internal/models"
	"github.com/opencart-qa/storefront-e2e/internal/services"
)

// SessionCookie carries the login session token.
const SessionCookie = "OCSESSID"

const defaultRoute = "common/home"

// route pairs the handlers of one index.php?route= value by method.
type route struct {
	get  http.HandlerFunc
	post http.HandlerFunc
}

// Storefront serves an OpenCart-shaped shop: every page is
// /index.php?route=<route>, dispatched on the route query parameter.
type Storefront struct {
	catalog  services.CatalogService
	accounts services.AccountService
	sessions *services.SessionStore
	views    map[string]*template.Template
	logger   *zap.Logger
	routes   map[string]route
}

// NewStorefront creates the storefront handler.
func NewStorefront(catalog services.CatalogService, accounts services.AccountService, sessions *services.SessionStore, logger *zap.Logger) (*Storefront, error) {
	views, err := loadViews()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Storefront{
		catalog:  catalog,
		accounts: accounts,
		sessions: sessions,
		views:    views,
		logger:   logger.Named("storefront"),
	}
	s.routes = map[string]route{
		"common/home":      {get: s.home},
		"account/login":    {get: s.loginForm, post: s.login},
		"account/account":  {get: s.account},
		"account/logout":   {get: s.logout},
		"account/register": {get: s.registerForm, post: s.register},
		"account/success":  {get: s.success},
		"product/search":   {get: s.search},
		"product/product":  {get: s.product},
	}
	return s, nil
}

// ServeHTTP dispatches on the route query parameter.
func (s *Storefront) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("route")
	if name == "" {
		name = defaultRoute
	}
	rt, ok := s.routes[name]
	if !ok {
		s.NotFound(w, r)
		return
	}

	var h http.HandlerFunc
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		h = rt.get
	case http.MethodPost:
		h = rt.post
	}
	if h == nil {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h(w, r)
}

// NotFound renders the storefront's missing page view.
func (s *Storefront) NotFound(w http.ResponseWriter, r *http.Request) {
	data := s.newPage(r, "Page Not Found!")
	s.render(w, http.StatusNotFound, viewNotFound, data)
}

// currentCustomer returns the logged-in customer, or nil.
func (s *Storefront) currentCustomer(r *http.Request) *models.Customer {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return nil
	}
	id, ok := s.sessions.Lookup(cookie.Value)
	if !ok {
		return nil
	}
	customer, err := s.accounts.Customer(id)
	if err != nil {
		if !errors.Is(err, models.ErrCustomerNotFound) {
			s.logger.Warn("failed to load session customer", zap.Error(err))
		}
		return nil
	}
	return customer
}

func (s *Storefront) newPage(r *http.Request, title string) page {
	customer := s.currentCustomer(r)
	return page{
		Title:    title,
		Search:   r.URL.Query().Get("search"),
		LoggedIn: customer != nil,
		Customer: customer,
	}
}

func (s *Storefront) serverError(w http.ResponseWriter, msg string, err error) {
	s.logger.Error(msg, zap.Error(err))
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func redirect(w http.ResponseWriter, r *http.Request, route string) {
	http.Redirect(w, r, routeURL(route), http.StatusFound)
}
