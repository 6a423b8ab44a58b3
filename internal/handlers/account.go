package handlers

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/opencart-qa/storefront-e2e/internal/models"
)

// Messages the storefront shows for failed logins and registrations.
const (
	MsgInvalidLogin  = "Warning: No match for E-Mail Address and/or Password."
	MsgEmailTaken    = "Warning: E-Mail Address is already registered!"
	MsgTermsRequired = "Warning: You must agree to the Privacy Policy!"
)

// fieldMessages maps a registration error to the form field it belongs to
// and the text shown under that field.
var fieldMessages = map[error]struct{ field, text string }{
	models.ErrInvalidFirstName: {"firstname", "First Name must be between 1 and 32 characters!"},
	models.ErrInvalidLastName:  {"lastname", "Last Name must be between 1 and 32 characters!"},
	models.ErrInvalidEmail:     {"email", "E-Mail Address does not appear to be valid!"},
	models.ErrInvalidTelephone: {"telephone", "Telephone must be between 3 and 32 characters!"},
	models.ErrInvalidPassword:  {"password", "Password must be between 4 and 20 characters!"},
	models.ErrPasswordMismatch: {"confirm", "Password confirmation does not match password!"},
}

func (s *Storefront) loginForm(w http.ResponseWriter, r *http.Request) {
	if s.currentCustomer(r) != nil {
		redirect(w, r, "account/account")
		return
	}
	data := s.newPage(r, "Account Login")
	data.AccountColumn = true
	s.render(w, http.StatusOK, viewLogin, data)
}

func (s *Storefront) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	email := r.PostFormValue("email")

	customer, err := s.accounts.Authenticate(email, r.PostFormValue("password"))
	if errors.Is(err, models.ErrInvalidLogin) {
		s.logger.Info("login rejected", zap.String("email", email))
		data := s.newPage(r, "Account Login")
		data.AccountColumn = true
		data.Warning = MsgInvalidLogin
		data.Email = email
		s.render(w, http.StatusOK, viewLogin, data)
		return
	}
	if err != nil {
		s.serverError(w, "login failed", err)
		return
	}

	s.startSession(w, customer)
	s.logger.Info("customer logged in", zap.String("email", customer.Email))
	redirect(w, r, "account/account")
}

func (s *Storefront) account(w http.ResponseWriter, r *http.Request) {
	data := s.newPage(r, "My Account")
	if !data.LoggedIn {
		redirect(w, r, "account/login")
		return
	}
	data.AccountColumn = true
	s.render(w, http.StatusOK, viewAccount, data)
}

func (s *Storefront) logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		s.sessions.End(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	data := page{
		Title:         "Account Logout",
		Search:        r.URL.Query().Get("search"),
		AccountColumn: true,
	}
	s.render(w, http.StatusOK, viewLogout, data)
}

func (s *Storefront) registerForm(w http.ResponseWriter, r *http.Request) {
	if s.currentCustomer(r) != nil {
		redirect(w, r, "account/account")
		return
	}
	data := s.newPage(r, "Register Account")
	data.AccountColumn = true
	s.render(w, http.StatusOK, viewRegister, data)
}

func (s *Storefront) register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	in := models.RegistrationInput{
		FirstName:  r.PostFormValue("firstname"),
		LastName:   r.PostFormValue("lastname"),
		Email:      r.PostFormValue("email"),
		Telephone:  r.PostFormValue("telephone"),
		Password:   r.PostFormValue("password"),
		Confirm:    r.PostFormValue("confirm"),
		Newsletter: r.PostFormValue("newsletter") == "1",
		Agree:      r.PostFormValue("agree") != "",
	}

	customer, err := s.accounts.Register(in)
	if err != nil {
		warning, fields, ok := registrationProblems(err)
		if !ok {
			s.serverError(w, "registration failed", err)
			return
		}
		s.logger.Info("registration rejected", zap.String("email", in.Email), zap.Error(err))
		data := s.newPage(r, "Register Account")
		data.AccountColumn = true
		data.Warning = warning
		data.FieldErrors = fields
		data.Form = registerForm{
			FirstName:  in.FirstName,
			LastName:   in.LastName,
			Email:      in.Email,
			Telephone:  in.Telephone,
			Newsletter: in.Newsletter,
		}
		s.render(w, http.StatusOK, viewRegister, data)
		return
	}

	s.startSession(w, customer)
	s.logger.Info("customer registered", zap.String("email", customer.Email), zap.Bool("newsletter", customer.Newsletter))
	redirect(w, r, "account/success")
}

func (s *Storefront) success(w http.ResponseWriter, r *http.Request) {
	data := s.newPage(r, "Your Account Has Been Created!")
	data.AccountColumn = true
	s.render(w, http.StatusOK, viewSuccess, data)
}

func (s *Storefront) startSession(w http.ResponseWriter, customer *models.Customer) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    s.sessions.Start(customer.ID),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// registrationProblems splits a registration error into the banner warning
// and per-field messages. ok is false for errors the customer cannot fix.
func registrationProblems(err error) (warning string, fields map[string]string, ok bool) {
	fields = make(map[string]string)
	var warnings []string
	for _, e := range multierr.Errors(err) {
		switch {
		case errors.Is(e, models.ErrEmailTaken):
			warnings = append(warnings, MsgEmailTaken)
		case errors.Is(e, models.ErrTermsNotAgreed):
			warnings = append(warnings, MsgTermsRequired)
		default:
			msg, known := fieldMessages[e]
			if !known {
				return "", nil, false
			}
			fields[msg.field] = msg.text
		}
	}
	return strings.Join(warnings, " "), fields, true
}
