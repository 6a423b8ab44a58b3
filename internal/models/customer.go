package models

import (
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/multierr"
)

// Customer is a registered storefront account.
type Customer struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	Telephone    string
	PasswordHash string
	Newsletter   bool
	CreatedAt    time.Time
}

// RegistrationInput is what the register form posts.
type RegistrationInput struct {
	FirstName  string
	LastName   string
	Email      string
	Telephone  string
	Password   string
	Confirm    string
	Newsletter bool
	Agree      bool
}

// Registration and login errors.
var (
	ErrInvalidFirstName = errors.New("first name must be between 1 and 32 characters")
	ErrInvalidLastName  = errors.New("last name must be between 1 and 32 characters")
	ErrInvalidEmail     = errors.New("email address is not valid")
	ErrInvalidTelephone = errors.New("telephone must be between 3 and 32 characters")
	ErrInvalidPassword  = errors.New("password must be between 4 and 20 characters")
	ErrPasswordMismatch = errors.New("password confirmation does not match password")
	ErrTermsNotAgreed   = errors.New("privacy policy not agreed")
	ErrEmailTaken       = errors.New("email address is already registered")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrInvalidLogin     = errors.New("no match for email address and password")
)

// Validate returns every problem with the input combined into one error;
// multierr.Errors splits them back out for display.
func (in RegistrationInput) Validate() error {
	var err error
	if !lengthBetween(in.FirstName, 1, 32) {
		err = multierr.Append(err, ErrInvalidFirstName)
	}
	if !lengthBetween(in.LastName, 1, 32) {
		err = multierr.Append(err, ErrInvalidLastName)
	}
	email := strings.TrimSpace(in.Email)
	if _, perr := mail.ParseAddress(email); perr != nil || strings.ContainsAny(email, " <>") {
		err = multierr.Append(err, ErrInvalidEmail)
	}
	if !lengthBetween(in.Telephone, 3, 32) {
		err = multierr.Append(err, ErrInvalidTelephone)
	}
	if !lengthBetween(in.Password, 4, 20) {
		err = multierr.Append(err, ErrInvalidPassword)
	}
	if in.Confirm != in.Password {
		err = multierr.Append(err, ErrPasswordMismatch)
	}
	if !in.Agree {
		err = multierr.Append(err, ErrTermsNotAgreed)
	}
	return err
}

// NewCustomer validates in and builds the account it describes. passwordHash
// is the already hashed password.
func NewCustomer(in RegistrationInput, passwordHash string) (*Customer, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return &Customer{
		ID:           uuid.New().String(),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        NormalizeEmail(in.Email),
		Telephone:    strings.TrimSpace(in.Telephone),
		PasswordHash: passwordHash,
		Newsletter:   in.Newsletter,
		CreatedAt:    time.Now(),
	}, nil
}

// FullName returns "First Last".
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// NormalizeEmail lower-cases and trims an address so lookups ignore case.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func lengthBetween(s string, min, max int) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(s))
	return n >= min && n <= max
}
