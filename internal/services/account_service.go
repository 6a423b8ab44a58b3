package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/opencart-qa/storefront-e2e/internal/models"
)

// CustomerRepository defines the interface for account persistence
type CustomerRepository interface {
	CreateCustomer(c *models.Customer) error
	GetCustomerByEmail(email string) (*models.Customer, error)
	GetCustomerByID(id string) (*models.Customer, error)
}

// AccountService handles registration and authentication
type AccountService interface {
	Register(in models.RegistrationInput) (*models.Customer, error)
	Authenticate(email, password string) (*models.Customer, error)
	Customer(id string) (*models.Customer, error)
	EnsureCustomer(email, password string) (*models.Customer, error)
}

// AccountServiceImpl implements AccountService
type AccountServiceImpl struct {
	customerRepo CustomerRepository
	hashCost     int
}

// NewAccountService creates a new account service. A zero hashCost uses
// bcrypt.DefaultCost.
func NewAccountService(customerRepo CustomerRepository, hashCost int) AccountService {
	if hashCost == 0 {
		hashCost = bcrypt.DefaultCost
	}
	return &AccountServiceImpl{
		customerRepo: customerRepo,
		hashCost:     hashCost,
	}
}

// Register validates the form input and creates the account.
func (s *AccountServiceImpl) Register(in models.RegistrationInput) (*models.Customer, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	customer, err := models.NewCustomer(in, string(hash))
	if err != nil {
		return nil, err
	}
	if err := s.customerRepo.CreateCustomer(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Authenticate returns the account matching email and password. Unknown
// addresses and wrong passwords both yield models.ErrInvalidLogin.
func (s *AccountServiceImpl) Authenticate(email, password string) (*models.Customer, error) {
	customer, err := s.customerRepo.GetCustomerByEmail(email)
	if errors.Is(err, models.ErrCustomerNotFound) {
		return nil, models.ErrInvalidLogin
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)); err != nil {
		return nil, models.ErrInvalidLogin
	}
	return customer, nil
}

// Customer returns the account with the given ID.
func (s *AccountServiceImpl) Customer(id string) (*models.Customer, error) {
	return s.customerRepo.GetCustomerByID(id)
}

// EnsureCustomer registers a demo account for email unless one exists.
func (s *AccountServiceImpl) EnsureCustomer(email, password string) (*models.Customer, error) {
	existing, err := s.customerRepo.GetCustomerByEmail(email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, models.ErrCustomerNotFound) {
		return nil, err
	}
	return s.Register(models.RegistrationInput{
		FirstName: "Demo",
		LastName:  "Customer",
		Email:     email,
		Telephone: "0000000000",
		Password:  password,
		Confirm:   password,
		Agree:     true,
	})
}
