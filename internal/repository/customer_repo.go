package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/opencart-qa/storefront-e2e/internal/models"
)

// CustomerRepository handles database operations for customer accounts.
type CustomerRepository struct {
	db *sql.DB
}

// NewCustomerRepository creates a customer repository on db.
func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// CreateCustomer stores a new account. An address already in use yields
// models.ErrEmailTaken.
func (r *CustomerRepository) CreateCustomer(c *models.Customer) error {
	if _, err := r.GetCustomerByEmail(c.Email); err == nil {
		return fmt.Errorf("%s: %w", c.Email, models.ErrEmailTaken)
	} else if !errors.Is(err, models.ErrCustomerNotFound) {
		return err
	}

	query := `
		INSERT INTO customers (id, first_name, last_name, email, telephone, password_hash, newsletter, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		c.ID,
		c.FirstName,
		c.LastName,
		c.Email,
		c.Telephone,
		c.PasswordHash,
		c.Newsletter,
		c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

// GetCustomerByEmail retrieves an account by its normalized email address.
func (r *CustomerRepository) GetCustomerByEmail(email string) (*models.Customer, error) {
	return r.getCustomer(`email = ?`, models.NormalizeEmail(email))
}

// GetCustomerByID retrieves an account by ID.
func (r *CustomerRepository) GetCustomerByID(id string) (*models.Customer, error) {
	return r.getCustomer(`id = ?`, id)
}

func (r *CustomerRepository) getCustomer(where string, arg any) (*models.Customer, error) {
	query := `
		SELECT id, first_name, last_name, email, telephone, password_hash, newsletter, created_at
		FROM customers
		WHERE ` + where

	c := &models.Customer{}
	err := r.db.QueryRow(query, arg).Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Telephone,
		&c.PasswordHash,
		&c.Newsletter,
		&c.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return c, nil
}
