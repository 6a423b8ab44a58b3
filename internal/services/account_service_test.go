package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/opencart-qa/storefront-e2e/internal/models"
)

// MockCustomerRepository is an in-memory CustomerRepository for testing
type MockCustomerRepository struct {
	customers         map[string]*models.Customer
	CreateCustomerErr error
}

func newMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{customers: make(map[string]*models.Customer)}
}

func (m *MockCustomerRepository) CreateCustomer(c *models.Customer) error {
	if m.CreateCustomerErr != nil {
		return m.CreateCustomerErr
	}
	if _, ok := m.customers[c.Email]; ok {
		return models.ErrEmailTaken
	}
	m.customers[c.Email] = c
	return nil
}

func (m *MockCustomerRepository) GetCustomerByEmail(email string) (*models.Customer, error) {
	c, ok := m.customers[models.NormalizeEmail(email)]
	if !ok {
		return nil, models.ErrCustomerNotFound
	}
	return c, nil
}

func (m *MockCustomerRepository) GetCustomerByID(id string) (*models.Customer, error) {
	for _, c := range m.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, models.ErrCustomerNotFound
}

func registration(email string) models.RegistrationInput {
	return models.RegistrationInput{
		FirstName: "Mei",
		LastName:  "Chen",
		Email:     email,
		Telephone: "5550001111",
		Password:  "Pass1234",
		Confirm:   "Pass1234",
		Agree:     true,
	}
}

func TestAccountService_Register(t *testing.T) {
	// GIVEN
	repo := newMockCustomerRepository()
	service := NewAccountService(repo, bcrypt.MinCost)

	// WHEN
	customer, err := service.Register(registration("Mei@Example.com"))

	// THEN
	require.NoError(t, err)
	assert.Equal(t, "mei@example.com", customer.Email)
	assert.NotEqual(t, "Pass1234", customer.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte("Pass1234")))
}

func TestAccountService_Register_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   models.RegistrationInput
		repoErr error
		wantErr error
	}{
		{
			name:    "invalid input",
			input:   models.RegistrationInput{},
			wantErr: models.ErrInvalidFirstName,
		},
		{
			name:    "repository error",
			input:   registration("mei@example.com"),
			repoErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockCustomerRepository()
			repo.CreateCustomerErr = tt.repoErr
			service := NewAccountService(repo, bcrypt.MinCost)

			_, err := service.Register(tt.input)

			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestAccountService_Authenticate(t *testing.T) {
	// GIVEN
	repo := newMockCustomerRepository()
	service := NewAccountService(repo, bcrypt.MinCost)
	registered, err := service.Register(registration("mei@example.com"))
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"valid credentials", "mei@example.com", "Pass1234", nil},
		{"email case ignored", " MEI@example.com", "Pass1234", nil},
		{"wrong password", "mei@example.com", "wrong", models.ErrInvalidLogin},
		{"unknown email", "nobody@example.com", "Pass1234", models.ErrInvalidLogin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// WHEN
			customer, err := service.Authenticate(tt.email, tt.password)

			// THEN
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, customer)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, registered.ID, customer.ID)
		})
	}
}

func TestAccountService_EnsureCustomer(t *testing.T) {
	repo := newMockCustomerRepository()
	service := NewAccountService(repo, bcrypt.MinCost)

	first, err := service.EnsureCustomer("demo@example.com", "demo1234")
	require.NoError(t, err)
	second, err := service.EnsureCustomer("demo@example.com", "other")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	_, err = service.Authenticate("demo@example.com", "demo1234")
	assert.NoError(t, err)

	byID, err := service.Customer(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "demo@example.com", byID.Email)
}
