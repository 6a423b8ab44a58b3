package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/opencart-qa/storefront-e2e/internal/models"
)

// ProductRepository handles database operations for the catalog.
type ProductRepository struct {
	db *sql.DB
}

// NewProductRepository creates a product repository on db.
func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, name, brand, model, reward_points, availability, price, ex_tax_price, image_count, description`

// SaveProduct inserts the product, replacing any existing row with its ID.
func (r *ProductRepository) SaveProduct(p *models.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			brand = excluded.brand,
			model = excluded.model,
			reward_points = excluded.reward_points,
			availability = excluded.availability,
			price = excluded.price,
			ex_tax_price = excluded.ex_tax_price,
			image_count = excluded.image_count,
			description = excluded.description
	`
	_, err := r.db.Exec(query,
		p.ID,
		p.Name,
		p.Brand,
		p.Model,
		p.RewardPoints,
		p.Availability,
		p.Price,
		p.ExTaxPrice,
		p.ImageCount,
		p.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to save product %q: %w", p.Name, err)
	}
	return nil
}

// GetProduct retrieves a product by ID.
func (r *ProductRepository) GetProduct(id int64) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`

	p, err := scanProduct(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product %d: %w", id, models.ErrProductNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

// SearchProducts returns the products whose name contains key, ignoring
// case, ordered by name.
func (r *ProductRepository) SearchProducts(key string) ([]models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE instr(lower(name), lower(?)) > 0
		ORDER BY name
	`
	rows, err := r.db.Query(query, key)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to read product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	p := &models.Product{}
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Brand,
		&p.Model,
		&p.RewardPoints,
		&p.Availability,
		&p.Price,
		&p.ExTaxPrice,
		&p.ImageCount,
		&p.Description,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}
