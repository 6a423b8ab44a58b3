package services

import (
	"fmt"
	"strings"

	"github.com/opencart-qa/storefront-e2e/internal/models"
)

// ProductRepository defines the interface for catalog persistence
type ProductRepository interface {
	SaveProduct(p *models.Product) error
	GetProduct(id int64) (*models.Product, error)
	SearchProducts(key string) ([]models.Product, error)
}

// CatalogService handles catalog browsing
type CatalogService interface {
	Seed(products []models.Product) error
	Search(key string) ([]models.Product, error)
	Product(id int64) (*models.Product, error)
}

// CatalogServiceImpl implements CatalogService
type CatalogServiceImpl struct {
	productRepo ProductRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(productRepo ProductRepository) CatalogService {
	return &CatalogServiceImpl{
		productRepo: productRepo,
	}
}

// Seed validates and stores products, replacing existing entries.
func (s *CatalogServiceImpl) Seed(products []models.Product) error {
	for i := range products {
		p := products[i]
		if err := p.Validate(); err != nil {
			return fmt.Errorf("invalid product %q: %w", p.Name, err)
		}
		if err := s.productRepo.SaveProduct(&p); err != nil {
			return err
		}
	}
	return nil
}

// Search returns the products matching key. A blank key matches nothing.
func (s *CatalogServiceImpl) Search(key string) ([]models.Product, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, nil
	}
	products, err := s.productRepo.SearchProducts(key)
	if err != nil {
		return nil, fmt.Errorf("failed to search catalog: %w", err)
	}
	return products, nil
}

// Product returns one product by ID.
func (s *CatalogServiceImpl) Product(id int64) (*models.Product, error) {
	return s.productRepo.GetProduct(id)
}

// DemoCatalog is the catalog the stub storefront starts with, matching the
// OpenCart demo store entries the suite navigates.
func DemoCatalog() []models.Product {
	return []models.Product{
		{ID: 30, Name: "Canon EOS 5D", Brand: "Canon", Model: "Product 3", RewardPoints: 200, Availability: models.Stock2To3Days, Price: 9800, ExTaxPrice: 8000, ImageCount: 3},
		{ID: 33, Name: "Samsung SyncMaster 941BW", Model: "Product 6", Availability: models.Stock2To3Days, Price: 24200, ExTaxPrice: 20000, ImageCount: 2},
		{ID: 40, Name: "iPhone", Brand: "Apple", Model: "product 11", Availability: models.StockInStock, Price: 12320, ExTaxPrice: 10100, ImageCount: 6},
		{ID: 41, Name: "iMac", Brand: "Apple", Model: "Product 14", RewardPoints: 100, Availability: models.StockOutOfStock, Price: 12200, ExTaxPrice: 10000, ImageCount: 3},
		{ID: 43, Name: "MacBook", Brand: "Apple", Model: "Product 16", RewardPoints: 600, Availability: models.StockInStock, Price: 60200, ExTaxPrice: 50000, ImageCount: 5},
		{ID: 44, Name: "MacBook Air", Brand: "Apple", Model: "Product 17", RewardPoints: 700, Availability: models.StockOutOfStock, Price: 120200, ExTaxPrice: 100000, ImageCount: 4},
		{ID: 45, Name: "MacBook Pro", Brand: "Apple", Model: "Product 18", RewardPoints: 800, Availability: models.StockOutOfStock, Price: 200000, ExTaxPrice: 200000, ImageCount: 4},
		{ID: 49, Name: "Samsung Galaxy Tab 10.1", Model: "SAM1", RewardPoints: 1000, Availability: models.StockPreOrder, Price: 24199, ExTaxPrice: 19999, ImageCount: 7},
	}
}
