package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencart-qa/storefront-e2e/internal/models"
	"github.com/opencart-qa/storefront-e2e/internal/repository/testutil"
)

func seedProducts(t *testing.T, repo *ProductRepository, names ...string) {
	t.Helper()
	for i, name := range names {
		p := &models.Product{
			ID:           int64(i + 1),
			Name:         name,
			Model:        "Product " + name,
			Availability: models.StockInStock,
			Price:        1000,
			ExTaxPrice:   800,
			ImageCount:   1,
		}
		require.NoError(t, repo.SaveProduct(p))
	}
}

func TestProductRepository_SaveAndGet(t *testing.T) {
	// GIVEN
	testDB := testutil.SetupTestDatabase(t)
	repo := NewProductRepository(testDB.DB)

	product := &models.Product{
		ID:           45,
		Name:         "MacBook Pro",
		Brand:        "Apple",
		Model:        "Product 18",
		RewardPoints: 800,
		Availability: models.StockOutOfStock,
		Price:        200000,
		ExTaxPrice:   200000,
		ImageCount:   4,
	}

	// WHEN
	require.NoError(t, repo.SaveProduct(product))
	got, err := repo.GetProduct(45)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, product, got)
}

func TestProductRepository_SaveReplaces(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewProductRepository(testDB.DB)
	seedProducts(t, repo, "iMac")

	updated := &models.Product{ID: 1, Name: "iMac", Model: "Product 14", Availability: models.StockPreOrder, Price: 12200, ExTaxPrice: 10000, ImageCount: 3}
	require.NoError(t, repo.SaveProduct(updated))

	got, err := repo.GetProduct(1)
	require.NoError(t, err)
	assert.Equal(t, models.StockPreOrder, got.Availability)
	assert.Equal(t, 3, got.ImageCount)
}

func TestProductRepository_GetProduct_NotFound(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewProductRepository(testDB.DB)

	_, err := repo.GetProduct(999)

	assert.ErrorIs(t, err, models.ErrProductNotFound)
}

func TestProductRepository_SearchProducts(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewProductRepository(testDB.DB)
	seedProducts(t, repo, "MacBook Pro", "MacBook", "iMac", "MacBook Air", "Samsung Galaxy Tab 10.1", "Samsung SyncMaster 941BW", "Canon EOS 5D")

	tests := []struct {
		key  string
		want []string
	}{
		{"macbook", []string{"MacBook", "MacBook Air", "MacBook Pro"}},
		{"MACBOOK PRO", []string{"MacBook Pro"}},
		{"samsung", []string{"Samsung Galaxy Tab 10.1", "Samsung SyncMaster 941BW"}},
		{"imac", []string{"iMac"}},
		{"canon", []string{"Canon EOS 5D"}},
		{"NokiaDummy", nil},
		{"%", nil},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			products, err := repo.SearchProducts(tt.key)
			require.NoError(t, err)

			var names []string
			for _, p := range products {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}
