//go:build e2e

package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSearch tests catalog search result counts
// Feature: Product search
//
//	As a customer
//	I want to search the catalog
//	So that I can find products by name
func TestSearch(t *testing.T) {
	tagged(t, "@search", "@sanity")

	tests := []struct {
		key  string
		want int
	}{
		{"macbook", 3},
		{"samsung", 2},
		{"imac", 1},
		{"canon", 1},
		{"NokiaDummy", 0},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			// Scenario Outline: Search for <key>
			//   Given I am logged in
			//   When I search for "<key>"
			//   Then I should see <want> results
			home := homePage(t)

			results, err := home.DoSearch(tt.key)
			require.NoError(t, err)

			count, err := results.ResultsCount()
			require.NoError(t, err)
			assert.Equal(t, tt.want, count)
			assert.Equal(t, tt.key, results.SearchKey())
		})
	}
}

// TestSearch_Idempotent tests that repeating a search changes nothing
// Feature: Product search
func TestSearch_Idempotent(t *testing.T) {
	tagged(t, "@search")

	// Scenario: Search twice for the same key
	//   Given I am logged in
	//   When I search for "macbook" twice
	//   Then both searches show the same number of results
	home := homePage(t)

	first, err := home.DoSearch("macbook")
	require.NoError(t, err)
	firstCount, err := first.ResultsCount()
	require.NoError(t, err)

	second, err := home.DoSearch("macbook")
	require.NoError(t, err)
	secondCount, err := second.ResultsCount()
	require.NoError(t, err)

	assert.Equal(t, firstCount, secondCount)
}

// TestSearch_Consecutive tests that each search shows its own results
// Feature: Product search
func TestSearch_Consecutive(t *testing.T) {
	tagged(t, "@search")

	// Scenario: Search for one key, then another
	//   Given I am logged in
	//   When I search for "macbook" and then for "samsung"
	//   Then the first search shows 3 results
	//   And the second search shows 2 results
	home := homePage(t)

	macbook, err := home.DoSearch("macbook")
	require.NoError(t, err)
	macbookCount, err := macbook.ResultsCount()
	require.NoError(t, err)
	assert.Equal(t, 3, macbookCount)

	samsung, err := home.DoSearch("samsung")
	require.NoError(t, err)
	samsungCount, err := samsung.ResultsCount()
	require.NoError(t, err)
	assert.Equal(t, 2, samsungCount)
}
