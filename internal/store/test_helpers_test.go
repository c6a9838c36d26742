package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/foodwaste/internal/model"
)

// createTestStore opens a fresh store in a temp dir with the schema applied.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.EnsureSchema(context.Background()))
	return s
}

// createTestListing returns a valid listing with the given name, city and quantity.
func createTestListing(name, city string, qty int64) model.NewListing {
	return model.NewListing{
		Name:         name,
		Quantity:     qty,
		ExpiryDate:   "2025-06-01",
		ProviderID:   1,
		ProviderType: "Restaurant",
		City:         city,
		FoodType:     "Grain",
		MealType:     "Dinner",
	}
}

func countRows(t *testing.T, s *Store, table string) int {
	t.Helper()
	var n int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}
