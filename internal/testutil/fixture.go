// Package testutil provides fixtures shared by package tests: a small
// reference dataset with known report results and helpers that open
// throwaway stores.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/foodwaste/internal/model"
	"github.com/roach88/foodwaste/internal/store"
)

// FixtureBatch returns the reference dataset.
//
// Shape worth knowing when reading expected results:
//   - provider 4 (Houston) has no listings
//   - listing 5 belongs to provider 99, who does not exist
//   - listing 5 has no claims
//   - claim 6 points at listing 42, which does not exist
//   - receivers 3 and 4 have no claims
func FixtureBatch() store.Batch {
	return store.Batch{
		Providers: []model.Provider{
			{ID: 1, Name: "Bistro Uno", Type: "Restaurant", Address: "1 Main St", City: "Austin", Contact: "555-0101"},
			{ID: 2, Name: "Green Grocer", Type: "Grocery Store", Address: "2 Oak Ave", City: "Austin", Contact: "555-0102"},
			{ID: 3, Name: "Fresh Mart", Type: "Supermarket", Address: "3 Elm St", City: "Dallas", Contact: "555-0103"},
			{ID: 4, Name: "Idle Farm", Type: "Grocery Store", Address: "4 Farm Rd", City: "Houston", Contact: "555-0104"},
		},
		Receivers: []model.Receiver{
			{ID: 1, Name: "Food Bank A", Type: "NGO", City: "Austin", Contact: "555-0201"},
			{ID: 2, Name: "Shelter B", Type: "Shelter", City: "Dallas", Contact: "555-0202"},
			{ID: 3, Name: "Church C", Type: "Charity", City: "Houston", Contact: "555-0203"},
			{ID: 4, Name: "Pantry D", Type: "NGO", City: "Dallas", Contact: "555-0204"},
		},
		Listings: []model.FoodListing{
			{ID: 1, Name: "Rice", Quantity: 50, ExpiryDate: "2025-06-01", ProviderID: 1, ProviderType: "Restaurant", Location: "Austin", FoodType: "Vegetarian", MealType: "Dinner"},
			{ID: 2, Name: "Bread", Quantity: 30, ExpiryDate: "2025-05-20", ProviderID: 2, ProviderType: "Grocery Store", Location: "Austin", FoodType: "Vegetarian", MealType: "Breakfast"},
			{ID: 3, Name: "Chicken", Quantity: 20, ExpiryDate: "2025-05-25", ProviderID: 1, ProviderType: "Restaurant", Location: "Austin", FoodType: "Non-Vegetarian", MealType: "Dinner"},
			{ID: 4, Name: "Milk", Quantity: 10, ExpiryDate: "2025-05-18", ProviderID: 3, ProviderType: "Supermarket", Location: "Dallas", FoodType: "Vegan", MealType: "Breakfast"},
			{ID: 5, Name: "Soup", Quantity: 5, ExpiryDate: "2025-05-30", ProviderID: 99, ProviderType: "Restaurant", Location: "Houston", FoodType: "Vegan", MealType: "Dinner"},
		},
		Claims: []model.Claim{
			{ID: 1, FoodID: 1, ReceiverID: 1, Status: model.ClaimSuccessful, Timestamp: "2025-05-10 09:00:00"},
			{ID: 2, FoodID: 1, ReceiverID: 2, Status: model.ClaimPending, Timestamp: "2025-05-10 10:00:00"},
			{ID: 3, FoodID: 2, ReceiverID: 1, Status: model.ClaimSuccessful, Timestamp: "2025-05-11 09:30:00"},
			{ID: 4, FoodID: 3, ReceiverID: 2, Status: model.ClaimCancelled, Timestamp: "2025-05-12 14:00:00"},
			{ID: 5, FoodID: 4, ReceiverID: 1, Status: model.ClaimSuccessful, Timestamp: "2025-05-13 08:15:00"},
			{ID: 6, FoodID: 42, ReceiverID: 2, Status: model.ClaimPending, Timestamp: "2025-05-14 11:45:00"},
			{ID: 7, FoodID: 3, ReceiverID: 1, Status: model.ClaimSuccessful, Timestamp: "2025-05-15 16:20:00"},
		},
		Contacts: []model.Contact{
			{ID: 1, Name: "Dana Ortiz", Role: "Coordinator", Organization: "Food Bank A", Email: "dana@example.org", City: "Austin"},
		},
	}
}

// NewStore opens an empty store with the owned tables created. The store is
// closed when the test ends.
func NewStore(t testing.TB) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.EnsureSchema(context.Background()))
	return s
}

// NewSeededStore opens a store loaded with FixtureBatch.
func NewSeededStore(t testing.TB) *store.Store {
	t.Helper()
	s := NewStore(t)
	_, err := s.Import(context.Background(), FixtureBatch())
	require.NoError(t, err)
	return s
}
