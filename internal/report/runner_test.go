package report

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/foodwaste/internal/model"
	"github.com/roach88/foodwaste/internal/store"
	"github.com/roach88/foodwaste/internal/testutil"
)

func TestRun_FixtureResults(t *testing.T) {
	r := NewRunner(testutil.NewSeededStore(t))
	ctx := context.Background()

	tests := []struct {
		id     ReportID
		params Params
		want   []Row
	}{
		{ProvidersPerCity, nil, []Row{
			{"Austin", int64(2)}, {"Dallas", int64(1)}, {"Houston", int64(1)},
		}},
		{ReceiversPerCity, nil, []Row{
			{"Dallas", int64(2)}, {"Austin", int64(1)}, {"Houston", int64(1)},
		}},
		{TopProviderTypeByFood, nil, []Row{
			{"Restaurant", int64(75)}, {"Grocery Store", int64(30)}, {"Supermarket", int64(10)},
		}},
		{ProviderContactByCity, Params{ParamCity: "Austin"}, []Row{
			{"Bistro Uno", "Austin", "555-0101"}, {"Green Grocer", "Austin", "555-0102"},
		}},
		{TopReceiversByClaims, nil, []Row{
			{"Food Bank A", "Austin", int64(4)},
			{"Shelter B", "Dallas", int64(3)},
			{"Church C", "Houston", int64(0)},
			{"Pantry D", "Dallas", int64(0)},
		}},
		{TotalQuantityAvailable, nil, []Row{{int64(115)}}},
		{CityWithMostListings, nil, []Row{{"Austin", int64(3)}}},
		{MostCommonFoodTypes, nil, []Row{
			{"Vegan", int64(2)}, {"Vegetarian", int64(2)}, {"Non-Vegetarian", int64(1)},
		}},
		{ClaimsPerFoodItem, nil, []Row{
			{int64(1), "Vegetarian", int64(2)},
			{int64(3), "Non-Vegetarian", int64(2)},
			{int64(2), "Vegetarian", int64(1)},
			{int64(4), "Vegan", int64(1)},
			{int64(5), "Vegan", int64(0)},
		}},
		{ProviderWithMostSuccessfulClaims, nil, []Row{{"Bistro Uno", int64(2)}}},
		{AvgClaimedQuantityPerReceiver, nil, []Row{
			{"Food Bank A", 27.5}, {"Shelter B", 35.0},
		}},
		{MostClaimedMealType, nil, []Row{{"Dinner", int64(4)}}},
		{TotalDonatedPerProvider, nil, []Row{
			{"Bistro Uno", int64(70)}, {"Green Grocer", int64(30)}, {"Fresh Mart", int64(10)},
		}},
		{ClaimsPerCity, nil, []Row{{"Austin", int64(4)}, {"Dallas", int64(3)}}},
	}

	for _, tt := range tests {
		t.Run(tt.id.Slug(), func(t *testing.T) {
			table, err := r.Run(ctx, tt.id, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.id.String(), table.Title)
			assert.False(t, table.EmptyDataset)
			assert.Equal(t, tt.want, table.Rows)
		})
	}
}

func TestRun_ClaimStatusDistribution(t *testing.T) {
	r := NewRunner(testutil.NewSeededStore(t))

	table, err := r.Run(context.Background(), ClaimStatusDistribution, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"Status", "percentage"}, table.Columns)
	require.Len(t, table.Rows, 3)

	want := []struct {
		status string
		pct    float64
	}{
		{"Cancelled", 14.29},
		{"Pending", 28.57},
		{"Successful", 57.14},
	}
	var sum float64
	for i, w := range want {
		assert.Equal(t, w.status, table.Rows[i][0])
		pct, ok := table.Rows[i][1].(float64)
		require.True(t, ok, "percentage is %T", table.Rows[i][1])
		assert.InDelta(t, w.pct, pct, 0.001)
		sum += pct
	}
	assert.InDelta(t, 100.0, sum, 0.05)
}

func TestRun_ClaimStatusDistribution_NoClaims(t *testing.T) {
	s := testutil.NewStore(t)
	batch := testutil.FixtureBatch()
	batch.Claims = nil
	_, err := s.Import(context.Background(), batch)
	require.NoError(t, err)

	table, err := NewRunner(s).Run(context.Background(), ClaimStatusDistribution, nil)
	require.NoError(t, err)
	assert.False(t, model.IsEmptyDataset(err))
	assert.True(t, table.EmptyDataset)
	assert.Empty(t, table.Rows)
	assert.NotNil(t, table.Rows)
	assert.Equal(t, []string{"Status", "percentage"}, table.Columns)
}

func TestRun_EmptyResultIsNotEmptyDataset(t *testing.T) {
	r := NewRunner(testutil.NewSeededStore(t))

	table, err := r.Run(context.Background(), ProviderContactByCity, Params{ParamCity: "Nowhere"})
	require.NoError(t, err)
	assert.False(t, table.EmptyDataset)
	assert.Empty(t, table.Rows)
	assert.Equal(t, []string{"Name", "City", "Contact"}, table.Columns)
}

func TestRun_TotalQuantityAtMaxQuantity(t *testing.T) {
	s := testutil.NewStore(t)
	ctx := context.Background()
	n := model.NewListing{Name: "Rice", Quantity: model.MaxQuantity, ExpiryDate: "2025-06-01", ProviderID: 1}
	for i := 0; i < 2; i++ {
		_, err := s.CreateListing(ctx, n)
		require.NoError(t, err)
	}

	table, err := NewRunner(s).Run(ctx, TotalQuantityAvailable, nil)
	require.NoError(t, err)
	assert.Equal(t, []Row{{2 * model.MaxQuantity}}, table.Rows)

	n.Quantity = math.MaxInt64
	_, err = s.CreateListing(ctx, n)
	assert.True(t, model.IsValidation(err), "got %v", err)
}

func TestRun_TotalQuantityOnEmptyStore(t *testing.T) {
	r := NewRunner(testutil.NewStore(t))

	table, err := r.Run(context.Background(), TotalQuantityAvailable, nil)
	require.NoError(t, err)
	assert.Equal(t, []Row{{int64(0)}}, table.Rows)
}

func TestRun_TotalQuantityMatchesListings(t *testing.T) {
	s := testutil.NewSeededStore(t)
	r := NewRunner(s)
	ctx := context.Background()

	listings, err := s.ListListings(ctx)
	require.NoError(t, err)
	var sum int64
	for _, l := range listings {
		sum += l.Quantity
	}

	for i := 0; i < 2; i++ {
		table, err := r.Run(ctx, TotalQuantityAvailable, nil)
		require.NoError(t, err)
		assert.Equal(t, []Row{{sum}}, table.Rows)
	}
}

func TestRun_MissingRelation(t *testing.T) {
	r := NewRunner(testutil.NewStore(t))
	ctx := context.Background()

	tests := []struct {
		id    ReportID
		table string
	}{
		{ProvidersPerCity, "providers"},
		{ReceiversPerCity, "receivers"},
		{ClaimsPerFoodItem, "claims"},
		{ClaimStatusDistribution, "claims"},
		{CityWithMostListings, "providers"},
	}
	for _, tt := range tests {
		t.Run(tt.id.Slug(), func(t *testing.T) {
			_, err := r.Run(ctx, tt.id, nil)
			require.Error(t, err)
			assert.True(t, model.IsMissingRelation(err), "got %v", err)

			var e *model.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.table, e.Target)
		})
	}
}

func TestRun_ListingOnlyReportsWorkWithoutReferenceData(t *testing.T) {
	s := testutil.NewStore(t)
	_, err := s.CreateListing(context.Background(), model.NewListing{
		Name: "Rice", Quantity: 50, ExpiryDate: "2025-06-01", ProviderID: 1,
		ProviderType: "Restaurant", City: "Austin", FoodType: "Grain", MealType: "Dinner",
	})
	require.NoError(t, err)

	r := NewRunner(s)
	for _, id := range []ReportID{TopProviderTypeByFood, TotalQuantityAvailable, MostCommonFoodTypes} {
		_, err := r.Run(context.Background(), id, nil)
		assert.NoError(t, err, id.String())
	}
}

func TestRun_Params(t *testing.T) {
	r := NewRunner(testutil.NewSeededStore(t))
	ctx := context.Background()

	tests := []struct {
		name   string
		id     ReportID
		params Params
		field  string
	}{
		{"missing required", ProviderContactByCity, nil, ParamCity},
		{"blank required", ProviderContactByCity, Params{ParamCity: "   "}, ParamCity},
		{"unknown name", ProviderContactByCity, Params{ParamCity: "Austin", "state": "TX"}, "state"},
		{"param on parameterless report", ProvidersPerCity, Params{ParamCity: "Austin"}, ParamCity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Run(ctx, tt.id, tt.params)
			require.Error(t, err)
			assert.True(t, model.IsValidation(err), "got %v", err)

			var e *model.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.field, e.Target)
		})
	}
}

func TestBindParams_UndeclaredQueryParam(t *testing.T) {
	def, ok := Lookup(ProviderContactByCity)
	require.True(t, ok)
	def.Params = nil

	_, err := bindParams(def, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `undeclared parameter "city"`)
	assert.Empty(t, model.CodeOf(err))
}

func TestBindParams_CatalogIsConsistent(t *testing.T) {
	for _, id := range All() {
		def, ok := Lookup(id)
		require.True(t, ok)

		params := Params{}
		for _, p := range def.Params {
			params[p.Name] = "Austin"
		}
		bound, err := bindParams(def, params)
		require.NoError(t, err, id.String())
		assert.Len(t, bound, len(def.Params), id.String())
	}
}

func TestRun_InvalidID(t *testing.T) {
	r := NewRunner(testutil.NewSeededStore(t))

	_, err := r.Run(context.Background(), ReportID(99), nil)
	require.Error(t, err)
	assert.True(t, model.IsValidation(err))
}

func TestRun_ParamIsNotInterpolated(t *testing.T) {
	r := NewRunner(testutil.NewSeededStore(t))

	table, err := r.Run(context.Background(), ProviderContactByCity, Params{ParamCity: "Austin' OR '1'='1"})
	require.NoError(t, err)
	assert.Empty(t, table.Rows)
}

func TestRun_ParamIsNormalized(t *testing.T) {
	r := NewRunner(testutil.NewSeededStore(t))

	table, err := r.Run(context.Background(), ProviderContactByCity, Params{ParamCity: "  Dallas "})
	require.NoError(t, err)
	assert.Equal(t, []Row{{"Fresh Mart", "Dallas", "555-0103"}}, table.Rows)
}

func TestRun_DanglingClaimsAffectCountsSilently(t *testing.T) {
	s := testutil.NewSeededStore(t)
	r := NewRunner(s)
	ctx := context.Background()

	// Deleting listing 1 leaves claims 1 and 2 dangling. Dinner drops to a
	// tie with Breakfast, which wins on name.
	require.NoError(t, s.DeleteListing(ctx, 1))

	table, err := r.Run(ctx, MostClaimedMealType, nil)
	require.NoError(t, err)
	assert.Equal(t, []Row{{"Breakfast", int64(2)}}, table.Rows)

	table, err = r.Run(ctx, ClaimsPerCity, nil)
	require.NoError(t, err)
	assert.Equal(t, []Row{{"Austin", int64(4)}, {"Dallas", int64(3)}}, table.Rows)
}

func TestRun_ClosedStore(t *testing.T) {
	s, err := store.Open(t.TempDir() + "/closed.db")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = NewRunner(s).Run(context.Background(), TotalQuantityAvailable, nil)
	require.Error(t, err)
	assert.True(t, model.IsStoreUnavailable(err), "got %v", err)
}

func TestTable_Helpers(t *testing.T) {
	table := Table{
		Columns: []string{"City", "total"},
		Rows:    []Row{{"Austin", int64(2)}},
	}
	assert.Equal(t, 1, table.Len())
	assert.Equal(t, 0, Table{}.Len())
}
