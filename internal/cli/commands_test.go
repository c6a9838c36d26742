package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/foodwaste/internal/model"
	"github.com/roach88/foodwaste/internal/store"
	"github.com/roach88/foodwaste/internal/testutil"
)

// runCLI executes the root command against db and returns stdout.
func runCLI(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()

	buf := &bytes.Buffer{}
	cmd := NewRootCommandWithOptions(&RootOptions{Traces: testutil.NewFixedTraceGenerator("trace-fixed")})
	cmd.SetOut(buf)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--db", db}, args...))

	err := cmd.Execute()
	return buf.String(), err
}

// emptyDB returns a path for a database that does not exist yet.
func emptyDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "food_waste.db")
}

// seededDB returns a database loaded with the fixture dataset.
func seededDB(t *testing.T) string {
	t.Helper()
	return importedDB(t, testutil.FixtureBatch())
}

func importedDB(t *testing.T, b store.Batch) string {
	t.Helper()

	path := emptyDB(t)
	st, err := store.Open(path)
	require.NoError(t, err)
	_, err = st.Import(context.Background(), b)
	require.NoError(t, err)
	require.NoError(t, st.Close())
	return path
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

// decodeData decodes the data field of a JSON success response.
func decodeData(t *testing.T, out string, v any) {
	t.Helper()

	var resp struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, "ok", resp.Status)
	require.NoError(t, json.Unmarshal(resp.Data, v))
}

func TestInitCommand(t *testing.T) {
	db := emptyDB(t)

	out, err := runCLI(t, db, "init")
	require.NoError(t, err)
	assert.Equal(t, "Schema ready: "+db+"\n", out)

	// Second run leaves the schema alone.
	_, err = runCLI(t, db, "init")
	require.NoError(t, err)

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()
	for _, table := range []string{"food_listings", "contacts"} {
		ok, err := st.HasRelation(context.Background(), table)
		require.NoError(t, err)
		assert.True(t, ok, table)
	}
}

func TestInitCommand_UnopenableStore(t *testing.T) {
	db := filepath.Join(t.TempDir(), "missing", "dir", "food_waste.db")

	out, err := runCLI(t, db, "init")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.True(t, IsReported(err))
	assert.Contains(t, out, "Error [E201]")
}

func TestSeedCommand(t *testing.T) {
	db := emptyDB(t)
	dataset := "../seed/testdata/fixture.yaml"

	out, err := runCLI(t, db, "seed", dataset)
	require.NoError(t, err)
	assert.Equal(t, "Imported 4 providers, 4 receivers, 7 claims, 5 listings, 1 contacts from "+dataset+"\n", out)

	// Re-importing inserts nothing.
	out, err = runCLI(t, db, "--format", "json", "seed", dataset)
	require.NoError(t, err)
	var res store.ImportResult
	decodeData(t, out, &res)
	assert.Equal(t, store.ImportResult{}, res)

	out, err = runCLI(t, db, "report", "run", "providers-per-city")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "report_providers_per_city", []byte(out))
}

func TestSeedCommand_InvalidDataset(t *testing.T) {
	dataset := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(dataset, []byte("listings:\n  - {Food_ID: 1, Quantity: -3}\n"), 0o644))

	out, err := runCLI(t, emptyDB(t), "seed", dataset)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [E202]")
}

func TestListingCommands_CRUD(t *testing.T) {
	db := seededDB(t)

	out, err := runCLI(t, db, "--format", "json", "listing", "add",
		"--name", "Pasta", "--quantity", "12", "--expiry", "2025-06-10",
		"--provider-id", "2", "--provider-type", "Grocery Store",
		"--city", "Dallas", "--food-type", "Vegan", "--meal-type", "Lunch")
	require.NoError(t, err)
	var created map[string]int64
	decodeData(t, out, &created)
	id := created["food_id"]
	assert.Greater(t, id, int64(5))

	idArg := jsonInt(id)

	out, err = runCLI(t, db, "listing", "update", idArg, "--quantity", "0", "--city", "Houston")
	require.NoError(t, err)
	assert.Equal(t, "Updated listing "+idArg+"\n", out)

	out, err = runCLI(t, db, "--format", "json", "listing", "list", "--city", "Houston")
	require.NoError(t, err)
	var listings []model.FoodListing
	decodeData(t, out, &listings)
	require.Len(t, listings, 2)
	assert.Equal(t, "Soup", listings[0].Name)
	assert.Equal(t, model.FoodListing{
		ID: id, Name: "Pasta", Quantity: 0, ExpiryDate: "2025-06-10",
		ProviderID: 2, ProviderType: "Grocery Store", Location: "Houston",
		FoodType: "Vegan", MealType: "Lunch",
	}, listings[1])

	out, err = runCLI(t, db, "listing", "delete", idArg)
	require.NoError(t, err)
	assert.Equal(t, "Deleted listing "+idArg+"\n", out)

	out, err = runCLI(t, db, "listing", "list")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "listing_list", []byte(out))
}

func jsonInt(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}

func TestListingListCommand_Filters(t *testing.T) {
	db := seededDB(t)

	out, err := runCLI(t, db, "listing", "list", "--city", "Austin", "--provider-type", "Restaurant")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "listing_list_filtered", []byte(out))

	out, err = runCLI(t, emptyDB(t), "listing", "list")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "listing_list_empty", []byte(out))
}

func TestListingCommands_Errors(t *testing.T) {
	db := seededDB(t)

	tests := []struct {
		name     string
		args     []string
		wantCode string
	}{
		{"add_zero_quantity", []string{"listing", "add", "--name", "Rice", "--quantity", "0", "--provider-id", "1"}, ErrCodeValidation},
		{"add_bad_expiry", []string{"listing", "add", "--name", "Rice", "--quantity", "1", "--provider-id", "1", "--expiry", "June"}, ErrCodeValidation},
		{"update_negative_quantity", []string{"listing", "update", "1", "--quantity", "-1"}, ErrCodeValidation},
		{"update_bad_id", []string{"listing", "update", "abc", "--quantity", "1"}, ErrCodeValidation},
		{"update_missing", []string{"listing", "update", "42", "--quantity", "1"}, ErrCodeNotFound},
		{"delete_missing", []string{"listing", "delete", "42"}, ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, db, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitFailure, GetExitCode(err))
			assert.True(t, IsReported(err))
			assert.Contains(t, out, "Error ["+tt.wantCode+"]")
		})
	}

	out, err := runCLI(t, db, "listing", "delete", "42")
	require.Error(t, err)
	newGoldie(t).Assert(t, "error_not_found", []byte(out))
}

func TestListingAddCommand_MissingRequiredFlag(t *testing.T) {
	_, err := runCLI(t, emptyDB(t), "listing", "add", "--quantity", "5", "--provider-id", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
	assert.False(t, IsReported(err))
}

func TestContactCommands(t *testing.T) {
	db := emptyDB(t)

	out, err := runCLI(t, db, "contact", "add", "--name", "Sam Lee", "--role", "Driver",
		"--organization", "Shelter B", "--email", "sam@example.org", "--city", "Dallas")
	require.NoError(t, err)
	assert.Equal(t, "Created contact 1\n", out)

	out, err = runCLI(t, db, "--format", "json", "contact", "list")
	require.NoError(t, err)
	var contacts []model.Contact
	decodeData(t, out, &contacts)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Sam Lee", contacts[0].Name)
	assert.Equal(t, "Dallas", contacts[0].City)

	out, err = runCLI(t, db, "contact", "add", "--name", "  ")
	require.Error(t, err)
	assert.Contains(t, out, "Error [E202]")
}

func TestReportListCommand(t *testing.T) {
	// report list does not touch the store.
	db := filepath.Join(t.TempDir(), "never", "created.db")

	out, err := runCLI(t, db, "report", "list")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "report_list", []byte(out))
}

func TestReportRunCommand_Golden(t *testing.T) {
	db := seededDB(t)

	tests := []struct {
		golden string
		report string
	}{
		{"report_providers_per_city", "providers-per-city"},
		{"report_claims_per_food_item", "9"},
		{"report_claim_status_distribution", "Claim status distribution"},
		{"report_avg_claimed_qty", "avg-claimed-qty-per-receiver"},
	}

	for _, tt := range tests {
		t.Run(tt.golden, func(t *testing.T) {
			out, err := runCLI(t, db, "report", "run", tt.report)
			require.NoError(t, err)
			newGoldie(t).Assert(t, tt.golden, []byte(out))
		})
	}
}

func TestReportRunCommand_CityParam(t *testing.T) {
	db := seededDB(t)

	out, err := runCLI(t, db, "--format", "json", "report", "run", "provider-contact-by-city", "--city", "Austin")
	require.NoError(t, err)
	var table struct {
		Title   string   `json:"title"`
		Columns []string `json:"columns"`
		Rows    [][]any  `json:"rows"`
	}
	decodeData(t, out, &table)
	assert.Equal(t, []string{"Name", "City", "Contact"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Bistro Uno", table.Rows[0][0])
	assert.Equal(t, "Green Grocer", table.Rows[1][0])

	out, err = runCLI(t, db, "report", "run", "provider-contact-by-city")
	require.Error(t, err)
	assert.Contains(t, out, "Error [E202]")

	out, err = runCLI(t, db, "report", "run", "providers-per-city", "--city", "Austin")
	require.Error(t, err)
	assert.Contains(t, out, "Error [E202]")
}

func TestReportRunCommand_UnknownReport(t *testing.T) {
	out, err := runCLI(t, seededDB(t), "report", "run", "99")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [E202]")
}

func TestReportRunCommand_MissingRelation(t *testing.T) {
	db := emptyDB(t)

	out, err := runCLI(t, db, "--format", "json", "report", "run", "providers-per-city")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	newGoldie(t).Assert(t, "error_missing_relation_json", []byte(out))

	// Reports over food_listings alone still work.
	out, err = runCLI(t, db, "report", "run", "total-quantity-available")
	require.NoError(t, err)
	assert.Contains(t, out, "total_quantity")
}

func TestReportRunCommand_EmptyDataset(t *testing.T) {
	b := testutil.FixtureBatch()
	b.Claims = nil
	db := importedDB(t, b)

	out, err := runCLI(t, db, "report", "run", "claim-status-distribution")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "report_claim_status_distribution_empty", []byte(out))

	out, err = runCLI(t, db, "--format", "json", "report", "run", "claim-status-distribution")
	require.NoError(t, err)
	var table struct {
		Rows         [][]any `json:"rows"`
		EmptyDataset bool    `json:"empty_dataset"`
	}
	decodeData(t, out, &table)
	assert.True(t, table.EmptyDataset)
	assert.Empty(t, table.Rows)
}

func TestDashboardCommand(t *testing.T) {
	db := seededDB(t)

	out, err := runCLI(t, db, "dashboard")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "dashboard", []byte(out))

	out, err = runCLI(t, db, "--format", "json", "dashboard")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "dashboard_json", []byte(out))
}

func TestAnalyticsCommand(t *testing.T) {
	db := seededDB(t)

	out, err := runCLI(t, db, "analytics", "food-type")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "analytics_food_type", []byte(out))

	out, err = runCLI(t, db, "analytics", "color")
	require.Error(t, err)
	assert.Contains(t, out, "Error [E202]")
}

func TestDirectoryCommands(t *testing.T) {
	db := seededDB(t)

	out, err := runCLI(t, db, "directory", "providers")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "directory_providers", []byte(out))

	out, err = runCLI(t, db, "directory", "receivers", "--city", "Dallas")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "directory_receivers_dallas", []byte(out))

	out, err = runCLI(t, db, "directory", "contacts", "--party", "receivers")
	require.NoError(t, err)
	assert.Contains(t, out, "Contacts: receivers")
	assert.Contains(t, out, "Pantry D")

	out, err = runCLI(t, db, "directory", "contacts", "--party", "donors")
	require.Error(t, err)
	assert.Contains(t, out, "Error [E202]")
}
