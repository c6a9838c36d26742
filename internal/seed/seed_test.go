package seed

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/foodwaste/internal/model"
	"github.com/roach88/foodwaste/internal/store"
	"github.com/roach88/foodwaste/internal/testutil"
)

func TestLoadFile_Fixture(t *testing.T) {
	d, err := LoadFile("testdata/fixture.yaml")
	require.NoError(t, err)

	assert.Equal(t, testutil.FixtureBatch(), d.Batch())
}

func TestLoadFile_PartialDataset(t *testing.T) {
	d, err := LoadFile("testdata/reference-only.yaml")
	require.NoError(t, err)

	assert.Len(t, d.Providers, 1)
	assert.Len(t, d.Receivers, 1)
	assert.Empty(t, d.Claims)
	assert.Empty(t, d.Listings)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile("testdata/does-not-exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read dataset")
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "empty file",
			yaml: "",
			want: "dataset is empty",
		},
		{
			name: "unknown section",
			yaml: "suppliers: []\n",
			want: "parse YAML",
		},
		{
			name: "unknown field",
			yaml: "providers:\n  - {Provider_ID: 1, Name: A, City: Austin, Phone: x}\n",
			want: "parse YAML",
		},
		{
			name: "bad claim status",
			yaml: "claims:\n  - {Claim_ID: 1, Food_ID: 1, Receiver_ID: 1, Status: Lost}\n",
			want: "does not match schema",
		},
		{
			name: "zero id",
			yaml: "receivers:\n  - {Receiver_ID: 0, Name: A, City: Austin}\n",
			want: "does not match schema",
		},
		{
			name: "negative quantity",
			yaml: "listings:\n  - {Food_ID: 1, Food_Name: Rice, Quantity: -1, Expiry_Date: \"2025-06-01\", Provider_ID: 1}\n",
			want: "does not match schema",
		},
		{
			name: "quantity above max",
			yaml: "listings:\n  - {Food_ID: 1, Food_Name: Rice, Quantity: 1000000001, Expiry_Date: \"2025-06-01\", Provider_ID: 1}\n",
			want: "does not match schema",
		},
		{
			name: "bad expiry format",
			yaml: "listings:\n  - {Food_ID: 1, Food_Name: Rice, Quantity: 1, Expiry_Date: \"June 1\", Provider_ID: 1}\n",
			want: "does not match schema",
		},
		{
			name: "unnamed contact",
			yaml: "contacts:\n  - {Contact_ID: 1, City: Austin}\n",
			want: "does not match schema",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.yaml), "inline.yaml")
			require.Error(t, err)
			assert.True(t, model.IsValidation(err), "got %v", err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Contains(t, err.Error(), "inline.yaml")
		})
	}
}

func TestValidate_EmptyDataset(t *testing.T) {
	assert.NoError(t, Validate(Dataset{}))
}

func TestApply_Idempotent(t *testing.T) {
	s := testutil.NewStore(t)
	ctx := context.Background()

	d, err := LoadFile("testdata/fixture.yaml")
	require.NoError(t, err)

	res, err := Apply(ctx, s, d)
	require.NoError(t, err)
	assert.Equal(t, store.ImportResult{Providers: 4, Receivers: 4, Claims: 7, Listings: 5, Contacts: 1}, res)

	res, err = Apply(ctx, s, d)
	require.NoError(t, err)
	assert.Equal(t, store.ImportResult{}, res)

	listings, err := s.ListListings(ctx)
	require.NoError(t, err)
	assert.Len(t, listings, 5)
}
