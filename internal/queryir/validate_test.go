package queryir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func claimsPerFood() Select {
	return Select{
		From: Source{Table: "food_listings", Alias: "f"},
		Joins: []Join{{
			Kind:   JoinLeft,
			Source: Source{Table: "claims", Alias: "c"},
			On:     FieldEquals{Left: F("f", "Food_ID"), Right: F("c", "Food_ID")},
		}},
		Columns: []Column{
			{Expr: F("f", "Food_ID"), As: "Food_ID"},
			{Expr: Count{Arg: &Field{Source: "c", Name: "Claim_ID"}}, As: "total_claims"},
		},
		GroupBy: []Field{F("f", "Food_ID")},
		OrderBy: []Order{{Expr: ColumnRef{Name: "total_claims"}, Desc: true}},
	}
}

func TestValidate_WellFormedQuery(t *testing.T) {
	result := Validate(claimsPerFood())
	assert.True(t, result.OK(), "unexpected problems: %v", result.Problems)
}

func TestValidate_JoinWithoutKind(t *testing.T) {
	q := claimsPerFood()
	q.Joins[0].Kind = JoinUnspecified

	result := Validate(q)
	require.False(t, result.OK())
	assert.Contains(t, result.Problems[0], "no explicit kind")
}

func TestValidate_Problems(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Select)
		want   string
	}{
		{"missing ON", func(q *Select) { q.Joins[0].On = nil }, "no ON predicate"},
		{"no columns", func(q *Select) { q.Columns = nil }, "selects no columns"},
		{"unnamed column", func(q *Select) { q.Columns[0].As = "" }, "has no result name"},
		{"duplicate column", func(q *Select) { q.Columns[1].As = "Food_ID" }, "duplicate result column"},
		{"undeclared source", func(q *Select) { q.GroupBy = []Field{F("p", "City")} }, "undeclared source"},
		{"unknown order column", func(q *Select) { q.OrderBy[0].Expr = ColumnRef{Name: "nope"} }, "unknown column"},
		{"duplicate alias", func(q *Select) { q.Joins[0].Source.Alias = "f" }, "duplicate source reference"},
		{"float literal", func(q *Select) { q.Filter = Equals{Field: F("f", "Quantity"), Value: 1.5} }, "unsupported type"},
		{"unnamed param", func(q *Select) { q.Filter = Param{Field: F("f", "Location")} }, "has no name"},
		{"negative limit", func(q *Select) { q.Limit = -1 }, "negative limit"},
		{"column ref in select", func(q *Select) { q.Columns[0].Expr = ColumnRef{Name: "x"} }, "outside ORDER BY"},
		{"count distinct star", func(q *Select) { q.Columns[1].Expr = Count{Distinct: true} }, "COUNT(DISTINCT *)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := claimsPerFood()
			tt.mutate(&q)
			result := Validate(q)
			require.False(t, result.OK())
			assert.Contains(t, joinProblems(result.Problems), tt.want)
		})
	}
}

func joinProblems(problems []string) string {
	out := ""
	for _, p := range problems {
		out += p + "\n"
	}
	return out
}

func TestJoinKind_String(t *testing.T) {
	assert.Equal(t, "INNER JOIN", JoinInner.String())
	assert.Equal(t, "LEFT JOIN", JoinLeft.String())
	assert.Equal(t, "JOIN(unspecified)", JoinUnspecified.String())
}

func TestSource_Ref(t *testing.T) {
	assert.Equal(t, "f", Source{Table: "food_listings", Alias: "f"}.Ref())
	assert.Equal(t, "claims", Source{Table: "claims"}.Ref())
}
