package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/foodwaste/internal/model"
	"github.com/roach88/foodwaste/internal/queryir"
)

// ReportID identifies one entry of the catalog. The zero value is invalid.
type ReportID int

const (
	ProvidersPerCity ReportID = iota + 1
	ReceiversPerCity
	TopProviderTypeByFood
	ProviderContactByCity
	TopReceiversByClaims
	TotalQuantityAvailable
	CityWithMostListings
	MostCommonFoodTypes
	ClaimsPerFoodItem
	ProviderWithMostSuccessfulClaims
	ClaimStatusDistribution
	AvgClaimedQuantityPerReceiver
	MostClaimedMealType
	TotalDonatedPerProvider
	ClaimsPerCity
)

// ParamCity is the name of the city parameter.
const ParamCity = "city"

// All returns every report in catalog order.
func All() []ReportID {
	ids := make([]ReportID, 0, ClaimsPerCity)
	for id := ProvidersPerCity; id <= ClaimsPerCity; id++ {
		ids = append(ids, id)
	}
	return ids
}

// Names returns the display names of every report in catalog order.
func Names() []string {
	ids := All()
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.String()
	}
	return names
}

// Valid reports whether id names a catalog entry.
func (id ReportID) Valid() bool {
	return id >= ProvidersPerCity && id <= ClaimsPerCity
}

// String returns the display name.
func (id ReportID) String() string {
	switch id {
	case ProvidersPerCity:
		return "Providers per city"
	case ReceiversPerCity:
		return "Receivers per city"
	case TopProviderTypeByFood:
		return "Top provider type by food"
	case ProviderContactByCity:
		return "Provider contact by city"
	case TopReceiversByClaims:
		return "Top receivers by claims"
	case TotalQuantityAvailable:
		return "Total quantity available"
	case CityWithMostListings:
		return "City with most listings"
	case MostCommonFoodTypes:
		return "Most common food types"
	case ClaimsPerFoodItem:
		return "Claims per food item"
	case ProviderWithMostSuccessfulClaims:
		return "Provider with most successful claims"
	case ClaimStatusDistribution:
		return "Claim status distribution"
	case AvgClaimedQuantityPerReceiver:
		return "Avg claimed qty per receiver"
	case MostClaimedMealType:
		return "Most claimed meal type"
	case TotalDonatedPerProvider:
		return "Total donated per provider"
	case ClaimsPerCity:
		return "Claims per city"
	default:
		return fmt.Sprintf("ReportID(%d)", int(id))
	}
}

// Slug returns the command-line name, e.g. "providers-per-city".
func (id ReportID) Slug() string {
	if !id.Valid() {
		return ""
	}
	return strings.ReplaceAll(strings.ToLower(id.String()), " ", "-")
}

// ParseReportID resolves a slug, a display name (case-insensitive) or a
// catalog number ("1".."15").
func ParseReportID(s string) (ReportID, error) {
	key := strings.ToLower(model.NormalizeText(s))
	if n, err := strconv.Atoi(key); err == nil {
		if id := ReportID(n); id.Valid() {
			return id, nil
		}
	}
	for _, id := range All() {
		if key == id.Slug() || key == strings.ToLower(id.String()) {
			return id, nil
		}
	}
	return 0, model.NewValidationError("run report", "report", fmt.Sprintf("unknown report %q", s))
}

// ParamSpec describes one caller-supplied parameter.
type ParamSpec struct {
	Name        string `json:"name"`
	Required    bool   `json:"required"`
	Description string `json:"description"`
}

// Definition is the typed description of a report.
type Definition struct {
	ID     ReportID
	Params []ParamSpec
	Query  queryir.Select
}

// Columns returns the result schema.
func (d Definition) Columns() []string {
	return d.Query.ColumnNames()
}

// Lookup returns the definition for id. ok is false for an invalid id.
func Lookup(id ReportID) (Definition, bool) {
	q, params, ok := definition(id)
	if !ok {
		return Definition{}, false
	}
	return Definition{ID: id, Params: params, Query: q}, true
}

var (
	providers = queryir.Source{Table: "providers", Alias: "p"}
	receivers = queryir.Source{Table: "receivers", Alias: "r"}
	claims    = queryir.Source{Table: "claims", Alias: "c"}
	listings  = queryir.Source{Table: "food_listings", Alias: "f"}
)

func field(src queryir.Source, name string) queryir.Field {
	return queryir.F(src.Alias, name)
}

func col(src queryir.Source, name string) queryir.Column {
	return queryir.Column{Expr: field(src, name), As: name}
}

func countOf(src queryir.Source, name string) queryir.Count {
	f := field(src, name)
	return queryir.Count{Arg: &f}
}

func join(kind queryir.JoinKind, src queryir.Source, left, right queryir.Field) queryir.Join {
	return queryir.Join{Kind: kind, Source: src, On: queryir.FieldEquals{Left: left, Right: right}}
}

func desc(name string) []queryir.Order {
	return []queryir.Order{{Expr: queryir.ColumnRef{Name: name}, Desc: true}}
}

// definition is the catalog. Join kinds are part of each report's meaning:
// a LEFT join keeps zero-claim rows at count 0, an INNER join drops them.
func definition(id ReportID) (queryir.Select, []ParamSpec, bool) {
	switch id {
	case ProvidersPerCity:
		distinct := countOf(providers, "Provider_ID")
		distinct.Distinct = true
		return queryir.Select{
			From: providers,
			Columns: []queryir.Column{
				col(providers, "City"),
				{Expr: distinct, As: "total_providers"},
			},
			GroupBy: []queryir.Field{field(providers, "City")},
			OrderBy: desc("total_providers"),
		}, nil, true

	case ReceiversPerCity:
		return queryir.Select{
			From: receivers,
			Columns: []queryir.Column{
				col(receivers, "City"),
				{Expr: queryir.Count{}, As: "total_receivers"},
			},
			GroupBy: []queryir.Field{field(receivers, "City")},
			OrderBy: desc("total_receivers"),
		}, nil, true

	case TopProviderTypeByFood:
		return queryir.Select{
			From: listings,
			Columns: []queryir.Column{
				col(listings, "Provider_Type"),
				{Expr: queryir.Sum{Arg: field(listings, "Quantity")}, As: "total_quantity"},
			},
			GroupBy: []queryir.Field{field(listings, "Provider_Type")},
			OrderBy: desc("total_quantity"),
		}, nil, true

	case ProviderContactByCity:
		return queryir.Select{
			From: providers,
			Columns: []queryir.Column{
				col(providers, "Name"),
				col(providers, "City"),
				col(providers, "Contact"),
			},
			Filter: queryir.Param{Field: field(providers, "City"), Name: ParamCity},
			OrderBy: []queryir.Order{
				{Expr: field(providers, "Name")},
				{Expr: field(providers, "Provider_ID")},
			},
		}, []ParamSpec{{Name: ParamCity, Required: true, Description: "provider city to list contacts for"}}, true

	case TopReceiversByClaims:
		return queryir.Select{
			From: receivers,
			Joins: []queryir.Join{
				join(queryir.JoinLeft, claims, field(receivers, "Receiver_ID"), field(claims, "Receiver_ID")),
			},
			Columns: []queryir.Column{
				col(receivers, "Name"),
				col(receivers, "City"),
				{Expr: countOf(claims, "Claim_ID"), As: "total_claims"},
			},
			GroupBy: []queryir.Field{field(receivers, "Name"), field(receivers, "City")},
			OrderBy: desc("total_claims"),
			Limit:   10,
		}, nil, true

	case TotalQuantityAvailable:
		return queryir.Select{
			From: listings,
			Columns: []queryir.Column{
				{Expr: queryir.Sum{Arg: field(listings, "Quantity"), OrZero: true}, As: "total_quantity"},
			},
		}, nil, true

	case CityWithMostListings:
		return queryir.Select{
			From: listings,
			Joins: []queryir.Join{
				join(queryir.JoinInner, providers, field(listings, "Provider_ID"), field(providers, "Provider_ID")),
			},
			Columns: []queryir.Column{
				col(providers, "City"),
				{Expr: countOf(listings, "Food_ID"), As: "total_listings"},
			},
			GroupBy: []queryir.Field{field(providers, "City")},
			OrderBy: desc("total_listings"),
			Limit:   1,
		}, nil, true

	case MostCommonFoodTypes:
		return queryir.Select{
			From: listings,
			Columns: []queryir.Column{
				col(listings, "Food_Type"),
				{Expr: queryir.Count{}, As: "count_foods"},
			},
			GroupBy: []queryir.Field{field(listings, "Food_Type")},
			OrderBy: desc("count_foods"),
		}, nil, true

	case ClaimsPerFoodItem:
		return queryir.Select{
			From: listings,
			Joins: []queryir.Join{
				join(queryir.JoinLeft, claims, field(listings, "Food_ID"), field(claims, "Food_ID")),
			},
			Columns: []queryir.Column{
				col(listings, "Food_ID"),
				col(listings, "Food_Type"),
				{Expr: countOf(claims, "Claim_ID"), As: "total_claims"},
			},
			GroupBy: []queryir.Field{field(listings, "Food_ID"), field(listings, "Food_Type")},
			OrderBy: desc("total_claims"),
		}, nil, true

	case ProviderWithMostSuccessfulClaims:
		return queryir.Select{
			From: providers,
			Joins: []queryir.Join{
				join(queryir.JoinInner, listings, field(providers, "Provider_ID"), field(listings, "Provider_ID")),
				join(queryir.JoinInner, claims, field(listings, "Food_ID"), field(claims, "Food_ID")),
			},
			Columns: []queryir.Column{
				col(providers, "Name"),
				{Expr: countOf(claims, "Claim_ID"), As: "successful_claims"},
			},
			Filter:  queryir.Equals{Field: field(claims, "Status"), Value: string(model.ClaimSuccessful)},
			GroupBy: []queryir.Field{field(providers, "Name")},
			OrderBy: desc("successful_claims"),
			Limit:   1,
		}, nil, true

	case ClaimStatusDistribution:
		return queryir.Select{
			From: claims,
			Columns: []queryir.Column{
				col(claims, "Status"),
				{Expr: queryir.Share{Total: claims.Table, Precision: 2}, As: "percentage"},
			},
			GroupBy: []queryir.Field{field(claims, "Status")},
		}, nil, true

	case AvgClaimedQuantityPerReceiver:
		return queryir.Select{
			From: receivers,
			Joins: []queryir.Join{
				join(queryir.JoinInner, claims, field(receivers, "Receiver_ID"), field(claims, "Receiver_ID")),
				join(queryir.JoinInner, listings, field(claims, "Food_ID"), field(listings, "Food_ID")),
			},
			Columns: []queryir.Column{
				col(receivers, "Name"),
				{Expr: queryir.Avg{Arg: field(listings, "Quantity")}, As: "avg_claimed_quantity"},
			},
			GroupBy: []queryir.Field{field(receivers, "Name")},
		}, nil, true

	case MostClaimedMealType:
		return queryir.Select{
			From: listings,
			Joins: []queryir.Join{
				join(queryir.JoinInner, claims, field(listings, "Food_ID"), field(claims, "Food_ID")),
			},
			Columns: []queryir.Column{
				col(listings, "Meal_Type"),
				{Expr: countOf(claims, "Claim_ID"), As: "total_claims"},
			},
			GroupBy: []queryir.Field{field(listings, "Meal_Type")},
			OrderBy: desc("total_claims"),
			Limit:   1,
		}, nil, true

	case TotalDonatedPerProvider:
		return queryir.Select{
			From: providers,
			Joins: []queryir.Join{
				join(queryir.JoinInner, listings, field(providers, "Provider_ID"), field(listings, "Provider_ID")),
			},
			Columns: []queryir.Column{
				col(providers, "Name"),
				{Expr: queryir.Sum{Arg: field(listings, "Quantity")}, As: "total_donated"},
			},
			GroupBy: []queryir.Field{field(providers, "Name")},
			OrderBy: desc("total_donated"),
		}, nil, true

	case ClaimsPerCity:
		return queryir.Select{
			From: claims,
			Joins: []queryir.Join{
				join(queryir.JoinInner, receivers, field(claims, "Receiver_ID"), field(receivers, "Receiver_ID")),
			},
			Columns: []queryir.Column{
				col(receivers, "City"),
				{Expr: countOf(claims, "Claim_ID"), As: "total_claims"},
			},
			GroupBy: []queryir.Field{field(receivers, "City")},
			OrderBy: desc("total_claims"),
		}, nil, true

	default:
		return queryir.Select{}, nil, false
	}
}
