package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/foodwaste/internal/model"
	"github.com/roach88/foodwaste/internal/queryir"
)

// Dimension is a listing column that quantities can be broken down by.
type Dimension int

const (
	ByFoodType Dimension = iota + 1
	ByExpiryDate
	ByProviderType
)

// Dimensions returns every breakdown dimension.
func Dimensions() []Dimension {
	return []Dimension{ByFoodType, ByExpiryDate, ByProviderType}
}

// Column returns the food_listings column the dimension groups by.
func (d Dimension) Column() string {
	switch d {
	case ByFoodType:
		return "Food_Type"
	case ByExpiryDate:
		return "Expiry_Date"
	case ByProviderType:
		return "Provider_Type"
	default:
		return ""
	}
}

// String returns the command-line name, e.g. "food-type".
func (d Dimension) String() string {
	switch d {
	case ByFoodType:
		return "food-type"
	case ByExpiryDate:
		return "expiry-date"
	case ByProviderType:
		return "provider-type"
	default:
		return fmt.Sprintf("Dimension(%d)", int(d))
	}
}

// ParseDimension resolves a command-line name or column name.
func ParseDimension(s string) (Dimension, error) {
	key := strings.ToLower(model.NormalizeText(s))
	for _, d := range Dimensions() {
		if key == d.String() || key == strings.ToLower(d.Column()) {
			return d, nil
		}
	}
	return 0, model.NewValidationError("breakdown", "dimension", fmt.Sprintf("unknown dimension %q", s))
}

// Party selects the reference table a directory reads.
type Party string

const (
	PartyProviders Party = "providers"
	PartyReceivers Party = "receivers"
)

// ParseParty resolves "providers" or "receivers".
func ParseParty(s string) (Party, error) {
	switch p := Party(strings.ToLower(model.NormalizeText(s))); p {
	case PartyProviders, PartyReceivers:
		return p, nil
	default:
		return "", model.NewValidationError("contact directory", "party", fmt.Sprintf("unknown party %q", s))
	}
}

// Breakdown sums listing quantity per value of d, ordered by that value.
func (r *Runner) Breakdown(ctx context.Context, d Dimension) (Table, error) {
	name := d.Column()
	if name == "" {
		return Table{}, model.NewValidationError("breakdown", "dimension", fmt.Sprintf("unknown dimension %d", int(d)))
	}

	q := queryir.Select{
		From: listings,
		Columns: []queryir.Column{
			col(listings, name),
			{Expr: queryir.Sum{Arg: field(listings, "Quantity")}, As: "total_quantity"},
		},
		GroupBy: []queryir.Field{field(listings, name)},
	}
	title := "Quantity by " + strings.ReplaceAll(d.String(), "-", " ")
	return r.execute(ctx, title, q, nil)
}

// ProviderDirectory aggregates listings per provider, optionally for one
// city. It reads food_listings only, so it works before reference data is
// seeded.
func (r *Runner) ProviderDirectory(ctx context.Context, city string) (Table, error) {
	q := queryir.Select{
		From: listings,
		Columns: []queryir.Column{
			col(listings, "Provider_ID"),
			col(listings, "Provider_Type"),
			{Expr: field(listings, "Location"), As: "City"},
			{Expr: countOf(listings, "Food_ID"), As: "Total_Listings"},
			{Expr: queryir.Sum{Arg: field(listings, "Quantity")}, As: "Total_Quantity"},
		},
		GroupBy: []queryir.Field{
			field(listings, "Provider_ID"),
			field(listings, "Provider_Type"),
			field(listings, "Location"),
		},
		OrderBy: desc("Total_Quantity"),
	}

	params := map[string]any{}
	if city = model.NormalizeText(city); city != "" {
		q.Filter = queryir.Param{Field: field(listings, "Location"), Name: ParamCity}
		params[ParamCity] = city
	}
	return r.execute(ctx, "Providers in "+cityLabel(city), q, params)
}

// ReceiverDirectory counts claims per receiver, optionally for one city.
// Receivers without claims are listed at 0.
func (r *Runner) ReceiverDirectory(ctx context.Context, city string) (Table, error) {
	q := queryir.Select{
		From: receivers,
		Joins: []queryir.Join{
			join(queryir.JoinLeft, claims, field(receivers, "Receiver_ID"), field(claims, "Receiver_ID")),
		},
		Columns: []queryir.Column{
			col(receivers, "Receiver_ID"),
			{Expr: field(receivers, "Name"), As: "Receiver_Name"},
			{Expr: field(receivers, "Type"), As: "Receiver_Type"},
			col(receivers, "City"),
			{Expr: countOf(claims, "Claim_ID"), As: "Total_Claims"},
		},
		GroupBy: []queryir.Field{
			field(receivers, "Receiver_ID"),
			field(receivers, "Name"),
			field(receivers, "Type"),
			field(receivers, "City"),
		},
		OrderBy: desc("Total_Claims"),
	}

	params := map[string]any{}
	if city = model.NormalizeText(city); city != "" {
		q.Filter = queryir.Param{Field: field(receivers, "City"), Name: ParamCity}
		params[ParamCity] = city
	}
	return r.execute(ctx, "Receivers in "+cityLabel(city), q, params)
}

// ContactDirectory lists name, city and contact of every provider or
// receiver, ordered by name.
func (r *Runner) ContactDirectory(ctx context.Context, p Party) (Table, error) {
	var src queryir.Source
	var id string
	switch p {
	case PartyProviders:
		src, id = providers, "Provider_ID"
	case PartyReceivers:
		src, id = receivers, "Receiver_ID"
	default:
		return Table{}, model.NewValidationError("contact directory", "party", fmt.Sprintf("unknown party %q", string(p)))
	}

	q := queryir.Select{
		From: src,
		Columns: []queryir.Column{
			col(src, "Name"),
			col(src, "City"),
			col(src, "Contact"),
		},
		OrderBy: []queryir.Order{{Expr: field(src, "Name")}, {Expr: field(src, id)}},
	}
	title := "Contacts: " + string(p)
	return r.execute(ctx, title, q, nil)
}

// ListingCities returns the distinct non-empty listing locations, sorted.
func (r *Runner) ListingCities(ctx context.Context) ([]string, error) {
	return r.cities(ctx, listings, "Location")
}

// ReceiverCities returns the distinct non-empty receiver cities, sorted.
func (r *Runner) ReceiverCities(ctx context.Context) ([]string, error) {
	return r.cities(ctx, receivers, "City")
}

func (r *Runner) cities(ctx context.Context, src queryir.Source, name string) ([]string, error) {
	q := queryir.Select{
		Distinct: true,
		From:     src,
		Columns:  []queryir.Column{{Expr: field(src, name), As: "City"}},
		OrderBy:  []queryir.Order{{Expr: queryir.ColumnRef{Name: "City"}}},
	}
	t, err := r.execute(ctx, "Cities", q, nil)
	if err != nil {
		return nil, err
	}

	out := []string{}
	for _, row := range t.Rows {
		if s, ok := row[0].(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

func cityLabel(city string) string {
	if city == "" {
		return "all cities"
	}
	return city
}
