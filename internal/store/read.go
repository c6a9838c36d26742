package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/foodwaste/internal/model"
	"github.com/roach88/foodwaste/internal/queryir"
	"github.com/roach88/foodwaste/internal/querysql"
)

const listingColumns = `Food_ID, Food_Name, Quantity, Expiry_Date, Provider_ID, Provider_Type, Location, Food_Type, Meal_Type`

// ListListings returns every listing ordered by Food_ID ascending.
// Each call re-reads current state.
//
// Returns an empty slice (not nil) if there are no listings.
func (s *Store) ListListings(ctx context.Context) ([]model.FoodListing, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+listingColumns+`
		FROM food_listings
		ORDER BY Food_ID ASC
	`)
	if err != nil {
		return nil, classify("list listings", "", err)
	}
	return collectListings(rows, "list listings")
}

// GetListing returns a single listing. Returns NOT_FOUND if absent.
func (s *Store) GetListing(ctx context.Context, id int64) (model.FoodListing, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+listingColumns+`
		FROM food_listings
		WHERE Food_ID = ?
	`, id)

	l, err := scanListing(row)
	if err == sql.ErrNoRows {
		return model.FoodListing{}, model.NewNotFoundError("get listing", "food_listings", id)
	}
	if err != nil {
		return model.FoodListing{}, classify("get listing", "", err)
	}
	return l, nil
}

// FilterListings returns listings whose Location, Food_Type and
// Provider_Type each match one of the filter's values (empty = any),
// ordered by Food_ID ascending. Values are bound, never interpolated.
func (s *Store) FilterListings(ctx context.Context, f model.ListingFilter) ([]model.FoodListing, error) {
	const op = "filter listings"
	if f.IsEmpty() {
		return s.ListListings(ctx)
	}

	q := listingSelect()
	var preds []queryir.Predicate
	if len(f.Cities) > 0 {
		preds = append(preds, queryir.In{Field: queryir.F("f", "Location"), Values: normalizedValues(f.Cities)})
	}
	if len(f.FoodTypes) > 0 {
		preds = append(preds, queryir.In{Field: queryir.F("f", "Food_Type"), Values: normalizedValues(f.FoodTypes)})
	}
	if len(f.ProviderTypes) > 0 {
		preds = append(preds, queryir.In{Field: queryir.F("f", "Provider_Type"), Values: normalizedValues(f.ProviderTypes)})
	}
	q.Filter = queryir.And{Predicates: preds}

	query, args, err := querysql.NewSQLCompiler(nil).Compile(q)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(op, "", err)
	}
	return collectListings(rows, op)
}

// Summary returns the dashboard KPIs over current listings.
func (s *Store) Summary(ctx context.Context) (model.Summary, error) {
	var sum model.Summary
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(Quantity), 0),
			COUNT(DISTINCT Provider_ID),
			COUNT(DISTINCT Location)
		FROM food_listings
	`).Scan(&sum.TotalListings, &sum.TotalQuantity, &sum.UniqueProviders, &sum.CitiesCovered)
	if err != nil {
		return model.Summary{}, classify("summary", "", err)
	}
	return sum, nil
}

// ListContacts returns every contact ordered by Contact_ID ascending.
//
// Returns an empty slice (not nil) if there are no contacts.
func (s *Store) ListContacts(ctx context.Context) ([]model.Contact, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT Contact_ID, Name, Role, Organization, Email, Phone, City, Notes
		FROM contacts
		ORDER BY Contact_ID ASC
	`)
	if err != nil {
		return nil, classify("list contacts", "", err)
	}
	defer rows.Close()

	contacts := []model.Contact{}
	for rows.Next() {
		var c model.Contact
		var role, org, email, phone, city, notes sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &role, &org, &email, &phone, &city, &notes); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		c.Role, c.Organization, c.Email = role.String, org.String, email.String
		c.Phone, c.City, c.Notes = phone.String, city.String, notes.String
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contacts: %w", err)
	}
	return contacts, nil
}

// listingSelect is the IR form of "SELECT <listing columns> FROM food_listings".
func listingSelect() queryir.Select {
	names := []string{"Food_ID", "Food_Name", "Quantity", "Expiry_Date", "Provider_ID",
		"Provider_Type", "Location", "Food_Type", "Meal_Type"}
	cols := make([]queryir.Column, len(names))
	for i, n := range names {
		cols[i] = queryir.Column{Expr: queryir.F("f", n), As: n}
	}
	return queryir.Select{
		From:    queryir.Source{Table: "food_listings", Alias: "f"},
		Columns: cols,
		OrderBy: []queryir.Order{{Expr: queryir.F("f", "Food_ID")}},
	}
}

func normalizedValues(in []string) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = model.NormalizeText(v)
	}
	return out
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanListing scans one food_listings row. Columns created outside this
// package may hold NULLs; they read back as zero values.
func scanListing(r rowScanner) (model.FoodListing, error) {
	var l model.FoodListing
	var name, expiry, ptype, location, ftype, meal sql.NullString
	var qty, provider sql.NullInt64

	if err := r.Scan(&l.ID, &name, &qty, &expiry, &provider, &ptype, &location, &ftype, &meal); err != nil {
		return model.FoodListing{}, err
	}
	l.Name = name.String
	l.Quantity = qty.Int64
	l.ExpiryDate = expiry.String
	l.ProviderID = provider.Int64
	l.ProviderType = ptype.String
	l.Location = location.String
	l.FoodType = ftype.String
	l.MealType = meal.String
	return l, nil
}

func collectListings(rows *sql.Rows, op string) ([]model.FoodListing, error) {
	defer rows.Close()

	listings := []model.FoodListing{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: iterate: %w", op, err)
	}
	return listings, nil
}
