package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/foodwaste/internal/model"
)

// Batch is a set of rows loaded by the seeding path. Rows keep the IDs they
// were given so that claims can reference listings and receivers.
type Batch struct {
	Providers []model.Provider
	Receivers []model.Receiver
	Claims    []model.Claim
	Listings  []model.FoodListing
	Contacts  []model.Contact
}

// ImportResult counts the rows actually inserted per table. Rows whose ID
// already existed are skipped and not counted.
type ImportResult struct {
	Providers int64 `json:"providers"`
	Receivers int64 `json:"receivers"`
	Claims    int64 `json:"claims"`
	Listings  int64 `json:"listings"`
	Contacts  int64 `json:"contacts"`
}

// Import creates the reference tables if missing and inserts the batch in a
// single transaction. Uses ON CONFLICT DO NOTHING so importing the same
// batch twice is a no-op.
func (s *Store) Import(ctx context.Context, b Batch) (ImportResult, error) {
	const op = "import"

	if err := validateBatch(b); err != nil {
		return ImportResult{}, err
	}
	if err := s.EnsureSchema(ctx); err != nil {
		return ImportResult{}, err
	}

	var res ImportResult
	err := s.inTx(ctx, op, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, referenceSQL); err != nil {
			return fmt.Errorf("create reference tables: %w", err)
		}

		for _, p := range b.Providers {
			n, err := execCount(ctx, tx, `
				INSERT INTO providers (Provider_ID, Name, Type, Address, City, Contact)
				VALUES (?, ?, ?, ?, ?, ?)
				ON CONFLICT(Provider_ID) DO NOTHING
			`, p.ID, model.NormalizeText(p.Name), model.NormalizeText(p.Type),
				model.NormalizeText(p.Address), model.NormalizeText(p.City), model.NormalizeText(p.Contact))
			if err != nil {
				return fmt.Errorf("insert provider %d: %w", p.ID, err)
			}
			res.Providers += n
		}

		for _, r := range b.Receivers {
			n, err := execCount(ctx, tx, `
				INSERT INTO receivers (Receiver_ID, Name, Type, City, Contact)
				VALUES (?, ?, ?, ?, ?)
				ON CONFLICT(Receiver_ID) DO NOTHING
			`, r.ID, model.NormalizeText(r.Name), model.NormalizeText(r.Type),
				model.NormalizeText(r.City), model.NormalizeText(r.Contact))
			if err != nil {
				return fmt.Errorf("insert receiver %d: %w", r.ID, err)
			}
			res.Receivers += n
		}

		for _, c := range b.Claims {
			n, err := execCount(ctx, tx, `
				INSERT INTO claims (Claim_ID, Food_ID, Receiver_ID, Status, Timestamp)
				VALUES (?, ?, ?, ?, ?)
				ON CONFLICT(Claim_ID) DO NOTHING
			`, c.ID, c.FoodID, c.ReceiverID, string(c.Status), c.Timestamp)
			if err != nil {
				return fmt.Errorf("insert claim %d: %w", c.ID, err)
			}
			res.Claims += n
		}

		for _, l := range b.Listings {
			n, err := execCount(ctx, tx, `
				INSERT INTO food_listings
				(Food_ID, Food_Name, Quantity, Expiry_Date, Provider_ID, Provider_Type, Location, Food_Type, Meal_Type)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT(Food_ID) DO NOTHING
			`, l.ID, model.NormalizeText(l.Name), l.Quantity, l.ExpiryDate, l.ProviderID,
				model.NormalizeText(l.ProviderType), model.NormalizeText(l.Location),
				model.NormalizeText(l.FoodType), model.NormalizeText(l.MealType))
			if err != nil {
				return fmt.Errorf("insert listing %d: %w", l.ID, err)
			}
			res.Listings += n
		}

		for _, c := range b.Contacts {
			c = c.Normalize()
			n, err := execCount(ctx, tx, `
				INSERT INTO contacts (Contact_ID, Name, Role, Organization, Email, Phone, City, Notes)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT(Contact_ID) DO NOTHING
			`, c.ID, c.Name, c.Role, c.Organization, c.Email, c.Phone, c.City, c.Notes)
			if err != nil {
				return fmt.Errorf("insert contact %d: %w", c.ID, err)
			}
			res.Contacts += n
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	return res, nil
}

func execCount(ctx context.Context, tx *sql.Tx, query string, args ...any) (int64, error) {
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// validateBatch rejects rows that would break the store's invariants.
// Referential consistency is deliberately not checked.
func validateBatch(b Batch) error {
	const op = "import"
	for _, p := range b.Providers {
		if p.ID < 1 {
			return model.NewValidationError(op, "Provider_ID", fmt.Sprintf("provider id must be positive, got %d", p.ID))
		}
	}
	for _, r := range b.Receivers {
		if r.ID < 1 {
			return model.NewValidationError(op, "Receiver_ID", fmt.Sprintf("receiver id must be positive, got %d", r.ID))
		}
	}
	for _, c := range b.Claims {
		if c.ID < 1 {
			return model.NewValidationError(op, "Claim_ID", fmt.Sprintf("claim id must be positive, got %d", c.ID))
		}
		if !c.Status.Valid() {
			return model.NewValidationError(op, "Status", fmt.Sprintf("claim %d has unknown status %q", c.ID, c.Status))
		}
	}
	for _, l := range b.Listings {
		if l.ID < 1 {
			return model.NewValidationError(op, "Food_ID", fmt.Sprintf("listing id must be positive, got %d", l.ID))
		}
		if l.Quantity < 0 || l.Quantity > model.MaxQuantity {
			return model.NewValidationError(op, "Quantity", fmt.Sprintf("listing %d quantity %d is outside 0..%d", l.ID, l.Quantity, model.MaxQuantity))
		}
		if !model.ValidDate(l.ExpiryDate) {
			return model.NewValidationError(op, "Expiry_Date", fmt.Sprintf("listing %d expiry %q is not YYYY-MM-DD", l.ID, l.ExpiryDate))
		}
	}
	for _, c := range b.Contacts {
		if c.ID < 1 {
			return model.NewValidationError(op, "Contact_ID", fmt.Sprintf("contact id must be positive, got %d", c.ID))
		}
		if err := c.Normalize().Validate(); err != nil {
			return err
		}
	}
	return nil
}
