package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/foodwaste/internal/model"
)

// CreateListing validates and inserts a listing, returning its new Food_ID.
//
// Text fields are normalized first. Validation failures return a
// VALIDATION error before any transaction is opened.
func (s *Store) CreateListing(ctx context.Context, n model.NewListing) (int64, error) {
	const op = "create listing"

	n = n.Normalize()
	if err := n.Validate(); err != nil {
		return 0, err
	}

	var id int64
	err := s.inTx(ctx, op, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO food_listings
			(Food_Name, Quantity, Expiry_Date, Provider_ID, Provider_Type, Location, Food_Type, Meal_Type)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`,
			n.Name,
			n.Quantity,
			n.ExpiryDate,
			n.ProviderID,
			n.ProviderType,
			n.City,
			n.FoodType,
			n.MealType,
		)
		if err != nil {
			return err
		}
		id, err = result.LastInsertId()
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateListing sets Quantity, and Location when u.City is non-empty.
// Other columns are never touched. Returns NOT_FOUND if no row has u.ID.
func (s *Store) UpdateListing(ctx context.Context, u model.ListingUpdate) error {
	const op = "update listing"

	u.City = model.NormalizeText(u.City)
	if err := u.Validate(); err != nil {
		return err
	}

	return s.inTx(ctx, op, func(tx *sql.Tx) error {
		var result sql.Result
		var err error
		if u.City != "" {
			result, err = tx.ExecContext(ctx,
				"UPDATE food_listings SET Quantity = ?, Location = ? WHERE Food_ID = ?",
				u.Quantity, u.City, u.ID)
		} else {
			result, err = tx.ExecContext(ctx,
				"UPDATE food_listings SET Quantity = ? WHERE Food_ID = ?",
				u.Quantity, u.ID)
		}
		if err != nil {
			return err
		}
		return requireAffected(result, op, u.ID)
	})
}

// DeleteListing removes the listing with the given Food_ID. Claims that
// reference it are left in place. Returns NOT_FOUND if no row has id.
func (s *Store) DeleteListing(ctx context.Context, id int64) error {
	const op = "delete listing"

	return s.inTx(ctx, op, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, "DELETE FROM food_listings WHERE Food_ID = ?", id)
		if err != nil {
			return err
		}
		return requireAffected(result, op, id)
	})
}

// CreateContact validates and inserts a contact, returning its Contact_ID.
func (s *Store) CreateContact(ctx context.Context, c model.Contact) (int64, error) {
	const op = "create contact"

	c = c.Normalize()
	if err := c.Validate(); err != nil {
		return 0, err
	}

	var id int64
	err := s.inTx(ctx, op, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO contacts
			(Name, Role, Organization, Email, Phone, City, Notes)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`,
			c.Name,
			c.Role,
			c.Organization,
			c.Email,
			c.Phone,
			c.City,
			c.Notes,
		)
		if err != nil {
			return err
		}
		id, err = result.LastInsertId()
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// inTx runs fn in a transaction and commits it. Errors from fn that are
// already *model.Error pass through unchanged; everything else is classified.
func (s *Store) inTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return classify(op+": begin tx", "", err)
	}
	defer tx.Rollback() // No-op if committed

	if err := fn(tx); err != nil {
		if model.CodeOf(err) != "" {
			return err
		}
		return classify(op, "", err)
	}

	if err := tx.Commit(); err != nil {
		return classify(op+": commit", "", err)
	}
	return nil
}

// requireAffected returns NOT_FOUND when a statement matched no row.
func requireAffected(result sql.Result, op string, id int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return model.NewNotFoundError(op, "food_listings", id)
	}
	return nil
}
