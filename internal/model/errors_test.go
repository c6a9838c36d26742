package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Format(t *testing.T) {
	err := NewNotFoundError("delete listing", "food_listings", 7)
	assert.Equal(t, "NOT_FOUND: delete listing: no row with id 7 (target=food_listings#7)", err.Error())

	err2 := &Error{Code: ErrCodeEmptyDataset, Message: "no claims"}
	assert.Equal(t, "EMPTY_DATASET: no claims", err2.Error())
}

func TestError_UnwrapsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStoreUnavailableError("open store", "/tmp/x.db", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, err.Error(), "target=/tmp/x.db")
}

func TestErrorPredicates_WrappedErrors(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"store unavailable", NewStoreUnavailableError("open", "", errors.New("x")), IsStoreUnavailable},
		{"validation", NewValidationError("create listing", "Quantity", "bad"), IsValidation},
		{"not found", NewNotFoundError("update listing", "food_listings", 1), IsNotFound},
		{"missing relation", NewMissingRelationError("run report", "claims"), IsMissingRelation},
		{"empty dataset", &Error{Code: ErrCodeEmptyDataset}, IsEmptyDataset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", tt.err)
			assert.True(t, tt.check(wrapped))
		})
	}
}

func TestCodeOf_PlainError(t *testing.T) {
	assert.Equal(t, ErrorCode(""), CodeOf(errors.New("plain")))
	assert.False(t, IsNotFound(nil))
}
