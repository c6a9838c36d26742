package model

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// DateLayout is the storage format for Expiry_Date. It sorts
// lexicographically in date order, which range and ORDER BY queries rely on.
const DateLayout = "2006-01-02"

// NormalizeText trims surrounding whitespace and applies Unicode NFC.
func NormalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// ValidDate reports whether s is a calendar date in DateLayout.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
