package model

import "fmt"

// FoodListing is a donor-posted food-availability record.
type FoodListing struct {
	ID           int64  `json:"Food_ID" yaml:"Food_ID"`
	Name         string `json:"Food_Name" yaml:"Food_Name"`
	Quantity     int64  `json:"Quantity" yaml:"Quantity"`
	ExpiryDate   string `json:"Expiry_Date" yaml:"Expiry_Date"`
	ProviderID   int64  `json:"Provider_ID" yaml:"Provider_ID"`
	ProviderType string `json:"Provider_Type" yaml:"Provider_Type"`
	Location     string `json:"Location" yaml:"Location"`
	FoodType     string `json:"Food_Type" yaml:"Food_Type"`
	MealType     string `json:"Meal_Type" yaml:"Meal_Type"`
}

// MaxQuantity bounds a listing's Quantity so quantity sums stay within int64.
const MaxQuantity int64 = 1_000_000_000

// NewListing carries every listing field except the generated Food_ID.
type NewListing struct {
	Name         string
	Quantity     int64
	ExpiryDate   string
	ProviderID   int64
	ProviderType string
	City         string
	FoodType     string
	MealType     string
}

// Normalize returns a copy with every text field normalized.
func (n NewListing) Normalize() NewListing {
	n.Name = NormalizeText(n.Name)
	n.ExpiryDate = NormalizeText(n.ExpiryDate)
	n.ProviderType = NormalizeText(n.ProviderType)
	n.City = NormalizeText(n.City)
	n.FoodType = NormalizeText(n.FoodType)
	n.MealType = NormalizeText(n.MealType)
	return n
}

// Validate checks field constraints before any write is attempted.
func (n NewListing) Validate() error {
	const op = "create listing"
	if n.Quantity < 1 {
		return NewValidationError(op, "Quantity", fmt.Sprintf("quantity must be a positive integer, got %d", n.Quantity))
	}
	if n.Quantity > MaxQuantity {
		return NewValidationError(op, "Quantity", fmt.Sprintf("quantity must not exceed %d, got %d", MaxQuantity, n.Quantity))
	}
	if n.ProviderID < 1 {
		return NewValidationError(op, "Provider_ID", fmt.Sprintf("provider id must be a positive integer, got %d", n.ProviderID))
	}
	if !ValidDate(n.ExpiryDate) {
		return NewValidationError(op, "Expiry_Date", fmt.Sprintf("expiry date %q is not in YYYY-MM-DD format", n.ExpiryDate))
	}
	return nil
}

// Listing returns the row that will be stored for id.
func (n NewListing) Listing(id int64) FoodListing {
	return FoodListing{
		ID:           id,
		Name:         n.Name,
		Quantity:     n.Quantity,
		ExpiryDate:   n.ExpiryDate,
		ProviderID:   n.ProviderID,
		ProviderType: n.ProviderType,
		Location:     n.City,
		FoodType:     n.FoodType,
		MealType:     n.MealType,
	}
}

// ListingUpdate is a partial update. An empty City leaves Location untouched.
type ListingUpdate struct {
	ID       int64
	Quantity int64
	City     string
}

// Validate checks the update before any write is attempted.
func (u ListingUpdate) Validate() error {
	if u.Quantity < 0 {
		return NewValidationError("update listing", "Quantity", fmt.Sprintf("quantity must not be negative, got %d", u.Quantity))
	}
	if u.Quantity > MaxQuantity {
		return NewValidationError("update listing", "Quantity", fmt.Sprintf("quantity must not exceed %d, got %d", MaxQuantity, u.Quantity))
	}
	return nil
}

// ListingFilter selects listings whose fields match any of the given values.
// An empty slice leaves that field unfiltered.
type ListingFilter struct {
	Cities        []string
	FoodTypes     []string
	ProviderTypes []string
}

// IsEmpty reports whether the filter matches every listing.
func (f ListingFilter) IsEmpty() bool {
	return len(f.Cities) == 0 && len(f.FoodTypes) == 0 && len(f.ProviderTypes) == 0
}

// Summary holds the dashboard KPIs over current listings.
type Summary struct {
	TotalListings   int64 `json:"total_listings"`
	TotalQuantity   int64 `json:"total_quantity"`
	UniqueProviders int64 `json:"unique_providers"`
	CitiesCovered   int64 `json:"cities_covered"`
}
