package model

// Contact is an independent directory entry, unrelated to the contact
// columns on providers and receivers.
type Contact struct {
	ID           int64  `json:"Contact_ID" yaml:"Contact_ID"`
	Name         string `json:"Name" yaml:"Name"`
	Role         string `json:"Role" yaml:"Role"`
	Organization string `json:"Organization" yaml:"Organization"`
	Email        string `json:"Email" yaml:"Email"`
	Phone        string `json:"Phone" yaml:"Phone"`
	City         string `json:"City" yaml:"City"`
	Notes        string `json:"Notes" yaml:"Notes"`
}

// Normalize returns a copy with every text field normalized.
func (c Contact) Normalize() Contact {
	c.Name = NormalizeText(c.Name)
	c.Role = NormalizeText(c.Role)
	c.Organization = NormalizeText(c.Organization)
	c.Email = NormalizeText(c.Email)
	c.Phone = NormalizeText(c.Phone)
	c.City = NormalizeText(c.City)
	c.Notes = NormalizeText(c.Notes)
	return c
}

// Validate checks field constraints. Name is NOT NULL in the schema.
func (c Contact) Validate() error {
	if c.Name == "" {
		return NewValidationError("create contact", "Name", "name is required")
	}
	return nil
}
