package model

// Provider is a donor organization. Seeded externally.
type Provider struct {
	ID      int64  `json:"Provider_ID" yaml:"Provider_ID"`
	Name    string `json:"Name" yaml:"Name"`
	Type    string `json:"Type" yaml:"Type"`
	Address string `json:"Address" yaml:"Address"`
	City    string `json:"City" yaml:"City"`
	Contact string `json:"Contact" yaml:"Contact"`
}

// Receiver is a recipient organization. Seeded externally.
type Receiver struct {
	ID      int64  `json:"Receiver_ID" yaml:"Receiver_ID"`
	Name    string `json:"Name" yaml:"Name"`
	Type    string `json:"Type" yaml:"Type"`
	City    string `json:"City" yaml:"City"`
	Contact string `json:"Contact" yaml:"Contact"`
}

// ClaimStatus is the lifecycle state of a claim.
type ClaimStatus string

const (
	ClaimPending    ClaimStatus = "Pending"
	ClaimSuccessful ClaimStatus = "Successful"
	ClaimCancelled  ClaimStatus = "Cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s ClaimStatus) Valid() bool {
	switch s {
	case ClaimPending, ClaimSuccessful, ClaimCancelled:
		return true
	default:
		return false
	}
}

// Claim is a receiver's request against a listing. Food_ID and Receiver_ID
// are not enforced references; a claim may outlive its listing.
type Claim struct {
	ID         int64       `json:"Claim_ID" yaml:"Claim_ID"`
	FoodID     int64       `json:"Food_ID" yaml:"Food_ID"`
	ReceiverID int64       `json:"Receiver_ID" yaml:"Receiver_ID"`
	Status     ClaimStatus `json:"Status" yaml:"Status"`
	Timestamp  string      `json:"Timestamp" yaml:"Timestamp"`
}
