package domain

import "time"

// BidStatus represents the lifecycle state of a bid.
// pending -> accepted | rejected; both outcomes are terminal for the bid,
// although accepting one bid cascades a rejection onto its siblings.
type BidStatus string

const (
	BidPending  BidStatus = "pending"
	BidAccepted BidStatus = "accepted"
	BidRejected BidStatus = "rejected"
)

// Bid is a service provider's priced, timed proposal against a project.
// Uniqueness on (ProjectID, ServiceProviderID) is enforced by the store.
type Bid struct {
	ID                string    `json:"id" bson:"_id,omitempty"`
	ProjectID         string    `json:"project_id" bson:"project_id"`
	ServiceProviderID string    `json:"service_provider_id" bson:"service_provider_id"`
	Amount            float64   `json:"amount" bson:"amount"`
	Timeline          int       `json:"timeline" bson:"timeline"` // days
	Message           string    `json:"message,omitempty" bson:"message,omitempty"`
	Documents         []FileRef `json:"documents,omitempty" bson:"documents,omitempty"`
	Status            BidStatus `json:"status" bson:"status"`
	SubmittedAt       time.Time `json:"submitted_at" bson:"submitted_at"`
	UpdatedAt         time.Time `json:"updated_at" bson:"updated_at"`
}
