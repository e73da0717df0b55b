package ports

import (
	"context"

	"github.com/SambridhiGhimire/Architech-bidding/internal/core/domain"
)

// SubmitBidInput carries a new bid submission. Documents have already passed
// the intake boundary.
type SubmitBidInput struct {
	ProjectID string
	Amount    float64
	Timeline  int
	Message   string
	Documents []domain.FileRef
}

// UpdateBidInput carries a partial bid mutation; only amount, timeline,
// message and appended documents are mutable.
type UpdateBidInput struct {
	Amount    *float64
	Timeline  *int
	Message   *string
	Documents []domain.FileRef // appended
}

// ProviderBid is a provider's bid joined with its project summary.
type ProviderBid struct {
	Bid             domain.Bid
	ProjectTitle    string
	ProjectCategory string
	ProjectStatus   domain.ProjectStatus
	ProjectLocation domain.Location
	ProjectOwner    *domain.UserRef
}

// AwardResult reports the outcome of accepting a bid.
type AwardResult struct {
	ProjectStatus domain.ProjectStatus
	AwardedBid    *domain.Bid
	// AlreadyAwarded is true when the call was a no-op replay on the bid
	// that had already been accepted.
	AlreadyAwarded bool
}

// BidService governs the bid lifecycle: submission, update, withdrawal,
// acceptance with cascading rejection, and rejection.
type BidService interface {
	Submit(ctx context.Context, providerID string, in SubmitBidInput) (*domain.Bid, error)
	Update(ctx context.Context, actorID, bidID string, in UpdateBidInput) (*domain.Bid, error)
	Withdraw(ctx context.Context, actorID, bidID string) error
	Accept(ctx context.Context, actorID, projectID, bidID string) (*AwardResult, error)
	Reject(ctx context.Context, actorID, projectID, bidID string) error
	ListForProject(ctx context.Context, actorID, projectID string) ([]domain.Bid, error)
	ListMine(ctx context.Context, providerID string) ([]ProviderBid, error)
}
