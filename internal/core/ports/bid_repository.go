package ports

import (
	"context"

	"github.com/SambridhiGhimire/Architech-bidding/internal/core/domain"
)

// BidRepository defines persistence for bids. Bids live in their own
// collection keyed by (project_id, service_provider_id) with a unique
// compound index, so at-most-one-bid-per-provider holds under concurrent
// submission without check-then-insert races.
type BidRepository interface {
	// Create inserts a bid; returns domain.ErrDuplicateBid when the provider
	// already has a bid on the project.
	Create(ctx context.Context, b *domain.Bid) (*domain.Bid, error)
	FindByID(ctx context.Context, id string) (*domain.Bid, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Bid, error)
	ListByProvider(ctx context.Context, providerID string) ([]domain.Bid, error)
	CountByProject(ctx context.Context, projectID string) (int64, error)
	// Update applies the given fields to the bid document in one write.
	Update(ctx context.Context, id string, fields map[string]any) (*domain.Bid, error)
	Delete(ctx context.Context, id string) error
	// SetStatus sets one bid's status.
	SetStatus(ctx context.Context, id string, status domain.BidStatus) error
	// RejectSiblings marks every bid on the project except acceptedBidID as
	// rejected, in one write over the whole set.
	RejectSiblings(ctx context.Context, projectID, acceptedBidID string) error
}
