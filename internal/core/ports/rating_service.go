package ports

import (
	"context"

	"github.com/SambridhiGhimire/Architech-bidding/internal/core/domain"
)

// SubmitRatingInput carries a new rating. ProjectID is empty for a general
// rating.
type SubmitRatingInput struct {
	ProjectID   string
	RatedUserID string
	Rating      int
	Review      string
	Type        domain.RatingType
	Categories  domain.CategoryScores
}

// UpdateRatingInput carries a partial rating mutation by the original rater.
type UpdateRatingInput struct {
	Rating     *int
	Review     *string
	Categories *domain.CategoryScores
}

// UserRatingSummary aggregates a user's public rating data.
type UserRatingSummary struct {
	User         *domain.UserRef
	Role         string
	Average      float64
	Total        int64
	Distribution []RatingBucket // bucketed 5 down to 1
	Reviews      []domain.Rating
	Page         int
	TotalPages   int
}

// RatingPage is one page of ratings with pagination totals.
type RatingPage struct {
	Items      []domain.Rating
	Total      int64
	Page       int
	TotalPages int
}

// RatingService enforces rating eligibility and uniqueness, and serves
// aggregates.
type RatingService interface {
	Submit(ctx context.Context, raterID string, in SubmitRatingInput) (*domain.Rating, error)
	UserSummary(ctx context.Context, ratedUserID string, page, limit int) (*UserRatingSummary, error)
	ListForProject(ctx context.Context, actorID, projectID string) ([]domain.Rating, error)
	ListMine(ctx context.Context, raterID string, page, limit int) (*RatingPage, error)
	Update(ctx context.Context, actorID, ratingID string, in UpdateRatingInput) (*domain.Rating, error)
	Delete(ctx context.Context, actorID, ratingID string) error
	Report(ctx context.Context, actorID, ratingID, reason string) error
}
