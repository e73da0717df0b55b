package ports

import (
	"context"

	"github.com/SambridhiGhimire/Architech-bidding/internal/core/domain"
)

// RatingBucket is one step of a rating distribution, bucketed by the integer
// score.
type RatingBucket struct {
	Rating int   `json:"rating" bson:"_id"`
	Count  int64 `json:"count" bson:"count"`
}

// RatingStats aggregates a user's approved ratings.
type RatingStats struct {
	Average float64 `json:"average" bson:"average"`
	Count   int64   `json:"count" bson:"count"`
}

// RatingRepository defines persistence for ratings. Uniqueness of the
// (rater, rated user, project-or-general) triple is enforced by a unique
// compound index, so a race between two submissions yields exactly one
// success and one conflict.
type RatingRepository interface {
	// Insert persists a rating; returns domain.ErrDuplicateRating when the
	// uniqueness triple already exists.
	Insert(ctx context.Context, r *domain.Rating) (*domain.Rating, error)
	FindByID(ctx context.Context, id string) (*domain.Rating, error)
	// Stats and Distribution cover approved ratings only.
	Stats(ctx context.Context, ratedUserID string) (*RatingStats, error)
	Distribution(ctx context.Context, ratedUserID string) ([]RatingBucket, error)
	// ListByRatedUser returns approved ratings, newest first, with total.
	ListByRatedUser(ctx context.Context, ratedUserID string, page, limit int) ([]domain.Rating, int64, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Rating, error)
	ListByRater(ctx context.Context, raterID string, page, limit int) ([]domain.Rating, int64, error)
	Update(ctx context.Context, id string, fields map[string]any) (*domain.Rating, error)
	Delete(ctx context.Context, id string) error
}
