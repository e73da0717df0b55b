package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/SambridhiGhimire/Architech-bidding/internal/core/domain"
	"github.com/SambridhiGhimire/Architech-bidding/internal/core/ports"
)

// RatingService enforces rating eligibility and the one-rating-per-scope
// invariant, and serves per-user aggregates.
type RatingService struct {
	ratings  ports.RatingRepository
	projects ports.ProjectRepository
	bids     ports.BidRepository
	users    ports.UserRepository
	activity ports.ActivityRecorder
	logger   zerolog.Logger
}

func NewRatingService(
	ratings ports.RatingRepository,
	projects ports.ProjectRepository,
	bids ports.BidRepository,
	users ports.UserRepository,
	activity ports.ActivityRecorder,
	logger zerolog.Logger,
) *RatingService {
	return &RatingService{ratings: ratings, projects: projects, bids: bids, users: users, activity: activity, logger: logger}
}

// Submit persists a rating after eligibility checks. Uniqueness of the
// (rater, rated user, project-or-general) triple is enforced by the store,
// so two concurrent submissions yield exactly one success and one conflict.
func (s *RatingService) Submit(ctx context.Context, raterID string, in ports.SubmitRatingInput) (*domain.Rating, error) {
	if in.RatedUserID == raterID {
		return nil, fmt.Errorf("submit rating: cannot rate yourself: %w", domain.ErrInvalidState)
	}
	if _, err := s.users.FindByID(ctx, in.RatedUserID); err != nil {
		return nil, err
	}

	if in.ProjectID != "" {
		project, err := s.projects.FindByID(ctx, in.ProjectID)
		if err != nil {
			return nil, err
		}
		if project.Status != domain.ProjectInProgress && project.Status != domain.ProjectCompleted {
			return nil, fmt.Errorf("submit rating: project not rateable yet: %w", domain.ErrInvalidState)
		}
		bids, err := s.bids.ListByProject(ctx, in.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("submit rating: %w", err)
		}
		if !domain.CanRateInProject(raterID, project, bids) {
			return nil, domain.ErrAccessDenied
		}
	}

	now := time.Now().UTC()
	rating := &domain.Rating{
		ProjectID:   in.ProjectID,
		RatedUserID: in.RatedUserID,
		RaterID:     raterID,
		Rating:      in.Rating,
		Review:      strings.TrimSpace(in.Review),
		Categories:  in.Categories.Sanitize(),
		Type:        in.Type,
		Status:      domain.RatingApproved,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.ratings.Insert(ctx, rating)
	if err != nil {
		return nil, err
	}

	s.activity.Record(domain.ActivityEvent{
		Kind:      domain.ActivityRatingSubmitted,
		ProjectID: in.ProjectID,
		ActorID:   raterID,
		SubjectID: created.ID,
		Timestamp: now,
	})
	s.logger.Info().Str("rating_id", created.ID).Str("rated_user_id", in.RatedUserID).Msg("rating submitted")
	return created, nil
}

// UserSummary aggregates one user's approved ratings: average, count,
// distribution 5 down to 1, and a page of recent reviews.
func (s *RatingService) UserSummary(ctx context.Context, ratedUserID string, page, limit int) (*ports.UserRatingSummary, error) {
	user, err := s.users.FindByID(ctx, ratedUserID)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultPageLimit
	}
	if page <= 0 {
		page = 1
	}

	stats, err := s.ratings.Stats(ctx, ratedUserID)
	if err != nil {
		return nil, fmt.Errorf("rating summary: %w", err)
	}
	dist, err := s.ratings.Distribution(ctx, ratedUserID)
	if err != nil {
		return nil, fmt.Errorf("rating summary: %w", err)
	}
	reviews, total, err := s.ratings.ListByRatedUser(ctx, ratedUserID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("rating summary: %w", err)
	}

	ref := user.Ref()
	return &ports.UserRatingSummary{
		User:         &ref,
		Role:         user.Role,
		Average:      stats.Average,
		Total:        stats.Count,
		Distribution: dist,
		Reviews:      reviews,
		Page:         page,
		TotalPages:   int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

// ListForProject serves a project's ratings to its participants only.
func (s *RatingService) ListForProject(ctx context.Context, actorID, projectID string) ([]domain.Rating, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	bids, err := s.bids.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list project ratings: %w", err)
	}
	if !domain.CanRateInProject(actorID, project, bids) {
		return nil, domain.ErrAccessDenied
	}
	return s.ratings.ListByProject(ctx, projectID)
}

// ListMine returns ratings authored by the actor.
func (s *RatingService) ListMine(ctx context.Context, raterID string, page, limit int) (*ports.RatingPage, error) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if page <= 0 {
		page = 1
	}
	items, total, err := s.ratings.ListByRater(ctx, raterID, page, limit)
	if err != nil {
		return nil, err
	}
	return &ports.RatingPage{
		Items:      items,
		Total:      total,
		Page:       page,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

// Update mutates a rating, original rater only; all fields land in one write.
func (s *RatingService) Update(ctx context.Context, actorID, ratingID string, in ports.UpdateRatingInput) (*domain.Rating, error) {
	rating, err := s.ratings.FindByID(ctx, ratingID)
	if err != nil {
		return nil, err
	}
	if rating.RaterID != actorID {
		return nil, domain.ErrAccessDenied
	}

	fields := map[string]any{}
	if in.Rating != nil {
		fields["rating"] = *in.Rating
	}
	if in.Review != nil {
		fields["review"] = strings.TrimSpace(*in.Review)
	}
	if in.Categories != nil {
		fields["categories"] = in.Categories.Sanitize()
	}
	if len(fields) == 0 {
		return rating, nil
	}
	fields["updated_at"] = time.Now().UTC()

	return s.ratings.Update(ctx, ratingID, fields)
}

// Delete removes a rating, original rater only.
func (s *RatingService) Delete(ctx context.Context, actorID, ratingID string) error {
	rating, err := s.ratings.FindByID(ctx, ratingID)
	if err != nil {
		return err
	}
	if rating.RaterID != actorID {
		return domain.ErrAccessDenied
	}
	return s.ratings.Delete(ctx, ratingID)
}

// Report flags a rating for moderation. Reporting the same rating twice by
// the same user is a conflict.
func (s *RatingService) Report(ctx context.Context, actorID, ratingID, reason string) error {
	rating, err := s.ratings.FindByID(ctx, ratingID)
	if err != nil {
		return err
	}
	if rating.Reported && rating.ReportedByID == actorID {
		return domain.ErrAlreadyReported
	}

	now := time.Now().UTC()
	_, err = s.ratings.Update(ctx, ratingID, map[string]any{
		"reported":       true,
		"report_reason":  reason,
		"reported_by_id": actorID,
		"reported_at":    now,
		"updated_at":     now,
	})
	return err
}
