package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/SambridhiGhimire/Architech-bidding/internal/core/domain"
	"github.com/SambridhiGhimire/Architech-bidding/internal/core/ports"
)

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns the audit feed processor consumed by the queue
// dispatcher workers.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

func (s *activityService) Process(ctx context.Context, e domain.ActivityEvent) error {
	if err := s.repo.Insert(ctx, &e); err != nil {
		return fmt.Errorf("record activity: %w", err)
	}
	s.log.Debug().
		Str("kind", string(e.Kind)).
		Str("project_id", e.ProjectID).
		Str("actor_id", e.ActorID).
		Msg("activity recorded")
	return nil
}

const defaultFeedLimit = 50

// ProjectFeed returns a project's recent audit events, newest first.
func (s *activityService) ProjectFeed(ctx context.Context, projectID string, limit int) ([]domain.ActivityEvent, error) {
	if limit <= 0 || limit > defaultFeedLimit {
		limit = defaultFeedLimit
	}
	events, err := s.repo.ListByProject(ctx, projectID, limit)
	if err != nil {
		return nil, fmt.Errorf("project feed: %w", err)
	}
	return events, nil
}
