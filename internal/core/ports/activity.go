package ports

import (
	"context"

	"github.com/SambridhiGhimire/Architech-bidding/internal/core/domain"
)

// ActivityRepository persists the audit feed.
type ActivityRepository interface {
	Insert(ctx context.Context, e *domain.ActivityEvent) error
	ListByProject(ctx context.Context, projectID string, limit int) ([]domain.ActivityEvent, error)
}

// ActivityService processes audit feed events and serves per-project feeds.
type ActivityService interface {
	Process(ctx context.Context, e domain.ActivityEvent) error
	ProjectFeed(ctx context.Context, projectID string, limit int) ([]domain.ActivityEvent, error)
}

// ActivityRecorder is the fire-and-forget sink services emit domain events
// into; the queue dispatcher implements it.
type ActivityRecorder interface {
	Record(e domain.ActivityEvent)
}
