package ports

import (
	"context"

	"github.com/SambridhiGhimire/Architech-bidding/internal/core/domain"
)

// ListProjectsFilter carries all query parameters for browsing projects.
type ListProjectsFilter struct {
	OwnerID   string // non-empty = only this owner's projects
	Status    string
	Category  string
	City      string // case-insensitive partial match
	State     string // case-insensitive partial match
	MinBudget float64
	MaxBudget float64
	// PublicOnly restricts results to live, publicly browsable projects.
	PublicOnly bool
	Page       int // 1-based
	Limit      int
}

// ProjectRepository defines persistence for projects.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	// List returns a page of projects matching filter and the total count.
	List(ctx context.Context, filter ListProjectsFilter) ([]*domain.Project, int64, error)
	// Update applies the given fields to the project document in one write.
	Update(ctx context.Context, id string, fields map[string]any) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
	// Award conditionally moves the project from live to in_progress and
	// records the winning bid. Returns false when the project was not live
	// any more, which serializes concurrent award attempts to one winner.
	Award(ctx context.Context, projectID, bidID string) (bool, error)
}
