package ports

import (
	"context"
	"time"

	"github.com/SambridhiGhimire/Architech-bidding/internal/core/domain"
)

// CreateProjectInput carries everything needed to create a project.
// Files have already passed the intake boundary; only references arrive here.
type CreateProjectInput struct {
	Title           string
	Description     string
	Category        string
	Location        domain.Location
	Budget          domain.Budget
	Timeline        domain.Timeline
	Specifications  domain.Specifications
	BiddingDeadline time.Time
	Files           domain.ProjectFiles
	// Publish immediately creates the project live and public; otherwise
	// it stays a draft visible only to its owner.
	Publish bool
}

// UpdateProjectInput carries a partial project mutation. Nil pointers leave
// the corresponding field untouched; the update persists all-or-nothing.
type UpdateProjectInput struct {
	Title           *string
	Description     *string
	Category        *string
	Location        *domain.Location
	Budget          *domain.Budget
	Timeline        *domain.Timeline
	Specifications  *domain.Specifications
	BiddingDeadline *time.Time
	Files           *domain.ProjectFiles // appended per field, not replaced
}

// ProjectDetail is the full view returned to the owner (and awarded bidder).
type ProjectDetail struct {
	Project           *domain.Project
	Owner             *domain.UserRef
	AssignedArchitect *domain.UserRef
	BidCount          int
	DaysUntilDeadline int
}

// ProjectPage is one page of a project listing.
type ProjectPage struct {
	Items      []domain.PublicProject
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ListProjectsInput carries browse/list parameters plus the actor identity.
type ListProjectsInput struct {
	ActorID    string
	MyProjects bool
	Category   string
	City       string
	State      string
	Status     string
	MinBudget  float64
	MaxBudget  float64
	Page       int
	Limit      int
}

// GetProjectResult is either the full detail (for the owner or awarded
// bidder) or the redacted public view.
type GetProjectResult struct {
	Detail *ProjectDetail
	Public *domain.PublicProject
}

// ProjectService defines use-case operations for projects.
type ProjectService interface {
	Create(ctx context.Context, ownerID string, in CreateProjectInput) (*domain.Project, error)
	List(ctx context.Context, in ListProjectsInput) (*ProjectPage, error)
	Get(ctx context.Context, actorID, projectID string) (*GetProjectResult, error)
	Update(ctx context.Context, actorID, projectID string, in UpdateProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, actorID, projectID string) error
	Publish(ctx context.Context, actorID, projectID string) (*domain.Project, error)
}
