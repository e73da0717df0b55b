package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/SambridhiGhimire/Architech-bidding/internal/core/domain"
	"github.com/SambridhiGhimire/Architech-bidding/internal/core/ports"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// ProjectService implements project use cases on top of the project, bid
// and user repositories.
type ProjectService struct {
	projects ports.ProjectRepository
	bids     ports.BidRepository
	users    ports.UserRepository
	activity ports.ActivityRecorder
	logger   zerolog.Logger
}

func NewProjectService(
	projects ports.ProjectRepository,
	bids ports.BidRepository,
	users ports.UserRepository,
	activity ports.ActivityRecorder,
	logger zerolog.Logger,
) *ProjectService {
	return &ProjectService{projects: projects, bids: bids, users: users, activity: activity, logger: logger}
}

func (s *ProjectService) Create(ctx context.Context, ownerID string, in ports.CreateProjectInput) (*domain.Project, error) {
	now := time.Now().UTC()
	project := &domain.Project{
		Title:           in.Title,
		Description:     in.Description,
		Category:        in.Category,
		Location:        in.Location,
		Budget:          in.Budget,
		Timeline:        in.Timeline,
		Specifications:  in.Specifications,
		Files:           in.Files,
		OwnerID:         ownerID,
		Status:          domain.ProjectDraft,
		BiddingDeadline: in.BiddingDeadline,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if in.Publish {
		project.Status = domain.ProjectLive
		project.IsPublic = true
	}

	created, err := s.projects.Create(ctx, project)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create project")
		return nil, err
	}

	if in.Publish {
		s.activity.Record(domain.ActivityEvent{
			Kind:      domain.ActivityProjectPublished,
			ProjectID: created.ID,
			ActorID:   ownerID,
			Timestamp: now,
		})
	}

	s.logger.Info().Str("project_id", created.ID).Str("owner_id", ownerID).Msg("project created")
	return created, nil
}

func (s *ProjectService) List(ctx context.Context, in ports.ListProjectsInput) (*ports.ProjectPage, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	page := in.Page
	if page <= 0 {
		page = 1
	}

	filter := ports.ListProjectsFilter{
		Category:  in.Category,
		City:      in.City,
		State:     in.State,
		Status:    in.Status,
		MinBudget: in.MinBudget,
		MaxBudget: in.MaxBudget,
		Page:      page,
		Limit:     limit,
	}
	if in.MyProjects && in.ActorID != "" {
		filter.OwnerID = in.ActorID
	} else {
		filter.PublicOnly = true
	}

	projects, total, err := s.projects.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	now := time.Now().UTC()
	items := make([]domain.PublicProject, 0, len(projects))
	for _, p := range projects {
		count, err := s.bids.CountByProject(ctx, p.ID)
		if err != nil {
			s.logger.Warn().Err(err).Str("project_id", p.ID).Msg("failed to count bids")
		}
		owner := s.userRef(ctx, p.OwnerID)
		architect := s.userRef(ctx, p.AssignedArchitectID)
		items = append(items, domain.PublicProjectView(p, owner, architect, int(count), now))
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ProjectPage{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (s *ProjectService) Get(ctx context.Context, actorID, projectID string) (*ports.GetProjectResult, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	bids, err := s.bids.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	awardedBidderID := awardedBidder(project, bids)

	if !domain.CanViewProject(actorID, project, awardedBidderID) {
		return nil, domain.ErrAccessDenied
	}

	now := time.Now().UTC()
	owner := s.userRef(ctx, project.OwnerID)
	architect := s.userRef(ctx, project.AssignedArchitectID)

	// Owner and awarded bidder get the full document; everyone else gets the
	// redacted public view with derived counters.
	if actorID == project.OwnerID || (awardedBidderID != "" && actorID == awardedBidderID) {
		return &ports.GetProjectResult{Detail: &ports.ProjectDetail{
			Project:           project,
			Owner:             owner,
			AssignedArchitect: architect,
			BidCount:          len(bids),
			DaysUntilDeadline: project.DaysUntilDeadline(now),
		}}, nil
	}

	public := domain.PublicProjectView(project, owner, architect, len(bids), now)
	return &ports.GetProjectResult{Public: &public}, nil
}

func (s *ProjectService) Update(ctx context.Context, actorID, projectID string, in ports.UpdateProjectInput) (*domain.Project, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !domain.CanManageProject(actorID, project) {
		return nil, domain.ErrAccessDenied
	}

	fields := map[string]any{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Category != nil {
		fields["category"] = *in.Category
	}
	if in.Location != nil {
		fields["location"] = *in.Location
	}
	if in.Budget != nil {
		fields["budget"] = *in.Budget
	}
	if in.Timeline != nil {
		fields["timeline"] = *in.Timeline
	}
	if in.Specifications != nil {
		fields["specifications"] = *in.Specifications
	}
	if in.BiddingDeadline != nil {
		fields["bidding_deadline"] = *in.BiddingDeadline
	}
	if in.Files != nil {
		appendFileFields(fields, project, in.Files)
	}
	if len(fields) == 0 {
		return project, nil
	}
	fields["updated_at"] = time.Now().UTC()

	// All validated fields land in one write so a failed update never
	// persists a subset.
	updated, err := s.projects.Update(ctx, projectID, fields)
	if err != nil {
		s.logger.Error().Err(err).Str("project_id", projectID).Msg("failed to update project")
		return nil, err
	}
	return updated, nil
}

func (s *ProjectService) Delete(ctx context.Context, actorID, projectID string) error {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	if !domain.CanManageProject(actorID, project) {
		return domain.ErrAccessDenied
	}

	// A project with any submitted bid, whatever its status, can never be
	// deleted.
	count, err := s.bids.CountByProject(ctx, projectID)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if count > 0 {
		return domain.ErrProjectHasBids
	}

	if err := s.projects.Delete(ctx, projectID); err != nil {
		return err
	}
	s.logger.Info().Str("project_id", projectID).Msg("project deleted")
	return nil
}

func (s *ProjectService) Publish(ctx context.Context, actorID, projectID string) (*domain.Project, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !domain.CanManageProject(actorID, project) {
		return nil, domain.ErrAccessDenied
	}
	// Only drafts go live. Re-publishing an awarded project would reopen
	// the live-to-in_progress award transition and allow a second winner.
	if project.Status != domain.ProjectDraft {
		return nil, fmt.Errorf("publish project: not a draft: %w", domain.ErrInvalidState)
	}

	updated, err := s.projects.Update(ctx, projectID, map[string]any{
		"status":     domain.ProjectLive,
		"is_public":  true,
		"updated_at": time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(domain.ActivityEvent{
		Kind:      domain.ActivityProjectPublished,
		ProjectID: projectID,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
	})
	s.logger.Info().Str("project_id", projectID).Msg("project published")
	return updated, nil
}

// userRef resolves a user id to its redacted reference; lookups of absent or
// empty ids yield nil rather than an error.
func (s *ProjectService) userRef(ctx context.Context, id string) *domain.UserRef {
	if id == "" {
		return nil
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil
	}
	ref := user.Ref()
	return &ref
}

// awardedBidder returns the provider of the accepted bid, if any.
func awardedBidder(p *domain.Project, bids []domain.Bid) string {
	if p.AwardedBidID == "" {
		return ""
	}
	for _, b := range bids {
		if b.ID == p.AwardedBidID && b.Status == domain.BidAccepted {
			return b.ServiceProviderID
		}
	}
	return ""
}

// appendFileFields merges newly stored uploads into the existing file lists.
func appendFileFields(fields map[string]any, p *domain.Project, f *domain.ProjectFiles) {
	if len(f.PropertyImages) > 0 {
		fields["files.property_images"] = append(p.Files.PropertyImages, f.PropertyImages...)
	}
	if len(f.BOQ) > 0 {
		fields["files.boq"] = append(p.Files.BOQ, f.BOQ...)
	}
	if len(f.Drawings) > 0 {
		fields["files.drawings"] = append(p.Files.Drawings, f.Drawings...)
	}
	if len(f.OtherDocuments) > 0 {
		fields["files.other_documents"] = append(p.Files.OtherDocuments, f.OtherDocuments...)
	}
}
