package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/SambridhiGhimire/Architech-bidding/internal/core/domain"
	"github.com/SambridhiGhimire/Architech-bidding/internal/core/ports"
)

// BidService governs the bid lifecycle and the award state machine.
type BidService struct {
	bids     ports.BidRepository
	projects ports.ProjectRepository
	users    ports.UserRepository
	activity ports.ActivityRecorder
	logger   zerolog.Logger
}

func NewBidService(
	bids ports.BidRepository,
	projects ports.ProjectRepository,
	users ports.UserRepository,
	activity ports.ActivityRecorder,
	logger zerolog.Logger,
) *BidService {
	return &BidService{bids: bids, projects: projects, users: users, activity: activity, logger: logger}
}

// Submit appends a pending bid to a live project. Duplicate submissions by
// the same provider are rejected by the store's uniqueness constraint, so
// concurrent submissions cannot slip past a check-then-insert race.
func (s *BidService) Submit(ctx context.Context, providerID string, in ports.SubmitBidInput) (*domain.Bid, error) {
	project, err := s.projects.FindByID(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.Status != domain.ProjectLive {
		return nil, fmt.Errorf("submit bid: project not accepting bids: %w", domain.ErrInvalidState)
	}
	// The project is known live here, so a closed window can only mean the
	// deadline. Bids at the exact deadline instant are refused.
	now := time.Now().UTC()
	if !project.IsBiddingOpen(now) {
		return nil, domain.ErrDeadlinePassed
	}

	bid := &domain.Bid{
		ProjectID:         in.ProjectID,
		ServiceProviderID: providerID,
		Amount:            in.Amount,
		Timeline:          in.Timeline,
		Message:           in.Message,
		Documents:         in.Documents,
		Status:            domain.BidPending,
		SubmittedAt:       now,
		UpdatedAt:         now,
	}

	created, err := s.bids.Create(ctx, bid)
	if err != nil {
		return nil, err
	}

	s.activity.Record(domain.ActivityEvent{
		Kind:      domain.ActivityBidSubmitted,
		ProjectID: in.ProjectID,
		ActorID:   providerID,
		SubjectID: created.ID,
		Timestamp: now,
	})
	s.logger.Info().Str("project_id", in.ProjectID).Str("bid_id", created.ID).Str("provider_id", providerID).Msg("bid submitted")
	return created, nil
}

// Update mutates a bid while its project is still live. Only amount,
// timeline, message and appended documents are mutable; everything lands in
// a single write.
func (s *BidService) Update(ctx context.Context, actorID, bidID string, in ports.UpdateBidInput) (*domain.Bid, error) {
	bid, err := s.bids.FindByID(ctx, bidID)
	if err != nil {
		return nil, err
	}
	if !domain.CanManageBid(actorID, bid) {
		return nil, domain.ErrAccessDenied
	}

	project, err := s.projects.FindByID(ctx, bid.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.Status != domain.ProjectLive {
		return nil, fmt.Errorf("update bid: bidding closed: %w", domain.ErrInvalidState)
	}

	fields := map[string]any{}
	if in.Amount != nil {
		fields["amount"] = *in.Amount
	}
	if in.Timeline != nil {
		fields["timeline"] = *in.Timeline
	}
	if in.Message != nil {
		fields["message"] = *in.Message
	}
	if len(in.Documents) > 0 {
		fields["documents"] = append(bid.Documents, in.Documents...)
	}
	if len(fields) == 0 {
		return bid, nil
	}
	fields["updated_at"] = time.Now().UTC()

	return s.bids.Update(ctx, bidID, fields)
}

// Withdraw removes the provider's bid entirely while the project is live.
func (s *BidService) Withdraw(ctx context.Context, actorID, bidID string) error {
	bid, err := s.bids.FindByID(ctx, bidID)
	if err != nil {
		return err
	}
	if !domain.CanManageBid(actorID, bid) {
		return domain.ErrAccessDenied
	}

	project, err := s.projects.FindByID(ctx, bid.ProjectID)
	if err != nil {
		return err
	}
	if project.Status != domain.ProjectLive {
		return fmt.Errorf("withdraw bid: bidding closed: %w", domain.ErrInvalidState)
	}

	if err := s.bids.Delete(ctx, bidID); err != nil {
		return err
	}

	s.activity.Record(domain.ActivityEvent{
		Kind:      domain.ActivityBidWithdrawn,
		ProjectID: bid.ProjectID,
		ActorID:   actorID,
		SubjectID: bidID,
		Timestamp: time.Now().UTC(),
	})
	s.logger.Info().Str("bid_id", bidID).Str("project_id", bid.ProjectID).Msg("bid withdrawn")
	return nil
}

// Accept awards the project to one bid: the target becomes accepted, every
// sibling is rejected, the project moves to in_progress and records the
// awarded bid. The live -> in_progress transition is a conditional update,
// so exactly one of any concurrent Accept calls wins; the rest observe the
// project as no longer live. Re-accepting the already awarded bid is a
// no-op success.
func (s *BidService) Accept(ctx context.Context, actorID, projectID, bidID string) (*ports.AwardResult, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !domain.CanManageProject(actorID, project) {
		return nil, domain.ErrAccessDenied
	}

	bid, err := s.bids.FindByID(ctx, bidID)
	if err != nil {
		return nil, err
	}
	if bid.ProjectID != projectID {
		return nil, domain.ErrBidNotFound
	}

	if project.AwardedBidID == bid.ID && bid.Status == domain.BidAccepted {
		return &ports.AwardResult{
			ProjectStatus:  domain.ProjectInProgress,
			AwardedBid:     bid,
			AlreadyAwarded: true,
		}, nil
	}
	if bid.Status == domain.BidRejected {
		return nil, fmt.Errorf("accept bid: bid already rejected: %w", domain.ErrInvalidState)
	}

	won, err := s.projects.Award(ctx, projectID, bidID)
	if err != nil {
		return nil, fmt.Errorf("accept bid: %w", err)
	}
	if !won {
		// The project left the live state between our read and the award
		// attempt. A concurrent replay of the same acceptance is still a
		// success; anything else is an invalid second award.
		current, ferr := s.projects.FindByID(ctx, projectID)
		if ferr == nil && current.AwardedBidID == bidID {
			accepted, berr := s.bids.FindByID(ctx, bidID)
			if berr == nil {
				return &ports.AwardResult{
					ProjectStatus:  current.Status,
					AwardedBid:     accepted,
					AlreadyAwarded: true,
				}, nil
			}
		}
		return nil, fmt.Errorf("accept bid: project already awarded or not live: %w", domain.ErrInvalidState)
	}

	if err := s.bids.SetStatus(ctx, bidID, domain.BidAccepted); err != nil {
		return nil, fmt.Errorf("accept bid: %w", err)
	}
	if err := s.bids.RejectSiblings(ctx, projectID, bidID); err != nil {
		return nil, fmt.Errorf("accept bid: reject siblings: %w", err)
	}

	bid.Status = domain.BidAccepted
	s.activity.Record(domain.ActivityEvent{
		Kind:      domain.ActivityBidAccepted,
		ProjectID: projectID,
		ActorID:   actorID,
		SubjectID: bidID,
		Timestamp: time.Now().UTC(),
	})
	s.logger.Info().Str("project_id", projectID).Str("bid_id", bidID).Msg("bid accepted, project awarded")

	return &ports.AwardResult{
		ProjectStatus: domain.ProjectInProgress,
		AwardedBid:    bid,
	}, nil
}

// Reject marks one bid rejected without touching the project state.
// Idempotent on an already rejected bid; an accepted bid cannot be demoted.
func (s *BidService) Reject(ctx context.Context, actorID, projectID, bidID string) error {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	if !domain.CanManageProject(actorID, project) {
		return domain.ErrAccessDenied
	}

	bid, err := s.bids.FindByID(ctx, bidID)
	if err != nil {
		return err
	}
	if bid.ProjectID != projectID {
		return domain.ErrBidNotFound
	}
	if bid.Status == domain.BidRejected {
		return nil
	}
	if bid.Status == domain.BidAccepted {
		return fmt.Errorf("reject bid: bid already accepted: %w", domain.ErrInvalidState)
	}

	if err := s.bids.SetStatus(ctx, bidID, domain.BidRejected); err != nil {
		return err
	}

	s.activity.Record(domain.ActivityEvent{
		Kind:      domain.ActivityBidRejected,
		ProjectID: projectID,
		ActorID:   actorID,
		SubjectID: bidID,
		Timestamp: time.Now().UTC(),
	})
	return nil
}

// ListForProject returns all bids on a project, owner only.
func (s *BidService) ListForProject(ctx context.Context, actorID, projectID string) ([]domain.Bid, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !domain.CanManageProject(actorID, project) {
		return nil, domain.ErrAccessDenied
	}
	return s.bids.ListByProject(ctx, projectID)
}

// ListMine returns the provider's bids joined with project summaries, newest
// submission first.
func (s *BidService) ListMine(ctx context.Context, providerID string) ([]ports.ProviderBid, error) {
	bids, err := s.bids.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	out := make([]ports.ProviderBid, 0, len(bids))
	for _, b := range bids {
		entry := ports.ProviderBid{Bid: b}
		if project, err := s.projects.FindByID(ctx, b.ProjectID); err == nil {
			entry.ProjectTitle = project.Title
			entry.ProjectCategory = project.Category
			entry.ProjectStatus = project.Status
			entry.ProjectLocation = project.Location
			if owner, err := s.users.FindByID(ctx, project.OwnerID); err == nil {
				ref := owner.Ref()
				entry.ProjectOwner = &ref
			}
		}
		out = append(out, entry)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Bid.SubmittedAt.After(out[j].Bid.SubmittedAt)
	})
	return out, nil
}
