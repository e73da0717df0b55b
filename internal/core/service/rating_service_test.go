package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/SambridhiGhimire/Architech-bidding/internal/core/domain"
	"github.com/SambridhiGhimire/Architech-bidding/internal/core/ports"
)

type ratingFixture struct {
	svc      *RatingService
	users    *memUsers
	projects *memProjects
	bids     *memBids
	ratings  *memRatings
	recorder *recorderStub

	owner      *domain.User
	contractor *domain.User
	project    *domain.Project
}

// newRatingFixture seeds an awarded project: the contractor's bid was
// accepted and the project moved to in_progress.
func newRatingFixture(t *testing.T) *ratingFixture {
	t.Helper()
	users := newMemUsers()
	projects := newMemProjects()
	bids := newMemBids()
	ratings := newMemRatings()
	recorder := &recorderStub{}

	owner := users.add(&domain.User{Email: "owner@example.com", Role: domain.RoleProjectOwner, IsActive: true})
	contractor := users.add(&domain.User{Email: "contractor@example.com", Role: domain.RoleServiceProvider, IsActive: true})
	project := projects.add(&domain.Project{Title: "House", OwnerID: owner.ID, Status: domain.ProjectInProgress})
	bid, _ := bids.Create(context.Background(), &domain.Bid{ProjectID: project.ID, ServiceProviderID: contractor.ID, Status: domain.BidAccepted})
	project.AwardedBidID = bid.ID

	return &ratingFixture{
		svc:        NewRatingService(ratings, projects, bids, users, recorder, zerolog.Nop()),
		users:      users,
		projects:   projects,
		bids:       bids,
		ratings:    ratings,
		recorder:   recorder,
		owner:      owner,
		contractor: contractor,
		project:    project,
	}
}

func TestSubmitProjectRating(t *testing.T) {
	f := newRatingFixture(t)

	rating, err := f.svc.Submit(context.Background(), f.owner.ID, ports.SubmitRatingInput{
		ProjectID:   f.project.ID,
		RatedUserID: f.contractor.ID,
		Rating:      5,
		Review:      "  excellent work  ",
		Type:        domain.RatingOwnerToContractor,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rating.Review != "excellent work" {
		t.Fatalf("expected trimmed review, got %q", rating.Review)
	}
	if rating.Status != domain.RatingApproved {
		t.Fatalf("expected approved status, got %s", rating.Status)
	}
	if len(f.recorder.events) != 1 || f.recorder.events[0].Kind != domain.ActivityRatingSubmitted {
		t.Fatalf("expected rating_submitted event, got %v", f.recorder.kinds())
	}
}

func TestSubmitRatingSelf(t *testing.T) {
	f := newRatingFixture(t)

	_, err := f.svc.Submit(context.Background(), f.owner.ID, ports.SubmitRatingInput{RatedUserID: f.owner.ID, Rating: 5})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestSubmitRatingProjectNotRateable(t *testing.T) {
	f := newRatingFixture(t)
	f.project.Status = domain.ProjectLive

	_, err := f.svc.Submit(context.Background(), f.owner.ID, ports.SubmitRatingInput{
		ProjectID:   f.project.ID,
		RatedUserID: f.contractor.ID,
		Rating:      4,
	})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestSubmitRatingNonParticipant(t *testing.T) {
	f := newRatingFixture(t)
	outsider := f.users.add(&domain.User{Email: "outsider@example.com", Role: domain.RoleServiceProvider, IsActive: true})

	_, err := f.svc.Submit(context.Background(), outsider.ID, ports.SubmitRatingInput{
		ProjectID:   f.project.ID,
		RatedUserID: f.owner.ID,
		Rating:      1,
	})
	if !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
}

func TestSubmitRatingDuplicate(t *testing.T) {
	f := newRatingFixture(t)
	ctx := context.Background()
	in := ports.SubmitRatingInput{ProjectID: f.project.ID, RatedUserID: f.contractor.ID, Rating: 5}

	if _, err := f.svc.Submit(ctx, f.owner.ID, in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	in.Rating = 4
	_, err := f.svc.Submit(ctx, f.owner.ID, in)
	if !errors.Is(err, domain.ErrDuplicateRating) {
		t.Fatalf("expected ErrDuplicateRating, got %v", err)
	}
}

func TestSubmitRatingConcurrentDuplicate(t *testing.T) {
	f := newRatingFixture(t)
	in := ports.SubmitRatingInput{ProjectID: f.project.ID, RatedUserID: f.contractor.ID, Rating: 5}

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Submit(context.Background(), f.owner.ID, in)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var successes, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, domain.ErrDuplicateRating):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 || conflicts != 1 {
		t.Fatalf("expected one success and one conflict, got %d success %d conflict", successes, conflicts)
	}
	if ratings, _ := f.ratings.ListByProject(context.Background(), f.project.ID); len(ratings) != 1 {
		t.Fatalf("expected a single stored rating, got %d", len(ratings))
	}
}

func TestSubmitGeneralRatingSeparateFromProjectScope(t *testing.T) {
	f := newRatingFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Submit(ctx, f.owner.ID, ports.SubmitRatingInput{ProjectID: f.project.ID, RatedUserID: f.contractor.ID, Rating: 5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A general rating for the same pair is a distinct scope.
	if _, err := f.svc.Submit(ctx, f.owner.ID, ports.SubmitRatingInput{RatedUserID: f.contractor.ID, Rating: 4, Type: domain.RatingGeneral}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A second general rating conflicts.
	_, err := f.svc.Submit(ctx, f.owner.ID, ports.SubmitRatingInput{RatedUserID: f.contractor.ID, Rating: 3, Type: domain.RatingGeneral})
	if !errors.Is(err, domain.ErrDuplicateRating) {
		t.Fatalf("expected ErrDuplicateRating, got %v", err)
	}
}

func TestSubmitRatingSanitizesCategories(t *testing.T) {
	f := newRatingFixture(t)

	rating, err := f.svc.Submit(context.Background(), f.owner.ID, ports.SubmitRatingInput{
		ProjectID:   f.project.ID,
		RatedUserID: f.contractor.ID,
		Rating:      4,
		Categories:  domain.CategoryScores{Communication: 5, Quality: 9, Timeliness: 0, Value: -2},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rating.Categories.Communication != 5 {
		t.Fatal("in-range category must survive")
	}
	if rating.Categories.Quality != 0 || rating.Categories.Value != 0 {
		t.Fatalf("out-of-range categories must be dropped, got %+v", rating.Categories)
	}
}

func TestUserRatingSummary(t *testing.T) {
	f := newRatingFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Submit(ctx, f.owner.ID, ports.SubmitRatingInput{ProjectID: f.project.ID, RatedUserID: f.contractor.ID, Rating: 5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	other := f.users.add(&domain.User{Email: "other@example.com", Role: domain.RoleProjectOwner, IsActive: true})
	if _, err := f.svc.Submit(ctx, other.ID, ports.SubmitRatingInput{RatedUserID: f.contractor.ID, Rating: 3, Type: domain.RatingGeneral}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	summary, err := f.svc.UserSummary(ctx, f.contractor.ID, 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Total != 2 {
		t.Fatalf("expected 2 ratings, got %d", summary.Total)
	}
	if summary.Average != 4 {
		t.Fatalf("expected average 4, got %v", summary.Average)
	}
	if summary.Role != domain.RoleServiceProvider {
		t.Fatalf("expected provider role, got %s", summary.Role)
	}
	if len(summary.Distribution) != 2 {
		t.Fatalf("expected 2 distribution buckets, got %d", len(summary.Distribution))
	}
	if summary.Distribution[0].Rating != 5 || summary.Distribution[1].Rating != 3 {
		t.Fatalf("expected buckets ordered 5 down to 1, got %+v", summary.Distribution)
	}
}

func TestListRatingsForProjectParticipantsOnly(t *testing.T) {
	f := newRatingFixture(t)
	ctx := context.Background()
	if _, err := f.svc.Submit(ctx, f.owner.ID, ports.SubmitRatingInput{ProjectID: f.project.ID, RatedUserID: f.contractor.ID, Rating: 5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ratings, err := f.svc.ListForProject(ctx, f.contractor.ID, f.project.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ratings) != 1 {
		t.Fatalf("expected 1 rating, got %d", len(ratings))
	}

	outsider := f.users.add(&domain.User{Email: "outsider@example.com", Role: domain.RoleServiceProvider, IsActive: true})
	if _, err := f.svc.ListForProject(ctx, outsider.ID, f.project.ID); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
}

func TestUpdateRatingRaterOnly(t *testing.T) {
	f := newRatingFixture(t)
	ctx := context.Background()
	rating, _ := f.svc.Submit(ctx, f.owner.ID, ports.SubmitRatingInput{ProjectID: f.project.ID, RatedUserID: f.contractor.ID, Rating: 5})

	score := 3
	updated, err := f.svc.Update(ctx, f.owner.ID, rating.ID, ports.UpdateRatingInput{Rating: &score})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Rating != 3 {
		t.Fatalf("expected rating 3, got %d", updated.Rating)
	}

	if _, err := f.svc.Update(ctx, f.contractor.ID, rating.ID, ports.UpdateRatingInput{Rating: &score}); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
}

func TestDeleteRatingRaterOnly(t *testing.T) {
	f := newRatingFixture(t)
	ctx := context.Background()
	rating, _ := f.svc.Submit(ctx, f.owner.ID, ports.SubmitRatingInput{ProjectID: f.project.ID, RatedUserID: f.contractor.ID, Rating: 5})

	if err := f.svc.Delete(ctx, f.contractor.ID, rating.ID); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
	if err := f.svc.Delete(ctx, f.owner.ID, rating.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReportRating(t *testing.T) {
	f := newRatingFixture(t)
	ctx := context.Background()
	rating, _ := f.svc.Submit(ctx, f.owner.ID, ports.SubmitRatingInput{ProjectID: f.project.ID, RatedUserID: f.contractor.ID, Rating: 1, Review: "spam"})

	if err := f.svc.Report(ctx, f.contractor.ID, rating.ID, "abusive"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reported, _ := f.ratings.FindByID(ctx, rating.ID)
	if !reported.Reported || reported.ReportedByID != f.contractor.ID {
		t.Fatalf("expected report recorded, got %+v", reported)
	}

	err := f.svc.Report(ctx, f.contractor.ID, rating.ID, "still abusive")
	if !errors.Is(err, domain.ErrAlreadyReported) {
		t.Fatalf("expected ErrAlreadyReported, got %v", err)
	}
}
