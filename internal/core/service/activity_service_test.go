package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/SambridhiGhimire/Architech-bidding/internal/core/domain"
)

type memActivity struct {
	events []domain.ActivityEvent
	err    error
}

func (m *memActivity) Insert(_ context.Context, e *domain.ActivityEvent) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, *e)
	return nil
}

func (m *memActivity) ListByProject(_ context.Context, projectID string, limit int) ([]domain.ActivityEvent, error) {
	var out []domain.ActivityEvent
	for _, e := range m.events {
		if e.ProjectID == projectID {
			out = append(out, e)
		}
	}
	return out, nil
}

func TestActivityProcessPersists(t *testing.T) {
	repo := &memActivity{}
	svc := NewActivityService(repo, zerolog.Nop())

	err := svc.Process(context.Background(), domain.ActivityEvent{
		Kind:      domain.ActivityBidAccepted,
		ProjectID: "p1",
		ActorID:   "owner_1",
		SubjectID: "bid_1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.events) != 1 || repo.events[0].Kind != domain.ActivityBidAccepted {
		t.Fatalf("expected event persisted, got %+v", repo.events)
	}
}

func TestActivityProjectFeed(t *testing.T) {
	repo := &memActivity{}
	svc := NewActivityService(repo, zerolog.Nop())
	ctx := context.Background()

	for _, e := range []domain.ActivityEvent{
		{Kind: domain.ActivityProjectPublished, ProjectID: "p1"},
		{Kind: domain.ActivityBidSubmitted, ProjectID: "p1"},
		{Kind: domain.ActivityBidSubmitted, ProjectID: "p2"},
	} {
		if err := svc.Process(ctx, e); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	feed, err := svc.ProjectFeed(ctx, "p1", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(feed) != 2 {
		t.Fatalf("expected 2 events for p1, got %d", len(feed))
	}
	for _, e := range feed {
		if e.ProjectID != "p1" {
			t.Fatalf("unexpected project %s in feed", e.ProjectID)
		}
	}
}

func TestActivityProcessWrapsError(t *testing.T) {
	sentinel := errors.New("write failed")
	svc := NewActivityService(&memActivity{err: sentinel}, zerolog.Nop())

	err := svc.Process(context.Background(), domain.ActivityEvent{Kind: domain.ActivityBidSubmitted})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}
