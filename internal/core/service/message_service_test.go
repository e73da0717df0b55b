package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/SambridhiGhimire/Architech-bidding/internal/core/domain"
	"github.com/SambridhiGhimire/Architech-bidding/internal/core/ports"
)

type messageFixture struct {
	svc      *MessageService
	users    *memUsers
	projects *memProjects
	messages *memMessages
	cache    *cacheStub

	alice *domain.User
	bob   *domain.User
}

func newMessageFixture(t *testing.T) *messageFixture {
	t.Helper()
	users := newMemUsers()
	projects := newMemProjects()
	messages := newMemMessages()
	cache := newCacheStub()
	alice := users.add(&domain.User{Email: "alice@example.com", Role: domain.RoleProjectOwner, IsActive: true})
	bob := users.add(&domain.User{Email: "bob@example.com", Role: domain.RoleServiceProvider, IsActive: true})
	return &messageFixture{
		svc:      NewMessageService(messages, users, projects, cache, zerolog.Nop()),
		users:    users,
		projects: projects,
		messages: messages,
		cache:    cache,
		alice:    alice,
		bob:      bob,
	}
}

func TestSendMessage(t *testing.T) {
	f := newMessageFixture(t)

	msg, err := f.svc.Send(context.Background(), f.alice.ID, ports.SendMessageInput{
		RecipientID: f.bob.ID,
		Content:     "  hello there  ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Content != "hello there" {
		t.Fatalf("expected trimmed content, got %q", msg.Content)
	}
	if msg.Type != domain.MessageText || msg.Status != domain.MessageSent {
		t.Fatalf("unexpected type/status: %s/%s", msg.Type, msg.Status)
	}
	if msg.ConversationID != domain.ConversationID(f.alice.ID, f.bob.ID, "") {
		t.Fatalf("unexpected conversation id %q", msg.ConversationID)
	}
	if len(f.cache.invalidated) != 1 || f.cache.invalidated[0] != f.bob.ID {
		t.Fatalf("expected recipient cache invalidated, got %v", f.cache.invalidated)
	}
}

func TestSendMessageToSelf(t *testing.T) {
	f := newMessageFixture(t)

	_, err := f.svc.Send(context.Background(), f.alice.ID, ports.SendMessageInput{RecipientID: f.alice.ID, Content: "hi"})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestSendMessageUnknownRecipient(t *testing.T) {
	f := newMessageFixture(t)

	_, err := f.svc.Send(context.Background(), f.alice.ID, ports.SendMessageInput{RecipientID: "missing", Content: "hi"})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSendMessageWithAttachment(t *testing.T) {
	f := newMessageFixture(t)

	msg, err := f.svc.Send(context.Background(), f.alice.ID, ports.SendMessageInput{
		RecipientID: f.bob.ID,
		Content:     "site photo",
		Attachment:  &domain.Attachment{Filename: "x.jpg", MimeType: "image/jpeg"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Type != domain.MessageImage {
		t.Fatalf("expected image type, got %s", msg.Type)
	}

	msg, err = f.svc.Send(context.Background(), f.bob.ID, ports.SendMessageInput{
		RecipientID: f.alice.ID,
		Content:     "signed contract",
		Attachment:  &domain.Attachment{Filename: "x.pdf", MimeType: "application/pdf"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Type != domain.MessageFile {
		t.Fatalf("expected file type, got %s", msg.Type)
	}
}

func TestProjectScopedConversationIsSeparate(t *testing.T) {
	f := newMessageFixture(t)
	ctx := context.Background()
	project := f.projects.add(&domain.Project{Title: "House", OwnerID: f.alice.ID, Status: domain.ProjectLive})

	general, _ := f.svc.Send(ctx, f.alice.ID, ports.SendMessageInput{RecipientID: f.bob.ID, Content: "hi"})
	scoped, err := f.svc.Send(ctx, f.alice.ID, ports.SendMessageInput{RecipientID: f.bob.ID, Content: "about the house", ProjectID: project.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if general.ConversationID == scoped.ConversationID {
		t.Fatal("project-scoped thread must be distinct from the general thread")
	}

	// Same thread regardless of who sends.
	reply, _ := f.svc.Send(ctx, f.bob.ID, ports.SendMessageInput{RecipientID: f.alice.ID, Content: "sounds good", ProjectID: project.ID})
	if reply.ConversationID != scoped.ConversationID {
		t.Fatal("conversation id must be symmetric in participants")
	}
}

func TestSendMessageUnknownProject(t *testing.T) {
	f := newMessageFixture(t)

	_, err := f.svc.Send(context.Background(), f.alice.ID, ports.SendMessageInput{RecipientID: f.bob.ID, Content: "hi", ProjectID: "missing"})
	if !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestListConversations(t *testing.T) {
	f := newMessageFixture(t)
	ctx := context.Background()
	carol := f.users.add(&domain.User{Email: "carol@example.com", Role: domain.RoleServiceProvider, IsActive: true})

	if _, err := f.svc.Send(ctx, f.bob.ID, ports.SendMessageInput{RecipientID: f.alice.ID, Content: "first"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.svc.Send(ctx, carol.ID, ports.SendMessageInput{RecipientID: f.alice.ID, Content: "second"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := f.svc.ListConversations(ctx, f.alice.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 conversations, got %d", len(entries))
	}
	for _, e := range entries {
		if e.UnreadCount != 1 {
			t.Fatalf("expected 1 unread in each thread, got %d", e.UnreadCount)
		}
		if e.OtherParticipant == nil || e.OtherParticipant.ID == f.alice.ID {
			t.Fatal("expected the other participant, not the actor")
		}
	}
}

func TestGetConversationMarksReadAndOrders(t *testing.T) {
	f := newMessageFixture(t)
	ctx := context.Background()

	first, _ := f.svc.Send(ctx, f.bob.ID, ports.SendMessageInput{RecipientID: f.alice.ID, Content: "one"})
	f.messages.byID[first.ID].CreatedAt = time.Now().Add(-time.Minute)
	second, _ := f.svc.Send(ctx, f.bob.ID, ports.SendMessageInput{RecipientID: f.alice.ID, Content: "two"})

	detail, err := f.svc.GetConversation(ctx, f.alice.ID, first.ConversationID, 1, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(detail.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(detail.Messages))
	}
	if detail.Messages[0].ID != first.ID || detail.Messages[1].ID != second.ID {
		t.Fatal("expected chronological order")
	}
	for _, m := range detail.Messages {
		if !m.IsRead || m.Status != domain.MessageRead {
			t.Fatalf("expected message %s marked read", m.ID)
		}
	}
	if detail.OtherParticipant == nil || detail.OtherParticipant.ID != f.bob.ID {
		t.Fatal("expected the sender as the other participant")
	}

	// The store was flipped too, not just the returned page.
	if n, _ := f.messages.CountUnread(ctx, f.alice.ID); n != 0 {
		t.Fatalf("expected no unread left, got %d", n)
	}
}

func TestUnreadCountUsesCache(t *testing.T) {
	f := newMessageFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Send(ctx, f.bob.ID, ports.SendMessageInput{RecipientID: f.alice.ID, Content: "hi"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Miss populates the cache from the store.
	n, err := f.svc.UnreadCount(ctx, f.alice.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 unread, got %d", n)
	}
	if cached, ok := f.cache.Get(ctx, f.alice.ID); !ok || cached != 1 {
		t.Fatal("expected count cached after miss")
	}

	// A stale cache entry is served as-is until invalidated.
	f.cache.Set(ctx, f.alice.ID, 42)
	if n, _ := f.svc.UnreadCount(ctx, f.alice.ID); n != 42 {
		t.Fatalf("expected cached 42, got %d", n)
	}
}

func TestMarkReadRecipientOnly(t *testing.T) {
	f := newMessageFixture(t)
	ctx := context.Background()
	msg, _ := f.svc.Send(ctx, f.bob.ID, ports.SendMessageInput{RecipientID: f.alice.ID, Content: "hi"})

	if err := f.svc.MarkRead(ctx, f.bob.ID, msg.ID); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied for sender, got %v", err)
	}
	if err := f.svc.MarkRead(ctx, f.alice.ID, msg.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Idempotent once read.
	if err := f.svc.MarkRead(ctx, f.alice.ID, msg.ID); err != nil {
		t.Fatalf("second mark read must be a no-op, got %v", err)
	}
}

func TestDeleteMessageSenderOnly(t *testing.T) {
	f := newMessageFixture(t)
	ctx := context.Background()
	msg, _ := f.svc.Send(ctx, f.bob.ID, ports.SendMessageInput{RecipientID: f.alice.ID, Content: "hi"})

	if err := f.svc.Delete(ctx, f.alice.ID, msg.ID); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied for recipient, got %v", err)
	}
	if err := f.svc.Delete(ctx, f.bob.ID, msg.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.messages.FindByID(ctx, msg.ID); !errors.Is(err, domain.ErrMessageNotFound) {
		t.Fatal("expected message removed")
	}
}
