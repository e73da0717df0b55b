package ports

import (
	"context"

	"github.com/SambridhiGhimire/Architech-bidding/internal/core/domain"
)

// ConversationSummary is one grouped thread in a user's conversation list:
// the most recent message plus the count of messages still unread by the
// user.
type ConversationSummary struct {
	ConversationID string
	LastMessage    domain.Message
	UnreadCount    int64
}

// MessageRepository defines persistence for messages.
type MessageRepository interface {
	Insert(ctx context.Context, m *domain.Message) (*domain.Message, error)
	FindByID(ctx context.Context, id string) (*domain.Message, error)
	// ListByConversation returns messages of a thread, newest first.
	ListByConversation(ctx context.Context, conversationID string, page, limit int) ([]domain.Message, error)
	// Conversations groups the user's messages by conversation id, newest
	// thread first.
	Conversations(ctx context.Context, userID string) ([]ConversationSummary, error)
	// MarkConversationRead flips every unread message addressed to userID in
	// the conversation to read. Each flip is independent and idempotent;
	// returns the number of messages flipped.
	MarkConversationRead(ctx context.Context, conversationID, userID string) (int64, error)
	MarkRead(ctx context.Context, id string) error
	CountUnread(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, id string) error
}

// UnreadCache caches per-user unread counts; a miss falls through to the
// repository. Implementations must tolerate and log backend failures.
type UnreadCache interface {
	Get(ctx context.Context, userID string) (int64, bool)
	Set(ctx context.Context, userID string, count int64)
	Invalidate(ctx context.Context, userIDs ...string)
}
