package ports

import (
	"context"

	"github.com/SambridhiGhimire/Architech-bidding/internal/core/domain"
)

// SendMessageInput carries a new message. Attachment, when present, has
// already been stored by the intake boundary.
type SendMessageInput struct {
	RecipientID string
	Content     string
	ProjectID   string
	Attachment  *domain.Attachment
}

// ConversationEntry is a thread summary enriched with the other participant.
type ConversationEntry struct {
	ConversationID   string
	LastMessage      domain.Message
	OtherParticipant *domain.UserRef
	UnreadCount      int64
	ProjectID        string
}

// ConversationDetail is the content of one opened thread; opening it marks
// the actor's unread messages read.
type ConversationDetail struct {
	Messages         []domain.Message // chronological order
	OtherParticipant *domain.UserRef
	ProjectID        string
}

// MessageService defines messaging use cases.
type MessageService interface {
	Send(ctx context.Context, senderID string, in SendMessageInput) (*domain.Message, error)
	ListConversations(ctx context.Context, userID string) ([]ConversationEntry, error)
	GetConversation(ctx context.Context, userID, conversationID string, page, limit int) (*ConversationDetail, error)
	MarkRead(ctx context.Context, actorID, messageID string) error
	UnreadCount(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, actorID, messageID string) error
}
