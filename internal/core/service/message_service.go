package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/SambridhiGhimire/Architech-bidding/internal/core/domain"
	"github.com/SambridhiGhimire/Architech-bidding/internal/core/ports"
)

// MessageService implements messaging on the derived-conversation model.
type MessageService struct {
	messages ports.MessageRepository
	users    ports.UserRepository
	projects ports.ProjectRepository
	unread   ports.UnreadCache
	logger   zerolog.Logger
}

func NewMessageService(
	messages ports.MessageRepository,
	users ports.UserRepository,
	projects ports.ProjectRepository,
	unread ports.UnreadCache,
	logger zerolog.Logger,
) *MessageService {
	return &MessageService{messages: messages, users: users, projects: projects, unread: unread, logger: logger}
}

// Send persists a message into the conversation derived from the two
// participants and the optional project scope. Attachment storage has
// already happened at the intake boundary, so a failed upload never reaches
// this point.
func (s *MessageService) Send(ctx context.Context, senderID string, in ports.SendMessageInput) (*domain.Message, error) {
	if in.RecipientID == senderID {
		return nil, fmt.Errorf("send message: cannot message yourself: %w", domain.ErrInvalidState)
	}
	if _, err := s.users.FindByID(ctx, in.RecipientID); err != nil {
		return nil, err
	}
	if in.ProjectID != "" {
		if _, err := s.projects.FindByID(ctx, in.ProjectID); err != nil {
			return nil, err
		}
	}

	msg := &domain.Message{
		ConversationID: domain.ConversationID(senderID, in.RecipientID, in.ProjectID),
		SenderID:       senderID,
		RecipientID:    in.RecipientID,
		Content:        strings.TrimSpace(in.Content),
		Type:           domain.MessageText,
		ProjectID:      in.ProjectID,
		Status:         domain.MessageSent,
		CreatedAt:      time.Now().UTC(),
	}
	if in.Attachment != nil {
		msg.Attachment = in.Attachment
		if strings.HasPrefix(in.Attachment.MimeType, "image/") {
			msg.Type = domain.MessageImage
		} else {
			msg.Type = domain.MessageFile
		}
	}

	created, err := s.messages.Insert(ctx, msg)
	if err != nil {
		s.logger.Error().Err(err).Str("conversation_id", msg.ConversationID).Msg("failed to send message")
		return nil, err
	}

	s.unread.Invalidate(ctx, in.RecipientID)
	return created, nil
}

// ListConversations groups the user's messages by conversation, newest
// thread first, each with its unread count and the other participant.
func (s *MessageService) ListConversations(ctx context.Context, userID string) ([]ports.ConversationEntry, error) {
	summaries, err := s.messages.Conversations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}

	out := make([]ports.ConversationEntry, 0, len(summaries))
	for _, sum := range summaries {
		other := sum.LastMessage.SenderID
		if other == userID {
			other = sum.LastMessage.RecipientID
		}
		participant, err := s.users.FindByID(ctx, other)
		if err != nil {
			// A vanished participant hides the thread rather than failing
			// the whole listing.
			s.logger.Warn().Str("user_id", other).Msg("conversation participant not found")
			continue
		}
		ref := participant.Ref()
		out = append(out, ports.ConversationEntry{
			ConversationID:   sum.ConversationID,
			LastMessage:      sum.LastMessage,
			OtherParticipant: &ref,
			UnreadCount:      sum.UnreadCount,
			ProjectID:        sum.LastMessage.ProjectID,
		})
	}
	return out, nil
}

// GetConversation returns a page of a thread in chronological order and
// marks every unread message addressed to the actor as read. Each read-flip
// is independent and idempotent; partial failure leaves the rest readable.
func (s *MessageService) GetConversation(ctx context.Context, userID, conversationID string, page, limit int) (*ports.ConversationDetail, error) {
	if limit <= 0 {
		limit = 50
	}
	if page <= 0 {
		page = 1
	}

	msgs, err := s.messages.ListByConversation(ctx, conversationID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("get conversation: %w", err)
	}

	flipped, err := s.messages.MarkConversationRead(ctx, conversationID, userID)
	if err != nil {
		s.logger.Warn().Err(err).Str("conversation_id", conversationID).Msg("failed to mark conversation read")
	} else if flipped > 0 {
		s.unread.Invalidate(ctx, userID)
		now := time.Now().UTC()
		for i := range msgs {
			if msgs[i].RecipientID == userID && !msgs[i].IsRead {
				msgs[i].IsRead = true
				msgs[i].ReadAt = &now
				msgs[i].Status = domain.MessageRead
			}
		}
	}

	detail := &ports.ConversationDetail{}
	if len(msgs) == 0 {
		detail.Messages = []domain.Message{}
		return detail, nil
	}

	// Oldest message identifies the other participant and project scope.
	first := msgs[len(msgs)-1]
	other := first.SenderID
	if other == userID {
		other = first.RecipientID
	}
	if participant, err := s.users.FindByID(ctx, other); err == nil {
		ref := participant.Ref()
		detail.OtherParticipant = &ref
	}
	detail.ProjectID = first.ProjectID

	// Stored newest first; served in chronological order.
	chronological := make([]domain.Message, len(msgs))
	for i, m := range msgs {
		chronological[len(msgs)-1-i] = m
	}
	detail.Messages = chronological
	return detail, nil
}

// MarkRead flips one message's read state, recipient only. Idempotent.
func (s *MessageService) MarkRead(ctx context.Context, actorID, messageID string) error {
	msg, err := s.messages.FindByID(ctx, messageID)
	if err != nil {
		return err
	}
	if !domain.CanMarkMessageRead(actorID, msg) {
		return domain.ErrAccessDenied
	}
	if msg.IsRead {
		return nil
	}
	if err := s.messages.MarkRead(ctx, messageID); err != nil {
		return err
	}
	s.unread.Invalidate(ctx, actorID)
	return nil
}

// UnreadCount serves the user's total unread count, cache first.
func (s *MessageService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	if count, ok := s.unread.Get(ctx, userID); ok {
		return count, nil
	}
	count, err := s.messages.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.unread.Set(ctx, userID, count)
	return count, nil
}

// Delete removes a message, sender only.
func (s *MessageService) Delete(ctx context.Context, actorID, messageID string) error {
	msg, err := s.messages.FindByID(ctx, messageID)
	if err != nil {
		return err
	}
	if !domain.CanDeleteMessage(actorID, msg) {
		return domain.ErrAccessDenied
	}
	if err := s.messages.Delete(ctx, messageID); err != nil {
		return err
	}
	// An unread deleted message no longer counts toward the recipient.
	if !msg.IsRead {
		s.unread.Invalidate(ctx, msg.RecipientID)
	}
	return nil
}
