package domain

import (
	"sort"
	"time"
)

// MessageType distinguishes plain text from attachment-bearing messages.
type MessageType string

const (
	MessageText  MessageType = "text"
	MessageFile  MessageType = "file"
	MessageImage MessageType = "image"
)

// MessageStatus tracks delivery progression.
type MessageStatus string

const (
	MessageSent      MessageStatus = "sent"
	MessageDelivered MessageStatus = "delivered"
	MessageRead      MessageStatus = "read"
)

// Attachment holds metadata for a stored upload carried by a message.
type Attachment struct {
	Filename     string `json:"filename" bson:"filename"`
	OriginalName string `json:"original_name" bson:"original_name"`
	Path         string `json:"path" bson:"path"`
	Size         int64  `json:"size" bson:"size"`
	MimeType     string `json:"mime_type" bson:"mime_type"`
}

// Message is one entry in a conversation. Immutable after creation except for
// the read state (IsRead, ReadAt, Status).
type Message struct {
	ID             string        `json:"id" bson:"_id,omitempty"`
	ConversationID string        `json:"conversation_id" bson:"conversation_id"`
	SenderID       string        `json:"sender_id" bson:"sender_id"`
	RecipientID    string        `json:"recipient_id" bson:"recipient_id"`
	Content        string        `json:"content" bson:"content"`
	Type           MessageType   `json:"type" bson:"type"`
	Attachment     *Attachment   `json:"attachment,omitempty" bson:"attachment,omitempty"`
	ProjectID      string        `json:"project_id,omitempty" bson:"project_id,omitempty"`
	IsRead         bool          `json:"is_read" bson:"is_read"`
	ReadAt         *time.Time    `json:"read_at,omitempty" bson:"read_at,omitempty"`
	Status         MessageStatus `json:"status" bson:"status"`
	CreatedAt      time.Time     `json:"created_at" bson:"created_at"`
}

// ConversationID derives the identifier grouping all messages of a logical
// thread. Symmetric in the two participants; a project-scoped thread between
// the same pair is a distinct conversation from their general thread.
// Send and lookup paths must both go through this function.
func ConversationID(userA, userB, projectID string) string {
	ids := []string{userA, userB}
	sort.Strings(ids)
	id := ids[0] + "-" + ids[1]
	if projectID != "" {
		id += "-" + projectID
	}
	return id
}
