package handler

type sendMessageRequest struct {
	RecipientID string `json:"recipient_id" validate:"required"`
	Content     string `json:"content"      validate:"required,max=5000"`
	ProjectID   string `json:"project_id"`
}

type unreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}
