package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/SambridhiGhimire/Architech-bidding/internal/api/metrics"
	"github.com/SambridhiGhimire/Architech-bidding/internal/core/domain"
	"github.com/SambridhiGhimire/Architech-bidding/internal/core/ports"
)

// MessageHandler handles HTTP requests for direct messaging.
type MessageHandler struct {
	service ports.MessageService
	files   ports.FileStore
}

func NewMessageHandler(service ports.MessageService, files ports.FileStore) *MessageHandler {
	return &MessageHandler{service: service, files: files}
}

// Send handles POST /api/messages. A multipart request may carry one
// attachment part under the "attachment" field.
//
// @Summary      Send a message
// @Tags         messages
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  sendMessageRequest  true  "Message"
// @Success      201  {object}  domain.Message
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /api/messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req sendMessageRequest
	var attachment *domain.Attachment
	if isMultipart(c) {
		form, ferr := c.MultipartForm()
		if ferr != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid multipart payload")
		}
		if err := decodeForm(form.Value, &req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		attachment, err = h.saveAttachment(c)
		if err != nil {
			return err
		}
	} else if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.service.Send(c.Request().Context(), userID, ports.SendMessageInput{
		RecipientID: req.RecipientID,
		Content:     req.Content,
		ProjectID:   req.ProjectID,
		Attachment:  attachment,
	})
	if err != nil {
		return err
	}

	metrics.MessagesSentTotal.WithLabelValues(string(msg.Type)).Inc()
	return c.JSON(http.StatusCreated, msg)
}

func (h *MessageHandler) saveAttachment(c echo.Context) (*domain.Attachment, error) {
	form, err := c.MultipartForm()
	if err != nil || len(form.File["attachment"]) == 0 {
		return nil, nil
	}

	fh := form.File["attachment"][0]
	ref, err := saveOne(c, h.files, "otherDocuments", fh)
	if err != nil {
		countRejection(err)
		return nil, err
	}
	return &domain.Attachment{
		Filename:     ref.Filename,
		OriginalName: ref.OriginalName,
		Path:         ref.Path,
		MimeType:     fh.Header.Get("Content-Type"),
		Size:         fh.Size,
	}, nil
}

// ListConversations handles GET /api/messages/conversations.
//
// @Summary      List conversation threads
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  ports.ConversationEntry
// @Router       /api/messages/conversations [get]
func (h *MessageHandler) ListConversations(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	entries, err := h.service.ListConversations(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// GetConversation handles GET /api/messages/conversations/:id. Opening a
// thread marks the caller's unread messages in it as read.
//
// @Summary      Read one conversation thread
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id     path   string  true   "Conversation id"
// @Param        page   query  int     false  "Page (1-based)"
// @Param        limit  query  int     false  "Page size"
// @Success      200  {object}  ports.ConversationDetail
// @Router       /api/messages/conversations/{id} [get]
func (h *MessageHandler) GetConversation(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	detail, err := h.service.GetConversation(c.Request().Context(), userID, c.Param("id"),
		queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// MarkRead handles PUT /api/messages/:id/read, recipient only.
//
// @Summary      Mark a message read
// @Tags         messages
// @Security     BearerAuth
// @Param        id  path  string  true  "Message id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/messages/{id}/read [put]
func (h *MessageHandler) MarkRead(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.MarkRead(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UnreadCount handles GET /api/messages/unread-count.
//
// @Summary      Total unread message count
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  unreadCountResponse
// @Router       /api/messages/unread-count [get]
func (h *MessageHandler) UnreadCount(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	count, err := h.service.UnreadCount(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, unreadCountResponse{UnreadCount: count})
}

// Delete handles DELETE /api/messages/:id, sender only.
//
// @Summary      Delete an own message
// @Tags         messages
// @Security     BearerAuth
// @Param        id  path  string  true  "Message id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/messages/{id} [delete]
func (h *MessageHandler) Delete(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
