package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/SambridhiGhimire/Architech-bidding/internal/core/domain"
	"github.com/SambridhiGhimire/Architech-bidding/internal/core/ports"
)

// ActivityHandler serves the per-project audit feed.
type ActivityHandler struct {
	projects ports.ProjectService
	activity ports.ActivityService
}

func NewActivityHandler(projects ports.ProjectService, activity ports.ActivityService) *ActivityHandler {
	return &ActivityHandler{projects: projects, activity: activity}
}

// ProjectFeed handles GET /api/projects/:id/activity. Only actors with the
// full project view (owner, awarded bidder) see the feed.
//
// @Summary      Project activity feed
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id     path   string  true   "Project id"
// @Param        limit  query  int     false  "Max events"
// @Success      200  {array}   domain.ActivityEvent
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/projects/{id}/activity [get]
func (h *ActivityHandler) ProjectFeed(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	res, err := h.projects.Get(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	if res.Detail == nil {
		return domain.ErrAccessDenied
	}

	events, err := h.activity.ProjectFeed(c.Request().Context(), c.Param("id"), queryInt(c, "limit"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}
