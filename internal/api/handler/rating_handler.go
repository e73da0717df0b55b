package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/SambridhiGhimire/Architech-bidding/internal/api/metrics"
	"github.com/SambridhiGhimire/Architech-bidding/internal/core/domain"
	"github.com/SambridhiGhimire/Architech-bidding/internal/core/ports"
)

// RatingHandler handles HTTP requests for ratings and aggregates.
type RatingHandler struct {
	service ports.RatingService
}

func NewRatingHandler(service ports.RatingService) *RatingHandler {
	return &RatingHandler{service: service}
}

// Submit handles POST /api/ratings.
//
// @Summary      Submit a rating
// @Tags         ratings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  submitRatingRequest  true  "Rating"
// @Success      201  {object}  domain.Rating
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /api/ratings [post]
func (h *RatingHandler) Submit(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req submitRatingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rating, err := h.service.Submit(c.Request().Context(), userID, ports.SubmitRatingInput{
		ProjectID:   req.ProjectID,
		RatedUserID: req.RatedUserID,
		Rating:      req.Rating,
		Review:      req.Review,
		Type:        domain.RatingType(req.Type),
		Categories:  toCategoryScores(req.Categories),
	})
	if err != nil {
		return err
	}

	metrics.RatingsSubmittedTotal.WithLabelValues(strconv.Itoa(rating.Rating)).Inc()
	return c.JSON(http.StatusCreated, rating)
}

// UserSummary handles GET /api/users/:id/ratings.
//
// @Summary      A user's rating aggregate and reviews
// @Tags         ratings
// @Produce      json
// @Security     BearerAuth
// @Param        id     path   string  true   "Rated user id"
// @Param        page   query  int     false  "Page (1-based)"
// @Param        limit  query  int     false  "Page size"
// @Success      200  {object}  ports.UserRatingSummary
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{id}/ratings [get]
func (h *RatingHandler) UserSummary(c echo.Context) error {
	if _, _, err := ctxIdentity(c); err != nil {
		return err
	}

	summary, err := h.service.UserSummary(c.Request().Context(), c.Param("id"),
		queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// ListForProject handles GET /api/projects/:id/ratings, participants only.
//
// @Summary      List ratings exchanged within a project
// @Tags         ratings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Project id"
// @Success      200  {array}   domain.Rating
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/projects/{id}/ratings [get]
func (h *RatingHandler) ListForProject(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	ratings, err := h.service.ListForProject(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ratings)
}

// ListMine handles GET /api/ratings/mine, ratings the caller has given.
//
// @Summary      List own submitted ratings
// @Tags         ratings
// @Produce      json
// @Security     BearerAuth
// @Param        page   query  int  false  "Page (1-based)"
// @Param        limit  query  int  false  "Page size"
// @Success      200  {object}  ports.RatingPage
// @Router       /api/ratings/mine [get]
func (h *RatingHandler) ListMine(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	page, err := h.service.ListMine(c.Request().Context(), userID,
		queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Update handles PUT /api/ratings/:id, original rater only.
//
// @Summary      Update an own rating
// @Tags         ratings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string               true  "Rating id"
// @Param        body  body  updateRatingRequest  true  "Fields to update"
// @Success      200  {object}  domain.Rating
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/ratings/{id} [put]
func (h *RatingHandler) Update(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateRatingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := ports.UpdateRatingInput{
		Rating: req.Rating,
		Review: req.Review,
	}
	if req.Categories != nil {
		scores := toCategoryScores(*req.Categories)
		in.Categories = &scores
	}

	rating, err := h.service.Update(c.Request().Context(), userID, c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rating)
}

// Delete handles DELETE /api/ratings/:id, original rater only.
//
// @Summary      Delete an own rating
// @Tags         ratings
// @Security     BearerAuth
// @Param        id  path  string  true  "Rating id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/ratings/{id} [delete]
func (h *RatingHandler) Delete(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Report handles POST /api/ratings/:id/report, flagging a rating for
// moderation.
//
// @Summary      Report a rating
// @Tags         ratings
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string               true  "Rating id"
// @Param        body  body  reportRatingRequest  true  "Report reason"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/ratings/{id}/report [post]
func (h *RatingHandler) Report(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req reportRatingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.Report(c.Request().Context(), userID, c.Param("id"), req.Reason); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
