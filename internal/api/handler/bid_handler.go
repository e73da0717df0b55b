package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/SambridhiGhimire/Architech-bidding/internal/api/metrics"
	"github.com/SambridhiGhimire/Architech-bidding/internal/core/ports"
)

// BidHandler handles HTTP requests for the bid lifecycle.
type BidHandler struct {
	service ports.BidService
	files   ports.FileStore
}

func NewBidHandler(service ports.BidService, files ports.FileStore) *BidHandler {
	return &BidHandler{service: service, files: files}
}

// Submit handles POST /api/projects/:id/bids.
//
// @Summary      Submit a bid on a live project
// @Tags         bids
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string            true  "Project id"
// @Param        body  body  submitBidRequest  true  "Bid details"
// @Success      201  {object}  domain.Bid
// @Failure      400  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /api/projects/{id}/bids [post]
func (h *BidHandler) Submit(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	req, err := h.bindSubmit(c)
	if err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	docs, err := saveUploads(c, h.files, "bidDocuments")
	if err != nil {
		return err
	}

	bid, err := h.service.Submit(c.Request().Context(), userID, ports.SubmitBidInput{
		ProjectID: c.Param("id"),
		Amount:    req.Amount,
		Timeline:  req.Timeline,
		Message:   req.Message,
		Documents: docs["bidDocuments"],
	})
	if err != nil {
		countBidConflict(err)
		return err
	}

	metrics.BidsSubmittedTotal.Inc()
	return c.JSON(http.StatusCreated, bid)
}

func (h *BidHandler) bindSubmit(c echo.Context) (submitBidRequest, error) {
	var req submitBidRequest
	if isMultipart(c) {
		form, err := c.MultipartForm()
		if err != nil {
			return req, echo.NewHTTPError(http.StatusBadRequest, "invalid multipart payload")
		}
		var bf bidForm
		if err := decodeForm(form.Value, &bf); err != nil {
			return req, echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		req, err = bf.toSubmitRequest()
		if err != nil {
			return req, echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return req, nil
	}
	if err := c.Bind(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return req, nil
}

// ListForProject handles GET /api/projects/:id/bids, owner only.
//
// @Summary      List bids on an own project
// @Tags         bids
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Project id"
// @Success      200  {array}   domain.Bid
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/projects/{id}/bids [get]
func (h *BidHandler) ListForProject(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	bids, err := h.service.ListForProject(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bids)
}

// ListMine handles GET /api/bids/mine, returning the caller's bids joined
// with their project summaries.
//
// @Summary      List own bids
// @Tags         bids
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  ports.ProviderBid
// @Router       /api/bids/mine [get]
func (h *BidHandler) ListMine(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	bids, err := h.service.ListMine(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bids)
}

// Update handles PUT /api/bids/:id while the project is still live.
//
// @Summary      Update an own pending bid
// @Tags         bids
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string            true  "Bid id"
// @Param        body  body  updateBidRequest  true  "Fields to update"
// @Success      200  {object}  domain.Bid
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /api/bids/{id} [put]
func (h *BidHandler) Update(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateBidRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	docs, err := saveUploads(c, h.files, "bidDocuments")
	if err != nil {
		return err
	}

	bid, err := h.service.Update(c.Request().Context(), userID, c.Param("id"), ports.UpdateBidInput{
		Amount:    req.Amount,
		Timeline:  req.Timeline,
		Message:   req.Message,
		Documents: docs["bidDocuments"],
	})
	if err != nil {
		countBidConflict(err)
		return err
	}
	return c.JSON(http.StatusOK, bid)
}

// Withdraw handles DELETE /api/bids/:id while the project is still live.
//
// @Summary      Withdraw an own bid
// @Tags         bids
// @Security     BearerAuth
// @Param        id  path  string  true  "Bid id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /api/bids/{id} [delete]
func (h *BidHandler) Withdraw(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Withdraw(c.Request().Context(), userID, c.Param("id")); err != nil {
		countBidConflict(err)
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Accept handles POST /api/projects/:id/bids/:bidId/accept. Exactly one bid
// can win; replays of the same winning bid are a no-op.
//
// @Summary      Accept a bid, awarding the project
// @Tags         bids
// @Produce      json
// @Security     BearerAuth
// @Param        id     path  string  true  "Project id"
// @Param        bidId  path  string  true  "Bid id"
// @Success      200  {object}  ports.AwardResult
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /api/projects/{id}/bids/{bidId}/accept [post]
func (h *BidHandler) Accept(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.service.Accept(c.Request().Context(), userID, c.Param("id"), c.Param("bidId"))
	if err != nil {
		countBidConflict(err)
		return err
	}

	if !result.AlreadyAwarded {
		metrics.BidsAwardedTotal.Inc()
	}
	return c.JSON(http.StatusOK, result)
}

// Reject handles POST /api/projects/:id/bids/:bidId/reject.
//
// @Summary      Reject a bid
// @Tags         bids
// @Security     BearerAuth
// @Param        id     path  string  true  "Project id"
// @Param        bidId  path  string  true  "Bid id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /api/projects/{id}/bids/{bidId}/reject [post]
func (h *BidHandler) Reject(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Reject(c.Request().Context(), userID, c.Param("id"), c.Param("bidId")); err != nil {
		countBidConflict(err)
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
