package handler

import (
	"errors"

	"github.com/SambridhiGhimire/Architech-bidding/internal/api/metrics"
	"github.com/SambridhiGhimire/Architech-bidding/internal/core/domain"
)

type submitBidRequest struct {
	Amount   float64 `json:"amount"   validate:"required,gt=0"`
	Timeline int     `json:"timeline" validate:"required,gt=0"`
	Message  string  `json:"message"  validate:"max=2000"`
}

type updateBidRequest struct {
	Amount   *float64 `json:"amount"   validate:"omitempty,gt=0"`
	Timeline *int     `json:"timeline" validate:"omitempty,gt=0"`
	Message  *string  `json:"message"  validate:"omitempty,max=2000"`
}

// bidForm mirrors submitBidRequest with string leaves for multipart intake.
type bidForm struct {
	Amount   string `json:"amount"`
	Timeline string `json:"timeline"`
	Message  string `json:"message"`
}

func (f bidForm) toSubmitRequest() (submitBidRequest, error) {
	var req submitBidRequest
	var err error
	if req.Amount, err = parseFormFloat("amount", f.Amount); err != nil {
		return req, err
	}
	if req.Timeline, err = parseFormInt("timeline", f.Timeline); err != nil {
		return req, err
	}
	req.Message = f.Message
	return req, nil
}

// countBidConflict feeds the conflict counter on state-related refusals.
func countBidConflict(err error) {
	switch {
	case errors.Is(err, domain.ErrDuplicateBid):
		metrics.BidConflictsTotal.WithLabelValues("duplicate").Inc()
	case errors.Is(err, domain.ErrDeadlinePassed):
		metrics.BidConflictsTotal.WithLabelValues("deadline_passed").Inc()
	case errors.Is(err, domain.ErrInvalidState):
		metrics.BidConflictsTotal.WithLabelValues("invalid_state").Inc()
	}
}
