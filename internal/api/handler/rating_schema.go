package handler

import "github.com/SambridhiGhimire/Architech-bidding/internal/core/domain"

type categoryScoresRequest struct {
	Communication   int `json:"communication"   validate:"omitempty,min=1,max=5"`
	Quality         int `json:"quality"         validate:"omitempty,min=1,max=5"`
	Timeliness      int `json:"timeliness"      validate:"omitempty,min=1,max=5"`
	Professionalism int `json:"professionalism" validate:"omitempty,min=1,max=5"`
	Value           int `json:"value"           validate:"omitempty,min=1,max=5"`
}

type submitRatingRequest struct {
	ProjectID   string                `json:"project_id"`
	RatedUserID string                `json:"rated_user_id" validate:"required"`
	Rating      int                   `json:"rating"        validate:"required,min=1,max=5"`
	Review      string                `json:"review"        validate:"required,min=10,max=1000"`
	Type        string                `json:"rating_type"   validate:"required,oneof=owner_to_contractor contractor_to_owner general"`
	Categories  categoryScoresRequest `json:"categories"`
}

type updateRatingRequest struct {
	Rating     *int                   `json:"rating" validate:"omitempty,min=1,max=5"`
	Review     *string                `json:"review" validate:"omitempty,min=10,max=1000"`
	Categories *categoryScoresRequest `json:"categories"`
}

type reportRatingRequest struct {
	Reason string `json:"reason" validate:"required,max=1000"`
}

func toCategoryScores(r categoryScoresRequest) domain.CategoryScores {
	return domain.CategoryScores{
		Communication:   r.Communication,
		Quality:         r.Quality,
		Timeliness:      r.Timeliness,
		Professionalism: r.Professionalism,
		Value:           r.Value,
	}
}
