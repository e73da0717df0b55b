package domain

import "time"

// RatingType records the direction of a rating.
type RatingType string

const (
	RatingOwnerToContractor RatingType = "owner_to_contractor"
	RatingContractorToOwner RatingType = "contractor_to_owner"
	RatingGeneral           RatingType = "general"
)

// RatingStatus is the moderation state. Only approved ratings count toward
// a user's aggregate.
type RatingStatus string

const (
	RatingPendingReview RatingStatus = "pending"
	RatingApproved      RatingStatus = "approved"
	RatingRejectedMod   RatingStatus = "rejected"
)

// CategoryScores holds the optional per-category breakdown, each in [1,5].
type CategoryScores struct {
	Communication   int `json:"communication,omitempty" bson:"communication,omitempty"`
	Quality         int `json:"quality,omitempty" bson:"quality,omitempty"`
	Timeliness      int `json:"timeliness,omitempty" bson:"timeliness,omitempty"`
	Professionalism int `json:"professionalism,omitempty" bson:"professionalism,omitempty"`
	Value           int `json:"value,omitempty" bson:"value,omitempty"`
}

// Sanitize drops scores outside [1,5]; out-of-range categories are silently
// discarded rather than failing the submission.
func (c CategoryScores) Sanitize() CategoryScores {
	keep := func(v int) int {
		if v < 1 || v > 5 {
			return 0
		}
		return v
	}
	return CategoryScores{
		Communication:   keep(c.Communication),
		Quality:         keep(c.Quality),
		Timeliness:      keep(c.Timeliness),
		Professionalism: keep(c.Professionalism),
		Value:           keep(c.Value),
	}
}

// Rating is a 1-5 score plus review bound to a (rater, ratedUser,
// project-or-general) triple. ProjectID is the empty string for general
// ratings and participates in the uniqueness key as that distinct scope.
type Rating struct {
	ID          string         `json:"id" bson:"_id,omitempty"`
	ProjectID   string         `json:"project_id,omitempty" bson:"project_id"`
	RatedUserID string         `json:"rated_user_id" bson:"rated_user_id"`
	RaterID     string         `json:"rater_id" bson:"rater_id"`
	Rating      int            `json:"rating" bson:"rating"`
	Review      string         `json:"review" bson:"review"`
	Categories  CategoryScores `json:"categories,omitempty" bson:"categories,omitempty"`
	Type        RatingType     `json:"rating_type" bson:"rating_type"`
	Status      RatingStatus   `json:"status" bson:"status"`

	ModeratedByID   string     `json:"moderated_by_id,omitempty" bson:"moderated_by_id,omitempty"`
	ModeratedAt     *time.Time `json:"moderated_at,omitempty" bson:"moderated_at,omitempty"`
	ModerationNotes string     `json:"moderation_notes,omitempty" bson:"moderation_notes,omitempty"`

	HelpfulVotes int        `json:"helpful_votes" bson:"helpful_votes"`
	Reported     bool       `json:"reported" bson:"reported"`
	ReportReason string     `json:"report_reason,omitempty" bson:"report_reason,omitempty"`
	ReportedByID string     `json:"reported_by_id,omitempty" bson:"reported_by_id,omitempty"`
	ReportedAt   *time.Time `json:"reported_at,omitempty" bson:"reported_at,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
