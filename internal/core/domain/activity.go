package domain

import "time"

// ActivityKind enumerates the audit feed event types.
type ActivityKind string

const (
	ActivityProjectPublished ActivityKind = "project_published"
	ActivityBidSubmitted     ActivityKind = "bid_submitted"
	ActivityBidAccepted      ActivityKind = "bid_accepted"
	ActivityBidRejected      ActivityKind = "bid_rejected"
	ActivityBidWithdrawn     ActivityKind = "bid_withdrawn"
	ActivityRatingSubmitted  ActivityKind = "rating_submitted"
)

// ActivityEvent is an audit feed entry recorded asynchronously after a
// domain mutation. Failures to record never fail the originating request.
type ActivityEvent struct {
	ID        string       `json:"id" bson:"_id,omitempty"`
	Kind      ActivityKind `json:"kind" bson:"kind"`
	ProjectID string       `json:"project_id,omitempty" bson:"project_id,omitempty"`
	ActorID   string       `json:"actor_id" bson:"actor_id"`
	SubjectID string       `json:"subject_id,omitempty" bson:"subject_id,omitempty"` // bid id, rating id, or counterpart user id
	Timestamp time.Time    `json:"timestamp" bson:"timestamp"`
}
