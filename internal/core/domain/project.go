package domain

import (
	"math"
	"time"
)

// ProjectStatus represents the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectDraft      ProjectStatus = "draft"
	ProjectLive       ProjectStatus = "live"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectCancelled  ProjectStatus = "cancelled"
)

// ProjectCategories is the closed set of accepted project categories.
var ProjectCategories = []string{
	"residential", "commercial", "industrial", "infrastructure", "renovation", "other",
}

// Budget is the owner's acceptable price range. Invariant: 0 <= Min <= Max.
type Budget struct {
	Min      float64 `json:"min" bson:"min"`
	Max      float64 `json:"max" bson:"max"`
	Currency string  `json:"currency" bson:"currency"`
}

// Timeline bounds the execution window. Invariant: StartDate < EndDate,
// EstimatedDuration > 0 days.
type Timeline struct {
	StartDate         time.Time `json:"start_date" bson:"start_date"`
	EndDate           time.Time `json:"end_date" bson:"end_date"`
	EstimatedDuration int       `json:"estimated_duration" bson:"estimated_duration"`
}

// Specifications describe what is to be built.
type Specifications struct {
	Area                float64  `json:"area" bson:"area"`
	Floors              int      `json:"floors" bson:"floors"`
	Requirements        []string `json:"requirements,omitempty" bson:"requirements,omitempty"`
	SpecialRequirements string   `json:"special_requirements,omitempty" bson:"special_requirements,omitempty"`
}

// FileRef points at a stored upload; the blob itself lives behind the file
// intake boundary and is only referenced by path here.
type FileRef struct {
	Filename     string    `json:"filename" bson:"filename"`
	OriginalName string    `json:"original_name" bson:"original_name"`
	Path         string    `json:"path" bson:"path"`
	UploadedAt   time.Time `json:"uploaded_at" bson:"uploaded_at"`
}

// ProjectFiles groups uploads by intake field.
type ProjectFiles struct {
	PropertyImages []FileRef `json:"property_images,omitempty" bson:"property_images,omitempty"`
	BOQ            []FileRef `json:"boq,omitempty" bson:"boq,omitempty"`
	Drawings       []FileRef `json:"drawings,omitempty" bson:"drawings,omitempty"`
	OtherDocuments []FileRef `json:"other_documents,omitempty" bson:"other_documents,omitempty"`
}

// Project is the aggregate a marketplace revolves around. Bids live in their
// own collection keyed by (project, provider); AwardedBidID references the
// single accepted bid once the project is awarded.
type Project struct {
	ID                  string         `json:"id" bson:"_id,omitempty"`
	Title               string         `json:"title" bson:"title"`
	Description         string         `json:"description" bson:"description"`
	Category            string         `json:"category" bson:"category"`
	Location            Location       `json:"location" bson:"location"`
	Budget              Budget         `json:"budget" bson:"budget"`
	Timeline            Timeline       `json:"timeline" bson:"timeline"`
	Specifications      Specifications `json:"specifications" bson:"specifications"`
	Files               ProjectFiles   `json:"files" bson:"files"`
	OwnerID             string         `json:"owner_id" bson:"owner_id"`
	AssignedArchitectID string         `json:"assigned_architect_id,omitempty" bson:"assigned_architect_id,omitempty"`
	Status              ProjectStatus  `json:"status" bson:"status"`
	IsPublic            bool           `json:"is_public" bson:"is_public"`
	BiddingDeadline     time.Time      `json:"bidding_deadline" bson:"bidding_deadline"`
	AwardedBidID        string         `json:"awarded_bid_id,omitempty" bson:"awarded_bid_id,omitempty"`
	CreatedAt           time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at" bson:"updated_at"`
}

// IsBiddingOpen reports whether the project accepts bids at the given instant.
func (p *Project) IsBiddingOpen(now time.Time) bool {
	return p.Status == ProjectLive && now.Before(p.BiddingDeadline)
}

// DaysUntilDeadline returns the whole days left before the bidding deadline,
// rounded up. Negative once the deadline has passed.
func (p *Project) DaysUntilDeadline(now time.Time) int {
	diff := p.BiddingDeadline.Sub(now)
	return int(math.Ceil(diff.Hours() / 24))
}
