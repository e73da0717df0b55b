package domain

import "time"

// Access control policy: pure decision functions over (actor, target).
// Callers translate a false result into ErrAccessDenied or a degraded view.

// CanViewProject reports whether actor may see the full project. The owner
// always may; anyone (including anonymous, actorID == "") may view a live
// public project; the awarded bidder retains read access once the project
// has been awarded.
func CanViewProject(actorID string, p *Project, awardedBidderID string) bool {
	if actorID != "" && actorID == p.OwnerID {
		return true
	}
	if p.Status == ProjectLive && p.IsPublic {
		return true
	}
	if actorID != "" && awardedBidderID != "" && actorID == awardedBidderID {
		return true
	}
	return false
}

// CanManageProject: only the owner mutates a project.
func CanManageProject(actorID string, p *Project) bool {
	return actorID != "" && actorID == p.OwnerID
}

// CanManageBid: only the submitting provider mutates a bid.
func CanManageBid(actorID string, b *Bid) bool {
	return actorID != "" && actorID == b.ServiceProviderID
}

// CanRateInProject: the project owner, or the provider whose bid was
// accepted, may rate within the project's scope.
func CanRateInProject(actorID string, p *Project, bids []Bid) bool {
	if actorID == "" {
		return false
	}
	if actorID == p.OwnerID {
		return true
	}
	for _, b := range bids {
		if b.Status == BidAccepted && b.ServiceProviderID == actorID {
			return true
		}
	}
	return false
}

// CanMarkMessageRead: recipient only.
func CanMarkMessageRead(actorID string, m *Message) bool {
	return actorID != "" && actorID == m.RecipientID
}

// CanDeleteMessage: sender only.
func CanDeleteMessage(actorID string, m *Message) bool {
	return actorID != "" && actorID == m.SenderID
}

// PublicProject is the redacted view served to non-owners: participant
// identities reduced to essentials, bids and award hidden, derived counters
// attached. Derived fields are computed at read time and never persisted.
type PublicProject struct {
	ID                string         `json:"id"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	Category          string         `json:"category"`
	Location          Location       `json:"location"`
	Budget            Budget         `json:"budget"`
	Timeline          Timeline       `json:"timeline"`
	Specifications    Specifications `json:"specifications"`
	Files             ProjectFiles   `json:"files"`
	Status            ProjectStatus  `json:"status"`
	IsPublic          bool           `json:"is_public"`
	BiddingDeadline   time.Time      `json:"bidding_deadline"`
	Owner             *UserRef       `json:"owner,omitempty"`
	AssignedArchitect *UserRef       `json:"assigned_architect,omitempty"`
	BidCount          int            `json:"bid_count"`
	DaysUntilDeadline int            `json:"days_until_deadline"`
	CreatedAt         time.Time      `json:"created_at"`
}

// PublicProjectView strips owner, architect, bids and award from p, keeping
// only the redacted participant references.
func PublicProjectView(p *Project, owner, architect *UserRef, bidCount int, now time.Time) PublicProject {
	return PublicProject{
		ID:                p.ID,
		Title:             p.Title,
		Description:       p.Description,
		Category:          p.Category,
		Location:          p.Location,
		Budget:            p.Budget,
		Timeline:          p.Timeline,
		Specifications:    p.Specifications,
		Files:             p.Files,
		Status:            p.Status,
		IsPublic:          p.IsPublic,
		BiddingDeadline:   p.BiddingDeadline,
		Owner:             owner,
		AssignedArchitect: architect,
		BidCount:          bidCount,
		DaysUntilDeadline: p.DaysUntilDeadline(now),
		CreatedAt:         p.CreatedAt,
	}
}
