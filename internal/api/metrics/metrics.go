// Package metrics defines and registers all custom Prometheus metrics for
// the bidding API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics use promauto, so importing the package registers them with the
// default Prometheus registry before the HTTP server starts.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bidding"

// ── Project metrics ───────────────────────────────────────────────────────────

// ProjectsCreatedTotal counts newly created projects.
// Label:
//   - category: project category (e.g. "architectural_design")
var ProjectsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projects_created_total",
		Help:      "Total number of projects created, by category.",
	},
	[]string{"category"},
)

// ── Bid metrics ───────────────────────────────────────────────────────────────

// BidsSubmittedTotal counts submitted bids.
var BidsSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bids_submitted_total",
		Help:      "Total number of bids submitted.",
	},
)

// BidsAwardedTotal counts accepted bids, i.e. awarded projects.
var BidsAwardedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bids_awarded_total",
		Help:      "Total number of bids accepted by project owners.",
	},
)

// BidConflictsTotal counts bid mutations refused for state reasons.
// Label:
//   - reason: "duplicate", "deadline_passed" or "invalid_state"
var BidConflictsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bid_conflicts_total",
		Help:      "Total number of bid operations refused, by reason.",
	},
	[]string{"reason"},
)

// ── Messaging metrics ─────────────────────────────────────────────────────────

// MessagesSentTotal counts delivered messages.
// Label:
//   - type: "text", "file" or "image"
var MessagesSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_sent_total",
		Help:      "Total number of messages sent, by message type.",
	},
	[]string{"type"},
)

// ── Rating metrics ────────────────────────────────────────────────────────────

// RatingsSubmittedTotal counts submitted ratings.
// Label:
//   - rating: the integer score as a string ("1".."5")
var RatingsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratings_submitted_total",
		Help:      "Total number of ratings submitted, by score.",
	},
	[]string{"rating"},
)

// ── Upload metrics ────────────────────────────────────────────────────────────

// UploadsRejectedTotal counts uploads refused at the intake boundary.
// Label:
//   - reason: "too_large", "too_many" or "unsupported_type"
var UploadsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_rejected_total",
		Help:      "Total number of file uploads rejected, by reason.",
	},
	[]string{"reason"},
)

// ── Activity feed metrics ─────────────────────────────────────────────────────

// ActivityEventsRecordedTotal counts audit feed events persisted.
// Label:
//   - kind: event kind (e.g. "bid_accepted")
var ActivityEventsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_events_recorded_total",
		Help:      "Total number of activity feed events persisted, by kind.",
	},
	[]string{"kind"},
)
