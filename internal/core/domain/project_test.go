package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsBiddingOpen(t *testing.T) {
	now := time.Now()
	p := &Project{Status: ProjectLive, BiddingDeadline: now.Add(time.Hour)}

	assert.True(t, p.IsBiddingOpen(now))

	assert.False(t, p.IsBiddingOpen(now.Add(2*time.Hour)), "past deadline")
	assert.False(t, p.IsBiddingOpen(p.BiddingDeadline), "deadline instant itself is closed")

	p.Status = ProjectDraft
	assert.False(t, p.IsBiddingOpen(now), "draft never accepts bids")

	p.Status = ProjectInProgress
	assert.False(t, p.IsBiddingOpen(now), "awarded project never accepts bids")
}

func TestDaysUntilDeadline(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	p := &Project{BiddingDeadline: now.Add(72 * time.Hour)}
	assert.Equal(t, 3, p.DaysUntilDeadline(now))

	// Partial days round up.
	p.BiddingDeadline = now.Add(25 * time.Hour)
	assert.Equal(t, 2, p.DaysUntilDeadline(now))

	p.BiddingDeadline = now.Add(-30 * time.Hour)
	assert.Equal(t, -1, p.DaysUntilDeadline(now))
}
