package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/SambridhiGhimire/Architech-bidding/internal/core/domain"
	"github.com/SambridhiGhimire/Architech-bidding/internal/core/ports"
)

// In-memory repository stubs shared by the service tests. They mirror the
// store's observable behaviour closely enough for the services: sentinel
// errors on misses, uniqueness conflicts, and the conditional award write.

type memUsers struct {
	byID map[string]*domain.User
	seq  int
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[string]*domain.User{}}
}

func (m *memUsers) add(u *domain.User) *domain.User {
	if u.ID == "" {
		m.seq++
		u.ID = "user_" + strconv.Itoa(m.seq)
	}
	m.byID[u.ID] = u
	return u
}

func (m *memUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range m.byID {
		if existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	return m.add(u), nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (m *memUsers) UpdateProfile(_ context.Context, id string, fields map[string]any) (*domain.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if v, ok := fields["first_name"].(string); ok {
		u.FirstName = v
	}
	if v, ok := fields["last_name"].(string); ok {
		u.LastName = v
	}
	if v, ok := fields["phone"].(string); ok {
		u.Phone = v
	}
	return u, nil
}

type memProjects struct {
	byID map[string]*domain.Project
	seq  int
}

func newMemProjects() *memProjects {
	return &memProjects{byID: map[string]*domain.Project{}}
}

func (m *memProjects) add(p *domain.Project) *domain.Project {
	if p.ID == "" {
		m.seq++
		p.ID = "project_" + strconv.Itoa(m.seq)
	}
	m.byID[p.ID] = p
	return p
}

func (m *memProjects) Create(_ context.Context, p *domain.Project) (*domain.Project, error) {
	return m.add(p), nil
}

func (m *memProjects) FindByID(_ context.Context, id string) (*domain.Project, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *memProjects) List(_ context.Context, f ports.ListProjectsFilter) ([]*domain.Project, int64, error) {
	var out []*domain.Project
	for _, p := range m.byID {
		if f.OwnerID != "" && p.OwnerID != f.OwnerID {
			continue
		}
		if f.PublicOnly && (!p.IsPublic || p.Status != domain.ProjectLive) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (m *memProjects) Update(_ context.Context, id string, fields map[string]any) (*domain.Project, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	if v, ok := fields["title"].(string); ok {
		p.Title = v
	}
	switch v := fields["status"].(type) {
	case domain.ProjectStatus:
		p.Status = v
	case string:
		p.Status = domain.ProjectStatus(v)
	}
	if v, ok := fields["is_public"].(bool); ok {
		p.IsPublic = v
	}
	clone := *p
	return &clone, nil
}

func (m *memProjects) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memProjects) Award(_ context.Context, projectID, bidID string) (bool, error) {
	p, ok := m.byID[projectID]
	if !ok || p.Status != domain.ProjectLive {
		return false, nil
	}
	p.Status = domain.ProjectInProgress
	p.AwardedBidID = bidID
	return true, nil
}

type memBids struct {
	byID map[string]*domain.Bid
	seq  int
}

func newMemBids() *memBids {
	return &memBids{byID: map[string]*domain.Bid{}}
}

func (m *memBids) add(b *domain.Bid) *domain.Bid {
	if b.ID == "" {
		m.seq++
		b.ID = "bid_" + strconv.Itoa(m.seq)
	}
	m.byID[b.ID] = b
	return b
}

func (m *memBids) Create(_ context.Context, b *domain.Bid) (*domain.Bid, error) {
	for _, existing := range m.byID {
		if existing.ProjectID == b.ProjectID && existing.ServiceProviderID == b.ServiceProviderID {
			return nil, domain.ErrDuplicateBid
		}
	}
	return m.add(b), nil
}

func (m *memBids) FindByID(_ context.Context, id string) (*domain.Bid, error) {
	b, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrBidNotFound
	}
	clone := *b
	return &clone, nil
}

func (m *memBids) ListByProject(_ context.Context, projectID string) ([]domain.Bid, error) {
	var out []domain.Bid
	for _, b := range m.byID {
		if b.ProjectID == projectID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memBids) ListByProvider(_ context.Context, providerID string) ([]domain.Bid, error) {
	var out []domain.Bid
	for _, b := range m.byID {
		if b.ServiceProviderID == providerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memBids) CountByProject(_ context.Context, projectID string) (int64, error) {
	var n int64
	for _, b := range m.byID {
		if b.ProjectID == projectID {
			n++
		}
	}
	return n, nil
}

func (m *memBids) Update(_ context.Context, id string, fields map[string]any) (*domain.Bid, error) {
	b, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrBidNotFound
	}
	if v, ok := fields["amount"].(float64); ok {
		b.Amount = v
	}
	if v, ok := fields["timeline"].(int); ok {
		b.Timeline = v
	}
	if v, ok := fields["message"].(string); ok {
		b.Message = v
	}
	if v, ok := fields["documents"].([]domain.FileRef); ok {
		b.Documents = v
	}
	clone := *b
	return &clone, nil
}

func (m *memBids) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrBidNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memBids) SetStatus(_ context.Context, id string, status domain.BidStatus) error {
	b, ok := m.byID[id]
	if !ok {
		return domain.ErrBidNotFound
	}
	b.Status = status
	return nil
}

func (m *memBids) RejectSiblings(_ context.Context, projectID, acceptedBidID string) error {
	for _, b := range m.byID {
		if b.ProjectID == projectID && b.ID != acceptedBidID && b.Status == domain.BidPending {
			b.Status = domain.BidRejected
		}
	}
	return nil
}

type memMessages struct {
	byID map[string]*domain.Message
	seq  int
}

func newMemMessages() *memMessages {
	return &memMessages{byID: map[string]*domain.Message{}}
}

func (m *memMessages) Insert(_ context.Context, msg *domain.Message) (*domain.Message, error) {
	m.seq++
	msg.ID = "msg_" + strconv.Itoa(m.seq)
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	m.byID[msg.ID] = msg
	return msg, nil
}

func (m *memMessages) FindByID(_ context.Context, id string) (*domain.Message, error) {
	msg, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrMessageNotFound
	}
	clone := *msg
	return &clone, nil
}

func (m *memMessages) ListByConversation(_ context.Context, conversationID string, page, limit int) ([]domain.Message, error) {
	var out []domain.Message
	for _, msg := range m.byID {
		if msg.ConversationID == conversationID {
			out = append(out, *msg)
		}
	}
	// Newest first, as the store contract requires.
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].CreatedAt.After(out[i].CreatedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (m *memMessages) Conversations(_ context.Context, userID string) ([]ports.ConversationSummary, error) {
	grouped := map[string]*ports.ConversationSummary{}
	for _, msg := range m.byID {
		if msg.SenderID != userID && msg.RecipientID != userID {
			continue
		}
		s, ok := grouped[msg.ConversationID]
		if !ok {
			s = &ports.ConversationSummary{ConversationID: msg.ConversationID, LastMessage: *msg}
			grouped[msg.ConversationID] = s
		}
		if msg.CreatedAt.After(s.LastMessage.CreatedAt) {
			s.LastMessage = *msg
		}
		if msg.RecipientID == userID && !msg.IsRead {
			s.UnreadCount++
		}
	}
	out := make([]ports.ConversationSummary, 0, len(grouped))
	for _, s := range grouped {
		out = append(out, *s)
	}
	return out, nil
}

func (m *memMessages) MarkConversationRead(_ context.Context, conversationID, userID string) (int64, error) {
	now := time.Now().UTC()
	var n int64
	for _, msg := range m.byID {
		if msg.ConversationID == conversationID && msg.RecipientID == userID && !msg.IsRead {
			msg.IsRead = true
			msg.ReadAt = &now
			msg.Status = domain.MessageRead
			n++
		}
	}
	return n, nil
}

func (m *memMessages) MarkRead(_ context.Context, id string) error {
	msg, ok := m.byID[id]
	if !ok {
		return domain.ErrMessageNotFound
	}
	now := time.Now().UTC()
	msg.IsRead = true
	msg.ReadAt = &now
	msg.Status = domain.MessageRead
	return nil
}

func (m *memMessages) CountUnread(_ context.Context, userID string) (int64, error) {
	var n int64
	for _, msg := range m.byID {
		if msg.RecipientID == userID && !msg.IsRead {
			n++
		}
	}
	return n, nil
}

func (m *memMessages) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrMessageNotFound
	}
	delete(m.byID, id)
	return nil
}

type memRatings struct {
	mu   sync.Mutex
	byID map[string]*domain.Rating
	seq  int
}

func newMemRatings() *memRatings {
	return &memRatings{byID: map[string]*domain.Rating{}}
}

// Insert takes the lock so concurrent submissions contend the way the
// unique index does: one insert lands, the other sees the conflict.
func (m *memRatings) Insert(_ context.Context, r *domain.Rating) (*domain.Rating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.RaterID == r.RaterID && existing.RatedUserID == r.RatedUserID && existing.ProjectID == r.ProjectID {
			return nil, domain.ErrDuplicateRating
		}
	}
	m.seq++
	r.ID = "rating_" + strconv.Itoa(m.seq)
	m.byID[r.ID] = r
	return r, nil
}

func (m *memRatings) FindByID(_ context.Context, id string) (*domain.Rating, error) {
	r, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrRatingNotFound
	}
	clone := *r
	return &clone, nil
}

func (m *memRatings) Stats(_ context.Context, ratedUserID string) (*ports.RatingStats, error) {
	var sum float64
	var count int64
	for _, r := range m.byID {
		if r.RatedUserID == ratedUserID && r.Status == domain.RatingApproved {
			sum += float64(r.Rating)
			count++
		}
	}
	stats := &ports.RatingStats{Count: count}
	if count > 0 {
		stats.Average = sum / float64(count)
	}
	return stats, nil
}

func (m *memRatings) Distribution(_ context.Context, ratedUserID string) ([]ports.RatingBucket, error) {
	counts := map[int]int64{}
	for _, r := range m.byID {
		if r.RatedUserID == ratedUserID && r.Status == domain.RatingApproved {
			counts[r.Rating]++
		}
	}
	var out []ports.RatingBucket
	for score := 5; score >= 1; score-- {
		if counts[score] > 0 {
			out = append(out, ports.RatingBucket{Rating: score, Count: counts[score]})
		}
	}
	return out, nil
}

func (m *memRatings) ListByRatedUser(_ context.Context, ratedUserID string, page, limit int) ([]domain.Rating, int64, error) {
	var out []domain.Rating
	for _, r := range m.byID {
		if r.RatedUserID == ratedUserID && r.Status == domain.RatingApproved {
			out = append(out, *r)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memRatings) ListByProject(_ context.Context, projectID string) ([]domain.Rating, error) {
	var out []domain.Rating
	for _, r := range m.byID {
		if r.ProjectID == projectID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memRatings) ListByRater(_ context.Context, raterID string, page, limit int) ([]domain.Rating, int64, error) {
	var out []domain.Rating
	for _, r := range m.byID {
		if r.RaterID == raterID {
			out = append(out, *r)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memRatings) Update(_ context.Context, id string, fields map[string]any) (*domain.Rating, error) {
	r, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrRatingNotFound
	}
	if v, ok := fields["rating"].(int); ok {
		r.Rating = v
	}
	if v, ok := fields["review"].(string); ok {
		r.Review = v
	}
	if v, ok := fields["reported"].(bool); ok {
		r.Reported = v
	}
	if v, ok := fields["report_reason"].(string); ok {
		r.ReportReason = v
	}
	if v, ok := fields["reported_by_id"].(string); ok {
		r.ReportedByID = v
	}
	if v, ok := fields["status"].(string); ok {
		r.Status = domain.RatingStatus(v)
	}
	clone := *r
	return &clone, nil
}

func (m *memRatings) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrRatingNotFound
	}
	delete(m.byID, id)
	return nil
}

// recorderStub collects activity events synchronously.
type recorderStub struct {
	events []domain.ActivityEvent
}

func (r *recorderStub) Record(e domain.ActivityEvent) {
	r.events = append(r.events, e)
}

func (r *recorderStub) kinds() []domain.ActivityKind {
	out := make([]domain.ActivityKind, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Kind)
	}
	return out
}

// cacheStub is an in-memory unread cache tracking invalidations.
type cacheStub struct {
	counts      map[string]int64
	invalidated []string
}

func newCacheStub() *cacheStub {
	return &cacheStub{counts: map[string]int64{}}
}

func (c *cacheStub) Get(_ context.Context, userID string) (int64, bool) {
	n, ok := c.counts[userID]
	return n, ok
}

func (c *cacheStub) Set(_ context.Context, userID string, count int64) {
	c.counts[userID] = count
}

func (c *cacheStub) Invalidate(_ context.Context, userIDs ...string) {
	for _, id := range userIDs {
		delete(c.counts, id)
		c.invalidated = append(c.invalidated, id)
	}
}
