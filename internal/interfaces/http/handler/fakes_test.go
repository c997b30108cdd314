package handler

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/marketloop/backend/internal/domain/catalog"
	"github.com/marketloop/backend/internal/domain/engagement"
	"github.com/marketloop/backend/internal/domain/ranking"
	"github.com/marketloop/backend/internal/domain/shared"
	"github.com/marketloop/backend/internal/domain/trade"
)

// In-memory fakes backing the real application services in handler tests.

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]catalog.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]catalog.Product)}
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &p, nil
}

func (r *fakeProductRepo) Create(_ context.Context, p *catalog.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) Save(_ context.Context, p *catalog.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return shared.ErrNotFound
	}
	r.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) List(_ context.Context, _ shared.Filter) ([]catalog.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]catalog.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) ListBySeller(_ context.Context, sellerID uuid.UUID, _ shared.Filter) ([]catalog.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]catalog.Product, 0)
	for _, p := range r.products {
		if p.SellerID == sellerID {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) AdjustStock(_ context.Context, productID uuid.UUID, delta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[productID]
	if !ok {
		return shared.ErrNotFound
	}
	if p.Stock+delta < 0 {
		return shared.ErrInsufficientStock
	}
	p.Stock += delta
	r.products[productID] = p
	return nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]trade.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]trade.Order)}
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*trade.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &o, nil
}

func (r *fakeOrderRepo) Create(_ context.Context, o *trade.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = *o
	return nil
}

func (r *fakeOrderRepo) Save(_ context.Context, o *trade.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[o.ID]; !ok {
		return shared.ErrNotFound
	}
	r.orders[o.ID] = *o
	return nil
}

func (r *fakeOrderRepo) ListByBuyer(_ context.Context, buyerID uuid.UUID, _ shared.Filter) ([]trade.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]trade.Order, 0)
	for _, o := range r.orders {
		if o.BuyerID == buyerID {
			out = append(out, o)
		}
	}
	return out, int64(len(out)), nil
}

type fakeEngagementRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID]engagement.Engagement
}

func newFakeEngagementRepo() *fakeEngagementRepo {
	return &fakeEngagementRepo{records: make(map[uuid.UUID]engagement.Engagement)}
}

func (r *fakeEngagementRepo) FindByID(_ context.Context, id uuid.UUID) (*engagement.Engagement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.records[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &e, nil
}

func (r *fakeEngagementRepo) FindReaction(_ context.Context, actorID, contentID uuid.UUID) (*engagement.Engagement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.records {
		if e.Kind == engagement.KindReaction && e.ActorID == actorID && e.ContentID == contentID {
			found := e
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeEngagementRepo) Create(_ context.Context, e *engagement.Engagement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.Kind == engagement.KindReaction {
		for _, existing := range r.records {
			if existing.Kind == engagement.KindReaction &&
				existing.ActorID == e.ActorID && existing.ContentID == e.ContentID {
				return shared.ErrAlreadyExists
			}
		}
	}
	r.records[e.ID] = *e
	return nil
}

func (r *fakeEngagementRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *fakeEngagementRepo) CountByContent(_ context.Context, contentID uuid.UUID) (engagement.Counts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var counts engagement.Counts
	for _, e := range r.records {
		if e.ContentID != contentID {
			continue
		}
		switch e.Kind {
		case engagement.KindReaction:
			counts.Reactions++
		case engagement.KindComment:
			counts.Comments++
		case engagement.KindReshare:
			counts.Reshares++
		}
	}
	counts.Total = counts.Reactions + counts.Comments + counts.Reshares
	return counts, nil
}

func (r *fakeEngagementRepo) ListByContent(_ context.Context, contentID uuid.UUID, kind engagement.Kind, _, _ int) ([]engagement.Engagement, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]engagement.Engagement, 0)
	for _, e := range r.records {
		if e.ContentID == contentID && e.Kind == kind {
			out = append(out, e)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeEngagementRepo) ListReplies(_ context.Context, parentID uuid.UUID, _, _ int) ([]engagement.Engagement, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]engagement.Engagement, 0)
	for _, e := range r.records {
		if e.ParentID != nil && *e.ParentID == parentID {
			out = append(out, e)
		}
	}
	return out, int64(len(out)), nil
}

type scoreKey struct {
	userID   uuid.UUID
	category ranking.Category
}

type fakeScoreRepo struct {
	mu      sync.Mutex
	entries map[scoreKey]ranking.ScoreEntry
}

func newFakeScoreRepo() *fakeScoreRepo {
	return &fakeScoreRepo{entries: make(map[scoreKey]ranking.ScoreEntry)}
}

func (r *fakeScoreRepo) FindByUserAndCategory(_ context.Context, userID uuid.UUID, category ranking.Category) (*ranking.ScoreEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[scoreKey{userID, category}]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *fakeScoreRepo) Create(_ context.Context, entry *ranking.ScoreEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := scoreKey{entry.UserID, entry.Category}
	if _, ok := r.entries[key]; ok {
		return shared.ErrConflict
	}
	r.entries[key] = *entry
	return nil
}

func (r *fakeScoreRepo) Update(_ context.Context, entry *ranking.ScoreEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := scoreKey{entry.UserID, entry.Category}
	if _, ok := r.entries[key]; !ok {
		return shared.ErrNotFound
	}
	r.entries[key] = *entry
	return nil
}

func (r *fakeScoreRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]ranking.ScoreEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ranking.ScoreEntry, 0)
	for key, e := range r.entries {
		if key.userID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}

func (r *fakeScoreRepo) TopByCategory(_ context.Context, category ranking.Category, limit int) ([]ranking.ScoreEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ranking.ScoreEntry, 0)
	for key, e := range r.entries {
		if key.category == category {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeScoreRepo) TopOverall(_ context.Context, limit int) ([]ranking.UserAggregate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	totals := make(map[uuid.UUID]float64)
	for key, e := range r.entries {
		totals[key.userID] += e.Score
	}
	out := make([]ranking.UserAggregate, 0, len(totals))
	for userID, total := range totals {
		out = append(out, ranking.UserAggregate{UserID: userID, TotalScore: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalScore != out[j].TotalScore {
			return out[i].TotalScore > out[j].TotalScore
		}
		return out[i].UserID.String() < out[j].UserID.String()
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
