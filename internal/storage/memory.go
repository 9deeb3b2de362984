package storage

import (
	"context"
	"sort"
	"sync"

	"pulsewatch/internal/apperrors"
	"pulsewatch/internal/model"
)

// InMemoryStorage is a mutex-guarded MonitorStorage used by tests and
// local development. Find-or-create runs under the lock, so the
// single-validator invariant holds under concurrency here too.
type InMemoryStorage struct {
	mu         sync.RWMutex
	websites   map[string]model.Website
	validators map[string]model.Validator // keyed by ip
	ticks      map[string][]model.WebsiteTick
}

func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{
		websites:   make(map[string]model.Website),
		validators: make(map[string]model.Validator),
		ticks:      make(map[string][]model.WebsiteTick),
	}
}

func (m *InMemoryStorage) Ping(ctx context.Context) error {
	return nil
}

func (m *InMemoryStorage) CreateWebsite(ctx context.Context, w model.Website) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.websites[w.ID] = w
	return nil
}

func (m *InMemoryStorage) FindWebsite(ctx context.Context, websiteID, userID string) (model.Website, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.websites[websiteID]
	if !ok || w.UserID != userID || w.Disabled {
		return model.Website{}, apperrors.ErrWebsiteNotFound
	}
	return w, nil
}

func (m *InMemoryStorage) ListWebsites(ctx context.Context, userID string) ([]model.Website, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var websites []model.Website
	for _, w := range m.websites {
		if w.UserID == userID && !w.Disabled {
			websites = append(websites, w)
		}
	}
	sort.Slice(websites, func(i, j int) bool { return websites[i].ID < websites[j].ID })
	return websites, nil
}

func (m *InMemoryStorage) DisableWebsite(ctx context.Context, websiteID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.websites[websiteID]
	if !ok || w.UserID != userID {
		return apperrors.ErrWebsiteNotFound
	}
	w.Disabled = true
	m.websites[websiteID] = w
	return nil
}

func (m *InMemoryStorage) FindOrCreateValidator(ctx context.Context, v model.Validator) (model.Validator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.validators[v.IP]; ok {
		return existing, nil
	}
	m.validators[v.IP] = v
	return v, nil
}

func (m *InMemoryStorage) CreateTick(ctx context.Context, t model.WebsiteTick) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ticks[t.WebsiteID] = append(m.ticks[t.WebsiteID], t)
	return nil
}

func (m *InMemoryStorage) ListRecentTicks(ctx context.Context, websiteID string, limit int) ([]model.WebsiteTick, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ticks := append([]model.WebsiteTick(nil), m.ticks[websiteID]...)
	sort.SliceStable(ticks, func(i, j int) bool {
		return ticks[i].CreatedAt.After(ticks[j].CreatedAt)
	})
	if len(ticks) > limit {
		ticks = ticks[:limit]
	}
	return ticks, nil
}
