package cache

import (
	"context"
	"time"

	"donorbase/internal/core"
	"donorbase/internal/store"
)

const filtersKeyPrefix = "filters:"

// FilterStore is a read-through cache in front of a GlobalFilterStore.
// Saving a user's filters drops that user's entry. Returned values are shared
// and must not be mutated.
type FilterStore struct {
	next  store.GlobalFilterStore
	cache *LRU[core.GlobalFilters]
}

func NewFilterStore(next store.GlobalFilterStore, maxUsers int, ttl time.Duration) *FilterStore {
	return &FilterStore{next: next, cache: NewLRU[core.GlobalFilters](maxUsers, ttl)}
}

func (s *FilterStore) GlobalFilters(ctx context.Context, userID string) (core.GlobalFilters, error) {
	f, _, err := GetOrLoad[core.GlobalFilters](ctx, s.cache, filtersKeyPrefix+userID, func(ctx context.Context) (core.GlobalFilters, error) {
		return s.next.GlobalFilters(ctx, userID)
	})
	return f, err
}

func (s *FilterStore) SaveGlobalFilters(ctx context.Context, userID string, f core.GlobalFilters) error {
	// drop first so a failed save cannot leave a stale entry behind
	s.cache.Delete(filtersKeyPrefix + userID)
	return s.next.SaveGlobalFilters(ctx, userID, f)
}

// Invalidate forgets every cached user.
func (s *FilterStore) Invalidate() {
	s.cache.DeletePrefix(filtersKeyPrefix)
}

func (s *FilterStore) Cache() *LRU[core.GlobalFilters] { return s.cache }

// cachedReader overrides the global-filter lookups of a Reader.
type cachedReader struct {
	store.Reader
	filters *FilterStore
}

func (r cachedReader) GlobalFilters(ctx context.Context, userID string) (core.GlobalFilters, error) {
	return r.filters.GlobalFilters(ctx, userID)
}

func (r cachedReader) SaveGlobalFilters(ctx context.Context, userID string, f core.GlobalFilters) error {
	return r.filters.SaveGlobalFilters(ctx, userID, f)
}

// WithFilters returns r with global filters served through fs.
func WithFilters(r store.Reader, fs *FilterStore) store.Reader {
	return cachedReader{Reader: r, filters: fs}
}
