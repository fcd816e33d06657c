package store

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// filterStoreKey is the persistence key for the participant list
// preferences. The version suffix must be bumped whenever FilterState
// changes shape, so an old process never loads an incompatible snapshot.
const filterStoreKey = "buenavida:participant-filter-store:v1"

// FilterState parameterizes the participant list query: current filters,
// page, page size, and sort.
type FilterState struct {
	Filters   map[string]any `json:"filters"`
	Page      int            `json:"page"`
	PageSize  int            `json:"pageSize"`
	SortBy    string         `json:"sortBy"`
	SortOrder string         `json:"sortOrder"`
}

// DefaultFilterState returns the dashboard defaults: active participants
// only, first page of 10, createdAt ascending.
func DefaultFilterState() FilterState {
	return FilterState{
		Filters:   map[string]any{"isActive": true},
		Page:      1,
		PageSize:  10,
		SortBy:    "createdAt",
		SortOrder: "asc",
	}
}

// FilterStore holds the persisted list preferences. It is an explicit
// dependency passed to whatever renders the list, not a process global.
type FilterStore struct {
	kv     KV
	logger *zap.Logger

	mu    sync.Mutex
	state FilterState
}

// NewFilterStore loads the persisted state, falling back to defaults when
// the key is absent or the stored snapshot cannot be decoded.
func NewFilterStore(ctx context.Context, kv KV, logger *zap.Logger) *FilterStore {
	s := &FilterStore{kv: kv, logger: logger, state: DefaultFilterState()}

	raw, err := kv.Get(ctx, filterStoreKey)
	if err != nil {
		if err != ErrMiss {
			logger.Warn("Failed to load filter store, using defaults", zap.Error(err))
		}
		return s
	}

	var state FilterState
	if err := json.Unmarshal([]byte(raw), &state); err != nil || state.Page < 1 || state.PageSize < 1 {
		logger.Warn("Discarding unreadable filter store snapshot", zap.Error(err))
		return s
	}
	if state.Filters == nil {
		state.Filters = map[string]any{}
	}
	s.state = state
	return s
}

// State returns a copy of the current preferences.
func (s *FilterStore) State() FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// SetFilters replaces the filter map and resets the page to 1, since the
// old position is meaningless against a different result set.
func (s *FilterStore) SetFilters(ctx context.Context, filters map[string]any) FilterState {
	if filters == nil {
		filters = map[string]any{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Filters = filters
	s.state.Page = 1
	return s.persist(ctx)
}

// SetFilter sets a single filter field, resetting the page like SetFilters.
func (s *FilterStore) SetFilter(ctx context.Context, key string, value any) FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Filters == nil {
		s.state.Filters = map[string]any{}
	}
	s.state.Filters[key] = value
	s.state.Page = 1
	return s.persist(ctx)
}

// SetPage moves to the given page (clamped to 1).
func (s *FilterStore) SetPage(ctx context.Context, page int) FilterState {
	if page < 1 {
		page = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Page = page
	return s.persist(ctx)
}

// SetPageSize changes the page size and resets the page to 1.
func (s *FilterStore) SetPageSize(ctx context.Context, pageSize int) FilterState {
	if pageSize < 1 {
		pageSize = 10
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.PageSize = pageSize
	s.state.Page = 1
	return s.persist(ctx)
}

// SetSort changes the sort column and direction. An unknown direction falls
// back to ascending.
func (s *FilterStore) SetSort(ctx context.Context, sortBy, sortOrder string) FilterState {
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "asc"
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SortBy = sortBy
	s.state.SortOrder = sortOrder
	return s.persist(ctx)
}

// Reset restores the defaults and persists them.
func (s *FilterStore) Reset(ctx context.Context) FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = DefaultFilterState()
	return s.persist(ctx)
}

// persist writes the current state under the versioned key. Preferences are
// durable: no TTL. Callers hold s.mu.
func (s *FilterStore) persist(ctx context.Context) FilterState {
	raw, err := json.Marshal(s.state)
	if err == nil {
		err = s.kv.Set(ctx, filterStoreKey, string(raw), 0)
	}
	if err != nil {
		// A failed save is not fatal; the in-memory state still applies.
		s.logger.Warn("Failed to persist filter store", zap.Error(err))
	}
	return s.snapshot()
}

// snapshot copies the state so callers cannot mutate the shared filter map.
// Callers hold s.mu.
func (s *FilterStore) snapshot() FilterState {
	out := s.state
	out.Filters = make(map[string]any, len(s.state.Filters))
	for k, v := range s.state.Filters {
		out.Filters[k] = v
	}
	return out
}
