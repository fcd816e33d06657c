// Package cache keeps list queries out of the hot path: results are stored
// as JSON in the shared KV under entity-scoped keys, concurrent fetches for
// the same key are collapsed to a single gateway call, and every successful
// mutation invalidates the list entries it affects so the next read
// re-fetches.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/roger120981/buenavida-admin/internal/gateway"
	"github.com/roger120981/buenavida-admin/internal/models"
	"github.com/roger120981/buenavida-admin/internal/store"
)

const keyPrefix = "buenavida:query:"

// Gateway is the slice of the remote data gateway the cache needs.
// *gateway.Client satisfies it; tests substitute fakes.
type Gateway interface {
	ListParticipants(ctx context.Context, opts gateway.ListOptions) (*models.Page[models.Participant], error)
	ListParticipantsByStatus(ctx context.Context, active bool) ([]models.Participant, error)
	GetParticipant(ctx context.Context, id int) (*models.Participant, error)
	CreateParticipant(ctx context.Context, dto models.ParticipantDTO) (*models.Participant, error)
	UpdateParticipant(ctx context.Context, id int, dto models.ParticipantDTO) (*models.Participant, error)
	DeleteParticipant(ctx context.Context, id int) (*models.MutationResult, error)
	ListCaregivers(ctx context.Context, page, pageSize int) (*models.Page[models.Caregiver], error)
	CreateCaregiver(ctx context.Context, dto models.CaregiverDTO) (*models.Caregiver, error)
	ListAssignedCaregivers(ctx context.Context, participantID int) ([]models.Caregiver, error)
	AssignCaregiver(ctx context.Context, participantID, caregiverID int) (*models.MutationResult, error)
	UnassignCaregiver(ctx context.Context, participantID, caregiverID int) (*models.MutationResult, error)
	ListCaseManagers(ctx context.Context, page, pageSize int) (*models.Page[models.CaseManager], error)
	CreateCaseManager(ctx context.Context, dto models.CaseManagerCreate) (*models.CaseManager, error)
	ListAgencies(ctx context.Context, page, pageSize int) (*models.Page[models.Agency], error)
}

// Queries is the cached view of the gateway.
type Queries struct {
	gw     Gateway
	kv     store.KV
	ttl    time.Duration
	logger *zap.Logger
	group  singleflight.Group
}

// New creates the cached query layer. ttl bounds the staleness of list
// entries that no mutation has touched.
func New(gw Gateway, kv store.KV, ttl time.Duration, logger *zap.Logger) *Queries {
	return &Queries{gw: gw, kv: kv, ttl: ttl, logger: logger}
}

// fetch returns the cached JSON for key if present, otherwise runs fetchFn
// exactly once per key across concurrent callers and caches its result.
// A failed fetch caches nothing.
func fetch[T any](ctx context.Context, q *Queries, key string, fetchFn func() (*T, error)) (*T, error) {
	if raw, err := q.kv.Get(ctx, key); err == nil {
		var cached T
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			q.logger.Debug("Query cache hit", zap.String("key", key))
			return &cached, nil
		}
		// Unreadable entry: drop it and fall through to a fresh fetch.
		_ = q.kv.Delete(ctx, key)
	}

	v, err, _ := q.group.Do(key, func() (any, error) {
		result, err := fetchFn()
		if err != nil {
			return nil, err
		}
		if raw, err := json.Marshal(result); err == nil {
			if err := q.kv.Set(ctx, key, string(raw), q.ttl); err != nil {
				q.logger.Warn("Failed to cache query result",
					zap.String("key", key),
					zap.Error(err),
				)
			}
		}
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*T), nil
}

// invalidate deletes every cache entry under the given entity prefix.
func (q *Queries) invalidate(ctx context.Context, prefix string) {
	keys, err := q.kv.ScanKeys(ctx, keyPrefix+prefix+"*")
	if err != nil {
		q.logger.Warn("Failed to scan cache keys for invalidation",
			zap.String("prefix", prefix),
			zap.Error(err),
		)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := q.kv.Delete(ctx, keys...); err != nil {
		q.logger.Warn("Failed to invalidate cache entries",
			zap.String("prefix", prefix),
			zap.Error(err),
		)
		return
	}
	q.logger.Debug("Invalidated cache entries",
		zap.String("prefix", prefix),
		zap.Int("count", len(keys)),
	)
}

// participantsListKey canonicalizes the list options: queryParams sorts the
// filter keys, so equivalent queries share one cache entry.
func participantsListKey(opts gateway.ListOptions) string {
	params, _ := json.Marshal(opts.QueryParams())
	return keyPrefix + "participants:" + string(params)
}

// Participants returns the cached participant page for opts, fetching it
// through the gateway on a miss.
func (q *Queries) Participants(ctx context.Context, opts gateway.ListOptions) (*models.Page[models.Participant], error) {
	return fetch(ctx, q, participantsListKey(opts), func() (*models.Page[models.Participant], error) {
		return q.gw.ListParticipants(ctx, opts)
	})
}

// ParticipantsByStatus returns the cached unpaginated list for the active
// flag.
func (q *Queries) ParticipantsByStatus(ctx context.Context, active bool) ([]models.Participant, error) {
	key := fmt.Sprintf("%sparticipants:status:%t", keyPrefix, active)
	page, err := fetch(ctx, q, key, func() (*listHolder[models.Participant], error) {
		data, err := q.gw.ListParticipantsByStatus(ctx, active)
		if err != nil {
			return nil, err
		}
		return &listHolder[models.Participant]{Data: data}, nil
	})
	if err != nil {
		return nil, err
	}
	return page.Data, nil
}

// Participant returns one participant by id, bypassing the cache: detail
// reads always reflect the server (the edit form depends on a fresh
// assignment snapshot).
func (q *Queries) Participant(ctx context.Context, id int) (*models.Participant, error) {
	return q.gw.GetParticipant(ctx, id)
}

// Caregivers returns the cached caregiver page.
func (q *Queries) Caregivers(ctx context.Context, page, pageSize int) (*models.Page[models.Caregiver], error) {
	key := fmt.Sprintf("%scaregivers:%d:%d", keyPrefix, page, pageSize)
	return fetch(ctx, q, key, func() (*models.Page[models.Caregiver], error) {
		return q.gw.ListCaregivers(ctx, page, pageSize)
	})
}

// listHolder wraps unpaginated slices so fetch can round-trip them as JSON.
type listHolder[T any] struct {
	Data []T `json:"data"`
}

// AssignedCaregivers returns the cached assignment list for a participant.
func (q *Queries) AssignedCaregivers(ctx context.Context, participantID int) ([]models.Caregiver, error) {
	key := fmt.Sprintf("%sassigned-caregivers:%d", keyPrefix, participantID)
	holder, err := fetch(ctx, q, key, func() (*listHolder[models.Caregiver], error) {
		data, err := q.gw.ListAssignedCaregivers(ctx, participantID)
		if err != nil {
			return nil, err
		}
		return &listHolder[models.Caregiver]{Data: data}, nil
	})
	if err != nil {
		return nil, err
	}
	return holder.Data, nil
}

// CaseManagers returns the cached case-manager page.
func (q *Queries) CaseManagers(ctx context.Context, page, pageSize int) (*models.Page[models.CaseManager], error) {
	key := fmt.Sprintf("%scase-managers:%d:%d", keyPrefix, page, pageSize)
	return fetch(ctx, q, key, func() (*models.Page[models.CaseManager], error) {
		return q.gw.ListCaseManagers(ctx, page, pageSize)
	})
}

// Agencies returns the cached agency page.
func (q *Queries) Agencies(ctx context.Context, page, pageSize int) (*models.Page[models.Agency], error) {
	key := fmt.Sprintf("%sagencies:%d:%d", keyPrefix, page, pageSize)
	return fetch(ctx, q, key, func() (*models.Page[models.Agency], error) {
		return q.gw.ListAgencies(ctx, page, pageSize)
	})
}

// CreateParticipant creates a participant and invalidates the participant
// lists on success. A failed mutation touches nothing.
func (q *Queries) CreateParticipant(ctx context.Context, dto models.ParticipantDTO) (*models.Participant, error) {
	p, err := q.gw.CreateParticipant(ctx, dto)
	if err != nil {
		return nil, err
	}
	q.invalidate(ctx, "participants:")
	return p, nil
}

// UpdateParticipant updates a participant and invalidates the participant
// lists on success.
func (q *Queries) UpdateParticipant(ctx context.Context, id int, dto models.ParticipantDTO) (*models.Participant, error) {
	p, err := q.gw.UpdateParticipant(ctx, id, dto)
	if err != nil {
		return nil, err
	}
	q.invalidate(ctx, "participants:")
	return p, nil
}

// DeleteParticipant deactivates a participant and invalidates the
// participant lists on success, so the next render reflects its absence.
func (q *Queries) DeleteParticipant(ctx context.Context, id int) (*models.MutationResult, error) {
	res, err := q.gw.DeleteParticipant(ctx, id)
	if err != nil {
		return nil, err
	}
	q.invalidate(ctx, "participants:")
	return res, nil
}

// AssignCaregiver assigns a caregiver and invalidates that participant's
// assignment list on success.
func (q *Queries) AssignCaregiver(ctx context.Context, participantID, caregiverID int) (*models.MutationResult, error) {
	res, err := q.gw.AssignCaregiver(ctx, participantID, caregiverID)
	if err != nil {
		return nil, err
	}
	q.invalidate(ctx, fmt.Sprintf("assigned-caregivers:%d", participantID))
	return res, nil
}

// UnassignCaregiver removes an assignment and invalidates that
// participant's assignment list on success.
func (q *Queries) UnassignCaregiver(ctx context.Context, participantID, caregiverID int) (*models.MutationResult, error) {
	res, err := q.gw.UnassignCaregiver(ctx, participantID, caregiverID)
	if err != nil {
		return nil, err
	}
	q.invalidate(ctx, fmt.Sprintf("assigned-caregivers:%d", participantID))
	return res, nil
}

// CreateCaregiver creates a caregiver and invalidates the caregiver lists on
// success.
func (q *Queries) CreateCaregiver(ctx context.Context, dto models.CaregiverDTO) (*models.Caregiver, error) {
	cg, err := q.gw.CreateCaregiver(ctx, dto)
	if err != nil {
		return nil, err
	}
	q.invalidate(ctx, "caregivers:")
	return cg, nil
}

// CreateCaseManager creates a case manager and invalidates the case-manager
// lists on success.
func (q *Queries) CreateCaseManager(ctx context.Context, dto models.CaseManagerCreate) (*models.CaseManager, error) {
	cm, err := q.gw.CreateCaseManager(ctx, dto)
	if err != nil {
		return nil, err
	}
	q.invalidate(ctx, "case-managers:")
	return cm, nil
}
