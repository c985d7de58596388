package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"Backend-Formforge/src/models"
)

var ErrDraftNotFound = errors.New("draft not found")

// draftTTL keeps abandoned drafts from accumulating forever.
const draftTTL = 7 * 24 * time.Hour

// Repository is the injected draft store for in-progress multi-step
// submissions, keyed by (respondent, slug) so visitors of the same form never
// see each other's answers. Get discards any draft bound to a different
// versionId than the one asked for — a stale draft is thrown away, never
// merged.
type Repository interface {
	Get(ctx context.Context, respondentID, slug, versionID string) (*models.FormDraft, error)
	Init(ctx context.Context, respondentID, slug, versionID string) (*models.FormDraft, error)
	Update(ctx context.Context, respondentID, slug string, draft *models.FormDraft) error
	Clear(ctx context.Context, respondentID, slug string) error
}

func newDraft(versionID string) *models.FormDraft {
	return &models.FormDraft{
		CurrentStepIndex:     0,
		CompletedStepIndices: []int{},
		FormData:             map[string]interface{}{},
		VersionID:            versionID,
	}
}

// --- Redis implementation ---

type redisRepository struct {
	client *redis.Client
}

// NewRedisRepository returns the production draft store.
func NewRedisRepository(client *redis.Client) Repository {
	return &redisRepository{client: client}
}

func draftKey(respondentID, slug string) string {
	return "formdraft:" + respondentID + ":" + slug
}

func (r *redisRepository) Get(ctx context.Context, respondentID, slug, versionID string) (*models.FormDraft, error) {
	raw, err := r.client.Get(ctx, draftKey(respondentID, slug)).Result()
	if err == redis.Nil {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, err
	}

	var draft models.FormDraft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return nil, err
	}

	// The authoritative version moved underneath the draft: discard it.
	if draft.VersionID != versionID {
		if err := r.Clear(ctx, respondentID, slug); err != nil {
			return nil, err
		}
		return nil, ErrDraftNotFound
	}

	return &draft, nil
}

func (r *redisRepository) Init(ctx context.Context, respondentID, slug, versionID string) (*models.FormDraft, error) {
	draft := newDraft(versionID)
	if err := r.Update(ctx, respondentID, slug, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (r *redisRepository) Update(ctx context.Context, respondentID, slug string, draft *models.FormDraft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, draftKey(respondentID, slug), raw, draftTTL).Err()
}

func (r *redisRepository) Clear(ctx context.Context, respondentID, slug string) error {
	return r.client.Del(ctx, draftKey(respondentID, slug)).Err()
}

// --- In-memory implementation (tests, single-node dev) ---

type memoryRepository struct {
	mu     sync.Mutex
	drafts map[string]*models.FormDraft
}

// NewMemoryRepository returns a process-local draft store.
func NewMemoryRepository() Repository {
	return &memoryRepository{drafts: map[string]*models.FormDraft{}}
}

func (m *memoryRepository) Get(ctx context.Context, respondentID, slug, versionID string) (*models.FormDraft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := draftKey(respondentID, slug)
	draft, ok := m.drafts[key]
	if !ok {
		return nil, ErrDraftNotFound
	}
	if draft.VersionID != versionID {
		delete(m.drafts, key)
		return nil, ErrDraftNotFound
	}

	return copyDraft(draft), nil
}

func (m *memoryRepository) Init(ctx context.Context, respondentID, slug, versionID string) (*models.FormDraft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	draft := newDraft(versionID)
	m.drafts[draftKey(respondentID, slug)] = draft
	return copyDraft(draft), nil
}

func (m *memoryRepository) Update(ctx context.Context, respondentID, slug string, draft *models.FormDraft) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.drafts[draftKey(respondentID, slug)] = copyDraft(draft)
	return nil
}

func (m *memoryRepository) Clear(ctx context.Context, respondentID, slug string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.drafts, draftKey(respondentID, slug))
	return nil
}

// copyDraft deep-copies so the store and callers never alias the same map or
// slice.
func copyDraft(draft *models.FormDraft) *models.FormDraft {
	copied := *draft
	copied.CompletedStepIndices = append([]int{}, draft.CompletedStepIndices...)
	copied.FormData = make(map[string]interface{}, len(draft.FormData))
	for k, v := range draft.FormData {
		copied.FormData[k] = v
	}
	return &copied
}
