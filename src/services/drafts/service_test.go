package drafts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("GetBeforeInitNotFound", func(t *testing.T) {
		repo := NewMemoryRepository()
		_, err := repo.Get(ctx, "r1", "contact", "v1")
		assert.ErrorIs(t, err, ErrDraftNotFound)
	})

	t.Run("InitReturnsEmptyDraft", func(t *testing.T) {
		repo := NewMemoryRepository()
		draft, err := repo.Init(ctx, "r1", "contact", "v1")
		assert.NoError(t, err)
		assert.Equal(t, 0, draft.CurrentStepIndex)
		assert.Empty(t, draft.CompletedStepIndices)
		assert.Empty(t, draft.FormData)
		assert.Equal(t, "v1", draft.VersionID)
	})

	t.Run("UpdateThenGetRoundTrips", func(t *testing.T) {
		repo := NewMemoryRepository()
		draft, err := repo.Init(ctx, "r1", "contact", "v1")
		assert.NoError(t, err)

		draft.CurrentStepIndex = 1
		draft.CompletedStepIndices = []int{0}
		draft.FormData["name"] = "Alice"
		assert.NoError(t, repo.Update(ctx, "r1", "contact", draft))

		got, err := repo.Get(ctx, "r1", "contact", "v1")
		assert.NoError(t, err)
		assert.Equal(t, 1, got.CurrentStepIndex)
		assert.Equal(t, []int{0}, got.CompletedStepIndices)
		assert.Equal(t, "Alice", got.FormData["name"])
	})

	t.Run("RespondentsAreIsolated", func(t *testing.T) {
		repo := NewMemoryRepository()

		one, err := repo.Init(ctx, "r1", "contact", "v1")
		assert.NoError(t, err)
		one.FormData["email"] = "one@example.com"
		assert.NoError(t, repo.Update(ctx, "r1", "contact", one))

		// A second visitor of the same form starts clean and can never read
		// or replace the first visitor's answers.
		two, err := repo.Init(ctx, "r2", "contact", "v1")
		assert.NoError(t, err)
		assert.Empty(t, two.FormData)

		two.FormData["email"] = "two@example.com"
		assert.NoError(t, repo.Update(ctx, "r2", "contact", two))

		got, err := repo.Get(ctx, "r1", "contact", "v1")
		assert.NoError(t, err)
		assert.Equal(t, "one@example.com", got.FormData["email"])
	})

	t.Run("ReturnedDraftDoesNotAliasStore", func(t *testing.T) {
		repo := NewMemoryRepository()
		draft, err := repo.Init(ctx, "r1", "contact", "v1")
		assert.NoError(t, err)

		// Mutating a returned draft without calling Update must not change
		// what the store hands out next.
		draft.FormData["name"] = "leaked"
		draft.CompletedStepIndices = append(draft.CompletedStepIndices, 0)

		got, err := repo.Get(ctx, "r1", "contact", "v1")
		assert.NoError(t, err)
		assert.NotContains(t, got.FormData, "name")
		assert.Empty(t, got.CompletedStepIndices)

		got.FormData["name"] = "still leaked"
		again, err := repo.Get(ctx, "r1", "contact", "v1")
		assert.NoError(t, err)
		assert.NotContains(t, again.FormData, "name")
	})

	t.Run("StaleVersionDiscarded", func(t *testing.T) {
		repo := NewMemoryRepository()
		_, err := repo.Init(ctx, "r1", "contact", "v1")
		assert.NoError(t, err)

		// The form was republished under v2; the v1 draft must be thrown
		// away, not resumed.
		_, err = repo.Get(ctx, "r1", "contact", "v2")
		assert.ErrorIs(t, err, ErrDraftNotFound)

		// And it stays gone even when asked for under v1 again.
		_, err = repo.Get(ctx, "r1", "contact", "v1")
		assert.ErrorIs(t, err, ErrDraftNotFound)
	})

	t.Run("ClearRemovesDraft", func(t *testing.T) {
		repo := NewMemoryRepository()
		_, err := repo.Init(ctx, "r1", "contact", "v1")
		assert.NoError(t, err)

		assert.NoError(t, repo.Clear(ctx, "r1", "contact"))
		_, err = repo.Get(ctx, "r1", "contact", "v1")
		assert.ErrorIs(t, err, ErrDraftNotFound)
	})

	t.Run("SlugsAreIsolated", func(t *testing.T) {
		repo := NewMemoryRepository()
		_, err := repo.Init(ctx, "r1", "contact", "v1")
		assert.NoError(t, err)
		_, err = repo.Init(ctx, "r1", "survey", "v9")
		assert.NoError(t, err)

		assert.NoError(t, repo.Clear(ctx, "r1", "contact"))

		got, err := repo.Get(ctx, "r1", "survey", "v9")
		assert.NoError(t, err)
		assert.Equal(t, "v9", got.VersionID)
	})
}
