package forms

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestMapSlugIndexError(t *testing.T) {
	t.Run("DuplicateKeyBecomesSlugTaken", func(t *testing.T) {
		// A concurrent slug change can slip past the pre-check; the unique
		// index violation must still surface as a conflict.
		dup := mongo.WriteException{
			WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}},
		}
		assert.ErrorIs(t, mapSlugIndexError(dup), ErrSlugTaken)
	})

	t.Run("OtherErrorsPassThrough", func(t *testing.T) {
		boom := errors.New("connection reset")
		assert.Equal(t, boom, mapSlugIndexError(boom))
	})

	t.Run("NilPassesThrough", func(t *testing.T) {
		assert.NoError(t, mapSlugIndexError(nil))
	})
}
