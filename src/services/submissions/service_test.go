package submissions

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidStatus(t *testing.T) {
	for _, status := range []string{"new", "under_review", "accepted", "rejected"} {
		assert.True(t, isValidStatus(status), status)
	}
	assert.False(t, isValidStatus("approved"))
	assert.False(t, isValidStatus(""))
	assert.False(t, isValidStatus("New"))
}

func TestValidationFailedError(t *testing.T) {
	err := error(&ValidationFailedError{Errors: map[string]string{"email": "Email must be a valid email address"}})

	var vErr *ValidationFailedError
	assert.True(t, errors.As(err, &vErr))
	assert.Equal(t, "Email must be a valid email address", vErr.Errors["email"])
	assert.Equal(t, "submission data failed validation", err.Error())
}
