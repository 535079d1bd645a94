package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFound(t *testing.T) {
	err := NotFound("user with ID 7")

	assert.Equal(t, "user with ID 7 not found", err.Message)
	assert.Equal(t, CodeNotFound, err.Code)
	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.Equal(t, "NOT_FOUND: user with ID 7 not found", err.Error())
}

func TestIsNotFound(t *testing.T) {
	t.Run("direct", func(t *testing.T) {
		assert.True(t, IsNotFound(NotFound("post with ID 1")))
	})

	t.Run("wrapped", func(t *testing.T) {
		err := fmt.Errorf("failed to update post: %w", NotFound("post with ID 1"))
		assert.True(t, IsNotFound(err))
		assert.Equal(t, http.StatusNotFound, GetStatusCode(err))
	})

	t.Run("other kinds", func(t *testing.T) {
		assert.False(t, IsNotFound(Validation("name is required")))
		assert.False(t, IsNotFound(fmt.Errorf("boom")))
		assert.False(t, IsNotFound(nil))
	})
}

func TestGetStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, GetStatusCode(BadRequest("invalid id")))
	assert.Equal(t, http.StatusTooManyRequests, GetStatusCode(RateLimited()))
	assert.Equal(t, http.StatusInternalServerError, GetStatusCode(fmt.Errorf("plain")))
}

func TestAppError_Wrapping(t *testing.T) {
	cause := fmt.Errorf("disk on fire")
	err := Internal("could not list users").WithError(cause).WithDetail("store", "users")

	require.ErrorIs(t, err, cause)
	assert.Equal(t, "users", err.Details["store"])
	assert.True(t, IsValidation(Validation("x")))
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestRecordNotFound(t *testing.T) {
	err := RecordNotFound(KindPost, 12)
	assert.Equal(t, "post with ID 12 not found", err.Message)
	assert.True(t, IsNotFound(err))

	kind, id, ok := MissingRecord(fmt.Errorf("failed to get post: %w", err))
	require.True(t, ok)
	assert.Equal(t, KindPost, kind)
	assert.Equal(t, 12, id)

	_, _, ok = MissingRecord(NotFound("something"))
	assert.False(t, ok)
	_, _, ok = MissingRecord(BadRequest("Invalid id"))
	assert.False(t, ok)
	_, _, ok = MissingRecord(nil)
	assert.False(t, ok)
}
