package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad field")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("gone")))
	assert.Equal(t, KindParse, KindOf(Parse("bad json", errors.New("boom"))))

	// Errors without a kind count as storage faults.
	assert.Equal(t, KindStorage, KindOf(errors.New("connection refused")))

	// Wrapped errors keep their kind.
	wrapped := fmt.Errorf("outer: %w", NotFound("gone"))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "gone", MessageOf(NotFound("gone")))

	withCause := Storage("insert failed", errors.New("pq: duplicate key"))
	// The stable message hides the underlying cause.
	assert.Equal(t, "insert failed", MessageOf(withCause))
	assert.Contains(t, withCause.Error(), "pq: duplicate key")

	assert.Equal(t, "plain", MessageOf(errors.New("plain")))
}
