package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:   400,
		KindConflict:     409,
		KindNotFound:     404,
		KindForbidden:    403,
		KindAuth:         401,
		KindUnauthorized: 401,
		KindTooMany:      429,
		KindInternal:     500,
		Kind("bogus"):    500,
	}
	for kind, status := range cases {
		assert.Equal(t, status, StatusOf(kind), "kind %s", kind)
	}
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", ErrProjectNotFound)
	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.True(t, Is(wrapped, KindNotFound))
	assert.False(t, Is(nil, KindNotFound))
	assert.Equal(t, KindInternal, KindOf(fmt.Errorf("boom")))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := fmt.Errorf("driver: connection reset")
	err := Database("query project failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 500, err.Status())
	assert.Equal(t, "[internal] query project failed: driver: connection reset", err.Error())
}
