package bollywood

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusError_IsMatchesByCode(t *testing.T) {
	var err error = ErrDying
	assert.True(t, errors.Is(err, ErrDying))
	assert.False(t, errors.Is(err, ErrQueueFull))
}

func TestStatusError_CodesMatchSpecTable(t *testing.T) {
	cases := []struct {
		err  *StatusError
		code int
	}{
		{ErrDying, -1},
		{ErrOutOfRange, -2},
		{ErrInvalidType, -3},
		{ErrAllocFailed, -4},
		{ErrScheduleFailed, -5},
		{ErrQueueFull, -6},
	}
	for _, c := range cases {
		assert.Equal(t, c.code, c.err.Code)
	}
}
