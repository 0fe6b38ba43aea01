package ledger

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesKindSentinel(t *testing.T) {
	err := InsufficientFunds("balance %s below %s", "10.00", "20.00")

	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "balance 10.00 below 20.00", err.Error())

	wrapped := fmt.Errorf("withdraw: %w", err)
	assert.ErrorIs(t, wrapped, ErrInsufficientFunds)
	assert.Equal(t, KindInsufficientFunds, KindOf(wrapped))
}

func TestError_MessagedErrorIsNotASentinel(t *testing.T) {
	a := NotFound("account 12345678")
	b := NotFound("account 87654321")
	assert.NotErrorIs(t, a, b)
	assert.ErrorIs(t, a, ErrNotFound)
}

func TestUnavailable_KeepsCause(t *testing.T) {
	err := Unavailable("adjust balance", context.DeadlineExceeded)

	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, Retryable(err))
	assert.Contains(t, err.Error(), "adjust balance")
}

func TestKindOf_Plain(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(nil))
	assert.Equal(t, Kind(""), KindOf(errors.New("boom")))
	assert.False(t, Retryable(errors.New("boom")))
	assert.False(t, Retryable(InvalidInput("bad")))
}

func TestError_BareKindString(t *testing.T) {
	assert.Equal(t, "exhausted_id_space", ErrExhaustedIDSpace.Error())
}
