package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodesSurviveWrapping(t *testing.T) {
	base := New(CodeConflict, "child already sponsored").WithReason("already_sponsored")
	wrapped := fmt.Errorf("submit request: %w", base)

	assert.True(t, HasCode(wrapped, CodeConflict))
	assert.Equal(t, "already_sponsored", ReasonOf(wrapped))
	assert.Equal(t, CodeConflict, CodeOf(wrapped))
}

func TestUncodedErrorsAreInternal(t *testing.T) {
	err := errors.New("boom")
	assert.False(t, HasCode(err, CodeNotFound))
	assert.Equal(t, CodeInternal, CodeOf(err))
	assert.Empty(t, ReasonOf(err))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(cause, CodeInternal, "failed to update sponsorship")

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Contains(t, err.Error(), "failed to update sponsorship")
}

func TestWithReasonDoesNotMutateOriginal(t *testing.T) {
	base := New(CodeInvalidState, "not pending")
	tagged := base.WithReason("request_not_pending")

	assert.Empty(t, base.Reason)
	assert.Equal(t, "request_not_pending", tagged.Reason)
}
