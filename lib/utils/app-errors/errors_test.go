package apperrors

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestAppErrors(t *testing.T) {
	t.Run(`wrapped sentinel check`, func(t *testing.T) {
		err := errors.Wrap(ErrInvalidTransition, "only approved tasks can be marked as paid")
		require.True(t, errors.Is(err, ErrInvalidTransition))
		require.False(t, IsSoft(err))
		require.Equal(t, "only approved tasks can be marked as paid: invalid status transition", err.Error())
	})

	t.Run(`soft errors check`, func(t *testing.T) {
		require.True(t, IsSoft(ErrDuplicateSubmission))
		require.True(t, IsSoft(errors.WithStack(ErrAlreadyReset)))
		require.False(t, IsSoft(ErrForbidden))
		require.False(t, IsSoft(nil))
	})

	t.Run(`reset failed keeps cause`, func(t *testing.T) {
		cause := errors.New("disk full")
		err := NewResetFailed(cause)
		require.True(t, errors.Is(err, ErrResetFailed))
		require.True(t, errors.Is(err, cause))
		require.Equal(t, "error during reset: disk full", err.Error())
	})
}
