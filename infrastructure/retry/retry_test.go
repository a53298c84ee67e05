package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/social-planner/infrastructure/retry"
)

func fastConfig() retry.Config {
	return retry.Config{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
}

func TestRetry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		errs      []error
		wantCalls int
		wantErr   error
	}{
		{"succeeds first time", []error{nil}, 1, nil},
		{"recovers after timeout", []error{errors.New("i/o timeout"), nil}, 2, nil},
		{"permanent error stops", []error{retry.Permanent(errors.New("bad token"))}, 1, nil},
		{"gives up", []error{
			errors.New("connection refused"),
			errors.New("connection refused"),
			errors.New("connection refused"),
		}, 3, retry.ErrMaxAttemptsExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			calls := 0
			err := retry.Retry(context.Background(), fastConfig(), func() error {
				e := tt.errs[calls]
				calls++
				return e
			})

			assert.Equal(t, tt.wantCalls, calls)
			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.errs[len(tt.errs)-1] != nil:
				require.Error(t, err)
			default:
				require.NoError(t, err)
			}
		})
	}
}

func TestRetry_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := retry.Retry(ctx, fastConfig(), func() error { return nil })
	require.ErrorIs(t, err, context.Canceled)
}

func TestIsTransient(t *testing.T) {
	t.Parallel()

	assert.True(t, retry.IsTransient(errors.New("read tcp: connection reset by peer")))
	assert.False(t, retry.IsTransient(errors.New("permission denied")))
	assert.False(t, retry.IsTransient(retry.Permanent(errors.New("timeout"))))
	assert.False(t, retry.IsTransient(nil))
}
