package rail_test

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/esogbengastephen/sui-ramp-service/internal/domain/mocks"
	"github.com/esogbengastephen/sui-ramp-service/internal/rail"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw            string
		want           rail.TransferState
		wantRecognized bool
	}{
		{"success", rail.StateSuccess, true},
		{"SUCCESS", rail.StateSuccess, true},
		{"Successful", rail.StateSuccess, true},
		{"completed", rail.StateSuccess, true},
		{"paid", rail.StateSuccess, true},

		{"pending", rail.StatePending, true},
		{"PENDING", rail.StatePending, true},
		{"Processing", rail.StatePending, true},
		{"queued", rail.StatePending, true},
		{"received", rail.StatePending, true},
		{"reversing", rail.StatePending, true},

		{"failed", rail.StateFailed, true},
		{"FAILED", rail.StateFailed, true},
		{"reversed", rail.StateFailed, true},
		{"rejected", rail.StateFailed, true},
		{"abandoned", rail.StateFailed, true},

		{"otp", rail.StateActionRequired, true},
		{"OTP", rail.StateActionRequired, true},
		{"action_required", rail.StateActionRequired, true},

		{" success ", rail.StateSuccess, true},

		// Unrecognized values bucket conservatively as failed, flagged
		// so callers log the anomaly instead of guessing.
		{"quantum_flux", rail.StateFailed, false},
		{"", rail.StateFailed, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, recognized := rail.Normalize(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantRecognized, recognized)
		})
	}
}

func TestTransferStateTerminal(t *testing.T) {
	assert.True(t, rail.StateSuccess.Terminal())
	assert.True(t, rail.StateFailed.Terminal())
	assert.False(t, rail.StatePending.Terminal())
	assert.False(t, rail.StateActionRequired.Terminal())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWatcherStopsOnTerminalStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	railMock := mocks.NewMockPaymentRail(ctrl)

	var calls int32
	railMock.EXPECT().GetTransferStatus(gomock.Any(), "TRF_100").
		DoAndReturn(func(context.Context, string) (string, error) {
			if atomic.AddInt32(&calls, 1) < 3 {
				return "pending", nil
			}
			return "success", nil
		}).
		Times(3)

	w := rail.NewStatusWatcher(railMock, 5*time.Millisecond, discardLogger())

	var observed []rail.TransferState
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Watch(context.Background(), "TRF_100", func(s rail.TransferState) {
			observed = append(observed, s)
		})
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after terminal status")
	}

	assert.Equal(t, []rail.TransferState{rail.StatePending, rail.StatePending, rail.StateSuccess}, observed)
}

func TestWatcherStopsOnCancellation(t *testing.T) {
	ctrl := gomock.NewController(t)
	railMock := mocks.NewMockPaymentRail(ctrl)
	railMock.EXPECT().GetTransferStatus(gomock.Any(), gomock.Any()).Return("pending", nil).AnyTimes()

	w := rail.NewStatusWatcher(railMock, 5*time.Millisecond, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Watch(ctx, "TRF_101", func(rail.TransferState) {})
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
		// No dangling timer outlives the cancelled watch.
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop on context cancellation")
	}
}

func TestWatcherRetriesAfterLookupError(t *testing.T) {
	ctrl := gomock.NewController(t)
	railMock := mocks.NewMockPaymentRail(ctrl)

	var calls int32
	railMock.EXPECT().GetTransferStatus(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string) (string, error) {
			if atomic.AddInt32(&calls, 1) == 1 {
				return "", context.DeadlineExceeded
			}
			return "success", nil
		}).
		Times(2)

	w := rail.NewStatusWatcher(railMock, 5*time.Millisecond, discardLogger())

	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Watch(context.Background(), "TRF_102", func(rail.TransferState) {})
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not recover from lookup error")
	}
}
