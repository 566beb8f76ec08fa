package rail

import (
	"context"
	"log/slog"
	"time"

	"github.com/esogbengastephen/sui-ramp-service/internal/domain"
)

// StatusWatcher polls a transfer's status on a fixed interval. Polling
// exists for UI progress only, never for correctness; the webhook path
// owns the authoritative status. The watcher stops on the first terminal
// state or when its context is cancelled, whichever comes first, so no
// timer outlives the transfer it watches.
type StatusWatcher struct {
	rail     domain.PaymentRail
	interval time.Duration
	logger   *slog.Logger
}

func NewStatusWatcher(rail domain.PaymentRail, interval time.Duration, logger *slog.Logger) *StatusWatcher {
	return &StatusWatcher{
		rail:     rail,
		interval: interval,
		logger:   logger.With("component", "transfer-watcher"),
	}
}

// Watch polls until the transfer reaches a terminal state or ctx is
// cancelled. Each observed state is delivered to onUpdate; lookup errors
// are logged and the next tick retried rather than aborting the watch.
func (w *StatusWatcher) Watch(ctx context.Context, transferID string, onUpdate func(TransferState)) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("Transfer watch cancelled", "transfer_id", transferID)
			return
		case <-ticker.C:
			raw, err := w.rail.GetTransferStatus(ctx, transferID)
			if err != nil {
				w.logger.Warn("Transfer status lookup failed", "transfer_id", transferID, "error", err)
				continue
			}

			state, recognized := Normalize(raw)
			if !recognized {
				w.logger.Warn("Unrecognized transfer status", "transfer_id", transferID, "raw_status", raw)
			}

			onUpdate(state)

			if state.Terminal() {
				w.logger.Info("Transfer reached terminal state", "transfer_id", transferID, "state", state)
				return
			}
		}
	}
}
