// Package rail normalizes the payment rail's transfer-status vocabulary
// and tracks in-flight transfers for UI progress.
package rail

import "strings"

// TransferState is the normalized bucket a raw rail status falls into.
type TransferState string

const (
	StatePending        TransferState = "pending"
	StateSuccess        TransferState = "success"
	StateFailed         TransferState = "failed"
	StateActionRequired TransferState = "action_required"
)

// Terminal reports whether polling can stop for this state.
func (s TransferState) Terminal() bool {
	return s == StateSuccess || s == StateFailed
}

// rawStatusTable maps every status string the rail has been observed to
// return, lower-cased, onto its bucket.
var rawStatusTable = map[string]TransferState{
	"success":    StateSuccess,
	"successful": StateSuccess,
	"completed":  StateSuccess,
	"paid":       StateSuccess,

	"pending":    StatePending,
	"processing": StatePending,
	"queued":     StatePending,
	"received":   StatePending,
	"reversing":  StatePending,

	"failed":    StateFailed,
	"reversed":  StateFailed,
	"rejected":  StateFailed,
	"abandoned": StateFailed,

	// Statuses that need a secondary user step (an out-of-band one-time
	// code) before the rail will move the transfer forward.
	"otp":             StateActionRequired,
	"action_required": StateActionRequired,
}

// Normalize maps a raw rail status onto its bucket, case-insensitively.
// The second return value reports whether the raw value was recognized:
// unrecognized values are conservatively bucketed as failed, and callers
// must log them as anomalies rather than guess.
func Normalize(raw string) (TransferState, bool) {
	state, ok := rawStatusTable[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return StateFailed, false
	}
	return state, true
}
