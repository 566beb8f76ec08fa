package orchestrator

import "fmt"

// State is the orchestrator's execution state for a single swap. It is
// in-memory only; the durable, externally visible status lives on the
// Transaction record.
type State string

const (
	StateIdle                 State = "idle"
	StateValidating           State = "validating"
	StateExecutingLedgerTx    State = "executing_ledger_tx"
	StateWaitingForApproval   State = "waiting_for_approval"
	StateExecutingPaymentRail State = "executing_payment_rail"
	StateCompleted            State = "completed"
	StateFailed               State = "failed"
	StateCancelled            State = "cancelled"
)

func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed || s == StateCancelled
}

type Event string

const (
	EventSubmit             Event = "submit"
	EventValidationFailed   Event = "validation_failed"
	EventAdmissionFailed    Event = "admission_failed"
	EventLedgerStart        Event = "ledger_start"
	EventApprovalRequired   Event = "approval_required"
	EventApprovalGranted    Event = "approval_granted"
	EventLedgerSucceeded    Event = "ledger_succeeded"
	EventLedgerFailed       Event = "ledger_failed"
	EventTransferAccepted   Event = "transfer_accepted"
	EventTransferFailed     Event = "transfer_failed"
	EventInstructionsIssued Event = "instructions_issued"
	EventCancel             Event = "cancel"
)

// transitions is the full state/transition table. Anything not listed
// is illegal; terminal states absorb every event.
var transitions = map[State]map[Event]State{
	StateIdle: {
		EventSubmit: StateValidating,
	},
	StateValidating: {
		// A limits failure creates no record and returns to idle; the
		// user corrects the input and resubmits.
		EventValidationFailed: StateIdle,
		EventAdmissionFailed:  StateFailed,
		EventLedgerStart:      StateExecutingLedgerTx,
		// ON_RAMP never moves money here; issuing payment instructions
		// completes the orchestrator's part.
		EventInstructionsIssued: StateCompleted,
		EventCancel:             StateCancelled,
	},
	StateExecutingLedgerTx: {
		EventApprovalRequired: StateWaitingForApproval,
		EventLedgerSucceeded:  StateExecutingPaymentRail,
		EventLedgerFailed:     StateFailed,
	},
	StateWaitingForApproval: {
		EventApprovalGranted: StateExecutingLedgerTx,
		EventLedgerFailed:    StateFailed,
		EventCancel:          StateCancelled,
	},
	StateExecutingPaymentRail: {
		EventTransferAccepted: StateCompleted,
		EventTransferFailed:   StateFailed,
	},
}

// Next is the pure transition function. It returns an error for any
// event the current state does not accept.
func Next(s State, e Event) (State, error) {
	if s.Terminal() {
		return s, fmt.Errorf("state %s is terminal; event %s ignored", s, e)
	}
	next, ok := transitions[s][e]
	if !ok {
		return s, fmt.Errorf("event %s is not legal in state %s", e, s)
	}
	return next, nil
}

// CanCancel reports whether user cancellation is honored in s. Once the
// ledger call is in flight or has committed, cancellation is refused;
// the uncommitted approval wait is the last cancellable point.
func CanCancel(s State) bool {
	switch s {
	case StateIdle, StateValidating, StateWaitingForApproval:
		return true
	}
	return false
}

// Progress maps a state onto the percentage signal emitted alongside
// every transaction write, so persisted and presented state move
// together.
func Progress(s State) int {
	switch s {
	case StateIdle:
		return 0
	case StateValidating:
		return 10
	case StateExecutingLedgerTx:
		return 35
	case StateWaitingForApproval:
		return 45
	case StateExecutingPaymentRail:
		return 70
	case StateCompleted, StateFailed, StateCancelled:
		return 100
	}
	return 0
}
