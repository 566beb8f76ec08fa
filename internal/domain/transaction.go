package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Direction string

const (
	DirectionOnRamp  Direction = "ON_RAMP"
	DirectionOffRamp Direction = "OFF_RAMP"
)

func (d Direction) Valid() bool {
	return d == DirectionOnRamp || d == DirectionOffRamp
}

type TokenType string

const (
	TokenSUI  TokenType = "SUI"
	TokenUSDC TokenType = "USDC"
	TokenUSDT TokenType = "USDT"
)

func (t TokenType) Valid() bool {
	switch t {
	case TokenSUI, TokenUSDC, TokenUSDT:
		return true
	}
	return false
}

type TxStatus string

const (
	StatusPending   TxStatus = "PENDING"
	StatusConfirmed TxStatus = "CONFIRMED"
	StatusCompleted TxStatus = "COMPLETED"
	StatusFailed    TxStatus = "FAILED"
	StatusCancelled TxStatus = "CANCELLED"
)

// statusRank orders statuses along the allowed forward progression.
// Terminal statuses share the highest rank so no terminal status can
// ever be replaced by another.
var statusRank = map[TxStatus]int{
	StatusPending:   0,
	StatusConfirmed: 1,
	StatusCompleted: 2,
	StatusFailed:    2,
	StatusCancelled: 2,
}

func (s TxStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// CanAdvanceTo reports whether a persisted status may move to next
// without regressing. Writes that would downgrade an already-advanced
// status must be rejected, not applied.
func (s TxStatus) CanAdvanceTo(next TxStatus) bool {
	if s.Terminal() {
		return false
	}
	return statusRank[next] > statusRank[s]
}

// BankDetails is the payout destination for OFF_RAMP swaps. Account
// verification happens out-of-band before submission; these fields are
// carried opaquely.
type BankDetails struct {
	AccountNumber string `json:"account_number"`
	BankCode      string `json:"bank_code"`
	AccountName   string `json:"account_name"`
}

// VerificationSnapshot freezes the amounts and rate a transaction was
// validated against at submission time, so later drift can be detected.
type VerificationSnapshot struct {
	TokenAmount  decimal.Decimal `json:"token_amount"`
	FiatAmount   decimal.Decimal `json:"fiat_amount"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
	VerifiedAt   time.Time       `json:"verified_at"`
}

// Transaction is the durable record of a single swap attempt. It is the
// single source of truth for status; the orchestrator's in-memory state
// machine is derived from it, never the other way round.
type Transaction struct {
	ID                  uuid.UUID            `json:"id"`
	Direction           Direction            `json:"direction"`
	TokenType           TokenType            `json:"token_type"`
	TokenAmount         decimal.Decimal      `json:"token_amount"`
	FiatAmount          decimal.Decimal      `json:"fiat_amount"`
	ExchangeRate        decimal.Decimal      `json:"exchange_rate"`
	CounterpartyAddress string               `json:"counterparty_address"`
	BankDetails         *BankDetails         `json:"bank_details,omitempty"`
	PaymentReference    string               `json:"payment_reference"`
	LedgerSettlementRef string               `json:"ledger_settlement_ref,omitempty"`
	PayoutTransferID    string               `json:"payout_transfer_id,omitempty"`
	TransferStatus      string               `json:"transfer_status,omitempty"`
	Status              TxStatus             `json:"status"`
	ExecutionStartedAt  *time.Time           `json:"execution_started_at,omitempty"`
	FailureReason       string               `json:"failure_reason,omitempty"`
	NeedsManualRecon    bool                 `json:"needs_manual_reconciliation"`
	Verification        VerificationSnapshot `json:"verification_snapshot"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

// NewPaymentReference derives a fresh external correlation key. References
// are never reused: a user retry gets a new transaction with a new one.
func NewPaymentReference() string {
	return "SWAP-" + uuid.NewString()
}

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks -source=transaction.go TransactionRepository

type TransactionRepository interface {
	Create(tx *Transaction) error
	GetByID(id uuid.UUID) (*Transaction, error)
	GetByPaymentReference(reference string) (*Transaction, error)
	// AdvanceStatus applies a monotonic compare-and-set: the update is
	// rejected when the persisted status cannot move forward to next.
	AdvanceStatus(id uuid.UUID, next TxStatus) error
	// ClaimConfirmation moves PENDING to CONFIRMED in a single
	// compare-and-set and reports whether this caller won the claim.
	// At most one caller per transaction ever sees true.
	ClaimConfirmation(id uuid.UUID) (bool, error)
	// BeginExecution stamps the execution marker on a PENDING row that
	// does not carry one yet. Only the winner may start irreversible
	// work; CancelPending refuses any row carrying the marker.
	BeginExecution(id uuid.UUID) (bool, error)
	// CancelPending cancels a PENDING row whose execution marker is
	// unset, reporting whether the cancel landed.
	CancelPending(id uuid.UUID) (bool, error)
	// RecordOrphanSettlement attaches a settlement ref to a row that
	// left PENDING while the ledger leg was in flight and flags it for
	// manual reconciliation. Unlike SetLedgerSettlement it carries no
	// status precondition; the tokens have already moved.
	RecordOrphanSettlement(id uuid.UUID, settlementRef, reason string) error
	SetLedgerSettlement(id uuid.UUID, settlementRef string) error
	SetTransferResult(id uuid.UUID, transferID, transferStatus string) error
	MarkFailed(id uuid.UUID, reason string, needsManualRecon bool) error
	ListByStatus(status TxStatus) ([]*Transaction, error)
}
