package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination=mocks/mock_adapters.go -package=mocks -source=adapters.go

// LedgerAdapter executes the on-chain leg of a swap. Both calls block
// until the chain transaction settles (which may include an external
// wallet-approval step) and return an opaque settlement reference.
type LedgerAdapter interface {
	CreateOffRampTransaction(ctx context.Context, token TokenType, amount decimal.Decimal, bank BankDetails) (settlementRef string, err error)
	CreateOnRampTransaction(ctx context.Context, token TokenType, amount decimal.Decimal, recipient string) (settlementRef string, err error)
}

// TransferResult is the payment rail's answer to a transfer initiation
// or status lookup. Status carries the rail's raw vocabulary; callers
// normalize it before acting on it.
type TransferResult struct {
	TransferID string
	Status     string
}

// PaymentRail is the fiat payout/collection provider. InitiateTransfer
// must be called with the transaction's payment reference as the
// idempotency key so a retried call cannot produce a duplicate payout.
type PaymentRail interface {
	CreateRecipient(ctx context.Context, accountNumber, bankCode, accountName string) (recipientRef string, err error)
	InitiateTransfer(ctx context.Context, recipientRef string, amount decimal.Decimal, reason, idempotencyKey string) (TransferResult, error)
	GetTransferStatus(ctx context.Context, transferID string) (string, error)
}

// TreasuryService answers admission-control balance queries for both
// sides of the platform: the fiat payout balance held at the payment
// rail and the token treasury held on-chain.
type TreasuryService interface {
	PayoutBalance(ctx context.Context) (TreasurySnapshot, error)
	TokenBalance(ctx context.Context, token TokenType) (TreasurySnapshot, error)
}

// TokenCreditor performs the ledger-side payout for an ON_RAMP swap
// after the inbound fiat payment has been authenticated and matched.
type TokenCreditor interface {
	Credit(ctx context.Context, recipient string, amount decimal.Decimal, token TokenType, transactionID uuid.UUID, paymentReference string) error
}
