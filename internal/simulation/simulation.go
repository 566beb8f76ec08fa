// Package simulation provides stand-in adapters for development and
// demos. Simulation is an explicit wiring-time choice made in cmd/server
// from configuration; the orchestrator never falls back to these at
// runtime.
package simulation

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/esogbengastephen/sui-ramp-service/internal/domain"
)

// Ledger simulates the on-chain leg, settling instantly.
type Ledger struct {
	logger *slog.Logger
}

func NewLedger(logger *slog.Logger) *Ledger {
	return &Ledger{logger: logger.With("component", "sim-ledger")}
}

func (l *Ledger) CreateOffRampTransaction(_ context.Context, token domain.TokenType, amount decimal.Decimal, _ domain.BankDetails) (string, error) {
	ref := "0xsim" + uuid.NewString()[:8]
	l.logger.Info("Simulated off-ramp ledger transaction", "token", token, "amount", amount, "settlement_ref", ref)
	return ref, nil
}

func (l *Ledger) CreateOnRampTransaction(_ context.Context, token domain.TokenType, amount decimal.Decimal, recipient string) (string, error) {
	ref := "0xsim" + uuid.NewString()[:8]
	l.logger.Info("Simulated on-ramp ledger transaction", "token", token, "amount", amount, "recipient", recipient, "settlement_ref", ref)
	return ref, nil
}

// Rail simulates the payment rail. It honors idempotency keys the same
// way the real rail does: repeating a key returns the original transfer.
type Rail struct {
	logger *slog.Logger

	mu        sync.Mutex
	transfers map[string]domain.TransferResult // keyed by idempotency key
}

func NewRail(logger *slog.Logger) *Rail {
	return &Rail{
		logger:    logger.With("component", "sim-rail"),
		transfers: make(map[string]domain.TransferResult),
	}
}

func (r *Rail) CreateRecipient(_ context.Context, accountNumber, bankCode, _ string) (string, error) {
	return fmt.Sprintf("RCP_sim_%s_%s", bankCode, accountNumber), nil
}

func (r *Rail) InitiateTransfer(_ context.Context, recipientRef string, amount decimal.Decimal, _ string, idempotencyKey string) (domain.TransferResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.transfers[idempotencyKey]; ok {
		r.logger.Info("Simulated transfer replayed for idempotency key", "idempotency_key", idempotencyKey)
		return existing, nil
	}

	result := domain.TransferResult{
		TransferID: "TRF_sim_" + uuid.NewString()[:8],
		Status:     "pending",
	}
	r.transfers[idempotencyKey] = result
	r.logger.Info("Simulated transfer initiated",
		"recipient", recipientRef, "amount", amount, "transfer_id", result.TransferID)
	return result, nil
}

func (r *Rail) GetTransferStatus(_ context.Context, transferID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, result := range r.transfers {
		if result.TransferID == transferID {
			// Settle on the first status lookup after initiation.
			result.Status = "success"
			r.transfers[key] = result
			return result.Status, nil
		}
	}
	return "", fmt.Errorf("unknown transfer %s", transferID)
}

// Treasury reports generous fixed balances so simulated swaps admit.
type Treasury struct{}

func NewTreasury() *Treasury {
	return &Treasury{}
}

func (t *Treasury) PayoutBalance(context.Context) (domain.TreasurySnapshot, error) {
	return domain.TreasurySnapshot{
		Currency:         "NGN",
		Balance:          decimal.NewFromInt(100_000_000),
		AvailableBalance: decimal.NewFromInt(100_000_000),
		LockedBalance:    decimal.Zero,
		LastUpdated:      time.Now().UTC(),
	}, nil
}

func (t *Treasury) TokenBalance(_ context.Context, token domain.TokenType) (domain.TreasurySnapshot, error) {
	return domain.TreasurySnapshot{
		Currency:         string(token),
		Balance:          decimal.NewFromInt(1_000_000),
		AvailableBalance: decimal.NewFromInt(1_000_000),
		LockedBalance:    decimal.Zero,
		LastUpdated:      time.Now().UTC(),
	}, nil
}

// Creditor simulates the on-ramp token payout.
type Creditor struct {
	logger *slog.Logger
}

func NewCreditor(logger *slog.Logger) *Creditor {
	return &Creditor{logger: logger.With("component", "sim-creditor")}
}

func (c *Creditor) Credit(_ context.Context, recipient string, amount decimal.Decimal, token domain.TokenType, transactionID uuid.UUID, paymentReference string) error {
	c.logger.Info("Simulated token credit",
		"recipient", recipient, "amount", amount, "token", token,
		"transaction_id", transactionID, "reference", paymentReference)
	return nil
}
