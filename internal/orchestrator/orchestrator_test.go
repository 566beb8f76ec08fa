package orchestrator_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esogbengastephen/sui-ramp-service/internal/audit"
	"github.com/esogbengastephen/sui-ramp-service/internal/domain"
	"github.com/esogbengastephen/sui-ramp-service/internal/domain/mocks"
	apperrors "github.com/esogbengastephen/sui-ramp-service/internal/errors"
	"github.com/esogbengastephen/sui-ramp-service/internal/guard"
	"github.com/esogbengastephen/sui-ramp-service/internal/orchestrator"
	"github.com/esogbengastephen/sui-ramp-service/internal/rail"
)

type fakeLimitsRepo struct {
	cfg *domain.TransactionLimits
}

func (f *fakeLimitsRepo) Get() (*domain.TransactionLimits, error) { return f.cfg, nil }
func (f *fakeLimitsRepo) Update(*domain.TransactionLimits) error  { return nil }

type fixture struct {
	ctrl     *gomock.Controller
	repo     *mocks.MockTransactionRepository
	ledger   *mocks.MockLedgerAdapter
	rail     *mocks.MockPaymentRail
	treasury *mocks.MockTreasuryService
	service  *orchestrator.SwapService
	progress []orchestrator.State
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	f := &fixture{
		ctrl:     ctrl,
		repo:     mocks.NewMockTransactionRepository(ctrl),
		ledger:   mocks.NewMockLedgerAdapter(ctrl),
		rail:     mocks.NewMockPaymentRail(ctrl),
		treasury: mocks.NewMockTreasuryService(ctrl),
	}

	balanceGuard := guard.New(f.treasury, 2*time.Second, logger)
	deposit := orchestrator.PaymentInstructions{
		BankName:      "Providus Bank",
		AccountNumber: "9901234567",
		AccountName:   "Sui Ramp Ltd",
	}
	progress := func(_ uuid.UUID, state orchestrator.State, _ int) {
		f.progress = append(f.progress, state)
	}

	f.service = orchestrator.NewSwapService(
		f.repo, &fakeLimitsRepo{cfg: domain.DefaultLimits()}, balanceGuard,
		f.ledger, f.rail, audit.NewLogRecorder(logger), deposit, progress, logger,
	)
	return f
}

func snapshot(currency string, available int64) domain.TreasurySnapshot {
	return domain.TreasurySnapshot{
		Currency:         currency,
		Balance:          decimal.NewFromInt(available),
		AvailableBalance: decimal.NewFromInt(available),
		LockedBalance:    decimal.Zero,
		LastUpdated:      time.Now().UTC(),
	}
}

func offRampRequest() *orchestrator.SubmitRequest {
	return &orchestrator.SubmitRequest{
		Direction:           domain.DirectionOffRamp,
		TokenType:           domain.TokenSUI,
		TokenAmount:         decimal.NewFromInt(100),
		FiatAmount:          decimal.NewFromInt(600_000),
		ExchangeRate:        decimal.NewFromInt(6000),
		CounterpartyAddress: "0xabc123",
		BankDetails: &domain.BankDetails{
			AccountNumber: "0123456789",
			BankCode:      "058",
			AccountName:   "Ada Obi",
		},
	}
}

func TestOffRampHappyPath(t *testing.T) {
	f := newFixture(t)

	var created *domain.Transaction
	f.treasury.EXPECT().PayoutBalance(gomock.Any()).Return(snapshot("NGN", 1_000_000), nil)
	createCall := f.repo.EXPECT().Create(gomock.Any()).Do(func(tx *domain.Transaction) {
		created = tx
		assert.Equal(t, domain.StatusPending, tx.Status)
		assert.NotEmpty(t, tx.PaymentReference)
	}).Return(nil)

	beginCall := f.repo.EXPECT().
		BeginExecution(gomock.Any()).
		Return(true, nil).
		After(createCall)

	ledgerCall := f.ledger.EXPECT().
		CreateOffRampTransaction(gomock.Any(), domain.TokenSUI, gomock.Any(), gomock.Any()).
		Return("0xsettled01", nil).
		After(beginCall)

	settleCall := f.repo.EXPECT().
		SetLedgerSettlement(gomock.Any(), "0xsettled01").
		Return(nil).
		After(ledgerCall)

	recipientCall := f.rail.EXPECT().
		CreateRecipient(gomock.Any(), "0123456789", "058", "Ada Obi").
		Return("RCP_001", nil).
		After(settleCall)

	transferCall := f.rail.EXPECT().
		InitiateTransfer(gomock.Any(), "RCP_001", gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, amount decimal.Decimal, _, idempotencyKey string) (domain.TransferResult, error) {
			// The transaction's payment reference is the idempotency key.
			assert.Equal(t, created.PaymentReference, idempotencyKey)
			assert.True(t, amount.Equal(decimal.NewFromInt(600_000)))
			return domain.TransferResult{TransferID: "TRF_001", Status: "success"}, nil
		}).
		After(recipientCall)

	f.repo.EXPECT().SetTransferResult(gomock.Any(), "TRF_001", "success").Return(nil).After(transferCall)
	f.repo.EXPECT().AdvanceStatus(gomock.Any(), domain.StatusCompleted).Return(nil)

	result, err := f.service.Submit(context.Background(), offRampRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, result.Transaction.Status)
	assert.Equal(t, "0xsettled01", result.Transaction.LedgerSettlementRef)
	assert.Equal(t, "TRF_001", result.Transaction.PayoutTransferID)
	assert.Nil(t, result.Instructions)
	assert.NotEmpty(t, f.progress)
}

func TestOffRampPendingTransferCompletes(t *testing.T) {
	f := newFixture(t)

	f.treasury.EXPECT().PayoutBalance(gomock.Any()).Return(snapshot("NGN", 1_000_000), nil)
	f.repo.EXPECT().Create(gomock.Any()).Return(nil)
	f.repo.EXPECT().BeginExecution(gomock.Any()).Return(true, nil)
	f.ledger.EXPECT().CreateOffRampTransaction(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("0xref", nil)
	f.repo.EXPECT().SetLedgerSettlement(gomock.Any(), "0xref").Return(nil)
	f.rail.EXPECT().CreateRecipient(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("RCP_002", nil)
	f.rail.EXPECT().InitiateTransfer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.TransferResult{TransferID: "TRF_002", Status: "PENDING"}, nil)
	f.repo.EXPECT().SetTransferResult(gomock.Any(), "TRF_002", "PENDING").Return(nil)
	f.repo.EXPECT().AdvanceStatus(gomock.Any(), domain.StatusCompleted).Return(nil)

	// Pending-like acceptance is completion from the orchestrator's
	// point of view; settlement is the webhook path's job.
	result, err := f.service.Submit(context.Background(), offRampRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, result.Transaction.Status)
}

func TestOffRampInsufficientPayoutBalance(t *testing.T) {
	f := newFixture(t)

	f.treasury.EXPECT().PayoutBalance(gomock.Any()).Return(snapshot("NGN", 500_000), nil)
	// The refused attempt is persisted for audit, not silently dropped.
	f.repo.EXPECT().Create(gomock.Any()).Do(func(tx *domain.Transaction) {
		assert.Equal(t, domain.StatusFailed, tx.Status)
		assert.Contains(t, tx.FailureReason, "500000")
		assert.Contains(t, tx.FailureReason, "600000")
	}).Return(nil)
	// No ledger or rail calls: the mocks have no expectations for them.

	_, err := f.service.Submit(context.Background(), offRampRequest())
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.InsufficientBalance, appErr.Code)
	assert.Contains(t, appErr.Message, "500000")
	assert.Contains(t, appErr.Message, "600000")
}

func TestOffRampBalanceUnavailableFailsClosed(t *testing.T) {
	f := newFixture(t)

	f.treasury.EXPECT().PayoutBalance(gomock.Any()).
		Return(domain.TreasurySnapshot{}, fmt.Errorf("rail balance endpoint timed out"))
	f.repo.EXPECT().Create(gomock.Any()).Do(func(tx *domain.Transaction) {
		assert.Equal(t, domain.StatusFailed, tx.Status)
	}).Return(nil)

	_, err := f.service.Submit(context.Background(), offRampRequest())
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.BalanceUnavailable, appErr.Code)
}

func TestOffRampLedgerFailureNeverCallsRail(t *testing.T) {
	f := newFixture(t)

	f.treasury.EXPECT().PayoutBalance(gomock.Any()).Return(snapshot("NGN", 1_000_000), nil)
	f.repo.EXPECT().Create(gomock.Any()).Return(nil)
	f.repo.EXPECT().BeginExecution(gomock.Any()).Return(true, nil)
	f.ledger.EXPECT().CreateOffRampTransaction(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", fmt.Errorf("move call aborted"))
	f.repo.EXPECT().MarkFailed(gomock.Any(), gomock.Any(), false).Return(nil)
	// The rail mock has no expectations: any CreateRecipient or
	// InitiateTransfer call would fail the test.

	_, err := f.service.Submit(context.Background(), offRampRequest())
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.LedgerFailure, appErr.Code)
}

func TestOffRampPayoutFailureFlagsManualReconciliation(t *testing.T) {
	f := newFixture(t)

	f.treasury.EXPECT().PayoutBalance(gomock.Any()).Return(snapshot("NGN", 1_000_000), nil)
	f.repo.EXPECT().Create(gomock.Any()).Return(nil)
	f.repo.EXPECT().BeginExecution(gomock.Any()).Return(true, nil)
	f.ledger.EXPECT().CreateOffRampTransaction(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("0xdone", nil)
	f.repo.EXPECT().SetLedgerSettlement(gomock.Any(), "0xdone").Return(nil)
	f.rail.EXPECT().CreateRecipient(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("RCP_003", nil)
	f.rail.EXPECT().InitiateTransfer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.TransferResult{}, fmt.Errorf("rail unavailable"))
	// The token leg already settled: this failure category carries the
	// manual-reconciliation flag.
	f.repo.EXPECT().MarkFailed(gomock.Any(), gomock.Any(), true).Return(nil)

	_, err := f.service.Submit(context.Background(), offRampRequest())
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ManualReconRequired, appErr.Code)
}

func TestOffRampUnrecognizedTransferStatusFails(t *testing.T) {
	f := newFixture(t)

	f.treasury.EXPECT().PayoutBalance(gomock.Any()).Return(snapshot("NGN", 1_000_000), nil)
	f.repo.EXPECT().Create(gomock.Any()).Return(nil)
	f.repo.EXPECT().BeginExecution(gomock.Any()).Return(true, nil)
	f.ledger.EXPECT().CreateOffRampTransaction(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("0xdone", nil)
	f.repo.EXPECT().SetLedgerSettlement(gomock.Any(), "0xdone").Return(nil)
	f.rail.EXPECT().CreateRecipient(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("RCP_004", nil)
	f.rail.EXPECT().InitiateTransfer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.TransferResult{TransferID: "TRF_004", Status: "quantum_flux"}, nil)
	f.repo.EXPECT().SetTransferResult(gomock.Any(), "TRF_004", "quantum_flux").Return(nil)
	f.repo.EXPECT().MarkFailed(gomock.Any(), gomock.Any(), true).Return(nil)

	_, err := f.service.Submit(context.Background(), offRampRequest())
	require.Error(t, err)
}

func TestOnRampIssuesInstructions(t *testing.T) {
	f := newFixture(t)

	f.treasury.EXPECT().TokenBalance(gomock.Any(), domain.TokenSUI).Return(snapshot("SUI", 10_000), nil)
	f.repo.EXPECT().Create(gomock.Any()).Do(func(tx *domain.Transaction) {
		assert.Equal(t, domain.StatusPending, tx.Status)
	}).Return(nil)
	// The orchestrator never moves money on the on-ramp side; no ledger
	// or rail expectations exist.

	req := &orchestrator.SubmitRequest{
		Direction:           domain.DirectionOnRamp,
		TokenType:           domain.TokenSUI,
		TokenAmount:         decimal.NewFromInt(50),
		FiatAmount:          decimal.NewFromInt(300_000),
		ExchangeRate:        decimal.NewFromInt(6000),
		CounterpartyAddress: "0xrecipient",
	}

	result, err := f.service.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, result.Transaction.Status)
	require.NotNil(t, result.Instructions)
	assert.Equal(t, "Providus Bank", result.Instructions.BankName)
	assert.Equal(t, result.Transaction.PaymentReference, result.Instructions.PaymentReference)
	assert.True(t, result.Instructions.Amount.Equal(decimal.NewFromInt(300_000)))
}

func TestLimitsBreachCreatesNoRecord(t *testing.T) {
	f := newFixture(t)
	// No repo, treasury, ledger or rail expectations: a limits breach
	// must touch nothing.

	req := offRampRequest()
	req.FiatAmount = decimal.NewFromInt(500) // below the ₦1,000 minimum

	_, err := f.service.Submit(context.Background(), req)
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.LimitsBreached, appErr.Code)
}

func TestOffRampWithoutBankDetailsRejected(t *testing.T) {
	f := newFixture(t)

	req := offRampRequest()
	req.BankDetails = nil

	_, err := f.service.Submit(context.Background(), req)
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.InvalidInput, appErr.Code)
}

func TestCancelPendingTransaction(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()

	f.repo.EXPECT().GetByID(id).Return(&domain.Transaction{
		ID:     id,
		Status: domain.StatusPending,
	}, nil)
	f.repo.EXPECT().CancelPending(id).Return(true, nil)

	tx, err := f.service.Cancel(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, tx.Status)
}

func TestCancelRefusedOnceLedgerCommitted(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()

	// CONFIRMED means the ledger leg committed; irreversible steps
	// cannot be cancelled. The cancel write carries the condition and
	// lands on zero rows.
	f.repo.EXPECT().GetByID(id).Return(&domain.Transaction{
		ID:                  id,
		Status:              domain.StatusConfirmed,
		LedgerSettlementRef: "0xcommitted",
	}, nil)
	f.repo.EXPECT().CancelPending(id).Return(false, nil)

	_, err := f.service.Cancel(context.Background(), id)
	assert.Equal(t, apperrors.ErrCancellationRefused, err)
}

func TestCancelRefusedOnTerminalStatus(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()

	f.repo.EXPECT().GetByID(id).Return(&domain.Transaction{
		ID:     id,
		Status: domain.StatusCompleted,
	}, nil)
	f.repo.EXPECT().CancelPending(id).Return(false, nil)

	_, err := f.service.Cancel(context.Background(), id)
	assert.Equal(t, apperrors.ErrCancellationRefused, err)
}

func TestCancelledBeforeExecutionNeverCallsLedger(t *testing.T) {
	f := newFixture(t)

	f.treasury.EXPECT().PayoutBalance(gomock.Any()).Return(snapshot("NGN", 1_000_000), nil)
	f.repo.EXPECT().Create(gomock.Any()).Return(nil)
	// The execution claim loses: a cancel landed first. The ledger and
	// rail mocks have no expectations; any call would fail the test.
	f.repo.EXPECT().BeginExecution(gomock.Any()).Return(false, nil)

	_, err := f.service.Submit(context.Background(), offRampRequest())
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.StatusConflict, appErr.Code)
}

func TestCancelRefusedWhileLedgerInFlight(t *testing.T) {
	f := newFixture(t)

	ledgerStarted := make(chan struct{})
	releaseLedger := make(chan struct{})

	var txID uuid.UUID
	f.treasury.EXPECT().PayoutBalance(gomock.Any()).Return(snapshot("NGN", 1_000_000), nil)
	f.repo.EXPECT().Create(gomock.Any()).Do(func(tx *domain.Transaction) {
		txID = tx.ID
	}).Return(nil)
	f.repo.EXPECT().BeginExecution(gomock.Any()).Return(true, nil)
	f.ledger.EXPECT().CreateOffRampTransaction(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, domain.TokenType, decimal.Decimal, domain.BankDetails) (string, error) {
			close(ledgerStarted)
			<-releaseLedger
			return "0xmidflight", nil
		})
	f.repo.EXPECT().SetLedgerSettlement(gomock.Any(), "0xmidflight").Return(nil)
	f.rail.EXPECT().CreateRecipient(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("RCP_005", nil)
	f.rail.EXPECT().InitiateTransfer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.TransferResult{TransferID: "TRF_005", Status: "success"}, nil)
	f.repo.EXPECT().SetTransferResult(gomock.Any(), "TRF_005", "success").Return(nil)
	f.repo.EXPECT().AdvanceStatus(gomock.Any(), domain.StatusCompleted).Return(nil)

	// The cancel arrives while the ledger call is still in flight: the
	// row carries the execution marker, so the cancel write lands on
	// zero rows and the swap runs to completion untouched.
	started := time.Now().UTC()
	f.repo.EXPECT().GetByID(gomock.Any()).DoAndReturn(func(id uuid.UUID) (*domain.Transaction, error) {
		return &domain.Transaction{
			ID:                 id,
			Status:             domain.StatusPending,
			ExecutionStartedAt: &started,
		}, nil
	})
	f.repo.EXPECT().CancelPending(gomock.Any()).Return(false, nil)

	done := make(chan error, 1)
	go func() {
		_, err := f.service.Submit(context.Background(), offRampRequest())
		done <- err
	}()

	<-ledgerStarted
	_, cancelErr := f.service.Cancel(context.Background(), txID)
	assert.Equal(t, apperrors.ErrCancellationRefused, cancelErr)

	close(releaseLedger)
	require.NoError(t, <-done)
}

func TestOrphanSettlementFlaggedForReconciliation(t *testing.T) {
	f := newFixture(t)

	f.treasury.EXPECT().PayoutBalance(gomock.Any()).Return(snapshot("NGN", 1_000_000), nil)
	f.repo.EXPECT().Create(gomock.Any()).Return(nil)
	f.repo.EXPECT().BeginExecution(gomock.Any()).Return(true, nil)
	f.ledger.EXPECT().CreateOffRampTransaction(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("0xorphan", nil)
	// The checkpoint write is rejected: the row left PENDING underneath
	// the ledger call. The tokens moved, so the settlement ref must be
	// persisted with the manual-reconciliation flag, never dropped.
	f.repo.EXPECT().SetLedgerSettlement(gomock.Any(), "0xorphan").Return(apperrors.ErrStatusRegressionRejected)
	f.repo.EXPECT().RecordOrphanSettlement(gomock.Any(), "0xorphan", gomock.Any()).Return(nil)
	// No rail expectations: a payout must never follow a rejected
	// checkpoint.

	_, err := f.service.Submit(context.Background(), offRampRequest())
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ManualReconRequired, appErr.Code)
}

func TestPendingTransferWatchedToSettlement(t *testing.T) {
	f := newFixture(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.service.WatchTransfers(rail.NewStatusWatcher(f.rail, 5*time.Millisecond, logger))

	f.treasury.EXPECT().PayoutBalance(gomock.Any()).Return(snapshot("NGN", 1_000_000), nil)
	f.repo.EXPECT().Create(gomock.Any()).Return(nil)
	f.repo.EXPECT().BeginExecution(gomock.Any()).Return(true, nil)
	f.ledger.EXPECT().CreateOffRampTransaction(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("0xref", nil)
	f.repo.EXPECT().SetLedgerSettlement(gomock.Any(), "0xref").Return(nil)
	f.rail.EXPECT().CreateRecipient(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("RCP_004", nil)
	f.rail.EXPECT().InitiateTransfer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.TransferResult{TransferID: "TRF_004", Status: "pending"}, nil)
	f.repo.EXPECT().SetTransferResult(gomock.Any(), "TRF_004", "pending").Return(nil)
	f.repo.EXPECT().AdvanceStatus(gomock.Any(), domain.StatusCompleted).Return(nil)

	// The background watcher observes the settled status and records it.
	f.rail.EXPECT().GetTransferStatus(gomock.Any(), "TRF_004").Return("success", nil)
	settled := make(chan struct{})
	f.repo.EXPECT().SetTransferResult(gomock.Any(), "TRF_004", "success").
		DoAndReturn(func(uuid.UUID, string, string) error {
			close(settled)
			return nil
		})

	result, err := f.service.Submit(context.Background(), offRampRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, result.Transaction.Status)

	select {
	case <-settled:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not record the settled transfer status")
	}
}
