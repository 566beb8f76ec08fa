// Package orchestrator drives a swap through its state machine: limits,
// admission, the on-chain leg, then the fiat leg, persisting every
// transition. For OFF_RAMP the ledger leg always runs before any
// payment-rail call; fiat never leaves before the token side is secured.
package orchestrator

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/esogbengastephen/sui-ramp-service/internal/audit"
	"github.com/esogbengastephen/sui-ramp-service/internal/domain"
	"github.com/esogbengastephen/sui-ramp-service/internal/errors"
	"github.com/esogbengastephen/sui-ramp-service/internal/guard"
	"github.com/esogbengastephen/sui-ramp-service/internal/limits"
	"github.com/esogbengastephen/sui-ramp-service/internal/rail"
)

// timeNow is swappable in tests.
var timeNow = func() time.Time { return time.Now().UTC() }

// ProgressFunc receives the UI progress signal. It is invoked together
// with every transaction write, never without one.
type ProgressFunc func(transactionID uuid.UUID, state State, percent int)

// PaymentInstructions tell an ON_RAMP user where to send fiat. The
// payment reference must accompany the bank transfer so the inbound
// notification can be matched.
type PaymentInstructions struct {
	BankName         string          `json:"bank_name"`
	AccountNumber    string          `json:"account_number"`
	AccountName      string          `json:"account_name"`
	Amount           decimal.Decimal `json:"amount"`
	PaymentReference string          `json:"payment_reference"`
}

type SubmitRequest struct {
	Direction           domain.Direction
	TokenType           domain.TokenType
	TokenAmount         decimal.Decimal
	FiatAmount          decimal.Decimal
	ExchangeRate        decimal.Decimal
	CounterpartyAddress string
	BankDetails         *domain.BankDetails
}

type SubmitResult struct {
	Transaction  *domain.Transaction
	Instructions *PaymentInstructions
}

type SwapService struct {
	txRepo     domain.TransactionRepository
	limitsRepo domain.LimitsRepository
	guard      *guard.Guard
	ledger     domain.LedgerAdapter
	rail       domain.PaymentRail
	audit      audit.Recorder
	deposit    PaymentInstructions
	progress   ProgressFunc
	watcher    *rail.StatusWatcher
	logger     *slog.Logger
}

func NewSwapService(
	txRepo domain.TransactionRepository,
	limitsRepo domain.LimitsRepository,
	balanceGuard *guard.Guard,
	ledger domain.LedgerAdapter,
	paymentRail domain.PaymentRail,
	recorder audit.Recorder,
	deposit PaymentInstructions,
	progress ProgressFunc,
	logger *slog.Logger,
) *SwapService {
	if progress == nil {
		progress = func(uuid.UUID, State, int) {}
	}
	return &SwapService{
		txRepo:     txRepo,
		limitsRepo: limitsRepo,
		guard:      balanceGuard,
		ledger:     ledger,
		rail:       paymentRail,
		audit:      recorder,
		deposit:    deposit,
		progress:   progress,
		logger:     logger.With("component", "swap-orchestrator"),
	}
}

// WatchTransfers enables background settlement tracking for payouts the
// rail accepted but had not yet settled at submit time. The watcher only
// refreshes the stored rail status; the webhook path stays authoritative
// for the transaction status itself.
func (s *SwapService) WatchTransfers(w *rail.StatusWatcher) {
	s.watcher = w
}

// Submit runs one swap attempt end to end. Each user retry is a fresh
// Submit call and gets a fresh transaction with a fresh payment
// reference; a half-completed transaction is never resumed in place.
func (s *SwapService) Submit(ctx context.Context, req *SubmitRequest) (*SubmitResult, error) {
	state, err := Next(StateIdle, EventSubmit)
	if err != nil {
		return nil, errors.NewAppError(errors.InternalError, "orchestrator in unexpected state").WithDetails(err.Error())
	}

	// Limits first: a breach surfaces every error and creates no record.
	cfg, err := s.limitsRepo.Get()
	if err != nil {
		return nil, err
	}
	verdict := limits.Validate(cfg, req.Direction, req.TokenType, req.TokenAmount, req.FiatAmount)
	if !verdict.IsValid {
		state, _ = Next(state, EventValidationFailed)
		s.logger.Info("Swap rejected by limits",
			"direction", req.Direction, "token", req.TokenType, "errors", verdict.Errors)
		return nil, errors.NewAppError(errors.LimitsBreached, strings.Join(verdict.Errors, "; "))
	}

	if req.Direction == domain.DirectionOffRamp && req.BankDetails == nil {
		return nil, errors.NewAppError(errors.InvalidInput, "bank details are required for off-ramp swaps")
	}

	// Admission check runs immediately before anything irreversible,
	// never against a cached snapshot.
	decision := s.guard.Check(ctx, req.Direction, req.TokenType, req.TokenAmount, req.FiatAmount)
	if !decision.CanProceed {
		// A refused attempt is operationally meaningful: persist it.
		tx := s.newTransaction(req)
		tx.Status = domain.StatusFailed
		tx.FailureReason = decision.ErrorMessage
		if createErr := s.txRepo.Create(tx); createErr != nil {
			s.logger.Error("Failed to persist refused swap attempt", "error", createErr)
		}
		state, _ = Next(state, EventAdmissionFailed)
		s.progress(tx.ID, state, Progress(state))
		s.audit.Record(ctx, audit.Entry{
			Event:         "swap.admission_refused",
			TransactionID: tx.ID.String(),
			Reference:     tx.PaymentReference,
			Detail:        decision.ErrorMessage,
		})

		code := errors.InsufficientBalance
		if decision.Unavailable {
			code = errors.BalanceUnavailable
		}
		return nil, errors.NewAppError(code, decision.ErrorMessage)
	}

	tx := s.newTransaction(req)
	if err := s.txRepo.Create(tx); err != nil {
		return nil, err
	}
	s.progress(tx.ID, state, Progress(state))

	if req.Direction == domain.DirectionOnRamp {
		return s.issueInstructions(ctx, state, tx)
	}
	return s.executeOffRamp(ctx, state, tx)
}

// issueInstructions finishes the orchestrator's part of an ON_RAMP swap.
// No money moves here; the transaction stays PENDING until the
// reconciliation handler authenticates the inbound fiat notification.
func (s *SwapService) issueInstructions(ctx context.Context, state State, tx *domain.Transaction) (*SubmitResult, error) {
	state, _ = Next(state, EventInstructionsIssued)
	s.progress(tx.ID, state, Progress(state))
	s.audit.Record(ctx, audit.Entry{
		Event:         "swap.instructions_issued",
		TransactionID: tx.ID.String(),
		Reference:     tx.PaymentReference,
	})

	return &SubmitResult{
		Transaction: tx,
		Instructions: &PaymentInstructions{
			BankName:         s.deposit.BankName,
			AccountNumber:    s.deposit.AccountNumber,
			AccountName:      s.deposit.AccountName,
			Amount:           tx.FiatAmount,
			PaymentReference: tx.PaymentReference,
		},
	}, nil
}

// executeOffRamp runs the two irreversible legs strictly in order:
// ledger first, payment rail only after the settlement checkpoint is
// persisted.
func (s *SwapService) executeOffRamp(ctx context.Context, state State, tx *domain.Transaction) (*SubmitResult, error) {
	state, _ = Next(state, EventLedgerStart)

	// Claim the row for execution before the ledger call. Cancel refuses
	// any row carrying the marker, so a cancellation racing the ledger
	// leg can no longer land between the call and its checkpoint.
	claimed, err := s.txRepo.BeginExecution(tx.ID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		s.logger.Info("Swap cancelled before execution started", "transaction_id", tx.ID)
		return nil, errors.NewAppError(errors.StatusConflict, "transaction was cancelled before execution started")
	}
	s.logger.Info("Executing ledger leg", "transaction_id", tx.ID, "token", tx.TokenType)

	settlementRef, err := s.ledger.CreateOffRampTransaction(ctx, tx.TokenType, tx.TokenAmount, *tx.BankDetails)
	if err != nil {
		state, _ = Next(state, EventLedgerFailed)
		reason := "ledger transaction failed: " + err.Error()
		if markErr := s.txRepo.MarkFailed(tx.ID, reason, false); markErr != nil {
			s.logger.Error("Failed to persist ledger failure", "transaction_id", tx.ID, "error", markErr)
		}
		s.progress(tx.ID, state, Progress(state))
		s.audit.Record(ctx, audit.Entry{
			Event:         "swap.ledger_failed",
			TransactionID: tx.ID.String(),
			Reference:     tx.PaymentReference,
			Detail:        err.Error(),
		})
		// The payment rail is never called after a ledger failure.
		return nil, errors.NewAppError(errors.LedgerFailure, "token transfer failed; no payout was attempted").WithDetails(err.Error())
	}

	// Checkpoint: settlement ref and CONFIRMED land in one write before
	// any payment-rail call, so a crash here leaves a recognizable
	// "token settled, fiat unattempted" row. A rejected checkpoint means
	// the row left PENDING underneath us; the tokens have already moved,
	// so the settlement ref is recorded and the row flagged for an
	// operator rather than dropped.
	if err := s.txRepo.SetLedgerSettlement(tx.ID, settlementRef); err != nil {
		if err == errors.ErrStatusRegressionRejected {
			return nil, s.recordOrphanSettlement(ctx, tx, settlementRef)
		}
		return nil, err
	}
	tx.LedgerSettlementRef = settlementRef
	tx.Status = domain.StatusConfirmed

	state, _ = Next(state, EventLedgerSucceeded)
	s.progress(tx.ID, state, Progress(state))

	return s.executePayout(ctx, state, tx)
}

// recordOrphanSettlement handles a settlement whose transaction row was
// moved out of PENDING while the ledger call was in flight. The tokens
// have left the treasury, so the settlement ref must survive somewhere
// an operator will find it.
func (s *SwapService) recordOrphanSettlement(ctx context.Context, tx *domain.Transaction, settlementRef string) error {
	reason := "ledger settlement " + settlementRef + " landed after the transaction left PENDING"
	if err := s.txRepo.RecordOrphanSettlement(tx.ID, settlementRef, reason); err != nil {
		s.logger.Error("Failed to persist orphan settlement",
			"transaction_id", tx.ID, "settlement_ref", settlementRef, "error", err)
	}
	s.audit.Record(ctx, audit.Entry{
		Event:         "swap.orphan_settlement",
		TransactionID: tx.ID.String(),
		Reference:     tx.PaymentReference,
		Detail:        reason,
	})
	s.logger.Error("Ledger settled against a non-pending transaction; manual reconciliation required",
		"transaction_id", tx.ID, "settlement_ref", settlementRef)

	return errors.NewAppError(errors.ManualReconRequired,
		"tokens settled but the transaction was no longer pending; the settlement has been flagged for manual reconciliation").
		WithDetails(reason)
}

func (s *SwapService) executePayout(ctx context.Context, state State, tx *domain.Transaction) (*SubmitResult, error) {
	recipientRef, err := s.rail.CreateRecipient(ctx, tx.BankDetails.AccountNumber, tx.BankDetails.BankCode, tx.BankDetails.AccountName)
	if err != nil {
		return nil, s.failPayout(ctx, state, tx, "recipient creation failed: "+err.Error())
	}

	// The payment reference doubles as the idempotency key: a retried
	// call after a client timeout cannot produce a second payout.
	result, err := s.rail.InitiateTransfer(ctx, recipientRef, tx.FiatAmount, "SUI off-ramp payout", tx.PaymentReference)
	if err != nil {
		return nil, s.failPayout(ctx, state, tx, "transfer initiation failed: "+err.Error())
	}

	if err := s.txRepo.SetTransferResult(tx.ID, result.TransferID, result.Status); err != nil {
		return nil, err
	}
	tx.PayoutTransferID = result.TransferID
	tx.TransferStatus = result.Status

	transferState, recognized := rail.Normalize(result.Status)
	if !recognized {
		s.logger.Warn("Unrecognized transfer status from rail",
			"transaction_id", tx.ID, "raw_status", result.Status)
		s.audit.Record(ctx, audit.Entry{
			Event:         "swap.transfer_status_anomaly",
			TransactionID: tx.ID.String(),
			Reference:     tx.PaymentReference,
			Detail:        "unrecognized status: " + result.Status,
		})
	}

	if transferState == rail.StateFailed {
		return nil, s.failPayout(ctx, state, tx, "transfer rejected by rail with status "+result.Status)
	}

	// Accepted (success-like or pending-like) is completion from the
	// orchestrator's point of view; final settlement is observed by the
	// reconciliation path, not by polling here forever.
	if err := s.txRepo.AdvanceStatus(tx.ID, domain.StatusCompleted); err != nil {
		return nil, err
	}
	tx.Status = domain.StatusCompleted

	state, _ = Next(state, EventTransferAccepted)
	s.progress(tx.ID, state, Progress(state))

	if s.watcher != nil && !transferState.Terminal() {
		go s.watchSettlement(tx.ID, tx.PaymentReference, result.TransferID)
	}

	s.audit.Record(ctx, audit.Entry{
		Event:         "swap.completed",
		TransactionID: tx.ID.String(),
		Reference:     tx.PaymentReference,
		Detail:        "transfer " + result.TransferID + " accepted with status " + result.Status,
	})

	s.logger.Info("Off-ramp swap completed",
		"transaction_id", tx.ID, "transfer_id", result.TransferID, "transfer_status", result.Status)
	return &SubmitResult{Transaction: tx}, nil
}

// watchSettlement follows an accepted transfer until the rail reports a
// terminal state, persisting each observation. It runs detached from the
// submit request's context; the bound keeps an unresponsive rail from
// leaking watchers forever.
func (s *SwapService) watchSettlement(txID uuid.UUID, reference, transferID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 24*time.Hour)
	defer cancel()

	s.watcher.Watch(ctx, transferID, func(state rail.TransferState) {
		if err := s.txRepo.SetTransferResult(txID, transferID, string(state)); err != nil {
			s.logger.Error("Failed to persist watched transfer status",
				"transaction_id", txID, "transfer_id", transferID, "error", err)
			return
		}
		if state == rail.StateFailed {
			s.audit.Record(ctx, audit.Entry{
				Event:         "swap.transfer_failed_after_acceptance",
				TransactionID: txID.String(),
				Reference:     reference,
				Detail:        "transfer " + transferID + " failed after the rail accepted it",
			})
		}
	})
}

// failPayout handles the hardest failure category: the token leg is
// already committed and the fiat leg failed. These rows carry the
// manual-reconciliation flag and are routed to an operator, never
// silently discarded.
func (s *SwapService) failPayout(ctx context.Context, state State, tx *domain.Transaction, reason string) error {
	state, _ = Next(state, EventTransferFailed)
	if err := s.txRepo.MarkFailed(tx.ID, reason, true); err != nil {
		s.logger.Error("Failed to persist payout failure", "transaction_id", tx.ID, "error", err)
	}
	s.progress(tx.ID, state, Progress(state))
	s.audit.Record(ctx, audit.Entry{
		Event:         "swap.payout_failed_after_settlement",
		TransactionID: tx.ID.String(),
		Reference:     tx.PaymentReference,
		Detail:        reason,
	})
	s.logger.Error("Payout failed after ledger settlement; manual reconciliation required",
		"transaction_id", tx.ID, "reason", reason)

	return errors.NewAppError(errors.ManualReconRequired,
		"token transfer settled but fiat payout failed; the transaction has been flagged for manual reconciliation").
		WithDetails(reason)
}

// Cancel honors user cancellation only while nothing irreversible has
// started. The cancel write itself carries that condition: it lands
// only on a PENDING row whose execution marker is unset, so a cancel
// racing an in-flight ledger leg loses the race and is refused.
func (s *SwapService) Cancel(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	tx, err := s.txRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, errors.ErrTransactionNotFound
	}

	cancelled, err := s.txRepo.CancelPending(id)
	if err != nil {
		return nil, err
	}
	if !cancelled {
		return nil, errors.ErrCancellationRefused
	}
	tx.Status = domain.StatusCancelled
	s.progress(tx.ID, StateCancelled, Progress(StateCancelled))
	s.audit.Record(ctx, audit.Entry{
		Event:         "swap.cancelled",
		TransactionID: tx.ID.String(),
		Reference:     tx.PaymentReference,
	})
	return tx, nil
}

// Get returns the durable record; failed attempts stay queryable as the
// durable error channel.
func (s *SwapService) Get(id uuid.UUID) (*domain.Transaction, error) {
	tx, err := s.txRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, errors.ErrTransactionNotFound
	}
	return tx, nil
}

// TransferState looks up and normalizes the live rail status of a
// transaction's payout for UI progress.
func (s *SwapService) TransferState(ctx context.Context, id uuid.UUID) (rail.TransferState, error) {
	tx, err := s.Get(id)
	if err != nil {
		return "", err
	}
	if tx.PayoutTransferID == "" {
		return "", errors.NewAppError(errors.InvalidInput, "transaction has no payout transfer")
	}

	raw, err := s.rail.GetTransferStatus(ctx, tx.PayoutTransferID)
	if err != nil {
		return "", errors.NewAppError(errors.PayoutFailure, "transfer status lookup failed").WithDetails(err.Error())
	}

	state, recognized := rail.Normalize(raw)
	if !recognized {
		s.logger.Warn("Unrecognized transfer status", "transaction_id", id, "raw_status", raw)
	}
	return state, nil
}

func (s *SwapService) newTransaction(req *SubmitRequest) *domain.Transaction {
	now := timeNow()
	return &domain.Transaction{
		ID:                  uuid.New(),
		Direction:           req.Direction,
		TokenType:           req.TokenType,
		TokenAmount:         req.TokenAmount,
		FiatAmount:          req.FiatAmount,
		ExchangeRate:        req.ExchangeRate,
		CounterpartyAddress: req.CounterpartyAddress,
		BankDetails:         req.BankDetails,
		PaymentReference:    domain.NewPaymentReference(),
		Status:              domain.StatusPending,
		Verification: domain.VerificationSnapshot{
			TokenAmount:  req.TokenAmount,
			FiatAmount:   req.FiatAmount,
			ExchangeRate: req.ExchangeRate,
			VerifiedAt:   now,
		},
	}
}
