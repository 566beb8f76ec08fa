package repository

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/esogbengastephen/sui-ramp-service/internal/domain"
	"github.com/esogbengastephen/sui-ramp-service/internal/errors"
)

type transactionRepository struct {
	db     SQLExecutor
	logger *slog.Logger
}

func NewTransactionRepository(db SQLExecutor, logger *slog.Logger) domain.TransactionRepository {
	return &transactionRepository{
		db:     db,
		logger: logger,
	}
}

const txColumns = `
	id, direction, token_type, token_amount, fiat_amount, exchange_rate,
	counterparty_address, bank_account_number, bank_code, bank_account_name,
	payment_reference, ledger_settlement_ref, payout_transfer_id, transfer_status,
	status, execution_started_at, failure_reason, needs_manual_recon,
	verification_snapshot, created_at, updated_at
`

func (r *transactionRepository) Create(tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions (` + txColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`

	now := time.Now().UTC()

	snapshot, err := json.Marshal(tx.Verification)
	if err != nil {
		return errors.NewAppError(errors.InternalError, "failed to encode verification snapshot").WithDetails(err.Error())
	}

	var acctNumber, bankCode, acctName interface{}
	if tx.BankDetails != nil {
		acctNumber = tx.BankDetails.AccountNumber
		bankCode = tx.BankDetails.BankCode
		acctName = tx.BankDetails.AccountName
	}

	_, err = r.db.Exec(
		query,
		tx.ID,
		tx.Direction,
		tx.TokenType,
		tx.TokenAmount.String(),
		tx.FiatAmount.String(),
		tx.ExchangeRate.String(),
		tx.CounterpartyAddress,
		acctNumber,
		bankCode,
		acctName,
		tx.PaymentReference,
		nullable(tx.LedgerSettlementRef),
		nullable(tx.PayoutTransferID),
		nullable(tx.TransferStatus),
		tx.Status,
		tx.ExecutionStartedAt,
		nullable(tx.FailureReason),
		tx.NeedsManualRecon,
		snapshot,
		now,
		now,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				if pqErr.Constraint == "idx_transactions_payment_reference" {
					r.logger.Warn("Duplicate payment reference", "payment_reference", tx.PaymentReference)
					return errors.ErrDuplicateReference
				}
			}
		}
		r.logger.Error("Failed to create transaction",
			"direction", tx.Direction,
			"token_type", tx.TokenType,
			"payment_reference", tx.PaymentReference,
			"error", err)
		return errors.NewAppError(errors.InternalError, "failed to create transaction").WithDetails(err.Error())
	}

	tx.CreatedAt = now
	tx.UpdatedAt = now
	r.logger.Info("Transaction created", "transaction_id", tx.ID, "status", tx.Status)
	return nil
}

func (r *transactionRepository) GetByID(id uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT ` + txColumns + ` FROM transactions WHERE id = $1`
	return r.scanTransaction(r.db.QueryRow(query, id))
}

func (r *transactionRepository) GetByPaymentReference(reference string) (*domain.Transaction, error) {
	query := `SELECT ` + txColumns + ` FROM transactions WHERE payment_reference = $1`
	return r.scanTransaction(r.db.QueryRow(query, reference))
}

func (r *transactionRepository) ListByStatus(status domain.TxStatus) ([]*domain.Transaction, error) {
	query := `SELECT ` + txColumns + ` FROM transactions WHERE status = $1 ORDER BY created_at`

	rows, err := r.db.Query(query, status)
	if err != nil {
		return nil, errors.NewAppError(errors.InternalError, "failed to list transactions").WithDetails(err.Error())
	}
	defer rows.Close()

	var out []*domain.Transaction
	for rows.Next() {
		tx, err := r.scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

// AdvanceStatus is a monotonic compare-and-set. It re-reads the current
// status and only writes when the move is a forward one, guarding the
// WHERE clause with the observed status so a concurrent writer (the
// reconciliation path racing the orchestrator path) cannot be
// overwritten blindly.
func (r *transactionRepository) AdvanceStatus(id uuid.UUID, next domain.TxStatus) error {
	const maxAttempts = 3

	for attempt := 0; attempt < maxAttempts; attempt++ {
		current, err := r.GetByID(id)
		if err != nil {
			return err
		}
		if current == nil {
			return errors.ErrTransactionNotFound
		}
		if current.Status == next {
			// Already there; a duplicate notification lands here.
			return nil
		}
		if !current.Status.CanAdvanceTo(next) {
			r.logger.Warn("Rejected status regression",
				"transaction_id", id, "current", current.Status, "requested", next)
			return errors.ErrStatusRegressionRejected
		}

		res, err := r.db.Exec(
			`UPDATE transactions SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
			next, time.Now().UTC(), id, current.Status,
		)
		if err != nil {
			return errors.NewAppError(errors.InternalError, "failed to update transaction status").WithDetails(err.Error())
		}
		if n, _ := res.RowsAffected(); n == 1 {
			r.logger.Info("Transaction status advanced", "transaction_id", id, "status", next)
			return nil
		}
		// Lost the race; re-read and re-check.
	}

	return errors.ErrStatusRegressionRejected
}

// ClaimConfirmation is the dedupe point for inbound payment
// confirmations. The single compare-and-set on PENDING means that of
// any number of concurrent deliveries for the same reference, exactly
// one observes a row flip and gets true; the rest see zero rows
// affected and must treat the notification as already handled.
func (r *transactionRepository) ClaimConfirmation(id uuid.UUID) (bool, error) {
	res, err := r.db.Exec(
		`UPDATE transactions SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		domain.StatusConfirmed, time.Now().UTC(), id, domain.StatusPending,
	)
	if err != nil {
		return false, errors.NewAppError(errors.InternalError, "failed to claim confirmation").WithDetails(err.Error())
	}
	n, _ := res.RowsAffected()
	if n == 1 {
		r.logger.Info("Confirmation claimed", "transaction_id", id)
	}
	return n == 1, nil
}

// BeginExecution stamps the execution marker on a PENDING row. The
// marker and the cancel write guard each other's WHERE clauses, so a
// transaction is either cancelled or executing, never both.
func (r *transactionRepository) BeginExecution(id uuid.UUID) (bool, error) {
	res, err := r.db.Exec(
		`UPDATE transactions SET execution_started_at = $1, updated_at = $1
		 WHERE id = $2 AND status = $3 AND execution_started_at IS NULL`,
		time.Now().UTC(), id, domain.StatusPending,
	)
	if err != nil {
		return false, errors.NewAppError(errors.InternalError, "failed to begin execution").WithDetails(err.Error())
	}
	n, _ := res.RowsAffected()
	return n == 1, nil
}

// CancelPending cancels a PENDING row only while its execution marker
// is unset. Zero rows affected means execution already started or the
// row moved on; the caller refuses the cancellation.
func (r *transactionRepository) CancelPending(id uuid.UUID) (bool, error) {
	res, err := r.db.Exec(
		`UPDATE transactions SET status = $1, updated_at = $2
		 WHERE id = $3 AND status = $4 AND execution_started_at IS NULL`,
		domain.StatusCancelled, time.Now().UTC(), id, domain.StatusPending,
	)
	if err != nil {
		return false, errors.NewAppError(errors.InternalError, "failed to cancel transaction").WithDetails(err.Error())
	}
	n, _ := res.RowsAffected()
	if n == 1 {
		r.logger.Info("Transaction cancelled", "transaction_id", id)
	}
	return n == 1, nil
}

// SetLedgerSettlement records the on-chain settlement reference and
// advances PENDING to CONFIRMED in a single write. This is the persisted
// checkpoint between the ledger leg and the payment-rail leg: a
// CONFIRMED off-ramp row with no transfer id means the token side
// settled but fiat was never attempted.
func (r *transactionRepository) SetLedgerSettlement(id uuid.UUID, settlementRef string) error {
	res, err := r.db.Exec(
		`UPDATE transactions
		 SET ledger_settlement_ref = $1, status = $2, updated_at = $3
		 WHERE id = $4 AND status = $5`,
		settlementRef, domain.StatusConfirmed, time.Now().UTC(), id, domain.StatusPending,
	)
	if err != nil {
		return errors.NewAppError(errors.InternalError, "failed to record ledger settlement").WithDetails(err.Error())
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.ErrStatusRegressionRejected
	}
	r.logger.Info("Ledger settlement recorded", "transaction_id", id, "settlement_ref", settlementRef)
	return nil
}

// RecordOrphanSettlement attaches a settlement reference to a row that
// was moved out of PENDING while the ledger leg was in flight. No
// status precondition: the tokens already left the treasury, and the
// reference must not be lost whatever state the row reached.
func (r *transactionRepository) RecordOrphanSettlement(id uuid.UUID, settlementRef, reason string) error {
	res, err := r.db.Exec(
		`UPDATE transactions
		 SET ledger_settlement_ref = $1, failure_reason = $2, needs_manual_recon = TRUE, updated_at = $3
		 WHERE id = $4`,
		settlementRef, reason, time.Now().UTC(), id,
	)
	if err != nil {
		return errors.NewAppError(errors.InternalError, "failed to record orphan settlement").WithDetails(err.Error())
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.ErrTransactionNotFound
	}
	r.logger.Error("Orphan ledger settlement recorded; manual reconciliation required",
		"transaction_id", id, "settlement_ref", settlementRef)
	return nil
}

func (r *transactionRepository) SetTransferResult(id uuid.UUID, transferID, transferStatus string) error {
	_, err := r.db.Exec(
		`UPDATE transactions SET payout_transfer_id = $1, transfer_status = $2, updated_at = $3 WHERE id = $4`,
		transferID, transferStatus, time.Now().UTC(), id,
	)
	if err != nil {
		return errors.NewAppError(errors.InternalError, "failed to record transfer result").WithDetails(err.Error())
	}
	r.logger.Info("Transfer result recorded", "transaction_id", id, "transfer_id", transferID, "transfer_status", transferStatus)
	return nil
}

// MarkFailed moves a non-terminal transaction to FAILED with a reason.
// Terminal rows are untouched: a late failure signal never retro-fails
// a completed swap.
func (r *transactionRepository) MarkFailed(id uuid.UUID, reason string, needsManualRecon bool) error {
	res, err := r.db.Exec(
		`UPDATE transactions
		 SET status = $1, failure_reason = $2, needs_manual_recon = $3, updated_at = $4
		 WHERE id = $5 AND status IN ($6, $7)`,
		domain.StatusFailed, reason, needsManualRecon, time.Now().UTC(), id,
		domain.StatusPending, domain.StatusConfirmed,
	)
	if err != nil {
		return errors.NewAppError(errors.InternalError, "failed to mark transaction failed").WithDetails(err.Error())
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.ErrStatusRegressionRejected
	}
	r.logger.Info("Transaction marked failed",
		"transaction_id", id, "reason", reason, "needs_manual_recon", needsManualRecon)
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *transactionRepository) scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var (
		tx                             domain.Transaction
		tokenAmt, fiatAmt, rate        string
		acctNumber, bankCode, acctName sql.NullString
		settlementRef, transferID      sql.NullString
		transferStatus, failureReason  sql.NullString
		executionStartedAt             sql.NullTime
		snapshot                       []byte
	)

	err := row.Scan(
		&tx.ID,
		&tx.Direction,
		&tx.TokenType,
		&tokenAmt,
		&fiatAmt,
		&rate,
		&tx.CounterpartyAddress,
		&acctNumber,
		&bankCode,
		&acctName,
		&tx.PaymentReference,
		&settlementRef,
		&transferID,
		&transferStatus,
		&tx.Status,
		&executionStartedAt,
		&failureReason,
		&tx.NeedsManualRecon,
		&snapshot,
		&tx.CreatedAt,
		&tx.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Failed to get transaction", "error", err)
		return nil, errors.NewAppError(errors.InternalError, "failed to get transaction").WithDetails(err.Error())
	}

	if tx.TokenAmount, err = decimal.NewFromString(tokenAmt); err != nil {
		return nil, errors.NewAppError(errors.InternalError, "failed to parse token amount").WithDetails(err.Error())
	}
	if tx.FiatAmount, err = decimal.NewFromString(fiatAmt); err != nil {
		return nil, errors.NewAppError(errors.InternalError, "failed to parse fiat amount").WithDetails(err.Error())
	}
	if tx.ExchangeRate, err = decimal.NewFromString(rate); err != nil {
		return nil, errors.NewAppError(errors.InternalError, "failed to parse exchange rate").WithDetails(err.Error())
	}

	if acctNumber.Valid {
		tx.BankDetails = &domain.BankDetails{
			AccountNumber: acctNumber.String,
			BankCode:      bankCode.String,
			AccountName:   acctName.String,
		}
	}
	tx.LedgerSettlementRef = settlementRef.String
	tx.PayoutTransferID = transferID.String
	tx.TransferStatus = transferStatus.String
	tx.FailureReason = failureReason.String
	if executionStartedAt.Valid {
		started := executionStartedAt.Time
		tx.ExecutionStartedAt = &started
	}

	if len(snapshot) > 0 {
		if err := json.Unmarshal(snapshot, &tx.Verification); err != nil {
			return nil, errors.NewAppError(errors.InternalError, "failed to decode verification snapshot").WithDetails(err.Error())
		}
	}

	return &tx, nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
