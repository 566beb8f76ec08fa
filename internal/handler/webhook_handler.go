package handler

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/esogbengastephen/sui-ramp-service/internal/audit"
	"github.com/esogbengastephen/sui-ramp-service/internal/domain"
	"github.com/esogbengastephen/sui-ramp-service/internal/guard"
)

// WebhookHandler processes inbound payment-rail notifications. It
// authenticates on the raw body bytes, matches by payment reference,
// deduplicates against terminal statuses, and triggers ON_RAMP crediting.
type WebhookHandler struct {
	secret   string
	txRepo   domain.TransactionRepository
	guard    *guard.Guard
	creditor domain.TokenCreditor
	audit    audit.Recorder
	logger   *slog.Logger
}

func NewWebhookHandler(
	secret string,
	txRepo domain.TransactionRepository,
	balanceGuard *guard.Guard,
	creditor domain.TokenCreditor,
	recorder audit.Recorder,
	logger *slog.Logger,
) *WebhookHandler {
	return &WebhookHandler{
		secret:   secret,
		txRepo:   txRepo,
		guard:    balanceGuard,
		creditor: creditor,
		audit:    recorder,
		logger:   logger.With("component", "webhook"),
	}
}

// webhookEvent is the rail's notification envelope.
type webhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		Reference       string          `json:"reference"`
		Amount          decimal.Decimal `json:"amount"`
		Currency        string          `json:"currency"`
		Status          string          `json:"status"`
		GatewayResponse string          `json:"gateway_response"`
	} `json:"data"`
}

// HandleEvent is the POST endpoint. The response contract matters to the
// rail's retry logic: 400 means the signature check failed (permanent,
// do not retry), 500 means processing failed (possibly transient, safe
// to retry because processing is idempotent), 200 means handled or
// deliberately ignored.
func (h *WebhookHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Error("Failed to read webhook body", "error", err)
		writeWebhookError(w, http.StatusInternalServerError, "Webhook processing failed")
		return
	}

	// Authentication runs on the raw bytes before any parsing;
	// re-serialized JSON is not byte-stable and would break the HMAC.
	signature := r.Header.Get("X-Signature")
	if signature == "" {
		h.logger.Warn("Webhook rejected: missing signature", "remote", r.RemoteAddr)
		writeWebhookError(w, http.StatusBadRequest, "Missing signature")
		return
	}
	if !h.verifySignature(body, signature) {
		h.logger.Warn("Webhook rejected: invalid signature", "remote", r.RemoteAddr)
		writeWebhookError(w, http.StatusBadRequest, "Invalid signature")
		return
	}

	defer func() {
		if p := recover(); p != nil {
			h.logger.Error("Webhook processing panicked", "panic", p)
			writeWebhookError(w, http.StatusInternalServerError, "Webhook processing failed")
		}
	}()

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		h.logger.Error("Failed to parse webhook envelope", "error", err)
		writeWebhookError(w, http.StatusInternalServerError, "Webhook processing failed")
		return
	}

	if err := h.process(r, &event); err != nil {
		h.logger.Error("Webhook processing failed", "event", event.Event, "reference", event.Data.Reference, "error", err)
		writeWebhookError(w, http.StatusInternalServerError, "Webhook processing failed")
		return
	}

	writeWebhookOK(w)
}

func (h *WebhookHandler) verifySignature(body []byte, signature string) bool {
	mac := hmac.New(sha512.New, []byte(h.secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (h *WebhookHandler) process(r *http.Request, event *webhookEvent) error {
	ctx := r.Context()

	// Match by payment reference only; it is the one immutable
	// correlation key.
	tx, err := h.txRepo.GetByPaymentReference(event.Data.Reference)
	if err != nil {
		return err
	}
	if tx == nil {
		// Acknowledge unknown references so the rail stops retrying;
		// the anomaly is still recorded.
		h.logger.Warn("Webhook for unknown reference", "event", event.Event, "reference", event.Data.Reference)
		h.audit.Record(ctx, audit.Entry{
			Event:     "webhook.unmatched_reference",
			Reference: event.Data.Reference,
			Detail:    event.Event,
		})
		return nil
	}

	switch event.Event {
	case "charge.success", "transfer.success":
		return h.handleSuccess(r, event, tx)
	case "charge.failed", "transfer.failed", "transfer.reversed":
		return h.handleFailure(ctx, event, tx)
	case "charge.dispute":
		// Disputes arrive long after settlement and are informational;
		// they never retro-fail a completed swap.
		h.audit.Record(ctx, audit.Entry{
			Event:         "webhook.dispute_recorded",
			TransactionID: tx.ID.String(),
			Reference:     tx.PaymentReference,
			Detail:        event.Data.GatewayResponse,
		})
		return nil
	default:
		h.logger.Info("Unhandled webhook event", "event", event.Event, "reference", event.Data.Reference)
		h.audit.Record(ctx, audit.Entry{
			Event:         "webhook.unhandled_event",
			TransactionID: tx.ID.String(),
			Reference:     tx.PaymentReference,
			Detail:        event.Event,
		})
		return nil
	}
}

func (h *WebhookHandler) handleSuccess(r *http.Request, event *webhookEvent, tx *domain.Transaction) error {
	ctx := r.Context()

	if tx.Status.Terminal() {
		// Duplicate delivery after completion: a no-op beyond logging.
		h.logger.Info("Duplicate webhook for settled transaction",
			"transaction_id", tx.ID, "status", tx.Status, "event", event.Event)
		h.audit.Record(ctx, audit.Entry{
			Event:         "webhook.duplicate_ignored",
			TransactionID: tx.ID.String(),
			Reference:     tx.PaymentReference,
			Detail:        event.Event,
		})
		return nil
	}

	if tx.Direction == domain.DirectionOffRamp {
		// The payout leg settled; close out the record.
		return h.txRepo.AdvanceStatus(tx.ID, domain.StatusCompleted)
	}

	// The claim is the dedupe point for crediting: only the delivery
	// that actually flipped PENDING to CONFIRMED may credit. A
	// concurrent or redelivered notification loses the claim and is
	// a no-op, whatever status it read above.
	claimed, err := h.txRepo.ClaimConfirmation(tx.ID)
	if err != nil {
		return err
	}
	if !claimed {
		h.logger.Info("Duplicate webhook lost confirmation claim",
			"transaction_id", tx.ID, "event", event.Event)
		h.audit.Record(ctx, audit.Entry{
			Event:         "webhook.duplicate_ignored",
			TransactionID: tx.ID.String(),
			Reference:     tx.PaymentReference,
			Detail:        event.Event,
		})
		return nil
	}
	h.audit.Record(ctx, audit.Entry{
		Event:         "webhook.payment_confirmed",
		TransactionID: tx.ID.String(),
		Reference:     tx.PaymentReference,
		Detail:        event.Data.GatewayResponse,
	})

	return h.creditOnRamp(ctx, tx)
}

// creditOnRamp re-verifies the treasury immediately before crediting;
// balances can have moved since admission. An insufficient treasury at
// settlement time fails the transaction explicitly rather than crediting
// a wrong amount or silently retrying.
func (h *WebhookHandler) creditOnRamp(ctx context.Context, tx *domain.Transaction) error {
	decision := h.guard.Check(ctx, domain.DirectionOnRamp, tx.TokenType, tx.TokenAmount, tx.FiatAmount)
	if !decision.CanProceed {
		reason := "insufficient treasury at settlement time: " + decision.ErrorMessage
		if err := h.txRepo.MarkFailed(tx.ID, reason, true); err != nil {
			return err
		}
		h.audit.Record(ctx, audit.Entry{
			Event:         "webhook.credit_refused",
			TransactionID: tx.ID.String(),
			Reference:     tx.PaymentReference,
			Detail:        reason,
		})
		return nil
	}

	err := h.creditor.Credit(ctx, tx.CounterpartyAddress, tx.TokenAmount, tx.TokenType, tx.ID, tx.PaymentReference)
	if err != nil {
		reason := "token crediting failed: " + err.Error()
		if markErr := h.txRepo.MarkFailed(tx.ID, reason, true); markErr != nil {
			return markErr
		}
		h.audit.Record(ctx, audit.Entry{
			Event:         "webhook.credit_failed",
			TransactionID: tx.ID.String(),
			Reference:     tx.PaymentReference,
			Detail:        reason,
		})
		return nil
	}

	if err := h.txRepo.AdvanceStatus(tx.ID, domain.StatusCompleted); err != nil {
		return err
	}
	h.audit.Record(ctx, audit.Entry{
		Event:         "webhook.credit_completed",
		TransactionID: tx.ID.String(),
		Reference:     tx.PaymentReference,
	})
	h.logger.Info("On-ramp crediting completed", "transaction_id", tx.ID)
	return nil
}

func (h *WebhookHandler) handleFailure(ctx context.Context, event *webhookEvent, tx *domain.Transaction) error {
	if tx.Status.Terminal() {
		h.logger.Info("Failure webhook for settled transaction",
			"transaction_id", tx.ID, "status", tx.Status, "event", event.Event)
		h.audit.Record(ctx, audit.Entry{
			Event:         "webhook.duplicate_ignored",
			TransactionID: tx.ID.String(),
			Reference:     tx.PaymentReference,
			Detail:        event.Event,
		})
		return nil
	}

	reason := event.Data.GatewayResponse
	if reason == "" {
		reason = "payment rail reported " + event.Event
	}
	// Off-ramp failure at this point means the ledger leg already
	// settled; that category needs an operator.
	needsManualRecon := tx.Direction == domain.DirectionOffRamp && tx.LedgerSettlementRef != ""

	if err := h.txRepo.MarkFailed(tx.ID, reason, needsManualRecon); err != nil {
		return err
	}
	h.audit.Record(ctx, audit.Entry{
		Event:         "webhook.payment_failed",
		TransactionID: tx.ID.String(),
		Reference:     tx.PaymentReference,
		Detail:        reason,
	})
	return nil
}

// Health is the companion GET liveness probe.
func (h *WebhookHandler) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":    "healthy",
		"service":   "payment-rail-webhook",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func writeWebhookOK(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

func writeWebhookError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
