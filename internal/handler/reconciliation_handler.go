package handler

import (
	"net/http"

	"github.com/esogbengastephen/sui-ramp-service/internal/domain"
)

// ReconciliationHandler exposes the operator worklist: transactions
// that stopped between legs and need a human. Two categories land
// here. FAILED rows flagged for manual reconciliation are payouts that
// died after the token side settled. CONFIRMED rows are transactions
// parked between the confirmation claim and the step that should have
// finished them, typically after a crash mid-settlement.
type ReconciliationHandler struct {
	txRepo domain.TransactionRepository
}

func NewReconciliationHandler(txRepo domain.TransactionRepository) *ReconciliationHandler {
	return &ReconciliationHandler{txRepo: txRepo}
}

type ReconciliationReport struct {
	FlaggedFailures []*domain.Transaction `json:"flagged_failures"`
	StuckConfirmed  []*domain.Transaction `json:"stuck_confirmed"`
	Total           int                   `json:"total"`
}

func (h *ReconciliationHandler) List(w http.ResponseWriter, _ *http.Request) {
	failed, err := h.txRepo.ListByStatus(domain.StatusFailed)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	confirmed, err := h.txRepo.ListByStatus(domain.StatusConfirmed)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	report := ReconciliationReport{
		FlaggedFailures: []*domain.Transaction{},
		StuckConfirmed:  confirmed,
	}
	for _, tx := range failed {
		if tx.NeedsManualRecon {
			report.FlaggedFailures = append(report.FlaggedFailures, tx)
		}
	}
	if report.StuckConfirmed == nil {
		report.StuckConfirmed = []*domain.Transaction{}
	}
	report.Total = len(report.FlaggedFailures) + len(report.StuckConfirmed)

	writeJSON(w, http.StatusOK, report)
}
