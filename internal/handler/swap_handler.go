package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/esogbengastephen/sui-ramp-service/internal/domain"
	"github.com/esogbengastephen/sui-ramp-service/internal/errors"
	"github.com/esogbengastephen/sui-ramp-service/internal/orchestrator"
)

type SwapHandler struct {
	swaps *orchestrator.SwapService
}

func NewSwapHandler(swaps *orchestrator.SwapService) *SwapHandler {
	return &SwapHandler{swaps: swaps}
}

type SubmitSwapRequest struct {
	Direction           string `json:"direction"`
	TokenType           string `json:"token_type"`
	TokenAmount         string `json:"token_amount"`
	FiatAmount          string `json:"fiat_amount"`
	ExchangeRate        string `json:"exchange_rate"`
	CounterpartyAddress string `json:"counterparty_address"`
	BankAccountNumber   string `json:"bank_account_number,omitempty"`
	BankCode            string `json:"bank_code,omitempty"`
	BankAccountName     string `json:"bank_account_name,omitempty"`
}

type SubmitSwapResponse struct {
	Transaction  *domain.Transaction               `json:"transaction"`
	Instructions *orchestrator.PaymentInstructions `json:"payment_instructions,omitempty"`
}

func (h *SwapHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitSwapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid request body").WithDetails(err.Error()))
		return
	}

	tokenAmount, err := decimal.NewFromString(req.TokenAmount)
	if err != nil {
		writeError(w, errors.NewAppError(errors.InvalidAmount, "invalid token amount").WithDetails(err.Error()))
		return
	}
	fiatAmount, err := decimal.NewFromString(req.FiatAmount)
	if err != nil {
		writeError(w, errors.NewAppError(errors.InvalidAmount, "invalid fiat amount").WithDetails(err.Error()))
		return
	}
	rate, err := decimal.NewFromString(req.ExchangeRate)
	if err != nil {
		writeError(w, errors.NewAppError(errors.InvalidAmount, "invalid exchange rate").WithDetails(err.Error()))
		return
	}

	submitReq := &orchestrator.SubmitRequest{
		Direction:           domain.Direction(req.Direction),
		TokenType:           domain.TokenType(req.TokenType),
		TokenAmount:         tokenAmount,
		FiatAmount:          fiatAmount,
		ExchangeRate:        rate,
		CounterpartyAddress: req.CounterpartyAddress,
	}
	if req.BankAccountNumber != "" {
		submitReq.BankDetails = &domain.BankDetails{
			AccountNumber: req.BankAccountNumber,
			BankCode:      req.BankCode,
			AccountName:   req.BankAccountName,
		}
	}

	result, err := h.swaps.Submit(r.Context(), submitReq)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, SubmitSwapResponse{
		Transaction:  result.Transaction,
		Instructions: result.Instructions,
	})
}

func (h *SwapHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	tx, err := h.swaps.Get(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (h *SwapHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	tx, err := h.swaps.Cancel(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (h *SwapHandler) TransferStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	state, err := h.swaps.TransferState(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"transfer_state": string(state)})
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid transaction id").WithDetails(err.Error()))
		return uuid.Nil, false
	}
	return id, true
}
