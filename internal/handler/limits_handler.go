package handler

import (
	"encoding/json"
	"net/http"

	"github.com/esogbengastephen/sui-ramp-service/internal/domain"
	"github.com/esogbengastephen/sui-ramp-service/internal/errors"
)

// LimitsHandler exposes the admin surface for the limits configuration.
type LimitsHandler struct {
	repo domain.LimitsRepository
}

func NewLimitsHandler(repo domain.LimitsRepository) *LimitsHandler {
	return &LimitsHandler{repo: repo}
}

func (h *LimitsHandler) Get(w http.ResponseWriter, _ *http.Request) {
	limits, err := h.repo.Get()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, limits)
}

type UpdateLimitsRequest struct {
	OnRamp   domain.DirectionLimits `json:"on_ramp"`
	OffRamp  domain.DirectionLimits `json:"off_ramp"`
	IsActive bool                   `json:"is_active"`
}

func (h *LimitsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateLimitsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid request body").WithDetails(err.Error()))
		return
	}

	updatedBy := r.Header.Get("X-Admin-User")
	if updatedBy == "" {
		writeError(w, errors.NewAppError(errors.InvalidInput, "X-Admin-User header is required"))
		return
	}

	limits := &domain.TransactionLimits{
		OnRamp:    req.OnRamp,
		OffRamp:   req.OffRamp,
		IsActive:  req.IsActive,
		UpdatedBy: updatedBy,
	}
	if err := h.repo.Update(limits); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, limits)
}
