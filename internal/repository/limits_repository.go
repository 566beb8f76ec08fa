package repository

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/esogbengastephen/sui-ramp-service/internal/domain"
	"github.com/esogbengastephen/sui-ramp-service/internal/errors"
)

// limitsRepository stores the limits configuration as a singleton row.
// The config is read on every submission and only ever written by an
// administrative action.
type limitsRepository struct {
	db     SQLExecutor
	logger *slog.Logger
}

func NewLimitsRepository(db SQLExecutor, logger *slog.Logger) domain.LimitsRepository {
	return &limitsRepository{
		db:     db,
		logger: logger,
	}
}

func (r *limitsRepository) Get() (*domain.TransactionLimits, error) {
	var (
		payload     []byte
		isActive    bool
		lastUpdated time.Time
		updatedBy   string
	)

	err := r.db.QueryRow(
		`SELECT config, is_active, last_updated, updated_by FROM transaction_limits WHERE id = 1`,
	).Scan(&payload, &isActive, &lastUpdated, &updatedBy)

	if err != nil {
		if err == sql.ErrNoRows {
			// Fresh deployment before the seed migration ran; defaults
			// keep validation enforceable rather than wide open.
			return domain.DefaultLimits(), nil
		}
		r.logger.Error("Failed to load transaction limits", "error", err)
		return nil, errors.NewAppError(errors.InternalError, "failed to load transaction limits").WithDetails(err.Error())
	}

	var limits domain.TransactionLimits
	if err := json.Unmarshal(payload, &limits); err != nil {
		return nil, errors.NewAppError(errors.InternalError, "failed to decode transaction limits").WithDetails(err.Error())
	}
	limits.IsActive = isActive
	limits.LastUpdated = lastUpdated
	limits.UpdatedBy = updatedBy
	return &limits, nil
}

func (r *limitsRepository) Update(limits *domain.TransactionLimits) error {
	payload, err := json.Marshal(limits)
	if err != nil {
		return errors.NewAppError(errors.InternalError, "failed to encode transaction limits").WithDetails(err.Error())
	}

	now := time.Now().UTC()
	_, err = r.db.Exec(
		`INSERT INTO transaction_limits (id, config, is_active, last_updated, updated_by)
		 VALUES (1, $1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE
		 SET config = $1, is_active = $2, last_updated = $3, updated_by = $4`,
		payload, limits.IsActive, now, limits.UpdatedBy,
	)
	if err != nil {
		r.logger.Error("Failed to update transaction limits", "error", err)
		return errors.NewAppError(errors.InternalError, "failed to update transaction limits").WithDetails(err.Error())
	}

	limits.LastUpdated = now
	r.logger.Info("Transaction limits updated", "updated_by", limits.UpdatedBy, "is_active", limits.IsActive)
	return nil
}
