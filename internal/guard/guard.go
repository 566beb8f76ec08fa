// Package guard implements admission control: no irreversible step runs
// unless the platform balance backing it was just confirmed sufficient.
package guard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/esogbengastephen/sui-ramp-service/internal/domain"
)

// Decision is the guard's verdict plus the snapshot it was based on, so
// callers can present consistent figures in error messages.
type Decision struct {
	CanProceed bool
	// Unavailable distinguishes "could not read the balance" from
	// "read it and it was too low". Callers map the two to different
	// error codes.
	Unavailable  bool
	ErrorMessage string
	Balances     domain.TreasurySnapshot
}

type Guard struct {
	treasury domain.TreasuryService
	timeout  time.Duration
	logger   *slog.Logger
}

func New(treasury domain.TreasuryService, timeout time.Duration, logger *slog.Logger) *Guard {
	return &Guard{
		treasury: treasury,
		timeout:  timeout,
		logger:   logger.With("component", "balance-guard"),
	}
}

// Check re-reads the relevant platform balance and decides whether the
// swap may proceed. It must be called immediately before the step it
// guards; balances move between form validation and submission. Any
// failure to retrieve a balance fails closed: an unknown balance is
// never treated as sufficient.
func (g *Guard) Check(ctx context.Context, direction domain.Direction, token domain.TokenType, tokenAmount, fiatAmount decimal.Decimal) Decision {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var (
		snapshot domain.TreasurySnapshot
		required decimal.Decimal
		err      error
	)

	switch direction {
	case domain.DirectionOffRamp:
		// Fiat leaves the platform: the payment-rail payout balance is
		// the one that matters.
		snapshot, err = g.treasury.PayoutBalance(ctx)
		required = fiatAmount
	case domain.DirectionOnRamp:
		// Tokens leave the treasury after the fiat payment confirms.
		snapshot, err = g.treasury.TokenBalance(ctx, token)
		required = tokenAmount
	default:
		return Decision{
			Unavailable:  true,
			ErrorMessage: fmt.Sprintf("unknown direction %q", direction),
		}
	}

	if err != nil {
		g.logger.Error("Balance query failed; refusing admission",
			"direction", direction, "token", token, "error", err)
		return Decision{
			Unavailable:  true,
			ErrorMessage: "balance could not be verified; transaction refused",
		}
	}

	if snapshot.AvailableBalance.LessThan(required) {
		g.logger.Warn("Insufficient balance for swap",
			"direction", direction,
			"token", token,
			"available", snapshot.AvailableBalance,
			"required", required)
		return Decision{
			ErrorMessage: insufficientMessage(direction, snapshot.Currency, snapshot.AvailableBalance, required),
			Balances:     snapshot,
		}
	}

	return Decision{CanProceed: true, Balances: snapshot}
}

func insufficientMessage(direction domain.Direction, currency string, available, required decimal.Decimal) string {
	if direction == domain.DirectionOffRamp {
		return fmt.Sprintf("insufficient payout balance: available ₦%s, required ₦%s", available, required)
	}
	return fmt.Sprintf("insufficient %s treasury: available %s, required %s", currency, available, required)
}
