// Package limits implements the pre-submission amount validator. It is
// pure: no I/O, safe to call speculatively before any balance or ledger
// interaction.
package limits

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/esogbengastephen/sui-ramp-service/internal/domain"
)

// Result carries every breach found, not just the first. Callers present
// the full list to the user.
type Result struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Validate checks a proposed swap amount against the configured bounds
// for its (direction, token) pair. Both the token-denominated and the
// fiat-denominated amount are checked; both checks run even after the
// first failure. Bounds are inclusive at min and max.
func Validate(cfg *domain.TransactionLimits, direction domain.Direction, token domain.TokenType, tokenAmount, fiatAmount decimal.Decimal) Result {
	var res Result

	if !direction.Valid() {
		res.Errors = append(res.Errors, fmt.Sprintf("unknown direction %q", direction))
	}
	if !token.Valid() {
		res.Errors = append(res.Errors, fmt.Sprintf("unsupported token %q", token))
	}
	if !tokenAmount.IsPositive() {
		res.Errors = append(res.Errors, "token amount must be positive")
	}
	if !fiatAmount.IsPositive() {
		res.Errors = append(res.Errors, "fiat amount must be positive")
	}
	if len(res.Errors) > 0 {
		return res
	}

	// Emergency bypass: with the configuration switched off, every
	// amount passes.
	if !cfg.IsActive {
		res.IsValid = true
		res.Warnings = append(res.Warnings, "transaction limits are inactive; amounts not checked")
		return res
	}

	dl := cfg.ForDirection(direction)

	if fiatAmount.LessThan(dl.MinNairaAmount) {
		res.Errors = append(res.Errors,
			fmt.Sprintf("fiat amount ₦%s is below the minimum of ₦%s", fiatAmount, dl.MinNairaAmount))
	}
	if fiatAmount.GreaterThan(dl.MaxNairaAmount) {
		res.Errors = append(res.Errors,
			fmt.Sprintf("fiat amount ₦%s exceeds the maximum of ₦%s", fiatAmount, dl.MaxNairaAmount))
	}

	bounds, ok := dl.BoundsFor(token)
	if !ok {
		res.Errors = append(res.Errors, fmt.Sprintf("no limits configured for token %s", token))
	} else {
		if tokenAmount.LessThan(bounds.Min) {
			res.Errors = append(res.Errors,
				fmt.Sprintf("%s amount %s is below the minimum of %s", token, tokenAmount, bounds.Min))
		}
		if tokenAmount.GreaterThan(bounds.Max) {
			res.Errors = append(res.Errors,
				fmt.Sprintf("%s amount %s exceeds the maximum of %s", token, tokenAmount, bounds.Max))
		}
	}

	res.IsValid = len(res.Errors) == 0
	return res
}
