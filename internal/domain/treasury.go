package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TreasurySnapshot is a point-in-time view of one currency's platform
// balance. It gates admission of new swaps only; settlement never trusts
// it.
type TreasurySnapshot struct {
	Currency         string          `json:"currency"`
	Balance          decimal.Decimal `json:"balance"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
	LockedBalance    decimal.Decimal `json:"locked_balance"`
	LastUpdated      time.Time       `json:"last_updated"`
}
