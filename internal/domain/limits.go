package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TokenBounds is the configured {min, max} window for one token on one
// direction. Bounds are inclusive at both ends.
type TokenBounds struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// DirectionLimits holds the fiat bounds plus per-token bounds for a
// single swap direction. The fields are flat per token, matching the
// admin-facing configuration document.
type DirectionLimits struct {
	MinNairaAmount decimal.Decimal `json:"min_naira_amount"`
	MaxNairaAmount decimal.Decimal `json:"max_naira_amount"`
	MinSuiAmount   decimal.Decimal `json:"min_sui_amount"`
	MaxSuiAmount   decimal.Decimal `json:"max_sui_amount"`
	MinUsdcAmount  decimal.Decimal `json:"min_usdc_amount"`
	MaxUsdcAmount  decimal.Decimal `json:"max_usdc_amount"`
	MinUsdtAmount  decimal.Decimal `json:"min_usdt_amount"`
	MaxUsdtAmount  decimal.Decimal `json:"max_usdt_amount"`
}

// BoundsFor returns the window for one token, or false for a token the
// configuration does not cover.
func (dl DirectionLimits) BoundsFor(token TokenType) (TokenBounds, bool) {
	switch token {
	case TokenSUI:
		return TokenBounds{Min: dl.MinSuiAmount, Max: dl.MaxSuiAmount}, true
	case TokenUSDC:
		return TokenBounds{Min: dl.MinUsdcAmount, Max: dl.MaxUsdcAmount}, true
	case TokenUSDT:
		return TokenBounds{Min: dl.MinUsdtAmount, Max: dl.MaxUsdtAmount}, true
	}
	return TokenBounds{}, false
}

// TransactionLimits is the admin-managed limits configuration, read on
// every submission. IsActive=false is the emergency bypass switch.
type TransactionLimits struct {
	OnRamp      DirectionLimits `json:"on_ramp"`
	OffRamp     DirectionLimits `json:"off_ramp"`
	IsActive    bool            `json:"is_active"`
	LastUpdated time.Time       `json:"last_updated"`
	UpdatedBy   string          `json:"updated_by"`
}

// ForDirection returns the bounds for one side of the swap.
func (l *TransactionLimits) ForDirection(d Direction) DirectionLimits {
	if d == DirectionOnRamp {
		return l.OnRamp
	}
	return l.OffRamp
}

type LimitsRepository interface {
	Get() (*TransactionLimits, error)
	Update(limits *TransactionLimits) error
}

// DefaultLimits seeds a fresh deployment. Values mirror the production
// defaults: ₦1,000–₦10,000,000 fiat, token windows sized per token.
func DefaultLimits() *TransactionLimits {
	bounds := DirectionLimits{
		MinNairaAmount: decimal.NewFromInt(1000),
		MaxNairaAmount: decimal.NewFromInt(10_000_000),
		MinSuiAmount:   decimal.NewFromInt(1),
		MaxSuiAmount:   decimal.NewFromInt(10_000),
		MinUsdcAmount:  decimal.NewFromInt(1),
		MaxUsdcAmount:  decimal.NewFromInt(50_000),
		MinUsdtAmount:  decimal.NewFromInt(1),
		MaxUsdtAmount:  decimal.NewFromInt(50_000),
	}
	return &TransactionLimits{
		OnRamp:      bounds,
		OffRamp:     bounds,
		IsActive:    true,
		LastUpdated: time.Now().UTC(),
		UpdatedBy:   "system",
	}
}
