package limits_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/esogbengastephen/sui-ramp-service/internal/domain"
	"github.com/esogbengastephen/sui-ramp-service/internal/limits"
)

func testConfig() *domain.TransactionLimits {
	bounds := domain.DirectionLimits{
		MinNairaAmount: decimal.NewFromInt(1000),
		MaxNairaAmount: decimal.NewFromInt(10_000_000),
		MinSuiAmount:   decimal.NewFromInt(1),
		MaxSuiAmount:   decimal.NewFromInt(10_000),
		MinUsdcAmount:  decimal.NewFromInt(1),
		MaxUsdcAmount:  decimal.NewFromInt(50_000),
		MinUsdtAmount:  decimal.NewFromInt(1),
		MaxUsdtAmount:  decimal.NewFromInt(50_000),
	}
	return &domain.TransactionLimits{
		OnRamp:   bounds,
		OffRamp:  bounds,
		IsActive: true,
	}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		direction   domain.Direction
		token       domain.TokenType
		tokenAmount string
		fiatAmount  string
		wantValid   bool
		wantErrors  int
	}{
		{
			name:      "amounts within limits",
			direction: domain.DirectionOffRamp, token: domain.TokenSUI,
			tokenAmount: "100", fiatAmount: "600000",
			wantValid: true,
		},
		{
			name:      "token amount exactly at min",
			direction: domain.DirectionOnRamp, token: domain.TokenSUI,
			tokenAmount: "1", fiatAmount: "6000",
			wantValid: true,
		},
		{
			name:      "token amount exactly at max",
			direction: domain.DirectionOnRamp, token: domain.TokenSUI,
			tokenAmount: "10000", fiatAmount: "6000000",
			wantValid: true,
		},
		{
			name:      "fiat amount exactly at min",
			direction: domain.DirectionOffRamp, token: domain.TokenUSDC,
			tokenAmount: "2", fiatAmount: "1000",
			wantValid: true,
		},
		{
			name:      "fiat amount exactly at max",
			direction: domain.DirectionOffRamp, token: domain.TokenUSDC,
			tokenAmount: "6000", fiatAmount: "10000000",
			wantValid: true,
		},
		{
			name:      "token amount just below min",
			direction: domain.DirectionOnRamp, token: domain.TokenSUI,
			tokenAmount: "0.9999999999", fiatAmount: "6000",
			wantValid: false, wantErrors: 1,
		},
		{
			name:      "token amount just above max",
			direction: domain.DirectionOnRamp, token: domain.TokenSUI,
			tokenAmount: "10000.0000000001", fiatAmount: "6000000",
			wantValid: false, wantErrors: 1,
		},
		{
			name:      "fiat amount just below min",
			direction: domain.DirectionOffRamp, token: domain.TokenUSDT,
			tokenAmount: "5", fiatAmount: "999.99",
			wantValid: false, wantErrors: 1,
		},
		{
			name:      "fiat amount just above max",
			direction: domain.DirectionOffRamp, token: domain.TokenUSDT,
			tokenAmount: "5000", fiatAmount: "10000000.01",
			wantValid: false, wantErrors: 1,
		},
		{
			name:      "both denominations breach at once",
			direction: domain.DirectionOffRamp, token: domain.TokenSUI,
			tokenAmount: "0.5", fiatAmount: "500",
			wantValid: false, wantErrors: 2,
		},
	}

	cfg := testConfig()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := limits.Validate(cfg, tt.direction, tt.token, dec(tt.tokenAmount), dec(tt.fiatAmount))
			assert.Equal(t, tt.wantValid, res.IsValid)
			assert.Len(t, res.Errors, tt.wantErrors)
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	// Both the token breach and the fiat breach must be reported; the
	// validator never stops at the first failure.
	res := limits.Validate(testConfig(), domain.DirectionOnRamp, domain.TokenSUI, dec("0.1"), dec("50"))
	assert.False(t, res.IsValid)
	assert.Len(t, res.Errors, 2)
}

func TestValidateInactiveBypassesBounds(t *testing.T) {
	cfg := testConfig()
	cfg.IsActive = false

	res := limits.Validate(cfg, domain.DirectionOffRamp, domain.TokenSUI, dec("999999"), dec("0.01"))
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
	assert.NotEmpty(t, res.Warnings)
}

func TestValidateRejectsBadInputs(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		name        string
		direction   domain.Direction
		token       domain.TokenType
		tokenAmount string
		fiatAmount  string
	}{
		{"unknown direction", "SIDEWAYS", domain.TokenSUI, "10", "60000"},
		{"unknown token", domain.DirectionOnRamp, "DOGE", "10", "60000"},
		{"zero token amount", domain.DirectionOnRamp, domain.TokenSUI, "0", "60000"},
		{"negative fiat amount", domain.DirectionOnRamp, domain.TokenSUI, "10", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := limits.Validate(cfg, tt.direction, tt.token, dec(tt.tokenAmount), dec(tt.fiatAmount))
			assert.False(t, res.IsValid)
			assert.NotEmpty(t, res.Errors)
		})
	}
}

func TestValidateInactiveStillRejectsBadInputs(t *testing.T) {
	cfg := testConfig()
	cfg.IsActive = false

	// The bypass switch skips bounds, not input sanity.
	res := limits.Validate(cfg, domain.DirectionOnRamp, domain.TokenSUI, dec("-5"), dec("1000"))
	assert.False(t, res.IsValid)
}
