package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// SyncResult reports the outcome of one reconciliation run.
type SyncResult struct {
	// Synced is true when the stored counter drifted and was rewritten.
	Synced bool `json:"synced"`
	// Total is the recomputed spent total in decimal credits.
	Total decimal.Decimal `json:"total"`
	// SpentMinor is the recomputed total in minor units (hundredths).
	SpentMinor int64 `json:"spent_minor"`
}

// CreditSummary is the per-agency credit position surfaced to the
// dashboard. Available may be negative; that is a warning, never an
// error.
type CreditSummary struct {
	TotalCredits     decimal.Decimal `json:"total_credits"`
	TotalInvested    decimal.Decimal `json:"total_invested"`
	CreditsSpent     decimal.Decimal `json:"credits_spent"`
	CreditsAvailable decimal.Decimal `json:"credits_available"`
	LowCredit        bool            `json:"low_credit"`
}

// ExecutedConsumption is one active inspection's frozen consumption
// together with its scheduled date, as read for reconciliation.
type ExecutedConsumption struct {
	InspectionDate time.Time
	Consumption    decimal.Decimal
}

// SaleAmount is the slice of a credit sale the summary needs.
type SaleAmount struct {
	Quantity   decimal.Decimal
	TotalPrice decimal.Decimal
}

// MinorUnits converts decimal credits to the stored minor-unit
// representation, rounding to the nearest hundredth.
func MinorUnits(credits decimal.Decimal) int64 {
	return credits.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// FromMinorUnits converts a stored minor-unit counter back to decimal
// credits.
func FromMinorUnits(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}

// NormalizeSaleQuantity preserves the historical unit heuristic: sale
// rows written before the schema migration stored quantities in
// hundredths, so any stored quantity >= 1000 is interpreted as minor
// units and divided by 100. New rows are always whole-credit decimals.
func NormalizeSaleQuantity(quantity decimal.Decimal) decimal.Decimal {
	if quantity.GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return quantity.Div(decimal.NewFromInt(100))
	}
	return quantity
}

var (
	ErrInvalidAgency   = errors.New("invalid_agency")
	ErrInvalidQuantity = errors.New("invalid_quantity")
	ErrAgencyNotFound  = errors.New("agency_not_found")
)
