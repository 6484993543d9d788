package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// MonthlyStatement is the financial balance of one calendar month:
// executed inspections on the consumption side, credit sales on the
// revenue side, inspector payout on the cost side.
type MonthlyStatement struct {
	Year  int `json:"year"`
	Month int `json:"month"`

	ExecutedInspections int64           `json:"executed_inspections"`
	CreditsConsumed     decimal.Decimal `json:"credits_consumed"`
	InspectionRevenue   decimal.Decimal `json:"inspection_revenue"`

	CreditsSold decimal.Decimal `json:"credits_sold"`
	SaleRevenue decimal.Decimal `json:"sale_revenue"`

	InspectorPayout decimal.Decimal `json:"inspector_payout"`

	// Net is cash in minus cash out: sale revenue less inspector
	// payout. Inspection revenue is credit-denominated and already
	// collected through the sales, so it is reported but not added.
	Net decimal.Decimal `json:"net"`
}

type MonthlyRequest struct {
	Year  int
	Month int
}

type Service interface {
	Monthly(ctx context.Context, req MonthlyRequest) (MonthlyStatement, error)
}

var ErrInvalidPeriod = errors.New("invalid_period")
