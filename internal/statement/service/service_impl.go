package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vistoriahub/vistoria/internal/clock"
	ledgerdomain "github.com/vistoriahub/vistoria/internal/ledger/domain"
	"github.com/vistoriahub/vistoria/internal/statement/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("statement.service"),
		clock: p.Clock,
	}
}

// Monthly aggregates the month's executed inspections, credit sales
// and inspector payout into one statement. Future-dated inspections
// inside the current month are excluded the same way the credit
// summary excludes them.
func (s *Service) Monthly(ctx context.Context, req domain.MonthlyRequest) (domain.MonthlyStatement, error) {
	if req.Year < 2000 || req.Year > 9999 || req.Month < 1 || req.Month > 12 {
		return domain.MonthlyStatement{}, domain.ErrInvalidPeriod
	}

	start := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	// Cap the inspection window at tomorrow so a statement for the
	// running month only counts inspections executed so far.
	cutoff := end
	if tomorrow := clock.Truncate(s.clock.Now()).AddDate(0, 0, 1); tomorrow.Before(cutoff) {
		cutoff = tomorrow
	}

	statement := domain.MonthlyStatement{
		Year:              req.Year,
		Month:             req.Month,
		CreditsConsumed:   decimal.Zero,
		InspectionRevenue: decimal.Zero,
		CreditsSold:       decimal.Zero,
		SaleRevenue:       decimal.Zero,
		InspectorPayout:   decimal.Zero,
		Net:               decimal.Zero,
	}

	var inspectionTotals struct {
		Executed    int64           `gorm:"column:executed"`
		Consumption decimal.Decimal `gorm:"column:consumption"`
		Revenue     decimal.Decimal `gorm:"column:revenue"`
		Payout      decimal.Decimal `gorm:"column:payout"`
	}
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS executed,
			COALESCE(SUM(consumption), 0) AS consumption,
			COALESCE(SUM(monetary_value), 0) AS revenue,
			COALESCE(SUM(CASE WHEN inspector_id <> 0 THEN inspector_rate ELSE 0 END), 0) AS payout
		FROM inspections
		WHERE active = ? AND inspection_date >= ? AND inspection_date < ?`,
		true, start, cutoff,
	).Scan(&inspectionTotals).Error
	if err != nil {
		return domain.MonthlyStatement{}, err
	}

	statement.ExecutedInspections = inspectionTotals.Executed
	statement.CreditsConsumed = inspectionTotals.Consumption
	statement.InspectionRevenue = inspectionTotals.Revenue
	statement.InspectorPayout = inspectionTotals.Payout

	var sales []struct {
		Quantity   decimal.Decimal `gorm:"column:quantity"`
		TotalPrice decimal.Decimal `gorm:"column:total_price"`
	}
	err = s.db.WithContext(ctx).Raw(`
		SELECT quantity, total_price
		FROM credit_sales
		WHERE sale_date >= ? AND sale_date < ?`,
		start, end,
	).Scan(&sales).Error
	if err != nil {
		return domain.MonthlyStatement{}, err
	}

	for _, sale := range sales {
		statement.CreditsSold = statement.CreditsSold.Add(ledgerdomain.NormalizeSaleQuantity(sale.Quantity))
		statement.SaleRevenue = statement.SaleRevenue.Add(sale.TotalPrice)
	}

	statement.Net = statement.SaleRevenue.Sub(statement.InspectorPayout)

	s.log.Debug("monthly statement computed",
		zap.Int("year", req.Year),
		zap.Int("month", req.Month),
		zap.Int64("executed_inspections", statement.ExecutedInspections),
		zap.String("net", statement.Net.String()),
	)

	return statement, nil
}
