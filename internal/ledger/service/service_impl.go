package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/vistoriahub/vistoria/internal/clock"
	"github.com/vistoriahub/vistoria/internal/ledger/domain"
	"github.com/vistoriahub/vistoria/internal/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Clock   clock.Clock
	Repo    domain.Repository
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	clock   clock.Clock
	repo    domain.Repository
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("ledger.service"),
		clock:   p.Clock,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

// Reconcile recomputes the agency's spent total from its executed
// active inspections and rewrites the cached counter only on drift.
// The whole routine runs in one transaction so concurrent invocations
// cannot interleave a read with a stale write.
func (s *Service) Reconcile(ctx context.Context, agencyID snowflake.ID) (domain.SyncResult, error) {
	if agencyID == 0 {
		return domain.SyncResult{}, domain.ErrInvalidAgency
	}
	s.metrics.IncReconcileRun()

	var result domain.SyncResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, found, err := s.repo.SpentMinor(ctx, tx, agencyID)
		if err != nil {
			return err
		}
		if !found {
			return domain.ErrAgencyNotFound
		}

		rows, err := s.repo.ListActiveConsumptions(ctx, tx, agencyID)
		if err != nil {
			return err
		}

		today := s.clock.Now()
		total := decimal.Zero
		for _, row := range rows {
			if !clock.SameCalendarDayOrBefore(row.InspectionDate, today) {
				continue
			}
			total = total.Add(row.Consumption)
		}

		minor := domain.MinorUnits(total)
		synced, err := s.repo.SetSpentMinorIfChanged(ctx, tx, agencyID, minor)
		if err != nil {
			return err
		}

		result = domain.SyncResult{
			Synced:     synced,
			Total:      total,
			SpentMinor: minor,
		}
		return nil
	})
	if err != nil {
		return domain.SyncResult{}, err
	}

	if result.Synced {
		s.metrics.IncReconcileSync()
		s.log.Info("spent credits reconciled",
			zap.String("agency_id", agencyID.String()),
			zap.Int64("spent_minor", result.SpentMinor),
		)
	}

	return result, nil
}

// Summary reconciles first, so the counter is self-healing on every
// view, then derives the agency's credit position.
func (s *Service) Summary(ctx context.Context, agencyID snowflake.ID) (domain.CreditSummary, error) {
	if _, err := s.Reconcile(ctx, agencyID); err != nil {
		return domain.CreditSummary{}, err
	}

	sales, err := s.repo.ListSaleAmounts(ctx, s.db, agencyID)
	if err != nil {
		return domain.CreditSummary{}, err
	}

	totalCredits := decimal.Zero
	totalInvested := decimal.Zero
	for _, sale := range sales {
		totalCredits = totalCredits.Add(domain.NormalizeSaleQuantity(sale.Quantity))
		totalInvested = totalInvested.Add(sale.TotalPrice)
	}

	spentMinor, found, err := s.repo.SpentMinor(ctx, s.db, agencyID)
	if err != nil {
		return domain.CreditSummary{}, err
	}
	if !found {
		return domain.CreditSummary{}, domain.ErrAgencyNotFound
	}

	spent := domain.FromMinorUnits(spentMinor)
	available := totalCredits.Sub(spent)

	return domain.CreditSummary{
		TotalCredits:     totalCredits,
		TotalInvested:    totalInvested,
		CreditsSpent:     spent,
		CreditsAvailable: available,
		LowCredit:        available.IsNegative(),
	}, nil
}

// Debit increases the spent counter by round(quantity*100) minor
// units. There is no availability check: the balance may go negative,
// surfaced as a warning on the summary, never rejected here.
func (s *Service) Debit(ctx context.Context, agencyID snowflake.ID, quantity decimal.Decimal) error {
	if agencyID == 0 {
		return domain.ErrInvalidAgency
	}
	if !quantity.IsPositive() {
		return domain.ErrInvalidQuantity
	}

	if err := s.repo.AddSpentMinor(ctx, s.db, agencyID, domain.MinorUnits(quantity)); err != nil {
		return err
	}
	s.metrics.IncLedgerDebit()
	return nil
}

// Refund decreases the spent counter by round(quantity*100) minor
// units, floored at zero.
func (s *Service) Refund(ctx context.Context, agencyID snowflake.ID, quantity decimal.Decimal) error {
	if agencyID == 0 {
		return domain.ErrInvalidAgency
	}
	if !quantity.IsPositive() {
		return domain.ErrInvalidQuantity
	}

	if err := s.repo.SubtractSpentMinorClamped(ctx, s.db, agencyID, domain.MinorUnits(quantity)); err != nil {
		return err
	}
	s.metrics.IncLedgerRefund()
	return nil
}
