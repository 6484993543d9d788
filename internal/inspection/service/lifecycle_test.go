package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	creditsaledomain "github.com/vistoriahub/vistoria/internal/creditsale/domain"
	"github.com/vistoriahub/vistoria/internal/inspection/domain"
	ledgerrepository "github.com/vistoriahub/vistoria/internal/ledger/repository"
	ledgerservice "github.com/vistoriahub/vistoria/internal/ledger/service"
	"go.uber.org/zap"
)

// Exercises the full credit lifecycle across inspection mutations and
// the reconciliation routine: schedule, execute, postpone, delete.
func TestCreditLifecycleEndToEnd(t *testing.T) {
	svc, db, node, fake := setupInspectionService(t)
	require.NoError(t, db.AutoMigrate(
		&creditsaledomain.CreditSale{},
		&creditsaledomain.CreditSalePayment{},
	))

	ledgerSvc := ledgerservice.New(ledgerservice.Params{
		DB:    db,
		Log:   zap.NewNop(),
		Clock: fake,
		Repo:  ledgerrepository.Provide(),
	})

	agencyID := seedAgency(t, db, node)
	sale := creditsaledomain.CreditSale{
		ID:         node.Generate(),
		AgencyID:   agencyID,
		SaleDate:   today.AddDate(0, -1, 0),
		Quantity:   decimal.NewFromInt(10),
		UnitPrice:  decimal.NewFromInt(10),
		TotalPrice: decimal.NewFromInt(100),
	}
	require.NoError(t, db.Create(&sale).Error)

	ctx := context.Background()

	// 1. Executed inspection: debited immediately.
	executed, err := svc.Create(ctx, domain.CreateInspectionRequest{
		AgencyID:       agencyID.String(),
		InspectionDate: dateString(today.AddDate(0, 0, -1)),
		AreaM2:         decimal.NewFromInt(200),
		PropertyType:   domain.PropertyTypeApartment,
		Furnishing:     domain.FurnishingUnfurnished,
	})
	require.NoError(t, err)

	// 2. Future inspection: frozen but not charged.
	scheduled, err := svc.Create(ctx, domain.CreateInspectionRequest{
		AgencyID:       agencyID.String(),
		InspectionDate: dateString(today.AddDate(0, 0, 2)),
		AreaM2:         decimal.NewFromInt(100),
		PropertyType:   domain.PropertyTypeApartment,
		Furnishing:     domain.FurnishingUnfurnished,
	})
	require.NoError(t, err)

	summary, err := ledgerSvc.Summary(ctx, agencyID)
	require.NoError(t, err)
	assert.True(t, summary.CreditsSpent.Equal(decimal.NewFromInt(2)))
	assert.True(t, summary.CreditsAvailable.Equal(decimal.NewFromInt(8)))

	// 3. Two days later the scheduled inspection has executed;
	// reconciliation picks it up without any explicit debit.
	fake.Advance(48 * time.Hour)

	summary, err = ledgerSvc.Summary(ctx, agencyID)
	require.NoError(t, err)
	assert.True(t, summary.CreditsSpent.Equal(decimal.NewFromInt(3)))

	// 4. Postpone the executed inspection. The edit keeps the debit,
	// but the next reconciliation drops its consumption from the
	// recomputed truth.
	newDate := dateString(today.AddDate(0, 0, 30))
	_, err = svc.Update(ctx, domain.UpdateInspectionRequest{
		ID:             executed.ID.String(),
		InspectionDate: &newDate,
	})
	require.NoError(t, err)

	result, err := ledgerSvc.Reconcile(ctx, agencyID)
	require.NoError(t, err)
	assert.True(t, result.Synced)
	assert.True(t, result.Total.Equal(decimal.NewFromInt(1)), "only the still-executed inspection counts")

	// 5. Delete the remaining executed inspection: refunded.
	require.NoError(t, svc.Delete(ctx, domain.DeleteInspectionRequest{ID: scheduled.ID.String()}))

	summary, err = ledgerSvc.Summary(ctx, agencyID)
	require.NoError(t, err)
	assert.True(t, summary.CreditsSpent.IsZero())
	assert.True(t, summary.CreditsAvailable.Equal(decimal.NewFromInt(10)))
	assert.False(t, summary.LowCredit)
}
