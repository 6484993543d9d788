package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	agencydomain "github.com/vistoriahub/vistoria/internal/agency/domain"
	agencyrepository "github.com/vistoriahub/vistoria/internal/agency/repository"
	"github.com/vistoriahub/vistoria/internal/clock"
	"github.com/vistoriahub/vistoria/internal/config"
	"github.com/vistoriahub/vistoria/internal/inspection/domain"
	inspectionrepository "github.com/vistoriahub/vistoria/internal/inspection/repository"
	inspectordomain "github.com/vistoriahub/vistoria/internal/inspector/domain"
	inspectorrepository "github.com/vistoriahub/vistoria/internal/inspector/repository"
	ledgerrepository "github.com/vistoriahub/vistoria/internal/ledger/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var today = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func setupInspectionService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node, *clock.FakeClock) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&agencydomain.Agency{},
		&inspectordomain.Inspector{},
		&domain.Inspection{},
	))

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)

	fake := clock.NewFakeClock(today)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fake,
		Cfg: config.Config{
			CreditUnitPrice:   decimal.NewFromInt(10),
			InspectorBaseRate: decimal.NewFromInt(50),
		},
		Repo:          inspectionrepository.Provide(),
		LedgerRepo:    ledgerrepository.Provide(),
		AgencyRepo:    agencyrepository.Provide(),
		InspectorRepo: inspectorrepository.Provide(),
	})

	return svc, db, node, fake
}

func seedAgency(t *testing.T, db *gorm.DB, node *snowflake.Node) snowflake.ID {
	t.Helper()
	agency := agencydomain.Agency{
		ID:     node.Generate(),
		Name:   "Imobiliária Atlântico",
		Active: true,
	}
	require.NoError(t, db.Create(&agency).Error)
	return agency.ID
}

func seedInspector(t *testing.T, db *gorm.DB, node *snowflake.Node) snowflake.ID {
	t.Helper()
	inspector := inspectordomain.Inspector{
		ID:     node.Generate(),
		Name:   "João Pereira",
		Active: true,
	}
	require.NoError(t, db.Create(&inspector).Error)
	return inspector.ID
}

func spentMinorOf(t *testing.T, db *gorm.DB, agencyID snowflake.ID) int64 {
	t.Helper()
	var agency agencydomain.Agency
	require.NoError(t, db.First(&agency, "id = ?", agencyID).Error)
	return agency.CreditsSpent
}

func dateString(ts time.Time) string {
	return ts.Format("2006-01-02")
}

func TestCreateExecutedInspectionDebitsAgency(t *testing.T) {
	svc, db, node, _ := setupInspectionService(t)
	agencyID := seedAgency(t, db, node)
	inspectorID := seedInspector(t, db, node)

	created, err := svc.Create(context.Background(), domain.CreateInspectionRequest{
		AgencyID:       agencyID.String(),
		InspectorID:    inspectorID.String(),
		InspectionDate: dateString(today.AddDate(0, 0, -1)),
		AreaM2:         decimal.NewFromInt(100),
		PropertyType:   domain.PropertyTypeHouse,
		Furnishing:     domain.FurnishingFurnished,
	})
	require.NoError(t, err)

	assert.Equal(t, "VST-2026-0001", created.Code)
	assert.True(t, created.Consumption.Equal(decimal.RequireFromString("1.5")))
	assert.True(t, created.MonetaryValue.Equal(decimal.NewFromInt(15)))
	assert.True(t, created.InspectorRate.Equal(decimal.NewFromInt(50)))
	assert.True(t, created.Active)

	assert.Equal(t, int64(150), spentMinorOf(t, db, agencyID))
}

func TestCreateFutureInspectionDoesNotDebit(t *testing.T) {
	svc, db, node, _ := setupInspectionService(t)
	agencyID := seedAgency(t, db, node)

	created, err := svc.Create(context.Background(), domain.CreateInspectionRequest{
		AgencyID:       agencyID.String(),
		InspectionDate: dateString(today.AddDate(0, 0, 3)),
		AreaM2:         decimal.NewFromInt(200),
		PropertyType:   domain.PropertyTypeApartment,
		Furnishing:     domain.FurnishingUnfurnished,
	})
	require.NoError(t, err)

	assert.True(t, created.Consumption.Equal(decimal.NewFromInt(2)), "consumption frozen even when not yet charged")
	assert.Equal(t, int64(0), spentMinorOf(t, db, agencyID))
}

func TestCreateAssignsSequentialCodes(t *testing.T) {
	svc, db, node, _ := setupInspectionService(t)
	agencyID := seedAgency(t, db, node)

	for i, want := range []string{"VST-2026-0001", "VST-2026-0002", "VST-2026-0003"} {
		created, err := svc.Create(context.Background(), domain.CreateInspectionRequest{
			AgencyID:       agencyID.String(),
			InspectionDate: dateString(today.AddDate(0, 0, i+1)),
			AreaM2:         decimal.NewFromInt(80),
			PropertyType:   domain.PropertyTypeApartment,
			Furnishing:     domain.FurnishingUnfurnished,
		})
		require.NoError(t, err)
		assert.Equal(t, want, created.Code)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, db, node, _ := setupInspectionService(t)
	agencyID := seedAgency(t, db, node)

	base := domain.CreateInspectionRequest{
		AgencyID:       agencyID.String(),
		InspectionDate: dateString(today),
		AreaM2:         decimal.NewFromInt(100),
		PropertyType:   domain.PropertyTypeApartment,
		Furnishing:     domain.FurnishingUnfurnished,
	}

	req := base
	req.AgencyID = "not-a-number"
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidAgency)

	req = base
	req.AgencyID = node.Generate().String()
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	req = base
	req.InspectionDate = "15/03/2026"
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	req = base
	req.AreaM2 = decimal.Zero
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidArea)

	req = base
	req.PropertyType = "castle"
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidPropertyType)

	req = base
	req.Furnishing = "gold-plated"
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidFurnishing)
}

func TestUpdateFutureToPastDebits(t *testing.T) {
	svc, db, node, _ := setupInspectionService(t)
	agencyID := seedAgency(t, db, node)

	created, err := svc.Create(context.Background(), domain.CreateInspectionRequest{
		AgencyID:       agencyID.String(),
		InspectionDate: dateString(today.AddDate(0, 0, 5)),
		AreaM2:         decimal.NewFromInt(100),
		PropertyType:   domain.PropertyTypeApartment,
		Furnishing:     domain.FurnishingUnfurnished,
	})
	require.NoError(t, err)
	require.Equal(t, int64(0), spentMinorOf(t, db, agencyID))

	newDate := dateString(today.AddDate(0, 0, -1))
	_, err = svc.Update(context.Background(), domain.UpdateInspectionRequest{
		ID:             created.ID.String(),
		InspectionDate: &newDate,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(100), spentMinorOf(t, db, agencyID))
}

func TestUpdatePastToFutureDoesNotRefund(t *testing.T) {
	svc, db, node, _ := setupInspectionService(t)
	agencyID := seedAgency(t, db, node)

	created, err := svc.Create(context.Background(), domain.CreateInspectionRequest{
		AgencyID:       agencyID.String(),
		InspectionDate: dateString(today.AddDate(0, 0, -1)),
		AreaM2:         decimal.NewFromInt(100),
		PropertyType:   domain.PropertyTypeApartment,
		Furnishing:     domain.FurnishingUnfurnished,
	})
	require.NoError(t, err)
	require.Equal(t, int64(100), spentMinorOf(t, db, agencyID))

	newDate := dateString(today.AddDate(0, 0, 10))
	_, err = svc.Update(context.Background(), domain.UpdateInspectionRequest{
		ID:             created.ID.String(),
		InspectionDate: &newDate,
	})
	require.NoError(t, err)

	// Moving an already charged inspection into the future keeps the
	// debit in place until the next reconciliation.
	assert.Equal(t, int64(100), spentMinorOf(t, db, agencyID))
}

func TestUpdateShrinkingConsumptionDoesNotRefund(t *testing.T) {
	svc, db, node, _ := setupInspectionService(t)
	agencyID := seedAgency(t, db, node)

	created, err := svc.Create(context.Background(), domain.CreateInspectionRequest{
		AgencyID:       agencyID.String(),
		InspectionDate: dateString(today.AddDate(0, 0, -1)),
		AreaM2:         decimal.NewFromInt(300),
		PropertyType:   domain.PropertyTypeApartment,
		Furnishing:     domain.FurnishingUnfurnished,
	})
	require.NoError(t, err)
	require.Equal(t, int64(300), spentMinorOf(t, db, agencyID))

	smaller := decimal.NewFromInt(100)
	updated, err := svc.Update(context.Background(), domain.UpdateInspectionRequest{
		ID:     created.ID.String(),
		AreaM2: &smaller,
	})
	require.NoError(t, err)

	assert.True(t, updated.Consumption.Equal(decimal.NewFromInt(1)))
	// The counter is left alone; reconciliation will pick up the new
	// frozen consumption.
	assert.Equal(t, int64(300), spentMinorOf(t, db, agencyID))
}

func TestUpdateZeroConsumptionRowGetsCharged(t *testing.T) {
	svc, db, node, _ := setupInspectionService(t)
	agencyID := seedAgency(t, db, node)

	created, err := svc.Create(context.Background(), domain.CreateInspectionRequest{
		AgencyID:       agencyID.String(),
		InspectionDate: dateString(today.AddDate(0, 0, -1)),
		AreaM2:         decimal.NewFromInt(100),
		PropertyType:   domain.PropertyTypeApartment,
		Furnishing:     domain.FurnishingUnfurnished,
	})
	require.NoError(t, err)

	// Simulate a legacy row saved without a consumption, with the
	// matching counter state.
	require.NoError(t, db.Exec("UPDATE inspections SET consumption = 0 WHERE id = ?", created.ID).Error)
	require.NoError(t, db.Exec("UPDATE agencies SET credits_spent = 0 WHERE id = ?", agencyID).Error)

	bigger := decimal.NewFromInt(200)
	updated, err := svc.Update(context.Background(), domain.UpdateInspectionRequest{
		ID:     created.ID.String(),
		AreaM2: &bigger,
	})
	require.NoError(t, err)

	assert.True(t, updated.Consumption.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, int64(200), spentMinorOf(t, db, agencyID))
}

func TestDeleteExecutedInspectionRefunds(t *testing.T) {
	svc, db, node, _ := setupInspectionService(t)
	agencyID := seedAgency(t, db, node)

	created, err := svc.Create(context.Background(), domain.CreateInspectionRequest{
		AgencyID:       agencyID.String(),
		InspectionDate: dateString(today.AddDate(0, 0, -2)),
		AreaM2:         decimal.NewFromInt(150),
		PropertyType:   domain.PropertyTypeApartment,
		Furnishing:     domain.FurnishingUnfurnished,
	})
	require.NoError(t, err)
	require.Equal(t, int64(150), spentMinorOf(t, db, agencyID))

	require.NoError(t, svc.Delete(context.Background(), domain.DeleteInspectionRequest{ID: created.ID.String()}))

	assert.Equal(t, int64(0), spentMinorOf(t, db, agencyID))

	var count int64
	require.NoError(t, db.Model(&domain.Inspection{}).Where("id = ?", created.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count, "row is hard-deleted")
}

func TestDeleteFutureInspectionDoesNotRefund(t *testing.T) {
	svc, db, node, _ := setupInspectionService(t)
	agencyID := seedAgency(t, db, node)

	// Charge the agency through an executed inspection, then schedule
	// a future one and delete it: the balance must not move.
	_, err := svc.Create(context.Background(), domain.CreateInspectionRequest{
		AgencyID:       agencyID.String(),
		InspectionDate: dateString(today.AddDate(0, 0, -1)),
		AreaM2:         decimal.NewFromInt(100),
		PropertyType:   domain.PropertyTypeApartment,
		Furnishing:     domain.FurnishingUnfurnished,
	})
	require.NoError(t, err)

	future, err := svc.Create(context.Background(), domain.CreateInspectionRequest{
		AgencyID:       agencyID.String(),
		InspectionDate: dateString(today.AddDate(0, 0, 7)),
		AreaM2:         decimal.NewFromInt(100),
		PropertyType:   domain.PropertyTypeApartment,
		Furnishing:     domain.FurnishingUnfurnished,
	})
	require.NoError(t, err)
	require.Equal(t, int64(100), spentMinorOf(t, db, agencyID))

	require.NoError(t, svc.Delete(context.Background(), domain.DeleteInspectionRequest{ID: future.ID.String()}))

	assert.Equal(t, int64(100), spentMinorOf(t, db, agencyID))
}

func TestDeleteChargedThenPostponedInspectionKeepsDebit(t *testing.T) {
	svc, db, node, _ := setupInspectionService(t)
	agencyID := seedAgency(t, db, node)

	created, err := svc.Create(context.Background(), domain.CreateInspectionRequest{
		AgencyID:       agencyID.String(),
		InspectionDate: dateString(today.AddDate(0, 0, -1)),
		AreaM2:         decimal.NewFromInt(100),
		PropertyType:   domain.PropertyTypeApartment,
		Furnishing:     domain.FurnishingUnfurnished,
	})
	require.NoError(t, err)
	require.Equal(t, int64(100), spentMinorOf(t, db, agencyID))

	newDate := dateString(today.AddDate(0, 0, 10))
	_, err = svc.Update(context.Background(), domain.UpdateInspectionRequest{
		ID:             created.ID.String(),
		InspectionDate: &newDate,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), domain.DeleteInspectionRequest{ID: created.ID.String()}))

	// Future-dated at deletion time means no refund, even though the
	// inspection was debited while it sat in the past.
	assert.Equal(t, int64(100), spentMinorOf(t, db, agencyID))
}

func TestRefundClampsAtZero(t *testing.T) {
	svc, db, node, _ := setupInspectionService(t)
	agencyID := seedAgency(t, db, node)

	created, err := svc.Create(context.Background(), domain.CreateInspectionRequest{
		AgencyID:       agencyID.String(),
		InspectionDate: dateString(today.AddDate(0, 0, -1)),
		AreaM2:         decimal.NewFromInt(100),
		PropertyType:   domain.PropertyTypeApartment,
		Furnishing:     domain.FurnishingUnfurnished,
	})
	require.NoError(t, err)

	// Drain the counter behind the inspection's back.
	require.NoError(t, db.Exec("UPDATE agencies SET credits_spent = 30 WHERE id = ?", agencyID).Error)

	require.NoError(t, svc.Delete(context.Background(), domain.DeleteInspectionRequest{ID: created.ID.String()}))

	assert.Equal(t, int64(0), spentMinorOf(t, db, agencyID))
}

func TestListPaginatesWithCursor(t *testing.T) {
	svc, db, node, _ := setupInspectionService(t)
	agencyID := seedAgency(t, db, node)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), domain.CreateInspectionRequest{
			AgencyID:       agencyID.String(),
			InspectionDate: dateString(today.AddDate(0, 0, i+1)),
			AreaM2:         decimal.NewFromInt(100),
			PropertyType:   domain.PropertyTypeApartment,
			Furnishing:     domain.FurnishingUnfurnished,
		})
		require.NoError(t, err)
	}

	first, err := svc.List(context.Background(), domain.ListInspectionRequest{
		AgencyID: agencyID.String(),
		PageSize: 2,
	})
	require.NoError(t, err)
	require.Len(t, first.Inspections, 2)
	assert.True(t, first.HasMore)
	require.NotEmpty(t, first.NextPageToken)

	second, err := svc.List(context.Background(), domain.ListInspectionRequest{
		AgencyID:  agencyID.String(),
		PageToken: first.NextPageToken,
		PageSize:  2,
	})
	require.NoError(t, err)
	require.Len(t, second.Inspections, 1)
	assert.False(t, second.HasMore)

	// Newest first, no overlap between pages.
	assert.Equal(t, "VST-2026-0003", first.Inspections[0].Code)
	assert.Equal(t, "VST-2026-0001", second.Inspections[0].Code)
}

func TestInspectorRateOverride(t *testing.T) {
	svc, db, node, _ := setupInspectionService(t)
	agencyID := seedAgency(t, db, node)
	inspectorID := seedInspector(t, db, node)

	created, err := svc.Create(context.Background(), domain.CreateInspectionRequest{
		AgencyID:       agencyID.String(),
		InspectorID:    inspectorID.String(),
		InspectionDate: dateString(today),
		AreaM2:         decimal.NewFromInt(100),
		PropertyType:   domain.PropertyTypeApartment,
		Furnishing:     domain.FurnishingUnfurnished,
		InspectorRate:  decimal.NewFromInt(75),
	})
	require.NoError(t, err)

	assert.True(t, created.InspectorRate.Equal(decimal.NewFromInt(75)))
}
