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
	"github.com/vistoriahub/vistoria/internal/clock"
	inspectiondomain "github.com/vistoriahub/vistoria/internal/inspection/domain"
	"github.com/vistoriahub/vistoria/internal/inspector/domain"
	inspectorrepository "github.com/vistoriahub/vistoria/internal/inspector/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var today = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func setupInspectorService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&agencydomain.Agency{},
		&domain.Inspector{},
		&inspectiondomain.Inspection{},
	))

	node, err := snowflake.NewNode(4)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(today),
		Repo:  inspectorrepository.Provide(),
	})

	return svc, db, node
}

var inspectionSeq int

func seedInspection(t *testing.T, db *gorm.DB, node *snowflake.Node, inspectorID snowflake.ID, date time.Time, rate decimal.Decimal, active bool) {
	t.Helper()
	inspectionSeq++
	inspection := inspectiondomain.Inspection{
		ID:             node.Generate(),
		Code:           fmt.Sprintf("VST-%d-%04d", date.Year(), inspectionSeq),
		CodeYear:       date.Year(),
		CodeSeq:        inspectionSeq,
		AgencyID:       node.Generate(),
		InspectorID:    inspectorID,
		InspectionDate: date,
		AreaM2:         decimal.NewFromInt(100),
		PropertyType:   inspectiondomain.PropertyTypeApartment,
		Furnishing:     inspectiondomain.FurnishingUnfurnished,
		Consumption:    decimal.NewFromInt(1),
		MonetaryValue:  decimal.NewFromInt(10),
		InspectorRate:  rate,
		Active:         active,
	}
	require.NoError(t, db.Select("*").Create(&inspection).Error)
	if !active {
		// GORM substitutes the tag default (default:true) for a
		// zero-valued bool at insert time even with Select("*"), so
		// force the cancelled flag with a direct column update.
		require.NoError(t, db.Model(&inspection).UpdateColumn("active", false).Error)
	}
}

func TestPayrollSumsFrozenRates(t *testing.T) {
	svc, db, node := setupInspectorService(t)

	inspector, err := svc.Create(context.Background(), domain.CreateInspectorRequest{Name: "Maria Santos"})
	require.NoError(t, err)

	seedInspection(t, db, node, inspector.ID, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(50), true)
	seedInspection(t, db, node, inspector.ID, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), decimal.RequireFromString("62.50"), true)
	// Outside the month.
	seedInspection(t, db, node, inspector.ID, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(50), true)
	seedInspection(t, db, node, inspector.ID, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(50), true)
	// Cancelled.
	seedInspection(t, db, node, inspector.ID, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(50), false)
	// Scheduled later in the month, not yet executed.
	seedInspection(t, db, node, inspector.ID, time.Date(2026, 3, 25, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(50), true)

	summary, err := svc.Payroll(context.Background(), domain.PayrollRequest{
		InspectorID: inspector.ID.String(),
		Year:        2026,
		Month:       3,
	})
	require.NoError(t, err)

	require.Len(t, summary.Entries, 2)
	assert.True(t, summary.Total.Equal(decimal.RequireFromString("112.50")))
}

func TestPayrollValidation(t *testing.T) {
	svc, _, node := setupInspectorService(t)

	_, err := svc.Payroll(context.Background(), domain.PayrollRequest{
		InspectorID: node.Generate().String(),
		Year:        2026,
		Month:       13,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)

	_, err = svc.Payroll(context.Background(), domain.PayrollRequest{
		InspectorID: node.Generate().String(),
		Year:        2026,
		Month:       3,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInspectorSoftDelete(t *testing.T) {
	svc, _, _ := setupInspectorService(t)

	inspector, err := svc.Create(context.Background(), domain.CreateInspectorRequest{Name: "Carlos Lima"})
	require.NoError(t, err)

	inactive := false
	updated, err := svc.Update(context.Background(), domain.UpdateInspectorRequest{
		ID:     inspector.ID.String(),
		Active: &inactive,
	})
	require.NoError(t, err)
	assert.False(t, updated.Active)

	actives, err := svc.List(context.Background(), domain.ListInspectorRequest{OnlyActive: true})
	require.NoError(t, err)
	assert.Empty(t, actives)

	all, err := svc.List(context.Background(), domain.ListInspectorRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
