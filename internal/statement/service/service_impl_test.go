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
	creditsaledomain "github.com/vistoriahub/vistoria/internal/creditsale/domain"
	inspectiondomain "github.com/vistoriahub/vistoria/internal/inspection/domain"
	"github.com/vistoriahub/vistoria/internal/statement/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var today = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func setupStatementService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&agencydomain.Agency{},
		&creditsaledomain.CreditSale{},
		&inspectiondomain.Inspection{},
	))

	node, err := snowflake.NewNode(5)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		Clock: clock.NewFakeClock(today),
	})

	return svc, db, node
}

var statementSeq int

func seedInspection(t *testing.T, db *gorm.DB, node *snowflake.Node, date time.Time, consumption, monetary, rate decimal.Decimal, inspectorID snowflake.ID, active bool) {
	t.Helper()
	statementSeq++
	inspection := inspectiondomain.Inspection{
		ID:             node.Generate(),
		Code:           fmt.Sprintf("VST-%d-%04d", date.Year(), statementSeq),
		CodeYear:       date.Year(),
		CodeSeq:        statementSeq,
		AgencyID:       node.Generate(),
		InspectorID:    inspectorID,
		InspectionDate: date,
		AreaM2:         decimal.NewFromInt(100),
		PropertyType:   inspectiondomain.PropertyTypeApartment,
		Furnishing:     inspectiondomain.FurnishingUnfurnished,
		Consumption:    consumption,
		MonetaryValue:  monetary,
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

func seedSale(t *testing.T, db *gorm.DB, node *snowflake.Node, date time.Time, quantity, totalPrice decimal.Decimal) {
	t.Helper()
	sale := creditsaledomain.CreditSale{
		ID:         node.Generate(),
		AgencyID:   node.Generate(),
		SaleDate:   date,
		Quantity:   quantity,
		UnitPrice:  decimal.NewFromInt(10),
		TotalPrice: totalPrice,
	}
	require.NoError(t, db.Create(&sale).Error)
}

func TestMonthlyStatementAggregates(t *testing.T) {
	svc, db, node := setupStatementService(t)
	inspectorID := node.Generate()

	seedInspection(t, db, node, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(2), decimal.NewFromInt(20), decimal.NewFromInt(50), inspectorID, true)
	seedInspection(t, db, node, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), decimal.RequireFromString("1.50"), decimal.NewFromInt(15), decimal.NewFromInt(60), inspectorID, true)
	// No inspector assigned: consumption counts, payout does not.
	seedInspection(t, db, node, time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(1), decimal.NewFromInt(10), decimal.NewFromInt(50), 0, true)
	// Later in the running month: not yet executed.
	seedInspection(t, db, node, time.Date(2026, 3, 28, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(4), decimal.NewFromInt(40), decimal.NewFromInt(50), inspectorID, true)
	// Cancelled and out-of-month rows.
	seedInspection(t, db, node, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(9), decimal.NewFromInt(90), decimal.NewFromInt(50), inspectorID, false)
	seedInspection(t, db, node, time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(3), decimal.NewFromInt(30), decimal.NewFromInt(50), inspectorID, true)

	seedSale(t, db, node, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(100), decimal.NewFromInt(1000))
	// Legacy quantity stored in hundredths.
	seedSale(t, db, node, time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(5000), decimal.NewFromInt(500))
	seedSale(t, db, node, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(10), decimal.NewFromInt(100))

	statement, err := svc.Monthly(context.Background(), domain.MonthlyRequest{Year: 2026, Month: 3})
	require.NoError(t, err)

	assert.Equal(t, int64(3), statement.ExecutedInspections)
	assert.True(t, statement.CreditsConsumed.Equal(decimal.RequireFromString("4.50")))
	assert.True(t, statement.InspectionRevenue.Equal(decimal.NewFromInt(45)))
	assert.True(t, statement.InspectorPayout.Equal(decimal.NewFromInt(110)))
	assert.True(t, statement.CreditsSold.Equal(decimal.NewFromInt(150)))
	assert.True(t, statement.SaleRevenue.Equal(decimal.NewFromInt(1500)))
	assert.True(t, statement.Net.Equal(decimal.NewFromInt(1390)))
}

func TestMonthlyStatementPastMonthIgnoresClock(t *testing.T) {
	svc, db, node := setupStatementService(t)

	seedInspection(t, db, node, time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(2), decimal.NewFromInt(20), decimal.NewFromInt(50), node.Generate(), true)

	statement, err := svc.Monthly(context.Background(), domain.MonthlyRequest{Year: 2026, Month: 2})
	require.NoError(t, err)

	assert.Equal(t, int64(1), statement.ExecutedInspections)
	assert.True(t, statement.CreditsConsumed.Equal(decimal.NewFromInt(2)))
}

func TestMonthlyStatementInvalidPeriod(t *testing.T) {
	svc, _, _ := setupStatementService(t)

	_, err := svc.Monthly(context.Background(), domain.MonthlyRequest{Year: 2026, Month: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}
