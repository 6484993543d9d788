package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/vistoriahub/vistoria/internal/ledger/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) SpentMinor(ctx context.Context, db *gorm.DB, agencyID snowflake.ID) (int64, bool, error) {
	var row struct {
		ID           snowflake.ID
		CreditsSpent int64
	}
	err := db.WithContext(ctx).Raw(
		`SELECT id, credits_spent FROM agencies WHERE id = ?`,
		agencyID,
	).Scan(&row).Error
	if err != nil {
		return 0, false, err
	}
	if row.ID == 0 {
		return 0, false, nil
	}
	return row.CreditsSpent, true, nil
}

func (r *repo) SetSpentMinorIfChanged(ctx context.Context, db *gorm.DB, agencyID snowflake.ID, minor int64) (bool, error) {
	result := db.WithContext(ctx).Exec(
		`UPDATE agencies SET credits_spent = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND credits_spent <> ?`,
		minor,
		agencyID,
		minor,
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repo) AddSpentMinor(ctx context.Context, db *gorm.DB, agencyID snowflake.ID, delta int64) error {
	result := db.WithContext(ctx).Exec(
		`UPDATE agencies SET credits_spent = credits_spent + ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		delta,
		agencyID,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrAgencyNotFound
	}
	return nil
}

func (r *repo) SubtractSpentMinorClamped(ctx context.Context, db *gorm.DB, agencyID snowflake.ID, delta int64) error {
	result := db.WithContext(ctx).Exec(
		`UPDATE agencies
		 SET credits_spent = CASE WHEN credits_spent > ? THEN credits_spent - ? ELSE 0 END,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		delta,
		delta,
		agencyID,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrAgencyNotFound
	}
	return nil
}

func (r *repo) ListActiveConsumptions(ctx context.Context, db *gorm.DB, agencyID snowflake.ID) ([]domain.ExecutedConsumption, error) {
	var rows []domain.ExecutedConsumption
	err := db.WithContext(ctx).Raw(
		`SELECT inspection_date, COALESCE(consumption, 0) AS consumption
		 FROM inspections
		 WHERE agency_id = ? AND active = ?`,
		agencyID,
		true,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) ListSaleAmounts(ctx context.Context, db *gorm.DB, agencyID snowflake.ID) ([]domain.SaleAmount, error) {
	var rows []domain.SaleAmount
	err := db.WithContext(ctx).Raw(
		`SELECT quantity, total_price FROM credit_sales WHERE agency_id = ?`,
		agencyID,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
