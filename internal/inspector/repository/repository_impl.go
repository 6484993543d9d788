package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/vistoriahub/vistoria/internal/inspector/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, inspector *domain.Inspector) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO inspectors (id, name, email, phone, active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		inspector.ID,
		inspector.Name,
		inspector.Email,
		inspector.Phone,
		inspector.Active,
		inspector.CreatedAt,
		inspector.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Inspector, error) {
	var inspector domain.Inspector
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, email, phone, active, created_at, updated_at
		 FROM inspectors WHERE id = ?`,
		id,
	).Scan(&inspector).Error
	if err != nil {
		return nil, err
	}
	if inspector.ID == 0 {
		return nil, nil
	}
	return &inspector, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, onlyActive bool, limit int) ([]*domain.Inspector, error) {
	var inspectors []*domain.Inspector
	stmt := db.WithContext(ctx).Model(&domain.Inspector{})
	if onlyActive {
		stmt = stmt.Where("active = ?", true)
	}
	if limit > 0 {
		stmt = stmt.Limit(limit)
	}
	err := stmt.
		Order("name asc, id asc").
		Find(&inspectors).Error
	if err != nil {
		return nil, err
	}
	return inspectors, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, inspector *domain.Inspector) error {
	return db.WithContext(ctx).Exec(
		`UPDATE inspectors SET name = ?, email = ?, phone = ?, active = ?, updated_at = ?
		 WHERE id = ?`,
		inspector.Name,
		inspector.Email,
		inspector.Phone,
		inspector.Active,
		inspector.UpdatedAt,
		inspector.ID,
	).Error
}

func (r *repo) ListPayrollEntries(ctx context.Context, db *gorm.DB, inspectorID snowflake.ID, from, to time.Time) ([]domain.PayrollEntry, error) {
	var entries []domain.PayrollEntry
	err := db.WithContext(ctx).Raw(
		`SELECT id AS inspection_id, code, inspection_date, agency_id, inspector_rate AS rate
		 FROM inspections
		 WHERE inspector_id = ? AND active = ? AND inspection_date >= ? AND inspection_date < ?
		 ORDER BY inspection_date asc, id asc`,
		inspectorID,
		true,
		from,
		to,
	).Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
