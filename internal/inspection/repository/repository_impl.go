package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/vistoriahub/vistoria/internal/inspection/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, inspection *domain.Inspection) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO inspections (
			id, code, code_year, code_seq, agency_id, inspector_id, inspection_date,
			area_m2, property_type, furnishing, express, relocation,
			consumption, monetary_value, inspector_rate, active, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inspection.ID,
		inspection.Code,
		inspection.CodeYear,
		inspection.CodeSeq,
		inspection.AgencyID,
		inspection.InspectorID,
		inspection.InspectionDate,
		inspection.AreaM2,
		inspection.PropertyType,
		inspection.Furnishing,
		inspection.Express,
		inspection.Relocation,
		inspection.Consumption,
		inspection.MonetaryValue,
		inspection.InspectorRate,
		inspection.Active,
		inspection.CreatedAt,
		inspection.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Inspection, error) {
	var inspection domain.Inspection
	err := db.WithContext(ctx).Raw(
		`SELECT id, code, code_year, code_seq, agency_id, inspector_id, inspection_date,
			area_m2, property_type, furnishing, express, relocation,
			consumption, monetary_value, inspector_rate, active, created_at, updated_at
		 FROM inspections WHERE id = ?`,
		id,
	).Scan(&inspection).Error
	if err != nil {
		return nil, err
	}
	if inspection.ID == 0 {
		return nil, nil
	}
	return &inspection, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListInspectionFilter, limit int) ([]*domain.Inspection, error) {
	var inspections []*domain.Inspection
	stmt := db.WithContext(ctx).Model(&domain.Inspection{})
	if filter.AgencyID != 0 {
		stmt = stmt.Where("agency_id = ?", filter.AgencyID)
	}
	if filter.InspectorID != 0 {
		stmt = stmt.Where("inspector_id = ?", filter.InspectorID)
	}
	if filter.DateFrom != nil {
		stmt = stmt.Where("inspection_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		stmt = stmt.Where("inspection_date <= ?", *filter.DateTo)
	}
	if filter.OnlyActive {
		stmt = stmt.Where("active = ?", true)
	}
	if filter.CursorID != 0 {
		stmt = stmt.Where("id < ?", filter.CursorID)
	}
	if limit > 0 {
		stmt = stmt.Limit(limit)
	}
	err := stmt.
		Order("id desc").
		Find(&inspections).Error
	if err != nil {
		return nil, err
	}
	return inspections, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, inspection *domain.Inspection) error {
	return db.WithContext(ctx).Exec(
		`UPDATE inspections SET
			agency_id = ?, inspector_id = ?, inspection_date = ?,
			area_m2 = ?, property_type = ?, furnishing = ?, express = ?, relocation = ?,
			consumption = ?, active = ?, updated_at = ?
		 WHERE id = ?`,
		inspection.AgencyID,
		inspection.InspectorID,
		inspection.InspectionDate,
		inspection.AreaM2,
		inspection.PropertyType,
		inspection.Furnishing,
		inspection.Express,
		inspection.Relocation,
		inspection.Consumption,
		inspection.Active,
		inspection.UpdatedAt,
		inspection.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM inspections WHERE id = ?`,
		id,
	).Error
}

func (r *repo) NextCodeSeq(ctx context.Context, db *gorm.DB, year int) (int, error) {
	var row struct {
		MaxSeq int
	}
	err := db.WithContext(ctx).Raw(
		`SELECT COALESCE(MAX(code_seq), 0) AS max_seq FROM inspections WHERE code_year = ?`,
		year,
	).Scan(&row).Error
	if err != nil {
		return 0, err
	}
	return row.MaxSeq + 1, nil
}
