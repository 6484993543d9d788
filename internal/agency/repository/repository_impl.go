package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/vistoriahub/vistoria/internal/agency/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, agency *domain.Agency) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO agencies (id, name, email, document, active, credits_spent, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		agency.ID,
		agency.Name,
		agency.Email,
		agency.Document,
		agency.Active,
		agency.CreditsSpent,
		agency.CreatedAt,
		agency.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Agency, error) {
	var agency domain.Agency
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, email, document, active, credits_spent, created_at, updated_at
		 FROM agencies WHERE id = ?`,
		id,
	).Scan(&agency).Error
	if err != nil {
		return nil, err
	}
	if agency.ID == 0 {
		return nil, nil
	}
	return &agency, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListAgencyFilter, limit int) ([]*domain.Agency, error) {
	var agencies []*domain.Agency
	stmt := db.WithContext(ctx).Model(&domain.Agency{})
	if filter.Name != "" {
		stmt = stmt.Where("name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.OnlyActive {
		stmt = stmt.Where("active = ?", true)
	}
	if limit > 0 {
		stmt = stmt.Limit(limit)
	}
	err := stmt.
		Order("name asc, id asc").
		Find(&agencies).Error
	if err != nil {
		return nil, err
	}
	return agencies, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, agency *domain.Agency) error {
	return db.WithContext(ctx).Exec(
		`UPDATE agencies SET name = ?, email = ?, document = ?, active = ?, updated_at = ?
		 WHERE id = ?`,
		agency.Name,
		agency.Email,
		agency.Document,
		agency.Active,
		agency.UpdatedAt,
		agency.ID,
	).Error
}
