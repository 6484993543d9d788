package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/vistoriahub/vistoria/internal/creditsale/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertSale(ctx context.Context, db *gorm.DB, sale *domain.CreditSale) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO credit_sales (id, agency_id, sale_date, quantity, unit_price, total_price, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sale.ID,
		sale.AgencyID,
		sale.SaleDate,
		sale.Quantity,
		sale.UnitPrice,
		sale.TotalPrice,
		sale.CreatedAt,
		sale.UpdatedAt,
	).Error
}

func (r *repo) InsertPayment(ctx context.Context, db *gorm.DB, payment *domain.CreditSalePayment) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO credit_sale_payments (id, sale_id, payment_date, amount, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		payment.ID,
		payment.SaleID,
		payment.PaymentDate,
		payment.Amount,
		payment.CreatedAt,
	).Error
}

func (r *repo) FindSaleByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.CreditSale, error) {
	var sale domain.CreditSale
	err := db.WithContext(ctx).Raw(
		`SELECT id, agency_id, sale_date, quantity, unit_price, total_price, created_at, updated_at
		 FROM credit_sales WHERE id = ?`,
		id,
	).Scan(&sale).Error
	if err != nil {
		return nil, err
	}
	if sale.ID == 0 {
		return nil, nil
	}
	return &sale, nil
}

func (r *repo) ListByAgency(ctx context.Context, db *gorm.DB, agencyID snowflake.ID) ([]*domain.CreditSale, error) {
	var sales []*domain.CreditSale
	err := db.WithContext(ctx).
		Model(&domain.CreditSale{}).
		Where("agency_id = ?", agencyID).
		Order("sale_date desc, id desc").
		Find(&sales).Error
	if err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *repo) ListPaymentsBySale(ctx context.Context, db *gorm.DB, saleID snowflake.ID) ([]domain.CreditSalePayment, error) {
	var payments []domain.CreditSalePayment
	err := db.WithContext(ctx).
		Model(&domain.CreditSalePayment{}).
		Where("sale_id = ?", saleID).
		Order("payment_date asc, id asc").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *repo) UpdateSale(ctx context.Context, db *gorm.DB, sale *domain.CreditSale) error {
	return db.WithContext(ctx).Exec(
		`UPDATE credit_sales SET sale_date = ?, quantity = ?, unit_price = ?, total_price = ?, updated_at = ?
		 WHERE id = ?`,
		sale.SaleDate,
		sale.Quantity,
		sale.UnitPrice,
		sale.TotalPrice,
		sale.UpdatedAt,
		sale.ID,
	).Error
}

func (r *repo) DeletePaymentsBySale(ctx context.Context, db *gorm.DB, saleID snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM credit_sale_payments WHERE sale_id = ?`,
		saleID,
	).Error
}

func (r *repo) DeleteSale(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM credit_sales WHERE id = ?`,
		id,
	).Error
}
