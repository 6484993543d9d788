package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertSale(ctx context.Context, db *gorm.DB, sale *CreditSale) error
	InsertPayment(ctx context.Context, db *gorm.DB, payment *CreditSalePayment) error
	FindSaleByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*CreditSale, error)
	ListByAgency(ctx context.Context, db *gorm.DB, agencyID snowflake.ID) ([]*CreditSale, error)
	ListPaymentsBySale(ctx context.Context, db *gorm.DB, saleID snowflake.ID) ([]CreditSalePayment, error)
	UpdateSale(ctx context.Context, db *gorm.DB, sale *CreditSale) error
	DeletePaymentsBySale(ctx context.Context, db *gorm.DB, saleID snowflake.ID) error
	DeleteSale(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
