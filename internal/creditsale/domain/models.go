package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// CreditSale is one purchase of inspection credits by an agency. A
// sale and its installment payments form one logical record: they are
// created, replaced and deleted together.
type CreditSale struct {
	ID       snowflake.ID `gorm:"primaryKey" json:"id"`
	AgencyID snowflake.ID `gorm:"not null;index" json:"agency_id"`
	SaleDate time.Time    `gorm:"type:date;not null" json:"sale_date"`

	// Quantity is stored in whole-credit decimals for new rows.
	// Historical rows may hold hundredths; readers normalize with the
	// magnitude heuristic in the ledger package.
	Quantity   decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"unit_price"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"total_price"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Payments []CreditSalePayment `gorm:"-" json:"payments,omitempty"`
}

// TableName sets the database table name.
func (CreditSale) TableName() string { return "credit_sales" }

// CreditSalePayment is one installment of a credit sale.
type CreditSalePayment struct {
	ID          snowflake.ID    `gorm:"primaryKey" json:"id"`
	SaleID      snowflake.ID    `gorm:"not null;index" json:"sale_id"`
	PaymentDate time.Time       `gorm:"type:date;not null" json:"payment_date"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	CreatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (CreditSalePayment) TableName() string { return "credit_sale_payments" }
