package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Inspector is a field inspector account. Inspectors are soft-deleted
// via the active flag so payroll history stays intact.
type Inspector struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"not null" json:"name"`
	Email     string       `gorm:"not null;default:''" json:"email"`
	Phone     string       `gorm:"not null;default:''" json:"phone"`
	Active    bool         `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Inspector) TableName() string { return "inspectors" }

// PayrollEntry is one executed inspection priced at the rate frozen on
// it at creation time.
type PayrollEntry struct {
	InspectionID   snowflake.ID    `json:"inspection_id"`
	Code           string          `json:"code"`
	InspectionDate time.Time       `json:"inspection_date"`
	AgencyID       snowflake.ID    `json:"agency_id"`
	Rate           decimal.Decimal `json:"rate"`
}

// PayrollSummary is an inspector's payout for one calendar month.
type PayrollSummary struct {
	InspectorID snowflake.ID    `json:"inspector_id"`
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	Entries     []PayrollEntry  `json:"entries"`
	Total       decimal.Decimal `json:"total"`
}
