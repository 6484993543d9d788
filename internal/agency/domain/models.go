package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Agency is a real-estate client account that purchases inspection
// credits and is billed per executed inspection.
type Agency struct {
	ID       snowflake.ID `gorm:"primaryKey" json:"id"`
	Name     string       `gorm:"not null" json:"name"`
	Email    string       `gorm:"not null;default:''" json:"email"`
	Document string       `gorm:"not null;default:''" json:"document"`
	Active   bool         `gorm:"not null;default:true" json:"active"`

	// CreditsSpent is the cached spent-credit counter in minor units
	// (hundredths of a credit). Debits, refunds and reconciliation are
	// the only writers.
	CreditsSpent int64 `gorm:"not null;default:0" json:"credits_spent_minor"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Agency) TableName() string { return "agencies" }

// SpentCredits converts the minor-unit counter to decimal credits.
func (a Agency) SpentCredits() decimal.Decimal {
	return decimal.New(a.CreditsSpent, -2)
}
