package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type PropertyType string

const (
	PropertyTypeApartment  PropertyType = "apartment"
	PropertyTypeHouse      PropertyType = "house"
	PropertyTypeCommercial PropertyType = "commercial"
)

type Furnishing string

const (
	FurnishingUnfurnished   Furnishing = "unfurnished"
	FurnishingSemiFurnished Furnishing = "semi_furnished"
	FurnishingFurnished     Furnishing = "furnished"
)

// Inspection is one property inspection job. Consumption, monetary
// value and the inspector rate are frozen when the row is written and
// never recomputed by reconciliation.
type Inspection struct {
	ID       snowflake.ID `gorm:"primaryKey" json:"id"`
	Code     string       `gorm:"not null;uniqueIndex:ux_inspections_code" json:"code"`
	CodeYear int          `gorm:"not null;uniqueIndex:ux_inspections_code_year_seq,priority:1" json:"-"`
	CodeSeq  int          `gorm:"not null;uniqueIndex:ux_inspections_code_year_seq,priority:2" json:"-"`

	AgencyID    snowflake.ID `gorm:"not null;index" json:"agency_id"`
	InspectorID snowflake.ID `gorm:"index" json:"inspector_id,omitempty"`

	InspectionDate time.Time `gorm:"type:date;not null;index" json:"inspection_date"`

	AreaM2       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"area_m2"`
	PropertyType PropertyType    `gorm:"type:text;not null" json:"property_type"`
	Furnishing   Furnishing      `gorm:"type:text;not null" json:"furnishing"`
	Express      bool            `gorm:"not null;default:false" json:"express"`
	Relocation   bool            `gorm:"not null;default:false" json:"relocation"`

	Consumption   decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"consumption"`
	MonetaryValue decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"monetary_value"`
	InspectorRate decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"inspector_rate"`

	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Inspection) TableName() string { return "inspections" }

func ValidPropertyType(value PropertyType) bool {
	switch value {
	case PropertyTypeApartment, PropertyTypeHouse, PropertyTypeCommercial:
		return true
	default:
		return false
	}
}

func ValidFurnishing(value Furnishing) bool {
	switch value {
	case FurnishingUnfurnished, FurnishingSemiFurnished, FurnishingFurnished:
		return true
	default:
		return false
	}
}
