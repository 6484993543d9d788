package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository gives the ledger its storage primitives. Every method
// takes the db handle so callers can compose mutations into one
// transaction (inspection create+debit, delete+refund).
type Repository interface {
	// SpentMinor reads the agency's stored spent counter. found is
	// false when the agency row does not exist.
	SpentMinor(ctx context.Context, db *gorm.DB, agencyID snowflake.ID) (minor int64, found bool, err error)

	// SetSpentMinorIfChanged overwrites the counter only when the
	// stored value differs, reporting whether a write happened.
	SetSpentMinorIfChanged(ctx context.Context, db *gorm.DB, agencyID snowflake.ID, minor int64) (bool, error)

	// AddSpentMinor increments the counter by delta in a single atomic
	// update. Returns ErrAgencyNotFound when no row matched.
	AddSpentMinor(ctx context.Context, db *gorm.DB, agencyID snowflake.ID, delta int64) error

	// SubtractSpentMinorClamped decrements the counter by delta,
	// flooring at zero, in a single atomic update.
	SubtractSpentMinorClamped(ctx context.Context, db *gorm.DB, agencyID snowflake.ID, delta int64) error

	// ListActiveConsumptions returns consumption and date for every
	// active inspection of the agency, with no date filter; the
	// service applies the executed predicate.
	ListActiveConsumptions(ctx context.Context, db *gorm.DB, agencyID snowflake.ID) ([]ExecutedConsumption, error)

	// ListSaleAmounts returns quantity and total price for every
	// credit sale of the agency.
	ListSaleAmounts(ctx context.Context, db *gorm.DB, agencyID snowflake.ID) ([]SaleAmount, error)
}
