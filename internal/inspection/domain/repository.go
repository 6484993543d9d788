package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListInspectionFilter struct {
	AgencyID    snowflake.ID
	InspectorID snowflake.ID
	DateFrom    *time.Time
	DateTo      *time.Time
	OnlyActive  bool

	// CursorID restricts the page to rows older than the cursor.
	// Listing is ordered by id desc, so ids double as cursors.
	CursorID snowflake.ID
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, inspection *Inspection) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Inspection, error)
	List(ctx context.Context, db *gorm.DB, filter ListInspectionFilter, limit int) ([]*Inspection, error)
	Update(ctx context.Context, db *gorm.DB, inspection *Inspection) error
	// Delete hard-deletes the row. Inspections are never soft-deleted.
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error

	// NextCodeSeq returns max(code_seq)+1 for the year. Callers invoke
	// it inside the insert transaction; the unique index on
	// (code_year, code_seq) rejects the loser of a race.
	NextCodeSeq(ctx context.Context, db *gorm.DB, year int) (int, error)
}
