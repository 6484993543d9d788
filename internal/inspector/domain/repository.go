package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, inspector *Inspector) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Inspector, error)
	List(ctx context.Context, db *gorm.DB, onlyActive bool, limit int) ([]*Inspector, error)
	Update(ctx context.Context, db *gorm.DB, inspector *Inspector) error

	// ListPayrollEntries returns the active inspections assigned to
	// the inspector whose date falls inside [from, to).
	ListPayrollEntries(ctx context.Context, db *gorm.DB, inspectorID snowflake.ID, from, to time.Time) ([]PayrollEntry, error)
}
