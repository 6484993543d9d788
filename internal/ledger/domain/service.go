package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type Service interface {
	// Reconcile recomputes the true spent total from executed active
	// inspections and overwrites the cached counter if it drifted.
	// Idempotent: a second run with no intervening changes writes
	// nothing.
	Reconcile(ctx context.Context, agencyID snowflake.ID) (SyncResult, error)

	// Summary reconciles first, then returns the agency's credit
	// position.
	Summary(ctx context.Context, agencyID snowflake.ID) (CreditSummary, error)

	// Debit unconditionally increases the spent counter; the balance
	// may go negative by policy.
	Debit(ctx context.Context, agencyID snowflake.ID, quantity decimal.Decimal) error

	// Refund decreases the spent counter, floored at zero. Used only
	// to reverse a prior debit when an executed inspection is deleted.
	Refund(ctx context.Context, agencyID snowflake.ID, quantity decimal.Decimal) error
}
