package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

type PaymentInput struct {
	PaymentDate string
	Amount      decimal.Decimal
}

type CreateSaleRequest struct {
	AgencyID  string
	SaleDate  string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Payments  []PaymentInput
}

type UpdateSaleRequest struct {
	ID        string
	SaleDate  string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	// Payments replace the existing installments wholesale.
	Payments []PaymentInput
}

type ListSalesRequest struct {
	AgencyID string
}

type DeleteSaleRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateSaleRequest) (CreditSale, error)
	Update(context.Context, UpdateSaleRequest) (CreditSale, error)
	ListByAgency(context.Context, ListSalesRequest) ([]CreditSale, error)
	Delete(context.Context, DeleteSaleRequest) error
}

var (
	ErrInvalidAgency    = errors.New("invalid_agency")
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidDate      = errors.New("invalid_date")
	ErrInvalidQuantity  = errors.New("invalid_quantity")
	ErrInvalidUnitPrice = errors.New("invalid_unit_price")
	ErrInvalidPayment   = errors.New("invalid_payment")
	ErrNotFound         = errors.New("not_found")
)
