package domain

import (
	"context"
	"errors"
)

type CreateInspectorRequest struct {
	Name  string
	Email string
	Phone string
}

type UpdateInspectorRequest struct {
	ID     string
	Name   *string
	Email  *string
	Phone  *string
	Active *bool
}

type ListInspectorRequest struct {
	OnlyActive bool
	PageSize   int32
}

type GetInspectorRequest struct {
	ID string
}

type PayrollRequest struct {
	InspectorID string
	Year        int
	Month       int
}

type Service interface {
	Create(context.Context, CreateInspectorRequest) (Inspector, error)
	List(context.Context, ListInspectorRequest) ([]Inspector, error)
	GetByID(context.Context, GetInspectorRequest) (Inspector, error)
	Update(context.Context, UpdateInspectorRequest) (Inspector, error)
	Payroll(context.Context, PayrollRequest) (PayrollSummary, error)
}

var (
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidID     = errors.New("invalid_id")
	ErrInvalidPeriod = errors.New("invalid_period")
	ErrNotFound      = errors.New("not_found")
)
