package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/vistoriahub/vistoria/pkg/db/pagination"
)

type CreateInspectionRequest struct {
	AgencyID       string
	InspectorID    string
	InspectionDate string
	AreaM2         decimal.Decimal
	PropertyType   PropertyType
	Furnishing     Furnishing
	Express        bool
	Relocation     bool
	// InspectorRate overrides the configured base rate when positive.
	InspectorRate decimal.Decimal
}

type UpdateInspectionRequest struct {
	ID             string
	AgencyID       *string
	InspectorID    *string
	InspectionDate *string
	AreaM2         *decimal.Decimal
	PropertyType   *PropertyType
	Furnishing     *Furnishing
	Express        *bool
	Relocation     *bool
}

type ListInspectionRequest struct {
	AgencyID    string
	InspectorID string
	DateFrom    string
	DateTo      string
	OnlyActive  bool
	PageToken   string
	PageSize    int32
}

type ListInspectionResponse struct {
	pagination.PageInfo
	Inspections []Inspection `json:"inspections"`
}

type GetInspectionRequest struct {
	ID string
}

type DeleteInspectionRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateInspectionRequest) (Inspection, error)
	Update(context.Context, UpdateInspectionRequest) (Inspection, error)
	List(context.Context, ListInspectionRequest) (ListInspectionResponse, error)
	GetByID(context.Context, GetInspectionRequest) (Inspection, error)
	Delete(context.Context, DeleteInspectionRequest) error
}

var (
	ErrInvalidAgency       = errors.New("invalid_agency")
	ErrInvalidInspector    = errors.New("invalid_inspector")
	ErrInvalidID           = errors.New("invalid_id")
	ErrInvalidDate         = errors.New("invalid_date")
	ErrInvalidArea         = errors.New("invalid_area")
	ErrInvalidPropertyType = errors.New("invalid_property_type")
	ErrInvalidFurnishing   = errors.New("invalid_furnishing")
	ErrNotFound            = errors.New("not_found")
)
