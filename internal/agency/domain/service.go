package domain

import (
	"context"
	"errors"
)

type CreateAgencyRequest struct {
	Name     string
	Email    string
	Document string
}

type UpdateAgencyRequest struct {
	ID       string
	Name     *string
	Email    *string
	Document *string
	Active   *bool
}

type ListAgencyRequest struct {
	Name       string
	OnlyActive bool
	PageSize   int32
}

type ListAgencyFilter struct {
	Name       string
	OnlyActive bool
}

type GetAgencyRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateAgencyRequest) (Agency, error)
	List(context.Context, ListAgencyRequest) ([]Agency, error)
	GetByID(context.Context, GetAgencyRequest) (Agency, error)
	Update(context.Context, UpdateAgencyRequest) (Agency, error)
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrInvalidID   = errors.New("invalid_id")
	ErrNotFound    = errors.New("not_found")
)
