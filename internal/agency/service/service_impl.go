package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/vistoriahub/vistoria/internal/agency/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("agency.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateAgencyRequest) (domain.Agency, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Agency{}, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	agency := domain.Agency{
		ID:        s.genID.Generate(),
		Name:      name,
		Email:     strings.TrimSpace(req.Email),
		Document:  strings.TrimSpace(req.Document),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &agency); err != nil {
		return domain.Agency{}, err
	}

	return agency, nil
}

func (s *Service) List(ctx context.Context, req domain.ListAgencyRequest) ([]domain.Agency, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, domain.ListAgencyFilter{
		Name:       strings.TrimSpace(req.Name),
		OnlyActive: req.OnlyActive,
	}, int(pageSize))
	if err != nil {
		return nil, err
	}

	agencies := make([]domain.Agency, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		agencies = append(agencies, *item)
	}
	return agencies, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetAgencyRequest) (domain.Agency, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Agency{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Agency{}, err
	}
	if item == nil {
		return domain.Agency{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateAgencyRequest) (domain.Agency, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Agency{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Agency{}, err
	}
	if item == nil {
		return domain.Agency{}, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Agency{}, domain.ErrInvalidName
		}
		item.Name = name
	}
	if req.Email != nil {
		item.Email = strings.TrimSpace(*req.Email)
	}
	if req.Document != nil {
		item.Document = strings.TrimSpace(*req.Document)
	}
	if req.Active != nil {
		item.Active = *req.Active
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return domain.Agency{}, err
	}

	return *item, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
