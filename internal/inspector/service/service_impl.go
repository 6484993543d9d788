package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/vistoriahub/vistoria/internal/clock"
	"github.com/vistoriahub/vistoria/internal/inspector/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("inspector.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateInspectorRequest) (domain.Inspector, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Inspector{}, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	inspector := domain.Inspector{
		ID:        s.genID.Generate(),
		Name:      name,
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &inspector); err != nil {
		return domain.Inspector{}, err
	}

	return inspector, nil
}

func (s *Service) List(ctx context.Context, req domain.ListInspectorRequest) ([]domain.Inspector, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, req.OnlyActive, int(pageSize))
	if err != nil {
		return nil, err
	}

	inspectors := make([]domain.Inspector, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		inspectors = append(inspectors, *item)
	}
	return inspectors, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetInspectorRequest) (domain.Inspector, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Inspector{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Inspector{}, err
	}
	if item == nil {
		return domain.Inspector{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateInspectorRequest) (domain.Inspector, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Inspector{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Inspector{}, err
	}
	if item == nil {
		return domain.Inspector{}, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Inspector{}, domain.ErrInvalidName
		}
		item.Name = name
	}
	if req.Email != nil {
		item.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		item.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Active != nil {
		item.Active = *req.Active
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return domain.Inspector{}, err
	}

	return *item, nil
}

// Payroll sums the rates frozen on the inspector's executed
// inspections for the requested month. Future-dated inspections inside
// the month are excluded until their date arrives.
func (s *Service) Payroll(ctx context.Context, req domain.PayrollRequest) (domain.PayrollSummary, error) {
	id, err := s.parseID(req.InspectorID)
	if err != nil {
		return domain.PayrollSummary{}, err
	}
	if req.Year < 2000 || req.Month < 1 || req.Month > 12 {
		return domain.PayrollSummary{}, domain.ErrInvalidPeriod
	}

	inspector, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.PayrollSummary{}, err
	}
	if inspector == nil {
		return domain.PayrollSummary{}, domain.ErrNotFound
	}

	from := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	entries, err := s.repo.ListPayrollEntries(ctx, s.db, id, from, to)
	if err != nil {
		return domain.PayrollSummary{}, err
	}

	today := s.clock.Now()
	total := decimal.Zero
	executed := make([]domain.PayrollEntry, 0, len(entries))
	for _, entry := range entries {
		if !clock.SameCalendarDayOrBefore(entry.InspectionDate, today) {
			continue
		}
		executed = append(executed, entry)
		total = total.Add(entry.Rate)
	}

	return domain.PayrollSummary{
		InspectorID: id,
		Year:        req.Year,
		Month:       req.Month,
		Entries:     executed,
		Total:       total,
	}, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
