package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	agencydomain "github.com/vistoriahub/vistoria/internal/agency/domain"
	"github.com/vistoriahub/vistoria/internal/clock"
	"github.com/vistoriahub/vistoria/internal/config"
	"github.com/vistoriahub/vistoria/internal/inspection/domain"
	inspectordomain "github.com/vistoriahub/vistoria/internal/inspector/domain"
	ledgerdomain "github.com/vistoriahub/vistoria/internal/ledger/domain"
	"github.com/vistoriahub/vistoria/pkg/db"
	"github.com/vistoriahub/vistoria/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Params struct {
	fx.In

	DB            *gorm.DB
	Log           *zap.Logger
	GenID         *snowflake.Node
	Clock         clock.Clock
	Cfg           config.Config
	Repo          domain.Repository
	LedgerRepo    ledgerdomain.Repository
	AgencyRepo    agencydomain.Repository
	InspectorRepo inspectordomain.Repository
}

type Service struct {
	db            *gorm.DB
	log           *zap.Logger
	genID         *snowflake.Node
	clock         clock.Clock
	cfg           config.Config
	repo          domain.Repository
	ledgerRepo    ledgerdomain.Repository
	agencyRepo    agencydomain.Repository
	inspectorRepo inspectordomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("inspection.service"),
		genID:         p.GenID,
		clock:         p.Clock,
		cfg:           p.Cfg,
		repo:          p.Repo,
		ledgerRepo:    p.LedgerRepo,
		agencyRepo:    p.AgencyRepo,
		inspectorRepo: p.InspectorRepo,
	}
}

// Create freezes consumption, monetary value and the inspector rate,
// assigns the next VST code, and debits the agency when the inspection
// is already executed (date on or before today) with a positive
// consumption. Debit and insert run in one transaction so a failed
// insert cannot leave an orphan debit behind.
func (s *Service) Create(ctx context.Context, req domain.CreateInspectionRequest) (domain.Inspection, error) {
	agencyID, err := parseID(req.AgencyID)
	if err != nil {
		return domain.Inspection{}, domain.ErrInvalidAgency
	}

	var inspectorID snowflake.ID
	if strings.TrimSpace(req.InspectorID) != "" {
		inspectorID, err = parseID(req.InspectorID)
		if err != nil {
			return domain.Inspection{}, domain.ErrInvalidInspector
		}
	}

	inspectionDate, err := parseDate(req.InspectionDate)
	if err != nil {
		return domain.Inspection{}, domain.ErrInvalidDate
	}
	if !req.AreaM2.IsPositive() {
		return domain.Inspection{}, domain.ErrInvalidArea
	}
	if !domain.ValidPropertyType(req.PropertyType) {
		return domain.Inspection{}, domain.ErrInvalidPropertyType
	}
	if !domain.ValidFurnishing(req.Furnishing) {
		return domain.Inspection{}, domain.ErrInvalidFurnishing
	}

	agency, err := s.agencyRepo.FindByID(ctx, s.db, agencyID)
	if err != nil {
		return domain.Inspection{}, err
	}
	if agency == nil {
		return domain.Inspection{}, domain.ErrNotFound
	}
	if inspectorID != 0 {
		inspector, err := s.inspectorRepo.FindByID(ctx, s.db, inspectorID)
		if err != nil {
			return domain.Inspection{}, err
		}
		if inspector == nil {
			return domain.Inspection{}, domain.ErrInvalidInspector
		}
	}

	consumption := domain.CalculateConsumption(req.AreaM2, req.PropertyType, req.Furnishing, req.Express, req.Relocation)

	rate := s.cfg.InspectorBaseRate
	if req.InspectorRate.IsPositive() {
		rate = req.InspectorRate
	}

	now := s.clock.Now()
	inspection := domain.Inspection{
		ID:             s.genID.Generate(),
		AgencyID:       agencyID,
		InspectorID:    inspectorID,
		InspectionDate: clock.Truncate(inspectionDate),
		AreaM2:         req.AreaM2,
		PropertyType:   req.PropertyType,
		Furnishing:     req.Furnishing,
		Express:        req.Express,
		Relocation:     req.Relocation,
		Consumption:    consumption,
		MonetaryValue:  consumption.Mul(s.cfg.CreditUnitPrice).Round(2),
		InspectorRate:  rate,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	isFuture := !clock.SameCalendarDayOrBefore(inspectionDate, now)

	insert := func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			seq, err := s.repo.NextCodeSeq(ctx, tx, now.Year())
			if err != nil {
				return err
			}
			inspection.CodeYear = now.Year()
			inspection.CodeSeq = seq
			inspection.Code = fmt.Sprintf("VST-%d-%04d", now.Year(), seq)

			if !isFuture && consumption.IsPositive() {
				if err := s.ledgerRepo.AddSpentMinor(ctx, tx, agencyID, ledgerdomain.MinorUnits(consumption)); err != nil {
					return err
				}
			}

			return s.repo.Insert(ctx, tx, &inspection)
		})
	}

	err = insert()
	if db.IsDuplicateKeyErr(err) {
		// Lost the code sequence race; the unique index rejected the
		// insert and the transaction rolled back. One retry picks up
		// the next free sequence.
		err = insert()
	}
	if err != nil {
		return domain.Inspection{}, err
	}

	s.log.Info("inspection created",
		zap.String("code", inspection.Code),
		zap.String("agency_id", agencyID.String()),
		zap.String("consumption", consumption.String()),
		zap.Bool("future_dated", isFuture),
	)

	return inspection, nil
}

// Update applies the edit decision table: the agency is debited when
// the inspection transitions into the chargeable state (future date
// edited to today-or-past, or zero consumption raised to positive on a
// non-future date). No transition out of the chargeable state ever
// credits back; only deletion refunds.
func (s *Service) Update(ctx context.Context, req domain.UpdateInspectionRequest) (domain.Inspection, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.Inspection{}, domain.ErrInvalidID
	}

	prev, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Inspection{}, err
	}
	if prev == nil {
		return domain.Inspection{}, domain.ErrNotFound
	}

	next := *prev

	if req.AgencyID != nil {
		agencyID, err := parseID(*req.AgencyID)
		if err != nil {
			return domain.Inspection{}, domain.ErrInvalidAgency
		}
		agency, err := s.agencyRepo.FindByID(ctx, s.db, agencyID)
		if err != nil {
			return domain.Inspection{}, err
		}
		if agency == nil {
			return domain.Inspection{}, domain.ErrInvalidAgency
		}
		next.AgencyID = agencyID
	}
	if req.InspectorID != nil {
		if strings.TrimSpace(*req.InspectorID) == "" {
			next.InspectorID = 0
		} else {
			inspectorID, err := parseID(*req.InspectorID)
			if err != nil {
				return domain.Inspection{}, domain.ErrInvalidInspector
			}
			inspector, err := s.inspectorRepo.FindByID(ctx, s.db, inspectorID)
			if err != nil {
				return domain.Inspection{}, err
			}
			if inspector == nil {
				return domain.Inspection{}, domain.ErrInvalidInspector
			}
			next.InspectorID = inspectorID
		}
	}
	if req.InspectionDate != nil {
		inspectionDate, err := parseDate(*req.InspectionDate)
		if err != nil {
			return domain.Inspection{}, domain.ErrInvalidDate
		}
		next.InspectionDate = clock.Truncate(inspectionDate)
	}
	if req.AreaM2 != nil {
		if !req.AreaM2.IsPositive() {
			return domain.Inspection{}, domain.ErrInvalidArea
		}
		next.AreaM2 = *req.AreaM2
	}
	if req.PropertyType != nil {
		if !domain.ValidPropertyType(*req.PropertyType) {
			return domain.Inspection{}, domain.ErrInvalidPropertyType
		}
		next.PropertyType = *req.PropertyType
	}
	if req.Furnishing != nil {
		if !domain.ValidFurnishing(*req.Furnishing) {
			return domain.Inspection{}, domain.ErrInvalidFurnishing
		}
		next.Furnishing = *req.Furnishing
	}
	if req.Express != nil {
		next.Express = *req.Express
	}
	if req.Relocation != nil {
		next.Relocation = *req.Relocation
	}

	next.Consumption = domain.CalculateConsumption(next.AreaM2, next.PropertyType, next.Furnishing, next.Express, next.Relocation)
	next.UpdatedAt = s.clock.Now()

	today := s.clock.Now()
	wasFuture := !clock.SameCalendarDayOrBefore(prev.InspectionDate, today)
	nowFuture := !clock.SameCalendarDayOrBefore(next.InspectionDate, today)

	shouldDebit := (wasFuture && !nowFuture && next.Consumption.IsPositive()) ||
		(prev.Consumption.IsZero() && next.Consumption.IsPositive() && !nowFuture)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if shouldDebit {
			if err := s.ledgerRepo.AddSpentMinor(ctx, tx, next.AgencyID, ledgerdomain.MinorUnits(next.Consumption)); err != nil {
				return err
			}
		}
		return s.repo.Update(ctx, tx, &next)
	})
	if err != nil {
		return domain.Inspection{}, err
	}

	if shouldDebit {
		s.log.Info("inspection edit debited credits",
			zap.String("code", next.Code),
			zap.String("agency_id", next.AgencyID.String()),
			zap.String("consumption", next.Consumption.String()),
		)
	}

	return next, nil
}

func (s *Service) List(ctx context.Context, req domain.ListInspectionRequest) (domain.ListInspectionResponse, error) {
	filter := domain.ListInspectionFilter{OnlyActive: req.OnlyActive}

	if strings.TrimSpace(req.AgencyID) != "" {
		agencyID, err := parseID(req.AgencyID)
		if err != nil {
			return domain.ListInspectionResponse{}, domain.ErrInvalidAgency
		}
		filter.AgencyID = agencyID
	}
	if strings.TrimSpace(req.InspectorID) != "" {
		inspectorID, err := parseID(req.InspectorID)
		if err != nil {
			return domain.ListInspectionResponse{}, domain.ErrInvalidInspector
		}
		filter.InspectorID = inspectorID
	}
	if strings.TrimSpace(req.DateFrom) != "" {
		from, err := parseDate(req.DateFrom)
		if err != nil {
			return domain.ListInspectionResponse{}, domain.ErrInvalidDate
		}
		filter.DateFrom = &from
	}
	if strings.TrimSpace(req.DateTo) != "" {
		to, err := parseDate(req.DateTo)
		if err != nil {
			return domain.ListInspectionResponse{}, domain.ErrInvalidDate
		}
		filter.DateTo = &to
	}
	if strings.TrimSpace(req.PageToken) != "" {
		cursor, err := pagination.DecodeCursor(req.PageToken)
		if err != nil {
			return domain.ListInspectionResponse{}, domain.ErrInvalidID
		}
		cursorID, err := parseID(cursor.ID)
		if err != nil {
			return domain.ListInspectionResponse{}, domain.ErrInvalidID
		}
		filter.CursorID = cursorID
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	// Fetch one extra row to detect whether another page exists.
	items, err := s.repo.List(ctx, s.db, filter, int(pageSize)+1)
	if err != nil {
		return domain.ListInspectionResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(inspection *domain.Inspection) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{ID: inspection.ID.String()})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	inspections := make([]domain.Inspection, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		inspections = append(inspections, *item)
	}

	resp := domain.ListInspectionResponse{Inspections: inspections}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetInspectionRequest) (domain.Inspection, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.Inspection{}, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Inspection{}, err
	}
	if item == nil {
		return domain.Inspection{}, domain.ErrNotFound
	}

	return *item, nil
}

// Delete refunds the agency when the inspection was already executed
// with a positive consumption, then hard-deletes the row. Refund and
// delete run in one transaction: both happen or neither does. An
// inspection whose date moved back into the future is deleted without
// a refund even if it was debited earlier; that asymmetry is the
// documented business policy.
func (s *Service) Delete(ctx context.Context, req domain.DeleteInspectionRequest) error {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.ErrInvalidID
	}

	prev, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if prev == nil {
		return domain.ErrNotFound
	}

	executed := clock.SameCalendarDayOrBefore(prev.InspectionDate, s.clock.Now())
	refund := executed && prev.Consumption.IsPositive()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if refund {
			if err := s.ledgerRepo.SubtractSpentMinorClamped(ctx, tx, prev.AgencyID, ledgerdomain.MinorUnits(prev.Consumption)); err != nil {
				return err
			}
		}
		return s.repo.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	s.log.Info("inspection deleted",
		zap.String("code", prev.Code),
		zap.String("agency_id", prev.AgencyID.String()),
		zap.Bool("refunded", refund),
	)

	return nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(value))
}
