package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	agencydomain "github.com/vistoriahub/vistoria/internal/agency/domain"
	"github.com/vistoriahub/vistoria/internal/creditsale/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Repo       domain.Repository
	AgencyRepo agencydomain.Repository
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	repo       domain.Repository
	agencyRepo agencydomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("creditsale.service"),
		genID:      p.GenID,
		repo:       p.Repo,
		agencyRepo: p.AgencyRepo,
	}
}

// Create inserts the sale and all its installments in one transaction.
// A failed installment write rolls the sale back instead of leaving a
// parent row behind.
func (s *Service) Create(ctx context.Context, req domain.CreateSaleRequest) (domain.CreditSale, error) {
	agencyID, err := parseID(req.AgencyID)
	if err != nil {
		return domain.CreditSale{}, domain.ErrInvalidAgency
	}

	saleDate, err := parseDate(req.SaleDate)
	if err != nil {
		return domain.CreditSale{}, domain.ErrInvalidDate
	}
	if !req.Quantity.IsPositive() {
		return domain.CreditSale{}, domain.ErrInvalidQuantity
	}
	if !req.UnitPrice.IsPositive() {
		return domain.CreditSale{}, domain.ErrInvalidUnitPrice
	}

	payments, err := s.buildPayments(req.Payments)
	if err != nil {
		return domain.CreditSale{}, err
	}

	agency, err := s.agencyRepo.FindByID(ctx, s.db, agencyID)
	if err != nil {
		return domain.CreditSale{}, err
	}
	if agency == nil {
		return domain.CreditSale{}, domain.ErrNotFound
	}

	now := time.Now().UTC()
	sale := domain.CreditSale{
		ID:         s.genID.Generate(),
		AgencyID:   agencyID,
		SaleDate:   saleDate,
		Quantity:   req.Quantity,
		UnitPrice:  req.UnitPrice,
		TotalPrice: req.Quantity.Mul(req.UnitPrice),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.InsertSale(ctx, tx, &sale); err != nil {
			return err
		}
		for i := range payments {
			payments[i].SaleID = sale.ID
			if err := s.repo.InsertPayment(ctx, tx, &payments[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.CreditSale{}, err
	}

	sale.Payments = payments
	return sale, nil
}

// Update rewrites the sale in place and replaces its installments
// wholesale: delete-all then re-insert, inside one transaction.
func (s *Service) Update(ctx context.Context, req domain.UpdateSaleRequest) (domain.CreditSale, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.CreditSale{}, domain.ErrInvalidID
	}

	saleDate, err := parseDate(req.SaleDate)
	if err != nil {
		return domain.CreditSale{}, domain.ErrInvalidDate
	}
	if !req.Quantity.IsPositive() {
		return domain.CreditSale{}, domain.ErrInvalidQuantity
	}
	if !req.UnitPrice.IsPositive() {
		return domain.CreditSale{}, domain.ErrInvalidUnitPrice
	}

	payments, err := s.buildPayments(req.Payments)
	if err != nil {
		return domain.CreditSale{}, err
	}

	sale, err := s.repo.FindSaleByID(ctx, s.db, id)
	if err != nil {
		return domain.CreditSale{}, err
	}
	if sale == nil {
		return domain.CreditSale{}, domain.ErrNotFound
	}

	sale.SaleDate = saleDate
	sale.Quantity = req.Quantity
	sale.UnitPrice = req.UnitPrice
	sale.TotalPrice = req.Quantity.Mul(req.UnitPrice)
	sale.UpdatedAt = time.Now().UTC()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.UpdateSale(ctx, tx, sale); err != nil {
			return err
		}
		if err := s.repo.DeletePaymentsBySale(ctx, tx, sale.ID); err != nil {
			return err
		}
		for i := range payments {
			payments[i].SaleID = sale.ID
			if err := s.repo.InsertPayment(ctx, tx, &payments[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.CreditSale{}, err
	}

	sale.Payments = payments
	return *sale, nil
}

func (s *Service) ListByAgency(ctx context.Context, req domain.ListSalesRequest) ([]domain.CreditSale, error) {
	agencyID, err := parseID(req.AgencyID)
	if err != nil {
		return nil, domain.ErrInvalidAgency
	}

	items, err := s.repo.ListByAgency(ctx, s.db, agencyID)
	if err != nil {
		return nil, err
	}

	sales := make([]domain.CreditSale, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		payments, err := s.repo.ListPaymentsBySale(ctx, s.db, item.ID)
		if err != nil {
			return nil, err
		}
		item.Payments = payments
		sales = append(sales, *item)
	}
	return sales, nil
}

// Delete removes the installments first, then the sale, in one
// transaction so the pair never ends up half-deleted.
func (s *Service) Delete(ctx context.Context, req domain.DeleteSaleRequest) error {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.ErrInvalidID
	}

	sale, err := s.repo.FindSaleByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrNotFound
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.DeletePaymentsBySale(ctx, tx, id); err != nil {
			return err
		}
		return s.repo.DeleteSale(ctx, tx, id)
	})
}

func (s *Service) buildPayments(inputs []domain.PaymentInput) ([]domain.CreditSalePayment, error) {
	now := time.Now().UTC()
	payments := make([]domain.CreditSalePayment, 0, len(inputs))
	for _, input := range inputs {
		paymentDate, err := parseDate(input.PaymentDate)
		if err != nil {
			return nil, domain.ErrInvalidPayment
		}
		if !input.Amount.IsPositive() {
			return nil, domain.ErrInvalidPayment
		}
		payments = append(payments, domain.CreditSalePayment{
			ID:          s.genID.Generate(),
			PaymentDate: paymentDate,
			Amount:      input.Amount,
			CreatedAt:   now,
		})
	}
	return payments, nil
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
