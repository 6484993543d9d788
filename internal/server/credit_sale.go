package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	creditsaledomain "github.com/vistoriahub/vistoria/internal/creditsale/domain"
)

type salePaymentRequest struct {
	PaymentDate string          `json:"payment_date"`
	Amount      decimal.Decimal `json:"amount"`
}

type createCreditSaleRequest struct {
	SaleDate  string               `json:"sale_date"`
	Quantity  decimal.Decimal      `json:"quantity"`
	UnitPrice decimal.Decimal      `json:"unit_price"`
	Payments  []salePaymentRequest `json:"payments"`
}

func (s *Server) CreateCreditSale(c *gin.Context) {
	var req createCreditSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.creditSaleSvc.Create(c.Request.Context(), creditsaledomain.CreateSaleRequest{
		AgencyID:  strings.TrimSpace(c.Param("id")),
		SaleDate:  strings.TrimSpace(req.SaleDate),
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		Payments:  toPaymentInputs(req.Payments),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListCreditSales(c *gin.Context) {
	resp, err := s.creditSaleSvc.ListByAgency(c.Request.Context(), creditsaledomain.ListSalesRequest{
		AgencyID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateCreditSaleRequest struct {
	SaleDate  string               `json:"sale_date"`
	Quantity  decimal.Decimal      `json:"quantity"`
	UnitPrice decimal.Decimal      `json:"unit_price"`
	Payments  []salePaymentRequest `json:"payments"`
}

func (s *Server) UpdateCreditSale(c *gin.Context) {
	var req updateCreditSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.creditSaleSvc.Update(c.Request.Context(), creditsaledomain.UpdateSaleRequest{
		ID:        strings.TrimSpace(c.Param("id")),
		SaleDate:  strings.TrimSpace(req.SaleDate),
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		Payments:  toPaymentInputs(req.Payments),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteCreditSale(c *gin.Context) {
	err := s.creditSaleSvc.Delete(c.Request.Context(), creditsaledomain.DeleteSaleRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func toPaymentInputs(payments []salePaymentRequest) []creditsaledomain.PaymentInput {
	inputs := make([]creditsaledomain.PaymentInput, 0, len(payments))
	for _, p := range payments {
		inputs = append(inputs, creditsaledomain.PaymentInput{
			PaymentDate: strings.TrimSpace(p.PaymentDate),
			Amount:      p.Amount,
		})
	}
	return inputs
}
