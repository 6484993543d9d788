package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	inspectiondomain "github.com/vistoriahub/vistoria/internal/inspection/domain"
)

type createInspectionRequest struct {
	AgencyID       string          `json:"agency_id"`
	InspectorID    string          `json:"inspector_id"`
	InspectionDate string          `json:"inspection_date"`
	AreaM2         decimal.Decimal `json:"area_m2"`
	PropertyType   string          `json:"property_type"`
	Furnishing     string          `json:"furnishing"`
	Express        bool            `json:"express"`
	Relocation     bool            `json:"relocation"`
	InspectorRate  decimal.Decimal `json:"inspector_rate"`
}

func (s *Server) CreateInspection(c *gin.Context) {
	var req createInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.inspectionSvc.Create(c.Request.Context(), inspectiondomain.CreateInspectionRequest{
		AgencyID:       strings.TrimSpace(req.AgencyID),
		InspectorID:    strings.TrimSpace(req.InspectorID),
		InspectionDate: strings.TrimSpace(req.InspectionDate),
		AreaM2:         req.AreaM2,
		PropertyType:   inspectiondomain.PropertyType(strings.TrimSpace(req.PropertyType)),
		Furnishing:     inspectiondomain.Furnishing(strings.TrimSpace(req.Furnishing)),
		Express:        req.Express,
		Relocation:     req.Relocation,
		InspectorRate:  req.InspectorRate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListInspections(c *gin.Context) {
	var query struct {
		AgencyID    string `form:"agency_id"`
		InspectorID string `form:"inspector_id"`
		DateFrom    string `form:"date_from"`
		DateTo      string `form:"date_to"`
		OnlyActive  bool   `form:"only_active"`
		PageToken   string `form:"page_token"`
		PageSize    int32  `form:"page_size"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.inspectionSvc.List(c.Request.Context(), inspectiondomain.ListInspectionRequest{
		AgencyID:    strings.TrimSpace(query.AgencyID),
		InspectorID: strings.TrimSpace(query.InspectorID),
		DateFrom:    strings.TrimSpace(query.DateFrom),
		DateTo:      strings.TrimSpace(query.DateTo),
		OnlyActive:  query.OnlyActive,
		PageToken:   strings.TrimSpace(query.PageToken),
		PageSize:    query.PageSize,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInspectionByID(c *gin.Context) {
	resp, err := s.inspectionSvc.GetByID(c.Request.Context(), inspectiondomain.GetInspectionRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateInspectionRequest struct {
	AgencyID       *string          `json:"agency_id"`
	InspectorID    *string          `json:"inspector_id"`
	InspectionDate *string          `json:"inspection_date"`
	AreaM2         *decimal.Decimal `json:"area_m2"`
	PropertyType   *string          `json:"property_type"`
	Furnishing     *string          `json:"furnishing"`
	Express        *bool            `json:"express"`
	Relocation     *bool            `json:"relocation"`
}

func (s *Server) UpdateInspection(c *gin.Context) {
	var req updateInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	update := inspectiondomain.UpdateInspectionRequest{
		ID:             strings.TrimSpace(c.Param("id")),
		AgencyID:       req.AgencyID,
		InspectorID:    req.InspectorID,
		InspectionDate: req.InspectionDate,
		AreaM2:         req.AreaM2,
		Express:        req.Express,
		Relocation:     req.Relocation,
	}
	if req.PropertyType != nil {
		propertyType := inspectiondomain.PropertyType(strings.TrimSpace(*req.PropertyType))
		update.PropertyType = &propertyType
	}
	if req.Furnishing != nil {
		furnishing := inspectiondomain.Furnishing(strings.TrimSpace(*req.Furnishing))
		update.Furnishing = &furnishing
	}

	resp, err := s.inspectionSvc.Update(c.Request.Context(), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteInspection(c *gin.Context) {
	err := s.inspectionSvc.Delete(c.Request.Context(), inspectiondomain.DeleteInspectionRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
