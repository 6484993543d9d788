package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	inspectordomain "github.com/vistoriahub/vistoria/internal/inspector/domain"
)

type createInspectorRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (s *Server) CreateInspector(c *gin.Context) {
	var req createInspectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.inspectorSvc.Create(c.Request.Context(), inspectordomain.CreateInspectorRequest{
		Name:  strings.TrimSpace(req.Name),
		Email: strings.TrimSpace(req.Email),
		Phone: strings.TrimSpace(req.Phone),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListInspectors(c *gin.Context) {
	var query struct {
		OnlyActive bool  `form:"only_active"`
		PageSize   int32 `form:"page_size"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.inspectorSvc.List(c.Request.Context(), inspectordomain.ListInspectorRequest{
		OnlyActive: query.OnlyActive,
		PageSize:   query.PageSize,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInspectorByID(c *gin.Context) {
	resp, err := s.inspectorSvc.GetByID(c.Request.Context(), inspectordomain.GetInspectorRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateInspectorRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Phone  *string `json:"phone"`
	Active *bool   `json:"active"`
}

func (s *Server) UpdateInspector(c *gin.Context) {
	var req updateInspectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.inspectorSvc.Update(c.Request.Context(), inspectordomain.UpdateInspectorRequest{
		ID:     strings.TrimSpace(c.Param("id")),
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Active: req.Active,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInspectorPayroll(c *gin.Context) {
	year, err := parseIntQuery(c, "year")
	if err != nil {
		AbortWithError(c, newValidationError("year", "invalid_year", "invalid year"))
		return
	}
	month, err := parseIntQuery(c, "month")
	if err != nil {
		AbortWithError(c, newValidationError("month", "invalid_month", "invalid month"))
		return
	}

	resp, err := s.inspectorSvc.Payroll(c.Request.Context(), inspectordomain.PayrollRequest{
		InspectorID: strings.TrimSpace(c.Param("id")),
		Year:        year,
		Month:       month,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func parseIntQuery(c *gin.Context, name string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(c.Query(name)))
}
