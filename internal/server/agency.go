package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	agencydomain "github.com/vistoriahub/vistoria/internal/agency/domain"
	ledgerdomain "github.com/vistoriahub/vistoria/internal/ledger/domain"
)

type createAgencyRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Document string `json:"document"`
}

func (s *Server) CreateAgency(c *gin.Context) {
	var req createAgencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.agencySvc.Create(c.Request.Context(), agencydomain.CreateAgencyRequest{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Document: strings.TrimSpace(req.Document),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListAgencies(c *gin.Context) {
	var query struct {
		Name       string `form:"name"`
		OnlyActive bool   `form:"only_active"`
		PageSize   int32  `form:"page_size"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.agencySvc.List(c.Request.Context(), agencydomain.ListAgencyRequest{
		Name:       strings.TrimSpace(query.Name),
		OnlyActive: query.OnlyActive,
		PageSize:   query.PageSize,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetAgencyByID(c *gin.Context) {
	resp, err := s.agencySvc.GetByID(c.Request.Context(), agencydomain.GetAgencyRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateAgencyRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Document *string `json:"document"`
	Active   *bool   `json:"active"`
}

func (s *Server) UpdateAgency(c *gin.Context) {
	var req updateAgencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.agencySvc.Update(c.Request.Context(), agencydomain.UpdateAgencyRequest{
		ID:       strings.TrimSpace(c.Param("id")),
		Name:     req.Name,
		Email:    req.Email,
		Document: req.Document,
		Active:   req.Active,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// GetAgencyCredits reconciles then returns the agency's credit
// position. A negative available balance is returned as data, not an
// error.
func (s *Server) GetAgencyCredits(c *gin.Context) {
	agencyID, err := parseSnowflakeParam(c, "id")
	if err != nil {
		AbortWithError(c, ledgerdomain.ErrInvalidAgency)
		return
	}

	resp, err := s.ledgerSvc.Summary(c.Request.Context(), agencyID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ReconcileAgencyCredits(c *gin.Context) {
	agencyID, err := parseSnowflakeParam(c, "id")
	if err != nil {
		AbortWithError(c, ledgerdomain.ErrInvalidAgency)
		return
	}

	resp, err := s.ledgerSvc.Reconcile(c.Request.Context(), agencyID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func parseSnowflakeParam(c *gin.Context, name string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(c.Param(name)))
}
