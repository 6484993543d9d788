package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	statementdomain "github.com/vistoriahub/vistoria/internal/statement/domain"
)

func (s *Server) GetMonthlyStatement(c *gin.Context) {
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

	resp, err := s.statementSvc.Monthly(c.Request.Context(), statementdomain.MonthlyRequest{
		Year:  year,
		Month: month,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
