package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	agencydomain "github.com/vistoriahub/vistoria/internal/agency/domain"
	creditsaledomain "github.com/vistoriahub/vistoria/internal/creditsale/domain"
	inspectiondomain "github.com/vistoriahub/vistoria/internal/inspection/domain"
	inspectordomain "github.com/vistoriahub/vistoria/internal/inspector/domain"
	ledgerdomain "github.com/vistoriahub/vistoria/internal/ledger/domain"
	statementdomain "github.com/vistoriahub/vistoria/internal/statement/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := err.Error()
		if errors.Is(err, ErrInvalidRequest) {
			code = "invalid_request"
		}
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	if isNotFoundError(err) {
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	}

	return http.StatusInternalServerError, errorPayload{
		Type:    "internal_error",
		Message: "internal server error",
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, agencydomain.ErrInvalidName),
		errors.Is(err, agencydomain.ErrInvalidID),
		errors.Is(err, creditsaledomain.ErrInvalidAgency),
		errors.Is(err, creditsaledomain.ErrInvalidID),
		errors.Is(err, creditsaledomain.ErrInvalidDate),
		errors.Is(err, creditsaledomain.ErrInvalidQuantity),
		errors.Is(err, creditsaledomain.ErrInvalidUnitPrice),
		errors.Is(err, creditsaledomain.ErrInvalidPayment),
		errors.Is(err, inspectiondomain.ErrInvalidAgency),
		errors.Is(err, inspectiondomain.ErrInvalidInspector),
		errors.Is(err, inspectiondomain.ErrInvalidID),
		errors.Is(err, inspectiondomain.ErrInvalidDate),
		errors.Is(err, inspectiondomain.ErrInvalidArea),
		errors.Is(err, inspectiondomain.ErrInvalidPropertyType),
		errors.Is(err, inspectiondomain.ErrInvalidFurnishing),
		errors.Is(err, inspectordomain.ErrInvalidName),
		errors.Is(err, inspectordomain.ErrInvalidID),
		errors.Is(err, inspectordomain.ErrInvalidPeriod),
		errors.Is(err, ledgerdomain.ErrInvalidAgency),
		errors.Is(err, ledgerdomain.ErrInvalidQuantity),
		errors.Is(err, statementdomain.ErrInvalidPeriod):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, agencydomain.ErrNotFound),
		errors.Is(err, creditsaledomain.ErrNotFound),
		errors.Is(err, inspectiondomain.ErrNotFound),
		errors.Is(err, inspectordomain.ErrNotFound),
		errors.Is(err, ledgerdomain.ErrAgencyNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	default:
		return "invalid value"
	}
}
