package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// APIError is the single error currency of the service. Every failure a
// handler can hit — bind, fetch, guard, persistence — is either an *APIError
// already or gets translated into one by RespondError.
type APIError struct {
	Status  int               `json:"-"`
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

// NewValidationError reports one or more invalid fields as HTTP 422.
func NewValidationError(fields map[string]string) *APIError {
	return &APIError{
		Status:  http.StatusUnprocessableEntity,
		Code:    42200,
		Message: "validation failed",
		Fields:  fields,
	}
}

// NewNotFoundError reports a missing record as HTTP 404.
func NewNotFoundError(resource, id string) *APIError {
	return &APIError{
		Status:  http.StatusNotFound,
		Code:    40400,
		Message: fmt.Sprintf("%s %s not found", resource, id),
	}
}

// NewForbiddenError reports an ownership violation as HTTP 403.
func NewForbiddenError(resource string) *APIError {
	return &APIError{
		Status:  http.StatusForbidden,
		Code:    40300,
		Message: fmt.Sprintf("you do not own this %s", resource),
	}
}

// NewUnauthorizedError reports a missing or invalid bearer token as HTTP 401.
func NewUnauthorizedError(message string) *APIError {
	return &APIError{
		Status:  http.StatusUnauthorized,
		Code:    40100,
		Message: message,
	}
}

// NewBadRequestError reports an unparseable payload as HTTP 400.
func NewBadRequestError(message string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    40000,
		Message: message,
	}
}

// RespondError is the one place errors become HTTP responses. Handlers
// forward every failure here unchanged; nothing is handled ad hoc per route.
func RespondError(ctx *gin.Context, err error) {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		// use as-is
	case errors.Is(err, gorm.ErrRecordNotFound):
		apiErr = NewNotFoundError("record", "")
		apiErr.Message = "record not found"
	default:
		if Sugar != nil {
			Sugar.Errorw("unhandled error", "error", err)
		}
		apiErr = &APIError{
			Status:  http.StatusInternalServerError,
			Code:    50000,
			Message: "internal server error",
		}
	}
	ctx.AbortWithStatusJSON(apiErr.Status, apiErr)
}
