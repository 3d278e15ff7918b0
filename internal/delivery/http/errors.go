package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
)

// AppError API xatosi: HTTP status va JSON tanasi
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{Status: status, Code: code, Message: message, Err: err}
}

func badRequest(message string, err error) *AppError {
	return NewAppError(http.StatusBadRequest, "bad_request", message, err)
}

type errorMapping struct {
	target error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{entity.ErrProductNotFound, http.StatusNotFound, "not_found"},
	{entity.ErrBrandNotFound, http.StatusNotFound, "not_found"},
	{entity.ErrCategoryNotFound, http.StatusNotFound, "not_found"},
	{entity.ErrCartLineNotFound, http.StatusNotFound, "not_found"},
	{entity.ErrSessionNotFound, http.StatusNotFound, "not_found"},
	{entity.ErrOutOfStock, http.StatusConflict, "out_of_stock"},
	{entity.ErrLoginRequired, http.StatusUnauthorized, "login_required"},
	{entity.ErrForbidden, http.StatusForbidden, "forbidden"},
	{entity.ErrEmptyCart, http.StatusBadRequest, "validation"},
	{entity.ErrPasswordMismatch, http.StatusBadRequest, "validation"},
	{entity.ErrInvalidEmail, http.StatusBadRequest, "validation"},
	{entity.ErrInvalidProduct, http.StatusBadRequest, "validation"},
	{entity.ErrInvalidName, http.StatusBadRequest, "validation"},
	{entity.ErrInvalidAddress, http.StatusBadRequest, "validation"},
	{entity.ErrUnknownPage, http.StatusBadRequest, "validation"},
	{entity.ErrUnsupportedCurrency, http.StatusBadRequest, "validation"},
	{entity.ErrEmptyImport, http.StatusBadRequest, "validation"},
	{entity.ErrEmptyQuestion, http.StatusBadRequest, "validation"},
	{entity.ErrAdvisorDisabled, http.StatusServiceUnavailable, "advisor_disabled"},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, "timeout"},
}

// FromError maps domain errors to an AppError. Unknown errors become a 500
// without leaking the underlying message.
func FromError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return NewAppError(m.status, m.code, err.Error(), err)
		}
	}
	return NewAppError(http.StatusInternalServerError, "internal", "internal server error", err)
}

// ErrorMiddleware renders the last error attached to the context
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		appErr := FromError(c.Errors.Last().Err)
		c.AbortWithStatusJSON(appErr.Status, appErr)
	}
}
