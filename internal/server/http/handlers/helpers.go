package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/returnhelper/returnsvc/internal/domain/errors"
	"github.com/returnhelper/returnsvc/internal/server/http/middleware"
)

// CurrentUserID extracts the authenticated user identifier from context.
func CurrentUserID(c *gin.Context) string {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return ""
	}
	id, _ := val.(string)
	return id
}

// statusForDomainError maps shared domain failures to HTTP codes. Handlers
// override the cases that carry endpoint-specific meaning.
func statusForDomainError(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrMalformedInput),
		errors.Is(err, domainErrors.ErrEmptyItemList):
		return http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrAlreadyExists),
		errors.Is(err, domainErrors.ErrConflict),
		errors.Is(err, domainErrors.ErrInvalidTransition),
		errors.Is(err, domainErrors.ErrCancellationNotAllowed):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrReturnLimitReached):
		return http.StatusPaymentRequired
	}
	return http.StatusInternalServerError
}
