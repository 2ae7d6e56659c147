package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/returnhelper/returnsvc/internal/server/http/dto"
)

// ProfileHandler serves account data and push token registration.
type ProfileHandler struct {
	facade ProfileFacade
}

// NewProfileHandler creates ProfileHandler instance.
func NewProfileHandler(facade ProfileFacade) *ProfileHandler {
	return &ProfileHandler{facade: facade}
}

// Profile handles GET /api/profile.
func (h *ProfileHandler) Profile(c *gin.Context) {
	profile, err := h.facade.Profile(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(statusForDomainError(err))
		return
	}
	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}

// RegisterPushToken handles POST /api/push/token.
func (h *ProfileHandler) RegisterPushToken(c *gin.Context) {
	var req dto.PushTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Token) == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.RegisterPushToken(c.Request.Context(), CurrentUserID(c), strings.TrimSpace(req.Token)); err != nil {
		c.Status(statusForDomainError(err))
		return
	}
	c.Status(http.StatusOK)
}
