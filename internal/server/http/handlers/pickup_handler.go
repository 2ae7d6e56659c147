package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/returnhelper/returnsvc/internal/domain/lifecycle"
	"github.com/returnhelper/returnsvc/internal/domain/model"
	"github.com/returnhelper/returnsvc/internal/server/http/dto"
)

// PickupHandler serves the driver-facing endpoints.
type PickupHandler struct {
	facade PickupFacade
}

// NewPickupHandler creates PickupHandler instance.
func NewPickupHandler(facade PickupFacade) *PickupHandler {
	return &PickupHandler{facade: facade}
}

// Available handles GET /api/pickups.
func (h *PickupHandler) Available(c *gin.Context) {
	pickups, err := h.facade.AvailablePickups(c.Request.Context())
	if err != nil {
		c.Status(statusForDomainError(err))
		return
	}
	if len(pickups) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.PickupResponse, 0, len(pickups))
	for _, p := range pickups {
		resp = append(resp, dto.ToPickupResponse(p))
	}
	c.JSON(http.StatusOK, resp)
}

// Mine handles GET /api/pickups/mine.
func (h *PickupHandler) Mine(c *gin.Context) {
	returns, err := h.facade.DriverPickups(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(statusForDomainError(err))
		return
	}
	if len(returns) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.ReturnResponse, 0, len(returns))
	for i := range returns {
		resp = append(resp, dto.ToReturnResponse(&returns[i], lifecycle.CanCancel(returns[i].Status)))
	}
	c.JSON(http.StatusOK, resp)
}

// Accept handles POST /api/pickups/:id/accept.
func (h *PickupHandler) Accept(c *gin.Context) {
	ret, err := h.facade.AcceptPickup(c.Request.Context(), CurrentUserID(c), c.Param("id"))
	if err != nil {
		c.Status(statusForDomainError(err))
		return
	}
	c.JSON(http.StatusOK, dto.ToReturnResponse(ret, lifecycle.CanCancel(ret.Status)))
}

// ReportStatus handles POST /api/pickups/:id/status.
func (h *PickupHandler) ReportStatus(c *gin.Context) {
	var req dto.ReportStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	status, err := model.ParseReturnStatus(req.Status)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	ret, err := h.facade.ReportPickupStatus(c.Request.Context(), CurrentUserID(c), c.Param("id"), status, req.Notes)
	if err != nil {
		c.Status(statusForDomainError(err))
		return
	}
	c.JSON(http.StatusOK, dto.ToReturnResponse(ret, lifecycle.CanCancel(ret.Status)))
}
