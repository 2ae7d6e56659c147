package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/returnhelper/returnsvc/internal/domain/lifecycle"
	"github.com/returnhelper/returnsvc/internal/domain/model"
	"github.com/returnhelper/returnsvc/internal/domain/view"
	"github.com/returnhelper/returnsvc/internal/server/http/dto"
	"github.com/returnhelper/returnsvc/internal/usecase"
)

// ReturnHandler serves the customer-facing return endpoints.
type ReturnHandler struct {
	facade ReturnFacade
}

// NewReturnHandler creates ReturnHandler instance.
func NewReturnHandler(facade ReturnFacade) *ReturnHandler {
	return &ReturnHandler{facade: facade}
}

// Create handles POST /api/returns.
func (h *ReturnHandler) Create(c *gin.Context) {
	var req dto.CreateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	initial := model.StatusPending
	if req.Status != "" {
		parsed, err := model.ParseReturnStatus(req.Status)
		if err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		initial = parsed
	}

	items := make([]usecase.NewItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		size, err := model.ParseItemSize(item.Size)
		if err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		items = append(items, usecase.NewItemInput{
			Retailer:    item.Retailer,
			ProductName: item.ProductName,
			QRCode:      item.QRCode,
			Size:        size,
			Fragile:     item.Fragile,
		})
	}

	ret, err := h.facade.CreateReturn(c.Request.Context(), CurrentUserID(c), usecase.CreateReturnInput{
		InitialStatus:       initial,
		ScheduledDate:       req.ScheduledDate,
		TimeWindow:          req.TimeWindow,
		AddressID:           req.AddressID,
		Items:               items,
		SpecialInstructions: req.SpecialInstructions,
	})
	if err != nil {
		c.Status(statusForDomainError(err))
		return
	}
	c.JSON(http.StatusCreated, dto.ToReturnResponse(ret, lifecycle.CanCancel(ret.Status)))
}

// List handles GET /api/returns with an optional bucket filter.
func (h *ReturnHandler) List(c *gin.Context) {
	bucket := view.BucketAll
	if raw := c.Query("bucket"); raw != "" {
		parsed, ok := view.ParseBucket(raw)
		if !ok {
			c.Status(http.StatusBadRequest)
			return
		}
		bucket = parsed
	}

	returns, err := h.facade.Returns(c.Request.Context(), CurrentUserID(c), bucket)
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

// Stats handles GET /api/returns/stats.
func (h *ReturnHandler) Stats(c *gin.Context) {
	stats, err := h.facade.ReturnStats(c.Request.Context(), CurrentUserID(c), time.Now().UTC())
	if err != nil {
		c.Status(statusForDomainError(err))
		return
	}
	c.JSON(http.StatusOK, dto.ToStatsResponse(stats))
}

// Get handles GET /api/returns/:id.
func (h *ReturnHandler) Get(c *gin.Context) {
	ret, err := h.facade.ReturnByID(c.Request.Context(), CurrentUserID(c), c.Param("id"))
	if err != nil {
		c.Status(statusForDomainError(err))
		return
	}
	c.JSON(http.StatusOK, dto.ReturnDetailResponse{
		ReturnResponse: dto.ToReturnResponse(ret, lifecycle.CanCancel(ret.Status)),
		Timeline:       dto.ToTimelineResponse(ret.Status),
	})
}

// Cancel handles POST /api/returns/:id/cancel.
func (h *ReturnHandler) Cancel(c *gin.Context) {
	var req dto.CancelReturnRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
	}

	ret, err := h.facade.CancelReturn(c.Request.Context(), CurrentUserID(c), c.Param("id"), req.Notes)
	if err != nil {
		c.Status(statusForDomainError(err))
		return
	}
	c.JSON(http.StatusOK, dto.ToReturnResponse(ret, lifecycle.CanCancel(ret.Status)))
}
