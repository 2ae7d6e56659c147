package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/returnhelper/returnsvc/internal/server/http/dto"
)

// AddressHandler manages the address book endpoints.
type AddressHandler struct {
	facade AddressFacade
}

// NewAddressHandler creates AddressHandler instance.
func NewAddressHandler(facade AddressFacade) *AddressHandler {
	return &AddressHandler{facade: facade}
}

// Create handles POST /api/addresses.
func (h *AddressHandler) Create(c *gin.Context) {
	var req dto.CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	address, err := h.facade.CreateAddress(c.Request.Context(), CurrentUserID(c), req.ToAddressModel())
	if err != nil {
		c.Status(statusForDomainError(err))
		return
	}
	c.JSON(http.StatusCreated, address)
}

// List handles GET /api/addresses.
func (h *AddressHandler) List(c *gin.Context) {
	addresses, err := h.facade.Addresses(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(statusForDomainError(err))
		return
	}
	if len(addresses) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, addresses)
}
