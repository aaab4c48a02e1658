package handler

import (
	"net/http"

	"frontdesk/internal/apierror"
	"frontdesk/internal/dto"
	"frontdesk/internal/service"

	"github.com/gin-gonic/gin"
)

type ExtensionHandler struct{ svc service.ExtensionService }

func NewExtensionHandler(svc service.ExtensionService) *ExtensionHandler {
	return &ExtensionHandler{svc: svc}
}

// InHouse lists guests currently in house, plus same-day checkouts without a
// recorded extension.
func (h *ExtensionHandler) InHouse(c *gin.Context) {
	resp, err := h.svc.InHouse(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list in-house guests"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CheckAvailability answers whether ?room can absorb ?nights extra nights
// from ?start without exceeding its bed capacity.
func (h *ExtensionHandler) CheckAvailability(c *gin.Context) {
	var q dto.AvailabilityQuery
	if !bindQueryAndValidate(c, &q) {
		return
	}
	resp, err := h.svc.CheckAvailability(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("availability check failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
