package handler

import (
	"net/http"

	"frontdesk/internal/apierror"
	"frontdesk/internal/dto"
	"frontdesk/internal/service"

	"github.com/gin-gonic/gin"
)

type EmailProgressHandler struct{ svc service.EmailProgressService }

func NewEmailProgressHandler(svc service.EmailProgressService) *EmailProgressHandler {
	return &EmailProgressHandler{svc: svc}
}

// Eligible lists occupants in the window whose booking has committed money.
func (h *EmailProgressHandler) Eligible(c *gin.Context) {
	var q dto.CheckinsQuery
	if !bindQueryAndValidate(c, &q) {
		return
	}
	resp, err := h.svc.Eligible(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Send enqueues a progress email for each eligible occupant; the mail itself
// is delivered by the background worker pool.
func (h *EmailProgressHandler) Send(c *gin.Context) {
	var req dto.SendProgressRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Send(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusAccepted, resp)
}
