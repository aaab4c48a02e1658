package handler

import (
	"net/http"

	"frontdesk/internal/apierror"
	"frontdesk/internal/config"
	"frontdesk/internal/dto"
	"frontdesk/internal/service"

	"github.com/gin-gonic/gin"
)

type CheckinsHandler struct {
	svc service.CheckinService
	cfg *config.Config
}

func NewCheckinsHandler(svc service.CheckinService, cfg *config.Config) *CheckinsHandler {
	return &CheckinsHandler{svc: svc, cfg: cfg}
}

// List returns the reconciled check-in rows for the window around ?date,
// widened by ?before / ?after days (configured defaults when omitted).
func (h *CheckinsHandler) List(c *gin.Context) {
	var q dto.CheckinsQuery
	if !bindQueryAndValidate(c, &q) {
		return
	}
	if c.Query("before") == "" {
		q.DaysBefore = h.cfg.WindowDaysBefore
	}
	if c.Query("after") == "" {
		q.DaysAfter = h.cfg.WindowDaysAfter
	}
	resp, err := h.svc.Rows(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
