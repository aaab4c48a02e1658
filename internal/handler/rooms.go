package handler

import (
	"net/http"

	"frontdesk/internal/apierror"
	"frontdesk/internal/dto"
	"frontdesk/internal/model"
	"frontdesk/internal/repository"

	"github.com/gin-gonic/gin"
)

type RoomsHandler struct{ repo repository.RoomConfigRepository }

func NewRoomsHandler(repo repository.RoomConfigRepository) *RoomsHandler {
	return &RoomsHandler{repo: repo}
}

func (h *RoomsHandler) List(c *gin.Context) {
	configs, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list rooms"))
		return
	}
	c.JSON(http.StatusOK, configs)
}

func (h *RoomsHandler) Upsert(c *gin.Context) {
	room := c.Param("room")
	if room == "" {
		c.JSON(http.StatusBadRequest, apierror.New("room number required"))
		return
	}
	var req dto.UpsertRoomRequest
	if !bindAndValidate(c, &req) {
		return
	}
	rc := &model.RoomConfig{
		RoomNumber: room,
		BedCount:   req.BedCount,
		Floor:      req.Floor,
		Wing:       req.Wing,
	}
	if err := h.repo.Upsert(c.Request.Context(), rc); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to save room"))
		return
	}
	c.JSON(http.StatusOK, rc)
}
