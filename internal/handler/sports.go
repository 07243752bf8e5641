package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/buddyfinder-service/internal/service"
	"github.com/maxviazov/buddyfinder-service/pkg/response"
)

type SportHandler struct {
	svc service.SportService
}

func NewSportHandler(svc service.SportService) *SportHandler { return &SportHandler{svc: svc} }

func (h *SportHandler) Register(r *gin.RouterGroup) {
	r.GET("/sports", h.list)
}

func (h *SportHandler) list(c *gin.Context) {
	sports, err := h.svc.ListSports(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	response.WriteData(c, http.StatusOK, sports)
}
