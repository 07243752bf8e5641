package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/buddyfinder-service/internal/service"
	"github.com/maxviazov/buddyfinder-service/pkg/response"
)

type MatchHandler struct {
	svc service.MatchService
}

func NewMatchHandler(svc service.MatchService) *MatchHandler { return &MatchHandler{svc: svc} }

func (h *MatchHandler) Register(r *gin.RouterGroup) {
	r.GET("/matches", h.list)
}

// list serves GET /matches?limit=&offset=. Only the first occurrence of each key is read.
func (h *MatchHandler) list(c *gin.Context) {
	w, err := service.ParseWindow(c.Query("limit"), c.Query("offset"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	page, err := h.svc.GetMatches(c.Request.Context(), UserID(c), w)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, page)
}
