package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/buddyfinder-service/internal/model"
	"github.com/maxviazov/buddyfinder-service/internal/service"
	"github.com/maxviazov/buddyfinder-service/pkg/response"
)

type ProfileHandler struct {
	svc service.ProfileService
}

func NewProfileHandler(svc service.ProfileService) *ProfileHandler { return &ProfileHandler{svc: svc} }

func (h *ProfileHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/profiles/me")
	{
		g.GET("", h.get)
		g.PATCH("", h.patch)
	}
}

type patchProfileRequest struct {
	DisplayName    *string           `json:"display_name"`
	Location       *model.GeoPoint   `json:"location"`
	DefaultRangeKm *int              `json:"default_range_km"`
	SocialLinks    map[string]string `json:"social_links"`
}

func (h *ProfileHandler) get(c *gin.Context) {
	p, err := h.svc.GetProfile(c.Request.Context(), UserID(c))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, p)
}

func (h *ProfileHandler) patch(c *gin.Context) {
	var req patchProfileRequest
	if err := bindStrict(c, &req); err != nil {
		response.WriteError(c, err)
		return
	}
	p, err := h.svc.UpdateProfile(c.Request.Context(), UserID(c), model.ProfileUpdate{
		DisplayName:    req.DisplayName,
		Location:       req.Location,
		DefaultRangeKm: req.DefaultRangeKm,
		SocialLinks:    req.SocialLinks,
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, p)
}
