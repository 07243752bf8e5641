package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/buddyfinder-service/internal/model"
	"github.com/maxviazov/buddyfinder-service/internal/service"
	"github.com/maxviazov/buddyfinder-service/pkg/response"
)

type UserSportHandler struct {
	svc service.UserSportService
}

func NewUserSportHandler(svc service.UserSportService) *UserSportHandler {
	return &UserSportHandler{svc: svc}
}

func (h *UserSportHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/profiles/me/sports")
	{
		g.GET("", h.list)
		g.POST("", h.add)
		g.PUT("/:sport_id", h.update)
		g.DELETE("/:sport_id", h.remove)
	}
}

type addUserSportRequest struct {
	SportID       int64                 `json:"sport_id"`
	Parameters    model.SportParameters `json:"parameters"`
	CustomRangeKm *int                  `json:"custom_range_km"`
}

// custom_range_km stays raw so an explicit null can clear the value.
type updateUserSportRequest struct {
	Parameters    model.SportParameters `json:"parameters"`
	CustomRangeKm json.RawMessage       `json:"custom_range_km"`
}

func (r updateUserSportRequest) toUpdate() (model.UserSportUpdate, error) {
	u := model.UserSportUpdate{Parameters: r.Parameters}
	switch string(r.CustomRangeKm) {
	case "":
	case "null":
		u.ClearCustomRange = true
	default:
		var v int
		if err := json.Unmarshal(r.CustomRangeKm, &v); err != nil {
			return u, service.NewInvalidInput("custom_range_km", "must be an integer or null")
		}
		u.CustomRangeKm = &v
	}
	return u, nil
}

func (h *UserSportHandler) list(c *gin.Context) {
	out, err := h.svc.ListUserSports(c.Request.Context(), UserID(c))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, out)
}

func (h *UserSportHandler) add(c *gin.Context) {
	var req addUserSportRequest
	if err := bindStrict(c, &req); err != nil {
		response.WriteError(c, err)
		return
	}
	out, err := h.svc.AddUserSport(c.Request.Context(), UserID(c), model.UserSport{
		SportID:       req.SportID,
		Parameters:    req.Parameters,
		CustomRangeKm: req.CustomRangeKm,
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, out)
}

func (h *UserSportHandler) update(c *gin.Context) {
	sportID, err := service.ParseSportID(c.Param("sport_id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	var req updateUserSportRequest
	if err := bindStrict(c, &req); err != nil {
		response.WriteError(c, err)
		return
	}
	u, err := req.toUpdate()
	if err != nil {
		response.WriteError(c, err)
		return
	}
	out, err := h.svc.UpdateUserSport(c.Request.Context(), UserID(c), sportID, u)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, out)
}

func (h *UserSportHandler) remove(c *gin.Context) {
	sportID, err := service.ParseSportID(c.Param("sport_id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	if err := h.svc.RemoveUserSport(c.Request.Context(), UserID(c), sportID); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
