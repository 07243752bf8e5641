package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/maxviazov/buddyfinder-service/internal/service"
)

// Services groups the use cases exposed over HTTP.
type Services struct {
	Matches    service.MatchService
	Profiles   service.ProfileService
	Sports     service.SportService
	UserSports service.UserSportService
}

// Register mounts all public routes on the given engine.
// Everything under the API prefix except health probes requires a verified caller.
func Register(r *gin.Engine, repo Pinger, verifier TokenVerifier, svc Services) {
	h := NewHealthHandler(repo)

	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	RegisterDocs(r)

	api := r.Group(APIV1Prefix)
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}

		secured := api.Group("", RequireUser(verifier))
		NewMatchHandler(svc.Matches).Register(secured)
		NewSportHandler(svc.Sports).Register(secured)
		NewProfileHandler(svc.Profiles).Register(secured)
		NewUserSportHandler(svc.UserSports).Register(secured)
	}
}
