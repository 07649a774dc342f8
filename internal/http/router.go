// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"atlas/internal/http/handlers"
	"atlas/internal/http/middleware"
	"atlas/internal/llm"
	"atlas/internal/planner"
)

func NewRouter(p *planner.Planner, provider llm.Provider, log zerolog.Logger) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Logging(log), middleware.Recovery(log))

	tripHandler := handlers.NewTripHandler(p, provider)
	r.POST("/api/trips/plan", tripHandler.Plan)
	r.POST("/api/trips/itinerary", tripHandler.Itinerary)
	r.GET("/health", tripHandler.Health)

	return r
}
