// README: Trip planning handlers (quick plan, guided itinerary, health).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"atlas/internal/llm"
	"atlas/internal/modules/profile"
	"atlas/internal/modules/trip"
	"atlas/internal/planner"
)

type TripHandler struct {
	planner  *planner.Planner
	provider llm.Provider
}

func NewTripHandler(p *planner.Planner, provider llm.Provider) *TripHandler {
	return &TripHandler{planner: p, provider: provider}
}

type planReq struct {
	Destination string   `json:"destination"`
	Days        int      `json:"days"`
	Interests   []string `json:"interests"`
	Budget      float64  `json:"budget"`
	People      int      `json:"people"`
}

// Plan runs the quick flow: one prompt, one model answer, returned verbatim.
func (h *TripHandler) Plan(c *gin.Context) {
	var req planReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json", "")
		return
	}

	itinerary, err := h.planner.Plan(c.Request.Context(), trip.Request{
		Destination: req.Destination,
		Days:        req.Days,
		Interests:   req.Interests,
		Budget:      req.Budget,
		People:      req.People,
	})
	if err != nil {
		writePlanError(c, err, planner.Guidance(err))
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"destination": req.Destination,
		"days":        req.Days,
		"itinerary":   itinerary,
	})
}

type itineraryReq struct {
	Profile profile.TravelProfile `json:"profile"`
	Days    int                   `json:"days"`
}

// Itinerary runs the guided pipeline for an already finalized travel profile.
func (h *TripHandler) Itinerary(c *gin.Context) {
	var req itineraryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json", "")
		return
	}
	if req.Profile.ChosenCity == "" {
		writeError(c, http.StatusBadRequest, "profile.chosen_city is required", "")
		return
	}

	result, err := h.planner.BuildItinerary(c.Request.Context(), req.Profile, req.Days)
	if err != nil {
		writePlanError(c, err, planner.Guidance(err))
		return
	}
	writeJSON(c, http.StatusOK, result)
}

// Health reports whether the model endpoint answers.
func (h *TripHandler) Health(c *gin.Context) {
	if err := h.provider.HealthCheck(c.Request.Context()); err != nil {
		writeJSON(c, http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": "ok"})
}
