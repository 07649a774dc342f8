// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"atlas/internal/llm"
	"atlas/internal/modules/trip"
)

type errorResponse struct {
	Error string `json:"error"`
	Hint  string `json:"hint,omitempty"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg, hint string) {
	writeJSON(c, status, errorResponse{Error: msg, Hint: hint})
}

// writePlanError maps pipeline errors onto HTTP statuses. Validation problems
// are the caller's fault; upstream model problems surface as gateway errors.
func writePlanError(c *gin.Context, err error, hint string) {
	switch {
	case errors.Is(err, trip.ErrEmptyDestination), errors.Is(err, trip.ErrInvalidDuration):
		writeError(c, http.StatusBadRequest, err.Error(), hint)
	case errors.Is(err, llm.ErrEndpointUnavailable):
		writeError(c, http.StatusServiceUnavailable, err.Error(), hint)
	case errors.Is(err, llm.ErrModelNotFound), errors.Is(err, llm.ErrEmptyResponse):
		writeError(c, http.StatusBadGateway, err.Error(), hint)
	default:
		writeError(c, http.StatusInternalServerError, "internal error", "")
	}
}
