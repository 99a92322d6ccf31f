package api

import (
	"net/http"

	"github.com/ncert-revision/revision-api/internal/api/shared"
)

const welcomeMessage = "Welcome to NCERT Smart Revision API"

// Root handles GET /.
func Root(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: welcomeMessage})
}

// Health handles GET /health.
func Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
}
