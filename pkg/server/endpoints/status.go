package endpoints

import (
	"net/http"
	"os"

	"github.com/ciphermind/ciphermind/pkg/server"
	"github.com/ciphermind/ciphermind/pkg/server/middleware"
)

// StatusResponse is the body of GET /health.
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// RegisterStatusEndpoints registers the health probe. No auth: load
// balancers and orchestrators hit it before any credentials exist.
func RegisterStatusEndpoints(s *server.Server) {
	s.Router.HandleFunc("/health", handleStatus(s)).Methods("GET")
}

func handleStatus(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version := os.Getenv("CIPHERMIND_VERSION_DISPLAY")
		if version == "" {
			version = "0.1.0"
		}

		if s.Health != nil {
			if err := s.Health(r.Context()); err != nil {
				respondWithJSON(w, http.StatusServiceUnavailable, StatusResponse{Status: "unavailable", Version: version})
				return
			}
		}

		respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok", Version: version})
	}
}

// RegisterAll wires every API route onto the server.
func RegisterAll(s *server.Server, auth *middleware.Authenticator) {
	RegisterAuthEndpoints(s)
	RegisterSecretsEndpoints(s, auth)
	RegisterAuditEndpoints(s, auth)
	RegisterStatusEndpoints(s)
}
