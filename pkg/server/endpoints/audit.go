package endpoints

import (
	"net/http"

	"github.com/ciphermind/ciphermind/pkg/server"
	"github.com/ciphermind/ciphermind/pkg/server/middleware"
)

// RegisterAuditEndpoints registers the audit trail route. Read
// access is limited to admins and auditors; the core enforces it.
func RegisterAuditEndpoints(s *server.Server, auth *middleware.Authenticator) {
	auditRouter := s.Router.PathPrefix("/audit").Subrouter()
	auditRouter.Use(auth.Middleware)

	auditRouter.HandleFunc("", handleListAudit(s.Vault)).Methods("GET")
}

func handleListAudit(v server.Vault) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := v.ListAudit(r.Context(), middleware.BearerToken(r))
		if err != nil {
			respondWithDomainError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, events)
	}
}
