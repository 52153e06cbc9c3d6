package endpoints

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/ciphermind/ciphermind/pkg/server"
	"github.com/ciphermind/ciphermind/pkg/server/middleware"
)

// StoreSecretRequest is the body of POST /secrets.
type StoreSecretRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SecretResponse carries a secret's plaintext back to the caller.
type SecretResponse struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// RegisterSecretsEndpoints registers the secret CRUD and rotation
// routes. All of them require a valid session token.
func RegisterSecretsEndpoints(s *server.Server, auth *middleware.Authenticator) {
	secretsRouter := s.Router.PathPrefix("/secrets").Subrouter()
	secretsRouter.Use(auth.Middleware)

	secretsRouter.HandleFunc("", handleStoreSecret(s.Vault)).Methods("POST")
	secretsRouter.HandleFunc("", handleListSecrets(s.Vault)).Methods("GET")
	secretsRouter.HandleFunc("/{name}", handleReadSecret(s.Vault)).Methods("GET")
	secretsRouter.HandleFunc("/{name}/rotate", handleRotateSecret(s.Vault)).Methods("POST")
}

func handleStoreSecret(v server.Vault) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req StoreSecretRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		if err := v.StoreSecret(r.Context(), middleware.BearerToken(r), req.Name, req.Value); err != nil {
			respondWithDomainError(w, err)
			return
		}

		respondWithJSON(w, http.StatusCreated, map[string]string{"name": req.Name})
	}
}

func handleListSecrets(v server.Vault) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		infos, err := v.ListSecrets(r.Context(), middleware.BearerToken(r))
		if err != nil {
			respondWithDomainError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, infos)
	}
}

func handleReadSecret(v server.Vault) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, ok := secretName(w, r)
		if !ok {
			return
		}

		value, err := v.ReadSecret(r.Context(), middleware.BearerToken(r), name)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, SecretResponse{Name: name, Value: value})
	}
}

func handleRotateSecret(v server.Vault) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, ok := secretName(w, r)
		if !ok {
			return
		}

		value, err := v.RotateSecret(r.Context(), middleware.BearerToken(r), name)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, SecretResponse{Name: name, Value: value})
	}
}

// secretName extracts and unescapes the {name} path variable. Names
// may contain slashes when percent-encoded.
func secretName(w http.ResponseWriter, r *http.Request) (string, bool) {
	name, err := url.PathUnescape(mux.Vars(r)["name"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "malformed secret name")
		return "", false
	}
	return name, true
}
