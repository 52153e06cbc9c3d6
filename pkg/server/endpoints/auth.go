package endpoints

import (
	"errors"
	"net/http"

	"github.com/ciphermind/ciphermind/pkg/model"
	"github.com/ciphermind/ciphermind/pkg/server"
	"github.com/ciphermind/ciphermind/pkg/server/middleware"
)

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Username string     `json:"username"`
	Password string     `json:"password"`
	Role     model.Role `json:"role"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the session token issued on login.
type LoginResponse struct {
	Token string `json:"token"`
}

// RegisterAuthEndpoints registers /register and /login. Both are
// reachable without a token: login by nature, register because the
// first admin is created before any token can exist. The core enforces
// the admin requirement for every registration after that.
func RegisterAuthEndpoints(s *server.Server) {
	s.Router.HandleFunc("/register", handleRegister(s.Vault)).Methods("POST")
	s.Router.HandleFunc("/login", handleLogin(s.Vault)).Methods("POST")
}

func handleRegister(v server.Vault) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		err := v.Register(r.Context(), middleware.BearerToken(r), req.Username, req.Password, req.Role)
		if err != nil {
			// A storage failure on register is almost always a
			// username collision.
			if errors.Is(err, model.ErrStore) {
				respondWithError(w, http.StatusConflict, err.Error())
				return
			}
			respondWithDomainError(w, err)
			return
		}

		respondWithJSON(w, http.StatusCreated, map[string]string{
			"username": req.Username,
			"role":     string(req.Role),
		})
	}
}

func handleLogin(v server.Vault) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		token, err := v.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, LoginResponse{Token: token})
	}
}
