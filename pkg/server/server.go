package server

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/ciphermind/ciphermind/pkg/logger"
	"github.com/ciphermind/ciphermind/pkg/model"
	"github.com/ciphermind/ciphermind/pkg/vault"
)

// Vault is the surface of the core the HTTP layer drives. Every
// operation takes the caller's raw session token; the core owns
// verification and access decisions.
type Vault interface {
	Register(ctx context.Context, authToken, username, password string, role model.Role) error
	Login(ctx context.Context, username, password string) (string, error)
	StoreSecret(ctx context.Context, authToken, name, value string) error
	ListSecrets(ctx context.Context, authToken string) ([]vault.SecretInfo, error)
	ReadSecret(ctx context.Context, authToken, name string) (string, error)
	RotateSecret(ctx context.Context, authToken, name string) (string, error)
	ListAudit(ctx context.Context, authToken string) ([]model.AuditEvent, error)
}

// Server serves the vault API over HTTP.
type Server struct {
	Vault  Vault
	Log    *logger.Logger
	Router *mux.Router
	// Health reports backend readiness, typically a database ping.
	// Nil means always ready.
	Health func(ctx context.Context) error
	srv    *http.Server
}

// NewServer creates a Server listening on addr.
func NewServer(v Vault, log *logger.Logger, addr string) *Server {
	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, router),
		Addr:    addr,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Vault:  v,
		Log:    log,
		Router: router,
		srv:    srv,
	}
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
