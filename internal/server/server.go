// Package server wires the services into an HTTP API for the browser client
// and the admin dashboard.
package server

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/scavhunt/internal/auth"
	"github.com/mmynk/scavhunt/internal/middleware"
	"github.com/mmynk/scavhunt/internal/qr"
	"github.com/mmynk/scavhunt/internal/realtime"
	"github.com/mmynk/scavhunt/internal/service"
)

// Server holds the handlers' dependencies.
type Server struct {
	users    *service.UserService
	admin    *service.AdminService
	game     *service.GameService
	sessions *auth.SessionManager
	verifier *qr.Verifier
	hub      *realtime.Hub

	// mediaRoot, when non-empty, is served under /media/ for the local
	// media store. The S3 store serves its own URLs.
	mediaRoot string

	version string
}

// New creates a Server. mediaRoot may be empty when media is remote.
func New(
	users *service.UserService,
	admin *service.AdminService,
	game *service.GameService,
	sessions *auth.SessionManager,
	verifier *qr.Verifier,
	hub *realtime.Hub,
	mediaRoot string,
	version string,
) *Server {
	return &Server{
		users:     users,
		admin:     admin,
		game:      game,
		sessions:  sessions,
		verifier:  verifier,
		hub:       hub,
		mediaRoot: mediaRoot,
		version:   version,
	}
}

// Router builds the route table and wraps it in the middleware stack.
func (s *Server) Router() http.Handler {
	mux := httprouter.New()

	mux.POST("/api/users/register", s.handleRegister)
	mux.POST("/api/users/login", s.handleLogin)

	withSession := func(h httprouter.Handle) httprouter.Handle {
		return middleware.RequireSession(s.sessions, h)
	}

	mux.GET("/api/game/state", withSession(s.handleGameState))
	mux.POST("/api/game/photo", withSession(s.handleGroupPhoto))
	mux.POST("/api/game/answer", withSession(s.handleAnswer))
	mux.POST("/api/game/location", withSession(s.handleAssembly))
	mux.POST("/api/game/qr", withSession(s.handleQR))

	mux.GET("/api/admin/state", s.handleAdminState)
	mux.POST("/api/admin/start", s.handleAdminStart)
	mux.POST("/api/admin/stop", s.handleAdminStop)
	mux.GET("/api/admin/qr.png", s.handleAdminQRCode)

	mux.GET("/ws", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		s.hub.ServeWS(w, r)
	})

	mux.GET("/healthz", s.handleHealth)
	mux.GET("/version", s.handleVersion)
	mux.Handler(http.MethodGet, "/metrics", promhttp.Handler())

	if s.mediaRoot != "" {
		mux.ServeFiles("/media/*filepath", http.Dir(s.mediaRoot))
	}

	return middleware.Logging(middleware.CORS(mux))
}
