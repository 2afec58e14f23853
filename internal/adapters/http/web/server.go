// Package web serves the server-rendered pages, their JSON twins and the
// operational endpoints.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/skillcard/internal/adapters/backend"
	"github.com/okian/skillcard/internal/adapters/session"
	"github.com/okian/skillcard/internal/domain/model"
	"github.com/okian/skillcard/internal/domain/profileview"
	"github.com/okian/skillcard/pkg/logger"
	"github.com/okian/skillcard/pkg/metrics"
)

// Backend is the remote profile API as seen by the handlers.
// backend.Client satisfies it.
type Backend interface {
	profileview.Fetcher

	Login(ctx context.Context, creds model.LoginCredentials) (model.LoginResult, error)
	Register(ctx context.Context, req model.RegistrationRequest) error
}

// Server wires HTTP routes for the web application.
type Server struct {
	api            Backend
	sessions       session.Store
	render         *renderer
	logger         logger.Logger
	theme          Theme
	cookieName     string
	avatarTemplate string
}

// NewServer creates a server. Templates are parsed up front so a broken
// template fails startup rather than a request.
func NewServer(api Backend, opts ...Option) (*Server, error) {
	if api == nil {
		return nil, errors.New("web: backend is nil")
	}

	s := &Server{
		api:            api,
		logger:         logger.Nop(),
		theme:          DefaultTheme(),
		cookieName:     defaultCookieName,
		avatarTemplate: defaultAvatarURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sessions == nil {
		s.sessions = session.NewInMemoryStore(session.WithViewFactory(s.NewProfileView))
	}

	r, err := newRenderer(s.theme)
	if err != nil {
		return nil, err
	}
	s.render = r
	return s, nil
}

// NewProfileView builds the per-session profile view over this server's backend.
func (s *Server) NewProfileView() *profileview.View {
	return profileview.New(s.api, profileview.WithLogger(s.logger.Named("profileview")))
}

// Register attaches all routes to router.
func (s *Server) Register(_ context.Context, router *mux.Router) {
	if router == nil {
		panic("router is nil")
	}

	router.Use(s.LoggingMiddleware)

	router.HandleFunc("/", MetricsMiddleware(s.handleLoginPage, "login")).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc("/", MetricsMiddleware(s.handleLoginSubmit, "login")).Methods(http.MethodPost)
	router.HandleFunc("/register", MetricsMiddleware(s.handleRegisterPage, "register")).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc("/register", MetricsMiddleware(s.handleRegisterSubmit, "register")).Methods(http.MethodPost)
	router.HandleFunc("/profile/{username}", MetricsMiddleware(s.withSession(s.handleProfilePage), "profile")).Methods(http.MethodGet, http.MethodHead)

	router.HandleFunc("/api/profile/{username}", MetricsMiddleware(s.withSession(s.handleProfileJSON), "api_profile")).Methods(http.MethodGet)
	router.HandleFunc("/api/view/profile", MetricsMiddleware(s.withSession(s.handleCurrentProfileJSON), "api_view_profile")).Methods(http.MethodGet)

	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc("/healthz", MetricsMiddleware(s.handleHealth, "healthz")).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})).Methods(http.MethodGet)

	// Router middleware does not run for unmatched requests, so wrap by hand.
	notFound := s.LoggingMiddleware(MetricsMiddleware(s.handleNotFound, "not_found"))
	router.NotFoundHandler = notFound
	router.MethodNotAllowedHandler = notFound
}

// Handler returns a ready router with every route registered.
func (s *Server) Handler(ctx context.Context) http.Handler {
	router := mux.NewRouter()
	s.Register(ctx, router)
	return router
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Size(),
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.page(w, r, http.StatusNotFound, pageNotFound, nil)
}

// page renders a template and falls back to a plain 500 when rendering fails.
func (s *Server) page(w http.ResponseWriter, r *http.Request, status int, name string, body any) {
	if err := s.render.render(w, status, name, body); err != nil {
		s.logger.Error(r.Context(), "render failed", logger.String("page", name), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// failureStatus maps a backend error onto the status of the re-rendered page.
func failureStatus(err error) int {
	var se *backend.StatusError
	if errors.As(err, &se) && se.StatusCode >= 400 && se.StatusCode < 500 {
		return se.StatusCode
	}
	return http.StatusBadGateway
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	if msg == "" {
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
