package web

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/okian/skillcard/internal/adapters/backend"
	"github.com/okian/skillcard/internal/domain/model"
	"github.com/okian/skillcard/pkg/logger"
	"github.com/okian/skillcard/pkg/metrics"
)

// Login view messages.
const (
	msgLoginRequired = "Username and password are required"
	msgLoginFailed   = "Login failed"
)

type loginBody struct {
	Username string
	Error    string
}

// handleLoginPage handles GET / requests.
func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.page(w, r, http.StatusOK, pageLogin, loginBody{})
}

// handleLoginSubmit handles POST / requests. Success redirects to the
// user's profile; failure re-renders the form with the username kept.
func (s *Server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.page(w, r, http.StatusBadRequest, pageLogin, loginBody{Error: msgLoginRequired})
		return
	}

	creds := model.LoginCredentials{
		Username: strings.TrimSpace(r.PostForm.Get("username")),
		Password: r.PostForm.Get("password"),
	}
	body := loginBody{Username: creds.Username}

	if err := model.Validate(creds); err != nil {
		metrics.RecordLogin(metrics.OutcomeRejected)
		body.Error = msgLoginRequired
		s.page(w, r, http.StatusBadRequest, pageLogin, body)
		return
	}

	if _, err := s.api.Login(r.Context(), creds); err != nil {
		outcome := metrics.OutcomeTransport
		if errors.Is(err, backend.ErrStatus) {
			outcome = metrics.OutcomeRejected
		}
		metrics.RecordLogin(outcome)
		s.logger.Info(r.Context(), "login failed",
			logger.String("username", creds.Username),
			logger.Error(err),
		)
		body.Error = backend.Message(err, msgLoginFailed)
		s.page(w, r, failureStatus(err), pageLogin, body)
		return
	}

	metrics.RecordLogin(metrics.OutcomeSuccess)
	http.Redirect(w, r, "/profile/"+url.PathEscape(creds.Username), http.StatusSeeOther)
}
