package web

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/okian/skillcard/internal/adapters/session"
	"github.com/okian/skillcard/internal/domain/model"
	"github.com/okian/skillcard/internal/domain/profileview"
	"github.com/okian/skillcard/internal/domain/radar"
)

type profileBody struct {
	State    string
	Username string
	User     *model.User
	Chart    radar.Chart
	Err      string
}

// snapshotStatus maps a view state onto the response status.
func snapshotStatus(snap profileview.Snapshot) int {
	if snap.State != profileview.Error {
		return http.StatusOK
	}
	if snap.Err == profileview.MsgNotFound {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

// enterProfile restarts the session's profile view for the routed username.
func (s *Server) enterProfile(r *http.Request) (profileview.Snapshot, bool) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		return profileview.Snapshot{}, false
	}
	return sess.Profile.Enter(r.Context(), mux.Vars(r)["username"]), true
}

// handleProfilePage handles GET /profile/{username} requests.
func (s *Server) handleProfilePage(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.enterProfile(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	s.page(w, r, snapshotStatus(snap), pageProfile, profileBody{
		State:    snap.State.String(),
		Username: snap.Username,
		User:     snap.User,
		Chart:    snap.Chart,
		Err:      snap.Err,
	})
}

// handleProfileJSON handles GET /api/profile/{username} requests.
func (s *Server) handleProfileJSON(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.enterProfile(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "no_session", "")
		return
	}
	writeJSON(w, snapshotStatus(snap), snap)
}

// handleCurrentProfileJSON handles GET /api/view/profile requests: the
// committed view of this session, without fetching.
func (s *Server) handleCurrentProfileJSON(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusInternalServerError, "no_session", "")
		return
	}
	writeJSON(w, http.StatusOK, sess.Profile.Current())
}
