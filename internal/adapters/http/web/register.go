package web

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/okian/skillcard/internal/adapters/backend"
	"github.com/okian/skillcard/internal/domain/draft"
	"github.com/okian/skillcard/internal/domain/model"
	"github.com/okian/skillcard/pkg/logger"
	"github.com/okian/skillcard/pkg/metrics"
)

const msgRegistrationFailed = "Registration failed"

// Form actions posted by the registration page.
const (
	actionAdd    = "add"
	actionSubmit = "submit"
)

type skillRow struct {
	Index int
	Name  string
	Level string
}

type registerBody struct {
	Username  string
	Password  string
	Name      string
	Position  string
	Skills    []skillRow
	CanRemove bool
	Error     string
}

func newRegisterBody(d draft.Registration, errMsg string) registerBody {
	skills := d.Skills()
	rows := make([]skillRow, len(skills))
	for i, sk := range skills {
		rows[i] = skillRow{Index: i, Name: sk.Name, Level: strconv.FormatFloat(sk.Level, 'f', -1, 64)}
	}
	return registerBody{
		Username:  d.Username(),
		Password:  d.Password(),
		Name:      d.Name(),
		Position:  d.Position(),
		Skills:    rows,
		CanRemove: d.CanRemoveSkill(),
		Error:     errMsg,
	}
}

// handleRegisterPage handles GET /register requests with an empty draft.
func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	s.page(w, r, http.StatusOK, pageRegister, newRegisterBody(draft.New(), ""))
}

// handleRegisterSubmit handles POST /register. The form posts the whole
// draft on every action; only "submit" reaches the backend.
func (s *Server) handleRegisterSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.page(w, r, http.StatusBadRequest, pageRegister, newRegisterBody(draft.New(), msgRegistrationFailed))
		return
	}

	d, parseErr := draftFromForm(r.PostForm)

	if idx := r.PostForm.Get("remove"); idx != "" {
		if i, err := strconv.Atoi(idx); err == nil {
			d = d.RemoveSkill(i)
		}
		s.page(w, r, http.StatusOK, pageRegister, newRegisterBody(d, ""))
		return
	}

	action := r.PostForm.Get("action")
	if action == actionAdd {
		s.page(w, r, http.StatusOK, pageRegister, newRegisterBody(d.AddSkill(), ""))
		return
	}
	if action != "" && action != actionSubmit {
		s.page(w, r, http.StatusBadRequest, pageRegister, newRegisterBody(d, msgRegistrationFailed))
		return
	}

	if parseErr != nil {
		metrics.RecordRegistration(metrics.OutcomeRejected)
		s.page(w, r, http.StatusBadRequest, pageRegister, newRegisterBody(d, parseErr.Error()))
		return
	}
	if err := d.Validate(); err != nil {
		metrics.RecordRegistration(metrics.OutcomeRejected)
		s.page(w, r, http.StatusBadRequest, pageRegister, newRegisterBody(d, validationMessage(err)))
		return
	}

	req := d.Request()
	req.AvatarURL = s.avatarURL(req.Username)

	if err := s.api.Register(r.Context(), req); err != nil {
		outcome := metrics.OutcomeTransport
		if errors.Is(err, backend.ErrStatus) {
			outcome = metrics.OutcomeRejected
		}
		metrics.RecordRegistration(outcome)
		s.logger.Info(r.Context(), "registration failed",
			logger.String("username", req.Username),
			logger.Error(err),
		)
		s.page(w, r, failureStatus(err), pageRegister, newRegisterBody(d, backend.Message(err, msgRegistrationFailed)))
		return
	}

	metrics.RecordRegistration(metrics.OutcomeSuccess)
	s.logger.Info(r.Context(), "user registered", logger.String("username", req.Username))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// draftFromForm rebuilds the draft from posted fields. Skill rows pair
// skill_name[i] with skill_level[i]. A level that does not parse keeps the
// default and is reported through the returned error.
func draftFromForm(form url.Values) (draft.Registration, error) {
	d := draft.New().
		WithUsername(strings.TrimSpace(form.Get("username"))).
		WithPassword(form.Get("password")).
		WithName(strings.TrimSpace(form.Get("name"))).
		WithPosition(strings.TrimSpace(form.Get("position")))

	names := form["skill_name"]
	levels := form["skill_level"]
	rows := max(len(names), len(levels))

	var firstErr error
	for i := range rows {
		if i > 0 {
			d = d.AddSkill()
		}
		if i < len(names) {
			d = d.WithSkillName(i, strings.TrimSpace(names[i]))
		}
		if i >= len(levels) {
			continue
		}
		level, err := strconv.ParseFloat(strings.TrimSpace(levels[i]), 64)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("Skill %d level must be a number", i+1) //nolint:staticcheck // user-facing sentence
			}
			continue
		}
		d = d.WithSkillLevel(i, level)
	}
	return d, firstErr
}

func validationMessage(err error) string {
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return msgRegistrationFailed
}

func (s *Server) avatarURL(username string) string {
	if s.avatarTemplate == "" {
		return ""
	}
	return strings.ReplaceAll(s.avatarTemplate, "{username}", url.QueryEscape(username))
}
