package smoke

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/skillcard/internal/domain/model"
	"github.com/okian/skillcard/pkg/logger"
)

// memoryAPI is an in-memory stand-in for the remote profile API.
type memoryAPI struct {
	mu    sync.Mutex
	users map[string]model.RegistrationRequest
	// dropSkill makes profiles lose their last skill.
	dropSkill bool
}

func (m *memoryAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /register", func(w http.ResponseWriter, r *http.Request) {
		var req model.RegistrationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}
		m.mu.Lock()
		defer m.mu.Unlock()
		if _, ok := m.users[req.Username]; ok {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"detail":"Username already registered"}`)
			return
		}
		m.users[req.Username] = req
		_, _ = io.WriteString(w, `{"message":"User registered successfully"}`)
	})
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		var creds model.LoginCredentials
		_ = json.NewDecoder(r.Body).Decode(&creds)
		m.mu.Lock()
		u, ok := m.users[creds.Username]
		m.mu.Unlock()
		if !ok || u.Password != creds.Password {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"detail":"Invalid credentials"}`)
			return
		}
		_, _ = io.WriteString(w, `{"message":"Login successful"}`)
	})
	mux.HandleFunc("GET /profile/{username}", func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		u, ok := m.users[r.PathValue("username")]
		m.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		skills := u.Skills
		if m.dropSkill && len(skills) > 0 {
			skills = skills[:len(skills)-1]
		}
		_ = json.NewEncoder(w).Encode(model.User{
			ID: 1, Username: u.Username, Name: u.Name, Position: u.Position,
			AvatarURL: u.AvatarURL, Skills: skills,
		})
	})
	return mux
}

func TestRun(t *testing.T) {
	Convey("Given an in-memory profile API", t, func() {
		So(logger.Init(logger.WithWriter(io.Discard)), ShouldBeNil)
		api := &memoryAPI{users: map[string]model.RegistrationRequest{}}
		srv := httptest.NewServer(api.handler())
		defer srv.Close()

		cfg := &Config{
			BaseURL:       srv.URL,
			Users:         20,
			SkillsPerUser: 3,
			Workers:       4,
			Timeout:       2 * time.Second,
			AvatarURL:     "https://avatars.example/{username}.svg",
		}

		Convey("When the API round-trips every profile", func() {
			stats, err := Run(context.Background(), cfg)

			Convey("Then every user is verified", func() {
				So(err, ShouldBeNil)
				So(stats.UsersGenerated, ShouldEqual, 20)
				So(stats.Registered, ShouldEqual, 20)
				So(stats.LoggedIn, ShouldEqual, 20)
				So(stats.ProfilesVerified, ShouldEqual, 20)
				So(stats.Failed(), ShouldBeFalse)
				So(api.users, ShouldHaveLength, 20)
			})
		})

		Convey("When the API loses a skill", func() {
			api.dropSkill = true
			stats, err := Run(context.Background(), cfg)

			Convey("Then the run fails on verification", func() {
				So(errors.Is(err, ErrSmokeFailed), ShouldBeTrue)
				So(stats.ProfilesFailed, ShouldEqual, 20)
				So(stats.ProfilesVerified, ShouldEqual, 0)
			})
		})
	})

	Convey("Given an unreachable API", t, func() {
		So(logger.Init(logger.WithWriter(io.Discard)), ShouldBeNil)
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		stats, err := Run(context.Background(), &Config{BaseURL: url, Users: 3, Workers: 2, Timeout: time.Second})

		Convey("Then registrations fail and the run reports it", func() {
			So(errors.Is(err, ErrSmokeFailed), ShouldBeTrue)
			So(stats.RegisterFailed, ShouldEqual, 3)
		})
	})
}

func TestGenerateUsers(t *testing.T) {
	Convey("Given generated users", t, func() {
		users := generateUsers(50, 4, "https://a.example/{username}")

		Convey("Then they are valid registrations with unique usernames", func() {
			seen := map[string]bool{}
			for _, u := range users {
				So(model.Validate(u), ShouldBeNil)
				So(u.Skills, ShouldHaveLength, 4)
				So(u.AvatarURL, ShouldEqual, "https://a.example/"+u.Username)
				So(seen[u.Username], ShouldBeFalse)
				seen[u.Username] = true
			}
		})
	})

	Convey("Given out-of-range skill counts", t, func() {
		So(generateUsers(1, 0, "")[0].Skills, ShouldHaveLength, 1)
		So(generateUsers(1, 99, "")[0].Skills, ShouldHaveLength, len(skillNames))
	})
}

func TestVerifyProfile(t *testing.T) {
	Convey("Given a registration", t, func() {
		sent := model.RegistrationRequest{
			Username: "u", Name: "N", Position: "P",
			Skills: []model.Skill{{Name: "Go", Level: 0.4}, {Name: "SQL", Level: 1}},
		}
		got := model.User{Username: "u", Name: "N", Position: "P", Skills: sent.Skills}

		Convey("Then a faithful profile passes", func() {
			So(verifyProfile(sent, got), ShouldBeNil)
		})

		Convey("Then a changed level fails", func() {
			got.Skills = []model.Skill{{Name: "Go", Level: 0.5}, {Name: "SQL", Level: 1}}
			So(errors.Is(verifyProfile(sent, got), errMismatch), ShouldBeTrue)
		})

		Convey("Then a changed name fails", func() {
			got.Name = "Other"
			So(errors.Is(verifyProfile(sent, got), errMismatch), ShouldBeTrue)
		})
	})
}

func TestSetupLogging(t *testing.T) {
	Convey("Given a log file path", t, func() {
		path := filepath.Join(t.TempDir(), "smoke.log")
		defer func() { _ = logger.Init(logger.WithWriter(io.Discard)) }()

		closer, err := SetupLogging(path, false)
		So(err, ShouldBeNil)
		logger.Get().Info(context.Background(), "hello from smoke")

		Convey("Then the closer owns the file", func() {
			So(closer.Close(), ShouldBeNil)
			So(errors.Is(closer.Close(), os.ErrClosed), ShouldBeTrue)

			b, err := os.ReadFile(path)
			So(err, ShouldBeNil)
			So(string(b), ShouldContainSubstring, "hello from smoke")
		})
	})

	Convey("Given an unwritable log path", t, func() {
		_, err := SetupLogging(filepath.Join(t.TempDir(), "missing", "smoke.log"), false)

		Convey("Then setup fails", func() {
			So(err, ShouldNotBeNil)
		})
	})
}
