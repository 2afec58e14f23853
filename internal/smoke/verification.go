package smoke

import (
	"errors"
	"fmt"
	"math"

	"github.com/okian/skillcard/internal/domain/model"
	"github.com/okian/skillcard/internal/domain/radar"
)

// levelTolerance absorbs float noise from the backend's storage.
const levelTolerance = 1e-9

var errMismatch = errors.New("profile mismatch")

// verifyProfile checks that what was registered comes back unchanged and
// charts as one axis per skill, each at level*100.
func verifyProfile(sent model.RegistrationRequest, got model.User) error {
	switch {
	case got.Username != sent.Username:
		return fmt.Errorf("%w: username %q != %q", errMismatch, got.Username, sent.Username)
	case got.Name != sent.Name:
		return fmt.Errorf("%w: name %q != %q", errMismatch, got.Name, sent.Name)
	case got.Position != sent.Position:
		return fmt.Errorf("%w: position %q != %q", errMismatch, got.Position, sent.Position)
	case len(got.Skills) != len(sent.Skills):
		return fmt.Errorf("%w: %d skills, want %d", errMismatch, len(got.Skills), len(sent.Skills))
	}

	for i, want := range sent.Skills {
		have := got.Skills[i]
		if have.Name != want.Name || math.Abs(have.Level-want.Level) > levelTolerance {
			return fmt.Errorf("%w: skill %d is %+v, want %+v", errMismatch, i, have, want)
		}
	}

	chart := radar.FromSkills(got.Skills)
	if len(chart.Points) != len(sent.Skills) {
		return fmt.Errorf("%w: %d chart axes for %d skills", errMismatch, len(chart.Points), len(sent.Skills))
	}
	for i, p := range chart.Points {
		if p.Value != radar.Scale(sent.Skills[i].Level) {
			return fmt.Errorf("%w: axis %q at %v", errMismatch, p.Label, p.Value)
		}
	}
	return nil
}
