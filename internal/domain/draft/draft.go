// Package draft holds the in-progress registration form as an immutable value.
//
// Every update returns a new Registration; the receiver is never modified, so
// callers can compare before/after values to see exactly which field changed.
package draft

import (
	"slices"

	"github.com/okian/skillcard/internal/domain/model"
)

// DefaultSkillLevel is the level of a freshly added skill.
const DefaultSkillLevel = 0.5

// Registration is the registration draft.
type Registration struct {
	username string
	password string
	name     string
	position string
	skills   []model.Skill
}

// New returns an empty draft with a single blank skill.
func New() Registration {
	return Registration{skills: []model.Skill{emptySkill()}}
}

func emptySkill() model.Skill {
	return model.Skill{Name: "", Level: DefaultSkillLevel}
}

func (r Registration) Username() string { return r.username }
func (r Registration) Password() string { return r.password }
func (r Registration) Name() string     { return r.name }
func (r Registration) Position() string { return r.position }

// Skills returns a copy of the skill list.
func (r Registration) Skills() []model.Skill {
	return slices.Clone(r.skills)
}

// SkillCount returns the number of skill entries.
func (r Registration) SkillCount() int {
	return len(r.skills)
}

// Skill returns entry i and whether it exists.
func (r Registration) Skill(i int) (model.Skill, bool) {
	if i < 0 || i >= len(r.skills) {
		return model.Skill{}, false
	}
	return r.skills[i], true
}

// WithUsername returns a copy with username replaced.
func (r Registration) WithUsername(v string) Registration {
	r.skills = slices.Clone(r.skills)
	r.username = v
	return r
}

// WithPassword returns a copy with password replaced.
func (r Registration) WithPassword(v string) Registration {
	r.skills = slices.Clone(r.skills)
	r.password = v
	return r
}

// WithName returns a copy with the display name replaced.
func (r Registration) WithName(v string) Registration {
	r.skills = slices.Clone(r.skills)
	r.name = v
	return r
}

// WithPosition returns a copy with position replaced.
func (r Registration) WithPosition(v string) Registration {
	r.skills = slices.Clone(r.skills)
	r.position = v
	return r
}

// WithSkillName replaces the name of skill i only. Out of range is a no-op.
func (r Registration) WithSkillName(i int, name string) Registration {
	return r.updateSkill(i, func(s *model.Skill) { s.Name = name })
}

// WithSkillLevel replaces the level of skill i only. Out of range is a no-op.
func (r Registration) WithSkillLevel(i int, level float64) Registration {
	return r.updateSkill(i, func(s *model.Skill) { s.Level = level })
}

func (r Registration) updateSkill(i int, fn func(*model.Skill)) Registration {
	r.skills = slices.Clone(r.skills)
	if i < 0 || i >= len(r.skills) {
		return r
	}
	fn(&r.skills[i])
	return r
}

// AddSkill appends a blank skill at DefaultSkillLevel.
func (r Registration) AddSkill() Registration {
	skills := make([]model.Skill, len(r.skills), len(r.skills)+1)
	copy(skills, r.skills)
	r.skills = append(skills, emptySkill())
	return r
}

// CanRemoveSkill reports whether removing a skill is allowed; the list never
// becomes empty.
func (r Registration) CanRemoveSkill() bool {
	return len(r.skills) > 1
}

// RemoveSkill drops entry i. It is a no-op when i is out of range or only one
// skill remains.
func (r Registration) RemoveSkill(i int) Registration {
	r.skills = slices.Clone(r.skills)
	if !r.CanRemoveSkill() || i < 0 || i >= len(r.skills) {
		return r
	}
	r.skills = slices.Delete(r.skills, i, i+1)
	return r
}

// Request converts the draft into the wire body for /register.
func (r Registration) Request() model.RegistrationRequest {
	return model.RegistrationRequest{
		Username: r.username,
		Password: r.password,
		Name:     r.name,
		Position: r.position,
		Skills:   r.Skills(),
	}
}
