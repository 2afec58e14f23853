// Package model contains domain models passed between layers.
package model

import "encoding/json"

// Skill is a named competency with a proficiency level, conventionally in [0, 1].
type Skill struct {
	Name  string  `json:"name" validate:"required"`
	Level float64 `json:"level" validate:"gte=0,lte=1"`
}

// User is the profile record served by the remote API. Read-only here.
type User struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	Name      string  `json:"name"`
	Position  string  `json:"position"`
	AvatarURL string  `json:"avatar_url"`
	Skills    []Skill `json:"skills"`
}

// LoginCredentials is the transient username/password pair posted to /login.
type LoginCredentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is the opaque payload returned by a successful login.
type LoginResult struct {
	Message string          `json:"message,omitempty"`
	Raw     json.RawMessage `json:"-"`
}

// RegistrationRequest is the body posted to /register.
type RegistrationRequest struct {
	Username  string  `json:"username" validate:"required"`
	Password  string  `json:"password" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	Position  string  `json:"position" validate:"required"`
	AvatarURL string  `json:"avatar_url,omitempty"`
	Skills    []Skill `json:"skills" validate:"min=1,dive"`
}
