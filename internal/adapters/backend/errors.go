package backend

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/skillcard/internal/domain/model"
)

// Sentinel kinds for remote API failures.
var (
	ErrTransport = errors.New("backend transport failed")
	ErrStatus    = errors.New("backend returned non-success status")
	ErrNotFound  = model.ErrNotFound
	ErrDecode    = errors.New("backend response decode failed")
)

// StatusError is returned when the remote API answers with a non-2xx status.
type StatusError struct {
	Op         string
	StatusCode int
	// Detail is the server-supplied "detail" string, empty when absent.
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
}

// Unwrap exposes ErrStatus, plus ErrNotFound for 404 responses.
func (e *StatusError) Unwrap() []error {
	if e.StatusCode == http.StatusNotFound {
		return []error{ErrStatus, ErrNotFound}
	}
	return []error{ErrStatus}
}

// Message returns the server-supplied detail carried by err, or fallback
// when err carries none (transport failures, bodies without detail).
func Message(err error, fallback string) string {
	var se *StatusError
	if errors.As(err, &se) && se.Detail != "" {
		return se.Detail
	}
	return fallback
}
