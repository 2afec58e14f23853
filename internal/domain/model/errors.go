package model

import "errors"

// ErrNotFound reports that the requested user does not exist.
var ErrNotFound = errors.New("user not found")
