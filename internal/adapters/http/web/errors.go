package web

import "errors"

// Error constants
var (
	ErrTemplate = errors.New("web template parse failed")
	ErrRender   = errors.New("web page render failed")
)
