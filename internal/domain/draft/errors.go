package draft

import "errors"

// ErrInvalidDraft wraps validation failures of a registration draft.
var ErrInvalidDraft = errors.New("invalid registration draft")
