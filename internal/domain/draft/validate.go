package draft

import (
	"fmt"

	"github.com/okian/skillcard/internal/domain/model"
)

// Validate checks the draft against the registration form constraints:
// every text field present, every skill named, levels within [0, 1].
func (r Registration) Validate() error {
	if err := model.Validate(r.Request()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDraft, err)
	}
	return nil
}
