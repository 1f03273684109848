package reconcile

import (
	"fmt"

	"github.com/mrlokans/shelftrack/internal/entities"
)

// ErrInvalidID is returned for book or author ids outside the four-digit range.
var ErrInvalidID = fmt.Errorf("id must be a four digit number from %d to %d: %w",
	entities.MinID, entities.MaxID, entities.ErrInvalidInput)

// ValidateID checks that id is a four-digit identifier.
func ValidateID(id int) error {
	if !entities.ValidID(id) {
		return fmt.Errorf("%d: %w", id, ErrInvalidID)
	}
	return nil
}
