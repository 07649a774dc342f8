// README: Trip request model and input validation.
package trip

import (
	"errors"
	"strings"
)

// ErrEmptyDestination is returned when no destination was provided.
var ErrEmptyDestination = errors.New("destination must not be empty")

// ErrInvalidDuration is returned when the trip length is not a positive day count.
var ErrInvalidDuration = errors.New("duration must be a positive number of days")

// Request captures the user's trip parameters. Immutable once built; the prompt
// builder is its only consumer on the quick path.
type Request struct {
	Destination string
	Days        int
	Interests   []string

	// Budget and People extend the guided pipeline; zero means "use defaults".
	Budget float64
	People int
}

// Validate rejects unusable requests before any network call is attempted.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Destination) == "" {
		return ErrEmptyDestination
	}
	if r.Days <= 0 {
		return ErrInvalidDuration
	}
	return nil
}
