package replaybuffer

import (
	"errors"
	"fmt"

	"github.com/samuelfneumann/replaykit/environment"
)

// ErrUnsupportedSpaceKind reports an observation or action space which
// is neither discrete nor continuous
var ErrUnsupportedSpaceKind = environment.ErrUnsupportedSpaceKind

// ErrUnsupportedAgentKind reports an agent which is neither on-policy
// nor off-policy
var ErrUnsupportedAgentKind = errors.New("unsupported agent kind")

// ErrInvalidOptions reports Options which cannot describe a buffer
var ErrInvalidOptions = errors.New("invalid options")

// SpaceError reports a space whose shape could not be determined
type SpaceError struct {
	Role  string // Either "observation" or "action"
	Space environment.Space
	Err   error
}

// Error satisfies the error interface
func (e *SpaceError) Error() string {
	return fmt.Sprintf("%v space %T: %v", e.Role, e.Space, e.Err)
}

// Unwrap returns the underlying error
func (e *SpaceError) Unwrap() error {
	return e.Err
}

// IsUnsupportedSpaceKind returns whether or not an error reports a
// space which is neither discrete nor continuous
func IsUnsupportedSpaceKind(err error) bool {
	return errors.Is(err, ErrUnsupportedSpaceKind)
}
