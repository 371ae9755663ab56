package bundler

import (
	"errors"
	"fmt"
)

// ErrInvariant indicates an internal inconsistency in the planner or
// its input graph. Planning aborts immediately; there are no partial
// plans.
var ErrInvariant = errors.New("invariant violation")

// invariantf wraps ErrInvariant with a diagnostic naming the violated
// invariant.
func invariantf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...))
}
