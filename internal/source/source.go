// Package source defines drawable random sources and the Key type used for
// their names and outcomes.
package source

import (
	"errors"
	"fmt"
	"io"

	"github.com/cory-johannsen/bayesdice/internal/dice"
)

// ErrInvalidParameter is wrapped by every construction-time validation error.
var ErrInvalidParameter = errors.New("invalid parameter")

// Source is anything that can be drawn from.
//
// Draw has no required relationship between successive calls; independence is
// a property of the implementation, not of the interface.
type Source interface {
	// Name identifies the source when outcomes are tabulated. Distinct sources
	// may share a name, in which case their counts merge.
	Name() Key
	// Draw produces one outcome.
	Draw() (Key, error)
}

var (
	// Heads is the outcome of a coin landing heads up.
	Heads = Str("heads")
	// Tails is the outcome of a coin landing tails up.
	Tails = Str("tails")
)

// Close releases src when it holds resources, that is when it implements
// io.Closer. Sources without resources are left alone and Close returns nil.
func Close(src Source) error {
	if c, ok := src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// requireRNG returns an error wrapping ErrInvalidParameter when rng is nil.
func requireRNG(rng dice.Source) error {
	if rng == nil {
		return errorf("rng must not be nil")
	}
	return nil
}

func errorf(format string, args ...any) error {
	return fmt.Errorf("source: "+format+": %w", append(args, ErrInvalidParameter)...)
}
