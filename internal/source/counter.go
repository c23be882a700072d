package source

import "fmt"

// Counter draws repeatedly from a wrapped source and reports how many of those
// draws matched a target outcome.
//
// A Counter takes the name of the source it wraps, so counters over distinct
// sources with equal names merge when tabulated.
type Counter struct {
	src    Source
	target Key
	draws  int
}

// NewCounter wraps src.
//
// Precondition: src must be non-nil; draws >= 0.
// Postcondition: Name() == src.Name(), or an error wrapping ErrInvalidParameter.
func NewCounter(src Source, target Key, draws int) (*Counter, error) {
	if src == nil {
		return nil, errorf("counter source must not be nil")
	}
	if draws < 0 {
		return nil, errorf("counter draws must be >= 0, got %d", draws)
	}
	return &Counter{src: src, target: target, draws: draws}, nil
}

// Name returns the wrapped source's name.
func (c *Counter) Name() Key { return c.src.Name() }

// Close releases the wrapped source.
func (c *Counter) Close() error { return Close(c.src) }

// Draw performs the sub-draws.
//
// Postcondition: on success the outcome is Int(v) with v in [0, draws].
func (c *Counter) Draw() (Key, error) {
	hits := 0
	for i := 0; i < c.draws; i++ {
		k, err := c.src.Draw()
		if err != nil {
			return Key{}, fmt.Errorf("counter %s: sub-draw %d: %w", c.src.Name(), i, err)
		}
		if k == c.target {
			hits++
		}
	}
	return Int(hits), nil
}
