package trial

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/cory-johannsen/bayesdice/internal/dice"
	"github.com/cory-johannsen/bayesdice/internal/source"
)

// Chooser selects the source to draw from on each iteration of a trial.
type Chooser interface {
	// Choose returns one source. It is called exactly once per iteration.
	Choose() source.Source
	// Sources returns the candidate sources in their fixed order.
	Sources() []source.Source
	// Close releases every candidate source that holds resources. The chooser
	// must not be used afterwards.
	Close() error
}

// Uniform picks a source independently and uniformly at random, with
// replacement, on every call.
type Uniform struct {
	sources []source.Source
	rng     dice.Source
}

// NewUniform returns a Uniform chooser over sources.
//
// Precondition: sources must be non-empty and contain no nil entries; rng must
// be non-nil.
// Postcondition: Returns a chooser or an error wrapping source.ErrInvalidParameter.
func NewUniform(sources []source.Source, rng dice.Source) (*Uniform, error) {
	if err := validateSources(sources, rng); err != nil {
		return nil, err
	}
	return &Uniform{sources: slices.Clone(sources), rng: rng}, nil
}

// Choose returns a uniformly random source.
func (u *Uniform) Choose() source.Source {
	return u.sources[u.rng.Intn(len(u.sources))]
}

// Sources returns the candidate sources.
func (u *Uniform) Sources() []source.Source { return slices.Clone(u.sources) }

// Close releases the candidate sources.
func (u *Uniform) Close() error { return closeAll(u.sources) }

// Weighted picks a source with probability proportional to its weight, with
// replacement, on every call. It models non-uniform priors.
type Weighted struct {
	sources    []source.Source
	cumulative []float64
	rng        dice.Source
}

// NewWeighted returns a Weighted chooser.
//
// Precondition: len(weights) == len(sources) > 0; every weight is finite and
// >= 0; at least one weight is > 0; rng must be non-nil.
// Postcondition: Returns a chooser or an error wrapping source.ErrInvalidParameter.
func NewWeighted(sources []source.Source, weights []float64, rng dice.Source) (*Weighted, error) {
	if err := validateSources(sources, rng); err != nil {
		return nil, err
	}
	if len(weights) != len(sources) {
		return nil, fmt.Errorf("trial: %d weights for %d sources: %w", len(weights), len(sources), source.ErrInvalidParameter)
	}
	cumulative := make([]float64, len(weights))
	sum := 0.0
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return nil, fmt.Errorf("trial: weight[%d] must be finite and >= 0, got %v: %w", i, w, source.ErrInvalidParameter)
		}
		sum += w
		cumulative[i] = sum
	}
	if math.IsInf(sum, 0) {
		return nil, fmt.Errorf("trial: weights sum overflows: %w", source.ErrInvalidParameter)
	}
	if sum <= 0 {
		return nil, fmt.Errorf("trial: weights must not all be zero: %w", source.ErrInvalidParameter)
	}
	return &Weighted{sources: slices.Clone(sources), cumulative: cumulative, rng: rng}, nil
}

// Choose returns a source drawn proportionally to its weight.
func (w *Weighted) Choose() source.Source {
	total := w.cumulative[len(w.cumulative)-1]
	r := w.rng.Float64() * total
	i, _ := slices.BinarySearchFunc(w.cumulative, r, func(c, target float64) int {
		if c <= target {
			return -1
		}
		return 1
	})
	if i >= len(w.sources) {
		i = len(w.sources) - 1
	}
	return w.sources[i]
}

// Sources returns the candidate sources.
func (w *Weighted) Sources() []source.Source { return slices.Clone(w.sources) }

// Close releases the candidate sources.
func (w *Weighted) Close() error { return closeAll(w.sources) }

// closeAll closes every source and joins the failures.
func closeAll(sources []source.Source) error {
	var errs []error
	for i, s := range sources {
		if err := source.Close(s); err != nil {
			errs = append(errs, fmt.Errorf("trial: closing source[%d] %s: %w", i, s.Name(), err))
		}
	}
	return errors.Join(errs...)
}

func validateSources(sources []source.Source, rng dice.Source) error {
	if len(sources) == 0 {
		return fmt.Errorf("trial: sources must not be empty: %w", source.ErrInvalidParameter)
	}
	for i, s := range sources {
		if s == nil {
			return fmt.Errorf("trial: source[%d] is nil: %w", i, source.ErrInvalidParameter)
		}
	}
	if rng == nil {
		return fmt.Errorf("trial: rng must not be nil: %w", source.ErrInvalidParameter)
	}
	return nil
}
