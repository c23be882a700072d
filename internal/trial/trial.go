// Package trial runs repeated (choose source, draw, record) iterations and
// accumulates the observed outcomes per source name.
package trial

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/bayesdice/internal/source"
	"github.com/cory-johannsen/bayesdice/internal/table"
)

// Trial owns an Accumulator and fills it by drawing from sources picked by a
// Chooser.
//
// A Trial is not safe for concurrent use.
type Trial struct {
	id      string
	chooser Chooser
	acc     *Accumulator
	logger  *zap.Logger
}

// New returns a Trial with an empty accumulator.
//
// Precondition: chooser and logger must be non-nil.
func New(chooser Chooser, logger *zap.Logger) *Trial {
	return &Trial{
		id:      uuid.New().String(),
		chooser: chooser,
		acc:     NewAccumulator(),
		logger:  logger,
	}
}

// ID returns the run identifier attached to this trial's log entries.
func (t *Trial) ID() string { return t.id }

// Run performs n iterations. Each iteration chooses exactly one source, draws
// one outcome from it and records the (outcome, name) pair. Successive calls
// accumulate.
//
// Precondition: n >= 0.
// Postcondition: on success Results().Total() has grown by exactly n. A draw
// error aborts the run; observations recorded before the failure are kept.
func (t *Trial) Run(n int) error {
	if n < 0 {
		return fmt.Errorf("trial: draws must be >= 0, got %d: %w", n, source.ErrInvalidParameter)
	}

	start := time.Now()
	t.logger.Info("trial started",
		zap.String("run_id", t.id),
		zap.Int("draws", n),
		zap.Int("sources", len(t.chooser.Sources())),
	)

	for i := 0; i < n; i++ {
		src := t.chooser.Choose()
		outcome, err := src.Draw()
		if err != nil {
			t.logger.Error("draw failed",
				zap.String("run_id", t.id),
				zap.Int("iteration", i),
				zap.Stringer("source", src.Name()),
				zap.Error(err),
			)
			return fmt.Errorf("trial %s: iteration %d: %w", t.id, i, err)
		}
		t.acc.Add(outcome, src.Name())
	}

	t.logger.Info("trial complete",
		zap.String("run_id", t.id),
		zap.Int("draws", n),
		zap.Int("total", t.acc.Total()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// Results returns the trial's accumulator. Callers must not mutate it.
func (t *Trial) Results() *Accumulator { return t.acc }

// Table pivots the current results.
func (t *Trial) Table() *table.Table[source.Key, source.Key] { return t.acc.Table() }
