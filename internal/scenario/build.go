package scenario

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/bayesdice/internal/dice"
	"github.com/cory-johannsen/bayesdice/internal/scripting"
	"github.com/cory-johannsen/bayesdice/internal/source"
	"github.com/cory-johannsen/bayesdice/internal/trial"
)

// Env carries the shared dependencies used to build a scenario's sources.
type Env struct {
	// RNG drives every source and the chooser.
	RNG dice.Source
	// Logger receives per-draw debug entries when debug is enabled.
	Logger *zap.Logger
	// InstructionLimit bounds each Lua draw; 0 uses the scripting default.
	InstructionLimit int
}

// Build constructs the sources of sc, in declaration order with copies
// expanded, and the chooser named by sc.Selection.
//
// Precondition: sc must have passed Validate; env.RNG and env.Logger must be non-nil.
// Postcondition: Returns a chooser whose Sources() has one entry per copy, or an
// error. The caller must Close the chooser; on error every source already built
// has been closed.
func Build(sc *Scenario, env Env) (trial.Chooser, error) {
	debug := env.Logger.Core().Enabled(zapcore.DebugLevel)

	var (
		sources []source.Source
		weights []float64
	)
	for i, spec := range sc.Sources {
		copies := max(spec.Copies, 1)
		weight := 1.0
		if spec.Weight != nil {
			weight = *spec.Weight
		}
		for c := 0; c < copies; c++ {
			src, err := sc.buildOne(spec, env)
			if err != nil {
				closeSources(sources, env.Logger)
				return nil, fmt.Errorf("scenario %q: source[%d]: %w", sc.ID, i, err)
			}
			if debug {
				src = source.NewLogged(src, env.Logger)
			}
			sources = append(sources, src)
			weights = append(weights, weight)
		}
	}

	env.Logger.Info("scenario built",
		zap.String("scenario", sc.ID),
		zap.Int("sources", len(sources)),
		zap.String("selection", sc.selection()),
	)

	if sc.selection() == SelectionWeighted {
		w, err := trial.NewWeighted(sources, weights, env.RNG)
		if err != nil {
			closeSources(sources, env.Logger)
			return nil, fmt.Errorf("scenario %q: %w", sc.ID, err)
		}
		return w, nil
	}
	u, err := trial.NewUniform(sources, env.RNG)
	if err != nil {
		closeSources(sources, env.Logger)
		return nil, fmt.Errorf("scenario %q: %w", sc.ID, err)
	}
	return u, nil
}

func (s *Scenario) selection() string {
	if s.Selection == "" {
		return SelectionUniform
	}
	return s.Selection
}

func (s *Scenario) buildOne(spec SourceSpec, env Env) (source.Source, error) {
	var (
		src source.Source
		err error
	)
	switch spec.Kind {
	case KindDie:
		if spec.Name != nil {
			src, err = source.NewNamedDie(spec.Name.Key, spec.Sides, env.RNG)
		} else {
			src, err = source.NewDie(spec.Sides, env.RNG)
		}
	case KindCoin:
		if spec.Name != nil {
			src, err = source.NewNamedCoin(spec.Name.Key, spec.Bias, env.RNG)
		} else {
			src, err = source.NewCoin(spec.Bias, env.RNG)
		}
	case KindExpression:
		if spec.Name != nil {
			src, err = source.NewNamedExpression(spec.Name.Key, spec.Expression, env.RNG)
		} else {
			src, err = source.NewExpression(spec.Expression, env.RNG)
		}
	case KindScript:
		src, err = s.buildScript(spec, env)
	default:
		err = fmt.Errorf("unknown kind %q: %w", spec.Kind, source.ErrInvalidParameter)
	}
	if err != nil {
		return nil, err
	}

	if spec.Count != nil {
		c, err := source.NewCounter(src, spec.Count.Target.Key, spec.Count.Draws)
		if err != nil {
			_ = source.Close(src)
			return nil, err
		}
		return c, nil
	}
	return src, nil
}

func (s *Scenario) buildScript(spec SourceSpec, env Env) (source.Source, error) {
	if spec.Code != "" {
		name := source.Str("script")
		if spec.Name != nil {
			name = spec.Name.Key
		}
		return scriptSource(scripting.NewSource(name, spec.Code, env.RNG, env.InstructionLimit, env.Logger))
	}

	path := spec.Script
	if !filepath.IsAbs(path) && s.dir != "" {
		path = filepath.Join(s.dir, path)
	}
	name := source.Str(trimExt(filepath.Base(path)))
	if spec.Name != nil {
		name = spec.Name.Key
	}
	return scriptSource(scripting.NewSourceFromFile(name, path, env.RNG, env.InstructionLimit, env.Logger))
}

// scriptSource keeps a failed construction from leaking a typed nil.
func scriptSource(s *scripting.Source, err error) (source.Source, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}

// closeSources releases sources built before a failure.
func closeSources(sources []source.Source, logger *zap.Logger) {
	for _, src := range sources {
		if err := source.Close(src); err != nil {
			logger.Warn("closing source", zap.Stringer("source", src.Name()), zap.Error(err))
		}
	}
}

func trimExt(base string) string {
	return base[:len(base)-len(filepath.Ext(base))]
}
