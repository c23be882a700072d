package scripting

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/bayesdice/internal/dice"
	"github.com/cory-johannsen/bayesdice/internal/source"
)

// drawHook is the global Lua function every script must define.
const drawHook = "draw"

// Source is a source.Source whose draw is a Lua function.
//
// Source is safe for concurrent use; draws are serialized on its LState.
type Source struct {
	mu     sync.Mutex
	name   source.Key
	L      *lua.LState
	fn     *lua.LFunction
	limit  int
	logger *zap.Logger
	closed bool
}

// ErrClosed is returned by Draw after Close.
var ErrClosed = errors.New("scripting: source closed")

// NewSource loads code into a fresh sandbox and returns a source that calls
// its global draw() function on every Draw.
//
// Precondition: rng and logger must be non-nil; code must define draw().
// Postcondition: Returns a ready Source, or an error wrapping
// source.ErrInvalidParameter when the script cannot be loaded.
func NewSource(name source.Key, code string, rng dice.Source, instLimit int, logger *zap.Logger) (*Source, error) {
	if rng == nil {
		return nil, fmt.Errorf("scripting: %s: rng must not be nil: %w", name, source.ErrInvalidParameter)
	}
	L, cancelLoad := NewSandboxedState(instLimit)
	defer cancelLoad()
	RegisterRand(L, rng)

	if err := L.DoString(code); err != nil {
		L.Close()
		return nil, fmt.Errorf("scripting: %s: loading script: %v: %w", name, err, source.ErrInvalidParameter)
	}
	fn, ok := L.GetGlobal(drawHook).(*lua.LFunction)
	if !ok {
		L.Close()
		return nil, fmt.Errorf("scripting: %s: script must define a global %s() function: %w", name, drawHook, source.ErrInvalidParameter)
	}
	L.RemoveContext()

	return &Source{
		name:   name,
		L:      L,
		fn:     fn,
		limit:  effectiveLimit(instLimit),
		logger: logger,
	}, nil
}

// NewSourceFromFile is NewSource with the script read from path.
func NewSourceFromFile(name source.Key, path string, rng dice.Source, instLimit int, logger *zap.Logger) (*Source, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scripting: reading %q: %w", path, err)
	}
	return NewSource(name, string(code), rng, instLimit, logger)
}

// Name returns the source's name.
func (s *Source) Name() source.Key { return s.name }

// Draw calls draw() with a fresh instruction budget and converts its first
// return value: an integral number becomes source.Int, a string source.Str and
// a boolean source.Bool. Any other value, or a Lua runtime error, is an error.
func (s *Source) Draw() (source.Key, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return source.Key{}, fmt.Errorf("%s: %w", s.name, ErrClosed)
	}

	ctx, cancel := newCountingContext(s.limit)
	defer cancel()
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	if err := s.L.CallByParam(lua.P{
		Fn:      s.fn,
		NRet:    1,
		Protect: true,
	}); err != nil {
		s.logger.Warn("scripting: Lua runtime error",
			zap.Stringer("source", s.name),
			zap.Error(err),
		)
		return source.Key{}, fmt.Errorf("scripting: %s: draw: %w", s.name, err)
	}

	ret := s.L.Get(-1)
	s.L.Pop(1)
	return toKey(s.name, ret)
}

// Close releases the Lua state. It is idempotent; Draw fails with ErrClosed
// afterwards.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.L.Close()
	return nil
}

func toKey(name source.Key, v lua.LValue) (source.Key, error) {
	switch tv := v.(type) {
	case lua.LNumber:
		f := float64(tv)
		if f != math.Trunc(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
			return source.Key{}, fmt.Errorf("scripting: %s: draw returned non-integral number %v", name, f)
		}
		return source.Int(int(f)), nil
	case lua.LString:
		return source.Str(string(tv)), nil
	case lua.LBool:
		return source.Bool(bool(tv)), nil
	default:
		return source.Key{}, fmt.Errorf("scripting: %s: draw returned unsupported %s", name, v.Type())
	}
}
