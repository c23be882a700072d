// Package scenario loads simulation scenarios from YAML and builds the sources
// and selection policy they describe.
package scenario

import (
	"embed"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/bayesdice/internal/dice"
)

// Source kinds.
const (
	KindDie        = "die"
	KindCoin       = "coin"
	KindExpression = "expression"
	KindScript     = "script"
)

// Selection policies.
const (
	SelectionUniform  = "uniform"
	SelectionWeighted = "weighted"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// CountSpec wraps a source in a Counter.
type CountSpec struct {
	Target *Label `yaml:"target"`
	Draws  int    `yaml:"draws"`
}

// SourceSpec describes one source, or Copies identical sources.
type SourceSpec struct {
	Kind       string     `yaml:"kind"`
	Name       *Label     `yaml:"name"`
	Sides      int        `yaml:"sides"`
	Bias       float64    `yaml:"bias"`
	Expression string     `yaml:"expression"`
	Script     string     `yaml:"script"` // Lua file, relative to the scenario file
	Code       string     `yaml:"code"`   // inline Lua
	Copies     int        `yaml:"copies"` // 0 means 1
	Weight     *float64   `yaml:"weight"` // weighted selection only; nil means 1
	Count      *CountSpec `yaml:"count"`
}

// Scenario is a named population of sources plus a selection policy.
type Scenario struct {
	ID          string       `yaml:"id"`
	Description string       `yaml:"description"`
	Selection   string       `yaml:"selection"` // empty means uniform
	Draws       int          `yaml:"draws"`
	Sources     []SourceSpec `yaml:"sources"`

	// dir is the directory Script paths resolve against; empty for built-ins.
	dir string
}

// Validate checks the scenario's invariants.
//
// Precondition: s must not be nil.
// Postcondition: Returns nil iff every field and every source spec is valid;
// otherwise returns the first violation.
func (s *Scenario) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("scenario: id must not be empty")
	}
	switch s.Selection {
	case "", SelectionUniform, SelectionWeighted:
	default:
		return fmt.Errorf("scenario %q: selection must be one of [uniform, weighted], got %q", s.ID, s.Selection)
	}
	if s.Draws < 0 {
		return fmt.Errorf("scenario %q: draws must be >= 0, got %d", s.ID, s.Draws)
	}
	if len(s.Sources) == 0 {
		return fmt.Errorf("scenario %q: sources must not be empty", s.ID)
	}
	for i := range s.Sources {
		if err := s.Sources[i].validate(); err != nil {
			return fmt.Errorf("scenario %q: source[%d]: %w", s.ID, i, err)
		}
	}
	return nil
}

func (sp *SourceSpec) validate() error {
	switch sp.Kind {
	case KindDie:
		if sp.Sides < 1 {
			return fmt.Errorf("die sides must be >= 1, got %d", sp.Sides)
		}
	case KindCoin:
		if math.IsNaN(sp.Bias) || sp.Bias < -1 || sp.Bias > 1 {
			return fmt.Errorf("coin bias must be in [-1, 1], got %v", sp.Bias)
		}
	case KindExpression:
		if _, err := dice.Parse(sp.Expression); err != nil {
			return err
		}
	case KindScript:
		if (sp.Script == "") == (sp.Code == "") {
			return fmt.Errorf("script source needs exactly one of script or code")
		}
	default:
		return fmt.Errorf("kind must be one of [die, coin, expression, script], got %q", sp.Kind)
	}
	if sp.Copies < 0 {
		return fmt.Errorf("copies must be >= 0, got %d", sp.Copies)
	}
	if sp.Weight != nil && (math.IsNaN(*sp.Weight) || math.IsInf(*sp.Weight, 0) || *sp.Weight < 0) {
		return fmt.Errorf("weight must be finite and >= 0, got %v", *sp.Weight)
	}
	if sp.Count != nil {
		if sp.Count.Target == nil {
			return fmt.Errorf("count target must be set")
		}
		if sp.Count.Draws < 0 {
			return fmt.Errorf("count draws must be >= 0, got %d", sp.Count.Draws)
		}
	}
	return nil
}

// LoadFromBytes parses and validates a single scenario.
//
// Postcondition: Returns a validated *Scenario, or an error.
func LoadFromBytes(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing scenario YAML: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// LoadFile reads one scenario file; script paths resolve against its directory.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	sc, err := LoadFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", path, err)
	}
	sc.dir = filepath.Dir(path)
	return sc, nil
}

// LoadDir reads all *.yaml files in dir.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all scenarios or an error on the first parse or
// validate failure; on error, the partial result is discarded.
func LoadDir(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading scenario dir %q: %w", dir, err)
	}

	var scenarios []*Scenario
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		sc, err := LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}

// Builtin returns the scenarios shipped with the binary.
func Builtin() ([]*Scenario, error) {
	paths, err := fs.Glob(builtinFS, "builtin/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("listing built-in scenarios: %w", err)
	}
	var scenarios []*Scenario
	for _, p := range paths {
		data, err := builtinFS.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading built-in %q: %w", p, err)
		}
		sc, err := LoadFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading built-in %q: %w", p, err)
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}

// Find returns the scenario with the given id. Later entries shadow earlier
// ones, so directory scenarios appended after built-ins override them.
func Find(scenarios []*Scenario, id string) (*Scenario, error) {
	for i := len(scenarios) - 1; i >= 0; i-- {
		if scenarios[i].ID == id {
			return scenarios[i], nil
		}
	}
	ids := make([]string, len(scenarios))
	for i, sc := range scenarios {
		ids[i] = sc.ID
	}
	return nil, fmt.Errorf("scenario %q not found; available: [%s]", id, strings.Join(ids, ", "))
}
