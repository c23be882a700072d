package source

import "github.com/cory-johannsen/bayesdice/internal/dice"

// Die is a fair die with a fixed number of sides.
type Die struct {
	name  Key
	sides int
	rng   dice.Source
}

// NewDie returns a Die named after its side count.
//
// Precondition: sides >= 1; rng must be non-nil.
// Postcondition: Returns a Die whose Name() == Int(sides), or an error wrapping
// ErrInvalidParameter.
func NewDie(sides int, rng dice.Source) (*Die, error) {
	return NewNamedDie(Int(sides), sides, rng)
}

// NewNamedDie returns a Die with an explicit name.
//
// Precondition: sides >= 1; rng must be non-nil.
func NewNamedDie(name Key, sides int, rng dice.Source) (*Die, error) {
	if sides < 1 {
		return nil, errorf("die sides must be >= 1, got %d", sides)
	}
	if err := requireRNG(rng); err != nil {
		return nil, err
	}
	return &Die{name: name, sides: sides, rng: rng}, nil
}

// Name returns the die's name.
func (d *Die) Name() Key { return d.name }

// Sides returns the number of faces.
func (d *Die) Sides() int { return d.sides }

// Draw rolls the die.
//
// Postcondition: the outcome is Int(v) with v in [1, Sides()]; err is nil.
func (d *Die) Draw() (Key, error) {
	return Int(d.rng.Intn(d.sides) + 1), nil
}
