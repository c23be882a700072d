package source

import "github.com/cory-johannsen/bayesdice/internal/dice"

// Expression draws the total of a dice expression such as "2d6+3".
type Expression struct {
	name Key
	expr dice.Expression
	rng  dice.Source
}

// NewExpression parses expr and returns a source named after it.
//
// Precondition: rng must be non-nil.
// Postcondition: Returns a source or an error wrapping ErrInvalidParameter.
func NewExpression(expr string, rng dice.Source) (*Expression, error) {
	return NewNamedExpression(Str(expr), expr, rng)
}

// NewNamedExpression is NewExpression with an explicit name.
func NewNamedExpression(name Key, expr string, rng dice.Source) (*Expression, error) {
	e, err := dice.Parse(expr)
	if err != nil {
		return nil, errorf("%v", err)
	}
	if err := requireRNG(rng); err != nil {
		return nil, err
	}
	return &Expression{name: name, expr: e, rng: rng}, nil
}

// Name returns the expression's name.
func (e *Expression) Name() Key { return e.name }

// Draw rolls the expression and returns Int(total).
func (e *Expression) Draw() (Key, error) {
	return Int(dice.Roll(e.expr, e.rng).Total()), nil
}
