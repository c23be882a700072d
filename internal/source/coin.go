package source

import (
	"math"
	"strconv"

	"github.com/cory-johannsen/bayesdice/internal/dice"
)

// FairCoinName is the default name of a coin with zero bias.
var FairCoinName = Str("fair")

// Coin is a possibly biased coin producing Heads or Tails.
//
// A bias of 0 is fair, 1 always lands heads and -1 always lands tails.
type Coin struct {
	name  Key
	bias  float64
	heads float64
	rng   dice.Source
}

// CoinName returns the default name for a coin with the given bias.
func CoinName(bias float64) Key {
	if bias == 0 {
		return FairCoinName
	}
	return Str("coin(bias=" + strconv.FormatFloat(bias, 'g', -1, 64) + ")")
}

// NewCoin returns a Coin named by CoinName(bias).
//
// Precondition: bias in [-1, 1]; rng must be non-nil.
// Postcondition: P(Heads) == (bias+1)/2, or an error wrapping ErrInvalidParameter.
func NewCoin(bias float64, rng dice.Source) (*Coin, error) {
	return NewNamedCoin(CoinName(bias), bias, rng)
}

// NewNamedCoin returns a Coin with an explicit name.
//
// Precondition: bias in [-1, 1]; rng must be non-nil.
func NewNamedCoin(name Key, bias float64, rng dice.Source) (*Coin, error) {
	if math.IsNaN(bias) || bias < -1 || bias > 1 {
		return nil, errorf("coin bias must be in [-1, 1], got %v", bias)
	}
	if err := requireRNG(rng); err != nil {
		return nil, err
	}
	return &Coin{name: name, bias: bias, heads: (bias + 1) / 2, rng: rng}, nil
}

// Name returns the coin's name.
func (c *Coin) Name() Key { return c.name }

// Bias returns the coin's bias.
func (c *Coin) Bias() float64 { return c.bias }

// Draw flips the coin.
func (c *Coin) Draw() (Key, error) {
	if c.rng.Float64() < c.heads {
		return Heads, nil
	}
	return Tails, nil
}
