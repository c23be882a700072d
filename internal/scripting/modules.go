package scripting

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/cory-johannsen/bayesdice/internal/dice"
)

// RegisterRand installs the global rand table backed by rng:
//
//	rand.intn(n)     -- integer in [0, n)
//	rand.roll(sides) -- integer in [1, sides]
//	rand.float()     -- number in [0, 1)
//
// Precondition: L must be from NewSandboxedState; rng must be non-nil.
func RegisterRand(L *lua.LState, rng dice.Source) {
	mod := L.NewTable()
	L.SetFuncs(mod, map[string]lua.LGFunction{
		"intn": func(L *lua.LState) int {
			n := L.CheckInt(1)
			if n <= 0 {
				L.ArgError(1, "n must be > 0")
				return 0
			}
			L.Push(lua.LNumber(rng.Intn(n)))
			return 1
		},
		"roll": func(L *lua.LState) int {
			sides := L.CheckInt(1)
			if sides <= 0 {
				L.ArgError(1, "sides must be > 0")
				return 0
			}
			L.Push(lua.LNumber(rng.Intn(sides) + 1))
			return 1
		},
		"float": func(L *lua.LState) int {
			L.Push(lua.LNumber(rng.Float64()))
			return 1
		},
	})
	L.SetGlobal("rand", mod)
}
