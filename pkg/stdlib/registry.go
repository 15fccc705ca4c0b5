// Package stdlib provides the native function library installed into every
// top-level environment: math, strings, lists, vectors, files and time.
package stdlib

import (
	"fmt"
	"time"

	"github.com/lunalang/luna/pkg/diagnostics"
	"github.com/lunalang/luna/pkg/interp"
)

// Lib holds the state shared by the native functions: the diagnostics
// reporter, the random engine and the clock baseline. It also implements
// interp.VectorOps so list arithmetic inside the evaluator reuses the same
// code as the vec_* natives.
type Lib struct {
	rep   *diagnostics.Reporter
	rng   *rng
	epoch time.Time
}

// Register installs every native function into env and returns the library
// so the caller can wire it as the evaluator's vector capability.
func Register(env *interp.Env, rep *diagnostics.Reporter) *Lib {
	l := &Lib{rep: rep, rng: newRNG(), epoch: time.Now()}
	for _, group := range [][]native{
		l.mathNatives(),
		l.stringNatives(),
		l.listNatives(),
		l.vecNatives(),
		l.fileNatives(),
		l.timeNatives(),
	} {
		for _, n := range group {
			env.Define(n.name, interp.NativeVal(n.fn))
		}
	}
	return l
}

type native struct {
	name string
	fn   interp.NativeFn
}

// checkArgs reports a runtime diagnostic when the arity is wrong.
func (l *Lib) checkArgs(args []interp.Value, expected int, name string) bool {
	if len(args) != expected {
		l.rep.Report(diagnostics.Runtime,
			fmt.Sprintf("%s() takes %d arguments.", name, expected), "")
		return false
	}
	return true
}

// toFloat widens an int or float argument; anything else reads as 0.
func toFloat(v interp.Value) float64 {
	switch v.Kind {
	case interp.KindInt:
		return float64(v.Int)
	case interp.KindFloat:
		return v.Float
	}
	return 0
}

// toInt truncates an int or float argument; anything else reads as 0.
func toInt(v interp.Value) int64 {
	switch v.Kind {
	case interp.KindInt:
		return v.Int
	case interp.KindFloat:
		return int64(v.Float)
	}
	return 0
}

// strArg returns the string payload, or "" for non-string arguments.
func strArg(v interp.Value) string {
	if v.Kind == interp.KindString {
		return v.Str
	}
	return ""
}
