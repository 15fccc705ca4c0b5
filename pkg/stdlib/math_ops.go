package stdlib

import (
	"math"

	"github.com/lunalang/luna/pkg/diagnostics"
	"github.com/lunalang/luna/pkg/interp"
)

func (l *Lib) mathNatives() []native {
	return []native{
		{"abs", l.mathAbs},
		{"min", l.mathMin},
		{"max", l.mathMax},
		{"clamp", l.mathClamp},
		{"sign", l.mathSign},
		{"pow", l.float2("pow", math.Pow)},
		{"sqrt", l.float1("sqrt", math.Sqrt)},
		{"cbrt", l.float1("cbrt", math.Cbrt)},
		{"exp", l.float1("exp", math.Exp)},
		{"ln", l.float1("ln", math.Log)},
		{"log10", l.float1("log10", math.Log10)},
		{"sin", l.float1("sin", math.Sin)},
		{"cos", l.float1("cos", math.Cos)},
		{"tan", l.float1("tan", math.Tan)},
		{"asin", l.float1("asin", math.Asin)},
		{"acos", l.float1("acos", math.Acos)},
		{"atan", l.float1("atan", math.Atan)},
		{"atan2", l.float2("atan2", math.Atan2)},
		{"sinh", l.float1("sinh", math.Sinh)},
		{"cosh", l.float1("cosh", math.Cosh)},
		{"tanh", l.float1("tanh", math.Tanh)},
		{"floor", l.round1("floor", math.Floor)},
		{"ceil", l.round1("ceil", math.Ceil)},
		{"round", l.round1("round", math.Round)},
		{"trunc", l.round1("trunc", math.Trunc)},
		{"fract", l.mathFract},
		{"mod", l.float2("mod", math.Mod)},
		{"rand", l.mathRand},
		{"srand", l.mathSrand},
		{"trand", l.mathTrand},
		{"deg_to_rad", l.float1("deg_to_rad", func(x float64) float64 { return x * (math.Pi / 180) })},
		{"rad_to_deg", l.float1("rad_to_deg", func(x float64) float64 { return x * (180 / math.Pi) })},
		{"lerp", l.mathLerp},
	}
}

// float1 wraps a one-argument float function as a native.
func (l *Lib) float1(name string, fn func(float64) float64) interp.NativeFn {
	return func(args []interp.Value) interp.Value {
		if !l.checkArgs(args, 1, name) {
			return interp.Null()
		}
		return interp.FloatVal(fn(toFloat(args[0])))
	}
}

// float2 wraps a two-argument float function as a native.
func (l *Lib) float2(name string, fn func(float64, float64) float64) interp.NativeFn {
	return func(args []interp.Value) interp.Value {
		if !l.checkArgs(args, 2, name) {
			return interp.Null()
		}
		return interp.FloatVal(fn(toFloat(args[0]), toFloat(args[1])))
	}
}

// round1 wraps a rounding function; the result is always an int.
func (l *Lib) round1(name string, fn func(float64) float64) interp.NativeFn {
	return func(args []interp.Value) interp.Value {
		if !l.checkArgs(args, 1, name) {
			return interp.Null()
		}
		return interp.IntVal(int64(fn(toFloat(args[0]))))
	}
}

func (l *Lib) mathAbs(args []interp.Value) interp.Value {
	if !l.checkArgs(args, 1, "abs") {
		return interp.Null()
	}
	switch args[0].Kind {
	case interp.KindInt:
		if args[0].Int < 0 {
			return interp.IntVal(-args[0].Int)
		}
		return interp.IntVal(args[0].Int)
	case interp.KindFloat:
		return interp.FloatVal(math.Abs(args[0].Float))
	}
	return interp.Null()
}

// min and max keep integer results when both inputs are integers.
func (l *Lib) mathMin(args []interp.Value) interp.Value {
	if !l.checkArgs(args, 2, "min") {
		return interp.Null()
	}
	a, b := toFloat(args[0]), toFloat(args[1])
	if args[0].Kind == interp.KindInt && args[1].Kind == interp.KindInt {
		if a < b {
			return interp.IntVal(args[0].Int)
		}
		return interp.IntVal(args[1].Int)
	}
	return interp.FloatVal(math.Min(a, b))
}

func (l *Lib) mathMax(args []interp.Value) interp.Value {
	if !l.checkArgs(args, 2, "max") {
		return interp.Null()
	}
	a, b := toFloat(args[0]), toFloat(args[1])
	if args[0].Kind == interp.KindInt && args[1].Kind == interp.KindInt {
		if a > b {
			return interp.IntVal(args[0].Int)
		}
		return interp.IntVal(args[1].Int)
	}
	return interp.FloatVal(math.Max(a, b))
}

func (l *Lib) mathClamp(args []interp.Value) interp.Value {
	if !l.checkArgs(args, 3, "clamp") {
		return interp.Null()
	}
	x, lo, hi := toFloat(args[0]), toFloat(args[1]), toFloat(args[2])
	res := x
	if res < lo {
		res = lo
	}
	if res > hi {
		res = hi
	}
	if args[0].Kind == interp.KindInt && args[1].Kind == interp.KindInt && args[2].Kind == interp.KindInt {
		return interp.IntVal(int64(res))
	}
	return interp.FloatVal(res)
}

func (l *Lib) mathSign(args []interp.Value) interp.Value {
	if !l.checkArgs(args, 1, "sign") {
		return interp.Null()
	}
	x := toFloat(args[0])
	switch {
	case x > 0:
		return interp.IntVal(1)
	case x < 0:
		return interp.IntVal(-1)
	}
	return interp.IntVal(0)
}

func (l *Lib) mathFract(args []interp.Value) interp.Value {
	if !l.checkArgs(args, 1, "fract") {
		return interp.Null()
	}
	_, frac := math.Modf(toFloat(args[0]))
	return interp.FloatVal(frac)
}

func (l *Lib) mathLerp(args []interp.Value) interp.Value {
	if !l.checkArgs(args, 3, "lerp") {
		return interp.Null()
	}
	a := toFloat(args[0])
	b := toFloat(args[1])
	t := toFloat(args[2])
	return interp.FloatVal(a + t*(b-a))
}

// rand() is uniform in [0, 1); rand(max) and rand(min, max) draw inclusive
// integers with the bounds swapped when given backwards.
func (l *Lib) mathRand(args []interp.Value) interp.Value {
	switch len(args) {
	case 0:
		return interp.FloatVal(l.rng.float01())
	case 1:
		return interp.IntVal(l.rng.intRange(0, toInt(args[0])))
	case 2:
		return interp.IntVal(l.rng.intRange(toInt(args[0]), toInt(args[1])))
	}
	l.rep.Report(diagnostics.Runtime, "rand() takes 0, 1, or 2 arguments.", "")
	return interp.Null()
}

func (l *Lib) mathSrand(args []interp.Value) interp.Value {
	if len(args) == 0 {
		l.rng.seed(osEntropy())
	} else {
		l.rng.seed(uint64(toInt(args[0])))
	}
	return interp.Null()
}

func (l *Lib) mathTrand(args []interp.Value) interp.Value {
	return interp.IntVal(int64(osEntropy()))
}
