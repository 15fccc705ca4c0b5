package stdlib

import (
	"github.com/lunalang/luna/pkg/diagnostics"
	"github.com/lunalang/luna/pkg/interp"
)

func (l *Lib) vecNatives() []native {
	return []native{
		{"vec_add", l.vecWrapper("vec_add", l.Add)},
		{"vec_sub", l.vecWrapper("vec_sub", l.Sub)},
		{"vec_mul", l.vecWrapper("vec_mul", l.Mul)},
		{"vec_div", l.vecWrapper("vec_div", l.Div)},
	}
}

func (l *Lib) vecWrapper(name string, op func(a, b interp.Value) interp.Value) interp.NativeFn {
	return func(args []interp.Value) interp.Value {
		if len(args) != 2 {
			l.rep.Report(diagnostics.Runtime, name+" expects 2 lists", "")
			return interp.Null()
		}
		return op(args[0], args[1])
	}
}

// Add, Sub, Mul and Div satisfy interp.VectorOps, so `+` and friends on two
// lists route through the same element-wise code as the vec_* natives.
// Results are truncated to the shorter operand and are always floats.

func (l *Lib) Add(a, b interp.Value) interp.Value {
	return vecOp(a, b, func(x, y float64) float64 { return x + y })
}

func (l *Lib) Sub(a, b interp.Value) interp.Value {
	return vecOp(a, b, func(x, y float64) float64 { return x - y })
}

func (l *Lib) Mul(a, b interp.Value) interp.Value {
	return vecOp(a, b, func(x, y float64) float64 { return x * y })
}

// Div maps division by zero to 0 like scalar division does.
func (l *Lib) Div(a, b interp.Value) interp.Value {
	return vecOp(a, b, func(x, y float64) float64 {
		if y == 0 {
			return 0
		}
		return x / y
	})
}

func vecOp(a, b interp.Value, op func(x, y float64) float64) interp.Value {
	if a.Kind != interp.KindList || b.Kind != interp.KindList {
		return interp.Null()
	}
	count := len(a.Elems)
	if len(b.Elems) < count {
		count = len(b.Elems)
	}
	out := make([]interp.Value, count)
	for i := 0; i < count; i++ {
		out[i] = interp.FloatVal(op(toFloat(a.Elems[i]), toFloat(b.Elems[i])))
	}
	return interp.ListVal(out)
}
