package interp_test

import (
	"testing"

	"github.com/nalgeon/be"

	"github.com/lunalang/luna/pkg/interp"
)

func TestValueStrings(t *testing.T) {
	tests := []struct {
		val  interp.Value
		want string
	}{
		{interp.IntVal(42), "42"},
		{interp.FloatVal(3.5), "3.5"},
		{interp.FloatVal(0.1), "0.1"},
		{interp.FloatVal(1.0 / 3.0), "0.333333"},
		{interp.BoolVal(true), "true"},
		{interp.BoolVal(false), "false"},
		{interp.CharVal('x'), "x"},
		{interp.StrVal("plain"), "plain"},
		{interp.Null(), "null"},
		{interp.ListVal([]interp.Value{interp.IntVal(1), interp.StrVal("a")}), "[1, a]"},
		{interp.ListVal(nil), "[]"},
		{interp.NativeVal(func([]interp.Value) interp.Value { return interp.Null() }), "<native function>"},
	}
	for _, tt := range tests {
		be.Equal(t, tt.val.String(), tt.want)
	}
}

func TestTypeNameSplitsIntAndLong(t *testing.T) {
	be.Equal(t, interp.IntVal(1).TypeName(), "int")
	be.Equal(t, interp.IntVal(2147483647).TypeName(), "int")
	be.Equal(t, interp.IntVal(2147483648).TypeName(), "long")
	be.Equal(t, interp.IntVal(-2147483649).TypeName(), "long")
}

func TestCopyDetachesNestedLists(t *testing.T) {
	orig := interp.ListVal([]interp.Value{
		interp.ListVal([]interp.Value{interp.IntVal(1)}),
	})
	dup := orig.Copy()
	dup.Elems[0].Elems[0] = interp.IntVal(9)
	be.Equal(t, orig.Elems[0].Elems[0].Int, int64(1))
}

func TestEnvShadowingAndChain(t *testing.T) {
	outer := interp.NewEnv(nil)
	outer.Define("x", interp.IntVal(1))
	inner := interp.NewEnv(outer)

	be.Equal(t, inner.Get("x").Int, int64(1))

	inner.Define("x", interp.IntVal(2))
	be.Equal(t, inner.Get("x").Int, int64(2))
	be.Equal(t, outer.Get("x").Int, int64(1))
}

func TestEnvRedefineShadowsInSameScope(t *testing.T) {
	env := interp.NewEnv(nil)
	env.Define("x", interp.IntVal(1))
	env.Define("x", interp.IntVal(2))
	be.Equal(t, env.Get("x").Int, int64(2))
}

func TestEnvAssignWalksChain(t *testing.T) {
	outer := interp.NewEnv(nil)
	outer.Define("x", interp.IntVal(1))
	inner := interp.NewEnv(outer)

	be.True(t, inner.Assign("x", interp.IntVal(5)))
	be.Equal(t, outer.Get("x").Int, int64(5))
	be.True(t, !inner.Assign("missing", interp.IntVal(0)))
}
