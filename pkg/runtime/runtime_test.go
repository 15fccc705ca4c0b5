package runtime_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/nalgeon/be"

	"github.com/lunalang/luna/pkg/runtime"
)

func newSession(t *testing.T) (*runtime.Session, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	s := runtime.New("<test>",
		runtime.WithStdout(&out),
		runtime.WithDiagOutput(io.Discard),
		runtime.WithExit(func(int) {}),
		runtime.WithFixedSeed(),
	)
	return s, &out
}

func TestRunExecutesProgram(t *testing.T) {
	s, out := newSession(t)
	be.True(t, s.Run("print(1 + 2)"))
	be.Equal(t, out.String(), "3 \n")
}

func TestStateSurvivesAcrossRuns(t *testing.T) {
	s, out := newSession(t)
	be.True(t, s.Run("let x = 10"))
	be.True(t, s.Run("func double(n) {\n    return n * 2\n}"))
	be.True(t, s.Run("print(double(x))"))
	be.Equal(t, out.String(), "20 \n")
}

func TestParseFailureReturnsFalse(t *testing.T) {
	s, out := newSession(t)
	be.True(t, !s.Run("let = 5"))
	be.Equal(t, out.String(), "")

	// The session stays usable after a bad line.
	be.True(t, s.Run("print(2)"))
	be.Equal(t, out.String(), "2 \n")
}

func TestRuntimeErrorStillReturnsTrue(t *testing.T) {
	s, _ := newSession(t)
	be.True(t, s.Run("y = 1"))
	be.True(t, len(s.Reporter().Reported()) >= 1)
}

func TestNativesAreRegistered(t *testing.T) {
	s, out := newSession(t)
	be.True(t, s.Run(`print(sqrt(9), to_upper("ok"), len([1, 2]))`))
	be.Equal(t, out.String(), "3 OK 2 \n")
}

func TestFixedSeedIsReproducible(t *testing.T) {
	a, aOut := newSession(t)
	b, bOut := newSession(t)
	be.True(t, a.Run("print(rand(1, 1000000))"))
	be.True(t, b.Run("print(rand(1, 1000000))"))
	be.Equal(t, aOut.String(), bOut.String())
}
