package interp_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"github.com/lunalang/luna/pkg/diagnostics"
	"github.com/lunalang/luna/pkg/interp"
	"github.com/lunalang/luna/pkg/parser"
)

type result struct {
	out   string
	diags []diagnostics.Diagnostic
	exits []int
}

func run(t *testing.T, src string) result {
	t.Helper()
	return runWith(t, src, "", nil)
}

func runWith(t *testing.T, src, stdin string, seed func(*interp.Env)) result {
	t.Helper()
	rep := diagnostics.NewReporter(src, "test.lu")
	rep.SetOutput(io.Discard)
	prog, diag := parser.Parse(src, rep)
	if diag != nil {
		t.Fatalf("parse error: %s", diag.Message)
	}

	var out bytes.Buffer
	res := result{}
	in := interp.New(rep,
		interp.WithStdout(&out),
		interp.WithStdin(strings.NewReader(stdin)),
		interp.WithExit(func(code int) { res.exits = append(res.exits, code) }),
	)
	env := interp.NewEnv(nil)
	if seed != nil {
		seed(env)
	}
	in.Run(prog, env)

	res.out = out.String()
	res.diags = rep.Reported()
	return res
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestIntArithmeticStaysInt(t *testing.T) {
	res := run(t, "print(2 + 3, 7 - 2, 4 * 5, 7 % 3, type(2 + 3))")
	be.Equal(t, res.out, "5 5 20 1 int \n")
}

func TestDivisionAlwaysFloats(t *testing.T) {
	res := run(t, "print(7 / 2, type(7 / 2), 6 / 3)")
	be.Equal(t, res.out, "3.5 float 2 \n")
}

func TestDivisionByZeroIsZero(t *testing.T) {
	res := run(t, "print(5 / 0, type(5 / 0), 5.0 / 0, 5 % 0)")
	be.Equal(t, res.out, "0 int 0 0 \n")
	be.Equal(t, len(res.diags), 0)
}

func TestFloatModuloTruncates(t *testing.T) {
	res := run(t, "print(7.9 % 3, type(7.9 % 3))")
	be.Equal(t, res.out, "1 int \n")
}

func TestFloatEqualityUsesEpsilon(t *testing.T) {
	res := run(t, "print(0.1 + 0.2 == 0.3, 1.0 == 1, 0.1 != 0.1000001)")
	be.Equal(t, res.out, "true true false \n")
}

func TestStringConcatStringifies(t *testing.T) {
	res := run(t, `print("n=" + 42, 1.5 + "!", "b:" + true, "x" + null)`)
	be.Equal(t, res.out, "n=42 1.5! b:true xnull \n")
}

func TestMismatchedOperandsAreNull(t *testing.T) {
	res := run(t, "print(true + 1, [1] * 2, null - 3)")
	be.Equal(t, res.out, "null null null \n")
	be.Equal(t, len(res.diags), 0)
}

func TestShortCircuitReturnsOperand(t *testing.T) {
	res := run(t, `print(0 and "never", 1 and "yes", 0 or "fallback", "left" or "right")`)
	be.Equal(t, res.out, "0 yes fallback left \n")
}

func TestShortCircuitSkipsRightSideEffects(t *testing.T) {
	src := `
let n = 0
func bump() {
    n = n + 1
    return true
}
let x = false and bump()
let y = true or bump()
print(n)`
	res := run(t, src)
	be.Equal(t, res.out, "0 \n")
}

func TestPostfixIncrementReturnsOldValue(t *testing.T) {
	res := run(t, "let x = 5\nprint(x++)\nprint(x)\nlet f = 1.5\nprint(f--)\nprint(f)")
	be.Equal(t, lines(res.out), []string{"5 ", "6 ", "1.5 ", "0.5 "})
}

func TestIncrementOnNonNumberIsNull(t *testing.T) {
	res := run(t, `let s = "hi"
print(s++)
print(s)`)
	be.Equal(t, lines(res.out), []string{"null ", "hi "})
}

func TestBlockShadowing(t *testing.T) {
	src := `
let x = 1
{
    let x = 2
    print(x)
}
print(x)`
	res := run(t, src)
	be.Equal(t, lines(res.out), []string{"2 ", "1 "})
}

func TestPairedLetSeesEarlierSiblings(t *testing.T) {
	res := run(t, `
let a = 1, b = a + 1, c = b * 10
print(a, b, c)`)
	be.Equal(t, res.out, "1 2 20 \n")
}

func TestSemicolonTerminatedStatements(t *testing.T) {
	res := run(t, `let x = 5; let y = x++;
print(y, x)`)
	be.Equal(t, res.out, "5 6 \n")
}

func TestGroupDefinesInCurrentScope(t *testing.T) {
	src := `
let a, b = 1, 2
{
    let c, d = 3, 4
    print(a, b, c, d)
}
print(c)`
	res := run(t, src)
	be.Equal(t, lines(res.out), []string{"1 2 3 4 ", "null "})
}

func TestForLoopVariablePersists(t *testing.T) {
	src := `
let total = 0
for (let i = 0; i < 3; i++) {
    let inner = i * 10
    total = total + i
}
print(total)
print(i)
print(inner)`
	res := run(t, src)
	be.Equal(t, lines(res.out), []string{"3 ", "3 ", "null "})
}

func TestWhileBreakContinue(t *testing.T) {
	src := `
let i = 0
let sum = 0
while (true) {
    i++
    if (i > 5) {
        break
    }
    if (i % 2 == 0) {
        continue
    }
    sum = sum + i
}
print(sum)`
	res := run(t, src)
	be.Equal(t, res.out, "9 \n")
}

func TestSwitchFirstMatchNoFallthrough(t *testing.T) {
	src := `
switch (2) {
case 1:
    print("one")
case 2:
    print("two")
case 2:
    print("again")
default:
    print("other")
}`
	res := run(t, src)
	be.Equal(t, res.out, "two \n")
}

func TestSwitchIntFloatCrossMatch(t *testing.T) {
	src := `
switch (2) {
case 2.0:
    print("matched")
default:
    print("no")
}`
	res := run(t, src)
	be.Equal(t, res.out, "matched \n")
}

func TestSwitchDefaultAnywhere(t *testing.T) {
	src := `
switch (9) {
default:
    print("fallback")
case 1:
    print("one")
}`
	res := run(t, src)
	be.Equal(t, res.out, "fallback \n")
}

func TestSwitchBreakConsumed(t *testing.T) {
	src := `
switch (1) {
case 1:
    print("before")
    break
    print("after")
}
print("done")`
	res := run(t, src)
	be.Equal(t, lines(res.out), []string{"before ", "done "})
}

func TestFunctionCallAndReturn(t *testing.T) {
	src := `
func add(a, b) {
    return a + b
}
print(add(2, 3))`
	res := run(t, src)
	be.Equal(t, res.out, "5 \n")
}

func TestMissingArgumentsBindNull(t *testing.T) {
	src := `
func show(a, b) {
    print(a, b)
}
show(1)`
	res := run(t, src)
	be.Equal(t, res.out, "1 null \n")
}

func TestArgumentsPassByValue(t *testing.T) {
	src := `
func clobber(xs) {
    xs[0] = 99
}
let data = [1, 2]
clobber(data)
print(data[0])`
	res := run(t, src)
	be.Equal(t, res.out, "1 \n")
}

func TestLexicalScoping(t *testing.T) {
	src := `
let base = 10
func addBase(n) {
    return base + n
}
{
    let base = 999
    print(addBase(1))
}`
	res := run(t, src)
	be.Equal(t, res.out, "11 \n")
}

func TestRecursion(t *testing.T) {
	src := `
func fib(n) {
    if (n < 2) {
        return n
    }
    return fib(n - 1) + fib(n - 2)
}
print(fib(10))`
	res := run(t, src)
	be.Equal(t, res.out, "55 \n")
}

func TestRecursionDepthGuard(t *testing.T) {
	src := `
func loop(n) {
    return loop(n + 1)
}
print(loop(0))
print("still here")`
	res := run(t, src)
	be.True(t, len(res.diags) >= 1)
	be.Equal(t, res.diags[0].Category, diagnostics.Runtime)
	be.True(t, strings.HasSuffix(res.out, "still here \n"))
}

func TestUnknownCallIsNull(t *testing.T) {
	res := run(t, "print(no_such_fn(1, 2))")
	be.Equal(t, res.out, "null \n")
	be.Equal(t, len(res.diags), 0)
}

func TestAssignToUndefinedReportsNameError(t *testing.T) {
	res := run(t, `y = 5
print("continues")`)
	be.Equal(t, len(res.diags), 1)
	be.Equal(t, res.diags[0].Category, diagnostics.Name)
	be.True(t, strings.Contains(res.diags[0].Message, "'y' is not defined"))
	be.Equal(t, res.out, "continues \n")
}

func TestIndexReadOutOfRangeIsNull(t *testing.T) {
	res := run(t, `let xs = [1, 2]
print(xs[5], xs[0 - 1], xs["a"], 3[0])`)
	be.Equal(t, res.out, "null null null null \n")
	be.Equal(t, len(res.diags), 0)
}

func TestIndexWriteOutOfRangeErrors(t *testing.T) {
	res := run(t, `let xs = [1, 2]
xs[5] = 9
print(xs)`)
	be.Equal(t, len(res.diags), 1)
	be.Equal(t, res.diags[0].Category, diagnostics.Index)
	be.Equal(t, res.out, "[1, 2] \n")
}

func TestIndexWriteToNonListErrors(t *testing.T) {
	res := run(t, `let n = 3
n[0] = 1`)
	be.Equal(t, len(res.diags), 1)
	be.Equal(t, res.diags[0].Category, diagnostics.Type)
}

func TestNestedIndexAssignment(t *testing.T) {
	src := `
let grid = [[1, 2], [3, 4]]
grid[1][0] = 99
print(grid)`
	res := run(t, src)
	be.Equal(t, res.out, "[[1, 2], [99, 4]] \n")
}

func TestListsCopyOnAssignment(t *testing.T) {
	src := `
let a = [1, 2]
let b = a
b[0] = 99
print(a, b)`
	res := run(t, src)
	be.Equal(t, res.out, "[1, 2] [99, 2] \n")
}

func TestAppendBuiltin(t *testing.T) {
	src := `
let xs = []
append(xs, 1)
append(xs, "two")
print(xs, len(xs))`
	res := run(t, src)
	be.Equal(t, res.out, "[1, two] 2 \n")
}

func TestAppendToNonListErrors(t *testing.T) {
	res := run(t, "append(5, 1)")
	be.Equal(t, len(res.diags), 1)
	be.Equal(t, res.diags[0].Category, diagnostics.Argument)
}

func TestTypeBuiltin(t *testing.T) {
	res := run(t, `print(type(1), type(3000000000), type(1.5), type("s"), type('c'), type(true), type([1]), type(null))`)
	be.Equal(t, res.out, "int long float string char boolean list null \n")
}

func TestIntFloatConversions(t *testing.T) {
	res := run(t, `print(int("42abc"), int(3.9), int(true), int('A'), float("2.5x"), float(3))`)
	be.Equal(t, res.out, "42 3 1 65 2.5 3 \n")
}

func TestAssertTrueContinues(t *testing.T) {
	res := run(t, `print(assert(true))
print("after")`)
	be.Equal(t, len(res.exits), 0)
	be.Equal(t, lines(res.out), []string{"true ", "after "})
}

func TestAssertFalseExits(t *testing.T) {
	res := run(t, "assert(false)")
	be.Equal(t, res.exits, []int{1})
	be.Equal(t, len(res.diags), 1)
	be.Equal(t, res.diags[0].Category, diagnostics.Assertion)
}

func TestAssertWrongArityExits(t *testing.T) {
	res := run(t, "assert(1, 2)")
	be.Equal(t, res.exits, []int{1})
	be.Equal(t, res.diags[0].Category, diagnostics.Argument)
}

func TestNativeListByReference(t *testing.T) {
	seed := func(env *interp.Env) {
		env.Define("zero_first", interp.NativeVal(func(args []interp.Value) interp.Value {
			if len(args) == 1 && args[0].Kind == interp.KindList && len(args[0].Elems) > 0 {
				args[0].Elems[0] = interp.IntVal(0)
			}
			return interp.Null()
		}))
	}
	src := `
let xs = [5, 6]
zero_first(xs)
print(xs)
zero_first([7, 8])
print(xs)`
	res := runWith(t, src, "", seed)
	be.Equal(t, lines(res.out), []string{"[0, 6] ", "[0, 6] "})
}

func TestInputReadsLine(t *testing.T) {
	res := runWith(t, `let name = input("who? ")
print("hi " + name)`, "world\n", nil)
	be.Equal(t, res.out, "who? hi world \n")
}

func TestTruthiness(t *testing.T) {
	src := `print(not 0, not 1, not "", not "x", not null, not [], not 0.0, not 'a')`
	res := run(t, src)
	// Lists are truthy even when empty.
	be.Equal(t, res.out, "true false true false true false true false \n")
}

func TestCharComparison(t *testing.T) {
	res := run(t, `print('a' == 'a', 'a' != 'b')`)
	be.Equal(t, res.out, "true true \n")
}

func TestNullEquality(t *testing.T) {
	res := run(t, `print(null == null, null == 0, null != 1)`)
	be.Equal(t, res.out, "true false true \n")
}

func TestNegativeNumbers(t *testing.T) {
	res := run(t, "print(-5, -2.5, 3 - -2)")
	be.Equal(t, res.out, "-5 -2.5 5 \n")
}
