// Package interp implements the Luna tree-walking interpreter: values, the
// scope chain, control-flow signals, and the native-function bridge.
package interp

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/lunalang/luna/pkg/ast"
	"github.com/lunalang/luna/pkg/diagnostics"
)

// epsilon is the tolerance for float equality in == and !=.
const epsilon = 1e-6

// maxCallDepth bounds user-function recursion. Crossing it degrades to a
// reported Runtime error instead of exhausting the host stack.
const maxCallDepth = 1000

// VectorOps is the capability backing list-with-list arithmetic. The
// standard library provides the implementation; keeping it behind an
// interface keeps the evaluator free of library code.
type VectorOps interface {
	Add(l, r Value) Value
	Sub(l, r Value) Value
	Mul(l, r Value) Value
	Div(l, r Value) Value
}

// Interp evaluates a parsed program against an environment.
type Interp struct {
	rep    *diagnostics.Reporter
	stdin  *bufio.Reader
	stdout io.Writer
	exit   func(int)
	vector VectorOps
	depth  int
}

// Option configures an Interp.
type Option func(*Interp)

// WithStdin sets the reader backing input().
func WithStdin(r io.Reader) Option {
	return func(in *Interp) { in.stdin = bufio.NewReader(r) }
}

// WithStdout sets the writer print writes to.
func WithStdout(w io.Writer) Option {
	return func(in *Interp) { in.stdout = w }
}

// WithExit replaces the process-exit hook used by assert.
func WithExit(fn func(int)) Option {
	return func(in *Interp) { in.exit = fn }
}

// WithVectorOps installs the list arithmetic capability.
func WithVectorOps(v VectorOps) Option {
	return func(in *Interp) { in.vector = v }
}

// New creates an interpreter reporting through rep.
func New(rep *diagnostics.Reporter, opts ...Option) *Interp {
	in := &Interp{
		rep:    rep,
		stdin:  bufio.NewReader(os.Stdin),
		stdout: os.Stdout,
		exit:   os.Exit,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Run executes every top-level statement against env. Stray break, continue
// or return at the top level is discarded.
func (in *Interp) Run(prog *ast.Program, env *Env) {
	if prog == nil {
		return
	}
	for _, s := range prog.Stmts {
		in.execStmt(env, s)
	}
}

// --- Statement execution ---

func (in *Interp) execStmt(env *Env, n ast.Stmt) Signal {
	if n == nil {
		return signalNone
	}

	switch s := n.(type) {
	case *ast.LetStmt:
		env.Define(s.Name, in.evalExpr(env, s.Value))
		return signalNone

	case *ast.AssignStmt:
		v := in.evalExpr(env, s.Value)
		if !env.Assign(s.Name, v) {
			in.rep.ReportAt(diagnostics.Name,
				fmt.Sprintf("Variable '%s' is not defined. Did you forget to declare it with 'let %s = ...'?", s.Name, s.Name),
				"Declare variables with 'let' before assigning to them",
				s.Line, 0)
		}
		return signalNone

	case *ast.AssignIndexStmt:
		in.assignIndex(env, s)
		return signalNone

	case *ast.PrintStmt:
		for _, arg := range s.Args {
			fmt.Fprintf(in.stdout, "%s ", in.evalExpr(env, arg).String())
		}
		fmt.Fprintln(in.stdout)
		return signalNone

	case *ast.IfStmt:
		if in.evalExpr(env, s.Cond).Truthy() {
			return in.execBlock(NewEnv(env), s.Then.Stmts)
		}
		switch els := s.Else.(type) {
		case *ast.BlockStmt:
			return in.execBlock(NewEnv(env), els.Stmts)
		case *ast.IfStmt:
			return in.execStmt(env, els)
		}
		return signalNone

	case *ast.WhileStmt:
		for in.evalExpr(env, s.Cond).Truthy() {
			sig := in.execBlock(NewEnv(env), s.Body.Stmts)
			if sig.Kind == SigReturn {
				return sig
			}
			if sig.Kind == SigBreak {
				break
			}
			// Continue falls through to the next condition check.
		}
		return signalNone

	case *ast.ForStmt:
		// The initializer runs in the enclosing scope, so the loop variable
		// persists across iterations and stays visible after the loop. Each
		// body run still gets a fresh scope.
		in.execStmt(env, s.Init)
		for {
			if s.Cond != nil && !in.evalExpr(env, s.Cond).Truthy() {
				break
			}
			sig := in.execBlock(NewEnv(env), s.Body.Stmts)
			if sig.Kind == SigReturn {
				return sig
			}
			if sig.Kind == SigBreak {
				break
			}
			in.execStmt(env, s.Post)
		}
		return signalNone

	case *ast.SwitchStmt:
		return in.execSwitch(env, s)

	case *ast.BlockStmt:
		return in.execBlock(NewEnv(env), s.Stmts)

	case *ast.GroupStmt:
		// No new scope: declarations land in the current one.
		return in.execBlock(env, s.Stmts)

	case *ast.FuncDecl:
		env.DefineFunc(s.Name, s)
		return signalNone

	case *ast.ReturnStmt:
		return Signal{Kind: SigReturn, Value: in.evalExpr(env, s.Value)}

	case *ast.BreakStmt:
		return Signal{Kind: SigBreak}

	case *ast.ContinueStmt:
		return Signal{Kind: SigContinue}

	case *ast.ExprStmt:
		in.evalExpr(env, s.Expr)
		return signalNone
	}
	return signalNone
}

// execBlock runs statements in the given scope, stopping at the first
// pending signal and handing it upward.
func (in *Interp) execBlock(scope *Env, stmts []ast.Stmt) Signal {
	for _, s := range stmts {
		if sig := in.execStmt(scope, s); sig.Stops() {
			return sig
		}
	}
	return signalNone
}

func (in *Interp) execSwitch(env *Env, s *ast.SwitchStmt) Signal {
	subject := in.evalExpr(env, s.Subject)
	for _, c := range s.Cases {
		if !switchEqual(subject, in.evalExpr(env, c.Value)) {
			continue
		}
		return in.runCaseBody(env, c.Body)
	}
	if len(s.Default) > 0 {
		return in.runCaseBody(env, s.Default)
	}
	return signalNone
}

// runCaseBody executes one arm in a child scope. A break inside the arm is
// consumed by the switch itself; return and continue keep propagating.
func (in *Interp) runCaseBody(env *Env, body []ast.Stmt) Signal {
	sig := in.execBlock(NewEnv(env), body)
	if sig.Kind == SigBreak {
		return signalNone
	}
	return sig
}

// switchEqual matches case values: same-kind comparison plus int/float
// cross-comparison, stricter than the == operator elsewhere (no epsilon).
func switchEqual(a, b Value) bool {
	if a.Kind == b.Kind {
		switch a.Kind {
		case KindInt:
			return a.Int == b.Int
		case KindFloat:
			return a.Float == b.Float
		case KindString:
			return a.Str == b.Str
		case KindBool:
			return a.Bool == b.Bool
		case KindChar:
			return a.Char == b.Char
		}
		return false
	}
	if a.Kind == KindInt && b.Kind == KindFloat {
		return float64(a.Int) == b.Float
	}
	if a.Kind == KindFloat && b.Kind == KindInt {
		return a.Float == float64(b.Int)
	}
	return false
}

func (in *Interp) assignIndex(env *Env, s *ast.AssignIndexStmt) {
	val := in.evalExpr(env, s.Value)
	target := in.mutableValue(env, s.Target)
	if target == nil || target.Kind != KindList {
		in.rep.ReportAt(diagnostics.Type,
			"Cannot assign to non-list target - target must be a list",
			"Use list indices only on list variables, e.g., myList[0] = value",
			s.Line, 0)
		return
	}
	idx := in.evalExpr(env, s.Index)
	if idx.Kind != KindInt {
		in.rep.ReportAt(diagnostics.Type,
			"List index must be an integer",
			"Use integer values for list indices, e.g., myList[0] or myList[i]",
			s.Line, 0)
		return
	}
	if idx.Int < 0 || idx.Int >= int64(len(target.Elems)) {
		in.rep.ReportAt(diagnostics.Index,
			fmt.Sprintf("Index %d is out of bounds for list of length %d", idx.Int, len(target.Elems)),
			"Ensure your index is between 0 and len(list)-1",
			s.Line, 0)
		return
	}
	target.Elems[idx.Int] = val.Copy()
}

// mutableValue resolves an assignment target to live storage: a variable
// slot, or a list element reached through nested indexing.
func (in *Interp) mutableValue(env *Env, n ast.Expr) *Value {
	switch t := n.(type) {
	case *ast.Ident:
		return env.Get(t.Name)
	case *ast.IndexExpr:
		list := in.mutableValue(env, t.Target)
		if list == nil || list.Kind != KindList {
			return nil
		}
		idx := in.evalExpr(env, t.Index)
		if idx.Kind != KindInt {
			return nil
		}
		if idx.Int < 0 || idx.Int >= int64(len(list.Elems)) {
			in.rep.ReportAt(diagnostics.Index,
				fmt.Sprintf("Index %d is out of bounds for list of length %d", idx.Int, len(list.Elems)),
				"Check that your index is between 0 and len(list)-1",
				t.Line, 0)
			return nil
		}
		return &list.Elems[idx.Int]
	}
	return nil
}

// --- Expression evaluation ---

func (in *Interp) evalExpr(env *Env, n ast.Expr) Value {
	if n == nil {
		return Null()
	}

	switch e := n.(type) {
	case *ast.IntLit:
		return IntVal(e.Value)
	case *ast.FloatLit:
		return FloatVal(e.Value)
	case *ast.StrLit:
		return StrVal(e.Value)
	case *ast.CharLit:
		return CharVal(e.Value)
	case *ast.BoolLit:
		return BoolVal(e.Value)

	case *ast.ListLit:
		elems := make([]Value, 0, len(e.Elems))
		for _, item := range e.Elems {
			elems = append(elems, in.evalExpr(env, item))
		}
		return ListVal(elems)

	case *ast.Ident:
		if v := env.Get(e.Name); v != nil {
			return v.Copy()
		}
		return Null()

	case *ast.BinaryExpr:
		// and/or short-circuit and yield the deciding operand's value.
		if e.Op == ast.OpAnd {
			l := in.evalExpr(env, e.Left)
			if !l.Truthy() {
				return l
			}
			return in.evalExpr(env, e.Right)
		}
		if e.Op == ast.OpOr {
			l := in.evalExpr(env, e.Left)
			if l.Truthy() {
				return l
			}
			return in.evalExpr(env, e.Right)
		}
		return in.evalBinop(e.Op, in.evalExpr(env, e.Left), in.evalExpr(env, e.Right))

	case *ast.NotExpr:
		return BoolVal(!in.evalExpr(env, e.Expr).Truthy())

	case *ast.IndexExpr:
		target := in.evalExpr(env, e.Target)
		idx := in.evalExpr(env, e.Index)
		if target.Kind == KindList && idx.Kind == KindInt {
			if idx.Int >= 0 && idx.Int < int64(len(target.Elems)) {
				return target.Elems[idx.Int].Copy()
			}
		}
		return Null()

	case *ast.IncExpr:
		return in.stepVar(env, e.Name, 1)
	case *ast.DecExpr:
		return in.stepVar(env, e.Name, -1)

	case *ast.CallExpr:
		return in.call(env, e)

	case *ast.InputExpr:
		if e.Prompt != "" {
			fmt.Fprint(in.stdout, e.Prompt)
		}
		line, err := in.stdin.ReadString('\n')
		if err != nil && line == "" {
			return StrVal("")
		}
		return StrVal(strings.TrimRight(line, "\r\n"))
	}
	return Null()
}

// stepVar implements the postfix ++ and -- operators: mutate in place,
// return the pre-mutation value. Non-numeric storage is left alone.
func (in *Interp) stepVar(env *Env, name string, delta int64) Value {
	v := env.Get(name)
	if v == nil {
		return Null()
	}
	switch v.Kind {
	case KindInt:
		old := *v
		v.Int += delta
		return old
	case KindFloat:
		old := *v
		v.Float += float64(delta)
		return old
	}
	return Null()
}

func (in *Interp) evalBinop(op ast.BinaryOp, l, r Value) Value {
	// Pure integer arithmetic keeps integer results, except division.
	if l.Kind == KindInt && r.Kind == KindInt {
		switch op {
		case ast.OpAdd:
			return IntVal(l.Int + r.Int)
		case ast.OpSub:
			return IntVal(l.Int - r.Int)
		case ast.OpMul:
			return IntVal(l.Int * r.Int)
		case ast.OpDiv:
			if r.Int == 0 {
				return IntVal(0)
			}
			return FloatVal(float64(l.Int) / float64(r.Int))
		case ast.OpMod:
			if r.Int == 0 {
				return IntVal(0)
			}
			return IntVal(l.Int % r.Int)
		case ast.OpEqEq:
			return BoolVal(l.Int == r.Int)
		case ast.OpNeq:
			return BoolVal(l.Int != r.Int)
		case ast.OpLt:
			return BoolVal(l.Int < r.Int)
		case ast.OpGt:
			return BoolVal(l.Int > r.Int)
		case ast.OpLtEq:
			return BoolVal(l.Int <= r.Int)
		case ast.OpGtEq:
			return BoolVal(l.Int >= r.Int)
		}
	}

	// Mixed numeric operands promote to float.
	if isNumeric(l) && isNumeric(r) {
		dl, dr := toFloat(l), toFloat(r)
		switch op {
		case ast.OpAdd:
			return FloatVal(dl + dr)
		case ast.OpSub:
			return FloatVal(dl - dr)
		case ast.OpMul:
			return FloatVal(dl * dr)
		case ast.OpDiv:
			if dr == 0 {
				return FloatVal(0)
			}
			return FloatVal(dl / dr)
		case ast.OpMod:
			// Float modulo truncates both operands to integers.
			if int64(dr) == 0 {
				return IntVal(0)
			}
			return IntVal(int64(dl) % int64(dr))
		case ast.OpEqEq:
			return BoolVal(math.Abs(dl-dr) < epsilon)
		case ast.OpNeq:
			return BoolVal(math.Abs(dl-dr) >= epsilon)
		case ast.OpLt:
			return BoolVal(dl < dr)
		case ast.OpGt:
			return BoolVal(dl > dr)
		case ast.OpLtEq:
			return BoolVal(dl <= dr)
		case ast.OpGtEq:
			return BoolVal(dl >= dr)
		}
	}

	if l.Kind == KindString && r.Kind == KindString {
		if op == ast.OpEqEq {
			return BoolVal(l.Str == r.Str)
		}
		if op == ast.OpNeq {
			return BoolVal(l.Str != r.Str)
		}
	}

	if op == ast.OpEqEq {
		if l.Kind == KindBool && r.Kind == KindBool {
			return BoolVal(l.Bool == r.Bool)
		}
		if l.Kind == KindNull && r.Kind == KindNull {
			return BoolVal(true)
		}
		if l.Kind == KindNull || r.Kind == KindNull {
			return BoolVal(false)
		}
	}
	if op == ast.OpNeq {
		if l.Kind == KindBool && r.Kind == KindBool {
			return BoolVal(l.Bool != r.Bool)
		}
		if l.Kind == KindNull && r.Kind == KindNull {
			return BoolVal(false)
		}
		if l.Kind == KindNull || r.Kind == KindNull {
			return BoolVal(true)
		}
	}

	if l.Kind == KindChar && r.Kind == KindChar {
		if op == ast.OpEqEq {
			return BoolVal(l.Char == r.Char)
		}
		if op == ast.OpNeq {
			return BoolVal(l.Char != r.Char)
		}
	}

	// + with a string on either side stringifies and concatenates.
	if op == ast.OpAdd && (l.Kind == KindString || r.Kind == KindString) {
		return StrVal(l.String() + r.String())
	}

	// List with list arithmetic is element-wise vector math.
	if l.Kind == KindList && r.Kind == KindList && in.vector != nil {
		switch op {
		case ast.OpAdd:
			return in.vector.Add(l, r)
		case ast.OpSub:
			return in.vector.Sub(l, r)
		case ast.OpMul:
			return in.vector.Mul(l, r)
		case ast.OpDiv:
			return in.vector.Div(l, r)
		}
	}

	// Anything else is quietly null.
	return Null()
}

func isNumeric(v Value) bool {
	return v.Kind == KindInt || v.Kind == KindFloat
}

func toFloat(v Value) float64 {
	if v.Kind == KindInt {
		return float64(v.Int)
	}
	return v.Float
}

// --- Calls ---

func (in *Interp) call(env *Env, e *ast.CallExpr) Value {
	if v, handled := in.tryBuiltin(env, e); handled {
		return v
	}

	if decl, defEnv := env.Func(e.Name); decl != nil {
		return in.callUser(env, defEnv, decl, e)
	}

	if nv := env.Get(e.Name); nv != nil && nv.Kind == KindNative {
		return in.callNative(env, nv.Native, e.Args)
	}

	// Unknown call targets are quietly null, unlike assignment to an
	// unknown variable.
	return Null()
}

func (in *Interp) callUser(env, defEnv *Env, decl *ast.FuncDecl, e *ast.CallExpr) Value {
	if in.depth >= maxCallDepth {
		in.rep.ReportAt(diagnostics.Runtime,
			fmt.Sprintf("Maximum call depth (%d) exceeded calling '%s'", maxCallDepth, e.Name),
			"Check the function for unbounded recursion",
			e.Line, 0)
		return Null()
	}

	// Arguments evaluate eagerly, left to right, in the caller's scope; the
	// body runs in a fresh scope under the defining scope. Missing trailing
	// arguments bind null.
	scope := NewEnv(defEnv)
	for i, param := range decl.Params {
		var v Value
		if i < len(e.Args) {
			v = in.evalExpr(env, e.Args[i])
		}
		scope.Define(param, v)
	}

	in.depth++
	sig := in.execBlock(scope, decl.Body.Stmts)
	in.depth--

	if sig.Kind == SigReturn {
		return sig.Value
	}
	return Null()
}

func (in *Interp) callNative(env *Env, fn NativeFn, args []ast.Expr) Value {
	argv := make([]Value, len(args))
	for i, a := range args {
		// A bare identifier naming a list passes its live slice so natives
		// can mutate elements in place.
		if id, ok := a.(*ast.Ident); ok {
			if ref := env.Get(id.Name); ref != nil && ref.Kind == KindList {
				argv[i] = *ref
				continue
			}
		}
		argv[i] = in.evalExpr(env, a)
	}
	return fn(argv)
}
