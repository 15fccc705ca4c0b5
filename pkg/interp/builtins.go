package interp

import (
	"strconv"

	"github.com/lunalang/luna/pkg/ast"
	"github.com/lunalang/luna/pkg/diagnostics"
)

// tryBuiltin intercepts the fixed built-in calls by name before user and
// native functions get a look. The boolean reports whether the call was
// handled; an arity mismatch on len/type/int/float falls through to normal
// resolution so the library versions of those names can answer instead.
func (in *Interp) tryBuiltin(env *Env, e *ast.CallExpr) (Value, bool) {
	switch e.Name {
	case "len":
		if len(e.Args) == 1 {
			v := in.evalExpr(env, e.Args[0])
			switch v.Kind {
			case KindString:
				return IntVal(int64(len(v.Str))), true
			case KindList:
				return IntVal(int64(len(v.Elems))), true
			}
			return IntVal(0), true
		}

	case "append":
		if len(e.Args) != 2 {
			in.rep.ReportAt(diagnostics.Argument,
				"append() takes 2 arguments (list, value)",
				"Use append(myList, value) to add an element",
				e.Line, 0)
			return Null(), true
		}
		list := in.mutableValue(env, e.Args[0])
		item := in.evalExpr(env, e.Args[1])
		if list != nil && list.Kind == KindList {
			list.Elems = append(list.Elems, item.Copy())
		} else {
			in.rep.ReportAt(diagnostics.Argument,
				"append() expects a list variable as the first argument",
				"Use append(myList, value) where myList is a list variable",
				e.Line, 0)
		}
		return Null(), true

	case "type":
		if len(e.Args) == 1 {
			return StrVal(in.evalExpr(env, e.Args[0]).TypeName()), true
		}

	case "int":
		if len(e.Args) == 1 {
			v := in.evalExpr(env, e.Args[0])
			switch v.Kind {
			case KindString:
				return IntVal(parseIntPrefix(v.Str)), true
			case KindFloat:
				return IntVal(int64(v.Float)), true
			case KindInt:
				return IntVal(v.Int), true
			case KindBool:
				if v.Bool {
					return IntVal(1), true
				}
				return IntVal(0), true
			case KindChar:
				return IntVal(int64(v.Char)), true
			}
			return IntVal(0), true
		}

	case "float":
		if len(e.Args) == 1 {
			v := in.evalExpr(env, e.Args[0])
			switch v.Kind {
			case KindString:
				return FloatVal(parseFloatPrefix(v.Str)), true
			case KindInt:
				return FloatVal(float64(v.Int)), true
			case KindFloat:
				return FloatVal(v.Float), true
			case KindBool:
				if v.Bool {
					return FloatVal(1), true
				}
				return FloatVal(0), true
			}
			return FloatVal(0), true
		}

	case "assert":
		if len(e.Args) != 1 {
			in.rep.ReportAt(diagnostics.Argument,
				"assert() takes exactly 1 argument",
				"Use assert(condition) to verify logic.",
				e.Line, 0)
			in.exit(1)
			return Null(), true
		}
		if !in.evalExpr(env, e.Args[0]).Truthy() {
			in.rep.ReportAt(diagnostics.Assertion,
				"Assertion failed",
				"The condition evaluated to false.",
				e.Line, 0)
			in.exit(1)
			return Null(), true
		}
		return BoolVal(true), true
	}

	return Null(), false
}

// parseIntPrefix converts the leading integer portion of s, C atoll style:
// optional whitespace and sign, then digits; anything else yields 0.
func parseIntPrefix(s string) int64 {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n') {
		i++
	}
	start := i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == digits {
		return 0
	}
	n, _ := strconv.ParseInt(s[start:i], 10, 64)
	return n
}

// parseFloatPrefix converts the leading float portion of s, C atof style.
func parseFloatPrefix(s string) float64 {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n') {
		i++
	}
	start := i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && s[j] >= '0' && s[j] <= '9' {
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			i = j
		}
	}
	f, err := strconv.ParseFloat(s[start:i], 64)
	if err != nil {
		return 0
	}
	return f
}
