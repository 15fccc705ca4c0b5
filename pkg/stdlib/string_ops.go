package stdlib

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/lunalang/luna/pkg/diagnostics"
	"github.com/lunalang/luna/pkg/interp"
)

func (l *Lib) stringNatives() []native {
	return []native{
		{"len", l.strLen},
		{"str_len", l.strLen},
		{"is_empty", l.strIsEmpty},
		{"concat", l.strConcat},
		{"substring", l.strSubstring},
		{"slice", l.strSlice},
		{"char_at", l.strCharAt},
		{"index_of", l.strIndexOf},
		{"last_index_of", l.strLastIndexOf},
		{"contains", l.strContains},
		{"starts_with", l.strStartsWith},
		{"ends_with", l.strEndsWith},
		{"to_upper", l.str1("to_upper", strings.ToUpper)},
		{"to_lower", l.str1("to_lower", strings.ToLower)},
		{"trim", l.str1("trim", strings.TrimSpace)},
		{"trim_left", l.str1("trim_left", func(s string) string {
			return strings.TrimLeftFunc(s, unicode.IsSpace)
		})},
		{"trim_right", l.str1("trim_right", func(s string) string {
			return strings.TrimRightFunc(s, unicode.IsSpace)
		})},
		{"replace", l.strReplace},
		{"reverse", l.strReverse},
		{"repeat", l.strRepeat},
		{"pad_left", l.strPadLeft},
		{"pad_right", l.strPadRight},
		{"split", l.strSplit},
		{"join", l.strJoin},
		{"is_digit", l.classCheck("is_digit", isDigitByte)},
		{"is_alpha", l.classCheck("is_alpha", isAlphaByte)},
		{"is_alnum", l.classCheck("is_alnum", isAlnumByte)},
		{"is_space", l.classCheck("is_space", isSpaceByte)},
		{"to_int", l.strToInt},
		{"to_float", l.strToFloat},
	}
}

// strLen measures strings and lists; other types are a type error.
func (l *Lib) strLen(args []interp.Value) interp.Value {
	if len(args) != 1 {
		l.rep.Report(diagnostics.Argument,
			"len() expects exactly 1 argument", "Usage: len(variable)")
		return interp.Null()
	}
	switch args[0].Kind {
	case interp.KindString:
		return interp.IntVal(int64(len(args[0].Str)))
	case interp.KindList:
		return interp.IntVal(int64(len(args[0].Elems)))
	}
	l.rep.Report(diagnostics.Type,
		"len() cannot be used on this type", "len() works on strings and lists.")
	return interp.Null()
}

func (l *Lib) strIsEmpty(args []interp.Value) interp.Value {
	if !l.checkArgs(args, 1, "is_empty") {
		return interp.Null()
	}
	return interp.BoolVal(strArg(args[0]) == "")
}

func (l *Lib) strConcat(args []interp.Value) interp.Value {
	if !l.checkArgs(args, 2, "concat") {
		return interp.Null()
	}
	return interp.StrVal(strArg(args[0]) + strArg(args[1]))
}

// str1 wraps a string transform as a native.
func (l *Lib) str1(name string, fn func(string) string) interp.NativeFn {
	return func(args []interp.Value) interp.Value {
		if !l.checkArgs(args, 1, name) {
			return interp.Null()
		}
		return interp.StrVal(fn(strArg(args[0])))
	}
}

// substring(s, start, len) clamps out-of-range bounds instead of erroring.
func (l *Lib) strSubstring(args []interp.Value) interp.Value {
	if !l.checkArgs(args, 3, "substring") {
		return interp.Null()
	}
	s := strArg(args[0])
	start := toInt(args[1])
	length := toInt(args[2])
	n := int64(len(s))

	if start < 0 {
		start = 0
	}
	if start >= n {
		return interp.StrVal("")
	}
	if length < 0 {
		length = 0
	}
	if start+length > n {
		length = n - start
	}
	return interp.StrVal(s[start : start+length])
}

// slice(x, start, end) takes a half-open range with Python-style negative
// indices and works on both strings and lists.
func (l *Lib) strSlice(args []interp.Value) interp.Value {
	if !l.checkArgs(args, 3, "slice") {
		return interp.Null()
	}

	if args[0].Kind == interp.KindList {
		src := args[0].Elems
		start, end := toInt(args[1]), toInt(args[2])
		n := int64(len(src))
		if start < 0 {
			start += n
		}
		if end < 0 {
			end += n
		}
		if start < 0 {
			start = 0
		}
		if end > n {
			end = n
		}
		if start >= end {
			return interp.ListVal(nil)
		}
		out := make([]interp.Value, 0, end-start)
		for _, v := range src[start:end] {
			out = append(out, v.Copy())
		}
		return interp.ListVal(out)
	}

	s := strArg(args[0])
	start, end := toInt(args[1]), toInt(args[2])
	n := int64(len(s))
	if start < 0 {
		start += n
	}
	if end < 0 {
		end += n
	}
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start >= end {
		return interp.StrVal("")
	}
	return interp.StrVal(s[start:end])
}

// char_at returns a one-character string, or "" when out of range.
func (l *Lib) strCharAt(args []interp.Value) interp.Value {
	if !l.checkArgs(args, 2, "char_at") {
		return interp.Null()
	}
	s := strArg(args[0])
	idx := toInt(args[1])
	if idx < 0 || idx >= int64(len(s)) {
		return interp.StrVal("")
	}
	return interp.StrVal(s[idx : idx+1])
}

func (l *Lib) strIndexOf(args []interp.Value) interp.Value {
	if !l.checkArgs(args, 2, "index_of") {
		return interp.Null()
	}
	haystack, needle := strArg(args[0]), strArg(args[1])
	if haystack == "" || needle == "" {
		return interp.IntVal(-1)
	}
	return interp.IntVal(int64(strings.Index(haystack, needle)))
}

func (l *Lib) strLastIndexOf(args []interp.Value) interp.Value {
	if !l.checkArgs(args, 2, "last_index_of") {
		return interp.Null()
	}
	haystack, needle := strArg(args[0]), strArg(args[1])
	if haystack == "" || needle == "" {
		return interp.IntVal(-1)
	}
	return interp.IntVal(int64(strings.LastIndex(haystack, needle)))
}

func (l *Lib) strContains(args []interp.Value) interp.Value {
	idx := l.strIndexOf(args)
	if idx.Kind != interp.KindInt {
		return idx
	}
	return interp.BoolVal(idx.Int != -1)
}

func (l *Lib) strStartsWith(args []interp.Value) interp.Value {
	if !l.checkArgs(args, 2, "starts_with") {
		return interp.Null()
	}
	return interp.BoolVal(strings.HasPrefix(strArg(args[0]), strArg(args[1])))
}

func (l *Lib) strEndsWith(args []interp.Value) interp.Value {
	if !l.checkArgs(args, 2, "ends_with") {
		return interp.Null()
	}
	return interp.BoolVal(strings.HasSuffix(strArg(args[0]), strArg(args[1])))
}

func (l *Lib) strReplace(args []interp.Value) interp.Value {
	if !l.checkArgs(args, 3, "replace") {
		return interp.Null()
	}
	s, old, repl := strArg(args[0]), strArg(args[1]), strArg(args[2])
	if s == "" || old == "" {
		return interp.StrVal(s)
	}
	return interp.StrVal(strings.ReplaceAll(s, old, repl))
}

func (l *Lib) strReverse(args []interp.Value) interp.Value {
	if !l.checkArgs(args, 1, "reverse") {
		return interp.Null()
	}
	s := strArg(args[0])
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return interp.StrVal(string(b))
}

func (l *Lib) strRepeat(args []interp.Value) interp.Value {
	if !l.checkArgs(args, 2, "repeat") {
		return interp.Null()
	}
	s := strArg(args[0])
	count := toInt(args[1])
	if s == "" || count <= 0 {
		return interp.StrVal("")
	}
	return interp.StrVal(strings.Repeat(s, int(count)))
}

func (l *Lib) strPadLeft(args []interp.Value) interp.Value {
	if !l.checkArgs(args, 3, "pad_left") {
		return interp.Null()
	}
	s := strArg(args[0])
	width := toInt(args[1])
	pad := padChar(strArg(args[2]))
	if s == "" {
		return interp.StrVal("")
	}
	if int64(len(s)) >= width {
		return interp.StrVal(s)
	}
	return interp.StrVal(strings.Repeat(pad, int(width)-len(s)) + s)
}

func (l *Lib) strPadRight(args []interp.Value) interp.Value {
	if !l.checkArgs(args, 3, "pad_right") {
		return interp.Null()
	}
	s := strArg(args[0])
	width := toInt(args[1])
	pad := padChar(strArg(args[2]))
	if s == "" {
		return interp.StrVal("")
	}
	if int64(len(s)) >= width {
		return interp.StrVal(s)
	}
	return interp.StrVal(s + strings.Repeat(pad, int(width)-len(s)))
}

func padChar(s string) string {
	if s == "" {
		return " "
	}
	return s[:1]
}

// split breaks a string on a delimiter, dropping empty tokens. An empty
// delimiter splits into single characters.
func (l *Lib) strSplit(args []interp.Value) interp.Value {
	if !l.checkArgs(args, 2, "split") {
		return interp.Null()
	}
	s, delim := strArg(args[0]), strArg(args[1])
	if s == "" {
		return interp.ListVal(nil)
	}

	var out []interp.Value
	if delim == "" {
		for i := 0; i < len(s); i++ {
			out = append(out, interp.StrVal(s[i:i+1]))
		}
		return interp.ListVal(out)
	}
	for _, tok := range strings.Split(s, delim) {
		if tok != "" {
			out = append(out, interp.StrVal(tok))
		}
	}
	return interp.ListVal(out)
}

// join concatenates the string elements of a list, placing the delimiter
// between every pair of slots. Non-string elements contribute nothing.
func (l *Lib) strJoin(args []interp.Value) interp.Value {
	if !l.checkArgs(args, 2, "join") || args[0].Kind != interp.KindList {
		return interp.StrVal("")
	}
	delim := strArg(args[1])
	var b strings.Builder
	for i, item := range args[0].Elems {
		if i > 0 {
			b.WriteString(delim)
		}
		if item.Kind == interp.KindString {
			b.WriteString(item.Str)
		}
	}
	return interp.StrVal(b.String())
}

// classCheck reports whether every byte of a non-empty string satisfies fn.
func (l *Lib) classCheck(name string, fn func(byte) bool) interp.NativeFn {
	return func(args []interp.Value) interp.Value {
		if !l.checkArgs(args, 1, name) {
			return interp.Null()
		}
		s := strArg(args[0])
		if s == "" {
			return interp.BoolVal(false)
		}
		for i := 0; i < len(s); i++ {
			if !fn(s[i]) {
				return interp.BoolVal(false)
			}
		}
		return interp.BoolVal(true)
	}
}

func isDigitByte(c byte) bool { return c >= '0' && c <= '9' }

func isAlphaByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlnumByte(c byte) bool { return isDigitByte(c) || isAlphaByte(c) }

func isSpaceByte(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// to_int and to_float require the whole string to parse, else they return 0.
func (l *Lib) strToInt(args []interp.Value) interp.Value {
	if !l.checkArgs(args, 1, "to_int") {
		return interp.Null()
	}
	n, err := strconv.ParseInt(strings.TrimSpace(strArg(args[0])), 10, 64)
	if err != nil {
		return interp.IntVal(0)
	}
	return interp.IntVal(n)
}

func (l *Lib) strToFloat(args []interp.Value) interp.Value {
	if !l.checkArgs(args, 1, "to_float") {
		return interp.Null()
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(strArg(args[0])), 64)
	if err != nil {
		return interp.FloatVal(0)
	}
	return interp.FloatVal(f)
}
