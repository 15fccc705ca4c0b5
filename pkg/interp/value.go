package interp

import (
	"fmt"
	"os"
	"strings"
)

// Kind tags a runtime value.
type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindBool
	KindChar
	KindString
	KindList
	KindNative
	KindFile
)

// NativeFn is the calling convention for registered native functions.
type NativeFn func(args []Value) Value

// FileHandle wraps an open file. Handles are shared between value copies on
// purpose: closing through one alias closes them all.
type FileHandle struct {
	F    *os.File
	Path string
}

// Open reports whether the handle still has an underlying file.
func (h *FileHandle) Open() bool {
	return h != nil && h.F != nil
}

// Value is a Luna runtime value. Values have value semantics: variables own
// their storage and copies are deep, with two deliberate exceptions. File
// handles stay shared, and a native call receives a bare list variable's
// slice header so element mutation is visible to the caller.
type Value struct {
	Kind   Kind
	Int    int64
	Float  float64
	Bool   bool
	Char   byte
	Str    string
	Elems  []Value
	Native NativeFn
	File   *FileHandle
}

func Null() Value                { return Value{} }
func IntVal(i int64) Value       { return Value{Kind: KindInt, Int: i} }
func FloatVal(f float64) Value   { return Value{Kind: KindFloat, Float: f} }
func BoolVal(b bool) Value       { return Value{Kind: KindBool, Bool: b} }
func CharVal(c byte) Value       { return Value{Kind: KindChar, Char: c} }
func StrVal(s string) Value      { return Value{Kind: KindString, Str: s} }
func ListVal(xs []Value) Value   { return Value{Kind: KindList, Elems: xs} }
func NativeVal(f NativeFn) Value { return Value{Kind: KindNative, Native: f} }
func FileVal(h *FileHandle) Value {
	return Value{Kind: KindFile, File: h}
}

// Copy returns a deep copy. File handles are shared, not duplicated.
func (v Value) Copy() Value {
	if v.Kind != KindList {
		return v
	}
	elems := make([]Value, len(v.Elems))
	for i, e := range v.Elems {
		elems[i] = e.Copy()
	}
	return Value{Kind: KindList, Elems: elems}
}

// Truthy implements Luna truthiness: booleans as themselves, numbers and
// chars by non-zero, strings by non-empty, null false, lists and natives
// always true, files true while open.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindInt:
		return v.Int != 0
	case KindFloat:
		return v.Float != 0
	case KindString:
		return v.Str != ""
	case KindChar:
		return v.Char != 0
	case KindList, KindNative:
		return true
	case KindFile:
		return v.File.Open()
	}
	return false
}

// String renders a value the way print does.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return fmt.Sprintf("%d", v.Int)
	case KindFloat:
		return fmt.Sprintf("%.6g", v.Float)
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindChar:
		return string(v.Char)
	case KindString:
		return v.Str
	case KindNative:
		return "<native function>"
	case KindFile:
		if v.File.Open() {
			return "<file handle>"
		}
		return "<closed file>"
	case KindList:
		var b strings.Builder
		b.WriteByte('[')
		for i, e := range v.Elems {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(e.String())
		}
		b.WriteByte(']')
		return b.String()
	}
	return "null"
}

// TypeName is the name reported by the type() builtin.
func (v Value) TypeName() string {
	switch v.Kind {
	case KindInt:
		// type() labels values outside 32-bit range as long.
		if v.Int > 2147483647 || v.Int < -2147483648 {
			return "long"
		}
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindChar:
		return "char"
	case KindBool:
		return "boolean"
	case KindList:
		return "list"
	case KindNative:
		return "native_function"
	case KindNull:
		return "null"
	}
	return "unknown"
}
