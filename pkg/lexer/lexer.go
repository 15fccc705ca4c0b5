// Package lexer implements the Luna tokenizer.
//
// Lexing never fails: a character the scanner does not recognize becomes a
// one-character identifier token and the parser decides what to make of it.
package lexer

import "strconv"

var keywords = map[string]TokenType{
	"let":      TokLet,
	"if":       TokIf,
	"else":     TokElse,
	"func":     TokFunc,
	"return":   TokReturn,
	"print":    TokPrint,
	"input":    TokInput,
	"true":     TokTrue,
	"false":    TokFalse,
	"while":    TokWhile,
	"for":      TokFor,
	"in":       TokIn,
	"break":    TokBreak,
	"continue": TokContinue,
	"switch":   TokSwitch,
	"case":     TokCase,
	"default":  TokDefault,
	"and":      TokAnd,
	"or":       TokOr,
	"not":      TokNot,

	// The language ships with a set of alternate spellings. They lex to the
	// same tokens as the canonical keywords.
	"balls":           TokLet,
	"big_balls":       TokLet,
	"shared_balls":    TokLet,
	"loop_your_balls": TokFor,
	"spin_balls":      TokWhile,
	"if_balls":        TokIf,
	"else_balls":      TokElse,
	"switch_balls":    TokSwitch,
	"drop_balls":      TokBreak,
	"jiggle_balls":    TokContinue,
	"grab_balls":      TokFunc,
}

// Lexer scans Luna source one token at a time.
type Lexer struct {
	source string
	pos    int
	line   int
	col    int
}

// New creates a lexer over source.
func New(source string) *Lexer {
	return &Lexer{source: source, line: 1, col: 1}
}

// Tokenize scans the whole input, ending with an EOF token.
func Tokenize(source string) []Token {
	lx := New(source)
	var toks []Token
	for {
		t := lx.Next()
		toks = append(toks, t)
		if t.Type == TokEOF {
			return toks
		}
	}
}

func (lx *Lexer) atEnd() bool {
	return lx.pos >= len(lx.source)
}

func (lx *Lexer) peek() byte {
	if lx.atEnd() {
		return 0
	}
	return lx.source[lx.pos]
}

func (lx *Lexer) peekAt(offset int) byte {
	p := lx.pos + offset
	if p >= len(lx.source) {
		return 0
	}
	return lx.source[p]
}

func (lx *Lexer) advance() byte {
	ch := lx.source[lx.pos]
	lx.pos++
	if ch == '\n' {
		lx.line++
		lx.col = 1
	} else {
		lx.col++
	}
	return ch
}

func (lx *Lexer) skipBlanks() {
	for !lx.atEnd() {
		ch := lx.peek()
		if ch == ' ' || ch == '\t' || ch == '\r' {
			lx.advance()
		} else if ch == '#' || (ch == '/' && lx.peekAt(1) == '/') {
			for !lx.atEnd() && lx.peek() != '\n' {
				lx.advance()
			}
		} else {
			break
		}
	}
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlphaNumeric(ch byte) bool {
	return isAlpha(ch) || isDigit(ch)
}

func (lx *Lexer) token(t TokenType, lexeme string, line, col int) Token {
	return Token{Type: t, Lexeme: lexeme, Line: line, Col: col}
}

// Next returns the next token, TokEOF at end of input. Newlines are tokens;
// the parser decides where they are significant.
func (lx *Lexer) Next() Token {
	lx.skipBlanks()
	line, col := lx.line, lx.col
	if lx.atEnd() {
		return lx.token(TokEOF, "", line, col)
	}

	ch := lx.peek()
	switch {
	case ch == '\n':
		lx.advance()
		return lx.token(TokNewline, "\n", line, col)
	case isDigit(ch):
		return lx.scanNumber()
	case isAlpha(ch):
		return lx.scanIdentOrKeyword()
	case ch == '"':
		return lx.scanString()
	case ch == '\'':
		return lx.scanChar()
	}

	lx.advance()
	two := func(t TokenType, lexeme string) Token {
		lx.advance()
		return lx.token(t, lexeme, line, col)
	}
	switch ch {
	case '+':
		if lx.peek() == '+' {
			return two(TokInc, "++")
		}
		return lx.token(TokPlus, "+", line, col)
	case '-':
		if lx.peek() == '-' {
			return two(TokDec, "--")
		}
		return lx.token(TokMinus, "-", line, col)
	case '*':
		return lx.token(TokStar, "*", line, col)
	case '/':
		return lx.token(TokSlash, "/", line, col)
	case '%':
		return lx.token(TokPercent, "%", line, col)
	case '=':
		if lx.peek() == '=' {
			return two(TokEqEq, "==")
		}
		return lx.token(TokAssign, "=", line, col)
	case '!':
		if lx.peek() == '=' {
			return two(TokNotEq, "!=")
		}
		return lx.token(TokNot, "!", line, col)
	case '<':
		if lx.peek() == '=' {
			return two(TokLtEq, "<=")
		}
		return lx.token(TokLt, "<", line, col)
	case '>':
		if lx.peek() == '=' {
			return two(TokGtEq, ">=")
		}
		return lx.token(TokGt, ">", line, col)
	case '&':
		if lx.peek() == '&' {
			return two(TokAnd, "&&")
		}
	case '|':
		if lx.peek() == '|' {
			return two(TokOr, "||")
		}
	case '(':
		return lx.token(TokLParen, "(", line, col)
	case ')':
		return lx.token(TokRParen, ")", line, col)
	case '{':
		return lx.token(TokLBrace, "{", line, col)
	case '}':
		return lx.token(TokRBrace, "}", line, col)
	case '[':
		return lx.token(TokLBracket, "[", line, col)
	case ']':
		return lx.token(TokRBracket, "]", line, col)
	case ',':
		return lx.token(TokComma, ",", line, col)
	case ';':
		return lx.token(TokSemicolon, ";", line, col)
	case ':':
		return lx.token(TokColon, ":", line, col)
	}

	// Unknown character: degrade to a one-character identifier.
	return lx.token(TokIdent, string(ch), line, col)
}

func (lx *Lexer) scanNumber() Token {
	line, col := lx.line, lx.col
	start := lx.pos
	for !lx.atEnd() && isDigit(lx.peek()) {
		lx.advance()
	}
	isFloat := false
	if lx.peek() == '.' && isDigit(lx.peekAt(1)) {
		isFloat = true
		lx.advance()
		for !lx.atEnd() && isDigit(lx.peek()) {
			lx.advance()
		}
	}
	text := lx.source[start:lx.pos]
	if isFloat {
		f, _ := strconv.ParseFloat(text, 64)
		return Token{Type: TokFloat, Lexeme: text, Float: f, Line: line, Col: col}
	}
	n, _ := strconv.ParseInt(text, 10, 64)
	return Token{Type: TokInt, Lexeme: text, Int: n, Line: line, Col: col}
}

func (lx *Lexer) scanIdentOrKeyword() Token {
	line, col := lx.line, lx.col
	start := lx.pos
	for !lx.atEnd() && isAlphaNumeric(lx.peek()) {
		lx.advance()
	}
	text := lx.source[start:lx.pos]
	if t, ok := keywords[text]; ok {
		return lx.token(t, text, line, col)
	}
	return lx.token(TokIdent, text, line, col)
}

func (lx *Lexer) scanString() Token {
	line, col := lx.line, lx.col
	lx.advance() // opening quote
	var buf []byte
	for !lx.atEnd() && lx.peek() != '"' {
		ch := lx.advance()
		if ch == '\\' && !lx.atEnd() {
			esc := lx.advance()
			switch esc {
			case 'n':
				buf = append(buf, '\n')
			case 't':
				buf = append(buf, '\t')
			case 'r':
				buf = append(buf, '\r')
			case '0':
				buf = append(buf, 0)
			case '"':
				buf = append(buf, '"')
			case '\\':
				buf = append(buf, '\\')
			default:
				buf = append(buf, '\\', esc)
			}
			continue
		}
		buf = append(buf, ch)
	}
	if !lx.atEnd() {
		lx.advance() // closing quote
	}
	return Token{Type: TokString, Lexeme: string(buf), Line: line, Col: col}
}

func (lx *Lexer) scanChar() Token {
	line, col := lx.line, lx.col
	lx.advance() // opening quote
	var ch byte
	if !lx.atEnd() {
		ch = lx.advance()
		if ch == '\\' && !lx.atEnd() {
			switch lx.advance() {
			case 'n':
				ch = '\n'
			case 't':
				ch = '\t'
			case '0':
				ch = 0
			case '\'':
				ch = '\''
			case '\\':
				ch = '\\'
			}
		}
	}
	if lx.peek() == '\'' {
		lx.advance()
	}
	return Token{Type: TokChar, Lexeme: string(ch), Int: int64(ch), Line: line, Col: col}
}
