package lexer

// TokenType identifies the type of a lexer token.
type TokenType int

const (
	// Special
	TokEOF TokenType = iota
	TokNewline

	// Literals
	TokInt
	TokFloat
	TokString
	TokChar
	TokTrue
	TokFalse

	// Identifiers
	TokIdent

	// Logical operators
	TokAnd
	TokOr
	TokNot

	// Arithmetic operators
	TokPlus
	TokInc // ++
	TokDec // --
	TokMinus
	TokStar
	TokSlash
	TokPercent

	// Assignment and comparison
	TokAssign // =
	TokEqEq   // ==
	TokNotEq  // !=
	TokLt
	TokGt
	TokLtEq
	TokGtEq

	// Punctuation
	TokLParen
	TokRParen
	TokLBrace
	TokRBrace
	TokLBracket
	TokRBracket
	TokComma
	TokSemicolon
	TokColon

	// Keywords
	TokLet
	TokIf
	TokElse
	TokFunc
	TokReturn
	TokPrint
	TokInput
	TokWhile
	TokFor
	TokIn
	TokBreak
	TokContinue
	TokSwitch
	TokCase
	TokDefault
)

// Token represents a single lexer token. Int and Float carry the parsed
// value for number literals; Lexeme carries the text for everything that
// has one.
type Token struct {
	Type   TokenType
	Lexeme string
	Int    int64
	Float  float64
	Line   int
	Col    int
}

var tokenNames = map[TokenType]string{
	TokEOF:       "end of input",
	TokNewline:   "newline",
	TokInt:       "number",
	TokFloat:     "number",
	TokString:    "string",
	TokChar:      "character",
	TokTrue:      "'true'",
	TokFalse:     "'false'",
	TokIdent:     "identifier",
	TokAnd:       "'and'",
	TokOr:        "'or'",
	TokNot:       "'not'",
	TokPlus:      "'+'",
	TokInc:       "'++'",
	TokDec:       "'--'",
	TokMinus:     "'-'",
	TokStar:      "'*'",
	TokSlash:     "'/'",
	TokPercent:   "'%'",
	TokAssign:    "'='",
	TokEqEq:      "'=='",
	TokNotEq:     "'!='",
	TokLt:        "'<'",
	TokGt:        "'>'",
	TokLtEq:      "'<='",
	TokGtEq:      "'>='",
	TokLParen:    "'('",
	TokRParen:    "')'",
	TokLBrace:    "'{'",
	TokRBrace:    "'}'",
	TokLBracket:  "'['",
	TokRBracket:  "']'",
	TokComma:     "','",
	TokSemicolon: "';'",
	TokColon:     "':'",
	TokLet:       "'let'",
	TokIf:        "'if'",
	TokElse:      "'else'",
	TokFunc:      "'func'",
	TokReturn:    "'return'",
	TokPrint:     "'print'",
	TokInput:     "'input'",
	TokWhile:     "'while'",
	TokFor:       "'for'",
	TokIn:        "'in'",
	TokBreak:     "'break'",
	TokContinue:  "'continue'",
	TokSwitch:    "'switch'",
	TokCase:      "'case'",
	TokDefault:   "'default'",
}

// Name returns a human-readable description of a token type for diagnostics.
func Name(t TokenType) string {
	if n, ok := tokenNames[t]; ok {
		return n
	}
	return "token"
}
