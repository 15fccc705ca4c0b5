// Package parser implements Luna's recursive descent parser.
//
// Error handling is first-error-wins: the first structural problem is
// reported through the Reporter and a sticky failure flag makes every
// remaining parse function unwind immediately. A failed parse discards the
// partial tree, so callers either get a complete program or none at all.
package parser

import (
	"fmt"

	"github.com/lunalang/luna/pkg/ast"
	"github.com/lunalang/luna/pkg/diagnostics"
	"github.com/lunalang/luna/pkg/lexer"
)

type parser struct {
	lx     *lexer.Lexer
	cur    lexer.Token
	rep    *diagnostics.Reporter
	failed bool
	diag   *diagnostics.Diagnostic
}

// Parse tokenizes and parses source. Diagnostics are rendered through rep;
// the first one is also returned. A nil diagnostic means success.
func Parse(source string, rep *diagnostics.Reporter) (*ast.Program, *diagnostics.Diagnostic) {
	p := &parser{lx: lexer.New(source), rep: rep}
	p.cur = p.lx.Next()

	var stmts []ast.Stmt
	for !p.check(lexer.TokEOF) {
		if p.failed {
			break
		}
		if p.match(lexer.TokNewline) || p.match(lexer.TokSemicolon) {
			continue
		}
		if s := p.statement(); s != nil {
			stmts = append(stmts, s)
		}
	}
	if p.failed {
		return nil, p.diag
	}
	return &ast.Program{Stmts: stmts}, nil
}

func (p *parser) advance() {
	if p.failed {
		return
	}
	p.cur = p.lx.Next()
}

func (p *parser) check(t lexer.TokenType) bool {
	if p.failed {
		return false
	}
	return p.cur.Type == t
}

func (p *parser) match(t lexer.TokenType) bool {
	if p.check(t) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) fail(message, suggestion string) {
	if p.failed {
		return
	}
	p.failed = true
	d := diagnostics.Diagnostic{
		Category:   diagnostics.Syntax,
		Message:    message,
		Suggestion: suggestion,
		Line:       p.cur.Line,
		Col:        p.cur.Col,
	}
	p.diag = &d
	p.rep.ReportAt(d.Category, d.Message, d.Suggestion, d.Line, d.Col)
}

func (p *parser) consume(t lexer.TokenType, errMsg string) {
	if p.failed {
		return
	}
	if p.check(t) {
		p.advance()
		return
	}
	p.fail(errMsg, suggestFor(p.cur.Type, t))
}

func suggestFor(found, expected lexer.TokenType) string {
	switch expected {
	case lexer.TokRParen:
		return "Missing closing parenthesis - check if all opening '(' have matching ')'"
	case lexer.TokRBrace:
		return "Missing closing brace - check if all opening '{' have matching '}'"
	case lexer.TokRBracket:
		return "Missing closing bracket - check if all opening '[' have matching ']'"
	case lexer.TokSemicolon:
		return "Missing semicolon - statements in for/while may need to end with ';'"
	case lexer.TokAssign:
		return "Missing assignment operator - use '=' to assign values"
	}
	if found == lexer.TokAssign && expected == lexer.TokEqEq {
		return "Use '==' for comparison, '=' is for assignment"
	}
	return fmt.Sprintf("Expected %s but found %s", lexer.Name(expected), lexer.Name(found))
}

// --- Expressions ---

func (p *parser) primary() ast.Expr {
	if p.failed {
		return nil
	}
	line := p.cur.Line

	switch {
	case p.check(lexer.TokInt):
		v := p.cur.Int
		p.advance()
		return &ast.IntLit{Line: line, Value: v}
	case p.check(lexer.TokFloat):
		v := p.cur.Float
		p.advance()
		return &ast.FloatLit{Line: line, Value: v}
	case p.check(lexer.TokString):
		s := p.cur.Lexeme
		p.advance()
		return &ast.StrLit{Line: line, Value: s}
	case p.check(lexer.TokChar):
		c := byte(p.cur.Int)
		p.advance()
		return &ast.CharLit{Line: line, Value: c}
	case p.match(lexer.TokTrue):
		return &ast.BoolLit{Line: line, Value: true}
	case p.match(lexer.TokFalse):
		return &ast.BoolLit{Line: line, Value: false}
	case p.check(lexer.TokIdent):
		name := p.cur.Lexeme
		p.advance()
		return &ast.Ident{Line: line, Name: name}
	case p.match(lexer.TokLParen):
		expr := p.expression()
		p.consume(lexer.TokRParen, "Expected ')' after expression")
		return expr
	case p.match(lexer.TokLBracket):
		var elems []ast.Expr
		if !p.check(lexer.TokRBracket) {
			for {
				if e := p.expression(); e != nil {
					elems = append(elems, e)
				}
				if !p.match(lexer.TokComma) {
					break
				}
			}
		}
		p.consume(lexer.TokRBracket, "Expected ']' at end of list")
		return &ast.ListLit{Line: line, Elems: elems}
	case p.match(lexer.TokInput):
		p.consume(lexer.TokLParen, "Expected '(' after input")
		prompt := ""
		if !p.check(lexer.TokRParen) {
			if p.check(lexer.TokString) {
				prompt = p.cur.Lexeme
				p.advance()
			} else {
				p.fail("Expected string prompt for input",
					"Use input(\"prompt\") to get user input with a message")
				return nil
			}
		}
		p.consume(lexer.TokRParen, "Expected ')' after input")
		return &ast.InputExpr{Line: line, Prompt: prompt}
	}

	p.fail(fmt.Sprintf("Unexpected token %s", lexer.Name(p.cur.Type)),
		"Expected an expression (number, string, variable, or '(')")
	return nil
}

func (p *parser) callOrIndex() ast.Expr {
	line := p.cur.Line
	expr := p.primary()

	for {
		if p.failed {
			return expr
		}

		switch {
		case p.match(lexer.TokLParen):
			var args []ast.Expr
			if !p.check(lexer.TokRParen) {
				for {
					if a := p.expression(); a != nil {
						args = append(args, a)
					}
					if !p.match(lexer.TokComma) {
						break
					}
				}
			}
			p.consume(lexer.TokRParen, "Expected ')' after arguments")
			id, ok := expr.(*ast.Ident)
			if !ok {
				p.fail("Function call requires a function name",
					"Only identifiers (function names) can be called, e.g., 'myFunction()'")
				return nil
			}
			expr = &ast.CallExpr{Line: line, Name: id.Name, Args: args}
		case p.match(lexer.TokLBracket):
			idx := p.expression()
			p.consume(lexer.TokRBracket, "Expected ']' after index")
			if expr != nil && idx != nil {
				expr = &ast.IndexExpr{Line: line, Target: expr, Index: idx}
			}
		case p.match(lexer.TokInc):
			id, ok := expr.(*ast.Ident)
			if !ok {
				p.fail("'++' can only be applied to variables",
					"Use '++' only on variable names, e.g., 'count++'")
				return nil
			}
			expr = &ast.IncExpr{Line: line, Name: id.Name}
		case p.match(lexer.TokDec):
			id, ok := expr.(*ast.Ident)
			if !ok {
				p.fail("'--' can only be applied to variables",
					"Use '--' only on variable names, e.g., 'count--'")
				return nil
			}
			expr = &ast.DecExpr{Line: line, Name: id.Name}
		default:
			return expr
		}
	}
}

func (p *parser) unary() ast.Expr {
	line := p.cur.Line
	if p.match(lexer.TokNot) {
		return &ast.NotExpr{Line: line, Expr: p.unary()}
	}
	if p.match(lexer.TokMinus) {
		// Negation lowers to 0 - x.
		if right := p.unary(); right != nil {
			return &ast.BinaryExpr{Line: line, Op: ast.OpSub, Left: &ast.IntLit{Line: line}, Right: right}
		}
		return nil
	}
	if p.match(lexer.TokPlus) {
		return p.unary()
	}
	return p.callOrIndex()
}

func (p *parser) binaryLevel(next func() ast.Expr, ops map[lexer.TokenType]ast.BinaryOp) ast.Expr {
	line := p.cur.Line
	expr := next()
	for {
		if p.failed {
			return expr
		}
		op, ok := ops[p.cur.Type]
		if !ok {
			return expr
		}
		p.advance()
		right := next()
		if expr != nil && right != nil {
			expr = &ast.BinaryExpr{Line: line, Op: op, Left: expr, Right: right}
		}
	}
}

func (p *parser) multiplication() ast.Expr {
	return p.binaryLevel(p.unary, map[lexer.TokenType]ast.BinaryOp{
		lexer.TokStar:    ast.OpMul,
		lexer.TokSlash:   ast.OpDiv,
		lexer.TokPercent: ast.OpMod,
	})
}

func (p *parser) addition() ast.Expr {
	return p.binaryLevel(p.multiplication, map[lexer.TokenType]ast.BinaryOp{
		lexer.TokPlus:  ast.OpAdd,
		lexer.TokMinus: ast.OpSub,
	})
}

func (p *parser) comparison() ast.Expr {
	return p.binaryLevel(p.addition, map[lexer.TokenType]ast.BinaryOp{
		lexer.TokLt:   ast.OpLt,
		lexer.TokGt:   ast.OpGt,
		lexer.TokLtEq: ast.OpLtEq,
		lexer.TokGtEq: ast.OpGtEq,
	})
}

func (p *parser) equality() ast.Expr {
	return p.binaryLevel(p.comparison, map[lexer.TokenType]ast.BinaryOp{
		lexer.TokEqEq:  ast.OpEqEq,
		lexer.TokNotEq: ast.OpNeq,
	})
}

func (p *parser) logicalAnd() ast.Expr {
	return p.binaryLevel(p.equality, map[lexer.TokenType]ast.BinaryOp{
		lexer.TokAnd: ast.OpAnd,
	})
}

func (p *parser) logicalOr() ast.Expr {
	return p.binaryLevel(p.logicalAnd, map[lexer.TokenType]ast.BinaryOp{
		lexer.TokOr: ast.OpOr,
	})
}

func (p *parser) expression() ast.Expr {
	if p.failed {
		return nil
	}
	return p.logicalOr()
}

// --- Statements ---

func (p *parser) statement() ast.Stmt {
	if p.failed {
		return nil
	}
	line := p.cur.Line

	switch {
	case p.match(lexer.TokFunc):
		return p.funcDecl()
	case p.match(lexer.TokLet):
		return p.letStmt(line)
	case p.match(lexer.TokPrint):
		p.consume(lexer.TokLParen, "Expected '(' after print")
		var args []ast.Expr
		if !p.check(lexer.TokRParen) {
			for {
				if a := p.expression(); a != nil {
					args = append(args, a)
				}
				if !p.match(lexer.TokComma) {
					break
				}
			}
		}
		p.consume(lexer.TokRParen, "Expected ')' after print args")
		return &ast.PrintStmt{Line: line, Args: args}
	case p.match(lexer.TokReturn):
		var value ast.Expr
		if !p.check(lexer.TokRBrace) {
			value = p.expression()
		}
		return &ast.ReturnStmt{Line: line, Value: value}
	case p.match(lexer.TokBreak):
		return &ast.BreakStmt{Line: line}
	case p.match(lexer.TokContinue):
		return &ast.ContinueStmt{Line: line}
	case p.match(lexer.TokIf):
		return p.ifStmt(line)
	case p.match(lexer.TokWhile):
		return p.whileStmt(line)
	case p.match(lexer.TokFor):
		return p.forStmt(line)
	case p.match(lexer.TokSwitch):
		return p.switchStmt(line)
	case p.match(lexer.TokLBrace):
		body := p.block(line)
		if p.failed {
			return nil
		}
		return body
	}

	return p.exprOrAssignment(line)
}

func (p *parser) letStmt(line int) ast.Stmt {
	if !p.check(lexer.TokIdent) {
		p.fail("Expected variable name after 'let' or ','",
			"Variables must be identifiers (e.g., let a, b, c)")
		return nil
	}
	first := p.cur.Lexeme
	p.advance()

	// `let a = 1, b = a + 1` pairs each name with its own initializer. The
	// list form `let a, b = 1, 2` is taken when a comma comes before '='.
	if p.check(lexer.TokAssign) {
		return p.letPairs(line, first)
	}

	names := []string{first}
	for p.match(lexer.TokComma) {
		if !p.check(lexer.TokIdent) {
			p.fail("Expected variable name after 'let' or ','",
				"Variables must be identifiers (e.g., let a, b, c)")
			return nil
		}
		names = append(names, p.cur.Lexeme)
		p.advance()
	}

	var values []ast.Expr
	if p.match(lexer.TokAssign) {
		for {
			values = append(values, p.expression())
			if !p.match(lexer.TokComma) {
				break
			}
		}
	}

	if len(values) > 0 && len(values) != len(names) {
		p.fail(fmt.Sprintf("Variable count (%d) does not match value count (%d)", len(names), len(values)),
			"Ensure you provide a value for every variable declared, or none at all.")
		return nil
	}
	if p.failed {
		return nil
	}

	lets := make([]ast.Stmt, len(names))
	for i, name := range names {
		var value ast.Expr
		if len(values) > 0 {
			value = values[i]
		}
		lets[i] = &ast.LetStmt{Line: line, Name: name, Value: value}
	}
	if len(lets) == 1 {
		return lets[0]
	}
	// A group runs in the current scope, so every name lands where a single
	// let would have put it.
	return &ast.GroupStmt{Line: line, Stmts: lets}
}

// letPairs parses `name = expr [, name = expr]*` once the first name has been
// seen followed by '='. Declarations run in order in the current scope, so a
// later initializer can read an earlier name.
func (p *parser) letPairs(line int, first string) ast.Stmt {
	var lets []ast.Stmt
	name := first
	for {
		p.consume(lexer.TokAssign, "Expected '=' after variable name")
		value := p.expression()
		if value == nil || p.failed {
			return nil
		}
		lets = append(lets, &ast.LetStmt{Line: line, Name: name, Value: value})
		if !p.match(lexer.TokComma) {
			break
		}
		if !p.check(lexer.TokIdent) {
			p.fail("Expected variable name after ','",
				"Variables must be identifiers (e.g., let a = 1, b = 2)")
			return nil
		}
		name = p.cur.Lexeme
		p.advance()
	}
	if len(lets) == 1 {
		return lets[0]
	}
	return &ast.GroupStmt{Line: line, Stmts: lets}
}

func (p *parser) ifStmt(line int) ast.Stmt {
	p.consume(lexer.TokLParen, "Expected '(' after if")
	cond := p.expression()
	p.consume(lexer.TokRParen, "Expected ')' after condition")
	p.match(lexer.TokNewline)
	p.consume(lexer.TokLBrace, "Expected '{'")
	then := p.block(line)

	p.match(lexer.TokNewline)
	var els ast.Stmt
	if p.match(lexer.TokElse) {
		elseLine := p.cur.Line
		p.match(lexer.TokNewline)
		if p.match(lexer.TokIf) {
			els = p.ifStmt(elseLine)
		} else {
			p.consume(lexer.TokLBrace, "Expected '{'")
			els = p.block(elseLine)
		}
	}

	if cond == nil || p.failed {
		return nil
	}
	return &ast.IfStmt{Line: line, Cond: cond, Then: then, Else: els}
}

func (p *parser) whileStmt(line int) ast.Stmt {
	p.consume(lexer.TokLParen, "Expected '(' after while")
	cond := p.expression()
	p.consume(lexer.TokRParen, "Expected ')'")
	p.match(lexer.TokNewline)
	p.consume(lexer.TokLBrace, "Expected '{'")
	body := p.block(line)
	if cond == nil || p.failed {
		return nil
	}
	return &ast.WhileStmt{Line: line, Cond: cond, Body: body}
}

func (p *parser) forStmt(line int) ast.Stmt {
	p.consume(lexer.TokLParen, "Expected '(' after for")
	init := p.statement()
	p.consume(lexer.TokSemicolon, "Expected ';' after loop initializer")
	cond := p.expression()
	p.consume(lexer.TokSemicolon, "Expected ';' after loop condition")
	post := p.statement()
	p.consume(lexer.TokRParen, "Expected ')' after loop increment")
	p.match(lexer.TokNewline)
	p.consume(lexer.TokLBrace, "Expected '{' for loop body")
	body := p.block(line)
	if p.failed {
		return nil
	}
	return &ast.ForStmt{Line: line, Init: init, Cond: cond, Post: post, Body: body}
}

func (p *parser) switchStmt(line int) ast.Stmt {
	p.consume(lexer.TokLParen, "Expected '(' after switch")
	subject := p.expression()
	p.consume(lexer.TokRParen, "Expected ')'")
	p.consume(lexer.TokLBrace, "Expected '{' starting switch block")

	var cases []ast.CaseClause
	var def []ast.Stmt
	for !p.check(lexer.TokRBrace) && !p.check(lexer.TokEOF) {
		if p.failed {
			break
		}
		caseLine := p.cur.Line
		switch {
		case p.match(lexer.TokCase):
			value := p.expression()
			p.consume(lexer.TokColon, "Expected ':' after case value")
			body := p.caseBody()
			if value != nil {
				cases = append(cases, ast.CaseClause{Line: caseLine, Value: value, Body: body})
			}
		case p.match(lexer.TokDefault):
			p.consume(lexer.TokColon, "Expected ':' after default")
			def = append(def, p.caseBody()...)
		case p.match(lexer.TokNewline):
		default:
			p.fail("Expected 'case' or 'default' inside switch",
				"Switch blocks must contain 'case value:' or 'default:' statements")
			return nil
		}
	}
	p.consume(lexer.TokRBrace, "Expected '}' ending switch")
	if subject == nil || p.failed {
		return nil
	}
	return &ast.SwitchStmt{Line: line, Subject: subject, Cases: cases, Default: def}
}

func (p *parser) caseBody() []ast.Stmt {
	var body []ast.Stmt
	for !p.check(lexer.TokCase) && !p.check(lexer.TokDefault) && !p.check(lexer.TokRBrace) {
		if p.failed {
			break
		}
		if p.match(lexer.TokNewline) || p.match(lexer.TokSemicolon) {
			continue
		}
		if s := p.statement(); s != nil {
			body = append(body, s)
		}
	}
	return body
}

// block parses statements up to the closing brace. The opening brace has
// already been consumed.
func (p *parser) block(line int) *ast.BlockStmt {
	var stmts []ast.Stmt
	for !p.check(lexer.TokRBrace) && !p.check(lexer.TokEOF) {
		if p.failed {
			return nil
		}
		if p.match(lexer.TokNewline) || p.match(lexer.TokSemicolon) {
			continue
		}
		if s := p.statement(); s != nil {
			stmts = append(stmts, s)
		}
	}
	p.consume(lexer.TokRBrace, "Expected '}'")
	return &ast.BlockStmt{Line: line, Stmts: stmts}
}

func (p *parser) funcDecl() ast.Stmt {
	if p.failed {
		return nil
	}
	line := p.cur.Line

	if !p.check(lexer.TokIdent) {
		p.fail("Expected function name after 'func'",
			"Use 'func functionName(params) { ... }' to define a function")
		return nil
	}
	name := p.cur.Lexeme
	p.advance()

	p.consume(lexer.TokLParen, "Expected '('")
	var params []string
	if !p.check(lexer.TokRParen) {
		for {
			if !p.check(lexer.TokIdent) {
				p.fail("Expected parameter name",
					"Function parameters must be valid identifiers, e.g., 'func add(a, b)'")
				return nil
			}
			params = append(params, p.cur.Lexeme)
			p.advance()
			if !p.match(lexer.TokComma) {
				break
			}
		}
	}
	p.consume(lexer.TokRParen, "Expected ')'")
	p.consume(lexer.TokLBrace, "Expected '{'")
	body := p.block(line)
	if p.failed {
		return nil
	}
	return &ast.FuncDecl{Line: line, Name: name, Params: params, Body: body}
}

func (p *parser) exprOrAssignment(line int) ast.Stmt {
	expr := p.expression()
	if p.match(lexer.TokAssign) {
		switch target := expr.(type) {
		case *ast.Ident:
			value := p.expression()
			if value == nil || p.failed {
				return nil
			}
			return &ast.AssignStmt{Line: line, Name: target.Name, Value: value}
		case *ast.IndexExpr:
			value := p.expression()
			if value == nil || p.failed {
				return nil
			}
			return &ast.AssignIndexStmt{Line: line, Target: target.Target, Index: target.Index, Value: value}
		default:
			p.fail("Invalid assignment target",
				"You can only assign to variables (e.g., 'x = 5') or list indices (e.g., 'arr[0] = 5')")
			return nil
		}
	}
	if expr == nil {
		return nil
	}
	return &ast.ExprStmt{Line: line, Expr: expr}
}
