package parser_test

import (
	"io"
	"testing"

	"github.com/nalgeon/be"

	"github.com/lunalang/luna/pkg/ast"
	"github.com/lunalang/luna/pkg/diagnostics"
	"github.com/lunalang/luna/pkg/parser"
)

func parse(t *testing.T, source string) (*ast.Program, *diagnostics.Diagnostic) {
	t.Helper()
	rep := diagnostics.NewReporter(source, "test.lu")
	rep.SetOutput(io.Discard)
	return parser.Parse(source, rep)
}

func mustParse(t *testing.T, source string) *ast.Program {
	t.Helper()
	prog, diag := parse(t, source)
	if diag != nil {
		t.Fatalf("unexpected parse error: %s", diag.Message)
	}
	return prog
}

func mustFail(t *testing.T, source string) *diagnostics.Diagnostic {
	t.Helper()
	prog, diag := parse(t, source)
	if diag == nil {
		t.Fatalf("expected parse error for %q", source)
	}
	if prog != nil {
		t.Fatal("failed parse must not return a partial tree")
	}
	return diag
}

func TestLetStatement(t *testing.T) {
	prog := mustParse(t, "let x = 42")
	be.Equal(t, len(prog.Stmts), 1)
	let, ok := prog.Stmts[0].(*ast.LetStmt)
	be.True(t, ok)
	be.Equal(t, let.Name, "x")
	lit, ok := let.Value.(*ast.IntLit)
	be.True(t, ok)
	be.Equal(t, lit.Value, int64(42))
}

func TestMultiLetLowersToGroup(t *testing.T) {
	prog := mustParse(t, "let a, b, c = 1, 2, 3")
	be.Equal(t, len(prog.Stmts), 1)
	group, ok := prog.Stmts[0].(*ast.GroupStmt)
	be.True(t, ok)
	be.Equal(t, len(group.Stmts), 3)
	for i, name := range []string{"a", "b", "c"} {
		let := group.Stmts[i].(*ast.LetStmt)
		be.Equal(t, let.Name, name)
		be.Equal(t, let.Value.(*ast.IntLit).Value, int64(i+1))
	}
}

func TestMultiLetCountMismatch(t *testing.T) {
	diag := mustFail(t, "let a, b = 1, 2, 3")
	be.Equal(t, diag.Category, diagnostics.Syntax)
	be.Equal(t, diag.Message, "Variable count (2) does not match value count (3)")
}

func TestPairedLetInitializers(t *testing.T) {
	prog := mustParse(t, "let a = 1, b = a + 1")
	group, ok := prog.Stmts[0].(*ast.GroupStmt)
	be.True(t, ok)
	be.Equal(t, len(group.Stmts), 2)
	be.Equal(t, group.Stmts[0].(*ast.LetStmt).Name, "a")
	second := group.Stmts[1].(*ast.LetStmt)
	be.Equal(t, second.Name, "b")
	be.Equal(t, second.Value.(*ast.BinaryExpr).Op, ast.OpAdd)
}

func TestPairedLetRequiresNamedPairs(t *testing.T) {
	diag := mustFail(t, "let a = 1, 2")
	be.Equal(t, diag.Message, "Expected variable name after ','")
}

func TestMultiLetTooFewValues(t *testing.T) {
	diag := mustFail(t, "let b, c = 1")
	be.Equal(t, diag.Message, "Variable count (2) does not match value count (1)")
}

func TestLetWithoutValue(t *testing.T) {
	prog := mustParse(t, "let a, b")
	group := prog.Stmts[0].(*ast.GroupStmt)
	be.Equal(t, len(group.Stmts), 2)
	be.True(t, group.Stmts[0].(*ast.LetStmt).Value == nil)
}

func TestPrecedence(t *testing.T) {
	prog := mustParse(t, "let x = 1 + 2 * 3")
	add := prog.Stmts[0].(*ast.LetStmt).Value.(*ast.BinaryExpr)
	be.Equal(t, add.Op, ast.OpAdd)
	mul := add.Right.(*ast.BinaryExpr)
	be.Equal(t, mul.Op, ast.OpMul)
}

func TestComparisonBindsTighterThanLogic(t *testing.T) {
	prog := mustParse(t, "let x = a < b and c > d or e")
	or := prog.Stmts[0].(*ast.LetStmt).Value.(*ast.BinaryExpr)
	be.Equal(t, or.Op, ast.OpOr)
	and := or.Left.(*ast.BinaryExpr)
	be.Equal(t, and.Op, ast.OpAnd)
	be.Equal(t, and.Left.(*ast.BinaryExpr).Op, ast.OpLt)
}

func TestUnaryMinusLowersToSubtraction(t *testing.T) {
	prog := mustParse(t, "let x = -y")
	sub := prog.Stmts[0].(*ast.LetStmt).Value.(*ast.BinaryExpr)
	be.Equal(t, sub.Op, ast.OpSub)
	be.Equal(t, sub.Left.(*ast.IntLit).Value, int64(0))
	be.Equal(t, sub.Right.(*ast.Ident).Name, "y")
}

func TestPostfixIncrement(t *testing.T) {
	prog := mustParse(t, "x++")
	inc := prog.Stmts[0].(*ast.ExprStmt).Expr.(*ast.IncExpr)
	be.Equal(t, inc.Name, "x")
}

func TestIncrementOnLiteralFails(t *testing.T) {
	diag := mustFail(t, "5++")
	be.Equal(t, diag.Message, "'++' can only be applied to variables")
}

func TestCallOnLiteralFails(t *testing.T) {
	diag := mustFail(t, "let x = (1)(2)")
	be.Equal(t, diag.Message, "Function call requires a function name")
}

func TestIndexChain(t *testing.T) {
	prog := mustParse(t, "let x = m[0][1]")
	outer := prog.Stmts[0].(*ast.LetStmt).Value.(*ast.IndexExpr)
	inner := outer.Target.(*ast.IndexExpr)
	be.Equal(t, inner.Target.(*ast.Ident).Name, "m")
}

func TestIfElseChain(t *testing.T) {
	src := `
if (a) {
    print("a")
} else if (b) {
    print("b")
} else {
    print("c")
}`
	prog := mustParse(t, src)
	ifStmt := prog.Stmts[0].(*ast.IfStmt)
	elseIf, ok := ifStmt.Else.(*ast.IfStmt)
	be.True(t, ok)
	_, ok = elseIf.Else.(*ast.BlockStmt)
	be.True(t, ok)
}

func TestNewlineBeforeBrace(t *testing.T) {
	mustParse(t, "if (x)\n{\nprint(1)\n}")
	mustParse(t, "while (x)\n{\n}")
}

func TestBareBlockStatement(t *testing.T) {
	prog := mustParse(t, "let x = 1\n{\nlet x = 2\nprint(x)\n}\nprint(x)")
	be.Equal(t, len(prog.Stmts), 3)
	block, ok := prog.Stmts[1].(*ast.BlockStmt)
	be.True(t, ok)
	be.Equal(t, len(block.Stmts), 2)
}

func TestSemicolonsSeparateStatements(t *testing.T) {
	prog := mustParse(t, "let x = 5; let y = x++;\ny = 1;")
	be.Equal(t, len(prog.Stmts), 3)

	prog = mustParse(t, "if (true) { print(1); print(2); }")
	then := prog.Stmts[0].(*ast.IfStmt).Then
	be.Equal(t, len(then.Stmts), 2)
}

func TestForLoop(t *testing.T) {
	prog := mustParse(t, "for (let i = 0; i < 10; i++) { print(i) }")
	f := prog.Stmts[0].(*ast.ForStmt)
	_, ok := f.Init.(*ast.LetStmt)
	be.True(t, ok)
	be.Equal(t, f.Cond.(*ast.BinaryExpr).Op, ast.OpLt)
	post := f.Post.(*ast.ExprStmt).Expr.(*ast.IncExpr)
	be.Equal(t, post.Name, "i")
}

func TestSwitch(t *testing.T) {
	src := `
switch (x) {
case 1:
    print("one")
case 2:
    print("two")
default:
    print("other")
}`
	prog := mustParse(t, src)
	sw := prog.Stmts[0].(*ast.SwitchStmt)
	be.Equal(t, len(sw.Cases), 2)
	be.Equal(t, len(sw.Default), 1)
}

func TestSwitchRejectsBareStatements(t *testing.T) {
	diag := mustFail(t, "switch (x) { print(1) }")
	be.Equal(t, diag.Message, "Expected 'case' or 'default' inside switch")
}

func TestFuncDecl(t *testing.T) {
	prog := mustParse(t, "func add(a, b) { return a + b }")
	fn := prog.Stmts[0].(*ast.FuncDecl)
	be.Equal(t, fn.Name, "add")
	be.Equal(t, fn.Params, []string{"a", "b"})
	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)
	be.True(t, ret.Value != nil)
}

func TestBareReturnBeforeBrace(t *testing.T) {
	prog := mustParse(t, "func f() { return }")
	ret := prog.Stmts[0].(*ast.FuncDecl).Body.Stmts[0].(*ast.ReturnStmt)
	be.True(t, ret.Value == nil)
}

func TestAssignmentTargets(t *testing.T) {
	prog := mustParse(t, "x = 5\nxs[0] = 5")
	_, ok := prog.Stmts[0].(*ast.AssignStmt)
	be.True(t, ok)
	_, ok = prog.Stmts[1].(*ast.AssignIndexStmt)
	be.True(t, ok)
}

func TestInvalidAssignmentTarget(t *testing.T) {
	diag := mustFail(t, "1 + 2 = 3")
	be.Equal(t, diag.Message, "Invalid assignment target")
}

func TestKeywordAliasesParseIdentically(t *testing.T) {
	canonical := mustParse(t, "let x = 1\nwhile (x < 3) { x++ }")
	aliased := mustParse(t, "balls x = 1\nspin_balls (x < 3) { x++ }")
	be.Equal(t, len(aliased.Stmts), len(canonical.Stmts))
	_, ok := aliased.Stmts[1].(*ast.WhileStmt)
	be.True(t, ok)
}

func TestFirstErrorWins(t *testing.T) {
	src := "let = 1\nlet = 2"
	rep := diagnostics.NewReporter(src, "test.lu")
	rep.SetOutput(io.Discard)
	prog, diag := parser.Parse(src, rep)
	be.True(t, prog == nil)
	be.True(t, diag != nil)
	be.Equal(t, len(rep.Reported()), 1)
	be.Equal(t, diag.Line, 1)
}

func TestInputExpr(t *testing.T) {
	prog := mustParse(t, `let name = input("who? ")`)
	in := prog.Stmts[0].(*ast.LetStmt).Value.(*ast.InputExpr)
	be.Equal(t, in.Prompt, "who? ")

	prog = mustParse(t, "let line = input()")
	in = prog.Stmts[0].(*ast.LetStmt).Value.(*ast.InputExpr)
	be.Equal(t, in.Prompt, "")
}
