// Package ast defines the Luna AST node types.
//
// Nodes form an owned tree: a child belongs to exactly one parent and is
// never shared. Every node records the source line it starts on for
// diagnostics.
package ast

// Node is the interface implemented by all AST nodes.
type Node interface {
	Kind() string
	NodeLine() int
}

// BinaryOp represents a binary operator.
type BinaryOp string

const (
	OpAdd  BinaryOp = "+"
	OpSub  BinaryOp = "-"
	OpMul  BinaryOp = "*"
	OpDiv  BinaryOp = "/"
	OpMod  BinaryOp = "%"
	OpLt   BinaryOp = "<"
	OpGt   BinaryOp = ">"
	OpLtEq BinaryOp = "<="
	OpGtEq BinaryOp = ">="
	OpEqEq BinaryOp = "=="
	OpNeq  BinaryOp = "!="
	OpAnd  BinaryOp = "and"
	OpOr   BinaryOp = "or"
)

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	exprNode() // sealed marker
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	stmtNode() // sealed marker
}

// --- Literal expressions ---

type IntLit struct {
	Line  int
	Value int64
}

func (n *IntLit) Kind() string  { return "IntLit" }
func (n *IntLit) NodeLine() int { return n.Line }
func (n *IntLit) exprNode()     {}

type FloatLit struct {
	Line  int
	Value float64
}

func (n *FloatLit) Kind() string  { return "FloatLit" }
func (n *FloatLit) NodeLine() int { return n.Line }
func (n *FloatLit) exprNode()     {}

type BoolLit struct {
	Line  int
	Value bool
}

func (n *BoolLit) Kind() string  { return "BoolLit" }
func (n *BoolLit) NodeLine() int { return n.Line }
func (n *BoolLit) exprNode()     {}

type StrLit struct {
	Line  int
	Value string
}

func (n *StrLit) Kind() string  { return "StrLit" }
func (n *StrLit) NodeLine() int { return n.Line }
func (n *StrLit) exprNode()     {}

type CharLit struct {
	Line  int
	Value byte
}

func (n *CharLit) Kind() string  { return "CharLit" }
func (n *CharLit) NodeLine() int { return n.Line }
func (n *CharLit) exprNode()     {}

type ListLit struct {
	Line  int
	Elems []Expr
}

func (n *ListLit) Kind() string  { return "ListLit" }
func (n *ListLit) NodeLine() int { return n.Line }
func (n *ListLit) exprNode()     {}

// --- Identifier and compound expressions ---

type Ident struct {
	Line int
	Name string
}

func (n *Ident) Kind() string  { return "Ident" }
func (n *Ident) NodeLine() int { return n.Line }
func (n *Ident) exprNode()     {}

type BinaryExpr struct {
	Line  int
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (n *BinaryExpr) Kind() string  { return "BinaryExpr" }
func (n *BinaryExpr) NodeLine() int { return n.Line }
func (n *BinaryExpr) exprNode()     {}

// NotExpr inverts the truthiness of its operand.
type NotExpr struct {
	Line int
	Expr Expr
}

func (n *NotExpr) Kind() string  { return "NotExpr" }
func (n *NotExpr) NodeLine() int { return n.Line }
func (n *NotExpr) exprNode()     {}

// IncExpr is the postfix increment of a variable. It evaluates to the value
// the variable held before the increment.
type IncExpr struct {
	Line int
	Name string
}

func (n *IncExpr) Kind() string  { return "IncExpr" }
func (n *IncExpr) NodeLine() int { return n.Line }
func (n *IncExpr) exprNode()     {}

// DecExpr is the postfix decrement of a variable.
type DecExpr struct {
	Line int
	Name string
}

func (n *DecExpr) Kind() string  { return "DecExpr" }
func (n *DecExpr) NodeLine() int { return n.Line }
func (n *DecExpr) exprNode()     {}

type IndexExpr struct {
	Line   int
	Target Expr
	Index  Expr
}

func (n *IndexExpr) Kind() string  { return "IndexExpr" }
func (n *IndexExpr) NodeLine() int { return n.Line }
func (n *IndexExpr) exprNode()     {}

type CallExpr struct {
	Line int
	Name string
	Args []Expr
}

func (n *CallExpr) Kind() string  { return "CallExpr" }
func (n *CallExpr) NodeLine() int { return n.Line }
func (n *CallExpr) exprNode()     {}

// InputExpr reads one line from standard input, printing Prompt first when
// one was given.
type InputExpr struct {
	Line   int
	Prompt string
}

func (n *InputExpr) Kind() string  { return "InputExpr" }
func (n *InputExpr) NodeLine() int { return n.Line }
func (n *InputExpr) exprNode()     {}

// --- Statements ---

type LetStmt struct {
	Line  int
	Name  string
	Value Expr
}

func (n *LetStmt) Kind() string  { return "LetStmt" }
func (n *LetStmt) NodeLine() int { return n.Line }
func (n *LetStmt) stmtNode()     {}

type AssignStmt struct {
	Line  int
	Name  string
	Value Expr
}

func (n *AssignStmt) Kind() string  { return "AssignStmt" }
func (n *AssignStmt) NodeLine() int { return n.Line }
func (n *AssignStmt) stmtNode()     {}

// AssignIndexStmt writes through an index expression: xs[i] = v.
type AssignIndexStmt struct {
	Line   int
	Target Expr
	Index  Expr
	Value  Expr
}

func (n *AssignIndexStmt) Kind() string  { return "AssignIndexStmt" }
func (n *AssignIndexStmt) NodeLine() int { return n.Line }
func (n *AssignIndexStmt) stmtNode()     {}

type PrintStmt struct {
	Line int
	Args []Expr
}

func (n *PrintStmt) Kind() string  { return "PrintStmt" }
func (n *PrintStmt) NodeLine() int { return n.Line }
func (n *PrintStmt) stmtNode()     {}

type IfStmt struct {
	Line int
	Cond Expr
	Then *BlockStmt
	Else Stmt // *BlockStmt, *IfStmt, or nil
}

func (n *IfStmt) Kind() string  { return "IfStmt" }
func (n *IfStmt) NodeLine() int { return n.Line }
func (n *IfStmt) stmtNode()     {}

type WhileStmt struct {
	Line int
	Cond Expr
	Body *BlockStmt
}

func (n *WhileStmt) Kind() string  { return "WhileStmt" }
func (n *WhileStmt) NodeLine() int { return n.Line }
func (n *WhileStmt) stmtNode()     {}

// ForStmt is the C-style loop. Init and Post may be nil; Cond nil means loop
// forever.
type ForStmt struct {
	Line int
	Init Stmt
	Cond Expr
	Post Stmt
	Body *BlockStmt
}

func (n *ForStmt) Kind() string  { return "ForStmt" }
func (n *ForStmt) NodeLine() int { return n.Line }
func (n *ForStmt) stmtNode()     {}

type CaseClause struct {
	Line  int
	Value Expr
	Body  []Stmt
}

// SwitchStmt matches Subject against each case in source order. Default runs
// when nothing matches, wherever it appeared in the block.
type SwitchStmt struct {
	Line    int
	Subject Expr
	Cases   []CaseClause
	Default []Stmt
}

func (n *SwitchStmt) Kind() string  { return "SwitchStmt" }
func (n *SwitchStmt) NodeLine() int { return n.Line }
func (n *SwitchStmt) stmtNode()     {}

// BlockStmt executes its statements in a fresh child scope.
type BlockStmt struct {
	Line  int
	Stmts []Stmt
}

func (n *BlockStmt) Kind() string  { return "BlockStmt" }
func (n *BlockStmt) NodeLine() int { return n.Line }
func (n *BlockStmt) stmtNode()     {}

// GroupStmt executes its statements in the current scope, with no new scope
// introduced. Multi-name let declarations lower to it.
type GroupStmt struct {
	Line  int
	Stmts []Stmt
}

func (n *GroupStmt) Kind() string  { return "GroupStmt" }
func (n *GroupStmt) NodeLine() int { return n.Line }
func (n *GroupStmt) stmtNode()     {}

type FuncDecl struct {
	Line   int
	Name   string
	Params []string
	Body   *BlockStmt
}

func (n *FuncDecl) Kind() string  { return "FuncDecl" }
func (n *FuncDecl) NodeLine() int { return n.Line }
func (n *FuncDecl) stmtNode()     {}

type ReturnStmt struct {
	Line  int
	Value Expr // nil returns null
}

func (n *ReturnStmt) Kind() string  { return "ReturnStmt" }
func (n *ReturnStmt) NodeLine() int { return n.Line }
func (n *ReturnStmt) stmtNode()     {}

type BreakStmt struct {
	Line int
}

func (n *BreakStmt) Kind() string  { return "BreakStmt" }
func (n *BreakStmt) NodeLine() int { return n.Line }
func (n *BreakStmt) stmtNode()     {}

type ContinueStmt struct {
	Line int
}

func (n *ContinueStmt) Kind() string  { return "ContinueStmt" }
func (n *ContinueStmt) NodeLine() int { return n.Line }
func (n *ContinueStmt) stmtNode()     {}

type ExprStmt struct {
	Line int
	Expr Expr
}

func (n *ExprStmt) Kind() string  { return "ExprStmt" }
func (n *ExprStmt) NodeLine() int { return n.Line }
func (n *ExprStmt) stmtNode()     {}

// Program is the root of a parsed source file.
type Program struct {
	Stmts []Stmt
}

func (n *Program) Kind() string  { return "Program" }
func (n *Program) NodeLine() int { return 1 }
