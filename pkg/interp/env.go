package interp

import "github.com/lunalang/luna/pkg/ast"

type binding struct {
	name  string
	value Value
}

type funcBinding struct {
	name string
	decl *ast.FuncDecl
	env  *Env // the scope the function was declared in
}

// Env is one scope in the chain. Bindings live in an ordered table that
// grows as names are declared; lookup walks newest to oldest so the most
// recent declaration shadows earlier ones, then climbs to the parent.
// Variables and functions are separate namespaces.
type Env struct {
	parent *Env
	vars   []binding
	funcs  []funcBinding
}

// NewEnv creates a scope. A nil parent makes it a global scope.
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent}
}

// Define declares name in this scope with a deep copy of v. Declaring an
// existing name again shadows it.
func (e *Env) Define(name string, v Value) {
	e.vars = append(e.vars, binding{name: name, value: v.Copy()})
}

// Get returns mutable storage for the most recent declaration of name, or
// nil when the name is unknown anywhere in the chain.
func (e *Env) Get(name string) *Value {
	for env := e; env != nil; env = env.parent {
		for i := len(env.vars) - 1; i >= 0; i-- {
			if env.vars[i].name == name {
				return &env.vars[i].value
			}
		}
	}
	return nil
}

// Assign overwrites the nearest existing declaration with a deep copy of v.
// It reports whether a declaration was found; the caller decides how loudly
// to complain.
func (e *Env) Assign(name string, v Value) bool {
	if slot := e.Get(name); slot != nil {
		*slot = v.Copy()
		return true
	}
	return false
}

// DefineFunc declares a function in this scope, capturing it for lexical
// scoping.
func (e *Env) DefineFunc(name string, decl *ast.FuncDecl) {
	e.funcs = append(e.funcs, funcBinding{name: name, decl: decl, env: e})
}

// Func resolves a function name through the scope chain.
func (e *Env) Func(name string) (*ast.FuncDecl, *Env) {
	for env := e; env != nil; env = env.parent {
		for i := len(env.funcs) - 1; i >= 0; i-- {
			if env.funcs[i].name == name {
				return env.funcs[i].decl, env.funcs[i].env
			}
		}
	}
	return nil, nil
}
