// Package runtime wires the parser, interpreter and native library into a
// session with a persistent global environment, shared by the file runner
// and the REPL.
package runtime

import (
	"io"

	"github.com/lunalang/luna/pkg/diagnostics"
	"github.com/lunalang/luna/pkg/interp"
	"github.com/lunalang/luna/pkg/parser"
	"github.com/lunalang/luna/pkg/stdlib"
)

// Session holds a global environment that survives across Run calls, so a
// REPL keeps its variables and functions from line to line.
type Session struct {
	rep *diagnostics.Reporter
	in  *interp.Interp
	env *interp.Env
}

// Option configures a Session.
type Option func(*config)

type config struct {
	stdin      io.Reader
	stdout     io.Writer
	diagOut    io.Writer
	exit       func(int)
	seedRandom bool
}

// WithStdin sets the reader backing the input() expression.
func WithStdin(r io.Reader) Option {
	return func(c *config) { c.stdin = r }
}

// WithStdout sets the writer print writes to.
func WithStdout(w io.Writer) Option {
	return func(c *config) { c.stdout = w }
}

// WithDiagOutput redirects rendered diagnostics away from stderr.
func WithDiagOutput(w io.Writer) Option {
	return func(c *config) { c.diagOut = w }
}

// WithExit replaces the process-exit hook used by assert.
func WithExit(fn func(int)) Option {
	return func(c *config) { c.exit = fn }
}

// WithFixedSeed skips the startup entropy seeding so random sequences are
// reproducible until the script calls srand itself.
func WithFixedSeed() Option {
	return func(c *config) { c.seedRandom = false }
}

// New builds a session for the named source (used in diagnostic headers)
// with the full native library registered.
func New(filename string, opts ...Option) *Session {
	cfg := config{seedRandom: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	rep := diagnostics.NewReporter("", filename)
	if cfg.diagOut != nil {
		rep.SetOutput(cfg.diagOut)
	}

	env := interp.NewEnv(nil)
	lib := stdlib.Register(env, rep)
	if cfg.seedRandom {
		if srand := env.Get("srand"); srand != nil && srand.Kind == interp.KindNative {
			srand.Native(nil)
		}
	}

	iopts := []interp.Option{interp.WithVectorOps(lib)}
	if cfg.stdin != nil {
		iopts = append(iopts, interp.WithStdin(cfg.stdin))
	}
	if cfg.stdout != nil {
		iopts = append(iopts, interp.WithStdout(cfg.stdout))
	}
	if cfg.exit != nil {
		iopts = append(iopts, interp.WithExit(cfg.exit))
	}

	return &Session{
		rep: rep,
		in:  interp.New(rep, iopts...),
		env: env,
	}
}

// Run parses and executes one chunk of source against the session
// environment. It returns false when parsing failed; runtime diagnostics
// are reported but do not affect the result.
func (s *Session) Run(source string) bool {
	s.rep.SetSource(source)
	prog, diag := parser.Parse(source, s.rep)
	if diag != nil {
		return false
	}
	s.in.Run(prog, s.env)
	return true
}

// Reporter exposes the session's diagnostics reporter.
func (s *Session) Reporter() *diagnostics.Reporter {
	return s.rep
}

// Env exposes the global environment, mainly for embedding and tests.
func (s *Session) Env() *interp.Env {
	return s.env
}
