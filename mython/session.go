package mython

import (
	"context"
	"io"
	"strings"
)

// Session evaluates chunks of source against a persistent top-level scope
// and class registry, so bindings and classes from earlier chunks stay
// visible. It backs the REPL.
type Session struct {
	engine  *Engine
	env     *Env
	classes map[string]*Class
	out     io.Writer
}

// NewSession creates a session whose print output goes to out.
func NewSession(engine *Engine, out io.Writer) *Session {
	return &Session{
		engine:  engine,
		env:     NewEnv(),
		classes: make(map[string]*Class),
		out:     out,
	}
}

// Eval lexes, parses, and executes source in the session scope. The
// result is the value of the last top-level statement, None for an empty
// chunk. Redeclaring a class from an earlier chunk is a parse error, the
// same as within one program.
func (s *Session) Eval(ctx context.Context, source string) (Value, error) {
	lexer, err := NewLexerString(source)
	if err != nil {
		return NewNone(), err
	}
	program, err := newParser(lexer, s.classes).parseProgram()
	if err != nil {
		return NewNone(), err
	}

	exec := newExecution(ctx, s.out, s.engine.config, source)
	last := NewNone()
	for _, stmt := range program.Statements {
		val, _, err := exec.execStatement(stmt, s.env)
		if err != nil {
			return NewNone(), err
		}
		last = val
	}
	return last, nil
}

// Format renders a value the way print would, including __str__ dispatch
// on instances. Nothing is written to the session output.
func (s *Session) Format(v Value) string {
	exec := newExecution(context.Background(), io.Discard, s.engine.config, "")
	var sb strings.Builder
	if err := exec.writeValue(&sb, v); err != nil {
		return v.String()
	}
	return sb.String()
}

// Vars returns a copy of the session's top-level bindings.
func (s *Session) Vars() map[string]Value {
	return s.env.Snapshot()
}
