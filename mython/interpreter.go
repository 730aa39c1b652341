package mython

import (
	"context"
	"io"
)

const defaultRecursionLimit = 256

// Config controls interpreter execution bounds.
type Config struct {
	// StepQuota bounds the number of evaluation steps; zero means
	// unbounded.
	StepQuota int
	// RecursionLimit bounds the mython method-call depth. Zero selects
	// the default.
	RecursionLimit int
}

// Engine compiles and runs Mython programs.
type Engine struct {
	config Config
}

// NewEngine constructs an Engine, applying defaults to the config.
func NewEngine(cfg Config) *Engine {
	if cfg.RecursionLimit <= 0 {
		cfg.RecursionLimit = defaultRecursionLimit
	}
	return &Engine{config: cfg}
}

// Config returns the engine's effective configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Compile lexes and parses source into a runnable Script. Failures are
// *LexError or *ParseError.
func (e *Engine) Compile(source string) (*Script, error) {
	lexer, err := NewLexerString(source)
	if err != nil {
		return nil, err
	}
	program, err := Parse(lexer)
	if err != nil {
		return nil, err
	}
	return &Script{engine: e, program: program, source: source}, nil
}

// Script is a compiled program bound to its engine.
type Script struct {
	engine  *Engine
	program *Program
	source  string
}

// Program exposes the parsed tree.
func (s *Script) Program() *Program {
	return s.program
}

// Run executes the script against a fresh top-level scope, writing print
// output to out. The context is polled between evaluation steps; nothing
// suspends. Failures are *RuntimeError or the context's error.
func (s *Script) Run(ctx context.Context, out io.Writer) error {
	exec := newExecution(ctx, out, s.engine.config, s.source)
	_, _, err := exec.execStatements(s.program.Statements, NewEnv())
	return err
}
