package mython

import (
	"fmt"
	"strings"
)

// LexError reports a malformed character stream: bad indentation, an
// unterminated string, an unrecognized escape, or a raw newline inside a
// string literal.
type LexError struct {
	Message string
	Pos     Position
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// ParseError reports a grammar violation or a class-registry conflict.
type ParseError struct {
	Message string
	Pos     Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// StackFrame is one entry of the mython call stack at the moment a runtime
// error was raised.
type StackFrame struct {
	Method string
	Pos    Position
}

// RuntimeError aborts evaluation. It carries the mython call stack and,
// when the source is known, a rendered code frame pointing at the
// offending position.
type RuntimeError struct {
	Message   string
	Pos       Position
	CodeFrame string
	Frames    []StackFrame
}

func (e *RuntimeError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.CodeFrame != "" {
		b.WriteString("\n")
		b.WriteString(e.CodeFrame)
	}
	for _, frame := range e.Frames {
		if frame.Pos.Line > 0 {
			fmt.Fprintf(&b, "\n  at %s (%d:%d)", frame.Method, frame.Pos.Line, frame.Pos.Column)
		} else {
			fmt.Fprintf(&b, "\n  at %s", frame.Method)
		}
	}
	return b.String()
}
