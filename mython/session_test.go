package mython

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func newTestSession(t *testing.T) (*Session, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return NewSession(NewEngine(Config{}), &out), &out
}

func TestSessionKeepsBindings(t *testing.T) {
	s, out := newTestSession(t)
	ctx := context.Background()

	if _, err := s.Eval(ctx, "a = 10"); err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if _, err := s.Eval(ctx, "b = a + 5"); err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	val, err := s.Eval(ctx, "print b")
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if out.String() != "15\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
	if val.Kind() != KindString || val.Str() != "15" {
		t.Fatalf("print statement value should be the line, got %s %q", val.Kind(), val.String())
	}
}

func TestSessionLastStatementValue(t *testing.T) {
	s, _ := newTestSession(t)
	val, err := s.Eval(context.Background(), "a = 2 + 3")
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if val.Kind() != KindNumber || val.Int() != 5 {
		t.Fatalf("unexpected value %s", val)
	}
}

func TestSessionKeepsClasses(t *testing.T) {
	s, out := newTestSession(t)
	ctx := context.Background()

	src := "class Dog:\n  def __init__(name):\n    self.name = name\n  def bark():\n    print self.name\n"
	if _, err := s.Eval(ctx, src); err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if _, err := s.Eval(ctx, "d = Dog('rex')"); err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if _, err := s.Eval(ctx, "d.bark()"); err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if out.String() != "rex\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestSessionRejectsClassRedefinition(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()
	src := "class A:\n  def m():\n    return 1\n"

	if _, err := s.Eval(ctx, src); err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if _, err := s.Eval(ctx, src); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected duplicate class error, got %v", err)
	}
}

func TestSessionFormatDispatchesStr(t *testing.T) {
	s, out := newTestSession(t)
	ctx := context.Background()

	src := "class G:\n  def __str__():\n    return 'pretty'\n"
	if _, err := s.Eval(ctx, src); err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	val, err := s.Eval(ctx, "g = G()")
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if got := s.Format(val); got != "pretty" {
		t.Fatalf("unexpected format %q", got)
	}
	if out.Len() != 0 {
		t.Fatalf("Format wrote to session output: %q", out.String())
	}
}

func TestSessionVars(t *testing.T) {
	s, _ := newTestSession(t)
	if _, err := s.Eval(context.Background(), "a = 1\nb = 'two'"); err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	vars := s.Vars()
	if len(vars) != 2 || vars["a"].Int() != 1 || vars["b"].Str() != "two" {
		t.Fatalf("unexpected vars %v", vars)
	}
}
