package mython

import (
	"context"
	"fmt"
	"io"
	"strings"
)

const (
	initMethod = "__init__"
	strMethod  = "__str__"
	addMethod  = "__add__"
	eqMethod   = "__eq__"
	ltMethod   = "__lt__"
)

// Execution carries the mutable state of one program run: the output sink,
// the step counter, and the mython call stack. Statement evaluation
// returns (value, returned, error); the returned flag is the non-local
// return signal and is absorbed at the method-call boundary.
type Execution struct {
	out    io.Writer
	source string
	ctx    context.Context

	quota        int
	steps        int
	recursionCap int
	callStack    []StackFrame
}

func newExecution(ctx context.Context, out io.Writer, cfg Config, source string) *Execution {
	if cfg.RecursionLimit <= 0 {
		cfg.RecursionLimit = defaultRecursionLimit
	}
	return &Execution{
		out:          out,
		source:       source,
		ctx:          ctx,
		quota:        cfg.StepQuota,
		recursionCap: cfg.RecursionLimit,
	}
}

// Execute runs a parsed program against a fresh top-level scope with
// default limits, writing print output to out.
func Execute(program *Program, out io.Writer) error {
	exec := newExecution(context.Background(), out, Config{}, "")
	_, _, err := exec.execStatements(program.Statements, NewEnv())
	return err
}

func (exec *Execution) step() error {
	exec.steps++
	if exec.quota > 0 && exec.steps > exec.quota {
		return &RuntimeError{Message: fmt.Sprintf("step quota exceeded (%d)", exec.quota)}
	}
	if exec.ctx != nil {
		select {
		case <-exec.ctx.Done():
			return exec.ctx.Err()
		default:
		}
	}
	return nil
}

func (exec *Execution) execStatements(stmts []Statement, env *Env) (Value, bool, error) {
	for _, stmt := range stmts {
		val, returned, err := exec.execStatement(stmt, env)
		if err != nil {
			return NewNone(), false, err
		}
		if returned {
			return val, true, nil
		}
	}
	return NewNone(), false, nil
}

func (exec *Execution) execStatement(stmt Statement, env *Env) (Value, bool, error) {
	if err := exec.step(); err != nil {
		return NewNone(), false, err
	}

	switch s := stmt.(type) {
	case *AssignStmt:
		val, err := exec.evalExpr(s.Value, env)
		if err != nil {
			return NewNone(), false, err
		}
		env.Define(s.Name, val)
		return val, false, nil

	case *FieldAssignStmt:
		obj, err := exec.evalExpr(s.Object, env)
		if err != nil {
			return NewNone(), false, err
		}
		inst := obj.Instance()
		if inst == nil {
			return NewNone(), false, exec.errorAt(s.Pos(), "cannot assign field %s: %s is not a class instance", s.Field, obj.Kind())
		}
		val, err := exec.evalExpr(s.Value, env)
		if err != nil {
			return NewNone(), false, err
		}
		inst.Fields().Define(s.Field, val)
		return val, false, nil

	case *PrintStmt:
		val, err := exec.execPrint(s, env)
		return val, false, err

	case *ReturnStmt:
		val, err := exec.evalExpr(s.Value, env)
		if err != nil {
			return NewNone(), false, err
		}
		return val, true, nil

	case *IfStmt:
		cond, err := exec.evalExpr(s.Condition, env)
		if err != nil {
			return NewNone(), false, err
		}
		if cond.Kind() != KindBool {
			return NewNone(), false, exec.errorAt(s.Pos(), "if condition must be a Bool, got %s", cond.Kind())
		}
		if cond.Bool() {
			return exec.execStatements(s.Consequent, env)
		}
		if len(s.Alternate) > 0 {
			return exec.execStatements(s.Alternate, env)
		}
		return NewNone(), false, nil

	case *ClassStmt:
		val := NewClass(s.Class)
		env.Define(s.Class.Name(), val)
		return val, false, nil

	case *ExprStmt:
		val, err := exec.evalExpr(s.Expr, env)
		return val, false, err
	}

	return NewNone(), false, exec.errorAt(stmt.Pos(), "unsupported statement")
}

// execPrint evaluates every argument first, then emits the joined line and
// its terminator in a single write. The statement's value is the printed
// line without the newline.
func (exec *Execution) execPrint(s *PrintStmt, env *Env) (Value, error) {
	var sb strings.Builder
	for i, arg := range s.Args {
		if i > 0 {
			sb.WriteByte(' ')
		}
		val, err := exec.evalExpr(arg, env)
		if err != nil {
			return NewNone(), err
		}
		if err := exec.writeValue(&sb, val); err != nil {
			return NewNone(), err
		}
	}

	line := sb.String()
	if _, err := io.WriteString(exec.out, line+"\n"); err != nil {
		return NewNone(), exec.errorAt(s.Pos(), "write output: %v", err)
	}
	return NewString(line), nil
}

func (exec *Execution) evalExpr(expr Expression, env *Env) (Value, error) {
	if err := exec.step(); err != nil {
		return NewNone(), err
	}

	switch e := expr.(type) {
	case *NumberLiteral:
		return NewNumber(e.Value), nil
	case *StringLiteral:
		return NewString(e.Value), nil
	case *BoolLiteral:
		return NewBool(e.Value), nil
	case *NoneLiteral:
		return NewNone(), nil
	case *VariableExpr:
		return exec.resolveVariable(e, env)
	case *BinaryExpr:
		return exec.evalBinary(e, env)
	case *CompareExpr:
		return exec.evalCompare(e, env)
	case *OrExpr:
		return exec.evalOr(e, env)
	case *AndExpr:
		return exec.evalAnd(e, env)
	case *NotExpr:
		return exec.evalNot(e, env)
	case *MethodCallExpr:
		return exec.evalMethodCall(e, env)
	case *NewInstanceExpr:
		return exec.evalNewInstance(e, env)
	case *StringifyExpr:
		return exec.evalStringify(e, env)
	}

	return NewNone(), exec.errorAt(expr.Pos(), "unsupported expression")
}

// resolveVariable walks a dotted path: the first name in the current
// scope, every further name in the fields of the instance resolved so far.
func (exec *Execution) resolveVariable(e *VariableExpr, env *Env) (Value, error) {
	scope := env
	for i, name := range e.Names {
		val, ok := scope.Get(name)
		if !ok {
			if i == 0 {
				return NewNone(), exec.errorAt(e.Pos(), "undefined name %s", name)
			}
			return NewNone(), exec.errorAt(e.Pos(), "no field %s on %s", name, strings.Join(e.Names[:i], "."))
		}
		if i == len(e.Names)-1 {
			return val, nil
		}
		inst := val.Instance()
		if inst == nil {
			return NewNone(), exec.errorAt(e.Pos(), "%s is a %s, not a class instance", strings.Join(e.Names[:i+1], "."), val.Kind())
		}
		scope = inst.Fields()
	}
	return NewNone(), exec.errorAt(e.Pos(), "empty variable path")
}

func (exec *Execution) errorAt(pos Position, format string, args ...any) error {
	frames := make([]StackFrame, 0, len(exec.callStack)+1)
	if len(exec.callStack) > 0 {
		current := exec.callStack[len(exec.callStack)-1]
		frames = append(frames, StackFrame{Method: current.Method, Pos: pos})
		for i := len(exec.callStack) - 1; i >= 0; i-- {
			frames = append(frames, exec.callStack[i])
		}
	} else {
		frames = append(frames, StackFrame{Method: "<program>", Pos: pos})
	}

	return &RuntimeError{
		Message:   fmt.Sprintf(format, args...),
		Pos:       pos,
		CodeFrame: formatCodeFrame(exec.source, pos),
		Frames:    frames,
	}
}
