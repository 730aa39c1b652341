package mython

import (
	"fmt"
	"strconv"
	"strings"
)

func (exec *Execution) evalMethodCall(e *MethodCallExpr, env *Env) (Value, error) {
	obj, err := exec.evalExpr(e.Receiver, env)
	if err != nil {
		return NewNone(), err
	}
	inst := obj.Instance()
	if inst == nil {
		return NewNone(), exec.errorAt(e.Pos(), "cannot call %s on %s", e.Method, obj.Kind())
	}
	if !inst.HasMethod(e.Method, len(e.Args)) {
		return NewNone(), exec.errorAt(e.Pos(), "class %s has no method %s taking %d arguments", inst.Class().Name(), e.Method, len(e.Args))
	}

	args, err := exec.evalArgs(e.Args, env)
	if err != nil {
		return NewNone(), err
	}
	return exec.callMethod(inst, e.Method, args, e.Pos())
}

// evalNewInstance allocates a fresh instance on every execution. __init__
// runs only when the class chain defines one matching the argument count;
// otherwise the arguments stay unevaluated, as construction has nothing to
// bind them to.
func (exec *Execution) evalNewInstance(e *NewInstanceExpr, env *Env) (Value, error) {
	inst := newInstance(e.Class)

	if inst.HasMethod(initMethod, len(e.Args)) {
		args, err := exec.evalArgs(e.Args, env)
		if err != nil {
			return NewNone(), err
		}
		if _, err := exec.callMethod(inst, initMethod, args, e.Pos()); err != nil {
			return NewNone(), err
		}
	}

	return NewInstance(inst), nil
}

func (exec *Execution) evalStringify(e *StringifyExpr, env *Env) (Value, error) {
	val, err := exec.evalExpr(e.Operand, env)
	if err != nil {
		return NewNone(), err
	}

	var sb strings.Builder
	if err := exec.writeValue(&sb, val); err != nil {
		return NewNone(), err
	}
	return NewString(sb.String()), nil
}

func (exec *Execution) evalArgs(exprs []Expression, env *Env) ([]Value, error) {
	args := make([]Value, len(exprs))
	for i, expr := range exprs {
		val, err := exec.evalExpr(expr, env)
		if err != nil {
			return nil, err
		}
		args[i] = val
	}
	return args, nil
}

// callMethod runs a method with a fresh scope holding self and the bound
// formals. The returned flag from the body is absorbed here: a return
// statement unwinds no further than the method that contains it. A body
// that never returns yields None.
func (exec *Execution) callMethod(inst *Instance, name string, args []Value, pos Position) (Value, error) {
	method := inst.Class().GetMethod(name)
	if method == nil || len(method.FormalParams) != len(args) {
		return NewNone(), exec.errorAt(pos, "class %s has no method %s taking %d arguments", inst.Class().Name(), name, len(args))
	}
	if exec.recursionCap > 0 && len(exec.callStack) >= exec.recursionCap {
		return NewNone(), exec.errorAt(pos, "recursion limit of %d exceeded", exec.recursionCap)
	}

	env := NewEnv()
	env.Define("self", NewInstance(inst))
	for i, param := range method.FormalParams {
		env.Define(param, args[i])
	}

	exec.callStack = append(exec.callStack, StackFrame{Method: inst.Class().Name() + "." + name, Pos: pos})
	val, returned, err := exec.execStatements(method.Body, env)
	exec.callStack = exec.callStack[:len(exec.callStack)-1]

	if err != nil {
		return NewNone(), err
	}
	if returned {
		return val, nil
	}
	return NewNone(), nil
}

// writeValue renders a value into sb the way print does: instances go
// through __str__ when defined with arity 0, otherwise an identity token.
// Nothing is written to the output stream.
func (exec *Execution) writeValue(sb *strings.Builder, v Value) error {
	switch v.Kind() {
	case KindNone:
		sb.WriteString("None")
	case KindBool:
		if v.Bool() {
			sb.WriteString("True")
		} else {
			sb.WriteString("False")
		}
	case KindNumber:
		sb.WriteString(strconv.FormatInt(v.Int(), 10))
	case KindString:
		sb.WriteString(v.Str())
	case KindClass:
		sb.WriteString("Class " + v.Class().Name())
	case KindInstance:
		inst := v.Instance()
		if inst.HasMethod(strMethod, 0) {
			res, err := exec.callMethod(inst, strMethod, nil, Position{})
			if err != nil {
				return err
			}
			return exec.writeValue(sb, res)
		}
		fmt.Fprintf(sb, "<%s instance at %p>", inst.Class().Name(), inst)
	}
	return nil
}
