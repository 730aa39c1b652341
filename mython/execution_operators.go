package mython

func (exec *Execution) evalBinary(e *BinaryExpr, env *Env) (Value, error) {
	left, err := exec.evalExpr(e.Left, env)
	if err != nil {
		return NewNone(), err
	}
	right, err := exec.evalExpr(e.Right, env)
	if err != nil {
		return NewNone(), err
	}

	bothNumbers := left.Kind() == KindNumber && right.Kind() == KindNumber

	switch e.Op {
	case OpAdd:
		if bothNumbers {
			return NewNumber(left.Int() + right.Int()), nil
		}
		if left.Kind() == KindString && right.Kind() == KindString {
			return NewString(left.Str() + right.Str()), nil
		}
		if inst := left.Instance(); inst != nil && inst.HasMethod(addMethod, 1) {
			return exec.callMethod(inst, addMethod, []Value{right}, e.Pos())
		}

	case OpSub:
		if bothNumbers {
			return NewNumber(left.Int() - right.Int()), nil
		}

	case OpMul:
		if bothNumbers {
			return NewNumber(left.Int() * right.Int()), nil
		}

	case OpDiv:
		if bothNumbers {
			if right.Int() == 0 {
				return NewNone(), exec.errorAt(e.Pos(), "division by zero")
			}
			return NewNumber(left.Int() / right.Int()), nil
		}
	}

	return NewNone(), exec.errorAt(e.Pos(), "unsupported operands for %s: %s and %s", e.Op, left.Kind(), right.Kind())
}

func (exec *Execution) evalCompare(e *CompareExpr, env *Env) (Value, error) {
	left, err := exec.evalExpr(e.Left, env)
	if err != nil {
		return NewNone(), err
	}
	right, err := exec.evalExpr(e.Right, env)
	if err != nil {
		return NewNone(), err
	}

	var result bool
	switch e.Op {
	case CmpEq:
		result, err = exec.equal(left, right, e.Pos())

	case CmpNotEq:
		result, err = exec.equal(left, right, e.Pos())
		result = !result

	case CmpLess:
		result, err = exec.less(left, right, e.Pos())

	case CmpGreater:
		// greater = !less && !equal
		var less bool
		less, err = exec.less(left, right, e.Pos())
		if err == nil && !less {
			var eq bool
			eq, err = exec.equal(left, right, e.Pos())
			result = !eq
		}

	case CmpLessEq:
		// less_or_equal = less || equal
		result, err = exec.less(left, right, e.Pos())
		if err == nil && !result {
			result, err = exec.equal(left, right, e.Pos())
		}

	case CmpGreaterEq:
		// greater_or_equal = !less
		result, err = exec.less(left, right, e.Pos())
		result = !result
	}

	if err != nil {
		return NewNone(), err
	}
	return NewBool(result), nil
}

// equal compares pairwise by variant; both operands being None compare
// equal without consulting __eq__.
func (exec *Execution) equal(left, right Value, pos Position) (bool, error) {
	if left.IsNone() && right.IsNone() {
		return true, nil
	}
	return exec.compareWith(left, right, pos, eqMethod,
		func(a, b bool) bool { return a == b },
		func(a, b int64) bool { return a == b },
		func(a, b string) bool { return a == b },
	)
}

func (exec *Execution) less(left, right Value, pos Position) (bool, error) {
	return exec.compareWith(left, right, pos, ltMethod,
		func(a, b bool) bool { return !a && b },
		func(a, b int64) bool { return a < b },
		func(a, b string) bool { return a < b },
	)
}

// compareWith applies the matching primitive comparator, or dispatches to
// the left operand's dunder method of arity 1, which must return a Bool.
func (exec *Execution) compareWith(
	left, right Value,
	pos Position,
	dunder string,
	boolCmp func(a, b bool) bool,
	numCmp func(a, b int64) bool,
	strCmp func(a, b string) bool,
) (bool, error) {
	if left.Kind() == KindBool && right.Kind() == KindBool {
		return boolCmp(left.Bool(), right.Bool()), nil
	}
	if left.Kind() == KindNumber && right.Kind() == KindNumber {
		return numCmp(left.Int(), right.Int()), nil
	}
	if left.Kind() == KindString && right.Kind() == KindString {
		return strCmp(left.Str(), right.Str()), nil
	}

	if inst := left.Instance(); inst != nil && inst.HasMethod(dunder, 1) {
		res, err := exec.callMethod(inst, dunder, []Value{right}, pos)
		if err != nil {
			return false, err
		}
		if res.Kind() != KindBool {
			return false, exec.errorAt(pos, "%s must return a Bool, got %s", dunder, res.Kind())
		}
		return res.Bool(), nil
	}

	return false, exec.errorAt(pos, "non-comparable objects: %s and %s", left.Kind(), right.Kind())
}

// Only Bool operands participate in or/and; anything else behaves as
// false. The right side is not evaluated when the left decides.
func (exec *Execution) evalOr(e *OrExpr, env *Env) (Value, error) {
	left, err := exec.evalExpr(e.Left, env)
	if err != nil {
		return NewNone(), err
	}
	if left.Kind() == KindBool && left.Bool() {
		return NewBool(true), nil
	}

	right, err := exec.evalExpr(e.Right, env)
	if err != nil {
		return NewNone(), err
	}
	return NewBool(right.Kind() == KindBool && right.Bool()), nil
}

func (exec *Execution) evalAnd(e *AndExpr, env *Env) (Value, error) {
	left, err := exec.evalExpr(e.Left, env)
	if err != nil {
		return NewNone(), err
	}
	if left.Kind() != KindBool || !left.Bool() {
		return NewBool(false), nil
	}

	right, err := exec.evalExpr(e.Right, env)
	if err != nil {
		return NewNone(), err
	}
	return NewBool(right.Kind() == KindBool && right.Bool()), nil
}

func (exec *Execution) evalNot(e *NotExpr, env *Env) (Value, error) {
	val, err := exec.evalExpr(e.Operand, env)
	if err != nil {
		return NewNone(), err
	}
	if val.Kind() != KindBool {
		return NewNone(), exec.errorAt(e.Pos(), "argument of not must be a Bool, got %s", val.Kind())
	}
	return NewBool(!val.Bool()), nil
}
