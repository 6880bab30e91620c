// Public domain.

package agexpr

type node interface {
	eval(vars map[string]any) (bool, error)
}

type orNode struct{ left, right node }

func (n *orNode) eval(vars map[string]any) (bool, error) {
	l, err := n.left.eval(vars)
	if err != nil || l {
		return l, err
	}
	return n.right.eval(vars)
}

type andNode struct{ left, right node }

func (n *andNode) eval(vars map[string]any) (bool, error) {
	l, err := n.left.eval(vars)
	if err != nil || !l {
		return false, err
	}
	return n.right.eval(vars)
}

type terminal token

func (t terminal) value(vars map[string]any) any {
	switch t.typ {
	case tNumber:
		return t.num
	case tString:
		return t.str
	}
	return vars[t.text]
}

type compareNode struct {
	op          string
	left, right terminal
}

func (n *compareNode) eval(vars map[string]any) (bool, error) {
	return compare(n.op, n.left.value(vars), n.right.value(vars))
}

func compare(op string, a, b any) (bool, error) {
	if x, ok := toFloat(a); ok {
		if y, ok := toFloat(b); ok {
			return ordered(op, x, y), nil
		}
	}
	if x, ok := a.(string); ok {
		if y, ok := b.(string); ok {
			return ordered(op, x, y), nil
		}
	}
	return false, &CompareError{Op: op, Left: a, Right: b}
}

func ordered[T float64 | string](op string, x, y T) bool {
	switch op {
	case "<":
		return x < y
	case "<=":
		return x <= y
	case ">":
		return x > y
	case ">=":
		return x >= y
	case "==":
		return x == y
	}
	return x != y
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	}
	return 0, false
}
