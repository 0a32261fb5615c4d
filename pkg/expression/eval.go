package expression

import (
	"fmt"
	"strings"
)

// Substitute evaluates e after replacing every identifier with its value in bindings.
// All identifiers must be bound.
func Substitute(e Expr, bindings map[string]float64) (float64, error) {
	var missing []string
	for _, name := range Identifiers(e) {
		if _, ok := bindings[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return 0, fmt.Errorf("%w: %s", ErrUnboundReference, strings.Join(missing, ", "))
	}

	return evaluate(e, bindings)
}

func evaluate(e Expr, bindings map[string]float64) (float64, error) {
	switch n := e.(type) {
	case *Number:
		return n.Value, nil
	case *Ident:
		return bindings[n.Name], nil
	case *Unary:
		x, err := evaluate(n.X, bindings)
		if err != nil {
			return 0, err
		}
		if n.Op == OpSub {
			return -x, nil
		}
		return x, nil
	case *Binary:
		l, err := evaluate(n.L, bindings)
		if err != nil {
			return 0, err
		}
		r, err := evaluate(n.R, bindings)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case OpAdd:
			return l + r, nil
		case OpSub:
			return l - r, nil
		case OpMul:
			return l * r, nil
		default:
			if r == 0 {
				return 0, fmt.Errorf("%w: %s", ErrDivisionByZero, Print(n))
			}
			return l / r, nil
		}
	default:
		return 0, fmt.Errorf("%w: unsupported node %T", ErrParse, e)
	}
}
