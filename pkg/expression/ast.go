// Package expression parses, evaluates and prints the arithmetic formulas used by
// process and industry documents.
package expression

// Op is an arithmetic operator
type Op byte

// Supported operators
const (
	OpAdd Op = '+'
	OpSub Op = '-'
	OpMul Op = '*'
	OpDiv Op = '/'
)

// Operator precedence levels used by the printer
const (
	precAdditive = iota + 1
	precMultiplicative
	precUnary
	precAtom
)

func (o Op) precedence() int {
	switch o {
	case OpMul, OpDiv:
		return precMultiplicative
	default:
		return precAdditive
	}
}

// Expr is a node of a formula tree
type Expr interface {
	isExpr()
}

// Number is a numeric literal
type Number struct {
	Value float64
}

// Ident is a reference to a named value (constant, input, output, demand or outcome)
type Ident struct {
	Name string
}

// Unary is a sign applied to an operand
type Unary struct {
	Op Op
	X  Expr
}

// Binary is an arithmetic operation between two operands
type Binary struct {
	Op Op
	L  Expr
	R  Expr
}

func (*Number) isExpr() {}
func (*Ident) isExpr()  {}
func (*Unary) isExpr()  {}
func (*Binary) isExpr() {}

func precedenceOf(e Expr) int {
	switch n := e.(type) {
	case *Binary:
		return n.Op.precedence()
	case *Unary:
		return precUnary
	default:
		return precAtom
	}
}

// Equal reports whether two trees are structurally identical
func Equal(a, b Expr) bool {
	switch x := a.(type) {
	case *Number:
		y, ok := b.(*Number)
		return ok && x.Value == y.Value
	case *Ident:
		y, ok := b.(*Ident)
		return ok && x.Name == y.Name
	case *Unary:
		y, ok := b.(*Unary)
		return ok && x.Op == y.Op && Equal(x.X, y.X)
	case *Binary:
		y, ok := b.(*Binary)
		return ok && x.Op == y.Op && Equal(x.L, y.L) && Equal(x.R, y.R)
	default:
		return a == nil && b == nil
	}
}

// Identifiers returns the distinct names referenced by e in first-occurrence order
func Identifiers(e Expr) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)

	var walk func(Expr)
	walk = func(e Expr) {
		switch n := e.(type) {
		case *Ident:
			if _, ok := seen[n.Name]; !ok {
				seen[n.Name] = struct{}{}
				names = append(names, n.Name)
			}
		case *Unary:
			walk(n.X)
		case *Binary:
			walk(n.L)
			walk(n.R)
		}
	}
	walk(e)

	return names
}

// Rename returns a copy of e where every identifier present in mapping is replaced by
// the mapped text. The original tree is left untouched.
func Rename(e Expr, mapping map[string]string) Expr {
	switch n := e.(type) {
	case *Number:
		return &Number{Value: n.Value}
	case *Ident:
		if renamed, ok := mapping[n.Name]; ok {
			return &Ident{Name: renamed}
		}
		return &Ident{Name: n.Name}
	case *Unary:
		return &Unary{Op: n.Op, X: Rename(n.X, mapping)}
	case *Binary:
		return &Binary{Op: n.Op, L: Rename(n.L, mapping), R: Rename(n.R, mapping)}
	default:
		return e
	}
}
