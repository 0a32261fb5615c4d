package expression

import "sort"

// Canonical returns the canonical form of e. Chains of multiplications are flattened
// and their factors reordered: identifiers first in lexicographic order, then compound
// factors and finally literals, both keeping their relative order. Unary plus is
// dropped. Canonical is idempotent.
func Canonical(e Expr) Expr {
	switch n := e.(type) {
	case *Number:
		return &Number{Value: n.Value}
	case *Ident:
		return &Ident{Name: n.Name}
	case *Unary:
		if n.Op == OpAdd {
			return Canonical(n.X)
		}
		return &Unary{Op: n.Op, X: Canonical(n.X)}
	case *Binary:
		if n.Op == OpMul {
			return buildProduct(sortFactors(collectFactors(n, nil)))
		}
		return &Binary{Op: n.Op, L: Canonical(n.L), R: Canonical(n.R)}
	default:
		return e
	}
}

func collectFactors(e Expr, factors []Expr) []Expr {
	if b, ok := e.(*Binary); ok && b.Op == OpMul {
		factors = collectFactors(b.L, factors)
		return collectFactors(b.R, factors)
	}

	c := Canonical(e)
	if b, ok := c.(*Binary); ok && b.Op == OpMul {
		return collectFactors(b, factors)
	}

	return append(factors, c)
}

func sortFactors(factors []Expr) []Expr {
	idents := make([]Expr, 0, len(factors))
	compound := make([]Expr, 0, len(factors))
	literals := make([]Expr, 0, len(factors))

	for _, f := range factors {
		switch f.(type) {
		case *Ident:
			idents = append(idents, f)
		case *Number:
			literals = append(literals, f)
		default:
			compound = append(compound, f)
		}
	}

	sort.SliceStable(idents, func(i, j int) bool {
		return idents[i].(*Ident).Name < idents[j].(*Ident).Name
	})

	sorted := append(idents, compound...)
	return append(sorted, literals...)
}

func buildProduct(factors []Expr) Expr {
	product := factors[0]
	for _, f := range factors[1:] {
		product = &Binary{Op: OpMul, L: product, R: f}
	}
	return product
}
