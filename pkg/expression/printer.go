package expression

import (
	"strconv"
	"strings"
)

// Print renders the canonical form of e as arithmetic text. Additive operators are
// surrounded by spaces, multiplicative ones are not, and parentheses are emitted only
// where precedence requires them, so that Parse(Print(e)) reproduces Canonical(e).
func Print(e Expr) string {
	var sb strings.Builder
	write(&sb, Canonical(e))
	return sb.String()
}

// FormatNumber renders a literal with the shortest decimal representation that
// round-trips
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func write(sb *strings.Builder, e Expr) {
	switch n := e.(type) {
	case *Number:
		sb.WriteString(FormatNumber(n.Value))
	case *Ident:
		sb.WriteString(n.Name)
	case *Unary:
		sb.WriteByte(byte(n.Op))
		writeOperand(sb, n.X, precedenceOf(n.X) <= precUnary)
	case *Binary:
		prec := n.Op.precedence()
		writeOperand(sb, n.L, precedenceOf(n.L) < prec)
		if prec == precAdditive {
			sb.WriteString(" " + string(byte(n.Op)) + " ")
		} else {
			sb.WriteByte(byte(n.Op))
		}
		writeOperand(sb, n.R, precedenceOf(n.R) <= prec)
	}
}

func writeOperand(sb *strings.Builder, e Expr, parenthesize bool) {
	if parenthesize {
		sb.WriteByte('(')
		write(sb, e)
		sb.WriteByte(')')
		return
	}
	write(sb, e)
}
