package expression

import (
	"fmt"
	"strconv"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenNumber
	tokenIdent
	tokenOperator
	tokenLParen
	tokenRParen
)

type token struct {
	kind  tokenKind
	text  string
	value float64
	pos   int
}

func (t token) String() string {
	if t.kind == tokenEOF {
		return "end of expression"
	}
	return strconv.Quote(t.text)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

// tokenize splits a formula into tokens, terminated by a tokenEOF
func tokenize(text string) ([]token, error) {
	tokens := make([]token, 0, len(text)/2+1)

	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '+' || c == '-' || c == '*' || c == '/':
			tokens = append(tokens, token{kind: tokenOperator, text: string(c), pos: i})
			i++
		case c == '(':
			tokens = append(tokens, token{kind: tokenLParen, text: "(", pos: i})
			i++
		case c == ')':
			tokens = append(tokens, token{kind: tokenRParen, text: ")", pos: i})
			i++
		case isDigit(c) || c == '.':
			tok, next, err := scanNumber(text, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i = next
		case isIdentStart(c):
			start := i
			for i < len(text) && isIdentPart(text[i]) {
				i++
			}
			tokens = append(tokens, token{kind: tokenIdent, text: text[start:i], pos: start})
		default:
			return nil, fmt.Errorf("%w: unknown token %q at offset %d in %q", ErrParse, string(c), i, text)
		}
	}

	return append(tokens, token{kind: tokenEOF, pos: len(text)}), nil
}

func scanNumber(text string, start int) (token, int, error) {
	i := start
	for i < len(text) && isDigit(text[i]) {
		i++
	}
	if i < len(text) && text[i] == '.' {
		i++
		for i < len(text) && isDigit(text[i]) {
			i++
		}
	}
	// exponent only when followed by digits, otherwise the identifier scanner reports it
	if i < len(text) && (text[i] == 'e' || text[i] == 'E') {
		j := i + 1
		if j < len(text) && (text[j] == '+' || text[j] == '-') {
			j++
		}
		if j < len(text) && isDigit(text[j]) {
			for j < len(text) && isDigit(text[j]) {
				j++
			}
			i = j
		}
	}

	literal := text[start:i]
	value, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return token{}, 0, fmt.Errorf("%w: invalid number %q at offset %d in %q", ErrParse, literal, start, text)
	}

	if i < len(text) && isIdentStart(text[i]) {
		return token{}, 0, fmt.Errorf("%w: unknown token %q at offset %d in %q", ErrParse, text[start:i+1], start, text)
	}

	return token{kind: tokenNumber, text: literal, value: value, pos: start}, i, nil
}
