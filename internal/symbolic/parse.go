package symbolic

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

// Parse reads a polynomial written with numbers, symbols, + - * / ^ and
// parentheses, e.g. "12.5", "5/2", "-3*w", "P/2" or "w*(L - 2)".
// Division is only allowed by invertible (single-term) expressions and
// exponents must be integer literals.
func Parse(s string) (Poly, error) {
	p := &parser{src: s}
	p.next()
	out, err := p.expr()
	if err != nil {
		return Poly{}, err
	}
	if p.tok != tokEOF {
		return Poly{}, p.errorf("unexpected %q", p.text)
	}
	return out, nil
}

// MustParse is like Parse but panics on error. Intended for constants and
// tests.
func MustParse(s string) Poly {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

type token int

const (
	tokEOF token = iota
	tokNum
	tokIdent
	tokOp
)

type parser struct {
	src  string
	pos  int
	tok  token
	text string
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("parse %q at %d: %s", p.src, p.pos, fmt.Sprintf(format, args...))
}

func (p *parser) next() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
	if p.pos >= len(p.src) {
		p.tok, p.text = tokEOF, ""
		return
	}
	start := p.pos
	c := rune(p.src[p.pos])
	switch {
	case unicode.IsDigit(c) || c == '.':
		for p.pos < len(p.src) && (unicode.IsDigit(rune(p.src[p.pos])) || p.src[p.pos] == '.') {
			p.pos++
		}
		p.tok = tokNum
	case unicode.IsLetter(c) || c == '_':
		for p.pos < len(p.src) {
			r := rune(p.src[p.pos])
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
				break
			}
			p.pos++
		}
		p.tok = tokIdent
	case strings.ContainsRune("+-*/^()", c):
		p.pos++
		p.tok = tokOp
	default:
		p.tok, p.text = tokOp, string(c)
		p.pos++
		return
	}
	p.text = p.src[start:p.pos]
}

func (p *parser) expr() (Poly, error) {
	out, err := p.product()
	if err != nil {
		return Poly{}, err
	}
	for p.tok == tokOp && (p.text == "+" || p.text == "-") {
		op := p.text
		p.next()
		rhs, err := p.product()
		if err != nil {
			return Poly{}, err
		}
		if op == "+" {
			out = out.Add(rhs)
		} else {
			out = out.Sub(rhs)
		}
	}
	return out, nil
}

func (p *parser) product() (Poly, error) {
	out, err := p.unary()
	if err != nil {
		return Poly{}, err
	}
	for p.tok == tokOp && (p.text == "*" || p.text == "/") {
		op := p.text
		p.next()
		rhs, err := p.unary()
		if err != nil {
			return Poly{}, err
		}
		if op == "*" {
			out = out.Mul(rhs)
			continue
		}
		if out, err = out.Div(rhs); err != nil {
			return Poly{}, p.errorf("%v", err)
		}
	}
	return out, nil
}

func (p *parser) unary() (Poly, error) {
	if p.tok == tokOp && (p.text == "-" || p.text == "+") {
		neg := p.text == "-"
		p.next()
		v, err := p.unary()
		if err != nil || !neg {
			return v, err
		}
		return v.Neg(), nil
	}
	return p.power()
}

// maxExponent bounds literal exponents in parsed input
const maxExponent = 64

func (p *parser) power() (Poly, error) {
	base, err := p.atom()
	if err != nil {
		return Poly{}, err
	}
	if p.tok != tokOp || p.text != "^" {
		return base, nil
	}
	p.next()
	neg := false
	if p.tok == tokOp && p.text == "-" {
		neg = true
		p.next()
	}
	if p.tok != tokNum {
		return Poly{}, p.errorf("exponent must be an integer")
	}
	n, err := strconv.Atoi(p.text)
	if err != nil {
		return Poly{}, p.errorf("exponent must be an integer")
	}
	if n > maxExponent {
		return Poly{}, p.errorf("exponent %d exceeds %d", n, maxExponent)
	}
	p.next()
	if neg {
		n = -n
	}
	out, err := base.Pow(n)
	if err != nil {
		return Poly{}, p.errorf("%v", err)
	}
	return out, nil
}

func (p *parser) atom() (Poly, error) {
	switch p.tok {
	case tokNum:
		r, ok := new(big.Rat).SetString(p.text)
		if !ok {
			return Poly{}, p.errorf("bad number %q", p.text)
		}
		p.next()
		return Const(r), nil
	case tokIdent:
		name := p.text
		p.next()
		return Sym(name), nil
	case tokOp:
		if p.text == "(" {
			p.next()
			v, err := p.expr()
			if err != nil {
				return Poly{}, err
			}
			if p.tok != tokOp || p.text != ")" {
				return Poly{}, p.errorf("missing )")
			}
			p.next()
			return v, nil
		}
	}
	if p.tok == tokEOF {
		return Poly{}, p.errorf("unexpected end of input")
	}
	return Poly{}, p.errorf("unexpected %q", p.text)
}
