package symbol

import (
	"fmt"
	"math/big"
	"strings"
	"unicode"
)

// inputNormalizer maps glyphs commonly pasted from textbooks or other
// calculators onto the ASCII grammar, and folds ** into ^.
var inputNormalizer = strings.NewReplacer(
	"**", "^",
	"×", "*",
	"·", "*",
	"∙", "*",
	"÷", "/",
	"−", "-",
	"–", "-",
	"—", "-",
	"√", "sqrt",
	"π", "pi",
	"∞", "oo",
)

// namedConstants resolves identifier spellings of the built-in constants.
var namedConstants = map[string]*Const{
	"pi":       Pi,
	"E":        E,
	"I":        ImagUnit,
	"oo":       Inf,
	"inf":      Inf,
	"infinity": Inf,
}

// Parse converts calculator input text into a simplified expression.
// The grammar covers numbers (exact decimals), variables, the built-in
// constants, function calls including two-argument log(x, b) and
// root(x, n), the operators + - * / ^ (and **), parentheses, and unary
// minus. ^ is right-associative and binds tighter than unary minus, so
// -x^2 parses as -(x^2).
func Parse(text string) (Expr, error) {
	p := &parser{src: []rune(inputNormalizer.Replace(text))}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.kind == tokEOF {
		return nil, fmt.Errorf("empty expression")
	}
	e, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, fmt.Errorf("unexpected %q at position %d", p.tok.text, p.tok.pos+1)
	}
	return e.Simplify(), nil
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNum
	tokIdent
	tokOp
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

type parser struct {
	src []rune
	pos int
	tok token
}

func (p *parser) advance() error {
	for p.pos < len(p.src) && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
	if p.pos >= len(p.src) {
		p.tok = token{kind: tokEOF, pos: p.pos}
		return nil
	}
	start := p.pos
	r := p.src[p.pos]
	switch {
	case unicode.IsDigit(r) || (r == '.' && p.pos+1 < len(p.src) && unicode.IsDigit(p.src[p.pos+1])):
		seenDot := false
		for p.pos < len(p.src) {
			c := p.src[p.pos]
			if c == '.' {
				if seenDot {
					break
				}
				seenDot = true
				p.pos++
				continue
			}
			if !unicode.IsDigit(c) {
				break
			}
			p.pos++
		}
		p.tok = token{kind: tokNum, text: string(p.src[start:p.pos]), pos: start}
	case unicode.IsLetter(r) || r == '_':
		for p.pos < len(p.src) && (unicode.IsLetter(p.src[p.pos]) || unicode.IsDigit(p.src[p.pos]) || p.src[p.pos] == '_') {
			p.pos++
		}
		p.tok = token{kind: tokIdent, text: string(p.src[start:p.pos]), pos: start}
	case strings.ContainsRune("+-*/^(),", r):
		p.pos++
		p.tok = token{kind: tokOp, text: string(r), pos: start}
	default:
		return fmt.Errorf("unexpected character %q at position %d", string(r), start+1)
	}
	return nil
}

func (p *parser) accept(op string) (bool, error) {
	if p.tok.kind == tokOp && p.tok.text == op {
		return true, p.advance()
	}
	return false, nil
}

func (p *parser) expect(op string) error {
	ok, err := p.accept(op)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("expected %q at position %d", op, p.tok.pos+1)
	}
	return nil
}

func (p *parser) parseSum() (Expr, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for {
		if ok, err := p.accept("+"); err != nil {
			return nil, err
		} else if ok {
			right, err := p.parseProduct()
			if err != nil {
				return nil, err
			}
			left = AddOf(left, right)
			continue
		}
		if ok, err := p.accept("-"); err != nil {
			return nil, err
		} else if ok {
			right, err := p.parseProduct()
			if err != nil {
				return nil, err
			}
			left = SubOf(left, right)
			continue
		}
		return left, nil
	}
}

func (p *parser) parseProduct() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		if ok, err := p.accept("*"); err != nil {
			return nil, err
		} else if ok {
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = MulOf(left, right)
			continue
		}
		if ok, err := p.accept("/"); err != nil {
			return nil, err
		} else if ok {
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = DivOf(left, right)
			continue
		}
		return left, nil
	}
}

func (p *parser) parseUnary() (Expr, error) {
	if ok, err := p.accept("-"); err != nil {
		return nil, err
	} else if ok {
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Neg(inner), nil
	}
	if ok, err := p.accept("+"); err != nil {
		return nil, err
	} else if ok {
		return p.parseUnary()
	}
	return p.parsePower()
}

func (p *parser) parsePower() (Expr, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if ok, err := p.accept("^"); err != nil {
		return nil, err
	} else if ok {
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return PowOf(base, exp), nil
	}
	return base, nil
}

func (p *parser) parseAtom() (Expr, error) {
	tok := p.tok
	switch tok.kind {
	case tokNum:
		r, ok := new(big.Rat).SetString(tok.text)
		if !ok {
			return nil, fmt.Errorf("invalid number %q at position %d", tok.text, tok.pos+1)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ratNum(r), nil
	case tokIdent:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind == tokOp && p.tok.text == "(" {
			return p.parseCall(tok)
		}
		if c, ok := namedConstants[tok.text]; ok {
			return c, nil
		}
		return S(tok.text), nil
	case tokOp:
		if tok.text == "(" {
			if err := p.advance(); err != nil {
				return nil, err
			}
			inner, err := p.parseSum()
			if err != nil {
				return nil, err
			}
			if err := p.expect(")"); err != nil {
				return nil, err
			}
			return inner, nil
		}
	}
	if tok.kind == tokEOF {
		return nil, fmt.Errorf("unexpected end of input")
	}
	return nil, fmt.Errorf("unexpected %q at position %d", tok.text, tok.pos+1)
}

func (p *parser) parseCall(name token) (Expr, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	args := []Expr{}
	for {
		arg, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if ok, err := p.accept(","); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		break
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	switch name.text {
	case "sqrt":
		if len(args) != 1 {
			return nil, fmt.Errorf("sqrt takes one argument")
		}
		return SqrtOf(args[0]), nil
	case "root":
		switch len(args) {
		case 1:
			return SqrtOf(args[0]), nil
		case 2:
			return PowOf(args[0], DivOf(N(1), args[1])), nil
		}
		return nil, fmt.Errorf("root takes one or two arguments")
	case "log":
		switch len(args) {
		case 1:
			return funcExpr("ln", args[0]), nil
		case 2:
			return DivOf(funcExpr("ln", args[0]), funcExpr("ln", args[1])), nil
		}
		return nil, fmt.Errorf("log takes one or two arguments")
	}
	if !knownFuncs[name.text] {
		return nil, fmt.Errorf("unknown function %q at position %d", name.text, name.pos+1)
	}
	if len(args) != 1 {
		return nil, fmt.Errorf("%s takes one argument", name.text)
	}
	return funcExpr(name.text, args[0]), nil
}
