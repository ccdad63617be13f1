package curve

import (
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	"go.uber.org/zap"
)

// exprAliases are whole words replaced before parsing, unless they are used
// as a function name.
var exprAliases = map[string]string{
	"x":         "input(0)",
	"y":         "input(1)",
	"z":         "input(2)",
	"zero":      "constant(0)",
	"one":       "constant(1)",
	"linear":    "input(0)",
	"1-linear":  "fit(input(0), 1, 0)",
	"sin":       "sin(input(0), 4, 0, 1, 0)",
	"1-sin":     "sin(input(0), 4, 0, -1, 1)",
	"cos":       "sin(input(0), 4, 90, 1, 0)",
	"1-cos":     "sin(input(0), 4, 90, -1, 1)",
	"hermite":   "taylor(input(0), 0, 0, 3, -2)",
	"1-hermite": "taylor(input(0), 1, 0, -3, 2)",
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '_' || c == '.' || c == '-' || c == '+'
}

// substituteAliases replaces alias words that are not followed by "(".
func substituteAliases(text string) string {
	var b strings.Builder
	for i := 0; i < len(text); {
		if !isWordChar(text[i]) {
			b.WriteByte(text[i])
			i++
			continue
		}
		j := i
		for j < len(text) && isWordChar(text[j]) {
			j++
		}
		word := text[i:j]
		k := j
		for k < len(text) && (text[k] == ' ' || text[k] == '\t') {
			k++
		}
		if exp, ok := exprAliases[strings.ToLower(word)]; ok && (k >= len(text) || text[k] != '(') {
			b.WriteString(exp)
		} else {
			b.WriteString(word)
		}
		i = j
	}
	return b.String()
}

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokWord
	tokOpen
	tokClose
	tokComma
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

type parser struct {
	src  string
	toks []token
	i    int
}

func tokenize(src string) ([]token, error) {
	var toks []token
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(':
			toks = append(toks, token{tokOpen, "(", i})
			i++
		case c == ')':
			toks = append(toks, token{tokClose, ")", i})
			i++
		case c == ',':
			toks = append(toks, token{tokComma, ",", i})
			i++
		case isWordChar(c):
			j := i
			for j < len(src) && isWordChar(src[j]) {
				j++
			}
			toks = append(toks, token{tokWord, src[i:j], i})
			i = j
		default:
			return nil, &ParseError{Input: src, Pos: i, Msg: "unexpected character " + strconv.QuoteRune(rune(c))}
		}
	}
	return append(toks, token{tokEOF, "", len(src)}), nil
}

// ParseExpression parses expression text after alias substitution.
func ParseExpression(text string) (*Expression, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyExpression
	}
	src := substituteAliases(text)
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, toks: toks}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.errorf(t, "trailing input "+strconv.Quote(t.text))
	}
	return e, nil
}

// ParseExpressionOr parses text and substitutes constant(fallback) when the
// text is malformed. The failure is logged.
func ParseExpressionOr(text string, fallback float32) *Expression {
	e, err := ParseExpression(text)
	if err != nil {
		log.Warn("invalid expression, using constant",
			zap.String("text", text), zap.Float32("fallback", fallback), zap.Error(err))
		return Constant(fallback)
	}
	return e
}

func (p *parser) peek() token {
	return p.toks[p.i]
}

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) errorf(t token, msg string) error {
	return &ParseError{Input: p.src, Pos: t.pos, Msg: msg}
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	t := p.next()
	if t.kind != kind {
		found := t.text
		if t.kind == tokEOF {
			found = "end of input"
		}
		return t, p.errorf(t, "expected "+what+", found "+strconv.Quote(found))
	}
	return t, nil
}

// number parses a numeric literal, including inf and -inf.
func number(word string) (float32, bool) {
	v, err := strconv.ParseFloat(word, 32)
	if err != nil && !isRangeError(err) {
		return 0, false
	}
	f := float32(v)
	if math32.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func isRangeError(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}

// call is a parsed function application before it is checked against a
// built-in signature.
type call struct {
	name string
	tok  token
	args []arg
}

// arg is either a nested expression or a numeric literal.
type arg struct {
	expr  *Expression
	value float32
	isNum bool
	tok   token
}

func (p *parser) parseExpr() (*Expression, error) {
	a, err := p.parseArg()
	if err != nil {
		return nil, err
	}
	if a.isNum {
		return Constant(a.value), nil
	}
	return a.expr, nil
}

func (p *parser) parseArg() (arg, error) {
	t, err := p.expect(tokWord, "number or function")
	if err != nil {
		return arg{}, err
	}
	if p.peek().kind != tokOpen {
		v, ok := number(t.text)
		if !ok {
			return arg{}, p.errorf(t, "unknown identifier "+strconv.Quote(t.text))
		}
		return arg{value: v, isNum: true, tok: t}, nil
	}
	p.next()

	c := call{name: strings.ToLower(t.text), tok: t}
	if p.peek().kind != tokClose {
		for {
			a, err := p.parseArg()
			if err != nil {
				return arg{}, err
			}
			c.args = append(c.args, a)
			if p.peek().kind != tokComma {
				break
			}
			p.next()
		}
	}
	if _, err := p.expect(tokClose, "\")\""); err != nil {
		return arg{}, err
	}
	e, err := p.build(c)
	if err != nil {
		return arg{}, err
	}
	return arg{expr: e, tok: t}, nil
}

// build checks a call against the built-in signatures.
func (p *parser) build(c call) (*Expression, error) {
	switch c.name {
	case "input":
		nums, err := p.numbers(c, c.args, 1, 1)
		if err != nil {
			return nil, err
		}
		if nums[0] < 0 || nums[0] != math32.Trunc(nums[0]) || math32.IsInf(nums[0], 0) {
			return nil, p.errorf(c.tok, "input index must be a non-negative integer")
		}
		return Input(int(nums[0])), nil

	case "constant":
		nums, err := p.numbers(c, c.args, 1, 1)
		if err != nil {
			return nil, err
		}
		return Constant(nums[0]), nil

	case "taylor":
		inner, rest, err := p.split(c)
		if err != nil {
			return nil, err
		}
		coeffs, err := p.numbers(c, rest, 1, -1)
		if err != nil {
			return nil, err
		}
		return &Expression{Kind: KindPolynomial, Inner: inner, Params: coeffs}, nil

	case "sin":
		inner, rest, err := p.split(c)
		if err != nil {
			return nil, err
		}
		nums, err := p.numbers(c, rest, 0, 4)
		if err != nil {
			return nil, err
		}
		params := []float32{360, 0, 1, 0}
		copy(params, nums)
		return &Expression{Kind: KindHarmonic, Inner: inner, Params: params}, nil

	case "clamp", "fit":
		inner, rest, err := p.split(c)
		if err != nil {
			return nil, err
		}
		nums, err := p.numbers(c, rest, 2, 4)
		if err != nil {
			return nil, err
		}
		if len(nums) == 3 {
			return nil, p.errorf(c.tok, c.name+" takes both minIn and maxIn or neither")
		}
		kind := KindClamp
		params := []float32{0, 0, math32.Inf(-1), math32.Inf(1)}
		if c.name == "fit" {
			kind = KindRescale
			params[2], params[3] = 0, 1
		}
		copy(params, nums)
		return &Expression{Kind: kind, Inner: inner, Params: params}, nil
	}
	return nil, p.errorf(c.tok, "unknown function "+strconv.Quote(c.name))
}

// split separates the leading function argument from the numeric ones.
func (p *parser) split(c call) (*Expression, []arg, error) {
	if len(c.args) == 0 {
		return nil, nil, p.errorf(c.tok, c.name+" needs a function argument")
	}
	first := c.args[0]
	if first.isNum {
		return Constant(first.value), c.args[1:], nil
	}
	return first.expr, c.args[1:], nil
}

// numbers requires between lo and hi (hi < 0 means unbounded) numeric literals.
func (p *parser) numbers(c call, args []arg, lo, hi int) ([]float32, error) {
	if len(args) < lo || (hi >= 0 && len(args) > hi) {
		return nil, p.errorf(c.tok, "wrong number of arguments to "+c.name)
	}
	nums := make([]float32, len(args))
	for i, a := range args {
		if !a.isNum {
			return nil, p.errorf(a.tok, c.name+" parameters must be numbers")
		}
		nums[i] = a.value
	}
	return nums, nil
}
