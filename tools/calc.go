package tools

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// allowedCalcChars is the advisory character gate for calculator input.
// It is a validation aid for a trusted local tool, not a security boundary.
// Note the gate contains no letters, so the evaluator's function whitelist
// is reachable only through this fixed set of operators and digits.
const allowedCalcChars = "0123456789+-*/().^ "

// calcFuncs is the whitelist of functions the evaluator can resolve.
// Nothing outside this map is callable.
var calcFuncs = map[string]func(float64) float64{
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"sqrt": math.Sqrt,
	"log":  math.Log,
	"abs":  math.Abs,
}

// calcConsts is the whitelist of named constants.
var calcConsts = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

// CalculatorTool evaluates arithmetic expressions. The caret maps to
// exponentiation; pow(x, y) is the only two-argument function.
type CalculatorTool struct{}

func (t *CalculatorTool) Name() string {
	return "calculator"
}

func (t *CalculatorTool) Description() string {
	return "Perform a mathematical calculation. Args: expression (string), e.g. '2^3 + 1'"
}

func (t *CalculatorTool) Execute(_ context.Context, args map[string]string) (string, error) {
	expression := args["expression"]
	if expression == "" {
		expression = args["query"]
	}
	if expression == "" {
		return "", fmt.Errorf("expression is required")
	}

	for _, c := range expression {
		if !strings.ContainsRune(allowedCalcChars, c) && !unicode.IsSpace(c) {
			return fmt.Sprintf("%s Disallowed characters in expression", errorMarker), nil
		}
	}

	result, err := evalExpression(expression)
	if err != nil {
		return "", fmt.Errorf("evaluating expression: %w", err)
	}

	return fmt.Sprintf("🔢 %s = %s", expression, formatNumber(result)), nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// evalExpression parses and evaluates an arithmetic expression with the
// whitelisted functions and constants. Grammar (standard precedence,
// right-associative ^):
//
//	expr   := term (('+'|'-') term)*
//	term   := unary (('*'|'/') unary)*
//	unary  := '-' unary | power
//	power  := primary ('^' unary)?
func evalExpression(input string) (float64, error) {
	p := &exprParser{input: input}
	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos < len(p.input) {
		return 0, fmt.Errorf("unexpected character %q at position %d", p.input[p.pos], p.pos)
	}
	return v, nil
}

type exprParser struct {
	input string
	pos   int
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t' || p.input[p.pos] == '\n') {
		p.pos++
	}
}

func (p *exprParser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *exprParser) parseExpr() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '+':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			left += right
		case '-':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			left -= right
		default:
			return left, nil
		}
	}
}

func (p *exprParser) parseTerm() (float64, error) {
	left, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '*':
			p.pos++
			right, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			left *= right
		case '/':
			p.pos++
			right, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			if right == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			left /= right
		default:
			return left, nil
		}
	}
}

func (p *exprParser) parseUnary() (float64, error) {
	if p.peek() == '-' {
		p.pos++
		v, err := p.parseUnary()
		return -v, err
	}
	return p.parsePower()
}

func (p *exprParser) parsePower() (float64, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return 0, err
	}
	if p.peek() == '^' {
		p.pos++
		exp, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		return math.Pow(base, exp), nil
	}
	return base, nil
}

func (p *exprParser) parsePrimary() (float64, error) {
	c := p.peek()

	switch {
	case c == '(':
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if p.peek() != ')' {
			return 0, fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return v, nil

	case c >= '0' && c <= '9' || c == '.':
		return p.parseNumber()

	case c >= 'a' && c <= 'z':
		return p.parseIdent()

	case c == 0:
		return 0, fmt.Errorf("unexpected end of expression")

	default:
		return 0, fmt.Errorf("unexpected character %q at position %d", c, p.pos)
	}
}

func (p *exprParser) parseNumber() (float64, error) {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if (c < '0' || c > '9') && c != '.' {
			break
		}
		p.pos++
	}
	v, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", p.input[start:p.pos])
	}
	return v, nil
}

func (p *exprParser) parseIdent() (float64, error) {
	start := p.pos
	for p.pos < len(p.input) && p.input[p.pos] >= 'a' && p.input[p.pos] <= 'z' {
		p.pos++
	}
	name := p.input[start:p.pos]

	if v, ok := calcConsts[name]; ok {
		return v, nil
	}

	if name == "pow" {
		if p.peek() != '(' {
			return 0, fmt.Errorf("pow requires arguments")
		}
		p.pos++
		x, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if p.peek() != ',' {
			return 0, fmt.Errorf("pow requires two arguments")
		}
		p.pos++
		y, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if p.peek() != ')' {
			return 0, fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return math.Pow(x, y), nil
	}

	fn, ok := calcFuncs[name]
	if !ok {
		return 0, fmt.Errorf("unknown function or constant %q", name)
	}
	if p.peek() != '(' {
		return 0, fmt.Errorf("%s requires an argument", name)
	}
	p.pos++
	arg, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if p.peek() != ')' {
		return 0, fmt.Errorf("missing closing parenthesis")
	}
	p.pos++
	return fn(arg), nil
}
