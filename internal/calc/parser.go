package calc

import (
	"math"
	"strings"

	"fortio.org/log"
)

// Parser evaluates arithmetic expressions read from a Lexer. There is no
// syntax tree: every grammar rule consumes its tokens and returns the value
// they compute.
//
// Grammar
//
//	statement  --> ( ";" )* ( "q" | expression ) ;
//	expression --> term ( ( "+" | "-" ) term )* ;
//	term       --> primary ( ( "*" | "/" | "%" ) primary )* ;
//	primary    --> NUMBER
//	             | NAME ( "=" expression )?
//	             | "(" expression ")"
//	             | "-" primary ;
//
// The statement rule is driven by Session, the parser starts at expression.
type Parser struct {
	lexer *Lexer
	env   *Environment
}

// NewParser creates a parser reading tokens from lexer and variables from env
func NewParser(lexer *Lexer, env *Environment) *Parser {
	return &Parser{lexer, env}
}

// Expression evaluates the next expression in the token stream. The token
// that ends the expression is left in the lexer.
func (parser *Parser) Expression() (float64, error) {
	return parser.expression()
}

// Evaluate parses and evaluates text as a single expression against env. The
// whole text must be consumed by the expression.
func Evaluate(env *Environment, text string) (float64, error) {
	lexer := NewLexer(strings.NewReader(text))
	parser := NewParser(lexer, env)
	value, err := parser.expression()
	if err != nil {
		return 0, err
	}
	tok, err := lexer.Get()
	if err != nil {
		return 0, err
	}
	if tok.Typ != END {
		return 0, newTokenError(SyntaxError, tok, "Expect end of expression.")
	}
	return value, nil
}

// expression --> term ( ( "+" | "-" ) term )* ;
func (parser *Parser) expression() (float64, error) {
	left, err := parser.term()
	if err != nil {
		return 0, err
	}
	for {
		op, err := parser.lexer.Get()
		if err != nil {
			return 0, err
		}
		switch op.Typ {
		case PLUS:
			right, err := parser.term()
			if err != nil {
				return 0, err
			}
			left += right
		case MINUS:
			right, err := parser.term()
			if err != nil {
				return 0, err
			}
			left -= right
		default:
			if err := parser.lexer.Putback(op); err != nil {
				return 0, err
			}
			return left, nil
		}
	}
}

// term --> primary ( ( "*" | "/" | "%" ) primary )* ;
func (parser *Parser) term() (float64, error) {
	left, err := parser.primary()
	if err != nil {
		return 0, err
	}
	for {
		op, err := parser.lexer.Get()
		if err != nil {
			return 0, err
		}
		switch op.Typ {
		case STAR:
			right, err := parser.primary()
			if err != nil {
				return 0, err
			}
			left *= right
		case SLASH:
			right, err := parser.primary()
			if err != nil {
				return 0, err
			}
			if right == 0 {
				return 0, newTokenError(DivideByZero, op, "Division by zero.")
			}
			left /= right
		case PERCENT:
			right, err := parser.primary()
			if err != nil {
				return 0, err
			}
			if left, err = modulo(op, left, right); err != nil {
				return 0, err
			}
		default:
			if err := parser.lexer.Putback(op); err != nil {
				return 0, err
			}
			return left, nil
		}
	}
}

// primary --> NUMBER | NAME ( "=" expression )? | "(" expression ")" | "-" primary ;
func (parser *Parser) primary() (float64, error) {
	tok, err := parser.lexer.Get()
	if err != nil {
		return 0, err
	}
	switch tok.Typ {
	case NUMBER:
		return tok.Value, nil
	case NAME:
		next, err := parser.lexer.Get()
		if err != nil {
			return 0, err
		}
		if next.Typ == EQUAL {
			return parser.assignment(tok)
		}
		if err := parser.lexer.Putback(next); err != nil {
			return 0, err
		}
		return parser.env.Resolve(tok)
	case LEFT_PAREN:
		value, err := parser.expression()
		if err != nil {
			return 0, err
		}
		closing, err := parser.lexer.Get()
		if err != nil {
			return 0, err
		}
		if closing.Typ != RIGHT_PAREN {
			// leave the token for error recovery, it may be the delimiter
			if err := parser.lexer.Putback(closing); err != nil {
				return 0, err
			}
			return 0, newTokenError(SyntaxError, closing, "Expect ')' after expression.")
		}
		return value, nil
	case MINUS:
		value, err := parser.primary()
		if err != nil {
			return 0, err
		}
		return -value, nil
	}
	if err := parser.lexer.Putback(tok); err != nil {
		return 0, err
	}
	return 0, newTokenError(SyntaxError, tok, "Expect expression.")
}

// assignment stores the raw text following '=' up to the statement delimiter
// as the definition of name, and returns the value of that text. The
// delimiter is handed back to the lexer so the statement still ends there.
func (parser *Parser) assignment(name Token) (float64, error) {
	text, err := parser.lexer.SkipTo(';')
	if err != nil {
		return 0, err
	}
	if strings.HasSuffix(text, ";") {
		text = strings.TrimSuffix(text, ";")
		delim := NewToken(SEMICOLON, ";", 0, parser.lexer.Line())
		if err := parser.lexer.Putback(delim); err != nil {
			return 0, err
		}
	}
	text = strings.TrimSpace(text)
	log.LogVf("assign %s = %q", name.Lexeme, text)
	return parser.env.Assign(name, text)
}

// modulo computes the remainder of the operands truncated toward zero.
func modulo(op Token, left, right float64) (float64, error) {
	if right == 0 {
		return 0, newTokenError(DivideByZero, op, "Modulus by zero.")
	}
	l, okLeft := truncate(left)
	r, okRight := truncate(right)
	if !okLeft || !okRight {
		return 0, newTokenError(
			InvalidModulusOperand,
			op,
			"Operands must be finite and within the 64-bit integer range.",
		)
	}
	if r == 0 {
		return 0, newTokenError(DivideByZero, op, "Modulus by an operand that truncates to zero.")
	}
	return float64(l % r), nil
}

// truncate converts v to an int64 by dropping its fractional part. It fails
// for NaN, infinities and values that do not fit.
func truncate(v float64) (int64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	t := math.Trunc(v)
	if t < math.MinInt64 || t >= math.MaxInt64 {
		return 0, false
	}
	return int64(t), true
}
