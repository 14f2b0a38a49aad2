package calc

import "fmt"

// TokenType identifies which variant of Token is held.
type TokenType uint

const (
	// Single-character tokens
	LEFT_PAREN TokenType = iota
	RIGHT_PAREN
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	EQUAL
	SEMICOLON

	// Literals
	NUMBER
	NAME

	// Commands
	QUIT
	END
)

func (tt TokenType) String() string {
	switch tt {
	case LEFT_PAREN:
		return "("
	case RIGHT_PAREN:
		return ")"
	case PLUS:
		return "+"
	case MINUS:
		return "-"
	case STAR:
		return "*"
	case SLASH:
		return "/"
	case PERCENT:
		return "%"
	case EQUAL:
		return "="
	case SEMICOLON:
		return ";"
	case NUMBER:
		return "NUMBER"
	case NAME:
		return "NAME"
	case QUIT:
		return "QUIT"
	case END:
		return "END"
	}
	return fmt.Sprintf("TokenType(%d)", uint(tt))
}

// operatorTokens maps the runes that stand for themselves to their type.
var operatorTokens = map[rune]TokenType{
	'(': LEFT_PAREN,
	')': RIGHT_PAREN,
	'+': PLUS,
	'-': MINUS,
	'*': STAR,
	'/': SLASH,
	'%': PERCENT,
	'=': EQUAL,
	';': SEMICOLON,
}

// quitCommand is the identifier reserved for leaving the session.
const quitCommand = "q"

// Token represents a group of characters with additional information that was
// obtained during scanning. Value is only meaningful for NUMBER tokens; the
// identifier of a NAME token is its Lexeme.
type Token struct {
	Typ    TokenType
	Lexeme string
	Value  float64
	Line   int
}

// NewToken creates a new token
func NewToken(typ TokenType, lexeme string, value float64, line int) Token {
	return Token{typ, lexeme, value, line}
}

func (t Token) String() string {
	if t.Typ == NUMBER {
		return fmt.Sprintf("%s %s %v", t.Typ, t.Lexeme, t.Value)
	}
	return fmt.Sprintf("%s %s", t.Typ, t.Lexeme)
}
