package calc

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the failures that can happen while evaluating a
// statement.
type ErrorKind int

const (
	// LexError is returned when the lexer meets a rune it does not recognize
	// or a number literal that cannot be parsed.
	LexError ErrorKind = iota
	// SyntaxError is returned when the parser does not find an expected token.
	SyntaxError
	// UndefinedVariable is returned when reading a name that was never assigned.
	UndefinedVariable
	// DivideByZero is returned by '/' and '%' with a zero right operand.
	DivideByZero
	// InvalidModulusOperand is returned by '%' when an operand cannot be
	// truncated to a 64-bit integer.
	InvalidModulusOperand
	// CyclicDefinition is returned when a variable's definition refers back
	// to itself.
	CyclicDefinition
	// UsageError signals an internal misuse of the lexer. It is never caused
	// by user input and is not recoverable.
	UsageError
)

func (kind ErrorKind) String() string {
	switch kind {
	case LexError:
		return "lex error"
	case SyntaxError:
		return "syntax error"
	case UndefinedVariable:
		return "undefined variable"
	case DivideByZero:
		return "divide by zero"
	case InvalidModulusOperand:
		return "invalid modulus operand"
	case CyclicDefinition:
		return "cyclic definition"
	case UsageError:
		return "usage error"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(kind))
}

// Error wraps the error message returned by the lexer or the evaluator with
// additional information on where the error occurred.
type Error struct {
	Kind    ErrorKind
	Line    int
	Lexeme  string
	Message string
}

func newTokenError(kind ErrorKind, tok Token, message string) *Error {
	return &Error{Kind: kind, Line: tok.Line, Lexeme: tok.Lexeme, Message: message}
}

func (err *Error) Error() string {
	if err.Lexeme == "" {
		return fmt.Sprintf("[line %d] Error: %s", err.Line, err.Message)
	}
	return fmt.Sprintf(
		"[line %d] Error at '%s': %s",
		err.Line,
		err.Lexeme,
		err.Message,
	)
}

// KindOf returns the kind of the first *Error found in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var calcErr *Error
	if errors.As(err, &calcErr) {
		return calcErr.Kind, true
	}
	return 0, false
}

// IsRecoverable reports whether the session can report err and carry on with
// the next statement. Usage errors and errors that did not come from this
// package are fatal.
func IsRecoverable(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind != UsageError
}
