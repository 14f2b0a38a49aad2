package calc

import (
	"context"
	"fmt"
	"io"

	"fortio.org/log"
)

// ResultPrefix is written before every computed value.
const ResultPrefix = "= "

type sessionState int

const (
	awaitingStatement sessionState = iota
	evaluating
	errorRecovery
	terminated
)

// Session reads statements one at a time from a lexer, evaluates them and
// prints their results, until the quit command or the end of the input.
type Session struct {
	lexer    *Lexer
	parser   *Parser
	env      *Environment
	output   io.Writer
	reporter Reporter
	prompt   string
}

// NewSession creates a session reading statements from input. Results are
// written to output and recoverable errors are handed to reporter. The prompt
// is written before each statement is read, it may be empty.
func NewSession(
	input io.Reader,
	env *Environment,
	output io.Writer,
	reporter Reporter,
	prompt string,
) *Session {
	lexer := NewLexer(input)
	return &Session{
		lexer:    lexer,
		parser:   NewParser(lexer, env),
		env:      env,
		output:   output,
		reporter: reporter,
		prompt:   prompt,
	}
}

// Environment returns the variables defined during the session.
func (s *Session) Environment() *Environment {
	return s.env
}

// Run evaluates statements until the user quits or the input ends, which are
// both reported as a nil error. Recoverable errors are reported and the input
// is skipped up to the next ';'. Any other error stops the session and is
// returned. ctx is checked before a statement is read and after every read
// returns, so a cancellation that happens while blocked on input is never
// mistaken for the end of the input.
func (s *Session) Run(ctx context.Context) error {
	var stmtErr error
	state := awaitingStatement
	for {
		switch state {
		case awaitingStatement:
			if err := ctx.Err(); err != nil {
				return err
			}
			state, stmtErr = s.awaitStatement()
			if err := ctx.Err(); err != nil {
				return err
			}

		case evaluating:
			value, err := s.parser.Expression()
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if err != nil {
				state, stmtErr = errorRecovery, err
				continue
			}
			log.LogVf("statement evaluated to %v", value)
			if _, err := fmt.Fprintf(s.output, "%s%s\n", ResultPrefix, FormatValue(value)); err != nil {
				return err
			}
			state = awaitingStatement

		case errorRecovery:
			if !IsRecoverable(stmtErr) {
				return stmtErr
			}
			s.reporter.Report(stmtErr)
			if err := s.lexer.Ignore(';'); err != nil {
				return err
			}
			state, stmtErr = awaitingStatement, nil

		case terminated:
			return nil
		}
	}
}

// awaitStatement skips empty statements and decides what to do with the
// first token of the next one.
func (s *Session) awaitStatement() (sessionState, error) {
	if s.prompt != "" {
		fmt.Fprint(s.output, s.prompt)
	}
	tok, err := s.lexer.Get()
	for err == nil && tok.Typ == SEMICOLON {
		tok, err = s.lexer.Get()
	}
	if err != nil {
		return errorRecovery, err
	}

	switch tok.Typ {
	case QUIT, END:
		log.LogVf("session terminated by %s", tok.Typ)
		return terminated, nil
	}
	if err := s.lexer.Putback(tok); err != nil {
		return errorRecovery, err
	}
	return evaluating, nil
}
