package calc

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Lexer turns a stream of runes into tokens, one at a time. Tokens are only
// read from the source when asked for, so the lexer can sit on top of an
// interactive terminal. A single token can be pushed back to be read again.
type Lexer struct {
	source io.RuneScanner
	line   int
	buffer *Token
}

// NewLexer creates a lexer reading from source
func NewLexer(source io.Reader) *Lexer {
	lexer := new(Lexer)
	if rs, ok := source.(io.RuneScanner); ok {
		lexer.source = rs
	} else {
		lexer.source = bufio.NewReader(source)
	}
	lexer.line = 1
	return lexer
}

// Line returns the line the lexer is currently on.
func (lexer *Lexer) Line() int {
	return lexer.line
}

// Get returns the next token. The pushed back token is returned first if there
// is one. Once the source is exhausted, Get keeps returning an END token.
func (lexer *Lexer) Get() (Token, error) {
	if lexer.buffer != nil {
		tok := *lexer.buffer
		lexer.buffer = nil
		return tok, nil
	}

	r, err := lexer.skipWhitespace()
	if err == io.EOF {
		return NewToken(END, "", 0, lexer.line), nil
	}
	if err != nil {
		return Token{}, err
	}

	if typ, ok := operatorTokens[r]; ok {
		return NewToken(typ, string(r), 0, lexer.line), nil
	}
	switch {
	case isDigit(r) || r == '.':
		return lexer.scanNumber(r)
	case isBeginName(r):
		return lexer.scanName(r)
	}
	return Token{}, &Error{
		Kind:    LexError,
		Line:    lexer.line,
		Lexeme:  string(r),
		Message: "Unexpected character.",
	}
}

// Putback returns tok to the front of the stream. Only one token can be held,
// pushing back a second one is a usage error.
func (lexer *Lexer) Putback(tok Token) error {
	if lexer.buffer != nil {
		return newTokenError(
			UsageError,
			tok,
			fmt.Sprintf("Cannot put back while '%s' is buffered.", lexer.buffer.Lexeme),
		)
	}
	lexer.buffer = &tok
	return nil
}

// SkipTo consumes and returns everything up to and including the next delim,
// or up to the end of the source. A pushed back token contributes its lexeme.
func (lexer *Lexer) SkipTo(delim rune) (string, error) {
	var text strings.Builder
	if lexer.buffer != nil {
		tok := *lexer.buffer
		lexer.buffer = nil
		text.WriteString(tok.Lexeme)
		if tok.Lexeme == string(delim) {
			return text.String(), nil
		}
	}
	for {
		r, err := lexer.advance()
		if err == io.EOF {
			return text.String(), nil
		}
		if err != nil {
			return text.String(), err
		}
		text.WriteRune(r)
		if r == delim {
			return text.String(), nil
		}
	}
}

// Ignore discards everything up to and including the next delim, or up to the
// end of the source. A pushed back token is dropped first, and when it is
// the delimiter nothing more is read.
func (lexer *Lexer) Ignore(delim rune) error {
	if lexer.buffer != nil {
		tok := *lexer.buffer
		lexer.buffer = nil
		if tok.Lexeme == string(delim) {
			return nil
		}
	}
	for {
		r, err := lexer.advance()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if r == delim {
			return nil
		}
	}
}

// skipWhitespace consumes whitespace and returns the first rune after it
func (lexer *Lexer) skipWhitespace() (rune, error) {
	for {
		r, err := lexer.advance()
		if err != nil {
			return 0, err
		}
		if !unicode.IsSpace(r) {
			return r, nil
		}
	}
}

// scanNumber reads the longest run of digits with at most one '.' in it.
func (lexer *Lexer) scanNumber(first rune) (Token, error) {
	var lexeme strings.Builder
	lexeme.WriteRune(first)
	seenDot := first == '.'
	for {
		r, err := lexer.advance()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Token{}, err
		}
		if isDigit(r) {
			lexeme.WriteRune(r)
			continue
		}
		if r == '.' && !seenDot {
			seenDot = true
			lexeme.WriteRune(r)
			continue
		}
		if err := lexer.retreat(r); err != nil {
			return Token{}, err
		}
		break
	}

	value, err := strconv.ParseFloat(lexeme.String(), 64)
	if err != nil {
		return Token{}, &Error{
			Kind:    LexError,
			Line:    lexer.line,
			Lexeme:  lexeme.String(),
			Message: "Invalid number literal.",
		}
	}
	return NewToken(NUMBER, lexeme.String(), value, lexer.line), nil
}

func (lexer *Lexer) scanName(first rune) (Token, error) {
	var lexeme strings.Builder
	lexeme.WriteRune(first)
	for {
		r, err := lexer.advance()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Token{}, err
		}
		if !isAlphanumeric(r) {
			if err := lexer.retreat(r); err != nil {
				return Token{}, err
			}
			break
		}
		lexeme.WriteRune(r)
	}

	if lexeme.String() == quitCommand {
		return NewToken(QUIT, quitCommand, 0, lexer.line), nil
	}
	return NewToken(NAME, lexeme.String(), 0, lexer.line), nil
}

// advance consumes and returns the next rune of the source
func (lexer *Lexer) advance() (rune, error) {
	r, _, err := lexer.source.ReadRune()
	if err != nil {
		return 0, err
	}
	if r == '\n' {
		lexer.line++
	}
	return r, nil
}

// retreat unreads r, which must be the rune last returned by advance
func (lexer *Lexer) retreat(r rune) error {
	if err := lexer.source.UnreadRune(); err != nil {
		return err
	}
	if r == '\n' {
		lexer.line--
	}
	return nil
}
