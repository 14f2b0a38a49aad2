package main

// tokens prints the token stream of its input, one token per line, which
// helps when checking how the calculator splits a statement.

import (
	"fmt"
	"io"
	"os"

	"github.com/ltungv/calc/internal/calc"
)

func main() {
	if err := printTokens(os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(65)
	}
}

func printTokens(in io.Reader, out io.Writer) error {
	lexer := calc.NewLexer(in)
	for {
		tok, err := lexer.Get()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d\t%s\n", tok.Line, tok)
		if tok.Typ == calc.END {
			return nil
		}
	}
}
