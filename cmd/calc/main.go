package main

// This is an interactive calculator with live variables.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"fortio.org/log"
	"git.sr.ht/~sircmpwn/getopt"
	"github.com/davecgh/go-spew/spew"
	"github.com/mattn/go-isatty"

	"github.com/ltungv/calc/internal/calc"
)

const usage = `Usage: calc [-hvnDP] [-e expression] [script]

  -h             show this help
  -v             verbose logging
  -e expression  evaluate expression instead of reading the input
  -n             do not predefine pi and e
  -D             dump the variables to stderr on exit
  -P             never print a prompt

Statements end with ';'. Enter q to quit.
`

const (
	exitOK      = 0
	exitIO      = 1
	exitUsage   = 64
	exitDataErr = 65
	exitFatal   = 70
	// 128 + SIGINT, what the shell reports for a process killed by Ctrl-C
	exitInterrupted = 130
)

const prompt = "> "

type options struct {
	verbose     bool
	expression  string
	noConstants bool
	dumpEnv     bool
	noPrompt    bool
	script      string
}

// fromScript reports whether statements come from -e or a script file rather
// than from stdin.
func (opts *options) fromScript() bool {
	return opts.expression != "" || opts.script != ""
}

func main() {
	os.Exit(realMain(os.Args))
}

func realMain(args []string) int {
	opts, status := readFlags(args)
	if opts == nil {
		return status
	}
	if opts.verbose {
		log.SetLogLevelQuiet(log.Verbose)
	} else {
		log.SetLogLevelQuiet(log.Warning)
	}

	input, interactive, closeInput, err := openInput(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return exitIO
	}
	defer closeInput()

	env := calc.NewEnvironment()
	if !opts.noConstants {
		env.DefineConstants()
	}
	reporter := calc.NewSimpleReporter(os.Stderr, isatty.IsTerminal(os.Stderr.Fd()))
	p := ""
	if interactive && !opts.noPrompt {
		p = prompt
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	session := calc.NewSession(newContextReader(ctx, input), env, os.Stdout, reporter, p)
	err = session.Run(ctx)

	if opts.dumpEnv {
		spew.Fdump(os.Stderr, env.Definitions())
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "interrupted")
		return exitInterrupted
	}
	if err != nil {
		log.Errf("calc: %v", err)
		return exitFatal
	}
	if opts.fromScript() && reporter.HadError() {
		return exitDataErr
	}
	return exitOK
}

// readFlags parses the command line. A nil options means the program should
// exit with the returned status.
func readFlags(args []string) (*options, int) {
	parsed, optind, err := getopt.Getopts(args, "hve:nDP")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n%s", err, usage)
		return nil, exitUsage
	}

	opts := new(options)
	for _, opt := range parsed {
		switch opt.Option {
		case 'h':
			fmt.Print(usage)
			return nil, exitOK
		case 'v':
			opts.verbose = true
		case 'e':
			opts.expression = opt.Value
		case 'n':
			opts.noConstants = true
		case 'D':
			opts.dumpEnv = true
		case 'P':
			opts.noPrompt = true
		}
	}

	rest := args[optind:]
	if len(rest) > 1 || (len(rest) == 1 && opts.expression != "") {
		fmt.Fprint(os.Stderr, usage)
		return nil, exitUsage
	}
	if len(rest) == 1 {
		opts.script = rest[0]
	}
	return opts, exitOK
}

// openInput picks where statements are read from. Only stdin attached to a
// terminal counts as interactive.
func openInput(opts *options) (io.Reader, bool, func(), error) {
	switch {
	case opts.expression != "":
		return strings.NewReader(opts.expression), false, func() {}, nil
	case opts.script != "":
		f, err := os.Open(opts.script)
		if err != nil {
			return nil, false, nil, err
		}
		return f, false, func() { f.Close() }, nil
	}
	return os.Stdin, isatty.IsTerminal(os.Stdin.Fd()), func() {}, nil
}

type readResult struct {
	data []byte
	err  error
}

// contextReader lets a read blocked on the terminal be abandoned when ctx is
// done. The underlying read keeps running in its goroutine and its data is
// handed to the next Read.
type contextReader struct {
	ctx     context.Context
	source  io.Reader
	results chan readResult
	pending bool
	left    []byte
	err     error
}

func newContextReader(ctx context.Context, source io.Reader) *contextReader {
	return &contextReader{ctx: ctx, source: source, results: make(chan readResult, 1)}
}

func (r *contextReader) Read(p []byte) (int, error) {
	if len(r.left) == 0 && r.err == nil {
		if !r.pending {
			r.pending = true
			buf := make([]byte, len(p))
			go func() {
				n, err := r.source.Read(buf)
				r.results <- readResult{buf[:n], err}
			}()
		}
		select {
		case <-r.ctx.Done():
			return 0, r.ctx.Err()
		case res := <-r.results:
			r.pending = false
			r.left, r.err = res.data, res.err
		}
	}
	n := copy(p, r.left)
	r.left = r.left[n:]
	if len(r.left) == 0 && r.err != nil {
		err := r.err
		r.err = nil
		return n, err
	}
	return n, nil
}
