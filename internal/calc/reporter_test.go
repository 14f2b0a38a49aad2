package calc

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimpleReporterInit(t *testing.T) {
	r := NewSimpleReporter(io.Discard, false)
	assert.False(t, r.HadError())
}

func TestSimpleReporterSendAnyError(t *testing.T) {
	assert := assert.New(t)
	err := errors.New("Test error")

	var out strings.Builder
	r := NewSimpleReporter(&out, false)
	r.Report(err)

	assert.Equal(fmt.Sprintf("%v\n", err), out.String())
	assert.True(r.HadError())
}

func TestSimpleReporterSendErrors(t *testing.T) {
	assert := assert.New(t)
	err1 := newError(LexError, 1, "Unexpected character.")
	err2 := newTokenError(DivideByZero, NewToken(SLASH, "/", 0, 2), "Division by zero.")

	var out strings.Builder
	r := NewSimpleReporter(&out, false)
	r.Report(err1)
	r.Report(err2)

	assert.Equal(
		"[line 1] Error: Unexpected character.\n[line 2] Error at '/': Division by zero.\n",
		out.String(),
	)
	assert.True(r.HadError())
}

func TestSimpleReporterColored(t *testing.T) {
	var out strings.Builder
	r := NewSimpleReporter(&out, true)
	r.Report(errors.New("boom"))

	assert.Contains(t, out.String(), "\x1b[31m")
	assert.Contains(t, out.String(), "boom")
}

func TestSimpleReporterReset(t *testing.T) {
	r := NewSimpleReporter(io.Discard, false)
	r.Report(errors.New("Test error"))
	r.Reset()
	assert.False(t, r.HadError())
}
