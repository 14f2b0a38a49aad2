package calc

import (
	"io"

	"github.com/fatih/color"
)

// Reporter defines the interface for structures that display errors to the
// user. Reporting is kept apart from evaluation so that the session does not
// care where the messages end up.
type Reporter interface {
	Report(err error)
	HadError() bool
	Reset()
}

// SimpleReporter writes each error on its own line to the inner writer
type SimpleReporter struct {
	writer io.Writer
	paint  *color.Color
	hadErr bool
}

// NewSimpleReporter creates a reporter writing to writer, in red when colored
// is set.
func NewSimpleReporter(writer io.Writer, colored bool) *SimpleReporter {
	paint := color.New(color.FgRed)
	if colored {
		paint.EnableColor()
	} else {
		paint.DisableColor()
	}
	return &SimpleReporter{writer, paint, false}
}

func (reporter *SimpleReporter) Report(err error) {
	reporter.hadErr = true
	reporter.paint.Fprintln(reporter.writer, err)
}

func (reporter *SimpleReporter) HadError() bool {
	return reporter.hadErr
}

func (reporter *SimpleReporter) Reset() {
	reporter.hadErr = false
}
