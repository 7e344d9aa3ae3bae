package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"github.com/representatives-dao/repms/internal/usecase"
)

// SpinnerSink shows a spinner while a stage runs and a check mark with the
// stage duration once the next event arrives.
type SpinnerSink struct {
	spinner *spinner.Spinner
	out     io.Writer

	stage     string
	message   string
	startedAt time.Time
	now       func() time.Time
}

// NewSpinnerSink creates a spinner sink writing to stderr
func NewSpinnerSink() *SpinnerSink {
	return newSpinnerSink(os.Stderr)
}

func newSpinnerSink(out io.Writer) *SpinnerSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false
	return &SpinnerSink{
		spinner: s,
		out:     out,
		now:     time.Now,
	}
}

// OnProgress handles progress events
func (r *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Stage != r.stage {
		r.completeStage()
	}

	if event.Spinner {
		if event.Stage != r.stage {
			r.stage = event.Stage
			r.startedAt = r.now()
		}
		r.message = event.Message
		r.spinner.Suffix = " " + event.Message
		if !r.spinner.Active() {
			r.spinner.Start()
		}
		return
	}

	r.stage = ""
	if r.spinner.Active() {
		r.spinner.Stop()
	}
}

// completeStage prints the running stage as done
func (r *SpinnerSink) completeStage() {
	if r.stage == "" {
		return
	}
	if r.spinner.Active() {
		r.spinner.Stop()
	}
	elapsed := r.now().Sub(r.startedAt).Round(time.Millisecond)
	fmt.Fprintf(r.out, "%s %s %s\n",
		color.GreenString("✓"),
		r.message,
		color.New(color.Faint).Sprintf("(%s)", elapsed))
	r.stage = ""
}

// Info prints an info message
func (r *SpinnerSink) Info(message string) {
	r.printPaused(color.New(color.FgCyan), message)
}

// Error prints an error message
func (r *SpinnerSink) Error(message string) {
	r.printPaused(color.New(color.FgRed), message)
}

func (r *SpinnerSink) printPaused(c *color.Color, message string) {
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	c.Fprintln(r.out, message)

	if wasActive {
		r.spinner.Start()
	}
}

// NewNopSink creates a sink for non interactive and JSON output
func NewNopSink() usecase.ProgressSink {
	return usecase.NopProgress{}
}

var _ usecase.ProgressSink = (*SpinnerSink)(nil)
