// Package ui provides terminal output helpers for reef commands.
package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// Colors for consistent theming
var (
	success = color.New(color.FgGreen, color.Bold)
	warning = color.New(color.FgYellow)
	errc    = color.New(color.FgRed, color.Bold)
	muted   = color.New(color.FgHiBlack)
)

// Successf prints a green checkmarked line to stdout.
func Successf(format string, args ...any) {
	fmt.Printf("%s %s\n", success.Sprint("✔"), fmt.Sprintf(format, args...))
}

// Warnf prints a yellow warning line to stderr.
func Warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", warning.Sprint("warning:"), fmt.Sprintf(format, args...))
}

// Errorf prints a red error line to stderr.
func Errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", errc.Sprint("error:"), fmt.Sprintf(format, args...))
}

// Mutedf prints a dimmed line to stdout, used for hints and next steps.
func Mutedf(format string, args ...any) {
	muted.Printf(format+"\n", args...)
}

// NewSpinner returns a started spinner with the given suffix text.
func NewSpinner(text string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + text
	s.Color("cyan")
	return s
}

// NewProgressBar returns a progress bar for max units of work.
func NewProgressBar(max int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(max,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() {
			fmt.Print("\n")
		}),
	)
}

// PhaseReporter displays a titled task sequence with one spinner per phase,
// in the style of the platform's hosted tooling.
type PhaseReporter struct {
	spin *spinner.Spinner
}

// Start begins a new phase, finishing any previous one.
func (r *PhaseReporter) Start(title string) {
	r.stop()
	r.spin = NewSpinner(title)
	r.spin.Start()
}

// Done finishes the current phase successfully.
func (r *PhaseReporter) Done() {
	if r.spin == nil {
		return
	}
	title := r.spin.Suffix
	r.stop()
	fmt.Printf("%s%s\n", success.Sprint("✔"), title)
}

// Fail finishes the current phase with a failure marker.
func (r *PhaseReporter) Fail() {
	if r.spin == nil {
		return
	}
	title := r.spin.Suffix
	r.stop()
	fmt.Printf("%s%s\n", errc.Sprint("✘"), title)
}

func (r *PhaseReporter) stop() {
	if r.spin != nil {
		r.spin.Stop()
		r.spin = nil
	}
}
