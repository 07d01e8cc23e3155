package ui

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// SmartSpinner is a spinner that reports its outcome as a status line once
// it stops.
type SmartSpinner struct {
	spinner *spinner.Spinner
	out     io.Writer
}

// NewSmartSpinner creates a spinner writing to w. It only animates when w is
// a terminal.
func NewSmartSpinner(w io.Writer, initialMessage string) *SmartSpinner {
	s := spinner.New(
		spinner.CharSets[14],
		100*time.Millisecond,
		spinner.WithWriter(w),
		spinner.WithColor("cyan"),
		spinner.WithSuffix(" "+initialMessage),
	)
	return &SmartSpinner{spinner: s, out: w}
}

func (s *SmartSpinner) Start() {
	s.spinner.Start()
}

func (s *SmartSpinner) Stop() {
	s.spinner.Stop()
}

func (s *SmartSpinner) UpdateMessage(msg string) {
	s.spinner.Suffix = " " + msg
}

func (s *SmartSpinner) Success(msg string) {
	s.Stop()
	PrintSuccess(s.out, msg)
}

func (s *SmartSpinner) Error(msg string) {
	s.Stop()
	PrintError(s.out, msg)
}

func (s *SmartSpinner) Warning(msg string) {
	s.Stop()
	PrintWarning(s.out, msg)
}

// WithSpinner runs fn behind a spinner and prints done or failed when it
// returns.
func WithSpinner(w io.Writer, message, done, failed string, fn func() error) error {
	s := NewSmartSpinner(w, message)
	s.Start()

	if err := fn(); err != nil {
		s.Error(failed)
		return err
	}

	s.Success(done)
	return nil
}
