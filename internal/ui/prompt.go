package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/thomas-vilte/husky-installer/internal/errors"
)

// Prompter asks the user yes/no questions.
type Prompter interface {
	Confirm(ctx context.Context, question string, defaultYes bool) (bool, error)
}

var _ Prompter = (*Console)(nil)

// Console reads answers line by line from in and writes questions to out.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

func (c *Console) Out() io.Writer {
	return c.out
}

type readResult struct {
	line string
	err  error
}

// Confirm asks question until it gets a yes or no answer. An empty answer
// picks defaultYes. End of input or a cancelled ctx returns
// errors.ErrCancelled.
func (c *Console) Confirm(ctx context.Context, question string, defaultYes bool) (bool, error) {
	hint := "(y/N)"
	if defaultYes {
		hint = "(Y/n)"
	}

	for {
		_, _ = fmt.Fprintf(c.out, "%s %s %s ", Info.Sprint("?"), question, Dim.Sprint(hint))

		line, err := c.readLine(ctx)
		if err != nil {
			_, _ = fmt.Fprintln(c.out)
			return false, err
		}

		if answer, ok := parseAnswer(line, defaultYes); ok {
			return answer, nil
		}
	}
}

func (c *Console) readLine(ctx context.Context) (string, error) {
	ch := make(chan readResult, 1)
	go func() {
		line, err := c.in.ReadString('\n')
		ch <- readResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", errors.ErrCancelled.WithError(ctx.Err())
	case r := <-ch:
		if r.err != nil {
			// A final answer without a trailing newline still counts.
			if r.err == io.EOF && strings.TrimSpace(r.line) != "" {
				return r.line, nil
			}
			return "", errors.ErrCancelled.WithError(r.err)
		}
		return r.line, nil
	}
}

func parseAnswer(line string, defaultYes bool) (answer, ok bool) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return defaultYes, true
	case "y", "yes", "s", "si", "sí":
		return true, true
	case "n", "no":
		return false, true
	default:
		return false, false
	}
}
