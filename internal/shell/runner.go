package shell

import (
	"context"
	stderrors "errors"
	"os/exec"
	"strings"

	"github.com/thomas-vilte/husky-installer/internal/errors"
	"github.com/thomas-vilte/husky-installer/internal/logger"
)

// Runner runs an external command to completion and returns its combined
// output. A non-zero exit is reported as an error carrying that output.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (string, error)
}

var _ Runner = (*ExecRunner)(nil)

// ExecRunner runs commands with os/exec. It applies no timeout and never
// retries.
type ExecRunner struct{}

func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	line := CommandLine(name, args...)
	logger.Debug(ctx, "running command", "command", line, "dir", dir)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	output := strings.TrimSpace(string(out))
	if err == nil {
		return output, nil
	}

	if stderrors.Is(err, exec.ErrNotFound) {
		return output, errors.ErrCommandNotFound.WithError(err).WithContext("command", line)
	}

	appErr := errors.ErrCommandFailed.WithError(err).
		WithContext("command", line).
		WithContext("output", output)

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		appErr = appErr.WithContext("exit_code", exitErr.ExitCode())
	}

	logger.Debug(ctx, "command failed", "command", line, "error", err)
	return output, appErr
}

// CommandLine renders name and args the way a user would type them.
func CommandLine(name string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, name)
	for _, a := range args {
		if a == "" || strings.ContainsAny(a, " \t\"'") {
			a = `"` + strings.ReplaceAll(a, `"`, `\"`) + `"`
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}
