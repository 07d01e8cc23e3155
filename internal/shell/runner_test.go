package shell

import (
	"context"
	stderrors "errors"
	"os/exec"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/husky-installer/internal/errors"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestExecRunner_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("should return combined output on success", func(t *testing.T) {
		requireShell(t)
		r := NewExecRunner()

		out, err := r.Run(ctx, t.TempDir(), "sh", "-c", "echo out; echo err 1>&2")

		require.NoError(t, err)
		assert.Contains(t, out, "out")
		assert.Contains(t, out, "err")
	})

	t.Run("should run in the given directory", func(t *testing.T) {
		requireShell(t)
		dir := t.TempDir()
		r := NewExecRunner()

		out, err := r.Run(ctx, dir, "sh", "-c", "pwd")

		require.NoError(t, err)
		assert.Contains(t, out, dir)
	})

	t.Run("should map a non-zero exit to a command error with output", func(t *testing.T) {
		requireShell(t)
		r := NewExecRunner()

		out, err := r.Run(ctx, t.TempDir(), "sh", "-c", "echo boom; exit 3")

		require.Error(t, err)
		assert.Equal(t, "boom", out)
		assert.ErrorIs(t, err, errors.ErrCommandFailed)

		var appErr *errors.AppError
		require.True(t, stderrors.As(err, &appErr))
		assert.Equal(t, 3, appErr.Context["exit_code"])
		assert.Equal(t, "boom", appErr.Context["output"])
		assert.Equal(t, `sh -c "echo boom; exit 3"`, appErr.Context["command"])
	})

	t.Run("should report a missing binary", func(t *testing.T) {
		r := NewExecRunner()

		_, err := r.Run(ctx, t.TempDir(), "definitely-not-a-real-binary-42")

		assert.ErrorIs(t, err, errors.ErrCommandNotFound)
	})
}

func TestCommandLine(t *testing.T) {
	assert.Equal(t, "npx husky init", CommandLine("npx", "husky", "init"))
	assert.Equal(t,
		`npm pkg set "scripts.husky:disable=git config core.hooksPath /dev/null"`,
		CommandLine("npm", "pkg", "set", "scripts.husky:disable=git config core.hooksPath /dev/null"))
	assert.Equal(t, `echo ""`, CommandLine("echo", ""))
}
