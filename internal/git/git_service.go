package git

import (
	"context"
	stderrors "errors"
	"path/filepath"
	"strings"

	"github.com/thomas-vilte/husky-installer/internal/errors"
	"github.com/thomas-vilte/husky-installer/internal/logger"
	"github.com/thomas-vilte/husky-installer/internal/shell"
)

const (
	// DisabledHooksPath is what `husky:disable` points core.hooksPath at.
	DisabledHooksPath = "/dev/null"
)

type GitService struct {
	runner shell.Runner
}

func NewGitService(runner shell.Runner) *GitService {
	return &GitService{runner: runner}
}

// IsRepository reports whether dir is inside a git work tree.
func (s *GitService) IsRepository(ctx context.Context, dir string) bool {
	_, err := s.runner.Run(ctx, dir, "git", "rev-parse", "--git-dir")
	if err != nil {
		logger.Debug(ctx, "not a git repository", "dir", dir, "error", err)
		return false
	}
	return true
}

func (s *GitService) RepoRoot(ctx context.Context, dir string) (string, error) {
	out, err := s.runner.Run(ctx, dir, "git", "rev-parse", "--show-toplevel")
	if err != nil {
		return "", errors.ErrGetRepoRoot.WithError(err).WithContext("dir", dir)
	}
	return filepath.Clean(strings.TrimSpace(out)), nil
}

// HooksPath returns the configured core.hooksPath, or "" when it is unset.
func (s *GitService) HooksPath(ctx context.Context, dir string) (string, error) {
	out, err := s.runner.Run(ctx, dir, "git", "config", "--get", "core.hooksPath")
	if err != nil {
		// git config exits 1 when the key is missing.
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) && appErr.Context["exit_code"] == 1 {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// HooksDisabled reports whether hooks were switched off with husky:disable.
func (s *GitService) HooksDisabled(ctx context.Context, dir string) (bool, error) {
	path, err := s.HooksPath(ctx, dir)
	if err != nil {
		return false, err
	}
	return path == DisabledHooksPath, nil
}
