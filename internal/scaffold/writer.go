package scaffold

import (
	"context"
	"os"
	"path/filepath"

	"github.com/thomas-vilte/husky-installer/internal/errors"
	"github.com/thomas-vilte/husky-installer/internal/logger"
)

// Writer writes generated files under a project root.
type Writer struct {
	root string
}

func NewWriter(root string) *Writer {
	return &Writer{root: root}
}

func (w *Writer) Root() string {
	return w.root
}

// Path returns the absolute location of a project-relative path.
func (w *Writer) Path(rel string) string {
	return filepath.Join(w.root, filepath.FromSlash(rel))
}

func (w *Writer) Exists(rel string) bool {
	_, err := os.Stat(w.Path(rel))
	return err == nil
}

// ExistingESLintConfig returns the flat config already present in the
// project, if any.
func (w *Writer) ExistingESLintConfig() (string, bool) {
	for _, name := range []string{ESLintConfigPath, ESLintConfigMJS} {
		if w.Exists(name) {
			return name, true
		}
	}
	return "", false
}

// Write creates or replaces f, creating parent directories as needed. The
// mode is applied even when the file already existed.
func (w *Writer) Write(ctx context.Context, f File) error {
	target := w.Path(f.Path)
	mode := os.FileMode(f.Mode)
	if mode == 0 {
		mode = RegularMode
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return w.writeErr(f, err)
	}
	if err := os.WriteFile(target, []byte(f.Content), mode); err != nil {
		return w.writeErr(f, err)
	}
	if err := os.Chmod(target, mode); err != nil {
		return w.writeErr(f, err)
	}

	logger.Debug(ctx, "file written", "path", f.Path, "mode", mode.String())
	return nil
}

// WriteAll writes files in order and stops at the first failure.
func (w *Writer) WriteAll(ctx context.Context, files []File) error {
	for _, f := range files {
		if err := w.Write(ctx, f); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeErr(f File, err error) error {
	if f.IsHook() {
		return errors.ErrWriteHook.WithError(err).WithContext("path", f.Path)
	}
	return errors.ErrWriteConfig.WithError(err).WithContext("path", f.Path)
}
