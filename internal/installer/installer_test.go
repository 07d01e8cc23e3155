package installer

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/husky-installer/internal/commitmsg"
	"github.com/thomas-vilte/husky-installer/internal/config"
	"github.com/thomas-vilte/husky-installer/internal/errors"
	"github.com/thomas-vilte/husky-installer/internal/i18n"
	"github.com/thomas-vilte/husky-installer/internal/shell"
	"github.com/thomas-vilte/husky-installer/internal/ui"
)

func init() {
	color.NoColor = true
}

type fakeRepo struct {
	isRepo bool
	root   string
}

func (f fakeRepo) IsRepository(context.Context, string) bool { return f.isRepo }

func (f fakeRepo) RepoRoot(context.Context, string) (string, error) {
	if !f.isRepo {
		return "", errors.ErrGetRepoRoot
	}
	return f.root, nil
}

type fixture struct {
	dir    string
	runner *shell.MockRunner
	out    *bytes.Buffer
}

func newFixture(t *testing.T, manifest string, lockFile string) *fixture {
	t.Helper()
	dir := t.TempDir()
	if manifest != "" {
		writeFile(t, dir, "package.json", manifest)
	}
	if lockFile != "" {
		writeFile(t, dir, lockFile, "")
	}
	return &fixture{dir: dir, runner: new(shell.MockRunner), out: new(bytes.Buffer)}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

func (f *fixture) installer(t *testing.T, input string, repo fakeRepo) *Installer {
	t.Helper()
	trans, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)
	if repo.isRepo && repo.root == "" {
		repo.root = f.dir
	}
	return New(f.dir, f.runner, repo, ui.NewConsole(strings.NewReader(input), f.out), trans, WithOutput(f.out))
}

// expectHuskyInit simulates `npx husky init` creating its default hook.
func (f *fixture) expectHuskyInit() {
	f.runner.On("Run", mock.Anything, f.dir, "npx", "husky", "init").
		Run(func(mock.Arguments) {
			_ = os.MkdirAll(filepath.Join(f.dir, ".husky"), 0755)
			_ = os.WriteFile(filepath.Join(f.dir, ".husky", "pre-commit"), []byte("npm test\n"), 0755)
		}).
		Return("", nil)
}

func (f *fixture) expectScripts() {
	f.runner.On("Run", mock.Anything, f.dir, "npm", "pkg", "set", "scripts.husky:disable=git config core.hooksPath /dev/null").Return("", nil)
	f.runner.On("Run", mock.Anything, f.dir, "npm", "pkg", "set", "scripts.husky:enable=git config core.hooksPath .husky").Return("", nil)
}

func TestInstaller_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("should set up everything for a Next.js project using pnpm", func(t *testing.T) {
		f := newFixture(t, `{"dependencies":{"next":"14.0.0","react":"18.0.0"}}`, "pnpm-lock.yaml")
		f.runner.On("Run", mock.Anything, f.dir, "pnpm", "add", "-D", "husky", "prettier", "eslint", "@eslint/js").Return("added 4 packages", nil)
		f.expectHuskyInit()
		f.expectScripts()

		report, err := f.installer(t, "y\ny\ny\n", fakeRepo{isRepo: true}).Run(ctx)

		require.NoError(t, err)
		f.runner.AssertExpectations(t)

		assert.Equal(t, "pnpm", report.Environment.PackageManager.String())
		assert.Equal(t, "Next.js", report.Environment.Framework.Name)
		assert.Equal(t, []string{
			".husky/pre-commit",
			".husky/commit-msg.cjs",
			".husky/commit-msg",
			".prettierrc",
			".prettierignore",
			"eslint.config.js",
		}, report.Written)
		assert.Empty(t, report.Skipped)

		preCommit := readFile(t, f.dir, ".husky/pre-commit")
		assert.Equal(t,
			"npx prettier --write . --ignore-path .gitignore || true\n"+
				"git add .\n"+
				`npx eslint . --fix --ignore-pattern "node_modules" --ignore-pattern ".husky" --ignore-pattern ".next" --ignore-pattern "out" --ignore-pattern ".vercel" || true`+"\n"+
				"git add .\n",
			preCommit)
		assert.Equal(t, "node .husky/commit-msg.cjs $1\n", readFile(t, f.dir, ".husky/commit-msg"))
		assert.Contains(t, readFile(t, f.dir, ".husky/commit-msg.cjs"), "feat: '🚀'")
		assert.Contains(t, readFile(t, f.dir, ".prettierignore"), ".next\nout\n.vercel\n")
		assert.Contains(t, readFile(t, f.dir, "eslint.config.js"), `ignores: ["node_modules",".husky",".next","out",".vercel"]`)

		if runtime.GOOS != "windows" {
			info, err := os.Stat(filepath.Join(f.dir, ".husky", "commit-msg"))
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
		}

		out := f.out.String()
		assert.Contains(t, out, "Git repository found")
		assert.Contains(t, out, "package.json found")
		assert.Contains(t, out, "Package manager: pnpm")
		assert.Contains(t, out, "Framework: ▲ Next.js")
		assert.Contains(t, out, "🚀 feat: add login")
		assert.Contains(t, out, "pnpm run husky:disable")
		assert.Contains(t, out, "pnpm run husky:enable")
	})

	t.Run("should only install husky when every answer is no", func(t *testing.T) {
		f := newFixture(t, `{"name":"app"}`, "")
		f.runner.On("Run", mock.Anything, f.dir, "npm", "install", "-D", "husky").Return("", nil)
		f.expectHuskyInit()
		f.expectScripts()

		report, err := f.installer(t, "n\nn\nn\n", fakeRepo{isRepo: true}).Run(ctx)

		require.NoError(t, err)
		f.runner.AssertExpectations(t)
		assert.Equal(t, []string{"husky"}, report.DevDeps)
		assert.Empty(t, report.Written)
		assert.Equal(t, "npm test\n", readFile(t, f.dir, ".husky/pre-commit"), "husky's default hook stays")
		assert.NoFileExists(t, filepath.Join(f.dir, ".husky", "commit-msg"))
		assert.NoFileExists(t, filepath.Join(f.dir, ".prettierrc"))
		assert.NoFileExists(t, filepath.Join(f.dir, "eslint.config.js"))
	})

	t.Run("should keep an existing eslint flat config", func(t *testing.T) {
		f := newFixture(t, `{"devDependencies":{"vite":"5"}}`, "yarn.lock")
		writeFile(t, f.dir, "eslint.config.mjs", "export default [];\n")
		f.runner.On("Run", mock.Anything, f.dir, "yarn", "add", "-D", "husky", "eslint", "@eslint/js").Return("", nil)
		f.expectHuskyInit()
		f.expectScripts()

		report, err := f.installer(t, "n\ny\nn\n", fakeRepo{isRepo: true}).Run(ctx)

		require.NoError(t, err)
		assert.Equal(t, []string{"eslint.config.mjs"}, report.Skipped)
		assert.Equal(t, []string{".husky/pre-commit"}, report.Written)
		assert.NoFileExists(t, filepath.Join(f.dir, "eslint.config.js"))
		assert.Equal(t, "export default [];\n", readFile(t, f.dir, "eslint.config.mjs"))
		assert.Contains(t, f.out.String(), "Add .husky to ignores in your eslint.config.mjs")
	})

	t.Run("should use the repository config for defaults and style", func(t *testing.T) {
		f := newFixture(t, `{"dependencies":{"express":"4"}}`, "bun.lockb")
		writeFile(t, f.dir, config.LocalFileName, "commit_style = \"tag\"\n[defaults]\nprettier = false\neslint = false\n")
		f.runner.On("Run", mock.Anything, f.dir, "bun", "add", "-D", "husky").Return("", nil)
		f.expectHuskyInit()
		f.expectScripts()

		report, err := f.installer(t, "\n\n\n", fakeRepo{isRepo: true}).Run(ctx)

		require.NoError(t, err)
		assert.Equal(t, Answers{CommitPrefix: true, Style: commitmsg.StyleTag}, report.Answers)
		assert.Contains(t, readFile(t, f.dir, ".husky/commit-msg.cjs"), "feat: '[feat]'")
		assert.Contains(t, f.out.String(), "[feat] feat: add login")
	})

	t.Run("should fail outside a git repository", func(t *testing.T) {
		f := newFixture(t, `{}`, "")

		_, err := f.installer(t, "", fakeRepo{}).Run(ctx)

		assert.ErrorIs(t, err, errors.ErrNotInGitRepo)
		assert.Contains(t, f.out.String(), "Git repository not found")
		f.runner.AssertNumberOfCalls(t, "Run", 0)
	})

	t.Run("should fail without package.json", func(t *testing.T) {
		f := newFixture(t, "", "")

		_, err := f.installer(t, "", fakeRepo{isRepo: true}).Run(ctx)

		assert.ErrorIs(t, err, errors.ErrManifestMissing)
		assert.Contains(t, f.out.String(), "package.json not found")
	})

	t.Run("should fail on an invalid package.json", func(t *testing.T) {
		f := newFixture(t, `{"dependencies":`, "")

		_, err := f.installer(t, "", fakeRepo{isRepo: true}).Run(ctx)

		assert.ErrorIs(t, err, errors.ErrManifestInvalid)
	})

	t.Run("should cancel when input ends mid-way", func(t *testing.T) {
		f := newFixture(t, `{}`, "")

		_, err := f.installer(t, "y\n", fakeRepo{isRepo: true}).Run(ctx)

		assert.ErrorIs(t, err, errors.ErrCancelled)
		assert.Contains(t, f.out.String(), "Installation cancelled.")
		assert.NoDirExists(t, filepath.Join(f.dir, ".husky"))
	})

	t.Run("should stop at a failing install and keep the command output", func(t *testing.T) {
		f := newFixture(t, `{}`, "")
		failure := errors.ErrCommandFailed.
			WithError(stderrors.New("exit status 1")).
			WithContext("command", "npm install -D husky prettier eslint @eslint/js").
			WithContext("exit_code", 1).
			WithContext("output", "npm ERR! network")
		f.runner.On("Run", mock.Anything, f.dir, "npm", "install", "-D", "husky", "prettier", "eslint", "@eslint/js").Return("npm ERR! network", failure)

		_, err := f.installer(t, "y\ny\ny\n", fakeRepo{isRepo: true}).Run(ctx)

		require.ErrorIs(t, err, errors.ErrInstallDependencies)
		var appErr *errors.AppError
		require.True(t, stderrors.As(err, &appErr))
		assert.Equal(t, "npm ERR! network", appErr.Context["output"])
		assert.Equal(t, 1, appErr.Context["exit_code"])
		f.runner.AssertNumberOfCalls(t, "Run", 1)
		assert.NoDirExists(t, filepath.Join(f.dir, ".husky"))
	})

	t.Run("should report a failing husky init", func(t *testing.T) {
		f := newFixture(t, `{}`, "")
		f.runner.On("Run", mock.Anything, f.dir, "npm", "install", "-D", "husky").Return("", nil)
		f.runner.On("Run", mock.Anything, f.dir, "npx", "husky", "init").Return("", errors.ErrCommandFailed.WithContext("output", ".git can't be found"))

		_, err := f.installer(t, "n\nn\nn\n", fakeRepo{isRepo: true}).Run(ctx)

		assert.ErrorIs(t, err, errors.ErrHuskyInit)
	})

	t.Run("should print the banner when a version is set", func(t *testing.T) {
		f := newFixture(t, "", "")
		trans, err := i18n.NewTranslations("en", "")
		require.NoError(t, err)
		inst := New(f.dir, f.runner, fakeRepo{isRepo: true, root: f.dir}, ui.NewConsole(strings.NewReader(""), f.out), trans,
			WithOutput(f.out), WithBanner("9.9.9"))

		_, _ = inst.Run(ctx)

		assert.Contains(t, f.out.String(), "v9.9.9")
	})
}

func TestDevDependencies(t *testing.T) {
	assert.Equal(t, []string{"husky"}, DevDependencies(Answers{}))
	assert.Equal(t, []string{"husky", "prettier"}, DevDependencies(Answers{Prettier: true}))
	assert.Equal(t, []string{"husky", "prettier", "eslint", "@eslint/js"}, DevDependencies(Answers{Prettier: true, ESLint: true}))
}

func TestPreviewNote(t *testing.T) {
	note := PreviewNote(commitmsg.MustTableFor(commitmsg.StyleShortcode))

	lines := strings.Split(note, "\n")
	require.Len(t, lines, len(ExampleMessages))
	assert.True(t, strings.HasSuffix(lines[0], ":rocket: feat: add login"))
	assert.True(t, strings.HasSuffix(lines[1], ":bug: fix: button bug"))
}

func TestPrefixTable(t *testing.T) {
	table := PrefixTable(commitmsg.MustTableFor(commitmsg.StyleTag))

	lines := strings.Split(table, "\n")
	require.Len(t, lines, 14)
	assert.Equal(t, "feat      [feat]", lines[0])
	assert.Equal(t, "release   [release]", lines[13])
}
