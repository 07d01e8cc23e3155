package installer

import (
	"context"
	stderrors "errors"
	"io"
	"os"

	"github.com/thomas-vilte/husky-installer/internal/commitmsg"
	"github.com/thomas-vilte/husky-installer/internal/config"
	"github.com/thomas-vilte/husky-installer/internal/detect"
	"github.com/thomas-vilte/husky-installer/internal/errors"
	"github.com/thomas-vilte/husky-installer/internal/i18n"
	"github.com/thomas-vilte/husky-installer/internal/logger"
	"github.com/thomas-vilte/husky-installer/internal/scaffold"
	"github.com/thomas-vilte/husky-installer/internal/shell"
	"github.com/thomas-vilte/husky-installer/internal/ui"
)

// repoService is the part of the git service the installer needs.
type repoService interface {
	IsRepository(ctx context.Context, dir string) bool
	RepoRoot(ctx context.Context, dir string) (string, error)
}

// Environment is what the installer detected about the project.
type Environment struct {
	PackageManager detect.PackageManager
	Framework      detect.Framework
}

// Answers are the user's choices.
type Answers struct {
	Prettier     bool
	ESLint       bool
	CommitPrefix bool
	Style        commitmsg.Style
}

// Report describes what a completed run did.
type Report struct {
	Environment Environment
	Answers     Answers
	DevDeps     []string
	Written     []string
	Skipped     []string
}

// Installer runs the setup pipeline in a project directory. Steps run one
// after another and a failure stops the run without undoing earlier steps.
type Installer struct {
	dir      string
	runner   shell.Runner
	git      repoService
	prompter ui.Prompter
	writer   *scaffold.Writer
	cfg      *config.Config
	trans    *i18n.Translations
	out      io.Writer
	version  string
}

type Option func(*Installer)

func WithOutput(w io.Writer) Option {
	return func(i *Installer) {
		i.out = w
	}
}

// WithBanner prints the start-up banner with version before the first step.
func WithBanner(version string) Option {
	return func(i *Installer) {
		i.version = version
	}
}

func WithConfig(cfg *config.Config) Option {
	return func(i *Installer) {
		i.cfg = cfg
	}
}

func New(
	dir string,
	runner shell.Runner,
	git repoService,
	prompter ui.Prompter,
	trans *i18n.Translations,
	opts ...Option,
) *Installer {
	i := &Installer{
		dir:      dir,
		runner:   runner,
		git:      git,
		prompter: prompter,
		writer:   scaffold.NewWriter(dir),
		cfg:      config.DefaultConfig(),
		trans:    trans,
		out:      os.Stdout,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Run executes the whole pipeline. A user abort returns errors.ErrCancelled.
func (i *Installer) Run(ctx context.Context) (*Report, error) {
	ctx = logger.With(ctx, "dir", i.dir)

	if i.version != "" {
		_, _ = io.WriteString(i.out, ui.Banner(i.msg("install.tagline", nil), i.version)+"\n\n")
	}
	_, _ = io.WriteString(i.out, ui.Code.Sprint(i.msg("install.intro", nil))+"\n\n")

	root, err := i.CheckPreconditions(ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := config.WithLocalOverrides(i.cfg, root)
	if err != nil {
		return nil, err
	}

	env, err := i.DetectEnvironment(ctx)
	if err != nil {
		return nil, err
	}

	answers, err := i.Ask(ctx, cfg)
	if err != nil {
		if stderrors.Is(err, errors.ErrCancelled) {
			ui.PrintWarning(i.out, i.msg("install.cancelled", nil))
		}
		return nil, err
	}
	logger.Info(ctx, "answers collected",
		"prettier", answers.Prettier,
		"eslint", answers.ESLint,
		"commit_prefix", answers.CommitPrefix,
		"style", string(answers.Style))

	report := &Report{Environment: env, Answers: answers, DevDeps: DevDependencies(answers)}

	if answers.CommitPrefix {
		table, err := commitmsg.TableFor(answers.Style)
		if err != nil {
			return nil, err
		}
		ui.PrintNote(i.out, i.msg("preview.title", nil), PreviewNote(table))
	}

	steps := []func(context.Context, *Report) error{
		i.InstallDependencies,
		i.InitHusky,
		i.WriteHooks,
		i.WriteConfigs,
		i.RegisterScripts,
	}
	for _, step := range steps {
		if err := step(ctx, report); err != nil {
			return report, err
		}
	}

	i.printSummary(report)
	return report, nil
}

func (i *Installer) msg(id string, data map[string]interface{}) string {
	return i.trans.GetMessage(id, 0, data)
}
