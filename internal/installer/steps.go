package installer

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/thomas-vilte/husky-installer/internal/commitmsg"
	"github.com/thomas-vilte/husky-installer/internal/config"
	"github.com/thomas-vilte/husky-installer/internal/detect"
	"github.com/thomas-vilte/husky-installer/internal/errors"
	"github.com/thomas-vilte/husky-installer/internal/logger"
	"github.com/thomas-vilte/husky-installer/internal/scaffold"
	"github.com/thomas-vilte/husky-installer/internal/ui"
)

const (
	DisableScript = "husky:disable"
	EnableScript  = "husky:enable"
)

// ControlScripts maps the package.json scripts registered by the installer
// to their commands.
var ControlScripts = [][2]string{
	{DisableScript, "git config core.hooksPath /dev/null"},
	{EnableScript, "git config core.hooksPath " + scaffold.HuskyDir},
}

// CheckPreconditions verifies the directory is a git repository with a
// package.json and returns the repository root.
func (i *Installer) CheckPreconditions(ctx context.Context) (string, error) {
	s := ui.NewSmartSpinner(i.out, i.msg("install.checking_git", nil))
	s.Start()
	if !i.git.IsRepository(ctx, i.dir) {
		s.Error(i.msg("install.git_missing", nil))
		return "", errors.ErrNotInGitRepo.WithContext("dir", i.dir)
	}
	s.Success(i.msg("install.git_found", nil))

	root, err := i.git.RepoRoot(ctx, i.dir)
	if err != nil {
		return "", err
	}

	s = ui.NewSmartSpinner(i.out, i.msg("install.checking_manifest", nil))
	s.Start()
	if !detect.ManifestExists(i.dir) {
		s.Error(i.msg("install.manifest_missing", nil))
		return "", errors.ErrManifestMissing.WithContext("dir", i.dir)
	}
	s.Success(i.msg("install.manifest_found", nil))

	return root, nil
}

func (i *Installer) DetectEnvironment(ctx context.Context) (Environment, error) {
	s := ui.NewSmartSpinner(i.out, i.msg("detect.detecting_package_manager", nil))
	s.Start()
	pm := detect.DetectPackageManager(i.dir)
	s.Success(i.msg("detect.package_manager", map[string]interface{}{
		"Name": ui.Info.Sprint(pm.String()),
	}))

	s = ui.NewSmartSpinner(i.out, i.msg("detect.detecting_framework", nil))
	s.Start()
	fw, err := detect.DetectFramework(i.dir)
	if err != nil {
		s.Error(i.msg("detect.framework_failed", nil))
		return Environment{}, err
	}
	s.Success(i.msg("detect.framework", map[string]interface{}{
		"Icon": fw.Icon,
		"Name": ui.Info.Sprint(fw.Name),
	}))
	_, _ = i.out.Write([]byte("\n"))

	logger.Info(ctx, "environment detected", "package_manager", pm.String(), "framework", fw.Key)
	return Environment{PackageManager: pm, Framework: fw}, nil
}

// Ask runs the three confirmations. Defaults come from cfg.
func (i *Installer) Ask(ctx context.Context, cfg *config.Config) (Answers, error) {
	answers := Answers{Style: cfg.Style()}
	var err error

	if answers.Prettier, err = i.prompter.Confirm(ctx, i.msg("prompt.prettier", nil), cfg.Defaults.Prettier); err != nil {
		return Answers{}, asCancelled(err)
	}
	if answers.ESLint, err = i.prompter.Confirm(ctx, i.msg("prompt.eslint", nil), cfg.Defaults.ESLint); err != nil {
		return Answers{}, asCancelled(err)
	}
	question := i.msg("prompt.commit_prefix", map[string]interface{}{"Style": string(answers.Style)})
	if answers.CommitPrefix, err = i.prompter.Confirm(ctx, question, cfg.Defaults.CommitPrefix); err != nil {
		return Answers{}, asCancelled(err)
	}
	return answers, nil
}

func asCancelled(err error) error {
	if stderrors.Is(err, errors.ErrCancelled) {
		return err
	}
	if stderrors.Is(err, context.Canceled) {
		return errors.ErrCancelled.WithError(err)
	}
	return err
}

// DevDependencies lists the packages to install for answers, husky first.
func DevDependencies(answers Answers) []string {
	deps := []string{"husky"}
	if answers.Prettier {
		deps = append(deps, "prettier")
	}
	if answers.ESLint {
		deps = append(deps, "eslint", "@eslint/js")
	}
	return deps
}

func (i *Installer) InstallDependencies(ctx context.Context, report *Report) error {
	name, args := report.Environment.PackageManager.AddDevArgs(report.DevDeps)
	return ui.WithSpinner(i.out,
		i.msg("install.installing_deps", nil),
		i.msg("install.deps_installed", map[string]interface{}{"Deps": ui.Code.Sprint(strings.Join(report.DevDeps, ", "))}),
		i.msg("install.deps_failed", nil),
		func() error {
			if _, err := i.runner.Run(ctx, i.dir, name, args...); err != nil {
				return commandErr(errors.ErrInstallDependencies, err)
			}
			return nil
		})
}

func (i *Installer) InitHusky(ctx context.Context, _ *Report) error {
	return ui.WithSpinner(i.out,
		i.msg("install.husky_init", nil),
		i.msg("install.husky_initialized", nil),
		i.msg("install.husky_failed", nil),
		func() error {
			if _, err := i.runner.Run(ctx, i.dir, "npx", "husky", "init"); err != nil {
				return commandErr(errors.ErrHuskyInit, err)
			}
			return nil
		})
}

func (i *Installer) WriteHooks(ctx context.Context, report *Report) error {
	answers := report.Answers
	ignore := scaffold.IgnorePatterns(report.Environment.Framework.IgnorePatterns)

	if f, ok := scaffold.PreCommitHook(answers.Prettier, answers.ESLint, ignore); ok {
		s := ui.NewSmartSpinner(i.out, i.msg("hooks.creating_pre_commit", nil))
		s.Start()
		if err := i.writer.Write(ctx, f); err != nil {
			s.Error(i.msg("hooks.failed", map[string]interface{}{"Path": f.Path}))
			return err
		}
		report.Written = append(report.Written, f.Path)
		s.Success(i.msg("hooks.pre_commit_created", map[string]interface{}{
			"Path":     ui.Code.Sprint(f.Path),
			"Patterns": ui.Dim.Sprint(strings.Join(ignore, ", ")),
		}))
	}

	if !answers.CommitPrefix {
		return nil
	}

	s := ui.NewSmartSpinner(i.out, i.msg("hooks.creating_commit_msg", nil))
	s.Start()
	table, err := commitmsg.TableFor(answers.Style)
	if err != nil {
		s.Stop()
		return err
	}
	files, err := scaffold.CommitMsgHooks(table)
	if err != nil {
		s.Stop()
		return err
	}
	for _, f := range files {
		if err := i.writer.Write(ctx, f); err != nil {
			s.Error(i.msg("hooks.failed", map[string]interface{}{"Path": f.Path}))
			return err
		}
		report.Written = append(report.Written, f.Path)
	}
	s.Success(i.msg("hooks.commit_msg_created", map[string]interface{}{"Path": ui.Code.Sprint(scaffold.CommitMsgPath)}))
	return nil
}

func (i *Installer) WriteConfigs(ctx context.Context, report *Report) error {
	answers := report.Answers
	patterns := report.Environment.Framework.IgnorePatterns

	if answers.Prettier {
		s := ui.NewSmartSpinner(i.out, i.msg("configs.creating_prettier", nil))
		s.Start()
		files, err := scaffold.PrettierFiles(patterns)
		if err != nil {
			s.Stop()
			return err
		}
		if err := i.writer.WriteAll(ctx, files); err != nil {
			s.Error(i.msg("configs.failed", nil))
			return err
		}
		for _, f := range files {
			report.Written = append(report.Written, f.Path)
		}
		s.Success(i.msg("configs.prettier_created", map[string]interface{}{
			"Config": ui.Code.Sprint(scaffold.PrettierConfigPath),
			"Ignore": ui.Code.Sprint(scaffold.PrettierIgnorePath),
		}))
	}

	if !answers.ESLint {
		return nil
	}

	s := ui.NewSmartSpinner(i.out, i.msg("configs.configuring_eslint", nil))
	s.Start()
	if existing, ok := i.writer.ExistingESLintConfig(); ok {
		s.Warning(i.msg("configs.eslint_exists", nil))
		ui.PrintWarning(i.out, i.msg("configs.eslint_add_husky", map[string]interface{}{
			"Dir":  scaffold.HuskyDir,
			"File": existing,
		}))
		report.Skipped = append(report.Skipped, existing)
		logger.Warn(ctx, "eslint config exists, skipped", "file", existing)
		return nil
	}

	f, err := scaffold.ESLintConfig(scaffold.IgnorePatterns(patterns))
	if err != nil {
		s.Stop()
		return err
	}
	if err := i.writer.Write(ctx, f); err != nil {
		s.Error(i.msg("configs.failed", nil))
		return err
	}
	report.Written = append(report.Written, f.Path)
	s.Success(i.msg("configs.eslint_created", map[string]interface{}{"Path": ui.Code.Sprint(f.Path)}))
	return nil
}

// RegisterScripts adds the husky:disable and husky:enable scripts with
// `npm pkg set`, whatever the package manager.
func (i *Installer) RegisterScripts(ctx context.Context, _ *Report) error {
	return ui.WithSpinner(i.out,
		i.msg("scripts.adding", nil),
		i.msg("scripts.added", map[string]interface{}{
			"Disable": ui.Code.Sprint(DisableScript),
			"Enable":  ui.Code.Sprint(EnableScript),
		}),
		i.msg("scripts.failed", nil),
		func() error {
			for _, script := range ControlScripts {
				arg := "scripts." + script[0] + "=" + script[1]
				if _, err := i.runner.Run(ctx, i.dir, "npm", "pkg", "set", arg); err != nil {
					return commandErr(errors.ErrRegisterScripts, err)
				}
			}
			return nil
		})
}

// commandErr refines sentinel with the command details the runner attached
// to err, keeping the process error as the cause.
func commandErr(sentinel *errors.AppError, err error) error {
	var cause *errors.AppError
	if !stderrors.As(err, &cause) {
		return sentinel.WithError(err)
	}

	refined := sentinel.WithError(cause.Err)
	for _, key := range []string{"command", "exit_code", "output"} {
		if v, ok := cause.Context[key]; ok {
			refined = refined.WithContext(key, v)
		}
	}
	if stderrors.Is(err, errors.ErrCommandNotFound) {
		refined = refined.WithSuggestion(cause.Suggestion)
	}
	return refined
}
