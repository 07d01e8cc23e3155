package status

import (
	"context"
	"io"
	"os"

	"github.com/thomas-vilte/husky-installer/internal/config"
	"github.com/thomas-vilte/husky-installer/internal/detect"
	"github.com/thomas-vilte/husky-installer/internal/git"
	"github.com/thomas-vilte/husky-installer/internal/i18n"
	"github.com/thomas-vilte/husky-installer/internal/installer"
	"github.com/thomas-vilte/husky-installer/internal/logger"
	"github.com/thomas-vilte/husky-installer/internal/scaffold"
	"github.com/thomas-vilte/husky-installer/internal/shell"
	"github.com/thomas-vilte/husky-installer/internal/ui"
	"github.com/urfave/cli/v3"
)

// Files lists the generated files status reports on.
var Files = []string{
	scaffold.PreCommitPath,
	scaffold.CommitMsgPath,
	scaffold.CommitMsgScriptPath,
	scaffold.PrettierConfigPath,
	scaffold.PrettierIgnorePath,
	scaffold.ESLintConfigPath,
}

type HooksState string

const (
	HooksEnabled       HooksState = "enabled"
	HooksDisabled      HooksState = "disabled"
	HooksNotConfigured HooksState = "not_configured"
)

type FileStatus struct {
	Path   string
	Exists bool
}

type Status struct {
	Repository     bool
	HooksPath      string
	Hooks          HooksState
	PackageManager detect.PackageManager
	Framework      detect.Framework
	ManifestErr    error
	Files          []FileStatus
	Scripts        map[string]bool
}

// Collect inspects dir without modifying anything.
func Collect(ctx context.Context, dir string, gitSvc *git.GitService) Status {
	st := Status{
		PackageManager: detect.DetectPackageManager(dir),
		Hooks:          HooksNotConfigured,
		Scripts:        make(map[string]bool),
	}

	st.Repository = gitSvc.IsRepository(ctx, dir)
	if st.Repository {
		path, err := gitSvc.HooksPath(ctx, dir)
		if err != nil {
			logger.Debug(ctx, "could not read core.hooksPath", "error", err)
		}
		st.HooksPath = path
		switch path {
		case "":
		case git.DisabledHooksPath:
			st.Hooks = HooksDisabled
		default:
			st.Hooks = HooksEnabled
		}
	}

	st.Framework, st.ManifestErr = detect.DetectFramework(dir)
	if st.ManifestErr == nil && detect.ManifestExists(dir) {
		if m, err := detect.ReadManifest(dir); err == nil {
			for _, script := range installer.ControlScripts {
				_, ok := m.Scripts[script[0]]
				st.Scripts[script[0]] = ok
			}
		}
	}

	w := scaffold.NewWriter(dir)
	for _, f := range Files {
		st.Files = append(st.Files, FileStatus{Path: f, Exists: w.Exists(f)})
	}
	return st
}

type StatusCommandFactory struct {
	runner shell.Runner
	getwd  func() (string, error)
}

func NewStatusCommandFactory(runner shell.Runner) *StatusCommandFactory {
	return &StatusCommandFactory{runner: runner, getwd: os.Getwd}
}

func (f *StatusCommandFactory) CreateCommand(t *i18n.Translations, _ *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: t.GetMessage("status.usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			dir, err := f.getwd()
			if err != nil {
				return err
			}
			Print(command.Root().Writer, t, Collect(ctx, dir, git.NewGitService(f.runner)))
			return nil
		},
	}
}

func Print(w io.Writer, t *i18n.Translations, st Status) {
	msg := func(id string) string { return t.GetMessage(id, 0, nil) }

	_, _ = io.WriteString(w, ui.Accent.Sprint(msg("status.title"))+"\n")

	if !st.Repository {
		ui.PrintWarning(w, msg("status.not_repository"))
	}

	hooks := msg("status.hooks_" + string(st.Hooks))
	if st.HooksPath != "" {
		hooks += " (" + st.HooksPath + ")"
	}
	ui.PrintKeyValue(w, msg("status.hooks"), hooks)
	ui.PrintKeyValue(w, msg("status.package_manager"), st.PackageManager.String())

	if st.ManifestErr != nil {
		ui.PrintKeyValue(w, msg("status.framework"), st.ManifestErr.Error())
	} else {
		ui.PrintKeyValue(w, msg("status.framework"), st.Framework.Icon+" "+st.Framework.Name)
	}

	_, _ = io.WriteString(w, "\n"+ui.Accent.Sprint(msg("status.files"))+"\n")
	for _, f := range st.Files {
		if f.Exists {
			ui.PrintSuccess(w, f.Path)
		} else {
			_, _ = io.WriteString(w, ui.Dim.Sprint("· "+f.Path+" ("+msg("status.missing")+")")+"\n")
		}
	}

	if len(st.Scripts) > 0 {
		_, _ = io.WriteString(w, "\n"+ui.Accent.Sprint(msg("status.scripts"))+"\n")
		for _, script := range installer.ControlScripts {
			if st.Scripts[script[0]] {
				ui.PrintSuccess(w, st.PackageManager.RunScript(script[0]))
			} else {
				_, _ = io.WriteString(w, ui.Dim.Sprint("· "+script[0]+" ("+msg("status.missing")+")")+"\n")
			}
		}
	}
}
