package main

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/thomas-vilte/husky-installer/internal/cli/registry"
	"github.com/thomas-vilte/husky-installer/internal/commands/annotate"
	"github.com/thomas-vilte/husky-installer/internal/commands/completion"
	configcmd "github.com/thomas-vilte/husky-installer/internal/commands/config"
	"github.com/thomas-vilte/husky-installer/internal/commands/install"
	"github.com/thomas-vilte/husky-installer/internal/commands/preview"
	"github.com/thomas-vilte/husky-installer/internal/commands/status"
	updatecmd "github.com/thomas-vilte/husky-installer/internal/commands/update"
	versioncmd "github.com/thomas-vilte/husky-installer/internal/commands/version"
	"github.com/thomas-vilte/husky-installer/internal/config"
	"github.com/thomas-vilte/husky-installer/internal/errors"
	"github.com/thomas-vilte/husky-installer/internal/i18n"
	"github.com/thomas-vilte/husky-installer/internal/logger"
	"github.com/thomas-vilte/husky-installer/internal/shell"
	"github.com/thomas-vilte/husky-installer/internal/ui"
	"github.com/thomas-vilte/husky-installer/internal/update"
	"github.com/thomas-vilte/husky-installer/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string) int {
	logger.Initialize(false, false)

	cfg, err := loadConfig(os.Stderr, args)
	if err != nil {
		ui.HandleAppError(os.Stderr, err)
		return 1
	}

	translations, err := i18n.NewTranslations(cfg.Language, "")
	if err != nil {
		ui.HandleAppError(os.Stderr, errors.NewAppError(errors.TypeInternal, "Failed to load translations", err))
		return 1
	}

	checker := newUpdateChecker(translations)

	app, err := newApp(cfg, translations, checker)
	if err != nil {
		ui.HandleAppError(os.Stderr, errors.NewAppError(errors.TypeInternal, "Failed to build commands", err))
		return 1
	}

	var notice <-chan string
	if checker != nil && wantsUpdateNotice(args) {
		notice = startUpdateCheck(ctx, checker)
	}

	runErr := app.Run(ctx, args)

	if notice != nil {
		_, _ = io.WriteString(os.Stderr, <-notice)
	}

	return exitCode(runErr)
}

// loadConfig reads the global config. A broken file only fails commands
// that are not run from a git hook: annotate warns and goes on with the
// defaults so the commit is never blocked.
func loadConfig(w io.Writer, args []string) (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err == nil {
		return cfg, nil
	}
	if commandName(args) != "annotate" {
		return nil, err
	}

	ui.PrintWarning(w, "Could not load the configuration, using defaults: "+err.Error())
	return config.DefaultConfig(), nil
}

// commandName returns the first argument that is not a flag.
func commandName(args []string) string {
	if len(args) == 0 {
		return ""
	}
	for _, arg := range args[1:] {
		if !strings.HasPrefix(arg, "-") {
			return arg
		}
	}
	return ""
}

func newApp(cfg *config.Config, t *i18n.Translations, checker *update.Checker) (*cli.Command, error) {
	runner := shell.NewExecRunner()
	installFactory := install.NewInstallCommandFactory(runner, version.FullVersion())

	reg := registry.NewRegistry(cfg, t)
	factories := []struct {
		name    string
		factory registry.CommandFactory
	}{
		{"install", installFactory},
		{"annotate", annotate.NewAnnotateCommandFactory()},
		{"preview", preview.NewPreviewCommandFactory()},
		{"status", status.NewStatusCommandFactory(runner)},
		{"config", configcmd.NewConfigCommandFactory()},
		{"completion", completion.NewCompletionCommandFactory()},
		{"version", versioncmd.NewVersionCommandFactory(version.FullVersion())},
	}
	for _, f := range factories {
		if err := reg.Register(f.name, f.factory); err != nil {
			return nil, err
		}
	}
	if checker != nil {
		if err := reg.Register("update", updatecmd.NewUpdateCommandFactory(version.FullVersion(), checker, runner)); err != nil {
			return nil, err
		}
	}

	return &cli.Command{
		Name:                  "husky-installer",
		Usage:                 t.GetMessage("app.usage", 0, nil),
		Version:               version.FullVersion(),
		Commands:              reg.CreateCommands(),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: t.GetMessage("flags.debug_usage", 0, nil),
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: t.GetMessage("flags.verbose_usage", 0, nil),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logger.Initialize(cmd.Bool("debug"), cmd.Bool("verbose"))
			logger.Debug(ctx, "config loaded", "path", cfg.PathFile, "language", cfg.Language)
			return ctx, nil
		},
		Action: installFactory.Action(t, cfg),
	}, nil
}

func newUpdateChecker(t *i18n.Translations) *update.Checker {
	cachePath, err := update.DefaultCachePath()
	if err != nil {
		return nil
	}
	return update.NewChecker(version.FullVersion(), update.NewGitHubFetcher(update.RepoOwner, update.RepoName), cachePath, t)
}

// startUpdateCheck looks for a newer release while the command runs. The
// notice is buffered so it never interleaves with prompts.
func startUpdateCheck(ctx context.Context, checker *update.Checker) <-chan string {
	notice := make(chan string, 1)
	go func() {
		var buf bytes.Buffer
		checker.Check(ctx, &buf)
		notice <- buf.String()
	}()
	return notice
}

// wantsUpdateNotice skips the check for commands that run inside git hooks
// or shell completion, where extra output or latency is unwelcome.
func wantsUpdateNotice(args []string) bool {
	for _, arg := range args[1:] {
		switch arg {
		case "annotate", "completion", "update", "--generate-shell-completion":
			return false
		}
	}
	return true
}

func exitCode(err error) int {
	if err == nil || stderrors.Is(err, errors.ErrCancelled) {
		return 0
	}
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		_, _ = fmt.Fprintln(os.Stderr, err)
	}
	return 1
}
