package installer

import (
	"fmt"
	"io"
	"strings"

	"github.com/thomas-vilte/husky-installer/internal/commitmsg"
	"github.com/thomas-vilte/husky-installer/internal/ui"
)

// ExampleMessages are the commit messages shown in the prefix preview.
var ExampleMessages = []string{
	"feat: add login",
	"fix: button bug",
	"docs: update readme",
	"style: format code",
	"test: add tests",
	"perf: optimize",
	"refactor: cleanup",
	"chore: update deps",
}

// PreviewNote renders each example message next to its annotated form.
func PreviewNote(table commitmsg.StyleTable) string {
	width := 0
	for _, m := range ExampleMessages {
		if len(m) > width {
			width = len(m)
		}
	}

	lines := make([]string, 0, len(ExampleMessages))
	for _, m := range ExampleMessages {
		res := commitmsg.Annotate(m, table)
		lines = append(lines, fmt.Sprintf("%s %s  %s",
			ui.Dim.Sprint(m+strings.Repeat(" ", width-len(m))),
			ui.Dim.Sprint("→"),
			res.Message))
	}
	return strings.Join(lines, "\n")
}

// PrefixTable renders every commit type of table with its prefix.
func PrefixTable(table commitmsg.StyleTable) string {
	entries := table.Entries()
	width := 0
	for _, e := range entries {
		if len(e.Type) > width {
			width = len(e.Type)
		}
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s  %s", ui.Code.Sprint(e.Type+strings.Repeat(" ", width-len(e.Type))), e.Prefix))
	}
	return strings.Join(lines, "\n")
}

func (i *Installer) printSummary(report *Report) {
	check := ui.SuccessEmoji
	fw := report.Environment.Framework
	answers := report.Answers

	installed := []string{
		check + " " + i.msg("summary.framework", map[string]interface{}{"Icon": fw.Icon, "Name": ui.Code.Sprint(fw.Name)}),
	}
	if answers.Prettier {
		installed = append(installed, check+" "+i.msg("summary.prettier", nil))
	}
	if answers.ESLint {
		installed = append(installed, check+" "+i.msg("summary.eslint", nil))
	}
	if answers.CommitPrefix {
		installed = append(installed, check+" "+i.msg("summary.commit_prefix", map[string]interface{}{"Style": string(answers.Style)}))
	}
	installed = append(installed, check+" "+i.msg("summary.hooks", nil))
	if len(fw.IgnorePatterns) > 0 {
		installed = append(installed, check+" "+i.msg("summary.auto_ignoring", map[string]interface{}{
			"Patterns": ui.Dim.Sprint(strings.Join(fw.IgnorePatterns, ", ")),
		}))
	}

	ui.PrintNote(i.out, i.msg("summary.title", nil), strings.Join(installed, "\n"))
	ui.PrintNote(i.out, i.msg("next_steps.title", nil), i.nextSteps(report))
	_, _ = io.WriteString(i.out, ui.Success.Sprint("✨ ")+i.msg("install.complete", nil)+"\n")
}

func (i *Installer) nextSteps(report *Report) string {
	pm := report.Environment.PackageManager
	prompt := ui.Dim.Sprint("$")

	return strings.Join([]string{
		ui.Code.Sprint("1.") + " " + i.msg("next_steps.stage", nil),
		"   " + prompt + " " + ui.Code.Sprint("git add ."),
		"",
		ui.Code.Sprint("2.") + " " + i.msg("next_steps.commit", nil),
		"   " + prompt + " " + ui.Code.Sprint(`git commit -m "feat: test husky hooks"`),
		"",
		ui.Warning.Sprint("💡") + " " + i.msg("next_steps.useful", nil),
		"   " + prompt + " " + ui.Code.Sprint(pm.RunScript(DisableScript)) + " " + ui.Dim.Sprint(i.msg("next_steps.disable", nil)),
		"   " + prompt + " " + ui.Code.Sprint(pm.RunScript(EnableScript)) + " " + ui.Dim.Sprint(i.msg("next_steps.enable", nil)),
	}, "\n")
}
