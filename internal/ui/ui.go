package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	domainErrors "github.com/thomas-vilte/husky-installer/internal/errors"
	"github.com/thomas-vilte/husky-installer/internal/i18n"
)

var (
	// Colors for different message types
	Success = color.New(color.FgGreen, color.Bold)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow, color.Bold)
	Info    = color.New(color.FgCyan, color.Bold)
	Accent  = color.New(color.FgMagenta, color.Bold)
	Dim     = color.New(color.FgHiBlack)
	Code    = color.New(color.FgCyan)

	DogEmoji     = "🐕"
	SuccessEmoji = Success.Sprint("✓")
	WarningEmoji = Warning.Sprint("⚠")
	InfoEmoji    = Info.Sprint("ℹ")
)

func PrintSuccess(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", SuccessEmoji, msg)
}

func PrintError(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", Error.Sprint("✗"), Error.Sprint(msg))
}

func PrintWarning(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", WarningEmoji, Warning.Sprint(msg))
}

func PrintInfo(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", InfoEmoji, msg)
}

func PrintKeyValue(w io.Writer, key, value string) {
	keyColored := Dim.Sprint(key + ":")
	valueColored := color.New(color.FgWhite, color.Bold).Sprint(value)
	_, _ = fmt.Fprintf(w, "   %s %s\n", keyColored, valueColored)
}

// HandleAppError prints err in a friendly way. If translations is nil, it
// will use English defaults.
func HandleAppError(w io.Writer, err error, translations ...*i18n.Translations) {
	if err == nil {
		return
	}

	var t *i18n.Translations
	if len(translations) > 0 && translations[0] != nil {
		t = translations[0]
	}

	var appErr *domainErrors.AppError
	if !errors.As(err, &appErr) {
		PrintError(w, err.Error())
		return
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "%s\n", Error.Sprintf("✗ %s: %s", appErr.Type, appErr.Message))

	detailsLabel := "Details:"
	if t != nil {
		detailsLabel = t.GetMessage("ui_error.details", 0, nil)
	}
	if appErr.Err != nil {
		_, _ = fmt.Fprintf(w, "%s\n", Dim.Sprintf("   %s %v", detailsLabel, appErr.Err))
	}
	if output, ok := appErr.Context["output"].(string); ok && output != "" {
		for _, line := range strings.Split(output, "\n") {
			_, _ = fmt.Fprintf(w, "%s\n", Dim.Sprintf("   │ %s", line))
		}
	}

	if appErr.Suggestion != "" {
		tryPrefix := "💡 Try: "
		if t != nil {
			tryPrefix = t.GetMessage("ui_error.try_suggestion", 0, nil)
		}
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprint(w, Code.Sprint(tryPrefix))
		for i, line := range strings.Split(appErr.Suggestion, "\n") {
			if i == 0 {
				_, _ = fmt.Fprintln(w, line)
			} else {
				_, _ = fmt.Fprintf(w, "       %s\n", line)
			}
		}
	}
	_, _ = fmt.Fprintln(w)
}
