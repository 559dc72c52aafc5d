package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	domainErrors "github.com/thomas-vilte/gh-comments/internal/errors"
	"github.com/thomas-vilte/gh-comments/internal/i18n"
)

var (
	// Colors for different message types
	Success = color.New(color.FgGreen, color.Bold)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow, color.Bold)
	Info    = color.New(color.FgCyan, color.Bold)
	Accent  = color.New(color.FgMagenta, color.Bold)
	Dim     = color.New(color.FgHiBlack)

	SuccessEmoji = Success.Sprint("✅")
	WarningEmoji = Warning.Sprint("⚠️")
	InfoEmoji    = Info.Sprint("ℹ️")
	IssueEmoji   = Accent.Sprint("💬")
)

// Output receives everything the printers write. Tests swap it for a buffer.
var Output io.Writer = os.Stdout

var activeSpinner *SmartSpinner

// SmartSpinner is a spinner with enhanced capabilities
type SmartSpinner struct {
	spinner *spinner.Spinner
}

// NewSmartSpinner creates a new spinner with an initial message
func NewSmartSpinner(initialMessage string) *SmartSpinner {
	s := spinner.New(
		spinner.CharSets[14],
		100*time.Millisecond,
		spinner.WithColor("cyan"),
		spinner.WithSuffix(" "+initialMessage),
		spinner.WithWriter(Output),
	)
	return &SmartSpinner{spinner: s}
}

// Start starts the spinner and registers it as the globally active spinner.
func (s *SmartSpinner) Start() {
	activeSpinner = s
	s.spinner.Start()
}

// Stop stops the spinner and clears the active spinner record.
func (s *SmartSpinner) Stop() {
	s.spinner.Stop()
	if activeSpinner == s {
		activeSpinner = nil
	}
}

// StopActiveSpinner stops the currently active spinner in the terminal session.
func StopActiveSpinner() {
	if activeSpinner != nil {
		activeSpinner.Stop()
	}
}

func PrintSuccess(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", SuccessEmoji, Success.Sprint(msg))
}

func PrintError(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", Error.Sprint("❌"), Error.Sprint(msg))
}

func PrintWarning(msg string) {
	_, _ = fmt.Fprintf(Output, "%s %s\n", WarningEmoji, Warning.Sprint(msg))
}

func PrintInfo(msg string) {
	_, _ = fmt.Fprintf(Output, "%s %s\n", InfoEmoji, Info.Sprint(msg))
}

func PrintIssue(msg string) {
	_, _ = fmt.Fprintf(Output, "%s %s\n", IssueEmoji, msg)
}

func PrintSectionBanner(title string) {
	separator := color.New(color.FgCyan).Sprint("━━━━━━━━━━━━━━━━━━━━━━━")
	_, _ = fmt.Fprintf(Output, "\n%s\n", separator)
	_, _ = fmt.Fprintf(Output, "%s\n", Accent.Sprint(title))
	_, _ = fmt.Fprintf(Output, "%s\n\n", separator)
}

func PrintDuration(msg string, duration time.Duration) {
	durationStr := Dim.Sprintf("(%s)", duration.Round(10*time.Millisecond))
	_, _ = fmt.Fprintf(Output, "%s %s %s\n", SuccessEmoji, Success.Sprint(msg), durationStr)
}

func PrintKeyValue(key, value string) {
	keyColored := Dim.Sprint(key + ":")
	valueColored := color.New(color.FgWhite, color.Bold).Sprint(value)
	_, _ = fmt.Fprintf(Output, "   %s %s\n", keyColored, valueColored)
}

// HandleAppError handles an application error and displays it in a friendly way.
// If translations is nil, it will use English defaults.
func HandleAppError(err error, translations ...*i18n.Translations) {
	if err == nil {
		return
	}

	var t *i18n.Translations
	if len(translations) > 0 && translations[0] != nil {
		t = translations[0]
	}

	var batchErr *domainErrors.BatchError
	if errors.As(err, &batchErr) {
		_, _ = fmt.Fprintln(Output)
		PrintError(Output, batchErr.Error())
		for _, f := range batchErr.Failures {
			_, _ = Dim.Fprintf(Output, "   %s: %v\n", f.ArticleID, f.Err)
		}
		for _, f := range batchErr.Failures {
			var appErr *domainErrors.AppError
			if errors.As(f.Err, &appErr) && appErr.Suggestion != "" {
				printSuggestion(appErr.Suggestion, t)
				break
			}
		}
		_, _ = fmt.Fprintln(Output)
		return
	}

	var appErr *domainErrors.AppError
	if errors.As(err, &appErr) {
		errorColor := color.New(color.FgRed, color.Bold)
		dimColor := color.New(color.FgHiBlack)

		_, _ = fmt.Fprintln(Output)
		_, _ = errorColor.Fprintf(Output, "❌ %s: %s\n", appErr.Type, appErr.Message)

		if appErr.Err != nil {
			detailsLabel := "Details"
			if t != nil {
				detailsLabel = t.GetMessage("ui_error.details", 0, nil)
			}
			_, _ = dimColor.Fprintf(Output, "   %s: %v\n", detailsLabel, appErr.Err)
		}
		if response, ok := appErr.Context["response"].(string); ok && response != "" {
			_, _ = dimColor.Fprintf(Output, "   GitHub: %s\n", response)
		}

		if appErr.Suggestion != "" {
			printSuggestion(appErr.Suggestion, t)
		}
		_, _ = fmt.Fprintln(Output)

		return
	}

	PrintError(Output, err.Error())
}

func printSuggestion(suggestion string, t *i18n.Translations) {
	suggestionColor := color.New(color.FgCyan)

	_, _ = fmt.Fprintln(Output)
	tryPrefix := "💡 Try: "
	if t != nil {
		tryPrefix = t.GetMessage("ui_error.try_suggestion", 0, nil)
	}
	_, _ = suggestionColor.Fprintf(Output, "%s", tryPrefix)
	lines := strings.Split(suggestion, "\n")
	for i, line := range lines {
		if i == 0 {
			_, _ = fmt.Fprintln(Output, line)
		} else {
			_, _ = fmt.Fprintf(Output, "       %s\n", line)
		}
	}
}

// WithSpinnerAndDuration runs fn behind a spinner. On success it prints
// message with the elapsed time; errors are returned untouched.
func WithSpinnerAndDuration(message string, fn func() error) error {
	s := NewSmartSpinner(message)
	s.Start()

	start := time.Now()
	err := fn()
	duration := time.Since(start)

	if err != nil {
		s.Stop()
		return err
	}

	s.Stop()
	PrintDuration(message, duration)
	return nil
}
