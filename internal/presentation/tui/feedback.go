package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/muesli/termenv"

	"github.com/aretw0/interchange/pkg/domain"
)

var defaultMessages = map[string]string{
	domain.ResultNotPermitted.FeedbackKey():   "You are not permitted to use this command.",
	domain.ResultWrongUsage.FeedbackKey():     "Wrong usage. Type :syntax <command> to see how it is used.",
	domain.ResultWrongClient.FeedbackKey():    "This command can not be used by you.",
	domain.ResultBranchCooldown.FeedbackKey(): "Please wait before using this again.",
	domain.ResultFail.FeedbackKey():           "The command failed. Details were logged.",
}

// Message resolves a feedback key or custom message to display text.
func Message(key string, report domain.Report) string {
	msg, ok := defaultMessages[key]
	if !ok {
		msg = key
	}
	if report.Result == domain.ResultBranchCooldown && report.Remaining > 0 {
		msg = fmt.Sprintf("%s (%s left)", msg, report.Remaining.Round(time.Second))
	}
	return msg
}

// PrintFeedback writes the outcome of an execution in the result's colour.
// Successes print nothing.
func PrintFeedback(w io.Writer, key string, report domain.Report) {
	if report.Result == domain.ResultSuccess {
		return
	}
	p := termenv.ColorProfile()
	color := "#fbbf24"
	switch report.Result {
	case domain.ResultFail:
		color = "#f87171"
	case domain.ResultNotPermitted, domain.ResultWrongClient:
		color = "#fb923c"
	}
	fmt.Fprintln(w, termenv.String(Message(key, report)).Foreground(p.Color(color)))
}

// PrintSuggestions writes completion suggestions on one line.
func PrintSuggestions(w io.Writer, suggestions []string) {
	if len(suggestions) == 0 {
		fmt.Fprintln(w, termenv.String("(no suggestions)").Faint())
		return
	}
	for i, s := range suggestions {
		if i > 0 {
			fmt.Fprint(w, "  ")
		}
		fmt.Fprint(w, s)
	}
	fmt.Fprintln(w)
}
