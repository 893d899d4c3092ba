package tui_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/interchange/internal/presentation/tui"
	"github.com/aretw0/interchange/pkg/domain"
)

func TestMessage(t *testing.T) {
	report := domain.Report{Result: domain.ResultWrongUsage}
	assert.Contains(t, tui.Message(domain.ResultWrongUsage.FeedbackKey(), report), "Wrong usage")
	assert.Equal(t, "Try /component list", tui.Message("Try /component list", report))

	cooling := domain.Report{Result: domain.ResultBranchCooldown, Remaining: 4600 * time.Millisecond}
	assert.Equal(t, "Please wait before using this again. (5s left)", tui.Message(domain.ResultBranchCooldown.FeedbackKey(), cooling))
}

func TestPrintFeedback(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintFeedback(&buf, "", domain.Report{Result: domain.ResultSuccess})
	assert.Empty(t, buf.String())

	tui.PrintFeedback(&buf, domain.ResultFail.FeedbackKey(), domain.Report{Result: domain.ResultFail})
	assert.Contains(t, buf.String(), "The command failed")
}

func TestPrintSuggestions(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintSuggestions(&buf, []string{"alpha", "beta"})
	assert.Equal(t, "alpha  beta\n", buf.String())
}

func TestMarkdown(t *testing.T) {
	md := tui.SyntaxMarkdown("component", "/component\n  |- (list)=\n")
	assert.Contains(t, md, "## /component")
	assert.Contains(t, md, "|- (list)=")

	help := tui.HelpMarkdown([]tui.HelpEntry{{Label: "component", Aliases: []string{"comp"}}, {Label: "backup"}})
	assert.Contains(t, help, "| /component | comp |")
	assert.Contains(t, help, "| /backup | - |")
	assert.Contains(t, help, ":complete")
}
