package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// SyntaxMarkdown wraps a command's syntax lines in a markdown document.
func SyntaxMarkdown(label, syntax string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## /%s\n\n```\n%s```\n\n", label, syntax)
	sb.WriteString("`?` optional · `^` any case · `=` listed values only · `*` takes the rest of the line\n")
	return sb.String()
}

// HelpEntry is one row of the help table.
type HelpEntry struct {
	Label   string
	Aliases []string
}

// HelpMarkdown lists commands and the REPL meta commands.
func HelpMarkdown(entries []HelpEntry) string {
	var sb strings.Builder
	sb.WriteString("## Commands\n\n")
	if len(entries) == 0 {
		sb.WriteString("_No commands available._\n\n")
	} else {
		sb.WriteString("| Command | Aliases |\n|---|---|\n")
		for _, e := range entries {
			aliases := "-"
			if len(e.Aliases) > 0 {
				aliases = strings.Join(e.Aliases, ", ")
			}
			fmt.Fprintf(&sb, "| /%s | %s |\n", e.Label, aliases)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("## Meta\n\n")
	sb.WriteString("- `:complete <line>` suggest the next token\n")
	sb.WriteString("- `:syntax <command>` show the branches of a command\n")
	sb.WriteString("- `:help` this help\n")
	sb.WriteString("- `exit` leave\n")
	return sb.String()
}
