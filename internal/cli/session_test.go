package cli

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/interchange/internal/settings"
	"github.com/aretw0/interchange/pkg/domain"
)

func newTestHost(t *testing.T, s settings.Settings) (*Host, *bytes.Buffer) {
	t.Helper()
	if s.LogLevel == 0 {
		s.LogLevel = slog.LevelError
	}
	var out bytes.Buffer
	h, err := NewHost(s, &out)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, h.Close()) })
	return h, &out
}

func runSession(t *testing.T, h *Host, out *bytes.Buffer, executor domain.Executor, lines ...string) string {
	t.Helper()
	s := &Session{
		Registry: h.Registry,
		Executor: executor,
		In:       strings.NewReader(strings.Join(lines, "\n") + "\n"),
		Out:      out,
	}
	require.NoError(t, s.Run(t.Context()))
	return out.String()
}

func TestSession_Console(t *testing.T) {
	h, out := newTestHost(t, settings.Settings{})

	got := runSession(t, h, out, domain.Console(),
		"component start economy",
		"/comp list",
		"bc hello   world",
	)
	assert.Contains(t, got, "Component Economy is now running.")
	assert.Contains(t, got, "⏻ ⚡ Chat")
	assert.Contains(t, got, "[CONSOLE] hello world")
}

func TestSession_Feedback(t *testing.T) {
	h, out := newTestHost(t, settings.Settings{})

	got := runSession(t, h, out, domain.Console(),
		"nope",
		"component",
		"component start",
		`broadcast "unterminated`,
	)
	assert.Contains(t, got, "Unknown command: nope. Type :help.")
	assert.Contains(t, got, "Usage: /component list | (start|stop|autostart) <component>")
	assert.Contains(t, got, "Invalid input: unterminated quote")
}

func TestSession_PlayerGates(t *testing.T) {
	h, out := newTestHost(t, settings.Settings{})

	got := runSession(t, h, out, domain.Player("Steve"), "component list")
	assert.Contains(t, got, "You are not permitted to use this command.")

	out.Reset()
	h.Grant("Steve", "component")
	got = runSession(t, h, out, domain.Player("Steve"),
		"component start chat",
		"component stop chat",
	)
	assert.Contains(t, got, "Component Chat is already running.")
	assert.Contains(t, got, "Please wait before using this again. (5s left)")
	assert.NotContains(t, got, "Component Chat stopped.")
}

func TestSession_Meta(t *testing.T) {
	h, out := newTestHost(t, settings.Settings{})

	got := runSession(t, h, out, domain.Console(),
		":complete component st",
		":complete co",
		":syntax component",
		":syntax missing",
		":help",
		":what",
	)
	assert.Contains(t, got, "start  stop")
	assert.Contains(t, got, "comp  component")
	assert.Contains(t, got, "## /component")
	assert.Contains(t, got, "(start|stop|autostart)")
	assert.Contains(t, got, `No command named "missing".`)
	assert.Contains(t, got, "| /broadcast | bc |")
	assert.Contains(t, got, "Unknown meta command :what. Type :help.")
}

func TestSession_HelpHidesProtectedCommands(t *testing.T) {
	h, out := newTestHost(t, settings.Settings{})

	got := runSession(t, h, out, domain.Player("Alex"), ":help", ":complete ")
	assert.NotContains(t, got, "/component")
	assert.Contains(t, got, "| /broadcast | bc |")
	assert.Contains(t, got, "bc  broadcast")
}

func TestSession_ExitStopsReading(t *testing.T) {
	h, out := newTestHost(t, settings.Settings{})

	got := runSession(t, h, out, domain.Console(), "exit", "bc after")
	assert.NotContains(t, got, "[CONSOLE] after")
}

func TestSession_CancelledContext(t *testing.T) {
	h, out := newTestHost(t, settings.Settings{})

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	s := &Session{
		Registry: h.Registry,
		Executor: domain.Console(),
		In:       strings.NewReader("bc hello\n"),
		Out:      out,
	}
	assert.NoError(t, s.Run(ctx))
	assert.NotContains(t, out.String(), "[CONSOLE] hello")
}

func TestSession_Render(t *testing.T) {
	h, out := newTestHost(t, settings.Settings{})

	s := &Session{
		Registry: h.Registry,
		Executor: domain.Console(),
		Out:      out,
		Render: func(markdown string) (string, error) {
			return "rendered\n", nil
		},
	}
	quit, err := s.Handle(t.Context(), ":help")
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Equal(t, "rendered\n", out.String())
}
