package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the interchange banner followed by the version.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{" _       _                 _                            ", "#818cf8"},
		{"(_)_ __ | |_ ___ _ __ ___| |__   __ _ _ __   __ _  ___ ", "#a78bfa"},
		{"| | '_ \\| __/ _ \\ '__/ __| '_ \\ / _` | '_ \\ / _` |/ _ \\", "#c084fc"},
		{"| | | | | ||  __/ | | (__| | | | (_| | | | | (_| |  __/", "#e879f9"},
		{"|_|_| |_|\\__\\___|_|  \\___|_| |_|\\__,_|_| |_|\\__, |\\___|", "#f472b6"},
		{"                                             |___/      ", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	if version != "" {
		fmt.Fprintln(w, termenv.String("  v"+version).Faint())
	}
	fmt.Fprintln(w)
}
