package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	"   __ _ _   _| |_ ___  _ __ ___   __ _| |_ __ _ ",
	"  / _` | | | | __/ _ \\| '_ ` _ \\ / _` | __/ _` |",
	" | (_| | |_| | || (_) | | | | | | (_| | || (_| |",
	"  \\__,_|\\__,_|\\__\\___/|_| |_| |_|\\__,_|\\__\\__,_|",
}

var bannerColors = []string{"#38bdf8", "#22d3ee", "#2dd4bf", "#34d399"}

// PrintBanner writes the ASCII banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.EnvColorProfile()

	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, termenv.String(line).Foreground(p.Color(bannerColors[i])))
	}
	v := termenv.String("  v" + strings.TrimSpace(version)).Faint()
	fmt.Fprintln(w, v)
	fmt.Fprintln(w)
}
