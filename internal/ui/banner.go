// Package ui renders colored terminal output for the gateway tools.
package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// ══════════════════════════════════════════════════════════════════════════════
// ASCII ART BANNER
// ══════════════════════════════════════════════════════════════════════════════

// PrintBanner displays the startup banner of the stub gateway.
func PrintBanner(w io.Writer, version string) {
	fmt.Fprintln(w)

	cyan := color.New(color.FgCyan, color.Bold)
	hiCyan := color.New(color.FgHiCyan)
	magenta := color.New(color.FgMagenta, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)
	white := color.New(color.FgWhite)
	dim := color.New(color.FgHiBlack)

	cyan.Fprintln(w, "╔══════════════════════════════════════════════════════════════╗")

	art := [][2]string{
		{" █████╗ ██╗", "   ██████╗  █████╗ ████████╗███████╗██╗    ██╗ █████╗ ██╗   ██╗"},
		{"██╔══██╗██║", "  ██╔════╝ ██╔══██╗╚══██╔══╝██╔════╝██║    ██║██╔══██╗╚██╗ ██╔╝"},
		{"███████║██║", "  ██║  ███╗███████║   ██║   █████╗  ██║ █╗ ██║███████║ ╚████╔╝ "},
		{"██╔══██║██║", "  ██║   ██║██╔══██║   ██║   ██╔══╝  ██║███╗██║██╔══██║  ╚██╔╝  "},
		{"██║  ██║██║", "  ╚██████╔╝██║  ██║   ██║   ███████╗╚███╔███╔╝██║  ██║   ██║   "},
		{"╚═╝  ╚═╝╚═╝", "   ╚═════╝ ╚═╝  ╚═╝   ╚═╝   ╚══════╝ ╚══╝╚══╝ ╚═╝  ╚═╝   ╚═╝   "},
	}
	for _, line := range art {
		cyan.Fprint(w, "║ ")
		hiCyan.Fprint(w, line[0])
		magenta.Fprint(w, line[1])
		fmt.Fprintln(w)
	}

	cyan.Fprintln(w, "╠══════════════════════════════════════════════════════════════╣")

	cyan.Fprint(w, "║  ")
	yellow.Fprint(w, "STUB GATEWAY")
	dim.Fprint(w, "  │  ")
	magenta.Fprint(w, "ECHO MODE")
	dim.Fprint(w, "  │  ")
	white.Fprintf(w, "v%s\n", version)

	cyan.Fprintln(w, "╚══════════════════════════════════════════════════════════════╝")

	fmt.Fprintln(w)
}

// PrintMiniBanner displays a one-box banner for the CLI.
func PrintMiniBanner(w io.Writer) {
	cyan := color.New(color.FgCyan, color.Bold)
	magenta := color.New(color.FgMagenta, color.Bold)

	fmt.Fprintln(w)
	cyan.Fprintln(w, "╔══════════════════════════════════════╗")
	cyan.Fprint(w, "║  ")
	magenta.Fprint(w, "AI GATEWAY CLIENT")
	cyan.Fprintln(w, "                   ║")
	cyan.Fprintln(w, "╚══════════════════════════════════════╝")
	fmt.Fprintln(w)
}
