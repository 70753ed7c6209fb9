package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/hpn/ai-gateway-client/internal/client"
	"github.com/hpn/ai-gateway-client/internal/domain"
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR DEFINITIONS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// Badge colors
	successBadge = color.New(color.BgGreen, color.FgBlack, color.Bold)
	warningBadge = color.New(color.FgYellow, color.Bold)
	errorBadge   = color.New(color.BgRed, color.FgWhite, color.Bold)
	infoBadge    = color.New(color.FgCyan, color.Bold)

	// Text colors
	successText = color.New(color.FgGreen, color.Bold)
	warningText = color.New(color.FgYellow)
	errorText   = color.New(color.FgRed)
	infoText    = color.New(color.FgCyan)
	mutedText   = color.New(color.FgHiBlack)
	accentText  = color.New(color.FgMagenta, color.Bold)

	neonBlue = color.New(color.FgHiCyan, color.Bold)

	// Method colors
	methodPOST = color.New(color.BgHiMagenta, color.FgBlack, color.Bold)
	methodGET  = color.New(color.BgHiCyan, color.FgBlack, color.Bold)
)

// ══════════════════════════════════════════════════════════════════════════════
// OPERATION RESULTS
// ══════════════════════════════════════════════════════════════════════════════

// PrintSection prints a titled separator, used between demo steps.
func PrintSection(w io.Writer, title string) {
	fmt.Fprintln(w)
	accentText.Fprintf(w, "━━ %s ", title)
	mutedText.Fprintln(w, strings.Repeat("━", max(0, 50-len(title))))
}

// PrintHealth renders a health report.
func PrintHealth(w io.Writer, h client.HealthResponse) {
	if h.Status == "ok" {
		successBadge.Fprint(w, " OK ")
	} else {
		warningBadge.Fprintf(w, "[%s]", strings.ToUpper(h.Status))
	}
	fmt.Fprint(w, " gateway")
	if h.Version != "" {
		mutedText.Fprintf(w, " v%s", h.Version)
	}
	if h.Timestamp != "" {
		mutedText.Fprintf(w, " @ %s", h.Timestamp)
	}
	fmt.Fprintln(w)

	statuses, err := h.ProviderStatuses()
	if err != nil {
		// Unknown provider layout: show it as-is.
		mutedText.Fprintf(w, "  providers: %s\n", string(h.Providers))
		return
	}
	for _, s := range statuses {
		fmt.Fprintf(w, "  %-12s ", s.Name)
		if s.Status == "configured" {
			successText.Fprintln(w, s.Status)
		} else {
			mutedText.Fprintln(w, s.Status)
		}
	}
}

// PrintModels renders a provider's model list.
func PrintModels(w io.Writer, m client.ModelsResponse) {
	infoBadge.Fprint(w, "[MODELS]")
	fmt.Fprint(w, " ")
	neonBlue.Fprintln(w, m.Provider)

	names := m.ModelNames()
	if len(names) == 0 {
		mutedText.Fprintln(w, "  (none)")
		return
	}
	for _, name := range names {
		fmt.Fprint(w, "  • ")
		infoText.Fprintln(w, name)
	}
}

// PrintChat renders a chat reply.
func PrintChat(w io.Writer, c client.ChatResponse) {
	methodPOST.Fprint(w, " CHAT ")
	fmt.Fprint(w, " ")
	accentText.Fprint(w, c.Provider)
	if c.Model != "" {
		mutedText.Fprintf(w, " (%s)", c.Model)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, c.Message)
	if len(c.Usage) > 0 {
		mutedText.Fprintf(w, "usage: %s\n", string(c.Usage))
	}
}

// PrintError renders the error variant of an operation result.
func PrintError(w io.Writer, op string, e client.ErrorResult) {
	errorBadge.Fprint(w, " ERROR ")
	fmt.Fprint(w, " ")
	mutedText.Fprintf(w, "%s: ", op)
	errorText.Fprintln(w, e.Error)
	if e.Kind == client.ErrorKindUnreachable {
		warningText.Fprintln(w, "  hint: start one with `stubgateway` or pass --url")
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// CREDENTIALS
// ══════════════════════════════════════════════════════════════════════════════

// PrintCredentials lists which providers have a stored key, masked.
func PrintCredentials(w io.Writer, creds domain.Credentials) {
	infoBadge.Fprint(w, "[KEYS]")
	if creds.Len() == 0 {
		mutedText.Fprintln(w, " none configured")
		return
	}
	fmt.Fprintln(w)
	for _, p := range creds.Providers() {
		key, _ := creds.Get(p)
		fmt.Fprintf(w, "  %-12s ", p.DisplayName())
		mutedText.Fprintln(w, maskKeyShort(key))
	}
}

// maskKeyShort returns a short masked version of an API key.
// Format: xxxx...xxxx
func maskKeyShort(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return "***"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// ══════════════════════════════════════════════════════════════════════════════
// STARTUP MESSAGES
// ══════════════════════════════════════════════════════════════════════════════

// PrintStartupInfo prints styled server startup information.
func PrintStartupInfo(w io.Writer, addr string, configured int) {
	infoBadge.Fprint(w, "[GATEWAY]")
	fmt.Fprint(w, " Listening on ")
	neonBlue.Fprintf(w, "http://%s\n", addr)

	infoBadge.Fprint(w, "[GATEWAY]")
	fmt.Fprint(w, " Configured providers: ")
	if configured > 0 {
		successText.Fprintf(w, "%d\n", configured)
	} else {
		warningText.Fprintf(w, "%d\n", configured)
	}

	fmt.Fprintln(w)
	printEndpoints(w)
}

// printEndpoints prints the available API endpoints.
func printEndpoints(w io.Writer) {
	endpoints := []struct {
		method, path, desc string
	}{
		{"POST", "/api/chat", "Chat with a provider"},
		{"GET", "/api/models", "List a provider's models"},
		{"GET", "/api/providers", "List providers and models"},
		{"GET", "/api/health", "Health check"},
	}

	mutedText.Fprintln(w, "  ┌──────────────────────────────────────────────────────┐")
	for _, e := range endpoints {
		mutedText.Fprint(w, "  │ ")
		if e.method == "POST" {
			methodPOST.Fprintf(w, " %-4s ", e.method)
		} else {
			methodGET.Fprintf(w, " %-4s ", e.method)
		}
		fmt.Fprintf(w, " %-15s ", e.path)
		mutedText.Fprintf(w, "%-27s", e.desc)
		mutedText.Fprintln(w, " │")
	}
	mutedText.Fprintln(w, "  └──────────────────────────────────────────────────────┘")
	fmt.Fprintln(w)
}

// PrintShutdown prints a styled shutdown message.
func PrintShutdown(w io.Writer) {
	fmt.Fprintln(w)
	warningBadge.Fprint(w, "[SHUTDOWN]")
	warningText.Fprintln(w, " Graceful shutdown initiated...")
}

// PrintGoodbye prints a styled goodbye message.
func PrintGoodbye(w io.Writer) {
	successBadge.Fprint(w, " OK ")
	fmt.Fprint(w, " ")
	successText.Fprintln(w, "Server stopped. Goodbye! 👋")
}
