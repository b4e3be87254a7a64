package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette. Numbers are ANSI 256 colors; lipgloss degrades them on simpler
// terminals and drops them when output is not a terminal.
var (
	colorAccent  = lipgloss.Color("36")
	colorOK      = lipgloss.Color("35")
	colorWarn    = lipgloss.Color("220")
	colorBad     = lipgloss.Color("167")
	colorCommand = lipgloss.Color("75")
	colorValue   = lipgloss.Color("255")
	colorMuted   = lipgloss.Color("240")
)

var (
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
	styleValue   = lipgloss.NewStyle().Foreground(colorValue)
	styleOK      = lipgloss.NewStyle().Foreground(colorOK)
	styleWarn    = lipgloss.NewStyle().Foreground(colorWarn)
	styleBad     = lipgloss.NewStyle().Foreground(colorBad)
	styleCommand = lipgloss.NewStyle().Foreground(colorCommand)
	styleSpinner = lipgloss.NewStyle().Foreground(colorAccent)
)

// printer writes a command's human-readable output. Logs go to the logger;
// this is what the user asked for.
type printer struct {
	w io.Writer
}

func newPrinter(w io.Writer) printer { return printer{w: w} }

func (p printer) line(icon lipgloss.Style, glyph, text string) {
	fmt.Fprintln(p.w, icon.Render(glyph)+" "+text)
}

func (p printer) success(format string, args ...any) {
	p.line(styleOK, "✓", fmt.Sprintf(format, args...))
}

func (p printer) warning(format string, args ...any) {
	p.line(styleWarn, "!", styleWarn.Render(fmt.Sprintf(format, args...)))
}

func (p printer) info(format string, args ...any) {
	p.line(styleMuted, "›", fmt.Sprintf(format, args...))
}

// detail prints an indented muted line under the previous status line.
func (p printer) detail(format string, args ...any) {
	fmt.Fprintln(p.w, "  "+styleMuted.Render(fmt.Sprintf(format, args...)))
}

func (p printer) file(path string) {
	fmt.Fprintln(p.w, "  "+styleMuted.Render("→")+" "+styleValue.Render(path))
}

// hint suggests a follow-up command after a blank line.
func (p printer) hint(description, command string) {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, styleMuted.Render(description+":")+" "+styleCommand.Render(command))
}

// runStats is the one-line summary of a layout run.
type runStats struct {
	nodes, edges     int
	routed, fallback int
	engineFailed     bool
}

// String renders e.g. "4 nodes · 3 edges · 2 routed · 1 optimized".
func (s runStats) String() string {
	parts := []string{
		styleMuted.Render(fmt.Sprintf("%d nodes", s.nodes)),
		styleMuted.Render(fmt.Sprintf("%d edges", s.edges)),
	}
	if s.routed > 0 {
		parts = append(parts, styleOK.Render(fmt.Sprintf("%d routed", s.routed)))
	}
	if s.fallback > 0 {
		parts = append(parts, styleWarn.Render(fmt.Sprintf("%d optimized", s.fallback)))
	}
	if s.engineFailed {
		parts = append(parts, styleBad.Render("engine failed"))
	}
	return strings.Join(parts, styleMuted.Render(" · "))
}

func (p printer) stats(s runStats) {
	fmt.Fprintln(p.w, "  "+s.String())
}
