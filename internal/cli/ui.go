package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/errors"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorAccent = lipgloss.Color("36")  // teal
	colorGreen  = lipgloss.Color("35")  // success, cached
	colorAmber  = lipgloss.Color("220") // warnings, missing logos
	colorRed    = lipgloss.Color("167") // errors
	colorBlue   = lipgloss.Color("75")  // commands, links
	colorWhite  = lipgloss.Color("255") // values
	colorGray   = lipgloss.Color("245") // labels
	colorDim    = lipgloss.Color("240") // separators, muted text
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleLabel   = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleSpinner = lipgloss.NewStyle().Foreground(colorAccent)
)

// =============================================================================
// Status Lines
// =============================================================================

// status is the kind of a one-line message. It picks the icon and colors.
type status int

const (
	statusInfo status = iota
	statusSuccess
	statusWarning
	statusError
)

var statusIcons = [...]struct {
	icon  string
	color lipgloss.Color
}{
	statusInfo:    {"›", colorGray},
	statusSuccess: {"✓", colorGreen},
	statusWarning: {"!", colorAmber},
	statusError:   {"✗", colorRed},
}

// stdout is where status lines go; tests swap it.
var stdout io.Writer = os.Stdout

// statusLine renders "<icon> <message>". Warnings color the message too.
func statusLine(kind status, msg string) string {
	s := statusIcons[kind]
	icon := lipgloss.NewStyle().Foreground(s.color).Render(s.icon)
	if kind == statusWarning {
		msg = lipgloss.NewStyle().Foreground(s.color).Render(msg)
	}
	return icon + " " + msg
}

func emit(kind status, format string, args ...any) {
	fmt.Fprintln(stdout, statusLine(kind, fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any)    { emit(statusInfo, format, args...) }
func printSuccess(format string, args ...any) { emit(statusSuccess, format, args...) }
func printWarning(format string, args ...any) { emit(statusWarning, format, args...) }

// ReportError prints a failed command's error to w. Problems in the
// document or its images get a hint that the source needs fixing.
func ReportError(w io.Writer, err error) {
	fmt.Fprintln(w, statusLine(statusError, err.Error()))
	if errors.CategoryOf(err) == errors.CategoryDocument {
		fmt.Fprintln(w, "  "+styleDim.Render("fix the document and run again"))
	}
}

// printFile prints an indented "→ path" line under the preceding status.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+styleDim.Render("→")+" "+styleValue.Render(path))
}

// printKeyValue prints a label padded to a fixed column and its value.
func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleLabel.Render(key)+" "+styleValue.Render(value))
}

// printNextStep suggests a command or URL to try next.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, styleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// =============================================================================
// Slide Summaries
// =============================================================================

// slideSummary renders one variant's counts as an indented line, e.g.
// "  Main · 12 logos · 2 missing · cached". Missing counts are amber.
func slideSummary(variant string, logos, missing int, cached bool) string {
	sep := styleDim.Render(" · ")
	parts := []string{
		styleDim.Render(variant),
		styleDim.Render(fmt.Sprintf("%d logos", logos)),
	}
	if missing > 0 {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorAmber).Render(fmt.Sprintf("%d missing", missing)))
	}
	if cached {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorGreen).Render("cached"))
	} else {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorGray).Render("fresh"))
	}
	return "  " + strings.Join(parts, sep)
}
