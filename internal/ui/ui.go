// Package ui prints styled status lines for the command-line front end.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Out receives everything the package prints.
var Out io.Writer = os.Stdout

var (
	primaryColor   = lipgloss.Color("#7D56F4")
	secondaryColor = lipgloss.Color("#00D9FF")
	successColor   = lipgloss.Color("#04B575")
	errorColor     = lipgloss.Color("#FF5F87")
	warningColor   = lipgloss.Color("#FFAF00")
	mutedColor     = lipgloss.Color("#626262")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1).
			PaddingLeft(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(secondaryColor).
			MarginTop(1).
			PaddingLeft(1)

	successStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	infoStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	keyStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true)

	checkmark = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true).
			SetString("✓")

	cross = lipgloss.NewStyle().
		Foreground(errorColor).
		Bold(true).
		SetString("✗")

	arrow = lipgloss.NewStyle().
		Foreground(secondaryColor).
		SetString("→")

	dot = lipgloss.NewStyle().
		Foreground(mutedColor).
		SetString("•")

	stepStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	itemStyle = lipgloss.NewStyle().
			PaddingLeft(4)
)

func emit(s string) { fmt.Fprintln(Out, s) }

// PrintTitle prints the application title
func PrintTitle(title string) {
	emit(titleStyle.Render("╭─ " + title + " ─╮"))
}

// PrintHeader prints a section header
func PrintHeader(title string) {
	emit(headerStyle.Render("▸ " + title))
}

// PrintStep prints a step with indentation
func PrintStep(step string) {
	emit(stepStyle.Render(arrow.String() + " " + step))
}

// PrintItem prints an item in a list
func PrintItem(item string) {
	emit(itemStyle.Render(dot.String() + " " + item))
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	emit(stepStyle.Render(checkmark.String() + " " + successStyle.Render(message)))
}

// PrintError prints an error message
func PrintError(message string) {
	emit(stepStyle.Render(cross.String() + " " + errorStyle.Render(message)))
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	emit(stepStyle.Render("⚠ " + warningStyle.Render(message)))
}

// PrintInfo prints a muted message
func PrintInfo(message string) {
	emit(stepStyle.Render(infoStyle.Render(message)))
}

// PrintKeyValue prints a key-value pair
func PrintKeyValue(key, value string) {
	emit(stepStyle.Render(keyStyle.Render(key+":") + " " + value))
}

var columnWidths = []int{24, 12, 16}

func row(columns []string, truncate bool) string {
	var b strings.Builder
	for i, col := range columns {
		if i >= len(columnWidths) {
			break
		}
		w := columnWidths[i]
		if n := len([]rune(col)); n > w {
			if truncate {
				col = string([]rune(col)[:w-3]) + "..."
			}
		} else {
			col += strings.Repeat(" ", w-n)
		}
		b.WriteString(col)
		if i < len(columns)-1 && i < len(columnWidths)-1 {
			b.WriteString(" │ ")
		}
	}
	return b.String()
}

// PrintTableHeader prints a table header and its rule
func PrintTableHeader(headers ...string) {
	emit(stepStyle.Render(keyStyle.Render(row(headers, false))))
	parts := make([]string, 0, len(headers))
	for i := range headers {
		if i >= len(columnWidths) {
			break
		}
		parts = append(parts, strings.Repeat("─", columnWidths[i]))
	}
	emit(stepStyle.Render(infoStyle.Render(strings.Join(parts, "─┼─"))))
}

// PrintTableRow prints one table row
func PrintTableRow(columns ...string) {
	emit(stepStyle.Render(row(columns, true)))
}
