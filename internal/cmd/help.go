package cmd

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginTop(1)

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("10"))

	helpCommandStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("14"))

	helpCommentStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("8")).
				Italic(true)
)

type example struct {
	section, command, comment string
}

func renderExamples(examples []example) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(helpTitleStyle.Render("Examples"))
	b.WriteString("\n\n")
	for _, e := range examples {
		b.WriteString(helpSectionStyle.Render(e.section))
		b.WriteString("\n")
		b.WriteString("  " + helpCommandStyle.Render(e.command))
		b.WriteString("\n")
		if e.comment != "" {
			b.WriteString("  " + helpCommentStyle.Render(e.comment))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderViewHelp renders the examples and key bindings of the view command.
func renderViewHelp() string {
	s := renderExamples([]example{
		{"View a mesh with the built-in settings", "meshview view -m model.obj", ""},
		{"Use a configuration file and follow edits", "meshview view -c viewer.yaml --watch", "The mesh is reloaded on save; the angle is kept."},
	})

	var b strings.Builder
	b.WriteString(s)
	b.WriteString(helpSectionStyle.Render("Keys"))
	b.WriteString("\n")
	for _, k := range [][2]string{
		{"Left / Right", "rotate by the configured step"},
		{"Home", "reset the rotation"},
		{"H", "toggle the overlay"},
		{"Esc / Q", "quit"},
	} {
		b.WriteString("  " + helpCommandStyle.Render(k[0]) + "  " + helpCommentStyle.Render(k[1]))
		b.WriteString("\n")
	}
	return b.String()
}

// renderRenderHelp renders the examples of the render command.
func renderRenderHelp() string {
	return renderExamples([]example{
		{"Render one frame", "meshview render -m model.stl -o out.png", ""},
		{"Render a turntable", "meshview render -c viewer.yaml --frames 36 --step 10 -o spin.bmp", "Writes spin-000.bmp through spin-035.bmp."},
		{"Name the frames yourself", "meshview render --frames 4 -o 'frames/%02d.tif'", ""},
	})
}
