package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	boxBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(0, 1)

	noteTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("6"))

	bannerHusky = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	bannerTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	bannerDim   = lipgloss.NewStyle().Faint(true)
	bannerVer   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

var bannerArt = [][2]string{
	{"╦ ╦╦ ╦╔═╗╦╔═╦ ╦", "╦╔╗╔╔═╗╔╦╗╔═╗╦  ╦  ╔═╗╦═╗"},
	{"╠═╣║ ║╚═╗╠╩╗╚╦╝", "║║║║╚═╗ ║ ╠═╣║  ║  ║╣ ╠╦╝"},
	{"╩ ╩╚═╝╚═╝╩ ╩ ╩ ", "╩╝╚╝╚═╝ ╩ ╩ ╩╩═╝╩═╝╚═╝╩╚═"},
}

// Banner renders the boxed start-up banner.
func Banner(tagline, version string) string {
	lines := make([]string, 0, len(bannerArt)+2)
	for _, art := range bannerArt {
		lines = append(lines, bannerHusky.Render(art[0])+"  "+bannerTitle.Render(art[1]))
	}
	lines = append(lines, "")
	lines = append(lines, bannerDim.Render(DogEmoji+" "+tagline)+"  "+bannerVer.Render("v"+version))

	return boxBorder.Padding(1, 3).Render(strings.Join(lines, "\n"))
}

// Note renders body inside a rounded box with title above it.
func Note(title, body string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		noteTitle.Render(title),
		boxBorder.Render(body),
	)
}

func PrintNote(w io.Writer, title, body string) {
	_, _ = fmt.Fprintln(w, Note(title, body))
}
