package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// IntroModel holds the state for the main menu.
type IntroModel struct {
	selected int // 0: Start Run, 1: Past Runs
	width    int
	height   int
}

func NewIntroModel(w, h int) IntroModel {
	return IntroModel{selected: 0, width: w, height: h}
}

func (m IntroModel) Init() tea.Cmd { return nil }

func (m IntroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h", "right", "l":
			// Two buttons, so either direction flips the selection.
			if m.selected == 0 {
				m.selected = 1
			} else {
				m.selected = 0
			}
		case "enter":
			return m, func() tea.Msg { return IntroSubmitMsg(m.selected) }
		}
	}
	return m, nil
}

var gridhopperAscii = `
  ██████╗ ██████╗ ██╗██████╗ ██╗  ██╗ ██████╗ ██████╗ ██████╗ ███████╗██████╗
 ██╔════╝ ██╔══██╗██║██╔══██╗██║  ██║██╔═══██╗██╔══██╗██╔══██╗██╔════╝██╔══██╗
 ██║  ███╗██████╔╝██║██║  ██║███████║██║   ██║██████╔╝██████╔╝█████╗  ██████╔╝
 ██║   ██║██╔══██╗██║██║  ██║██╔══██║██║   ██║██╔═══╝ ██╔═══╝ ██╔══╝  ██╔══██╗
 ╚██████╔╝██║  ██║██║██████╔╝██║  ██║╚██████╔╝██║     ██║     ███████╗██║  ██║
  ╚═════╝ ╚═╝  ╚═╝╚═╝╚═════╝ ╚═╝  ╚═╝ ╚═════╝ ╚═╝     ╚═╝     ╚══════╝╚═╝  ╚═╝

                    ▓▓
              ▓▓    ▓▓              ██████
        ██████████████████          ██  ██
`

var (
	asciiStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))

	introButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Padding(0, 3).
				Margin(1, 2).
				Border(lipgloss.RoundedBorder())

	introSelectedButtonStyle = introButtonStyle.
					Background(lipgloss.Color("114")).
					Foreground(lipgloss.Color("0"))
)

func (m IntroModel) View() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(asciiStyle.Render(gridhopperAscii))
	sb.WriteString("\n")

	startRun := introButtonStyle.Render("Start Run")
	pastRuns := introButtonStyle.Render("Past Runs")

	if m.selected == 0 {
		startRun = introSelectedButtonStyle.Render("Start Run")
	} else {
		pastRuns = introSelectedButtonStyle.Render("Past Runs")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, startRun, pastRuns)

	content := lipgloss.JoinVertical(lipgloss.Center, sb.String(), buttons)

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
}
