package ui

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Mshel/gridhopper/internal/game"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Define styles
var (
	focusedColor = lipgloss.Color("114")
	blurredColor = lipgloss.Color("240")
	focusedStyle = lipgloss.NewStyle().Foreground(focusedColor)
	blurredStyle = lipgloss.NewStyle().Foreground(blurredColor)
	helpStyle    = blurredStyle
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))

	buttonStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder())

	submitButtonStyle = buttonStyle.
				BorderForeground(focusedColor).
				Padding(0, 1)

	blurredButtonStyle = buttonStyle.
				BorderForeground(blurredColor).
				Padding(0, 1)
)

// SetupModel collects a runner name and a level pick before a run starts.
type SetupModel struct {
	nameInput  textinput.Model
	levelPaths []string
	levelIndex int
	focusIndex int // 0: Name, 1: Level Select, 2: Submit
	loadError  error
	width      int
	height     int
}

func NewSetupModel(w, h int) SetupModel {
	ti := textinput.New()
	ti.Placeholder = "Your Runner Name"
	ti.Focus()
	ti.CharLimit = 20
	ti.PromptStyle = focusedStyle
	ti.TextStyle = focusedStyle

	return SetupModel{
		nameInput:  ti,
		levelPaths: discoverLevels(),
		levelIndex: 0,
		focusIndex: 0,
		width:      w,
		height:     h,
	}
}

// NewSetupModelWithError rebuilds the form after a level refused to load,
// keeping the error on screen so the runner can pick a different one.
func NewSetupModelWithError(w, h int, loadError error) SetupModel {
	m := NewSetupModel(w, h)
	m.loadError = loadError
	return m
}

// discoverLevels lists the yaml files under the levels directory. Falls back
// to the default level path so the form is never empty.
func discoverLevels() []string {
	entries, err := os.ReadDir(game.LevelDir)
	if err != nil {
		return []string{game.DefaultLevelPath}
	}

	paths := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) == ".yaml" || filepath.Ext(entry.Name()) == ".yml" {
			paths = append(paths, filepath.Join(game.LevelDir, entry.Name()))
		}
	}
	if len(paths) == 0 {
		return []string{game.DefaultLevelPath}
	}
	return paths
}

// Init sends a command to start the cursor blinking
func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		s := msg.String()

		if s == "ctrl+c" {
			return m, tea.Quit
		}
		if s == "esc" {
			return m, func() tea.Msg { return BackToIntroMsg{} }
		}

		if s == "enter" || s == "tab" || s == "shift+tab" {
			switch m.focusIndex {
			case 0: // Name Input
				switch s {
				case "enter", "tab":
					m.focusIndex = 1
					m.nameInput.Blur()
				case "shift+tab":
					m.focusIndex = 2
					m.nameInput.Blur()
				}

			case 1: // Level Select
				switch s {
				case "enter", "tab":
					m.focusIndex = 2
				case "shift+tab":
					m.focusIndex = 0
					m.nameInput.Focus()
				}

			case 2: // Submit Button
				switch s {
				case "enter":
					name := strings.TrimSpace(m.nameInput.Value())
					if name == "" {
						name = "anonymous"
					}
					level := m.levelPaths[m.levelIndex]
					return m, func() tea.Msg {
						return SetupSubmitMsg{Name: name, LevelPath: level}
					}
				case "tab":
					m.focusIndex = 0
					m.nameInput.Focus()
				case "shift+tab":
					m.focusIndex = 1
				}
			}
			return m, nil
		}

		// Level navigation only applies when the picker has focus.
		if m.focusIndex == 1 {
			switch s {
			case "up", "left":
				m.levelIndex = (m.levelIndex - 1 + len(m.levelPaths)) % len(m.levelPaths)
				return m, nil
			case "down", "right":
				m.levelIndex = (m.levelIndex + 1) % len(m.levelPaths)
				return m, nil
			}
		}

		if m.focusIndex == 0 {
			var cmd tea.Cmd
			m.nameInput, cmd = m.nameInput.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m SetupModel) View() string {
	center := func(s string) string {
		return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Render(s)
	}

	var b strings.Builder

	if m.loadError != nil {
		b.WriteString(center(errorStyle.Render("level failed to load: " + m.loadError.Error())))
		b.WriteString("\n\n")
	}

	b.WriteString(center(m.nameInput.View()))
	b.WriteString("\n\n")

	levelPrompt := "Pick a level (use arrows)"
	if m.focusIndex == 1 {
		b.WriteString(center(focusedStyle.Render(levelPrompt)))
	} else {
		b.WriteString(center(blurredStyle.Render(levelPrompt)))
	}
	b.WriteString("\n")

	var levelList strings.Builder
	for i, path := range m.levelPaths {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if i == m.levelIndex {
			levelList.WriteString(focusedStyle.Render("> " + name))
		} else {
			levelList.WriteString(blurredStyle.Render("  " + name))
		}
		levelList.WriteString("\n")
	}
	b.WriteString(center(levelList.String()))
	b.WriteString("\n")

	submitText := "Start"
	var submitButton string
	if m.focusIndex == 2 {
		submitButton = submitButtonStyle.Render(submitText)
	} else {
		submitButton = blurredButtonStyle.Render(submitText)
	}
	b.WriteString(center(submitButton))
	b.WriteString("\n\n")

	b.WriteString(center(helpStyle.Render("(arrows to pick a level, tab/shift+tab to navigate, enter to confirm, esc for menu)")))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}
