package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Mshel/gridhopper/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	voidColor    = "233"
	mapViewStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 0)

	statusPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8")).
				Padding(1, 2)

	solidStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("172")).Render("▒")
	voidStyle  = lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Render(" ")
	goalStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true).Render("◆")

	actorGroundedStyle = lipgloss.NewStyle().
				Background(lipgloss.Color(voidColor)).
				Foreground(lipgloss.Color("114")).Bold(true).Render("█")
	actorAirborneStyle = lipgloss.NewStyle().
				Background(lipgloss.Color(voidColor)).
				Foreground(lipgloss.Color("117")).Bold(true).Render("▓")
)

const (
	mapViewPercentage  = 0.70
	statusPanelPadding = 4
	updatePollInterval = time.Millisecond * 16
)

// GameViewModel renders one running session: the level viewport centered on
// the actor, plus a status panel with the live simulation counters.
type GameViewModel struct {
	gameManager  *game.GameManager
	frame        game.FrameMsg
	hasFrame     bool
	ScreenWidth  int
	ScreenHeight int
}

func NewGameModel(gm *game.GameManager, screenWidth int, screenHeight int) GameViewModel {
	return GameViewModel{
		gameManager:  gm,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

func (m GameViewModel) Init() tea.Cmd {
	return m.listenForGameUpdates()
}

func (m GameViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "a", "left":
			m.gameManager.CommandChannel <- game.Command{Kind: game.CommandSetMoveX, MoveX: -1}
		case "d", "right":
			m.gameManager.CommandChannel <- game.Command{Kind: game.CommandSetMoveX, MoveX: 1}
		case "s", "down":
			m.gameManager.CommandChannel <- game.Command{Kind: game.CommandSetMoveX, MoveX: 0}
		case "w", "up", " ":
			m.gameManager.CommandChannel <- game.Command{Kind: game.CommandJump}
		case "p":
			m.gameManager.CommandChannel <- game.Command{Kind: game.CommandToggleAutopilot}
		case "r":
			m.gameManager.CommandChannel <- game.Command{Kind: game.CommandReloadLevel}
		case "q", "esc":
			return m, func() tea.Msg { return BackToIntroMsg{} }
		}
		return m, nil

	case game.FrameMsg:
		m.frame = msg
		m.hasFrame = true
		return m, m.listenForGameUpdates()

	case pollMsg:
		return m, m.listenForGameUpdates()
	}

	return m, nil
}

func (m GameViewModel) View() string {
	if !m.hasFrame {
		return lipgloss.Place(m.ScreenWidth, m.ScreenHeight,
			lipgloss.Center, lipgloss.Center, "Waiting for first frame...")
	}

	mapWidth := int(float64(m.ScreenWidth) * mapViewPercentage)
	statusPanelWidth := m.ScreenWidth - mapWidth - statusPanelPadding

	mapContent := m.renderMap(mapWidth-2, m.ScreenHeight-2)
	statusContent := m.renderStatusPanel()

	return lipgloss.JoinHorizontal(lipgloss.Top,
		mapViewStyle.Width(mapWidth).Height(m.ScreenHeight-2).Render(mapContent),
		statusPanelStyle.Width(statusPanelWidth).Height(m.ScreenHeight-4).Render(statusContent),
	)
}

// renderMap draws a viewport of the collision grid centered on the actor.
// World +Y points up, so screen rows walk cell rows from high Y to low Y.
// Everything rendered comes out of the frame snapshot; the loop may swap its
// own grid at any time.
func (m GameViewModel) renderMap(width int, height int) string {
	grid := m.frame.Grid
	goal := m.frame.Goal

	actorCell := grid.CellAt(m.frame.Actor.CenterX, m.frame.Actor.CenterY)

	viewportW := min(grid.Width, width)
	viewportH := min(grid.Height, height)

	startCol := actorCell.X - viewportW/2
	startCol = max(0, startCol)
	if startCol+viewportW > grid.Width {
		startCol = max(0, grid.Width-viewportW)
	}

	topRow := actorCell.Y + viewportH/2
	bottomRow := topRow - viewportH + 1
	if bottomRow < 0 {
		bottomRow = 0
		topRow = min(grid.Height-1, viewportH-1)
	}
	if topRow > grid.Height-1 {
		topRow = grid.Height - 1
		bottomRow = max(0, topRow-viewportH+1)
	}

	var sb strings.Builder
	for row := topRow; row >= bottomRow; row-- {
		for col := startCol; col < startCol+viewportW; col++ {
			cell := game.GridCell{X: col, Y: row}
			switch {
			case cell == actorCell:
				if m.frame.Grounded {
					sb.WriteString(actorGroundedStyle)
				} else {
					sb.WriteString(actorAirborneStyle)
				}
			case goal != nil && cell == *goal:
				sb.WriteString(goalStyle)
			case grid.IsSolid(col, row):
				sb.WriteString(solidStyle)
			default:
				sb.WriteString(voidStyle)
			}
		}
		sb.WriteString("\n")
	}

	return lipgloss.NewStyle().Width(width).Height(height).Render(sb.String())
}

func (m GameViewModel) renderStatusPanel() string {
	var statusContent strings.Builder

	statusContent.WriteString(lipgloss.NewStyle().Bold(true).Render("--- Run ---") + "\n")
	statusContent.WriteString(fmt.Sprintf("Runner: %s\n", m.gameManager.PlayerName))
	statusContent.WriteString(fmt.Sprintf("Level: %s\n", m.frame.LevelName))
	if m.frame.Autopilot {
		statusContent.WriteString("Pilot: scripted\n")
	} else {
		statusContent.WriteString("Pilot: keyboard\n")
	}

	statusContent.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("--- Actor ---") + "\n")
	statusContent.WriteString(fmt.Sprintf("Pos: %.1f, %.1f\n", m.frame.Actor.CenterX, m.frame.Actor.CenterY))
	statusContent.WriteString(fmt.Sprintf("Vel: %.1f, %.1f\n", m.frame.VelocityX, m.frame.VelocityY))
	statusContent.WriteString(fmt.Sprintf("Grounded: %v\n", m.frame.Grounded))
	statusContent.WriteString(fmt.Sprintf("Contacts: %s\n", contactString(m.frame.Contacts)))

	statusContent.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("--- Clock ---") + "\n")
	statusContent.WriteString(fmt.Sprintf("Ticks: %d\n", m.frame.Ticks))
	statusContent.WriteString(fmt.Sprintf("Steps/frame: %d\n", m.frame.StepsFrame))
	statusContent.WriteString(fmt.Sprintf("Alpha: %.2f\n", m.frame.Alpha))
	statusContent.WriteString(fmt.Sprintf("FPS: %.1f\n", m.frame.FPS))
	statusContent.WriteString(fmt.Sprintf("Frame: %.2f ms\n", m.frame.FrameTimeMs))

	statusContent.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("--- Controls ---") + "\n")
	statusContent.WriteString("A/D: Move  W/Space: Jump\n")
	statusContent.WriteString("S: Stop  P: Autopilot\n")
	statusContent.WriteString("R: Restart level\n")
	statusContent.WriteString("Q/Esc: Back to menu\n")

	return statusContent.String()
}

func contactString(c game.ContactState) string {
	parts := []string{}
	if c.Left {
		parts = append(parts, "L")
	}
	if c.Right {
		parts = append(parts, "R")
	}
	if c.Down {
		parts = append(parts, "D")
	}
	if c.Up {
		parts = append(parts, "U")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

// pollMsg keeps the update listener rescheduled when no frame arrived in time.
type pollMsg struct{}

func (m GameViewModel) listenForGameUpdates() tea.Cmd {
	return tea.Tick(updatePollInterval, func(t time.Time) tea.Msg {
		select {
		case msg := <-m.gameManager.UpdateChannel:
			return msg
		default:
			return pollMsg{}
		}
	})
}
