package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Mshel/gridhopper/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const historyPageSize = 10

// Styles for Run Complete/History
var (
	runCompleteTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("114")).
				Padding(1, 5).
				Align(lipgloss.Center)

	historyHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("236")).
				Padding(0, 1).
				Align(lipgloss.Center)

	historyRowStyle = lipgloss.NewStyle().
			Padding(0, 1)

	historyBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, true, false).
				BorderForeground(lipgloss.Color("8"))
)

// RunCompleteModel shows the freshly finished run (if any) above a paginated
// run history read from the store.
type RunCompleteModel struct {
	result   *game.RunCompleteMsg // nil when browsing history from the menu
	runStore *game.RunStore

	runs   []game.Run
	total  int
	offset int

	width  int
	height int
}

func NewRunCompleteModel(result *game.RunCompleteMsg, store *game.RunStore, w, h int) RunCompleteModel {
	m := RunCompleteModel{
		result:   result,
		runStore: store,
		width:    w,
		height:   h,
	}
	m.loadPage()
	return m
}

func (m *RunCompleteModel) loadPage() {
	if m.runStore == nil {
		return
	}
	runs, err := m.runStore.GetRecentRuns(historyPageSize, m.offset)
	if err != nil {
		log.Error("Run history query failed", "error", err)
		return
	}
	total, err := m.runStore.GetTotalRunCount()
	if err != nil {
		log.Error("Run count query failed", "error", err)
		return
	}
	m.runs = runs
	m.total = total
}

func (m RunCompleteModel) Init() tea.Cmd { return nil }

func (m RunCompleteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "enter", "q":
			return m, func() tea.Msg { return BackToIntroMsg{} }
		case "right", "l", "down":
			if m.offset+historyPageSize < m.total {
				m.offset += historyPageSize
				m.loadPage()
			}
		case "left", "h", "up":
			if m.offset > 0 {
				m.offset = max(0, m.offset-historyPageSize)
				m.loadPage()
			}
		}
	}
	return m, nil
}

func (m RunCompleteModel) View() string {
	var parts []string

	if m.result != nil {
		title := runCompleteTitleStyle.Render("★ R U N   C O M P L E T E ★")
		stats := fmt.Sprintf("\n%d ticks in %.2f s\n", m.result.Ticks, m.result.DurationSec)
		parts = append(parts, title, stats)
	} else {
		parts = append(parts, runCompleteTitleStyle.Render("Run History"))
	}

	parts = append(parts, m.renderHistoryTable())

	page := m.offset/historyPageSize + 1
	pages := max(1, (m.total+historyPageSize-1)/historyPageSize)
	instruction := lipgloss.NewStyle().Faint(true).Margin(1, 0).
		Render(fmt.Sprintf("Page %d/%d (arrows to page, enter/esc for menu)", page, pages))
	parts = append(parts, instruction)

	content := lipgloss.JoinVertical(lipgloss.Center, parts...)

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Render(content),
	)
}

func (m RunCompleteModel) renderHistoryTable() string {
	if len(m.runs) == 0 {
		return lipgloss.NewStyle().Faint(true).Render("No runs recorded yet.")
	}

	nameWidth := 15
	levelWidth := 12
	ticksWidth := 8
	timeWidth := 9

	var tableContent strings.Builder

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		historyHeaderStyle.Width(3).Render("#"),
		historyHeaderStyle.Width(nameWidth).Render("Runner"),
		historyHeaderStyle.Width(levelWidth).Render("Level"),
		historyHeaderStyle.Width(ticksWidth).Render("Ticks"),
		historyHeaderStyle.Width(timeWidth).Render("Time"),
	)
	tableContent.WriteString(header + "\n")

	for i, run := range m.runs {
		rank := m.offset + i + 1
		duration := fmt.Sprintf("%.2fs", run.DurationSec)
		if !run.Completed {
			duration = "DNF"
		}

		row := lipgloss.JoinHorizontal(lipgloss.Top,
			historyRowStyle.Width(3).Render(strconv.Itoa(rank)),
			historyRowStyle.Width(nameWidth).Render(run.PlayerName),
			historyRowStyle.Width(levelWidth).Render(run.LevelID),
			historyRowStyle.Width(ticksWidth).Render(strconv.FormatUint(run.Ticks, 10)),
			historyRowStyle.Width(timeWidth).Render(duration),
		)
		tableContent.WriteString(historyBorderStyle.Render(row) + "\n")
	}

	return tableContent.String()
}
