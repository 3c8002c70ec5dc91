package ui

import (
	"github.com/Mshel/gridhopper/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type Screen int

const (
	IntroScreen Screen = iota
	SetupScreen
	GameScreen
	RunCompleteScreen
)

// Messages for state transitions
type IntroSubmitMsg int // 0 for Start Run, 1 for Past Runs
type SetupSubmitMsg struct {
	Name      string
	LevelPath string
}

type BackToIntroMsg struct{}

// ControllerModel routes messages between the screens of one session.
type ControllerModel struct {
	CurrentScreen Screen

	IntroModel tea.Model
	SetupModel tea.Model
	GameModel  tea.Model
	DoneModel  tea.Model

	RunStore *game.RunStore

	gameManager *game.GameManager

	ScreenWidth  int
	ScreenHeight int
}

func NewControllerModel(store *game.RunStore, screenWidth, screenHeight int) ControllerModel {
	return ControllerModel{
		CurrentScreen: IntroScreen,
		IntroModel:    NewIntroModel(screenWidth, screenHeight),
		SetupModel:    NewSetupModel(screenWidth, screenHeight),
		RunStore:      store,
		ScreenWidth:   screenWidth,
		ScreenHeight:  screenHeight,
	}
}

func (m ControllerModel) Init() tea.Cmd {
	return m.IntroModel.Init()
}

func (m ControllerModel) View() string {
	switch m.CurrentScreen {
	case IntroScreen:
		return m.IntroModel.View()
	case SetupScreen:
		return m.SetupModel.View()
	case GameScreen:
		if m.GameModel != nil {
			return m.GameModel.View()
		}
		return "Loading level..."
	case RunCompleteScreen:
		if m.DoneModel != nil {
			return m.DoneModel.View()
		}
		return ""
	default:
		return "Unknown Screen"
	}
}

func (m ControllerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "ctrl+c" {
			m.stopGame()
			return m, tea.Quit
		}
	}

	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
	}

	switch msg := msg.(type) {
	case IntroSubmitMsg:
		if msg == 0 {
			m.CurrentScreen = SetupScreen
			m.SetupModel = NewSetupModel(m.ScreenWidth, m.ScreenHeight)
			return m, m.SetupModel.Init()
		}
		// Past runs: straight to the history screen, no fresh stats.
		m.CurrentScreen = RunCompleteScreen
		m.DoneModel = NewRunCompleteModel(nil, m.RunStore, m.ScreenWidth, m.ScreenHeight)
		return m, m.DoneModel.Init()

	case SetupSubmitMsg:
		level, err := game.LoadLevelFile(msg.LevelPath)
		if err != nil {
			log.Error("Level failed to load", "path", msg.LevelPath, "error", err)
			m.SetupModel = NewSetupModelWithError(m.ScreenWidth, m.ScreenHeight, err)
			return m, m.SetupModel.Init()
		}

		pilot, pilotErr := game.NewLuaIntentSource("walker", game.DefaultPilotScript)
		if pilotErr != nil {
			log.Error("Built-in pilot script failed to parse", "error", pilotErr)
		}

		gm := game.NewGameManager(msg.Name, msg.LevelPath, level, m.RunStore, pilot)
		go gm.StartGameLoop()

		m.gameManager = gm
		m.CurrentScreen = GameScreen
		m.GameModel = NewGameModel(gm, m.ScreenWidth, m.ScreenHeight)
		return m, m.GameModel.Init()

	case game.RunCompleteMsg:
		m.stopGame()
		m.CurrentScreen = RunCompleteScreen
		m.DoneModel = NewRunCompleteModel(&msg, m.RunStore, m.ScreenWidth, m.ScreenHeight)
		return m, m.DoneModel.Init()

	case BackToIntroMsg:
		m.stopGame()
		m.CurrentScreen = IntroScreen
		m.IntroModel = NewIntroModel(m.ScreenWidth, m.ScreenHeight)
		return m, m.IntroModel.Init()

	default:
		switch m.CurrentScreen {
		case IntroScreen:
			m.IntroModel, cmd = m.IntroModel.Update(msg)
			cmds = append(cmds, cmd)
		case SetupScreen:
			m.SetupModel, cmd = m.SetupModel.Update(msg)
			cmds = append(cmds, cmd)
		case GameScreen:
			if m.GameModel != nil {
				m.GameModel, cmd = m.GameModel.Update(msg)
				cmds = append(cmds, cmd)
			}
		case RunCompleteScreen:
			if m.DoneModel != nil {
				m.DoneModel, cmd = m.DoneModel.Update(msg)
				cmds = append(cmds, cmd)
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// stopGame asks the loop to shut itself down. The loop owns all of its state;
// the UI only ever talks to it through the command channel. The send is
// non-blocking in case the loop already exited and stopped draining.
func (m *ControllerModel) stopGame() {
	if m.gameManager == nil {
		return
	}
	select {
	case m.gameManager.CommandChannel <- game.Command{Kind: game.CommandStop}:
	default:
	}
	m.gameManager = nil
}
