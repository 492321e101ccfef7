package main

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/springdock/internal/config"
	"github.com/olivier-w/springdock/internal/ui"
)

var startupErrorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"})

// startupModel shows the viewport picker and hands over to the dock screen
// once a viewport class is chosen.
type startupModel struct {
	cfg    config.Config
	picker ui.PickerModel
	errMsg string
	width  int
	height int
}

func newStartupModel(cfg config.Config) startupModel {
	return startupModel{
		cfg:    cfg,
		picker: ui.NewPicker(cfg),
	}
}

func (m startupModel) Init() tea.Cmd {
	return m.picker.Init()
}

func (m startupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case ui.PickerCancelledMsg:
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)

	case ui.PickerSelectedMsg:
		model, err := ui.New(m.cfg, msg.Viewport)
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		cmds := []tea.Cmd{model.Init()}
		if m.width > 0 || m.height > 0 {
			w, h := m.width, m.height
			cmds = append(cmds, func() tea.Msg {
				return tea.WindowSizeMsg{Width: w, Height: h}
			})
		}
		return model, tea.Batch(cmds...)

	case ui.ConfigReloadedMsg:
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.cfg = msg.Config
		keep := m.cfg
		keep.Viewport = m.picker.Selected()
		m.picker = ui.NewPicker(keep)
		if m.width > 0 || m.height > 0 {
			model, _ := m.picker.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
			m.picker = model.(ui.PickerModel)
		}
		return m, nil
	}

	model, cmd := m.picker.Update(msg)
	if picker, ok := model.(ui.PickerModel); ok {
		m.picker = picker
	}
	return m, cmd
}

func (m startupModel) View() string {
	var b strings.Builder
	b.WriteString(m.picker.View())
	if m.errMsg != "" {
		b.WriteString("\n  " + startupErrorStyle.Render("Error: "+m.errMsg) + "\n")
	}
	return b.String()
}
