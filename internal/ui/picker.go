package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/springdock/internal/config"
)

// PickerSelectedMsg is emitted when a viewport class is chosen.
type PickerSelectedMsg struct {
	Viewport config.Viewport
}

// PickerCancelledMsg is emitted when the picker is dismissed.
type PickerCancelledMsg struct{}

type viewportItem struct {
	viewport config.Viewport
	count    int
}

func (i viewportItem) Title() string { return i.viewport.String() }
func (i viewportItem) Description() string {
	mode := "hover with the mouse"
	if i.viewport == config.Mobile {
		mode = "press and drag like a touch screen"
	}
	return fmt.Sprintf("%d items · %s", i.count, mode)
}
func (i viewportItem) FilterValue() string { return i.viewport.String() }

// PickerModel lets the user choose which viewport class to open the dock in.
type PickerModel struct {
	list list.Model
}

// NewPicker lists every viewport class, preselecting cfg.Viewport.
func NewPicker(cfg config.Config) PickerModel {
	var items []list.Item
	selected := 0
	for i, vp := range config.Viewports() {
		items = append(items, viewportItem{viewport: vp, count: len(cfg.ItemsFor(vp))})
		if vp == cfg.Viewport {
			selected = i
		}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"}).
		BorderLeftForeground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}).
		BorderLeftForeground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})

	l := list.New(items, delegate, 60, 12)
	l.Title = "springdock"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = headerStyle
	l.Select(selected)

	return PickerModel{list: l}
}

func (m PickerModel) Init() tea.Cmd {
	return tea.SetWindowTitle("springdock")
}

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			item, ok := m.list.SelectedItem().(viewportItem)
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg {
				return PickerSelectedMsg{Viewport: item.viewport}
			}
		case "q", "esc", "ctrl+c":
			return m, func() tea.Msg { return PickerCancelledMsg{} }
		}

	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m PickerModel) View() string {
	return m.list.View()
}

// Selected returns the highlighted viewport class.
func (m PickerModel) Selected() config.Viewport {
	if item, ok := m.list.SelectedItem().(viewportItem); ok {
		return item.viewport
	}
	return config.Desktop
}
