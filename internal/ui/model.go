package ui

import (
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/springdock/internal/config"
	"github.com/olivier-w/springdock/internal/magnify"
	"github.com/olivier-w/springdock/internal/util"
)

// a frame arriving later than this many nominal frames is clamped so a
// stalled terminal does not fling the springs
const maxFrameSteps = 4

const statusTTL = 5 * time.Second

type statusExpiredMsg struct{ seq int }

// Model is the Bubbletea model for the dock screen. It owns the scheduler
// and is the host loop that ticks it: a frame is requested only while some
// spring is still moving.
type Model struct {
	cfg      config.Config
	sched    *magnify.Scheduler
	dock     *magnify.Dock
	viewport config.Viewport
	layout   layout
	keys     keyMap
	help     help.Model

	width    int
	height   int
	touching bool
	quitting bool

	framePending bool
	lastFrame    time.Time
	animStart    time.Time
	settleTime   time.Duration
	showStats    bool

	statusMsg string
	statusSeq int
}

// New creates the dock screen for the given viewport class.
func New(cfg config.Config, vp config.Viewport) (Model, error) {
	sched := magnify.NewScheduler()
	dock, err := magnify.NewDock(cfg.ItemsFor(vp), cfg.Magnify(), sched)
	if err != nil {
		return Model{}, fmt.Errorf("failed to build dock: %w", err)
	}
	m := Model{
		cfg:      cfg,
		sched:    sched,
		dock:     dock,
		viewport: vp,
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
	m.relayout()
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle(windowTitle(m.viewport))
}

// Close releases every spring the dock registered. Safe to call more than
// once.
func (m Model) Close() {
	if m.dock != nil {
		m.dock.Close()
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.handleMsg(msg)
}

func (m Model) handleMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		cmd := m.wake()
		return m, cmd

	case frameMsg:
		cmd := m.frame(time.Time(msg))
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width - indent
		m.relayout()
		cmd := m.wake()
		return m, cmd

	case ConfigReloadedMsg:
		return m.applyConfig(msg)

	case statusExpiredMsg:
		if msg.seq == m.statusSeq {
			m.statusMsg = ""
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.dock.Close()
		log.Printf("dock closed, %d springs still registered", m.sched.Len())
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
	case key.Matches(msg, m.keys.Left):
		m.step(-1)
	case key.Matches(msg, m.keys.Right):
		m.step(1)
	case key.Matches(msg, m.keys.Leave):
		m.touching = false
		m.dock.Leave()
	case key.Matches(msg, m.keys.Viewport):
		m.switchViewport(m.viewport.Next())
		cmd := tea.Batch(tea.SetWindowTitle(windowTitle(m.viewport)), m.wake())
		return m, cmd
	case key.Matches(msg, m.keys.Stats):
		m.showStats = !m.showStats
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	cmd := m.wake()
	return m, cmd
}

// step moves a keyboard pointer along the row, entering from the near end
// when nothing is active. It works in either viewport and ends any touch in
// progress.
func (m *Model) step(delta int) {
	m.touching = false
	n := len(m.dock.Items())
	if n == 0 {
		return
	}
	i := m.dock.Pointer().Active
	switch {
	case i == magnify.NoIndex && delta > 0:
		i = 0
	case i == magnify.NoIndex:
		i = n - 1
	default:
		i = clampInt(i+delta, 0, n-1)
	}
	m.dock.Enter(i)
}

// handleMouse feeds pointer events to the dock. On desktop the mouse hovers
// (indirect mode); on mobile presses and drags act as touches.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if tea.MouseEvent(msg).IsWheel() {
		return
	}
	if m.viewport == config.Mobile {
		m.handleTouch(msg)
		return
	}
	if !m.layout.inBox(msg.X, msg.Y) {
		m.dock.Leave()
		return
	}
	if i := m.layout.slotAt(msg.X); i != magnify.NoIndex {
		m.dock.Enter(i)
	}
}

func (m *Model) handleTouch(msg tea.MouseMsg) {
	sample := magnify.Sample{X: float64(msg.X) + 0.5, Y: float64(msg.Y) + 0.5}
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if !m.layout.inBox(msg.X, msg.Y) {
			return
		}
		m.touching = true
		sample.Phase = magnify.PhaseStart
	case msg.Action == tea.MouseActionMotion && m.touching:
		sample.Phase = magnify.PhaseMove
	case msg.Action == tea.MouseActionRelease && m.touching:
		m.touching = false
		sample.Phase = magnify.PhaseEnd
	default:
		return
	}
	m.dock.Touch(sample)
}

// wake requests a frame if the scheduler has work and none is pending yet.
func (m *Model) wake() tea.Cmd {
	if m.framePending || m.quitting || !m.sched.Active() {
		return nil
	}
	m.framePending = true
	m.lastFrame = time.Time{}
	if m.animStart.IsZero() {
		m.animStart = time.Now()
	}
	return frameCmd(m.cfg.FPS)
}

// frame advances every spring by the time since the previous frame and asks
// for another one only while something is still moving.
func (m *Model) frame(t time.Time) tea.Cmd {
	m.framePending = false
	if m.quitting {
		return nil
	}
	nominal := 1 / float64(m.cfg.FPS)
	dt := nominal
	if !m.lastFrame.IsZero() {
		dt = t.Sub(m.lastFrame).Seconds()
		if dt <= 0 {
			dt = nominal
		}
		if dt > maxFrameSteps*nominal {
			dt = maxFrameSteps * nominal
		}
	}
	m.lastFrame = t
	m.sched.Tick(dt)

	if m.sched.Active() {
		m.framePending = true
		return frameCmd(m.cfg.FPS)
	}
	if !m.animStart.IsZero() {
		m.settleTime = t.Sub(m.animStart)
		m.animStart = time.Time{}
	}
	return nil
}

func (m *Model) switchViewport(vp config.Viewport) {
	m.viewport = vp
	m.touching = false
	items := m.cfg.ItemsFor(vp)
	m.dock.SetItems(items)
	m.relayout()
	log.Printf("viewport switched to %s with %d items", vp, len(items))
}

func (m *Model) relayout() {
	m.layout = newLayout(m.dock.Config(), m.cfg.PxPerRow, len(m.dock.Items()), m.width)
	m.dock.SetGeometry(m.layout.geometry())
}

func (m Model) applyConfig(msg ConfigReloadedMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		log.Printf("config reload failed: %v", msg.Err)
		cmd := m.setStatus(fmt.Sprintf("Reload failed: %v", msg.Err))
		return m, cmd
	}
	if err := m.dock.Configure(msg.Config.Magnify()); err != nil {
		log.Printf("config rejected: %v", err)
		cmd := m.setStatus(fmt.Sprintf("Reload failed: %v", err))
		return m, cmd
	}
	prev := m.cfg.ItemsFor(m.viewport)
	m.cfg = msg.Config
	if next := m.cfg.ItemsFor(m.viewport); !slices.Equal(prev, next) {
		m.touching = false
		m.dock.SetItems(next)
	}
	m.relayout()
	log.Printf("config reloaded")
	cmd := tea.Batch(m.wake(), m.setStatus("Config reloaded"))
	return m, cmd
}

func (m *Model) setStatus(s string) tea.Cmd {
	m.statusMsg = s
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return statusExpiredMsg{seq: seq}
	})
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	pad := strings.Repeat(" ", indent)
	outs := m.dock.Outputs()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(pad + headerStyle.Render("springdock") + "\n")
	b.WriteString("\n")
	b.WriteString(indentBlock(renderDock(outs, m.layout), pad))
	b.WriteString("\n\n")
	b.WriteString(pad + statusStyle.Render(m.statusLine()) + "\n")
	if m.showStats {
		b.WriteString("\n")
		b.WriteString(indentBlock(statsStyle.Render(renderStats(outs)), pad) + "\n")
		b.WriteString(pad + statsStyle.Render(fmt.Sprintf("springs %d  frames %d", m.sched.Len(), m.sched.Frames())) + "\n")
	}
	if m.statusMsg != "" {
		b.WriteString(pad + m.renderStatusMsg() + "\n")
	}
	b.WriteString("\n")
	b.WriteString(indentBlock(m.help.View(m.keys), pad) + "\n")
	return b.String()
}

func (m Model) statusLine() string {
	p := m.dock.Pointer()
	target := "—"
	if items := m.dock.Items(); p.Active >= 0 && p.Active < len(items) {
		target = items[p.Active].Name
	}
	state := "idle"
	switch {
	case m.sched.Active():
		state = "animating"
	case m.settleTime > 0:
		state = "settled in " + util.FormatMillis(m.settleTime)
	}
	return fmt.Sprintf("%s %s  ·  %s  ·  %s  ·  %s", m.viewport.Icon(), m.viewport, p.Mode, target, state)
}

func (m Model) renderStatusMsg() string {
	if strings.HasPrefix(m.statusMsg, "Reload failed") {
		return errorStyle.Render(m.statusMsg)
	}
	return helpStyle.Render(m.statusMsg)
}

func windowTitle(vp config.Viewport) string {
	return "springdock — " + vp.String()
}

func indentBlock(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
