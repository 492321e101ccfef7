package ui

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/springdock/internal/config"
	"github.com/olivier-w/springdock/internal/magnify"
)

func newTestModel(t *testing.T, vp config.Viewport) Model {
	t.Helper()
	m, err := New(config.Default(), vp)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

// slotCenter returns a cell in the middle of slot i.
func slotCenter(m Model, i int) (int, int) {
	return m.layout.slotLeft() + i*m.layout.slotW + m.layout.slotW/2, m.layout.boxTop() + 2
}

// runFrames drives the frame loop until it stops requesting frames.
func runFrames(t *testing.T, m Model) Model {
	t.Helper()
	now := time.Now()
	step := time.Second / time.Duration(m.cfg.FPS)
	for i := 0; i < 2000; i++ {
		now = now.Add(step)
		next, cmd := m.handleMsg(frameMsg(now))
		m = next
		if cmd == nil {
			return m
		}
	}
	t.Fatal("frame loop did not go idle")
	return m
}

func TestDesktopHoverActivatesSlot(t *testing.T) {
	m := newTestModel(t, config.Desktop)
	x, y := slotCenter(m, 2)

	next, cmd := m.handleMsg(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
	if got := next.dock.Pointer(); got.Active != 2 || got.Mode != magnify.ModeIndirect {
		t.Fatalf("expected indirect pointer on 2, got %+v", got)
	}
	if cmd == nil {
		t.Fatal("expected a frame to be requested")
	}
	if !next.framePending {
		t.Fatal("expected framePending after hover")
	}

	next, _ = next.handleMsg(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
	if got := next.dock.Pointer().Active; got != magnify.NoIndex {
		t.Fatalf("expected no active item after leaving the box, got %d", got)
	}
}

func TestFramesStopOnceSettled(t *testing.T) {
	m := newTestModel(t, config.Desktop)
	x, y := slotCenter(m, 2)
	m, cmd := m.handleMsg(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion})
	if cmd == nil {
		t.Fatal("expected a frame to be requested")
	}

	m = runFrames(t, m)
	if m.sched.Active() {
		t.Fatal("expected scheduler to be idle")
	}
	if m.framePending {
		t.Fatal("expected no pending frame once settled")
	}
	out := m.dock.Output(2)
	if math.Abs(out.Scale-1.55) > 1e-9 || math.Abs(out.LiftY+24) > 1e-9 {
		t.Fatalf("expected focus targets, got scale %v lift %v", out.Scale, out.LiftY)
	}
	if out.TooltipOpacity != 1 {
		t.Fatalf("expected tooltip fully shown, got %v", out.TooltipOpacity)
	}
	if m.settleTime <= 0 {
		t.Fatal("expected settle time to be recorded")
	}

	// no input, no frames
	_, cmd = m.handleMsg(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion})
	if cmd != nil {
		t.Fatal("expected no frame when nothing changed")
	}
}

func TestMobileTouchSequence(t *testing.T) {
	m := newTestModel(t, config.Mobile)
	if n := len(m.dock.Items()); n != 4 {
		t.Fatalf("expected 4 mobile items, got %d", n)
	}

	x, y := slotCenter(m, 1)
	m, _ = m.handleMsg(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
	if got := m.dock.Pointer().Active; got != magnify.NoIndex {
		t.Fatalf("expected hover to be ignored on mobile, got %d", got)
	}

	m, _ = m.handleMsg(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got := m.dock.Pointer(); got.Active != 1 || got.Mode != magnify.ModeDirect {
		t.Fatalf("expected direct pointer on 1, got %+v", got)
	}

	x, _ = slotCenter(m, 3)
	m, _ = m.handleMsg(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if got := m.dock.Pointer().Active; got != 3 {
		t.Fatalf("expected drag to reach 3, got %d", got)
	}

	// past the end of the row counts as leaving it
	m, _ = m.handleMsg(tea.MouseMsg{X: x + 200, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if got := m.dock.Pointer().Active; got != magnify.NoIndex {
		t.Fatalf("expected no active item past the row, got %d", got)
	}

	x, _ = slotCenter(m, 2)
	m, _ = m.handleMsg(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if got := m.dock.Pointer().Active; got != 2 {
		t.Fatalf("expected drag back into the row to reach 2, got %d", got)
	}

	m, _ = m.handleMsg(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if got := m.dock.Pointer(); got.Active != magnify.NoIndex || got.Mode != magnify.ModeNone {
		t.Fatalf("expected pointer cleared on release, got %+v", got)
	}
	if m.touching {
		t.Fatal("expected touching to be false after release")
	}
}

func TestMobileLeaveEndsTouch(t *testing.T) {
	m := newTestModel(t, config.Mobile)
	x, y := slotCenter(m, 1)
	m, _ = m.handleMsg(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	m, _ = m.handleMsg(tea.KeyMsg{Type: tea.KeyEsc})
	if m.touching {
		t.Fatal("expected esc to end the touch")
	}
	m, _ = m.handleMsg(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if got := m.dock.Pointer().Active; got != magnify.NoIndex {
		t.Fatalf("expected held motion after esc to be ignored, got %d", got)
	}

	m, _ = m.handleMsg(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = m.handleMsg(tea.KeyMsg{Type: tea.KeyRight})
	if m.touching {
		t.Fatal("expected keyboard stepping to end the touch")
	}
	if got := m.dock.Pointer(); got.Active != 2 || got.Mode != magnify.ModeIndirect {
		t.Fatalf("expected indirect pointer on 2, got %+v", got)
	}
	m, _ = m.handleMsg(tea.MouseMsg{X: 0, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if got := m.dock.Pointer().Active; got != 2 {
		t.Fatalf("expected held motion to leave the keyboard pointer alone, got %d", got)
	}
}

func TestWheelIgnored(t *testing.T) {
	m := newTestModel(t, config.Desktop)
	x, y := slotCenter(m, 1)
	m, cmd := m.handleMsg(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	if got := m.dock.Pointer().Active; got != magnify.NoIndex {
		t.Fatalf("expected wheel to be ignored, got %d", got)
	}
	if cmd != nil {
		t.Fatal("expected no frame for wheel events")
	}
}

func TestLayoutBoundsDegenerateTuning(t *testing.T) {
	cfg := magnify.DefaultConfig()
	cfg.Tiers = []magnify.Tier{{Distance: 0, Scale: 1e12, LiftY: -1e12}}
	outs := []magnify.Output{{Scale: 1}, {Scale: 1e12, LiftY: -1e12}}

	for _, px := range []float64{math.NaN(), 1e-300, 0, math.Inf(1)} {
		l := newLayout(cfg, px, len(outs), 80)
		if l.iconRows > maxIconRows || l.liftRows > maxLiftRows || l.liftRows < 0 {
			t.Fatalf("px %v: expected bounded rows, got icon %d lift %d", px, l.iconRows, l.liftRows)
		}
		if got := strings.Count(renderDock(outs, l), "\n"); got != l.boxHeight()-1 {
			t.Fatalf("px %v: expected %d lines, got %d", px, l.boxHeight(), got+1)
		}
	}
}

func TestMobilePressOutsideBoxIgnored(t *testing.T) {
	m := newTestModel(t, config.Mobile)
	m, _ = m.handleMsg(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.touching {
		t.Fatal("expected press outside the dock to be ignored")
	}
	if got := m.dock.Pointer().Active; got != magnify.NoIndex {
		t.Fatalf("expected no active item, got %d", got)
	}
}

func TestKeyboardStepsThroughItems(t *testing.T) {
	m := newTestModel(t, config.Desktop)
	right := tea.KeyMsg{Type: tea.KeyRight}
	left := tea.KeyMsg{Type: tea.KeyLeft}

	m, _ = m.handleMsg(right)
	if got := m.dock.Pointer().Active; got != 0 {
		t.Fatalf("expected first item, got %d", got)
	}
	m, _ = m.handleMsg(left)
	if got := m.dock.Pointer().Active; got != 0 {
		t.Fatalf("expected clamp at first item, got %d", got)
	}
	m, _ = m.handleMsg(tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = m.handleMsg(left)
	if got := m.dock.Pointer().Active; got != 7 {
		t.Fatalf("expected last item when entering from the right, got %d", got)
	}
}

func TestViewportSwitchReleasesSprings(t *testing.T) {
	m := newTestModel(t, config.Desktop)
	x, y := slotCenter(m, 2)
	m, _ = m.handleMsg(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion})
	if m.sched.Len() == 0 {
		t.Fatal("expected springs after hover")
	}

	m, _ = m.handleMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	if m.viewport != config.Mobile {
		t.Fatalf("expected mobile viewport, got %s", m.viewport)
	}
	if n := m.sched.Len(); n != 0 {
		t.Fatalf("expected springs released, got %d", n)
	}
	if n := len(m.dock.Items()); n != 4 {
		t.Fatalf("expected 4 items, got %d", n)
	}
	if got := m.dock.Geometry().ItemCount; got != 4 {
		t.Fatalf("expected geometry for 4 items, got %d", got)
	}
}

func TestQuitClosesDock(t *testing.T) {
	m := newTestModel(t, config.Desktop)
	x, y := slotCenter(m, 1)
	m, _ = m.handleMsg(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion})

	m, cmd := m.handleMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if !m.quitting {
		t.Fatal("expected quitting")
	}
	if n := m.sched.Len(); n != 0 {
		t.Fatalf("expected no springs after quit, got %d", n)
	}
	if _, cmd := m.handleMsg(frameMsg(time.Now())); cmd != nil {
		t.Fatal("expected no frame after quit")
	}
	if m.View() != "" {
		t.Fatal("expected empty view after quit")
	}
}

func TestConfigReloadFailureKeepsTuning(t *testing.T) {
	m := newTestModel(t, config.Desktop)
	before := m.dock.Config()

	m, cmd := m.handleMsg(ConfigReloadedMsg{Err: errors.New("boom")})
	if cmd == nil {
		t.Fatal("expected status expiry command")
	}
	if !strings.Contains(m.statusMsg, "boom") {
		t.Fatalf("expected error in status, got %q", m.statusMsg)
	}

	m, _ = m.handleMsg(ConfigReloadedMsg{Config: config.Config{}})
	if !strings.HasPrefix(m.statusMsg, "Reload failed") {
		t.Fatalf("expected rejected config, got %q", m.statusMsg)
	}
	if got := m.dock.Config(); got.Motion != before.Motion || len(got.Tiers) != len(before.Tiers) {
		t.Fatal("expected tuning to be kept")
	}
}

func TestConfigReloadAppliesItemsAndTuning(t *testing.T) {
	m := newTestModel(t, config.Desktop)
	cfg := config.Default()
	cfg.Motion.Stiffness = 300
	cfg.Items.Desktop = cfg.Items.Desktop[:5]

	m, _ = m.handleMsg(ConfigReloadedMsg{Config: cfg})
	if m.statusMsg != "Config reloaded" {
		t.Fatalf("expected reload status, got %q", m.statusMsg)
	}
	if got := m.dock.Config().Motion.Stiffness; got != 300 {
		t.Fatalf("expected stiffness 300, got %v", got)
	}
	if n := len(m.dock.Items()); n != 5 {
		t.Fatalf("expected 5 items, got %d", n)
	}
	if got := m.layout.count; got != 5 {
		t.Fatalf("expected layout for 5 items, got %d", got)
	}
}

func TestStatusExpiry(t *testing.T) {
	m := newTestModel(t, config.Desktop)
	m, _ = m.handleMsg(ConfigReloadedMsg{Err: errors.New("first")})
	seq := m.statusSeq
	m, _ = m.handleMsg(ConfigReloadedMsg{Err: errors.New("second")})

	m, _ = m.handleMsg(statusExpiredMsg{seq: seq})
	if m.statusMsg == "" {
		t.Fatal("expected stale expiry to be ignored")
	}
	m, _ = m.handleMsg(statusExpiredMsg{seq: m.statusSeq})
	if m.statusMsg != "" {
		t.Fatalf("expected status cleared, got %q", m.statusMsg)
	}
}

func TestViewShowsActiveItem(t *testing.T) {
	m := newTestModel(t, config.Desktop)
	m, _ = m.handleMsg(tea.WindowSizeMsg{Width: 120, Height: 40})
	x, y := slotCenter(m, 2)
	m, _ = m.handleMsg(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion})
	m = runFrames(t, m)

	view := m.View()
	if !strings.Contains(view, "Mail") {
		t.Fatal("expected hovered item name in view")
	}
	if !strings.Contains(view, "indirect") {
		t.Fatal("expected input mode in status line")
	}
}
