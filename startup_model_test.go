package main

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/springdock/internal/config"
	"github.com/olivier-w/springdock/internal/ui"
)

func TestStartupModelSelectionOpensDock(t *testing.T) {
	m := newStartupModel(config.Default())
	model, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	model, cmd := model.Update(ui.PickerSelectedMsg{Viewport: config.Mobile})
	if cmd == nil {
		t.Fatal("expected init command")
	}
	if _, ok := model.(ui.Model); !ok {
		t.Fatalf("expected ui.Model, got %T", model)
	}
}

func TestStartupModelSelectionErrorStaysInPicker(t *testing.T) {
	cfg := config.Default()
	cfg.Tiers = nil
	m := newStartupModel(cfg)

	model, cmd := m.Update(ui.PickerSelectedMsg{Viewport: config.Desktop})
	if cmd != nil {
		t.Fatal("expected no command on error")
	}
	startup, ok := model.(startupModel)
	if !ok {
		t.Fatalf("expected startupModel, got %T", model)
	}
	if startup.errMsg == "" {
		t.Fatal("expected error message")
	}
}

func TestStartupModelCancelQuits(t *testing.T) {
	_, cmd := newStartupModel(config.Default()).Update(ui.PickerCancelledMsg{})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestStartupModelTracksReloads(t *testing.T) {
	m := newStartupModel(config.Default())

	model, _ := m.Update(ui.ConfigReloadedMsg{Err: errors.New("bad toml")})
	startup := model.(startupModel)
	if startup.errMsg != "bad toml" {
		t.Fatalf("expected reload error, got %q", startup.errMsg)
	}

	cfg := config.Default()
	cfg.Items.Mobile = cfg.Items.Mobile[:2]
	model, _ = startup.Update(ui.ConfigReloadedMsg{Config: cfg})
	startup = model.(startupModel)
	if startup.errMsg != "" {
		t.Fatalf("expected error cleared, got %q", startup.errMsg)
	}
	if n := len(startup.cfg.Items.Mobile); n != 2 {
		t.Fatalf("expected 2 mobile items, got %d", n)
	}
}

func TestInitialModelWithViewport(t *testing.T) {
	model, err := initialModel(config.Default(), "Mobile")
	if err != nil {
		t.Fatalf("initialModel: %v", err)
	}
	if _, ok := model.(ui.Model); !ok {
		t.Fatalf("expected ui.Model, got %T", model)
	}

	if _, err := initialModel(config.Default(), "tablet"); !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}

	model, err = initialModel(config.Default(), "")
	if err != nil {
		t.Fatalf("initialModel: %v", err)
	}
	if _, ok := model.(startupModel); !ok {
		t.Fatalf("expected startupModel, got %T", model)
	}
}
