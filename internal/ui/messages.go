package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/springdock/internal/config"
)

type frameMsg time.Time

// ConfigReloadedMsg carries a configuration re-read from disk. Err is set
// when the file could not be loaded; the running tuning is kept then.
type ConfigReloadedMsg struct {
	Config config.Config
	Err    error
}

func frameCmd(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}
