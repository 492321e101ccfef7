package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/springdock/internal/config"
	"github.com/olivier-w/springdock/internal/ui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("springdock", flag.ContinueOnError)
	configPath := fs.String("config", config.DefaultPath, "path to the TOML configuration")
	viewport := fs.String("viewport", "", "open directly in this viewport class (desktop or mobile)")
	watch := fs.Bool("watch", false, "reload the configuration when the file changes")
	logPath := fs.String("log", "", "append debug logs to this file")
	writeConfig := fs.Bool("write-config", false, "write the effective configuration and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if *logPath != "" {
		f, err := tea.LogToFile(*logPath, "springdock")
		if err != nil {
			return fmt.Errorf("failed to open log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	if *writeConfig {
		if err := config.Save(*configPath, cfg); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", *configPath)
		return nil
	}

	model, err := initialModel(cfg, *viewport)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())

	if *watch {
		w, err := config.Watch(*configPath, config.DefaultDebounce, func(c config.Config, err error) {
			p.Send(ui.ConfigReloadedMsg{Config: c, Err: err})
		})
		if err != nil {
			return err
		}
		defer w.Close()
		log.Printf("watching %s", *configPath)
	}

	final, err := p.Run()
	if m, ok := final.(ui.Model); ok {
		m.Close()
	}
	return err
}

// initialModel opens the dock directly when a viewport was given and the
// picker otherwise.
func initialModel(cfg config.Config, viewport string) (tea.Model, error) {
	if viewport == "" {
		return newStartupModel(cfg), nil
	}
	vp, err := config.ParseViewport(viewport)
	if err != nil {
		return nil, err
	}
	cfg.Viewport = vp
	m, err := ui.New(cfg, vp)
	if err != nil {
		return nil, err
	}
	return m, nil
}
