package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// Globals are flags shared by every command.
type Globals struct {
	LogLevel string `help:"Log level (debug, info, warn, error). Overrides the config file." placeholder:"LEVEL"`
	NoColor  bool   `help:"Disable colour output"`
}

// logger builds the stderr logger. The flag wins over the configured level.
func (g *Globals) logger(w io.Writer, configured string) (*log.Logger, error) {
	name := configured
	if g.LogLevel != "" {
		name = g.LogLevel
	}
	if name == "" {
		name = "info"
	}
	level, err := log.ParseLevel(name)
	if err != nil {
		return nil, err
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "pokerengine",
		Level:           level,
	})
	if g.NoColor {
		logger.SetColorProfile(termenv.Ascii)
	}
	return logger, nil
}

// profile returns the colour profile for stdout rendering.
func (g *Globals) profile() termenv.Profile {
	if g.NoColor {
		return termenv.Ascii
	}
	return lipgloss.ColorProfile()
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
