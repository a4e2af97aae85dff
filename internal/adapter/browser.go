package adapter

import (
	"errors"
	"log/slog"
	"os/exec"
	"runtime"
)

// Browser opens item pages in an external program
type Browser struct {
	command string   // configured browser command, empty for system default
	args    []string // additional arguments placed before the URL
	logger  *slog.Logger

	// start runs cmd without waiting for it
	start func(cmd *exec.Cmd) error
}

// NewBrowser creates a Browser. An empty command uses the platform opener.
func NewBrowser(cfg BrowserConfig, logger *slog.Logger) *Browser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Browser{
		command: cfg.Command,
		args:    cfg.Args,
		logger:  logger,
		start:   (*exec.Cmd).Start,
	}
}

// Open launches url and returns as soon as the program started
func (b *Browser) Open(url string) error {
	if url == "" {
		return errors.New("item has no page")
	}
	cmd := b.buildCommand(url)
	b.logger.Info("opening page", "command", cmd.Path, "args", cmd.Args[1:])
	return b.start(cmd)
}

// buildCommand builds the configured command or falls back to the system default handler
func (b *Browser) buildCommand(url string) *exec.Cmd {
	if b.command != "" {
		args := append(append([]string{}, b.args...), url)
		return exec.Command(b.command, args...)
	}

	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url)
	case "windows":
		return exec.Command("cmd", "/c", "start", "", url)
	default:
		// Linux and other Unix-like systems
		return exec.Command("xdg-open", url)
	}
}
