// Package app assembles a command.Dispatcher from a configuration.
package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/0muji4/symbolnav/internal/command"
	"github.com/0muji4/symbolnav/internal/config"
	"github.com/0muji4/symbolnav/internal/host"
	"github.com/0muji4/symbolnav/internal/lsp"
	"github.com/0muji4/symbolnav/internal/symbol"
)

// IO is where an assembled dispatcher sends its output.
type IO struct {
	// Terminal receives the output of execution contexts.
	Terminal io.Writer
	// Scratch receives symbol dumps.
	Scratch io.Writer
	// Notify receives user notifications.
	Notify io.Writer
}

// App owns the long-lived pieces behind a Dispatcher.
type App struct {
	Dispatcher *command.Dispatcher
	Clipboard  host.Clipboard
	provider   lsp.OutlineProvider
	terminals  *host.Terminals
}

// New starts the configured outline provider and wires a Dispatcher.
func New(cfg *config.Config, rootPath string, out IO, logger *slog.Logger) (*App, error) {
	provider, err := NewProvider(cfg, rootPath)
	if err != nil {
		return nil, err
	}

	var clip host.Clipboard = host.SystemClipboard{}
	if !cfg.UseSystemClipboard {
		clip = &host.MemoryClipboard{}
	}
	terminals := host.NewTerminals(host.ShellFactory(cfg.Shell, out.Terminal))

	d := command.New(
		provider,
		clip,
		terminals,
		host.NewLogNotifier(out.Notify, logger),
		out.Scratch,
		command.Options{TestRunner: cfg.TestRunner, TerminalName: cfg.TerminalName},
		logger,
	)
	return &App{
		Dispatcher: d,
		Clipboard:  clip,
		provider:   provider,
		terminals:  terminals,
	}, nil
}

// NewProvider returns the outline provider selected by cfg.
func NewProvider(cfg *config.Config, rootPath string) (lsp.OutlineProvider, error) {
	switch cfg.Provider {
	case config.ProviderAST:
		return symbol.NewASTProvider(), nil
	case config.ProviderLSP:
		client, err := lsp.NewClient(rootPath, cfg.LanguageServer)
		if err != nil {
			return nil, fmt.Errorf("failed to start language server: %w", err)
		}
		return client, nil
	}
	return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
}

// Close waits for running terminals and stops the provider. A non-zero
// exit of the last terminal command surfaces as an *exec.ExitError.
func (a *App) Close() error {
	return errors.Join(a.terminals.Close(), a.provider.Close())
}
