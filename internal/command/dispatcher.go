// Package command runs user actions: it resolves the symbol nearest to the
// cursor and then runs, copies or shows it.
package command

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/0muji4/symbolnav/internal/editor"
	"github.com/0muji4/symbolnav/internal/host"
	"github.com/0muji4/symbolnav/internal/lsp"
	"github.com/0muji4/symbolnav/internal/outline"
)

// Result describes what a successful action did.
type Result struct {
	// Symbol is the resolved node; nil for DebugSymbols.
	Symbol *outline.Node
	// Output is the action's payload: the test command, the copied source,
	// the signature or the tree dump.
	Output string
	// Message is the notification shown to the user, if any.
	Message string
}

// Options configures a Dispatcher.
type Options struct {
	TestRunner   string
	TerminalName string
}

// Dispatcher maps actions onto the resolver and the host collaborators.
type Dispatcher struct {
	provider  lsp.OutlineProvider
	clipboard host.Clipboard
	terminals *host.Terminals
	notifier  host.Notifier
	scratch   io.Writer
	opts      Options
	logger    *slog.Logger
}

// New wires a Dispatcher. scratch receives tree dumps.
func New(
	provider lsp.OutlineProvider,
	clipboard host.Clipboard,
	terminals *host.Terminals,
	notifier host.Notifier,
	scratch io.Writer,
	opts Options,
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		provider:  provider,
		clipboard: clipboard,
		terminals: terminals,
		notifier:  notifier,
		scratch:   scratch,
		opts:      opts,
		logger:    logger,
	}
}

// Run executes action against ed. A nil ed means no document is active.
// Every failure is reported once through the notifier and returned.
func (d *Dispatcher) Run(action Action, ed editor.Context) (*Result, error) {
	res, err := d.run(action, ed)
	if err != nil {
		d.logger.Warn("action failed", "action", action, "err", err)
		msg := UserMessage(action, err)
		if action == ShowSignature {
			d.notifier.Info(msg, false)
		} else {
			d.notifier.Error(msg)
		}
		return nil, err
	}
	if res.Message != "" {
		d.notifier.Info(res.Message, action == ShowSignature)
	}
	return res, nil
}

func (d *Dispatcher) run(action Action, ed editor.Context) (*Result, error) {
	if ed == nil {
		return nil, ErrNoActiveContext
	}
	if action == DebugSymbols {
		return d.debugSymbols(ed)
	}

	kinds := action.Kinds()
	if kinds == nil {
		return nil, fmt.Errorf("unknown action %q", action)
	}
	sym, err := d.resolve(ed, kinds)
	if err != nil {
		return nil, err
	}
	d.logger.Info("resolved symbol",
		"action", action, "name", sym.Name, "kind", sym.Kind, "range", sym.Range.String())

	switch action {
	case RunTest, RunTestNewTerminal:
		return d.runTest(ed, sym, action == RunTestNewTerminal)
	case CopyTestCommand:
		cmd := TestCommand(d.opts.TestRunner, ed.FilePath(), sym.Name)
		if err := d.clipboard.WriteText(cmd); err != nil {
			return nil, fmt.Errorf("failed to copy test command: %w", err)
		}
		return &Result{Symbol: sym, Output: cmd, Message: "Test command copied to clipboard"}, nil
	case CopyFunction, CopyClass:
		text := ed.Text(sym.Range)
		if err := d.clipboard.WriteText(text); err != nil {
			return nil, fmt.Errorf("failed to copy %s: %w", sym.Kind, err)
		}
		return &Result{Symbol: sym, Output: text, Message: fmt.Sprintf("%s copied to clipboard", sym.Kind)}, nil
	case ShowSignature:
		sig := outline.Signature(sym)
		return &Result{
			Symbol:  sym,
			Output:  sig,
			Message: fmt.Sprintf("🔹 %s\n🔹 File: %s", sig, ed.FilePath()),
		}, nil
	}
	return nil, fmt.Errorf("unknown action %q", action)
}

// resolve fetches a fresh outline and finds the nearest node of kinds
// around the cursor captured in ed.
func (d *Dispatcher) resolve(ed editor.Context, kinds outline.KindSet) (*outline.Node, error) {
	pos := ed.Cursor()
	tree, err := d.outline(ed)
	if err != nil {
		return nil, err
	}
	sym := outline.Resolve(tree, outline.Query{Kinds: kinds, Position: pos})
	if sym == nil {
		return nil, &NoMatchError{Kinds: kinds}
	}
	return sym, nil
}

func (d *Dispatcher) outline(ed editor.Context) ([]outline.Node, error) {
	tree, err := d.provider.DocumentSymbols(ed.FilePath())
	if err != nil {
		return nil, fmt.Errorf("failed to get document symbols: %w", err)
	}
	if tree == nil {
		return nil, ErrNoOutline
	}
	return tree, nil
}

func (d *Dispatcher) runTest(ed editor.Context, sym *outline.Node, newTerminal bool) (*Result, error) {
	cmd := TestCommand(d.opts.TestRunner, ed.FilePath(), sym.Name)

	var (
		term host.Terminal
		err  error
	)
	if newTerminal {
		term, err = d.terminals.Create(d.opts.TerminalName)
	} else {
		term, err = d.terminals.FindOrCreate(d.opts.TerminalName)
	}
	if err != nil {
		return nil, err
	}
	term.Show()
	if err := term.SendText(cmd); err != nil {
		return nil, err
	}

	d.logger.Info("test started", "terminal", term.Name(), "command", cmd)
	return &Result{Symbol: sym, Output: cmd}, nil
}

func (d *Dispatcher) debugSymbols(ed editor.Context) (*Result, error) {
	pos := ed.Cursor()
	tree, err := d.outline(ed)
	if err != nil {
		return nil, err
	}
	dump := outline.Dump(tree, pos)
	if _, err := io.WriteString(d.scratch, dump); err != nil {
		return nil, fmt.Errorf("failed to write symbol dump: %w", err)
	}
	return &Result{Output: dump}, nil
}
