package host

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
)

// Terminal is a named execution context that runs command lines.
type Terminal interface {
	Name() string
	SendText(text string) error
	// Show brings the terminal to the user's attention.
	Show()
	// Exited reports whether the terminal can no longer run commands.
	Exited() bool
	Close() error
}

// TerminalFactory starts a new terminal with the given name.
type TerminalFactory func(name string) (Terminal, error)

// Terminals is the set of open terminals. Lookups are by name; the first
// live terminal with a matching name is reused.
type Terminals struct {
	mu      sync.Mutex
	open    []Terminal
	factory TerminalFactory
}

func NewTerminals(factory TerminalFactory) *Terminals {
	return &Terminals{factory: factory}
}

// Find returns the first live terminal named name, or nil.
func (ts *Terminals) Find(name string) Terminal {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.findLocked(name)
}

func (ts *Terminals) findLocked(name string) Terminal {
	for _, t := range ts.open {
		if t.Name() == name && !t.Exited() {
			return t
		}
	}
	return nil
}

// FindOrCreate reuses a live terminal named name or starts one.
func (ts *Terminals) FindOrCreate(name string) (Terminal, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if t := ts.findLocked(name); t != nil {
		return t, nil
	}
	return ts.createLocked(name)
}

// Create always starts a new terminal, even if one with the name exists.
func (ts *Terminals) Create(name string) (Terminal, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.createLocked(name)
}

func (ts *Terminals) createLocked(name string) (Terminal, error) {
	t, err := ts.factory(name)
	if err != nil {
		return nil, fmt.Errorf("failed to create terminal %q: %w", name, err)
	}
	ts.open = append(ts.open, t)
	return t, nil
}

// Len returns the number of terminals created so far, exited or not.
func (ts *Terminals) Len() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return len(ts.open)
}

// Close closes every terminal and waits for them to finish.
func (ts *Terminals) Close() error {
	ts.mu.Lock()
	open := ts.open
	ts.open = nil
	ts.mu.Unlock()

	var errs []error
	for _, t := range open {
		if err := t.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var _ Terminal = (*ShellTerminal)(nil)

// ShellTerminal is a long-running shell fed through its stdin.
type ShellTerminal struct {
	name  string
	cmd   *exec.Cmd
	stdin io.WriteCloser

	mu      sync.Mutex
	done    chan struct{}
	waitErr error
}

// ShellFactory returns a TerminalFactory that starts argv (e.g. /bin/sh)
// with its output sent to out.
func ShellFactory(argv []string, out io.Writer) TerminalFactory {
	return func(name string) (Terminal, error) {
		return StartShell(name, argv, out)
	}
}

// StartShell starts argv as a terminal named name.
func StartShell(name string, argv []string, out io.Writer) (*ShellTerminal, error) {
	if len(argv) == 0 {
		return nil, errors.New("shell command is empty")
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdout = out
	cmd.Stderr = out
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	t := &ShellTerminal{
		name:  name,
		cmd:   cmd,
		stdin: stdin,
		done:  make(chan struct{}),
	}
	go func() {
		t.waitErr = cmd.Wait()
		close(t.done)
	}()
	return t, nil
}

func (t *ShellTerminal) Name() string { return t.name }

func (t *ShellTerminal) Exited() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Show is a no-op: the shell's output is already attached to the host.
func (t *ShellTerminal) Show() {}

// SendText writes text as one command line.
func (t *ShellTerminal) SendText(text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Exited() {
		return ErrTerminalExited
	}
	if _, err := io.WriteString(t.stdin, text+"\n"); err != nil {
		return fmt.Errorf("failed to send to terminal %q: %w", t.name, err)
	}
	return nil
}

// Close ends the shell's input and waits for pending commands to finish.
// The shell's exit status is returned as an *exec.ExitError.
func (t *ShellTerminal) Close() error {
	t.mu.Lock()
	_ = t.stdin.Close()
	t.mu.Unlock()
	<-t.done
	return t.waitErr
}
