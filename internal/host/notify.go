package host

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Notifier shows messages to the user.
type Notifier interface {
	// Info shows an informational message. Modal messages wait for the
	// user's acknowledgement in hosts that support it.
	Info(msg string, modal bool)
	Error(msg string)
}

var (
	_ Notifier = (*LogNotifier)(nil)
	_ Notifier = (*Recorder)(nil)
)

// LogNotifier prints messages to out and records them in the log.
type LogNotifier struct {
	out    io.Writer
	logger *slog.Logger
}

func NewLogNotifier(out io.Writer, logger *slog.Logger) *LogNotifier {
	return &LogNotifier{out: out, logger: logger}
}

func (n *LogNotifier) Info(msg string, modal bool) {
	n.logger.Info("notify", "message", msg, "modal", modal)
	fmt.Fprintln(n.out, msg)
}

func (n *LogNotifier) Error(msg string) {
	n.logger.Error("notify", "message", msg)
	fmt.Fprintln(n.out, msg)
}

// Level tells info and error notifications apart.
type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Message is one notification captured by a Recorder.
type Message struct {
	Level Level
	Text  string
	Modal bool
}

// Recorder collects notifications instead of showing them.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

func (r *Recorder) Info(msg string, modal bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Level: LevelInfo, Text: msg, Modal: modal})
}

func (r *Recorder) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Level: LevelError, Text: msg})
}

// Messages returns a copy of everything recorded so far.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.messages...)
}
