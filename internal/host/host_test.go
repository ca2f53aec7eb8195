package host

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTerminal struct {
	name   string
	sent   []string
	exited bool
}

func (f *fakeTerminal) Name() string               { return f.name }
func (f *fakeTerminal) SendText(text string) error { f.sent = append(f.sent, text); return nil }
func (f *fakeTerminal) Show()                      {}
func (f *fakeTerminal) Exited() bool               { return f.exited }
func (f *fakeTerminal) Close() error               { return nil }

func fakeFactory() (TerminalFactory, *[]*fakeTerminal) {
	var created []*fakeTerminal
	return func(name string) (Terminal, error) {
		t := &fakeTerminal{name: name}
		created = append(created, t)
		return t, nil
	}, &created
}

func TestTerminals_FindOrCreate(t *testing.T) {
	factory, created := fakeFactory()
	ts := NewTerminals(factory)

	assert.Nil(t, ts.Find("Test Runner"))

	a, err := ts.FindOrCreate("Test Runner")
	require.NoError(t, err)
	b, err := ts.FindOrCreate("Test Runner")
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Len(t, *created, 1)

	c, err := ts.Create("Test Runner")
	require.NoError(t, err)
	assert.NotSame(t, a, c)
	assert.Equal(t, 2, ts.Len())

	// The first terminal with the name keeps being reused.
	d, err := ts.FindOrCreate("Test Runner")
	require.NoError(t, err)
	assert.Same(t, a, d)
}

func TestTerminals_SkipsExited(t *testing.T) {
	factory, _ := fakeFactory()
	ts := NewTerminals(factory)

	a, err := ts.FindOrCreate("Test Runner")
	require.NoError(t, err)
	a.(*fakeTerminal).exited = true

	b, err := ts.FindOrCreate("Test Runner")
	require.NoError(t, err)
	assert.NotSame(t, a, b)
}

func TestTerminals_FactoryError(t *testing.T) {
	ts := NewTerminals(func(string) (Terminal, error) { return nil, errors.New("boom") })
	_, err := ts.FindOrCreate("x")
	assert.ErrorContains(t, err, "boom")
	assert.Equal(t, 0, ts.Len())
}

type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func TestShellTerminal(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	var out syncBuffer
	term, err := StartShell("Test Runner", []string{"sh"}, &out)
	require.NoError(t, err)

	require.NoError(t, term.SendText(`echo "hello from shell"`))
	require.NoError(t, term.Close())
	assert.True(t, term.Exited())
	assert.Equal(t, "hello from shell\n", out.String())
	assert.ErrorIs(t, term.SendText("echo again"), ErrTerminalExited)
}

func TestShellTerminal_ExitStatus(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	term, err := StartShell("t", []string{"sh"}, io.Discard)
	require.NoError(t, err)
	require.NoError(t, term.SendText("exit 3"))

	var exitErr *exec.ExitError
	require.ErrorAs(t, term.Close(), &exitErr)
	assert.Equal(t, 3, exitErr.ExitCode())
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Info("copied", false)
	r.Error("no match")
	r.Info("sig", true)

	assert.Equal(t, []Message{
		{Level: LevelInfo, Text: "copied"},
		{Level: LevelError, Text: "no match"},
		{Level: LevelInfo, Text: "sig", Modal: true},
	}, r.Messages())
}

func TestLogNotifier(t *testing.T) {
	var out, logs bytes.Buffer
	n := NewLogNotifier(&out, slog.New(slog.NewTextHandler(&logs, nil)))
	n.Info("Test command copied to clipboard", false)
	n.Error("No parent Class found")

	assert.Equal(t, "Test command copied to clipboard\nNo parent Class found\n", out.String())
	assert.True(t, strings.Contains(logs.String(), "level=ERROR"))
}

func TestMemoryClipboard(t *testing.T) {
	var c MemoryClipboard
	require.NoError(t, c.WriteText("abc"))
	assert.Equal(t, "abc", c.Text)
}
