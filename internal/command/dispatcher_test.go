package command

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0muji4/symbolnav/internal/editor"
	"github.com/0muji4/symbolnav/internal/host"
	"github.com/0muji4/symbolnav/internal/outline"
)

const testPy = `class TestAuth:
    def setup(self):
        self.user = "u"

    def test_login(self):
        assert login(self.user)

def test_logout():
    assert logout()
`

func pos(line, char int) outline.Position {
	return outline.Position{Line: line, Character: char}
}

func span(sl, sc, el, ec int) outline.Range {
	return outline.Range{Start: pos(sl, sc), End: pos(el, ec)}
}

func testTree() []outline.Node {
	return []outline.Node{
		{Name: "TestAuth", Kind: outline.KindClass, Range: span(0, 0, 5, 31), Children: []outline.Node{
			{Name: "setup", Kind: outline.KindMethod, Range: span(1, 4, 2, 24), Detail: "(self)"},
			{Name: "test_login", Kind: outline.KindMethod, Range: span(4, 4, 5, 31), Detail: "(self)"},
		}},
		{Name: "test_logout", Kind: outline.KindFunction, Range: span(7, 0, 8, 19)},
	}
}

type fakeProvider struct {
	tree  []outline.Node
	err   error
	calls int
}

func (f *fakeProvider) DocumentSymbols(string) ([]outline.Node, error) {
	f.calls++
	return f.tree, f.err
}

func (f *fakeProvider) Close() error { return nil }

type fakeTerminal struct {
	name  string
	sent  []string
	shown int
}

func (f *fakeTerminal) Name() string { return f.name }
func (f *fakeTerminal) SendText(text string) error {
	f.sent = append(f.sent, text)
	return nil
}
func (f *fakeTerminal) Show()        { f.shown++ }
func (f *fakeTerminal) Exited() bool { return false }
func (f *fakeTerminal) Close() error { return nil }

type failingClipboard struct{}

func (failingClipboard) WriteText(string) error { return host.ErrClipboardUnsupported }

type fixture struct {
	d         *Dispatcher
	provider  *fakeProvider
	clipboard *host.MemoryClipboard
	notes     *host.Recorder
	created   []*fakeTerminal
	scratch   *bytes.Buffer
}

func newFixture(tree []outline.Node) *fixture {
	f := &fixture{
		provider:  &fakeProvider{tree: tree},
		clipboard: &host.MemoryClipboard{},
		notes:     &host.Recorder{},
		scratch:   &bytes.Buffer{},
	}
	terms := host.NewTerminals(func(name string) (host.Terminal, error) {
		t := &fakeTerminal{name: name}
		f.created = append(f.created, t)
		return t, nil
	})
	f.d = New(f.provider, f.clipboard, terms, f.notes, f.scratch,
		Options{TestRunner: "pytest", TerminalName: "Test Runner"},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	return f
}

func doc(p outline.Position) editor.Context {
	return editor.NewDocument("/tmp/test_auth.py", testPy, p)
}

func TestTestCommand(t *testing.T) {
	assert.Equal(t, `test-runner "/tmp/test.py" -k "test_login"`,
		TestCommand("test-runner", "/tmp/test.py", "test_login"))
}

func TestRunTest_ReusesTerminal(t *testing.T) {
	f := newFixture(testTree())

	res, err := f.d.Run(RunTest, doc(pos(5, 8)))
	require.NoError(t, err)
	assert.Equal(t, `pytest "/tmp/test_auth.py" -k "test_login"`, res.Output)
	assert.Equal(t, "test_login", res.Symbol.Name)

	_, err = f.d.Run(RunTest, doc(pos(8, 4)))
	require.NoError(t, err)

	require.Len(t, f.created, 1)
	assert.Equal(t, "Test Runner", f.created[0].name)
	assert.Equal(t, []string{
		`pytest "/tmp/test_auth.py" -k "test_login"`,
		`pytest "/tmp/test_auth.py" -k "test_logout"`,
	}, f.created[0].sent)
	assert.Equal(t, 2, f.created[0].shown)
	assert.Empty(t, f.notes.Messages())
}

func TestRunTest_NewTerminal(t *testing.T) {
	f := newFixture(testTree())

	_, err := f.d.Run(RunTest, doc(pos(5, 8)))
	require.NoError(t, err)
	_, err = f.d.Run(RunTestNewTerminal, doc(pos(5, 8)))
	require.NoError(t, err)

	require.Len(t, f.created, 2)
	assert.Len(t, f.created[1].sent, 1)
	assert.Equal(t, 1, f.created[1].shown)
}

func TestRunTest_NoMatch(t *testing.T) {
	f := newFixture(testTree())

	_, err := f.d.Run(RunTest, doc(pos(3, 0)))
	var noMatch *NoMatchError
	require.ErrorAs(t, err, &noMatch)
	assert.Equal(t, outline.Callables, noMatch.Kinds)
	assert.Empty(t, f.created)
	assert.Equal(t, []host.Message{{
		Level: host.LevelError,
		Text:  `No test function found. Run "Debug Symbols" command to see available symbols.`,
	}}, f.notes.Messages())
}

func TestCopyTestCommand(t *testing.T) {
	f := newFixture(testTree())

	res, err := f.d.Run(CopyTestCommand, doc(pos(8, 0)))
	require.NoError(t, err)
	assert.Equal(t, `pytest "/tmp/test_auth.py" -k "test_logout"`, f.clipboard.Text)
	assert.Equal(t, f.clipboard.Text, res.Output)
	assert.Equal(t, []host.Message{{Level: host.LevelInfo, Text: "Test command copied to clipboard"}}, f.notes.Messages())
}

func TestCopyFunction(t *testing.T) {
	f := newFixture(testTree())

	_, err := f.d.Run(CopyFunction, doc(pos(2, 10)))
	require.NoError(t, err)
	assert.Equal(t, "def setup(self):\n        self.user = \"u\"", f.clipboard.Text)
	assert.Equal(t, "Method copied to clipboard", f.notes.Messages()[0].Text)
}

func TestCopyClass(t *testing.T) {
	f := newFixture(testTree())

	res, err := f.d.Run(CopyClass, doc(pos(4, 6)))
	require.NoError(t, err)
	assert.Equal(t, "TestAuth", res.Symbol.Name)
	assert.True(t, len(f.clipboard.Text) > 0)
	assert.Contains(t, f.clipboard.Text, "class TestAuth:")
	assert.Contains(t, f.clipboard.Text, "assert login(self.user)")
	assert.Equal(t, "Class copied to clipboard", f.notes.Messages()[0].Text)

	f.notes = &host.Recorder{}
	f.d.notifier = f.notes
	_, err = f.d.Run(CopyClass, doc(pos(8, 0)))
	require.Error(t, err)
	assert.Equal(t, "No parent Class found", f.notes.Messages()[0].Text)
}

func TestCopy_ClipboardFailure(t *testing.T) {
	f := newFixture(testTree())
	f.d.clipboard = failingClipboard{}

	_, err := f.d.Run(CopyFunction, doc(pos(8, 0)))
	assert.ErrorIs(t, err, host.ErrClipboardUnsupported)
	assert.Equal(t, host.LevelError, f.notes.Messages()[0].Level)
}

func TestShowSignature(t *testing.T) {
	f := newFixture(testTree())

	res, err := f.d.Run(ShowSignature, doc(pos(5, 0)))
	require.NoError(t, err)
	assert.Equal(t, "test_login (self)", res.Output)
	assert.Equal(t, []host.Message{{
		Level: host.LevelInfo,
		Text:  "🔹 test_login (self)\n🔹 File: /tmp/test_auth.py",
		Modal: true,
	}}, f.notes.Messages())
}

func TestShowSignature_ClassWithoutDetail(t *testing.T) {
	f := newFixture(testTree())

	res, err := f.d.Run(ShowSignature, doc(pos(3, 0)))
	require.NoError(t, err)
	assert.Equal(t, "TestAuth", res.Output)
}

func TestShowSignature_NoMatchIsInformational(t *testing.T) {
	f := newFixture(testTree())

	_, err := f.d.Run(ShowSignature, doc(pos(6, 0)))
	require.Error(t, err)
	assert.Equal(t, []host.Message{{Level: host.LevelInfo, Text: "No signature found at cursor"}}, f.notes.Messages())
}

func TestDebugSymbols(t *testing.T) {
	f := newFixture(testTree())

	res, err := f.d.Run(DebugSymbols, doc(pos(5, 0)))
	require.NoError(t, err)
	assert.Equal(t, res.Output, f.scratch.String())
	assert.Contains(t, res.Output, "Cursor at: 5:0\n\n")
	assert.Contains(t, res.Output, "TestAuth (Class) [CONTAINS CURSOR]\n")
	assert.Contains(t, res.Output, "  setup (Method)\n")
	assert.Contains(t, res.Output, "  test_login (Method) [CONTAINS CURSOR]\n")
	assert.Contains(t, res.Output, "test_logout (Function)\n")
}

func TestNoActiveContext(t *testing.T) {
	for _, action := range Actions {
		t.Run(string(action), func(t *testing.T) {
			f := newFixture(testTree())

			_, err := f.d.Run(action, nil)
			assert.ErrorIs(t, err, ErrNoActiveContext)
			assert.Equal(t, 0, f.provider.calls)
			assert.Equal(t, "No active editor", f.notes.Messages()[0].Text)
		})
	}
}

func TestNoOutline(t *testing.T) {
	f := newFixture(nil)

	_, err := f.d.Run(CopyFunction, doc(pos(0, 0)))
	assert.ErrorIs(t, err, ErrNoOutline)
	assert.Equal(t, `No symbols found. Run "Debug Symbols" command to see available symbols.`, f.notes.Messages()[0].Text)

	_, err = f.d.Run(DebugSymbols, doc(pos(0, 0)))
	assert.ErrorIs(t, err, ErrNoOutline)
	assert.Equal(t, "No symbols found", f.notes.Messages()[1].Text)
	assert.Empty(t, f.clipboard.Text)
}

func TestEmptyOutlineIsNoMatch(t *testing.T) {
	f := newFixture([]outline.Node{})

	_, err := f.d.Run(CopyTestCommand, doc(pos(0, 0)))
	var noMatch *NoMatchError
	assert.ErrorAs(t, err, &noMatch)
	assert.Equal(t, "No test function found", f.notes.Messages()[0].Text)
}

func TestProviderError(t *testing.T) {
	f := newFixture(nil)
	f.provider.err = errors.New("server crashed")

	_, err := f.d.Run(RunTest, doc(pos(0, 0)))
	assert.ErrorContains(t, err, "server crashed")
	assert.Empty(t, f.created)
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction("copy-class")
	require.NoError(t, err)
	assert.Equal(t, CopyClass, a)

	_, err = ParseAction("explode")
	assert.Error(t, err)
}
