// Package host implements the collaborators an action talks to: the
// clipboard, named execution contexts (terminals) and the notification
// channel.
package host

import (
	"sync"

	"github.com/atotto/clipboard"
)

// Clipboard stores text for the user to paste.
type Clipboard interface {
	WriteText(text string) error
}

var (
	_ Clipboard = SystemClipboard{}
	_ Clipboard = (*MemoryClipboard)(nil)
)

// SystemClipboard writes to the OS clipboard through pbcopy, xclip, xsel,
// wl-copy or clip.exe, whichever the platform provides.
type SystemClipboard struct{}

func (SystemClipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}

// MemoryClipboard keeps the last written text. It is used when the system
// clipboard is disabled and by tests.
type MemoryClipboard struct {
	mu   sync.Mutex
	Text string
}

func (m *MemoryClipboard) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Text = text
	return nil
}
