package host

import "errors"

var (
	// ErrClipboardUnsupported is returned when no clipboard utility exists
	// on the host.
	ErrClipboardUnsupported = errors.New("system clipboard is not available")

	// ErrTerminalExited is returned when sending to a terminal whose shell
	// has already exited.
	ErrTerminalExited = errors.New("terminal has exited")
)
