package command

import (
	"errors"
	"fmt"

	"github.com/0muji4/symbolnav/internal/outline"
)

var (
	// ErrNoActiveContext means no document is in focus.
	ErrNoActiveContext = errors.New("no active editor")
	// ErrNoOutline means the provider returned no outline for the document.
	ErrNoOutline = errors.New("no symbols found")
)

// NoMatchError means the outline has no node of the requested kinds
// enclosing the cursor.
type NoMatchError struct {
	Kinds outline.KindSet
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no parent %s found", e.Kinds)
}

const debugHint = `Run "Debug Symbols" command to see available symbols.`

// UserMessage is the notification text for an action that failed with err.
func UserMessage(action Action, err error) string {
	var noMatch *NoMatchError
	switch {
	case errors.Is(err, ErrNoActiveContext):
		return "No active editor"
	case errors.Is(err, ErrNoOutline):
		if action == DebugSymbols {
			return "No symbols found"
		}
		return "No symbols found. " + debugHint
	case errors.As(err, &noMatch):
		switch action {
		case RunTest, RunTestNewTerminal:
			return "No test function found. " + debugHint
		case CopyTestCommand:
			return "No test function found"
		case ShowSignature:
			return "No signature found at cursor"
		default:
			return fmt.Sprintf("No parent %s found", noMatch.Kinds)
		}
	}
	return err.Error()
}
