package command

import (
	"fmt"

	"github.com/0muji4/symbolnav/internal/outline"
)

// Action is a user-invocable command.
type Action string

const (
	RunTest            Action = "run-test"
	RunTestNewTerminal Action = "run-test-new"
	CopyTestCommand    Action = "copy-test-command"
	CopyFunction       Action = "copy-function"
	CopyClass          Action = "copy-class"
	ShowSignature      Action = "show-signature"
	DebugSymbols       Action = "debug-symbols"
)

// Actions lists every action in display order.
var Actions = []Action{
	RunTest,
	RunTestNewTerminal,
	CopyTestCommand,
	CopyFunction,
	CopyClass,
	ShowSignature,
	DebugSymbols,
}

// ParseAction looks an action up by name.
func ParseAction(name string) (Action, error) {
	for _, a := range Actions {
		if string(a) == name {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown action %q", name)
}

// Kinds is the set of symbol kinds the action resolves. DebugSymbols
// resolves nothing and returns nil.
func (a Action) Kinds() outline.KindSet {
	switch a {
	case RunTest, RunTestNewTerminal, CopyTestCommand, CopyFunction:
		return outline.Callables
	case CopyClass:
		return outline.Classes
	case ShowSignature:
		return outline.Signatures
	}
	return nil
}

// TestCommand builds the command line that runs a single test.
// Quotes inside path or name are not escaped.
func TestCommand(runner, path, name string) string {
	return fmt.Sprintf(`%s "%s" -k "%s"`, runner, path, name)
}
