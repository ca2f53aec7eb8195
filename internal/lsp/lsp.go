package lsp

import "github.com/0muji4/symbolnav/internal/outline"

// OutlineProvider returns the symbol outline of a source file.
// A nil tree with a nil error means the server had no outline for it.
type OutlineProvider interface {
	DocumentSymbols(filePath string) ([]outline.Node, error)
	Close() error
}
