// Package symbol builds document outlines for Go source files with go/ast.
// It stands in for a language server when none is configured.
package symbol

import (
	"unicode/utf16"

	"github.com/0muji4/symbolnav/internal/outline"
)

// positionAt converts a byte offset into an outline position counting
// characters in UTF-16 units.
func positionAt(src []byte, offset int) outline.Position {
	if offset > len(src) {
		offset = len(src)
	}
	line, lineStart := 0, 0
	for i := 0; i < offset; i++ {
		if src[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	units := 0
	for _, r := range string(src[lineStart:offset]) {
		units += utf16.RuneLen(r)
	}
	return outline.Position{Line: line, Character: units}
}
