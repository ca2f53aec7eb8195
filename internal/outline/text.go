package outline

import (
	"strings"
	"unicode/utf16"
)

// Extract returns the part of text spanned by r. Characters are UTF-16 code
// units; coordinates past the end of a line or of the document are clamped.
func Extract(text string, r Range) string {
	start := Offset(text, r.Start)
	end := Offset(text, r.End)
	if end < start {
		return ""
	}
	return text[start:end]
}

// Offset converts p into a byte offset into text.
func Offset(text string, p Position) int {
	if p.Line < 0 {
		return 0
	}
	off := 0
	for line := 0; line < p.Line; line++ {
		nl := strings.IndexByte(text[off:], '\n')
		if nl < 0 {
			return len(text)
		}
		off += nl + 1
	}

	lineEnd := strings.IndexByte(text[off:], '\n')
	if lineEnd < 0 {
		lineEnd = len(text) - off
	}
	units := 0
	for i, r := range text[off : off+lineEnd] {
		if units >= p.Character {
			return off + i
		}
		units += utf16.RuneLen(r)
	}
	return off + lineEnd
}

// Signature renders a node as "name" or "name detail".
func Signature(n *Node) string {
	if n.Detail == "" {
		return n.Name
	}
	return n.Name + " " + n.Detail
}
