package outline

import (
	"fmt"
	"strings"
)

// Dump renders the whole tree as indented text, marking every node whose
// range contains pos. Nothing is filtered.
func Dump(tree []Node, pos Position) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Cursor at: %s\n\n", pos)
	dumpNodes(&b, tree, pos, 0)
	return b.String()
}

func dumpNodes(b *strings.Builder, nodes []Node, pos Position, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		contains := ""
		if n.Range.Contains(pos) {
			contains = " [CONTAINS CURSOR]"
		}
		fmt.Fprintf(b, "%s%s (%s)%s\n", indent, n.Name, n.Kind, contains)
		fmt.Fprintf(b, "%s  Range: %s\n", indent, n.Range)
		if len(n.Children) > 0 {
			dumpNodes(b, n.Children, pos, depth+1)
		}
	}
}
