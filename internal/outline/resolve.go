package outline

// Resolve returns the deepest node whose range contains q.Position and whose
// kind is in q.Kinds, or nil.
//
// Siblings are visited in order. A node that contains the position becomes
// the candidate for its level when its kind matches; its children are searched
// either way, and the first match found below wins outright. When no deeper
// match exists the last matching candidate of the level is returned.
func Resolve(tree []Node, q Query) *Node {
	var best *Node
	for i := range tree {
		n := &tree[i]
		if !n.Range.Contains(q.Position) {
			continue
		}
		if q.Kinds.Has(n.Kind) {
			best = n
		}
		if child := Resolve(n.Children, q); child != nil {
			return child
		}
	}
	return best
}
