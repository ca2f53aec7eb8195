package outline

// Node is one entry of a document outline.
type Node struct {
	Name     string `json:"name"`
	Kind     Kind   `json:"kind"`
	Range    Range  `json:"range"`
	Detail   string `json:"detail,omitempty"`
	Children []Node `json:"children,omitempty"`
}

// Query selects the nearest node of one of Kinds enclosing Position.
type Query struct {
	Kinds    KindSet
	Position Position
}
