package model

// LayerNode is one entry of the server's layer menu.
//
// At the top of the document the node is the server itself; below it come
// datasets (label and children, no id), then variables and sub-variables.
type LayerNode struct {
	Label     string      `json:"label"`
	ID        string      `json:"id,omitempty"`
	Plottable *bool       `json:"plottable,omitempty"`
	Children  []LayerNode `json:"children,omitempty"`
}

// IsBranch reports whether the node only groups other nodes.
// Nodes without an id cannot be requested from the server.
func (n LayerNode) IsBranch() bool {
	return n.ID == ""
}

// IsPlottable reports whether the node can be drawn by a GetMap request.
// A node with an id and no explicit flag is plottable.
func (n LayerNode) IsPlottable() bool {
	if n.IsBranch() {
		return false
	}
	if n.Plottable == nil {
		return true
	}
	return *n.Plottable
}

// HasChildren reports whether the node has at least one child.
func (n LayerNode) HasChildren() bool {
	return len(n.Children) > 0
}

// LayerTree is the root of a GetMetadata menu document.
type LayerTree = LayerNode

// Walk visits every node below n in document order, passing each node's
// depth (1 for n's direct children). Returning false from fn skips that
// node's children.
func (n LayerNode) Walk(fn func(node LayerNode, depth int) bool) {
	walk(n.Children, 1, fn)
}

func walk(nodes []LayerNode, depth int, fn func(LayerNode, int) bool) {
	for _, c := range nodes {
		if fn(c, depth) {
			walk(c.Children, depth+1, fn)
		}
	}
}
