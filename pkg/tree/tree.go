package tree

// Tree is a built, read-only command tree.
type Tree struct {
	label string
	nodes []Node
	index map[string]NodeID
}

// Label returns the command label the tree was built for.
func (t *Tree) Label() string {
	return t.label
}

// Root returns the root node.
func (t *Tree) Root() *Node {
	return &t.nodes[RootID]
}

// Node returns the node with the given id, or nil.
func (t *Tree) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return &t.nodes[id]
}

// Len returns the number of nodes, root included.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Lookup finds a node by address.
func (t *Tree) Lookup(address string) (*Node, bool) {
	id, ok := t.index[address]
	if !ok {
		return nil, false
	}
	return &t.nodes[id], true
}

// Walk visits nodes depth-first in child order, starting at the root.
// Returning false from fn skips the subtree of that node.
func (t *Tree) Walk(fn func(n *Node, level int) bool) {
	var visit func(id NodeID, level int)
	visit = func(id NodeID, level int) {
		n := &t.nodes[id]
		if !fn(n, level) {
			return
		}
		for _, child := range n.Children {
			visit(child, level+1)
		}
	}
	visit(RootID, 0)
}
