package model

import "time"

// Node is one outline entry. Children are ordered: sibling order is document
// order. The JSON shape is also the persisted snapshot shape; a forest is
// serialized as nothing more than its nested nodes.
type Node struct {
	ID       string  `json:"id"`
	Content  string  `json:"content"`
	Children []*Node `json:"children"`
}

// Clone returns a deep copy of the node and its subtree.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{ID: n.ID, Content: n.Content, Children: make([]*Node, 0, len(n.Children))}
	for _, c := range n.Children {
		out.Children = append(out.Children, c.Clone())
	}
	return out
}

// Document is one named forest in a workspace.
type Document struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Roots     []*Node   `json:"roots"`
}

type Event struct {
	ID       string    `json:"id"`
	TS       time.Time `json:"ts"`
	Type     string    `json:"type"`
	EntityID string    `json:"entityId"`
	Payload  any       `json:"payload"`
}
