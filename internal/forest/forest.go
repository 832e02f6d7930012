// Package forest implements the outline editing engine: an ordered forest of
// note nodes with the structural operations behind the editor keybindings
// (insert sibling, indent, outdent, delete-with-reparenting) and the
// tab-indented text interchange codec.
package forest

import (
	"fmt"

	"twig-cli/internal/model"
)

// MaxDepth bounds how deep a node may be indented (root = 0).
// The presentation layer checks this before calling Indent.
const MaxDepth = 5

// Forest owns an ordered sequence of root nodes plus derived lookup indexes.
// The indexes (id -> node, id -> parent id) are rebuilt on load/import and
// maintained incrementally by every structural operation, so operations never
// scan by reference identity to find a node's owner.
//
// A Forest is never empty: if construction or an operation would leave zero
// roots, a single empty-content root is synthesized. The very first root is a
// permanent anchor and is never structurally removed.
type Forest struct {
	roots  []*model.Node
	byID   map[string]*model.Node
	parent map[string]string // child id -> parent id; roots have no entry
}

// New builds a Forest around roots, taking ownership of the slice.
// An empty (or nil) forest gets one synthesized empty root.
func New(roots []*model.Node) *Forest {
	f := &Forest{roots: roots}
	f.reindex()
	f.ensureNonEmpty()
	return f
}

// Roots returns the ordered root sequence. Callers must not mutate it.
func (f *Forest) Roots() []*model.Node { return f.roots }

// Len returns the total number of nodes in the forest.
func (f *Forest) Len() int { return len(f.byID) }

// Find returns the node with the given id, if present.
func (f *Forest) Find(id string) (*model.Node, bool) {
	n, ok := f.byID[id]
	return n, ok
}

// Parent returns the parent of id, or nil if id is a root (or unknown).
func (f *Forest) Parent(id string) (*model.Node, bool) {
	pid, ok := f.parent[id]
	if !ok {
		return nil, false
	}
	p, ok := f.byID[pid]
	return p, ok
}

// Depth returns the indentation depth of id (root = 0), or -1 if id is not
// in the forest.
func (f *Forest) Depth(id string) int {
	if _, ok := f.byID[id]; !ok {
		return -1
	}
	d := 0
	for {
		pid, ok := f.parent[id]
		if !ok {
			return d
		}
		d++
		id = pid
	}
}

// owning locates the sequence that currently holds id (a parent's children or
// the root sequence) together with the node's index in it. This is re-derived
// on every call; prior operations may have moved the node.
func (f *Forest) owning(id string) (seq *[]*model.Node, idx int, ok bool) {
	n, found := f.byID[id]
	if !found {
		return nil, 0, false
	}
	if pid, hasParent := f.parent[id]; hasParent {
		p, pok := f.byID[pid]
		if !pok {
			// Index corruption is programmer error, not user error.
			panic(fmt.Sprintf("forest: node %s has unknown parent %s", id, pid))
		}
		seq = &p.Children
	} else {
		seq = &f.roots
	}
	for i, c := range *seq {
		if c == n {
			return seq, i, true
		}
	}
	panic(fmt.Sprintf("forest: node %s missing from its owning sequence", id))
}

// reindex rebuilds byID and parent from the root sequence.
func (f *Forest) reindex() {
	f.byID = make(map[string]*model.Node)
	f.parent = make(map[string]string)
	var walk func(n *model.Node, parentID string)
	walk = func(n *model.Node, parentID string) {
		f.byID[n.ID] = n
		if parentID != "" {
			f.parent[n.ID] = parentID
		}
		for _, c := range n.Children {
			walk(c, n.ID)
		}
	}
	for _, r := range f.roots {
		walk(r, "")
	}
}

func (f *Forest) ensureNonEmpty() {
	if len(f.roots) > 0 {
		return
	}
	n := &model.Node{ID: f.newNodeID(), Children: []*model.Node{}}
	f.roots = append(f.roots, n)
	f.byID[n.ID] = n
}

// indexSubtree records a subtree that was attached under parentID.
func (f *Forest) indexSubtree(n *model.Node, parentID string) {
	f.byID[n.ID] = n
	if parentID == "" {
		delete(f.parent, n.ID)
	} else {
		f.parent[n.ID] = parentID
	}
	for _, c := range n.Children {
		f.indexSubtree(c, n.ID)
	}
}

// Validate checks internal invariants. It is meant for tests and doctor-style
// checks, not for the mutation hot path.
func (f *Forest) Validate() error {
	if len(f.roots) == 0 {
		return fmt.Errorf("forest has no roots")
	}
	seen := map[string]bool{}
	var walk func(n *model.Node, parentID string) error
	walk = func(n *model.Node, parentID string) error {
		if n == nil {
			return fmt.Errorf("nil node under parent %q", parentID)
		}
		if n.ID == "" {
			return fmt.Errorf("node with empty id under parent %q", parentID)
		}
		if seen[n.ID] {
			return fmt.Errorf("duplicate node id %s", n.ID)
		}
		seen[n.ID] = true
		if got, ok := f.byID[n.ID]; !ok || got != n {
			return fmt.Errorf("byID index stale for %s", n.ID)
		}
		if pid := f.parent[n.ID]; pid != parentID {
			return fmt.Errorf("parent index stale for %s: have %q want %q", n.ID, pid, parentID)
		}
		for _, c := range n.Children {
			if err := walk(c, n.ID); err != nil {
				return err
			}
		}
		return nil
	}
	for _, r := range f.roots {
		if err := walk(r, ""); err != nil {
			return err
		}
	}
	if len(seen) != len(f.byID) {
		return fmt.Errorf("byID has %d entries, tree has %d nodes", len(f.byID), len(seen))
	}
	return nil
}
