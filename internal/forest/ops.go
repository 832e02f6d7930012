package forest

import (
	"strings"

	"twig-cli/internal/model"
)

// Structural operations. Each one either fully applies (returns changed=true)
// or leaves the forest untouched: an unknown id and a legal-but-inapplicable
// gesture (indent with no previous sibling) are both silent no-ops.
// Persistence and re-render signaling are the session's job, not the forest's.

// UpdateContent sets the node's content to text trimmed of surrounding
// whitespace.
func (f *Forest) UpdateContent(id, text string) bool {
	n, ok := f.byID[id]
	if !ok {
		return false
	}
	n.Content = strings.TrimSpace(text)
	return true
}

// InsertSiblingAfter creates a new empty node immediately after id in its
// owning sequence and returns it.
func (f *Forest) InsertSiblingAfter(id string) (*model.Node, bool) {
	seq, idx, ok := f.owning(id)
	if !ok {
		return nil, false
	}
	n := &model.Node{ID: f.newNodeID(), Children: []*model.Node{}}
	*seq = insertAt(*seq, idx+1, n)
	f.indexSubtree(n, f.parent[id])
	return n, true
}

// Indent moves id one level deeper: it becomes the last child of its previous
// sibling. A node with no previous sibling cannot be indented. The MaxDepth
// bound is the caller's to check before invoking.
func (f *Forest) Indent(id string) bool {
	seq, idx, ok := f.owning(id)
	if !ok || idx == 0 {
		return false
	}
	n := (*seq)[idx]
	prev := (*seq)[idx-1]
	*seq = removeAt(*seq, idx)
	prev.Children = append(prev.Children, n)
	f.parent[id] = prev.ID
	return true
}

// Outdent moves id one level shallower, making it the immediate following
// sibling of its former parent. Its former trailing siblings stay where they
// are. Outdenting a root has no shallower level to go to; the node is deleted
// instead (subject to the first-root anchor rule).
//
// The returned focus id is the node to select afterwards: the node itself
// after a reparent, or Delete's focus target in the root case.
func (f *Forest) Outdent(id string) (focusID string, changed bool) {
	seq, idx, ok := f.owning(id)
	if !ok {
		return "", false
	}
	pid, hasParent := f.parent[id]
	if !hasParent {
		return f.Delete(id)
	}
	gseq, pidx, ok := f.owning(pid)
	if !ok {
		return "", false
	}
	n := (*seq)[idx]
	*seq = removeAt(*seq, idx)
	*gseq = insertAt(*gseq, pidx+1, n)
	if gpid, hasGrandparent := f.parent[pid]; hasGrandparent {
		f.parent[id] = gpid
	} else {
		delete(f.parent, id)
	}
	return id, true
}

// Delete removes id and splices its children into its place, preserving their
// order; the children's depth does not change, only the deleted node
// disappears. The very first root is never removed: deleting it clears its
// content instead, which also keeps the root sequence non-empty.
//
// The returned focus id is the node now occupying the deleted slot, or the
// one before it, or "" when the owning sequence emptied out.
func (f *Forest) Delete(id string) (focusID string, changed bool) {
	seq, idx, ok := f.owning(id)
	if !ok {
		return "", false
	}
	n := (*seq)[idx]
	if seq == &f.roots && idx == 0 {
		n.Content = ""
		return id, true
	}

	children := n.Children
	n.Children = nil
	*seq = removeAt(*seq, idx)
	*seq = spliceAt(*seq, idx, children)

	newParentID := f.parent[id] // "" when seq is the root sequence
	delete(f.byID, id)
	delete(f.parent, id)
	for _, c := range children {
		if newParentID == "" {
			delete(f.parent, c.ID)
		} else {
			f.parent[c.ID] = newParentID
		}
	}

	switch {
	case idx < len(*seq):
		return (*seq)[idx].ID, true
	case idx-1 >= 0 && idx-1 < len(*seq):
		return (*seq)[idx-1].ID, true
	default:
		return "", true
	}
}

func insertAt(seq []*model.Node, idx int, n *model.Node) []*model.Node {
	seq = append(seq, nil)
	copy(seq[idx+1:], seq[idx:])
	seq[idx] = n
	return seq
}

func removeAt(seq []*model.Node, idx int) []*model.Node {
	return append(seq[:idx], seq[idx+1:]...)
}

func spliceAt(seq []*model.Node, idx int, ns []*model.Node) []*model.Node {
	if len(ns) == 0 {
		return seq
	}
	out := make([]*model.Node, 0, len(seq)+len(ns))
	out = append(out, seq[:idx]...)
	out = append(out, ns...)
	out = append(out, seq[idx:]...)
	return out
}
