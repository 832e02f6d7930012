package forest

import (
	"testing"

	"twig-cli/internal/model"
)

func node(id, content string, children ...*model.Node) *model.Node {
	if children == nil {
		children = []*model.Node{}
	}
	return &model.Node{ID: id, Content: content, Children: children}
}

func rootIDs(f *Forest) []string {
	out := make([]string, 0, len(f.Roots()))
	for _, r := range f.Roots() {
		out = append(out, r.ID)
	}
	return out
}

func childIDs(n *model.Node) []string {
	out := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		out = append(out, c.ID)
	}
	return out
}

func eq(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewSynthesizesEmptyRoot(t *testing.T) {
	f := New(nil)
	if len(f.Roots()) != 1 {
		t.Fatalf("expected one synthesized root, got %d", len(f.Roots()))
	}
	if f.Roots()[0].Content != "" {
		t.Fatalf("synthesized root should have empty content, got %q", f.Roots()[0].Content)
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("invalid forest: %v", err)
	}
}

func TestUpdateContentTrimsAndIsIdempotent(t *testing.T) {
	f := New([]*model.Node{node("a", "A")})
	if !f.UpdateContent("a", "  hello world \n") {
		t.Fatal("expected update to apply")
	}
	n, _ := f.Find("a")
	if n.Content != "hello world" {
		t.Fatalf("content = %q, want %q", n.Content, "hello world")
	}
	f.UpdateContent("a", "  hello world \n")
	if n.Content != "hello world" {
		t.Fatalf("second identical update changed content to %q", n.Content)
	}
	if f.UpdateContent("missing", "x") {
		t.Fatal("update of unknown id should be a no-op")
	}
}

func TestInsertSiblingAfterRoot(t *testing.T) {
	// Scenario: forest [A]; insert after A => [A, new], both at depth 0.
	f := New([]*model.Node{node("a", "A")})
	n, ok := f.InsertSiblingAfter("a")
	if !ok || n == nil {
		t.Fatal("expected insert to succeed")
	}
	if n.Content != "" {
		t.Fatalf("new node content = %q, want empty", n.Content)
	}
	if !eq(rootIDs(f), []string{"a", n.ID}) {
		t.Fatalf("roots = %v, want [a %s]", rootIDs(f), n.ID)
	}
	if d := f.Depth(n.ID); d != 0 {
		t.Fatalf("new node depth = %d, want 0", d)
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("invalid forest: %v", err)
	}
}

func TestInsertSiblingAfterMiddleChild(t *testing.T) {
	f := New([]*model.Node{node("r", "R", node("x", "X"), node("y", "Y"))})
	n, ok := f.InsertSiblingAfter("x")
	if !ok {
		t.Fatal("expected insert to succeed")
	}
	r, _ := f.Find("r")
	if !eq(childIDs(r), []string{"x", n.ID, "y"}) {
		t.Fatalf("children = %v, want [x %s y]", childIDs(r), n.ID)
	}
	if d := f.Depth(n.ID); d != 1 {
		t.Fatalf("depth = %d, want 1", d)
	}
	if _, ok := f.InsertSiblingAfter("missing"); ok {
		t.Fatal("insert after unknown id should be a no-op")
	}
}

func TestIndentMovesUnderPreviousSibling(t *testing.T) {
	// Scenario: [A, B]; indent B => [A] with A.children = [B].
	f := New([]*model.Node{node("a", "A"), node("b", "B")})
	if !f.Indent("b") {
		t.Fatal("expected indent to succeed")
	}
	if !eq(rootIDs(f), []string{"a"}) {
		t.Fatalf("roots = %v, want [a]", rootIDs(f))
	}
	a, _ := f.Find("a")
	if !eq(childIDs(a), []string{"b"}) {
		t.Fatalf("a.children = %v, want [b]", childIDs(a))
	}
	if d := f.Depth("b"); d != 1 {
		t.Fatalf("depth(b) = %d, want 1", d)
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("invalid forest: %v", err)
	}
}

func TestIndentAppendsAsLastChild(t *testing.T) {
	// The moved node lands at the END of the new parent's children regardless
	// of its old position.
	f := New([]*model.Node{
		node("a", "A", node("a1", "A1"), node("a2", "A2")),
		node("b", "B"),
	})
	if !f.Indent("b") {
		t.Fatal("expected indent to succeed")
	}
	a, _ := f.Find("a")
	if !eq(childIDs(a), []string{"a1", "a2", "b"}) {
		t.Fatalf("a.children = %v, want [a1 a2 b]", childIDs(a))
	}
}

func TestIndentFirstSiblingIsNoOp(t *testing.T) {
	f := New([]*model.Node{node("a", "A"), node("b", "B")})
	if f.Indent("a") {
		t.Fatal("indent of first sibling should be a no-op")
	}
	if !eq(rootIDs(f), []string{"a", "b"}) {
		t.Fatalf("forest changed: %v", rootIDs(f))
	}
	if f.Indent("missing") {
		t.Fatal("indent of unknown id should be a no-op")
	}
}

func TestOutdentChildBecomesParentSibling(t *testing.T) {
	// Scenario: [A] with A.children=[B]; outdent B => [A, B], A.children=[].
	f := New([]*model.Node{node("a", "A", node("b", "B"))})
	focus, ok := f.Outdent("b")
	if !ok {
		t.Fatal("expected outdent to succeed")
	}
	if focus != "b" {
		t.Fatalf("focus = %q, want b", focus)
	}
	if !eq(rootIDs(f), []string{"a", "b"}) {
		t.Fatalf("roots = %v, want [a b]", rootIDs(f))
	}
	a, _ := f.Find("a")
	if len(a.Children) != 0 {
		t.Fatalf("a.children = %v, want empty", childIDs(a))
	}
	if d := f.Depth("b"); d != 0 {
		t.Fatalf("depth(b) = %d, want 0", d)
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("invalid forest: %v", err)
	}
}

func TestOutdentLeavesTrailingSiblingsBehind(t *testing.T) {
	// Outdenting X out of [X, Y, Z] leaves Y and Z as children of the old
	// parent; X becomes the parent's immediate following sibling.
	f := New([]*model.Node{
		node("p", "P", node("x", "X"), node("y", "Y"), node("z", "Z")),
		node("q", "Q"),
	})
	if _, ok := f.Outdent("x"); !ok {
		t.Fatal("expected outdent to succeed")
	}
	if !eq(rootIDs(f), []string{"p", "x", "q"}) {
		t.Fatalf("roots = %v, want [p x q]", rootIDs(f))
	}
	p, _ := f.Find("p")
	if !eq(childIDs(p), []string{"y", "z"}) {
		t.Fatalf("p.children = %v, want [y z]", childIDs(p))
	}
}

func TestOutdentDeepChildLandsAfterParent(t *testing.T) {
	f := New([]*model.Node{node("r", "R", node("p", "P", node("x", "X")), node("q", "Q"))})
	if _, ok := f.Outdent("x"); !ok {
		t.Fatal("expected outdent to succeed")
	}
	r, _ := f.Find("r")
	if !eq(childIDs(r), []string{"p", "x", "q"}) {
		t.Fatalf("r.children = %v, want [p x q]", childIDs(r))
	}
	if d := f.Depth("x"); d != 1 {
		t.Fatalf("depth(x) = %d, want 1", d)
	}
}

func TestOutdentRootDeletes(t *testing.T) {
	// A root has no shallower level: outdent deletes it, reparenting children.
	f := New([]*model.Node{node("a", "A"), node("b", "B", node("c", "C"))})
	focus, ok := f.Outdent("b")
	if !ok {
		t.Fatal("expected outdent to apply")
	}
	if !eq(rootIDs(f), []string{"a", "c"}) {
		t.Fatalf("roots = %v, want [a c]", rootIDs(f))
	}
	if focus != "c" {
		t.Fatalf("focus = %q, want c", focus)
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("invalid forest: %v", err)
	}
}

func TestOutdentFirstRootClearsContent(t *testing.T) {
	f := New([]*model.Node{node("a", "A")})
	focus, ok := f.Outdent("a")
	if !ok {
		t.Fatal("expected outdent to apply")
	}
	if focus != "a" {
		t.Fatalf("focus = %q, want a", focus)
	}
	a, found := f.Find("a")
	if !found || a.Content != "" {
		t.Fatalf("first root should survive with cleared content; found=%v content=%q", found, a.Content)
	}
}

func TestDeleteFirstRootClearsContentOnly(t *testing.T) {
	// Scenario: [A] with children [B, C]; delete A => A stays, content "",
	// children untouched.
	f := New([]*model.Node{node("a", "A", node("b", "B"), node("c", "C"))})
	focus, ok := f.Delete("a")
	if !ok {
		t.Fatal("expected delete to apply")
	}
	if focus != "a" {
		t.Fatalf("focus = %q, want a", focus)
	}
	if !eq(rootIDs(f), []string{"a"}) {
		t.Fatalf("roots = %v, want [a]", rootIDs(f))
	}
	a, _ := f.Find("a")
	if a.Content != "" {
		t.Fatalf("content = %q, want empty", a.Content)
	}
	if !eq(childIDs(a), []string{"b", "c"}) {
		t.Fatalf("children = %v, want [b c]", childIDs(a))
	}
}

func TestDeleteSplicesChildrenIntoPlace(t *testing.T) {
	// Scenario: [R] with R.children=[A], A.children=[X, Y]; delete A =>
	// R.children = [X, Y].
	f := New([]*model.Node{node("r", "R", node("a", "A", node("x", "X"), node("y", "Y")))})
	focus, ok := f.Delete("a")
	if !ok {
		t.Fatal("expected delete to apply")
	}
	r, _ := f.Find("r")
	if !eq(childIDs(r), []string{"x", "y"}) {
		t.Fatalf("r.children = %v, want [x y]", childIDs(r))
	}
	if focus != "x" {
		t.Fatalf("focus = %q, want x", focus)
	}
	if _, found := f.Find("a"); found {
		t.Fatal("deleted node still findable")
	}
	if d := f.Depth("x"); d != 1 {
		t.Fatalf("depth(x) = %d, want 1", d)
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("invalid forest: %v", err)
	}
}

func TestDeleteChildlessNodeFocusesPredecessor(t *testing.T) {
	f := New([]*model.Node{node("r", "R", node("x", "X"), node("y", "Y"))})
	focus, ok := f.Delete("y")
	if !ok {
		t.Fatal("expected delete to apply")
	}
	if focus != "x" {
		t.Fatalf("focus = %q, want x", focus)
	}
}

func TestDeleteSoleChildFocusFallsToContainer(t *testing.T) {
	f := New([]*model.Node{node("r", "R", node("x", "X"))})
	focus, ok := f.Delete("x")
	if !ok {
		t.Fatal("expected delete to apply")
	}
	if focus != "" {
		t.Fatalf("focus = %q, want empty (container fallback)", focus)
	}
	r, _ := f.Find("r")
	if len(r.Children) != 0 {
		t.Fatalf("r.children = %v, want empty", childIDs(r))
	}
}

func TestDeleteUnknownIDIsNoOp(t *testing.T) {
	f := New([]*model.Node{node("a", "A")})
	if _, ok := f.Delete("missing"); ok {
		t.Fatal("delete of unknown id should be a no-op")
	}
}

func TestRootSequenceNeverEmpties(t *testing.T) {
	f := New([]*model.Node{node("a", "A"), node("b", "B")})
	if _, ok := f.Delete("b"); !ok {
		t.Fatal("expected delete to apply")
	}
	if _, ok := f.Delete("a"); !ok {
		t.Fatal("expected anchor delete to apply")
	}
	if len(f.Roots()) != 1 {
		t.Fatalf("roots = %v, want exactly one", rootIDs(f))
	}
	if f.Roots()[0].Content != "" {
		t.Fatalf("anchor content = %q, want empty", f.Roots()[0].Content)
	}
}

func TestOperationsRelocateNodesConsistently(t *testing.T) {
	// A longer editing session; the index must stay consistent with the tree
	// after every step.
	f := New([]*model.Node{node("a", "A")})
	steps := []func() bool{
		func() bool { _, ok := f.InsertSiblingAfter("a"); return ok },
		func() bool { return f.UpdateContent(f.Roots()[1].ID, "B") },
		func() bool { return f.Indent(f.Roots()[1].ID) },
		func() bool { _, ok := f.InsertSiblingAfter(firstChild(t, f, "a")); return ok },
		func() bool { _, ok := f.Outdent(firstChild(t, f, "a")); return ok },
		func() bool { _, ok := f.Delete(f.Roots()[1].ID); return ok },
	}
	for i, step := range steps {
		if !step() {
			t.Fatalf("step %d did not apply", i)
		}
		if err := f.Validate(); err != nil {
			t.Fatalf("step %d left invalid forest: %v", i, err)
		}
	}
}

func firstChild(t *testing.T, f *Forest, id string) string {
	t.Helper()
	n, ok := f.Find(id)
	if !ok || len(n.Children) == 0 {
		t.Fatalf("node %s has no children", id)
	}
	return n.Children[0].ID
}
