package forest

import (
	"strings"

	"twig-cli/internal/model"
)

// Text interchange format: one node per line, depth expressed as leading tab
// characters, children immediately after their parent. Content containing
// tabs or newlines is not escaped and will not round-trip; that is a known
// limitation of the format, not an error.

// ExportText renders the forest as tab-indented text. Roots carry no leading
// tabs; the result has trailing whitespace trimmed.
func (f *Forest) ExportText() string {
	var b strings.Builder
	var walk func(n *model.Node, depth int)
	walk = func(n *model.Node, depth int) {
		b.WriteString(strings.Repeat("\t", depth))
		b.WriteString(n.Content)
		b.WriteString("\n")
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	for _, r := range f.roots {
		walk(r, 0)
	}
	return strings.TrimRight(b.String(), " \t\n")
}

// ImportText parses tab-indented text into a fresh forest. Blank lines are
// dropped; every kept line becomes a node with a fresh id.
//
// Depth is the count of leading tabs, interpreted relative to the nearest
// shallower ancestor rather than validated against strict +1 stepping: a
// jump from depth 0 straight to depth 3 simply attaches under the depth-0
// line. Any input therefore produces some tree.
func ImportText(text string) *Forest {
	f := &Forest{
		byID:   make(map[string]*model.Node),
		parent: make(map[string]string),
	}

	type frame struct {
		children *[]*model.Node
		parentID string
		depth    int
	}
	// Sentinel frame at depth -1 owns the root sequence, so every line pops
	// to the nearest strictly-shallower frame and attaches there.
	stack := []frame{{children: &f.roots, parentID: "", depth: -1}}

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		depth := 0
		for depth < len(line) && line[depth] == '\t' {
			depth++
		}
		content := strings.TrimSpace(line)

		for stack[len(stack)-1].depth >= depth {
			stack = stack[:len(stack)-1]
		}
		top := stack[len(stack)-1]

		n := &model.Node{ID: f.newNodeID(), Content: content, Children: []*model.Node{}}
		*top.children = append(*top.children, n)
		f.byID[n.ID] = n
		if top.parentID != "" {
			f.parent[n.ID] = top.parentID
		}
		stack = append(stack, frame{children: &n.Children, parentID: n.ID, depth: depth})
	}

	f.ensureNonEmpty()
	return f
}
