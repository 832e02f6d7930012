package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"twig-cli/internal/forest"
)

func rowContents(rows []outlineRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.node.Content)
	}
	return out
}

func TestFlattenForestDepthOrder(t *testing.T) {
	f := forest.ImportText("A\n\tB\n\t\tC\nD")

	rows := flattenForest(f, map[string]bool{})

	want := []string{"A", "B", "C", "D"}
	got := rowContents(rows)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("row order = %v, want %v", got, want)
	}
	wantDepth := []int{0, 1, 2, 0}
	for i, r := range rows {
		if r.depth != wantDepth[i] {
			t.Fatalf("row %q depth = %d, want %d", r.node.Content, r.depth, wantDepth[i])
		}
	}
	if !rows[0].hasChildren || rows[3].hasChildren {
		t.Fatalf("hasChildren wrong: A=%v D=%v", rows[0].hasChildren, rows[3].hasChildren)
	}
}

func TestFlattenForestSkipsCollapsedDescendants(t *testing.T) {
	f := forest.ImportText("A\n\tB\n\t\tC\nD")

	collapsed := map[string]bool{f.Roots()[0].ID: true}
	rows := flattenForest(f, collapsed)

	got := rowContents(rows)
	if strings.Join(got, ",") != "A,D" {
		t.Fatalf("collapsed rows = %v, want [A D]", got)
	}
	if !rows[0].collapsed {
		t.Fatalf("expected A row to be marked collapsed")
	}

	// Collapsing a deeper node hides only its own subtree.
	b := f.Roots()[0].Children[0]
	rows = flattenForest(f, map[string]bool{b.ID: true})
	if got := rowContents(rows); strings.Join(got, ",") != "A,B,D" {
		t.Fatalf("rows = %v, want [A B D]", got)
	}
}

func TestRowIndexOf(t *testing.T) {
	f := forest.ImportText("A\nB")
	rows := flattenForest(f, map[string]bool{})

	if idx := rowIndexOf(rows, f.Roots()[1].ID); idx != 1 {
		t.Fatalf("rowIndexOf B = %d, want 1", idx)
	}
	if idx := rowIndexOf(rows, "n-missing"); idx != -1 {
		t.Fatalf("rowIndexOf missing = %d, want -1", idx)
	}
}

func TestRenderOutlineRowIndentsByDepth(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	f := forest.ImportText("A\n\tB")
	rows := flattenForest(f, map[string]bool{})

	line := renderOutlineRow(80, rows[1], false, "", glyphsASCII)
	if !strings.HasPrefix(line, "  ") {
		t.Fatalf("depth-1 row not indented: %q", line)
	}
	if !strings.Contains(line, "B") {
		t.Fatalf("row missing content: %q", line)
	}
}

func TestGlyphsFor(t *testing.T) {
	if g := glyphsFor("ascii"); g != glyphsASCII {
		t.Fatalf("glyphsFor(ascii) = %v", g)
	}
	if g := glyphsFor(""); g != glyphsUnicode {
		t.Fatalf("glyphsFor default = %v", g)
	}
	if g := glyphsFor("bogus"); g != glyphsUnicode {
		t.Fatalf("glyphsFor unknown = %v", g)
	}
}
