package tree

import (
	"testing"

	"atfplatform/backend/models"
)

func node(id int64, code string, children ...*Node) *Node {
	return &Node{ID: id, Code: code, Name: models.L(code, "", ""), Children: children}
}

func codes(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Code
	}
	return out
}

func TestFlattenCollapsedEmitsOnlyRoot(t *testing.T) {
	a := node(1, "84", node(2, "8401"), node(3, "8402"))
	state := NewState()

	rows := Flatten([]*Node{a}, state)
	if len(rows) != 1 || rows[0].Code != "84" {
		t.Fatalf("expected [84], got %v", codes(rows))
	}
}

func TestFlattenExpandedEmitsChildrenInOrder(t *testing.T) {
	a := node(1, "84", node(2, "8401"), node(3, "8402"))
	state := NewState()
	state.Expand(1)

	rows := Flatten([]*Node{a}, state)
	want := []string{"84", "8401", "8402"}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %v", codes(rows))
	}
	for i, w := range want {
		if rows[i].Code != w {
			t.Fatalf("row %d: expected %s, got %s", i, w, rows[i].Code)
		}
	}
}

func TestFlattenNestedSubtreeBeforeNextSibling(t *testing.T) {
	b := node(2, "8401", node(4, "840110"), node(5, "840120"))
	a := node(1, "84", b, node(3, "8402"))
	state := NewState()
	state.Expand(1)
	state.Expand(2)

	rows := Flatten([]*Node{a}, state)
	want := []string{"84", "8401", "840110", "840120", "8402"}
	got := codes(rows)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if rows[2].Depth != 2 {
		t.Fatalf("expected depth 2 for 840110, got %d", rows[2].Depth)
	}
}

func TestFlattenSkipsChildrenOfCollapsedNode(t *testing.T) {
	b := node(2, "8401", node(4, "840110"))
	a := node(1, "84", b, node(3, "8402"))
	state := NewState()
	state.Expand(1)
	// 8401 stays collapsed: its children must not appear.

	rows := Flatten([]*Node{a}, state)
	for _, r := range rows {
		if r.Code == "840110" {
			t.Fatalf("child of collapsed node leaked into output: %v", codes(rows))
		}
	}
}

func TestMarkMatchesExpandsAncestors(t *testing.T) {
	leaf := node(4, "8471")
	leaf.Leaf = true
	mid := node(2, "84", leaf)
	root := node(1, "XVI", mid)
	other := node(3, "85")
	state := NewState()

	n := MarkMatches([]*Node{root, other}, "8471", state)
	if n != 1 {
		t.Fatalf("expected 1 match, got %d", n)
	}
	if !state.Matched(4) {
		t.Fatal("expected 8471 to be marked as match")
	}
	if !state.Expanded(1) || !state.Expanded(2) {
		t.Fatal("expected all ancestors of the match to be expanded")
	}
	if state.Expanded(3) {
		t.Fatal("unrelated sibling must stay collapsed")
	}

	rows := Flatten([]*Node{root, other}, state)
	found := false
	for _, r := range rows {
		if r.Code == "8471" && r.Match {
			found = true
		}
	}
	if !found {
		t.Fatalf("match must be visible in flattened view, got %v", codes(rows))
	}
}

func TestMarkMatchesPrefixAndName(t *testing.T) {
	a := node(1, "8471")
	a.Name = models.L("Hesablama maşınları", "Computing machines", "Вычислительные машины")
	state := NewState()

	if n := MarkMatches([]*Node{a}, "84", state); n != 1 {
		t.Fatalf("prefix match: expected 1, got %d", n)
	}
	state = NewState()
	if n := MarkMatches([]*Node{a}, "computing", state); n != 1 {
		t.Fatalf("name match: expected 1, got %d", n)
	}
	state = NewState()
	if n := MarkMatches([]*Node{a}, "71", state); n != 0 {
		t.Fatalf("non-prefix code must not match, got %d", n)
	}
}

func TestMergeAttachesChildrenAndFlagsLeaf(t *testing.T) {
	a := node(1, "84")
	roots := []*Node{a}

	if !Merge(roots, 1, []*Node{node(2, "8401")}) {
		t.Fatal("merge into known id must succeed")
	}
	if len(a.Children) != 1 || a.Leaf {
		t.Fatalf("expected one child and non-leaf, got %d children leaf=%v", len(a.Children), a.Leaf)
	}
	if !Merge(roots, 2, nil) {
		t.Fatal("merge into nested id must succeed")
	}
	if !a.Children[0].Leaf {
		t.Fatal("node with no children after fetch must become a leaf")
	}
	if Merge(roots, 99, nil) {
		t.Fatal("merge into unknown id must fail")
	}
}

func TestBuildAssemblesForest(t *testing.T) {
	flat := []*Node{node(1, "84"), node(2, "8401"), node(3, "840110"), node(4, "85")}
	parents := map[int64]int64{2: 1, 3: 2}

	roots := Build(flat, parents)
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	if len(roots[0].Children) != 1 || roots[0].Children[0].Code != "8401" {
		t.Fatalf("expected 8401 under 84")
	}
	if len(roots[0].Children[0].Children) != 1 {
		t.Fatalf("expected 840110 under 8401")
	}
}
