// Package tree implements the hierarchical HS-code browser model: lazily
// merged category nodes, an expansion state, search auto-expansion, and a
// recursive flatten that turns the tree into the ordered list of visible rows.
package tree

import (
	"strings"

	"atfplatform/backend/models"
)

type Node struct {
	ID       int64                `json:"id"`
	Code     string               `json:"code"`
	Name     models.LocalizedText `json:"name"`
	Leaf     bool                 `json:"leaf"`
	Children []*Node              `json:"children,omitempty"`
}

// State tracks which nodes are expanded and which matched the active search.
type State struct {
	expanded map[int64]bool
	matched  map[int64]bool
}

func NewState() *State {
	return &State{expanded: make(map[int64]bool), matched: make(map[int64]bool)}
}

func (s *State) Expand(id int64) { s.expanded[id] = true }

func (s *State) Expanded(id int64) bool { return s.expanded[id] }

func (s *State) Matched(id int64) bool { return s.matched[id] }

func (s *State) mark(id int64) { s.matched[id] = true }

// Row is one visible line of the flattened browser view. Depth gives the
// indentation level of the node within the emitted output.
type Row struct {
	ID       int64                `json:"id"`
	Code     string               `json:"code"`
	Name     models.LocalizedText `json:"name"`
	Depth    int                  `json:"depth"`
	Leaf     bool                 `json:"leaf"`
	Expanded bool                 `json:"expanded"`
	Match    bool                 `json:"match"`
}

// Flatten walks the tree in order and emits one row per visible node.
// A node's children appear in the output only when the node itself is both
// emitted and expanded; each subtree is emitted in full before the next
// sibling.
func Flatten(roots []*Node, state *State) []Row {
	rows := make([]Row, 0, len(roots))
	for _, n := range roots {
		rows = flattenNode(n, 0, state, rows)
	}
	return rows
}

func flattenNode(n *Node, depth int, state *State, rows []Row) []Row {
	rows = append(rows, Row{
		ID:       n.ID,
		Code:     n.Code,
		Name:     n.Name,
		Depth:    depth,
		Leaf:     n.Leaf,
		Expanded: state.Expanded(n.ID),
		Match:    state.Matched(n.ID),
	})
	if !state.Expanded(n.ID) {
		return rows
	}
	for _, c := range n.Children {
		rows = flattenNode(c, depth+1, state, rows)
	}
	return rows
}

// MarkMatches marks every node whose code starts with query (or whose name in
// any language contains it) and expands all ancestors of each match, so that
// matches are visible in the flattened view without manual clicks. Returns
// the number of matches.
func MarkMatches(roots []*Node, query string, state *State) int {
	query = strings.TrimSpace(query)
	if query == "" {
		return 0
	}
	total := 0
	for _, n := range roots {
		total += markNode(n, strings.ToLower(query), state)
	}
	return total
}

func markNode(n *Node, query string, state *State) int {
	matches := 0
	for _, c := range n.Children {
		matches += markNode(c, query, state)
	}
	if nodeMatches(n, query) {
		state.mark(n.ID)
		matches++
	}
	// Any match below this node makes it an ancestor of a match.
	if matches > 0 {
		state.Expand(n.ID)
	}
	return matches
}

func nodeMatches(n *Node, query string) bool {
	if strings.HasPrefix(strings.ToLower(n.Code), query) {
		return true
	}
	for _, name := range []string{n.Name.Az, n.Name.En, n.Name.Ru} {
		if name != "" && strings.Contains(strings.ToLower(name), query) {
			return true
		}
	}
	return false
}

// Merge attaches lazily fetched children to the node with the given id,
// replacing any previously fetched set. Returns false if the id is not in
// the tree.
func Merge(roots []*Node, id int64, children []*Node) bool {
	n := Find(roots, id)
	if n == nil {
		return false
	}
	n.Children = children
	n.Leaf = len(children) == 0
	return true
}

// Find locates a node by id anywhere in the tree.
func Find(roots []*Node, id int64) *Node {
	for _, n := range roots {
		if n.ID == id {
			return n
		}
		if found := Find(n.Children, id); found != nil {
			return found
		}
	}
	return nil
}

// Build assembles a forest from a flat node list keyed by parent id.
// Nodes whose parent is absent from the list become roots. Input order is
// preserved within each sibling group.
func Build(flat []*Node, parents map[int64]int64) []*Node {
	byID := make(map[int64]*Node, len(flat))
	for _, n := range flat {
		byID[n.ID] = n
	}
	roots := make([]*Node, 0)
	for _, n := range flat {
		pid, ok := parents[n.ID]
		if !ok {
			roots = append(roots, n)
			continue
		}
		parent, ok := byID[pid]
		if !ok {
			roots = append(roots, n)
			continue
		}
		parent.Children = append(parent.Children, n)
	}
	return roots
}
