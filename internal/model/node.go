package model

import (
	"strings"

	"github.com/mj1618/desktop-matrix/internal/tree"
)

// RootRole is the role of the synthetic node that parents a forest of
// top-level elements.
const RootRole = "desktop"

// Node is a parent-linked view over an Element tree. Element trees only hold
// children; searches that walk upward need this adapter.
type Node struct {
	Element  *Element
	parent   *Node
	children []*Node
}

var _ tree.Typed[string] = (*Node)(nil)

// NewNode builds a node tree rooted at el. The node points into el, so the
// element tree must outlive it and must not be resized while it is in use.
func NewNode(el *Element) *Node {
	return buildNode(el, nil)
}

// NewForest builds a synthetic desktop root whose children are elements.
func NewForest(elements []Element) *Node {
	root := &Node{Element: &Element{Role: RootRole}}
	root.children = make([]*Node, len(elements))
	for i := range elements {
		root.children[i] = buildNode(&elements[i], root)
	}
	return root
}

func buildNode(el *Element, parent *Node) *Node {
	n := &Node{Element: el, parent: parent}
	if len(el.Children) > 0 {
		n.children = make([]*Node, len(el.Children))
		for i := range el.Children {
			n.children[i] = buildNode(&el.Children[i], n)
		}
	}
	return n
}

// ChildCount implements tree.Node.
func (n *Node) ChildCount() int { return len(n.children) }

// ChildAt implements tree.Node.
func (n *Node) ChildAt(i int) tree.Node { return n.children[i] }

// Parent implements tree.Node.
func (n *Node) Parent() tree.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// TypeOf reports the element role, which RoleTaxonomy interprets.
func (n *Node) TypeOf() string { return n.Element.Role }

// IsRoot reports whether n is the synthetic forest root.
func (n *Node) IsRoot() bool { return n.parent == nil && n.Element.Role == RootRole }

// Path returns the role breadcrumb from the top-level element down to n,
// joined with " > ". The synthetic root is not part of the path.
func (n *Node) Path() string {
	var parts []string
	for cur := n; cur != nil; cur = cur.parent {
		if cur.IsRoot() {
			break
		}
		parts = append(parts, cur.Element.Role)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, " > ")
}

// Depth is the number of elements above n, not counting the synthetic root.
func (n *Node) Depth() int {
	d := 0
	for cur := n.parent; cur != nil && !cur.IsRoot(); cur = cur.parent {
		d++
	}
	return d
}

// Find returns the descendants of n whose role is role or a sub-role of it.
func (n *Node) Find(tax RoleTaxonomy, role string) []*Node {
	return asNodes(tree.Descendants(n, tree.IsA[string](tax, role)))
}

// Closest returns the nearest ancestor of n whose role is role or a sub-role
// of it, excluding n itself. The synthetic root never matches.
func (n *Node) Closest(tax RoleTaxonomy, role string) *Node {
	match := tree.IsA[string](tax, role)
	found := tree.NearestAncestor(n, func(c tree.Node) bool {
		return !c.(*Node).IsRoot() && match(c)
	})
	if found == nil {
		return nil
	}
	return found.(*Node)
}

// ByID returns the node for the element with the given ID, or nil.
func (n *Node) ByID(id int) *Node {
	if n.Element.ID == id && !n.IsRoot() {
		return n
	}
	found := tree.Descendants(n, func(c tree.Node) bool {
		return c.(*Node).Element.ID == id
	})
	if len(found) == 0 {
		return nil
	}
	return found[0].(*Node)
}

func asNodes(found []tree.Node) []*Node {
	nodes := make([]*Node, len(found))
	for i, f := range found {
		nodes[i] = f.(*Node)
	}
	return nodes
}
