package model

import "github.com/mj1618/desktop-matrix/internal/tree"

// FlatElement is an element with a path breadcrumb instead of children.
type FlatElement struct {
	ID          int      `yaml:"i"            json:"i"`
	Role        string   `yaml:"r"            json:"r"`
	Subrole     string   `yaml:"sr,omitempty" json:"sr,omitempty"`
	Title       string   `yaml:"t,omitempty"  json:"t,omitempty"`
	Value       string   `yaml:"v,omitempty"  json:"v,omitempty"`
	Description string   `yaml:"d,omitempty"  json:"d,omitempty"`
	Bounds      [4]int   `yaml:"b,flow"       json:"b"`
	Focused     bool     `yaml:"f,omitempty"  json:"f,omitempty"`
	Enabled     *bool    `yaml:"e,omitempty"  json:"e,omitempty"`
	Selected    bool     `yaml:"s,omitempty"  json:"s,omitempty"`
	Actions     []string `yaml:"a,omitempty"  json:"a,omitempty"`
	Path        string   `yaml:"p,omitempty"  json:"p,omitempty"`
}

// FlattenElements converts a tree of elements into a flat list in pre-order.
// Each element gets a path string showing its location in the tree
// using abbreviated role names joined with " > ".
func FlattenElements(elements []Element) []FlatElement {
	return FlattenNodes(tree.Descendants(NewForest(elements), func(tree.Node) bool { return true }))
}

// FlattenNodes converts search results into flat elements, keeping their order.
func FlattenNodes[N tree.Node](nodes []N) []FlatElement {
	result := make([]FlatElement, 0, len(nodes))
	for _, tn := range nodes {
		n, ok := any(tn).(*Node)
		if !ok {
			continue
		}
		result = append(result, Flatten(n))
	}
	return result
}

// Flatten returns the flat form of a single node.
func Flatten(n *Node) FlatElement {
	el := n.Element
	return FlatElement{
		ID:          el.ID,
		Role:        el.Role,
		Subrole:     el.Subrole,
		Title:       el.Title,
		Value:       el.Value,
		Description: el.Description,
		Bounds:      el.Bounds,
		Focused:     el.Focused,
		Enabled:     el.Enabled,
		Selected:    el.Selected,
		Actions:     el.Actions,
		Path:        n.Path(),
	}
}
