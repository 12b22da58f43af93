package model

// Element is one UI control in a captured element tree snapshot.
type Element struct {
	ID          int       `yaml:"i,omitempty"  json:"i"`            // Sequential integer ID, assigned in pre-order when absent
	Role        string    `yaml:"r"            json:"r"`            // Compact role code
	Subrole     string    `yaml:"sr,omitempty" json:"sr,omitempty"` // Platform subrole (dialog, sheet, ...)
	Title       string    `yaml:"t,omitempty"  json:"t,omitempty"`  // Visible label / title
	Value       string    `yaml:"v,omitempty"  json:"v,omitempty"`  // Current value
	Description string    `yaml:"d,omitempty"  json:"d,omitempty"`  // Accessibility description
	Bounds      [4]int    `yaml:"b,flow"       json:"b"`            // [x, y, width, height]
	Focused     bool      `yaml:"f,omitempty"  json:"f,omitempty"`  // Has keyboard focus
	Enabled     *bool     `yaml:"e,omitempty"  json:"e,omitempty"`  // nil or true = enabled (omit); false = disabled (include)
	Selected    bool      `yaml:"s,omitempty"  json:"s,omitempty"`  // Is selected
	Children    []Element `yaml:"c,omitempty"  json:"c,omitempty"`  // Child elements
	Actions     []string  `yaml:"a,omitempty"  json:"a,omitempty"`  // Available actions
}

// AssignIDs numbers elements 1..n in pre-order, leaving existing non-zero IDs
// untouched. It returns the highest ID in the tree.
func AssignIDs(elements []Element) int {
	next := maxID(elements) + 1
	assignRecursive(elements, &next)
	return next - 1
}

func maxID(elements []Element) int {
	m := 0
	for i := range elements {
		if elements[i].ID > m {
			m = elements[i].ID
		}
		if c := maxID(elements[i].Children); c > m {
			m = c
		}
	}
	return m
}

func assignRecursive(elements []Element, next *int) {
	for i := range elements {
		if elements[i].ID == 0 {
			elements[i].ID = *next
			*next++
		}
		assignRecursive(elements[i].Children, next)
	}
}
