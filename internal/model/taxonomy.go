package model

import "github.com/mj1618/desktop-matrix/internal/tree"

// RoleTaxonomy maps a role code to its parent role. A role is a sub-role of
// every role on its parent chain, the way a check box is a kind of toggle
// button and a toggle button is a kind of button.
type RoleTaxonomy map[string]string

var _ tree.TypeMatcher[string] = RoleTaxonomy(nil)

// DefaultTaxonomy covers the compact role codes produced by MapRole.
// "control", "container" and "content" are abstract roots.
var DefaultTaxonomy = RoleTaxonomy{
	"control":   "",
	"container": "",
	"content":   "",

	"btn":      "control",
	"toggle":   "btn",
	"chk":      "toggle",
	"radio":    "toggle",
	"lnk":      "btn",
	"menuitem": "btn",
	"input":    "control",

	"group":   "container",
	"window":  "group",
	"toolbar": "group",
	"menu":    "group",
	"tab":     "group",
	"list":    "group",
	"scroll":  "group",
	"web":     "group",
	"row":     "group",
	"cell":    "group",

	"txt":   "content",
	"img":   "content",
	"other": "content",
}

// Matches implements tree.TypeMatcher: candidate equals target or target is
// on candidate's parent chain. Unknown roles only match themselves.
func (t RoleTaxonomy) Matches(candidate, target string) bool {
	if candidate == target {
		return true
	}
	// The step bound stops a cyclic table from looping.
	cur := candidate
	for steps := 0; steps <= len(t); steps++ {
		parent, ok := t[cur]
		if !ok || parent == "" {
			return false
		}
		if parent == target {
			return true
		}
		cur = parent
	}
	return false
}

// Lineage returns role followed by each of its ancestors, nearest first.
func (t RoleTaxonomy) Lineage(role string) []string {
	out := []string{role}
	cur := role
	for steps := 0; steps <= len(t); steps++ {
		parent, ok := t[cur]
		if !ok || parent == "" {
			break
		}
		out = append(out, parent)
		cur = parent
	}
	return out
}

// With returns a copy of t extended with extra parent links. Entries in
// extra override existing ones.
func (t RoleTaxonomy) With(extra map[string]string) RoleTaxonomy {
	merged := make(RoleTaxonomy, len(t)+len(extra))
	for k, v := range t {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}
