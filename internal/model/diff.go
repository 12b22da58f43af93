package model

import (
	"crypto/sha256"
	"fmt"
	"strconv"
)

// ElementChange is an element present in both trees whose state differs.
type ElementChange struct {
	ID      int                  `yaml:"i"            json:"i"`
	Role    string               `yaml:"r"            json:"r"`
	Title   string               `yaml:"t,omitempty"  json:"t,omitempty"`
	Path    string               `yaml:"p,omitempty"  json:"p,omitempty"`
	Changes map[string][2]string `yaml:"changes"      json:"changes"`
}

// TreeDiff is the result of comparing two element snapshots.
type TreeDiff struct {
	Added     []FlatElement   `yaml:"added,omitempty"   json:"added,omitempty"`
	Removed   []FlatElement   `yaml:"removed,omitempty" json:"removed,omitempty"`
	Changed   []ElementChange `yaml:"changed,omitempty" json:"changed,omitempty"`
	Unchanged int             `yaml:"unchanged"         json:"unchanged"`
}

// Empty reports whether the two snapshots were equivalent.
func (d TreeDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// ElementHash computes a stable identity for an element from its semantic
// content and position in the tree, so elements can be matched across
// snapshots where sequential IDs shift. Mutable state is not part of it.
func ElementHash(el FlatElement) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s|%s|%s", el.Role, el.Title, el.Description, el.Subrole, el.Path)
	return fmt.Sprintf("%x", h.Sum(nil))[:16]
}

// identities keys each element by its hash plus its occurrence count, so
// identical siblings pair up in document order.
func identities(elements []FlatElement) []string {
	seen := make(map[string]int, len(elements))
	keys := make([]string, len(elements))
	for i, el := range elements {
		h := ElementHash(el)
		keys[i] = h + "#" + strconv.Itoa(seen[h])
		seen[h]++
	}
	return keys
}

// DiffTrees compares two flat element lists. Elements are matched by
// identity, then compared on value, bounds, focus, selection, and enabled
// state. Added and changed elements follow curr's order; removed follow prev's.
func DiffTrees(prev, curr []FlatElement) TreeDiff {
	prevKeys := identities(prev)
	currKeys := identities(curr)

	prevByKey := make(map[string]FlatElement, len(prev))
	for i, el := range prev {
		prevByKey[prevKeys[i]] = el
	}
	currSet := make(map[string]bool, len(curr))

	var diff TreeDiff
	for i, el := range curr {
		key := currKeys[i]
		currSet[key] = true
		prevEl, existed := prevByKey[key]
		if !existed {
			diff.Added = append(diff.Added, el)
			continue
		}
		if changes := stateChanges(prevEl, el); len(changes) > 0 {
			diff.Changed = append(diff.Changed, ElementChange{
				ID:      el.ID,
				Role:    el.Role,
				Title:   el.Title,
				Path:    el.Path,
				Changes: changes,
			})
		} else {
			diff.Unchanged++
		}
	}

	for i, el := range prev {
		if !currSet[prevKeys[i]] {
			diff.Removed = append(diff.Removed, el)
		}
	}
	return diff
}

// stateChanges returns the mutable fields that differ, keyed by their short
// field names.
func stateChanges(prev, curr FlatElement) map[string][2]string {
	diffs := make(map[string][2]string)

	if prev.Value != curr.Value {
		diffs["v"] = [2]string{prev.Value, curr.Value}
	}
	if prev.Bounds != curr.Bounds {
		diffs["b"] = [2]string{fmt.Sprint(prev.Bounds), fmt.Sprint(curr.Bounds)}
	}
	if prev.Focused != curr.Focused {
		diffs["f"] = [2]string{strconv.FormatBool(prev.Focused), strconv.FormatBool(curr.Focused)}
	}
	if prev.Selected != curr.Selected {
		diffs["s"] = [2]string{strconv.FormatBool(prev.Selected), strconv.FormatBool(curr.Selected)}
	}
	if pe, ce := isEnabled(prev.Enabled), isEnabled(curr.Enabled); pe != ce {
		diffs["e"] = [2]string{strconv.FormatBool(pe), strconv.FormatBool(ce)}
	}

	if len(diffs) == 0 {
		return nil
	}
	return diffs
}

func isEnabled(e *bool) bool {
	return e == nil || *e
}
