package model

import "strings"

// FilterElements applies filters to a slice of elements, returning only
// matching elements. An element passes the role filter when its role is one
// of roles or a sub-role of one under tax. Non-matching elements are dropped
// and their matching descendants are promoted in their place.
func FilterElements(elements []Element, tax RoleTaxonomy, roles []string, bbox *[4]int) []Element {
	if len(roles) == 0 && bbox == nil {
		return elements
	}

	var result []Element
	for _, el := range elements {
		var filteredChildren []Element
		if len(el.Children) > 0 {
			filteredChildren = FilterElements(el.Children, tax, roles, bbox)
		}

		roleMatch := len(roles) == 0 || roleMatchesAny(tax, el.Role, roles)
		bboxMatch := bbox == nil || boundsIntersect(el.Bounds, *bbox)

		if roleMatch && bboxMatch {
			filtered := el
			filtered.Children = filteredChildren
			result = append(result, filtered)
		} else if len(filteredChildren) > 0 {
			result = append(result, filteredChildren...)
		}
	}
	return result
}

func roleMatchesAny(tax RoleTaxonomy, role string, targets []string) bool {
	for _, t := range targets {
		if tax.Matches(role, t) {
			return true
		}
	}
	return false
}

// FilterByText keeps elements whose title, value, or description contains
// text (case-insensitive), along with every ancestor of a match.
func FilterByText(elements []Element, text string) []Element {
	if text == "" {
		return elements
	}
	textLower := strings.ToLower(text)
	var result []Element
	for _, el := range elements {
		matched := TextMatches(el, textLower)
		childMatches := FilterByText(el.Children, text)

		if matched || len(childMatches) > 0 {
			filtered := el
			filtered.Children = childMatches
			result = append(result, filtered)
		}
	}
	return result
}

// TextMatches reports whether el's title, value, or description contains
// textLower, which must already be lower-cased.
func TextMatches(el Element, textLower string) bool {
	return strings.Contains(strings.ToLower(el.Title), textLower) ||
		strings.Contains(strings.ToLower(el.Value), textLower) ||
		strings.Contains(strings.ToLower(el.Description), textLower)
}

// isEmptyGroup returns true if the element has role "group" or "other"
// and has no title, value, or description.
func isEmptyGroup(el Element) bool {
	return (el.Role == "group" || el.Role == "other") &&
		el.Title == "" && el.Value == "" && el.Description == ""
}

// PruneEmptyGroups removes anonymous group/other nodes and promotes their
// children to the parent.
func PruneEmptyGroups(elements []Element) []Element {
	var result []Element
	for _, el := range elements {
		prunedChildren := PruneEmptyGroups(el.Children)

		if isEmptyGroup(el) {
			result = append(result, prunedChildren...)
		} else {
			pruned := el
			pruned.Children = prunedChildren
			result = append(result, pruned)
		}
	}
	return result
}

// TruncateDepth drops everything below maxDepth levels. Zero means unlimited.
func TruncateDepth(elements []Element, maxDepth int) []Element {
	if maxDepth <= 0 {
		return elements
	}
	result := make([]Element, len(elements))
	for i, el := range elements {
		result[i] = el
		if maxDepth == 1 {
			result[i].Children = nil
		} else {
			result[i].Children = TruncateDepth(el.Children, maxDepth-1)
		}
	}
	return result
}

// boundsIntersect checks if two [x, y, width, height] rectangles overlap.
func boundsIntersect(a, b [4]int) bool {
	ax1, ay1, ax2, ay2 := a[0], a[1], a[0]+a[2], a[1]+a[3]
	bx1, by1, bx2, by2 := b[0], b[1], b[0]+b[2], b[1]+b[3]
	return ax1 < bx2 && ax2 > bx1 && ay1 < by2 && ay2 > by1
}
