// Package tree locates nodes of a requested type inside an n-ary tree that is
// reachable only through parent/child accessors.
//
// The tree itself is owned by the caller. Searches never mutate or retain
// nodes beyond the returned result, and the tree must not be modified while a
// search is running.
package tree

import "reflect"

// Node is the accessor surface a tree must expose to be searched.
// Parent returns nil for a root.
type Node interface {
	ChildCount() int
	ChildAt(i int) Node
	Parent() Node
}

// Match reports whether a node should be included in a search result.
type Match func(Node) bool

// FindDescendants returns every descendant of root that is a T, in pre-order.
// A node is a T when the type assertion n.(T) succeeds: the same concrete
// type, or any type implementing T when T is an interface. Matching nodes are
// still searched, so nested matches are returned after their ancestors.
// The root itself is never tested. A nil root yields an empty slice.
func FindDescendants[T any](root Node) []T {
	result := []T{}
	if isNil(root) {
		return result
	}
	collectTyped(root, &result)
	return result
}

func collectTyped[T any](n Node, result *[]T) {
	for i := 0; i < n.ChildCount(); i++ {
		child := n.ChildAt(i)
		if isNil(child) {
			continue
		}
		if t, ok := child.(T); ok {
			*result = append(*result, t)
		}
		collectTyped(child, result)
	}
}

// FindNearestAncestor walks up from start and returns the first ancestor that
// is a T. start itself is never considered. The boolean is false when start is
// nil or no ancestor up to the root matches.
func FindNearestAncestor[T any](start Node) (T, bool) {
	var zero T
	if isNil(start) {
		return zero, false
	}
	for p := start.Parent(); !isNil(p); p = p.Parent() {
		if t, ok := p.(T); ok {
			return t, true
		}
	}
	return zero, false
}

// Descendants is the predicate form of FindDescendants.
func Descendants(root Node, match Match) []Node {
	result := []Node{}
	if isNil(root) || match == nil {
		return result
	}
	collect(root, match, &result)
	return result
}

func collect(n Node, match Match, result *[]Node) {
	for i := 0; i < n.ChildCount(); i++ {
		child := n.ChildAt(i)
		if isNil(child) {
			continue
		}
		if match(child) {
			*result = append(*result, child)
		}
		collect(child, match, result)
	}
}

// NearestAncestor is the predicate form of FindNearestAncestor. It returns nil
// when nothing matches.
func NearestAncestor(start Node, match Match) Node {
	if isNil(start) || match == nil {
		return nil
	}
	for p := start.Parent(); !isNil(p); p = p.Parent() {
		if match(p) {
			return p
		}
	}
	return nil
}

// isNil treats a typed nil pointer stored in a Node as no node.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func:
		return v.IsNil()
	}
	return false
}
