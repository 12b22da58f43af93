package tree

import "reflect"

// TypeMatcher decides whether a candidate type is equal to, or a subtype of,
// a target type. K is whatever type descriptor the tree uses: role codes,
// reflect.Type, enum discriminants.
type TypeMatcher[K comparable] interface {
	Matches(candidate, target K) bool
}

// Typed is a Node that can report its own type descriptor.
type Typed[K comparable] interface {
	Node
	TypeOf() K
}

// IsA returns a Match that accepts nodes implementing Typed[K] whose type
// matches target under m. Nodes that do not report a type never match.
func IsA[K comparable](m TypeMatcher[K], target K) Match {
	return func(n Node) bool {
		t, ok := n.(Typed[K])
		if !ok {
			return false
		}
		return m.Matches(t.TypeOf(), target)
	}
}

// ReflectMatcher matches Go types: equal types, or a candidate implementing an
// interface target.
type ReflectMatcher struct{}

// Matches implements TypeMatcher.
func (ReflectMatcher) Matches(candidate, target reflect.Type) bool {
	if candidate == nil || target == nil {
		return false
	}
	if candidate == target {
		return true
	}
	return target.Kind() == reflect.Interface && candidate.Implements(target)
}

// OfType returns a Match over the node's dynamic Go type using ReflectMatcher.
func OfType(target reflect.Type) Match {
	var m ReflectMatcher
	return func(n Node) bool {
		return m.Matches(reflect.TypeOf(n), target)
	}
}
