// Package combo enumerates the full Cartesian product of named value sets, one
// combination at a time, for data-driven test runs.
//
// Enumeration follows odometer order: the last dimension varies fastest and
// the first dimension varies slowest, matching nested loops written in
// dimension order.
package combo

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"strings"
)

// ErrInvalidArgument is returned when dimension definitions are malformed.
var ErrInvalidArgument = errors.New("invalid argument")

// Dimension is one named axis of a test matrix.
type Dimension struct {
	Name   string `yaml:"name"   json:"name"`
	Values []any  `yaml:"values" json:"values"`
}

// Engine walks the combinations of a fixed set of dimensions.
// An Engine is not safe for concurrent use.
type Engine struct {
	dims      []Dimension
	cursor    []int
	started   bool
	exhausted bool
}

// FromDimensions validates dims and returns an engine positioned before the
// first combination. An empty list is the zero-dimension product, which has
// exactly one (empty) combination. A nil list is rejected.
func FromDimensions(dims []Dimension) (*Engine, error) {
	if dims == nil {
		return nil, fmt.Errorf("nil dimension list: %w", ErrInvalidArgument)
	}
	copied := make([]Dimension, len(dims))
	for i, d := range dims {
		if strings.TrimSpace(d.Name) == "" {
			return nil, fmt.Errorf("dimension %d: empty name: %w", i, ErrInvalidArgument)
		}
		copied[i] = Dimension{Name: d.Name, Values: append([]any(nil), d.Values...)}
	}

	e := &Engine{dims: copied, cursor: make([]int, len(copied))}
	for _, d := range copied {
		if len(d.Values) == 0 {
			e.exhausted = true
			break
		}
	}
	return e, nil
}

// Next writes the next combination into out and reports whether one was
// produced. Once it returns false it keeps returning false. A nil out only
// advances the cursor. When two dimensions share a name the later one wins.
func (e *Engine) Next(out map[string]any) bool {
	if e.exhausted {
		return false
	}
	if e.started && !e.advance() {
		e.exhausted = true
		return false
	}
	e.started = true
	if out != nil {
		for i, d := range e.dims {
			out[d.Name] = d.Values[e.cursor[i]]
		}
	}
	return true
}

// advance moves the cursor one step, carrying from the last dimension
// towards the first. It returns false after the final combination.
func (e *Engine) advance() bool {
	for i := len(e.cursor) - 1; i >= 0; i-- {
		e.cursor[i]++
		if e.cursor[i] < len(e.dims[i].Values) {
			return true
		}
		e.cursor[i] = 0
	}
	return false
}

// Count returns the total number of combinations, regardless of how many
// have already been produced. A product too large for an int saturates at
// math.MaxInt.
func (e *Engine) Count() int {
	n := 1
	for _, d := range e.dims {
		size := len(d.Values)
		if size == 0 {
			return 0
		}
		if n > math.MaxInt/size {
			n = math.MaxInt
			continue
		}
		n *= size
	}
	return n
}

// Names returns the dimension names in definition order.
func (e *Engine) Names() []string {
	names := make([]string, len(e.dims))
	for i, d := range e.dims {
		names[i] = d.Name
	}
	return names
}

// All validates dims and yields every combination with its zero-based index.
// Each yielded map is freshly allocated.
func All(dims []Dimension) (iter.Seq2[int, map[string]any], error) {
	e, err := FromDimensions(dims)
	if err != nil {
		return nil, err
	}
	return e.All(), nil
}

// All yields the engine's remaining combinations with their zero-based index
// in this sequence. Each yielded map is freshly allocated.
func (e *Engine) All() iter.Seq2[int, map[string]any] {
	return func(yield func(int, map[string]any) bool) {
		for i := 0; ; i++ {
			c := make(map[string]any, len(e.dims))
			if !e.Next(c) {
				return
			}
			if !yield(i, c) {
				return
			}
		}
	}
}
