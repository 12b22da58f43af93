// Package suite runs data-driven checks against a UI element tree: every
// combination of a test matrix is substituted into a set of checks, and each
// check searches the tree for the controls it expects.
package suite

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mj1618/desktop-matrix/internal/combo"
	"gopkg.in/yaml.v3"
)

// Expectation kinds.
const (
	ExpectExists = "exists"
	ExpectGone   = "gone"
	ExpectCount  = "count"
)

// Check is one assertion evaluated for every combination. Find, Text and
// Within may reference dimensions as ${name}.
type Check struct {
	Name   string `yaml:"name,omitempty"   json:"name,omitempty"`
	Find   string `yaml:"find"             json:"find"`             // role to search for, sub-roles included
	Text   string `yaml:"text,omitempty"   json:"text,omitempty"`   // case-insensitive substring of title/value/description
	Within string `yaml:"within,omitempty" json:"within,omitempty"` // role some ancestor must have
	Expect string `yaml:"expect,omitempty" json:"expect,omitempty"` // exists (default), gone, count
	Count  int    `yaml:"count,omitempty"  json:"count,omitempty"`
}

// Suite is a parsed suite file.
type Suite struct {
	Name        string    `yaml:"name"`
	Tree        string    `yaml:"tree"`
	Matrix      yaml.Node `yaml:"matrix"`
	Checks      []Check   `yaml:"checks"`
	StopOnError bool      `yaml:"stop_on_error"`

	// Dimensions is decoded from Matrix by Parse; an absent matrix gives an
	// empty, non-nil list. A nil list is rejected by the engine.
	Dimensions []combo.Dimension `yaml:"-"`
}

// ErrInvalidSuite wraps structural problems in a suite definition.
var ErrInvalidSuite = errors.New("invalid suite")

// Load reads a suite file. A relative tree path is resolved against the
// suite file's directory.
func Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suite: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Tree != "" && !filepath.IsAbs(s.Tree) {
		s.Tree = filepath.Join(filepath.Dir(path), s.Tree)
	}
	return s, nil
}

// Parse decodes and validates suite YAML.
func Parse(data []byte) (*Suite, error) {
	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode suite: %w", err)
	}
	s.Dimensions = []combo.Dimension{}
	if s.Matrix.Kind != 0 {
		dims, err := combo.DimensionsFromNode(&s.Matrix)
		if err != nil {
			return nil, fmt.Errorf("matrix: %w", err)
		}
		s.Dimensions = dims
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the suite structure. Dimension names are validated again
// when the engine is built.
func (s *Suite) Validate() error {
	if len(s.Checks) == 0 {
		return fmt.Errorf("no checks defined: %w", ErrInvalidSuite)
	}
	for i, c := range s.Checks {
		switch c.Expect {
		case "", ExpectExists, ExpectGone:
		case ExpectCount:
			if c.Count < 0 {
				return fmt.Errorf("check %d: negative count: %w", i+1, ErrInvalidSuite)
			}
		default:
			return fmt.Errorf("check %d: unknown expect %q (use exists, gone, or count): %w", i+1, c.Expect, ErrInvalidSuite)
		}
	}
	if _, err := combo.FromDimensions(s.Dimensions); err != nil {
		return fmt.Errorf("matrix: %w", err)
	}
	return nil
}

// Label returns the check name, or a description built from its fields.
func (c Check) Label() string {
	if c.Name != "" {
		return c.Name
	}
	label := c.Find
	if label == "" {
		label = "*"
	}
	if c.Text != "" {
		label += fmt.Sprintf(" %q", c.Text)
	}
	if c.Within != "" {
		label += " within " + c.Within
	}
	return label
}
