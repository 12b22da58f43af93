package platform

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mj1618/desktop-matrix/internal/model"
	"gopkg.in/yaml.v3"
)

// snapshot is the wrapped fixture layout, matching what `read` prints.
type snapshot struct {
	App      string          `yaml:"app"      json:"app"`
	Window   string          `yaml:"window"   json:"window"`
	Elements []model.Element `yaml:"elements" json:"elements"`
}

// FileReader reads element tree snapshots from YAML or JSON files. A file
// holds either a bare list of elements or an object with an "elements" list.
type FileReader struct {
	Taxonomy model.RoleTaxonomy
}

// NewFileReader returns a reader using the default role taxonomy.
func NewFileReader() *FileReader {
	return &FileReader{Taxonomy: model.DefaultTaxonomy}
}

// ReadElements implements Reader.
func (r *FileReader) ReadElements(opts ReadOptions) ([]model.Element, error) {
	if opts.Path == "" {
		return nil, fmt.Errorf("no snapshot path given: %w", ErrUnsupported)
	}
	data, err := os.ReadFile(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	elements, err := DecodeElements(data, filepath.Ext(opts.Path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opts.Path, err)
	}
	return r.apply(elements, opts), nil
}

func (r *FileReader) apply(elements []model.Element, opts ReadOptions) []model.Element {
	normalizeRoles(elements)
	model.AssignIDs(elements)
	if opts.Prune {
		elements = model.PruneEmptyGroups(elements)
	}
	elements = model.TruncateDepth(elements, opts.Depth)

	var bbox *[4]int
	if opts.BBox != nil {
		b := opts.BBox.Array()
		bbox = &b
	}
	tax := r.Taxonomy
	if tax == nil {
		tax = model.DefaultTaxonomy
	}
	return model.FilterElements(elements, tax, model.ExpandRoles(opts.Roles), bbox)
}

// DecodeElements parses snapshot bytes. ext selects JSON for ".json" and
// YAML otherwise.
func DecodeElements(data []byte, ext string) ([]model.Element, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []model.Element{}, nil
	}
	unmarshal := yaml.Unmarshal
	if strings.EqualFold(ext, ".json") {
		unmarshal = json.Unmarshal
	}

	var list []model.Element
	if err := unmarshal(data, &list); err == nil {
		return list, nil
	}
	var wrapped snapshot
	if err := unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return wrapped.Elements, nil
}

// normalizeRoles converts raw accessibility roles (AXButton, ...) to compact
// codes. Roles that are already compact are left alone.
func normalizeRoles(elements []model.Element) {
	for i := range elements {
		if strings.HasPrefix(elements[i].Role, "AX") {
			elements[i].Role = model.MapRole(elements[i].Role)
		}
		normalizeRoles(elements[i].Children)
	}
}
