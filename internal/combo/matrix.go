package combo

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadMatrix decodes dimensions from YAML. Two layouts are accepted:
//
//	# list form
//	- name: browser
//	  values: [safari, chrome]
//
//	# mapping form, dimension order follows the document
//	browser: [safari, chrome]
//	zoom: [1, 2]
func LoadMatrix(r io.Reader) ([]Dimension, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return []Dimension{}, nil
		}
		return nil, fmt.Errorf("decode matrix: %w", err)
	}
	return DimensionsFromNode(&doc)
}

// LoadMatrixFile reads a YAML matrix from path.
func LoadMatrixFile(path string) ([]Dimension, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open matrix: %w", err)
	}
	defer f.Close()
	return LoadMatrix(f)
}

// DimensionsFromNode converts an already parsed YAML node. It is used when a
// matrix is embedded in a larger document.
func DimensionsFromNode(n *yaml.Node) ([]Dimension, error) {
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return []Dimension{}, nil
		}
		n = n.Content[0]
	}

	switch n.Kind {
	case yaml.SequenceNode:
		dims := make([]Dimension, 0, len(n.Content))
		for i, item := range n.Content {
			var d Dimension
			if err := item.Decode(&d); err != nil {
				return nil, fmt.Errorf("dimension %d: %w", i, err)
			}
			dims = append(dims, d)
		}
		return dims, nil
	case yaml.MappingNode:
		dims := make([]Dimension, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i], n.Content[i+1]
			d := Dimension{Name: key.Value}
			if err := val.Decode(&d.Values); err != nil {
				return nil, fmt.Errorf("dimension %q: %w", key.Value, err)
			}
			dims = append(dims, d)
		}
		return dims, nil
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return []Dimension{}, nil
		}
	}
	return nil, fmt.Errorf("matrix must be a list or mapping of dimensions, got %s at line %d: %w", kindName(n.Kind), n.Line, ErrInvalidArgument)
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	}
	return "document"
}
