package platform

import (
	"fmt"
	"strconv"
	"strings"
)

// Bounds represents a screen rectangle.
type Bounds struct {
	X, Y, Width, Height int
}

// Array returns b in the [x, y, width, height] layout used by model.Element.
func (b Bounds) Array() [4]int {
	return [4]int{b.X, b.Y, b.Width, b.Height}
}

// ParseBBox parses a "x,y,w,h" string into a Bounds.
func ParseBBox(s string) (*Bounds, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("invalid bbox %q: expected x,y,w,h", s)
	}
	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid bbox %q: %w", s, err)
		}
		vals[i] = v
	}
	return &Bounds{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, nil
}

// ReadOptions controls what elements to read and how to filter them.
type ReadOptions struct {
	Path  string   // Snapshot file to read
	Depth int      // Max traversal depth (0 = unlimited)
	Roles []string // Only include these roles or their sub-roles (empty = all)
	BBox  *Bounds  // Only include elements within this bounding box (nil = no filter)
	Prune bool     // Drop anonymous group/other containers
}
