package platform

import "github.com/mj1618/desktop-matrix/internal/model"

// Reader loads a UI element tree for the specified target.
type Reader interface {
	// ReadElements returns the element tree described by opts.
	ReadElements(opts ReadOptions) ([]model.Element, error)
}
