package platform

import (
	"errors"
	"fmt"
)

// Provider bundles the backends a command needs.
type Provider struct {
	Reader Reader
}

// ErrUnsupported is returned when no reader can handle a source.
var ErrUnsupported = errors.New("unsupported tree source")

// NewProviderFunc can replace the default provider, e.g. in tests.
var NewProviderFunc func() (*Provider, error)

// NewProvider returns the configured Provider. Without an override it reads
// tree snapshots from fixture files.
func NewProvider() (*Provider, error) {
	if NewProviderFunc != nil {
		p, err := NewProviderFunc()
		if err != nil {
			return nil, fmt.Errorf("create provider: %w", err)
		}
		return p, nil
	}
	return &Provider{Reader: NewFileReader()}, nil
}
