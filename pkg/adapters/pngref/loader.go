// Package pngref provides a ReferenceLoader for PNG and JPEG
// fingerprint images.
package pngref

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/user/skipcut/pkg/pipeline"
	"github.com/user/skipcut/pkg/ports"
)

// Loader decodes reference fingerprint images.
type Loader struct{}

// New creates a new Loader.
func New() *Loader {
	return &Loader{}
}

// Load decodes reference image bytes.
func (l *Loader) Load(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pipeline.ErrReferenceLoad, err)
	}
	return img, nil
}

// LoadFile reads and decodes a reference image from a file.
func (l *Loader) LoadFile(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", pipeline.ErrReferenceLoad, path, err)
	}
	return l.Load(data)
}

// Ensure Loader implements ports.ReferenceLoader
var _ ports.ReferenceLoader = (*Loader)(nil)
