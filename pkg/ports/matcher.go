package ports

import (
	"image"
)

// Match is the outcome of testing one frame against the fingerprint.
type Match struct {
	// Matched reports whether the fingerprint was found in the frame.
	Matched bool

	// Confidence is the match strength scaled to [0, 100].
	// Populated even for non-matches (the best score seen).
	Confidence float64
}

// FrameMatcher tests a single frame against a loaded fingerprint.
// Implementations are stateless per invocation: given the same frame
// and the same loaded reference, Match always returns the same result.
type FrameMatcher interface {
	// Match analyzes one frame. It returns ErrFrameDecode-wrapping
	// errors when the pixel buffer is unusable.
	Match(frame image.Image) (Match, error)

	// Name identifies the matching strategy for logs and debug output.
	Name() string
}

// ReferenceLoader loads the reference fingerprint image.
type ReferenceLoader interface {
	// Load decodes reference image bytes into a pixel buffer.
	Load(data []byte) (image.Image, error)

	// LoadFile reads and decodes a reference image from a file path.
	LoadFile(path string) (image.Image, error)
}
