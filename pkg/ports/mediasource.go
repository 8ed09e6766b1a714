// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
	"image"
)

// MediaSource abstracts a seekable video source.
// Implementations own decoding; the pipeline only asks for frames at
// specific timestamps.
type MediaSource interface {
	// Duration returns the total duration of the source in seconds.
	Duration() float64

	// Seek positions the source at the given timestamp in seconds and
	// blocks until the frame at that position is ready. The context
	// bounds how long a seek may take.
	Seek(ctx context.Context, t float64) error

	// CurrentFrame returns the frame at the current seek position.
	// The returned image is valid until the next Seek call.
	CurrentFrame() (image.Image, error)

	// Close releases decoder resources.
	Close() error
}

// VideoFrame is a decoded frame with its presentation timestamp.
// Used by in-memory sources and tests.
type VideoFrame struct {
	Image     image.Image
	Timestamp float64 // seconds
}
