// Package nullsink provides a no-op debug sink.
package nullsink

import (
	"image"

	"github.com/user/skipcut/pkg/ports"
)

// Sink discards all debug output.
type Sink struct{}

// New creates a new null sink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false; callers can skip producing debug artifacts.
func (s *Sink) Enabled() bool {
	return false
}

// SaveTimelineJSON does nothing.
func (s *Sink) SaveTimelineJSON(data []byte) error {
	return nil
}

// SaveTimelineImage does nothing.
func (s *Sink) SaveTimelineImage(img image.Image) error {
	return nil
}

// SaveMatchedFrame does nothing.
func (s *Sink) SaveMatchedFrame(index int, img image.Image) error {
	return nil
}

// SaveMask does nothing.
func (s *Sink) SaveMask(index int, img image.Image) error {
	return nil
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
