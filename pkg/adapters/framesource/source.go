// Package framesource provides a MediaSource over an in-memory slice
// of decoded frames. It serves embedders that already hold decoded
// video and the test suite.
package framesource

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sort"

	"github.com/user/skipcut/pkg/pipeline"
	"github.com/user/skipcut/pkg/ports"
)

// ErrNotSeeked is returned when CurrentFrame is called before Seek.
var ErrNotSeeked = errors.New("framesource: no seek performed yet")

// Source is a seekable MediaSource backed by decoded frames.
type Source struct {
	frames   []ports.VideoFrame
	duration float64
	current  image.Image
}

// New creates a Source from decoded frames and a total duration.
// Frames are sorted by timestamp; at least one frame is required.
func New(frames []ports.VideoFrame, duration float64) (*Source, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("%w: no frames", pipeline.ErrMediaLoad)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("%w: non-positive duration", pipeline.ErrMediaLoad)
	}
	sorted := make([]ports.VideoFrame, len(frames))
	copy(sorted, frames)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})
	return &Source{frames: sorted, duration: duration}, nil
}

// Duration returns the total duration in seconds.
func (s *Source) Duration() float64 {
	return s.duration
}

// Seek positions the source at the frame whose timestamp is closest
// below or equal to t. Seeking before the first frame selects the
// first frame.
func (s *Source) Seek(ctx context.Context, t float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// First frame with timestamp > t; the frame before it is current.
	idx := sort.Search(len(s.frames), func(i int) bool {
		return s.frames[i].Timestamp > t
	})
	if idx > 0 {
		idx--
	}
	s.current = s.frames[idx].Image
	return nil
}

// CurrentFrame returns the frame at the current seek position.
func (s *Source) CurrentFrame() (image.Image, error) {
	if s.current == nil {
		return nil, ErrNotSeeked
	}
	return s.current, nil
}

// Close releases nothing; frames are caller-owned.
func (s *Source) Close() error {
	return nil
}

// Ensure Source implements ports.MediaSource
var _ ports.MediaSource = (*Source)(nil)
