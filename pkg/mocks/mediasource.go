// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"image"
)

// MediaSource is a mock implementation of ports.MediaSource.
type MediaSource struct {
	DurationFunc     func() float64
	SeekFunc         func(ctx context.Context, t float64) error
	CurrentFrameFunc func() (image.Image, error)
	CloseFunc        func() error

	// Recorded calls for verification
	SeekCalls   []float64
	CloseCalled bool
}

func (m *MediaSource) Duration() float64 {
	if m.DurationFunc != nil {
		return m.DurationFunc()
	}
	return 0
}

func (m *MediaSource) Seek(ctx context.Context, t float64) error {
	m.SeekCalls = append(m.SeekCalls, t)
	if m.SeekFunc != nil {
		return m.SeekFunc(ctx, t)
	}
	return nil
}

func (m *MediaSource) CurrentFrame() (image.Image, error) {
	if m.CurrentFrameFunc != nil {
		return m.CurrentFrameFunc()
	}
	return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
}

func (m *MediaSource) Close() error {
	m.CloseCalled = true
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}
