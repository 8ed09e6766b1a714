package mocks

import (
	"image"

	"github.com/user/skipcut/pkg/ports"
)

// FrameMatcher is a mock implementation of ports.FrameMatcher.
type FrameMatcher struct {
	MatchFunc func(frame image.Image) (ports.Match, error)
	NameFunc  func() string

	// Recorded calls for verification
	MatchCalls int
}

func (m *FrameMatcher) Match(frame image.Image) (ports.Match, error) {
	m.MatchCalls++
	if m.MatchFunc != nil {
		return m.MatchFunc(frame)
	}
	return ports.Match{}, nil
}

func (m *FrameMatcher) Name() string {
	if m.NameFunc != nil {
		return m.NameFunc()
	}
	return "mock"
}
