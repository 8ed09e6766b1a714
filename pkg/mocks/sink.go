package mocks

import (
	"image"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	EnabledFunc bool

	// Recorded calls for verification
	TimelineJSON      []byte
	TimelineImages    []image.Image
	MatchedFrameCalls []int
	MaskCalls         []int
}

func (m *DebugSink) Enabled() bool {
	return m.EnabledFunc
}

func (m *DebugSink) SaveTimelineJSON(data []byte) error {
	m.TimelineJSON = data
	return nil
}

func (m *DebugSink) SaveTimelineImage(img image.Image) error {
	m.TimelineImages = append(m.TimelineImages, img)
	return nil
}

func (m *DebugSink) SaveMatchedFrame(index int, img image.Image) error {
	m.MatchedFrameCalls = append(m.MatchedFrameCalls, index)
	return nil
}

func (m *DebugSink) SaveMask(index int, img image.Image) error {
	m.MaskCalls = append(m.MaskCalls, index)
	return nil
}
