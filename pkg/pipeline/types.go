package pipeline

import (
	"github.com/user/skipcut/pkg/ports"
)

// =============================================================================
// Common Types
// =============================================================================

// DetectionKind classifies a detection's position within a matched run.
type DetectionKind string

const (
	// KindStart marks the first matched frame of a contiguous run.
	KindStart DetectionKind = "start"
	// KindHold marks a matched frame inside a run.
	KindHold DetectionKind = "hold"
	// KindEnd marks the last matched frame of a run.
	KindEnd DetectionKind = "end"
)

// Detection is a point-in-time fingerprint match.
// Detections are ephemeral: produced per matched frame and consumed
// only by the segment builder.
type Detection struct {
	Timestamp  float64       `json:"timestamp"`  // seconds, >= 0
	Confidence float64       `json:"confidence"` // [0, 100]
	Kind       DetectionKind `json:"kind"`
}

// RangeKind classifies a time range as content to keep or remove.
type RangeKind string

const (
	// RangeKeep marks clean content.
	RangeKeep RangeKind = "keep"
	// RangeRemove marks a detected interruption.
	RangeRemove RangeKind = "remove"
)

// TimeRange is an immutable segment of the timeline.
type TimeRange struct {
	ID    string    `json:"id"` // opaque unique token
	Start float64   `json:"start"`
	End   float64   `json:"end"` // End >= Start
	Kind  RangeKind `json:"kind"`
}

// Width returns the duration of the range in seconds.
func (r TimeRange) Width() float64 {
	return r.End - r.Start
}

// TimelineResult is the gap-free partition of [0, TotalDuration] into
// remove and keep ranges. Both lists are sorted ascending by start and
// pairwise non-overlapping; their union tiles the timeline exactly.
type TimelineResult struct {
	Bad           []TimeRange `json:"badSegments"`  // Kind == RangeRemove
	Keep          []TimeRange `json:"keepSegments"` // Kind == RangeKeep
	TotalDuration float64     `json:"totalDuration"`
}

// RemovedDuration returns the total length of the bad segments.
func (t TimelineResult) RemovedDuration() float64 {
	var sum float64
	for _, r := range t.Bad {
		sum += r.Width()
	}
	return sum
}

// Progress is a transient snapshot emitted after each sampled frame.
// One instance per callback; not retained by the pipeline.
type Progress struct {
	ProcessedFrames  int
	TotalFrames      int
	FramesPerSecond  float64 // measured throughput, 0 when elapsed is 0
	CurrentTimestamp float64 // seconds
}

// ProgressFunc receives progress snapshots synchronously with the
// sampling loop. A nil ProgressFunc disables reporting.
type ProgressFunc func(Progress)

// =============================================================================
// Scan Stage Types
// =============================================================================

// ScanInput contains parameters for the sampling + matching stage.
type ScanInput struct {
	Source  ports.MediaSource
	Matcher ports.FrameMatcher

	SampleRate    float64 // samples per second (default: 2.0)
	WorkingWidth  int     // downsample width, 0 = no downsampling (default: 480)
	SeekTimeoutMs int     // per-seek bound in milliseconds (default: 10000)

	OnProgress ProgressFunc
}

// DefaultScanInput returns ScanInput with default values.
func DefaultScanInput() ScanInput {
	return ScanInput{
		SampleRate:    2.0,
		WorkingWidth:  480,
		SeekTimeoutMs: 10000,
	}
}

// ScanResult contains the detections collected during sampling.
// Detections are in non-decreasing timestamp order because sampling
// is strictly sequential.
type ScanResult struct {
	Detections      []Detection
	TotalDuration   float64
	ProcessedFrames int
}

// =============================================================================
// Segmentize Stage Types
// =============================================================================

// SegmentizeInput contains parameters for timeline segmentation.
type SegmentizeInput struct {
	Detections    []Detection
	TotalDuration float64

	MergeGap float64 // max gap between grouped detections in seconds (default: 1.0)
	Padding  float64 // safety margin per side in seconds (default: 0.25)
}

// DefaultSegmentizeInput returns SegmentizeInput with default values.
// MergeGap > 2*Padding keeps padded segments from distinct runs from
// overlapping.
func DefaultSegmentizeInput() SegmentizeInput {
	return SegmentizeInput{
		MergeGap: 1.0,
		Padding:  0.25,
	}
}

// SegmentizeResult contains the built timeline.
type SegmentizeResult struct {
	Timeline TimelineResult
}
