// Package summarizer provides summary generation for analysis results.
package summarizer

import (
	"time"

	"github.com/user/skipcut/pkg/pipeline"
)

// Summary contains all data collected during one analysis run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Media information
	Media MediaInfo

	// Analysis settings and statistics
	Analysis AnalysisInfo

	// Timeline results
	Timeline TimelineInfo
}

// MediaInfo describes the analyzed source.
type MediaInfo struct {
	Path        string
	DurationSec float64
}

// AnalysisInfo contains run settings and throughput statistics.
type AnalysisInfo struct {
	Strategy        string
	SampleRate      float64
	ProcessedFrames int
	DetectionCount  int
	ElapsedMs       int
}

// TimelineInfo summarizes the resulting partition.
type TimelineInfo struct {
	RemoveCount int
	KeepCount   int
	RemovedSec  float64
	KeptSec     float64
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithMedia sets media information.
func (b *Builder) WithMedia(path string, durationSec float64) *Builder {
	b.summary.Media = MediaInfo{
		Path:        path,
		DurationSec: durationSec,
	}
	return b
}

// WithAnalysis sets analysis settings and statistics.
func (b *Builder) WithAnalysis(info AnalysisInfo) *Builder {
	b.summary.Analysis = info
	return b
}

// WithTimeline derives timeline statistics from a result.
func (b *Builder) WithTimeline(t pipeline.TimelineResult) *Builder {
	removed := t.RemovedDuration()
	b.summary.Timeline = TimelineInfo{
		RemoveCount: len(t.Bad),
		KeepCount:   len(t.Keep),
		RemovedSec:  removed,
		KeptSec:     t.TotalDuration - removed,
	}
	return b
}

// Build returns the assembled Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
