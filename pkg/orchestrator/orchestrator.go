// Package orchestrator coordinates the analysis pipeline stages.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/ideamans/go-l10n"

	"github.com/user/skipcut/pkg/pipeline"
	"github.com/user/skipcut/pkg/ports"
)

// Config contains the tunable parameters for one analysis run.
// The defaults reflect observed values; none are guaranteed optimal.
type Config struct {
	// Sampling
	SampleRate    float64 // samples per second
	WorkingWidth  int     // downsample width, 0 disables downsampling
	SeekTimeoutMs int     // per-seek bound

	// Grouping
	MergeGap float64 // seconds
	Padding  float64 // seconds
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		SampleRate:    2.0,
		WorkingWidth:  480,
		SeekTimeoutMs: 10000,
		MergeGap:      1.0,
		Padding:       0.25,
	}
}

// Request describes one analysis run.
type Request struct {
	Source     ports.MediaSource
	Matcher    ports.FrameMatcher
	Config     Config
	OnProgress pipeline.ProgressFunc
}

// RunResult contains the timeline plus run statistics for summaries.
type RunResult struct {
	Timeline pipeline.TimelineResult

	ProcessedFrames int
	DetectionCount  int
	ElapsedMs       int
}

// TimelineRenderer renders a timeline for the debug sink.
type TimelineRenderer interface {
	Render(t pipeline.TimelineResult) image.Image
}

// Analyzer owns the pipeline stages and the exclusivity guard: at most
// one run may be in flight per Analyzer. Concurrent Run calls are
// rejected with ErrAnalysisInProgress; queueing is the caller's
// business.
type Analyzer struct {
	scanStage       pipeline.Stage[pipeline.ScanInput, pipeline.ScanResult]
	segmentizeStage pipeline.Stage[pipeline.SegmentizeInput, pipeline.SegmentizeResult]
	renderer        TimelineRenderer // optional, for debug output
	sink            ports.DebugSink
	logger          ports.Logger

	mu sync.Mutex
}

// New creates a new Analyzer.
func New(
	scanStage pipeline.Stage[pipeline.ScanInput, pipeline.ScanResult],
	segmentizeStage pipeline.Stage[pipeline.SegmentizeInput, pipeline.SegmentizeResult],
	renderer TimelineRenderer,
	sink ports.DebugSink,
	logger ports.Logger,
) *Analyzer {
	return &Analyzer{
		scanStage:       scanStage,
		segmentizeStage: segmentizeStage,
		renderer:        renderer,
		sink:            sink,
		logger:          logger,
	}
}

// Run executes the complete analysis. A run either returns a complete
// timeline or one terminal error; partial detections are never
// surfaced. Given identical inputs, re-running yields an identical
// partition.
func (a *Analyzer) Run(ctx context.Context, req Request) (RunResult, error) {
	if !a.mu.TryLock() {
		return RunResult{}, pipeline.ErrAnalysisInProgress
	}
	defer a.mu.Unlock()

	start := time.Now()
	a.logger.Info(l10n.T("Starting analysis"))

	// 1. Sample and match
	scanInput := buildScanInput(req)
	scan, err := a.scanStage.Execute(ctx, scanInput)
	if err != nil {
		a.logger.Error(l10n.F("Analysis failed during scan: %s", err))
		return RunResult{}, fmt.Errorf("scan stage: %w", err)
	}
	a.logger.Info(l10n.F("Scanned %d frames, %d detections", scan.ProcessedFrames, len(scan.Detections)))

	// 2. Segment the timeline
	segInput := buildSegmentizeInput(req.Config, scan)
	seg, err := a.segmentizeStage.Execute(ctx, segInput)
	if err != nil {
		a.logger.Error(l10n.F("Analysis failed during segmentation: %s", err))
		return RunResult{}, fmt.Errorf("segmentize stage: %w", err)
	}
	a.logger.Info(l10n.F("Timeline built: %d remove, %d keep segments",
		len(seg.Timeline.Bad), len(seg.Timeline.Keep)))

	// Save timeline debug output
	if a.sink.Enabled() {
		if data, err := json.MarshalIndent(seg.Timeline, "", "  "); err == nil {
			a.sink.SaveTimelineJSON(data)
		}
		if a.renderer != nil {
			a.sink.SaveTimelineImage(a.renderer.Render(seg.Timeline))
		}
	}

	a.logger.Info(l10n.T("Analysis completed"))

	return RunResult{
		Timeline:        seg.Timeline,
		ProcessedFrames: scan.ProcessedFrames,
		DetectionCount:  len(scan.Detections),
		ElapsedMs:       int(time.Since(start).Milliseconds()),
	}, nil
}

func buildScanInput(req Request) pipeline.ScanInput {
	return pipeline.ScanInput{
		Source:        req.Source,
		Matcher:       req.Matcher,
		SampleRate:    req.Config.SampleRate,
		WorkingWidth:  req.Config.WorkingWidth,
		SeekTimeoutMs: req.Config.SeekTimeoutMs,
		OnProgress:    req.OnProgress,
	}
}

func buildSegmentizeInput(config Config, scan pipeline.ScanResult) pipeline.SegmentizeInput {
	return pipeline.SegmentizeInput{
		Detections:    scan.Detections,
		TotalDuration: scan.TotalDuration,
		MergeGap:      config.MergeGap,
		Padding:       config.Padding,
	}
}
