// Package integration contains integration tests for the skipcut pipeline.
package integration

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"math"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/user/skipcut/pkg/adapters/filesink"
	"github.com/user/skipcut/pkg/adapters/framesource"
	"github.com/user/skipcut/pkg/adapters/ggtimeline"
	"github.com/user/skipcut/pkg/adapters/logger"
	"github.com/user/skipcut/pkg/adapters/nullsink"
	"github.com/user/skipcut/pkg/adapters/osfilesystem"
	"github.com/user/skipcut/pkg/adapters/templatematch"
	"github.com/user/skipcut/pkg/orchestrator"
	"github.com/user/skipcut/pkg/pipeline"
	"github.com/user/skipcut/pkg/ports"
	"github.com/user/skipcut/pkg/stages/scan"
	"github.com/user/skipcut/pkg/stages/segmentize"
)

const (
	templateSize = 16
	frameSize    = 64
)

// fingerprintTemplate builds the reference pattern embedded into
// interruption frames.
func fingerprintTemplate() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, templateSize, templateSize))
	for y := 0; y < templateSize; y++ {
		for x := 0; x < templateSize; x++ {
			v := uint8((x*37 + y*11) % 256)
			i := img.PixOffset(x, y)
			img.Pix[i] = v
			img.Pix[i+1] = v
			img.Pix[i+2] = v
			img.Pix[i+3] = 255
		}
	}
	return img
}

// syntheticFrame renders a gameplay frame, optionally stamped with the
// fingerprint pattern at an offset.
func syntheticFrame(interruption bool) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, frameSize, frameSize))
	for y := 0; y < frameSize; y++ {
		for x := 0; x < frameSize; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i] = 40
			img.Pix[i+1] = 90
			img.Pix[i+2] = 40
			img.Pix[i+3] = 255
		}
	}
	if interruption {
		for y := 0; y < templateSize; y++ {
			for x := 0; x < templateSize; x++ {
				v := uint8((x*37 + y*11) % 256)
				i := img.PixOffset(x+10, y+10)
				img.Pix[i] = v
				img.Pix[i+1] = v
				img.Pix[i+2] = v
			}
		}
	}
	return img
}

// syntheticSource builds a 10-second source with one frame every half
// second. Interruption frames sit at 2.0-3.0s and 7.0-7.5s.
func syntheticSource(t *testing.T) ports.MediaSource {
	t.Helper()

	isInterruption := func(ts float64) bool {
		return (ts >= 2.0 && ts <= 3.0) || (ts >= 7.0 && ts <= 7.5)
	}

	var frames []ports.VideoFrame
	for i := 0; i <= 20; i++ {
		ts := float64(i) * 0.5
		frames = append(frames, ports.VideoFrame{
			Image:     syntheticFrame(isInterruption(ts)),
			Timestamp: ts,
		})
	}

	src, err := framesource.New(frames, 10.0)
	if err != nil {
		t.Fatalf("framesource failed: %v", err)
	}
	return src
}

func newAnalyzer(sink ports.DebugSink) *orchestrator.Analyzer {
	log := logger.NewNoop()
	return orchestrator.New(
		scan.New(sink, log),
		segmentize.NewStage(),
		ggtimeline.New(400, 20, ggtimeline.DefaultTheme()),
		sink,
		log,
	)
}

func defaultRequest(src ports.MediaSource, matcher ports.FrameMatcher) orchestrator.Request {
	cfg := orchestrator.DefaultConfig()
	cfg.WorkingWidth = 0 // keep frames at native size for exact matching
	return orchestrator.Request{
		Source:  src,
		Matcher: matcher,
		Config:  cfg,
	}
}

func TestFullPipeline_TemplateStrategy(t *testing.T) {
	matcher, err := templatematch.New(fingerprintTemplate(), templatematch.DefaultOptions())
	if err != nil {
		t.Fatalf("matcher failed: %v", err)
	}

	analyzer := newAnalyzer(nullsink.New())
	result, err := analyzer.Run(context.Background(), defaultRequest(syntheticSource(t), matcher))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	timeline := result.Timeline
	if timeline.TotalDuration != 10.0 {
		t.Errorf("expected total duration 10.0, got %v", timeline.TotalDuration)
	}

	// Interruptions at 2.0-3.0 and 7.0-7.5 plus 0.25s padding.
	wantBad := []struct{ start, end float64 }{
		{1.75, 3.25},
		{6.75, 7.75},
	}
	if len(timeline.Bad) != len(wantBad) {
		t.Fatalf("expected %d remove segments, got %d: %+v", len(wantBad), len(timeline.Bad), timeline.Bad)
	}
	for i, want := range wantBad {
		got := timeline.Bad[i]
		if math.Abs(got.Start-want.start) > 1e-9 || math.Abs(got.End-want.end) > 1e-9 {
			t.Errorf("remove segment %d: expected [%v, %v], got [%v, %v]",
				i, want.start, want.end, got.Start, got.End)
		}
	}

	if len(timeline.Keep) != 3 {
		t.Errorf("expected 3 keep segments, got %d: %+v", len(timeline.Keep), timeline.Keep)
	}

	if got := result.Timeline.RemovedDuration(); math.Abs(got-2.5) > 1e-9 {
		t.Errorf("expected 2.5s removed, got %v", got)
	}

	// The partition must tile [0, duration] without gaps or overlaps.
	all := append([]pipeline.TimeRange{}, timeline.Bad...)
	all = append(all, timeline.Keep...)
	sort.Slice(all, func(i, j int) bool { return all[i].Start < all[j].Start })
	cursor := 0.0
	for _, r := range all {
		if math.Abs(r.Start-cursor) > 1e-9 {
			t.Fatalf("partition gap at %v: %+v", cursor, all)
		}
		cursor = r.End
	}
	if math.Abs(cursor-10.0) > 1e-9 {
		t.Errorf("partition ends at %v, expected 10.0", cursor)
	}
}

func TestFullPipeline_NoInterruptions(t *testing.T) {
	// Matcher with an unreachable pattern: nothing should be removed.
	matcher, err := templatematch.New(fingerprintTemplate(), templatematch.DefaultOptions())
	if err != nil {
		t.Fatalf("matcher failed: %v", err)
	}

	var frames []ports.VideoFrame
	for i := 0; i <= 20; i++ {
		frames = append(frames, ports.VideoFrame{
			Image:     syntheticFrame(false),
			Timestamp: float64(i) * 0.5,
		})
	}
	src, err := framesource.New(frames, 10.0)
	if err != nil {
		t.Fatalf("framesource failed: %v", err)
	}

	analyzer := newAnalyzer(nullsink.New())
	result, err := analyzer.Run(context.Background(), defaultRequest(src, matcher))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Timeline.Bad) != 0 {
		t.Errorf("expected no remove segments, got %+v", result.Timeline.Bad)
	}
	if len(result.Timeline.Keep) != 1 {
		t.Fatalf("expected a single keep segment, got %+v", result.Timeline.Keep)
	}
	keep := result.Timeline.Keep[0]
	if keep.Start != 0 || keep.End != 10.0 {
		t.Errorf("expected keep [0, 10], got [%v, %v]", keep.Start, keep.End)
	}
}

func TestFullPipeline_ProgressReporting(t *testing.T) {
	matcher, err := templatematch.New(fingerprintTemplate(), templatematch.DefaultOptions())
	if err != nil {
		t.Fatalf("matcher failed: %v", err)
	}

	var progress []pipeline.Progress
	req := defaultRequest(syntheticSource(t), matcher)
	req.OnProgress = func(p pipeline.Progress) {
		progress = append(progress, p)
	}

	analyzer := newAnalyzer(nullsink.New())
	result, err := analyzer.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(progress) != result.ProcessedFrames {
		t.Errorf("expected %d progress emissions, got %d", result.ProcessedFrames, len(progress))
	}
	for i := 1; i < len(progress); i++ {
		if progress[i].ProcessedFrames <= progress[i-1].ProcessedFrames {
			t.Fatalf("progress not monotonic at %d: %+v", i, progress[i])
		}
	}
	last := progress[len(progress)-1]
	if last.ProcessedFrames != last.TotalFrames {
		t.Errorf("final progress %d/%d, expected completion", last.ProcessedFrames, last.TotalFrames)
	}
}

func TestFullPipeline_Cancellation(t *testing.T) {
	matcher, err := templatematch.New(fingerprintTemplate(), templatematch.DefaultOptions())
	if err != nil {
		t.Fatalf("matcher failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	analyzer := newAnalyzer(nullsink.New())
	_, err = analyzer.Run(ctx, defaultRequest(syntheticSource(t), matcher))
	if !errors.Is(err, pipeline.ErrAnalysisCancelled) {
		t.Errorf("expected ErrAnalysisCancelled, got %v", err)
	}
}

func TestFullPipeline_DebugArtifacts(t *testing.T) {
	matcher, err := templatematch.New(fingerprintTemplate(), templatematch.DefaultOptions())
	if err != nil {
		t.Fatalf("matcher failed: %v", err)
	}

	debugDir := t.TempDir()
	sink := filesink.New(debugDir, osfilesystem.New())

	analyzer := newAnalyzer(sink)
	result, err := analyzer.Run(context.Background(), defaultRequest(syntheticSource(t), matcher))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(debugDir, "timeline.json"))
	if err != nil {
		t.Fatalf("timeline.json not written: %v", err)
	}
	var decoded pipeline.TimelineResult
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("timeline.json is not valid JSON: %v", err)
	}
	if len(decoded.Bad) != len(result.Timeline.Bad) {
		t.Errorf("timeline.json has %d remove segments, result has %d",
			len(decoded.Bad), len(result.Timeline.Bad))
	}

	if _, err := os.Stat(filepath.Join(debugDir, "timeline.png")); err != nil {
		t.Errorf("timeline.png not written: %v", err)
	}
}
