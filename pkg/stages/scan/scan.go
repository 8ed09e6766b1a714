// Package scan implements the frame sampling and matching stage.
package scan

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/user/skipcut/pkg/pipeline"
	"github.com/user/skipcut/pkg/ports"
)

// Stage samples the media source at a fixed temporal stride and tests
// each sampled frame against the fingerprint.
type Stage struct {
	sink   ports.DebugSink
	logger ports.Logger
}

// New creates a new scan stage.
func New(sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		sink:   sink,
		logger: logger.WithComponent("scan"),
	}
}

// masker is implemented by matchers that expose their binary mask
// (the color/shape strategy); masks of matched frames go to the
// debug sink.
type masker interface {
	Mask(frame image.Image) (*image.Gray, error)
}

// Execute samples frames at instants i/SampleRate for
// i = 0 .. floor(duration*SampleRate), matching each one. Detections
// come out in non-decreasing timestamp order because sampling is
// strictly sequential. Every sampled frame is one suspension point:
// cancellation is honored before each seek, and each seek is bounded
// by SeekTimeoutMs.
func (s *Stage) Execute(ctx context.Context, input pipeline.ScanInput) (pipeline.ScanResult, error) {
	result := pipeline.ScanResult{}

	if input.Source == nil || input.Matcher == nil {
		return result, fmt.Errorf("%w: missing source or matcher", pipeline.ErrMediaLoad)
	}
	if input.SampleRate <= 0 {
		return result, fmt.Errorf("%w: non-positive sample rate", pipeline.ErrMediaLoad)
	}

	duration := input.Source.Duration()
	if duration <= 0 {
		return result, fmt.Errorf("%w: source reports non-positive duration", pipeline.ErrMediaLoad)
	}
	result.TotalDuration = duration

	totalFrames := int(duration*input.SampleRate) + 1
	seekTimeout := time.Duration(input.SeekTimeoutMs) * time.Millisecond
	if seekTimeout <= 0 {
		seekTimeout = 10 * time.Second
	}

	s.logger.Debug("Sampling %d frames at %.2f Hz over %.2f s (strategy: %s)",
		totalFrames, input.SampleRate, duration, input.Matcher.Name())

	detections := make([]pipeline.Detection, 0)
	runLength := 0
	start := time.Now()

	for i := 0; i < totalFrames; i++ {
		select {
		case <-ctx.Done():
			return pipeline.ScanResult{}, fmt.Errorf("%w: %v", pipeline.ErrAnalysisCancelled, ctx.Err())
		default:
		}

		t := float64(i) / input.SampleRate

		seekCtx, cancel := context.WithTimeout(ctx, seekTimeout)
		err := input.Source.Seek(seekCtx, t)
		cancel()
		if err != nil {
			if ctx.Err() != nil {
				return pipeline.ScanResult{}, fmt.Errorf("%w: %v", pipeline.ErrAnalysisCancelled, ctx.Err())
			}
			if errors.Is(err, context.DeadlineExceeded) {
				return pipeline.ScanResult{}, fmt.Errorf("%w: at %.3fs", pipeline.ErrSeekTimeout, t)
			}
			return pipeline.ScanResult{}, fmt.Errorf("seek to %.3fs: %w", t, err)
		}

		frame, err := input.Source.CurrentFrame()
		if err != nil {
			return pipeline.ScanResult{}, fmt.Errorf("read frame at %.3fs: %w", t, err)
		}
		if input.WorkingWidth > 0 {
			frame = downsample(frame, input.WorkingWidth)
		}

		match, err := input.Matcher.Match(frame)
		if err != nil {
			return pipeline.ScanResult{}, fmt.Errorf("match frame at %.3fs: %w", t, err)
		}

		if match.Matched {
			kind := pipeline.KindHold
			if runLength == 0 {
				kind = pipeline.KindStart
			}
			detections = append(detections, pipeline.Detection{
				Timestamp:  t,
				Confidence: match.Confidence,
				Kind:       kind,
			})
			runLength++
			s.logger.Debug("Match at %.2fs (confidence %.1f)", t, match.Confidence)
			s.saveDebug(i, frame, input.Matcher)
		} else {
			if runLength > 1 {
				detections[len(detections)-1].Kind = pipeline.KindEnd
			}
			runLength = 0
		}

		if input.OnProgress != nil {
			elapsed := time.Since(start).Seconds()
			fps := 0.0
			if elapsed > 0 {
				fps = float64(i+1) / elapsed
			}
			input.OnProgress(pipeline.Progress{
				ProcessedFrames:  i + 1,
				TotalFrames:      totalFrames,
				FramesPerSecond:  fps,
				CurrentTimestamp: t,
			})
		}
	}
	if runLength > 1 {
		detections[len(detections)-1].Kind = pipeline.KindEnd
	}

	result.Detections = detections
	result.ProcessedFrames = totalFrames

	s.logger.Debug("Scan finished: %d detections in %d frames", len(detections), totalFrames)

	return result, nil
}

func (s *Stage) saveDebug(index int, frame image.Image, matcher ports.FrameMatcher) {
	if !s.sink.Enabled() {
		return
	}
	if err := s.sink.SaveMatchedFrame(index, frame); err != nil {
		s.logger.Warn("Failed to save matched frame %d: %s", index, err)
	}
	if m, ok := matcher.(masker); ok {
		if mask, err := m.Mask(frame); err == nil {
			if err := s.sink.SaveMask(index, mask); err != nil {
				s.logger.Warn("Failed to save mask %d: %s", index, err)
			}
		}
	}
}

// downsample scales the frame to the working width, preserving aspect
// ratio. Frames already at or below the working width pass through.
func downsample(img image.Image, width int) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() <= width {
		return img
	}
	height := bounds.Dy() * width / bounds.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
	return dst
}
