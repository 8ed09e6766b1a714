// Package segmentize implements the timeline segmentation stage.
package segmentize

import (
	"context"

	"github.com/user/skipcut/pkg/pipeline"
	"github.com/user/skipcut/pkg/timeline"
)

// Stage converts point detections into the remove/keep partition of
// the timeline. This is a pure stage with no external dependencies.
type Stage struct{}

// NewStage creates a new segmentize stage.
func NewStage() *Stage {
	return &Stage{}
}

// Execute groups detections into padded remove segments and derives
// the complementary keep segments. The heavy lifting lives in the
// timeline package so it can be tested and reused standalone.
func (s *Stage) Execute(ctx context.Context, input pipeline.SegmentizeInput) (pipeline.SegmentizeResult, error) {
	opts := timeline.Options{
		MergeGap: input.MergeGap,
		Padding:  input.Padding,
	}
	return pipeline.SegmentizeResult{
		Timeline: timeline.Segmentize(input.Detections, input.TotalDuration, opts),
	}, nil
}
