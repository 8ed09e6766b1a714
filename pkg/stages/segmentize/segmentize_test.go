package segmentize

import (
	"context"
	"math"
	"testing"

	"github.com/user/skipcut/pkg/pipeline"
)

func TestExecute_DocumentedExample(t *testing.T) {
	input := pipeline.DefaultSegmentizeInput()
	input.TotalDuration = 10.0
	input.Detections = []pipeline.Detection{
		{Timestamp: 1.0, Confidence: 90, Kind: pipeline.KindStart},
		{Timestamp: 1.5, Confidence: 88, Kind: pipeline.KindEnd},
		{Timestamp: 5.0, Confidence: 92, Kind: pipeline.KindStart},
	}

	result, err := NewStage().Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	tl := result.Timeline
	if len(tl.Bad) != 2 || len(tl.Keep) != 3 {
		t.Fatalf("expected 2 bad + 3 keep segments, got %d + %d", len(tl.Bad), len(tl.Keep))
	}
	if math.Abs(tl.Bad[0].Start-0.75) > 1e-9 || math.Abs(tl.Bad[1].End-5.25) > 1e-9 {
		t.Errorf("unexpected bad segment bounds: %+v", tl.Bad)
	}
	if tl.TotalDuration != 10.0 {
		t.Errorf("expected total duration 10, got %v", tl.TotalDuration)
	}
	if math.Abs(tl.RemovedDuration()-1.5) > 1e-9 {
		t.Errorf("expected removed duration 1.5, got %v", tl.RemovedDuration())
	}
}

func TestExecute_NoDetections(t *testing.T) {
	input := pipeline.DefaultSegmentizeInput()
	input.TotalDuration = 42.0

	result, err := NewStage().Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if len(result.Timeline.Bad) != 0 {
		t.Errorf("expected no bad segments, got %d", len(result.Timeline.Bad))
	}
	if len(result.Timeline.Keep) != 1 {
		t.Fatalf("expected 1 keep segment, got %d", len(result.Timeline.Keep))
	}
	keep := result.Timeline.Keep[0]
	if keep.Start != 0 || keep.End != 42.0 {
		t.Errorf("expected keep [0, 42], got [%v, %v]", keep.Start, keep.End)
	}
}
