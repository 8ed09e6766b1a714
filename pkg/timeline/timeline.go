// Package timeline turns point detections into a gap-free partition of
// the media timeline into remove and keep ranges.
package timeline

import (
	"sort"

	"github.com/google/uuid"

	"github.com/user/skipcut/pkg/pipeline"
)

// Options controls detection grouping.
type Options struct {
	// MergeGap is the maximum gap in seconds between two consecutive
	// detections for them to be grouped into one interruption.
	MergeGap float64

	// Padding is the safety margin in seconds added to each side of a
	// grouped interruption, so cuts never clip real content.
	Padding float64
}

// DefaultOptions returns grouping options with the observed defaults.
// MergeGap must stay above 2*Padding or padded segments from distinct
// runs could overlap.
func DefaultOptions() Options {
	return Options{
		MergeGap: 1.0,
		Padding:  0.25,
	}
}

// Build groups detections into padded remove segments.
//
// Detections are sorted by timestamp first (stable, so ties keep their
// original order). Sequential sampling already yields sorted input;
// the sort is a safety net for out-of-order callers. Consecutive
// detections closer than MergeGap extend the current run; a larger gap
// closes the run and starts a new one. Each emitted segment is the run
// padded by Padding on both sides and clamped to [0, totalDuration].
func Build(detections []pipeline.Detection, totalDuration float64, opts Options) []pipeline.TimeRange {
	if len(detections) == 0 {
		return []pipeline.TimeRange{}
	}

	sorted := make([]pipeline.Detection, len(detections))
	copy(sorted, detections)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	segments := make([]pipeline.TimeRange, 0)
	runStart := sorted[0].Timestamp
	runEnd := sorted[0].Timestamp

	for _, d := range sorted[1:] {
		if d.Timestamp-runEnd <= opts.MergeGap {
			runEnd = d.Timestamp
			continue
		}
		segments = append(segments, padded(runStart, runEnd, totalDuration, opts.Padding))
		runStart = d.Timestamp
		runEnd = d.Timestamp
	}
	segments = append(segments, padded(runStart, runEnd, totalDuration, opts.Padding))

	return segments
}

// Invert computes the keep segments complementary to the given sorted,
// non-overlapping remove segments, so that both lists together tile
// [0, totalDuration] with no gaps and no overlap.
//
// No filtering pass runs over the output: zero-width segments, should
// an input produce them, are passed through as-is and callers must
// tolerate them.
func Invert(bad []pipeline.TimeRange, totalDuration float64) []pipeline.TimeRange {
	keep := make([]pipeline.TimeRange, 0, len(bad)+1)
	cursor := 0.0

	for _, b := range bad {
		if b.Start > cursor {
			keep = append(keep, newRange(cursor, b.Start, pipeline.RangeKeep))
		}
		if b.End > cursor {
			cursor = b.End
		}
	}
	if cursor < totalDuration {
		keep = append(keep, newRange(cursor, totalDuration, pipeline.RangeKeep))
	}

	return keep
}

// Segmentize runs Build then Invert and assembles the timeline result.
func Segmentize(detections []pipeline.Detection, totalDuration float64, opts Options) pipeline.TimelineResult {
	bad := Build(detections, totalDuration, opts)
	return pipeline.TimelineResult{
		Bad:           bad,
		Keep:          Invert(bad, totalDuration),
		TotalDuration: totalDuration,
	}
}

func padded(runStart, runEnd, totalDuration, pad float64) pipeline.TimeRange {
	start := runStart - pad
	if start < 0 {
		start = 0
	}
	end := runEnd + pad
	if end > totalDuration {
		end = totalDuration
	}
	return newRange(start, end, pipeline.RangeRemove)
}

func newRange(start, end float64, kind pipeline.RangeKind) pipeline.TimeRange {
	return pipeline.TimeRange{
		ID:    uuid.NewString(),
		Start: start,
		End:   end,
		Kind:  kind,
	}
}
