package summarizer

import (
	"fmt"
	"strings"
)

// MarkdownFormatter formats a Summary as a Markdown document.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format renders the summary as Markdown.
func (f *MarkdownFormatter) Format(summary *Summary) string {
	var sb strings.Builder

	sb.WriteString("# Analysis Summary\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", summary.GeneratedAt.Format("2006-01-02 15:04:05")))

	sb.WriteString("## Media\n\n")
	sb.WriteString(fmt.Sprintf("- Source: %s\n", summary.Media.Path))
	sb.WriteString(fmt.Sprintf("- Duration: %.2f s\n\n", summary.Media.DurationSec))

	sb.WriteString("## Analysis\n\n")
	sb.WriteString(fmt.Sprintf("- Strategy: %s\n", summary.Analysis.Strategy))
	sb.WriteString(fmt.Sprintf("- Sample rate: %.2f Hz\n", summary.Analysis.SampleRate))
	sb.WriteString(fmt.Sprintf("- Frames processed: %d\n", summary.Analysis.ProcessedFrames))
	sb.WriteString(fmt.Sprintf("- Detections: %d\n", summary.Analysis.DetectionCount))
	sb.WriteString(fmt.Sprintf("- Elapsed: %d ms\n\n", summary.Analysis.ElapsedMs))

	sb.WriteString("## Timeline\n\n")
	sb.WriteString(fmt.Sprintf("- Remove segments: %d (%.2f s)\n",
		summary.Timeline.RemoveCount, summary.Timeline.RemovedSec))
	sb.WriteString(fmt.Sprintf("- Keep segments: %d (%.2f s)\n",
		summary.Timeline.KeepCount, summary.Timeline.KeptSec))

	return sb.String()
}

// Ensure MarkdownFormatter implements Formatter
var _ Formatter = (*MarkdownFormatter)(nil)
