package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate analysis results.
// It allows saving per-run artifacts for inspection without coupling
// the pipeline to the file system.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveTimelineJSON saves the timeline result as JSON.
	SaveTimelineJSON(data []byte) error

	// SaveTimelineImage saves the rendered timeline strip.
	SaveTimelineImage(img image.Image) error

	// SaveMatchedFrame saves a sampled frame that matched the
	// fingerprint, indexed by sample number.
	SaveMatchedFrame(index int, img image.Image) error

	// SaveMask saves the binary mask produced for a matched frame
	// (color/shape strategy only).
	SaveMask(index int, img image.Image) error
}
