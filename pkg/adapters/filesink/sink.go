// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"path/filepath"

	"github.com/user/skipcut/pkg/ports"
)

// Sink saves debug output to files under a base directory.
type Sink struct {
	baseDir string
	fs      ports.FileSystem
}

// New creates a new file sink.
func New(baseDir string, fs ports.FileSystem) *Sink {
	return &Sink{
		baseDir: baseDir,
		fs:      fs,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveTimelineJSON saves the timeline result as JSON.
func (s *Sink) SaveTimelineJSON(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, "timeline.json"), data)
}

// SaveTimelineImage saves the rendered timeline strip as PNG.
func (s *Sink) SaveTimelineImage(img image.Image) error {
	return s.writePNG(filepath.Join(s.baseDir, "timeline.png"), img)
}

// SaveMatchedFrame saves a matched frame under frames/.
func (s *Sink) SaveMatchedFrame(index int, img image.Image) error {
	dir := filepath.Join(s.baseDir, "frames")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	return s.writePNG(filepath.Join(dir, fmt.Sprintf("match-%04d.png", index)), img)
}

// SaveMask saves a binary mask under masks/.
func (s *Sink) SaveMask(index int, img image.Image) error {
	dir := filepath.Join(s.baseDir, "masks")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	return s.writePNG(filepath.Join(dir, fmt.Sprintf("mask-%04d.png", index)), img)
}

func (s *Sink) writePNG(path string, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return s.fs.WriteFile(path, buf.Bytes())
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
