// Package mp4source provides a MediaSource over an MP4 file. Container
// metadata is parsed with mp4ff; individual frames are extracted with
// an external ffmpeg process seeked to the requested timestamp.
package mp4source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"os/exec"
	"strconv"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/skipcut/pkg/pipeline"
	"github.com/user/skipcut/pkg/ports"
)

var (
	// ErrFFmpegNotFound is returned when ffmpeg is not found in PATH.
	ErrFFmpegNotFound = errors.New("mp4source: ffmpeg not found in PATH")

	// ErrNotSeeked is returned when CurrentFrame is called before Seek.
	ErrNotSeeked = errors.New("mp4source: no seek performed yet")
)

// Options configures the MP4 source.
type Options struct {
	// FFmpegPath is an optional custom path to the ffmpeg binary.
	FFmpegPath string
}

// Source reads frames from an MP4 file at arbitrary timestamps.
type Source struct {
	path       string
	ffmpegPath string
	duration   float64
	current    image.Image
}

// New opens an MP4 file and reads its duration from the moov box.
func New(path string, opts Options) (*Source, error) {
	ffmpegPath := opts.FFmpegPath
	if ffmpegPath == "" {
		found, err := exec.LookPath("ffmpeg")
		if err != nil {
			return nil, ErrFFmpegNotFound
		}
		ffmpegPath = found
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", pipeline.ErrMediaLoad, path, err)
	}
	defer f.Close()

	mp4File, err := mp4.DecodeFile(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode mp4: %v", pipeline.ErrMediaLoad, err)
	}
	duration, err := movieDuration(mp4File)
	if err != nil {
		return nil, err
	}

	return &Source{
		path:       path,
		ffmpegPath: ffmpegPath,
		duration:   duration,
	}, nil
}

// movieDuration extracts the presentation duration in seconds.
func movieDuration(f *mp4.File) (float64, error) {
	moov := f.Moov
	if moov == nil && f.Init != nil {
		moov = f.Init.Moov
	}
	if moov == nil || moov.Mvhd == nil || moov.Mvhd.Timescale == 0 {
		return 0, fmt.Errorf("%w: missing movie header", pipeline.ErrMediaLoad)
	}
	return float64(moov.Mvhd.Duration) / float64(moov.Mvhd.Timescale), nil
}

// Duration returns the total duration in seconds.
func (s *Source) Duration() float64 {
	return s.duration
}

// Seek extracts the frame at timestamp t by running ffmpeg with an
// input-side seek and decoding the returned JPEG. The context bounds
// the extraction; cancellation kills the process.
func (s *Source) Seek(ctx context.Context, t float64) error {
	cmd := exec.CommandContext(ctx, s.ffmpegPath,
		"-ss", strconv.FormatFloat(t, 'f', 3, 64),
		"-i", s.path,
		"-vframes", "1",
		"-f", "image2",
		"-c:v", "mjpeg",
		"-loglevel", "error",
		"-",
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: ffmpeg at %.3fs: %v (%s)",
			pipeline.ErrMediaLoad, t, err, bytes.TrimSpace(stderr.Bytes()))
	}

	img, err := jpeg.Decode(&stdout)
	if err != nil {
		return fmt.Errorf("%w: decode frame at %.3fs: %v", pipeline.ErrFrameDecode, t, err)
	}

	s.current = img
	return nil
}

// CurrentFrame returns the frame read by the last Seek.
func (s *Source) CurrentFrame() (image.Image, error) {
	if s.current == nil {
		return nil, ErrNotSeeked
	}
	return s.current, nil
}

// Close releases the current frame buffer.
func (s *Source) Close() error {
	s.current = nil
	return nil
}

// Ensure Source implements ports.MediaSource
var _ ports.MediaSource = (*Source)(nil)
