// Package templatematch provides a FrameMatcher using normalized
// cross-correlation against a reference template image.
package templatematch

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/user/skipcut/pkg/pipeline"
	"github.com/user/skipcut/pkg/ports"
)

var (
	// ErrEmptyTemplate is returned when the template image has no pixels.
	ErrEmptyTemplate = errors.New("templatematch: empty template image")

	// ErrFlatTemplate is returned when the template has zero variance,
	// which makes correlation undefined.
	ErrFlatTemplate = errors.New("templatematch: template has no intensity variation")
)

// Options configures the correlation matcher.
type Options struct {
	// Threshold is the minimum peak correlation in [0, 1] for a
	// detection (default: 0.75).
	Threshold float64
}

// DefaultOptions returns Options with the observed defaults.
func DefaultOptions() Options {
	return Options{Threshold: 0.75}
}

// Matcher slides a grayscale template over each frame and reports the
// global correlation maximum.
type Matcher struct {
	tmpl     *grayPlane
	tmplMean float64
	tmplNorm float64 // sqrt of centered sum of squares
	opts     Options
}

// New creates a Matcher from a reference template image.
func New(template image.Image, opts Options) (*Matcher, error) {
	if template == nil {
		return nil, ErrEmptyTemplate
	}
	tmpl := toGray(template)
	if tmpl.w == 0 || tmpl.h == 0 {
		return nil, ErrEmptyTemplate
	}

	mean := tmpl.mean()
	var ss float64
	for _, v := range tmpl.pix {
		d := v - mean
		ss += d * d
	}
	if ss == 0 {
		return nil, ErrFlatTemplate
	}

	return &Matcher{
		tmpl:     tmpl,
		tmplMean: mean,
		tmplNorm: math.Sqrt(ss),
		opts:     opts,
	}, nil
}

// Name identifies the strategy.
func (m *Matcher) Name() string {
	return "template"
}

// Match computes the normalized cross-correlation map between the
// frame and the template and takes the global maximum, scaled to
// [0, 100]. A detection is reported iff the maximum exceeds the
// configured threshold.
func (m *Matcher) Match(frame image.Image) (ports.Match, error) {
	if frame == nil {
		return ports.Match{}, fmt.Errorf("%w: nil frame", pipeline.ErrFrameDecode)
	}
	f := toGray(frame)
	if f.w == 0 || f.h == 0 {
		return ports.Match{}, fmt.Errorf("%w: empty frame", pipeline.ErrFrameDecode)
	}
	if f.w < m.tmpl.w || f.h < m.tmpl.h {
		return ports.Match{}, fmt.Errorf("%w: frame %dx%d smaller than template %dx%d",
			pipeline.ErrFrameDecode, f.w, f.h, m.tmpl.w, m.tmpl.h)
	}

	peak := m.correlatePeak(f)

	confidence := peak * 100
	if confidence < 0 {
		confidence = 0
	}
	return ports.Match{
		Matched:    peak >= m.opts.Threshold,
		Confidence: confidence,
	}, nil
}

// correlatePeak returns the maximum normalized cross-correlation of
// the template over every placement within the frame.
func (m *Matcher) correlatePeak(f *grayPlane) float64 {
	tw, th := m.tmpl.w, m.tmpl.h
	n := float64(tw * th)
	best := -1.0

	for oy := 0; oy <= f.h-th; oy++ {
		for ox := 0; ox <= f.w-tw; ox++ {
			// Window mean and centered sums in one pass.
			var sum float64
			for y := 0; y < th; y++ {
				row := f.pix[(oy+y)*f.w+ox:]
				for x := 0; x < tw; x++ {
					sum += row[x]
				}
			}
			winMean := sum / n

			var cross, winSS float64
			for y := 0; y < th; y++ {
				frow := f.pix[(oy+y)*f.w+ox:]
				trow := m.tmpl.pix[y*tw:]
				for x := 0; x < tw; x++ {
					fd := frow[x] - winMean
					td := trow[x] - m.tmplMean
					cross += fd * td
					winSS += fd * fd
				}
			}
			if winSS == 0 {
				continue
			}
			ncc := cross / (math.Sqrt(winSS) * m.tmplNorm)
			if ncc > best {
				best = ncc
			}
		}
	}

	return best
}

// grayPlane is a single-channel float intensity buffer.
type grayPlane struct {
	w, h int
	pix  []float64
}

func (g *grayPlane) mean() float64 {
	var sum float64
	for _, v := range g.pix {
		sum += v
	}
	return sum / float64(len(g.pix))
}

// toGray converts an image to a single-channel intensity plane using
// ITU-R 601 luma weights.
func toGray(img image.Image) *grayPlane {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pix := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			pix[y*w+x] = 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
		}
	}
	return &grayPlane{w: w, h: h, pix: pix}
}

// Ensure Matcher implements ports.FrameMatcher
var _ ports.FrameMatcher = (*Matcher)(nil)
