// Package colormatch provides a FrameMatcher using an HSV color mask
// and shape heuristics. It targets interruptions with a dominant
// uniform color surface (menu backgrounds, loading screens).
package colormatch

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/user/skipcut/pkg/pipeline"
	"github.com/user/skipcut/pkg/ports"
)

// ErrInvalidBounds is returned when the HSV bounds are out of range.
var ErrInvalidBounds = errors.New("colormatch: invalid HSV bounds")

// HSV is a hue-saturation-value triple. H is in degrees [0, 360);
// S and V are in [0, 1].
type HSV struct {
	H float64
	S float64
	V float64
}

// Options configures the color/shape matcher.
type Options struct {
	// Lower and Upper bound the HSV mask. When Lower.H > Upper.H the
	// hue range wraps around 360 (useful for reds).
	Lower HSV
	Upper HSV

	// MinAreaFraction is the minimum fraction of frame area the
	// largest matched region must cover (default: 0.15).
	MinAreaFraction float64

	// CloseKernel is the side length in pixels of the square
	// structuring element used for morphological closing, which fills
	// small holes such as on-screen text (default: 5).
	CloseKernel int
}

// DefaultOptions returns Options with the observed defaults. Bounds
// must still be set by the caller.
func DefaultOptions() Options {
	return Options{
		MinAreaFraction: 0.15,
		CloseKernel:     5,
	}
}

// Matcher thresholds frames into a binary mask, closes small gaps and
// measures the largest connected region.
type Matcher struct {
	opts Options
}

// New creates a Matcher with the given options.
func New(opts Options) (*Matcher, error) {
	if opts.Lower.H < 0 || opts.Lower.H >= 360 || opts.Upper.H < 0 || opts.Upper.H >= 360 {
		return nil, fmt.Errorf("%w: hue outside [0, 360)", ErrInvalidBounds)
	}
	if opts.Lower.S < 0 || opts.Lower.S > 1 || opts.Upper.S < 0 || opts.Upper.S > 1 ||
		opts.Lower.V < 0 || opts.Lower.V > 1 || opts.Upper.V < 0 || opts.Upper.V > 1 {
		return nil, fmt.Errorf("%w: saturation/value outside [0, 1]", ErrInvalidBounds)
	}
	if opts.CloseKernel <= 0 {
		opts.CloseKernel = 5
	}
	return &Matcher{opts: opts}, nil
}

// Name identifies the strategy.
func (m *Matcher) Name() string {
	return "color"
}

// Match thresholds the frame into a binary HSV mask, applies
// morphological closing, finds the largest connected region and emits
// a detection iff its area exceeds the configured fraction of frame
// area. Confidence is area/frame-area scaled to [0, 100].
func (m *Matcher) Match(frame image.Image) (ports.Match, error) {
	mask, err := m.Mask(frame)
	if err != nil {
		return ports.Match{}, err
	}

	w := mask.Rect.Dx()
	h := mask.Rect.Dy()
	largest := largestRegion(mask)
	fraction := float64(largest) / float64(w*h)

	return ports.Match{
		Matched:    fraction > m.opts.MinAreaFraction,
		Confidence: fraction * 100,
	}, nil
}

// Mask returns the closed binary mask for a frame. Exposed for the
// debug sink so matched masks can be inspected.
func (m *Matcher) Mask(frame image.Image) (*image.Gray, error) {
	if frame == nil {
		return nil, fmt.Errorf("%w: nil frame", pipeline.ErrFrameDecode)
	}
	bounds := frame.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%w: empty frame", pipeline.ErrFrameDecode)
	}

	mask := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			hsv := rgbToHSV(frame.At(bounds.Min.X+x, bounds.Min.Y+y))
			if m.inRange(hsv) {
				mask.Pix[y*mask.Stride+x] = 0xff
			}
		}
	}

	r := m.opts.CloseKernel / 2
	dilated := dilate(mask, r)
	return erode(dilated, r), nil
}

func (m *Matcher) inRange(c HSV) bool {
	if c.S < m.opts.Lower.S || c.S > m.opts.Upper.S {
		return false
	}
	if c.V < m.opts.Lower.V || c.V > m.opts.Upper.V {
		return false
	}
	if m.opts.Lower.H <= m.opts.Upper.H {
		return c.H >= m.opts.Lower.H && c.H <= m.opts.Upper.H
	}
	// Wrapped hue range, e.g. lower 350 upper 10.
	return c.H >= m.opts.Lower.H || c.H <= m.opts.Upper.H
}

// rgbToHSV converts a color to hue [0, 360), saturation and value [0, 1].
func rgbToHSV(c color.Color) HSV {
	ri, gi, bi, _ := c.RGBA()
	r := float64(ri) / 65535
	g := float64(gi) / 65535
	b := float64(bi) / 65535

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	delta := max - min

	var hue float64
	switch {
	case delta == 0:
		hue = 0
	case max == r:
		hue = 60 * math.Mod((g-b)/delta, 6)
	case max == g:
		hue = 60 * ((b-r)/delta + 2)
	default:
		hue = 60 * ((r-g)/delta + 4)
	}
	if hue < 0 {
		hue += 360
	}

	var sat float64
	if max > 0 {
		sat = delta / max
	}

	return HSV{H: hue, S: sat, V: max}
}

// dilate grows white regions by radius r using a square element.
func dilate(src *image.Gray, r int) *image.Gray {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewGray(src.Rect)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if anyInWindow(src, x, y, r, 0xff) {
				dst.Pix[y*dst.Stride+x] = 0xff
			}
		}
	}
	return dst
}

// erode shrinks white regions by radius r using a square element.
func erode(src *image.Gray, r int) *image.Gray {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewGray(src.Rect)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !anyInWindow(src, x, y, r, 0) {
				dst.Pix[y*dst.Stride+x] = 0xff
			}
		}
	}
	return dst
}

// anyInWindow reports whether any pixel of the (2r+1)-square window
// centered at (x, y) has the given value. Pixels outside the image are
// treated as background (0).
func anyInWindow(src *image.Gray, x, y, r int, value uint8) bool {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	for dy := -r; dy <= r; dy++ {
		ny := y + dy
		if ny < 0 || ny >= h {
			if value == 0 {
				return true
			}
			continue
		}
		for dx := -r; dx <= r; dx++ {
			nx := x + dx
			if nx < 0 || nx >= w {
				if value == 0 {
					return true
				}
				continue
			}
			if src.Pix[ny*src.Stride+nx] == value {
				return true
			}
		}
	}
	return false
}

// largestRegion returns the pixel area of the largest 4-connected
// white region in the mask.
func largestRegion(mask *image.Gray) int {
	w, h := mask.Rect.Dx(), mask.Rect.Dy()
	visited := make([]bool, w*h)
	largest := 0

	var queue []int
	for start := 0; start < w*h; start++ {
		if visited[start] || mask.Pix[(start/w)*mask.Stride+start%w] != 0xff {
			continue
		}
		area := 0
		queue = queue[:0]
		queue = append(queue, start)
		visited[start] = true
		for len(queue) > 0 {
			idx := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			area++
			x, y := idx%w, idx/w
			for _, n := range [4][2]int{{x - 1, y}, {x + 1, y}, {x, y - 1}, {x, y + 1}} {
				nx, ny := n[0], n[1]
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				nidx := ny*w + nx
				if visited[nidx] || mask.Pix[ny*mask.Stride+nx] != 0xff {
					continue
				}
				visited[nidx] = true
				queue = append(queue, nidx)
			}
		}
		if area > largest {
			largest = area
		}
	}

	return largest
}

// Ensure Matcher implements ports.FrameMatcher
var _ ports.FrameMatcher = (*Matcher)(nil)
