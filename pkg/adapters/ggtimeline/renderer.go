// Package ggtimeline renders a timeline result as a horizontal strip
// image using the gg library, for debug output and review tooling.
package ggtimeline

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/user/skipcut/pkg/pipeline"
)

// Theme defines strip styling.
type Theme struct {
	BackgroundColor color.Color
	KeepColor       color.Color
	RemoveColor     color.Color
}

// DefaultTheme returns the default strip theme.
func DefaultTheme() Theme {
	return Theme{
		BackgroundColor: color.RGBA{R: 30, G: 30, B: 30, A: 255},
		KeepColor:       color.RGBA{R: 76, G: 175, B: 80, A: 255},
		RemoveColor:     color.RGBA{R: 229, G: 57, B: 53, A: 255},
	}
}

// Renderer draws timeline strips.
type Renderer struct {
	width  int
	height int
	theme  Theme
}

// New creates a Renderer producing strips of the given size.
func New(width, height int, theme Theme) *Renderer {
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = 40
	}
	return &Renderer{width: width, height: height, theme: theme}
}

// Render draws keep and remove segments proportionally along the
// strip. Zero-width segments are invisible but harmless.
func (r *Renderer) Render(t pipeline.TimelineResult) image.Image {
	dc := gg.NewContext(r.width, r.height)
	dc.SetColor(r.theme.BackgroundColor)
	dc.Clear()

	if t.TotalDuration > 0 {
		scale := float64(r.width) / t.TotalDuration
		for _, seg := range t.Keep {
			r.drawSegment(dc, seg, scale, r.theme.KeepColor)
		}
		for _, seg := range t.Bad {
			r.drawSegment(dc, seg, scale, r.theme.RemoveColor)
		}
	}

	return dc.Image()
}

func (r *Renderer) drawSegment(dc *gg.Context, seg pipeline.TimeRange, scale float64, c color.Color) {
	x := seg.Start * scale
	w := seg.Width() * scale
	dc.SetColor(c)
	dc.DrawRectangle(x, 0, w, float64(r.height))
	dc.Fill()
}
