package framesource

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/user/skipcut/pkg/pipeline"
	"github.com/user/skipcut/pkg/ports"
)

func coloredFrame(v uint8) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func testFrames() []ports.VideoFrame {
	return []ports.VideoFrame{
		{Image: coloredFrame(0), Timestamp: 0},
		{Image: coloredFrame(1), Timestamp: 1.0},
		{Image: coloredFrame(2), Timestamp: 2.0},
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(nil, 10.0); !errors.Is(err, pipeline.ErrMediaLoad) {
		t.Errorf("expected ErrMediaLoad for empty frames, got %v", err)
	}
	if _, err := New(testFrames(), 0); !errors.Is(err, pipeline.ErrMediaLoad) {
		t.Errorf("expected ErrMediaLoad for zero duration, got %v", err)
	}
}

func TestSeek_SelectsFrameAtOrBefore(t *testing.T) {
	src, err := New(testFrames(), 3.0)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	tests := []struct {
		seek float64
		want uint8
	}{
		{0, 0},
		{0.5, 0},
		{1.0, 1},
		{1.9, 1},
		{2.5, 2},
	}
	for _, tt := range tests {
		if err := src.Seek(context.Background(), tt.seek); err != nil {
			t.Fatalf("Seek(%v) failed: %v", tt.seek, err)
		}
		frame, err := src.CurrentFrame()
		if err != nil {
			t.Fatalf("CurrentFrame failed: %v", err)
		}
		got := frame.(*image.RGBA).Pix[0]
		if got != tt.want {
			t.Errorf("Seek(%v): expected frame %d, got %d", tt.seek, tt.want, got)
		}
	}
}

func TestSeek_CancelledContext(t *testing.T) {
	src, err := New(testFrames(), 3.0)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := src.Seek(ctx, 1.0); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestCurrentFrame_BeforeSeek(t *testing.T) {
	src, err := New(testFrames(), 3.0)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := src.CurrentFrame(); !errors.Is(err, ErrNotSeeked) {
		t.Errorf("expected ErrNotSeeked, got %v", err)
	}
}

func TestNew_SortsFrames(t *testing.T) {
	frames := []ports.VideoFrame{
		{Image: coloredFrame(2), Timestamp: 2.0},
		{Image: coloredFrame(0), Timestamp: 0},
		{Image: coloredFrame(1), Timestamp: 1.0},
	}
	src, err := New(frames, 3.0)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := src.Seek(context.Background(), 0.2); err != nil {
		t.Fatalf("Seek failed: %v", err)
	}
	frame, _ := src.CurrentFrame()
	if frame.(*image.RGBA).Pix[0] != 0 {
		t.Error("expected earliest frame after sorting")
	}
}

func TestDuration(t *testing.T) {
	src, err := New(testFrames(), 3.5)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if src.Duration() != 3.5 {
		t.Errorf("expected duration 3.5, got %v", src.Duration())
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
