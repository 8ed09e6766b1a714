package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.SampleRate != 2.0 {
		t.Errorf("expected sample rate 2.0, got %v", cfg.SampleRate)
	}
	if cfg.CorrelationThreshold != 0.75 {
		t.Errorf("expected correlation threshold 0.75, got %v", cfg.CorrelationThreshold)
	}
	if cfg.AreaFraction != 0.15 {
		t.Errorf("expected area fraction 0.15, got %v", cfg.AreaFraction)
	}
	if cfg.MergeGap != 1.0 || cfg.Padding != 0.25 {
		t.Errorf("expected merge gap 1.0 and padding 0.25, got %v and %v", cfg.MergeGap, cfg.Padding)
	}
	if cfg.Strategy != StrategyTemplate {
		t.Errorf("expected template strategy, got %s", cfg.Strategy)
	}
	// Safety property of the defaults: MergeGap > 2*Padding.
	if cfg.MergeGap <= 2*cfg.Padding {
		t.Error("default merge gap must exceed twice the padding")
	}
}

func TestLoadFromFile(t *testing.T) {
	content := `
input: video.mp4
strategy: color
sample_rate: 4.0
merge_gap: 2.5
hsv_lower:
  h: 100
  s: 0.3
  v: 0.1
debug: true
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.Input != "video.mp4" {
		t.Errorf("expected input video.mp4, got %s", cfg.Input)
	}
	if cfg.Strategy != StrategyColor {
		t.Errorf("expected color strategy, got %s", cfg.Strategy)
	}
	if cfg.SampleRate != 4.0 {
		t.Errorf("expected sample rate 4.0, got %v", cfg.SampleRate)
	}
	if cfg.MergeGap != 2.5 {
		t.Errorf("expected merge gap 2.5, got %v", cfg.MergeGap)
	}
	if cfg.HSVLower.H != 100 || cfg.HSVLower.S != 0.3 {
		t.Errorf("unexpected hsv lower: %+v", cfg.HSVLower)
	}
	// Unset keys keep their defaults.
	if cfg.Padding != 0.25 {
		t.Errorf("expected default padding 0.25, got %v", cfg.Padding)
	}
	if !cfg.Debug {
		t.Error("expected debug enabled")
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	if _, err := LoadFromFile("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestToAnalyzerConfig(t *testing.T) {
	cfg := Defaults()
	cfg.SampleRate = 1.0
	cfg.MergeGap = 3.0

	ac := cfg.ToAnalyzerConfig()
	if ac.SampleRate != 1.0 || ac.MergeGap != 3.0 || ac.Padding != 0.25 {
		t.Errorf("unexpected analyzer config: %+v", ac)
	}
}

func TestToColorOptions(t *testing.T) {
	cfg := Defaults()
	opts := cfg.ToColorOptions()
	if opts.Lower.H != 200 || opts.Upper.H != 260 {
		t.Errorf("unexpected bounds: %+v / %+v", opts.Lower, opts.Upper)
	}
	if opts.MinAreaFraction != 0.15 || opts.CloseKernel != 5 {
		t.Errorf("unexpected options: %+v", opts)
	}
}
