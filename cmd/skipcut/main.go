// Package main provides the CLI entry point for skipcut.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"

	"github.com/user/skipcut/pkg/adapters/colormatch"
	"github.com/user/skipcut/pkg/adapters/filesink"
	"github.com/user/skipcut/pkg/adapters/ggtimeline"
	"github.com/user/skipcut/pkg/adapters/logger"
	"github.com/user/skipcut/pkg/adapters/mp4source"
	"github.com/user/skipcut/pkg/adapters/nullsink"
	"github.com/user/skipcut/pkg/adapters/osfilesystem"
	"github.com/user/skipcut/pkg/adapters/pngref"
	"github.com/user/skipcut/pkg/adapters/templatematch"
	"github.com/user/skipcut/pkg/config"
	"github.com/user/skipcut/pkg/orchestrator"
	"github.com/user/skipcut/pkg/pipeline"
	"github.com/user/skipcut/pkg/ports"
	"github.com/user/skipcut/pkg/stages/scan"
	"github.com/user/skipcut/pkg/stages/segmentize"
	"github.com/user/skipcut/pkg/summarizer"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Analyze AnalyzeCmd `cmd:"" help:"Analyze a video and produce a removal timeline."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// AnalyzeCmd defines the analyze subcommand.
type AnalyzeCmd struct {
	// Required arguments
	Input  string `arg:"" help:"Input MP4 file path."`
	Output string `short:"o" help:"Output timeline JSON path (default: stdout)."`

	// Configuration file
	Config string `short:"c" help:"YAML configuration file path."`

	// Matching options
	Strategy  string   `short:"s" help:"Matching strategy (template or color, default: template)."`
	Template  string   `short:"t" help:"Reference fingerprint image (PNG or JPEG)."`
	Threshold *float64 `help:"Correlation threshold for template matching (0-1)."`

	// Sampling options
	SampleRate    *float64 `short:"r" help:"Samples per second (default: 2.0)."`
	WorkingWidth  *int     `short:"W" help:"Downsample width before matching (0 = full size)."`
	SeekTimeoutMs *int     `help:"Per-seek timeout in milliseconds (default: 10000)."`

	// Grouping options
	MergeGap *float64 `help:"Maximum gap between detections merged into one segment (seconds)."`
	Padding  *float64 `help:"Padding applied to each side of a removal segment (seconds)."`

	// Media options
	FFmpegPath string `help:"Path to ffmpeg executable (falls back to PATH lookup)."`

	// Summary options
	Summary string `help:"Output execution summary to file (Markdown format)."`

	// Debug options
	Debug    bool   `short:"d" help:"Enable debug output."`
	DebugDir string `default:"./debug" help:"Directory for debug output."`

	// Logging options
	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// VersionCmd shows version information.
type VersionCmd struct{}

var version = "dev"

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("skipcut"),
		kong.Description("Find and cut recurring interruption screens out of video timelines."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// Run executes the analyze command.
func (cmd *AnalyzeCmd) Run() error {
	cfg, err := cmd.buildConfig()
	if err != nil {
		return err
	}

	// Create logger
	var log ports.Logger
	if cmd.Quiet {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(cmd.LogLevel))
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	// Create adapters
	fs := osfilesystem.New()

	source, err := mp4source.New(cmd.Input, mp4source.Options{FFmpegPath: cfg.FFmpegPath})
	if err != nil {
		return fmt.Errorf("open media: %w", err)
	}
	defer source.Close()

	matcher, err := buildMatcher(cfg)
	if err != nil {
		return err
	}

	// Create debug sink
	var sink ports.DebugSink
	if cfg.Debug {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cfg.DebugDir, fs)
	} else {
		sink = nullsink.New()
	}

	// Create stages and analyzer
	scanStage := scan.New(sink, log)
	segmentizeStage := segmentize.NewStage()
	renderer := ggtimeline.New(0, 0, ggtimeline.DefaultTheme())
	analyzer := orchestrator.New(scanStage, segmentizeStage, renderer, sink, log)

	log.Info(l10n.F("Analyzing %s (%s strategy)...", cmd.Input, cfg.Strategy))

	result, err := analyzer.Run(ctx, orchestrator.Request{
		Source:  source,
		Matcher: matcher,
		Config:  cfg.ToAnalyzerConfig(),
		OnProgress: func(p pipeline.Progress) {
			log.Debug(l10n.F("Progress: %d/%d frames at %.1fs",
				p.ProcessedFrames, p.TotalFrames, p.CurrentTimestamp))
		},
	})
	if err != nil {
		return err
	}

	// Emit the timeline
	data, err := json.MarshalIndent(result.Timeline, "", "  ")
	if err != nil {
		return fmt.Errorf("encode timeline: %w", err)
	}
	if cmd.Output != "" {
		if err := fs.WriteFile(cmd.Output, data); err != nil {
			return fmt.Errorf("write timeline: %w", err)
		}
		log.Info(l10n.F("Timeline saved to %s", cmd.Output))
	} else {
		fmt.Println(string(data))
	}

	// Optional summary output
	if cmd.Summary != "" {
		summary := summarizer.NewBuilder().
			WithMedia(cmd.Input, result.Timeline.TotalDuration).
			WithAnalysis(summarizer.AnalysisInfo{
				Strategy:        cfg.Strategy,
				SampleRate:      cfg.SampleRate,
				ProcessedFrames: result.ProcessedFrames,
				DetectionCount:  result.DetectionCount,
				ElapsedMs:       result.ElapsedMs,
			}).
			WithTimeline(result.Timeline).
			Build()

		writer := summarizer.NewWriter(summarizer.NewMarkdownFormatter())
		if err := writer.Write(cmd.Summary, summary); err != nil {
			log.Warn(l10n.F("Failed to write summary: %s", err))
		} else {
			log.Info(l10n.F("Summary saved to %s", cmd.Summary))
		}
	}

	return nil
}

// buildConfig loads the configuration file (if any) and applies CLI
// overrides on top.
func (cmd *AnalyzeCmd) buildConfig() (config.Config, error) {
	cfg := config.Defaults()
	if cmd.Config != "" {
		loaded, err := config.LoadFromFile(cmd.Config)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Strategy != "" {
		cfg.Strategy = cmd.Strategy
	}
	if cmd.Template != "" {
		cfg.TemplatePath = cmd.Template
	}
	if cmd.Threshold != nil {
		cfg.CorrelationThreshold = *cmd.Threshold
	}
	if cmd.SampleRate != nil {
		cfg.SampleRate = *cmd.SampleRate
	}
	if cmd.WorkingWidth != nil {
		cfg.WorkingWidth = *cmd.WorkingWidth
	}
	if cmd.SeekTimeoutMs != nil {
		cfg.SeekTimeoutMs = *cmd.SeekTimeoutMs
	}
	if cmd.MergeGap != nil {
		cfg.MergeGap = *cmd.MergeGap
	}
	if cmd.Padding != nil {
		cfg.Padding = *cmd.Padding
	}
	if cmd.FFmpegPath != "" {
		cfg.FFmpegPath = cmd.FFmpegPath
	}
	if cmd.Debug {
		cfg.Debug = true
	}
	if cmd.DebugDir != "" {
		cfg.DebugDir = cmd.DebugDir
	}

	return cfg, nil
}

// buildMatcher creates the frame matcher selected by the configuration.
func buildMatcher(cfg config.Config) (ports.FrameMatcher, error) {
	switch cfg.Strategy {
	case config.StrategyColor:
		return colormatch.New(cfg.ToColorOptions())
	case config.StrategyTemplate:
		if cfg.TemplatePath == "" {
			return nil, fmt.Errorf("template strategy requires a reference image (--template)")
		}
		ref, err := pngref.New().LoadFile(cfg.TemplatePath)
		if err != nil {
			return nil, err
		}
		return templatematch.New(ref, cfg.ToTemplateOptions())
	default:
		return nil, fmt.Errorf("unknown strategy %q", cfg.Strategy)
	}
}

// Run executes the version command.
func (cmd *VersionCmd) Run() error {
	fmt.Println(l10n.F("skipcut (Go) version %s", version))
	return nil
}
