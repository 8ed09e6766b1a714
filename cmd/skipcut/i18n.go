// Package main provides localization for the skipcut CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Find and cut recurring interruption screens out of video timelines.": "動画タイムラインから繰り返し現れる中断画面を検出して除去します。",

		// Analyze command
		"Analyze a video and produce a removal timeline.": "動画を解析し、除去タイムラインを生成",

		// Version command
		"Show version information.": "バージョン情報を表示",
		"skipcut (Go) version %s":   "skipcut (Go版) バージョン %s",

		// Flags
		"Input MP4 file path.":                                                "入力MP4ファイルパス",
		"Output timeline JSON path (default: stdout).":                        "タイムラインJSONの出力先（デフォルト: 標準出力）",
		"YAML configuration file path.":                                       "YAML設定ファイルのパス",
		"Matching strategy (template or color, default: template).":           "マッチング方式（template または color、デフォルト: template）",
		"Reference fingerprint image (PNG or JPEG).":                          "参照フィンガープリント画像（PNGまたはJPEG）",
		"Correlation threshold for template matching (0-1).":                  "テンプレートマッチングの相関しきい値（0-1）",
		"Samples per second (default: 2.0).":                                  "1秒あたりのサンプル数（デフォルト: 2.0）",
		"Downsample width before matching (0 = full size).":                   "マッチング前の縮小幅（0 = 原寸）",
		"Per-seek timeout in milliseconds (default: 10000).":                  "シークごとのタイムアウト（ミリ秒、デフォルト: 10000）",
		"Maximum gap between detections merged into one segment (seconds).":   "1つのセグメントに統合される検出間の最大間隔（秒）",
		"Padding applied to each side of a removal segment (seconds).":        "除去セグメントの前後に付与する余白（秒）",
		"Path to ffmpeg executable (falls back to PATH lookup).":              "ffmpeg実行ファイルのパス（未指定時はPATHから検索）",
		"Output execution summary to file (Markdown format).":                 "実行サマリーをファイルに出力（Markdown形式）",
		"Enable debug output.":                                                "デバッグ出力を有効化",
		"Directory for debug output.":                                         "デバッグ出力のディレクトリ",
		"Log level (debug, info, warn, error).":                               "ログレベル（debug, info, warn, error）",
		"Suppress all log output.":                                            "全てのログ出力を抑制",

		// Runtime messages
		"Analyzing %s (%s strategy)...":     "%s を解析中 (%s 方式)...",
		"Progress: %d/%d frames at %.1fs":   "進捗: %d/%d フレーム (%.1f秒地点)",
		"Timeline saved to %s":              "タイムラインを %s に保存しました",
		"Summary saved to %s":               "サマリーを %s に保存しました",
		"Failed to write summary: %s":       "サマリーの書き込みに失敗しました: %s",
		"Interrupted, shutting down...":     "中断されました。シャットダウン中...",

		// Orchestrator messages
		"Starting analysis":                        "解析を開始します",
		"Analysis failed during scan: %s":          "スキャン中に解析が失敗しました: %s",
		"Scanned %d frames, %d detections":         "%d フレームをスキャン、%d 件を検出",
		"Analysis failed during segmentation: %s":  "セグメント化中に解析が失敗しました: %s",
		"Timeline built: %d remove, %d keep segments": "タイムラインを構築: 除去 %d、保持 %d セグメント",
		"Analysis completed":                       "解析が完了しました",
	})
}
