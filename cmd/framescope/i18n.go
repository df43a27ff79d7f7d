// Package main provides localization for the framescope CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Configuration": "設定",
		"Decoding":      "デコード",
		"Logging":       "ログ",

		// Root command
		"Review video files frame by frame": "動画ファイルをフレーム単位でレビュー",
		"Error: %s":                         "エラー: %s",

		// Global flags
		"YAML configuration file":                                     "YAML設定ファイル",
		"Decoder backend (ffmpeg, opencv)":                            "デコーダのバックエンド（ffmpeg, opencv）",
		"Frame count source (metadata, native)":                       "フレーム数の取得元（metadata, native）",
		"Path to ffmpeg (falls back to FFMPEG_PATH env, then PATH)":   "ffmpegのパス（未指定時はFFMPEG_PATH環境変数、次にPATH）",
		"Path to ffprobe (falls back to FFPROBE_PATH env, then PATH)": "ffprobeのパス（未指定時はFFPROBE_PATH環境変数、次にPATH）",
		"Log level (debug, info, warn, error)":                        "ログレベル（debug, info, warn, error）",
		"Suppress all log output":                                     "すべてのログ出力を抑制",

		// Info command
		"Show stream information for a video file":  "動画ファイルのストリーム情報を表示",
		"Write the report as Markdown to this path": "レポートをMarkdownとしてこのパスに書き出す",
		"info requires exactly one video file":      "info には動画ファイルを1つだけ指定してください",

		// Snapshot command
		"Save one frame of a video as PNG":                             "動画の1フレームをPNGとして保存",
		"Frame index to save":                                          "保存するフレーム番号",
		"Filter to apply (none, gray, object_detection, detect_edges)": "適用するフィルタ（none, gray, object_detection, detect_edges）",
		"Directory for saved frames":                                   "フレームの保存先ディレクトリ",
		"Object detector command":                                      "物体検出コマンド",
		"Detector protocol (json, msgpack)":                            "検出器のプロトコル（json, msgpack）",
		"snapshot requires exactly one video file":                     "snapshot には動画ファイルを1つだけ指定してください",

		// Review command
		"Step through a video interactively":               "動画を対話的にコマ送りする",
		"Preview image updated with every displayed frame": "表示フレームごとに更新されるプレビュー画像",
		"Preview height in pixels (0 = video height)":      "プレビューの高さ（ピクセル、0 = 動画の高さ）",

		// Version command
		"Show version information": "バージョン情報を表示",
		"framescope version %s":    "framescope バージョン %s",

		// Info report
		"Video Summary":                   "動画サマリー",
		"File":                            "ファイル",
		"Stream":                          "ストリーム",
		"Frames":                          "フレーム",
		"Item":                            "項目",
		"Value":                           "値",
		"File Name":                       "ファイル名",
		"Path":                            "パス",
		"Format":                          "形式",
		"File Size":                       "ファイルサイズ",
		"Backend":                         "バックエンド",
		"Codec":                           "コーデック",
		"Resolution":                      "解像度",
		"Frame Rate":                      "フレームレート",
		"Frame Count Mode":                "フレーム数モード",
		"Total Frames":                    "総フレーム数",
		"Container Frames":                "コンテナ上のフレーム数",
		"Decoder Frames":                  "デコーダのフレーム数",
		"Duration":                        "再生時間",
		"Frame count sources disagree by": "フレーム数の取得元の差",
		"Generated at":                    "生成日時",
		"N/A":                             "不明",
	})
}
