package consoleui

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		"Video file:": "動画ファイル:",
		"Error: %s":   "エラー: %s",
		"frame":       "フレーム",
		"filter":      "フィルタ",

		"Load a video file":                                   "動画ファイルを読み込む",
		"Play or pause":                                       "再生/一時停止を切り替える",
		"Start playback":                                      "再生を開始する",
		"Pause playback":                                      "再生を一時停止する",
		"Show the next frame":                                 "次のフレームを表示する",
		"Show the previous frame":                             "前のフレームを表示する",
		"Jump to a frame index":                               "指定したフレームへ移動する",
		"Select none, gray, object_detection or detect_edges": "none, gray, object_detection, detect_edges から選択する",
		"Save the displayed frame":                            "表示中のフレームを保存する",
		"Show this help":                                      "このヘルプを表示する",
		"Leave the review session":                            "レビューを終了する",
	})
}
