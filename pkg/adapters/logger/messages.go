package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Session
		"Loading video file: %s":                 "動画ファイルを読み込み中: %s",
		"Loaded %s: %d frames at %.2f fps (%s)":  "%s を読み込みました: %d フレーム, %.2f fps (%s)",
		"Load failed, keeping current video: %s": "読み込みに失敗しました。現在の動画を維持します: %s",
		"Snapshot saved to %s":                   "スナップショットを %s に保存しました",
		"Snapshot failed: %s":                    "スナップショットの保存に失敗しました: %s",
		"Report saved to %s":                     "レポートを %s に保存しました",
		"No video loaded":                        "動画が読み込まれていません",
		"Interrupted, shutting down...":          "中断されました。シャットダウン中...",

		// Cursor
		"Seek to frame %d":                         "フレーム %d へシーク",
		"Seek target %d clamped to %d":             "シーク先 %d を %d に制限しました",
		"Raw cursor at %d, expected %d; resyncing": "生カーソルが %d (期待値 %d) のため再同期します",
		"End of stream at frame %d":                "フレーム %d でストリーム終端に達しました",
		"Playback paused at end of stream":         "ストリーム終端で再生を一時停止しました",
		"Playback started":                         "再生を開始しました",
		"Playback paused":                          "再生を一時停止しました",
		"Close failed: %s":                         "クローズに失敗しました: %s",

		// Filter
		"Filter set to %s":                                           "フィルタを %s に設定しました",
		"Detector failed, showing unannotated frame: %s":             "検出器が失敗したため注釈なしのフレームを表示します: %s",
		"Edge detection is not implemented; showing frame unchanged": "エッジ検出は未実装のためフレームをそのまま表示します",
		"%d objects detected":                                        "%d 個の物体を検出しました",

		// Frame sources
		"Using %s backend for %s":                                   "%[2]s に %[1]s バックエンドを使用します",
		"Container duration unavailable, using decoder frame count": "コンテナの再生時間が取得できないため、デコーダのフレーム数を使用します",
		"ffprobe unavailable: %s":                                   "ffprobe が利用できません: %s",
		"Decoding frame %d":                                         "フレーム %d をデコード中",
		"Decode failed at frame %d: %s":                             "フレーム %d のデコードに失敗しました: %s",

		// Display
		"Display update failed: %s": "表示の更新に失敗しました: %s",
		"Tick interval %s":          "ティック間隔 %s",
		"%s: %s":                    "%s: %s",
		"%s failed: %s":             "%s に失敗しました: %s",

		// Detector process
		"Starting detector: %s": "検出器を起動中: %s",
		"Detector stderr: %s":   "検出器の標準エラー: %s",
	})
}
