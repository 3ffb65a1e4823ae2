package model

import "fmt"

// SkippableReadError は一致したファイル1件の読み込みに失敗したことを表します。
// このエラーは実行全体の失敗にはならず、該当ファイルはレポートから除外されます
type SkippableReadError struct {
	Path string
	Err  error
}

func (e *SkippableReadError) Error() string {
	return fmt.Sprintf("Error reading %s: %v", e.Path, e.Err)
}

func (e *SkippableReadError) Unwrap() error { return e.Err }

// FatalWriteError は出力ファイルの作成または書き込みに失敗したことを表します
type FatalWriteError struct {
	Path string
	Err  error
}

func (e *FatalWriteError) Error() string {
	return fmt.Sprintf("failed to write report %s: %v", e.Path, e.Err)
}

func (e *FatalWriteError) Unwrap() error { return e.Err }
