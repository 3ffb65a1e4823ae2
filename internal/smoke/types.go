// Package smoke は開発中の REST API に対して順番にリクエストを送り、
// レスポンスを表示する手動スモークテストを提供します。
// レスポンスの正しさは検証せず、失敗したリクエストも再試行しません。
package smoke

import "time"

// Plan は順に実行するリクエストの一覧です
type Plan struct {
	Name      string                 `yaml:"name"`
	BaseURL   string                 `yaml:"base_url"`
	Variables map[string]interface{} `yaml:"variables"`
	Steps     []Step                 `yaml:"steps"`
}

// Step は1回のリクエストを表します。
// Path, Query, Headers, Body には {{var}} または {{step|key|0|key}} を書けます
type Step struct {
	Name    string            `yaml:"name"`
	Method  string            `yaml:"method"`
	Path    string            `yaml:"path"`
	Query   map[string]string `yaml:"query"`
	Headers map[string]string `yaml:"headers"`
	Body    interface{}       `yaml:"body"`
	// Extract はレスポンスボディから変数を取り出します（変数名 -> "key|0|key"）
	Extract map[string]string `yaml:"extract"`
	// SkipUnless に指定した変数が未設定の場合、このステップは実行しません
	SkipUnless string `yaml:"skip_unless"`
}

// Response は1ステップの実行結果です
type Response struct {
	StatusCode int
	Body       interface{}
	Duration   time.Duration
	RequestID  string
	Err        error
}

// Summary は実行全体の件数です
type Summary struct {
	Total   int
	Sent    int
	Failed  int
	Skipped int
}
