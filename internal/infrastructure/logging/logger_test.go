package logging

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestJSONLogger(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		message string
		err     error
	}{
		{
			name:    "完了メッセージ",
			level:   LevelInfo,
			message: "Collected data saved to collected_project_data.txt",
			err:     nil,
		},
		{
			name:    "読み込みスキップ",
			level:   LevelWarn,
			message: "Error reading src/a.js",
			err:     errors.New("invalid UTF-8 text"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf strings.Builder
			logger := NewJSONLogger(&buf, LevelTrace)

			logger.Log(tt.level, tt.message, tt.err)

			var logEntry LogEntry
			if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &logEntry); err != nil {
				t.Fatalf("JSONの解析に失敗: %v", err)
			}

			if logEntry.Message != tt.message {
				t.Errorf("メッセージが不正: got %v, want %v", logEntry.Message, tt.message)
			}
			if logEntry.Level != tt.level {
				t.Errorf("ログレベルが不正: got %v, want %v", logEntry.Level, tt.level)
			}
			if tt.err != nil {
				if logEntry.Error != tt.err.Error() {
					t.Errorf("エラーメッセージが不正: got %v, want %v", logEntry.Error, tt.err.Error())
				}
			} else if logEntry.Error != "" {
				t.Errorf("エラーメッセージが不正: got %v, want empty", logEntry.Error)
			}

			logTime, err := time.Parse(time.RFC3339, logEntry.Timestamp)
			if err != nil {
				t.Fatalf("タイムスタンプの解析に失敗: %v", err)
			}
			if time.Since(logTime) > time.Minute {
				t.Errorf("タイムスタンプが不正: got %v, 現在との差が1分以上", logEntry.Timestamp)
			}
		})
	}
}

func TestJSONLogger_OneLinePerEntry(t *testing.T) {
	var buf strings.Builder
	logger := NewJSONLogger(&buf, LevelTrace)

	logger.Log(LevelWarn, "Error reading a", errors.New("x"))
	logger.Log(LevelWarn, "Error reading b", errors.New("y"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
}

func TestJSONLogger_LevelFilter(t *testing.T) {
	tests := []struct {
		name      string
		minLevel  string
		wantLines int
	}{
		{"trace は全て出力", "trace", 3},
		{"info は DEBUG を除外", "info", 2},
		{"error は ERROR のみ", "error", 1},
		{"不正な値は INFO 扱い", "verbose", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf strings.Builder
			logger := New("json", tt.minLevel, &buf)

			logger.Log(LevelDebug, "Matched 0 files", nil)
			logger.Log(LevelWarn, "Error reading a.js", errors.New("invalid UTF-8 text"))
			logger.Log(LevelError, "failed", nil)

			got := 0
			if s := strings.TrimSpace(buf.String()); s != "" {
				got = len(strings.Split(s, "\n"))
			}
			if got != tt.wantLines {
				t.Errorf("got %d lines, want %d\n%s", got, tt.wantLines, buf.String())
			}
		})
	}
}
