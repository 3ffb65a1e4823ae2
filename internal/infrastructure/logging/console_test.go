package logging

import (
	"errors"
	"strings"
	"testing"
)

func TestConsoleLogger_Log(t *testing.T) {
	tests := []struct {
		name     string
		minLevel string
		level    string
		message  string
		err      error
		want     string
	}{
		{
			name:     "エラーなし",
			minLevel: "info",
			level:    LevelInfo,
			message:  "Collected data saved to out.txt",
			want:     "Collected data saved to out.txt\n",
		},
		{
			name:     "エラーあり",
			minLevel: "info",
			level:    LevelWarn,
			message:  "Error reading a.js",
			err:      errors.New("permission denied"),
			want:     "Error reading a.js: permission denied\n",
		},
		{
			name:     "レベル未満は出力しない",
			minLevel: "warn",
			level:    LevelInfo,
			message:  "hidden",
			want:     "",
		},
		{
			name:     "不正なレベルはINFO扱い",
			minLevel: "verbose",
			level:    LevelDebug,
			message:  "hidden",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf strings.Builder
			logger := NewConsoleLogger(&buf, tt.minLevel)

			logger.Log(tt.level, tt.message, tt.err)

			if got := buf.String(); got != tt.want {
				t.Errorf("Log() output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeLevel(t *testing.T) {
	tests := map[string]string{
		"":        LevelInfo,
		"debug":   LevelDebug,
		" Warn ":  LevelWarn,
		"ERROR":   LevelError,
		"unknown": LevelInfo,
	}
	for in, want := range tests {
		if got := NormalizeLevel(in); got != want {
			t.Errorf("NormalizeLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew(t *testing.T) {
	var buf strings.Builder
	if _, ok := New("json", "info", &buf).(*JSONLogger); !ok {
		t.Error("New(json) should return *JSONLogger")
	}
	if _, ok := New("text", "info", &buf).(*ConsoleLogger); !ok {
		t.Error("New(text) should return *ConsoleLogger")
	}
}
