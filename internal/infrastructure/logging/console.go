package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var levelOrder = map[string]int{
	LevelTrace: 0,
	LevelDebug: 1,
	LevelInfo:  2,
	LevelWarn:  3,
	LevelError: 4,
}

// ConsoleLogger は人が読むための1行形式でログを出力します。
// 出力形式は "<message>" またはエラーがある場合 "<message>: <error>" です。
// 端末への出力時のみレベルに応じて色付けします。
type ConsoleLogger struct {
	writer      io.Writer
	minLevel    string
	mu          sync.Mutex
	colorOutput bool
}

// NewConsoleLogger は新しい ConsoleLogger を作成します。
// level が空または不正な場合は INFO になります
func NewConsoleLogger(writer io.Writer, level string) *ConsoleLogger {
	if writer == nil {
		writer = os.Stdout
	}
	return &ConsoleLogger{
		writer:      writer,
		minLevel:    NormalizeLevel(level),
		colorOutput: isTerminal(writer),
	}
}

// NormalizeLevel はレベル文字列を大文字に揃えます。不明な値は INFO を返します
func NormalizeLevel(level string) string {
	normalized := strings.ToUpper(strings.TrimSpace(level))
	if _, ok := levelOrder[normalized]; ok {
		return normalized
	}
	return LevelInfo
}

// isTerminal は writer が色付けに対応した端末かどうかを判定します。
// NO_COLOR が設定されている場合は color.NoColor により false になります
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return !color.NoColor && isatty.IsTerminal(f.Fd())
}

// allowed は level が minLevel 以上かどうかを返します
func allowed(level, minLevel string) bool {
	return levelOrder[NormalizeLevel(level)] >= levelOrder[minLevel]
}

func (l *ConsoleLogger) shouldLog(level string) bool {
	return allowed(level, l.minLevel)
}

// Log はメッセージを1行で出力します
func (l *ConsoleLogger) Log(level, message string, err error) {
	if !l.shouldLog(level) {
		return
	}

	line := message
	if err != nil {
		line = fmt.Sprintf("%s: %v", message, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.colorOutput {
		line = levelColor(NormalizeLevel(level)).Sprint(line)
	}
	fmt.Fprintln(l.writer, line)
}

func levelColor(level string) *color.Color {
	switch level {
	case LevelTrace:
		return color.New(color.FgHiBlack)
	case LevelDebug:
		return color.New(color.FgCyan)
	case LevelWarn:
		return color.New(color.FgYellow)
	case LevelError:
		return color.New(color.FgRed)
	default:
		return color.New(color.Reset)
	}
}
