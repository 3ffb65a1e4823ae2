// Package filesystem はファイルシステム操作を提供します
package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"FileCollector/internal/domain/model"
	"FileCollector/internal/infrastructure/logging"
)

// ErrInvalidText は UTF-8 として解釈できないファイルを表します
var ErrInvalidText = errors.New("invalid UTF-8 text")

// DirectoryValidator はディレクトリの検証機能を提供するインターフェースです
type DirectoryValidator interface {
	ValidateDirectoryPath(path string) error
}

// FileCollector は拡張子で絞り込んだファイル収集機能を提供するインターフェースです
type FileCollector interface {
	DirectoryValidator
	Scan(rootDir string, extensions []string) (*ScanResult, error)
}

// ScanResult は走査結果を保持します
type ScanResult struct {
	// Files は読み込みに成功したファイルを相対パス順に保持します
	Files model.Report
	// Skipped は読み込みに失敗してスキップしたファイルを走査順に保持します
	Skipped []*model.SkippableReadError
}

// Scanner はファイルシステムをスキャンするための構造体です
type Scanner struct {
	logger logging.Logger
}

// NewScanner は新しい Scanner インスタンスを作成します
func NewScanner(logger logging.Logger) *Scanner {
	return &Scanner{logger: logger}
}

// ValidateDirectoryPath はパスが安全で有効なディレクトリであることを確認します
func (s *Scanner) ValidateDirectoryPath(path string) error {
	if path == "" {
		return fmt.Errorf("directory path is empty")
	}

	fileInfo, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("directory does not exist: %w", err)
	}

	if !fileInfo.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	if !filepath.IsAbs(path) {
		return fmt.Errorf("path must be absolute: %s", path)
	}

	if strings.ContainsAny(path, "<>|?*") {
		return fmt.Errorf("path contains invalid characters: %s", path)
	}

	return nil
}

// MatchExtension はファイル名がいずれかの拡張子で終わるかを判定します。
// 大文字小文字を区別する単純な接尾辞比較です
func MatchExtension(name string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// readText はファイルを読み込み、UTF-8 テキストであることを確認します。
// 改行コードは変換しません
func readText(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(content) {
		return "", ErrInvalidText
	}
	return string(content), nil
}

// displayPath は rootDir を正規化せずに rel を連結します。
// "./src" を指定した場合、見出しは "./src/a.js" のようになります
func displayPath(rootDir, rel string) string {
	if rootDir == "" {
		return rel
	}
	if os.IsPathSeparator(rootDir[len(rootDir)-1]) {
		return rootDir + rel
	}
	return rootDir + string(filepath.Separator) + rel
}

// Scan は rootDir 以下を再帰的に走査し、拡張子に一致するファイルの内容を収集します。
// 存在しないルートはエラーにせず空の結果を返します。
// 読み込めないファイルはログに出力してスキップし、走査を続けます
func (s *Scanner) Scan(rootDir string, extensions []string) (*ScanResult, error) {
	result := &ScanResult{Files: model.Report{}}

	err := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// 走査できないディレクトリは配下ごと無視する
			if path != rootDir {
				s.logger.Log(logging.LevelDebug, fmt.Sprintf("Skipping %s", path), err)
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		// ルートがファイルの場合は何も収集しない
		if d.IsDir() || path == rootDir {
			return nil
		}

		if !MatchExtension(d.Name(), extensions) {
			return nil
		}

		// ディレクトリへのシンボリックリンクは辿らない
		if d.Type()&fs.ModeSymlink != 0 {
			if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
				return nil
			}
		}

		relPath, err := filepath.Rel(rootDir, path)
		if err != nil {
			relPath = path
		}
		shown := displayPath(rootDir, relPath)

		content, err := readText(path)
		if err != nil {
			skipped := &model.SkippableReadError{Path: shown, Err: err}
			result.Skipped = append(result.Skipped, skipped)
			s.logger.Log(logging.LevelWarn, fmt.Sprintf("Error reading %s", shown), err)
			return nil
		}

		result.Files = append(result.Files, model.CollectedFile{
			Path:    shown,
			RelPath: filepath.ToSlash(relPath),
			Content: content,
		})
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", rootDir, err)
	}

	result.Files.Sort()
	return result, nil
}
