// Package report はレポート生成機能を提供します
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"FileCollector/internal/domain/model"
)

const (
	// DefaultOutputFileName は出力先が指定されない場合のファイル名です
	DefaultOutputFileName = "collected_project_data.txt"
	// SeparatorWidth は区切り線の文字数です
	SeparatorWidth = 80
)

// Separator は各エントリの末尾に出力する区切り線です
var Separator = strings.Repeat("=", SeparatorWidth)

// Generator はレポート生成機能を提供します
type Generator struct{}

// NewGenerator は新しい Generator インスタンスを作成します
func NewGenerator() *Generator {
	return &Generator{}
}

// CreateOutputFile は出力ファイルを作成します。既存のファイルは切り詰めて上書きします
func (g *Generator) CreateOutputFile(outputPath string) (*os.File, error) {
	outputFile, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return outputFile, nil
}

// WriteReport はエントリを順に次の形式で書き出します。
//
//	File: <path>
//	Content:
//	<content>
//	================================================================================
//
// エントリ間に空行は入れません
func (g *Generator) WriteReport(writer io.Writer, entries model.Report) error {
	bw := bufio.NewWriter(writer)

	for _, entry := range entries {
		if _, err := fmt.Fprintf(bw, "File: %s\nContent:\n%s\n%s\n", entry.Path, entry.Content, Separator); err != nil {
			return err
		}
	}

	return bw.Flush()
}
