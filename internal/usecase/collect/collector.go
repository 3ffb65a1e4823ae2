// Package collect はディレクトリ走査からレポート出力までの収集処理を提供します
package collect

import (
	"fmt"
	"io"

	"FileCollector/internal/domain/model"
	"FileCollector/internal/infrastructure/filelock"
	"FileCollector/internal/infrastructure/filesystem"
	"FileCollector/internal/infrastructure/logging"
	"FileCollector/internal/usecase/report"
)

// Config は1回の収集に必要な入力です
type Config struct {
	// Root は走査するディレクトリです。存在しなくてもエラーにはなりません
	Root string
	// Extensions はファイル名の接尾辞として一致させる文字列です
	Extensions []string
	// Output はレポートの出力先です。既存のファイルは上書きされます
	Output string
	// Atomic が true の場合、一時ファイルとリネームで出力を置き換えます
	Atomic bool
}

// Collector はファイルの収集とレポートの書き出しを行います
type Collector struct {
	scanner   filesystem.FileCollector
	generator *report.Generator
	logger    logging.Logger
}

// NewCollector は新しい Collector を作成します
func NewCollector(scanner filesystem.FileCollector, generator *report.Generator, logger logging.Logger) *Collector {
	return &Collector{
		scanner:   scanner,
		generator: generator,
		logger:    logger,
	}
}

// Collect は cfg.Root 以下の一致するファイルを読み込み、cfg.Output にレポートを書き出します。
// 個々のファイルの読み込み失敗はログに出してスキップします。
// 返すエラーは出力ファイルに書き込めなかった場合の *model.FatalWriteError だけです
func (c *Collector) Collect(cfg Config) error {
	result, err := c.scanner.Scan(cfg.Root, cfg.Extensions)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", cfg.Root, err)
	}

	c.logger.Log(logging.LevelDebug,
		fmt.Sprintf("Matched %d files under %s (%d skipped)", len(result.Files), cfg.Root, len(result.Skipped)), nil)

	if err := c.write(cfg, result.Files); err != nil {
		return &model.FatalWriteError{Path: cfg.Output, Err: err}
	}

	c.logger.Log(logging.LevelInfo, fmt.Sprintf("Collected data saved to %s", cfg.Output), nil)
	return nil
}

func (c *Collector) write(cfg Config, entries model.Report) error {
	if cfg.Atomic {
		return filelock.LockAndWrite(cfg.Output, func(w io.Writer) error {
			return c.generator.WriteReport(w, entries)
		})
	}

	outputFile, err := c.generator.CreateOutputFile(cfg.Output)
	if err != nil {
		return err
	}

	if err := c.generator.WriteReport(outputFile, entries); err != nil {
		outputFile.Close()
		return err
	}
	return outputFile.Close()
}
