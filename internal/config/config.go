// Package config は filecollector の設定ファイルとフラグの統合を扱います
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile は --config が指定されない場合に読み込む設定ファイルです
const DefaultConfigFile = ".filecollector.yaml"

// CollectConfig は collect コマンドの設定です
type CollectConfig struct {
	// Root は走査するディレクトリです。存在しない場合や空の場合は空のレポートになります
	Root string `yaml:"root"`
	// Extensions はファイル名の接尾辞です（例: ".js", ".json"）。空のリストは何にも一致しません
	Extensions []string `yaml:"extensions" validate:"dive,required"`
	// Output はレポートの出力先ファイルです
	Output string `yaml:"output" validate:"required"`
	// Atomic は一時ファイルとリネームで出力を置き換えます
	Atomic bool `yaml:"atomic"`
}

// SmokeConfig は smoke コマンドの設定です
type SmokeConfig struct {
	// BaseURL はプランの base_url を上書きします
	BaseURL string `yaml:"base_url" validate:"omitempty,url"`
	// Timeout は1リクエストあたりのタイムアウトです
	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`
}

// Config は filecollector の設定全体です
type Config struct {
	// LogLevel はログの詳細度です（trace, debug, info, warn, error）
	LogLevel string `yaml:"log_level" validate:"oneof=trace debug info warn error"`
	// LogFormat はログの形式です（text, json）
	LogFormat string `yaml:"log_format" validate:"oneof=text json"`

	Collect CollectConfig `yaml:"collect"`
	Smoke   SmokeConfig   `yaml:"smoke"`
}

// DefaultConfig はデフォルト値の Config を返します
func DefaultConfig() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: "text",
		Collect: CollectConfig{
			Root:       ".",
			Extensions: []string{".js", ".json"},
			Output:     "collected_project_data.txt",
		},
		Smoke: SmokeConfig{
			Timeout: 30 * time.Second,
		},
	}
}

// LoadConfig は path の YAML を読み込み、デフォルト値に重ねます。
// ファイルが存在しない場合はデフォルト値をそのまま返します
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// timeout は文字列で受けてから time.ParseDuration する
	type yamlSmoke struct {
		BaseURL string `yaml:"base_url"`
		Timeout string `yaml:"timeout"`
	}
	type yamlConfig struct {
		LogLevel  string        `yaml:"log_level"`
		LogFormat string        `yaml:"log_format"`
		Collect   CollectConfig `yaml:"collect"`
		Smoke     yamlSmoke     `yaml:"smoke"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(yamlCfg.LogLevel)
	}
	if yamlCfg.LogFormat != "" {
		cfg.LogFormat = strings.ToLower(yamlCfg.LogFormat)
	}
	if yamlCfg.Collect.Root != "" {
		cfg.Collect.Root = yamlCfg.Collect.Root
	}
	if len(yamlCfg.Collect.Extensions) > 0 {
		cfg.Collect.Extensions = yamlCfg.Collect.Extensions
	}
	if yamlCfg.Collect.Output != "" {
		cfg.Collect.Output = yamlCfg.Collect.Output
	}
	if yamlCfg.Collect.Atomic {
		cfg.Collect.Atomic = true
	}
	if yamlCfg.Smoke.BaseURL != "" {
		cfg.Smoke.BaseURL = yamlCfg.Smoke.BaseURL
	}
	if yamlCfg.Smoke.Timeout != "" {
		timeout, err := time.ParseDuration(yamlCfg.Smoke.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout format %q: %w", yamlCfg.Smoke.Timeout, err)
		}
		cfg.Smoke.Timeout = timeout
	}

	return cfg, nil
}

// CollectFlags はコマンドラインで明示的に指定された collect の値です。nil は未指定を表します
type CollectFlags struct {
	Root       *string
	Extensions *[]string
	Output     *string
	Atomic     *bool
	LogLevel   *string
	LogFormat  *string
}

// MergeCollectFlags は指定されたフラグの値で設定を上書きします
func (c *Config) MergeCollectFlags(f CollectFlags) {
	if f.Root != nil {
		c.Collect.Root = *f.Root
	}
	if f.Extensions != nil {
		c.Collect.Extensions = *f.Extensions
	}
	if f.Output != nil {
		c.Collect.Output = *f.Output
	}
	if f.Atomic != nil {
		c.Collect.Atomic = *f.Atomic
	}
	c.mergeLogFlags(f.LogLevel, f.LogFormat)
}

// SmokeFlags はコマンドラインで明示的に指定された smoke の値です
type SmokeFlags struct {
	BaseURL   *string
	Timeout   *time.Duration
	LogLevel  *string
	LogFormat *string
}

// MergeSmokeFlags は指定されたフラグの値で設定を上書きします
func (c *Config) MergeSmokeFlags(f SmokeFlags) {
	if f.BaseURL != nil {
		c.Smoke.BaseURL = *f.BaseURL
	}
	if f.Timeout != nil {
		c.Smoke.Timeout = *f.Timeout
	}
	c.mergeLogFlags(f.LogLevel, f.LogFormat)
}

func (c *Config) mergeLogFlags(level, format *string) {
	if level != nil {
		c.LogLevel = strings.ToLower(*level)
	}
	if format != nil {
		c.LogFormat = strings.ToLower(*format)
	}
}

// Validate は設定値をすべて検証します
func (c *Config) Validate() error {
	return c.validate()
}

// ValidateCollect は collect コマンドが使う設定だけを検証します
func (c *Config) ValidateCollect() error {
	return c.validate("Smoke")
}

// ValidateSmoke は smoke コマンドが使う設定だけを検証します
func (c *Config) ValidateSmoke() error {
	return c.validate("Collect")
}

func (c *Config) validate(except ...string) error {
	if err := validator.New().StructExcept(c, except...); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
