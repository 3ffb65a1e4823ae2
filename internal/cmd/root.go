package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"FileCollector/internal/config"
	"FileCollector/internal/infrastructure/logging"
)

// Version はビルド時に -ldflags で埋め込まれます
var Version = "dev"

// NewRootCommand は filecollector のルートコマンドを作成します
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filecollector",
		Short: "Collect source files into a single text report",
		Long: `filecollector walks a directory tree, reads every file whose name ends
with one of the given extensions, and writes their contents into one
plain-text report.

The smoke subcommand sends a sequence of HTTP requests to a development
API and prints each response.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", config.DefaultConfigFile, "Path to config file (missing file means defaults)")
	cmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.PersistentFlags().String("log-format", "", "Log format: text or json")

	cmd.AddCommand(NewCollectCommand())
	cmd.AddCommand(NewSmokeCommand())

	return cmd
}

// loadConfig は --config で指定された設定ファイルを読み込みます
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	return config.LoadConfig(path)
}

// changedString はフラグが明示的に指定された場合だけ値へのポインタを返します
func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return nil
	}
	return &v
}

func newLogger(cfg *config.Config, w io.Writer) logging.Logger {
	return logging.New(cfg.LogFormat, cfg.LogLevel, w)
}
