package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"FileCollector/internal/config"
	"FileCollector/internal/gui"
	"FileCollector/internal/infrastructure/filesystem"
	"FileCollector/internal/interface/ui"
	"FileCollector/internal/usecase/collect"
	"FileCollector/internal/usecase/report"
)

// NewCollectCommand は collect サブコマンドを作成します
func NewCollectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Concatenate matching files under a directory into one report",
		Long: `Recursively walk --root, read every file whose name ends with one of the
--ext suffixes (exact, case-sensitive), and write a report to --out.

Each entry is written as:
  File: <path>
  Content:
  <content>
  ================================================================================

Files that cannot be read as UTF-8 text are skipped with an
"Error reading <path>: <error>" line. The run only fails when the report
itself cannot be written.`,
		Example: `  filecollector collect --root ./src --ext .js --ext .json --out report.txt
  filecollector collect --root . --ext .go,.mod --atomic
  filecollector collect --pick --ext .py`,
		Args: cobra.NoArgs,
		RunE: runCollect,
	}

	defaults := config.DefaultConfig().Collect
	cmd.Flags().String("root", defaults.Root, "Directory to walk")
	cmd.Flags().StringSlice("ext", defaults.Extensions, "File name suffixes to collect (repeatable or comma-separated)")
	cmd.Flags().String("out", defaults.Output, "Report file to write (overwritten if present)")
	cmd.Flags().Bool("atomic", false, "Write the report through a temp file and rename, under a lock")
	cmd.Flags().Bool("pick", false, "Choose the root directory with a native folder dialog")
	cmd.Flags().Bool("gui", false, "Choose the root and output directories in a window")
	cmd.MarkFlagsMutuallyExclusive("pick", "gui")
	cmd.MarkFlagsMutuallyExclusive("pick", "root")
	cmd.MarkFlagsMutuallyExclusive("gui", "root")

	return cmd
}

func runCollect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	flags := config.CollectFlags{
		Root:      changedString(cmd, "root"),
		Output:    changedString(cmd, "out"),
		LogLevel:  changedString(cmd, "log-level"),
		LogFormat: changedString(cmd, "log-format"),
	}
	if cmd.Flags().Changed("ext") {
		exts, err := cmd.Flags().GetStringSlice("ext")
		if err != nil {
			return err
		}
		flags.Extensions = &exts
	}
	if cmd.Flags().Changed("atomic") {
		atomic, _ := cmd.Flags().GetBool("atomic")
		flags.Atomic = &atomic
	}
	cfg.MergeCollectFlags(flags)

	logger := newLogger(cfg, cmd.OutOrStdout())
	scanner := filesystem.NewScanner(logger)

	pick, _ := cmd.Flags().GetBool("pick")
	useGUI, _ := cmd.Flags().GetBool("gui")
	switch {
	case pick:
		root, err := ui.NewDirectorySelector(scanner).SelectDirectory("Select root directory")
		if err != nil {
			return err
		}
		cfg.Collect.Root = root
	case useGUI:
		paths, err := gui.NewDirectorySelector(scanner).SelectDirectories()
		if err != nil {
			return err
		}
		cfg.Collect.Root = paths.Root
		cfg.Collect.Output = filepath.Join(paths.Output, filepath.Base(cfg.Collect.Output))
	}

	if err := cfg.ValidateCollect(); err != nil {
		return err
	}

	collector := collect.NewCollector(scanner, report.NewGenerator(), logger)
	if err := collector.Collect(collect.Config{
		Root:       cfg.Collect.Root,
		Extensions: cfg.Collect.Extensions,
		Output:     cfg.Collect.Output,
		Atomic:     cfg.Collect.Atomic,
	}); err != nil {
		return fmt.Errorf("collect failed: %w", err)
	}
	return nil
}
