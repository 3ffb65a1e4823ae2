package cmd

import (
	"net/http"

	"github.com/spf13/cobra"

	"FileCollector/internal/config"
	"FileCollector/internal/smoke"
)

// NewSmokeCommand は smoke サブコマンドを作成します
func NewSmokeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "smoke [plan.yaml]",
		Short: "Send a sequence of HTTP requests and print the responses",
		Long: `Run the steps of a YAML plan one after another against an API and print
every response. Responses are not checked and failed requests are not
retried; a failed step is reported and the next step runs.

Without a plan file the built-in plan exercises the task endpoints:
insert a task card, fetch task cards, update the first subtask, delete
the task card, and read the gauge.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSmoke,
	}

	cmd.Flags().String("base-url", "", "Override the plan's base_url")
	cmd.Flags().Duration("timeout", config.DefaultConfig().Smoke.Timeout, "Per-request timeout")

	return cmd
}

func runSmoke(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	flags := config.SmokeFlags{
		BaseURL:   changedString(cmd, "base-url"),
		LogLevel:  changedString(cmd, "log-level"),
		LogFormat: changedString(cmd, "log-format"),
	}
	if cmd.Flags().Changed("timeout") {
		timeout, err := cmd.Flags().GetDuration("timeout")
		if err != nil {
			return err
		}
		flags.Timeout = &timeout
	}
	cfg.MergeSmokeFlags(flags)

	if err := cfg.ValidateSmoke(); err != nil {
		return err
	}

	plan := smoke.DefaultPlan()
	if len(args) == 1 {
		plan, err = smoke.LoadPlan(args[0])
		if err != nil {
			return err
		}
	}
	if cfg.Smoke.BaseURL != "" {
		plan.BaseURL = cfg.Smoke.BaseURL
	}

	client := &http.Client{Timeout: cfg.Smoke.Timeout}
	logger := newLogger(cfg, cmd.ErrOrStderr())
	smoke.NewRunner(client, cmd.OutOrStdout(), logger).Run(cmd.Context(), plan)
	return nil
}

