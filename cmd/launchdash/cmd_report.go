package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rewired-gh/launchdash/internal/dashboard"
	"github.com/rewired-gh/launchdash/internal/format"
	"github.com/rewired-gh/launchdash/internal/logger"
	"github.com/rewired-gh/launchdash/internal/telegram"
)

var (
	reportSite     string
	reportMin      float64
	reportMax      float64
	reportMarkdown bool
	reportNotify   bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the pie and scatter figures for a selection",
	Long: `Evaluates both dashboard figures for one selection and prints them as tables.
Payload bounds default to the dataset's own minimum and maximum. With --notify
the summary is also sent to the configured Telegram chat.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportSite, "site", dashboard.AllSites, "Launch site, or ALL")
	reportCmd.Flags().Float64Var(&reportMin, "min", 0, "Lowest payload mass in kg (default: dataset minimum)")
	reportCmd.Flags().Float64Var(&reportMax, "max", 0, "Highest payload mass in kg (default: dataset maximum)")
	reportCmd.Flags().BoolVar(&reportMarkdown, "markdown", false, "Render Markdown tables")
	reportCmd.Flags().BoolVar(&reportNotify, "notify", false, "Send the summary to Telegram")
}

func runReport(cmd *cobra.Command, _ []string) error {
	cfg, dash, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}

	sel := dash.DefaultSelection()
	sel.Site = reportSite
	if cmd.Flags().Changed("min") {
		sel.Payload.Lo = reportMin
	}
	if cmd.Flags().Changed("max") {
		sel.Payload.Hi = reportMax
	}

	figs, err := dash.Evaluate(sel)
	if err != nil {
		return err
	}
	if figs.Pie == nil {
		logger.Warn("Site %q is not in the catalog; scatter is unfiltered by site", sel.Site)
	}

	mode := format.ASCII
	if reportMarkdown {
		mode = format.Markdown
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, format.PieTable(figs.Pie, mode))
	fmt.Fprintln(out)
	fmt.Fprintln(out, format.ScatterTable(&figs.Scatter, mode))

	if !reportNotify {
		return nil
	}
	if !cfg.Telegram.Enabled {
		return fmt.Errorf("--notify requires telegram.enabled in the configuration")
	}

	client, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.MaxRetries, cfg.Telegram.RetryDelayBase)
	if err != nil {
		return fmt.Errorf("failed to initialize Telegram client: %w", err)
	}
	if err := client.SendReport(figs.Pie, &figs.Scatter); err != nil {
		return err
	}
	logger.Info("Sent launch summary to Telegram")
	return nil
}
