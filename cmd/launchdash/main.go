package main

import (
	"github.com/spf13/cobra"

	"github.com/rewired-gh/launchdash/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "launchdash",
	Short: "Interactive dashboard for rocket launch records",
	Long: "launchdash loads a launch records dataset and serves a dashboard with a\n" +
		"site selector, a success pie chart and a payload/outcome scatter plot.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "configs/config.yaml", "Path to configuration file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(sitesCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Fatal("%v", err)
	}
}
