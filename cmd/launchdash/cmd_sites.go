package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rewired-gh/launchdash/internal/format"
)

var sitesMarkdown bool

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List the site selector options",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, dash, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}

		mode := format.ASCII
		if sitesMarkdown {
			mode = format.Markdown
		}
		fmt.Fprintln(cmd.OutOrStdout(), format.SitesTable(dash.Options(), mode))
		return nil
	},
}

func init() {
	sitesCmd.Flags().BoolVar(&sitesMarkdown, "markdown", false, "Render a Markdown table")
}
