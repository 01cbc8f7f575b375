package main

import (
	"fmt"

	"github.com/olusolaa/api-contract-oracle/internal/app"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var renderFlags struct {
	request string
	now     string
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print a request template with its placeholders and variables expanded.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := app.LoadConfig(cmd.Context(), viper.GetViper())
		if err != nil {
			return err
		}
		now, err := parseNow(renderFlags.now)
		if err != nil {
			return err
		}
		src, err := readDocument("request", renderFlags.request)
		if err != nil {
			return err
		}

		out, err := app.Render(cfg, src, now, app.Variables(viper.GetViper()))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderFlags.request, "request", "", "Request template file")
	renderCmd.Flags().StringVar(&renderFlags.now, "now", "", "Render time in epoch seconds (default: now)")
	_ = renderCmd.MarkFlagRequired("request")
}
