package main

import (
	"github.com/olusolaa/api-contract-oracle/internal/app"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute every case of a suite and report the results.",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.BuildApplicationFromViper(cmd.Context(), viper.GetViper(),
			app.WithReportWriter(cmd.OutOrStdout()))
		if err != nil {
			return err
		}
		_, err = application.Run(cmd.Context())
		return err
	},
}

func init() {
	flags := runCmd.Flags()
	flags.String("suite", "", "Suite location: a local .yaml/.json file or s3://bucket/key")
	flags.String("endpoint", "", "GraphQL endpoint URL")
	flags.String("token", "", "Bearer token sent with every request")
	flags.Int("concurrency", 10, "Maximum number of cases run at once")
	flags.String("reporter", "text", "Report format (text, json)")
	flags.Bool("diff", false, "Show an expected/actual diff for failed cases (text reporter)")
	flags.String("metrics-file", "", "Write Prometheus metrics to this textfile")

	mustBind("suite.location", flags.Lookup("suite"))
	mustBind("transport.endpoint", flags.Lookup("endpoint"))
	mustBind("transport.token", flags.Lookup("token"))
	mustBind("settings.concurrency", flags.Lookup("concurrency"))
	mustBind("settings.reporter", flags.Lookup("reporter"))
	mustBind("settings.reporter_config.text.show_diff", flags.Lookup("diff"))
	mustBind("metrics.textfile_path", flags.Lookup("metrics-file"))
}
