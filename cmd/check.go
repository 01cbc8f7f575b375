package main

import (
	"fmt"

	"github.com/olusolaa/api-contract-oracle/internal/app"
	apperrors "github.com/olusolaa/api-contract-oracle/internal/errors"
	"github.com/olusolaa/api-contract-oracle/internal/validation/document"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var checkFlags struct {
	expected string
	actual   string
	rules    string
	status   string
	apiName  string
	now      string
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Compare an actual response file with an expectation without sending requests.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := app.LoadConfig(cmd.Context(), viper.GetViper())
		if err != nil {
			return err
		}
		now, err := parseNow(checkFlags.now)
		if err != nil {
			return err
		}

		in := app.CheckInput{APIName: checkFlags.apiName, Now: now}
		docs := []struct {
			flag, path string
			dst        *string
		}{
			{"expected", checkFlags.expected, &in.Expected},
			{"actual", checkFlags.actual, &in.Actual},
			{"rules", checkFlags.rules, &in.Rules},
			{"status", checkFlags.status, &in.Status},
		}
		for _, d := range docs {
			if *d.dst, err = readDocument(d.flag, d.path); err != nil {
				return err
			}
		}

		outcome, err := app.Check(cmd.Context(), cfg, in)
		if err != nil {
			return err
		}
		out, err := document.MarshalIndent(outcome)
		if err != nil {
			return apperrors.Wrap(err, apperrors.CodeInternal, "failed to encode outcome")
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))

		if !outcome.Valid {
			return apperrors.NewUserFacing(apperrors.CodeCasesFailed, "actual document does not satisfy the expectation",
				"See mismatchedFields and failedValidations above.")
		}
		return nil
	},
}

func init() {
	flags := checkCmd.Flags()
	flags.StringVar(&checkFlags.expected, "expected", "", "Expected response JSON file")
	flags.StringVar(&checkFlags.actual, "actual", "", "Actual response JSON file")
	flags.StringVar(&checkFlags.rules, "rules", "", "Rule set JSON file")
	flags.StringVar(&checkFlags.status, "status", "", "Status expectation JSON file or inline object")
	flags.StringVar(&checkFlags.apiName, "api", "", "API name used to locate the data root")
	flags.StringVar(&checkFlags.now, "now", "", "Evaluation time in epoch seconds (default: now)")
	_ = checkCmd.MarkFlagRequired("expected")
	_ = checkCmd.MarkFlagRequired("actual")
}
