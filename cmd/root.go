package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olusolaa/api-contract-oracle/internal/app"
	apperrors "github.com/olusolaa/api-contract-oracle/internal/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "contract-oracle",
	Short: "Runs data-driven contract tests against a GraphQL API.",
	Long: `Contract Oracle sends the requests of a test suite to a GraphQL endpoint and
decides for every response whether it satisfies the expected document, the
per-field rules and the expected status block.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	if userMsg, suggestion, ok := apperrors.GetUserFacingMessage(err); ok {
		fmt.Fprintf(w, "ERROR: %s\n", userMsg)
		if suggestion != "" {
			fmt.Fprintf(w, "Suggestion: %s\n", suggestion)
		}
		return
	}
	if appErr := (*apperrors.AppError)(nil); errors.As(err, &appErr) {
		fmt.Fprintf(w, "ERROR: %s\n", appErr.Error())
		return
	}
	fmt.Fprintf(w, "ERROR: %v\n", err)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Configuration file path (default is .contract-oracle.yaml in . or $HOME)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")
	rootCmd.PersistentFlags().String("vars", "", "Session variables, e.g. 'user_id=u-1;region=eu'")
	rootCmd.PersistentFlags().String("skip", "", "Extra skipped fields per API, e.g. 'getUser=name,age;addUser=app_user_id'")

	mustBind("settings.log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	mustBind("settings.log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	mustBind(app.KeyVariables, rootCmd.PersistentFlags().Lookup("vars"))
	mustBind(app.KeySkip, rootCmd.PersistentFlags().Lookup("skip"))

	viper.SetEnvPrefix("ORACLE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(runCmd, checkCmd, renderCmd)
}

func initializeConfig(cmd *cobra.Command) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigName(".contract-oracle")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return apperrors.Wrap(err, apperrors.CodeConfigReadError, "failed to read config file")
		}
	}
	return nil
}
