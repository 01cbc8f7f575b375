package main

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/olusolaa/api-contract-oracle/internal/core/domain"
	apperrors "github.com/olusolaa/api-contract-oracle/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func mustBind(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

// parseNow reads --now as epoch seconds; empty means the wall clock.
func parseNow(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Now(), nil
	}
	epoch, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return time.Time{}, apperrors.WrapUserFacing(err, apperrors.CodeConfigValidation,
			"invalid --now value "+s, "Pass epoch seconds, e.g. --now 1700000500.")
	}
	return time.Unix(epoch, 0), nil
}

// readDocument returns the contents of path, or "" when path is empty or NA.
// A value starting with '{' is taken as inline JSON.
func readDocument(flag, path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" || domain.IsNA(path) {
		return "", nil
	}
	if strings.HasPrefix(path, "{") {
		return path, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", apperrors.WrapUserFacing(err, apperrors.CodeConfigReadError,
			"cannot read --"+flag+" file "+path, "Check the file path.")
	}
	return string(data), nil
}
