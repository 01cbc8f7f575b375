package file

import (
	"context"
	stderrs "errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/olusolaa/api-contract-oracle/internal/adapters/suite"
	"github.com/olusolaa/api-contract-oracle/internal/core/domain"
	"github.com/olusolaa/api-contract-oracle/internal/core/ports"
	"github.com/olusolaa/api-contract-oracle/internal/errors"
)

const Scheme = "file"

// Source reads suites from the local filesystem.
type Source struct {
	logger ports.Logger
}

func NewSource(logger ports.Logger) *Source {
	return &Source{logger: logger}
}

func (s *Source) Scheme() string {
	return Scheme
}

func (s *Source) Load(ctx context.Context, location string) (domain.Suite, error) {
	filePath := strings.TrimPrefix(location, Scheme+"://")
	if !suite.IsSuiteFile(filePath) {
		return domain.Suite{}, errors.NewUserFacing(errors.CodeSuiteReadError,
			fmt.Sprintf("unsupported suite file %s", filePath), "Use a .yaml, .yml or .json suite file.")
	}

	s.logger.Debugf(ctx, "Reading suite file: %s", filePath)
	data, err := os.ReadFile(filePath)
	if err != nil {
		if stderrs.Is(err, fs.ErrNotExist) {
			return domain.Suite{}, errors.WrapUserFacing(err, errors.CodeSuiteNotFound,
				fmt.Sprintf("suite file %s not found", filePath), "Check the --suite flag or suite.location setting.")
		}
		return domain.Suite{}, errors.Wrap(err, errors.CodeSuiteReadError,
			fmt.Sprintf("failed to read suite file %s", filePath))
	}

	st, err := suite.Decode(ctx, data, filePath)
	if err != nil {
		return domain.Suite{}, err
	}
	s.logger.Infof(ctx, "Loaded %d cases from %s", len(st.Cases), filePath)
	return st, nil
}
