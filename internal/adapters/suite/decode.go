// Package suite decodes suite files shared by every suite source.
package suite

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/olusolaa/api-contract-oracle/internal/config"
	"github.com/olusolaa/api-contract-oracle/internal/core/domain"
	"github.com/olusolaa/api-contract-oracle/internal/errors"
	"github.com/olusolaa/api-contract-oracle/internal/validation/document"
	"gopkg.in/yaml.v3"
)

// cell holds a document-valued column. Suites may write the document as JSON
// text or as a nested YAML value; both decode to JSON text.
type cell string

func (c *cell) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		if node.Tag == "!!null" {
			*c = ""
			return nil
		}
		*c = cell(node.Value)
		return nil
	}
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	b, err := document.Marshal(v)
	if err != nil {
		return fmt.Errorf("line %d: cannot encode value as JSON: %w", node.Line, err)
	}
	*c = cell(b)
	return nil
}

type rawSuite struct {
	Variables map[string]string `yaml:"variables"`
	Cases     []rawCase         `yaml:"cases"`
}

type rawCase struct {
	ID             string            `yaml:"id"`
	APIName        string            `yaml:"api_name"`
	Name           string            `yaml:"name"`
	Request        cell              `yaml:"request"`
	Expected       cell              `yaml:"expected"`
	ExpectedStatus cell              `yaml:"expected_status"`
	Rules          cell              `yaml:"rules"`
	Extract        map[string]string `yaml:"extract"`
}

// Decode parses a YAML or JSON suite and validates every case. JSON input is
// read by the YAML decoder.
func Decode(ctx context.Context, data []byte, location string) (domain.Suite, error) {
	var raw rawSuite
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return domain.Suite{}, errors.WrapUserFacing(err, errors.CodeSuiteParseError,
			fmt.Sprintf("failed to parse suite %s", location), "Check the suite file syntax.")
	}

	suite := domain.Suite{Variables: raw.Variables, Cases: make([]domain.TestCase, 0, len(raw.Cases))}
	for i, rc := range raw.Cases {
		suite.Cases = append(suite.Cases, domain.TestCase{
			ID:             strings.TrimSpace(rc.ID),
			APIName:        strings.TrimSpace(rc.APIName),
			Name:           rc.Name,
			Request:        string(rc.Request),
			Expected:       string(rc.Expected),
			ExpectedStatus: string(rc.ExpectedStatus),
			Rules:          string(rc.Rules),
			Extract:        rc.Extract,
			Order:          i,
		})
	}

	if err := config.ValidateStruct(ctx, &suite, errors.CodeSuiteParseError, "Suite "+location,
		"Every case needs id, api_name and request."); err != nil {
		return domain.Suite{}, err
	}

	seen := make(map[string]int, len(suite.Cases))
	for i, tc := range suite.Cases {
		if prev, dup := seen[tc.ID]; dup {
			return domain.Suite{}, errors.NewUserFacing(errors.CodeSuiteParseError,
				fmt.Sprintf("suite %s: case id %q is used by cases %d and %d", location, tc.ID, prev, i),
				"Give every case a unique id.")
		}
		seen[tc.ID] = i
	}
	return suite, nil
}

// IsSuiteFile reports extensions a suite source will accept.
func IsSuiteFile(location string) bool {
	switch strings.ToLower(path.Ext(location)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}
