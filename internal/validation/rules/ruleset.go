package rules

import (
	"strings"

	"github.com/olusolaa/api-contract-oracle/internal/core/domain"
	apperrors "github.com/olusolaa/api-contract-oracle/internal/errors"
	"github.com/olusolaa/api-contract-oracle/internal/validation/document"
)

// ParseRuleSet decodes the rule set wire format: a JSON object whose values
// are "NA" or objects of rule keyword to parameter. Empty input and a bare
// "NA" cell yield an empty rule set.
func ParseRuleSet(data []byte) (domain.RuleSet, error) {
	text := strings.TrimSpace(string(data))
	if text == "" || domain.IsNA(text) {
		return domain.RuleSet{}, nil
	}
	doc, err := document.ParseString(text)
	if err != nil {
		return nil, apperrors.WrapAs(err, apperrors.CodeRuleSetParseError, "rule set is not valid JSON")
	}
	return FromDocument(doc)
}

// FromDocument builds a rule set from an already decoded document.
func FromDocument(doc any) (domain.RuleSet, error) {
	if doc == nil || domain.IsNA(doc) {
		return domain.RuleSet{}, nil
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, apperrors.Newf(apperrors.CodeRuleSetParseError,
			"rule set must be an object, got %s", document.KindOf(doc))
	}

	set := make(domain.RuleSet, len(obj))
	for field, raw := range obj {
		if domain.IsNA(raw) {
			set[field] = domain.NARule()
			continue
		}
		spec, ok := raw.(map[string]any)
		if !ok {
			return nil, apperrors.Newf(apperrors.CodeRuleSetParseError,
				"rules for field %q must be \"NA\" or an object, got %s", field, document.KindOf(raw))
		}
		rules := make(map[string]any, len(spec))
		written := make(map[string]string, len(spec))
		for keyword, param := range spec {
			canonical := domain.CanonicalRuleKeyword(keyword)
			if prev, dup := written[canonical]; dup {
				first, second := prev, keyword
				if second < first {
					first, second = second, first
				}
				return nil, apperrors.Newf(apperrors.CodeRuleSetParseError,
					"rules for field %q repeat keyword %s as %q and %q", field, canonical, first, second)
			}
			written[canonical] = keyword
			rules[canonical] = param
		}
		set[field] = domain.RuleSpec{Rules: rules}
	}
	return set, nil
}
