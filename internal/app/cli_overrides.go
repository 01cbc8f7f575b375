package app

import (
	"strings"

	"github.com/olusolaa/api-contract-oracle/internal/core/domain"
	"github.com/spf13/viper"
)

// parseVariables reads "name=value;name=value" into session variables.
func parseVariables(override string) map[string]string {
	if override == "" {
		return nil
	}
	parsed := make(map[string]string)
	for _, pair := range strings.Split(override, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		if name = strings.TrimSpace(name); name != "" {
			parsed[name] = strings.TrimSpace(value)
		}
	}
	if len(parsed) == 0 {
		return nil
	}
	return parsed
}

// parseSkipOverride reads "api=field,field;api=field" into skip rules.
func parseSkipOverride(override string) []domain.SkipRule {
	if override == "" {
		return nil
	}
	var parsed []domain.SkipRule
	for _, pair := range strings.Split(override, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}

		api := strings.TrimSpace(parts[0])
		fieldsRaw := strings.Split(parts[1], ",")
		fields := make([]string, 0, len(fieldsRaw))
		for _, f := range fieldsRaw {
			trimmed := strings.TrimSpace(f)
			if trimmed != "" {
				fields = append(fields, trimmed)
			}
		}

		if api != "" && len(fields) > 0 {
			parsed = append(parsed, domain.SkipRule{APIName: api, Fields: fields})
		}
	}
	return parsed
}

// Variables returns the --vars override as session variables.
func Variables(v *viper.Viper) map[string]string {
	return parseVariables(v.GetString(KeyVariables))
}
