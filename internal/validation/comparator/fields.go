package comparator

import (
	"strings"

	"github.com/olusolaa/api-contract-oracle/internal/core/domain"
)

type fieldSet map[string]struct{}

func newFieldSet(names ...string) fieldSet {
	s := make(fieldSet, len(names))
	s.add(names...)
	return s
}

func (s fieldSet) add(names ...string) {
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			s[n] = struct{}{}
		}
	}
}

func (s fieldSet) has(name string) bool {
	_, ok := s[name]
	return ok
}

// isVolatile reports fields whose literal value changes on every call.
func (c *Comparator) isVolatile(name string) bool {
	return strings.Contains(name, "timestamp") || strings.HasSuffix(name, "Id") || c.volatile.has(name)
}

// isTemporal reports fields checked directly against their time or date rule
// when they only appear in the actual document.
func (c *Comparator) isTemporal(name string) bool {
	return strings.Contains(name, "timestamp") || c.temporal.has(name)
}

type skipTable map[string]fieldSet

func (t skipTable) add(rules ...domain.SkipRule) {
	for _, r := range rules {
		api := strings.ToLower(strings.TrimSpace(r.APIName))
		if api == "" {
			continue
		}
		if t[api] == nil {
			t[api] = newFieldSet()
		}
		t[api].add(r.Fields...)
	}
}

func (t skipTable) skips(apiName, field string) bool {
	fields, ok := t[strings.ToLower(strings.TrimSpace(apiName))]
	return ok && fields.has(field)
}
