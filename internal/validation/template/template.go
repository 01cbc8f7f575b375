// Package template parses request templates into literal text, temporal
// placeholders and session variables, and renders them for one test case.
package template

import (
	"strings"
	"time"

	"github.com/olusolaa/api-contract-oracle/internal/core/domain"
	apperrors "github.com/olusolaa/api-contract-oracle/internal/errors"
	"github.com/olusolaa/api-contract-oracle/internal/validation/constraint"
	"github.com/olusolaa/api-contract-oracle/internal/validation/document"
)

type NodeKind int

const (
	NodeLiteral NodeKind = iota
	NodeTimeRange
	NodeDateRange
	NodeVariable
)

func (k NodeKind) String() string {
	switch k {
	case NodeLiteral:
		return "Literal"
	case NodeTimeRange:
		return "TimeRange"
	case NodeDateRange:
		return "DateRange"
	case NodeVariable:
		return "Variable"
	}
	return "Unknown"
}

// Node is one piece of a parsed template. Text is the exact source span.
type Node struct {
	Kind       NodeKind
	Text       string
	Field      string
	Descriptor constraint.Descriptor
	Variable   string
}

type Template struct {
	nodes []Node
}

func (t *Template) Nodes() []Node {
	return append([]Node(nil), t.nodes...)
}

// Placeholders returns the temporal nodes in source order.
func (t *Template) Placeholders() []Node {
	var out []Node
	for _, n := range t.nodes {
		if n.Kind == NodeTimeRange || n.Kind == NodeDateRange {
			out = append(out, n)
		}
	}
	return out
}

// Source reassembles the original template text.
func (t *Template) Source() string {
	var sb strings.Builder
	for _, n := range t.nodes {
		sb.WriteString(n.Text)
	}
	return sb.String()
}

// Bindings supply everything rendering needs for one test case.
type Bindings struct {
	Now    time.Time
	Values map[string]any
	// Layouts overrides the forward-mode layout per field name.
	Layouts map[string]string
}

// Render replaces every placeholder with its quoted literal and every
// variable with its session value. All other bytes are kept as written.
func (t *Template) Render(b Bindings) (string, error) {
	var sb strings.Builder
	for _, n := range t.nodes {
		switch n.Kind {
		case NodeLiteral:
			sb.WriteString(n.Text)
		case NodeVariable:
			v, ok := b.Values[n.Variable]
			if !ok {
				return "", apperrors.Newf(apperrors.CodeTemplateParseError, "unbound variable %q", n.Variable)
			}
			sb.WriteString(document.Text(v))
		case NodeTimeRange, NodeDateRange:
			literal, err := resolve(n, b)
			if err != nil {
				return "", apperrors.Wrap(err, apperrors.GetCode(err),
					"failed to resolve placeholder for field "+n.Field)
			}
			sb.WriteByte('"')
			sb.WriteString(literal)
			sb.WriteByte('"')
		}
	}
	return sb.String(), nil
}

func resolve(n Node, b Bindings) (string, error) {
	if layout, ok := b.Layouts[n.Field]; ok && layout != "" {
		return constraint.ResolveForwardLayout(n.Descriptor, b.Now, layout)
	}
	return constraint.ResolveForward(n.Descriptor, b.Now)
}

// RenderForCase renders with the now and session values of a test case.
func (t *Template) RenderForCase(tc domain.TestCaseContext, layouts map[string]string) (string, error) {
	return t.Render(Bindings{Now: tc.Now, Values: tc.Values, Layouts: layouts})
}
