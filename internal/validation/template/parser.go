package template

import (
	"strings"

	"github.com/olusolaa/api-contract-oracle/internal/core/domain"
	apperrors "github.com/olusolaa/api-contract-oracle/internal/errors"
	"github.com/olusolaa/api-contract-oracle/internal/validation/constraint"
	"github.com/olusolaa/api-contract-oracle/pkg/convert"
)

type Option func(*parser)

// WithFields replaces the set of field names that may carry a descriptor.
func WithFields(fields ...string) Option {
	return func(p *parser) {
		p.fields = make(map[string]struct{}, len(fields))
		for _, f := range fields {
			p.fields[f] = struct{}{}
		}
	}
}

type parser struct {
	src    string
	toks   []token
	fields map[string]struct{}
}

// Parse builds the template AST of src. Objects that follow an allowed field
// and carry a ValidationType key become placeholders; every other byte stays
// literal.
func Parse(src string, opts ...Option) (*Template, error) {
	p := &parser{src: src, toks: lex(src)}
	WithFields(domain.TemplateFields...)(p)
	for _, opt := range opts {
		opt(p)
	}

	var nodes []Node
	litStart := 0
	for i := 0; i < len(p.toks); i++ {
		field, open, ok := p.fieldValueStart(i)
		if !ok {
			continue
		}
		desc, closeIdx, found, err := p.descriptor(open)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}

		start, end := p.toks[open].start, p.toks[closeIdx].end
		nodes = appendLiteral(nodes, src[litStart:start])
		nodes = append(nodes, Node{
			Kind:       nodeKindFor(desc.Kind),
			Text:       src[start:end],
			Field:      field,
			Descriptor: desc,
		})
		litStart = end
		i = closeIdx
	}
	nodes = appendLiteral(nodes, src[litStart:])

	return &Template{nodes: nodes}, nil
}

// fieldValueStart matches `field :` followed by `{` where field is allowed.
// It returns the field name and the index of the opening brace.
func (p *parser) fieldValueStart(i int) (string, int, bool) {
	t := p.toks[i]
	if t.kind != tokIdent && t.kind != tokString {
		return "", 0, false
	}
	field := t.unquote()
	if _, ok := p.fields[field]; !ok {
		return "", 0, false
	}
	j := p.skipSpace(i + 1)
	if j >= len(p.toks) || !p.toks[j].is(tokPunct, ":") {
		return "", 0, false
	}
	j = p.skipSpace(j + 1)
	if j >= len(p.toks) || !p.toks[j].is(tokPunct, "{") {
		return "", 0, false
	}
	return field, j, true
}

// descriptor reads a flat object starting at the brace at open. found is
// false when the object is not a descriptor, which leaves it literal.
func (p *parser) descriptor(open int) (constraint.Descriptor, int, bool, error) {
	entries := make(map[string]string)
	i := open + 1
	for {
		i = p.skipSeparators(i)
		if i >= len(p.toks) {
			return constraint.Descriptor{}, 0, false, nil
		}
		if p.toks[i].is(tokPunct, "}") {
			break
		}

		key := p.toks[i]
		if key.kind != tokIdent && key.kind != tokString {
			return constraint.Descriptor{}, 0, false, nil
		}
		i = p.skipSpace(i + 1)
		if i >= len(p.toks) || !p.toks[i].is(tokPunct, ":") {
			return constraint.Descriptor{}, 0, false, nil
		}
		i = p.skipSpace(i + 1)
		if i >= len(p.toks) {
			return constraint.Descriptor{}, 0, false, nil
		}
		val := p.toks[i]
		if val.kind != tokIdent && val.kind != tokString && val.kind != tokNumber {
			return constraint.Descriptor{}, 0, false, nil
		}
		entries[strings.ToLower(key.unquote())] = val.unquote()
		i++
	}

	vt, ok := entries[strings.ToLower(domain.RuleValidationType)]
	if !ok {
		return constraint.Descriptor{}, 0, false, nil
	}
	desc, err := buildDescriptor(vt, entries, p.src[p.toks[open].start:p.toks[i].end])
	if err != nil {
		return constraint.Descriptor{}, 0, false, err
	}
	return desc, i, true, nil
}

func buildDescriptor(validationType string, entries map[string]string, span string) (constraint.Descriptor, error) {
	kind, ok := constraint.ParseKind(validationType)
	if !ok {
		return constraint.Descriptor{}, apperrors.Newf(apperrors.CodeTemplateParseError,
			"unsupported ValidationType %q in %s", validationType, span)
	}

	keywordKey, offsetKey, offsetRequired := domain.RuleTimeConstraint, domain.RuleOffsetSeconds, true
	if kind == constraint.KindDateRange {
		keywordKey, offsetKey, offsetRequired = domain.RuleDateConstraint, domain.RuleOffsetDays, false
	}

	keyword, ok := entries[strings.ToLower(keywordKey)]
	if !ok {
		return constraint.Descriptor{}, apperrors.Newf(apperrors.CodeTemplateParseError,
			"%s descriptor requires %s in %s", kind, keywordKey, span)
	}

	desc := constraint.Descriptor{Kind: kind, Constraint: keyword}
	rawOffset, ok := entries[strings.ToLower(offsetKey)]
	if !ok {
		if offsetRequired {
			return constraint.Descriptor{}, apperrors.Newf(apperrors.CodeTemplateParseError,
				"%s descriptor requires %s in %s", kind, offsetKey, span)
		}
		return desc, nil
	}
	offset, err := convert.ToInt64(rawOffset)
	if err != nil {
		return constraint.Descriptor{}, apperrors.Wrap(err, apperrors.CodeTemplateParseError,
			offsetKey+" must be an integer in "+span)
	}
	desc.Offset = offset
	return desc, nil
}

func (p *parser) skipSpace(i int) int {
	for i < len(p.toks) && p.toks[i].kind == tokSpace {
		i++
	}
	return i
}

func (p *parser) skipSeparators(i int) int {
	for i < len(p.toks) && (p.toks[i].kind == tokSpace || p.toks[i].is(tokPunct, ",")) {
		i++
	}
	return i
}

func nodeKindFor(k constraint.Kind) NodeKind {
	if k == constraint.KindDateRange {
		return NodeDateRange
	}
	return NodeTimeRange
}
