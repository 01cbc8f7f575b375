package template

import (
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokSpace tokenKind = iota
	tokString
	tokIdent
	tokNumber
	tokPunct
)

type token struct {
	kind  tokenKind
	start int
	end   int
	text  string
}

// lex splits src into tokens covering every byte. Quoted strings are kept
// whole so that braces inside them never start a descriptor; an unterminated
// string runs to the end of input.
func lex(src string) []token {
	var toks []token
	emit := func(kind tokenKind, start, end int) {
		toks = append(toks, token{kind: kind, start: start, end: end, text: src[start:end]})
	}

	i := 0
	for i < len(src) {
		r, size := utf8.DecodeRuneInString(src[i:])
		start := i
		switch {
		case unicode.IsSpace(r):
			for i < len(src) {
				r, size = utf8.DecodeRuneInString(src[i:])
				if !unicode.IsSpace(r) {
					break
				}
				i += size
			}
			emit(tokSpace, start, i)
		case r == '"':
			i += size
			for i < len(src) {
				c := src[i]
				if c == '\\' && i+1 < len(src) {
					i += 2
					continue
				}
				i++
				if c == '"' {
					break
				}
			}
			emit(tokString, start, i)
		case r == '_' || unicode.IsLetter(r):
			for i < len(src) {
				r, size = utf8.DecodeRuneInString(src[i:])
				if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
					break
				}
				i += size
			}
			emit(tokIdent, start, i)
		case r == '-' || r == '+' || unicode.IsDigit(r):
			i += size
			for i < len(src) && (isDigit(src[i]) || src[i] == '.') {
				i++
			}
			if i-start == 1 && !unicode.IsDigit(r) {
				emit(tokPunct, start, i)
				continue
			}
			emit(tokNumber, start, i)
		default:
			i += size
			emit(tokPunct, start, i)
		}
	}
	return toks
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// unquote strips the quotes of a string token. Escapes are kept verbatim.
func (t token) unquote() string {
	if t.kind != tokString {
		return t.text
	}
	s := t.text[1:]
	if len(s) > 0 && s[len(s)-1] == '"' {
		s = s[:len(s)-1]
	}
	return s
}

func (t token) is(kind tokenKind, text string) bool {
	return t.kind == kind && t.text == text
}
