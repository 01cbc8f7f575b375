package template

import "strings"

// appendLiteral splits text on ${name} references and appends the pieces.
// A "${" without a closing brace stays literal.
func appendLiteral(nodes []Node, text string) []Node {
	for text != "" {
		open := strings.Index(text, "${")
		if open < 0 {
			break
		}
		end := strings.IndexByte(text[open+2:], '}')
		if end < 0 {
			break
		}
		name := strings.TrimSpace(text[open+2 : open+2+end])
		if name == "" {
			nodes = append(nodes, Node{Kind: NodeLiteral, Text: text[:open+2+end+1]})
			text = text[open+2+end+1:]
			continue
		}
		if open > 0 {
			nodes = append(nodes, Node{Kind: NodeLiteral, Text: text[:open]})
		}
		nodes = append(nodes, Node{Kind: NodeVariable, Text: text[open : open+2+end+1], Variable: name})
		text = text[open+2+end+1:]
	}
	if text != "" {
		nodes = append(nodes, Node{Kind: NodeLiteral, Text: text})
	}
	return nodes
}
