// Package render substitutes template variables in tree names and file
// contents.
//
// Two token forms are recognized:
//
//	$'name'/$   quoted; name may contain any character except a quote
//	$\name/$    bare; name is a word ([A-Za-z0-9_]+)
//
// The bare form may be preceded by a backslash (the escaped form produced by
// LaTeX-aware editors), may omit its own backslash, and may carry whitespace
// around the name. Unknown variables render as the empty string.
package render

import (
	"fmt"
	"regexp"

	"github.com/meigma/ziptree/internal/ziptype"
)

var (
	quotedToken = regexp.MustCompile(`\$'([^']+)'/\$`)
	bareToken   = regexp.MustCompile(`\\?\$\s*\\?(\w+)\s*/\$`)
)

// String renders text with vars.
func String(text string, vars map[string]string) string {
	text = replace(quotedToken, text, vars)
	return replace(bareToken, text, vars)
}

func replace(re *regexp.Regexp, text string, vars map[string]string) string {
	return re.ReplaceAllStringFunc(text, func(tok string) string {
		m := re.FindStringSubmatch(tok)
		return vars[m[1]]
	})
}

// Tree returns a rendered deep copy of nodes. The input is not modified.
func Tree(nodes []ziptype.Node, vars map[string]string) ([]ziptype.Node, error) {
	if nodes == nil {
		return nil, nil
	}
	out := make([]ziptype.Node, len(nodes))
	for i, n := range nodes {
		switch n := n.(type) {
		case *ziptype.File:
			if n == nil {
				return nil, fmt.Errorf("%w: nil file", ziptype.ErrInvalidNode)
			}
			out[i] = &ziptype.File{
				Name:    String(n.Name, vars),
				Content: String(n.Content, vars),
			}
		case *ziptype.Folder:
			if n == nil {
				return nil, fmt.Errorf("%w: nil folder", ziptype.ErrInvalidNode)
			}
			children, err := Tree(n.Children, vars)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", n.Name, err)
			}
			out[i] = &ziptype.Folder{
				Name:     String(n.Name, vars),
				Children: children,
			}
		default:
			return nil, fmt.Errorf("%w: %T", ziptype.ErrInvalidNode, n)
		}
	}
	return out, nil
}
