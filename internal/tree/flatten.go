// Package tree converts between nested bundle trees and the flat entry lists
// stored in archives.
package tree

import (
	"fmt"

	"github.com/meigma/ziptree/internal/ziptype"
)

// frame is one level of the depth-first walk.
type frame struct {
	nodes  []ziptype.Node
	next   int
	parent string
}

// Flatten walks nodes depth-first and returns one entry per node, in the
// order they must appear in the archive.
//
// A folder produces "parent/name/" with an empty payload, followed by the
// entries of its children. A file produces "parent/name" with its content as
// payload. Sibling order is preserved and duplicate names are not merged.
//
// maxDepth limits folder nesting; values <= 0 disable the limit.
func Flatten(nodes []ziptype.Node, maxDepth int) ([]ziptype.Entry, error) {
	entries := make([]ziptype.Entry, 0, len(nodes))
	stack := []frame{{nodes: nodes}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next >= len(top.nodes) {
			stack = stack[:len(stack)-1]
			continue
		}
		n := top.nodes[top.next]
		top.next++
		parent := top.parent

		switch n := n.(type) {
		case *ziptype.File:
			if n == nil {
				return nil, fmt.Errorf("%w: nil file under %q", ziptype.ErrInvalidNode, parent)
			}
			if !validName(n.Name) {
				return nil, fmt.Errorf("%w: %q under %q", ziptype.ErrInvalidName, n.Name, parent)
			}
			entries = append(entries, ziptype.Entry{
				Path:    joinPath(parent, n.Name),
				Payload: []byte(n.Content),
			})

		case *ziptype.Folder:
			if n == nil {
				return nil, fmt.Errorf("%w: nil folder under %q", ziptype.ErrInvalidNode, parent)
			}
			if !validName(n.Name) {
				return nil, fmt.Errorf("%w: %q under %q", ziptype.ErrInvalidName, n.Name, parent)
			}
			if maxDepth > 0 && len(stack) > maxDepth {
				return nil, fmt.Errorf("%w: %q exceeds depth %d", ziptype.ErrTooDeep, joinPath(parent, n.Name), maxDepth)
			}
			path := joinPath(parent, n.Name)
			entries = append(entries, ziptype.Entry{
				Path:     path + "/",
				Payload:  []byte{},
				IsFolder: true,
			})
			if len(n.Children) > 0 {
				stack = append(stack, frame{nodes: n.Children, parent: path})
			}

		default:
			return nil, fmt.Errorf("%w: %T under %q", ziptype.ErrInvalidNode, n, parent)
		}
	}

	return entries, nil
}
