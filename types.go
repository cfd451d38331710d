package ziptree

import (
	"github.com/meigma/ziptree/internal/render"
	"github.com/meigma/ziptree/internal/tree"
	"github.com/meigma/ziptree/internal/ziptype"
)

// --- Re-exports from ziptype ---

// Node is a File or a Folder.
type Node = ziptype.Node

// File is a leaf node holding textual content.
type File = ziptype.File

// Folder is a node containing an ordered list of children.
type Folder = ziptype.Folder

// Entry is the flat form of a node as stored in an archive.
type Entry = ziptype.Entry

// ArchiveEntry describes an entry's central directory and local header fields.
type ArchiveEntry = ziptype.ArchiveEntry

// Method identifies the compression method of an entry.
type Method = ziptype.Method

// Method constants.
const (
	MethodStore   = ziptype.MethodStore
	MethodDeflate = ziptype.MethodDeflate
)

// Build rebuilds a tree from flat entries.
var Build = tree.Build

// Render returns a copy of nodes with template variables substituted in
// names and file contents.
var Render = render.Tree

// RenderString substitutes template variables in a single string.
var RenderString = render.String

// Flatten converts a tree to flat entries in depth-first pre-order, using
// the default depth limit.
func Flatten(nodes []Node) ([]Entry, error) {
	return tree.Flatten(nodes, DefaultMaxDepth)
}
