// Package ziptree converts folder/file trees to and from ZIP archives.
//
// A tree is a list of [Node] values, each either a [*File] holding textual
// content or a [*Folder] holding further nodes. [Encode] flattens the tree
// depth-first and writes every entry uncompressed; [Decode] reads any
// single-disk, non-encrypted archive whose entries are stored or deflated
// and rebuilds the tree.
//
// # Quick Start
//
// Export a bundle:
//
//	data, err := ziptree.Encode([]ziptree.Node{
//	    &ziptree.Folder{Name: "docs", Children: []ziptree.Node{
//	        &ziptree.File{Name: "main.tex", Content: `\documentclass{article}`},
//	    }},
//	})
//
// Import it again:
//
//	nodes, err := ziptree.Decode(data)
//
// # Options
//
// Use [New] to configure limits, logging and progress reporting:
//
//	c := ziptree.New(
//	    ziptree.WithLogger(slog.Default()),
//	    ziptree.WithMaxFileSize(16<<20),
//	)
//	nodes, err := c.Decode(data)
//
// # Templates
//
// [Render] substitutes $'name'/$ and $\name/$ tokens in node names and file
// contents before export.
package ziptree
