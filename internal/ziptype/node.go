package ziptype

// Node is an element of a bundle tree.
//
// Node is a closed union: the only implementations are *File and *Folder.
// Consumers type-switch over the two variants and treat anything else,
// including a nil Node, as invalid input.
type Node interface {
	// NodeName returns the node's name within its parent folder.
	NodeName() string

	node()
}

// File is a leaf node holding textual content.
type File struct {
	// Name is the file name within its parent folder (e.g., "main.tex").
	Name string

	// Content is the file's content. Arbitrary bytes are preserved.
	Content string
}

// Folder is a node containing an ordered list of children.
type Folder struct {
	// Name is the folder name within its parent folder.
	Name string

	// Children are the folder's direct children, in display order.
	Children []Node
}

// NodeName returns the file name.
func (f *File) NodeName() string { return f.Name }

// NodeName returns the folder name.
func (f *Folder) NodeName() string { return f.Name }

func (*File) node()   {}
func (*Folder) node() {}
