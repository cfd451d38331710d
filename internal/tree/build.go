package tree

import (
	"fmt"

	"github.com/meigma/ziptree/internal/ziptype"
)

// dir accumulates the children of one folder while building.
type dir struct {
	folder *ziptype.Folder
	byName map[string]int
	subdir map[string]*dir
}

func newDir(f *ziptype.Folder) *dir {
	return &dir{
		folder: f,
		byName: make(map[string]int),
		subdir: make(map[string]*dir),
	}
}

// child returns the subfolder called name, creating it when absent.
// ok is false when a file already occupies the name.
func (d *dir) child(name string) (sub *dir, ok bool) {
	if sub, exists := d.subdir[name]; exists {
		return sub, true
	}
	if _, exists := d.byName[name]; exists {
		return nil, false
	}
	f := &ziptype.Folder{Name: name}
	d.byName[name] = len(d.folder.Children)
	d.folder.Children = append(d.folder.Children, f)
	sub = newDir(f)
	d.subdir[name] = sub
	return sub, true
}

// putFile stores a file called name. An existing file with the same name is
// replaced in place; an existing folder is a conflict.
func (d *dir) putFile(name, content string) bool {
	if _, exists := d.subdir[name]; exists {
		return false
	}
	file := &ziptype.File{Name: name, Content: content}
	if i, exists := d.byName[name]; exists {
		d.folder.Children[i] = file
		return true
	}
	d.byName[name] = len(d.folder.Children)
	d.folder.Children = append(d.folder.Children, file)
	return true
}

// Build reconstructs the nested tree described by entries. It is the inverse
// of Flatten.
//
// Folders implied by a path but lacking their own entry are created on
// demand. Siblings keep the order in which their names first appear. A later
// file entry with an existing path replaces the earlier content; a folder
// entry naming an existing file leaves the file in place. A path that needs a
// folder where a file exists fails with ErrPathConflict.
//
// Empty folders always have nil Children, so a tree whose empty folders hold
// an empty non-nil slice comes back with nil in their place.
func Build(entries []ziptype.Entry) ([]ziptype.Node, error) {
	root := newDir(&ziptype.Folder{})

	for _, e := range entries {
		parts := SplitPath(e.Path)
		if len(parts) == 0 {
			continue
		}

		cur := root
		for _, part := range parts[:len(parts)-1] {
			next, ok := cur.child(part)
			if !ok {
				return nil, fmt.Errorf("%w: %q needs folder %q but it is a file", ziptype.ErrPathConflict, e.Path, part)
			}
			cur = next
		}

		last := parts[len(parts)-1]
		if e.IsFolder {
			// A file already holding the name wins.
			_, _ = cur.child(last)
			continue
		}
		if !cur.putFile(last, string(e.Payload)) {
			return nil, fmt.Errorf("%w: file %q collides with a folder", ziptype.ErrPathConflict, e.Path)
		}
	}

	return root.folder.Children, nil
}
