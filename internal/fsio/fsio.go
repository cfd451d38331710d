// Package fsio moves trees between an afero filesystem and memory.
package fsio

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/meigma/ziptree/internal/ziptype"
)

var (
	// ErrUnsafeName is returned when a node name cannot be used as a single
	// path component on disk.
	ErrUnsafeName = errors.New("ziptree: unsafe file name")

	// ErrExists is returned when SaveTree would replace an existing file.
	ErrExists = errors.New("ziptree: file exists")
)

const (
	dirPerm  = 0o750
	filePerm = 0o644
)

// LoadTree reads the directory root into a tree. Children are ordered by
// name. Only regular files and directories are included.
func LoadTree(fsys afero.Fs, root string) ([]ziptype.Node, error) {
	info, err := fsys.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: not a directory", root)
	}
	return loadDir(fsys, root)
}

func loadDir(fsys afero.Fs, dir string) ([]ziptype.Node, error) {
	infos, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	nodes := make([]ziptype.Node, 0, len(infos))
	for _, info := range infos {
		path := filepath.Join(dir, info.Name())
		switch {
		case info.IsDir():
			children, err := loadDir(fsys, path)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, &ziptype.Folder{Name: info.Name(), Children: children})
		case info.Mode().IsRegular():
			content, err := afero.ReadFile(fsys, path)
			if err != nil {
				return nil, fmt.Errorf("read file %s: %w", path, err)
			}
			nodes = append(nodes, &ziptype.File{Name: info.Name(), Content: string(content)})
		}
	}
	return nodes, nil
}

// SaveTree writes nodes under root, creating directories as needed.
//
// All names are validated before anything is written. An existing file is
// an error unless overwrite is set; existing directories are merged into.
func SaveTree(fsys afero.Fs, root string, nodes []ziptype.Node, overwrite bool) error {
	if err := checkNames(nodes); err != nil {
		return err
	}
	if err := fsys.MkdirAll(root, dirPerm); err != nil {
		return fmt.Errorf("create directory %s: %w", root, err)
	}
	return saveDir(fsys, root, nodes, overwrite)
}

func saveDir(fsys afero.Fs, dir string, nodes []ziptype.Node, overwrite bool) error {
	for _, n := range nodes {
		path := filepath.Join(dir, n.NodeName())
		switch n := n.(type) {
		case *ziptype.Folder:
			if err := fsys.MkdirAll(path, dirPerm); err != nil {
				return fmt.Errorf("create directory %s: %w", path, err)
			}
			if err := saveDir(fsys, path, n.Children, overwrite); err != nil {
				return err
			}
		case *ziptype.File:
			if !overwrite {
				exists, err := afero.Exists(fsys, path)
				if err != nil {
					return err
				}
				if exists {
					return fmt.Errorf("%w: %s", ErrExists, path)
				}
			}
			if err := WriteFileAtomic(fsys, path, []byte(n.Content)); err != nil {
				return fmt.Errorf("write file %s: %w", path, err)
			}
		}
	}
	return nil
}

// checkNames validates every name in the tree.
func checkNames(nodes []ziptype.Node) error {
	for _, n := range nodes {
		switch n := n.(type) {
		case *ziptype.File:
			if n == nil {
				return ziptype.ErrInvalidNode
			}
			if err := checkName(n.Name); err != nil {
				return err
			}
		case *ziptype.Folder:
			if n == nil {
				return ziptype.ErrInvalidNode
			}
			if err := checkName(n.Name); err != nil {
				return err
			}
			if err := checkNames(n.Children); err != nil {
				return fmt.Errorf("%s: %w", n.Name, err)
			}
		default:
			return fmt.Errorf("%w: %T", ziptype.ErrInvalidNode, n)
		}
	}
	return nil
}

// checkName rejects names that would escape or alias their parent directory.
func checkName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: %q", ErrUnsafeName, name)
	case strings.ContainsAny(name, "/\\\x00"):
		return fmt.Errorf("%w: %q", ErrUnsafeName, name)
	}
	return nil
}

// WriteFileAtomic writes data to a temp file then renames it to target,
// ensuring atomic replacement of the target file. Parent directories are
// created as needed.
func WriteFileAtomic(fsys afero.Fs, target string, data []byte) error {
	dir := filepath.Dir(target)
	if err := fsys.MkdirAll(dir, dirPerm); err != nil {
		return err
	}
	tmp, err := afero.TempFile(fsys, dir, ".ziptree-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = fsys.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = fsys.Remove(tmpPath)
		return err
	}
	if err := fsys.Chmod(tmpPath, filePerm); err != nil {
		_ = fsys.Remove(tmpPath)
		return err
	}
	if err := fsys.Rename(tmpPath, target); err != nil {
		_ = fsys.Remove(tmpPath)
		return err
	}
	return nil
}
