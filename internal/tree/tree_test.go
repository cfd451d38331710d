package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/ziptree/internal/ziptype"
)

func file(name, content string) *ziptype.File {
	return &ziptype.File{Name: name, Content: content}
}

func folder(name string, children ...ziptype.Node) *ziptype.Folder {
	return &ziptype.Folder{Name: name, Children: children}
}

func sampleTree() []ziptype.Node {
	return []ziptype.Node{
		folder("docs",
			file("main.tex", "\\documentclass{article}"),
			folder("figures",
				file("plot.tikz", "\\begin{tikzpicture}"),
			),
			folder("empty"),
		),
		file("README.md", "# Homework $\\hwnum/$"),
		file("blank.txt", ""),
	}
}

func TestFlatten(t *testing.T) {
	t.Parallel()

	entries, err := Flatten(sampleTree(), 0)
	require.NoError(t, err)

	type flat struct {
		path     string
		payload  string
		isFolder bool
	}
	got := make([]flat, 0, len(entries))
	for _, e := range entries {
		got = append(got, flat{e.Path, string(e.Payload), e.IsFolder})
	}
	assert.Equal(t, []flat{
		{"docs/", "", true},
		{"docs/main.tex", "\\documentclass{article}", false},
		{"docs/figures/", "", true},
		{"docs/figures/plot.tikz", "\\begin{tikzpicture}", false},
		{"docs/empty/", "", true},
		{"README.md", "# Homework $\\hwnum/$", false},
		{"blank.txt", "", false},
	}, got)

	for _, e := range entries {
		if e.IsFolder {
			assert.Empty(t, e.Payload, "folder %q has payload", e.Path)
		}
	}
}

func TestFlattenEmpty(t *testing.T) {
	t.Parallel()

	entries, err := Flatten(nil, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFlattenKeepsDuplicates(t *testing.T) {
	t.Parallel()

	entries, err := Flatten([]ziptype.Node{file("a.txt", "1"), file("a.txt", "2")}, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a.txt", entries[0].Path)
	assert.Equal(t, "a.txt", entries[1].Path)
}

func TestFlattenErrors(t *testing.T) {
	t.Parallel()

	var nilFile *ziptype.File
	tests := []struct {
		name    string
		nodes   []ziptype.Node
		wantErr error
	}{
		{"empty name", []ziptype.Node{file("", "x")}, ziptype.ErrInvalidName},
		{"slash in name", []ziptype.Node{folder("a/b")}, ziptype.ErrInvalidName},
		{"nested bad name", []ziptype.Node{folder("ok", file("x/y", ""))}, ziptype.ErrInvalidName},
		{"nil interface", []ziptype.Node{nil}, ziptype.ErrInvalidNode},
		{"nil pointer", []ziptype.Node{nilFile}, ziptype.ErrInvalidNode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Flatten(tt.nodes, 0)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFlattenMaxDepth(t *testing.T) {
	t.Parallel()

	nodes := []ziptype.Node{folder("a", folder("b", folder("c", file("d.txt", "deep"))))}

	_, err := Flatten(nodes, 3)
	require.NoError(t, err)

	_, err = Flatten(nodes, 2)
	assert.ErrorIs(t, err, ziptype.ErrTooDeep)
}

func TestBuildRoundTrip(t *testing.T) {
	t.Parallel()

	entries, err := Flatten(sampleTree(), 0)
	require.NoError(t, err)

	got, err := Build(entries)
	require.NoError(t, err)
	assert.Equal(t, sampleTree(), got)
}

func TestBuildEmptyFolderChildren(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		children []ziptype.Node
	}{
		{name: "nil", children: nil},
		{name: "empty slice", children: []ziptype.Node{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			entries, err := Flatten([]ziptype.Node{&ziptype.Folder{Name: "a", Children: tt.children}}, 0)
			require.NoError(t, err)

			got, err := Build(entries)
			require.NoError(t, err)
			require.Len(t, got, 1)
			f, ok := got[0].(*ziptype.Folder)
			require.True(t, ok)
			assert.Equal(t, "a", f.Name)
			assert.Nil(t, f.Children)
		})
	}
}

func TestBuildImplicitFolders(t *testing.T) {
	t.Parallel()

	got, err := Build([]ziptype.Entry{
		{Path: "a/b/c.txt", Payload: []byte("c")},
		{Path: "a/d.txt", Payload: []byte("d")},
		{Path: "a/", IsFolder: true},
	})
	require.NoError(t, err)
	assert.Equal(t, []ziptype.Node{
		folder("a",
			folder("b", file("c.txt", "c")),
			file("d.txt", "d"),
		),
	}, got)
}

func TestBuildDuplicates(t *testing.T) {
	t.Parallel()

	got, err := Build([]ziptype.Entry{
		{Path: "a.txt", Payload: []byte("first")},
		{Path: "b.txt", Payload: []byte("b")},
		{Path: "a.txt", Payload: []byte("second")},
		{Path: "b.txt/", IsFolder: true},
		{Path: "dir/", IsFolder: true},
		{Path: "dir/", IsFolder: true},
	})
	require.NoError(t, err)
	assert.Equal(t, []ziptype.Node{
		file("a.txt", "second"),
		file("b.txt", "b"),
		folder("dir"),
	}, got)
}

func TestBuildConflicts(t *testing.T) {
	t.Parallel()

	_, err := Build([]ziptype.Entry{
		{Path: "a", Payload: []byte("file")},
		{Path: "a/b.txt", Payload: []byte("nested")},
	})
	assert.ErrorIs(t, err, ziptype.ErrPathConflict)

	_, err = Build([]ziptype.Entry{
		{Path: "a/", IsFolder: true},
		{Path: "a", Payload: []byte("file")},
	})
	assert.ErrorIs(t, err, ziptype.ErrPathConflict)
}

func TestBuildSkipsEmptyPaths(t *testing.T) {
	t.Parallel()

	got, err := Build([]ziptype.Entry{
		{Path: "/", IsFolder: true},
		{Path: "//x.txt", Payload: []byte("x")},
	})
	require.NoError(t, err)
	assert.Equal(t, []ziptype.Node{file("x.txt", "x")}, got)
}

func TestBuildEmpty(t *testing.T) {
	t.Parallel()

	got, err := Build(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSplitPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"file", "docs/main.tex", []string{"docs", "main.tex"}},
		{"folder", "docs/", []string{"docs"}},
		{"leading slash", "/etc/nginx", []string{"etc", "nginx"}},
		{"internal double slashes", "a//b", []string{"a", "b"}},
		{"empty", "", []string{}},
		{"only slashes", "///", []string{}},
		{"dotdot preserved", "a/../b", []string{"a", "..", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitPath(tt.input))
		})
	}
}
