package ziptree

import (
	"testing"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect(t *testing.T) {
	t.Parallel()

	data, err := testCodec().Encode([]Node{
		&Folder{Name: "docs", Children: []Node{
			&File{Name: "main.tex", Content: "hello"},
			&Folder{Name: "img"},
		}},
		&File{Name: "README", Content: "abc"},
	})
	require.NoError(t, err)

	res, err := testCodec().Inspect(data)
	require.NoError(t, err)

	assert.Equal(t, digest.FromBytes(data), res.Digest)
	assert.Equal(t, digest.SHA256, res.Digest.Algorithm())
	assert.Equal(t, len(data), res.Size)
	assert.Equal(t, 2, res.FileCount)
	assert.Equal(t, 2, res.FolderCount)
	assert.Equal(t, uint64(8), res.TotalUncompressedSize)
	assert.Equal(t, uint64(8), res.TotalCompressedSize)
	assert.InDelta(t, 1.0, res.CompressionRatio(), 1e-9)

	paths := make([]string, 0, len(res.Entries))
	for _, e := range res.Entries {
		paths = append(paths, e.Path)
		assert.True(t, e.Modified.Equal(testTime), "%s modified %v", e.Path, e.Modified)
	}
	assert.Equal(t, []string{"docs/", "docs/main.tex", "docs/img/", "README"}, paths)
}

func TestInspectEmpty(t *testing.T) {
	t.Parallel()

	data, err := Encode(nil)
	require.NoError(t, err)

	res, err := Inspect(data)
	require.NoError(t, err)
	assert.Empty(t, res.Entries)
	assert.Equal(t, 0, res.FileCount)
	assert.InDelta(t, 1.0, res.CompressionRatio(), 1e-9)
}

func TestInspectInvalid(t *testing.T) {
	t.Parallel()

	_, err := Inspect([]byte("not an archive"))
	require.ErrorIs(t, err, ErrFormat)
}

func TestCompressionRatio(t *testing.T) {
	t.Parallel()

	r := &InspectResult{TotalCompressedSize: 25, TotalUncompressedSize: 100}
	assert.InDelta(t, 0.25, r.CompressionRatio(), 1e-9)
}
