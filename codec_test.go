package ziptree

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/ziptree/internal/testutil"
)

var testTime = time.Date(2023, time.September, 1, 8, 0, 0, 0, time.UTC)

func testCodec(opts ...Option) *Codec {
	base := []Option{
		WithClock(func() time.Time { return testTime }),
		WithLocation(time.UTC),
	}
	return New(append(base, opts...)...)
}

func TestEncodeDecodeDocsScenario(t *testing.T) {
	t.Parallel()

	in := []Node{
		&Folder{Name: "docs", Children: []Node{
			&File{Name: "main.tex", Content: `\documentclass{article}`},
		}},
	}

	data, err := Encode(in)
	require.NoError(t, err)

	out, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, out, 1)

	docs, ok := out[0].(*Folder)
	require.True(t, ok, "expected folder, got %T", out[0])
	assert.Equal(t, "docs", docs.Name)
	require.Len(t, docs.Children, 1)

	mainTex, ok := docs.Children[0].(*File)
	require.True(t, ok, "expected file, got %T", docs.Children[0])
	assert.Equal(t, "main.tex", mainTex.Name)
	assert.Equal(t, `\documentclass{article}`, mainTex.Content)
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		nodes []Node
	}{
		{
			name: "nested",
			nodes: []Node{
				&File{Name: "README.md", Content: "# Template\n"},
				&Folder{Name: "src", Children: []Node{
					&Folder{Name: "chapters", Children: []Node{
						&File{Name: "one.tex", Content: "One"},
						&File{Name: "two.tex", Content: "Two"},
					}},
					&File{Name: "main.tex", Content: `\input{chapters/one}`},
				}},
			},
		},
		{
			name: "folder only",
			nodes: []Node{
				&Folder{Name: "a"},
				&Folder{Name: "b", Children: []Node{&Folder{Name: "c"}}},
			},
		},
		{
			name: "binary and empty content",
			nodes: []Node{
				&File{Name: "blob.bin", Content: string([]byte{0, 1, 2, 0xff, 'P', 'K', 5, 6})},
				&File{Name: "empty.txt", Content: ""},
			},
		},
		{
			name: "unicode names",
			nodes: []Node{
				&Folder{Name: "données", Children: []Node{&File{Name: "résumé.tex", Content: "é"}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := testCodec()
			data, err := c.Encode(tt.nodes)
			require.NoError(t, err)

			got, err := c.Decode(data)
			require.NoError(t, err)
			assert.Equal(t, tt.nodes, got)
		})
	}
}

func TestEncodeEmpty(t *testing.T) {
	t.Parallel()

	data, err := Encode(nil)
	require.NoError(t, err)
	assert.Len(t, data, 22)

	nodes, err := Decode(data)
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestEncodeStoredFidelity(t *testing.T) {
	t.Parallel()

	content := strings.Repeat("aaaaaaaa", 512)
	data, err := testCodec().Encode([]Node{&File{Name: "a.txt", Content: content}})
	require.NoError(t, err)

	// The payload appears verbatim after the 30-byte local header and name.
	assert.Equal(t, content, string(data[30+len("a.txt"):30+len("a.txt")+len(content)]))

	res, err := testCodec().Inspect(data)
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, MethodStore, res.Entries[0].Method)
	assert.Equal(t, res.Entries[0].CompressedSize, res.Entries[0].UncompressedSize)
}

func TestEncodeReadableByZip(t *testing.T) {
	t.Parallel()

	data, err := testCodec().Encode([]Node{
		&Folder{Name: "docs", Children: []Node{&File{Name: "main.tex", Content: "x"}}},
	})
	require.NoError(t, err)

	names, _ := testutil.ReadZip(t, data)
	assert.Equal(t, []string{"docs/", "docs/main.tex"}, names)
}

func TestDecodeDeflatedArchive(t *testing.T) {
	t.Parallel()

	// No explicit folder entries; folders are implied by paths.
	data := testutil.BuildZip(t, "",
		testutil.ZipFile{Name: "src/main.tex", Body: strings.Repeat(`\section{x}`, 50), Method: zip.Deflate},
		testutil.ZipFile{Name: "src/refs.bib", Body: "@book{x}", Method: zip.Deflate},
		testutil.ZipFile{Name: "README", Body: "readme", Method: zip.Deflate},
	)

	nodes, err := Decode(data)
	require.NoError(t, err)

	want := []Node{
		&Folder{Name: "src", Children: []Node{
			&File{Name: "main.tex", Content: strings.Repeat(`\section{x}`, 50)},
			&File{Name: "refs.bib", Content: "@book{x}"},
		}},
		&File{Name: "README", Content: "readme"},
	}
	assert.Equal(t, want, nodes)
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	valid, err := testCodec().Encode([]Node{&File{Name: "a.txt", Content: "hello"}})
	require.NoError(t, err)

	clone := func() []byte { return bytes.Clone(valid) }

	t.Run("trailer overwritten", func(t *testing.T) {
		t.Parallel()
		data := clone()
		copy(data[len(data)-22:], bytes.Repeat([]byte{0x5a}, 22))

		_, err := Decode(data)
		require.ErrorIs(t, err, ErrFormat)
		var fe *FormatError
		require.ErrorAs(t, err, &fe)
	})

	t.Run("unsupported method", func(t *testing.T) {
		t.Parallel()
		data := clone()
		data[8] = 14 // LZMA

		_, err := Decode(data)
		var uc *UnsupportedCompressionError
		require.ErrorAs(t, err, &uc)
		assert.Equal(t, Method(14), uc.Method)
	})

	t.Run("corrupt payload", func(t *testing.T) {
		t.Parallel()
		data := clone()
		data[30+len("a.txt")] ^= 0xff

		_, err := Decode(data)
		require.ErrorIs(t, err, ErrChecksumMismatch)

		_, err = New(WithVerifyChecksums(false)).Decode(data)
		require.NoError(t, err)
	})

	t.Run("every truncation", func(t *testing.T) {
		t.Parallel()
		for n := range len(valid) {
			_, err := Decode(valid[:n])
			require.ErrorIs(t, err, ErrFormat, "truncated to %d bytes", n)
		}
	})

	t.Run("entry limit disabled", func(t *testing.T) {
		t.Parallel()
		_, err := New(WithMaxEntries(0)).Decode(valid)
		require.NoError(t, err)
	})
}

func TestDecodePathConflict(t *testing.T) {
	t.Parallel()

	data := testutil.BuildZip(t, "",
		testutil.ZipFile{Name: "a", Body: "x"},
		testutil.ZipFile{Name: "a/b", Body: "x"},
	)

	_, err := Decode(data)
	require.ErrorIs(t, err, ErrPathConflict)
}

func TestEncodeErrors(t *testing.T) {
	t.Parallel()

	deep := Node(&File{Name: "leaf", Content: "x"})
	for range 10 {
		deep = &Folder{Name: "d", Children: []Node{deep}}
	}

	tests := []struct {
		name    string
		codec   *Codec
		nodes   []Node
		wantErr error
	}{
		{name: "nil node", codec: New(), nodes: []Node{nil}, wantErr: ErrInvalidNode},
		{name: "slash in name", codec: New(), nodes: []Node{&File{Name: "a/b"}}, wantErr: ErrInvalidName},
		{name: "empty name", codec: New(), nodes: []Node{&Folder{Name: ""}}, wantErr: ErrInvalidName},
		{name: "too deep", codec: New(WithMaxDepth(5)), nodes: []Node{deep}, wantErr: ErrTooDeep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := tt.codec.Encode(tt.nodes)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := New(WithMaxDepth(0)).Encode([]Node{deep})
	require.NoError(t, err, "depth limit disabled")
}

func TestDecodeLimits(t *testing.T) {
	t.Parallel()

	data, err := testCodec().Encode([]Node{
		&File{Name: "a", Content: "12345"},
		&File{Name: "b", Content: "1"},
	})
	require.NoError(t, err)

	_, err = New(WithMaxEntries(1)).Decode(data)
	require.ErrorIs(t, err, ErrTooManyEntries)

	_, err = New(WithMaxFileSize(4)).Decode(data)
	require.ErrorIs(t, err, ErrSizeOverflow)
}

func TestProgress(t *testing.T) {
	t.Parallel()

	var stages []ProgressStage
	c := testCodec(WithProgress(func(ev ProgressEvent) {
		stages = append(stages, ev.Stage)
	}))

	data, err := c.Encode([]Node{&Folder{Name: "f", Children: []Node{&File{Name: "x", Content: "1"}}}})
	require.NoError(t, err)
	_, err = c.Decode(data)
	require.NoError(t, err)

	want := []ProgressStage{
		StageFlattening, StageWriting, StageWriting,
		StageReading, StageReading, StageBuilding,
	}
	assert.Equal(t, want, stages)
}

func TestLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := testCodec(WithLogger(log))

	data, err := c.Encode([]Node{&File{Name: "x", Content: "1"}})
	require.NoError(t, err)
	_, err = c.Decode(data)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "encoding tree")
	assert.Contains(t, out, "entry written")
	assert.Contains(t, out, "entry read")
	assert.Contains(t, out, "archive decoded")
}

func TestFlattenAndBuild(t *testing.T) {
	t.Parallel()

	nodes := []Node{&Folder{Name: "a", Children: []Node{&File{Name: "b", Content: "c"}}}}
	entries, err := Flatten(nodes)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a/", entries[0].Path)
	assert.Equal(t, "a/b", entries[1].Path)

	got, err := Build(entries)
	require.NoError(t, err)
	assert.Equal(t, nodes, got)
}

func TestRenderThenEncode(t *testing.T) {
	t.Parallel()

	tmpl := []Node{&File{Name: `hw$\n/$.tex`, Content: `Homework $'n'/$`}}
	rendered, err := Render(tmpl, map[string]string{"n": "7"})
	require.NoError(t, err)

	data, err := Encode(rendered)
	require.NoError(t, err)
	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, []Node{&File{Name: "hw7.tex", Content: "Homework 7"}}, got)
	assert.Equal(t, "x7", RenderString(`x$\n/$`, map[string]string{"n": "7"}))
}

func TestErrorsAreDistinct(t *testing.T) {
	t.Parallel()

	all := []error{
		ErrFormat, ErrUnsupportedCompression, ErrChecksumMismatch, ErrDecompression,
		ErrSizeOverflow, ErrTooManyEntries, ErrTooDeep, ErrInvalidName, ErrInvalidNode,
		ErrPathConflict,
	}
	for i, a := range all {
		assert.True(t, strings.HasPrefix(a.Error(), "ziptree: "), a.Error())
		for j, b := range all {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v is %v", a, b)
			}
		}
	}
}
