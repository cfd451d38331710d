// Package testutil builds archive fixtures for tests.
package testutil

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
)

// ZipFile describes one entry of a fixture archive.
type ZipFile struct {
	Name   string
	Body   string
	Method uint16
}

// BuildZip writes files, in order, with the zip package and returns the
// archive. These archives use data descriptors and extended headers, so they
// exercise reader paths that our own writer never produces.
func BuildZip(tb testing.TB, comment string, files ...ZipFile) []byte {
	tb.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: f.Name, Method: f.Method})
		require.NoError(tb, err)
		_, err = w.Write([]byte(f.Body))
		require.NoError(tb, err)
	}
	if comment != "" {
		require.NoError(tb, zw.SetComment(comment))
	}
	require.NoError(tb, zw.Close())
	return buf.Bytes()
}

// Deflate compresses data as a raw deflate stream.
func Deflate(tb testing.TB, data []byte) []byte {
	tb.Helper()

	var buf bytes.Buffer
	fw, err := flate.NewWriter(&buf, flate.BestCompression)
	require.NoError(tb, err)
	_, err = fw.Write(data)
	require.NoError(tb, err)
	require.NoError(tb, fw.Close())
	return buf.Bytes()
}

// ReadZip returns the names and contents of every entry in data, as seen by
// the zip package.
func ReadZip(tb testing.TB, data []byte) (names []string, bodies map[string]string) {
	tb.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(tb, err)

	bodies = make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(tb, err)
		var b bytes.Buffer
		_, err = b.ReadFrom(rc)
		require.NoError(tb, rc.Close())
		require.NoError(tb, err)
		names = append(names, f.Name)
		bodies[f.Name] = b.String()
	}
	return names, bodies
}
