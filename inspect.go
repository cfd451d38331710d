package ziptree

import (
	_ "crypto/sha256" // registers SHA-256 for go-digest
	"fmt"

	"github.com/opencontainers/go-digest"
)

// InspectResult describes an archive without decoding its payloads.
type InspectResult struct {
	// Digest is the SHA-256 digest of the whole archive.
	Digest digest.Digest

	// Size is the archive size in bytes.
	Size int

	// Entries holds per-entry metadata in central directory order.
	Entries []ArchiveEntry

	// FileCount and FolderCount count entries by kind.
	FileCount   int
	FolderCount int

	// TotalCompressedSize and TotalUncompressedSize sum the sizes of all entries.
	TotalCompressedSize   uint64
	TotalUncompressedSize uint64
}

// CompressionRatio returns the ratio of compressed to uncompressed size.
// Returns 1.0 if the archive is uncompressed or holds no content.
func (r *InspectResult) CompressionRatio() float64 {
	if r.TotalUncompressedSize == 0 {
		return 1.0
	}
	return float64(r.TotalCompressedSize) / float64(r.TotalUncompressedSize)
}

// Inspect reads an archive's structure without decoding payloads.
func (c *Codec) Inspect(data []byte) (*InspectResult, error) {
	entries, err := c.reader().Scan(data)
	if err != nil {
		return nil, fmt.Errorf("inspect archive: %w", err)
	}

	res := &InspectResult{
		Digest:  digest.FromBytes(data),
		Size:    len(data),
		Entries: entries,
	}
	for i := range entries {
		e := &entries[i]
		if e.IsFolder {
			res.FolderCount++
		} else {
			res.FileCount++
		}
		res.TotalCompressedSize += uint64(e.CompressedSize)
		res.TotalUncompressedSize += uint64(e.UncompressedSize)
	}

	c.log().Debug("archive inspected", "digest", res.Digest.String(), "entries", len(entries))
	return res, nil
}

// Inspect reads an archive's structure using default options.
func Inspect(data []byte) (*InspectResult, error) {
	return New().Inspect(data)
}
