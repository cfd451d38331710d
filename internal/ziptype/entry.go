package ziptype

import (
	"strings"
	"time"
)

// Entry is the flat form of a tree node, as written to or read from an archive.
type Entry struct {
	// Path is the slash-separated path from the archive root (e.g., "docs/main.tex").
	// Folder paths end with a trailing slash ("docs/").
	Path string

	// Payload is the file content. Always empty for folders.
	Payload []byte

	// IsFolder reports whether the entry is a folder marker.
	IsFolder bool
}

// IsFolderPath reports whether path names a folder entry.
func IsFolderPath(path string) bool {
	return strings.HasSuffix(path, "/")
}

// ArchiveEntry describes one entry as recorded in an archive's central directory
// and local header.
type ArchiveEntry struct {
	// Path is the entry name as stored in the central directory.
	Path string

	// Method is the compression method from the local header.
	Method Method

	// Flags is the general purpose bit flag from the central directory.
	Flags uint16

	// CRC32 is the checksum of the uncompressed content.
	CRC32 uint32

	// CompressedSize is the size of the stored payload in bytes.
	CompressedSize uint32

	// UncompressedSize is the size of the decoded content in bytes.
	// Equal to CompressedSize for stored entries.
	UncompressedSize uint32

	// PackedTime and PackedDate are the raw DOS time/date fields.
	PackedTime uint16
	PackedDate uint16

	// Modified is the time decoded from PackedTime and PackedDate.
	Modified time.Time

	// LocalHeaderOffset is the byte offset of the entry's local header.
	LocalHeaderOffset uint32

	// IsFolder reports whether the entry is a folder marker.
	IsFolder bool
}
