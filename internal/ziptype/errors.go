package ziptype

import (
	"errors"
	"fmt"
)

// Sentinel errors for ziptree operations.
var (
	// ErrFormat is returned when the input is not a recognizable archive.
	ErrFormat = errors.New("ziptree: invalid archive")

	// ErrUnsupportedCompression is returned for compression methods other than store and deflate.
	ErrUnsupportedCompression = errors.New("ziptree: unsupported compression method")

	// ErrChecksumMismatch is returned when decoded content does not match its CRC-32.
	ErrChecksumMismatch = errors.New("ziptree: checksum mismatch")

	// ErrDecompression is returned when a deflate payload cannot be inflated.
	ErrDecompression = errors.New("ziptree: decompression failed")

	// ErrSizeOverflow is returned when a size or offset does not fit the archive format.
	ErrSizeOverflow = errors.New("ziptree: size overflow")

	// ErrTooManyEntries is returned when the entry count exceeds the configured or format limit.
	ErrTooManyEntries = errors.New("ziptree: too many entries")

	// ErrTooDeep is returned when a tree is nested deeper than the configured limit.
	ErrTooDeep = errors.New("ziptree: tree too deep")

	// ErrInvalidName is returned for node names that cannot be represented as a path segment.
	ErrInvalidName = errors.New("ziptree: invalid node name")

	// ErrInvalidNode is returned for nil nodes.
	ErrInvalidNode = errors.New("ziptree: invalid node")

	// ErrPathConflict is returned when an archive path needs a folder where a file exists.
	ErrPathConflict = errors.New("ziptree: path conflict")
)

// FormatError reports a structural violation in an archive.
type FormatError struct {
	// Offset is the byte offset at which the violation was detected, or -1.
	Offset int64

	// Reason describes the violation.
	Reason string
}

func (e *FormatError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("ziptree: invalid archive: %s", e.Reason)
	}
	return fmt.Sprintf("ziptree: invalid archive at offset %d: %s", e.Offset, e.Reason)
}

// Is reports whether target is ErrFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// UnsupportedCompressionError reports an entry using an unknown compression method.
type UnsupportedCompressionError struct {
	Path   string
	Method Method
}

func (e *UnsupportedCompressionError) Error() string {
	return fmt.Sprintf("ziptree: %s: unsupported compression method %d", e.Path, uint16(e.Method))
}

// Is reports whether target is ErrUnsupportedCompression.
func (e *UnsupportedCompressionError) Is(target error) bool {
	return target == ErrUnsupportedCompression
}
