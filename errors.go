package ziptree

import "github.com/meigma/ziptree/internal/ziptype"

// Errors re-exported from ziptype.
var (
	// ErrFormat is returned when the input is not a recognizable archive.
	// Detailed failures are reported as [*FormatError].
	ErrFormat = ziptype.ErrFormat

	// ErrUnsupportedCompression is returned for compression methods other
	// than store and deflate. Detailed failures are reported as
	// [*UnsupportedCompressionError].
	ErrUnsupportedCompression = ziptype.ErrUnsupportedCompression

	// ErrChecksumMismatch is returned when decoded content does not match its CRC-32.
	ErrChecksumMismatch = ziptype.ErrChecksumMismatch

	// ErrDecompression is returned when a deflate payload cannot be inflated.
	ErrDecompression = ziptype.ErrDecompression

	// ErrSizeOverflow is returned when a size exceeds a format or configured limit.
	ErrSizeOverflow = ziptype.ErrSizeOverflow

	// ErrTooManyEntries is returned when the entry count exceeds a format or configured limit.
	ErrTooManyEntries = ziptype.ErrTooManyEntries

	// ErrTooDeep is returned when a tree is nested deeper than the configured limit.
	ErrTooDeep = ziptype.ErrTooDeep

	// ErrInvalidName is returned for names that cannot be used as a path segment.
	ErrInvalidName = ziptype.ErrInvalidName

	// ErrInvalidNode is returned for nil nodes.
	ErrInvalidNode = ziptype.ErrInvalidNode

	// ErrPathConflict is returned when an archive needs a folder where a file exists.
	ErrPathConflict = ziptype.ErrPathConflict
)

// FormatError reports a structural violation in an archive.
type FormatError = ziptype.FormatError

// UnsupportedCompressionError reports an entry using an unknown compression method.
type UnsupportedCompressionError = ziptype.UnsupportedCompressionError
