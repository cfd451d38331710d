package archive

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/meigma/ziptree/internal/crc"
	"github.com/meigma/ziptree/internal/dostime"
	"github.com/meigma/ziptree/internal/sizing"
	"github.com/meigma/ziptree/internal/ziptype"
)

const (
	// DefaultMaxFileSize is the default maximum decoded entry size (256MB).
	DefaultMaxFileSize = 256 << 20

	// DefaultMaxEntries is the default maximum number of entries per archive.
	DefaultMaxEntries = 0xffff
)

const (
	zip64Count  = 0xffff
	zip64Field  = 0xffffffff
	maxScanBack = endRecordLen + maxCommentLen
)

// Reader decodes ZIP archives into flat entries.
type Reader struct {
	maxFileSize uint64
	maxEntries  int
	verify      bool
	loc         *time.Location
	logger      *slog.Logger
	progress    ziptype.ProgressFunc
	pool        *inflatePool
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithMaxFileSize sets the maximum decoded size of a single entry.
// Set to 0 to disable the limit.
func WithMaxFileSize(limit uint64) ReaderOption {
	return func(r *Reader) {
		r.maxFileSize = limit
	}
}

// WithMaxEntries limits the number of entries an archive may declare.
// Set to 0 to disable the limit.
func WithMaxEntries(n int) ReaderOption {
	return func(r *Reader) {
		if n < 0 {
			n = 0
		}
		r.maxEntries = n
	}
}

// WithVerifyChecksums enables or disables CRC-32 verification (default: true).
func WithVerifyChecksums(enabled bool) ReaderOption {
	return func(r *Reader) {
		r.verify = enabled
	}
}

// WithLocation sets the location used to decode entry timestamps.
// Defaults to time.Local.
func WithLocation(loc *time.Location) ReaderOption {
	return func(r *Reader) {
		r.loc = loc
	}
}

// WithReaderLogger sets the logger for debug output.
func WithReaderLogger(logger *slog.Logger) ReaderOption {
	return func(r *Reader) {
		r.logger = logger
	}
}

// WithReaderProgress sets a callback invoked after each entry is decoded.
func WithReaderProgress(fn ziptype.ProgressFunc) ReaderOption {
	return func(r *Reader) {
		r.progress = fn
	}
}

// NewReader creates a Reader.
func NewReader(opts ...ReaderOption) *Reader {
	r := &Reader{
		maxFileSize: DefaultMaxFileSize,
		maxEntries:  DefaultMaxEntries,
		verify:      true,
		loc:         time.Local,
		pool:        &inflatePool{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Reader) log() *slog.Logger {
	if r.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.logger
}

// record is a scanned entry plus the offset of its payload.
type record struct {
	entry      ziptype.ArchiveEntry
	dataOffset uint64
}

// Scan parses the central directory and local headers of data without
// decoding any payload.
func (r *Reader) Scan(data []byte) ([]ziptype.ArchiveEntry, error) {
	recs, err := r.scan(data)
	if err != nil {
		return nil, err
	}
	entries := make([]ziptype.ArchiveEntry, len(recs))
	for i := range recs {
		entries[i] = recs[i].entry
	}
	return entries, nil
}

// Read decodes every entry of data in central directory order.
//
// Stored payloads are copied out of data; deflated payloads are inflated.
// Folder entries carry an empty payload.
func (r *Reader) Read(data []byte) ([]ziptype.Entry, error) {
	recs, err := r.scan(data)
	if err != nil {
		return nil, err
	}

	entries := make([]ziptype.Entry, 0, len(recs))
	for i := range recs {
		rec := &recs[i]
		e := &rec.entry
		if !e.Method.Supported() {
			return nil, &ziptype.UnsupportedCompressionError{Path: e.Path, Method: e.Method}
		}
		if e.IsFolder {
			entries = append(entries, ziptype.Entry{Path: e.Path, Payload: []byte{}, IsFolder: true})
			r.reportProgress(e.Path, rec.dataOffset+uint64(e.CompressedSize), i+1, len(recs))
			continue
		}

		payload, sum, err := r.payload(data, rec)
		if err != nil {
			return nil, err
		}
		if r.verify && sum != e.CRC32 {
			return nil, fmt.Errorf("%w: %s: got %08x, want %08x", ziptype.ErrChecksumMismatch, e.Path, sum, e.CRC32)
		}

		r.log().Debug("entry read", "path", e.Path, "method", e.Method.String(), "size", len(payload))
		entries = append(entries, ziptype.Entry{Path: e.Path, Payload: payload})
		r.reportProgress(e.Path, rec.dataOffset+uint64(e.CompressedSize), i+1, len(recs))
	}
	return entries, nil
}

// payload extracts and decodes the content of a scanned file entry and
// returns it with its computed CRC-32.
func (r *Reader) payload(data []byte, rec *record) ([]byte, uint32, error) {
	e := &rec.entry
	start, err := sizing.ToInt(rec.dataOffset, ziptype.ErrSizeOverflow)
	if err != nil {
		return nil, 0, err
	}
	raw := data[start : start+int(e.CompressedSize)]

	switch e.Method {
	case ziptype.MethodStore:
		if e.CompressedSize != e.UncompressedSize {
			return nil, 0, &ziptype.FormatError{
				Offset: int64(rec.dataOffset), //nolint:gosec // bounded by len(data)
				Reason: fmt.Sprintf("%s: stored entry sizes differ (%d != %d)", e.Path, e.CompressedSize, e.UncompressedSize),
			}
		}
		if r.maxFileSize > 0 && uint64(e.UncompressedSize) > r.maxFileSize {
			return nil, 0, fmt.Errorf("%s: %w: size %d exceeds limit %d", e.Path, ziptype.ErrSizeOverflow, e.UncompressedSize, r.maxFileSize)
		}
		return bytes.Clone(raw), crc.Checksum(raw), nil
	case ziptype.MethodDeflate:
		out, sum, err := r.pool.inflate(raw, uint64(e.UncompressedSize), r.maxFileSize)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", e.Path, err)
		}
		return out, sum, nil
	default:
		return nil, 0, &ziptype.UnsupportedCompressionError{Path: e.Path, Method: e.Method}
	}
}

// scan locates the end record and walks the central directory, resolving
// each record's local header.
func (r *Reader) scan(data []byte) ([]record, error) {
	endOff, end, err := findEnd(data)
	if err != nil {
		return nil, err
	}
	if err := validateEnd(end, endOff); err != nil {
		return nil, err
	}
	if r.maxEntries > 0 && int(end.count) > r.maxEntries {
		return nil, fmt.Errorf("%w: archive declares %d entries, limit is %d", ziptype.ErrTooManyEntries, end.count, r.maxEntries)
	}

	r.log().Debug("central directory located",
		"offset", end.cdOffset,
		"size", end.cdSize,
		"entries", end.count)

	recs := make([]record, 0, end.count)
	pos := uint64(end.cdOffset)
	cdEnd := pos + uint64(end.cdSize)
	for range int(end.count) {
		rec, next, err := r.scanEntry(data, pos, cdEnd)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
		pos = next
	}
	return recs, nil
}

// scanEntry parses the central record at pos and the local header it
// points to. It returns the record and the offset of the next central record.
func (r *Reader) scanEntry(data []byte, pos, cdEnd uint64) (record, uint64, error) {
	if !sizing.InRange(int(cdEnd), pos, centralHeaderLen) { //nolint:gosec // cdEnd is bounded by len(data)
		return record{}, 0, formatErr(pos, "truncated central directory record")
	}
	b := data[pos:]
	if le.Uint32(b) != centralHeaderSignature {
		return record{}, 0, formatErr(pos, "bad central directory signature")
	}
	ch := parseCentralHeader(b)
	if !sizing.InRange(int(cdEnd), pos, ch.recordLen()) { //nolint:gosec // cdEnd is bounded by len(data)
		return record{}, 0, formatErr(pos, "central directory record exceeds directory")
	}
	name := string(b[centralHeaderLen : centralHeaderLen+int(ch.nameLen)])
	if ch.flags&flagEncrypted != 0 {
		return record{}, 0, formatErr(pos, fmt.Sprintf("%s: encrypted entries are not supported", name))
	}
	if ch.compressedSize == zip64Field || ch.uncompressedSize == zip64Field || ch.localOffset == zip64Field {
		return record{}, 0, formatErr(pos, fmt.Sprintf("%s: zip64 entries are not supported", name))
	}

	lo := uint64(ch.localOffset)
	if !sizing.InRange(len(data), lo, localHeaderLen) {
		return record{}, 0, formatErr(lo, fmt.Sprintf("%s: truncated local header", name))
	}
	if le.Uint32(data[lo:]) != localHeaderSignature {
		return record{}, 0, formatErr(lo, fmt.Sprintf("%s: bad local header signature", name))
	}
	lh := parseLocalHeader(data[lo:])
	dataOff := lo + localHeaderLen + uint64(lh.nameLen) + uint64(lh.extraLen)
	if !sizing.InRange(len(data), dataOff, uint64(ch.compressedSize)) {
		return record{}, 0, formatErr(lo, fmt.Sprintf("%s: payload extends past end of archive", name))
	}

	rec := record{
		entry: ziptype.ArchiveEntry{
			Path:              name,
			Method:            ziptype.Method(lh.method),
			Flags:             ch.flags,
			CRC32:             ch.crc32,
			CompressedSize:    ch.compressedSize,
			UncompressedSize:  ch.uncompressedSize,
			PackedTime:        ch.modTime,
			PackedDate:        ch.modDate,
			Modified:          dostime.Unpack(ch.modTime, ch.modDate, r.loc),
			LocalHeaderOffset: ch.localOffset,
			IsFolder:          ziptype.IsFolderPath(name),
		},
		dataOffset: dataOff,
	}
	return rec, pos + ch.recordLen(), nil
}

// findEnd scans backwards from the end of data for the end record. The
// search covers the largest possible trailing comment and includes offset 0,
// so an empty archive is found.
func findEnd(data []byte) (int, endRecord, error) {
	if len(data) < endRecordLen {
		return 0, endRecord{}, formatErr(-1, fmt.Sprintf("%d bytes is shorter than an end record", len(data)))
	}
	lowest := max(len(data)-maxScanBack, 0)
	for off := len(data) - endRecordLen; off >= lowest; off-- {
		if le.Uint32(data[off:]) != endSignature {
			continue
		}
		end := parseEndRecord(data[off:])
		if off+endRecordLen+int(end.commentLen) > len(data) {
			continue
		}
		return off, end, nil
	}
	return 0, endRecord{}, formatErr(-1, "end of central directory record not found")
}

// validateEnd rejects end records this reader cannot follow.
func validateEnd(end endRecord, endOff int) error {
	off := uint64(endOff) //nolint:gosec // endOff is non-negative
	if end.diskNumber != 0 || end.cdDisk != 0 || end.countOnDisk != end.count {
		return formatErr(off, "multi-disk archives are not supported")
	}
	if end.count == zip64Count || end.cdSize == zip64Field || end.cdOffset == zip64Field {
		return formatErr(off, "zip64 archives are not supported")
	}
	if !sizing.InRange(endOff, uint64(end.cdOffset), uint64(end.cdSize)) {
		return formatErr(off, "central directory extends past end record")
	}
	if end.count > 0 && uint64(end.cdSize) < uint64(end.count)*centralHeaderLen {
		return formatErr(off, "central directory too small for declared entries")
	}
	return nil
}

// formatErr builds a FormatError. A negative offset is written as -1.
func formatErr[T int | uint64](off T, reason string) error {
	o := int64(-1)
	if off >= 0 {
		o = int64(off) //nolint:gosec // offsets are bounded by len(data)
	}
	return &ziptype.FormatError{Offset: o, Reason: reason}
}

func (r *Reader) reportProgress(path string, bytesDone uint64, done, total int) {
	if r.progress == nil {
		return
	}
	r.progress(ziptype.ProgressEvent{
		Stage:        ziptype.StageReading,
		Path:         path,
		BytesDone:    bytesDone,
		EntriesDone:  done,
		EntriesTotal: total,
	})
}
