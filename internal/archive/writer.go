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
	// maxEntries is the largest entry count that does not collide with the
	// ZIP64 sentinel in the end record.
	maxEntries = 0xfffe

	// maxField32 is the largest size or offset that does not collide with
	// the ZIP64 sentinel.
	maxField32 = 0xfffffffe
)

// Writer encodes flat entries into a ZIP archive.
type Writer struct {
	clock    func() time.Time
	logger   *slog.Logger
	progress ziptype.ProgressFunc
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithClock sets the time source used for entry timestamps.
// Defaults to time.Now.
func WithClock(clock func() time.Time) WriterOption {
	return func(w *Writer) {
		w.clock = clock
	}
}

// WithWriterLogger sets the logger for debug output.
func WithWriterLogger(logger *slog.Logger) WriterOption {
	return func(w *Writer) {
		w.logger = logger
	}
}

// WithWriterProgress sets a callback invoked after each entry is written.
func WithWriterProgress(fn ziptype.ProgressFunc) WriterOption {
	return func(w *Writer) {
		w.progress = fn
	}
}

// NewWriter creates a Writer.
func NewWriter(opts ...WriterOption) *Writer {
	w := &Writer{clock: time.Now}
	for _, opt := range opts {
		opt(w)
	}
	if w.clock == nil {
		w.clock = time.Now
	}
	return w
}

// log returns the logger, falling back to a discard logger if nil.
func (w *Writer) log() *slog.Logger {
	if w.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return w.logger
}

// Write encodes entries, in order, into a single archive buffer.
//
// Every entry is stored uncompressed. All entries share one timestamp,
// sampled from the clock when Write starts. Folder entries are written with
// a trailing slash and no payload.
//
// Local headers are emitted sequentially and each central directory record
// stores the absolute offset at which its local header began, so entries are
// never reordered.
func (w *Writer) Write(entries []ziptype.Entry) ([]byte, error) {
	if len(entries) > maxEntries {
		return nil, fmt.Errorf("%w: %d entries, format allows %d", ziptype.ErrTooManyEntries, len(entries), maxEntries)
	}

	modTime, modDate := dostime.Pack(w.clock())

	var body bytes.Buffer
	ow := &offsetWriter{w: &body}
	central := make([]byte, 0, len(entries)*(centralHeaderLen+32))
	hdr := make([]byte, 0, localHeaderLen)

	for i := range entries {
		e := &entries[i]
		name, payload, err := entryData(e)
		if err != nil {
			return nil, err
		}

		offset := ow.off
		nameLen, err := sizing.ToUint16(len(name), ziptype.ErrSizeOverflow)
		if err != nil {
			return nil, fmt.Errorf("%s: name length %d: %w", e.Path, len(name), err)
		}
		size, err := fit32(uint64(len(payload)))
		if err != nil {
			return nil, fmt.Errorf("%s: payload size: %w", e.Path, err)
		}
		sum := crc.Checksum(payload)

		lh := localHeader{
			version:          zipVersion,
			method:           uint16(ziptype.MethodStore),
			modTime:          modTime,
			modDate:          modDate,
			crc32:            sum,
			compressedSize:   size,
			uncompressedSize: size,
			nameLen:          nameLen,
		}
		hdr = lh.appendTo(hdr[:0])
		for _, part := range [][]byte{hdr, name, payload} {
			if _, err := ow.Write(part); err != nil {
				return nil, fmt.Errorf("%s: %w", e.Path, err)
			}
		}

		ch := centralHeader{
			versionMadeBy:    zipVersion,
			versionNeeded:    zipVersion,
			method:           uint16(ziptype.MethodStore),
			modTime:          modTime,
			modDate:          modDate,
			crc32:            sum,
			compressedSize:   size,
			uncompressedSize: size,
			nameLen:          nameLen,
			localOffset:      offset,
		}
		central = ch.appendTo(central)
		central = append(central, name...)

		w.log().Debug("entry written", "path", string(name), "offset", offset, "size", size, "crc32", sum)
		w.reportProgress(string(name), uint64(ow.off), i+1, len(entries))
	}

	cdOffset := ow.off
	cdSize, err := fit32(uint64(len(central)))
	if err != nil {
		return nil, fmt.Errorf("central directory size: %w", err)
	}
	body.Write(central)

	count := uint16(len(entries)) //nolint:gosec // bounded by maxEntries
	end := endRecord{
		countOnDisk: count,
		count:       count,
		cdSize:      cdSize,
		cdOffset:    cdOffset,
	}
	out := end.appendTo(body.Bytes())
	return out, nil
}

// entryData returns the encoded name and payload for e.
func entryData(e *ziptype.Entry) (name, payload []byte, err error) {
	path := e.Path
	if path == "" || path == "/" {
		return nil, nil, fmt.Errorf("%w: empty entry path", ziptype.ErrInvalidName)
	}
	if e.IsFolder {
		if !ziptype.IsFolderPath(path) {
			path += "/"
		}
		return []byte(path), nil, nil
	}
	if ziptype.IsFolderPath(path) {
		return nil, nil, fmt.Errorf("%w: file path %q ends with a slash", ziptype.ErrInvalidName, path)
	}
	return []byte(path), e.Payload, nil
}

// fit32 narrows a size to a 32-bit header field.
func fit32(v uint64) (uint32, error) {
	if v > maxField32 {
		return 0, ziptype.ErrSizeOverflow
	}
	return uint32(v), nil
}

// reportProgress sends a progress event if a callback is configured.
func (w *Writer) reportProgress(path string, bytesDone uint64, done, total int) {
	if w.progress == nil {
		return
	}
	w.progress(ziptype.ProgressEvent{
		Stage:        ziptype.StageWriting,
		Path:         path,
		BytesDone:    bytesDone,
		EntriesDone:  done,
		EntriesTotal: total,
	})
}
