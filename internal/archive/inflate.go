package archive

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/flate"

	"github.com/meigma/ziptree/internal/crc"
	"github.com/meigma/ziptree/internal/sizing"
	"github.com/meigma/ziptree/internal/ziptype"
)

// inflatePool manages reusable flate readers to reduce allocation overhead.
type inflatePool struct {
	pool sync.Pool
}

// inflater is the reader type returned by flate.NewReader.
type inflater interface {
	io.ReadCloser
	flate.Resetter
}

// get returns a flate reader configured to read from r.
// The caller must call the returned release function when done.
func (p *inflatePool) get(r io.Reader) (io.ReadCloser, func()) {
	if value := p.pool.Get(); value != nil {
		if fr, ok := value.(inflater); ok {
			if err := fr.Reset(r, nil); err == nil {
				return fr, func() { p.pool.Put(fr) }
			}
		}
	}

	fr := flate.NewReader(r)
	if rs, ok := fr.(inflater); ok {
		return fr, func() { p.pool.Put(rs) }
	}
	return fr, func() { _ = fr.Close() }
}

// inflate decompresses a raw deflate stream and returns the content with its
// CRC-32. The result must be exactly size bytes and no larger than maxSize
// (0 disables the limit).
func (p *inflatePool) inflate(data []byte, size, maxSize uint64) ([]byte, uint32, error) {
	if maxSize > 0 && size > maxSize {
		return nil, 0, fmt.Errorf("%w: declared size %d exceeds limit %d", ziptype.ErrSizeOverflow, size, maxSize)
	}

	fr, release := p.get(bytes.NewReader(data))
	defer release()

	h := crc.New()
	out, err := sizing.ReadAllWithLimit(io.TeeReader(fr, h), size, ziptype.ErrDecompression)
	if err != nil {
		if errors.Is(err, ziptype.ErrDecompression) {
			return nil, 0, fmt.Errorf("%w: inflated data exceeds declared size %d", ziptype.ErrDecompression, size)
		}
		return nil, 0, fmt.Errorf("%w: %v", ziptype.ErrDecompression, err)
	}
	if uint64(len(out)) != size { //nolint:gosec // len is always non-negative
		return nil, 0, fmt.Errorf("%w: inflated %d bytes, expected %d", ziptype.ErrDecompression, len(out), size)
	}
	return out, h.Sum32(), nil
}
